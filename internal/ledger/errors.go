package ledger

// Validation error kinds, one per rejected precondition.
const (
	BadDirection = "bad_direction"
	BadAmount    = "bad_amount"
	BadDate      = "bad_date"
	MissingField = "missing_field"
)

// ValidationError carries a machine kind and a human message. Anything else
// coming out of the ledger is a storage failure.
type ValidationError struct {
	Kind    string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(kind, message string) *ValidationError {
	return &ValidationError{Kind: kind, Message: message}
}
