package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"finbook/internal/auth"
	"finbook/internal/ledger"
)

// APIHandler serves the JSON surface consumed by the dashboard scripts.
type APIHandler struct {
	Ledger *ledger.Service
}

// Monetary values cross the wire as fixed two-decimal strings so clients
// never touch binary floats.
type transactionDTO struct {
	ID          uint64    `json:"id"`
	Direction   string    `json:"direction"`
	Amount      string    `json:"amount"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

type addTransactionReq struct {
	Direction   string `json:"direction"`
	Amount      any    `json:"amount"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// amountString tolerates both `"12.50"` and `12.50` on the wire without
// losing digits to float64.
func (r *addTransactionReq) amountString() string {
	switch v := r.Amount.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

func (h *APIHandler) AddTransaction(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())

	var req addTransactionReq
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "Invalid JSON body",
		})
		return
	}

	t, err := h.Ledger.Append(r.Context(), u.ID, ledger.AppendInput{
		Direction:   req.Direction,
		Amount:      req.amountString(),
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		var ve *ledger.ValidationError
		if errors.As(err, &ve) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"success": false,
				"message": ve.Message,
			})
			return
		}
		slog.Error("append failed", "user_id", u.ID, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Internal server error",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"message":     "Transaction added successfully",
		"transaction": toDTO(t),
	})
}

func (h *APIHandler) ChartData(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())

	series, err := h.Ledger.CumulativeSeries(r.Context(), u.ID)
	if err != nil {
		slog.Error("chart data failed", "user_id", u.ID, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "failed to load chart data"})
		return
	}

	data := make([]string, 0, len(series.Data))
	for _, d := range series.Data {
		data = append(data, d.StringFixed(2))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"labels":          series.Labels,
		"data":            data,
		"cumulative_data": data,
	})
}

func (h *APIHandler) Balance(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())

	summary, err := h.Ledger.Balance(r.Context(), u.ID)
	if err != nil {
		slog.Error("balance failed", "user_id", u.ID, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "failed to load balance"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"balance":           summary.Balance.StringFixed(2),
		"transaction_count": summary.Count,
	})
}

func toDTO(t *ledger.Transaction) transactionDTO {
	return transactionDTO{
		ID:          t.ID,
		Direction:   string(t.Direction),
		Amount:      t.Amount.StringFixed(2),
		Description: t.Description,
		Date:        t.Date,
		CreatedAt:   t.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
