package middleware

import (
	"net/http"

	"finbook/internal/auth"
	"finbook/internal/http/flash"
)

const loginMessage = "Please log in to access this page."

// RequireUser resolves the session cookie to a user and puts it on the
// request context. Anything short of a valid session for an existing user
// redirects to the login page.
func RequireUser(sessions *auth.Sessions, users auth.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid, err := sessions.UserID(r)
			if err != nil {
				toLogin(w, r)
				return
			}
			u, err := users.Lookup(r.Context(), uid)
			if err != nil {
				toLogin(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), u)))
		})
	}
}

func toLogin(w http.ResponseWriter, r *http.Request) {
	flash.Set(w, loginMessage)
	http.Redirect(w, r, "/login", http.StatusFound)
}
