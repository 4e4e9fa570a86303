// Package flash implements one-shot messages carried in a short-lived cookie.
// A message set on one response is shown on the next page render and cleared.
package flash

import (
	"net/http"
	"net/url"
)

const cookieName = "finbook_flash"

func Set(w http.ResponseWriter, msg string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		HttpOnly: true,
		MaxAge:   60,
	})
}

// Take returns the pending message, if any, and clears it.
func Take(w http.ResponseWriter, r *http.Request) (string, bool) {
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	msg, err := url.QueryUnescape(c.Value)
	if err != nil {
		return "", false
	}
	return msg, true
}
