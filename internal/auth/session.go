package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookie carries a signed HS256 token binding the browser to a user id.
const SessionCookie = "finbook_session"

const (
	sessionTTL  = 24 * time.Hour
	rememberTTL = 30 * 24 * time.Hour
)

type Sessions struct {
	secret []byte
}

func NewSessions(secret string) *Sessions {
	return &Sessions{secret: []byte(secret)}
}

// Begin issues the session cookie. With remember the cookie is persistent for
// 30 days; otherwise it dies with the browser and the token expires after a day.
func (s *Sessions) Begin(w http.ResponseWriter, user *User, remember bool) error {
	ttl := sessionTTL
	if remember {
		ttl = rememberTTL
	}
	token, err := s.sign(user.ID, ttl)
	if err != nil {
		return err
	}

	c := &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if remember {
		c.MaxAge = int(rememberTTL / time.Second)
	}
	http.SetCookie(w, c)
	return nil
}

// End expires the session cookie.
func (s *Sessions) End(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// UserID resolves the request's session cookie to a user id.
func (s *Sessions) UserID(r *http.Request) (uint64, error) {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return 0, errors.New("no session")
	}
	return s.verify(c.Value)
}

func (s *Sessions) sign(userID uint64, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

func (s *Sessions) verify(tokenStr string) (uint64, error) {
	t, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !t.Valid {
		return 0, errors.New("invalid token")
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid claims")
	}

	sub, ok := claims["sub"]
	if !ok {
		return 0, errors.New("missing sub")
	}

	// jwt MapClaims numbers are float64
	idf, ok := sub.(float64)
	if !ok {
		return 0, errors.New("invalid sub type")
	}
	return uint64(idf), nil
}
