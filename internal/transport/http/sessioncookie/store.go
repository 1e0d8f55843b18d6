// Package sessioncookie implements the session token cookie slot. It carries
// no business logic: the signed token goes in and out of a single named
// cookie, and deletion is the explicit early-release path used by logout.
package sessioncookie

import (
	"net/http"
	"time"
)

// DefaultName is the cookie slot used when no name is configured.
const DefaultName = "session"

// Store reads and writes the session token cookie.
type Store struct {
	name   string
	secure bool
}

// New constructs a Store. secure marks the cookie transport-restricted and
// should be set in production-like environments.
func New(name string, secure bool) *Store {
	if name == "" {
		name = DefaultName
	}
	return &Store{name: name, secure: secure}
}

// Read returns the raw token from the request cookie, if present.
func (s *Store) Read(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(s.name)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// Write sets the session cookie with an absolute expiry equal to the
// session's own expiry. HTTP-only always; Secure per environment.
func (s *Store) Write(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.name,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Delete removes the cookie outright. Safe to call with no active session.
func (s *Store) Delete(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
