package domain

import (
	"strings"
	"time"
)

// SessionPayload is the authoritative authentication record for a signed-in
// staff member. It travels entirely inside the signed session token; there is
// no server-side session store, so replacing the cookie replaces the session.
type SessionPayload struct {
	UserID                string   `json:"userId"`
	UID                   string   `json:"uid"`
	Token                 string   `json:"token"`
	RefreshToken          string   `json:"refreshToken,omitempty"`
	Username              string   `json:"username"`
	Name                  string   `json:"name"`
	Email                 string   `json:"email"`
	Roles                 []string `json:"roles,omitempty"`
	UserType              string   `json:"userType,omitempty"`
	RequirePasswordChange bool     `json:"requirePasswordChange,omitempty"`

	// ExpiresAt is milliseconds since epoch. It is mirrored into the cookie
	// expiry and checked independently of the token signature expiry.
	ExpiresAt int64 `json:"expiresAt"`
}

// Expired reports whether the payload-level expiry has passed. A zero
// ExpiresAt is treated as not expired; the signature expiry still applies.
func (p *SessionPayload) Expired(now time.Time) bool {
	if p == nil {
		return true
	}
	return p.ExpiresAt != 0 && now.UnixMilli() >= p.ExpiresAt
}

// Credentials carries a login attempt. The password never leaves the login
// flow and is never logged.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// User is the display-oriented staff record derived from a session or fetched
// from the gateway.
type User struct {
	ID        string `json:"id"`
	UID       string `json:"uid"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	UserType  string `json:"userType,omitempty"`
}

// UserFromSession derives a User from the session payload without calling the
// gateway. Name is split on the first space; the role defaults to the first
// session role.
func UserFromSession(p *SessionPayload) *User {
	if p == nil {
		return nil
	}

	first := p.Name
	last := ""
	if idx := strings.IndexByte(p.Name, ' '); idx >= 0 {
		first = p.Name[:idx]
		last = strings.TrimSpace(p.Name[idx+1:])
	}

	role := ""
	if len(p.Roles) > 0 {
		role = p.Roles[0]
	}

	return &User{
		ID:        p.UserID,
		UID:       p.UID,
		Username:  p.Username,
		FirstName: first,
		LastName:  last,
		Email:     p.Email,
		Role:      role,
		UserType:  p.UserType,
	}
}
