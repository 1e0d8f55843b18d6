package security

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nexapay/admin-portal/internal/core/domain"
)

// ErrSigningSecretMissing indicates the codec was constructed without a key.
// This is a startup-time configuration failure, never a runtime one.
var ErrSigningSecretMissing = errors.New("session: signing secret is required")

const defaultTokenTTL = 12 * time.Hour

// SessionClaims carries the full session payload as JWT claims. The payload's
// own expiry (sessionExpiresAt, milliseconds) rides alongside the registered
// signature expiry; both must hold for the session to be live.
type SessionClaims struct {
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
	SessionExpiresAt      int64    `json:"sessionExpiresAt"`
	jwt.RegisteredClaims
}

// SessionCodec signs and verifies session payloads with a symmetric key.
type SessionCodec struct {
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

// NewSessionCodec constructs a codec. An empty secret is rejected so the
// process fails fast at wiring time.
func NewSessionCodec(secret string, tokenTTL time.Duration) (*SessionCodec, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrSigningSecretMissing
	}
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}

	return &SessionCodec{
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		now:      time.Now,
	}, nil
}

// WithClock injects a custom clock (primarily for testing).
func (c *SessionCodec) WithClock(now func() time.Time) *SessionCodec {
	if now != nil {
		c.now = now
	}
	return c
}

// Encode serializes the payload as signed claims, stamping issued-at and a
// signature-level expiry independent of the payload's ExpiresAt.
func (c *SessionCodec) Encode(payload domain.SessionPayload) (string, error) {
	now := c.now().UTC()

	claims := SessionClaims{
		UserID:                payload.UserID,
		UID:                   payload.UID,
		Token:                 payload.Token,
		RefreshToken:          payload.RefreshToken,
		Username:              payload.Username,
		Name:                  payload.Name,
		Email:                 payload.Email,
		Roles:                 payload.Roles,
		UserType:              payload.UserType,
		RequirePasswordChange: payload.RequirePasswordChange,
		SessionExpiresAt:      payload.ExpiresAt,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", err
	}

	return signed, nil
}

// Decode verifies the token signature and signature-level expiry and returns
// the embedded payload. Every failure mode (empty token, bad signature,
// expired signature, malformed claims) yields (nil, false); callers never
// need to branch on error types to answer "is there a session".
func (c *SessionCodec) Decode(token string) (*domain.SessionPayload, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, false
	}

	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil || parsed == nil || !parsed.Valid {
		return nil, false
	}

	if claims.UserID == "" && claims.Username == "" {
		return nil, false
	}

	return &domain.SessionPayload{
		UserID:                claims.UserID,
		UID:                   claims.UID,
		Token:                 claims.Token,
		RefreshToken:          claims.RefreshToken,
		Username:              claims.Username,
		Name:                  claims.Name,
		Email:                 claims.Email,
		Roles:                 claims.Roles,
		UserType:              claims.UserType,
		RequirePasswordChange: claims.RequirePasswordChange,
		ExpiresAt:             claims.SessionExpiresAt,
	}, true
}
