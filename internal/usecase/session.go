package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/nexapay/admin-portal/internal/core/domain"
	"github.com/nexapay/admin-portal/internal/core/port"
	"github.com/nexapay/admin-portal/internal/infra/config"
	"github.com/nexapay/admin-portal/internal/infra/logger"
	"github.com/nexapay/admin-portal/internal/infra/security"
)

// fallbackLoginMessage is shown when the gateway rejects a login without a
// usable message of its own.
const fallbackLoginMessage = "invalid username or password"

// AuthenticationError is a user-facing login failure carrying the gateway's
// message. It is distinct from connectivity failures so the UI can say
// "invalid credentials" rather than "check your connection".
type AuthenticationError struct {
	Message string
}

// Error implements error.
func (e *AuthenticationError) Error() string {
	if e == nil || e.Message == "" {
		return fallbackLoginMessage
	}
	return e.Message
}

// ErrNoSession indicates an operation that requires a live session was called
// without one.
var ErrNoSession = errors.New("no active session")

// SessionService owns the session lifecycle: login, logout, session creation
// and retrieval, and permission derivation. The signed cookie is the single
// source of session truth; the service never keeps per-user state of its own.
type SessionService struct {
	cfg       *config.AppConfig
	gw        port.Gateway
	codec     *security.SessionCodec
	store     port.SessionStore
	events    port.EventPublisher
	passwords *security.PasswordValidator
	log       *zap.Logger
	now       func() time.Time
}

// NewSessionService constructs a SessionService.
func NewSessionService(
	cfg *config.AppConfig,
	gw port.Gateway,
	codec *security.SessionCodec,
	store port.SessionStore,
	events port.EventPublisher,
	passwords *security.PasswordValidator,
	log *zap.Logger,
) *SessionService {
	if log == nil {
		log = zap.NewNop()
	}
	if passwords == nil {
		passwords = security.DefaultPasswordValidator()
	}

	return &SessionService{
		cfg:       cfg,
		gw:        gw,
		codec:     codec,
		store:     store,
		events:    events,
		passwords: passwords,
		log:       log,
		now:       time.Now,
	}
}

// WithClock injects a custom clock (primarily for testing).
func (s *SessionService) WithClock(now func() time.Time) *SessionService {
	if now != nil {
		s.now = now
	}
	return s
}

// Login authenticates against the gateway and, on success, creates the
// session cookie. Only the password-change flag is returned; the bearer token
// and credentials never leave the service. Transport failures propagate
// untouched so the caller can distinguish them from rejected credentials.
func (s *SessionService) Login(ctx context.Context, w http.ResponseWriter, creds domain.Credentials, clientIP string) (bool, error) {
	result, err := s.gw.Login(ctx, creds.Username, creds.Password)
	if err != nil {
		return false, fmt.Errorf("gateway login: %w", err)
	}

	if !result.Status || result.Data == nil {
		s.publishActivity(ctx, domain.ActivityEvent{
			EventType: domain.ActivityLoginFailed,
			Username:  logger.MaskString(creds.Username),
			IP:        logger.MaskIP(clientIP),
		})
		return false, &AuthenticationError{Message: messageOrFallback(result.Message)}
	}

	data := result.Data
	userID := data.ID
	if userID == "" {
		userID = data.UID
	}

	if data.Token == "" || userID == "" || data.Username == "" {
		s.publishActivity(ctx, domain.ActivityEvent{
			EventType: domain.ActivityLoginFailed,
			Username:  logger.MaskString(creds.Username),
			IP:        logger.MaskIP(clientIP),
			Metadata:  map[string]any{"reason": "malformed gateway response"},
		})
		return false, &AuthenticationError{Message: messageOrFallback(result.Message)}
	}

	name := data.Name
	if name == "" {
		name = data.Username
	}
	roles := data.Roles
	if roles == nil {
		roles = []string{}
	}

	payload := domain.SessionPayload{
		UserID:                userID,
		UID:                   userID,
		Token:                 data.Token,
		RefreshToken:          data.RefreshToken,
		Username:              data.Username,
		Name:                  name,
		Email:                 data.Email,
		Roles:                 roles,
		UserType:              data.UserType,
		RequirePasswordChange: data.RequirePasswordChange,
	}

	if err := s.CreateSession(w, payload); err != nil {
		return false, err
	}

	s.publishActivity(ctx, domain.ActivityEvent{
		EventType: domain.ActivityLoginSucceeded,
		UserID:    userID,
		Username:  logger.MaskString(data.Username),
		IP:        logger.MaskIP(clientIP),
		Metadata:  map[string]any{"roles": roles},
	})

	return data.RequirePasswordChange, nil
}

// CreateSession stamps the payload expiry, signs it, and writes the cookie.
// It fully replaces any previous session: there is exactly one cookie slot.
func (s *SessionService) CreateSession(w http.ResponseWriter, payload domain.SessionPayload) error {
	expiresAt := s.now().Add(s.cfg.Session.Expiry)
	payload.ExpiresAt = expiresAt.UnixMilli()

	token, err := s.codec.Encode(payload)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	s.store.Write(w, token, expiresAt)

	return nil
}

// GetSession reads and verifies the session from the request. No cookie, a
// bad token, and an expired payload all yield nil uniformly; this never
// returns an error.
func (s *SessionService) GetSession(r *http.Request) *domain.SessionPayload {
	token, ok := s.store.Read(r)
	if !ok {
		return nil
	}

	payload, ok := s.codec.Decode(token)
	if !ok {
		return nil
	}

	if payload.Expired(s.now()) {
		return nil
	}

	return payload
}

// Logout deletes the session cookie. Idempotent: logging out without an
// active session is not an error.
func (s *SessionService) Logout(ctx context.Context, w http.ResponseWriter, payload *domain.SessionPayload) {
	s.store.Delete(w)

	if payload != nil {
		s.publishActivity(ctx, domain.ActivityEvent{
			EventType: domain.ActivityLogout,
			UserID:    payload.UserID,
			Username:  logger.MaskString(payload.Username),
		})
	}
}

// ClearExpiredSession is the terminal handler for upstream rejection: the
// gateway refused a bearer token that still verifies locally, so the remote
// verdict wins and the session is destroyed.
func (s *SessionService) ClearExpiredSession(ctx context.Context, w http.ResponseWriter, payload *domain.SessionPayload) {
	s.Logout(ctx, w, payload)
}

// UserFromSession derives a display user from the payload without calling the
// gateway. Use when staleness is acceptable.
func (s *SessionService) UserFromSession(payload *domain.SessionPayload) *domain.User {
	return domain.UserFromSession(payload)
}

// FreshUser fetches the current user record from the gateway with the
// session's bearer token. Use when current truth is required; failures
// (network, timeout, upstream rejection) propagate to the caller.
func (s *SessionService) FreshUser(ctx context.Context, payload *domain.SessionPayload) (*domain.User, error) {
	if payload == nil {
		return nil, ErrNoSession
	}

	user, err := s.gw.GetUser(ctx, payload.Token, payload.UserID)
	if err != nil {
		return nil, fmt.Errorf("fetch user: %w", err)
	}

	return user, nil
}

// UserPermissions returns the deduplicated permission union of the session's
// roles. Empty roles yield empty permissions, never a wildcard grant.
func (s *SessionService) UserPermissions(payload *domain.SessionPayload) []string {
	if payload == nil {
		return nil
	}
	return domain.RolesPermissions(payload.Roles)
}

// ChangePassword validates the new password locally, forwards the change to
// the gateway, and re-creates the session with RequirePasswordChange cleared
// while preserving every other field.
func (s *SessionService) ChangePassword(ctx context.Context, w http.ResponseWriter, payload *domain.SessionPayload, currentPassword, newPassword string) error {
	if payload == nil {
		return ErrNoSession
	}

	if err := s.passwords.Validate(newPassword); err != nil {
		return err
	}

	if err := s.gw.ChangePassword(ctx, payload.Token, payload.UserID, currentPassword, newPassword); err != nil {
		return fmt.Errorf("gateway change password: %w", err)
	}

	refreshed := *payload
	refreshed.RequirePasswordChange = false
	if err := s.CreateSession(w, refreshed); err != nil {
		return err
	}

	s.publishActivity(ctx, domain.ActivityEvent{
		EventType: domain.ActivityPasswordChanged,
		UserID:    payload.UserID,
		Username:  logger.MaskString(payload.Username),
	})

	return nil
}

func messageOrFallback(message string) string {
	if message == "" {
		return fallbackLoginMessage
	}
	return message
}

func (s *SessionService) publishActivity(ctx context.Context, event domain.ActivityEvent) {
	if s.events == nil {
		return
	}
	event.OccurredAt = s.now().UTC()
	if err := s.events.PublishActivity(ctx, event); err != nil {
		s.log.Warn("publish activity event failed",
			zap.String("event_type", event.EventType),
			zap.Error(err),
		)
	}
}
