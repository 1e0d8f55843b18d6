package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nexapay/admin-portal/internal/core/domain"
	"github.com/nexapay/admin-portal/internal/core/port"
	appLogger "github.com/nexapay/admin-portal/internal/infra/logger"
	"github.com/nexapay/admin-portal/internal/usecase"
)

const (
	// SessionKey is the gin context key the gate stores the decoded session
	// payload under. Handlers read it instead of re-decoding the cookie.
	SessionKey = "session_payload"

	// LoginPath is where unauthenticated requests are sent.
	LoginPath = "/login"
	// LandingPath is where authenticated requests to the login page are sent.
	LandingPath = "/dashboard"
	// PasswordChangePath is the only page a must-change-password session may use.
	PasswordChangePath = "/change-password"
)

// ErrorResponse is the JSON error body returned by the API surface.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// newErrorResponse creates an error response with trace ID.
func newErrorResponse(c *gin.Context, errorMsg string) ErrorResponse {
	return ErrorResponse{
		Error:   errorMsg,
		TraceID: GetTraceID(c),
	}
}

// SessionGate decodes the session cookie once per request and decides redirect
// or continue. Valid means the token decodes under the session codec and the
// payload expiry, when set, lies in the future; the gate deliberately shares
// the service's decode path so gate and service can never disagree on
// validity.
//
// Requests to the login path with a valid session bounce to the landing path;
// protected requests without one bounce to the login path (pages) or get a 401
// (API routes). Everything else passes through with the payload stored in the
// gin context.
func SessionGate(sessions *usecase.SessionService, allowList ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(allowList))
	for _, path := range allowList {
		allowed[path] = true
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		payload := sessions.GetSession(c.Request)

		if path == LoginPath {
			if payload != nil {
				c.Redirect(http.StatusSeeOther, LandingPath)
				c.Abort()
				return
			}
			c.Next()
			return
		}

		if allowed[path] {
			if payload != nil {
				c.Set(SessionKey, payload)
			}
			c.Next()
			return
		}

		if payload == nil {
			if isAPIPath(path) {
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					newErrorResponse(c, "authentication required"))
				return
			}
			c.Redirect(http.StatusSeeOther, LoginPath)
			c.Abort()
			return
		}

		// A session that still has to change its password may reach only the
		// password-change page and the endpoints that flow supplies.
		if payload.RequirePasswordChange && !passwordChangeAllowed(path) {
			if isAPIPath(path) {
				c.AbortWithStatusJSON(http.StatusForbidden,
					newErrorResponse(c, "password change required"))
				return
			}
			c.Redirect(http.StatusSeeOther, PasswordChangePath)
			c.Abort()
			return
		}

		c.Set(SessionKey, payload)

		if reqCtx := GetRequestContext(c); reqCtx != nil {
			reqCtx.UserID = payload.UserID
		}

		c.Next()
	}
}

func isAPIPath(path string) bool {
	return strings.HasPrefix(path, "/api/")
}

func passwordChangeAllowed(path string) bool {
	switch path {
	case PasswordChangePath,
		"/api/v1/auth/password",
		"/api/v1/auth/logout":
		return true
	}
	return false
}

// SessionFromContext retrieves the payload the gate stored for this request.
func SessionFromContext(c *gin.Context) (*domain.SessionPayload, bool) {
	val, exists := c.Get(SessionKey)
	if !exists {
		return nil, false
	}
	payload, ok := val.(*domain.SessionPayload)
	if !ok || payload == nil {
		return nil, false
	}
	return payload, true
}

// PermissionGuard builds per-route authorization middleware. Denials are
// recorded in the activity stream when a publisher is configured, keeping a
// trail of staff poking at screens they cannot use.
type PermissionGuard struct {
	events port.EventPublisher
}

// NewPermissionGuard constructs a PermissionGuard. events may be nil.
func NewPermissionGuard(events port.EventPublisher) *PermissionGuard {
	return &PermissionGuard{events: events}
}

// Require rejects the request with 403 unless the session's roles grant the
// permission. Authentication itself is the gate's job; reaching this
// middleware without a session is treated as unauthenticated rather than
// forbidden.
func (g *PermissionGuard) Require(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, ok := SessionFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				newErrorResponse(c, "authentication required"))
			return
		}

		if !domain.HasAnyPermission(payload.Roles, permission) {
			g.recordDenial(c, payload, permission)
			c.AbortWithStatusJSON(http.StatusForbidden,
				newErrorResponse(c, "access denied"))
			return
		}

		c.Next()
	}
}

// RequireAll rejects the request with 403 unless every role of the session
// grants each listed permission.
func (g *PermissionGuard) RequireAll(permissions ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, ok := SessionFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				newErrorResponse(c, "authentication required"))
			return
		}

		for _, permission := range permissions {
			if !domain.HasAllPermissions(payload.Roles, permission) {
				g.recordDenial(c, payload, permission)
				c.AbortWithStatusJSON(http.StatusForbidden,
					newErrorResponse(c, "access denied"))
				return
			}
		}

		c.Next()
	}
}

func (g *PermissionGuard) recordDenial(c *gin.Context, payload *domain.SessionPayload, permission string) {
	if g.events == nil {
		return
	}
	_ = g.events.PublishActivity(c.Request.Context(), domain.ActivityEvent{
		EventType: domain.ActivityPermissionDenied,
		UserID:    payload.UserID,
		Username:  appLogger.MaskString(payload.Username),
		Path:      c.Request.URL.Path,
		Metadata:  map[string]any{"permission": permission},
	})
}

// RequirePermission is the guard middleware without denial recording, for
// callers that have no event publisher.
func RequirePermission(permission string) gin.HandlerFunc {
	return NewPermissionGuard(nil).Require(permission)
}
