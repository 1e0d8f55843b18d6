package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nexapay/admin-portal/internal/core/domain"
	"github.com/nexapay/admin-portal/internal/repository/gateway"
	"github.com/nexapay/admin-portal/internal/transport/http/middleware"
	"github.com/nexapay/admin-portal/internal/usecase"
)

// AuthHandler exposes login and logout endpoints. Authentication is delegated
// to the remote gateway; this handler only translates outcomes into HTTP and
// into the session cookie.
type AuthHandler struct {
	sessions *usecase.SessionService
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(sessions *usecase.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// RegisterRoutes binds authentication routes, applying optional middleware ahead of the login handler.
func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup, loginMiddlewares ...gin.HandlerFunc) {
	if len(loginMiddlewares) > 0 {
		chain := append([]gin.HandlerFunc{}, loginMiddlewares...)
		chain = append(chain, h.Login)
		r.POST("/login", chain...)
	} else {
		r.POST("/login", h.Login)
	}

	r.POST("/logout", h.Logout)
}

// Login validates the credentials against the gateway and writes the session
// cookie. Rejected credentials get 401 with the gateway's message; transport
// failures get 502/504 with a retry hint, never "invalid credentials".
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "username and password are required"))
		return
	}

	creds := domain.Credentials{
		Username: strings.TrimSpace(req.Username),
		Password: req.Password,
	}

	requireChange, err := h.sessions.Login(c.Request.Context(), c.Writer, creds, c.ClientIP())
	if err != nil {
		h.respondLoginError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Message:               "authenticated",
		RequirePasswordChange: requireChange,
	})
}

// Logout deletes the session cookie. Idempotent: a second call, or a call with
// no session at all, still returns 204.
func (h *AuthHandler) Logout(c *gin.Context) {
	payload, _ := middleware.SessionFromContext(c)
	h.sessions.Logout(c.Request.Context(), c.Writer, payload)
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) respondLoginError(c *gin.Context, err error) {
	var authErr *usecase.AuthenticationError
	if errors.As(err, &authErr) {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, authErr.Message))
		return
	}

	switch {
	case errors.Is(err, gateway.ErrTimeout):
		c.JSON(http.StatusGatewayTimeout, NewErrorResponse(c, "gateway timed out, check your connection and retry"))
	case errors.Is(err, gateway.ErrUnavailable):
		c.JSON(http.StatusBadGateway, NewErrorResponse(c, "payment gateway unavailable"))
	default:
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "authentication failed"))
	}
}
