package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexapay/admin-portal/internal/core/domain"
	"github.com/nexapay/admin-portal/internal/repository/gateway"
	"github.com/nexapay/admin-portal/internal/transport/http/middleware"
	"github.com/nexapay/admin-portal/internal/usecase"
)

// MeHandler serves the current session's identity, permissions, and menu.
type MeHandler struct {
	sessions *usecase.SessionService
}

// NewMeHandler constructs MeHandler.
func NewMeHandler(sessions *usecase.SessionService) *MeHandler {
	return &MeHandler{sessions: sessions}
}

// RegisterRoutes binds session-identity routes.
func (h *MeHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/me", h.Me)
	r.GET("/me/fresh", h.FreshMe)
	r.GET("/menu", h.Menu)
	r.GET("/permissions", h.Permissions)
}

// Me returns the user derived from the session payload alone. Cheap and
// staleness-tolerant; the portal shell renders from this.
func (h *MeHandler) Me(c *gin.Context) {
	payload, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	c.JSON(http.StatusOK, MeResponse{
		User:        newUserSummary(h.sessions.UserFromSession(payload)),
		Roles:       payload.Roles,
		Permissions: h.sessions.UserPermissions(payload),
		Menu:        domain.FilterMenu(domain.Menu, payload.Roles),
	})
}

// FreshMe fetches the current user record from the gateway. When the gateway
// rejects the bearer token the session is cleared: the remote verdict beats
// the local signature check.
func (h *MeHandler) FreshMe(c *gin.Context) {
	payload, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	user, err := h.sessions.FreshUser(c.Request.Context(), payload)
	if err != nil {
		if errors.Is(err, gateway.ErrUnauthorized) {
			h.sessions.ClearExpiredSession(c.Request.Context(), c.Writer, payload)
			c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "session expired"))
			return
		}

		RespondWithMappedError(c, err, GatewayErrorCases(),
			http.StatusInternalServerError, "failed to load user")
		return
	}

	c.JSON(http.StatusOK, newUserSummary(user))
}

// Menu returns the navigation tree filtered to the session's roles.
func (h *MeHandler) Menu(c *gin.Context) {
	payload, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"menu": domain.FilterMenu(domain.Menu, payload.Roles)})
}

// Permissions returns the effective permission union for the session.
func (h *MeHandler) Permissions(c *gin.Context) {
	payload, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	perms := h.sessions.UserPermissions(payload)
	if perms == nil {
		perms = []string{}
	}

	c.JSON(http.StatusOK, gin.H{"permissions": perms})
}
