package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexapay/admin-portal/internal/infra/security"
	"github.com/nexapay/admin-portal/internal/transport/http/middleware"
	"github.com/nexapay/admin-portal/internal/usecase"
)

// PasswordHandler exposes the password-change endpoint. A successful change
// re-issues the session cookie with the must-change flag cleared, so the gate
// stops pinning the user to the password page in the same response cycle.
type PasswordHandler struct {
	sessions *usecase.SessionService
}

// NewPasswordHandler constructs PasswordHandler.
func NewPasswordHandler(sessions *usecase.SessionService) *PasswordHandler {
	return &PasswordHandler{sessions: sessions}
}

// RegisterRoutes binds password routes.
func (h *PasswordHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/password", h.Change)
}

// Change validates and applies a password change for the current session.
func (h *PasswordHandler) Change(c *gin.Context) {
	payload, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	var req PasswordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "current_password and new_password are required"))
		return
	}

	err := h.sessions.ChangePassword(c.Request.Context(), c.Writer, payload, req.CurrentPassword, req.NewPassword)
	if err != nil {
		var valErr *security.PasswordValidationError
		if errors.As(err, &valErr) {
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, valErr.Message))
			return
		}

		RespondWithMappedError(c, err, GatewayErrorCases(),
			http.StatusInternalServerError, "failed to change password")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "password changed"})
}
