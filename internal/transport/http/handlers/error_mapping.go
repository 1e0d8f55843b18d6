package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexapay/admin-portal/internal/repository/gateway"
)

// ErrorCase maps a sentinel error to an HTTP status code and response message.
type ErrorCase struct {
	Err     error
	Status  int
	Message string
}

// GatewayErrorCases returns the standard mappings for failures reported by the
// remote gateway client. Timeout and unavailability get distinct messages so
// the user can tell "try again" apart from "wrong input".
func GatewayErrorCases() []ErrorCase {
	return []ErrorCase{
		{Err: gateway.ErrUnauthorized, Status: http.StatusUnauthorized, Message: "session rejected by gateway"},
		{Err: gateway.ErrNotFound, Status: http.StatusNotFound, Message: "resource not found"},
		{Err: gateway.ErrTimeout, Status: http.StatusGatewayTimeout, Message: "gateway timed out, check your connection and retry"},
		{Err: gateway.ErrUnavailable, Status: http.StatusBadGateway, Message: "payment gateway unavailable"},
	}
}

// RespondWithMappedError resolves the provided error against known cases or falls back to a generic response.
func RespondWithMappedError(c *gin.Context, err error, cases []ErrorCase, fallbackStatus int, fallbackMessage string) {
	if err == nil {
		c.Status(http.StatusOK)
		return
	}

	for _, cs := range cases {
		if cs.Err == nil {
			continue
		}
		if errors.Is(err, cs.Err) {
			c.JSON(cs.Status, NewErrorResponse(c, cs.Message))
			return
		}
	}

	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.StatusCode
		if status < http.StatusBadRequest {
			status = http.StatusBadGateway
		}
		c.JSON(status, NewErrorResponse(c, apiErr.Message))
		return
	}

	c.JSON(fallbackStatus, NewErrorResponse(c, fallbackMessage))
}
