package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nexapay/admin-portal/internal/core/domain"
	"github.com/nexapay/admin-portal/internal/core/port"
	"github.com/nexapay/admin-portal/internal/infra/logger"
	"github.com/nexapay/admin-portal/internal/repository/gateway"
	"github.com/nexapay/admin-portal/internal/transport/http/middleware"
	"github.com/nexapay/admin-portal/internal/usecase"
)

// ResourceHandler proxies the gateway's business collections (transactions,
// disbursements, merchants, staff users, audit logs) to the portal frontend.
// Permission gating happens at route registration; this handler assumes the
// session has already been admitted and only translates gateway results.
type ResourceHandler struct {
	sessions *usecase.SessionService
	gw       port.Gateway
	events   port.EventPublisher
}

// NewResourceHandler constructs ResourceHandler.
func NewResourceHandler(sessions *usecase.SessionService, gw port.Gateway, events port.EventPublisher) *ResourceHandler {
	return &ResourceHandler{sessions: sessions, gw: gw, events: events}
}

// RegisterRoutes binds resource routes with their permission requirements.
func (h *ResourceHandler) RegisterRoutes(r *gin.RouterGroup, guard *middleware.PermissionGuard) {
	if guard == nil {
		guard = middleware.NewPermissionGuard(h.events)
	}

	r.GET("/transactions", guard.Require("transactions.view"), h.ListTransactions)
	r.GET("/transactions/:id", guard.Require("transactions.view"), h.GetTransaction)

	r.GET("/disbursements", guard.Require("disbursements.view"), h.ListDisbursements)
	r.GET("/disbursements/:id", guard.Require("disbursements.view"), h.GetDisbursement)
	r.POST("/disbursements/:id/approve", guard.Require("disbursements.approve"), h.ApproveDisbursement)

	r.GET("/merchants", guard.Require("merchants.view"), h.ListMerchants)
	r.GET("/merchants/:id", guard.Require("merchants.view"), h.GetMerchant)

	r.GET("/users", guard.Require("users.view"), h.ListUsers)

	r.GET("/audit-logs", guard.Require("audit.view"), h.ListAuditLogs)
}

func (h *ResourceHandler) ListTransactions(c *gin.Context) {
	listResource(h, c, h.gw.ListTransactions)
}

func (h *ResourceHandler) GetTransaction(c *gin.Context) {
	getResource(h, c, h.gw.GetTransaction)
}

func (h *ResourceHandler) ListDisbursements(c *gin.Context) {
	listResource(h, c, h.gw.ListDisbursements)
}

func (h *ResourceHandler) GetDisbursement(c *gin.Context) {
	getResource(h, c, h.gw.GetDisbursement)
}

// ApproveDisbursement forwards the approval to the gateway and records the
// action in the activity stream.
func (h *ResourceHandler) ApproveDisbursement(c *gin.Context) {
	payload, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	id := c.Param("id")
	disbursement, err := h.gw.ApproveDisbursement(c.Request.Context(), payload.Token, id)
	if err != nil {
		h.respondGatewayError(c, payload, err, "failed to approve disbursement")
		return
	}

	h.publishActivity(c, domain.ActivityEvent{
		EventType: domain.ActivityDisbursementApproved,
		UserID:    payload.UserID,
		Username:  logger.MaskString(payload.Username),
		Path:      c.Request.URL.Path,
		Metadata:  map[string]any{"disbursement_id": id},
	})

	c.JSON(http.StatusOK, disbursement)
}

func (h *ResourceHandler) ListMerchants(c *gin.Context) {
	listResource(h, c, h.gw.ListMerchants)
}

func (h *ResourceHandler) GetMerchant(c *gin.Context) {
	getResource(h, c, h.gw.GetMerchant)
}

func (h *ResourceHandler) ListUsers(c *gin.Context) {
	listResource(h, c, h.gw.ListUsers)
}

func (h *ResourceHandler) ListAuditLogs(c *gin.Context) {
	listResource(h, c, h.gw.ListAuditLogs)
}

// respondGatewayError maps a gateway failure, clearing the session first when
// the gateway rejected the bearer token outright.
func (h *ResourceHandler) respondGatewayError(c *gin.Context, payload *domain.SessionPayload, err error, fallback string) {
	if errors.Is(err, gateway.ErrUnauthorized) {
		h.sessions.ClearExpiredSession(c.Request.Context(), c.Writer, payload)
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "session expired"))
		return
	}

	RespondWithMappedError(c, err, GatewayErrorCases(), http.StatusInternalServerError, fallback)
}

func (h *ResourceHandler) publishActivity(c *gin.Context, event domain.ActivityEvent) {
	if h.events == nil {
		return
	}
	_ = h.events.PublishActivity(c.Request.Context(), event)
}

func pageQueryFromRequest(c *gin.Context) domain.PageQuery {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "0"))

	return domain.PageQuery{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
		Status:   c.Query("status"),
	}.Normalize()
}

func listResource[T any](h *ResourceHandler, c *gin.Context, list func(context.Context, string, domain.PageQuery) (*domain.Page[T], error)) {
	payload, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	page, err := list(c.Request.Context(), payload.Token, pageQueryFromRequest(c))
	if err != nil {
		h.respondGatewayError(c, payload, err, "failed to load records")
		return
	}

	c.JSON(http.StatusOK, page)
}

func getResource[T any](h *ResourceHandler, c *gin.Context, get func(context.Context, string, string) (*T, error)) {
	payload, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	resource, err := get(c.Request.Context(), payload.Token, c.Param("id"))
	if err != nil {
		h.respondGatewayError(c, payload, err, "failed to load record")
		return
	}

	c.JSON(http.StatusOK, resource)
}
