package handler

import (
	"github.com/gin-gonic/gin"

	appprocurement "github.com/labstock/backend/internal/application/procurement"
)

// ReceivingHandler handles receiving session API endpoints
type ReceivingHandler struct {
	BaseHandler
	service *appprocurement.ReceivingService
}

// NewReceivingHandler creates a new ReceivingHandler
func NewReceivingHandler(service *appprocurement.ReceivingService) *ReceivingHandler {
	return &ReceivingHandler{service: service}
}

// RegisterRoutes registers receiving session routes
func (h *ReceivingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sessions := rg.Group("/receiving-sessions")
	{
		sessions.POST("", h.StartSession)
		sessions.GET("/:id", h.GetSession)
		sessions.POST("/:id/lines", h.RecordLineReceipt)
		sessions.POST("/:id/complete", h.CompleteSession)
		sessions.POST("/:id/cancel", h.CancelSession)
	}

	rg.GET("/purchase-orders/:id/receiving-sessions", h.ListSessionsByOrder)
}

// StartSession opens a receiving session against a purchase order
func (h *ReceivingHandler) StartSession(c *gin.Context) {
	var req appprocurement.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	session, err := h.service.StartSession(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, session)
}

// GetSession retrieves a receiving session by ID
func (h *ReceivingHandler) GetSession(c *gin.Context) {
	sessionID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid session ID")
		return
	}

	session, err := h.service.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, session)
}

// ListSessionsByOrder lists all sessions recorded against a purchase order
func (h *ReceivingHandler) ListSessionsByOrder(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	sessions, err := h.service.ListSessionsByOrder(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sessions)
}

// RecordLineReceipt records one physical receipt against an order line
func (h *ReceivingHandler) RecordLineReceipt(c *gin.Context) {
	sessionID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid session ID")
		return
	}

	var req appprocurement.RecordLineReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	receipt, err := h.service.RecordLineReceipt(c.Request.Context(), sessionID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, receipt)
}

// CompleteSession seals an in-progress session and recomputes the order status
func (h *ReceivingHandler) CompleteSession(c *gin.Context) {
	sessionID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid session ID")
		return
	}

	result, err := h.service.CompleteSession(c.Request.Context(), sessionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// CancelSession aborts a session and reverses every contribution it made
func (h *ReceivingHandler) CancelSession(c *gin.Context) {
	sessionID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid session ID")
		return
	}

	order, err := h.service.CancelSession(c.Request.Context(), sessionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
