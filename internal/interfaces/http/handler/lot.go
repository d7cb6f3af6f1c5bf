package handler

import (
	"github.com/gin-gonic/gin"

	appinventory "github.com/labstock/backend/internal/application/inventory"
)

// LotHandler handles receiving lot and conversion API endpoints
type LotHandler struct {
	BaseHandler
	service *appinventory.LotConversionService
}

// NewLotHandler creates a new LotHandler
func NewLotHandler(service *appinventory.LotConversionService) *LotHandler {
	return &LotHandler{service: service}
}

// RegisterRoutes registers lot routes
func (h *LotHandler) RegisterRoutes(rg *gin.RouterGroup) {
	lots := rg.Group("/lots")
	{
		lots.GET("", h.List)
		lots.GET("/:id", h.GetByID)
		lots.GET("/:id/history", h.GetHistory)
		lots.POST("/:id/open", h.Open)
		lots.POST("/:id/reassemble", h.Reassemble)
		lots.POST("/:id/dispose", h.Dispose)
	}
}

// List lists lots with filtering and pagination
func (h *LotHandler) List(c *gin.Context) {
	var filter appinventory.LotListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	lots, total, err := h.service.ListLots(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, lots, total, page, pageSize)
}

// GetByID retrieves a lot by ID
func (h *LotHandler) GetByID(c *gin.Context) {
	lotID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid lot ID")
		return
	}

	lot, err := h.service.GetLot(c.Request.Context(), lotID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lot)
}

// GetHistory returns a lot together with its full audit trail
func (h *LotHandler) GetHistory(c *gin.Context) {
	lotID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid lot ID")
		return
	}

	history, err := h.service.GetLotHistory(c.Request.Context(), lotID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, history)
}

// Open splits one sealed unit off a sealed lot into a new open container
func (h *LotHandler) Open(c *gin.Context) {
	lotID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid lot ID")
		return
	}

	var req appinventory.OpenLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	child, err := h.service.OpenLot(c.Request.Context(), lotID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, child)
}

// Reassemble converts a full open container back into a sealed unit
func (h *LotHandler) Reassemble(c *gin.Context) {
	lotID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid lot ID")
		return
	}

	var req appinventory.ConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	entry, err := h.service.Reassemble(c.Request.Context(), lotID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// Dispose retires a lot's remaining quantity from circulation
func (h *LotHandler) Dispose(c *gin.Context) {
	lotID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid lot ID")
		return
	}

	var req appinventory.ConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	entry, err := h.service.Dispose(c.Request.Context(), lotID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}
