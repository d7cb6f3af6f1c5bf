package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/labstock/backend/internal/domain/procurement"
)

// ==================== Purchase Order DTOs ====================

// CreatePurchaseOrderRequest represents a request to create a purchase order
type CreatePurchaseOrderRequest struct {
	SupplierID           uuid.UUID                      `json:"supplier_id" binding:"required"`
	SupplierName         string                         `json:"supplier_name" binding:"required,min=1,max=200"`
	DeliveryLocationID   uuid.UUID                      `json:"delivery_location_id" binding:"required"`
	ExpectedDeliveryDate *time.Time                     `json:"expected_delivery_date"`
	Items                []CreatePurchaseOrderItemInput `json:"items"`
	Notes                string                         `json:"notes" binding:"max=2000"`
	InternalNotes        string                         `json:"internal_notes" binding:"max=2000"`
}

// CreatePurchaseOrderItemInput represents an item in the create order request
type CreatePurchaseOrderItemInput struct {
	MaterialID   uuid.UUID       `json:"material_id" binding:"required"`
	MaterialName string          `json:"material_name" binding:"required,min=1,max=200"`
	MaterialCode string          `json:"material_code" binding:"required,min=1,max=50"`
	UnitID       uuid.UUID       `json:"unit_id" binding:"required"`
	Unit         string          `json:"unit" binding:"required,min=1,max=20"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	UnitCost     decimal.Decimal `json:"unit_cost" binding:"required"`
}

// UpdatePurchaseOrderRequest represents a request to update a draft order
type UpdatePurchaseOrderRequest struct {
	ExpectedDeliveryDate *time.Time       `json:"expected_delivery_date"`
	Tax                  *decimal.Decimal `json:"tax"`
	Shipping             *decimal.Decimal `json:"shipping"`
	Notes                *string          `json:"notes"`
	InternalNotes        *string          `json:"internal_notes"`
}

// AddPurchaseOrderItemRequest represents a request to add a line item
type AddPurchaseOrderItemRequest struct {
	MaterialID   uuid.UUID       `json:"material_id" binding:"required"`
	MaterialName string          `json:"material_name" binding:"required,min=1,max=200"`
	MaterialCode string          `json:"material_code" binding:"required,min=1,max=50"`
	UnitID       uuid.UUID       `json:"unit_id" binding:"required"`
	Unit         string          `json:"unit" binding:"required,min=1,max=20"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	UnitCost     decimal.Decimal `json:"unit_cost" binding:"required"`
}

// UpdatePurchaseOrderItemRequest represents a request to update a line item
type UpdatePurchaseOrderItemRequest struct {
	Quantity *decimal.Decimal `json:"quantity"`
	UnitCost *decimal.Decimal `json:"unit_cost"`
}

// ApprovePurchaseOrderRequest represents an approval decision
type ApprovePurchaseOrderRequest struct {
	ApproverID uuid.UUID `json:"approver_id" binding:"required"`
	Notes      string    `json:"notes" binding:"max=500"`
}

// RejectPurchaseOrderRequest represents a rejection decision
type RejectPurchaseOrderRequest struct {
	Notes string `json:"notes" binding:"required,min=1,max=500"`
}

// SendPurchaseOrderRequest represents a request to send the order to the supplier
type SendPurchaseOrderRequest struct {
	SenderID uuid.UUID `json:"sender_id" binding:"required"`
}

// CancelPurchaseOrderRequest represents a request to cancel a purchase order
type CancelPurchaseOrderRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// PurchaseOrderItemResponse represents a line item in responses
type PurchaseOrderItemResponse struct {
	ID                uuid.UUID       `json:"id"`
	MaterialID        uuid.UUID       `json:"material_id"`
	MaterialName      string          `json:"material_name"`
	MaterialCode      string          `json:"material_code"`
	UnitID            uuid.UUID       `json:"unit_id"`
	Unit              string          `json:"unit"`
	QuantityOrdered   decimal.Decimal `json:"quantity_ordered"`
	QuantityReceived  decimal.Decimal `json:"quantity_received"`
	QuantityRemaining decimal.Decimal `json:"quantity_remaining"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	LineTotal         decimal.Decimal `json:"line_total"`
	IsFullyReceived   bool            `json:"is_fully_received"`
	IsOverReceived    bool            `json:"is_over_received"`
}

// PurchaseOrderResponse represents a purchase order in responses
type PurchaseOrderResponse struct {
	ID                   uuid.UUID                   `json:"id"`
	PONumber             string                      `json:"po_number"`
	SupplierID           uuid.UUID                   `json:"supplier_id"`
	SupplierName         string                      `json:"supplier_name"`
	DeliveryLocationID   uuid.UUID                   `json:"delivery_location_id"`
	OrderDate            time.Time                   `json:"order_date"`
	ExpectedDeliveryDate *time.Time                  `json:"expected_delivery_date,omitempty"`
	Status               string                      `json:"status"`
	RequiresApproval     bool                        `json:"requires_approval"`
	ApprovedBy           *uuid.UUID                  `json:"approved_by,omitempty"`
	ApprovedAt           *time.Time                  `json:"approved_at,omitempty"`
	ApprovalNotes        string                      `json:"approval_notes,omitempty"`
	SentBy               *uuid.UUID                  `json:"sent_by,omitempty"`
	SentAt               *time.Time                  `json:"sent_at,omitempty"`
	Items                []PurchaseOrderItemResponse `json:"items"`
	Subtotal             decimal.Decimal             `json:"subtotal"`
	Tax                  decimal.Decimal             `json:"tax"`
	Shipping             decimal.Decimal             `json:"shipping"`
	TotalAmount          decimal.Decimal             `json:"total_amount"`
	Notes                string                      `json:"notes,omitempty"`
	InternalNotes        string                      `json:"internal_notes,omitempty"`
	CancelledAt          *time.Time                  `json:"cancelled_at,omitempty"`
	CancelReason         string                      `json:"cancel_reason,omitempty"`
	Version              int                         `json:"version"`
	CreatedAt            time.Time                   `json:"created_at"`
	UpdatedAt            time.Time                   `json:"updated_at"`
}

// PurchaseOrderListItemResponse is the compact list representation
type PurchaseOrderListItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	PONumber     string          `json:"po_number"`
	SupplierID   uuid.UUID       `json:"supplier_id"`
	SupplierName string          `json:"supplier_name"`
	OrderDate    time.Time       `json:"order_date"`
	Status       string          `json:"status"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	ItemCount    int             `json:"item_count"`
	CreatedAt    time.Time       `json:"created_at"`
}

// PurchaseOrderListFilter represents list query parameters
type PurchaseOrderListFilter struct {
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir"`
	Search     string     `form:"search"`
	Status     string     `form:"status"`
	SupplierID *uuid.UUID `form:"supplier_id"`
}

// PurchaseOrderStatusSummary aggregates order counts per status
type PurchaseOrderStatusSummary struct {
	Draft             int64 `json:"draft"`
	PendingApproval   int64 `json:"pending_approval"`
	Approved          int64 `json:"approved"`
	Sent              int64 `json:"sent"`
	PartiallyReceived int64 `json:"partially_received"`
	Received          int64 `json:"received"`
	Cancelled         int64 `json:"cancelled"`
}

// ToPurchaseOrderItemResponse converts a domain line item to a response DTO
func ToPurchaseOrderItemResponse(item *procurement.PurchaseOrderLineItem) PurchaseOrderItemResponse {
	return PurchaseOrderItemResponse{
		ID:                item.ID,
		MaterialID:        item.MaterialID,
		MaterialName:      item.MaterialName,
		MaterialCode:      item.MaterialCode,
		UnitID:            item.UnitID,
		Unit:              item.Unit,
		QuantityOrdered:   item.QuantityOrdered,
		QuantityReceived:  item.QuantityReceived,
		QuantityRemaining: item.RemainingQuantity(),
		UnitCost:          item.UnitCost,
		LineTotal:         item.LineTotal,
		IsFullyReceived:   item.IsFullyReceived(),
		IsOverReceived:    item.IsOverReceived(),
	}
}

// ToPurchaseOrderResponse converts a domain order to a response DTO
func ToPurchaseOrderResponse(order *procurement.PurchaseOrder) PurchaseOrderResponse {
	items := make([]PurchaseOrderItemResponse, len(order.Items))
	for i := range order.Items {
		items[i] = ToPurchaseOrderItemResponse(&order.Items[i])
	}

	return PurchaseOrderResponse{
		ID:                   order.ID,
		PONumber:             order.PONumber,
		SupplierID:           order.SupplierID,
		SupplierName:         order.SupplierName,
		DeliveryLocationID:   order.DeliveryLocationID,
		OrderDate:            order.OrderDate,
		ExpectedDeliveryDate: order.ExpectedDeliveryDate,
		Status:               order.Status.String(),
		RequiresApproval:     order.RequiresApproval,
		ApprovedBy:           order.ApprovedBy,
		ApprovedAt:           order.ApprovedAt,
		ApprovalNotes:        order.ApprovalNotes,
		SentBy:               order.SentBy,
		SentAt:               order.SentAt,
		Items:                items,
		Subtotal:             order.Subtotal,
		Tax:                  order.Tax,
		Shipping:             order.Shipping,
		TotalAmount:          order.TotalAmount,
		Notes:                order.Notes,
		InternalNotes:        order.InternalNotes,
		CancelledAt:          order.CancelledAt,
		CancelReason:         order.CancelReason,
		Version:              order.GetVersion(),
		CreatedAt:            order.CreatedAt,
		UpdatedAt:            order.UpdatedAt,
	}
}

// ToPurchaseOrderListItemResponse converts a domain order to a list item DTO
func ToPurchaseOrderListItemResponse(order *procurement.PurchaseOrder) PurchaseOrderListItemResponse {
	return PurchaseOrderListItemResponse{
		ID:           order.ID,
		PONumber:     order.PONumber,
		SupplierID:   order.SupplierID,
		SupplierName: order.SupplierName,
		OrderDate:    order.OrderDate,
		Status:       order.Status.String(),
		TotalAmount:  order.TotalAmount,
		ItemCount:    order.ItemCount(),
		CreatedAt:    order.CreatedAt,
	}
}

// ==================== Receiving DTOs ====================

// StartSessionRequest represents a request to open a receiving session
type StartSessionRequest struct {
	OrderID    uuid.UUID `json:"order_id" binding:"required"`
	LocationID uuid.UUID `json:"location_id" binding:"required"`
	ReceivedBy uuid.UUID `json:"received_by" binding:"required"`
	Notes      string    `json:"notes" binding:"max=500"`
}

// RecordLineReceiptRequest represents one physical receipt against an order line
type RecordLineReceiptRequest struct {
	OrderLineItemID  uuid.UUID        `json:"order_line_item_id" binding:"required"`
	Quantity         decimal.Decimal  `json:"quantity" binding:"required"`
	Sealed           bool             `json:"sealed"`
	LocationID       *uuid.UUID       `json:"location_id"`
	ConversionFactor *decimal.Decimal `json:"conversion_factor"`
	ExpiryDate       *time.Time       `json:"expiry_date"`
	Notes            string           `json:"notes" binding:"max=500"`
}

// ReceivingSessionLineResponse represents a session line in responses
type ReceivingSessionLineResponse struct {
	ID               uuid.UUID       `json:"id"`
	OrderLineItemID  uuid.UUID       `json:"order_line_item_id"`
	MaterialID       uuid.UUID       `json:"material_id"`
	LotID            uuid.UUID       `json:"lot_id"`
	QuantityReceived decimal.Decimal `json:"quantity_received"`
	Notes            string          `json:"notes,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// ReceivingSessionResponse represents a receiving session in responses
type ReceivingSessionResponse struct {
	ID            uuid.UUID                      `json:"id"`
	SessionNumber string                         `json:"session_number"`
	OrderID       uuid.UUID                      `json:"order_id"`
	LocationID    uuid.UUID                      `json:"location_id"`
	ReceivedBy    uuid.UUID                      `json:"received_by"`
	Status        string                         `json:"status"`
	Lines         []ReceivingSessionLineResponse `json:"lines"`
	StartedAt     time.Time                      `json:"started_at"`
	CompletedAt   *time.Time                     `json:"completed_at,omitempty"`
	CancelledAt   *time.Time                     `json:"cancelled_at,omitempty"`
	Notes         string                         `json:"notes,omitempty"`
	Version       int                            `json:"version"`
}

// LineReceiptResponse pairs the updated order line with the lot it produced
type LineReceiptResponse struct {
	Line PurchaseOrderItemResponse `json:"line"`
	Lot  ReceiptLotResponse        `json:"lot"`
}

// ReceiptLotResponse is the lot view returned from receiving operations
type ReceiptLotResponse struct {
	ID              uuid.UUID       `json:"id"`
	LotNumber       string          `json:"lot_number"`
	MaterialID      uuid.UUID       `json:"material_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	ContainerStatus string          `json:"container_status"`
}

// CompleteSessionResponse reports the session and resulting order status
type CompleteSessionResponse struct {
	Session     ReceivingSessionResponse `json:"session"`
	OrderStatus string                   `json:"order_status"`
}

// ToReceivingSessionResponse converts a domain session to a response DTO
func ToReceivingSessionResponse(session *procurement.ReceivingSession) ReceivingSessionResponse {
	lines := make([]ReceivingSessionLineResponse, len(session.Lines))
	for i, line := range session.Lines {
		lines[i] = ReceivingSessionLineResponse{
			ID:               line.ID,
			OrderLineItemID:  line.OrderLineItemID,
			MaterialID:       line.MaterialID,
			LotID:            line.LotID,
			QuantityReceived: line.QuantityReceived,
			Notes:            line.Notes,
			CreatedAt:        line.CreatedAt,
		}
	}

	return ReceivingSessionResponse{
		ID:            session.ID,
		SessionNumber: session.SessionNumber,
		OrderID:       session.OrderID,
		LocationID:    session.LocationID,
		ReceivedBy:    session.ReceivedBy,
		Status:        session.Status.String(),
		Lines:         lines,
		StartedAt:     session.StartedAt,
		CompletedAt:   session.CompletedAt,
		CancelledAt:   session.CancelledAt,
		Notes:         session.Notes,
		Version:       session.GetVersion(),
	}
}
