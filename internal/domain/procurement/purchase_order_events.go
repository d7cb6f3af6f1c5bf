package procurement

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/labstock/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypePurchaseOrder = "PurchaseOrder"

// Event type constants
const (
	EventTypePurchaseOrderCreated       = "PurchaseOrderCreated"
	EventTypePurchaseOrderSubmitted     = "PurchaseOrderSubmitted"
	EventTypePurchaseOrderApproved      = "PurchaseOrderApproved"
	EventTypePurchaseOrderRejected      = "PurchaseOrderRejected"
	EventTypePurchaseOrderSent          = "PurchaseOrderSent"
	EventTypePurchaseOrderFullyReceived = "PurchaseOrderFullyReceived"
	EventTypePurchaseOrderCancelled     = "PurchaseOrderCancelled"
)

// PurchaseOrderCreatedEvent is raised when a new purchase order is created
type PurchaseOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID      uuid.UUID `json:"order_id"`
	PONumber     string    `json:"po_number"`
	SupplierID   uuid.UUID `json:"supplier_id"`
	SupplierName string    `json:"supplier_name"`
}

// NewPurchaseOrderCreatedEvent creates a new PurchaseOrderCreatedEvent
func NewPurchaseOrderCreatedEvent(order *PurchaseOrder) *PurchaseOrderCreatedEvent {
	return &PurchaseOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderCreated, AggregateTypePurchaseOrder, order.ID),
		OrderID:         order.ID,
		PONumber:        order.PONumber,
		SupplierID:      order.SupplierID,
		SupplierName:    order.SupplierName,
	}
}

// EventType returns the event type name
func (e *PurchaseOrderCreatedEvent) EventType() string {
	return EventTypePurchaseOrderCreated
}

// PurchaseOrderSubmittedEvent is raised when a draft enters the approval queue
type PurchaseOrderSubmittedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	PONumber    string          `json:"po_number"`
	SupplierID  uuid.UUID       `json:"supplier_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewPurchaseOrderSubmittedEvent creates a new PurchaseOrderSubmittedEvent
func NewPurchaseOrderSubmittedEvent(order *PurchaseOrder) *PurchaseOrderSubmittedEvent {
	return &PurchaseOrderSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderSubmitted, AggregateTypePurchaseOrder, order.ID),
		OrderID:         order.ID,
		PONumber:        order.PONumber,
		SupplierID:      order.SupplierID,
		TotalAmount:     order.TotalAmount,
	}
}

// EventType returns the event type name
func (e *PurchaseOrderSubmittedEvent) EventType() string {
	return EventTypePurchaseOrderSubmitted
}

// PurchaseOrderApprovedEvent is raised when an order passes approval
type PurchaseOrderApprovedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	PONumber    string          `json:"po_number"`
	ApprovedBy  uuid.UUID       `json:"approved_by"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewPurchaseOrderApprovedEvent creates a new PurchaseOrderApprovedEvent
func NewPurchaseOrderApprovedEvent(order *PurchaseOrder) *PurchaseOrderApprovedEvent {
	approvedBy := uuid.Nil
	if order.ApprovedBy != nil {
		approvedBy = *order.ApprovedBy
	}

	return &PurchaseOrderApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderApproved, AggregateTypePurchaseOrder, order.ID),
		OrderID:         order.ID,
		PONumber:        order.PONumber,
		ApprovedBy:      approvedBy,
		TotalAmount:     order.TotalAmount,
	}
}

// EventType returns the event type name
func (e *PurchaseOrderApprovedEvent) EventType() string {
	return EventTypePurchaseOrderApproved
}

// PurchaseOrderRejectedEvent is raised when an order is sent back to draft
type PurchaseOrderRejectedEvent struct {
	shared.BaseDomainEvent
	OrderID  uuid.UUID `json:"order_id"`
	PONumber string    `json:"po_number"`
	Notes    string    `json:"notes"`
}

// NewPurchaseOrderRejectedEvent creates a new PurchaseOrderRejectedEvent
func NewPurchaseOrderRejectedEvent(order *PurchaseOrder, notes string) *PurchaseOrderRejectedEvent {
	return &PurchaseOrderRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderRejected, AggregateTypePurchaseOrder, order.ID),
		OrderID:         order.ID,
		PONumber:        order.PONumber,
		Notes:           notes,
	}
}

// EventType returns the event type name
func (e *PurchaseOrderRejectedEvent) EventType() string {
	return EventTypePurchaseOrderRejected
}

// PurchaseOrderLineInfo represents line item information for events
type PurchaseOrderLineInfo struct {
	ItemID           uuid.UUID       `json:"item_id"`
	MaterialID       uuid.UUID       `json:"material_id"`
	MaterialName     string          `json:"material_name"`
	MaterialCode     string          `json:"material_code"`
	QuantityOrdered  decimal.Decimal `json:"quantity_ordered"`
	QuantityReceived decimal.Decimal `json:"quantity_received"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	Unit             string          `json:"unit"`
}

func lineInfos(order *PurchaseOrder) []PurchaseOrderLineInfo {
	infos := make([]PurchaseOrderLineInfo, len(order.Items))
	for i, item := range order.Items {
		infos[i] = PurchaseOrderLineInfo{
			ItemID:           item.ID,
			MaterialID:       item.MaterialID,
			MaterialName:     item.MaterialName,
			MaterialCode:     item.MaterialCode,
			QuantityOrdered:  item.QuantityOrdered,
			QuantityReceived: item.QuantityReceived,
			UnitCost:         item.UnitCost,
			Unit:             item.Unit,
		}
	}
	return infos
}

// PurchaseOrderSentEvent is raised when an order is sent to the supplier.
// The receiving reconciler treats sent orders as awaiting delivery.
type PurchaseOrderSentEvent struct {
	shared.BaseDomainEvent
	OrderID            uuid.UUID               `json:"order_id"`
	PONumber           string                  `json:"po_number"`
	SupplierID         uuid.UUID               `json:"supplier_id"`
	SupplierName       string                  `json:"supplier_name"`
	DeliveryLocationID uuid.UUID               `json:"delivery_location_id"`
	Items              []PurchaseOrderLineInfo `json:"items"`
	TotalAmount        decimal.Decimal         `json:"total_amount"`
}

// NewPurchaseOrderSentEvent creates a new PurchaseOrderSentEvent
func NewPurchaseOrderSentEvent(order *PurchaseOrder) *PurchaseOrderSentEvent {
	return &PurchaseOrderSentEvent{
		BaseDomainEvent:    shared.NewBaseDomainEvent(EventTypePurchaseOrderSent, AggregateTypePurchaseOrder, order.ID),
		OrderID:            order.ID,
		PONumber:           order.PONumber,
		SupplierID:         order.SupplierID,
		SupplierName:       order.SupplierName,
		DeliveryLocationID: order.DeliveryLocationID,
		Items:              lineInfos(order),
		TotalAmount:        order.TotalAmount,
	}
}

// EventType returns the event type name
func (e *PurchaseOrderSentEvent) EventType() string {
	return EventTypePurchaseOrderSent
}

// PurchaseOrderFullyReceivedEvent is raised when every line reaches its
// ordered quantity and the order settles into RECEIVED
type PurchaseOrderFullyReceivedEvent struct {
	shared.BaseDomainEvent
	OrderID         uuid.UUID               `json:"order_id"`
	PONumber        string                  `json:"po_number"`
	SupplierID      uuid.UUID               `json:"supplier_id"`
	Items           []PurchaseOrderLineInfo `json:"items"`
	HasOverReceipts bool                    `json:"has_over_receipts"`
}

// NewPurchaseOrderFullyReceivedEvent creates a new PurchaseOrderFullyReceivedEvent
func NewPurchaseOrderFullyReceivedEvent(order *PurchaseOrder) *PurchaseOrderFullyReceivedEvent {
	return &PurchaseOrderFullyReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderFullyReceived, AggregateTypePurchaseOrder, order.ID),
		OrderID:         order.ID,
		PONumber:        order.PONumber,
		SupplierID:      order.SupplierID,
		Items:           lineInfos(order),
		HasOverReceipts: order.HasOverReceivedItems(),
	}
}

// EventType returns the event type name
func (e *PurchaseOrderFullyReceivedEvent) EventType() string {
	return EventTypePurchaseOrderFullyReceived
}

// PurchaseOrderCancelledEvent is raised when a purchase order is cancelled
type PurchaseOrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderID      uuid.UUID               `json:"order_id"`
	PONumber     string                  `json:"po_number"`
	SupplierID   uuid.UUID               `json:"supplier_id"`
	Items        []PurchaseOrderLineInfo `json:"items"`
	CancelReason string                  `json:"cancel_reason"`
	WasSent      bool                    `json:"was_sent"` // if true, supplier may need to be notified
}

// NewPurchaseOrderCancelledEvent creates a new PurchaseOrderCancelledEvent
func NewPurchaseOrderCancelledEvent(order *PurchaseOrder) *PurchaseOrderCancelledEvent {
	return &PurchaseOrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderCancelled, AggregateTypePurchaseOrder, order.ID),
		OrderID:         order.ID,
		PONumber:        order.PONumber,
		SupplierID:      order.SupplierID,
		Items:           lineInfos(order),
		CancelReason:    order.CancelReason,
		WasSent:         order.SentAt != nil,
	}
}

// EventType returns the event type name
func (e *PurchaseOrderCancelledEvent) EventType() string {
	return EventTypePurchaseOrderCancelled
}
