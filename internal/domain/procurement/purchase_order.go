package procurement

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/labstock/backend/internal/domain/shared"
	"github.com/labstock/backend/internal/domain/shared/valueobject"
)

// PurchaseOrderStatus represents the status of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft             PurchaseOrderStatus = "DRAFT"
	PurchaseOrderStatusPendingApproval   PurchaseOrderStatus = "PENDING_APPROVAL"
	PurchaseOrderStatusApproved          PurchaseOrderStatus = "APPROVED"
	PurchaseOrderStatusSent              PurchaseOrderStatus = "SENT"
	PurchaseOrderStatusPartiallyReceived PurchaseOrderStatus = "PARTIALLY_RECEIVED"
	PurchaseOrderStatusReceived          PurchaseOrderStatus = "RECEIVED"
	PurchaseOrderStatusCancelled         PurchaseOrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid PurchaseOrderStatus
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusDraft, PurchaseOrderStatusPendingApproval, PurchaseOrderStatusApproved,
		PurchaseOrderStatusSent, PurchaseOrderStatusPartiallyReceived, PurchaseOrderStatusReceived,
		PurchaseOrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PurchaseOrderStatus
func (s PurchaseOrderStatus) String() string {
	return string(s)
}

// IsTerminal returns true if no further transition is possible
func (s PurchaseOrderStatus) IsTerminal() bool {
	return s == PurchaseOrderStatusReceived || s == PurchaseOrderStatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status.
// The SENT / PARTIALLY_RECEIVED / RECEIVED edges are derived transitions owned
// by the receiving reconciler; user operations never set them directly.
func (s PurchaseOrderStatus) CanTransitionTo(target PurchaseOrderStatus) bool {
	switch s {
	case PurchaseOrderStatusDraft:
		// DRAFT -> SENT is legal only when approval is not required;
		// SendToSupplier enforces that gate.
		return target == PurchaseOrderStatusPendingApproval ||
			target == PurchaseOrderStatusSent ||
			target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusPendingApproval:
		return target == PurchaseOrderStatusApproved ||
			target == PurchaseOrderStatusDraft ||
			target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusApproved:
		return target == PurchaseOrderStatusSent ||
			target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusSent:
		return target == PurchaseOrderStatusPartiallyReceived ||
			target == PurchaseOrderStatusReceived ||
			target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusPartiallyReceived:
		// Cancelling an in-progress receiving session can revert the
		// derived status toward SENT.
		return target == PurchaseOrderStatusPartiallyReceived ||
			target == PurchaseOrderStatusReceived ||
			target == PurchaseOrderStatusSent ||
			target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusReceived, PurchaseOrderStatusCancelled:
		return false
	}
	return false
}

// CanReceive returns true if receiving goods is allowed in this status.
// RECEIVED is included: supplier overages may arrive after every line is
// fulfilled, and over-receipt is permitted by policy.
func (s PurchaseOrderStatus) CanReceive() bool {
	return s == PurchaseOrderStatusSent ||
		s == PurchaseOrderStatusPartiallyReceived ||
		s == PurchaseOrderStatusReceived
}

// PurchaseOrderLineItem represents a line item in a purchase order
type PurchaseOrderLineItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	MaterialID       uuid.UUID       `gorm:"type:uuid;not null"`
	MaterialName     string          `gorm:"type:varchar(200);not null"`
	MaterialCode     string          `gorm:"type:varchar(50);not null"`
	UnitID           uuid.UUID       `gorm:"type:uuid;not null"`
	Unit             string          `gorm:"type:varchar(20);not null"`
	QuantityOrdered  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	QuantityReceived decimal.Decimal `gorm:"type:decimal(18,4);not null"` // updated only by the receiving reconciler
	UnitCost         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LineTotal        decimal.Decimal `gorm:"type:decimal(18,4);not null"` // QuantityOrdered * UnitCost
	SortOrder        int             `gorm:"not null;default:0"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseOrderLineItem) TableName() string {
	return "purchase_order_line_items"
}

// NewPurchaseOrderLineItem creates a new purchase order line item
func NewPurchaseOrderLineItem(orderID, materialID uuid.UUID, materialName, materialCode string, unitID uuid.UUID, unit string, quantity decimal.Decimal, unitCost valueobject.Money, sortOrder int) (*PurchaseOrderLineItem, error) {
	if materialID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Material ID cannot be empty")
	}
	if materialName == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Material name cannot be empty")
	}
	if unitID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Unit ID cannot be empty")
	}
	if unit == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Unit cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError(shared.CodeValidation, "Quantity must be positive")
	}
	if unitCost.Amount().IsNegative() {
		return nil, shared.NewDomainError(shared.CodeValidation, "Unit cost cannot be negative")
	}

	now := time.Now()
	return &PurchaseOrderLineItem{
		ID:               uuid.New(),
		OrderID:          orderID,
		MaterialID:       materialID,
		MaterialName:     materialName,
		MaterialCode:     materialCode,
		UnitID:           unitID,
		Unit:             unit,
		QuantityOrdered:  quantity,
		QuantityReceived: decimal.Zero,
		UnitCost:         unitCost.Amount(),
		LineTotal:        quantity.Mul(unitCost.Amount()),
		SortOrder:        sortOrder,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// UpdateQuantity updates the ordered quantity and recalculates the line total
func (i *PurchaseOrderLineItem) UpdateQuantity(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError(shared.CodeValidation, "Quantity must be positive")
	}

	i.QuantityOrdered = quantity
	i.LineTotal = quantity.Mul(i.UnitCost)
	i.UpdatedAt = time.Now()

	return nil
}

// UpdateUnitCost updates the unit cost and recalculates the line total
func (i *PurchaseOrderLineItem) UpdateUnitCost(unitCost valueobject.Money) error {
	if unitCost.Amount().IsNegative() {
		return shared.NewDomainError(shared.CodeValidation, "Unit cost cannot be negative")
	}

	i.UnitCost = unitCost.Amount()
	i.LineTotal = i.QuantityOrdered.Mul(i.UnitCost)
	i.UpdatedAt = time.Now()

	return nil
}

// AddReceivedQuantity adds to the received quantity. Over-receipt is permitted:
// suppliers can ship overages, so the received quantity is never clamped to the
// ordered quantity. The only invariant enforced here is monotonic non-negative
// accumulation.
func (i *PurchaseOrderLineItem) AddReceivedQuantity(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError(shared.CodeValidation, "Receive quantity must be positive")
	}

	i.QuantityReceived = i.QuantityReceived.Add(quantity)
	i.UpdatedAt = time.Now()

	return nil
}

// RevertReceivedQuantity removes a prior session contribution. Used only when a
// receiving session is cancelled; it must restore the exact pre-session value.
func (i *PurchaseOrderLineItem) RevertReceivedQuantity(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError(shared.CodeValidation, "Revert quantity must be positive")
	}
	if quantity.GreaterThan(i.QuantityReceived) {
		return shared.NewDomainError(shared.CodeValidation, "Cannot revert more than the received quantity")
	}

	i.QuantityReceived = i.QuantityReceived.Sub(quantity)
	i.UpdatedAt = time.Now()

	return nil
}

// RemainingQuantity returns the quantity still to be received
func (i *PurchaseOrderLineItem) RemainingQuantity() decimal.Decimal {
	remaining := i.QuantityOrdered.Sub(i.QuantityReceived)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// IsFullyReceived returns true if all ordered quantity has been received
func (i *PurchaseOrderLineItem) IsFullyReceived() bool {
	return i.QuantityReceived.GreaterThanOrEqual(i.QuantityOrdered)
}

// IsOverReceived returns true if more than the ordered quantity has arrived.
// Over-receipt is flagged for callers to surface, not rejected.
func (i *PurchaseOrderLineItem) IsOverReceived() bool {
	return i.QuantityReceived.GreaterThan(i.QuantityOrdered)
}

// GetUnitCostMoney returns the unit cost as Money value object
func (i *PurchaseOrderLineItem) GetUnitCostMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(i.UnitCost)
}

// GetLineTotalMoney returns the line total as Money value object
func (i *PurchaseOrderLineItem) GetLineTotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(i.LineTotal)
}

// PurchaseOrder is the aggregate root for a supplier order. It owns the
// approval/fulfillment state machine; the derived fulfillment statuses are
// recomputed by the receiving reconciler through RecalculateFulfillmentStatus.
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	PONumber             string                  `gorm:"type:varchar(50);not null;uniqueIndex"`
	SupplierID           uuid.UUID               `gorm:"type:uuid;not null;index"`
	SupplierName         string                  `gorm:"type:varchar(200);not null"`
	DeliveryLocationID   uuid.UUID               `gorm:"type:uuid;not null;index"`
	OrderDate            time.Time               `gorm:"not null"`
	ExpectedDeliveryDate *time.Time              `gorm:"index"`
	Items                []PurchaseOrderLineItem `gorm:"foreignKey:OrderID;references:ID"`
	Subtotal             decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"`
	Tax                  decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"`
	Shipping             decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount          decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"`
	Status               PurchaseOrderStatus     `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	RequiresApproval     bool                    `gorm:"not null;default:false"`
	ApprovedBy           *uuid.UUID              `gorm:"type:uuid"`
	ApprovedAt           *time.Time
	ApprovalNotes        string     `gorm:"type:varchar(500)"`
	SentBy               *uuid.UUID `gorm:"type:uuid"`
	SentAt               *time.Time
	Notes                string `gorm:"type:text"`
	InternalNotes        string `gorm:"type:text"`
	CancelledAt          *time.Time
	CancelReason         string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrder creates a new purchase order in DRAFT status
func NewPurchaseOrder(poNumber string, supplierID uuid.UUID, supplierName string, deliveryLocationID uuid.UUID, expectedDeliveryDate *time.Time) (*PurchaseOrder, error) {
	if poNumber == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "PO number cannot be empty")
	}
	if len(poNumber) > 50 {
		return nil, shared.NewDomainError(shared.CodeValidation, "PO number cannot exceed 50 characters")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Supplier ID cannot be empty")
	}
	if supplierName == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Supplier name cannot be empty")
	}
	if deliveryLocationID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Delivery location ID cannot be empty")
	}

	order := &PurchaseOrder{
		BaseAggregateRoot:    shared.NewBaseAggregateRoot(),
		PONumber:             poNumber,
		SupplierID:           supplierID,
		SupplierName:         supplierName,
		DeliveryLocationID:   deliveryLocationID,
		OrderDate:            time.Now(),
		ExpectedDeliveryDate: expectedDeliveryDate,
		Items:                make([]PurchaseOrderLineItem, 0),
		Subtotal:             decimal.Zero,
		Tax:                  decimal.Zero,
		Shipping:             decimal.Zero,
		TotalAmount:          decimal.Zero,
		Status:               PurchaseOrderStatusDraft,
	}

	order.AddDomainEvent(NewPurchaseOrderCreatedEvent(order))

	return order, nil
}

// AddItem adds a new line item to the order. Only allowed in DRAFT status.
func (o *PurchaseOrder) AddItem(materialID uuid.UUID, materialName, materialCode string, unitID uuid.UUID, unit string, quantity decimal.Decimal, unitCost valueobject.Money) (*PurchaseOrderLineItem, error) {
	if o.Status != PurchaseOrderStatusDraft {
		return nil, shared.NewDomainError(shared.CodeInvalidState, "Cannot add items to a non-draft order")
	}

	for _, item := range o.Items {
		if item.MaterialID == materialID {
			return nil, shared.NewDomainError(shared.CodeAlreadyExists, "Material already exists in order, update quantity instead")
		}
	}

	item, err := NewPurchaseOrderLineItem(o.ID, materialID, materialName, materialCode, unitID, unit, quantity, unitCost, len(o.Items))
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.recalculateTotals()
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return item, nil
}

// UpdateItemQuantity updates the ordered quantity of a line item. Only allowed in DRAFT status.
func (o *PurchaseOrder) UpdateItemQuantity(itemID uuid.UUID, quantity decimal.Decimal) error {
	if o.Status != PurchaseOrderStatusDraft {
		return shared.NewDomainError(shared.CodeInvalidState, "Cannot update items in a non-draft order")
	}

	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			if err := o.Items[idx].UpdateQuantity(quantity); err != nil {
				return err
			}
			o.recalculateTotals()
			o.UpdatedAt = time.Now()
			o.IncrementVersion()
			return nil
		}
	}

	return shared.NewDomainError(shared.CodeNotFound, "Order line item not found")
}

// UpdateItemCost updates the unit cost of a line item. Only allowed in DRAFT status.
func (o *PurchaseOrder) UpdateItemCost(itemID uuid.UUID, unitCost valueobject.Money) error {
	if o.Status != PurchaseOrderStatusDraft {
		return shared.NewDomainError(shared.CodeInvalidState, "Cannot update items in a non-draft order")
	}

	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			if err := o.Items[idx].UpdateUnitCost(unitCost); err != nil {
				return err
			}
			o.recalculateTotals()
			o.UpdatedAt = time.Now()
			o.IncrementVersion()
			return nil
		}
	}

	return shared.NewDomainError(shared.CodeNotFound, "Order line item not found")
}

// RemoveItem removes a line item from the order. Only allowed in DRAFT status.
func (o *PurchaseOrder) RemoveItem(itemID uuid.UUID) error {
	if o.Status != PurchaseOrderStatusDraft {
		return shared.NewDomainError(shared.CodeInvalidState, "Cannot remove items from a non-draft order")
	}

	for idx, item := range o.Items {
		if item.ID == itemID {
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			o.recalculateTotals()
			o.UpdatedAt = time.Now()
			o.IncrementVersion()
			return nil
		}
	}

	return shared.NewDomainError(shared.CodeNotFound, "Order line item not found")
}

// SetTaxAndShipping sets order-level tax and shipping amounts. Only allowed in DRAFT status.
func (o *PurchaseOrder) SetTaxAndShipping(tax, shipping decimal.Decimal) error {
	if o.Status != PurchaseOrderStatusDraft {
		return shared.NewDomainError(shared.CodeInvalidState, "Cannot change amounts on a non-draft order")
	}
	if tax.IsNegative() || shipping.IsNegative() {
		return shared.NewDomainError(shared.CodeValidation, "Tax and shipping cannot be negative")
	}

	o.Tax = tax
	o.Shipping = shipping
	o.recalculateTotals()
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// SetExpectedDeliveryDate sets the expected delivery date. Only allowed in DRAFT status.
func (o *PurchaseOrder) SetExpectedDeliveryDate(date *time.Time) error {
	if o.Status != PurchaseOrderStatusDraft {
		return shared.NewDomainError(shared.CodeInvalidState, "Cannot change delivery date on a non-draft order")
	}

	o.ExpectedDeliveryDate = date
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// SetNotes sets the external and internal notes
func (o *PurchaseOrder) SetNotes(notes, internalNotes string) {
	o.Notes = notes
	o.InternalNotes = internalNotes
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// EvaluateApprovalRequirement recomputes RequiresApproval against the approval
// threshold. Only meaningful while the order is still a draft; the flag is
// frozen once the order leaves DRAFT.
func (o *PurchaseOrder) EvaluateApprovalRequirement(threshold valueobject.Money) error {
	if o.Status != PurchaseOrderStatusDraft {
		return shared.NewDomainError(shared.CodeInvalidState, "Approval requirement is fixed after draft")
	}

	total := valueobject.NewMoneyUSD(o.TotalAmount)
	required, err := total.GreaterThanOrEqual(threshold)
	if err != nil {
		return err
	}
	o.RequiresApproval = required

	return nil
}

// SubmitForApproval routes the draft into the approval queue. Legal only from
// DRAFT and only when approval is required.
func (o *PurchaseOrder) SubmitForApproval() error {
	if o.Status != PurchaseOrderStatusDraft {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Cannot submit order for approval in %s status", o.Status))
	}
	if !o.RequiresApproval {
		return shared.NewDomainError(shared.CodeInvalidState, "Order does not require approval; send it directly")
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError(shared.CodeValidation, "Cannot submit order without line items")
	}

	o.Status = PurchaseOrderStatusPendingApproval
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewPurchaseOrderSubmittedEvent(o))

	return nil
}

// Approve records approver identity and moves the order to APPROVED.
// Legal only from PENDING_APPROVAL.
func (o *PurchaseOrder) Approve(approverID uuid.UUID, notes string) error {
	if o.Status != PurchaseOrderStatusPendingApproval {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Cannot approve order in %s status", o.Status))
	}
	if approverID == uuid.Nil {
		return shared.NewDomainError(shared.CodeValidation, "Approver ID cannot be empty")
	}

	now := time.Now()
	o.Status = PurchaseOrderStatusApproved
	o.ApprovedBy = &approverID
	o.ApprovedAt = &now
	o.ApprovalNotes = notes
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewPurchaseOrderApprovedEvent(o))

	return nil
}

// Reject returns the order to DRAFT with notes explaining what must change.
// Legal only from PENDING_APPROVAL; it never advances the order toward SENT.
func (o *PurchaseOrder) Reject(notes string) error {
	if o.Status != PurchaseOrderStatusPendingApproval {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Cannot reject order in %s status", o.Status))
	}
	if notes == "" {
		return shared.NewDomainError(shared.CodeValidation, "Rejection notes are required")
	}

	o.Status = PurchaseOrderStatusDraft
	o.ApprovalNotes = notes
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewPurchaseOrderRejectedEvent(o, notes))

	return nil
}

// SendToSupplier marks the order as sent, making it visible to the receiving
// reconciler as awaiting delivery. Legal from APPROVED, or directly from DRAFT
// when approval is not required.
func (o *PurchaseOrder) SendToSupplier(senderID uuid.UUID) error {
	switch o.Status {
	case PurchaseOrderStatusApproved:
	case PurchaseOrderStatusDraft:
		if o.RequiresApproval {
			return shared.NewDomainError(shared.CodeInvalidState, "Order requires approval before it can be sent")
		}
	default:
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Cannot send order in %s status", o.Status))
	}
	if senderID == uuid.Nil {
		return shared.NewDomainError(shared.CodeValidation, "Sender ID cannot be empty")
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError(shared.CodeValidation, "Cannot send order without line items")
	}

	now := time.Now()
	o.Status = PurchaseOrderStatusSent
	o.SentBy = &senderID
	o.SentAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewPurchaseOrderSentEvent(o))

	return nil
}

// Cancel cancels the order. Legal from any state prior to RECEIVED; terminal
// and irreversible.
func (o *PurchaseOrder) Cancel(reason string) error {
	if o.Status.IsTerminal() {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}
	if reason == "" {
		return shared.NewDomainError(shared.CodeValidation, "Cancel reason is required")
	}

	now := time.Now()
	o.Status = PurchaseOrderStatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewPurchaseOrderCancelledEvent(o))

	return nil
}

// CanDelete returns true if the order may be physically deleted. Deletion is
// permitted only while the order is a draft; the state machine, not the UI,
// enforces this.
func (o *PurchaseOrder) CanDelete() bool {
	return o.Status == PurchaseOrderStatusDraft
}

// RecalculateFulfillmentStatus derives the fulfillment status from line-item
// received quantities. Owned by the receiving reconciler: RECEIVED when every
// line is at or above its ordered quantity, PARTIALLY_RECEIVED when any line
// has received anything, SENT otherwise. Returns true if the status changed.
func (o *PurchaseOrder) RecalculateFulfillmentStatus() (bool, error) {
	if !o.Status.CanReceive() {
		return false, shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Cannot derive fulfillment status in %s status", o.Status))
	}

	derived := PurchaseOrderStatusSent
	if o.isFullyReceived() {
		derived = PurchaseOrderStatusReceived
	} else if o.hasReceivedAnyGoods() {
		derived = PurchaseOrderStatusPartiallyReceived
	}

	if derived == o.Status {
		return false, nil
	}

	o.Status = derived
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	if derived == PurchaseOrderStatusReceived {
		o.AddDomainEvent(NewPurchaseOrderFullyReceivedEvent(o))
	}

	return true, nil
}

// recalculateTotals recalculates subtotal and total from line items
func (o *PurchaseOrder) recalculateTotals() {
	subtotal := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.LineTotal)
	}
	o.Subtotal = subtotal
	o.TotalAmount = subtotal.Add(o.Tax).Add(o.Shipping)
}

// isFullyReceived checks if all line items have been fully received
func (o *PurchaseOrder) isFullyReceived() bool {
	for _, item := range o.Items {
		if !item.IsFullyReceived() {
			return false
		}
	}
	return len(o.Items) > 0
}

// hasReceivedAnyGoods checks if any goods have been received
func (o *PurchaseOrder) hasReceivedAnyGoods() bool {
	for _, item := range o.Items {
		if item.QuantityReceived.GreaterThan(decimal.Zero) {
			return true
		}
	}
	return false
}

// GetItem returns a line item by its ID
func (o *PurchaseOrder) GetItem(itemID uuid.UUID) *PurchaseOrderLineItem {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			return &o.Items[idx]
		}
	}
	return nil
}

// GetTotalAmountMoney returns the total amount as Money
func (o *PurchaseOrder) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.TotalAmount)
}

// HasOverReceivedItems returns true if any line exceeds its ordered quantity
func (o *PurchaseOrder) HasOverReceivedItems() bool {
	for _, item := range o.Items {
		if item.IsOverReceived() {
			return true
		}
	}
	return false
}

// IsDraft returns true if the order is in draft status
func (o *PurchaseOrder) IsDraft() bool {
	return o.Status == PurchaseOrderStatusDraft
}

// ItemCount returns the number of line items in the order
func (o *PurchaseOrder) ItemCount() int {
	return len(o.Items)
}
