package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/labstock/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeReceivingLot = "ReceivingLot"

// Event type constants
const (
	EventTypeLotReceived    = "LotReceived"
	EventTypeLotOpened      = "LotOpened"
	EventTypeLotReassembled = "LotReassembled"
	EventTypeLotDisposed    = "LotDisposed"
)

// LotReceivedEvent is raised when a new lot enters inventory
type LotReceivedEvent struct {
	shared.BaseDomainEvent
	LotID           uuid.UUID       `json:"lot_id"`
	LotNumber       string          `json:"lot_number"`
	MaterialID      uuid.UUID       `json:"material_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	ContainerStatus ContainerStatus `json:"container_status"`
}

// NewLotReceivedEvent creates a new LotReceivedEvent
func NewLotReceivedEvent(lot *ReceivingLot) *LotReceivedEvent {
	return &LotReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLotReceived, AggregateTypeReceivingLot, lot.ID),
		LotID:           lot.ID,
		LotNumber:       lot.LotNumber,
		MaterialID:      lot.MaterialID,
		Quantity:        lot.QuantityReceived,
		ContainerStatus: lot.ContainerStatus,
	}
}

// EventType returns the event type name
func (e *LotReceivedEvent) EventType() string {
	return EventTypeLotReceived
}

// LotOpenedEvent is raised when a sealed unit is split into an open container
type LotOpenedEvent struct {
	shared.BaseDomainEvent
	ParentLotID    uuid.UUID       `json:"parent_lot_id"`
	ChildLotID     uuid.UUID       `json:"child_lot_id"`
	ChildLotNumber string          `json:"child_lot_number"`
	MaterialID     uuid.UUID       `json:"material_id"`
	ChildQuantity  decimal.Decimal `json:"child_quantity"`
}

// NewLotOpenedEvent creates a new LotOpenedEvent
func NewLotOpenedEvent(parent, child *ReceivingLot) *LotOpenedEvent {
	return &LotOpenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLotOpened, AggregateTypeReceivingLot, parent.ID),
		ParentLotID:     parent.ID,
		ChildLotID:      child.ID,
		ChildLotNumber:  child.LotNumber,
		MaterialID:      parent.MaterialID,
		ChildQuantity:   child.QuantityReceived,
	}
}

// EventType returns the event type name
func (e *LotOpenedEvent) EventType() string {
	return EventTypeLotOpened
}

// LotReassembledEvent is raised when an open container is converted back into
// a sealed unit on its parent lot
type LotReassembledEvent struct {
	shared.BaseDomainEvent
	OpenLotID      uuid.UUID       `json:"open_lot_id"`
	ParentLotID    uuid.UUID       `json:"parent_lot_id"`
	MaterialID     uuid.UUID       `json:"material_id"`
	SourceQuantity decimal.Decimal `json:"source_quantity"`
	ReasonCode     string          `json:"reason_code"`
	PerformedBy    uuid.UUID       `json:"performed_by"`
}

// NewLotReassembledEvent creates a new LotReassembledEvent
func NewLotReassembledEvent(openLot *ReceivingLot, parentLotID uuid.UUID, sourceQuantity decimal.Decimal, reasonCode string, performedBy uuid.UUID) *LotReassembledEvent {
	return &LotReassembledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLotReassembled, AggregateTypeReceivingLot, openLot.ID),
		OpenLotID:       openLot.ID,
		ParentLotID:     parentLotID,
		MaterialID:      openLot.MaterialID,
		SourceQuantity:  sourceQuantity,
		ReasonCode:      reasonCode,
		PerformedBy:     performedBy,
	}
}

// EventType returns the event type name
func (e *LotReassembledEvent) EventType() string {
	return EventTypeLotReassembled
}

// LotDisposedEvent is raised when a lot is retired from circulation
type LotDisposedEvent struct {
	shared.BaseDomainEvent
	LotID            uuid.UUID       `json:"lot_id"`
	LotNumber        string          `json:"lot_number"`
	MaterialID       uuid.UUID       `json:"material_id"`
	QuantityDisposed decimal.Decimal `json:"quantity_disposed"`
	ReasonCode       string          `json:"reason_code"`
	DisposedBy       uuid.UUID       `json:"disposed_by"`
}

// NewLotDisposedEvent creates a new LotDisposedEvent
func NewLotDisposedEvent(lot *ReceivingLot, quantityDisposed decimal.Decimal, reasonCode string, disposedBy uuid.UUID) *LotDisposedEvent {
	return &LotDisposedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeLotDisposed, AggregateTypeReceivingLot, lot.ID),
		LotID:            lot.ID,
		LotNumber:        lot.LotNumber,
		MaterialID:       lot.MaterialID,
		QuantityDisposed: quantityDisposed,
		ReasonCode:       reasonCode,
		DisposedBy:       disposedBy,
	}
}

// EventType returns the event type name
func (e *LotDisposedEvent) EventType() string {
	return EventTypeLotDisposed
}
