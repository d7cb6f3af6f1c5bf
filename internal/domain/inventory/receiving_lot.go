package inventory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/labstock/backend/internal/domain/shared"
)

// ContainerStatus represents the physical container state of a lot
type ContainerStatus string

const (
	ContainerStatusSealed ContainerStatus = "SEALED"
	ContainerStatusOpen   ContainerStatus = "OPEN"
	ContainerStatusEmpty  ContainerStatus = "EMPTY"
)

// IsValid checks if the status is a valid ContainerStatus
func (s ContainerStatus) IsValid() bool {
	switch s {
	case ContainerStatusSealed, ContainerStatusOpen, ContainerStatusEmpty:
		return true
	}
	return false
}

// String returns the string representation of ContainerStatus
func (s ContainerStatus) String() string {
	return string(s)
}

// ReceivingLot is the aggregate root for a physical inventory lot. Sealed lots
// count whole unopened units; open lots track remaining quantity in the
// material's base unit. EMPTY is terminal for open containers and for
// receipts, with one exception: a sealed parent emptied by opening its last
// unit returns to SEALED when a child container is reassembled into it.
type ReceivingLot struct {
	shared.BaseAggregateRoot
	LotNumber        string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	MaterialID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	UnitID           uuid.UUID       `gorm:"type:uuid;not null"`
	LocationID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderID          *uuid.UUID      `gorm:"type:uuid;index"` // purchase order this lot was received against
	ParentLotID      *uuid.UUID      `gorm:"type:uuid;index"` // sealed lot this container was opened from
	QuantityReceived decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ConversionFactor decimal.Decimal `gorm:"type:decimal(18,4);not null;default:1"` // base units per sealed unit
	ContainerStatus  ContainerStatus `gorm:"type:varchar(20);not null;default:'SEALED'"`
	ExpiryDate       *time.Time      `gorm:"index"`
	ReceivedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ReceivingLot) TableName() string {
	return "receiving_lots"
}

// NewReceivingLot creates a lot for newly received material
func NewReceivingLot(lotNumber string, materialID, unitID, locationID uuid.UUID, quantity, unitCost, conversionFactor decimal.Decimal, status ContainerStatus, orderID *uuid.UUID, expiryDate *time.Time) (*ReceivingLot, error) {
	if lotNumber == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Lot number cannot be empty")
	}
	if materialID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Material ID cannot be empty")
	}
	if unitID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Unit ID cannot be empty")
	}
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Location ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError(shared.CodeValidation, "Quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeValidation, "Unit cost cannot be negative")
	}
	if conversionFactor.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError(shared.CodeValidation, "Conversion factor must be positive")
	}
	if status != ContainerStatusSealed && status != ContainerStatusOpen {
		return nil, shared.NewDomainError(shared.CodeValidation, "New lots must be sealed or open")
	}

	lot := &ReceivingLot{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		LotNumber:         lotNumber,
		MaterialID:        materialID,
		UnitID:            unitID,
		LocationID:        locationID,
		OrderID:           orderID,
		QuantityReceived:  quantity,
		UnitCost:          unitCost,
		ConversionFactor:  conversionFactor,
		ContainerStatus:   status,
		ExpiryDate:        expiryDate,
		ReceivedAt:        time.Now(),
	}

	lot.AddDomainEvent(NewLotReceivedEvent(lot))

	return lot, nil
}

// IsEmpty returns true if the lot has reached its terminal state
func (l *ReceivingLot) IsEmpty() bool {
	return l.ContainerStatus == ContainerStatusEmpty
}

// IsSealed returns true if the lot holds unopened units
func (l *ReceivingLot) IsSealed() bool {
	return l.ContainerStatus == ContainerStatusSealed
}

// IsOpen returns true if the lot is an open container
func (l *ReceivingLot) IsOpen() bool {
	return l.ContainerStatus == ContainerStatusOpen
}

// CheckReassemblyEligibility verifies the reassembly preconditions. Each
// failure carries a distinct code so callers can surface which precondition
// was unmet.
func (l *ReceivingLot) CheckReassemblyEligibility() error {
	if !l.IsOpen() {
		return shared.NewDomainError(shared.CodeReassemblyNotOpen, fmt.Sprintf("Lot %s is %s, only open containers can be reassembled", l.LotNumber, l.ContainerStatus))
	}
	if l.ParentLotID == nil {
		return shared.NewDomainError(shared.CodeReassemblyMissingParent, fmt.Sprintf("Lot %s has no parent sealed lot to reassemble into", l.LotNumber))
	}
	if l.QuantityReceived.LessThan(l.ConversionFactor) {
		return shared.NewDomainError(shared.CodeReassemblyInsufficientQuantity, fmt.Sprintf("Lot %s holds %s, a full sealed unit requires %s", l.LotNumber, l.QuantityReceived, l.ConversionFactor))
	}
	return nil
}

// Open splits one sealed unit off this lot into a new open container lot.
// The sealed count drops by one and the child starts with a full sealed
// unit's worth of base units, linked back through ParentLotID.
func (l *ReceivingLot) Open(lotNumber string, locationID, baseUnitID uuid.UUID) (*ReceivingLot, error) {
	if !l.IsSealed() {
		return nil, shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Cannot open %s lot %s", l.ContainerStatus, l.LotNumber))
	}
	if l.QuantityReceived.LessThan(decimal.NewFromInt(1)) {
		return nil, shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Lot %s has no sealed units left to open", l.LotNumber))
	}

	child := &ReceivingLot{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		LotNumber:         lotNumber,
		MaterialID:        l.MaterialID,
		UnitID:            baseUnitID,
		LocationID:        locationID,
		OrderID:           l.OrderID,
		ParentLotID:       &l.ID,
		QuantityReceived:  l.ConversionFactor,
		UnitCost:          l.UnitCost,
		ConversionFactor:  l.ConversionFactor,
		ContainerStatus:   ContainerStatusOpen,
		ExpiryDate:        l.ExpiryDate,
		ReceivedAt:        time.Now(),
	}

	l.QuantityReceived = l.QuantityReceived.Sub(decimal.NewFromInt(1))
	if l.QuantityReceived.IsZero() {
		l.ContainerStatus = ContainerStatusEmpty
	}
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	l.AddDomainEvent(NewLotOpenedEvent(l, child))

	return child, nil
}

// Consume removes quantity from an open container
func (l *ReceivingLot) Consume(quantity decimal.Decimal) error {
	if !l.IsOpen() {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Cannot consume from %s lot %s", l.ContainerStatus, l.LotNumber))
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError(shared.CodeValidation, "Consume quantity must be positive")
	}
	if quantity.GreaterThan(l.QuantityReceived) {
		return shared.NewDomainError(shared.CodeValidation, fmt.Sprintf("Cannot consume %s from lot %s holding %s", quantity, l.LotNumber, l.QuantityReceived))
	}

	l.QuantityReceived = l.QuantityReceived.Sub(quantity)
	if l.QuantityReceived.IsZero() {
		l.ContainerStatus = ContainerStatusEmpty
	}
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return nil
}

// MarkReassembled empties the open lot after its contents went back into the
// parent sealed lot. Eligibility must already have been checked.
func (l *ReceivingLot) MarkReassembled() error {
	if err := l.CheckReassemblyEligibility(); err != nil {
		return err
	}

	l.QuantityReceived = decimal.Zero
	l.ContainerStatus = ContainerStatusEmpty
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return nil
}

// MarkDisposed empties the lot after a disposal. Legal on any lot still
// holding quantity.
func (l *ReceivingLot) MarkDisposed() error {
	if l.QuantityReceived.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Lot %s has nothing left to dispose", l.LotNumber))
	}

	l.QuantityReceived = decimal.Zero
	l.ContainerStatus = ContainerStatusEmpty
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return nil
}

// Zero empties the lot during receiving session cancellation. Lots are never
// deleted, so a reverted receipt leaves an empty lot behind.
func (l *ReceivingLot) Zero() {
	l.QuantityReceived = decimal.Zero
	l.ContainerStatus = ContainerStatusEmpty
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}

// TotalValue returns the value of the remaining quantity
func (l *ReceivingLot) TotalValue() decimal.Decimal {
	return l.QuantityReceived.Mul(l.UnitCost)
}
