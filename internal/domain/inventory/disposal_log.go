package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/labstock/backend/internal/domain/shared"
)

// DisposalSourceType identifies what kind of container was retired
type DisposalSourceType string

const (
	DisposalSourceSealed DisposalSourceType = "SEALED_LOT"
	DisposalSourceOpen   DisposalSourceType = "OPEN_CONTAINER"
)

// DisposalLogEntry is an immutable append-only record of inventory retired
// from circulation. Entries are never updated or deleted.
type DisposalLogEntry struct {
	ID               uuid.UUID          `gorm:"type:uuid;primary_key"`
	ReceivingLotID   uuid.UUID          `gorm:"type:uuid;not null;index"`
	MaterialID       uuid.UUID          `gorm:"type:uuid;not null;index"`
	QuantityDisposed decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	UnitID           uuid.UUID          `gorm:"type:uuid;not null"`
	TotalValue       decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	ReasonCode       string             `gorm:"type:varchar(50);not null"`
	ReasonNotes      string             `gorm:"type:varchar(500)"`
	SourceType       DisposalSourceType `gorm:"type:varchar(20);not null"`
	DisposedBy       uuid.UUID          `gorm:"type:uuid;not null"`
	DisposedAt       time.Time          `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (DisposalLogEntry) TableName() string {
	return "disposal_log_entries"
}

// NewDisposalLogEntry creates a disposal log entry. Cost valuation is out of
// scope for disposals, so TotalValue is always recorded as zero.
func NewDisposalLogEntry(lot *ReceivingLot, reasonCode, reasonNotes string, disposedBy uuid.UUID) (*DisposalLogEntry, error) {
	if lot == nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Lot cannot be nil")
	}
	if reasonCode == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Reason code cannot be empty")
	}
	if disposedBy == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Disposer ID cannot be empty")
	}
	if lot.QuantityReceived.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError(shared.CodeValidation, "Cannot record disposal of zero quantity")
	}

	sourceType := DisposalSourceOpen
	if lot.IsSealed() {
		sourceType = DisposalSourceSealed
	}

	return &DisposalLogEntry{
		ID:               uuid.New(),
		ReceivingLotID:   lot.ID,
		MaterialID:       lot.MaterialID,
		QuantityDisposed: lot.QuantityReceived,
		UnitID:           lot.UnitID,
		TotalValue:       decimal.Zero,
		ReasonCode:       reasonCode,
		ReasonNotes:      reasonNotes,
		SourceType:       sourceType,
		DisposedBy:       disposedBy,
		DisposedAt:       time.Now(),
	}, nil
}
