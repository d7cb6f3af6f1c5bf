package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/labstock/backend/internal/domain/shared"
)

// ConversionType classifies a lot conversion
type ConversionType string

const (
	// ConversionTypeReassembly is a full open container going back into its
	// sealed parent lot.
	ConversionTypeReassembly ConversionType = "REASSEMBLY"

	// ConversionTypeOpen is a sealed unit split into an open container.
	ConversionTypeOpen ConversionType = "OPEN"
)

// IsValid checks if the conversion type is valid
func (t ConversionType) IsValid() bool {
	return t == ConversionTypeReassembly || t == ConversionTypeOpen
}

// ConversionLogEntry is an immutable append-only record of a lot conversion.
// Entries are never updated or deleted; together they reconstruct the full
// movement history between sealed and open representations.
type ConversionLogEntry struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key"`
	SourceLotID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	SourceQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	SourceUnitID   uuid.UUID       `gorm:"type:uuid;not null"`
	TargetLotID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	TargetQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TargetUnitID   uuid.UUID       `gorm:"type:uuid;not null"`
	ConversionType ConversionType  `gorm:"type:varchar(20);not null"`
	ReasonCode     string          `gorm:"type:varchar(50);not null"`
	ReasonNotes    string          `gorm:"type:varchar(500)"`
	PerformedBy    uuid.UUID       `gorm:"type:uuid;not null"`
	PerformedAt    time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ConversionLogEntry) TableName() string {
	return "conversion_log_entries"
}

// NewConversionLogEntry creates a conversion log entry
func NewConversionLogEntry(sourceLotID uuid.UUID, sourceQuantity decimal.Decimal, sourceUnitID, targetLotID uuid.UUID, targetQuantity decimal.Decimal, targetUnitID uuid.UUID, conversionType ConversionType, reasonCode, reasonNotes string, performedBy uuid.UUID) (*ConversionLogEntry, error) {
	if sourceLotID == uuid.Nil || targetLotID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Source and target lot IDs cannot be empty")
	}
	if !conversionType.IsValid() {
		return nil, shared.NewDomainError(shared.CodeValidation, "Invalid conversion type")
	}
	if reasonCode == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Reason code cannot be empty")
	}
	if performedBy == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Performer ID cannot be empty")
	}

	return &ConversionLogEntry{
		ID:             uuid.New(),
		SourceLotID:    sourceLotID,
		SourceQuantity: sourceQuantity,
		SourceUnitID:   sourceUnitID,
		TargetLotID:    targetLotID,
		TargetQuantity: targetQuantity,
		TargetUnitID:   targetUnitID,
		ConversionType: conversionType,
		ReasonCode:     reasonCode,
		ReasonNotes:    reasonNotes,
		PerformedBy:    performedBy,
		PerformedAt:    time.Now(),
	}, nil
}
