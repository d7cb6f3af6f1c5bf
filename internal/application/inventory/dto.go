package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/labstock/backend/internal/domain/inventory"
)

// ==================== Lot DTOs ====================

// ReceivingLotResponse represents a lot in responses
type ReceivingLotResponse struct {
	ID               uuid.UUID       `json:"id"`
	LotNumber        string          `json:"lot_number"`
	MaterialID       uuid.UUID       `json:"material_id"`
	UnitID           uuid.UUID       `json:"unit_id"`
	LocationID       uuid.UUID       `json:"location_id"`
	OrderID          *uuid.UUID      `json:"order_id,omitempty"`
	ParentLotID      *uuid.UUID      `json:"parent_lot_id,omitempty"`
	QuantityReceived decimal.Decimal `json:"quantity_received"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	ConversionFactor decimal.Decimal `json:"conversion_factor"`
	ContainerStatus  string          `json:"container_status"`
	ExpiryDate       *time.Time      `json:"expiry_date,omitempty"`
	ReceivedAt       time.Time       `json:"received_at"`
	Version          int             `json:"version"`
}

// LotListFilter represents lot list query parameters
type LotListFilter struct {
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	MaterialID *uuid.UUID `form:"material_id"`
	Status     string     `form:"status"`
}

// OpenLotRequest represents a request to split a sealed unit into an open container
type OpenLotRequest struct {
	LocationID  *uuid.UUID `json:"location_id"`
	BaseUnitID  *uuid.UUID `json:"base_unit_id"`
	PerformedBy uuid.UUID  `json:"performed_by" binding:"required"`
	Notes       string     `json:"notes" binding:"max=500"`
}

// ConversionRequest represents a reassembly or disposal request
type ConversionRequest struct {
	ReasonCode  string    `json:"reason_code" binding:"required,min=1,max=50"`
	ReasonNotes string    `json:"reason_notes" binding:"max=500"`
	PerformedBy uuid.UUID `json:"performed_by" binding:"required"`
}

// ConversionLogEntryResponse represents a conversion log entry in responses
type ConversionLogEntryResponse struct {
	ID             uuid.UUID       `json:"id"`
	SourceLotID    uuid.UUID       `json:"source_lot_id"`
	SourceQuantity decimal.Decimal `json:"source_quantity"`
	SourceUnitID   uuid.UUID       `json:"source_unit_id"`
	TargetLotID    uuid.UUID       `json:"target_lot_id"`
	TargetQuantity decimal.Decimal `json:"target_quantity"`
	TargetUnitID   uuid.UUID       `json:"target_unit_id"`
	ConversionType string          `json:"conversion_type"`
	ReasonCode     string          `json:"reason_code"`
	ReasonNotes    string          `json:"reason_notes,omitempty"`
	PerformedBy    uuid.UUID       `json:"performed_by"`
	PerformedAt    time.Time       `json:"performed_at"`
}

// DisposalLogEntryResponse represents a disposal log entry in responses
type DisposalLogEntryResponse struct {
	ID               uuid.UUID       `json:"id"`
	ReceivingLotID   uuid.UUID       `json:"receiving_lot_id"`
	MaterialID       uuid.UUID       `json:"material_id"`
	QuantityDisposed decimal.Decimal `json:"quantity_disposed"`
	UnitID           uuid.UUID       `json:"unit_id"`
	TotalValue       decimal.Decimal `json:"total_value"`
	ReasonCode       string          `json:"reason_code"`
	ReasonNotes      string          `json:"reason_notes,omitempty"`
	SourceType       string          `json:"source_type"`
	DisposedBy       uuid.UUID       `json:"disposed_by"`
	DisposedAt       time.Time       `json:"disposed_at"`
}

// LotHistoryResponse bundles a lot's audit trail
type LotHistoryResponse struct {
	Lot         ReceivingLotResponse         `json:"lot"`
	Conversions []ConversionLogEntryResponse `json:"conversions"`
	Disposals   []DisposalLogEntryResponse   `json:"disposals"`
}

// ToReceivingLotResponse converts a domain lot to a response DTO
func ToReceivingLotResponse(lot *inventory.ReceivingLot) ReceivingLotResponse {
	return ReceivingLotResponse{
		ID:               lot.ID,
		LotNumber:        lot.LotNumber,
		MaterialID:       lot.MaterialID,
		UnitID:           lot.UnitID,
		LocationID:       lot.LocationID,
		OrderID:          lot.OrderID,
		ParentLotID:      lot.ParentLotID,
		QuantityReceived: lot.QuantityReceived,
		UnitCost:         lot.UnitCost,
		ConversionFactor: lot.ConversionFactor,
		ContainerStatus:  lot.ContainerStatus.String(),
		ExpiryDate:       lot.ExpiryDate,
		ReceivedAt:       lot.ReceivedAt,
		Version:          lot.GetVersion(),
	}
}

// ToConversionLogEntryResponse converts a domain entry to a response DTO
func ToConversionLogEntryResponse(entry *inventory.ConversionLogEntry) ConversionLogEntryResponse {
	return ConversionLogEntryResponse{
		ID:             entry.ID,
		SourceLotID:    entry.SourceLotID,
		SourceQuantity: entry.SourceQuantity,
		SourceUnitID:   entry.SourceUnitID,
		TargetLotID:    entry.TargetLotID,
		TargetQuantity: entry.TargetQuantity,
		TargetUnitID:   entry.TargetUnitID,
		ConversionType: string(entry.ConversionType),
		ReasonCode:     entry.ReasonCode,
		ReasonNotes:    entry.ReasonNotes,
		PerformedBy:    entry.PerformedBy,
		PerformedAt:    entry.PerformedAt,
	}
}

// ToDisposalLogEntryResponse converts a domain entry to a response DTO
func ToDisposalLogEntryResponse(entry *inventory.DisposalLogEntry) DisposalLogEntryResponse {
	return DisposalLogEntryResponse{
		ID:               entry.ID,
		ReceivingLotID:   entry.ReceivingLotID,
		MaterialID:       entry.MaterialID,
		QuantityDisposed: entry.QuantityDisposed,
		UnitID:           entry.UnitID,
		TotalValue:       entry.TotalValue,
		ReasonCode:       entry.ReasonCode,
		ReasonNotes:      entry.ReasonNotes,
		SourceType:       string(entry.SourceType),
		DisposedBy:       entry.DisposedBy,
		DisposedAt:       entry.DisposedAt,
	}
}
