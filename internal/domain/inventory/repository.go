package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/labstock/backend/internal/domain/shared"
)

// ReceivingLotRepository defines the interface for receiving lot persistence
type ReceivingLotRepository interface {
	// FindByID finds a lot by ID
	FindByID(ctx context.Context, id uuid.UUID) (*ReceivingLot, error)

	// FindByLotNumber finds a lot by its internal lot number
	FindByLotNumber(ctx context.Context, lotNumber string) (*ReceivingLot, error)

	// FindAll finds lots with filtering and pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]ReceivingLot, error)

	// FindByMaterial finds lots holding a material
	FindByMaterial(ctx context.Context, materialID uuid.UUID, filter shared.Filter) ([]ReceivingLot, error)

	// FindByOrder finds lots received against a purchase order
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]ReceivingLot, error)

	// FindChildren finds open containers split off a sealed lot
	FindChildren(ctx context.Context, parentLotID uuid.UUID) ([]ReceivingLot, error)

	// Save creates or updates a lot
	Save(ctx context.Context, lot *ReceivingLot) error

	// SaveWithLock saves with optimistic locking. Returns a STALE_STATE domain
	// error when the stored version no longer matches.
	SaveWithLock(ctx context.Context, lot *ReceivingLot) error

	// IncrementSealedQuantity atomically adds quantity to a sealed lot. The
	// update is guarded on the lot still being SEALED so concurrent
	// reassemblies against the same parent all land without lost updates.
	IncrementSealedQuantity(ctx context.Context, lotID uuid.UUID, quantity decimal.Decimal) error

	// Count counts lots matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// GenerateLotNumber generates the next unique lot number (LOT-YYYY-NNNNN)
	GenerateLotNumber(ctx context.Context) (string, error)
}

// ConversionLogRepository persists the append-only conversion audit trail.
// There are no update or delete operations.
type ConversionLogRepository interface {
	// Append writes a conversion log entry
	Append(ctx context.Context, entry *ConversionLogEntry) error

	// FindByLot finds entries where the lot is source or target
	FindByLot(ctx context.Context, lotID uuid.UUID) ([]ConversionLogEntry, error)

	// FindAll finds entries with filtering and pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]ConversionLogEntry, error)

	// Count counts entries matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// DisposalLogRepository persists the append-only disposal audit trail.
// There are no update or delete operations.
type DisposalLogRepository interface {
	// Append writes a disposal log entry
	Append(ctx context.Context, entry *DisposalLogEntry) error

	// FindByLot finds entries for a lot
	FindByLot(ctx context.Context, lotID uuid.UUID) ([]DisposalLogEntry, error)

	// FindByMaterial finds entries for a material
	FindByMaterial(ctx context.Context, materialID uuid.UUID, filter shared.Filter) ([]DisposalLogEntry, error)

	// FindAll finds entries with filtering and pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]DisposalLogEntry, error)

	// Count counts entries matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
