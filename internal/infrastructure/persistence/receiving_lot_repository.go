package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/labstock/backend/internal/domain/inventory"
	"github.com/labstock/backend/internal/domain/shared"
)

// GormReceivingLotRepository implements ReceivingLotRepository using GORM
type GormReceivingLotRepository struct {
	db *gorm.DB
}

// NewGormReceivingLotRepository creates a new GormReceivingLotRepository
func NewGormReceivingLotRepository(db *gorm.DB) *GormReceivingLotRepository {
	return &GormReceivingLotRepository{db: db}
}

// FindByID finds a lot by ID
func (r *GormReceivingLotRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.ReceivingLot, error) {
	var lot inventory.ReceivingLot
	if err := r.db.WithContext(ctx).First(&lot, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &lot, nil
}

// FindByLotNumber finds a lot by its internal lot number
func (r *GormReceivingLotRepository) FindByLotNumber(ctx context.Context, lotNumber string) (*inventory.ReceivingLot, error) {
	var lot inventory.ReceivingLot
	if err := r.db.WithContext(ctx).
		Where("lot_number = ?", lotNumber).
		First(&lot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &lot, nil
}

// FindAll finds lots with filtering and pagination
func (r *GormReceivingLotRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.ReceivingLot, error) {
	var lots []inventory.ReceivingLot
	query := r.db.WithContext(ctx).Model(&inventory.ReceivingLot{})
	query = r.applyFilter(query, filter)
	if err := query.Find(&lots).Error; err != nil {
		return nil, err
	}
	return lots, nil
}

// FindByMaterial finds lots holding a material
func (r *GormReceivingLotRepository) FindByMaterial(ctx context.Context, materialID uuid.UUID, filter shared.Filter) ([]inventory.ReceivingLot, error) {
	var lots []inventory.ReceivingLot
	query := r.db.WithContext(ctx).Model(&inventory.ReceivingLot{}).
		Where("material_id = ?", materialID)
	query = r.applyFilter(query, filter)
	if err := query.Find(&lots).Error; err != nil {
		return nil, err
	}
	return lots, nil
}

// FindByOrder finds lots received against a purchase order
func (r *GormReceivingLotRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]inventory.ReceivingLot, error) {
	var lots []inventory.ReceivingLot
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("received_at ASC").
		Find(&lots).Error; err != nil {
		return nil, err
	}
	return lots, nil
}

// FindChildren finds open containers split off a sealed lot
func (r *GormReceivingLotRepository) FindChildren(ctx context.Context, parentLotID uuid.UUID) ([]inventory.ReceivingLot, error) {
	var lots []inventory.ReceivingLot
	if err := r.db.WithContext(ctx).
		Where("parent_lot_id = ?", parentLotID).
		Order("received_at ASC").
		Find(&lots).Error; err != nil {
		return nil, err
	}
	return lots, nil
}

// Save creates or updates a lot
func (r *GormReceivingLotRepository) Save(ctx context.Context, lot *inventory.ReceivingLot) error {
	return r.db.WithContext(ctx).Save(lot).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormReceivingLotRepository) SaveWithLock(ctx context.Context, lot *inventory.ReceivingLot) error {
	storedVersion := lot.Version - 1

	result := r.db.WithContext(ctx).Model(&inventory.ReceivingLot{}).
		Where("id = ? AND version = ?", lot.ID, storedVersion).
		Updates(map[string]interface{}{
			"location_id":       lot.LocationID,
			"quantity_received": lot.QuantityReceived,
			"container_status":  lot.ContainerStatus,
			"expiry_date":       lot.ExpiryDate,
			"version":           lot.Version,
			"updated_at":        lot.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&inventory.ReceivingLot{}).
			Where("id = ?", lot.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrStaleState
	}
	return nil
}

// IncrementSealedQuantity atomically adds quantity to a sealed lot. A parent
// that was emptied by opening its last unit is restored to SEALED, so
// reassembling the child of a fully opened lot still lands. Only OPEN lots
// reject the increment: their quantity is in base units and must not absorb
// sealed-unit counts.
func (r *GormReceivingLotRepository) IncrementSealedQuantity(ctx context.Context, lotID uuid.UUID, quantity decimal.Decimal) error {
	result := r.db.WithContext(ctx).Model(&inventory.ReceivingLot{}).
		Where("id = ? AND container_status IN ?", lotID, []inventory.ContainerStatus{
			inventory.ContainerStatusSealed,
			inventory.ContainerStatusEmpty,
		}).
		Updates(map[string]interface{}{
			"container_status":  inventory.ContainerStatusSealed,
			"quantity_received": gorm.Expr("quantity_received + ?", quantity),
			"updated_at":        time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&inventory.ReceivingLot{}).
			Where("id = ?", lotID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return shared.NewDomainError(shared.CodeInvalidState, "Target lot is an open container and cannot hold sealed units")
	}
	return nil
}

// Count counts lots matching the filter
func (r *GormReceivingLotRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&inventory.ReceivingLot{})
	query = r.applyFilterWithoutPagination(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GenerateLotNumber generates a unique lot number
// Format: LOT-YYYY-NNNNN (e.g., LOT-2026-00001)
func (r *GormReceivingLotRepository) GenerateLotNumber(ctx context.Context) (string, error) {
	return generateSequentialNumber(ctx, r.db, &inventory.ReceivingLot{}, "lot_number", "LOT")
}

// applyFilter applies filter options to the query
func (r *GormReceivingLotRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, ReceivingLotSortFields, "received_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(sortField + " " + sortOrder)

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormReceivingLotRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("lot_number ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "container_status":
			query = query.Where("container_status = ?", value)
		case "material_id":
			query = query.Where("material_id = ?", value)
		case "location_id":
			query = query.Where("location_id = ?", value)
		case "order_id":
			query = query.Where("order_id = ?", value)
		case "expiring_before":
			if t, ok := value.(time.Time); ok {
				query = query.Where("expiry_date IS NOT NULL AND expiry_date <= ?", t)
			}
		}
	}

	return query
}

// Ensure GormReceivingLotRepository implements ReceivingLotRepository
var _ inventory.ReceivingLotRepository = (*GormReceivingLotRepository)(nil)
