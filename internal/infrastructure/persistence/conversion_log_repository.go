package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/labstock/backend/internal/domain/inventory"
	"github.com/labstock/backend/internal/domain/shared"
)

// GormConversionLogRepository implements ConversionLogRepository using GORM.
// The log is append-only: the repository deliberately exposes no update or
// delete operations.
type GormConversionLogRepository struct {
	db *gorm.DB
}

// NewGormConversionLogRepository creates a new GormConversionLogRepository
func NewGormConversionLogRepository(db *gorm.DB) *GormConversionLogRepository {
	return &GormConversionLogRepository{db: db}
}

// Append writes a conversion log entry
func (r *GormConversionLogRepository) Append(ctx context.Context, entry *inventory.ConversionLogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindByLot finds entries where the lot is source or target
func (r *GormConversionLogRepository) FindByLot(ctx context.Context, lotID uuid.UUID) ([]inventory.ConversionLogEntry, error) {
	var entries []inventory.ConversionLogEntry
	if err := r.db.WithContext(ctx).
		Where("source_lot_id = ? OR target_lot_id = ?", lotID, lotID).
		Order("performed_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindAll finds entries with filtering and pagination
func (r *GormConversionLogRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.ConversionLogEntry, error) {
	var entries []inventory.ConversionLogEntry
	query := r.db.WithContext(ctx).Model(&inventory.ConversionLogEntry{})
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, ConversionLogSortFields, "performed_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(sortField + " " + sortOrder)

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Count counts entries matching the filter
func (r *GormConversionLogRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&inventory.ConversionLogEntry{})
	query = r.applyFilterWithoutPagination(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormConversionLogRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "conversion_type":
			query = query.Where("conversion_type = ?", value)
		case "performed_by":
			query = query.Where("performed_by = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("performed_at >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("performed_at <= ?", t)
			}
		}
	}
	return query
}

// Ensure GormConversionLogRepository implements ConversionLogRepository
var _ inventory.ConversionLogRepository = (*GormConversionLogRepository)(nil)
