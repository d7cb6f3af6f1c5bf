package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/labstock/backend/internal/domain/inventory"
	"github.com/labstock/backend/internal/domain/shared"
)

// GormDisposalLogRepository implements DisposalLogRepository using GORM.
// Like the conversion log, disposals are append-only.
type GormDisposalLogRepository struct {
	db *gorm.DB
}

// NewGormDisposalLogRepository creates a new GormDisposalLogRepository
func NewGormDisposalLogRepository(db *gorm.DB) *GormDisposalLogRepository {
	return &GormDisposalLogRepository{db: db}
}

// Append writes a disposal log entry
func (r *GormDisposalLogRepository) Append(ctx context.Context, entry *inventory.DisposalLogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindByLot finds entries for a lot
func (r *GormDisposalLogRepository) FindByLot(ctx context.Context, lotID uuid.UUID) ([]inventory.DisposalLogEntry, error) {
	var entries []inventory.DisposalLogEntry
	if err := r.db.WithContext(ctx).
		Where("receiving_lot_id = ?", lotID).
		Order("disposed_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByMaterial finds entries for a material
func (r *GormDisposalLogRepository) FindByMaterial(ctx context.Context, materialID uuid.UUID, filter shared.Filter) ([]inventory.DisposalLogEntry, error) {
	var entries []inventory.DisposalLogEntry
	query := r.db.WithContext(ctx).Model(&inventory.DisposalLogEntry{}).
		Where("material_id = ?", materialID)
	query = r.applyFilter(query, filter)
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindAll finds entries with filtering and pagination
func (r *GormDisposalLogRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.DisposalLogEntry, error) {
	var entries []inventory.DisposalLogEntry
	query := r.db.WithContext(ctx).Model(&inventory.DisposalLogEntry{})
	query = r.applyFilter(query, filter)
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Count counts entries matching the filter
func (r *GormDisposalLogRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&inventory.DisposalLogEntry{})
	query = r.applyFilterWithoutPagination(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormDisposalLogRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, DisposalLogSortFields, "disposed_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(sortField + " " + sortOrder)

	return query
}

func (r *GormDisposalLogRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "source_type":
			query = query.Where("source_type = ?", value)
		case "reason_code":
			query = query.Where("reason_code = ?", value)
		case "disposed_by":
			query = query.Where("disposed_by = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("disposed_at >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("disposed_at <= ?", t)
			}
		}
	}
	return query
}

// Ensure GormDisposalLogRepository implements DisposalLogRepository
var _ inventory.DisposalLogRepository = (*GormDisposalLogRepository)(nil)
