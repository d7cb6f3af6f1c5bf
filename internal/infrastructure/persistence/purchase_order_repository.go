package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/labstock/backend/internal/domain/procurement"
	"github.com/labstock/backend/internal/domain/shared"
)

// GormPurchaseOrderRepository implements PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// FindByID finds a purchase order with its line items
func (r *GormPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.PurchaseOrder, error) {
	var order procurement.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByPONumber finds a purchase order by its PO number
func (r *GormPurchaseOrderRepository) FindByPONumber(ctx context.Context, poNumber string) (*procurement.PurchaseOrder, error) {
	var order procurement.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Where("po_number = ?", poNumber).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds purchase orders with filtering and pagination
func (r *GormPurchaseOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]procurement.PurchaseOrder, error) {
	var orders []procurement.PurchaseOrder
	query := r.db.WithContext(ctx).Model(&procurement.PurchaseOrder{})
	query = r.applyFilter(query, filter)
	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindBySupplier finds purchase orders for a supplier
func (r *GormPurchaseOrderRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]procurement.PurchaseOrder, error) {
	var orders []procurement.PurchaseOrder
	query := r.db.WithContext(ctx).Model(&procurement.PurchaseOrder{}).
		Where("supplier_id = ?", supplierID)
	query = r.applyFilter(query, filter)
	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByStatus finds purchase orders in the given status
func (r *GormPurchaseOrderRepository) FindByStatus(ctx context.Context, status procurement.PurchaseOrderStatus, filter shared.Filter) ([]procurement.PurchaseOrder, error) {
	var orders []procurement.PurchaseOrder
	query := r.db.WithContext(ctx).Model(&procurement.PurchaseOrder{}).
		Where("status = ?", status)
	query = r.applyFilter(query, filter)
	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindAwaitingDelivery finds orders the receiving dock can act on
func (r *GormPurchaseOrderRepository) FindAwaitingDelivery(ctx context.Context, filter shared.Filter) ([]procurement.PurchaseOrder, error) {
	var orders []procurement.PurchaseOrder
	query := r.db.WithContext(ctx).Model(&procurement.PurchaseOrder{}).
		Where("status IN ?", []procurement.PurchaseOrderStatus{
			procurement.PurchaseOrderStatusSent,
			procurement.PurchaseOrderStatusPartiallyReceived,
		})
	query = r.applyFilter(query, filter)
	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates a purchase order and its line items
func (r *GormPurchaseOrderRepository) Save(ctx context.Context, order *procurement.PurchaseOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(order).Error; err != nil {
			return err
		}
		return r.saveItems(tx, order)
	})
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormPurchaseOrderRepository) SaveWithLock(ctx context.Context, order *procurement.PurchaseOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The aggregate increments its version on every mutation, so the
		// stored row must still hold the version the aggregate was loaded
		// with. Anything else means a concurrent writer won.
		storedVersion := order.Version - 1

		result := tx.Model(&procurement.PurchaseOrder{}).
			Where("id = ? AND version = ?", order.ID, storedVersion).
			Updates(map[string]interface{}{
				"supplier_id":            order.SupplierID,
				"supplier_name":          order.SupplierName,
				"delivery_location_id":   order.DeliveryLocationID,
				"order_date":             order.OrderDate,
				"expected_delivery_date": order.ExpectedDeliveryDate,
				"subtotal":               order.Subtotal,
				"tax":                    order.Tax,
				"shipping":               order.Shipping,
				"total_amount":           order.TotalAmount,
				"status":                 order.Status,
				"requires_approval":      order.RequiresApproval,
				"approved_by":            order.ApprovedBy,
				"approved_at":            order.ApprovedAt,
				"approval_notes":         order.ApprovalNotes,
				"sent_by":                order.SentBy,
				"sent_at":                order.SentAt,
				"notes":                  order.Notes,
				"internal_notes":         order.InternalNotes,
				"cancelled_at":           order.CancelledAt,
				"cancel_reason":          order.CancelReason,
				"version":                order.Version,
				"updated_at":             order.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&procurement.PurchaseOrder{}).
				Where("id = ?", order.ID).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return shared.ErrNotFound
			}
			return shared.ErrStaleState
		}

		return r.saveItems(tx, order)
	})
}

// saveItems reconciles the stored line items with the aggregate's current set.
// quantity_received is deliberately absent from the update: receipts move only
// through IncrementLineReceived, and a stale in-memory copy must never roll
// back a receipt that landed from a concurrent session.
func (r *GormPurchaseOrderRepository) saveItems(tx *gorm.DB, order *procurement.PurchaseOrder) error {
	currentItemIDs := make([]uuid.UUID, len(order.Items))
	for i, item := range order.Items {
		currentItemIDs[i] = item.ID
	}

	if len(currentItemIDs) > 0 {
		if err := tx.Where("order_id = ? AND id NOT IN ?", order.ID, currentItemIDs).
			Delete(&procurement.PurchaseOrderLineItem{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("order_id = ?", order.ID).
			Delete(&procurement.PurchaseOrderLineItem{}).Error; err != nil {
			return err
		}
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID

		result := tx.Model(&procurement.PurchaseOrderLineItem{}).
			Where("id = ?", item.ID).
			Updates(map[string]interface{}{
				"order_id":         item.OrderID,
				"material_id":      item.MaterialID,
				"material_name":    item.MaterialName,
				"material_code":    item.MaterialCode,
				"unit_id":          item.UnitID,
				"unit":             item.Unit,
				"quantity_ordered": item.QuantityOrdered,
				"unit_cost":        item.UnitCost,
				"line_total":       item.LineTotal,
				"sort_order":       item.SortOrder,
				"updated_at":       item.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			if err := tx.Create(item).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

// IncrementLineReceived atomically adds quantity to a line item's received
// quantity. A negative quantity reverts a prior receipt; the guard keeps the
// stored value from going below zero even under concurrent reverts.
func (r *GormPurchaseOrderRepository) IncrementLineReceived(ctx context.Context, lineItemID uuid.UUID, quantity decimal.Decimal) error {
	query := r.db.WithContext(ctx).Model(&procurement.PurchaseOrderLineItem{}).
		Where("id = ?", lineItemID)

	if quantity.IsNegative() {
		query = query.Where("quantity_received >= ?", quantity.Neg())
	}

	result := query.Updates(map[string]interface{}{
		"quantity_received": gorm.Expr("quantity_received + ?", quantity),
		"updated_at":        time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&procurement.PurchaseOrderLineItem{}).
			Where("id = ?", lineItemID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return shared.NewDomainError(shared.CodeValidation, "Revert would drive received quantity below zero")
	}
	return nil
}

// Delete deletes a purchase order and its line items
func (r *GormPurchaseOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&procurement.PurchaseOrderLineItem{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&procurement.PurchaseOrder{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts purchase orders matching the filter
func (r *GormPurchaseOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&procurement.PurchaseOrder{})
	query = r.applyFilterWithoutPagination(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts purchase orders in the given status
func (r *GormPurchaseOrderRepository) CountByStatus(ctx context.Context, status procurement.PurchaseOrderStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&procurement.PurchaseOrder{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByPONumber checks if a PO number is already taken
func (r *GormPurchaseOrderRepository) ExistsByPONumber(ctx context.Context, poNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&procurement.PurchaseOrder{}).
		Where("po_number = ?", poNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GeneratePONumber generates a unique PO number
// Format: PO-YYYY-NNNNN (e.g., PO-2026-00001)
func (r *GormPurchaseOrderRepository) GeneratePONumber(ctx context.Context) (string, error) {
	return generateSequentialNumber(ctx, r.db, &procurement.PurchaseOrder{}, "po_number", "PO")
}

// applyFilter applies filter options to the query
func (r *GormPurchaseOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Whitelist validation prevents SQL injection through sort parameters
	sortField := ValidateSortField(filter.OrderBy, PurchaseOrderSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(sortField + " " + sortOrder)

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormPurchaseOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("po_number ILIKE ? OR supplier_name ILIKE ?",
			searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		case "delivery_location_id":
			query = query.Where("delivery_location_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "statuses":
			if statuses, ok := value.([]string); ok && len(statuses) > 0 {
				query = query.Where("status IN ?", statuses)
			}
		case "requires_approval":
			query = query.Where("requires_approval = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at <= ?", t)
			}
		case "min_amount":
			if d, ok := value.(decimal.Decimal); ok {
				query = query.Where("total_amount >= ?", d)
			}
		case "max_amount":
			if d, ok := value.(decimal.Decimal); ok {
				query = query.Where("total_amount <= ?", d)
			}
		}
	}

	return query
}

// generateSequentialNumber generates the next number in a PREFIX-YYYY-NNNNN
// sequence for the given model and column.
func generateSequentialNumber(ctx context.Context, db *gorm.DB, model interface{}, column, prefix string) (string, error) {
	year := time.Now().Year()
	fullPrefix := fmt.Sprintf("%s-%d-", prefix, year)

	// Scan never reports ErrRecordNotFound; an empty table simply leaves
	// lastNumber blank and the sequence starts at 1.
	var lastNumber string
	err := db.WithContext(ctx).
		Model(model).
		Select(column).
		Where(column+" LIKE ?", fullPrefix+"%").
		Order(column + " DESC").
		Limit(1).
		Scan(&lastNumber).Error
	if err != nil {
		return "", err
	}

	var nextNum int64 = 1
	if lastNumber != "" {
		parts := strings.Split(lastNumber, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	return fmt.Sprintf("%s%05d", fullPrefix, nextNum), nil
}

// Ensure GormPurchaseOrderRepository implements PurchaseOrderRepository
var _ procurement.PurchaseOrderRepository = (*GormPurchaseOrderRepository)(nil)
