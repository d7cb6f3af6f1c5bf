package persistence

import (
	"context"

	"gorm.io/gorm"

	appinventory "github.com/labstock/backend/internal/application/inventory"
	"github.com/labstock/backend/internal/domain/inventory"
)

// GormInventoryTransactionScope implements the lot conversion TransactionScope
// on top of a GORM transaction. The lot mutation and its audit log entry are
// written atomically.
type GormInventoryTransactionScope struct {
	db *gorm.DB
}

// NewGormInventoryTransactionScope creates a new transaction scope
func NewGormInventoryTransactionScope(db *gorm.DB) *GormInventoryTransactionScope {
	return &GormInventoryTransactionScope{db: db}
}

// Execute runs fn within a database transaction
func (s *GormInventoryTransactionScope) Execute(ctx context.Context, fn func(repos appinventory.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormInventoryRepositories{tx: tx})
	})
}

// gormInventoryRepositories provides tx-scoped repositories
type gormInventoryRepositories struct {
	tx *gorm.DB
}

func (r *gormInventoryRepositories) Lots() inventory.ReceivingLotRepository {
	return NewGormReceivingLotRepository(r.tx)
}

func (r *gormInventoryRepositories) ConversionLogs() inventory.ConversionLogRepository {
	return NewGormConversionLogRepository(r.tx)
}

func (r *gormInventoryRepositories) DisposalLogs() inventory.DisposalLogRepository {
	return NewGormDisposalLogRepository(r.tx)
}

// Ensure interface compliance
var (
	_ appinventory.TransactionScope          = (*GormInventoryTransactionScope)(nil)
	_ appinventory.TransactionalRepositories = (*gormInventoryRepositories)(nil)
)
