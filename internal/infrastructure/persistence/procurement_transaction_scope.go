package persistence

import (
	"context"

	"gorm.io/gorm"

	appprocurement "github.com/labstock/backend/internal/application/procurement"
	"github.com/labstock/backend/internal/domain/inventory"
	"github.com/labstock/backend/internal/domain/procurement"
)

// GormProcurementTransactionScope implements the receiving reconciler's
// TransactionScope on top of a GORM transaction. Every repository handed to
// the scoped function is bound to the same tx, so the session write, the
// order line increment and the lot insert commit or roll back as one.
type GormProcurementTransactionScope struct {
	db *gorm.DB
}

// NewGormProcurementTransactionScope creates a new transaction scope
func NewGormProcurementTransactionScope(db *gorm.DB) *GormProcurementTransactionScope {
	return &GormProcurementTransactionScope{db: db}
}

// Execute runs fn within a database transaction
func (s *GormProcurementTransactionScope) Execute(ctx context.Context, fn func(repos appprocurement.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormProcurementRepositories{tx: tx})
	})
}

// gormProcurementRepositories provides tx-scoped repositories
type gormProcurementRepositories struct {
	tx *gorm.DB
}

func (r *gormProcurementRepositories) Orders() procurement.PurchaseOrderRepository {
	return NewGormPurchaseOrderRepository(r.tx)
}

func (r *gormProcurementRepositories) Sessions() procurement.ReceivingSessionRepository {
	return NewGormReceivingSessionRepository(r.tx)
}

func (r *gormProcurementRepositories) Lots() inventory.ReceivingLotRepository {
	return NewGormReceivingLotRepository(r.tx)
}

// Ensure interface compliance
var (
	_ appprocurement.TransactionScope          = (*GormProcurementTransactionScope)(nil)
	_ appprocurement.TransactionalRepositories = (*gormProcurementRepositories)(nil)
)
