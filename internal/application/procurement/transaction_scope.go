package procurement

import (
	"context"

	"github.com/labstock/backend/internal/domain/inventory"
	"github.com/labstock/backend/internal/domain/procurement"
)

// TransactionScope provides transactional access to the repositories the
// receiving reconciler touches. All repository operations inside Execute share
// one database transaction and commit or roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories scoped to the
// current transaction. Receiving spans two aggregates on purpose: a session
// line contribution and its resulting lot must land together or not at all.
type TransactionalRepositories interface {
	// Orders returns the purchase order repository scoped to the current transaction
	Orders() procurement.PurchaseOrderRepository
	// Sessions returns the receiving session repository scoped to the current transaction
	Sessions() procurement.ReceivingSessionRepository
	// Lots returns the receiving lot repository scoped to the current transaction
	Lots() inventory.ReceivingLotRepository
}

// NoOpTransactionScope runs the scoped function without a real transaction.
// Useful in tests where the repositories are in-memory fakes.
type NoOpTransactionScope struct {
	orderRepo   procurement.PurchaseOrderRepository
	sessionRepo procurement.ReceivingSessionRepository
	lotRepo     inventory.ReceivingLotRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	orderRepo procurement.PurchaseOrderRepository,
	sessionRepo procurement.ReceivingSessionRepository,
	lotRepo inventory.ReceivingLotRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:   orderRepo,
		sessionRepo: sessionRepo,
		lotRepo:     lotRepo,
	}
}

// Execute runs fn against the wrapped repositories without transaction boundaries
func (s *NoOpTransactionScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Orders returns the purchase order repository
func (s *NoOpTransactionScope) Orders() procurement.PurchaseOrderRepository {
	return s.orderRepo
}

// Sessions returns the receiving session repository
func (s *NoOpTransactionScope) Sessions() procurement.ReceivingSessionRepository {
	return s.sessionRepo
}

// Lots returns the receiving lot repository
func (s *NoOpTransactionScope) Lots() inventory.ReceivingLotRepository {
	return s.lotRepo
}
