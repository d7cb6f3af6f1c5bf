package inventory

import (
	"context"

	"github.com/labstock/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to the lot conversion
// repositories. All repository operations inside Execute share one database
// transaction and commit or roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories scoped to the
// current transaction. A conversion mutates a lot (or two) and appends an
// audit entry; those writes must land together.
type TransactionalRepositories interface {
	// Lots returns the receiving lot repository scoped to the current transaction
	Lots() inventory.ReceivingLotRepository
	// ConversionLogs returns the conversion log repository scoped to the current transaction
	ConversionLogs() inventory.ConversionLogRepository
	// DisposalLogs returns the disposal log repository scoped to the current transaction
	DisposalLogs() inventory.DisposalLogRepository
}

// NoOpTransactionScope runs the scoped function without a real transaction.
// Useful in tests where the repositories are in-memory fakes.
type NoOpTransactionScope struct {
	lotRepo        inventory.ReceivingLotRepository
	conversionRepo inventory.ConversionLogRepository
	disposalRepo   inventory.DisposalLogRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	lotRepo inventory.ReceivingLotRepository,
	conversionRepo inventory.ConversionLogRepository,
	disposalRepo inventory.DisposalLogRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		lotRepo:        lotRepo,
		conversionRepo: conversionRepo,
		disposalRepo:   disposalRepo,
	}
}

// Execute runs fn against the wrapped repositories without transaction boundaries
func (s *NoOpTransactionScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Lots returns the receiving lot repository
func (s *NoOpTransactionScope) Lots() inventory.ReceivingLotRepository {
	return s.lotRepo
}

// ConversionLogs returns the conversion log repository
func (s *NoOpTransactionScope) ConversionLogs() inventory.ConversionLogRepository {
	return s.conversionRepo
}

// DisposalLogs returns the disposal log repository
func (s *NoOpTransactionScope) DisposalLogs() inventory.DisposalLogRepository {
	return s.disposalRepo
}
