package procurement

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/labstock/backend/internal/domain/inventory"
	"github.com/labstock/backend/internal/domain/procurement"
	"github.com/labstock/backend/internal/domain/shared"
)

// MockPurchaseOrderRepository is a mock implementation of PurchaseOrderRepository
type MockPurchaseOrderRepository struct {
	mock.Mock
}

func (m *MockPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindByPONumber(ctx context.Context, poNumber string) (*procurement.PurchaseOrder, error) {
	args := m.Called(ctx, poNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]procurement.PurchaseOrder, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]procurement.PurchaseOrder, error) {
	args := m.Called(ctx, supplierID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindByStatus(ctx context.Context, status procurement.PurchaseOrderStatus, filter shared.Filter) ([]procurement.PurchaseOrder, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindAwaitingDelivery(ctx context.Context, filter shared.Filter) ([]procurement.PurchaseOrder, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) Save(ctx context.Context, order *procurement.PurchaseOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) SaveWithLock(ctx context.Context, order *procurement.PurchaseOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) IncrementLineReceived(ctx context.Context, lineItemID uuid.UUID, quantity decimal.Decimal) error {
	args := m.Called(ctx, lineItemID, quantity)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPurchaseOrderRepository) CountByStatus(ctx context.Context, status procurement.PurchaseOrderStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPurchaseOrderRepository) ExistsByPONumber(ctx context.Context, poNumber string) (bool, error) {
	args := m.Called(ctx, poNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockPurchaseOrderRepository) GeneratePONumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockReceivingSessionRepository is a mock implementation of ReceivingSessionRepository
type MockReceivingSessionRepository struct {
	mock.Mock
}

func (m *MockReceivingSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.ReceivingSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.ReceivingSession), args.Error(1)
}

func (m *MockReceivingSessionRepository) FindBySessionNumber(ctx context.Context, sessionNumber string) (*procurement.ReceivingSession, error) {
	args := m.Called(ctx, sessionNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.ReceivingSession), args.Error(1)
}

func (m *MockReceivingSessionRepository) FindByOrder(ctx context.Context, orderID uuid.UUID, filter shared.Filter) ([]procurement.ReceivingSession, error) {
	args := m.Called(ctx, orderID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.ReceivingSession), args.Error(1)
}

func (m *MockReceivingSessionRepository) FindInProgressByOrder(ctx context.Context, orderID uuid.UUID) ([]procurement.ReceivingSession, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.ReceivingSession), args.Error(1)
}

func (m *MockReceivingSessionRepository) Save(ctx context.Context, session *procurement.ReceivingSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockReceivingSessionRepository) SaveWithLock(ctx context.Context, session *procurement.ReceivingSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockReceivingSessionRepository) AddLine(ctx context.Context, line *procurement.ReceivingSessionLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockReceivingSessionRepository) DeleteLines(ctx context.Context, sessionID uuid.UUID) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockReceivingSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReceivingSessionRepository) CountByOrder(ctx context.Context, orderID uuid.UUID) (int64, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReceivingSessionRepository) GenerateSessionNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockReceivingLotRepository is a mock implementation of ReceivingLotRepository
type MockReceivingLotRepository struct {
	mock.Mock
}

func (m *MockReceivingLotRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.ReceivingLot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.ReceivingLot), args.Error(1)
}

func (m *MockReceivingLotRepository) FindByLotNumber(ctx context.Context, lotNumber string) (*inventory.ReceivingLot, error) {
	args := m.Called(ctx, lotNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.ReceivingLot), args.Error(1)
}

func (m *MockReceivingLotRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.ReceivingLot, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.ReceivingLot), args.Error(1)
}

func (m *MockReceivingLotRepository) FindByMaterial(ctx context.Context, materialID uuid.UUID, filter shared.Filter) ([]inventory.ReceivingLot, error) {
	args := m.Called(ctx, materialID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.ReceivingLot), args.Error(1)
}

func (m *MockReceivingLotRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]inventory.ReceivingLot, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.ReceivingLot), args.Error(1)
}

func (m *MockReceivingLotRepository) FindChildren(ctx context.Context, parentLotID uuid.UUID) ([]inventory.ReceivingLot, error) {
	args := m.Called(ctx, parentLotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.ReceivingLot), args.Error(1)
}

func (m *MockReceivingLotRepository) Save(ctx context.Context, lot *inventory.ReceivingLot) error {
	args := m.Called(ctx, lot)
	return args.Error(0)
}

func (m *MockReceivingLotRepository) SaveWithLock(ctx context.Context, lot *inventory.ReceivingLot) error {
	args := m.Called(ctx, lot)
	return args.Error(0)
}

func (m *MockReceivingLotRepository) IncrementSealedQuantity(ctx context.Context, lotID uuid.UUID, quantity decimal.Decimal) error {
	args := m.Called(ctx, lotID, quantity)
	return args.Error(0)
}

func (m *MockReceivingLotRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReceivingLotRepository) GenerateLotNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
