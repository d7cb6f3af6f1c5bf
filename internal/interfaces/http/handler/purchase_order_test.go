package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appprocurement "github.com/labstock/backend/internal/application/procurement"
	"github.com/labstock/backend/internal/domain/procurement"
	"github.com/labstock/backend/internal/domain/shared"
	"github.com/labstock/backend/internal/domain/shared/valueobject"
)

// MockPurchaseOrderRepository implements procurement.PurchaseOrderRepository for testing
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

func setupPurchaseOrderRouter(repo *MockPurchaseOrderRepository) *gin.Engine {
	service := appprocurement.NewPurchaseOrderService(repo, valueobject.NewMoneyUSD(decimal.NewFromInt(5000)))
	router := gin.New()
	NewPurchaseOrderHandler(service).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func newDraftOrder(t *testing.T) *procurement.PurchaseOrder {
	t.Helper()
	order, err := procurement.NewPurchaseOrder("PO-2026-00001", uuid.New(), "Apex Lab Supply", uuid.New(), nil)
	require.NoError(t, err)
	order.ClearDomainEvents()
	return order
}

func TestPurchaseOrderHandler_Create(t *testing.T) {
	t.Run("creates draft order", func(t *testing.T) {
		repo := new(MockPurchaseOrderRepository)
		router := setupPurchaseOrderRouter(repo)

		repo.On("GeneratePONumber", mock.Anything).Return("PO-2026-00001", nil)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*procurement.PurchaseOrder")).Return(nil)

		body, _ := json.Marshal(map[string]any{
			"supplier_id":          uuid.New().String(),
			"supplier_name":        "Apex Lab Supply",
			"delivery_location_id": uuid.New().String(),
			"items": []map[string]any{
				{
					"material_id":   uuid.New().String(),
					"material_name": "Acetone HPLC Grade",
					"material_code": "ACE-HPLC",
					"unit_id":       uuid.New().String(),
					"unit":          "case",
					"quantity":      "10",
					"unit_cost":     "42.50",
				},
			},
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/purchase-orders", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "PO-2026-00001")
		assert.Contains(t, w.Body.String(), `"status":"DRAFT"`)
		repo.AssertExpectations(t)
	})

	t.Run("rejects missing supplier name with field details", func(t *testing.T) {
		repo := new(MockPurchaseOrderRepository)
		router := setupPurchaseOrderRouter(repo)

		body, _ := json.Marshal(map[string]any{
			"supplier_id":          uuid.New().String(),
			"delivery_location_id": uuid.New().String(),
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/purchase-orders", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), shared.CodeValidation)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestPurchaseOrderHandler_GetByID(t *testing.T) {
	t.Run("returns order", func(t *testing.T) {
		repo := new(MockPurchaseOrderRepository)
		router := setupPurchaseOrderRouter(repo)

		order := newDraftOrder(t)
		repo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/purchase-orders/"+order.ID.String(), nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "PO-2026-00001")
		repo.AssertExpectations(t)
	})

	t.Run("returns 404 for missing order", func(t *testing.T) {
		repo := new(MockPurchaseOrderRepository)
		router := setupPurchaseOrderRouter(repo)

		orderID := uuid.New()
		repo.On("FindByID", mock.Anything, orderID).Return(nil, shared.ErrNotFound)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/purchase-orders/"+orderID.String(), nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), shared.CodeNotFound)
	})

	t.Run("returns 400 for malformed id", func(t *testing.T) {
		repo := new(MockPurchaseOrderRepository)
		router := setupPurchaseOrderRouter(repo)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/purchase-orders/not-a-uuid", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPurchaseOrderHandler_SubmitForApproval(t *testing.T) {
	t.Run("returns 409 for empty draft", func(t *testing.T) {
		repo := new(MockPurchaseOrderRepository)
		router := setupPurchaseOrderRouter(repo)

		order := newDraftOrder(t)
		repo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/purchase-orders/"+order.ID.String()+"/submit", nil))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), shared.CodeInvalidState)
	})
}
