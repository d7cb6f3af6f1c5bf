package procurement

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/labstock/backend/internal/domain/shared"
)

// PurchaseOrderRepository defines the interface for purchase order persistence
type PurchaseOrderRepository interface {
	// FindByID finds a purchase order with its line items
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)

	// FindByPONumber finds a purchase order by its PO number
	FindByPONumber(ctx context.Context, poNumber string) (*PurchaseOrder, error)

	// FindAll finds purchase orders with filtering and pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]PurchaseOrder, error)

	// FindBySupplier finds purchase orders for a supplier
	FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]PurchaseOrder, error)

	// FindByStatus finds purchase orders in the given status
	FindByStatus(ctx context.Context, status PurchaseOrderStatus, filter shared.Filter) ([]PurchaseOrder, error)

	// FindAwaitingDelivery finds orders the receiving dock can act on
	// (SENT or PARTIALLY_RECEIVED)
	FindAwaitingDelivery(ctx context.Context, filter shared.Filter) ([]PurchaseOrder, error)

	// Save creates or updates a purchase order and its line items
	Save(ctx context.Context, order *PurchaseOrder) error

	// SaveWithLock saves with optimistic locking. Returns a STALE_STATE domain
	// error when the stored version no longer matches.
	SaveWithLock(ctx context.Context, order *PurchaseOrder) error

	// IncrementLineReceived atomically adds quantity to a line item's received
	// quantity. Negative quantities revert prior receipts and are guarded
	// against driving the stored value below zero.
	IncrementLineReceived(ctx context.Context, lineItemID uuid.UUID, quantity decimal.Decimal) error

	// Delete deletes a purchase order. Callers enforce the draft-only rule.
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts purchase orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByStatus counts purchase orders in the given status
	CountByStatus(ctx context.Context, status PurchaseOrderStatus) (int64, error)

	// ExistsByPONumber checks if a PO number is already taken
	ExistsByPONumber(ctx context.Context, poNumber string) (bool, error)

	// GeneratePONumber generates the next unique PO number (PO-YYYY-NNNNN)
	GeneratePONumber(ctx context.Context) (string, error)
}

// ReceivingSessionRepository defines the interface for receiving session persistence
type ReceivingSessionRepository interface {
	// FindByID finds a receiving session with its lines
	FindByID(ctx context.Context, id uuid.UUID) (*ReceivingSession, error)

	// FindBySessionNumber finds a session by its RCV number
	FindBySessionNumber(ctx context.Context, sessionNumber string) (*ReceivingSession, error)

	// FindByOrder finds all sessions recorded against a purchase order
	FindByOrder(ctx context.Context, orderID uuid.UUID, filter shared.Filter) ([]ReceivingSession, error)

	// FindInProgressByOrder finds the in-progress sessions for an order
	FindInProgressByOrder(ctx context.Context, orderID uuid.UUID) ([]ReceivingSession, error)

	// Save creates or updates a receiving session and its lines
	Save(ctx context.Context, session *ReceivingSession) error

	// SaveWithLock saves with optimistic locking. Returns a STALE_STATE domain
	// error when the stored version no longer matches.
	SaveWithLock(ctx context.Context, session *ReceivingSession) error

	// AddLine appends a receipt line to a session
	AddLine(ctx context.Context, line *ReceivingSessionLine) error

	// DeleteLines removes all receipt lines of a session. Used only during
	// session cancellation after the contributions have been reverted.
	DeleteLines(ctx context.Context, sessionID uuid.UUID) error

	// Delete removes a cancelled session and its lines
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByOrder counts sessions recorded against a purchase order
	CountByOrder(ctx context.Context, orderID uuid.UUID) (int64, error)

	// GenerateSessionNumber generates the next unique session number (RCV-YYYY-NNNNN)
	GenerateSessionNumber(ctx context.Context) (string, error)
}
