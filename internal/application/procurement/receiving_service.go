package procurement

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/labstock/backend/internal/domain/inventory"
	"github.com/labstock/backend/internal/domain/procurement"
	"github.com/labstock/backend/internal/domain/shared"
)

// ReceivingService is the receiving reconciler. It owns the derived
// fulfillment statuses of purchase orders: every receipt, completion, and
// cancellation flows through it, and it recomputes SENT, PARTIALLY_RECEIVED,
// and RECEIVED from line-item quantities. Cross-aggregate writes run inside a
// transaction scope so a session line and the lot it produced land together.
type ReceivingService struct {
	txScope                 TransactionScope
	sessionRepo             procurement.ReceivingSessionRepository
	orderRepo               procurement.PurchaseOrderRepository
	defaultConversionFactor decimal.Decimal
	eventPublisher          shared.EventPublisher
}

// NewReceivingService creates a new ReceivingService
func NewReceivingService(txScope TransactionScope, sessionRepo procurement.ReceivingSessionRepository, orderRepo procurement.PurchaseOrderRepository, defaultConversionFactor decimal.Decimal) *ReceivingService {
	return &ReceivingService{
		txScope:                 txScope,
		sessionRepo:             sessionRepo,
		orderRepo:               orderRepo,
		defaultConversionFactor: defaultConversionFactor,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ReceivingService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *ReceivingService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}

// StartSession opens a receiving session against a purchase order. Fails with
// an INELIGIBLE_PO error when the order is not in a receivable status.
func (s *ReceivingService) StartSession(ctx context.Context, req StartSessionRequest) (*ReceivingSessionResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanReceive() {
		return nil, shared.NewDomainError(shared.CodeIneligiblePO, "Purchase order "+order.PONumber+" is not receivable in "+order.Status.String()+" status")
	}

	sessionNumber, err := s.sessionRepo.GenerateSessionNumber(ctx)
	if err != nil {
		return nil, err
	}

	session, err := procurement.NewReceivingSession(sessionNumber, req.OrderID, req.LocationID, req.ReceivedBy, req.Notes)
	if err != nil {
		return nil, err
	}

	events := drainEvents(session)
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, events)

	response := ToReceivingSessionResponse(session)
	return &response, nil
}

// GetSession retrieves a receiving session by ID
func (s *ReceivingService) GetSession(ctx context.Context, sessionID uuid.UUID) (*ReceivingSessionResponse, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	response := ToReceivingSessionResponse(session)
	return &response, nil
}

// ListSessionsByOrder lists all sessions recorded against a purchase order
func (s *ReceivingService) ListSessionsByOrder(ctx context.Context, orderID uuid.UUID) ([]ReceivingSessionResponse, error) {
	sessions, err := s.sessionRepo.FindByOrder(ctx, orderID, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}

	responses := make([]ReceivingSessionResponse, len(sessions))
	for i := range sessions {
		responses[i] = ToReceivingSessionResponse(&sessions[i])
	}
	return responses, nil
}

// RecordLineReceipt records a physical receipt of goods against one order
// line. The line-item increment, the session line, and the resulting lot are
// written in a single transaction: a crash between them must never leave an
// orphaned lot or an unaccounted quantity. Over-receipt is permitted and
// never clamped.
func (s *ReceivingService) RecordLineReceipt(ctx context.Context, sessionID uuid.UUID, req RecordLineReceiptRequest) (*LineReceiptResponse, error) {
	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError(shared.CodeValidation, "Receive quantity must be positive")
	}

	var result *LineReceiptResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		session, err := repos.Sessions().FindByID(ctx, sessionID)
		if err != nil {
			return err
		}
		if !session.IsInProgress() {
			return shared.NewDomainError(shared.CodeInvalidState, "Cannot record receipts in "+session.Status.String()+" session")
		}

		order, err := repos.Orders().FindByID(ctx, session.OrderID)
		if err != nil {
			return err
		}
		if !order.Status.CanReceive() {
			return shared.NewDomainError(shared.CodeIneligiblePO, "Purchase order "+order.PONumber+" is not receivable in "+order.Status.String()+" status")
		}

		line := order.GetItem(req.OrderLineItemID)
		if line == nil {
			return shared.NewDomainError(shared.CodeNotFound, "Order line item not found")
		}

		lot, err := s.createLotForReceipt(ctx, repos, session, order, line, req)
		if err != nil {
			return err
		}

		sessionLine, err := session.AddLine(line.ID, line.MaterialID, lot.ID, req.Quantity, req.Notes)
		if err != nil {
			return err
		}
		if err := repos.Sessions().AddLine(ctx, sessionLine); err != nil {
			return err
		}

		// Atomic increment; the updated value is re-read for the response.
		if err := repos.Orders().IncrementLineReceived(ctx, line.ID, req.Quantity); err != nil {
			return err
		}
		if err := line.AddReceivedQuantity(req.Quantity); err != nil {
			return err
		}

		result = &LineReceiptResponse{
			Line: ToPurchaseOrderItemResponse(line),
			Lot: ReceiptLotResponse{
				ID:              lot.ID,
				LotNumber:       lot.LotNumber,
				MaterialID:      lot.MaterialID,
				Quantity:        lot.QuantityReceived,
				ContainerStatus: lot.ContainerStatus.String(),
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// createLotForReceipt builds and saves the lot produced by one receipt line.
// The lot lands at the session's dock location unless the line names one.
func (s *ReceivingService) createLotForReceipt(ctx context.Context, repos TransactionalRepositories, session *procurement.ReceivingSession, order *procurement.PurchaseOrder, line *procurement.PurchaseOrderLineItem, req RecordLineReceiptRequest) (*inventory.ReceivingLot, error) {
	lotNumber, err := repos.Lots().GenerateLotNumber(ctx)
	if err != nil {
		return nil, err
	}

	locationID := session.LocationID
	if req.LocationID != nil {
		locationID = *req.LocationID
	}

	conversionFactor := s.defaultConversionFactor
	if req.ConversionFactor != nil {
		conversionFactor = *req.ConversionFactor
	}

	status := inventory.ContainerStatusOpen
	if req.Sealed {
		status = inventory.ContainerStatusSealed
	}

	orderID := order.ID
	lot, err := inventory.NewReceivingLot(lotNumber, line.MaterialID, line.UnitID, locationID,
		req.Quantity, line.UnitCost, conversionFactor, status, &orderID, req.ExpiryDate)
	if err != nil {
		return nil, err
	}

	lot.ClearDomainEvents()
	if err := repos.Lots().Save(ctx, lot); err != nil {
		return nil, err
	}
	return lot, nil
}

// CompleteSession seals an in-progress session and recomputes the purchase
// order's derived fulfillment status from its line quantities.
func (s *ReceivingService) CompleteSession(ctx context.Context, sessionID uuid.UUID) (*CompleteSessionResponse, error) {
	var (
		result *CompleteSessionResponse
		events []shared.DomainEvent
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		session, err := repos.Sessions().FindByID(ctx, sessionID)
		if err != nil {
			return err
		}

		if err := session.Complete(); err != nil {
			return err
		}

		order, err := repos.Orders().FindByID(ctx, session.OrderID)
		if err != nil {
			return err
		}
		changed, err := order.RecalculateFulfillmentStatus()
		if err != nil {
			return err
		}

		events = append(events, drainEvents(session)...)
		events = append(events, drainEvents(order)...)

		if err := repos.Sessions().SaveWithLock(ctx, session); err != nil {
			return err
		}

		// An unchanged derived status leaves the order version where it was,
		// e.g. an over-receipt session on an already RECEIVED order. The
		// guarded save is skipped so the untouched version is not mistaken
		// for a concurrent modification.
		if changed {
			if err := repos.Orders().SaveWithLock(ctx, order); err != nil {
				return err
			}
		}

		result = &CompleteSessionResponse{
			Session:     ToReceivingSessionResponse(session),
			OrderStatus: order.Status.String(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)
	return result, nil
}

// CancelSession aborts an in-progress session and reverses every contribution
// it made: line-item quantities are decremented, the lots it created are
// zeroed (never deleted), and the session is removed. The purchase order ends
// up exactly where it was before the session started, including its derived
// status.
func (s *ReceivingService) CancelSession(ctx context.Context, sessionID uuid.UUID) (*PurchaseOrderResponse, error) {
	var (
		result *PurchaseOrderResponse
		events []shared.DomainEvent
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		session, err := repos.Sessions().FindByID(ctx, sessionID)
		if err != nil {
			return err
		}

		if err := session.Cancel(); err != nil {
			return err
		}

		order, err := repos.Orders().FindByID(ctx, session.OrderID)
		if err != nil {
			return err
		}

		for i := range session.Lines {
			sessionLine := &session.Lines[i]

			if err := repos.Orders().IncrementLineReceived(ctx, sessionLine.OrderLineItemID, sessionLine.QuantityReceived.Neg()); err != nil {
				return err
			}
			if line := order.GetItem(sessionLine.OrderLineItemID); line != nil {
				if err := line.RevertReceivedQuantity(sessionLine.QuantityReceived); err != nil {
					return err
				}
			}

			lot, err := repos.Lots().FindByID(ctx, sessionLine.LotID)
			if err != nil {
				return err
			}
			lot.Zero()
			if err := repos.Lots().SaveWithLock(ctx, lot); err != nil {
				return err
			}
		}

		if order.Status.CanReceive() {
			changed, err := order.RecalculateFulfillmentStatus()
			if err != nil {
				return err
			}
			if changed {
				if err := repos.Orders().SaveWithLock(ctx, order); err != nil {
					return err
				}
			}
		}

		events = append(events, drainEvents(session)...)

		if err := repos.Sessions().Delete(ctx, session.ID); err != nil {
			return err
		}

		result = new(PurchaseOrderResponse)
		*result = ToPurchaseOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)
	return result, nil
}
