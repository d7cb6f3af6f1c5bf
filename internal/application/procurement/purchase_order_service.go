package procurement

import (
	"context"

	"github.com/google/uuid"

	"github.com/labstock/backend/internal/domain/procurement"
	"github.com/labstock/backend/internal/domain/shared"
	"github.com/labstock/backend/internal/domain/shared/valueobject"
)

// PurchaseOrderService handles purchase order business operations. The
// approval threshold is injected configuration, not a constant: orders whose
// total reaches it must pass through approval before they can be sent.
type PurchaseOrderService struct {
	orderRepo         procurement.PurchaseOrderRepository
	approvalThreshold valueobject.Money
	eventPublisher    shared.EventPublisher
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(orderRepo procurement.PurchaseOrderRepository, approvalThreshold valueobject.Money) *PurchaseOrderService {
	return &PurchaseOrderService{
		orderRepo:         orderRepo,
		approvalThreshold: approvalThreshold,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *PurchaseOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// publishEvents publishes collected domain events after a successful save.
// Event delivery is best-effort; failures do not fail the operation.
func (s *PurchaseOrderService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}

// drainEvents collects and clears pending domain events from an aggregate
func drainEvents(agg shared.AggregateRoot) []shared.DomainEvent {
	events := agg.GetDomainEvents()
	agg.ClearDomainEvents()
	return events
}

// Create creates a new purchase order in DRAFT status
func (s *PurchaseOrderService) Create(ctx context.Context, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	poNumber, err := s.orderRepo.GeneratePONumber(ctx)
	if err != nil {
		return nil, err
	}

	order, err := procurement.NewPurchaseOrder(poNumber, req.SupplierID, req.SupplierName, req.DeliveryLocationID, req.ExpectedDeliveryDate)
	if err != nil {
		return nil, err
	}

	for _, item := range req.Items {
		unitCost := valueobject.NewMoneyUSD(item.UnitCost)
		if _, err := order.AddItem(item.MaterialID, item.MaterialName, item.MaterialCode, item.UnitID, item.Unit, item.Quantity, unitCost); err != nil {
			return nil, err
		}
	}

	if req.Notes != "" || req.InternalNotes != "" {
		order.SetNotes(req.Notes, req.InternalNotes)
	}

	if err := order.EvaluateApprovalRequirement(s.approvalThreshold); err != nil {
		return nil, err
	}

	events := drainEvents(order)
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, events)

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// GetByID retrieves a purchase order by ID
func (s *PurchaseOrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// GetByPONumber retrieves a purchase order by its PO number
func (s *PurchaseOrderService) GetByPONumber(ctx context.Context, poNumber string) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByPONumber(ctx, poNumber)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// List retrieves purchase orders with filtering and pagination
func (s *PurchaseOrderService) List(ctx context.Context, filter PurchaseOrderListFilter) ([]PurchaseOrderListItemResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	var (
		orders []procurement.PurchaseOrder
		err    error
	)
	switch {
	case filter.SupplierID != nil:
		orders, err = s.orderRepo.FindBySupplier(ctx, *filter.SupplierID, domainFilter)
	case filter.Status != "":
		status := procurement.PurchaseOrderStatus(filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError(shared.CodeValidation, "Invalid purchase order status filter")
		}
		orders, err = s.orderRepo.FindByStatus(ctx, status, domainFilter)
	default:
		orders, err = s.orderRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	items := make([]PurchaseOrderListItemResponse, len(orders))
	for i := range orders {
		items[i] = ToPurchaseOrderListItemResponse(&orders[i])
	}
	return items, total, nil
}

// ListAwaitingDelivery lists orders the receiving dock can act on
func (s *PurchaseOrderService) ListAwaitingDelivery(ctx context.Context, filter PurchaseOrderListFilter) ([]PurchaseOrderListItemResponse, int64, error) {
	domainFilter := toDomainFilter(filter)
	orders, err := s.orderRepo.FindAwaitingDelivery(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	items := make([]PurchaseOrderListItemResponse, len(orders))
	for i := range orders {
		items[i] = ToPurchaseOrderListItemResponse(&orders[i])
	}
	return items, int64(len(items)), nil
}

// Update updates mutable fields of a draft purchase order
func (s *PurchaseOrderService) Update(ctx context.Context, orderID uuid.UUID, req UpdatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	loadedVersion := order.GetVersion()

	if req.Tax != nil || req.Shipping != nil {
		tax := order.Tax
		shipping := order.Shipping
		if req.Tax != nil {
			tax = *req.Tax
		}
		if req.Shipping != nil {
			shipping = *req.Shipping
		}
		if err := order.SetTaxAndShipping(tax, shipping); err != nil {
			return nil, err
		}
	}

	if req.ExpectedDeliveryDate != nil {
		if err := order.SetExpectedDeliveryDate(req.ExpectedDeliveryDate); err != nil {
			return nil, err
		}
	}

	if req.Notes != nil || req.InternalNotes != nil {
		notes := order.Notes
		internal := order.InternalNotes
		if req.Notes != nil {
			notes = *req.Notes
		}
		if req.InternalNotes != nil {
			internal = *req.InternalNotes
		}
		order.SetNotes(notes, internal)
	}

	if order.IsDraft() {
		if err := order.EvaluateApprovalRequirement(s.approvalThreshold); err != nil {
			return nil, err
		}
	}

	// A request that changed nothing skips the guarded save: the version
	// check would otherwise report a conflict that never happened.
	if order.GetVersion() > loadedVersion {
		if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
			return nil, err
		}
	}

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// AddItem adds a line item to a draft order
func (s *PurchaseOrderService) AddItem(ctx context.Context, orderID uuid.UUID, req AddPurchaseOrderItemRequest) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	unitCost := valueobject.NewMoneyUSD(req.UnitCost)
	if _, err := order.AddItem(req.MaterialID, req.MaterialName, req.MaterialCode, req.UnitID, req.Unit, req.Quantity, unitCost); err != nil {
		return nil, err
	}

	if err := order.EvaluateApprovalRequirement(s.approvalThreshold); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// UpdateItem updates quantity or cost of a draft order line item
func (s *PurchaseOrderService) UpdateItem(ctx context.Context, orderID, itemID uuid.UUID, req UpdatePurchaseOrderItemRequest) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if req.Quantity != nil {
		if err := order.UpdateItemQuantity(itemID, *req.Quantity); err != nil {
			return nil, err
		}
	}
	if req.UnitCost != nil {
		if err := order.UpdateItemCost(itemID, valueobject.NewMoneyUSD(*req.UnitCost)); err != nil {
			return nil, err
		}
	}

	if err := order.EvaluateApprovalRequirement(s.approvalThreshold); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// RemoveItem removes a line item from a draft order
func (s *PurchaseOrderService) RemoveItem(ctx context.Context, orderID, itemID uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.RemoveItem(itemID); err != nil {
		return nil, err
	}

	if err := order.EvaluateApprovalRequirement(s.approvalThreshold); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// SubmitForApproval routes a draft order into the approval queue
func (s *PurchaseOrderService) SubmitForApproval(ctx context.Context, orderID uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.SubmitForApproval(); err != nil {
		return nil, err
	}

	events := drainEvents(order)
	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, events)

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// Approve approves a pending order
func (s *PurchaseOrderService) Approve(ctx context.Context, orderID uuid.UUID, req ApprovePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.Approve(req.ApproverID, req.Notes); err != nil {
		return nil, err
	}

	events := drainEvents(order)
	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, events)

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// Reject sends a pending order back to draft with reviewer notes
func (s *PurchaseOrderService) Reject(ctx context.Context, orderID uuid.UUID, req RejectPurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.Reject(req.Notes); err != nil {
		return nil, err
	}

	events := drainEvents(order)
	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, events)

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// Send marks the order as sent to the supplier
func (s *PurchaseOrderService) Send(ctx context.Context, orderID uuid.UUID, req SendPurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.SendToSupplier(req.SenderID); err != nil {
		return nil, err
	}

	events := drainEvents(order)
	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, events)

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// Cancel cancels the order
func (s *PurchaseOrderService) Cancel(ctx context.Context, orderID uuid.UUID, req CancelPurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.Cancel(req.Reason); err != nil {
		return nil, err
	}

	events := drainEvents(order)
	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, events)

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// Delete deletes a draft purchase order
func (s *PurchaseOrderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}

	if !order.CanDelete() {
		return shared.NewDomainError(shared.CodeInvalidState, "Only draft orders can be deleted")
	}

	return s.orderRepo.Delete(ctx, orderID)
}

// GetStatusSummary returns order counts per status
func (s *PurchaseOrderService) GetStatusSummary(ctx context.Context) (*PurchaseOrderStatusSummary, error) {
	summary := &PurchaseOrderStatusSummary{}

	counts := []struct {
		status procurement.PurchaseOrderStatus
		target *int64
	}{
		{procurement.PurchaseOrderStatusDraft, &summary.Draft},
		{procurement.PurchaseOrderStatusPendingApproval, &summary.PendingApproval},
		{procurement.PurchaseOrderStatusApproved, &summary.Approved},
		{procurement.PurchaseOrderStatusSent, &summary.Sent},
		{procurement.PurchaseOrderStatusPartiallyReceived, &summary.PartiallyReceived},
		{procurement.PurchaseOrderStatusReceived, &summary.Received},
		{procurement.PurchaseOrderStatusCancelled, &summary.Cancelled},
	}

	for _, c := range counts {
		count, err := s.orderRepo.CountByStatus(ctx, c.status)
		if err != nil {
			return nil, err
		}
		*c.target = count
	}

	return summary, nil
}

// toDomainFilter converts list query parameters to a repository filter
func toDomainFilter(filter PurchaseOrderListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 && filter.PageSize <= 100 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	return domainFilter
}
