package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/labstock/backend/internal/domain/inventory"
	"github.com/labstock/backend/internal/domain/shared"
)

// LotConversionService moves physical inventory between sealed and open
// container representations, or retires it. Every conversion leaves an
// append-only audit entry; quantity is never created or destroyed silently.
type LotConversionService struct {
	txScope        TransactionScope
	lotRepo        inventory.ReceivingLotRepository
	conversionRepo inventory.ConversionLogRepository
	disposalRepo   inventory.DisposalLogRepository
	eventPublisher shared.EventPublisher
}

// NewLotConversionService creates a new LotConversionService
func NewLotConversionService(txScope TransactionScope, lotRepo inventory.ReceivingLotRepository, conversionRepo inventory.ConversionLogRepository, disposalRepo inventory.DisposalLogRepository) *LotConversionService {
	return &LotConversionService{
		txScope:        txScope,
		lotRepo:        lotRepo,
		conversionRepo: conversionRepo,
		disposalRepo:   disposalRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *LotConversionService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *LotConversionService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}

// GetLot retrieves a lot by ID
func (s *LotConversionService) GetLot(ctx context.Context, lotID uuid.UUID) (*ReceivingLotResponse, error) {
	lot, err := s.lotRepo.FindByID(ctx, lotID)
	if err != nil {
		return nil, err
	}
	response := ToReceivingLotResponse(lot)
	return &response, nil
}

// ListLots lists lots with filtering and pagination
func (s *LotConversionService) ListLots(ctx context.Context, filter LotListFilter) ([]ReceivingLotResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 && filter.PageSize <= 100 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Status != "" {
		status := inventory.ContainerStatus(filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError(shared.CodeValidation, "Invalid container status filter")
		}
		domainFilter.Filters["container_status"] = filter.Status
	}

	var (
		lots []inventory.ReceivingLot
		err  error
	)
	if filter.MaterialID != nil {
		lots, err = s.lotRepo.FindByMaterial(ctx, *filter.MaterialID, domainFilter)
	} else {
		lots, err = s.lotRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.lotRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ReceivingLotResponse, len(lots))
	for i := range lots {
		responses[i] = ToReceivingLotResponse(&lots[i])
	}
	return responses, total, nil
}

// GetLotHistory returns a lot together with its full audit trail
func (s *LotConversionService) GetLotHistory(ctx context.Context, lotID uuid.UUID) (*LotHistoryResponse, error) {
	lot, err := s.lotRepo.FindByID(ctx, lotID)
	if err != nil {
		return nil, err
	}

	conversions, err := s.conversionRepo.FindByLot(ctx, lotID)
	if err != nil {
		return nil, err
	}
	disposals, err := s.disposalRepo.FindByLot(ctx, lotID)
	if err != nil {
		return nil, err
	}

	history := &LotHistoryResponse{
		Lot:         ToReceivingLotResponse(lot),
		Conversions: make([]ConversionLogEntryResponse, len(conversions)),
		Disposals:   make([]DisposalLogEntryResponse, len(disposals)),
	}
	for i := range conversions {
		history.Conversions[i] = ToConversionLogEntryResponse(&conversions[i])
	}
	for i := range disposals {
		history.Disposals[i] = ToDisposalLogEntryResponse(&disposals[i])
	}
	return history, nil
}

// OpenLot splits one sealed unit off a sealed lot into a new open container,
// recording the conversion in the audit trail.
func (s *LotConversionService) OpenLot(ctx context.Context, lotID uuid.UUID, req OpenLotRequest) (*ReceivingLotResponse, error) {
	var (
		result *ReceivingLotResponse
		events []shared.DomainEvent
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		parent, err := repos.Lots().FindByID(ctx, lotID)
		if err != nil {
			return err
		}

		childNumber, err := repos.Lots().GenerateLotNumber(ctx)
		if err != nil {
			return err
		}

		locationID := parent.LocationID
		if req.LocationID != nil {
			locationID = *req.LocationID
		}
		baseUnitID := parent.UnitID
		if req.BaseUnitID != nil {
			baseUnitID = *req.BaseUnitID
		}

		child, err := parent.Open(childNumber, locationID, baseUnitID)
		if err != nil {
			return err
		}

		entry, err := inventory.NewConversionLogEntry(parent.ID, decimal.NewFromInt(1), parent.UnitID,
			child.ID, child.QuantityReceived, child.UnitID,
			inventory.ConversionTypeOpen, "OPEN_CONTAINER", req.Notes, req.PerformedBy)
		if err != nil {
			return err
		}

		events = append(events, drainEvents(parent)...)

		if err := repos.Lots().SaveWithLock(ctx, parent); err != nil {
			return err
		}
		if err := repos.Lots().Save(ctx, child); err != nil {
			return err
		}
		if err := repos.ConversionLogs().Append(ctx, entry); err != nil {
			return err
		}

		result = new(ReceivingLotResponse)
		*result = ToReceivingLotResponse(child)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)
	return result, nil
}

// Reassemble converts a full open container back into one sealed unit on its
// parent lot. The parent increment is a single atomic update so concurrent
// reassemblies against the same parent all land. Precondition failures carry
// distinct codes for insufficient quantity versus missing parent.
func (s *LotConversionService) Reassemble(ctx context.Context, lotID uuid.UUID, req ConversionRequest) (*ConversionLogEntryResponse, error) {
	var (
		result *ConversionLogEntryResponse
		events []shared.DomainEvent
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		openLot, err := repos.Lots().FindByID(ctx, lotID)
		if err != nil {
			return err
		}

		if err := openLot.CheckReassemblyEligibility(); err != nil {
			return err
		}

		parentID := *openLot.ParentLotID
		parent, err := repos.Lots().FindByID(ctx, parentID)
		if err != nil {
			return err
		}

		sourceQuantity := openLot.QuantityReceived
		entry, err := inventory.NewConversionLogEntry(openLot.ID, sourceQuantity, openLot.UnitID,
			parent.ID, decimal.NewFromInt(1), parent.UnitID,
			inventory.ConversionTypeReassembly, req.ReasonCode, req.ReasonNotes, req.PerformedBy)
		if err != nil {
			return err
		}

		// One sealed unit lands on the parent regardless of how full the
		// open container was beyond the conversion factor.
		if err := repos.Lots().IncrementSealedQuantity(ctx, parent.ID, decimal.NewFromInt(1)); err != nil {
			return err
		}

		if err := openLot.MarkReassembled(); err != nil {
			return err
		}
		if err := repos.Lots().SaveWithLock(ctx, openLot); err != nil {
			return err
		}

		if err := repos.ConversionLogs().Append(ctx, entry); err != nil {
			return err
		}

		events = append(events, inventory.NewLotReassembledEvent(openLot, parent.ID, sourceQuantity, req.ReasonCode, req.PerformedBy))

		result = new(ConversionLogEntryResponse)
		*result = ToConversionLogEntryResponse(entry)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)
	return result, nil
}

// Dispose retires a lot's remaining quantity, recording a disposal entry with
// zero value. Legal on any lot still holding quantity.
func (s *LotConversionService) Dispose(ctx context.Context, lotID uuid.UUID, req ConversionRequest) (*DisposalLogEntryResponse, error) {
	var (
		result *DisposalLogEntryResponse
		events []shared.DomainEvent
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		lot, err := repos.Lots().FindByID(ctx, lotID)
		if err != nil {
			return err
		}

		entry, err := inventory.NewDisposalLogEntry(lot, req.ReasonCode, req.ReasonNotes, req.PerformedBy)
		if err != nil {
			return err
		}

		quantityDisposed := lot.QuantityReceived
		if err := lot.MarkDisposed(); err != nil {
			return err
		}
		if err := repos.Lots().SaveWithLock(ctx, lot); err != nil {
			return err
		}

		if err := repos.DisposalLogs().Append(ctx, entry); err != nil {
			return err
		}

		events = append(events, inventory.NewLotDisposedEvent(lot, quantityDisposed, req.ReasonCode, req.PerformedBy))

		result = new(DisposalLogEntryResponse)
		*result = ToDisposalLogEntryResponse(entry)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)
	return result, nil
}

// drainEvents collects and clears pending domain events from an aggregate
func drainEvents(agg shared.AggregateRoot) []shared.DomainEvent {
	events := agg.GetDomainEvents()
	agg.ClearDomainEvents()
	return events
}
