package procurement

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/labstock/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeReceivingSession = "ReceivingSession"

// Event type constants
const (
	EventTypeReceivingSessionStarted   = "ReceivingSessionStarted"
	EventTypeReceivingSessionCompleted = "ReceivingSessionCompleted"
	EventTypeReceivingSessionCancelled = "ReceivingSessionCancelled"
)

// ReceivingSessionStartedEvent is raised when a receiving session is opened
type ReceivingSessionStartedEvent struct {
	shared.BaseDomainEvent
	SessionID     uuid.UUID `json:"session_id"`
	SessionNumber string    `json:"session_number"`
	OrderID       uuid.UUID `json:"order_id"`
	LocationID    uuid.UUID `json:"location_id"`
	ReceivedBy    uuid.UUID `json:"received_by"`
}

// NewReceivingSessionStartedEvent creates a new ReceivingSessionStartedEvent
func NewReceivingSessionStartedEvent(session *ReceivingSession) *ReceivingSessionStartedEvent {
	return &ReceivingSessionStartedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReceivingSessionStarted, AggregateTypeReceivingSession, session.ID),
		SessionID:       session.ID,
		SessionNumber:   session.SessionNumber,
		OrderID:         session.OrderID,
		LocationID:      session.LocationID,
		ReceivedBy:      session.ReceivedBy,
	}
}

// EventType returns the event type name
func (e *ReceivingSessionStartedEvent) EventType() string {
	return EventTypeReceivingSessionStarted
}

// ReceivedLineInfo represents one receipt line in an event
type ReceivedLineInfo struct {
	LineID           uuid.UUID       `json:"line_id"`
	OrderLineItemID  uuid.UUID       `json:"order_line_item_id"`
	MaterialID       uuid.UUID       `json:"material_id"`
	LotID            uuid.UUID       `json:"lot_id"`
	QuantityReceived decimal.Decimal `json:"quantity_received"`
}

func receivedLineInfos(session *ReceivingSession) []ReceivedLineInfo {
	infos := make([]ReceivedLineInfo, len(session.Lines))
	for i, line := range session.Lines {
		infos[i] = ReceivedLineInfo{
			LineID:           line.ID,
			OrderLineItemID:  line.OrderLineItemID,
			MaterialID:       line.MaterialID,
			LotID:            line.LotID,
			QuantityReceived: line.QuantityReceived,
		}
	}
	return infos
}

// ReceivingSessionCompletedEvent is raised when a session is sealed and its
// contributions become permanent
type ReceivingSessionCompletedEvent struct {
	shared.BaseDomainEvent
	SessionID     uuid.UUID          `json:"session_id"`
	SessionNumber string             `json:"session_number"`
	OrderID       uuid.UUID          `json:"order_id"`
	Lines         []ReceivedLineInfo `json:"lines"`
}

// NewReceivingSessionCompletedEvent creates a new ReceivingSessionCompletedEvent
func NewReceivingSessionCompletedEvent(session *ReceivingSession) *ReceivingSessionCompletedEvent {
	return &ReceivingSessionCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReceivingSessionCompleted, AggregateTypeReceivingSession, session.ID),
		SessionID:       session.ID,
		SessionNumber:   session.SessionNumber,
		OrderID:         session.OrderID,
		Lines:           receivedLineInfos(session),
	}
}

// EventType returns the event type name
func (e *ReceivingSessionCompletedEvent) EventType() string {
	return EventTypeReceivingSessionCompleted
}

// ReceivingSessionCancelledEvent is raised when an in-progress session is
// aborted and its contributions reverted
type ReceivingSessionCancelledEvent struct {
	shared.BaseDomainEvent
	SessionID     uuid.UUID          `json:"session_id"`
	SessionNumber string             `json:"session_number"`
	OrderID       uuid.UUID          `json:"order_id"`
	RevertedLines []ReceivedLineInfo `json:"reverted_lines"`
}

// NewReceivingSessionCancelledEvent creates a new ReceivingSessionCancelledEvent
func NewReceivingSessionCancelledEvent(session *ReceivingSession) *ReceivingSessionCancelledEvent {
	return &ReceivingSessionCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReceivingSessionCancelled, AggregateTypeReceivingSession, session.ID),
		SessionID:       session.ID,
		SessionNumber:   session.SessionNumber,
		OrderID:         session.OrderID,
		RevertedLines:   receivedLineInfos(session),
	}
}

// EventType returns the event type name
func (e *ReceivingSessionCancelledEvent) EventType() string {
	return EventTypeReceivingSessionCancelled
}
