package procurement

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/labstock/backend/internal/domain/shared"
)

// ReceivingSessionStatus represents the status of a receiving session
type ReceivingSessionStatus string

const (
	ReceivingSessionStatusInProgress ReceivingSessionStatus = "IN_PROGRESS"
	ReceivingSessionStatusCompleted  ReceivingSessionStatus = "COMPLETED"
	ReceivingSessionStatusCancelled  ReceivingSessionStatus = "CANCELLED"
)

// IsValid checks if the status is a valid ReceivingSessionStatus
func (s ReceivingSessionStatus) IsValid() bool {
	switch s {
	case ReceivingSessionStatusInProgress, ReceivingSessionStatusCompleted, ReceivingSessionStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of ReceivingSessionStatus
func (s ReceivingSessionStatus) String() string {
	return string(s)
}

// ReceivingSessionLine records one receipt against a purchase order line.
// Lines are the undo log for session cancellation: reverting every line
// restores the purchase order to its exact pre-session state.
type ReceivingSessionLine struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	SessionID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderLineItemID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	MaterialID       uuid.UUID       `gorm:"type:uuid;not null"`
	LotID            uuid.UUID       `gorm:"type:uuid;not null"`
	QuantityReceived decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Notes            string          `gorm:"type:varchar(500)"`
	CreatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ReceivingSessionLine) TableName() string {
	return "receiving_session_lines"
}

// ReceivingSession is the aggregate root for one physical receipt of goods
// against a purchase order. A session accumulates lines while IN_PROGRESS and
// becomes immutable once completed; cancellation reverts every contribution.
type ReceivingSession struct {
	shared.BaseAggregateRoot
	SessionNumber string                 `gorm:"type:varchar(50);not null;uniqueIndex"`
	OrderID       uuid.UUID              `gorm:"type:uuid;not null;index"`
	LocationID    uuid.UUID              `gorm:"type:uuid;not null;index"` // dock location; lots default here unless a line overrides
	ReceivedBy    uuid.UUID              `gorm:"type:uuid;not null"`
	Status        ReceivingSessionStatus `gorm:"type:varchar(20);not null;default:'IN_PROGRESS'"`
	Lines         []ReceivingSessionLine `gorm:"foreignKey:SessionID;references:ID"`
	StartedAt     time.Time              `gorm:"not null"`
	CompletedAt   *time.Time
	CancelledAt   *time.Time
	Notes         string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (ReceivingSession) TableName() string {
	return "receiving_sessions"
}

// NewReceivingSession starts a receiving session against a purchase order.
// Eligibility of the order itself (receivable status) is checked by the
// reconciler service, which sees both aggregates.
func NewReceivingSession(sessionNumber string, orderID, locationID, receivedBy uuid.UUID, notes string) (*ReceivingSession, error) {
	if sessionNumber == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Session number cannot be empty")
	}
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Order ID cannot be empty")
	}
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Location ID cannot be empty")
	}
	if receivedBy == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Receiver ID cannot be empty")
	}

	session := &ReceivingSession{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SessionNumber:     sessionNumber,
		OrderID:           orderID,
		LocationID:        locationID,
		ReceivedBy:        receivedBy,
		Status:            ReceivingSessionStatusInProgress,
		Lines:             make([]ReceivingSessionLine, 0),
		StartedAt:         time.Now(),
	}

	session.AddDomainEvent(NewReceivingSessionStartedEvent(session))

	return session, nil
}

// IsInProgress returns true if the session is still accepting lines
func (s *ReceivingSession) IsInProgress() bool {
	return s.Status == ReceivingSessionStatusInProgress
}

// AddLine records a receipt of goods against a purchase order line. Only
// allowed while the session is in progress.
func (s *ReceivingSession) AddLine(orderLineItemID, materialID, lotID uuid.UUID, quantity decimal.Decimal, notes string) (*ReceivingSessionLine, error) {
	if !s.IsInProgress() {
		return nil, shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Cannot record receipts in %s session", s.Status))
	}
	if orderLineItemID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Order line item ID cannot be empty")
	}
	if materialID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Material ID cannot be empty")
	}
	if lotID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Lot ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError(shared.CodeValidation, "Receive quantity must be positive")
	}

	line := ReceivingSessionLine{
		ID:               uuid.New(),
		SessionID:        s.ID,
		OrderLineItemID:  orderLineItemID,
		MaterialID:       materialID,
		LotID:            lotID,
		QuantityReceived: quantity,
		Notes:            notes,
		CreatedAt:        time.Now(),
	}

	s.Lines = append(s.Lines, line)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return &s.Lines[len(s.Lines)-1], nil
}

// Complete seals the session. A completed session is immutable and its
// contributions to the purchase order become permanent.
func (s *ReceivingSession) Complete() error {
	if !s.IsInProgress() {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Cannot complete %s session", s.Status))
	}
	if len(s.Lines) == 0 {
		return shared.NewDomainError(shared.CodeValidation, "Cannot complete session without recorded receipts")
	}

	now := time.Now()
	s.Status = ReceivingSessionStatusCompleted
	s.CompletedAt = &now
	s.UpdatedAt = now
	s.IncrementVersion()

	s.AddDomainEvent(NewReceivingSessionCompletedEvent(s))

	return nil
}

// Cancel aborts an in-progress session. The reconciler reverts every recorded
// line before this is persisted, so the purchase order ends up exactly where
// it was before the session started.
func (s *ReceivingSession) Cancel() error {
	if !s.IsInProgress() {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Cannot cancel %s session", s.Status))
	}

	now := time.Now()
	s.Status = ReceivingSessionStatusCancelled
	s.CancelledAt = &now
	s.UpdatedAt = now
	s.IncrementVersion()

	s.AddDomainEvent(NewReceivingSessionCancelledEvent(s))

	return nil
}

// TotalQuantityForLine sums this session's contributions to one order line
func (s *ReceivingSession) TotalQuantityForLine(orderLineItemID uuid.UUID) decimal.Decimal {
	total := decimal.Zero
	for _, line := range s.Lines {
		if line.OrderLineItemID == orderLineItemID {
			total = total.Add(line.QuantityReceived)
		}
	}
	return total
}

// LineCount returns the number of recorded receipt lines
func (s *ReceivingSession) LineCount() int {
	return len(s.Lines)
}
