package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/labstock/backend/internal/domain/procurement"
	"github.com/labstock/backend/internal/domain/shared"
)

// GormReceivingSessionRepository implements ReceivingSessionRepository using GORM
type GormReceivingSessionRepository struct {
	db *gorm.DB
}

// NewGormReceivingSessionRepository creates a new GormReceivingSessionRepository
func NewGormReceivingSessionRepository(db *gorm.DB) *GormReceivingSessionRepository {
	return &GormReceivingSessionRepository{db: db}
}

// FindByID finds a receiving session with its lines
func (r *GormReceivingSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.ReceivingSession, error) {
	var session procurement.ReceivingSession
	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&session, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// FindBySessionNumber finds a session by its RCV number
func (r *GormReceivingSessionRepository) FindBySessionNumber(ctx context.Context, sessionNumber string) (*procurement.ReceivingSession, error) {
	var session procurement.ReceivingSession
	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("session_number = ?", sessionNumber).
		First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// FindByOrder finds all sessions recorded against a purchase order
func (r *GormReceivingSessionRepository) FindByOrder(ctx context.Context, orderID uuid.UUID, filter shared.Filter) ([]procurement.ReceivingSession, error) {
	var sessions []procurement.ReceivingSession
	query := r.db.WithContext(ctx).Model(&procurement.ReceivingSession{}).
		Where("order_id = ?", orderID)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, ReceivingSessionSortFields, "started_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(sortField + " " + sortOrder)

	if err := query.Preload("Lines").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// FindInProgressByOrder finds the in-progress sessions for an order
func (r *GormReceivingSessionRepository) FindInProgressByOrder(ctx context.Context, orderID uuid.UUID) ([]procurement.ReceivingSession, error) {
	var sessions []procurement.ReceivingSession
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("order_id = ? AND status = ?", orderID, procurement.ReceivingSessionStatusInProgress).
		Order("started_at ASC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// Save creates or updates a receiving session and its lines
func (r *GormReceivingSessionRepository) Save(ctx context.Context, session *procurement.ReceivingSession) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(session).Error; err != nil {
			return err
		}
		for i := range session.Lines {
			session.Lines[i].SessionID = session.ID
			if err := tx.Save(&session.Lines[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormReceivingSessionRepository) SaveWithLock(ctx context.Context, session *procurement.ReceivingSession) error {
	storedVersion := session.Version - 1

	result := r.db.WithContext(ctx).Model(&procurement.ReceivingSession{}).
		Where("id = ? AND version = ?", session.ID, storedVersion).
		Updates(map[string]interface{}{
			"status":       session.Status,
			"completed_at": session.CompletedAt,
			"cancelled_at": session.CancelledAt,
			"notes":        session.Notes,
			"version":      session.Version,
			"updated_at":   session.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&procurement.ReceivingSession{}).
			Where("id = ?", session.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrStaleState
	}
	return nil
}

// AddLine appends a receipt line to a session
func (r *GormReceivingSessionRepository) AddLine(ctx context.Context, line *procurement.ReceivingSessionLine) error {
	return r.db.WithContext(ctx).Create(line).Error
}

// DeleteLines removes all receipt lines of a session
func (r *GormReceivingSessionRepository) DeleteLines(ctx context.Context, sessionID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&procurement.ReceivingSessionLine{}).Error
}

// Delete removes a cancelled session and its lines
func (r *GormReceivingSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).Delete(&procurement.ReceivingSessionLine{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&procurement.ReceivingSession{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// CountByOrder counts sessions recorded against a purchase order
func (r *GormReceivingSessionRepository) CountByOrder(ctx context.Context, orderID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&procurement.ReceivingSession{}).
		Where("order_id = ?", orderID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GenerateSessionNumber generates a unique session number
// Format: RCV-YYYY-NNNNN (e.g., RCV-2026-00001)
func (r *GormReceivingSessionRepository) GenerateSessionNumber(ctx context.Context) (string, error) {
	return generateSequentialNumber(ctx, r.db, &procurement.ReceivingSession{}, "session_number", "RCV")
}

// Ensure GormReceivingSessionRepository implements ReceivingSessionRepository
var _ procurement.ReceivingSessionRepository = (*GormReceivingSessionRepository)(nil)
