package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "expenis/internal/errors"
	"expenis/internal/models"
)

// SessionMaxAge is the expiry window after which a session is swept.
const SessionMaxAge = 5 * time.Minute

// sessionService handles the pairing-session lifecycle.
type sessionService struct {
	db *gorm.DB
}

// NewSessionService creates a new SessionServicer.
func NewSessionService(db *gorm.DB) SessionServicer {
	return &sessionService{db: db}
}

// CreateSession inserts a new pending session and returns its id.
func (s *sessionService) CreateSession() (string, error) {
	session := &models.Session{
		ID:     uuid.NewString(),
		Status: models.SessionStatusPending,
	}
	if err := s.db.Create(session).Error; err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return session.ID, nil
}

// ConfirmSession promotes a pending session to confirmed on behalf of the
// authenticating user. Re-confirming is idempotent on the status and only
// refreshes updated_at. A confirmed session never goes back to pending.
func (s *sessionService) ConfirmSession(userID int64, sessionID string) (*models.Session, error) {
	var session models.Session
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&session, "id = ?", sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.WithMessage(apperrors.ErrSessionNotFound, "session "+sessionID+" not found")
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		session.Status = models.SessionStatusConfirmed
		session.UserID = &userID
		if err := tx.Save(&session).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// GetSession loads a session by id.
func (s *sessionService) GetSession(sessionID string) (*models.Session, error) {
	var session models.Session
	if err := s.db.First(&session, "id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrSessionNotFound, "session "+sessionID+" not found")
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &session, nil
}

// Sweep deletes sessions created at or before now - maxAge and returns how
// many rows were removed.
func (s *sessionService) Sweep(maxAge time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-maxAge)
	result := s.db.Where("created_at <= ?", cutoff).Delete(&models.Session{})
	if result.Error != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	return result.RowsAffected, nil
}
