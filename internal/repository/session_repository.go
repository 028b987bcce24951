package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"leavedesk/internal/model"
)

// SessionRepository defines sign-in audit persistence operations.
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	FindLatestByUser(ctx context.Context, userID uuid.UUID) (*model.Session, error)
}

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// Create records a sign-in.
func (r *sessionRepository) Create(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// DeleteByUserID removes all session rows for a user on sign-out.
func (r *sessionRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.Session{}).Error
}

// FindLatestByUser returns the most recent sign-in for a user.
func (r *sessionRepository) FindLatestByUser(ctx context.Context, userID uuid.UUID) (*model.Session, error) {
	var session model.Session
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}
