package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session records a sign-in. One row is inserted on login and removed on
// logout. Authorization itself is carried by the JWT; this table is kept as
// a sign-in audit trail.
type Session struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:char(36);not null;index"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
