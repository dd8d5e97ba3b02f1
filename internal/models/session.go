package models

import "time"

// SessionStatus represents the state of a pairing session.
type SessionStatus string

const (
	SessionStatusPending   SessionStatus = "pending"
	SessionStatusConfirmed SessionStatus = "confirmed"
)

// Session is a short-lived pairing record used to hand an authenticated
// cookie to a web client after in-chat confirmation. Created by the web side
// with no user; promoted to confirmed by the bot side.
type Session struct {
	ID        string        `gorm:"primaryKey" json:"id"`
	UserID    *int64        `json:"user_id,omitempty"`
	Status    SessionStatus `gorm:"not null" json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
