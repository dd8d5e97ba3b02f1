package models

import "time"

// Base contains common columns for all tables. GORM stamps CreatedAt on
// insert and refreshes UpdatedAt on every write.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
