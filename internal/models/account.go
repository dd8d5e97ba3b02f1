package models

// Account represents a named bucket of money owned by one user.
// The live balance is derived: adjustment_amount plus the signed sum of the
// account's transactions. It is never stored.
type Account struct {
	Base
	UserID           int64   `gorm:"not null;index" json:"user_id"`
	Name             string  `gorm:"not null" json:"name"`
	AdjustmentAmount float64 `gorm:"not null;default:0" json:"adjustment_amount"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:AccountID" json:"transactions,omitempty"`
}

// AccountWithBalance pairs an account with its derived live balance.
type AccountWithBalance struct {
	Account
	Balance float64 `json:"balance"`
}
