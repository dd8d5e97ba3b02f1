package models

// Transaction represents a monetary event against one account. Amount is
// always a positive magnitude; the sign comes from the linked category's type.
type Transaction struct {
	Base
	UserID      int64   `gorm:"not null;index" json:"user_id"`
	AccountID   uint    `gorm:"not null;index" json:"account_id"`
	CategoryID  uint    `gorm:"not null;index" json:"category_id"`
	Amount      float64 `gorm:"not null;default:0" json:"amount"`
	Description string  `json:"description,omitempty"`

	// Relationships
	Account  Account  `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// SignedAmount returns the amount with the category-derived sign applied.
func (t *Transaction) SignedAmount() float64 {
	return t.Category.Type.Sign() * t.Amount
}
