package models

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// Sign returns +1 for income and -1 for expense.
func (t CategoryType) Sign() float64 {
	if t == CategoryTypeIncome {
		return 1
	}
	return -1
}

// Category represents a per-user transaction category.
type Category struct {
	Base
	UserID int64        `gorm:"not null;index" json:"user_id"`
	Type   CategoryType `gorm:"not null" json:"type"`
	Name   string       `gorm:"not null" json:"name"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:CategoryID" json:"transactions,omitempty"`
}
