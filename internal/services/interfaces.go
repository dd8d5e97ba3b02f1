package services

import (
	"time"

	"expenis/internal/models"
)

// AccountServicer defines the contract for account-related business logic.
type AccountServicer interface {
	GetUserAccounts(userID int64) ([]models.Account, error)
	GetUserAccountsWithBalance(userID int64) ([]models.AccountWithBalance, error)
	GetUserAccountWithBalance(userID int64, accountID uint) (*models.AccountWithBalance, error)
	CreateAccount(userID int64, name string, adjustmentAmount float64) (*models.Account, error)
	UpdateAccount(userID int64, account *models.Account, newBalance *float64) error
	DeleteAccount(accountID uint) error
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	GetUserCategories(userID int64) (income, expense []models.Category, err error)
	GetCategoryByID(userID int64, categoryID uint) (*models.Category, error)
	CreateCategory(userID int64, name string, categoryType models.CategoryType) (*models.Category, error)
	UpdateCategory(category *models.Category) error
	DeleteCategory(categoryID uint) error
	CreateDefaultCategories(userID int64) error
}

// TransactionFilter holds optional filter parameters for period queries.
type TransactionFilter struct {
	CategoryType *models.CategoryType
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	GetForPeriod(userID int64, dateFrom, dateTo time.Time, filter TransactionFilter) ([]models.Transaction, error)
	GetByID(transactionID uint) (*models.Transaction, error)
	Save(transaction *models.Transaction) error
	DeleteByID(transactionID uint) error
}

// SessionServicer defines the contract for the pairing-session lifecycle.
type SessionServicer interface {
	CreateSession() (string, error)
	ConfirmSession(userID int64, sessionID string) (*models.Session, error)
	GetSession(sessionID string) (*models.Session, error)
	Sweep(maxAge time.Duration) (int64, error)
}
