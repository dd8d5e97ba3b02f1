package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "expenis/internal/errors"
	"expenis/internal/models"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// GetForPeriod retrieves a user's transactions between the earliest instant of
// dateFrom and the latest instant of dateTo, both in UTC, inclusive on both
// ends. Account and category are eagerly loaded; newest first.
func (s *transactionService) GetForPeriod(userID int64, dateFrom, dateTo time.Time, filter TransactionFilter) ([]models.Transaction, error) {
	start := StartOfDay(dateFrom)
	end := EndOfDay(dateTo)

	q := s.db.
		Preload("Account").
		Preload("Category").
		Where("transactions.user_id = ? AND transactions.created_at >= ? AND transactions.created_at <= ?", userID, start, end)

	if filter.CategoryType != nil {
		q = q.Joins("JOIN categories ON categories.id = transactions.category_id").
			Where("categories.type = ?", *filter.CategoryType)
	}

	var transactions []models.Transaction
	if err := q.Order("transactions.created_at DESC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// GetByID retrieves a transaction with its account and category loaded.
func (s *transactionService) GetByID(transactionID uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.
		Preload("Account").
		Preload("Category").
		First(&transaction, transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// Save inserts the transaction when it has no id and updates it otherwise.
// The referenced account and category must belong to the transaction's user.
func (s *transactionService) Save(transaction *models.Transaction) error {
	if transaction.Amount < 0 {
		return apperrors.WithMessage(apperrors.ErrValidationFailed, "amount must not be negative")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := verifyOwnership(tx, transaction); err != nil {
			return err
		}
		if transaction.ID == 0 {
			if err := tx.Omit("Account", "Category").Create(transaction).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			return nil
		}
		if err := tx.Omit("Account", "Category", "CreatedAt").Save(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// verifyOwnership checks the cross-entity invariant: a transaction never
// references an account or category owned by a different user.
func verifyOwnership(tx *gorm.DB, transaction *models.Transaction) error {
	var account models.Account
	if err := tx.First(&account, transaction.AccountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrAccountNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if account.UserID != transaction.UserID {
		return apperrors.WithMessage(apperrors.ErrValidationFailed, "account belongs to another user")
	}

	var category models.Category
	if err := tx.First(&category, transaction.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCategoryNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if category.UserID != transaction.UserID {
		return apperrors.WithMessage(apperrors.ErrValidationFailed, "category belongs to another user")
	}
	return nil
}

// DeleteByID deletes a transaction by id.
func (s *transactionService) DeleteByID(transactionID uint) error {
	result := s.db.Delete(&models.Transaction{}, transactionID)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// StartOfDay returns the earliest instant of t's calendar day in UTC.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns the latest instant of t's calendar day in UTC.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
