package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/gorm"

	"expenis/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// NextUserID returns a fresh telegram-style user id for test isolation.
func NextUserID() int64 {
	return 100000 + nextID()
}

// CreateTestAccount creates an account with the given adjustment amount.
func CreateTestAccount(t *testing.T, db *gorm.DB, userID int64, adjustment float64) *models.Account {
	t.Helper()

	account := &models.Account{
		UserID:           userID,
		Name:             fmt.Sprintf("Test Account %d", nextID()),
		AdjustmentAmount: adjustment,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestCategory creates a category of the given type.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID int64, categoryType models.CategoryType) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID: userID,
		Name:   fmt.Sprintf("Test Category %d", nextID()),
		Type:   categoryType,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction creates a transaction for the given account and category.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID int64, accountID, categoryID uint, amount float64) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:     userID,
		AccountID:  accountID,
		CategoryID: categoryID,
		Amount:     amount,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestSession creates a pending session with the given id.
func CreateTestSession(t *testing.T, db *gorm.DB, id string) *models.Session {
	t.Helper()

	session := &models.Session{
		ID:     id,
		Status: models.SessionStatusPending,
	}
	if err := db.Create(session).Error; err != nil {
		t.Fatalf("failed to create test session: %v", err)
	}
	return session
}
