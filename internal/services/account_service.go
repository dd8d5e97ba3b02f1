package services

import (
	"gorm.io/gorm"

	apperrors "expenis/internal/errors"
	"expenis/internal/models"
)

// balanceSelect computes the live balance in one aggregate: the signed sum of
// the account's transactions plus its adjustment amount. Accounts without
// transactions fall back to the adjustment amount via COALESCE.
const balanceSelect = "accounts.*, accounts.adjustment_amount + COALESCE(SUM(" +
	"CASE WHEN categories.type = 'income' THEN transactions.amount ELSE -transactions.amount END" +
	"), 0) AS balance"

// accountService handles account-related business logic.
type accountService struct {
	db *gorm.DB
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB) AccountServicer {
	return &accountService{db: db}
}

// GetUserAccounts retrieves all accounts of a user ordered by name.
func (s *accountService) GetUserAccounts(userID int64) ([]models.Account, error) {
	var accounts []models.Account
	if err := s.db.Where("user_id = ?", userID).Order("name").Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return accounts, nil
}

func balanceQuery(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Account{}).
		Select(balanceSelect).
		Joins("LEFT JOIN transactions ON transactions.account_id = accounts.id").
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
		Group("accounts.id").
		Order("accounts.name")
}

// GetUserAccountsWithBalance retrieves all accounts of a user with their live
// balances, ordered by name.
func (s *accountService) GetUserAccountsWithBalance(userID int64) ([]models.AccountWithBalance, error) {
	var rows []models.AccountWithBalance
	if err := balanceQuery(s.db).Where("accounts.user_id = ?", userID).Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rows, nil
}

// GetUserAccountWithBalance retrieves one account of a user with its live balance.
func (s *accountService) GetUserAccountWithBalance(userID int64, accountID uint) (*models.AccountWithBalance, error) {
	return getUserAccountWithBalance(s.db, userID, accountID)
}

func getUserAccountWithBalance(db *gorm.DB, userID int64, accountID uint) (*models.AccountWithBalance, error) {
	var rows []models.AccountWithBalance
	if err := balanceQuery(db).
		Where("accounts.user_id = ? AND accounts.id = ?", userID, accountID).
		Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(rows) == 0 {
		return nil, apperrors.ErrAccountNotFound
	}
	return &rows[0], nil
}

// CreateAccount creates a new account for a user.
func (s *accountService) CreateAccount(userID int64, name string, adjustmentAmount float64) (*models.Account, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidationFailed, "account name is required")
	}

	account := &models.Account{
		UserID:           userID,
		Name:             name,
		AdjustmentAmount: adjustmentAmount,
	}
	if err := s.db.Create(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return account, nil
}

// UpdateAccount saves an account. When newBalance is supplied the adjustment
// amount is recomputed so the live balance after save equals newBalance:
//
//	adjustment := newBalance - currentBalance + adjustment
//
// Manual corrections stay additive and transaction history is preserved. The
// recomputation and the save run in one database transaction.
func (s *accountService) UpdateAccount(userID int64, account *models.Account, newBalance *float64) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if newBalance != nil {
			current, err := getUserAccountWithBalance(tx, userID, account.ID)
			if err != nil {
				return err
			}
			account.AdjustmentAmount = *newBalance - current.Balance + current.AdjustmentAmount
		}
		if err := tx.Save(account).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// DeleteAccount deletes an account and cascades to its transactions.
func (s *accountService) DeleteAccount(accountID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", accountID).Delete(&models.Transaction{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		result := tx.Delete(&models.Account{}, accountID)
		if result.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrAccountNotFound
		}
		return nil
	})
}
