package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "expenis/internal/errors"
	"expenis/internal/models"
)

// Canonical starter set seeded for new users on first category request.
var (
	defaultIncomeCategories = []string{
		"💰 Salary",
		"📈 Investment",
		"🎁 Gift",
		"💸 Other Income",
	}
	defaultExpenseCategories = []string{
		"☕ Cafe",
		"🍔 Food",
		"👪 Family",
		"🎁 Presents",
		"🎭 Entertainment",
		"📚 Learning",
		"🚕 Transport",
		"🏠 Rent",
		"🏥 Health",
		"💳 Monthly fee",
	}
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// GetUserCategories retrieves the user's categories split into income and
// expense lists, each ordered by name.
func (s *categoryService) GetUserCategories(userID int64) ([]models.Category, []models.Category, error) {
	return getUserCategories(s.db, userID)
}

func getUserCategories(db *gorm.DB, userID int64) ([]models.Category, []models.Category, error) {
	var categories []models.Category
	if err := db.Where("user_id = ?", userID).Order("name").Find(&categories).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var income, expense []models.Category
	for _, c := range categories {
		switch c.Type {
		case models.CategoryTypeIncome:
			income = append(income, c)
		case models.CategoryTypeExpense:
			expense = append(expense, c)
		}
	}
	return income, expense, nil
}

// GetCategoryByID retrieves a category by ID for a specific user.
func (s *categoryService) GetCategoryByID(userID int64, categoryID uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// CreateCategory creates a new category for a user.
func (s *categoryService) CreateCategory(userID int64, name string, categoryType models.CategoryType) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidationFailed, "category name is required")
	}
	if categoryType != models.CategoryTypeIncome && categoryType != models.CategoryTypeExpense {
		return nil, apperrors.WithMessage(apperrors.ErrValidationFailed, "category type must be income or expense")
	}

	category := &models.Category{
		UserID: userID,
		Name:   name,
		Type:   categoryType,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// UpdateCategory saves an existing category.
func (s *categoryService) UpdateCategory(category *models.Category) error {
	if err := s.db.Save(category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// DeleteCategory deletes a category along with its transactions.
func (s *categoryService) DeleteCategory(categoryID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", categoryID).Delete(&models.Transaction{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		result := tx.Delete(&models.Category{}, categoryID)
		if result.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrCategoryNotFound
		}
		return nil
	})
}

// CreateDefaultCategories seeds the starter set for a user. The check and the
// inserts run in one transaction so two concurrent first requests cannot seed
// twice; seeding is skipped when the user already has any category.
func (s *categoryService) CreateDefaultCategories(userID int64) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		income, expense, err := getUserCategories(tx, userID)
		if err != nil {
			return err
		}
		if len(income) > 0 || len(expense) > 0 {
			return nil
		}

		categories := make([]models.Category, 0, len(defaultIncomeCategories)+len(defaultExpenseCategories))
		for _, name := range defaultIncomeCategories {
			categories = append(categories, models.Category{UserID: userID, Name: name, Type: models.CategoryTypeIncome})
		}
		for _, name := range defaultExpenseCategories {
			categories = append(categories, models.Category{UserID: userID, Name: name, Type: models.CategoryTypeExpense})
		}

		if err := tx.Create(&categories).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
