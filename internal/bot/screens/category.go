package screens

import (
	"strconv"

	"expenis/internal/chatui"
	"expenis/internal/models"
)

// NewCategoriesGroup builds the /categories feature.
func NewCategoriesGroup(deps Deps) chatui.GroupFactory {
	return func() *chatui.Group {
		screen := newCategoriesScreen(deps)
		group := chatui.NewGroup(screen)
		screen.group = group
		return group
	}
}

// CategoriesScreen shows the user's categories behind an income/expense
// toggle. Pressing a category opens it for editing.
type CategoriesScreen struct {
	chatui.BaseScreen

	deps  Deps
	group *chatui.Group

	typeGroup   *chatui.ExclusiveCheckBoxGroup
	incomeTab   *chatui.CheckBox
	expenseTab  *chatui.CheckBox
	newCategory *chatui.Button

	incomeButtons  []chatui.Component
	expenseButtons []chatui.Component
	loaded         bool
}

func newCategoriesScreen(deps Deps) *CategoriesScreen {
	s := &CategoriesScreen{deps: deps}
	s.typeGroup = chatui.NewExclusiveCheckBoxGroup(true)
	s.incomeTab = chatui.NewCheckBox("🟢 Income (+)", s.typeGroup)
	s.expenseTab = chatui.NewCheckBox("🔴 Expense (-)", s.typeGroup)
	s.newCategory = chatui.NewButton("➕ New Category", func(ev *chatui.Event, _ *chatui.Button) error {
		s.invalidate()
		s.group.GoTo(newCategoryCreateScreen(s.deps, s.group, s.selectedType()))
		return nil
	})
	s.SetMessage("Categories")
	s.Add(s.incomeTab, s.expenseTab, s.newCategory)
	return s
}

func (s *CategoriesScreen) Layout(ev *chatui.Event) ([][]chatui.Cell, error) {
	if err := s.load(ev); err != nil {
		return nil, err
	}

	buttons := s.expenseButtons
	if s.incomeTab.Selected() {
		buttons = s.incomeButtons
	}

	rows := [][]chatui.Cell{chatui.Row(s.incomeTab, s.expenseTab)}
	rows = append(rows, chatui.Grid(buttons, 3)...)
	rows = append(rows, chatui.Row(s.newCategory))
	return rows, nil
}

func (s *CategoriesScreen) selectedType() models.CategoryType {
	if s.incomeTab.Selected() {
		return models.CategoryTypeIncome
	}
	return models.CategoryTypeExpense
}

func (s *CategoriesScreen) load(ev *chatui.Event) error {
	if s.loaded {
		return nil
	}

	income, expense, err := s.deps.Categories.GetUserCategories(ev.UserID)
	if err != nil {
		return err
	}
	if len(income) == 0 && len(expense) == 0 {
		if err := s.deps.Categories.CreateDefaultCategories(ev.UserID); err != nil {
			return err
		}
		income, expense, err = s.deps.Categories.GetUserCategories(ev.UserID)
		if err != nil {
			return err
		}
	}

	for _, category := range income {
		s.incomeButtons = append(s.incomeButtons, s.addCategoryButton(category))
	}
	for _, category := range expense {
		s.expenseButtons = append(s.expenseButtons, s.addCategoryButton(category))
	}

	if s.typeGroup.Selected() == nil {
		if err := s.typeGroup.Check(ev, s.expenseTab); err != nil {
			return err
		}
	}

	s.loaded = true
	return nil
}

func (s *CategoriesScreen) addCategoryButton(category models.Category) *chatui.Button {
	categoryID := category.ID
	b := chatui.NewButton(category.Name, func(ev *chatui.Event, _ *chatui.Button) error {
		s.invalidate()
		s.group.GoTo(newCategoryEditScreen(s.deps, s.group, categoryID))
		return nil
	})
	b.Data = strconv.FormatUint(uint64(categoryID), 10)
	s.Add(b)
	return b
}

func (s *CategoriesScreen) invalidate() {
	for _, b := range s.incomeButtons {
		s.Remove(b)
	}
	for _, b := range s.expenseButtons {
		s.Remove(b)
	}
	s.incomeButtons = nil
	s.expenseButtons = nil
	s.loaded = false
}

// CategoryCreateScreen collects a name for a category of a fixed type.
type CategoryCreateScreen struct {
	chatui.BaseScreen

	deps  Deps
	group *chatui.Group

	categoryType models.CategoryType
	name         *chatui.Input[string]
	save         *chatui.Button
	back         *chatui.Button
}

func newCategoryCreateScreen(deps Deps, group *chatui.Group, categoryType models.CategoryType) *CategoryCreateScreen {
	s := &CategoryCreateScreen{deps: deps, group: group, categoryType: categoryType}
	s.build()
	s.save = chatui.NewButton("✅ Save", s.saveHandler)
	s.Add(s.save)
	s.SetMessage("New " + string(categoryType) + " category")
	return s
}

func (s *CategoryCreateScreen) build() {
	s.name = chatui.NewInput("Name:", chatui.Identity)
	s.back = chatui.NewButton("⬅️ Back", func(ev *chatui.Event, _ *chatui.Button) error {
		s.group.GoBack()
		return nil
	})
	s.Add(s.name, s.back)
}

func (s *CategoryCreateScreen) Layout(ev *chatui.Event) ([][]chatui.Cell, error) {
	rows := [][]chatui.Cell{chatui.Row(s.name)}
	if s.name.Filled() {
		rows = append(rows, chatui.Row(s.save))
	}
	rows = append(rows, chatui.Row(s.back))
	return rows, nil
}

func (s *CategoryCreateScreen) saveHandler(ev *chatui.Event, _ *chatui.Button) error {
	name, ok := s.name.Value()
	if !ok {
		return nil
	}
	if _, err := s.deps.Categories.CreateCategory(ev.UserID, name, s.categoryType); err != nil {
		return err
	}
	s.group.GoBack()
	return nil
}

// CategoryEditScreen renames or deletes an existing category.
type CategoryEditScreen struct {
	CategoryCreateScreen

	categoryID uint
	delete     *chatui.Button
	loaded     bool
}

func newCategoryEditScreen(deps Deps, group *chatui.Group, categoryID uint) *CategoryEditScreen {
	s := &CategoryEditScreen{categoryID: categoryID}
	s.deps = deps
	s.group = group
	s.build()
	s.SetMessage("Edit category")
	s.save = chatui.NewButton("✅ Save", s.saveHandler)
	s.delete = chatui.NewButton("🗑 Delete", func(ev *chatui.Event, _ *chatui.Button) error {
		s.group.GoTo(NewDeleteScreen(s.group, func(ev *chatui.Event) error {
			return s.deps.Categories.DeleteCategory(s.categoryID)
		}))
		return nil
	})
	s.Add(s.save, s.delete)
	return s
}

func (s *CategoryEditScreen) Layout(ev *chatui.Event) ([][]chatui.Cell, error) {
	if err := s.load(ev.UserID); err != nil {
		return nil, err
	}
	rows, err := s.CategoryCreateScreen.Layout(ev)
	if err != nil {
		return nil, err
	}
	return append(rows, chatui.Row(s.delete)), nil
}

func (s *CategoryEditScreen) load(userID int64) error {
	if s.loaded {
		return nil
	}
	category, err := s.deps.Categories.GetCategoryByID(userID, s.categoryID)
	if err != nil {
		return err
	}
	s.categoryType = category.Type
	s.name.SetValue(category.Name)
	s.loaded = true
	return nil
}

func (s *CategoryEditScreen) saveHandler(ev *chatui.Event, _ *chatui.Button) error {
	category, err := s.deps.Categories.GetCategoryByID(ev.UserID, s.categoryID)
	if err != nil {
		return err
	}
	name, ok := s.name.Value()
	if !ok {
		return nil
	}
	category.Name = name
	if err := s.deps.Categories.UpdateCategory(category); err != nil {
		return err
	}
	s.group.GoBack()
	return nil
}
