package screens

import (
	"fmt"
	"strconv"

	"expenis/internal/chatui"
	apperrors "expenis/internal/errors"
	"expenis/internal/models"
	"expenis/internal/money"
)

// TransactionCreateScreen is the new-transaction form: account selector,
// income/expense toggle, per-type category selector, amount and description
// inputs. Save only appears once the form is complete.
type TransactionCreateScreen struct {
	chatui.BaseScreen

	deps  Deps
	state *groupState
	group *chatui.Group

	typeGroup    *chatui.ExclusiveCheckBoxGroup
	accountGroup *chatui.ExclusiveCheckBoxGroup
	incomeGroup  *chatui.ExclusiveCheckBoxGroup
	expenseGroup *chatui.ExclusiveCheckBoxGroup

	income  *chatui.CheckBox
	expense *chatui.CheckBox
	save    *chatui.Button
	back    *chatui.Button

	amount      *chatui.Input[float64]
	description *chatui.Input[string]

	accountBoxes []chatui.Component
	incomeBoxes  []chatui.Component
	expenseBoxes []chatui.Component

	loaded bool
}

func newTransactionCreateScreen(deps Deps, state *groupState, group *chatui.Group) *TransactionCreateScreen {
	s := &TransactionCreateScreen{deps: deps, state: state, group: group}
	s.build()
	s.save = chatui.NewButton("✅ Save", s.saveHandler)
	s.Add(s.save)
	return s
}

func (s *TransactionCreateScreen) build() {
	s.typeGroup = chatui.NewExclusiveCheckBoxGroup(true)
	s.accountGroup = chatui.NewExclusiveCheckBoxGroup(true)
	s.incomeGroup = chatui.NewExclusiveCheckBoxGroup(true)
	s.expenseGroup = chatui.NewExclusiveCheckBoxGroup(true)

	s.income = chatui.NewCheckBox("🟢 Income (+)", s.typeGroup)
	s.expense = chatui.NewCheckBox("🔴 Expense (-)", s.typeGroup)

	s.amount = chatui.NewAmountInput("📊 Amount:", chatui.PositiveAmount)
	s.description = chatui.NewInput("✍️ Description:", chatui.Identity)

	s.back = chatui.NewButton("⬅️ back", func(ev *chatui.Event, _ *chatui.Button) error {
		s.group.GoBack()
		return nil
	})

	s.SetMessage("New transaction")
	s.Add(s.income, s.expense, s.amount, s.description, s.back)
}

func (s *TransactionCreateScreen) Layout(ev *chatui.Event) ([][]chatui.Cell, error) {
	if err := s.load(ev); err != nil {
		return nil, err
	}

	categoryBoxes := s.expenseBoxes
	if s.income.Selected() {
		categoryBoxes = s.incomeBoxes
	}

	var rows [][]chatui.Cell
	rows = append(rows, chatui.Grid(s.accountBoxes, 3)...)
	rows = append(rows, chatui.Row(s.income, s.expense))
	rows = append(rows, chatui.Grid(categoryBoxes, 3)...)
	rows = append(rows, chatui.Row(s.amount), chatui.Row(s.description))
	if s.formFilled() {
		rows = append(rows, chatui.Row(s.save))
	}
	rows = append(rows, chatui.Row(s.back))
	return rows, nil
}

// load fetches accounts and categories on the first layout, seeding the
// default categories for brand-new users.
func (s *TransactionCreateScreen) load(ev *chatui.Event) error {
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
		s.incomeBoxes = append(s.incomeBoxes, s.addCategoryBox(category, s.incomeGroup))
	}
	for _, category := range expense {
		s.expenseBoxes = append(s.expenseBoxes, s.addCategoryBox(category, s.expenseGroup))
	}

	accounts, err := s.deps.Accounts.GetUserAccountsWithBalance(ev.UserID)
	if err != nil {
		return err
	}
	for _, account := range accounts {
		cb := chatui.NewCheckBox(accountLabel(account), s.accountGroup)
		cb.Data = formatID(account.ID)
		cb.OnChange = s.rememberAccount
		s.accountBoxes = append(s.accountBoxes, cb)
		s.Add(cb)

		if s.state.lastAccountID == account.ID && s.accountGroup.Selected() == nil {
			if err := s.accountGroup.Check(ev, cb); err != nil {
				return err
			}
		}
	}

	// Expense is the common case.
	if err := s.typeGroup.Check(ev, s.expense); err != nil {
		return err
	}

	s.loaded = true
	return nil
}

func (s *TransactionCreateScreen) addCategoryBox(category models.Category, group *chatui.ExclusiveCheckBoxGroup) *chatui.CheckBox {
	cb := chatui.NewCheckBox(category.Name, group)
	cb.Data = formatID(category.ID)
	s.Add(cb)
	return cb
}

func (s *TransactionCreateScreen) rememberAccount(ev *chatui.Event, cb *chatui.CheckBox) error {
	if cb.Selected() {
		id, err := strconv.ParseUint(cb.Data, 10, 32)
		if err != nil {
			return err
		}
		s.state.lastAccountID = uint(id)
	}
	return nil
}

func (s *TransactionCreateScreen) formFilled() bool {
	if s.accountGroup.Selected() == nil || s.typeGroup.Selected() == nil {
		return false
	}
	if s.selectedCategory() == nil {
		return false
	}
	return s.amount.Filled()
}

func (s *TransactionCreateScreen) selectedCategory() *chatui.CheckBox {
	if s.income.Selected() {
		return s.incomeGroup.Selected()
	}
	if s.expense.Selected() {
		return s.expenseGroup.Selected()
	}
	return nil
}

// buildTransaction assembles the form state into a transaction.
func (s *TransactionCreateScreen) buildTransaction(ev *chatui.Event) (*models.Transaction, error) {
	account := s.accountGroup.Selected()
	category := s.selectedCategory()
	if account == nil || category == nil {
		return nil, apperrors.WithMessage(apperrors.ErrValidationFailed, "Pick an account and a category first")
	}

	accountID, err := strconv.ParseUint(account.Data, 10, 32)
	if err != nil {
		return nil, err
	}
	categoryID, err := strconv.ParseUint(category.Data, 10, 32)
	if err != nil {
		return nil, err
	}

	amount, ok := s.amount.Value()
	if !ok {
		return nil, apperrors.WithMessage(apperrors.ErrValidationFailed, "Enter an amount first")
	}
	description, _ := s.description.Value()

	return &models.Transaction{
		UserID:      ev.UserID,
		AccountID:   uint(accountID),
		CategoryID:  uint(categoryID),
		Amount:      amount,
		Description: description,
	}, nil
}

func (s *TransactionCreateScreen) saveHandler(ev *chatui.Event, _ *chatui.Button) error {
	transaction, err := s.buildTransaction(ev)
	if err != nil {
		return err
	}
	if err := s.deps.Transactions.Save(transaction); err != nil {
		return err
	}
	s.group.GoBack()
	return nil
}

func accountLabel(account models.AccountWithBalance) string {
	return fmt.Sprintf("%s (%s)", account.Name, money.Format(account.Balance))
}

// TransactionEditScreen is the create form prefilled from a stored
// transaction, with a delete action.
type TransactionEditScreen struct {
	TransactionCreateScreen

	transactionID uint
	delete        *chatui.Button
	prefilled     bool
}

func newTransactionEditScreen(deps Deps, state *groupState, group *chatui.Group, transactionID uint) *TransactionEditScreen {
	s := &TransactionEditScreen{transactionID: transactionID}
	s.deps = deps
	s.state = state
	s.group = group
	s.build()
	s.SetMessage("Edit transaction")
	s.save = chatui.NewButton("✅ Save", s.saveHandler)
	s.delete = chatui.NewButton("🗑 Delete", func(ev *chatui.Event, _ *chatui.Button) error {
		s.group.GoTo(NewDeleteScreen(s.group, func(ev *chatui.Event) error {
			return s.deps.Transactions.DeleteByID(s.transactionID)
		}))
		return nil
	})
	s.Add(s.save, s.delete)
	return s
}

func (s *TransactionEditScreen) Layout(ev *chatui.Event) ([][]chatui.Cell, error) {
	if err := s.prefill(ev); err != nil {
		return nil, err
	}
	rows, err := s.TransactionCreateScreen.Layout(ev)
	if err != nil {
		return nil, err
	}
	return append(rows, chatui.Row(s.delete)), nil
}

func (s *TransactionEditScreen) prefill(ev *chatui.Event) error {
	if s.prefilled {
		return nil
	}
	if err := s.load(ev); err != nil {
		return err
	}

	transaction, err := s.deps.Transactions.GetByID(s.transactionID)
	if err != nil {
		return err
	}

	if err := s.accountGroup.CheckByData(ev, formatID(transaction.AccountID)); err != nil {
		return err
	}
	if transaction.Category.Type == models.CategoryTypeIncome {
		if err := s.typeGroup.Check(ev, s.income); err != nil {
			return err
		}
		if err := s.incomeGroup.CheckByData(ev, formatID(transaction.CategoryID)); err != nil {
			return err
		}
	} else {
		if err := s.typeGroup.Check(ev, s.expense); err != nil {
			return err
		}
		if err := s.expenseGroup.CheckByData(ev, formatID(transaction.CategoryID)); err != nil {
			return err
		}
	}

	s.amount.SetValue(transaction.Amount)
	if transaction.Description != "" {
		s.description.SetValue(transaction.Description)
	}

	s.prefilled = true
	return nil
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func (s *TransactionEditScreen) saveHandler(ev *chatui.Event, _ *chatui.Button) error {
	transaction, err := s.buildTransaction(ev)
	if err != nil {
		return err
	}
	transaction.ID = s.transactionID
	if err := s.deps.Transactions.Save(transaction); err != nil {
		return err
	}
	s.group.GoBack()
	return nil
}
