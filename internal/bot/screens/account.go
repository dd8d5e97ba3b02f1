package screens

import (
	"fmt"
	"strconv"

	"expenis/internal/chatui"
	"expenis/internal/money"
)

// NewAccountsGroup builds the /accounts feature.
func NewAccountsGroup(deps Deps) chatui.GroupFactory {
	return func() *chatui.Group {
		screen := newAccountsScreen(deps)
		group := chatui.NewGroup(screen)
		screen.group = group
		return group
	}
}

// AccountsScreen lists the user's accounts with live balances. Pressing one
// opens it for editing.
type AccountsScreen struct {
	chatui.BaseScreen

	deps  Deps
	group *chatui.Group

	newAccount     *chatui.Button
	accountButtons []chatui.Component
	loaded         bool
}

func newAccountsScreen(deps Deps) *AccountsScreen {
	s := &AccountsScreen{deps: deps}
	s.newAccount = chatui.NewButton("➕ new", func(ev *chatui.Event, _ *chatui.Button) error {
		s.invalidate()
		s.group.GoTo(newAccountCreateScreen(s.deps, s.group))
		return nil
	})
	s.SetMessage("Accounts")
	s.Add(s.newAccount)
	return s
}

func (s *AccountsScreen) Layout(ev *chatui.Event) ([][]chatui.Cell, error) {
	if err := s.load(ev.UserID); err != nil {
		return nil, err
	}

	rows := chatui.Grid(s.accountButtons, 3)
	rows = append(rows, chatui.Row(s.newAccount))
	return rows, nil
}

func (s *AccountsScreen) load(userID int64) error {
	if s.loaded {
		return nil
	}

	accounts, err := s.deps.Accounts.GetUserAccountsWithBalance(userID)
	if err != nil {
		return err
	}
	for _, account := range accounts {
		accountID := account.ID
		b := chatui.NewButton(fmt.Sprintf("%s %s", account.Name, money.Format(account.Balance)),
			func(ev *chatui.Event, _ *chatui.Button) error {
				s.invalidate()
				s.group.GoTo(newAccountEditScreen(s.deps, s.group, accountID))
				return nil
			})
		b.Data = strconv.FormatUint(uint64(accountID), 10)
		s.accountButtons = append(s.accountButtons, b)
		s.Add(b)
	}
	s.loaded = true
	return nil
}

func (s *AccountsScreen) invalidate() {
	for _, b := range s.accountButtons {
		s.Remove(b)
	}
	s.accountButtons = nil
	s.loaded = false
}

// AccountCreateScreen collects a name and an opening balance.
type AccountCreateScreen struct {
	chatui.BaseScreen

	deps  Deps
	group *chatui.Group

	name   *chatui.Input[string]
	amount *chatui.Input[float64]
	save   *chatui.Button
	back   *chatui.Button
}

func newAccountCreateScreen(deps Deps, group *chatui.Group) *AccountCreateScreen {
	s := &AccountCreateScreen{deps: deps, group: group}
	s.build()
	s.save = chatui.NewButton("✅ Save", s.saveHandler)
	s.Add(s.save)
	return s
}

func (s *AccountCreateScreen) build() {
	s.name = chatui.NewInput("Name:", chatui.Identity)
	s.amount = chatui.NewAmountInput("Balance:", chatui.AnyAmount)
	s.back = chatui.NewButton("⬅️ back", func(ev *chatui.Event, _ *chatui.Button) error {
		s.group.GoBack()
		return nil
	})
	s.SetMessage("New account")
	s.Add(s.name, s.amount, s.back)
}

func (s *AccountCreateScreen) Layout(ev *chatui.Event) ([][]chatui.Cell, error) {
	rows := [][]chatui.Cell{chatui.Row(s.name), chatui.Row(s.amount)}
	if s.formFilled() {
		rows = append(rows, chatui.Row(s.save))
	}
	rows = append(rows, chatui.Row(s.back))
	return rows, nil
}

func (s *AccountCreateScreen) formFilled() bool {
	return s.name.Filled() && s.amount.Filled()
}

func (s *AccountCreateScreen) saveHandler(ev *chatui.Event, _ *chatui.Button) error {
	name, _ := s.name.Value()
	amount, _ := s.amount.Value()
	if _, err := s.deps.Accounts.CreateAccount(ev.UserID, name, amount); err != nil {
		return err
	}
	s.group.GoBack()
	return nil
}

// AccountEditScreen prefills the form and saves the balance input as a live
// balance correction. Also offers deletion.
type AccountEditScreen struct {
	AccountCreateScreen

	accountID uint
	delete    *chatui.Button
	loaded    bool
}

func newAccountEditScreen(deps Deps, group *chatui.Group, accountID uint) *AccountEditScreen {
	s := &AccountEditScreen{accountID: accountID}
	s.deps = deps
	s.group = group
	s.build()
	s.SetMessage("Edit account")
	s.save = chatui.NewButton("✅ Save", s.saveHandler)
	s.delete = chatui.NewButton("🗑 Delete", func(ev *chatui.Event, _ *chatui.Button) error {
		s.group.GoTo(NewDeleteScreen(s.group, func(ev *chatui.Event) error {
			return s.deps.Accounts.DeleteAccount(s.accountID)
		}))
		return nil
	})
	s.Add(s.save, s.delete)
	return s
}

func (s *AccountEditScreen) Layout(ev *chatui.Event) ([][]chatui.Cell, error) {
	if err := s.load(ev.UserID); err != nil {
		return nil, err
	}
	rows, err := s.AccountCreateScreen.Layout(ev)
	if err != nil {
		return nil, err
	}
	return append(rows, chatui.Row(s.delete)), nil
}

func (s *AccountEditScreen) load(userID int64) error {
	if s.loaded {
		return nil
	}
	account, err := s.deps.Accounts.GetUserAccountWithBalance(userID, s.accountID)
	if err != nil {
		return err
	}
	s.name.SetValue(account.Name)
	s.amount.SetValue(account.Balance)
	s.loaded = true
	return nil
}

func (s *AccountEditScreen) saveHandler(ev *chatui.Event, _ *chatui.Button) error {
	account, err := s.deps.Accounts.GetUserAccountWithBalance(ev.UserID, s.accountID)
	if err != nil {
		return err
	}
	name, _ := s.name.Value()
	account.Name = name
	newBalance, _ := s.amount.Value()
	if err := s.deps.Accounts.UpdateAccount(ev.UserID, &account.Account, &newBalance); err != nil {
		return err
	}
	s.group.GoBack()
	return nil
}
