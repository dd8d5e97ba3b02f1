package screens

import (
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"expenis/internal/chatui"
	"expenis/internal/models"
	"expenis/internal/services"
	"expenis/internal/testutil"
)

func newTestDeps(t *testing.T) (Deps, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	return Deps{
		Accounts:     services.NewAccountService(db),
		Categories:   services.NewCategoryService(db),
		Transactions: services.NewTransactionService(db),
		Sessions:     services.NewSessionService(db),
	}, db
}

func press(t *testing.T, c chatui.Component, ev *chatui.Event) {
	t.Helper()
	p, ok := c.(interface{ HandlePress(*chatui.Event) error })
	if !ok {
		t.Fatalf("component %T is not pressable", c)
	}
	if err := p.HandlePress(ev); err != nil {
		t.Fatalf("press failed: %v", err)
	}
}

func TestDailyScreen(t *testing.T) {
	t.Run("empty day shows zero totals", func(t *testing.T) {
		deps, _ := newTestDeps(t)
		group := NewDailyGroup(deps)()
		screen := group.Home().(*DailyScreen)

		ev := &chatui.Event{UserID: testutil.NextUserID(), Kind: chatui.EventCommand}
		if _, err := screen.Layout(ev); err != nil {
			t.Fatalf("layout failed: %v", err)
		}

		msg := screen.Message()
		for _, want := range []string{"Income", "Expense", "Total", "0.00"} {
			if !strings.Contains(msg, want) {
				t.Errorf("expected message to contain %q, got %q", want, msg)
			}
		}
	})

	t.Run("lists transactions of the selected day", func(t *testing.T) {
		deps, db := newTestDeps(t)
		userID := testutil.NextUserID()
		account := testutil.CreateTestAccount(t, db, userID, 0)
		category := testutil.CreateTestCategory(t, db, userID, models.CategoryTypeExpense)
		testutil.CreateTestTransaction(t, db, userID, account.ID, category.ID, 30)

		group := NewDailyGroup(deps)()
		screen := group.Home().(*DailyScreen)

		ev := &chatui.Event{UserID: userID, Kind: chatui.EventCommand}
		rows, err := screen.Layout(ev)
		if err != nil {
			t.Fatalf("layout failed: %v", err)
		}

		if len(screen.txButtons) != 1 {
			t.Fatalf("expected 1 transaction button, got %d", len(screen.txButtons))
		}
		label := screen.txButtons[0].Label
		if !strings.Contains(label, "🔴") || !strings.Contains(label, "30.00") {
			t.Errorf("unexpected transaction label %q", label)
		}
		// Transaction rows, hline, new, arrows.
		if len(rows) != 4 {
			t.Errorf("expected 4 rows, got %d", len(rows))
		}
	})

	t.Run("paging invalidates the day view", func(t *testing.T) {
		deps, db := newTestDeps(t)
		userID := testutil.NextUserID()
		account := testutil.CreateTestAccount(t, db, userID, 0)
		category := testutil.CreateTestCategory(t, db, userID, models.CategoryTypeExpense)
		testutil.CreateTestTransaction(t, db, userID, account.ID, category.ID, 30)

		group := NewDailyGroup(deps)()
		screen := group.Home().(*DailyScreen)
		ev := &chatui.Event{UserID: userID, Kind: chatui.EventCallback}

		if _, err := screen.Layout(ev); err != nil {
			t.Fatalf("layout failed: %v", err)
		}
		press(t, screen.left, ev)
		if _, err := screen.Layout(ev); err != nil {
			t.Fatalf("layout failed: %v", err)
		}
		if len(screen.txButtons) != 0 {
			t.Errorf("expected no transactions on the previous day, got %d", len(screen.txButtons))
		}

		press(t, screen.today, ev)
		if _, err := screen.Layout(ev); err != nil {
			t.Fatalf("layout failed: %v", err)
		}
		if len(screen.txButtons) != 1 {
			t.Errorf("expected today's transaction back, got %d buttons", len(screen.txButtons))
		}
	})

	t.Run("start with session id pushes confirmation", func(t *testing.T) {
		deps, _ := newTestDeps(t)
		group := NewDailyGroup(deps)()
		screen := group.Home().(*DailyScreen)

		ev := &chatui.Event{UserID: testutil.NextUserID(), Kind: chatui.EventCommand}
		if err := screen.HandleCommand(ev, []string{"session-123"}); err != nil {
			t.Fatalf("command failed: %v", err)
		}
		if _, ok := group.Top().(*ConfirmSessionScreen); !ok {
			t.Fatalf("expected ConfirmSessionScreen on top, got %T", group.Top())
		}
	})
}

func TestConfirmSessionScreen(t *testing.T) {
	t.Run("confirm promotes session and goes home", func(t *testing.T) {
		deps, _ := newTestDeps(t)
		userID := testutil.NextUserID()

		sessionID, err := deps.Sessions.CreateSession()
		if err != nil {
			t.Fatalf("create session failed: %v", err)
		}

		group := NewDailyGroup(deps)()
		home := group.Home().(*DailyScreen)
		ev := &chatui.Event{UserID: userID, Kind: chatui.EventCommand}
		if err := home.HandleCommand(ev, []string{sessionID}); err != nil {
			t.Fatalf("command failed: %v", err)
		}

		screen := group.Top().(*ConfirmSessionScreen)
		press(t, screen.confirm, ev)

		session, err := deps.Sessions.GetSession(sessionID)
		if err != nil {
			t.Fatalf("get session failed: %v", err)
		}
		if session.Status != models.SessionStatusConfirmed {
			t.Errorf("expected confirmed, got %s", session.Status)
		}
		if session.UserID == nil || *session.UserID != userID {
			t.Errorf("expected user %d, got %v", userID, session.UserID)
		}
		if group.Top() != home {
			t.Error("expected to be back home after confirming")
		}
	})

	t.Run("unknown session errors and goes home", func(t *testing.T) {
		deps, _ := newTestDeps(t)
		group := NewDailyGroup(deps)()
		home := group.Home().(*DailyScreen)

		ev := &chatui.Event{UserID: testutil.NextUserID(), Kind: chatui.EventCommand}
		if err := home.HandleCommand(ev, []string{"no-such"}); err != nil {
			t.Fatalf("command failed: %v", err)
		}

		screen := group.Top().(*ConfirmSessionScreen)
		err := screen.confirm.HandlePress(ev)
		if err == nil {
			t.Error("expected an error for an unknown session")
		}
		if group.Top() != home {
			t.Error("expected to land home even on failure")
		}
	})
}

func TestTransactionCreateScreen(t *testing.T) {
	t.Run("seeds defaults and saves a complete form", func(t *testing.T) {
		deps, db := newTestDeps(t)
		userID := testutil.NextUserID()
		account := testutil.CreateTestAccount(t, db, userID, 100)

		state := &groupState{}
		group := chatui.NewGroup(newDailyScreen(deps, state))
		screen := newTransactionCreateScreen(deps, state, group)
		group.GoTo(screen)

		ev := &chatui.Event{UserID: userID, Kind: chatui.EventCallback}
		if _, err := screen.Layout(ev); err != nil {
			t.Fatalf("layout failed: %v", err)
		}

		if len(screen.incomeBoxes) == 0 || len(screen.expenseBoxes) == 0 {
			t.Fatal("expected default categories to be seeded")
		}
		if screen.formFilled() {
			t.Fatal("form must not be complete before input")
		}

		press(t, screen.accountBoxes[0], ev)
		press(t, screen.expenseBoxes[0], ev)
		if err := screen.amount.Consume("30"); err != nil {
			t.Fatalf("amount consume failed: %v", err)
		}
		if err := screen.description.Consume("lunch"); err != nil {
			t.Fatalf("description consume failed: %v", err)
		}
		if !screen.formFilled() {
			t.Fatal("expected form to be complete")
		}

		press(t, screen.save, ev)

		today := time.Now().UTC()
		rows, err := deps.Transactions.GetForPeriod(userID, today, today, services.TransactionFilter{})
		if err != nil {
			t.Fatalf("period query failed: %v", err)
		}
		if len(rows) != 1 || rows[0].Amount != 30 || rows[0].Description != "lunch" {
			t.Fatalf("unexpected saved transaction: %+v", rows)
		}

		balance, err := deps.Accounts.GetUserAccountWithBalance(userID, account.ID)
		if err != nil {
			t.Fatalf("balance query failed: %v", err)
		}
		if balance.Balance != 70 {
			t.Errorf("expected balance 70, got %v", balance.Balance)
		}
		if state.lastAccountID != account.ID {
			t.Errorf("expected last account %d remembered, got %d", account.ID, state.lastAccountID)
		}
	})

	t.Run("last account is preselected on the next form", func(t *testing.T) {
		deps, db := newTestDeps(t)
		userID := testutil.NextUserID()
		account := testutil.CreateTestAccount(t, db, userID, 0)

		state := &groupState{lastAccountID: account.ID}
		group := chatui.NewGroup(newDailyScreen(deps, state))
		screen := newTransactionCreateScreen(deps, state, group)

		ev := &chatui.Event{UserID: userID, Kind: chatui.EventCallback}
		if _, err := screen.Layout(ev); err != nil {
			t.Fatalf("layout failed: %v", err)
		}
		if screen.accountGroup.Selected() == nil {
			t.Fatal("expected the last used account to be preselected")
		}
	})
}

func TestTransactionEditScreen(t *testing.T) {
	t.Run("prefills and updates", func(t *testing.T) {
		deps, db := newTestDeps(t)
		userID := testutil.NextUserID()
		account := testutil.CreateTestAccount(t, db, userID, 100)
		category := testutil.CreateTestCategory(t, db, userID, models.CategoryTypeExpense)
		tx := testutil.CreateTestTransaction(t, db, userID, account.ID, category.ID, 30)

		state := &groupState{}
		group := chatui.NewGroup(newDailyScreen(deps, state))
		screen := newTransactionEditScreen(deps, state, group, tx.ID)
		group.GoTo(screen)

		ev := &chatui.Event{UserID: userID, Kind: chatui.EventCallback}
		if _, err := screen.Layout(ev); err != nil {
			t.Fatalf("layout failed: %v", err)
		}

		if v, ok := screen.amount.Value(); !ok || v != 30 {
			t.Errorf("expected prefilled amount 30, got %v (%v)", v, ok)
		}
		if screen.accountGroup.Selected() == nil || !screen.expense.Selected() {
			t.Error("expected account and type prefilled")
		}

		if err := screen.amount.Consume("50"); err != nil {
			t.Fatalf("amount consume failed: %v", err)
		}
		press(t, screen.save, ev)

		updated, err := deps.Transactions.GetByID(tx.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if updated.Amount != 50 {
			t.Errorf("expected amount 50, got %v", updated.Amount)
		}

		balance, err := deps.Accounts.GetUserAccountWithBalance(userID, account.ID)
		if err != nil {
			t.Fatalf("balance query failed: %v", err)
		}
		if balance.Balance != 50 {
			t.Errorf("expected balance 50 after edit, got %v", balance.Balance)
		}
	})

	t.Run("delete via confirmation restores balance", func(t *testing.T) {
		deps, db := newTestDeps(t)
		userID := testutil.NextUserID()
		account := testutil.CreateTestAccount(t, db, userID, 100)
		category := testutil.CreateTestCategory(t, db, userID, models.CategoryTypeExpense)
		tx := testutil.CreateTestTransaction(t, db, userID, account.ID, category.ID, 30)

		state := &groupState{}
		home := newDailyScreen(deps, state)
		group := chatui.NewGroup(home)
		screen := newTransactionEditScreen(deps, state, group, tx.ID)
		group.GoTo(screen)

		ev := &chatui.Event{UserID: userID, Kind: chatui.EventCallback}
		if _, err := screen.Layout(ev); err != nil {
			t.Fatalf("layout failed: %v", err)
		}

		press(t, screen.delete, ev)
		confirmScreen, ok := group.Top().(*DeleteScreen)
		if !ok {
			t.Fatalf("expected DeleteScreen, got %T", group.Top())
		}
		press(t, confirmScreen.confirm, ev)

		if group.Top() != home {
			t.Error("expected to be home after confirmed delete")
		}
		if _, err := deps.Transactions.GetByID(tx.ID); err == nil {
			t.Error("expected transaction to be gone")
		}

		balance, err := deps.Accounts.GetUserAccountWithBalance(userID, account.ID)
		if err != nil {
			t.Fatalf("balance query failed: %v", err)
		}
		if balance.Balance != 100 {
			t.Errorf("expected balance back at 100, got %v", balance.Balance)
		}
	})
}

func TestAccountScreens(t *testing.T) {
	t.Run("create account from form", func(t *testing.T) {
		deps, _ := newTestDeps(t)
		userID := testutil.NextUserID()

		group := NewAccountsGroup(deps)()
		home := group.Home().(*AccountsScreen)
		ev := &chatui.Event{UserID: userID, Kind: chatui.EventCallback}

		press(t, home.newAccount, ev)
		screen := group.Top().(*AccountCreateScreen)

		if err := screen.name.Consume("Wallet"); err != nil {
			t.Fatalf("name consume failed: %v", err)
		}
		if err := screen.amount.Consume("100"); err != nil {
			t.Fatalf("amount consume failed: %v", err)
		}
		press(t, screen.save, ev)

		accounts, err := deps.Accounts.GetUserAccountsWithBalance(userID)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(accounts) != 1 || accounts[0].Name != "Wallet" || accounts[0].Balance != 100 {
			t.Fatalf("unexpected accounts: %+v", accounts)
		}
		if group.Top() != home {
			t.Error("expected to be back on the list after save")
		}
	})

	t.Run("edit saves a live balance correction", func(t *testing.T) {
		deps, db := newTestDeps(t)
		userID := testutil.NextUserID()
		account := testutil.CreateTestAccount(t, db, userID, 100)
		category := testutil.CreateTestCategory(t, db, userID, models.CategoryTypeExpense)
		testutil.CreateTestTransaction(t, db, userID, account.ID, category.ID, 30)

		group := NewAccountsGroup(deps)()
		screen := newAccountEditScreen(deps, group, account.ID)
		group.GoTo(screen)

		ev := &chatui.Event{UserID: userID, Kind: chatui.EventCallback}
		if _, err := screen.Layout(ev); err != nil {
			t.Fatalf("layout failed: %v", err)
		}
		if v, ok := screen.amount.Value(); !ok || v != 70 {
			t.Errorf("expected prefilled live balance 70, got %v (%v)", v, ok)
		}

		if err := screen.amount.Consume("500"); err != nil {
			t.Fatalf("amount consume failed: %v", err)
		}
		press(t, screen.save, ev)

		row, err := deps.Accounts.GetUserAccountWithBalance(userID, account.ID)
		if err != nil {
			t.Fatalf("balance query failed: %v", err)
		}
		if row.Balance != 500 {
			t.Errorf("expected balance 500 after correction, got %v", row.Balance)
		}
	})
}

func TestCategoryScreens(t *testing.T) {
	t.Run("list seeds defaults", func(t *testing.T) {
		deps, _ := newTestDeps(t)
		group := NewCategoriesGroup(deps)()
		screen := group.Home().(*CategoriesScreen)

		ev := &chatui.Event{UserID: testutil.NextUserID(), Kind: chatui.EventCommand}
		if _, err := screen.Layout(ev); err != nil {
			t.Fatalf("layout failed: %v", err)
		}
		if len(screen.incomeButtons) == 0 || len(screen.expenseButtons) == 0 {
			t.Error("expected seeded default categories")
		}
	})

	t.Run("create category of selected type", func(t *testing.T) {
		deps, db := newTestDeps(t)
		userID := testutil.NextUserID()
		testutil.CreateTestCategory(t, db, userID, models.CategoryTypeExpense)

		group := NewCategoriesGroup(deps)()
		screen := newCategoryCreateScreen(deps, group, models.CategoryTypeIncome)
		group.GoTo(screen)

		ev := &chatui.Event{UserID: userID, Kind: chatui.EventCallback}
		if err := screen.name.Consume("Bonus"); err != nil {
			t.Fatalf("name consume failed: %v", err)
		}
		press(t, screen.save, ev)

		income, _, err := deps.Categories.GetUserCategories(userID)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(income) != 1 || income[0].Name != "Bonus" {
			t.Fatalf("unexpected income categories: %+v", income)
		}
	})

	t.Run("edit renames", func(t *testing.T) {
		deps, db := newTestDeps(t)
		userID := testutil.NextUserID()
		category := testutil.CreateTestCategory(t, db, userID, models.CategoryTypeExpense)

		group := NewCategoriesGroup(deps)()
		screen := newCategoryEditScreen(deps, group, category.ID)
		group.GoTo(screen)

		ev := &chatui.Event{UserID: userID, Kind: chatui.EventCallback}
		if _, err := screen.Layout(ev); err != nil {
			t.Fatalf("layout failed: %v", err)
		}
		if err := screen.name.Consume("Groceries"); err != nil {
			t.Fatalf("name consume failed: %v", err)
		}
		press(t, screen.save, ev)

		loaded, err := deps.Categories.GetCategoryByID(userID, category.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if loaded.Name != "Groceries" {
			t.Errorf("expected Groceries, got %s", loaded.Name)
		}
	})
}
