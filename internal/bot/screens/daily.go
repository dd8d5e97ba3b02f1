package screens

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"expenis/internal/chatui"
	"expenis/internal/models"
	"expenis/internal/money"
	"expenis/internal/services"
)

// NewDailyGroup builds the /start feature: the per-day transaction browser
// with the transaction forms and the pairing confirmation reachable from it.
func NewDailyGroup(deps Deps) chatui.GroupFactory {
	return func() *chatui.Group {
		state := &groupState{}
		screen := newDailyScreen(deps, state)
		group := chatui.NewGroup(screen)
		screen.group = group
		return group
	}
}

// DailyScreen lists one day's transactions as buttons, with paging arrows
// and a stats message. Pressing a transaction opens it for editing.
type DailyScreen struct {
	chatui.BaseScreen

	deps  Deps
	state *groupState
	group *chatui.Group

	left     *chatui.Button
	today    *chatui.Button
	right    *chatui.Button
	newEntry *chatui.Button
	hline    *chatui.Hline

	selectedDate time.Time
	// transactions is the lazily loaded day view; nil means reload on the
	// next layout.
	transactions []models.Transaction
	txButtons    []*chatui.Button
}

func newDailyScreen(deps Deps, state *groupState) *DailyScreen {
	s := &DailyScreen{
		deps:         deps,
		state:        state,
		selectedDate: time.Now().UTC().Truncate(24 * time.Hour),
	}
	s.left = chatui.NewButton("◀", func(ev *chatui.Event, _ *chatui.Button) error {
		s.selectedDate = s.selectedDate.AddDate(0, 0, -1)
		s.invalidate()
		return nil
	})
	s.today = chatui.NewButton("today", func(ev *chatui.Event, _ *chatui.Button) error {
		s.selectedDate = time.Now().UTC().Truncate(24 * time.Hour)
		s.invalidate()
		return nil
	})
	s.right = chatui.NewButton("▶", func(ev *chatui.Event, _ *chatui.Button) error {
		s.selectedDate = s.selectedDate.AddDate(0, 0, 1)
		s.invalidate()
		return nil
	})
	s.newEntry = chatui.NewButton("➕ new", func(ev *chatui.Event, _ *chatui.Button) error {
		s.invalidate()
		s.group.GoTo(newTransactionCreateScreen(s.deps, s.state, s.group))
		return nil
	})
	s.hline = chatui.NewHline()
	s.Add(s.left, s.today, s.right, s.newEntry, s.hline)
	return s
}

func (s *DailyScreen) Layout(ev *chatui.Event) ([][]chatui.Cell, error) {
	if err := s.load(ev.UserID); err != nil {
		return nil, err
	}

	var rows [][]chatui.Cell
	for _, b := range s.txButtons {
		rows = append(rows, chatui.Row(b))
	}
	rows = append(rows,
		chatui.Row(s.hline),
		chatui.Row(s.newEntry),
		chatui.Row(s.left, s.today, s.right),
	)
	return rows, nil
}

// HandleCommand reacts to `/start <session-id>` deep links from the QR code.
func (s *DailyScreen) HandleCommand(ev *chatui.Event, args []string) error {
	if len(args) == 0 {
		return nil
	}
	s.group.GoTo(newConfirmSessionScreen(s.deps, s.group, args[0]))
	return nil
}

func (s *DailyScreen) load(userID int64) error {
	if s.transactions != nil {
		return nil
	}

	transactions, err := s.deps.Transactions.GetForPeriod(userID, s.selectedDate, s.selectedDate, services.TransactionFilter{})
	if err != nil {
		return err
	}
	s.transactions = transactions
	s.SetMessage(dailyMessage(transactions, s.selectedDate))

	for _, tx := range transactions {
		txID := tx.ID
		b := chatui.NewButton(transactionLabel(tx), func(ev *chatui.Event, _ *chatui.Button) error {
			s.invalidate()
			s.group.GoTo(newTransactionEditScreen(s.deps, s.state, s.group, txID))
			return nil
		})
		b.Data = strconv.FormatUint(uint64(txID), 10)
		s.txButtons = append(s.txButtons, b)
		s.Add(b)
	}
	return nil
}

// invalidate drops the loaded day so it is rebuilt on the next layout.
func (s *DailyScreen) invalidate() {
	for _, b := range s.txButtons {
		s.Remove(b)
	}
	s.txButtons = nil
	s.transactions = nil
}

func transactionLabel(tx models.Transaction) string {
	emoji := "🔴"
	if tx.Category.Type == models.CategoryTypeIncome {
		emoji = "🟢"
	}
	label := fmt.Sprintf("%s %s (%s)", emoji, money.Format(tx.Amount), tx.Category.Name)
	if tx.Description != "" {
		label += " " + tx.Description
	}
	return label
}

func dailyMessage(transactions []models.Transaction, day time.Time) string {
	var income, expense float64
	for _, tx := range transactions {
		switch tx.Category.Type {
		case models.CategoryTypeIncome:
			income += tx.Amount
		case models.CategoryTypeExpense:
			expense += tx.Amount
		}
	}
	total := income - expense

	width := len(money.Format(income))
	if l := len(money.Format(expense)); l > width {
		width = l
	}
	if l := len(money.Format(total)); l > width {
		width = l
	}
	width += 2

	var b strings.Builder
	fmt.Fprintf(&b, "<code>%s</code>\n", day.Format("2006-01-02"))
	fmt.Fprintf(&b, "<code>🟢 Income  %*s</code>\n", width, money.Format(income))
	fmt.Fprintf(&b, "<code>🔴 Expense %*s</code>\n", width, money.Format(expense))
	fmt.Fprintf(&b, "<code>%s</code>\n", strings.Repeat("─", 10+width))
	fmt.Fprintf(&b, "<code>📊 Total   %*s</code>", width, money.Format(total))
	return b.String()
}

// ConfirmSessionScreen asks the user to approve a web login initiated by a
// scanned QR code.
type ConfirmSessionScreen struct {
	chatui.BaseScreen

	confirm *chatui.Button
	cancel  *chatui.Button
}

func newConfirmSessionScreen(deps Deps, group *chatui.Group, sessionID string) *ConfirmSessionScreen {
	s := &ConfirmSessionScreen{}
	s.confirm = chatui.NewButton("✅ Confirm login", func(ev *chatui.Event, _ *chatui.Button) error {
		_, err := deps.Sessions.ConfirmSession(ev.UserID, sessionID)
		group.GoHome()
		if err != nil {
			return err
		}
		deps.notify(ev, "Login confirmed, the dashboard will sign in shortly")
		return nil
	})
	s.cancel = chatui.NewButton("❌ Deny", func(ev *chatui.Event, _ *chatui.Button) error {
		group.GoHome()
		return nil
	})
	s.SetMessage("Confirm web login?")
	s.Add(s.confirm, s.cancel)
	return s
}

func (s *ConfirmSessionScreen) Layout(ev *chatui.Event) ([][]chatui.Cell, error) {
	return [][]chatui.Cell{chatui.Row(s.confirm, s.cancel)}, nil
}
