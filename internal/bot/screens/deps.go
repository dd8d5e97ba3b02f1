// Package screens contains the application's chat screens: daily
// transactions, transaction forms, accounts, categories, and the pairing
// confirmation dialog.
package screens

import (
	"expenis/internal/chatui"
	"expenis/internal/services"
)

// Deps bundles the services and side channels the screens work against.
type Deps struct {
	Accounts     services.AccountServicer
	Categories   services.CategoryServicer
	Transactions services.TransactionServicer
	Sessions     services.SessionServicer

	// Notify sends a plain message to the user outside the screen repaint,
	// e.g. a pairing confirmation.
	Notify func(ev *chatui.Event, text string) error
}

func (d Deps) notify(ev *chatui.Event, text string) {
	if d.Notify == nil {
		return
	}
	_ = d.Notify(ev, text)
}

// groupState carries per-group UI state that outlives a single screen, such
// as the account preselected on the next transaction form.
type groupState struct {
	lastAccountID uint
}
