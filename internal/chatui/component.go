package chatui

import (
	"strconv"
	"sync/atomic"
)

var tokenCounter atomic.Int64

// nextToken returns a process-unique component token.
func nextToken() string {
	return "c" + strconv.FormatInt(tokenCounter.Add(1), 10)
}

// Component is anything a screen can place into its layout. Every component
// renders to exactly one keyboard cell.
type Component interface {
	Token() string
	Render() Cell
}

// pressable components react to their cell being pressed.
type pressable interface {
	HandlePress(ev *Event) error
}

// Button is a stateless component that invokes a handler when pressed.
type Button struct {
	Label string
	// Data is an optional opaque payload for the handler, e.g. an entity id.
	Data string

	token   string
	onPress func(ev *Event, b *Button) error
}

// NewButton creates a button. onPress may be nil for inert buttons.
func NewButton(label string, onPress func(ev *Event, b *Button) error) *Button {
	return &Button{Label: label, token: nextToken(), onPress: onPress}
}

func (b *Button) Token() string { return b.token }

func (b *Button) Render() Cell {
	return Cell{Label: b.Label, Token: b.token}
}

func (b *Button) HandlePress(ev *Event) error {
	if b.onPress == nil {
		return nil
	}
	return b.onPress(ev, b)
}

// Hline is a non-interactive separator cell.
type Hline struct {
	token string
}

func NewHline() *Hline {
	return &Hline{token: nextToken()}
}

func (h *Hline) Token() string { return h.token }

func (h *Hline) Render() Cell {
	return Cell{Label: "───────────────", Token: h.token}
}
