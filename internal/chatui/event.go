// Package chatui is a declarative screen-and-widget framework for inline
// keyboard bots. Screens own widgets, widgets render to single keyboard
// cells, and a per-user runtime routes callbacks and text messages back to
// the widget that produced them, repainting the current screen after every
// interaction.
package chatui

// EventKind identifies what the chat platform delivered.
type EventKind int

const (
	// EventCallback is an inline keyboard button press.
	EventCallback EventKind = iota
	// EventText is a free-text message.
	EventText
	// EventCommand is a slash command, possibly with arguments.
	EventCommand
)

// Event is a platform update normalized for the runtime.
type Event struct {
	UserID    int64
	ChatID    int64
	MessageID int

	Kind    EventKind
	Token   string
	Text    string
	Command string
	Args    []string
}

// Cell is one rendered keyboard button. Token is an opaque string the
// runtime resolves back to the owning component on press.
type Cell struct {
	Label string
	Token string
}
