package chatui

// Screen is a stateful view. Layout returns the rendered keyboard rows and
// may lazily create components; Components must reflect everything that can
// appear in the layout, in declaration order, because the runtime rebuilds
// its token table from it after every render.
type Screen interface {
	Components() []Component
	Layout(ev *Event) ([][]Cell, error)
	Message() string
}

// CommandHandler is implemented by home screens that react to their group's
// bound command being re-issued with arguments, e.g. a pairing deep link.
type CommandHandler interface {
	HandleCommand(ev *Event, args []string) error
}

// TextHandler is implemented by screens that want text messages no input
// consumed.
type TextHandler interface {
	HandleText(ev *Event) error
}

// BaseScreen provides component bookkeeping and the display message. Embed it
// and implement Layout.
type BaseScreen struct {
	components []Component
	message    string
}

// Add registers components with the screen.
func (s *BaseScreen) Add(components ...Component) {
	s.components = append(s.components, components...)
}

// Remove unregisters a component, typically a lazily built list entry.
func (s *BaseScreen) Remove(c Component) {
	for i, existing := range s.components {
		if existing == c {
			s.components = append(s.components[:i], s.components[i+1:]...)
			return
		}
	}
}

func (s *BaseScreen) Components() []Component { return s.components }

func (s *BaseScreen) Message() string { return s.message }

// SetMessage sets the text shown above the keyboard.
func (s *BaseScreen) SetMessage(m string) { s.message = m }

// Row renders components into a single keyboard row.
func Row(components ...Component) []Cell {
	row := make([]Cell, 0, len(components))
	for _, c := range components {
		row = append(row, c.Render())
	}
	return row
}

// Grid renders components into rows of at most n cells.
func Grid(components []Component, n int) [][]Cell {
	var rows [][]Cell
	var row []Cell
	for _, c := range components {
		row = append(row, c.Render())
		if len(row) == n {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}
