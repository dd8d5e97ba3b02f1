package chatui

// Group is one feature area bound to a chat command, owning a navigation
// stack of screens. The home screen sits at index 0 and is never popped.
// Navigation methods only mutate the stack; the runtime repaints the new top
// after the triggering handler returns.
type Group struct {
	stack []Screen
}

// NewGroup creates a group showing its home screen.
func NewGroup(home Screen) *Group {
	return &Group{stack: []Screen{home}}
}

// Top returns the currently displayed screen.
func (g *Group) Top() Screen {
	return g.stack[len(g.stack)-1]
}

// Home returns the group's home screen.
func (g *Group) Home() Screen {
	return g.stack[0]
}

// GoTo pushes a screen onto the stack and displays it.
func (g *Group) GoTo(s Screen) {
	g.stack = append(g.stack, s)
}

// GoBack pops the current screen. On the home screen it is a no-op.
func (g *Group) GoBack() {
	if len(g.stack) > 1 {
		g.stack = g.stack[:len(g.stack)-1]
	}
}

// GoHome truncates the stack down to the home screen.
func (g *Group) GoHome() {
	g.stack = g.stack[:1]
}

// Depth returns the stack size.
func (g *Group) Depth() int {
	return len(g.stack)
}
