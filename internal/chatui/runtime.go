package chatui

import (
	"errors"
	"sync"

	apperrors "expenis/internal/errors"
	"expenis/internal/logger"
)

// Renderer paints screens back to the chat platform. When edit is true the
// existing message is updated in place, otherwise a new message is sent.
type Renderer interface {
	Paint(ev *Event, message string, layout [][]Cell, edit bool) error
	Notify(ev *Event, text string) error
}

// GroupFactory builds a fresh group, typically with a new home screen.
type GroupFactory func() *Group

// Runtime owns per-user UI state and dispatches events to the right widget.
// Events of one user are handled strictly one at a time; users are
// independent of each other.
type Runtime struct {
	renderer  Renderer
	factories map[string]GroupFactory

	mu    sync.Mutex
	users map[int64]*userState
}

type userState struct {
	mu sync.Mutex

	// groups holds the live group per bound command.
	groups map[string]*Group
	// active is the command of the group currently on screen.
	active string
	// tokens maps callback tokens to components of the last render.
	tokens map[string]Component
}

// NewRuntime creates a runtime painting through the given renderer.
func NewRuntime(renderer Renderer) *Runtime {
	return &Runtime{
		renderer:  renderer,
		factories: make(map[string]GroupFactory),
		users:     make(map[int64]*userState),
	}
}

// Bind associates a command with a group factory.
func (rt *Runtime) Bind(command string, factory GroupFactory) {
	rt.factories[command] = factory
}

// Dispatch handles one platform event end to end: route to the owning
// widget, run its handler, repaint the current screen. Handler errors are
// reported to the user without touching the navigation stack.
func (rt *Runtime) Dispatch(ev *Event) {
	state := rt.userState(ev.UserID)
	state.mu.Lock()
	defer state.mu.Unlock()

	group := rt.route(state, ev)
	if group == nil {
		return
	}

	if err := rt.handle(state, group, ev); err != nil {
		rt.report(ev, err)
	}

	if err := rt.repaint(state, group, ev); err != nil {
		logger.Get().Errorw("repaint failed", "user_id", ev.UserID, "error", err)
	}
}

func (rt *Runtime) userState(userID int64) *userState {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	state, ok := rt.users[userID]
	if !ok {
		state = &userState{
			groups: make(map[string]*Group),
			tokens: make(map[string]Component),
		}
		rt.users[userID] = state
	}
	return state
}

// route resolves the group an event belongs to. Commands activate (and lazily
// build) their bound group; callbacks and text go to the active one.
func (rt *Runtime) route(state *userState, ev *Event) *Group {
	if ev.Kind == EventCommand {
		factory, ok := rt.factories[ev.Command]
		if !ok {
			return nil
		}
		group, ok := state.groups[ev.Command]
		if !ok {
			group = factory()
			state.groups[ev.Command] = group
		}
		state.active = ev.Command
		return group
	}

	if state.active == "" {
		return nil
	}
	return state.groups[state.active]
}

func (rt *Runtime) handle(state *userState, group *Group, ev *Event) error {
	top := group.Top()

	switch ev.Kind {
	case EventCommand:
		if len(ev.Args) == 0 {
			return nil
		}
		// Arguments always go to the group's home screen, wherever the
		// user currently is. A QR deep link can arrive mid-form.
		if handler, ok := group.Home().(CommandHandler); ok {
			return handler.HandleCommand(ev, ev.Args)
		}
		return nil

	case EventCallback:
		component, ok := state.tokens[ev.Token]
		if !ok {
			return nil
		}
		if input, ok := component.(TextInput); ok {
			blurInputs(top)
			input.Focus()
			return nil
		}
		if p, ok := component.(pressable); ok {
			return p.HandlePress(ev)
		}
		return nil

	case EventText:
		if input := activeInput(top); input != nil {
			if err := input.Consume(ev.Text); err != nil {
				return apperrors.WithMessage(apperrors.ErrValidationFailed, err.Error())
			}
			return nil
		}
		if handler, ok := top.(TextHandler); ok {
			return handler.HandleText(ev)
		}
		return nil
	}
	return nil
}

// activeInput finds the input that should consume the next text message: the
// focused one, else the first unfilled one.
func activeInput(s Screen) TextInput {
	var firstUnfilled TextInput
	for _, c := range s.Components() {
		input, ok := c.(TextInput)
		if !ok {
			continue
		}
		if input.Focused() {
			return input
		}
		if firstUnfilled == nil && !input.Filled() {
			firstUnfilled = input
		}
	}
	return firstUnfilled
}

func blurInputs(s Screen) {
	for _, c := range s.Components() {
		if input, ok := c.(TextInput); ok {
			input.Blur()
		}
	}
}

// repaint renders the (possibly new) top screen and rebuilds the token
// table. Callback-triggered repaints edit the message in place; text and
// command events produce a new message.
func (rt *Runtime) repaint(state *userState, group *Group, ev *Event) error {
	top := group.Top()

	layout, err := top.Layout(ev)
	if err != nil {
		rt.report(ev, err)
		return nil
	}

	state.tokens = make(map[string]Component)
	for _, c := range top.Components() {
		state.tokens[c.Token()] = c
	}

	return rt.renderer.Paint(ev, top.Message(), layout, ev.Kind == EventCallback)
}

// report surfaces a handler error to the user. Typed application errors show
// their message, everything else a generic one.
func (rt *Runtime) report(ev *Event, err error) {
	text := "Something went wrong, please try again"
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		text = appErr.Message
	}

	logger.Get().Warnw("handler error", "user_id", ev.UserID, "error", err)
	if notifyErr := rt.renderer.Notify(ev, text); notifyErr != nil {
		logger.Get().Errorw("notify failed", "user_id", ev.UserID, "error", notifyErr)
	}
}
