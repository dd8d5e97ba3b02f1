package chatui

import (
	"testing"

	apperrors "expenis/internal/errors"
)

// --- test doubles ---

type paintCall struct {
	message string
	layout  [][]Cell
	edit    bool
}

type fakeRenderer struct {
	paints  []paintCall
	notices []string
}

func (r *fakeRenderer) Paint(ev *Event, message string, layout [][]Cell, edit bool) error {
	r.paints = append(r.paints, paintCall{message: message, layout: layout, edit: edit})
	return nil
}

func (r *fakeRenderer) Notify(ev *Event, text string) error {
	r.notices = append(r.notices, text)
	return nil
}

// testScreen is a minimal screen with one button and two inputs.
type testScreen struct {
	BaseScreen
	button *Button
	name   *Input[string]
	amount *Input[float64]

	commandArgs []string
}

func newTestScreen(onPress func(ev *Event, b *Button) error) *testScreen {
	s := &testScreen{
		button: NewButton("go", onPress),
		name:   NewInput("Name:", Identity),
		amount: NewInput("Amount:", PositiveAmount),
	}
	s.SetMessage("test")
	s.Add(s.button, s.name, s.amount)
	return s
}

func (s *testScreen) Layout(ev *Event) ([][]Cell, error) {
	return [][]Cell{Row(s.button), Row(s.name), Row(s.amount)}, nil
}

func (s *testScreen) HandleCommand(ev *Event, args []string) error {
	s.commandArgs = args
	return nil
}

func command(userID int64, name string, args ...string) *Event {
	return &Event{UserID: userID, Kind: EventCommand, Command: name, Args: args}
}

func callback(userID int64, token string) *Event {
	return &Event{UserID: userID, Kind: EventCallback, Token: token}
}

func text(userID int64, body string) *Event {
	return &Event{UserID: userID, Kind: EventText, Text: body}
}

// --- tests ---

func TestGroupNavigation(t *testing.T) {
	home := newTestScreen(nil)
	g := NewGroup(home)

	second := newTestScreen(nil)
	second.name.SetValue("kept")

	g.GoTo(second)
	if g.Top() != second {
		t.Fatal("expected pushed screen on top")
	}

	g.GoBack()
	if g.Top() != home {
		t.Fatal("expected home after back")
	}

	// Back beyond home stays on home.
	g.GoBack()
	if g.Top() != home || g.Depth() != 1 {
		t.Fatal("expected back on home to be a no-op")
	}

	g.GoTo(second)
	if v, _ := g.Top().(*testScreen).name.Value(); v != "kept" {
		t.Error("expected component state to survive navigation")
	}

	g.GoTo(newTestScreen(nil))
	g.GoHome()
	if g.Top() != home || g.Depth() != 1 {
		t.Fatal("expected home after GoHome")
	}
}

func TestRuntimeDispatch(t *testing.T) {
	t.Run("command renders home and repaint sends", func(t *testing.T) {
		renderer := &fakeRenderer{}
		rt := NewRuntime(renderer)
		rt.Bind("start", func() *Group { return NewGroup(newTestScreen(nil)) })

		rt.Dispatch(command(1, "start"))

		if len(renderer.paints) != 1 {
			t.Fatalf("expected 1 paint, got %d", len(renderer.paints))
		}
		if renderer.paints[0].edit {
			t.Error("command repaint should send a new message, not edit")
		}
		if renderer.paints[0].message != "test" {
			t.Errorf("expected message 'test', got %q", renderer.paints[0].message)
		}
	})

	t.Run("callback token routes to owning button and edits", func(t *testing.T) {
		renderer := &fakeRenderer{}
		rt := NewRuntime(renderer)

		pressed := false
		screen := newTestScreen(func(ev *Event, b *Button) error {
			pressed = true
			return nil
		})
		rt.Bind("start", func() *Group { return NewGroup(screen) })

		rt.Dispatch(command(1, "start"))
		rt.Dispatch(callback(1, screen.button.Token()))

		if !pressed {
			t.Error("expected button handler to run")
		}
		if len(renderer.paints) != 2 || !renderer.paints[1].edit {
			t.Error("callback repaint should edit in place")
		}
	})

	t.Run("unknown token is ignored", func(t *testing.T) {
		renderer := &fakeRenderer{}
		rt := NewRuntime(renderer)
		rt.Bind("start", func() *Group { return NewGroup(newTestScreen(nil)) })

		rt.Dispatch(command(1, "start"))
		rt.Dispatch(callback(1, "bogus"))

		if len(renderer.notices) != 0 {
			t.Errorf("expected no notices, got %v", renderer.notices)
		}
	})

	t.Run("text goes to focused input only", func(t *testing.T) {
		renderer := &fakeRenderer{}
		rt := NewRuntime(renderer)
		screen := newTestScreen(nil)
		rt.Bind("start", func() *Group { return NewGroup(screen) })

		rt.Dispatch(command(1, "start"))
		rt.Dispatch(callback(1, screen.amount.Token()))
		rt.Dispatch(text(1, "42"))

		if v, ok := screen.amount.Value(); !ok || v != 42 {
			t.Errorf("expected amount 42, got %v (%v)", v, ok)
		}
		if _, ok := screen.name.Value(); ok {
			t.Error("expected name input untouched: one input per message")
		}
	})

	t.Run("text falls back to first unfilled input", func(t *testing.T) {
		renderer := &fakeRenderer{}
		rt := NewRuntime(renderer)
		screen := newTestScreen(nil)
		rt.Bind("start", func() *Group { return NewGroup(screen) })

		rt.Dispatch(command(1, "start"))
		rt.Dispatch(text(1, "Wallet"))

		if v, ok := screen.name.Value(); !ok || v != "Wallet" {
			t.Errorf("expected name Wallet, got %v (%v)", v, ok)
		}
	})

	t.Run("parse failure notifies and keeps value empty", func(t *testing.T) {
		renderer := &fakeRenderer{}
		rt := NewRuntime(renderer)
		screen := newTestScreen(nil)
		rt.Bind("start", func() *Group { return NewGroup(screen) })

		rt.Dispatch(command(1, "start"))
		rt.Dispatch(callback(1, screen.amount.Token()))
		rt.Dispatch(text(1, "not a number"))

		if len(renderer.notices) != 1 {
			t.Fatalf("expected 1 notice, got %d", len(renderer.notices))
		}
		if _, ok := screen.amount.Value(); ok {
			t.Error("expected amount to stay empty after parse failure")
		}
	})

	t.Run("command arguments reach the home screen", func(t *testing.T) {
		renderer := &fakeRenderer{}
		rt := NewRuntime(renderer)
		screen := newTestScreen(nil)
		rt.Bind("start", func() *Group { return NewGroup(screen) })

		rt.Dispatch(command(1, "start", "session-123"))

		if len(screen.commandArgs) != 1 || screen.commandArgs[0] != "session-123" {
			t.Errorf("expected session-123, got %v", screen.commandArgs)
		}
	})

	t.Run("command arguments reach home from a pushed screen", func(t *testing.T) {
		renderer := &fakeRenderer{}
		rt := NewRuntime(renderer)

		var group *Group
		home := newTestScreen(nil)
		rt.Bind("start", func() *Group {
			group = NewGroup(home)
			return group
		})

		rt.Dispatch(command(1, "start"))
		group.GoTo(newTestScreen(nil))

		rt.Dispatch(command(1, "start", "session-123"))

		if len(home.commandArgs) != 1 || home.commandArgs[0] != "session-123" {
			t.Errorf("expected home to receive session-123, got %v", home.commandArgs)
		}
	})

	t.Run("handler error notifies without popping the stack", func(t *testing.T) {
		renderer := &fakeRenderer{}
		rt := NewRuntime(renderer)

		var group *Group
		var detail *testScreen
		home := newTestScreen(nil)
		rt.Bind("start", func() *Group {
			group = NewGroup(home)
			return group
		})

		rt.Dispatch(command(1, "start"))

		detail = newTestScreen(func(ev *Event, b *Button) error {
			return apperrors.ErrAccountNotFound
		})
		group.GoTo(detail)
		// A no-op event repaints so the token table covers the new top.
		rt.Dispatch(callback(1, "unknown"))

		rt.Dispatch(callback(1, detail.button.Token()))

		if len(renderer.notices) != 1 || renderer.notices[0] != "Account not found" {
			t.Errorf("expected account-not-found notice, got %v", renderer.notices)
		}
		if group.Top() != detail {
			t.Error("expected stack to stay on the failing screen")
		}
	})

	t.Run("users are independent", func(t *testing.T) {
		renderer := &fakeRenderer{}
		rt := NewRuntime(renderer)

		built := 0
		rt.Bind("start", func() *Group {
			built++
			return NewGroup(newTestScreen(nil))
		})

		rt.Dispatch(command(1, "start"))
		rt.Dispatch(command(2, "start"))

		if built != 2 {
			t.Errorf("expected a fresh group per user, got %d", built)
		}
		if len(renderer.paints) != 2 {
			t.Fatalf("expected 2 paints, got %d", len(renderer.paints))
		}
	})

	t.Run("unbound command is ignored", func(t *testing.T) {
		renderer := &fakeRenderer{}
		rt := NewRuntime(renderer)

		rt.Dispatch(command(1, "unknown"))

		if len(renderer.paints) != 0 {
			t.Errorf("expected no paints, got %d", len(renderer.paints))
		}
	})
}
