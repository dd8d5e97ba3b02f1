package screens

import (
	"expenis/internal/chatui"
)

// DeleteScreen is a generic confirmation dialog over a delete callback.
// Confirming deletes and returns to the group's home screen, cancelling just
// goes back.
type DeleteScreen struct {
	chatui.BaseScreen

	confirm *chatui.Button
	cancel  *chatui.Button
}

func NewDeleteScreen(group *chatui.Group, deleteFn func(ev *chatui.Event) error) *DeleteScreen {
	s := &DeleteScreen{}
	s.confirm = chatui.NewButton("🗑 Delete", func(ev *chatui.Event, _ *chatui.Button) error {
		if err := deleteFn(ev); err != nil {
			return err
		}
		group.GoHome()
		return nil
	})
	s.cancel = chatui.NewButton("❌ Cancel", func(ev *chatui.Event, _ *chatui.Button) error {
		group.GoBack()
		return nil
	})
	s.SetMessage("Delete?")
	s.Add(s.confirm, s.cancel)
	return s
}

func (s *DeleteScreen) Layout(ev *chatui.Event) ([][]chatui.Cell, error) {
	return [][]chatui.Cell{chatui.Row(s.confirm, s.cancel)}, nil
}
