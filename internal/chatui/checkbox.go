package chatui

// CheckBox is a selectable component. Membership in an ExclusiveCheckBoxGroup
// makes selection mutually exclusive within the group.
type CheckBox struct {
	Label string
	// Data is an optional opaque payload, e.g. an entity id.
	Data string
	// OnChange fires after the selection state changed.
	OnChange func(ev *Event, cb *CheckBox) error

	token    string
	selected bool
	group    *ExclusiveCheckBoxGroup
}

// NewCheckBox creates a checkbox. group may be nil for a free-standing toggle.
func NewCheckBox(label string, group *ExclusiveCheckBoxGroup) *CheckBox {
	cb := &CheckBox{Label: label, token: nextToken()}
	if group != nil {
		cb.group = group
		group.members = append(group.members, cb)
	}
	return cb
}

func (c *CheckBox) Token() string { return c.token }

func (c *CheckBox) Selected() bool { return c.selected }

func (c *CheckBox) Render() Cell {
	label := c.Label
	if c.selected {
		label = "✓ " + label
	}
	return Cell{Label: label, Token: c.token}
}

func (c *CheckBox) HandlePress(ev *Event) error {
	if c.group != nil {
		return c.group.press(ev, c)
	}
	c.selected = !c.selected
	return c.notify(ev)
}

func (c *CheckBox) notify(ev *Event) error {
	if c.OnChange == nil {
		return nil
	}
	return c.OnChange(ev, c)
}

// ExclusiveCheckBoxGroup keeps at most one member selected. With Sticky set,
// re-pressing the selected member keeps it selected, so once anything has
// been chosen the group always has exactly one selection. Without Sticky,
// re-pressing toggles the member off.
type ExclusiveCheckBoxGroup struct {
	Sticky bool

	members  []*CheckBox
	selected *CheckBox
}

func NewExclusiveCheckBoxGroup(sticky bool) *ExclusiveCheckBoxGroup {
	return &ExclusiveCheckBoxGroup{Sticky: sticky}
}

// Selected returns the chosen member, or nil.
func (g *ExclusiveCheckBoxGroup) Selected() *CheckBox { return g.selected }

// CheckByData selects the member carrying the given Data payload. Unknown
// payloads are a no-op.
func (g *ExclusiveCheckBoxGroup) CheckByData(ev *Event, data string) error {
	for _, cb := range g.members {
		if cb.Data == data {
			return g.Check(ev, cb)
		}
	}
	return nil
}

// Check programmatically selects a member, unchecking any previous one.
func (g *ExclusiveCheckBoxGroup) Check(ev *Event, cb *CheckBox) error {
	if g.selected == cb {
		return nil
	}
	if g.selected != nil {
		g.selected.selected = false
		if err := g.selected.notify(ev); err != nil {
			return err
		}
	}
	g.selected = cb
	cb.selected = true
	return cb.notify(ev)
}

func (g *ExclusiveCheckBoxGroup) press(ev *Event, cb *CheckBox) error {
	if g.selected == cb {
		if g.Sticky {
			return nil
		}
		g.selected = nil
		cb.selected = false
		return cb.notify(ev)
	}
	return g.Check(ev, cb)
}
