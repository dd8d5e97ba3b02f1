package chatui

import (
	"fmt"
	"strings"

	"expenis/internal/money"
)

// Parser converts a raw text message into a typed value. Returning an error
// leaves the input empty and surfaces the message to the user.
type Parser[T any] func(raw string) (T, error)

// Identity accepts any text, trimmed.
func Identity(raw string) (string, error) {
	return strings.TrimSpace(raw), nil
}

// PositiveAmount parses a strictly positive monetary amount.
func PositiveAmount(raw string) (float64, error) {
	return money.ParsePositiveAmount(raw)
}

// AnyAmount parses any monetary amount, negative included.
func AnyAmount(raw string) (float64, error) {
	return money.ParseAmount(raw)
}

// TextInput is implemented by components that consume text messages. The
// runtime gives each text message to the focused input, or to the first
// unfilled one when nothing is focused.
type TextInput interface {
	Component
	Focus()
	Blur()
	Focused() bool
	Filled() bool
	Consume(text string) error
}

// Input is a labelled, typed field. Pressing its cell focuses it; the next
// text message is parsed and stored. Display shows the current value or an
// empty-set marker.
type Input[T any] struct {
	Label string

	token   string
	parse   Parser[T]
	display func(T) string
	value   *T
	focused bool
}

// NewInput creates an input with the given parser.
func NewInput[T any](label string, parse Parser[T]) *Input[T] {
	return &Input[T]{Label: label, token: nextToken(), parse: parse}
}

// NewAmountInput creates a float input rendered with money formatting.
func NewAmountInput(label string, parse Parser[float64]) *Input[float64] {
	in := NewInput(label, parse)
	in.display = money.Format
	return in
}

func (in *Input[T]) Token() string { return in.token }

func (in *Input[T]) Render() Cell {
	label := in.Label + " ∅"
	if in.value != nil {
		label = in.Label + " " + in.format(*in.value)
	}
	if in.focused {
		label = "✏️ " + label
	}
	return Cell{Label: label, Token: in.token}
}

func (in *Input[T]) format(v T) string {
	if in.display != nil {
		return in.display(v)
	}
	return fmt.Sprintf("%v", v)
}

func (in *Input[T]) Focus()        { in.focused = true }
func (in *Input[T]) Blur()         { in.focused = false }
func (in *Input[T]) Focused() bool { return in.focused }
func (in *Input[T]) Filled() bool  { return in.value != nil }

// Consume parses the text into the value. On parse failure the value is left
// untouched and the input stays focused so the user can retry.
func (in *Input[T]) Consume(text string) error {
	v, err := in.parse(text)
	if err != nil {
		return err
	}
	in.value = &v
	in.focused = false
	return nil
}

// Value returns the parsed value and whether one has been set.
func (in *Input[T]) Value() (T, bool) {
	if in.value == nil {
		var zero T
		return zero, false
	}
	return *in.value, true
}

// SetValue pre-fills the input, e.g. when editing an existing entity.
func (in *Input[T]) SetValue(v T) {
	in.value = &v
	in.focused = false
}

// Clear resets the input to empty.
func (in *Input[T]) Clear() {
	in.value = nil
	in.focused = false
}
