// Package money holds amount formatting and parsing shared by the bot
// screens and the input validators.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Format renders an amount with two decimal places and a space as the
// thousands separator, e.g. 1234567.8 -> "1 234 567.80".
func Format(amount float64) string {
	s := decimal.NewFromFloat(amount).StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	dot := strings.IndexByte(s, '.')
	intPart, fracPart := s[:dot], s[dot:]

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	b.WriteString(fracPart)
	return b.String()
}

// ParseAmount parses a user-entered amount. Commas are accepted as decimal
// separators and surrounding whitespace is ignored.
func ParseAmount(raw string) (float64, error) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", raw)
	}
	f, _ := d.Float64()
	return f, nil
}

// ParsePositiveAmount parses an amount and rejects zero and negative values.
func ParsePositiveAmount(raw string) (float64, error) {
	f, err := ParseAmount(raw)
	if err != nil {
		return 0, err
	}
	if f <= 0 {
		return 0, fmt.Errorf("amount must be positive")
	}
	return f, nil
}
