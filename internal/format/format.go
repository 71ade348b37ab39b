// Package format renders API values for terminal display.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Amount formats a monetary amount with two decimals and its currency code.
// Example: "1250.50 NGN"
func Amount(d decimal.Decimal, currency string) string {
	s := d.StringFixed(2)
	if currency == "" {
		return s
	}
	return s + " " + strings.ToUpper(currency)
}

// DurationHuman formats a duration for human display.
// Examples: "2h", "30m", "1h30m", "45s", "250ms"
func DurationHuman(d time.Duration) string {
	if d >= time.Hour {
		hours := d / time.Hour
		minutes := (d % time.Hour) / time.Minute
		if minutes > 0 {
			return fmt.Sprintf("%dh%dm", hours, minutes)
		}
		return fmt.Sprintf("%dh", hours)
	}
	if d >= time.Minute {
		return fmt.Sprintf("%dm", d/time.Minute)
	}
	if d >= time.Second {
		return fmt.Sprintf("%ds", d/time.Second)
	}
	return fmt.Sprintf("%dms", d/time.Millisecond)
}

// Hash shortens a transaction hash to its first 6 and last 4 characters.
// Hashes of 12 characters or fewer are returned unchanged.
func Hash(h string) string {
	if len(h) <= 12 {
		return h
	}
	return h[:6] + "..." + h[len(h)-4:]
}

// Hashes shortens and joins a list of hashes, or returns "-" when empty.
func Hashes(hs []string) string {
	if len(hs) == 0 {
		return "-"
	}
	out := make([]string, len(hs))
	for i, h := range hs {
		out[i] = Hash(h)
	}
	return strings.Join(out, ", ")
}

// Page formats a pagination position. Example: "page 2/3 (6 total)"
func Page(page, totalPages, total int) string {
	return fmt.Sprintf("page %d/%d (%d total)", page, totalPages, total)
}
