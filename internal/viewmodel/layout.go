// Package viewmodel builds render rows for the schedule, standings, overall
// ranking and score entry views. Every Build function is a pure full rebuild.
package viewmodel

import "strconv"

// CompactWidth is the presentation width below which cards replace tables.
const CompactWidth = 768

type Layout string

const (
	LayoutTable Layout = "table"
	LayoutCards Layout = "cards"
)

func SelectLayout(width int) Layout {
	if width < CompactWidth {
		return LayoutCards
	}
	return LayoutTable
}

// Options carries the per-build inputs that are not tournament data.
type Options struct {
	Width         int
	Authenticated bool
}

// FormatBalance prefixes non-negative balances with "+".
func FormatBalance(balance int) string {
	if balance >= 0 {
		return "+" + strconv.Itoa(balance)
	}
	return strconv.Itoa(balance)
}
