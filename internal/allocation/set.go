// Package allocation holds the per-side money allocation of an expense
// draft and the redistribution that keeps it summing to the total.
//
// A draft has two independent allocation sets, one for payers and one
// for splits. Each entry carries its amount as a display string and a
// pinned flag: pinned entries were typed by the user and survive
// redistribution untouched; unpinned entries are recomputed whenever
// the total or the membership changes.
package allocation

import "github.com/shopspring/decimal"

// Entry is one member's line on one side of an expense.
type Entry struct {
	// Member is the opaque member ID this line belongs to.
	Member string

	// Amount is the display string for this line. Redistributed entries
	// are formatted to two decimals; pinned entries keep whatever the
	// user typed.
	Amount string

	// Pinned marks a manually entered amount. Redistribution never
	// overwrites a pinned entry; only removing the member deletes it.
	Pinned bool
}

// Set is the ordered allocation for one side of a draft.
type Set struct {
	entries []Entry
}

// NewSet returns an empty allocation set.
func NewSet() *Set {
	return &Set{}
}

// ToggleMember adds the member with a zero, unpinned amount if absent,
// or removes its entry if present. It does not redistribute; callers
// run Redistribute afterwards.
func (s *Set) ToggleMember(memberID string) {
	for i, e := range s.entries {
		if e.Member == memberID {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
	s.entries = append(s.entries, Entry{Member: memberID, Amount: "0"})
}

// SetPinnedAmount records a manually typed amount for the member and
// pins it. Unknown members are ignored.
func (s *Set) SetPinnedAmount(memberID, value string) {
	for i := range s.entries {
		if s.entries[i].Member == memberID {
			s.entries[i].Amount = value
			s.entries[i].Pinned = true
			return
		}
	}
}

// ClearPins unpins every entry. Used when the controlling total amount
// is cleared, so the next redistribution owns all lines again.
func (s *Set) ClearPins() {
	for i := range s.entries {
		s.entries[i].Pinned = false
	}
}

// Has reports whether the member currently has an entry.
func (s *Set) Has(memberID string) bool {
	for _, e := range s.entries {
		if e.Member == memberID {
			return true
		}
	}
	return false
}

// Len returns the number of entries.
func (s *Set) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the entries in order.
func (s *Set) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Members returns the member IDs in entry order.
func (s *Set) Members() []string {
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Member
	}
	return out
}

// Total sums every entry's amount. Empty or unparsable amounts count
// as zero, matching how redistribution treats them.
func (s *Set) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, e := range s.entries {
		sum = sum.Add(ParseAmount(e.Amount))
	}
	return sum
}

// ParseAmount parses a display amount, treating empty or malformed
// input as zero.
func ParseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
