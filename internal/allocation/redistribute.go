package allocation

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Redistribute recomputes the unpinned entries of s so the whole set
// sums to the given total, leaving pinned entries untouched.
//
// The remaining amount (total minus the pinned sum) is divided equally
// across the unpinned entries, each share rounded half-up to two
// decimals. Because every entry gets the same rounded share, the set
// may drift from the total by up to a cent per extra unpinned entry;
// that slack is accepted rather than corrected, and the validator's
// tolerance accounts for it.
//
// An empty total resets unpinned entries to the empty string (the
// no-amount-entered state). A non-empty total that fails to parse is
// treated as zero. If every entry is pinned this is a no-op: whatever
// mismatch remains is a validation concern, not an allocation one.
func Redistribute(s *Set, total string) {
	var unpinned []int
	pinnedSum := decimal.Zero
	for i, e := range s.entries {
		if e.Pinned {
			pinnedSum = pinnedSum.Add(ParseAmount(e.Amount))
		} else {
			unpinned = append(unpinned, i)
		}
	}
	if len(unpinned) == 0 {
		return
	}

	if strings.TrimSpace(total) == "" {
		for _, i := range unpinned {
			s.entries[i].Amount = ""
		}
		return
	}

	t := ParseAmount(strings.TrimSpace(total))
	remaining := t.Sub(pinnedSum)
	share := remaining.Div(decimal.NewFromInt(int64(len(unpinned)))).Round(2)
	formatted := share.StringFixed(2)
	for _, i := range unpinned {
		s.entries[i].Amount = formatted
	}
}
