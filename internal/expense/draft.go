// Package expense defines the in-progress expense drafts the composer
// edits and the batch they are submitted in.
package expense

import (
	"github.com/google/uuid"

	"github.com/SajjanPaudel/bettersplit/internal/allocation"
	"github.com/SajjanPaudel/bettersplit/internal/models"
)

// Draft is one in-progress expense within a batch. It is mutated by
// every user interaction and discarded on successful submission or
// explicit removal.
type Draft struct {
	ID          string
	Name        string
	TotalAmount string
	Date        string
	GroupID     string

	// Payers and Splits are the two independent allocation sides:
	// who contributed money and who owes a share.
	Payers *allocation.Set
	Splits *allocation.Set
}

// NewDraft returns a blank draft for the given group. GroupID may be
// empty when no group has been selected yet.
func NewDraft(groupID string) *Draft {
	return &Draft{
		ID:      uuid.NewString(),
		GroupID: groupID,
		Payers:  allocation.NewSet(),
		Splits:  allocation.NewSet(),
	}
}

// Payload snapshots the draft into the wire payload for one
// expense-create call. The snapshot is detached: later edits to the
// draft do not affect it.
func (d *Draft) Payload() *models.ExpenseCreate {
	return &models.ExpenseCreate{
		Name:   d.Name,
		Amount: allocation.ParseAmount(d.TotalAmount).InexactFloat64(),
		Date:   d.Date,
		Payers: shares(d.Payers),
		Splits: shares(d.Splits),
		Group:  d.GroupID,
	}
}

func shares(s *allocation.Set) []models.Share {
	entries := s.Entries()
	out := make([]models.Share, len(entries))
	for i, e := range entries {
		out[i] = models.Share{User: e.Member, Amount: e.Amount}
	}
	return out
}

// Batch is the ordered set of drafts submitted together. The first
// draft is the template row and is never removable.
type Batch struct {
	Drafts []*Draft
}

// NewBatch returns a batch holding a single blank draft.
func NewBatch(groupID string) *Batch {
	return &Batch{Drafts: []*Draft{NewDraft(groupID)}}
}

// Len returns the number of drafts in the batch.
func (b *Batch) Len() int {
	return len(b.Drafts)
}
