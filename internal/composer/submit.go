package composer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SajjanPaudel/bettersplit/internal/expense"
	"github.com/SajjanPaudel/bettersplit/internal/models"
)

// ErrSubmitInProgress is returned when Submit or Update is called
// while a previous submission is still in flight.
var ErrSubmitInProgress = errors.New("submission already in progress")

// Submit validates the batch and issues one create call per draft,
// concurrently, waiting for all of them.
//
// Success is all-or-nothing at this layer: any failed call makes the
// whole submission fail with an aggregate error, and the batch is kept
// so the user can edit and resubmit. Individual successes are not
// rolled back. On full success the batch resets to a single blank
// draft under the still-selected group. In-flight calls are never
// cancelled from here; there is no retry and no timeout beyond the
// caller's context.
func (c *Composer) Submit(ctx context.Context) error {
	if c.submitting {
		return ErrSubmitInProgress
	}
	if err := c.validator.Validate(c.batch); err != nil {
		return err
	}

	c.submitting = true
	defer func() { c.submitting = false }()

	// Snapshot payloads before any call goes out, so concurrent
	// responses can never observe a half-edited draft.
	payloads := make([]*models.ExpenseCreate, c.batch.Len())
	for i, d := range c.batch.Drafts {
		payloads[i] = d.Payload()
	}

	errs := make([]error, len(payloads))
	var wg sync.WaitGroup
	for i, p := range payloads {
		wg.Add(1)
		go func(i int, p *models.ExpenseCreate) {
			defer wg.Done()
			if err := c.submitter.CreateExpense(ctx, p); err != nil {
				errs[i] = fmt.Errorf("create %q: %w", p.Name, err)
			}
		}(i, p)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		slog.Warn("batch submission failed", "drafts", len(payloads), "error", err)
		return err
	}

	slog.Info("batch submitted", "drafts", len(payloads))
	c.batch = expense.NewBatch("")
	if c.group != nil {
		c.batch.Drafts[0].GroupID = c.group.ID
		c.seedDefaultPayer(c.batch.Drafts[0])
	}
	return nil
}

// Update validates draft i on its own and submits it as a replacement
// for an existing expense. The draft stays in the batch either way.
func (c *Composer) Update(ctx context.Context, i int, expenseID string) error {
	if c.submitting {
		return ErrSubmitInProgress
	}
	d, err := c.draftAt(i)
	if err != nil {
		return err
	}
	if err := c.validator.Validate(&expense.Batch{Drafts: []*expense.Draft{d}}); err != nil {
		return err
	}

	c.submitting = true
	defer func() { c.submitting = false }()

	if err := c.submitter.UpdateExpense(ctx, expenseID, d.Payload()); err != nil {
		slog.Warn("expense update failed", "expense_id", expenseID, "error", err)
		return fmt.Errorf("update %q: %w", expenseID, err)
	}
	slog.Info("expense updated", "expense_id", expenseID)
	return nil
}
