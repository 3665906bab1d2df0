// Package composer owns the expense batch being composed and wires
// user edits to allocation and redistribution. Every mutation runs to
// completion before the next, mirroring an event-driven UI; the
// composer is meant to be driven from a single goroutine.
package composer

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SajjanPaudel/bettersplit/internal/allocation"
	"github.com/SajjanPaudel/bettersplit/internal/api"
	"github.com/SajjanPaudel/bettersplit/internal/expense"
	"github.com/SajjanPaudel/bettersplit/internal/expr"
	"github.com/SajjanPaudel/bettersplit/internal/models"
	"github.com/SajjanPaudel/bettersplit/internal/validator"
)

var (
	// ErrFirstRowFixed is returned when removing row 0, which serves
	// as the template for adding rows and is never removable.
	ErrFirstRowFixed = errors.New("the first row cannot be removed")

	// ErrNoGroupSelected is returned by member toggles before a group
	// has been chosen, since the group defines who can be toggled.
	ErrNoGroupSelected = errors.New("no group selected")

	// ErrUnknownGroup is returned by SelectGroup for an ID not among
	// the user's groups.
	ErrUnknownGroup = errors.New("unknown group")

	// ErrUnknownMember is returned when toggling someone who is not a
	// member of the selected group.
	ErrUnknownMember = errors.New("member not in selected group")
)

// Composer builds and submits a batch of expense drafts.
type Composer struct {
	user      models.User
	groups    []models.Group
	group     *models.Group
	batch     *expense.Batch
	validator *validator.Validator
	submitter api.ExpenseSubmitter

	// submitting guards re-entrant Submit calls. Plain bool: the
	// composer is single-goroutine by contract.
	submitting bool
}

// New returns a composer for the given user and their groups, starting
// with one blank draft. Submissions go through the given submitter.
func New(user models.User, groups []models.Group, submitter api.ExpenseSubmitter) *Composer {
	return &Composer{
		user:      user,
		groups:    groups,
		batch:     expense.NewBatch(""),
		validator: &validator.Validator{},
		submitter: submitter,
	}
}

// SetStrictSplits switches on symmetric validation: split sums are
// checked against the total like payer sums are.
func (c *Composer) SetStrictSplits(strict bool) {
	c.validator.StrictSplits = strict
}

// Batch exposes the current batch. Callers must treat it as read-only;
// all mutation goes through the composer.
func (c *Composer) Batch() *expense.Batch {
	return c.batch
}

// Group returns the selected group, or nil.
func (c *Composer) Group() *models.Group {
	return c.group
}

// SelectGroup chooses the group the batch belongs to. Allocation
// membership from a previously selected group is discarded. If the
// current user belongs to the group, they become the sole initial
// payer, unpinned, so later total edits keep auto-distributing to them.
func (c *Composer) SelectGroup(groupID string) error {
	var selected *models.Group
	for i := range c.groups {
		if c.groups[i].ID == groupID {
			selected = &c.groups[i]
			break
		}
	}
	if selected == nil {
		return fmt.Errorf("%w: %s", ErrUnknownGroup, groupID)
	}

	c.group = selected
	for _, d := range c.batch.Drafts {
		d.GroupID = selected.ID
		d.Payers = allocation.NewSet()
		d.Splits = allocation.NewSet()
		c.seedDefaultPayer(d)
	}
	return nil
}

// AddRow appends a blank draft to the batch and returns it.
func (c *Composer) AddRow() *expense.Draft {
	d := c.newDraft()
	c.batch.Drafts = append(c.batch.Drafts, d)
	return d
}

// RemoveRow removes the draft at index i. Row 0 is never removable.
func (c *Composer) RemoveRow(i int) error {
	if i == 0 {
		return ErrFirstRowFixed
	}
	if _, err := c.draftAt(i); err != nil {
		return err
	}
	c.batch.Drafts = append(c.batch.Drafts[:i], c.batch.Drafts[i+1:]...)
	return nil
}

// SetName sets the draft's name.
func (c *Composer) SetName(i int, name string) error {
	d, err := c.draftAt(i)
	if err != nil {
		return err
	}
	d.Name = name
	return nil
}

// SetDate sets the draft's date (ISO format, as the API expects).
func (c *Composer) SetDate(i int, date string) error {
	d, err := c.draftAt(i)
	if err != nil {
		return err
	}
	d.Date = date
	return nil
}

// SetAmount updates the draft's total and redistributes both sides.
//
// A trailing space triggers the arithmetic shorthand: if the trimmed
// text looks like an expression it is evaluated and replaced by its
// result. Evaluation failure keeps the trimmed raw text, leaving an
// invalid amount for the validator to catch. Clearing the amount also
// clears all pins, so the next total owns every line again.
func (c *Composer) SetAmount(i int, raw string) error {
	d, err := c.draftAt(i)
	if err != nil {
		return err
	}

	value := raw
	if strings.HasSuffix(raw, " ") {
		value = strings.TrimSpace(raw)
		if expr.IsCandidate(value) {
			result, evalErr := expr.Eval(value)
			if evalErr != nil {
				slog.Debug("amount shorthand rejected", "input", value, "error", evalErr)
			} else {
				value = result.String()
			}
		}
	}

	if strings.TrimSpace(value) == "" {
		d.Payers.ClearPins()
		d.Splits.ClearPins()
	}
	d.TotalAmount = value
	c.redistribute(d)
	return nil
}

// TogglePayer toggles a group member on the payer side and
// redistributes that side only.
func (c *Composer) TogglePayer(i int, memberID string) error {
	return c.toggle(i, memberID, func(d *expense.Draft) *allocation.Set { return d.Payers })
}

// ToggleSplit toggles a group member on the split side and
// redistributes that side only.
func (c *Composer) ToggleSplit(i int, memberID string) error {
	return c.toggle(i, memberID, func(d *expense.Draft) *allocation.Set { return d.Splits })
}

// SetPayerAmount pins a manually typed payer amount and redistributes
// the remaining unpinned payers.
func (c *Composer) SetPayerAmount(i int, memberID, value string) error {
	d, err := c.draftAt(i)
	if err != nil {
		return err
	}
	d.Payers.SetPinnedAmount(memberID, value)
	allocation.Redistribute(d.Payers, d.TotalAmount)
	return nil
}

// SetSplitAmount pins a manually typed split amount and redistributes
// the remaining unpinned splits.
func (c *Composer) SetSplitAmount(i int, memberID, value string) error {
	d, err := c.draftAt(i)
	if err != nil {
		return err
	}
	d.Splits.SetPinnedAmount(memberID, value)
	allocation.Redistribute(d.Splits, d.TotalAmount)
	return nil
}

func (c *Composer) toggle(i int, memberID string, side func(*expense.Draft) *allocation.Set) error {
	d, err := c.draftAt(i)
	if err != nil {
		return err
	}
	if c.group == nil {
		return ErrNoGroupSelected
	}
	if !c.group.HasMember(memberID) {
		return fmt.Errorf("%w: %s", ErrUnknownMember, memberID)
	}
	s := side(d)
	s.ToggleMember(memberID)
	allocation.Redistribute(s, d.TotalAmount)
	return nil
}

func (c *Composer) draftAt(i int) (*expense.Draft, error) {
	if i < 0 || i >= c.batch.Len() {
		return nil, fmt.Errorf("no draft at index %d", i)
	}
	return c.batch.Drafts[i], nil
}

func (c *Composer) newDraft() *expense.Draft {
	groupID := ""
	if c.group != nil {
		groupID = c.group.ID
	}
	d := expense.NewDraft(groupID)
	c.seedDefaultPayer(d)
	return d
}

// seedDefaultPayer makes the current user the sole payer when they
// belong to the selected group. Left unpinned on purpose: the next
// total edit distributes the full amount to them.
func (c *Composer) seedDefaultPayer(d *expense.Draft) {
	if c.group == nil || !c.group.HasMember(c.user.ID) {
		return
	}
	d.Payers.ToggleMember(c.user.ID)
	allocation.Redistribute(d.Payers, d.TotalAmount)
}

func (c *Composer) redistribute(d *expense.Draft) {
	allocation.Redistribute(d.Payers, d.TotalAmount)
	allocation.Redistribute(d.Splits, d.TotalAmount)
}
