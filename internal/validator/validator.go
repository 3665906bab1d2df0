// Package validator gates batch submission: it checks completeness and
// payer-side sum consistency before any network call is made.
package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/SajjanPaudel/bettersplit/internal/allocation"
	"github.com/SajjanPaudel/bettersplit/internal/expense"
)

// Tolerance is the accepted absolute difference between an allocation
// side's sum and the draft total. It absorbs the per-entry rounding
// slack redistribution is allowed to leave behind.
var Tolerance = decimal.New(1, -2) // 0.01

var (
	// ErrMissingGroup means no group was selected for the batch.
	ErrMissingGroup = errors.New("no group selected")

	// ErrEmptyBatch means there is nothing to submit.
	ErrEmptyBatch = errors.New("batch has no drafts")
)

// IncompleteDraftError reports a required field missing on one draft.
type IncompleteDraftError struct {
	Index int
	Field string // "name", "amount", "payers" or "splits"
}

func (e *IncompleteDraftError) Error() string {
	return fmt.Sprintf("draft %d: missing %s", e.Index, e.Field)
}

// AmountMismatchError reports an allocation side whose sum diverges
// from the draft total beyond Tolerance.
type AmountMismatchError struct {
	Index int
	Side  string // "payers" or "splits"
	Sum   decimal.Decimal
	Total decimal.Decimal
}

func (e *AmountMismatchError) Error() string {
	return fmt.Sprintf("draft %d: %s sum %s does not match total %s",
		e.Index, e.Side, e.Sum, e.Total)
}

// Validator checks a batch before submission. The zero value applies
// the default contract: payer sums are checked against the total,
// split sums are not.
type Validator struct {
	// StrictSplits additionally checks the split side against the
	// total. Off by default to match the original contract, which only
	// validated payers.
	StrictSplits bool
}

// Validate runs the pre-flight checks over every draft in order,
// stopping at the first failure.
func (v *Validator) Validate(batch *expense.Batch) error {
	if batch == nil || batch.Len() == 0 {
		return ErrEmptyBatch
	}

	for _, d := range batch.Drafts {
		if d.GroupID == "" {
			return ErrMissingGroup
		}
	}

	for i, d := range batch.Drafts {
		if err := v.validateDraft(i, d); err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) validateDraft(i int, d *expense.Draft) error {
	if strings.TrimSpace(d.Name) == "" {
		return &IncompleteDraftError{Index: i, Field: "name"}
	}
	total := strings.TrimSpace(d.TotalAmount)
	if total == "" {
		return &IncompleteDraftError{Index: i, Field: "amount"}
	}
	t, err := decimal.NewFromString(total)
	if err != nil {
		return &IncompleteDraftError{Index: i, Field: "amount"}
	}
	if d.Payers.Len() == 0 {
		return &IncompleteDraftError{Index: i, Field: "payers"}
	}
	if d.Splits.Len() == 0 {
		return &IncompleteDraftError{Index: i, Field: "splits"}
	}

	if err := checkSide(i, "payers", d.Payers, t); err != nil {
		return err
	}
	if v.StrictSplits {
		if err := checkSide(i, "splits", d.Splits, t); err != nil {
			return err
		}
	}
	return nil
}

func checkSide(i int, side string, s *allocation.Set, total decimal.Decimal) error {
	sum := s.Total()
	if sum.Sub(total).Abs().GreaterThan(Tolerance) {
		return &AmountMismatchError{Index: i, Side: side, Sum: sum, Total: total}
	}
	return nil
}
