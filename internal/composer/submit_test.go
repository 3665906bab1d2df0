package composer

import (
	"context"
	"errors"
	"testing"

	"github.com/SajjanPaudel/bettersplit/internal/validator"
)

// fillDraft drives the composer through a complete draft at index i.
func fillDraft(t *testing.T, c *Composer, i int, name, total string) {
	t.Helper()
	if err := c.SetName(i, name); err != nil {
		t.Fatalf("SetName: %v", err)
	}
	if err := c.SetDate(i, "2026-08-29"); err != nil {
		t.Fatalf("SetDate: %v", err)
	}
	if err := c.SetAmount(i, total); err != nil {
		t.Fatalf("SetAmount: %v", err)
	}
	for _, m := range []string{"u1", "u2"} {
		if err := c.ToggleSplit(i, m); err != nil {
			t.Fatalf("ToggleSplit(%s): %v", m, err)
		}
	}
}

func TestSubmitSuccess(t *testing.T) {
	c, client := newTestComposer(t)
	c.SelectGroup("g1")
	fillDraft(t, c, 0, "Dinner", "100")
	c.AddRow()
	fillDraft(t, c, 1, "Taxi", "30")

	if err := c.Submit(context.Background()); err != nil {
		t.Fatalf("Submit() = %v, want nil", err)
	}

	created := client.Created()
	if len(created) != 2 {
		t.Fatalf("recorded %d creates, want 2", len(created))
	}
	byName := map[string]bool{}
	for _, exp := range created {
		byName[exp.Name] = true
		if exp.Group != "g1" {
			t.Errorf("%s group = %q, want g1", exp.Name, exp.Group)
		}
		if len(exp.Payers) != 1 || exp.Payers[0].User != "u1" {
			t.Errorf("%s payers = %+v, want sole u1", exp.Name, exp.Payers)
		}
		if len(exp.Splits) != 2 {
			t.Errorf("%s splits = %+v, want 2 entries", exp.Name, exp.Splits)
		}
		if exp.Date != "2026-08-29" {
			t.Errorf("%s date = %q", exp.Name, exp.Date)
		}
	}
	if !byName["Dinner"] || !byName["Taxi"] {
		t.Errorf("created names = %v", byName)
	}

	// Batch resets to a single blank draft under the same group.
	if c.Batch().Len() != 1 {
		t.Fatalf("batch length after submit = %d, want 1", c.Batch().Len())
	}
	d := c.Batch().Drafts[0]
	if d.Name != "" || d.TotalAmount != "" {
		t.Errorf("draft not blank after submit: %+v", d)
	}
	if d.GroupID != "g1" {
		t.Errorf("reset draft GroupID = %q, want g1 kept", d.GroupID)
	}
	if got := d.Payers.Members(); len(got) != 1 || got[0] != "u1" {
		t.Errorf("reset draft payers = %v, want default payer u1", got)
	}
}

func TestSubmitPayloadIsDetachedSnapshot(t *testing.T) {
	c, client := newTestComposer(t)
	c.SelectGroup("g1")
	fillDraft(t, c, 0, "Dinner", "100")

	if err := c.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if got := client.Created()[0].Amount; got != 100 {
		t.Errorf("submitted amount = %v, want 100", got)
	}
}

func TestSubmitPartialFailureKeepsBatch(t *testing.T) {
	c, client := newTestComposer(t)
	client.FailCreate = map[string]error{"Taxi": errors.New("server exploded")}
	c.SelectGroup("g1")
	fillDraft(t, c, 0, "Dinner", "100")
	c.AddRow()
	fillDraft(t, c, 1, "Taxi", "30")
	ids := []string{c.Batch().Drafts[0].ID, c.Batch().Drafts[1].ID}

	err := c.Submit(context.Background())
	if err == nil {
		t.Fatal("Submit() = nil, want aggregate error")
	}

	// Batch untouched so the user can edit and resubmit.
	if c.Batch().Len() != 2 {
		t.Fatalf("batch length = %d, want 2 preserved", c.Batch().Len())
	}
	for i, id := range ids {
		if c.Batch().Drafts[i].ID != id {
			t.Errorf("draft %d replaced after failed submit", i)
		}
	}
	// The successful call is not rolled back.
	if len(client.Created()) != 1 {
		t.Errorf("recorded %d creates, want the 1 that succeeded", len(client.Created()))
	}
}

func TestSubmitValidationFailureMakesNoCalls(t *testing.T) {
	c, client := newTestComposer(t)
	c.SelectGroup("g1")
	// Name left empty: IncompleteDraft.

	err := c.Submit(context.Background())
	var incomplete *validator.IncompleteDraftError
	if !errors.As(err, &incomplete) {
		t.Fatalf("Submit() = %v, want IncompleteDraftError", err)
	}
	if len(client.Created()) != 0 {
		t.Errorf("recorded %d creates, want 0 before validation passes", len(client.Created()))
	}
}

func TestSubmitReentrancyGuard(t *testing.T) {
	c, _ := newTestComposer(t)
	c.SelectGroup("g1")
	fillDraft(t, c, 0, "Dinner", "100")

	c.submitting = true
	if err := c.Submit(context.Background()); !errors.Is(err, ErrSubmitInProgress) {
		t.Errorf("Submit() = %v, want ErrSubmitInProgress", err)
	}
}

func TestUpdate(t *testing.T) {
	c, client := newTestComposer(t)
	c.SelectGroup("g1")
	fillDraft(t, c, 0, "Dinner", "100")

	if err := c.Update(context.Background(), 0, "e42"); err != nil {
		t.Fatalf("Update() = %v, want nil", err)
	}
	exp, ok := client.Updated("e42")
	if !ok {
		t.Fatal("no update recorded for e42")
	}
	if exp.Name != "Dinner" || exp.Amount != 100 {
		t.Errorf("updated payload = %+v", exp)
	}
	// Editing keeps the draft around.
	if c.Batch().Len() != 1 || c.Batch().Drafts[0].Name != "Dinner" {
		t.Errorf("draft changed by Update: %+v", c.Batch().Drafts[0])
	}
}

func TestUpdateValidatesDraft(t *testing.T) {
	c, client := newTestComposer(t)
	c.SelectGroup("g1")

	if err := c.Update(context.Background(), 0, "e42"); err == nil {
		t.Fatal("Update() = nil, want validation error for blank draft")
	}
	if _, ok := client.Updated("e42"); ok {
		t.Error("update recorded despite failed validation")
	}
}
