package expense

import "testing"

func TestPayloadSnapshot(t *testing.T) {
	d := NewDraft("g1")
	d.Name = "Dinner"
	d.Date = "2026-08-29"
	d.TotalAmount = "100"
	d.Payers.ToggleMember("u1")
	d.Payers.SetPinnedAmount("u1", "100.00")
	d.Splits.ToggleMember("u1")
	d.Splits.ToggleMember("u2")
	d.Splits.SetPinnedAmount("u1", "50.00")
	d.Splits.SetPinnedAmount("u2", "50.00")

	p := d.Payload()
	if p.Name != "Dinner" || p.Group != "g1" || p.Date != "2026-08-29" {
		t.Errorf("payload header = %+v", p)
	}
	if p.Amount != 100 {
		t.Errorf("payload amount = %v, want 100", p.Amount)
	}
	if len(p.Payers) != 1 || p.Payers[0].User != "u1" || p.Payers[0].Amount != "100.00" {
		t.Errorf("payload payers = %+v", p.Payers)
	}
	if len(p.Splits) != 2 {
		t.Fatalf("payload splits = %+v", p.Splits)
	}

	// The snapshot is detached: later edits must not leak into it.
	d.Name = "Changed"
	d.Splits.SetPinnedAmount("u1", "99")
	if p.Name != "Dinner" || p.Splits[0].Amount != "50.00" {
		t.Errorf("payload mutated by later draft edits: %+v", p)
	}
}

func TestPayloadUnparsableTotalIsZero(t *testing.T) {
	d := NewDraft("g1")
	d.TotalAmount = "40+*"
	if got := d.Payload().Amount; got != 0 {
		t.Errorf("amount = %v, want 0 for unparsable total", got)
	}
}

func TestNewBatch(t *testing.T) {
	b := NewBatch("g1")
	if b.Len() != 1 {
		t.Fatalf("new batch length = %d, want 1", b.Len())
	}
	if b.Drafts[0].GroupID != "g1" || b.Drafts[0].ID == "" {
		t.Errorf("template draft = %+v", b.Drafts[0])
	}
}
