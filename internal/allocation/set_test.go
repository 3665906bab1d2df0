package allocation

import "testing"

func TestToggleMemberAddsAndRemoves(t *testing.T) {
	s := NewSet()

	s.ToggleMember("alice")
	if !s.Has("alice") {
		t.Fatal("expected alice to be present after toggle")
	}
	entries := s.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Amount != "0" || entries[0].Pinned {
		t.Errorf("new entry = %+v, want amount 0 and unpinned", entries[0])
	}

	s.ToggleMember("alice")
	if s.Has("alice") {
		t.Fatal("expected alice to be removed after second toggle")
	}
}

func TestToggleMemberIdempotentMembership(t *testing.T) {
	s := NewSet()
	s.ToggleMember("alice")
	s.ToggleMember("bob")
	s.ToggleMember("carol")
	before := s.Members()

	s.ToggleMember("bob")
	s.ToggleMember("bob")

	after := s.Members()
	if len(after) != len(before) {
		t.Fatalf("membership count changed: %v -> %v", before, after)
	}
	for i := range before {
		if after[i] != before[i] {
			t.Fatalf("membership changed: %v -> %v", before, after)
		}
	}
}

func TestSetPinnedAmount(t *testing.T) {
	s := NewSet()
	s.ToggleMember("alice")

	s.SetPinnedAmount("alice", "40")
	entries := s.Entries()
	if entries[0].Amount != "40" || !entries[0].Pinned {
		t.Errorf("entry = %+v, want amount 40 and pinned", entries[0])
	}
}

func TestSetPinnedAmountUnknownMemberIsNoop(t *testing.T) {
	s := NewSet()
	s.ToggleMember("alice")

	s.SetPinnedAmount("bob", "40")

	if s.Has("bob") {
		t.Fatal("pinning an unknown member must not add an entry")
	}
	if e := s.Entries()[0]; e.Pinned || e.Amount != "0" {
		t.Errorf("alice entry changed by unknown-member pin: %+v", e)
	}
}

func TestClearPins(t *testing.T) {
	s := NewSet()
	s.ToggleMember("alice")
	s.ToggleMember("bob")
	s.SetPinnedAmount("alice", "40")
	s.SetPinnedAmount("bob", "60")

	s.ClearPins()

	for _, e := range s.Entries() {
		if e.Pinned {
			t.Errorf("%s still pinned after ClearPins", e.Member)
		}
	}
}

func TestTotalTreatsMalformedAsZero(t *testing.T) {
	s := NewSet()
	s.ToggleMember("alice")
	s.ToggleMember("bob")
	s.SetPinnedAmount("alice", "12.50")
	s.SetPinnedAmount("bob", "oops")

	if got := s.Total().StringFixed(2); got != "12.50" {
		t.Errorf("Total() = %s, want 12.50", got)
	}
}
