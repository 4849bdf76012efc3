package draft

import (
	"testing"

	"github.com/ctfbruce/LiftIt/internal/program"
	"github.com/google/uuid"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// TestSaveLoadRoundTrip verifies a draft survives a save/load cycle with its
// entries intact.
func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTemp(t)
	programID := uuid.New()
	slotID := uuid.New()

	entries := map[uuid.UUID][]program.SetEntry{
		slotID: {
			{WeightText: "100", RepsText: "10"},
			{WeightText: "", RepsText: "8"},
		},
	}
	if err := s.SaveDraft(programID, 1, 0, entries); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.LoadDraft(programID, 1, 0)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got[slotID]) != 2 {
		t.Fatalf("entries = %d, want 2", len(got[slotID]))
	}
	if got[slotID][0].WeightText != "100" || got[slotID][1].RepsText != "8" {
		t.Errorf("entries mangled: %+v", got[slotID])
	}
}

// TestLoadMissing verifies a position with no draft returns nil, nil.
func TestLoadMissing(t *testing.T) {
	s := openTemp(t)

	got, err := s.LoadDraft(uuid.New(), 1, 0)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != nil {
		t.Errorf("got %+v, want nil", got)
	}
}

// TestSaveOverwrites verifies a second save for the same key replaces the
// first.
func TestSaveOverwrites(t *testing.T) {
	s := openTemp(t)
	programID := uuid.New()
	slotID := uuid.New()

	first := map[uuid.UUID][]program.SetEntry{slotID: {{WeightText: "50", RepsText: "5"}}}
	second := map[uuid.UUID][]program.SetEntry{slotID: {{WeightText: "60", RepsText: "6"}}}

	if err := s.SaveDraft(programID, 2, 1, first); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveDraft(programID, 2, 1, second); err != nil {
		t.Fatal(err)
	}

	got, err := s.LoadDraft(programID, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got[slotID][0].WeightText != "60" {
		t.Errorf("weight = %q, want 60", got[slotID][0].WeightText)
	}
}

// TestClearDraft verifies clearing removes every position for the program but
// leaves other programs alone.
func TestClearDraft(t *testing.T) {
	s := openTemp(t)
	a, b := uuid.New(), uuid.New()
	slotID := uuid.New()
	entries := map[uuid.UUID][]program.SetEntry{slotID: {{WeightText: "40", RepsText: "12"}}}

	for day := 1; day <= 3; day++ {
		if err := s.SaveDraft(a, day, 0, entries); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.SaveDraft(b, 1, 0, entries); err != nil {
		t.Fatal(err)
	}

	if err := s.ClearDraft(a); err != nil {
		t.Fatalf("clear: %v", err)
	}

	for day := 1; day <= 3; day++ {
		got, err := s.LoadDraft(a, day, 0)
		if err != nil {
			t.Fatal(err)
		}
		if got != nil {
			t.Errorf("day %d draft survived clear", day)
		}
	}

	got, err := s.LoadDraft(b, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Errorf("other program's draft was cleared")
	}
}
