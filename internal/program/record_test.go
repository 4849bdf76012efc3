package program

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func workingSlot(sets int, weightGoal float64, repGoal int) Slot {
	return Slot{
		ID:         uuid.New(),
		DayIndex:   1,
		GroupLabel: "A",
		Sets:       sets,
		RepMin:     8,
		RepMax:     12,
		RepGoal:    repGoal,
		WeightGoal: weightGoal,
	}
}

// TestRecordSession verifies volume math and last-set capture for fully
// parsed entries.
func TestRecordSession(t *testing.T) {
	s := workingSlot(3, 100, 10)
	group := Group{Label: "A", Slots: []Slot{s}}
	entries := map[uuid.UUID][]SetEntry{
		s.ID: {
			{WeightText: "100", RepsText: "10"},
			{WeightText: "100", RepsText: "9"},
			{WeightText: "95", RepsText: "8"},
		},
	}

	results, err := RecordSession(group, entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := results[s.ID]
	if r.ActualVolume != 100*10+100*9+95*8 {
		t.Errorf("actualVolume = %v, want %v", r.ActualVolume, float64(100*10+100*9+95*8))
	}
	if r.GoalVolume != 3*100*10 {
		t.Errorf("goalVolume = %v, want 3000", r.GoalVolume)
	}
	if r.LastWeight != 95 || r.LastReps != 8 {
		t.Errorf("last set = (%v,%d), want (95,8)", r.LastWeight, r.LastReps)
	}
}

// TestRecordSessionGoalFallback verifies blank or unparsable text coerces to
// the slot's goal values instead of zero or an error.
func TestRecordSessionGoalFallback(t *testing.T) {
	s := workingSlot(2, 60, 10)
	group := Group{Label: "A", Slots: []Slot{s}}
	entries := map[uuid.UUID][]SetEntry{
		s.ID: {
			{WeightText: "", RepsText: "10"},       // blank weight -> 60
			{WeightText: "sixty", RepsText: "abc"}, // both unparsable -> 60x10
		},
	}

	results, err := RecordSession(group, entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := results[s.ID]
	if r.ActualVolume != 60*10+60*10 {
		t.Errorf("actualVolume = %v, want 1200", r.ActualVolume)
	}
	if r.LastWeight != 60 || r.LastReps != 10 {
		t.Errorf("last set = (%v,%d), want (60,10)", r.LastWeight, r.LastReps)
	}
	if r.CoercedSets != 2 {
		t.Errorf("coercedSets = %d, want 2", r.CoercedSets)
	}
}

// TestRecordSessionNegativeInput verifies negative numbers are treated as
// unparsable and coerce to the goal.
func TestRecordSessionNegativeInput(t *testing.T) {
	s := workingSlot(1, 50, 8)
	group := Group{Label: "A", Slots: []Slot{s}}
	entries := map[uuid.UUID][]SetEntry{
		s.ID: {{WeightText: "-20", RepsText: "-3"}},
	}

	results, err := RecordSession(group, entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r := results[s.ID]; r.ActualVolume != 50*8 {
		t.Errorf("actualVolume = %v, want 400", r.ActualVolume)
	}
}

// TestRecordSessionSetCountMismatch verifies a wrong entry count is an error.
func TestRecordSessionSetCountMismatch(t *testing.T) {
	s := workingSlot(3, 100, 10)
	group := Group{Label: "A", Slots: []Slot{s}}
	entries := map[uuid.UUID][]SetEntry{
		s.ID: {{WeightText: "100", RepsText: "10"}},
	}

	_, err := RecordSession(group, entries)
	if !errors.Is(err, ErrSetCountMismatch) {
		t.Fatalf("err = %v, want ErrSetCountMismatch", err)
	}
}

// TestRecordSessionMissingSlot verifies a slot with no entries at all is an
// error.
func TestRecordSessionMissingSlot(t *testing.T) {
	s := workingSlot(2, 100, 10)
	group := Group{Label: "A", Slots: []Slot{s}}

	_, err := RecordSession(group, map[uuid.UUID][]SetEntry{})
	if !errors.Is(err, ErrMissingEntries) {
		t.Fatalf("err = %v, want ErrMissingEntries", err)
	}
}
