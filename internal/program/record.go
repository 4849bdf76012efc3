package program

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// SetEntry is one set's raw form input. Both fields are free text; anything
// unparsable falls back to the slot's goal values.
type SetEntry struct {
	WeightText string `json:"weight"`
	RepsText   string `json:"reps"`
}

// Result summarizes one exercise's recorded session against its goal.
type Result struct {
	ActualVolume float64 `json:"actualVolume"`
	GoalVolume   float64 `json:"goalVolume"`
	LastWeight   float64 `json:"lastWeight"`
	LastReps     int     `json:"lastReps"`
	CoercedSets  int     `json:"-"` // sets where weight or reps fell back to the goal
}

// RecordSession converts raw per-set entries for the due group into a
// per-slot performance summary. Every slot in the group must have exactly
// slot.Sets entries. Blank or unparsable weight falls back to the slot's
// weight goal and likewise reps to the rep goal, so an incomplete form counts
// as hitting the target rather than as an automatic miss.
func RecordSession(group Group, entries map[uuid.UUID][]SetEntry) (map[uuid.UUID]Result, error) {
	results := make(map[uuid.UUID]Result, len(group.Slots))
	for _, slot := range group.Slots {
		sets, ok := entries[slot.ID]
		if !ok {
			return nil, fmt.Errorf("slot %s: %w", slot.ID, ErrMissingEntries)
		}
		if len(sets) != slot.Sets {
			return nil, fmt.Errorf("slot %s: got %d entries, want %d: %w",
				slot.ID, len(sets), slot.Sets, ErrSetCountMismatch)
		}

		var r Result
		r.GoalVolume = float64(slot.Sets) * slot.WeightGoal * float64(slot.RepGoal)
		for _, e := range sets {
			weight, wOK := parseWeight(e.WeightText)
			if !wOK {
				weight = slot.WeightGoal
			}
			reps, rOK := parseReps(e.RepsText)
			if !rOK {
				reps = slot.RepGoal
			}
			if !wOK || !rOK {
				r.CoercedSets++
			}
			r.ActualVolume += weight * float64(reps)
			r.LastWeight = weight
			r.LastReps = reps
		}
		results[slot.ID] = r
	}
	return results, nil
}

func parseWeight(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

func parseReps(s string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
