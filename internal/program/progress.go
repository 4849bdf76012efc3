package program

import "errors"

var (
	// ErrMissingEntries means the due group contained a slot with no
	// recorded sets at all.
	ErrMissingEntries = errors.New("missing set entries for slot")
	// ErrSetCountMismatch means a slot received a different number of set
	// entries than it prescribes.
	ErrSetCountMismatch = errors.New("set entry count does not match slot sets")
)

// Rules holds the progression constants. The algorithm shape is fixed;
// only the numbers are adjustable.
type Rules struct {
	WeightStep   float64 // added to the weight goal after topping out the rep ladder
	DeloadFactor float64 // multiplied into the weight goal on repeated misses
	MissLimit    int     // consecutive missed sessions before a deload
}

// DefaultRules are the stock constants: +2.5 on a weight step, x0.85 deload
// after 3 straight misses.
var DefaultRules = Rules{
	WeightStep:   2.5,
	DeloadFactor: 0.85,
	MissLimit:    3,
}

// Progress returns the slot's next target state given one session's result.
// It is pure; the caller decides whether and when to persist the returned
// slot. The rules are evaluated strictly in order:
//
//  1. Volume below goal is a miss. The miss counter increments and, at the
//     miss limit, the weight goal deloads and the counter resets.
//  2. Volume at or above goal resets the miss counter. If the final set also
//     reached the rep goal the slot climbs the rep ladder, stepping the
//     weight and dropping back to repMin once the ladder tops out.
//  3. Volume met but final set short of the rep goal: targets hold. Earlier
//     sets carried the volume, so there is neither progression nor penalty.
func Progress(slot Slot, result Result, rules Rules) Slot {
	next := slot

	if result.ActualVolume < result.GoalVolume {
		next.ConsecutiveMisses++
		if next.ConsecutiveMisses >= rules.MissLimit {
			next.WeightGoal *= rules.DeloadFactor
			next.ConsecutiveMisses = 0
		}
		return next
	}

	next.ConsecutiveMisses = 0
	if result.LastReps >= slot.RepGoal {
		if slot.RepGoal < slot.RepMax {
			next.RepGoal++
		} else {
			next.WeightGoal += rules.WeightStep
			next.RepGoal = slot.RepMin
		}
	}
	return next
}
