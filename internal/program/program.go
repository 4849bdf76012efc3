package program

import (
	"time"

	"github.com/google/uuid"
)

// Exercise is a catalog entry. The engine only reads it; slots and session
// records hold a nullable reference so deleting an exercise never deletes
// training history.
type Exercise struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Notes string    `json:"notes,omitempty"`
}

// Slot is one exercise's target state within a program: where it sits in the
// day cycle and what the lifter is currently working toward.
type Slot struct {
	ID         uuid.UUID `json:"id"`
	ProgramID  uuid.UUID `json:"programId"`
	DayIndex   int       `json:"dayIndex"`   // 1-based day in the cycle
	Order      int       `json:"order"`      // position within the day
	GroupLabel string    `json:"groupLabel"` // originating workout name
	ExerciseID uuid.UUID `json:"exerciseId"`
	Exercise   *Exercise `json:"exercise,omitempty"`

	Sets       int     `json:"sets"`
	RepMin     int     `json:"repMin"`
	RepMax     int     `json:"repMax"`
	RepGoal    int     `json:"repGoal"`
	WeightGoal float64 `json:"weightGoal"`

	// ConsecutiveMisses is 0, 1 or 2. The third miss triggers a deload and
	// resets it, so 3 is never stored.
	ConsecutiveMisses int `json:"consecutiveMisses"`
}

// Program is the aggregate root. CurrentDayIndex and CurrentGroupSlot together
// point at the group of exercises due next.
type Program struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	CurrentDayIndex  int       `json:"currentDayIndex"`
	CurrentGroupSlot int       `json:"currentGroupSlot"`
	Slots            []Slot    `json:"slots,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Group is a contiguous run of slots on one day sharing a workout label.
type Group struct {
	Label string `json:"label"`
	Slots []Slot `json:"slots"`
}

// Session is one finalized workout, append-only history.
type Session struct {
	ID        uuid.UUID         `json:"id"`
	ProgramID uuid.UUID         `json:"programId"`
	Date      time.Time         `json:"date"`
	Exercises []SessionExercise `json:"exercises"`
}

// SessionExercise records the goals at session time plus the final set's
// weight and reps. Per-set detail is intentionally not retained.
type SessionExercise struct {
	ID              int64     `json:"id"`
	SessionID       uuid.UUID `json:"sessionId"`
	ExerciseID      uuid.UUID `json:"exerciseId"`
	ExerciseName    string    `json:"exerciseName"`
	Sets            int       `json:"sets"`
	RepGoal         int       `json:"repGoal"`
	WeightGoal      float64   `json:"weightGoal"`
	RepsPerformed   int       `json:"repsPerformed"`
	WeightPerformed float64   `json:"weightPerformed"`
}

// MaxDay returns the highest day index present across the given slots, or 0
// when there are none. The cycle length is derived from live data so adding or
// removing a day immediately changes wraparound.
func MaxDay(slots []Slot) int {
	max := 0
	for _, s := range slots {
		if s.DayIndex > max {
			max = s.DayIndex
		}
	}
	return max
}
