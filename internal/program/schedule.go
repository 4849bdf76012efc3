package program

import "errors"

// ErrNoExercisesScheduled is returned when the current day has no slots at
// all, so no group can be due.
var ErrNoExercisesScheduled = errors.New("no exercises scheduled for this day")

// DueGroup resolves the group the program's schedule pointer currently refers
// to. A stale group slot (for example after a workout was deleted from the
// day) is clamped into range rather than treated as an error.
func DueGroup(p Program) (Group, error) {
	groups := GroupsForDay(p.Slots, p.CurrentDayIndex)
	if len(groups) == 0 {
		return Group{}, ErrNoExercisesScheduled
	}
	idx := p.CurrentGroupSlot
	if idx < 0 {
		idx = 0
	}
	if idx > len(groups)-1 {
		idx = len(groups) - 1
	}
	return groups[idx], nil
}

// Advance computes the schedule pointer after completing the due group. It
// steps through the day's groups, then on to the next day, wrapping back to
// day 1 past the highest day present in the slots. The cycle is perpetual;
// there is no terminal state.
func Advance(p Program) (dayIndex, groupSlot int) {
	groups := GroupsForDay(p.Slots, p.CurrentDayIndex)
	if p.CurrentGroupSlot < len(groups)-1 {
		return p.CurrentDayIndex, p.CurrentGroupSlot + 1
	}
	if p.CurrentDayIndex >= MaxDay(p.Slots) {
		return 1, 0
	}
	return p.CurrentDayIndex + 1, 0
}
