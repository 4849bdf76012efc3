package program

import "sort"

// DefaultGroupLabel is used when a slot carries no workout name.
const DefaultGroupLabel = "Workout"

// GroupsForDay partitions a day's slots into contiguous labeled groups.
// Slots are filtered to the given day, sorted by order, and a new group starts
// whenever the label differs from the previous slot's. A label that reappears
// after an interruption starts a second group with the same display name;
// contiguity within one group is a data invariant the caller maintains, not
// something checked here.
func GroupsForDay(slots []Slot, day int) []Group {
	var daySlots []Slot
	for _, s := range slots {
		if s.DayIndex == day {
			daySlots = append(daySlots, s)
		}
	}
	sort.SliceStable(daySlots, func(i, j int) bool {
		return daySlots[i].Order < daySlots[j].Order
	})

	var groups []Group
	prev := ""
	for i, s := range daySlots {
		label := s.GroupLabel
		if label == "" {
			label = DefaultGroupLabel
		}
		if i == 0 || label != prev {
			groups = append(groups, Group{Label: label})
		}
		groups[len(groups)-1].Slots = append(groups[len(groups)-1].Slots, s)
		prev = label
	}
	return groups
}
