package engine

// TimeSlot is one discretized starting position on a day's time axis.
type TimeSlot struct {
	Index     int
	StartTime string // HH:MM
	StartMin  int
}

// TimeGrid is the enumerated (day, slot) coordinate space every decision
// variable ranges over.
type TimeGrid struct {
	Days            []Day
	Slots           []TimeSlot
	StepMinutes     int
	WorkingStartMin int
	WorkingEndMin   int
}

// BuildTimeGrid derives the time grid from the working window and the
// shortest course duration in the payload. An empty course list or a window
// too short for any course yields an empty grid, which Optimize reports as
// infeasible before any variables are built.
func BuildTimeGrid(workingHoursStart, workingHoursEnd string, courses []Course) (*TimeGrid, error) {
	startMin, err := ParseHHMM(workingHoursStart)
	if err != nil {
		return nil, err
	}
	endMin, err := ParseHHMM(workingHoursEnd)
	if err != nil {
		return nil, err
	}

	grid := &TimeGrid{
		Days:            append([]Day(nil), OperatingDays...),
		WorkingStartMin: startMin,
		WorkingEndMin:   endMin,
	}

	if startMin >= endMin || len(courses) == 0 {
		return grid, nil
	}

	step := courses[0].Duration
	for _, c := range courses[1:] {
		if c.Duration < step {
			step = c.Duration
		}
	}
	if step <= 0 {
		return grid, nil
	}
	grid.StepMinutes = step

	index := 0
	for cursor := startMin; cursor+step <= endMin; cursor += step {
		grid.Slots = append(grid.Slots, TimeSlot{
			Index:     index,
			StartTime: FormatHHMM(cursor),
			StartMin:  cursor,
		})
		index++
	}

	return grid, nil
}

// DurationSlots returns how many consecutive slots a course of the given
// duration occupies starting from any slot, ceiling-divided by the minute
// step.
func (g *TimeGrid) DurationSlots(durationMinutes int) int {
	if g.StepMinutes <= 0 {
		return 0
	}
	return (durationMinutes + g.StepMinutes - 1) / g.StepMinutes
}

// Occupies reports whether a course starting at startSlot with the given
// duration covers slotIndex.
func (g *TimeGrid) Occupies(startSlot, durationMinutes, slotIndex int) bool {
	span := g.DurationSlots(durationMinutes)
	return slotIndex >= startSlot && slotIndex < startSlot+span
}

// FitsWindow reports whether a course starting at startSlot with the given
// duration ends at or before the working window's end.
func (g *TimeGrid) FitsWindow(startSlot, durationMinutes int) bool {
	if startSlot < 0 || startSlot >= len(g.Slots) {
		return false
	}
	endMin := g.Slots[startSlot].StartMin + durationMinutes
	return endMin <= g.WorkingEndMin
}
