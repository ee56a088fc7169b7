package engine

// CompileHardConstraints emits the seven hard rules into the shared model.
// Compilation visits resources in canonical (room, day, slot) order so
// emitted models are reproducible across runs.
func CompileHardConstraints(model *Model, problem *Problem, grid *TimeGrid, vs *VariableSpace) {
	compileCourseUniqueness(model, problem, vs)
	compileRoomNonOverlap(model, problem, grid, vs)
	compileInstructorNonOverlap(model, problem, grid, vs)
	compileGroupNonOverlap(model, problem, grid, vs)
	compileRoomCapacity(model, problem, vs)
	compileRoomTypeMatch(model, problem, vs)
	compileInstructorAvailability(model, problem, grid, vs)
}

// rule 1: course uniqueness, always on.
func compileCourseUniqueness(model *Model, problem *Problem, vs *VariableSpace) {
	for _, course := range problem.Courses {
		vars := collectVars(vs.ForCourse(course.ID))
		model.AddExactlyOne(vars)
	}
}

// rule 2: room non-overlap, gated by noRoomDoubleBooking.
func compileRoomNonOverlap(model *Model, problem *Problem, grid *TimeGrid, vs *VariableSpace) {
	if !problem.Constraints.HardEnabled(RuleNoRoomDoubleBooking) {
		return
	}
	for _, room := range problem.Rooms {
		for _, day := range grid.Days {
			for _, slot := range grid.Slots {
				vars := collectVars(vs.ForRoomSlot(room.ID, day, slot.Index))
				model.AddAtMostOne(vars)
			}
		}
	}
}

// rule 3: instructor non-overlap, gated by noInstructorDoubleBooking.
func compileInstructorNonOverlap(model *Model, problem *Problem, grid *TimeGrid, vs *VariableSpace) {
	if !problem.Constraints.HardEnabled(RuleNoInstructorDoubleBooking) {
		return
	}
	for _, instructor := range problem.Instructors {
		for _, day := range grid.Days {
			for _, slot := range grid.Slots {
				vars := collectVars(vs.ForInstructorSlot(instructor.ID, day, slot.Index))
				model.AddAtMostOne(vars)
			}
		}
	}
}

// rule 4: group non-overlap, always on.
func compileGroupNonOverlap(model *Model, problem *Problem, grid *TimeGrid, vs *VariableSpace) {
	for _, group := range problem.Groups {
		for _, day := range grid.Days {
			for _, slot := range grid.Slots {
				vars := collectVars(vs.ForGroupSlot(group.ID, day, slot.Index))
				model.AddAtMostOne(vars)
			}
		}
	}
}

// rule 5: room capacity, gated by roomCapacityCheck.
func compileRoomCapacity(model *Model, problem *Problem, vs *VariableSpace) {
	if !problem.Constraints.HardEnabled(RuleRoomCapacityCheck) {
		return
	}
	for _, av := range vs.Vars {
		room := problem.RoomByID[av.RoomID]
		group := problem.GroupByID[av.GroupID]
		if group.Size > room.Capacity {
			model.Fix(av.Var, 0)
		}
	}
}

// rule 6: room type match, gated by roomTypeMatch.
func compileRoomTypeMatch(model *Model, problem *Problem, vs *VariableSpace) {
	if !problem.Constraints.HardEnabled(RuleRoomTypeMatch) {
		return
	}
	for _, av := range vs.Vars {
		course := problem.CourseByID[av.CourseID]
		if course.RoomType == "" {
			continue
		}
		room := problem.RoomByID[av.RoomID]
		if room.Type != course.RoomType {
			model.Fix(av.Var, 0)
		}
	}
}

// rule 7: instructor availability, always on. A variable is eligible only
// when its whole [start, start+duration) interval lies inside at least one
// availability interval, the same containment check the standalone
// validator applies.
func compileInstructorAvailability(model *Model, problem *Problem, grid *TimeGrid, vs *VariableSpace) {
	for _, av := range vs.Vars {
		instructor := problem.InstructorByID[av.InstructorID]
		intervals := instructor.Availability[av.Day]
		if len(intervals) == 0 {
			model.Fix(av.Var, 0)
			continue
		}
		if av.StartSlot >= len(grid.Slots) {
			model.Fix(av.Var, 0)
			continue
		}
		slotStart := grid.Slots[av.StartSlot].StartMin
		span := Interval{Start: slotStart, End: slotStart + av.DurationMin}
		eligible := false
		for _, iv := range intervals {
			if iv.Contains(span) {
				eligible = true
				break
			}
		}
		if !eligible {
			model.Fix(av.Var, 0)
		}
	}
}

func collectVars(avs []*AssignmentVar) []*BoolVar {
	vars := make([]*BoolVar, 0, len(avs))
	for _, av := range avs {
		vars = append(vars, av.Var)
	}
	return vars
}
