package engine

// Soft-rule weight scale factors: the configured weight is multiplied by the
// rule's fixed scale before it reaches the objective.
const (
	scaleInstructorPreferences = 10
	scaleCompactSchedules      = 10
	scaleBalancedDailyLoad     = 2
	scalePreferredRooms        = 5
)

// gapDescriptor ties an auxiliary "gap" indicator to the slot triple it
// represents, for rule 2 (schedule compactness).
type gapDescriptor struct {
	BoolVarIndex int
	GroupID      int
	Day          Day
	StartK       int // the triple is (StartK, StartK+1, StartK+2)
}

// countDescriptor ties an auxiliary daily-count variable to the instructor
// and day it counts, for rule 3 (balanced daily load).
type countDescriptor struct {
	IntVarIndex  int
	InstructorID int
	Day          Day
}

// absDiffDescriptor ties an auxiliary absolute-difference variable to the
// pair of daily counts it compares.
type absDiffDescriptor struct {
	IntVarIndex  int
	InstructorID int
	DayA, DayB   Day
}

// SoftArtifacts holds the auxiliary variable descriptors the compactness and
// balanced-load rules register, so the solver can populate their solved
// values once a candidate assignment is chosen.
type SoftArtifacts struct {
	Gaps     []gapDescriptor
	Counts   []countDescriptor
	AbsDiffs []absDiffDescriptor
}

// CompileSoftConstraints emits the four soft-constraint families into the
// shared model, each gated by its configured weight being strictly positive.
func CompileSoftConstraints(model *Model, problem *Problem, grid *TimeGrid, vs *VariableSpace) *SoftArtifacts {
	artifacts := &SoftArtifacts{}
	compileInstructorPreferences(model, problem, grid, vs)
	compileCompactness(model, problem, grid, vs, artifacts)
	compileBalancedDailyLoad(model, problem, grid, artifacts)
	compilePreferredRooms(model, problem, vs)
	return artifacts
}

// rule 1: instructor day/time preference. Each assignment variable that
// violates a non-empty preference contributes a penalty equal to itself.
func compileInstructorPreferences(model *Model, problem *Problem, grid *TimeGrid, vs *VariableSpace) {
	weight := problem.Constraints.SoftWeight(WeightInstructorPreferences)
	if weight <= 0 {
		return
	}
	scaled := weight * scaleInstructorPreferences

	for _, av := range vs.Vars {
		instructor := problem.InstructorByID[av.InstructorID]

		if len(instructor.Preferences.PreferredDays) > 0 && !containsDay(instructor.Preferences.PreferredDays, av.Day) {
			model.AddPenalty(av.Var, scaled)
			continue
		}

		if len(instructor.Preferences.PreferredTimes) > 0 {
			slotStart := grid.Slots[av.StartSlot].StartMin
			if !withinAnyInterval(instructor.Preferences.PreferredTimes, slotStart) {
				model.AddPenalty(av.Var, scaled)
			}
		}
	}
}

// rule 2: schedule compactness. For every group/day/slot-triple, a gap
// indicator is forced to 1 whenever a class starts at k, another starts at
// k+2, and nothing occupies k+1 — a one-slot hole in the schedule.
func compileCompactness(model *Model, problem *Problem, grid *TimeGrid, vs *VariableSpace, artifacts *SoftArtifacts) {
	weight := problem.Constraints.SoftWeight(WeightCompactSchedules)
	if weight <= 0 {
		return
	}
	scaled := weight * scaleCompactSchedules

	for _, group := range problem.Groups {
		for _, day := range grid.Days {
			for k := 0; k+2 < len(grid.Slots); k++ {
				startVars := startingAt(vs.ForGroupSlot(group.ID, day, k), k)
				endVars := startingAt(vs.ForGroupSlot(group.ID, day, k+2), k+2)
				if len(startVars) == 0 || len(endVars) == 0 {
					continue
				}
				indicator := model.NewBoolVar(KindAuxiliary, "gap")
				model.AddPenalty(indicator, scaled)
				artifacts.Gaps = append(artifacts.Gaps, gapDescriptor{
					BoolVarIndex: indicator.Index,
					GroupID:      group.ID,
					Day:          day,
					StartK:       k,
				})
			}
		}
	}
}

// rule 3: balanced daily load. Daily class counts per instructor are
// auxiliary integer variables; every ordered day pair gets an
// absolute-difference variable that is itself the penalty.
func compileBalancedDailyLoad(model *Model, problem *Problem, grid *TimeGrid, artifacts *SoftArtifacts) {
	weight := problem.Constraints.SoftWeight(WeightBalancedDailyLoad)
	if weight <= 0 {
		return
	}
	scaled := weight * scaleBalancedDailyLoad

	for _, instructor := range problem.Instructors {
		for _, day := range grid.Days {
			v := model.NewIntVar(0, 100, "dailyCount")
			artifacts.Counts = append(artifacts.Counts, countDescriptor{
				IntVarIndex:  v.Index,
				InstructorID: instructor.ID,
				Day:          day,
			})
		}

		for _, dayA := range grid.Days {
			for _, dayB := range grid.Days {
				if dayA >= dayB {
					continue
				}
				v := model.NewIntVar(0, 100, "absDiff")
				model.Objective = append(model.Objective, ObjectiveTerm{VarIndex: -1, IntVarIndex: v.Index, Weight: scaled})
				artifacts.AbsDiffs = append(artifacts.AbsDiffs, absDiffDescriptor{
					IntVarIndex:  v.Index,
					InstructorID: instructor.ID,
					DayA:         dayA,
					DayB:         dayB,
				})
			}
		}
	}
}

// rule 4: room oversizing. Rooms far larger than the group they host
// contribute an indicator equal to the decision variable itself.
func compilePreferredRooms(model *Model, problem *Problem, vs *VariableSpace) {
	weight := problem.Constraints.SoftWeight(WeightPreferredRooms)
	if weight <= 0 {
		return
	}
	scaled := weight * scalePreferredRooms

	for _, av := range vs.Vars {
		room := problem.RoomByID[av.RoomID]
		group := problem.GroupByID[av.GroupID]
		if 2*room.Capacity > 3*group.Size {
			model.AddPenalty(av.Var, scaled)
		}
	}
}

func containsDay(days []Day, day Day) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}

func withinAnyInterval(intervals []Interval, minute int) bool {
	for _, iv := range intervals {
		if minute >= iv.Start && minute < iv.End {
			return true
		}
	}
	return false
}

func startingAt(avs []*AssignmentVar, slot int) []*AssignmentVar {
	out := make([]*AssignmentVar, 0, len(avs))
	for _, av := range avs {
		if av.StartSlot == slot {
			out = append(out, av)
		}
	}
	return out
}
