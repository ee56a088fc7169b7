package engine

import (
	"sort"
	"time"
)

// Status mirrors CP-SAT's terminal status codes.
type Status string

const (
	StatusOptimal      Status = "OPTIMAL"
	StatusFeasible     Status = "FEASIBLE"
	StatusInfeasible   Status = "INFEASIBLE"
	StatusModelInvalid Status = "MODEL_INVALID"
	StatusUnknown      Status = "UNKNOWN"
)

// SolverConfig bounds the search with a wall-clock limit and carries a worker
// count, both echoed from payload/config. Solve does not read Workers; the
// search runs on a single goroutine.
type SolverConfig struct {
	TimeLimit time.Duration
	Workers   int
}

// SolverResult is the outcome of one search, before extraction.
type SolverResult struct {
	Status    Status
	Chosen    map[int]*AssignmentVar // by course id
	Objective int
	WallTime  time.Duration
	Detail    string // populated on MODEL_INVALID
}

// solveState is mutable search bookkeeping threaded through the recursion.
type solveState struct {
	problem   *Problem
	grid      *TimeGrid
	vs        *VariableSpace
	artifacts *SoftArtifacts

	roomBusy   map[resourceSlotKey]bool
	instrBusy  map[resourceSlotKey]bool
	groupBusy  map[resourceSlotKey]bool
	checkRoom  bool
	checkInstr bool

	deadline time.Time
	timedOut bool

	best      map[int]*AssignmentVar
	bestScore int
	haveBest  bool
}

// Solve runs a deterministic, time-bounded branch-and-bound search over the
// compiled model: courses are assigned one candidate variable at a time in
// ascending course-id order, pruning branches that violate an enabled
// non-overlap rule or whose partial penalty already matches the best
// complete solution found so far.
func Solve(problem *Problem, grid *TimeGrid, vs *VariableSpace, artifacts *SoftArtifacts, cfg SolverConfig) SolverResult {
	start := time.Now()

	for _, course := range problem.Courses {
		if len(course.InstructorIDs) == 0 || len(course.GroupIDs) == 0 {
			return SolverResult{Status: StatusModelInvalid, Detail: "course has no eligible instructors or groups", WallTime: time.Since(start)}
		}
	}
	if len(grid.Slots) == 0 && len(problem.Courses) > 0 {
		return SolverResult{Status: StatusInfeasible, WallTime: time.Since(start)}
	}

	courseOrder := make([]Course, len(problem.Courses))
	copy(courseOrder, problem.Courses)
	sort.Slice(courseOrder, func(i, j int) bool { return courseOrder[i].ID < courseOrder[j].ID })

	st := &solveState{
		problem:    problem,
		grid:       grid,
		vs:         vs,
		artifacts:  artifacts,
		roomBusy:   make(map[resourceSlotKey]bool),
		instrBusy:  make(map[resourceSlotKey]bool),
		groupBusy:  make(map[resourceSlotKey]bool),
		checkRoom:  problem.Constraints.HardEnabled(RuleNoRoomDoubleBooking),
		checkInstr: problem.Constraints.HardEnabled(RuleNoInstructorDoubleBooking),
		deadline:   start.Add(cfg.TimeLimit),
	}

	chosen := make(map[int]*AssignmentVar, len(courseOrder))
	exhausted := st.search(courseOrder, 0, chosen, 0)
	wall := time.Since(start)

	if !st.haveBest {
		if st.timedOut {
			return SolverResult{Status: StatusUnknown, WallTime: wall}
		}
		return SolverResult{Status: StatusInfeasible, WallTime: wall}
	}

	status := StatusFeasible
	if exhausted && !st.timedOut {
		status = StatusOptimal
	}
	return SolverResult{Status: status, Chosen: st.best, Objective: st.bestScore, WallTime: wall}
}

// search explores course assignments depth-first. It returns true if the
// remaining search space was fully explored (not cut short by the deadline).
func (st *solveState) search(courses []Course, idx int, chosen map[int]*AssignmentVar, partialScore int) bool {
	if st.timedOut || time.Now().After(st.deadline) {
		st.timedOut = true
		return false
	}

	if st.haveBest && partialScore >= st.bestScore && idx < len(courses) {
		// Partial cost already matches or exceeds the best complete
		// solution; this branch cannot improve on it.
		return true
	}

	if idx == len(courses) {
		score := partialScore + st.evaluateDerivedPenalties(chosen)
		if !st.haveBest || score < st.bestScore {
			st.haveBest = true
			st.bestScore = score
			st.best = cloneChosen(chosen)
		}
		return true
	}

	course := courses[idx]
	candidates := st.vs.ForCourse(course.ID)
	exhausted := true

	for _, av := range candidates {
		if av.Var.Fixed {
			continue
		}
		if !st.fits(av) {
			continue
		}

		st.occupy(av, true)
		chosen[course.ID] = av
		branchScore := partialScore + directPenalty(av)

		if !st.search(courses, idx+1, chosen, branchScore) {
			exhausted = false
		}

		delete(chosen, course.ID)
		st.occupy(av, false)

		if st.timedOut {
			return false
		}
	}

	return exhausted
}

func (st *solveState) fits(av *AssignmentVar) bool {
	span := st.grid.DurationSlots(av.DurationMin)
	for offset := 0; offset < span; offset++ {
		slot := av.StartSlot + offset
		if st.checkRoom && st.roomBusy[resourceSlotKey{av.RoomID, av.Day, slot}] {
			return false
		}
		if st.checkInstr && st.instrBusy[resourceSlotKey{av.InstructorID, av.Day, slot}] {
			return false
		}
		if st.groupBusy[resourceSlotKey{av.GroupID, av.Day, slot}] {
			return false
		}
	}
	return true
}

func (st *solveState) occupy(av *AssignmentVar, busy bool) {
	span := st.grid.DurationSlots(av.DurationMin)
	for offset := 0; offset < span; offset++ {
		slot := av.StartSlot + offset
		key := resourceSlotKey{av.RoomID, av.Day, slot}
		st.roomBusy[key] = busy
		key = resourceSlotKey{av.InstructorID, av.Day, slot}
		st.instrBusy[key] = busy
		key = resourceSlotKey{av.GroupID, av.Day, slot}
		st.groupBusy[key] = busy
	}
}

// directPenalty returns the weight contributed by an assignment variable
// itself (rule 1 and rule 4 penalties are the decision variable's own
// objective term, see soft.go).
func directPenalty(av *AssignmentVar) int {
	return av.Var.PenaltyWeight
}

// evaluateDerivedPenalties scores the compactness and balanced-load rules,
// which depend on the complete assignment rather than any single variable.
func (st *solveState) evaluateDerivedPenalties(chosen map[int]*AssignmentVar) int {
	if st.artifacts == nil {
		return 0
	}

	total := 0

	for _, gap := range st.artifacts.Gaps {
		hasStart := groupOccupiesStart(chosen, gap.GroupID, gap.Day, gap.StartK)
		hasEnd := groupOccupiesStart(chosen, gap.GroupID, gap.Day, gap.StartK+2)
		hasMiddle := groupOccupiesSlot(st.grid, chosen, gap.GroupID, gap.Day, gap.StartK+1)
		if hasStart && hasEnd && !hasMiddle {
			total += st.objectiveWeightForBool(gap.BoolVarIndex)
		}
	}

	counts := make(map[countKey]int)
	for _, c := range st.artifacts.Counts {
		counts[countKey{c.InstructorID, c.Day}] = countInstructorDay(chosen, c.InstructorID, c.Day)
	}
	for _, ad := range st.artifacts.AbsDiffs {
		a := counts[countKey{ad.InstructorID, ad.DayA}]
		b := counts[countKey{ad.InstructorID, ad.DayB}]
		diff := a - b
		if diff < 0 {
			diff = -diff
		}
		total += diff * st.objectiveWeightForInt(ad.IntVarIndex)
	}

	return total
}

type countKey struct {
	InstructorID int
	Day          Day
}

func (st *solveState) objectiveWeightForBool(varIndex int) int {
	for _, t := range st.vs.Model.Objective {
		if t.VarIndex == varIndex {
			return t.Weight
		}
	}
	return 0
}

func (st *solveState) objectiveWeightForInt(intVarIndex int) int {
	for _, t := range st.vs.Model.Objective {
		if t.IntVarIndex == intVarIndex {
			return t.Weight
		}
	}
	return 0
}

func groupOccupiesStart(chosen map[int]*AssignmentVar, groupID int, day Day, slot int) bool {
	for _, av := range chosen {
		if av.GroupID == groupID && av.Day == day && av.StartSlot == slot {
			return true
		}
	}
	return false
}

func groupOccupiesSlot(grid *TimeGrid, chosen map[int]*AssignmentVar, groupID int, day Day, slot int) bool {
	for _, av := range chosen {
		if av.GroupID != groupID || av.Day != day {
			continue
		}
		if grid.Occupies(av.StartSlot, av.DurationMin, slot) {
			return true
		}
	}
	return false
}

func countInstructorDay(chosen map[int]*AssignmentVar, instructorID int, day Day) int {
	n := 0
	for _, av := range chosen {
		if av.InstructorID == instructorID && av.Day == day {
			n++
		}
	}
	return n
}

func cloneChosen(chosen map[int]*AssignmentVar) map[int]*AssignmentVar {
	out := make(map[int]*AssignmentVar, len(chosen))
	for k, v := range chosen {
		out[k] = v
	}
	return out
}
