package engine

import "fmt"

// AnalyzeInfeasibility runs four diagnostic heuristics and returns up to
// three human-readable issues, invoked only when the solver returns
// INFEASIBLE.
func AnalyzeInfeasibility(problem *Problem, grid *TimeGrid) []string {
	var issues []string

	if issue := checkCapacityDemand(problem, grid); issue != "" {
		issues = append(issues, issue)
	}
	issues = append(issues, checkGroupRoomExistence(problem)...)
	issues = append(issues, checkRoomTypeExistence(problem)...)
	issues = append(issues, checkInstructorAvailabilityBudget(problem)...)

	if len(issues) > 3 {
		issues = issues[:3]
	}
	return issues
}

func checkCapacityDemand(problem *Problem, grid *TimeGrid) string {
	demand := 0
	for _, c := range problem.Courses {
		demand += grid.DurationSlots(c.Duration)
	}
	capacity := len(problem.Rooms) * len(grid.Slots) * len(grid.Days)
	if demand > capacity {
		return fmt.Sprintf("total course demand (%d slot-units) exceeds available room-slot capacity (%d)", demand, capacity)
	}
	return ""
}

func checkGroupRoomExistence(problem *Problem) []string {
	var issues []string
	for _, group := range problem.Groups {
		ok := false
		for _, room := range problem.Rooms {
			if room.Capacity >= group.Size {
				ok = true
				break
			}
		}
		if !ok {
			issues = append(issues, fmt.Sprintf("no room has sufficient capacity for group %d (size %d)", group.ID, group.Size))
		}
	}
	return issues
}

func checkRoomTypeExistence(problem *Problem) []string {
	seen := make(map[string]bool)
	var issues []string
	for _, course := range problem.Courses {
		if course.RoomType == "" || seen[course.RoomType] {
			continue
		}
		seen[course.RoomType] = true
		ok := false
		for _, room := range problem.Rooms {
			if room.Type == course.RoomType {
				ok = true
				break
			}
		}
		if !ok {
			issues = append(issues, fmt.Sprintf("no room of required type %q exists", course.RoomType))
		}
	}
	return issues
}

func checkInstructorAvailabilityBudget(problem *Problem) []string {
	required := make(map[int]int)
	for _, course := range problem.Courses {
		for _, instructorID := range course.InstructorIDs {
			required[instructorID] += course.Duration
		}
	}

	var issues []string
	for _, instructor := range problem.Instructors {
		need, ok := required[instructor.ID]
		if !ok {
			continue
		}
		available := 0
		for _, intervals := range instructor.Availability {
			for _, iv := range intervals {
				available += iv.End - iv.Start
			}
		}
		if available < need {
			issues = append(issues, fmt.Sprintf("instructor %d has %d available minutes but %d are required", instructor.ID, available, need))
		}
	}
	return issues
}
