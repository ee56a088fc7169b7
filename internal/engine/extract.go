package engine

import "sort"

// ExtractAssignments converts a solver's chosen variables into the ordered
// Assignment list returned to the caller.
func ExtractAssignments(chosen map[int]*AssignmentVar, grid *TimeGrid) []Assignment {
	assignments := make([]Assignment, 0, len(chosen))
	for _, av := range chosen {
		startMin := grid.Slots[av.StartSlot].StartMin
		assignments = append(assignments, Assignment{
			CourseID:     av.CourseID,
			InstructorID: av.InstructorID,
			RoomID:       av.RoomID,
			GroupID:      av.GroupID,
			Day:          av.Day,
			StartTime:    FormatHHMM(startMin),
			EndTime:      FormatHHMM(startMin + av.DurationMin),
		})
	}
	sort.Slice(assignments, func(i, j int) bool { return assignments[i].CourseID < assignments[j].CourseID })
	return assignments
}

// NormalizedFitness computes 100 × objective / Σ weights of all emitted
// penalties, 0 if none were emitted. Lower is better.
func NormalizedFitness(objective, totalPenaltyWeight int) float64 {
	if totalPenaltyWeight <= 0 {
		return 0
	}
	return 100 * float64(objective) / float64(totalPenaltyWeight)
}

// IdentifyViolations re-inspects the returned assignments directly (not the
// solver's indicator values) to produce the post-hoc soft-violation list:
// non-preferred day/time, group gaps over an hour, unbalanced daily
// instructor load, and oversized rooms.
func IdentifyViolations(problem *Problem, assignments []Assignment) []Violation {
	var violations []Violation

	violations = append(violations, checkInstructorPreferenceViolations(problem, assignments)...)
	violations = append(violations, checkGroupGapViolations(problem, assignments)...)
	violations = append(violations, checkBalancedLoadViolations(problem, assignments)...)
	violations = append(violations, checkRoomOversizeViolations(problem, assignments)...)

	return violations
}

func checkInstructorPreferenceViolations(problem *Problem, assignments []Assignment) []Violation {
	var out []Violation
	for _, a := range assignments {
		instructor := problem.InstructorByID[a.InstructorID]
		startMin, err := ParseHHMM(a.StartTime)
		if err != nil {
			continue
		}

		if len(instructor.Preferences.PreferredDays) > 0 && !containsDay(instructor.Preferences.PreferredDays, a.Day) {
			out = append(out, Violation{
				Kind:        KindInstructorDayPref,
				Severity:    SeveritySoft,
				Description: "course scheduled on a non-preferred day for the instructor",
				CourseIDs:   []int{a.CourseID},
			})
			continue
		}

		if len(instructor.Preferences.PreferredTimes) > 0 && !withinAnyInterval(instructor.Preferences.PreferredTimes, startMin) {
			out = append(out, Violation{
				Kind:        KindInstructorTimePref,
				Severity:    SeveritySoft,
				Description: "course scheduled outside the instructor's preferred times",
				CourseIDs:   []int{a.CourseID},
			})
		}
	}
	return out
}

// checkGroupGapViolations flags any group/day where two consecutive sorted
// classes leave a gap greater than 60 minutes.
func checkGroupGapViolations(problem *Problem, assignments []Assignment) []Violation {
	var out []Violation
	byGroupDay := make(map[groupDayKey][]Assignment)
	for _, a := range assignments {
		key := groupDayKey{a.GroupID, a.Day}
		byGroupDay[key] = append(byGroupDay[key], a)
	}

	for _, list := range byGroupDay {
		sort.Slice(list, func(i, j int) bool { return list[i].StartTime < list[j].StartTime })
		for i := 1; i < len(list); i++ {
			prevEnd, err1 := ParseHHMM(list[i-1].EndTime)
			nextStart, err2 := ParseHHMM(list[i].StartTime)
			if err1 != nil || err2 != nil {
				continue
			}
			if nextStart-prevEnd > 60 {
				out = append(out, Violation{
					Kind:        KindScheduleCompactness,
					Severity:    SeveritySoft,
					Description: "gap of more than 60 minutes in the group's schedule",
					CourseIDs:   []int{list[i-1].CourseID, list[i].CourseID},
				})
			}
		}
	}
	return out
}

type groupDayKey struct {
	GroupID int
	Day     Day
}

// checkBalancedLoadViolations flags instructors whose daily-count variance
// across the week exceeds 2.0.
func checkBalancedLoadViolations(problem *Problem, assignments []Assignment) []Violation {
	var out []Violation
	counts := make(map[int]map[Day]int)
	for _, a := range assignments {
		if counts[a.InstructorID] == nil {
			counts[a.InstructorID] = make(map[Day]int)
		}
		counts[a.InstructorID][a.Day]++
	}

	for _, instructor := range problem.Instructors {
		daily, ok := counts[instructor.ID]
		if !ok {
			continue
		}
		values := make([]float64, 0, len(OperatingDays))
		for _, d := range OperatingDays {
			values = append(values, float64(daily[d]))
		}
		if variance(values) > 2.0 {
			out = append(out, Violation{
				Kind:        KindBalancedDailyLoad,
				Severity:    SeveritySoft,
				Description: "instructor's daily teaching load is unbalanced across the week",
				CourseIDs:   courseIDsForInstructor(assignments, instructor.ID),
			})
		}
	}
	return out
}

func checkRoomOversizeViolations(problem *Problem, assignments []Assignment) []Violation {
	var out []Violation
	for _, a := range assignments {
		room := problem.RoomByID[a.RoomID]
		group := problem.GroupByID[a.GroupID]
		if 2*room.Capacity > 3*group.Size {
			out = append(out, Violation{
				Kind:        KindRoomPreference,
				Severity:    SeveritySoft,
				Description: "room capacity far exceeds the group size",
				CourseIDs:   []int{a.CourseID},
			})
		}
	}
	return out
}

func variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	sumSq := 0.0
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return sumSq / float64(len(values))
}

func courseIDsForInstructor(assignments []Assignment, instructorID int) []int {
	var ids []int
	for _, a := range assignments {
		if a.InstructorID == instructorID {
			ids = append(ids, a.CourseID)
		}
	}
	return ids
}
