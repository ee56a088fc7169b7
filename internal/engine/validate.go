package engine

import "sort"

// Validate re-checks the seven hard rules directly against an externally
// supplied assignment list, independent of the solver. It returns
// (isValid, conflicts) where isValid holds exactly when conflicts is empty.
func Validate(problem *Problem, assignments []Assignment) (bool, []Violation) {
	var conflicts []Violation

	conflicts = append(conflicts, checkRoomConflicts(assignments)...)
	conflicts = append(conflicts, checkInstructorConflicts(assignments)...)
	conflicts = append(conflicts, checkGroupConflicts(assignments)...)
	conflicts = append(conflicts, checkRoomCapacity(problem, assignments)...)
	conflicts = append(conflicts, checkRoomType(problem, assignments)...)
	conflicts = append(conflicts, checkInstructorAvailability(problem, assignments)...)
	conflicts = append(conflicts, checkWorkingHours(problem, assignments)...)

	return len(conflicts) == 0, conflicts
}

// checkRoomConflicts detects pairwise overlapping assignments sharing a
// room on the same day.
func checkRoomConflicts(assignments []Assignment) []Violation {
	return checkResourceConflicts(assignments, KindRoomConflict, "two assignments double-book the same room", func(a Assignment) int { return a.RoomID })
}

// checkInstructorConflicts detects pairwise overlapping assignments sharing
// an instructor on the same day.
func checkInstructorConflicts(assignments []Assignment) []Violation {
	return checkResourceConflicts(assignments, KindInstructorConflict, "two assignments double-book the same instructor", func(a Assignment) int { return a.InstructorID })
}

// checkGroupConflicts detects pairwise overlapping assignments sharing a
// student group on the same day.
func checkGroupConflicts(assignments []Assignment) []Violation {
	return checkResourceConflicts(assignments, KindGroupConflict, "two assignments double-book the same student group", func(a Assignment) int { return a.GroupID })
}

type bucketKey struct {
	ResourceID int
	Day        Day
}

func checkResourceConflicts(assignments []Assignment, kind, description string, resourceID func(Assignment) int) []Violation {
	buckets := make(map[bucketKey][]Assignment)
	for _, a := range assignments {
		key := bucketKey{resourceID(a), a.Day}
		buckets[key] = append(buckets[key], a)
	}

	var out []Violation
	for _, list := range buckets {
		for i := 0; i < len(list); i++ {
			ivI, err := list[i].Interval()
			if err != nil {
				continue
			}
			for j := i + 1; j < len(list); j++ {
				ivJ, err := list[j].Interval()
				if err != nil {
					continue
				}
				if ivI.Overlaps(ivJ) {
					out = append(out, Violation{
						Kind:        kind,
						Severity:    SeverityHard,
						Description: description,
						CourseIDs:   []int{list[i].CourseID, list[j].CourseID},
					})
				}
			}
		}
	}
	return out
}

func checkRoomCapacity(problem *Problem, assignments []Assignment) []Violation {
	var out []Violation
	for _, a := range assignments {
		room := problem.RoomByID[a.RoomID]
		group := problem.GroupByID[a.GroupID]
		if group.Size > room.Capacity {
			out = append(out, Violation{
				Kind:        KindRoomCapacity,
				Severity:    SeverityHard,
				Description: "room capacity is smaller than the assigned group",
				CourseIDs:   []int{a.CourseID},
			})
		}
	}
	return out
}

func checkRoomType(problem *Problem, assignments []Assignment) []Violation {
	var out []Violation
	for _, a := range assignments {
		course := problem.CourseByID[a.CourseID]
		if course.RoomType == "" {
			continue
		}
		room := problem.RoomByID[a.RoomID]
		if room.Type != course.RoomType {
			out = append(out, Violation{
				Kind:        KindRoomType,
				Severity:    SeverityHard,
				Description: "room type does not match the course's required type",
				CourseIDs:   []int{a.CourseID},
			})
		}
	}
	return out
}

// checkInstructorAvailability requires the assignment's interval to be fully
// contained in some availability interval on its day, the same test the
// hard-constraint compiler applies to decision variables.
func checkInstructorAvailability(problem *Problem, assignments []Assignment) []Violation {
	var out []Violation
	for _, a := range assignments {
		instructor := problem.InstructorByID[a.InstructorID]
		iv, err := a.Interval()
		if err != nil {
			continue
		}
		intervals := instructor.Availability[a.Day]
		if len(intervals) == 0 {
			out = append(out, Violation{
				Kind:        KindInstructorAvailability,
				Severity:    SeverityHard,
				Description: "instructor has no availability on the assigned day",
				CourseIDs:   []int{a.CourseID},
			})
			continue
		}
		contained := false
		for _, candidate := range intervals {
			if candidate.Contains(iv) {
				contained = true
				break
			}
		}
		if !contained {
			out = append(out, Violation{
				Kind:        KindInstructorAvailability,
				Severity:    SeverityHard,
				Description: "assignment falls outside the instructor's availability",
				CourseIDs:   []int{a.CourseID},
			})
		}
	}
	return out
}

func checkWorkingHours(problem *Problem, assignments []Assignment) []Violation {
	startMin, errA := ParseHHMM(problem.Constraints.WorkingHoursStart)
	endMin, errB := ParseHHMM(problem.Constraints.WorkingHoursEnd)
	if errA != nil || errB != nil {
		return nil
	}

	var out []Violation
	for _, a := range assignments {
		iv, err := a.Interval()
		if err != nil {
			continue
		}
		if iv.Start < startMin || iv.End > endMin {
			out = append(out, Violation{
				Kind:        KindWorkingHours,
				Severity:    SeverityHard,
				Description: "assignment falls outside the configured working hours",
				CourseIDs:   []int{a.CourseID},
			})
		}
	}
	return out
}

// SortViolations orders conflicts for stable output, by kind then course id.
func SortViolations(violations []Violation) {
	sort.Slice(violations, func(i, j int) bool {
		if violations[i].Kind != violations[j].Kind {
			return violations[i].Kind < violations[j].Kind
		}
		if len(violations[i].CourseIDs) == 0 || len(violations[j].CourseIDs) == 0 {
			return false
		}
		return violations[i].CourseIDs[0] < violations[j].CourseIDs[0]
	})
}
