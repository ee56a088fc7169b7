package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/timetable-cpsat-engine/internal/engine"
)

func baseExtractProblem() *engine.Problem {
	return engine.NewProblem(
		[]engine.Course{
			{ID: 1, Duration: 60, InstructorIDs: []int{1}, GroupIDs: []int{1}},
			{ID: 2, Duration: 60, InstructorIDs: []int{1}, GroupIDs: []int{1}},
		},
		[]engine.Instructor{{ID: 1, Name: "Prof A"}},
		[]engine.Room{{ID: 1, Name: "Room 1", Capacity: 40, Type: "Lecture"}},
		[]engine.StudentGroup{{ID: 1, Name: "G1", Size: 20, CourseIDs: []int{1, 2}}},
		engine.ConstraintConfig{WorkingHoursStart: "08:00", WorkingHoursEnd: "18:00"},
	)
}

// S7: a gap greater than 60 minutes between two consecutive classes for the
// same group on the same day is reported as a schedule_compactness violation.
func TestIdentifyViolations_GapOverSixtyMinutes(t *testing.T) {
	problem := baseExtractProblem()
	assignments := []engine.Assignment{
		{CourseID: 1, InstructorID: 1, RoomID: 1, GroupID: 1, Day: engine.Monday, StartTime: "09:00", EndTime: "10:00"},
		{CourseID: 2, InstructorID: 1, RoomID: 1, GroupID: 1, Day: engine.Monday, StartTime: "11:30", EndTime: "12:30"},
	}

	violations := engine.IdentifyViolations(problem, assignments)
	assert.True(t, findKind(violations, engine.KindScheduleCompactness))
}

// A back-to-back schedule (no gap) must not trigger the compactness check.
func TestIdentifyViolations_NoGapWhenBackToBack(t *testing.T) {
	problem := baseExtractProblem()
	assignments := []engine.Assignment{
		{CourseID: 1, InstructorID: 1, RoomID: 1, GroupID: 1, Day: engine.Monday, StartTime: "09:00", EndTime: "10:00"},
		{CourseID: 2, InstructorID: 1, RoomID: 1, GroupID: 1, Day: engine.Monday, StartTime: "10:00", EndTime: "11:00"},
	}

	violations := engine.IdentifyViolations(problem, assignments)
	assert.False(t, findKind(violations, engine.KindScheduleCompactness))
}

// Room oversize: capacity far exceeds the group it hosts.
func TestIdentifyViolations_RoomOversize(t *testing.T) {
	problem := engine.NewProblem(
		[]engine.Course{{ID: 1, Duration: 60, InstructorIDs: []int{1}, GroupIDs: []int{1}}},
		[]engine.Instructor{{ID: 1, Name: "Prof A"}},
		[]engine.Room{{ID: 1, Name: "Auditorium", Capacity: 200, Type: "Lecture"}},
		[]engine.StudentGroup{{ID: 1, Name: "G1", Size: 10, CourseIDs: []int{1}}},
		engine.ConstraintConfig{WorkingHoursStart: "08:00", WorkingHoursEnd: "18:00"},
	)
	assignments := []engine.Assignment{
		{CourseID: 1, InstructorID: 1, RoomID: 1, GroupID: 1, Day: engine.Monday, StartTime: "09:00", EndTime: "10:00"},
	}

	violations := engine.IdentifyViolations(problem, assignments)
	assert.True(t, findKind(violations, engine.KindRoomPreference))
}

// Fitness normalization stays within [0, 100] and is 0 when no penalty
// weight was ever emitted.
func TestNormalizedFitness_Bounds(t *testing.T) {
	assert.Equal(t, 0.0, engine.NormalizedFitness(0, 0))
	assert.Equal(t, 50.0, engine.NormalizedFitness(50, 100))
	assert.Equal(t, 100.0, engine.NormalizedFitness(100, 100))
}
