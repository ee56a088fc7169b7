package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timetable-cpsat-engine/internal/engine"
)

func validatorProblem() engine.ValidationRequest {
	return engine.ValidationRequest{
		Courses: []engine.Course{
			{ID: 1, Duration: 90, RoomType: "Lab", InstructorIDs: []int{1}, GroupIDs: []int{1}},
			{ID: 2, Duration: 60, InstructorIDs: []int{1}, GroupIDs: []int{1}},
		},
		Instructors: []engine.Instructor{
			{ID: 1, Name: "Prof A", Availability: map[engine.Day][]engine.Interval{
				engine.Monday: {{Start: 540, End: 1020}},
			}},
		},
		Rooms: []engine.Room{
			{ID: 1, Name: "Lab 1", Capacity: 30, Type: "Lab"},
		},
		Groups: []engine.StudentGroup{
			{ID: 1, Name: "G1", Size: 20, CourseIDs: []int{1, 2}},
		},
		Constraints: engine.ConstraintConfig{WorkingHoursStart: "08:00", WorkingHoursEnd: "18:00"},
	}
}

func findKind(violations []engine.Violation, kind string) bool {
	for _, v := range violations {
		if v.Kind == kind {
			return true
		}
	}
	return false
}

// S4: two assignments double-book the same room on the same day.
func TestValidate_S4RoomConflict(t *testing.T) {
	req := validatorProblem()
	req.Assignments = []engine.Assignment{
		{CourseID: 1, InstructorID: 1, RoomID: 1, GroupID: 1, Day: engine.Monday, StartTime: "09:00", EndTime: "10:30"},
		{CourseID: 2, InstructorID: 1, RoomID: 1, GroupID: 1, Day: engine.Monday, StartTime: "09:30", EndTime: "11:00"},
	}

	isValid, conflicts := engine.ValidateTimetable(req)
	assert.False(t, isValid)
	assert.True(t, findKind(conflicts, engine.KindRoomConflict))
}

// S5: two assignments double-book the same instructor on the same day.
func TestValidate_S5InstructorConflict(t *testing.T) {
	req := validatorProblem()
	req.Rooms = append(req.Rooms, engine.Room{ID: 2, Name: "Lab 2", Capacity: 30, Type: "Lab"})
	req.Assignments = []engine.Assignment{
		{CourseID: 1, InstructorID: 1, RoomID: 1, GroupID: 1, Day: engine.Monday, StartTime: "09:00", EndTime: "10:30"},
		{CourseID: 2, InstructorID: 1, RoomID: 2, GroupID: 1, Day: engine.Monday, StartTime: "10:00", EndTime: "11:00"},
	}

	isValid, conflicts := engine.ValidateTimetable(req)
	assert.False(t, isValid)
	assert.True(t, findKind(conflicts, engine.KindInstructorConflict))
}

// S6: an assignment falls outside the configured working hours window.
func TestValidate_S6WorkingHours(t *testing.T) {
	req := validatorProblem()
	req.Assignments = []engine.Assignment{
		{CourseID: 1, InstructorID: 1, RoomID: 1, GroupID: 1, Day: engine.Monday, StartTime: "17:30", EndTime: "19:00"},
	}

	isValid, conflicts := engine.ValidateTimetable(req)
	assert.False(t, isValid)
	assert.True(t, findKind(conflicts, engine.KindWorkingHours))
}

// Group double-booking: same group, overlapping intervals, distinct rooms
// and instructors, must still be flagged.
func TestValidate_GroupConflict(t *testing.T) {
	req := validatorProblem()
	req.Instructors = append(req.Instructors, engine.Instructor{
		ID: 2, Name: "Prof B", Availability: map[engine.Day][]engine.Interval{
			engine.Monday: {{Start: 540, End: 1020}},
		},
	})
	req.Rooms = append(req.Rooms, engine.Room{ID: 2, Name: "Lab 2", Capacity: 30, Type: "Lab"})
	req.Assignments = []engine.Assignment{
		{CourseID: 1, InstructorID: 1, RoomID: 1, GroupID: 1, Day: engine.Monday, StartTime: "09:00", EndTime: "10:30"},
		{CourseID: 2, InstructorID: 2, RoomID: 2, GroupID: 1, Day: engine.Monday, StartTime: "10:00", EndTime: "11:00"},
	}

	isValid, conflicts := engine.ValidateTimetable(req)
	assert.False(t, isValid)
	assert.True(t, findKind(conflicts, engine.KindGroupConflict))
}

// Room capacity: group exceeds the assigned room's capacity.
func TestValidate_RoomCapacity(t *testing.T) {
	req := validatorProblem()
	req.Groups = []engine.StudentGroup{{ID: 1, Name: "G1", Size: 50, CourseIDs: []int{1, 2}}}
	req.Assignments = []engine.Assignment{
		{CourseID: 1, InstructorID: 1, RoomID: 1, GroupID: 1, Day: engine.Monday, StartTime: "09:00", EndTime: "10:30"},
	}

	isValid, conflicts := engine.ValidateTimetable(req)
	assert.False(t, isValid)
	assert.True(t, findKind(conflicts, engine.KindRoomCapacity))
}

// Room type: course requires a type the assigned room does not carry.
func TestValidate_RoomType(t *testing.T) {
	req := validatorProblem()
	req.Rooms = []engine.Room{{ID: 1, Name: "Lecture Hall", Capacity: 30, Type: "Lecture"}}
	req.Assignments = []engine.Assignment{
		{CourseID: 1, InstructorID: 1, RoomID: 1, GroupID: 1, Day: engine.Monday, StartTime: "09:00", EndTime: "10:30"},
	}

	isValid, conflicts := engine.ValidateTimetable(req)
	assert.False(t, isValid)
	assert.True(t, findKind(conflicts, engine.KindRoomType))
}

// Instructor availability: the assignment interval is not fully contained
// in any of the instructor's availability intervals on that day.
func TestValidate_InstructorAvailability(t *testing.T) {
	req := validatorProblem()
	req.Instructors = []engine.Instructor{
		{ID: 1, Name: "Prof A", Availability: map[engine.Day][]engine.Interval{
			engine.Monday: {{Start: 540, End: 600}},
		}},
	}
	req.Assignments = []engine.Assignment{
		{CourseID: 1, InstructorID: 1, RoomID: 1, GroupID: 1, Day: engine.Monday, StartTime: "09:00", EndTime: "10:30"},
	}

	isValid, conflicts := engine.ValidateTimetable(req)
	assert.False(t, isValid)
	assert.True(t, findKind(conflicts, engine.KindInstructorAvailability))
}

// Validator soundness: a clean, non-overlapping assignment set reports valid.
func TestValidate_Soundness(t *testing.T) {
	req := validatorProblem()
	req.Assignments = []engine.Assignment{
		{CourseID: 1, InstructorID: 1, RoomID: 1, GroupID: 1, Day: engine.Monday, StartTime: "09:00", EndTime: "10:30"},
		{CourseID: 2, InstructorID: 1, RoomID: 1, GroupID: 1, Day: engine.Monday, StartTime: "10:30", EndTime: "11:30"},
	}

	isValid, conflicts := engine.ValidateTimetable(req)
	require.Empty(t, conflicts)
	assert.True(t, isValid)
}

// Validator soundness against the solver: any successful Optimize result
// must also validate clean (testable property 8).
func TestValidate_SoundnessAgainstOptimize(t *testing.T) {
	genReq := engine.GenerationRequest{
		Courses: []engine.Course{
			{ID: 1, Code: "C1", Title: "A", Duration: 60, InstructorIDs: []int{1}, GroupIDs: []int{1}},
			{ID: 2, Code: "C2", Title: "B", Duration: 60, InstructorIDs: []int{2}, GroupIDs: []int{1}},
		},
		Instructors: []engine.Instructor{
			{ID: 1, Name: "Prof A", Availability: map[engine.Day][]engine.Interval{engine.Monday: {{Start: 540, End: 720}}}},
			{ID: 2, Name: "Prof B", Availability: map[engine.Day][]engine.Interval{engine.Monday: {{Start: 540, End: 720}}}},
		},
		Rooms: []engine.Room{
			{ID: 1, Name: "Room 1", Capacity: 40, Type: "Lecture"},
			{ID: 2, Name: "Room 2", Capacity: 40, Type: "Lecture"},
		},
		Groups: []engine.StudentGroup{
			{ID: 1, Name: "G1", Size: 20, CourseIDs: []int{1, 2}},
		},
		Constraints: trivialConstraints(),
		TimeLimit:   5 * time.Second,
		Workers:     1,
	}

	result, err := engine.Optimize(genReq)
	require.NoError(t, err)
	require.True(t, result.Success)

	isValid, conflicts := engine.ValidateTimetable(engine.ValidationRequest{
		Courses:     genReq.Courses,
		Instructors: genReq.Instructors,
		Rooms:       genReq.Rooms,
		Groups:      genReq.Groups,
		Constraints: genReq.Constraints,
		Assignments: result.Assignments,
	})
	require.Empty(t, conflicts)
	assert.True(t, isValid)
}
