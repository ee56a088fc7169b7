package engine

// Problem is the fully indexed request payload: dense maps keyed by entity
// id, so the cyclic course/group/instructor references stay integer ids and
// never become pointers.
type Problem struct {
	Courses     []Course
	Instructors []Instructor
	Rooms       []Room
	Groups      []StudentGroup
	Constraints ConstraintConfig

	CourseByID     map[int]Course
	InstructorByID map[int]Instructor
	RoomByID       map[int]Room
	GroupByID      map[int]StudentGroup
}

// NewProblem indexes the raw entity lists into id-keyed lookup maps.
func NewProblem(courses []Course, instructors []Instructor, rooms []Room, groups []StudentGroup, constraints ConstraintConfig) *Problem {
	p := &Problem{
		Courses:        courses,
		Instructors:    instructors,
		Rooms:          rooms,
		Groups:         groups,
		Constraints:    constraints,
		CourseByID:     make(map[int]Course, len(courses)),
		InstructorByID: make(map[int]Instructor, len(instructors)),
		RoomByID:       make(map[int]Room, len(rooms)),
		GroupByID:      make(map[int]StudentGroup, len(groups)),
	}
	for _, c := range courses {
		p.CourseByID[c.ID] = c
	}
	for _, i := range instructors {
		p.InstructorByID[i.ID] = i
	}
	for _, r := range rooms {
		p.RoomByID[r.ID] = r
	}
	for _, g := range groups {
		p.GroupByID[g.ID] = g
	}
	return p
}
