package engine

// AssignmentVar pairs a boolean decision variable with the resource tuple it
// represents.
type AssignmentVar struct {
	Var          *BoolVar
	CourseID     int
	Day          Day
	StartSlot    int
	RoomID       int
	InstructorID int
	GroupID      int
	DurationMin  int
}

// resourceSlotKey identifies one (resource id, day, slot) coordinate.
type resourceSlotKey struct {
	ResourceID int
	Day        Day
	Slot       int
}

// VariableSpace enumerates every x[c,d,s,r,i,g] decision variable and
// indexes them for the hard and soft compilers.
type VariableSpace struct {
	Model *Model
	Grid  *TimeGrid
	Vars  []*AssignmentVar

	byCourse    map[int][]*AssignmentVar
	byRoomSlot  map[resourceSlotKey][]*AssignmentVar
	byInstrSlot map[resourceSlotKey][]*AssignmentVar
	byGroupSlot map[resourceSlotKey][]*AssignmentVar
}

// BuildVariableSpace enumerates decision variables over every course,
// operating day, feasible start slot, room, eligible instructor, and
// participating group. Tuples whose duration cannot fit the working window
// are the only ones omitted; all other feasibility is the compilers' job.
func BuildVariableSpace(model *Model, grid *TimeGrid, courses []Course, rooms []Room) *VariableSpace {
	vs := &VariableSpace{
		Model:       model,
		Grid:        grid,
		byCourse:    make(map[int][]*AssignmentVar),
		byRoomSlot:  make(map[resourceSlotKey][]*AssignmentVar),
		byInstrSlot: make(map[resourceSlotKey][]*AssignmentVar),
		byGroupSlot: make(map[resourceSlotKey][]*AssignmentVar),
	}

	for _, course := range courses {
		for _, day := range grid.Days {
			for _, slot := range grid.Slots {
				if !grid.FitsWindow(slot.Index, course.Duration) {
					continue
				}
				for _, room := range rooms {
					for _, instructorID := range course.InstructorIDs {
						for _, groupID := range course.GroupIDs {
							vs.add(course, day, slot.Index, room.ID, instructorID, groupID)
						}
					}
				}
			}
		}
	}

	return vs
}

func (vs *VariableSpace) add(course Course, day Day, startSlot, roomID, instructorID, groupID int) {
	bv := vs.Model.NewBoolVar(KindDecision, "")
	av := &AssignmentVar{
		Var:          bv,
		CourseID:     course.ID,
		Day:          day,
		StartSlot:    startSlot,
		RoomID:       roomID,
		InstructorID: instructorID,
		GroupID:      groupID,
		DurationMin:  course.Duration,
	}
	vs.Vars = append(vs.Vars, av)
	vs.byCourse[course.ID] = append(vs.byCourse[course.ID], av)

	span := vs.Grid.DurationSlots(course.Duration)
	for offset := 0; offset < span; offset++ {
		slot := startSlot + offset
		vs.byRoomSlot[resourceSlotKey{roomID, day, slot}] = append(vs.byRoomSlot[resourceSlotKey{roomID, day, slot}], av)
		vs.byInstrSlot[resourceSlotKey{instructorID, day, slot}] = append(vs.byInstrSlot[resourceSlotKey{instructorID, day, slot}], av)
		vs.byGroupSlot[resourceSlotKey{groupID, day, slot}] = append(vs.byGroupSlot[resourceSlotKey{groupID, day, slot}], av)
	}
}

// ForCourse returns every variable for a given course id.
func (vs *VariableSpace) ForCourse(courseID int) []*AssignmentVar {
	return vs.byCourse[courseID]
}

// ForRoomSlot returns every variable occupying (roomID, day, slot).
func (vs *VariableSpace) ForRoomSlot(roomID int, day Day, slot int) []*AssignmentVar {
	return vs.byRoomSlot[resourceSlotKey{roomID, day, slot}]
}

// ForInstructorSlot returns every variable occupying (instructorID, day, slot).
func (vs *VariableSpace) ForInstructorSlot(instructorID int, day Day, slot int) []*AssignmentVar {
	return vs.byInstrSlot[resourceSlotKey{instructorID, day, slot}]
}

// ForGroupSlot returns every variable occupying (groupID, day, slot).
func (vs *VariableSpace) ForGroupSlot(groupID int, day Day, slot int) []*AssignmentVar {
	return vs.byGroupSlot[resourceSlotKey{groupID, day, slot}]
}
