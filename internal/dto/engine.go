// Package dto holds the JSON request/response shapes of the HTTP surface,
// validated with go-playground/validator tags before they reach the engine.
package dto

// CourseInput is one course in a GenerationPayload.
type CourseInput struct {
	ID            int    `json:"id" validate:"required"`
	Code          string `json:"code" validate:"required"`
	Title         string `json:"title" validate:"required"`
	Duration      int    `json:"duration" validate:"required,min=1"`
	Department    string `json:"department"`
	RoomType      string `json:"room_type,omitempty"`
	InstructorIDs []int  `json:"instructor_ids" validate:"required,min=1"`
	GroupIDs      []int  `json:"group_ids" validate:"required,min=1"`
}

// InstructorPreferencesInput carries optional preferred days/times.
type InstructorPreferencesInput struct {
	PreferredDays  []string `json:"preferred_days,omitempty" validate:"omitempty,dive,oneof=MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY SATURDAY SUNDAY"`
	PreferredTimes []string `json:"preferred_times,omitempty" validate:"omitempty,dive"`
}

// InstructorInput is one instructor, with per-day availability windows
// formatted "HH:MM-HH:MM".
type InstructorInput struct {
	ID           int                         `json:"id" validate:"required"`
	Name         string                      `json:"name" validate:"required"`
	Department   string                      `json:"department"`
	TeachingLoad int                         `json:"teaching_load"`
	Availability map[string][]string         `json:"availability" validate:"required"`
	Preferences  *InstructorPreferencesInput `json:"preferences,omitempty"`
}

// RoomInput is one room in a GenerationPayload.
type RoomInput struct {
	ID        int      `json:"id" validate:"required"`
	Name      string   `json:"name" validate:"required"`
	Capacity  int      `json:"capacity" validate:"required,min=1"`
	Type      string   `json:"type" validate:"required"`
	Equipment []string `json:"equipment,omitempty"`
}

// StudentGroupInput is one cohort in a GenerationPayload.
type StudentGroupInput struct {
	ID        int    `json:"id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Size      int    `json:"size" validate:"required,min=1"`
	CourseIDs []int  `json:"course_ids" validate:"required,min=1"`
}

// ConstraintConfigInput carries the hard-rule toggles, soft-rule weights,
// and the working window.
type ConstraintConfigInput struct {
	Hard              map[string]bool `json:"hard,omitempty"`
	Soft              map[string]int  `json:"soft,omitempty"`
	WorkingHoursStart string          `json:"working_hours_start" validate:"omitempty,len=5"`
	WorkingHoursEnd   string          `json:"working_hours_end" validate:"omitempty,len=5"`
}

// GenerationPayload is the POST /generate request body.
type GenerationPayload struct {
	Courses          []CourseInput         `json:"courses" validate:"required,min=1,dive"`
	Instructors      []InstructorInput     `json:"instructors" validate:"required,min=1,dive"`
	Rooms            []RoomInput           `json:"rooms" validate:"required,min=1,dive"`
	Groups           []StudentGroupInput   `json:"groups" validate:"required,min=1,dive"`
	Constraints      ConstraintConfigInput `json:"constraints"`
	TimeLimitSeconds int                   `json:"time_limit_seconds" validate:"omitempty,min=10,max=600"`
}

// AssignmentOutput is one committed course assignment, in either a
// TimetableResult or a ValidationPayload.
type AssignmentOutput struct {
	CourseID     int    `json:"course_id" validate:"required"`
	InstructorID int    `json:"instructor_id" validate:"required"`
	RoomID       int    `json:"room_id" validate:"required"`
	GroupID      int    `json:"group_id" validate:"required"`
	Day          string `json:"day" validate:"required,oneof=MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY SATURDAY SUNDAY"`
	StartTime    string `json:"start_time" validate:"required,len=5"`
	EndTime      string `json:"end_time" validate:"required,len=5"`
}

// ViolationDetail describes one broken rule in a TimetableResult or
// ValidationResult.
type ViolationDetail struct {
	Kind                string `json:"kind"`
	Severity            string `json:"severity"`
	Description         string `json:"description"`
	AffectedAssignments []int  `json:"affected_assignments"`
}

// TimetableResult is the POST /generate response body. success=false on any
// solver outcome failure, never an HTTP error.
type TimetableResult struct {
	Success          bool               `json:"success"`
	Assignments      []AssignmentOutput `json:"assignments"`
	Fitness          *float64           `json:"fitness"`
	Violations       []ViolationDetail  `json:"violations"`
	SolveTimeSeconds float64            `json:"solve_time_seconds"`
	Message          string             `json:"message"`
}

// ValidationPayload is the POST /validate request body: a GenerationPayload
// plus the externally supplied assignments to check.
type ValidationPayload struct {
	Courses     []CourseInput         `json:"courses" validate:"required,min=1,dive"`
	Instructors []InstructorInput     `json:"instructors" validate:"required,min=1,dive"`
	Rooms       []RoomInput           `json:"rooms" validate:"required,min=1,dive"`
	Groups      []StudentGroupInput   `json:"groups" validate:"required,min=1,dive"`
	Constraints ConstraintConfigInput `json:"constraints"`
	Assignments []AssignmentOutput    `json:"assignments" validate:"required,min=1,dive"`
}

// ValidationResult is the POST /validate response body.
type ValidationResult struct {
	IsValid   bool              `json:"is_valid"`
	Conflicts []ViolationDetail `json:"conflicts"`
}
