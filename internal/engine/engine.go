package engine

import (
	"fmt"
	"time"
)

// GenerationRequest is the fully parsed and indexed input to Optimize.
type GenerationRequest struct {
	Courses     []Course
	Instructors []Instructor
	Rooms       []Room
	Groups      []StudentGroup
	Constraints ConstraintConfig
	TimeLimit   time.Duration
	Workers     int
}

// GenerationResult is the full outcome of one Optimize run.
type GenerationResult struct {
	Success          bool
	Assignments      []Assignment
	Fitness          float64
	HasFitness       bool
	Violations       []Violation
	SolveTimeSeconds float64
	Message          string

	NumVariables   int
	NumConstraints int
	Status         Status
}

// Optimize builds the time grid, the variable space, compiles both
// constraint families, runs the bounded search, and extracts a result. It
// never returns an error for solver-outcome failures, those become
// Success=false; only a genuinely malformed
// payload (an empty course list the caller should have rejected at the
// validation layer) returns an error.
func Optimize(req GenerationRequest) (GenerationResult, error) {
	if len(req.Courses) == 0 {
		return GenerationResult{}, fmt.Errorf("engine: no courses supplied")
	}

	problem := NewProblem(req.Courses, req.Instructors, req.Rooms, req.Groups, req.Constraints)

	grid, err := BuildTimeGrid(req.Constraints.WorkingHoursStart, req.Constraints.WorkingHoursEnd, req.Courses)
	if err != nil {
		return GenerationResult{
			Success: false,
			Message: fmt.Sprintf("invalid working hours configuration: %v", err),
			Status:  StatusModelInvalid,
		}, nil
	}

	if len(grid.Slots) == 0 {
		return GenerationResult{
			Success: false,
			Message: "no course fits within the configured working hours window",
			Status:  StatusInfeasible,
		}, nil
	}

	model := NewModel()
	vs := BuildVariableSpace(model, grid, req.Courses, req.Rooms)
	CompileHardConstraints(model, problem, grid, vs)
	artifacts := CompileSoftConstraints(model, problem, grid, vs)

	solverCfg := SolverConfig{TimeLimit: req.TimeLimit, Workers: req.Workers}
	result := Solve(problem, grid, vs, artifacts, solverCfg)

	wallSeconds := result.WallTime.Seconds()

	switch result.Status {
	case StatusOptimal, StatusFeasible:
		assignments := ExtractAssignments(result.Chosen, grid)
		fitness := NormalizedFitness(result.Objective, model.TotalPenaltyWeight())
		violations := IdentifyViolations(problem, assignments)
		SortViolations(violations)

		message := "optimal solution found"
		if result.Status == StatusFeasible {
			message = "feasible solution found, not proven optimal"
		}

		return GenerationResult{
			Success:          true,
			Assignments:      assignments,
			Fitness:          fitness,
			HasFitness:       true,
			Violations:       violations,
			SolveTimeSeconds: wallSeconds,
			Message:          message,
			NumVariables:     model.NumVariables(),
			NumConstraints:   model.NumConstraints(),
			Status:           result.Status,
		}, nil

	case StatusInfeasible:
		issues := AnalyzeInfeasibility(problem, grid)
		message := "no feasible timetable exists"
		if len(issues) > 0 {
			message = fmt.Sprintf("no feasible timetable exists: %s", joinIssues(issues))
		}
		return GenerationResult{
			Success:          false,
			Message:          message,
			SolveTimeSeconds: wallSeconds,
			NumVariables:     model.NumVariables(),
			NumConstraints:   model.NumConstraints(),
			Status:           result.Status,
		}, nil

	case StatusModelInvalid:
		return GenerationResult{
			Success:          false,
			Message:          fmt.Sprintf("internal model error: %s", result.Detail),
			SolveTimeSeconds: wallSeconds,
			NumVariables:     model.NumVariables(),
			NumConstraints:   model.NumConstraints(),
			Status:           result.Status,
		}, nil

	default: // StatusUnknown
		return GenerationResult{
			Success:          false,
			Message:          "solver reached the time limit without a solution; consider relaxing constraints or raising time_limit_seconds",
			SolveTimeSeconds: wallSeconds,
			NumVariables:     model.NumVariables(),
			NumConstraints:   model.NumConstraints(),
			Status:           result.Status,
		}, nil
	}
}

// ValidationRequest is the fully parsed input to Validate's HTTP-facing wrapper.
type ValidationRequest struct {
	Courses     []Course
	Instructors []Instructor
	Rooms       []Room
	Groups      []StudentGroup
	Constraints ConstraintConfig
	Assignments []Assignment
}

// ValidateTimetable wraps Validate with the same problem indexing Optimize
// uses, so the HTTP /validate path never touches the solver.
func ValidateTimetable(req ValidationRequest) (bool, []Violation) {
	problem := NewProblem(req.Courses, req.Instructors, req.Rooms, req.Groups, req.Constraints)
	isValid, violations := Validate(problem, req.Assignments)
	SortViolations(violations)
	return isValid, violations
}

func joinIssues(issues []string) string {
	out := issues[0]
	for _, issue := range issues[1:] {
		out += "; " + issue
	}
	return out
}
