package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-cpsat-engine/internal/dto"
	"github.com/noah-isme/timetable-cpsat-engine/internal/engine"
	"github.com/noah-isme/timetable-cpsat-engine/pkg/config"
	appErrors "github.com/noah-isme/timetable-cpsat-engine/pkg/errors"
	"github.com/noah-isme/timetable-cpsat-engine/pkg/middleware/requestid"
)

// EngineService adapts the HTTP-facing DTOs onto the constraint engine,
// logging and instrumenting each run the way ScheduleGeneratorService wraps
// its own domain calls.
type EngineService struct {
	validate *validator.Validate
	logger   *zap.Logger
	metrics  *MetricsService
	cfg      config.EngineConfig
}

// NewEngineService constructs an EngineService, defaulting a nil logger to a
// no-op one so callers (and tests) never need a real sink.
func NewEngineService(logger *zap.Logger, metrics *MetricsService, cfg config.EngineConfig) *EngineService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EngineService{
		validate: validator.New(),
		logger:   logger,
		metrics:  metrics,
		cfg:      cfg,
	}
}

// Generate validates the payload, runs the engine, and converts the result
// back into the response DTO. It returns an error only for structural
// problems the handler should have already caught; solver-outcome failures
// are reported as TimetableResult{Success:false}.
func (s *EngineService) Generate(ctx context.Context, payload dto.GenerationPayload) (dto.TimetableResult, error) {
	runID := runIDFrom(ctx)

	if err := s.validate.Struct(payload); err != nil {
		return dto.TimetableResult{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid generation payload")
	}

	req, err := buildGenerationRequest(payload, s.cfg)
	if err != nil {
		return dto.TimetableResult{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid generation payload")
	}

	s.logger.Info("engine run starting",
		zap.String("run_id", runID),
		zap.Int("courses", len(req.Courses)),
		zap.Int("instructors", len(req.Instructors)),
		zap.Int("rooms", len(req.Rooms)),
		zap.Int("groups", len(req.Groups)),
	)

	result, err := engine.Optimize(req)
	if err != nil {
		return dto.TimetableResult{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid generation payload")
	}

	s.logger.Info("engine run finished",
		zap.String("run_id", runID),
		zap.String("status", string(result.Status)),
		zap.Bool("success", result.Success),
		zap.Int("num_variables", result.NumVariables),
		zap.Int("num_constraints", result.NumConstraints),
		zap.Float64("solve_time_seconds", result.SolveTimeSeconds),
	)
	s.metrics.ObserveSolverRun(string(result.Status), time.Duration(result.SolveTimeSeconds*float64(time.Second)), result.NumVariables, result.NumConstraints)

	return toTimetableResult(result), nil
}

// Validate runs the standalone validator against an externally supplied
// assignment list, independent of the solver.
func (s *EngineService) Validate(ctx context.Context, payload dto.ValidationPayload) (dto.ValidationResult, error) {
	runID := runIDFrom(ctx)

	if err := s.validate.Struct(payload); err != nil {
		return dto.ValidationResult{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid validation payload")
	}

	req, err := buildValidationRequest(payload)
	if err != nil {
		return dto.ValidationResult{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid validation payload")
	}

	isValid, violations := engine.ValidateTimetable(req)

	s.logger.Info("validation run finished",
		zap.String("run_id", runID),
		zap.Bool("is_valid", isValid),
		zap.Int("assignments", len(payload.Assignments)),
		zap.Int("conflicts", len(violations)),
	)

	return dto.ValidationResult{
		IsValid:   isValid,
		Conflicts: toViolationDetails(violations),
	}, nil
}

// runIDFrom reuses the inbound request ID as the run id so engine logs line
// up with access logs, minting a fresh uuid for direct (non-HTTP) callers.
func runIDFrom(ctx context.Context) string {
	if id := requestid.FromContext(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

func buildGenerationRequest(payload dto.GenerationPayload, cfg config.EngineConfig) (engine.GenerationRequest, error) {
	courses, err := convertCourses(payload.Courses)
	if err != nil {
		return engine.GenerationRequest{}, err
	}
	instructors, err := convertInstructors(payload.Instructors)
	if err != nil {
		return engine.GenerationRequest{}, err
	}
	rooms := convertRooms(payload.Rooms)
	groups := convertGroups(payload.Groups)
	constraints := convertConstraints(payload.Constraints)

	timeLimit := cfg.DefaultTimeLimit
	if payload.TimeLimitSeconds > 0 {
		timeLimit = time.Duration(payload.TimeLimitSeconds) * time.Second
	}
	if timeLimit < cfg.MinTimeLimit {
		timeLimit = cfg.MinTimeLimit
	}
	if timeLimit > cfg.MaxTimeLimit {
		timeLimit = cfg.MaxTimeLimit
	}

	workers := cfg.SearchWorkers
	if workers <= 0 {
		workers = 8
	}

	return engine.GenerationRequest{
		Courses:     courses,
		Instructors: instructors,
		Rooms:       rooms,
		Groups:      groups,
		Constraints: constraints,
		TimeLimit:   timeLimit,
		Workers:     workers,
	}, nil
}

func buildValidationRequest(payload dto.ValidationPayload) (engine.ValidationRequest, error) {
	courses, err := convertCourses(payload.Courses)
	if err != nil {
		return engine.ValidationRequest{}, err
	}
	instructors, err := convertInstructors(payload.Instructors)
	if err != nil {
		return engine.ValidationRequest{}, err
	}
	rooms := convertRooms(payload.Rooms)
	groups := convertGroups(payload.Groups)
	constraints := convertConstraints(payload.Constraints)

	assignments := make([]engine.Assignment, 0, len(payload.Assignments))
	for _, a := range payload.Assignments {
		assignments = append(assignments, engine.Assignment{
			CourseID:     a.CourseID,
			InstructorID: a.InstructorID,
			RoomID:       a.RoomID,
			GroupID:      a.GroupID,
			Day:          engine.Day(a.Day),
			StartTime:    a.StartTime,
			EndTime:      a.EndTime,
		})
	}

	return engine.ValidationRequest{
		Courses:     courses,
		Instructors: instructors,
		Rooms:       rooms,
		Groups:      groups,
		Constraints: constraints,
		Assignments: assignments,
	}, nil
}

func convertCourses(in []dto.CourseInput) ([]engine.Course, error) {
	out := make([]engine.Course, 0, len(in))
	for _, c := range in {
		out = append(out, engine.Course{
			ID:            c.ID,
			Code:          c.Code,
			Title:         c.Title,
			Duration:      c.Duration,
			Department:    c.Department,
			RoomType:      c.RoomType,
			InstructorIDs: append([]int(nil), c.InstructorIDs...),
			GroupIDs:      append([]int(nil), c.GroupIDs...),
		})
	}
	return out, nil
}

func convertInstructors(in []dto.InstructorInput) ([]engine.Instructor, error) {
	out := make([]engine.Instructor, 0, len(in))
	for _, i := range in {
		availability := make(map[engine.Day][]engine.Interval, len(i.Availability))
		for dayStr, ranges := range i.Availability {
			intervals := make([]engine.Interval, 0, len(ranges))
			for _, r := range ranges {
				iv, err := parseRange(r)
				if err != nil {
					return nil, fmt.Errorf("instructor %d: %w", i.ID, err)
				}
				intervals = append(intervals, iv)
			}
			availability[engine.Day(dayStr)] = intervals
		}

		var prefs engine.InstructorPreferences
		if i.Preferences != nil {
			for _, d := range i.Preferences.PreferredDays {
				prefs.PreferredDays = append(prefs.PreferredDays, engine.Day(d))
			}
			for _, r := range i.Preferences.PreferredTimes {
				iv, err := parseRange(r)
				if err != nil {
					return nil, fmt.Errorf("instructor %d preferences: %w", i.ID, err)
				}
				prefs.PreferredTimes = append(prefs.PreferredTimes, iv)
			}
		}

		out = append(out, engine.Instructor{
			ID:           i.ID,
			Name:         i.Name,
			Department:   i.Department,
			TeachingLoad: i.TeachingLoad,
			Availability: availability,
			Preferences:  prefs,
		})
	}
	return out, nil
}

func convertRooms(in []dto.RoomInput) []engine.Room {
	out := make([]engine.Room, 0, len(in))
	for _, r := range in {
		out = append(out, engine.Room{
			ID:        r.ID,
			Name:      r.Name,
			Capacity:  r.Capacity,
			Type:      r.Type,
			Equipment: append([]string(nil), r.Equipment...),
		})
	}
	return out
}

func convertGroups(in []dto.StudentGroupInput) []engine.StudentGroup {
	out := make([]engine.StudentGroup, 0, len(in))
	for _, g := range in {
		out = append(out, engine.StudentGroup{
			ID:        g.ID,
			Name:      g.Name,
			Size:      g.Size,
			CourseIDs: append([]int(nil), g.CourseIDs...),
		})
	}
	return out
}

func convertConstraints(in dto.ConstraintConfigInput) engine.ConstraintConfig {
	start := in.WorkingHoursStart
	if start == "" {
		start = "08:00"
	}
	end := in.WorkingHoursEnd
	if end == "" {
		end = "18:00"
	}
	return engine.ConstraintConfig{
		Hard:              in.Hard,
		Soft:              in.Soft,
		WorkingHoursStart: start,
		WorkingHoursEnd:   end,
	}
}

// parseRange parses "HH:MM-HH:MM" into an Interval.
func parseRange(raw string) (engine.Interval, error) {
	parts := strings.SplitN(raw, "-", 2)
	if len(parts) != 2 {
		return engine.Interval{}, fmt.Errorf("malformed availability range %q, want HH:MM-HH:MM", raw)
	}
	start, err := engine.ParseHHMM(parts[0])
	if err != nil {
		return engine.Interval{}, err
	}
	end, err := engine.ParseHHMM(parts[1])
	if err != nil {
		return engine.Interval{}, err
	}
	return engine.Interval{Start: start, End: end}, nil
}

func toTimetableResult(result engine.GenerationResult) dto.TimetableResult {
	out := dto.TimetableResult{
		Success:          result.Success,
		SolveTimeSeconds: result.SolveTimeSeconds,
		Message:          result.Message,
		Assignments:      make([]dto.AssignmentOutput, 0, len(result.Assignments)),
		Violations:       toViolationDetails(result.Violations),
	}
	if result.HasFitness {
		fitness := result.Fitness
		out.Fitness = &fitness
	}
	for _, a := range result.Assignments {
		out.Assignments = append(out.Assignments, dto.AssignmentOutput{
			CourseID:     a.CourseID,
			InstructorID: a.InstructorID,
			RoomID:       a.RoomID,
			GroupID:      a.GroupID,
			Day:          string(a.Day),
			StartTime:    a.StartTime,
			EndTime:      a.EndTime,
		})
	}
	return out
}

func toViolationDetails(violations []engine.Violation) []dto.ViolationDetail {
	out := make([]dto.ViolationDetail, 0, len(violations))
	for _, v := range violations {
		out = append(out, dto.ViolationDetail{
			Kind:                v.Kind,
			Severity:            v.Severity,
			Description:         v.Description,
			AffectedAssignments: v.CourseIDs,
		})
	}
	return out
}
