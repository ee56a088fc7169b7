package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/timetable-cpsat-engine/internal/dto"
	"github.com/noah-isme/timetable-cpsat-engine/internal/service"
	appErrors "github.com/noah-isme/timetable-cpsat-engine/pkg/errors"
	"github.com/noah-isme/timetable-cpsat-engine/pkg/response"
)

// EngineHandler exposes the timetable generation and validation endpoints.
type EngineHandler struct {
	engine *service.EngineService
}

// NewEngineHandler constructs an EngineHandler.
func NewEngineHandler(engine *service.EngineService) *EngineHandler {
	return &EngineHandler{engine: engine}
}

// Generate builds a timetable from the submitted courses, instructors,
// rooms, and groups.
//
// @Summary      Generate a timetable
// @Description  Runs the constraint engine over the submitted entities and returns the best timetable found within the time budget.
// @Tags         engine
// @Accept       json
// @Produce      json
// @Param        payload body dto.GenerationPayload true "generation payload"
// @Success      200 {object} dto.TimetableResult
// @Failure      401 {object} response.Envelope
// @Failure      422 {object} response.Envelope
// @Router       /generate [post]
func (h *EngineHandler) Generate(c *gin.Context) {
	var payload dto.GenerationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusUnprocessableEntity, "malformed generation payload"))
		return
	}

	result, err := h.engine.Generate(c.Request.Context(), payload)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, result)
}

// Validate re-checks an externally supplied assignment list against the
// hard constraints, independent of the solver.
//
// @Summary      Validate a timetable
// @Description  Re-checks a candidate assignment list against the hard constraints without invoking the solver.
// @Tags         engine
// @Accept       json
// @Produce      json
// @Param        payload body dto.ValidationPayload true "validation payload"
// @Success      200 {object} dto.ValidationResult
// @Failure      401 {object} response.Envelope
// @Failure      422 {object} response.Envelope
// @Failure      500 {object} response.Envelope
// @Router       /validate [post]
func (h *EngineHandler) Validate(c *gin.Context) {
	var payload dto.ValidationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusUnprocessableEntity, "malformed validation payload"))
		return
	}

	result, err := h.engine.Validate(c.Request.Context(), payload)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, result)
}
