package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timetable-cpsat-engine/internal/dto"
	"github.com/noah-isme/timetable-cpsat-engine/internal/service"
	"github.com/noah-isme/timetable-cpsat-engine/pkg/config"
	"github.com/noah-isme/timetable-cpsat-engine/pkg/response"
)

func newEngineHandlerFixture() *EngineHandler {
	engineCfg := config.EngineConfig{
		DefaultTimeLimit: 5 * time.Second,
		MinTimeLimit:     1 * time.Second,
		MaxTimeLimit:     10 * time.Second,
		SearchWorkers:    1,
	}
	svc := service.NewEngineService(nil, nil, engineCfg)
	return NewEngineHandler(svc)
}

func generationBody() []byte {
	return []byte(`{
		"courses": [{"id": 1, "code": "CS101", "title": "Intro", "duration": 90, "room_type": "Lab", "instructor_ids": [1], "group_ids": [1]}],
		"instructors": [{"id": 1, "name": "Prof A", "availability": {"MONDAY": ["09:00-17:00"]}}],
		"rooms": [{"id": 1, "name": "Lab 1", "capacity": 50, "type": "Lab"}],
		"groups": [{"id": 1, "name": "G1", "size": 30, "course_ids": [1]}],
		"constraints": {"working_hours_start": "09:00", "working_hours_end": "17:00"}
	}`)
}

func doRequest(handler gin.HandlerFunc, body []byte) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	req, _ := http.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	handler(c)
	return w
}

func TestEngineHandlerGenerateSuccess(t *testing.T) {
	h := newEngineHandlerFixture()

	w := doRequest(h.Generate, generationBody())
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data dto.TimetableResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Data.Success)
	require.Len(t, envelope.Data.Assignments, 1)
	assert.Equal(t, "MONDAY", envelope.Data.Assignments[0].Day)
}

func TestEngineHandlerGenerateMalformedBody(t *testing.T) {
	h := newEngineHandlerFixture()

	w := doRequest(h.Generate, []byte(`{"courses":`))
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
}

func TestEngineHandlerGenerateMissingEntities(t *testing.T) {
	h := newEngineHandlerFixture()

	w := doRequest(h.Generate, []byte(`{"courses": [], "instructors": [], "rooms": [], "groups": []}`))
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestEngineHandlerValidateDetectsRoomConflict(t *testing.T) {
	h := newEngineHandlerFixture()

	body := []byte(`{
		"courses": [
			{"id": 1, "code": "CS101", "title": "Intro", "duration": 90, "instructor_ids": [1], "group_ids": [1]},
			{"id": 2, "code": "CS102", "title": "Data", "duration": 90, "instructor_ids": [1], "group_ids": [1]}
		],
		"instructors": [{"id": 1, "name": "Prof A", "availability": {"MONDAY": ["08:00-18:00"]}}],
		"rooms": [{"id": 1, "name": "Room 1", "capacity": 50, "type": "Lecture"}],
		"groups": [{"id": 1, "name": "G1", "size": 30, "course_ids": [1, 2]}],
		"constraints": {"working_hours_start": "08:00", "working_hours_end": "18:00"},
		"assignments": [
			{"course_id": 1, "instructor_id": 1, "room_id": 1, "group_id": 1, "day": "MONDAY", "start_time": "09:00", "end_time": "10:30"},
			{"course_id": 2, "instructor_id": 1, "room_id": 1, "group_id": 1, "day": "MONDAY", "start_time": "09:30", "end_time": "11:00"}
		]
	}`)

	w := doRequest(h.Validate, body)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data dto.ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.False(t, envelope.Data.IsValid)

	found := false
	for _, conflict := range envelope.Data.Conflicts {
		if conflict.Kind == "room_conflict" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestMetricsHandlerHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewMetricsHandler(nil)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	h.Health(c)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "timetable-cpsat-engine", body["service"])
}
