package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/timetable-api/internal/dto"
	"github.com/campushub/timetable-api/internal/models"
	"github.com/campushub/timetable-api/internal/service"
	appErrors "github.com/campushub/timetable-api/pkg/errors"
	"github.com/campushub/timetable-api/pkg/response"
)

type timetableServiceMock struct {
	snapshot    *dto.GridSnapshot
	placeResult *service.PlacementResult
	placeErr    error
	saveResult  *dto.SaveResult
	removed     []int64
	sections    []models.CourseSection
	lastFilter  models.CourseSectionFilter
}

func (m *timetableServiceMock) Grid(ctx context.Context, scheduleID int64) (*dto.GridSnapshot, error) {
	return m.snapshot, nil
}

func (m *timetableServiceMock) Place(ctx context.Context, scheduleID int64, req dto.PlaceRequest) (*service.PlacementResult, error) {
	return m.placeResult, m.placeErr
}

func (m *timetableServiceMock) Preview(ctx context.Context, scheduleID int64, req dto.PlaceRequest) (*service.PlacementResult, error) {
	return m.placeResult, m.placeErr
}

func (m *timetableServiceMock) Remove(ctx context.Context, scheduleID, courseID int64) ([]models.CourseSection, error) {
	m.removed = append(m.removed, courseID)
	return []models.CourseSection{{ID: courseID}}, nil
}

func (m *timetableServiceMock) Save(ctx context.Context, scheduleID int64) (*dto.SaveResult, error) {
	return m.saveResult, nil
}

func (m *timetableServiceMock) Split(ctx context.Context, scheduleID, sectionID int64, req dto.SplitRequest) ([]models.CourseSection, error) {
	return []models.CourseSection{{ID: sectionID}, {ID: sectionID + 100}}, nil
}

func (m *timetableServiceMock) ListSections(ctx context.Context, filter models.CourseSectionFilter) ([]models.CourseSection, error) {
	m.lastFilter = filter
	return m.sections, nil
}

func newTimetableTestContext(t *testing.T, method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func TestTimetableHandlerGrid(t *testing.T) {
	mock := &timetableServiceMock{snapshot: &dto.GridSnapshot{ScheduleID: 7}}
	h := NewTimetableHandler(mock, service.NewMetricsService())

	c, w := newTimetableTestContext(t, http.MethodGet, "/schedules/7/grid", nil)
	c.Params = gin.Params{{Key: "scheduleId", Value: "7"}}
	h.Grid(c)

	require.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w)
	assert.NotNil(t, envelope.Data)
}

func TestTimetableHandlerGridBadID(t *testing.T) {
	h := NewTimetableHandler(&timetableServiceMock{}, service.NewMetricsService())

	c, w := newTimetableTestContext(t, http.MethodGet, "/schedules/abc/grid", nil)
	c.Params = gin.Params{{Key: "scheduleId", Value: "abc"}}
	h.Grid(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTimetableHandlerPlace(t *testing.T) {
	mock := &timetableServiceMock{placeResult: &service.PlacementResult{Combined: false}}
	h := NewTimetableHandler(mock, service.NewMetricsService())

	body := dto.PlaceRequest{CourseID: 11, Day: "Monday", ClassroomID: 101, SlotKey: "08:00 - 09:00"}
	c, w := newTimetableTestContext(t, http.MethodPost, "/schedules/7/placements", body)
	c.Params = gin.Params{{Key: "scheduleId", Value: "7"}}
	h.Place(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTimetableHandlerPlaceRejection(t *testing.T) {
	mock := &timetableServiceMock{placeErr: appErrors.ErrCapacityExceeded}
	h := NewTimetableHandler(mock, service.NewMetricsService())

	body := dto.PlaceRequest{CourseID: 11, Day: "Monday", ClassroomID: 101, SlotKey: "08:00 - 09:00"}
	c, w := newTimetableTestContext(t, http.MethodPost, "/schedules/7/placements", body)
	c.Params = gin.Params{{Key: "scheduleId", Value: "7"}}
	h.Place(c)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	envelope := decodeEnvelope(t, w)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "CAPACITY_EXCEEDED", envelope.Error.Code)
}

func TestTimetableHandlerPlaceInvalidBody(t *testing.T) {
	h := NewTimetableHandler(&timetableServiceMock{}, service.NewMetricsService())

	c, w := newTimetableTestContext(t, http.MethodPost, "/schedules/7/placements", nil)
	c.Request.Body = http.NoBody
	c.Params = gin.Params{{Key: "scheduleId", Value: "7"}}
	h.Place(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTimetableHandlerRemove(t *testing.T) {
	mock := &timetableServiceMock{}
	h := NewTimetableHandler(mock, service.NewMetricsService())

	c, w := newTimetableTestContext(t, http.MethodDelete, "/schedules/7/placements/11", nil)
	c.Params = gin.Params{{Key: "scheduleId", Value: "7"}, {Key: "courseId", Value: "11"}}
	h.Remove(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int64{11}, mock.removed)
}

func TestTimetableHandlerSave(t *testing.T) {
	mock := &timetableServiceMock{saveResult: &dto.SaveResult{PlacedRows: 3, TotalRows: 5}}
	h := NewTimetableHandler(mock, service.NewMetricsService())

	c, w := newTimetableTestContext(t, http.MethodPost, "/schedules/7/save", nil)
	c.Params = gin.Params{{Key: "scheduleId", Value: "7"}}
	h.Save(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTimetableHandlerSectionsFilter(t *testing.T) {
	mock := &timetableServiceMock{sections: []models.CourseSection{{ID: 11}}}
	h := NewTimetableHandler(mock, service.NewMetricsService())

	c, w := newTimetableTestContext(t, http.MethodGet, "/schedules/7/sections?search=CS&online=true", nil)
	c.Params = gin.Params{{Key: "scheduleId", Value: "7"}}
	h.Sections(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "CS", mock.lastFilter.Search)
	require.NotNil(t, mock.lastFilter.IsOnline)
	assert.True(t, *mock.lastFilter.IsOnline)
}

func TestTimetableHandlerSplit(t *testing.T) {
	h := NewTimetableHandler(&timetableServiceMock{}, service.NewMetricsService())

	body := dto.SplitRequest{Durations: []float64{2, 1}}
	c, w := newTimetableTestContext(t, http.MethodPost, "/schedules/7/sections/11/split", body)
	c.Params = gin.Params{{Key: "scheduleId", Value: "7"}, {Key: "sectionId", Value: "11"}}
	h.Split(c)

	assert.Equal(t, http.StatusOK, w.Code)
}
