package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/timetable-api/internal/models"
	appErrors "github.com/campushub/timetable-api/pkg/errors"
)

type stubGeneratorClient struct {
	result *models.GenerateResult
	err    error
}

func (s *stubGeneratorClient) Generate(ctx context.Context, scheduleID int64) (*models.GenerateResult, error) {
	return s.result, s.err
}

type stubReloader struct {
	reloaded []int64
	err      error
}

func (s *stubReloader) Reload(ctx context.Context, scheduleID int64) error {
	s.reloaded = append(s.reloaded, scheduleID)
	return s.err
}

func TestGeneratorRunReloadsSession(t *testing.T) {
	reloader := &stubReloader{}
	notices := &recordingNotifier{}
	client := &stubGeneratorClient{result: &models.GenerateResult{
		Success: true,
		Stats:   models.GenerateStats{ScheduledAssignments: 12, FailedAssignments: 1},
	}}
	svc := NewGeneratorService(client, reloader, nil, notices, nil)

	result, err := svc.Run(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, []int64{7}, reloader.reloaded)
	assert.Contains(t, notices.levels, models.NotifySuccess)
}

func TestGeneratorRunPartialFailureWarns(t *testing.T) {
	reloader := &stubReloader{}
	notices := &recordingNotifier{}
	client := &stubGeneratorClient{result: &models.GenerateResult{
		Success: false,
		Stats:   models.GenerateStats{FailedAssignments: 4},
		Errors: []models.GenerateError{
			{SectionID: 9, ErrorType: models.GenErrNoAvailableSlots, ErrorMessage: "no slots"},
		},
	}}
	svc := NewGeneratorService(client, reloader, nil, notices, nil)

	result, err := svc.Run(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Len(t, reloader.reloaded, 1)
	assert.Contains(t, notices.levels, models.NotifyWarning)
}

func TestGeneratorCallFailureLeavesSessionAlone(t *testing.T) {
	reloader := &stubReloader{}
	notices := &recordingNotifier{}
	svc := NewGeneratorService(&stubGeneratorClient{err: errors.New("connection refused")}, reloader, nil, notices, nil)

	_, err := svc.Run(context.Background(), 7)
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, "UPSTREAM_ERROR"))
	assert.Empty(t, reloader.reloaded)
	assert.Contains(t, notices.levels, models.NotifyError)
}

func TestGeneratorClientRequestShape(t *testing.T) {
	var gotMethod, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"schedule":[],"stats":{"totalCourses":3},"errors":[],"warnings":[]}`))
	}))
	defer server.Close()

	client := NewGeneratorClient(server.URL, 0)
	result, err := client.Generate(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "scheduleId=42", gotQuery)
	assert.True(t, result.Success)
	assert.Equal(t, 3, result.Stats.TotalCourses)
}

func TestGeneratorClientUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewGeneratorClient(server.URL, 0)
	_, err := client.Generate(context.Background(), 42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
