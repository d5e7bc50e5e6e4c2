package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/campushub/timetable-api/internal/models"
	appErrors "github.com/campushub/timetable-api/pkg/errors"
)

// GeneratorClient calls the external automatic scheduler. The service
// is opaque: one POST per run, a structured result payload back.
type GeneratorClient struct {
	baseURL string
	client  *http.Client
}

// NewGeneratorClient constructs a client for the generator service.
func NewGeneratorClient(baseURL string, timeout time.Duration) *GeneratorClient {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &GeneratorClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Generate invokes POST generate?scheduleId=... and decodes the result.
func (c *GeneratorClient) Generate(ctx context.Context, scheduleID int64) (*models.GenerateResult, error) {
	endpoint := fmt.Sprintf("%s/generate?scheduleId=%s", c.baseURL, url.QueryEscape(fmt.Sprintf("%d", scheduleID)))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call generator: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read generator response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generator returned %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var result models.GenerateResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode generator response: %w", err)
	}
	return &result, nil
}

type generatorClient interface {
	Generate(ctx context.Context, scheduleID int64) (*models.GenerateResult, error)
}

type sessionReloader interface {
	Reload(ctx context.Context, scheduleID int64) error
}

// GeneratorService runs the external generator and resynchronises the
// session afterwards. The inline payload is never trusted as the new
// source of truth: a full re-fetch and reconciliation pass follows
// every successful run.
type GeneratorService struct {
	client    generatorClient
	timetable sessionReloader
	metrics   *MetricsService
	notifier  notifier
	logger    *zap.Logger
}

// NewGeneratorService constructs the generator orchestrator.
func NewGeneratorService(client generatorClient, timetable sessionReloader, metrics *MetricsService, notifier notifier, logger *zap.Logger) *GeneratorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeneratorService{client: client, timetable: timetable, metrics: metrics, notifier: notifier, logger: logger}
}

// Run invokes the generator for one schedule. On any failure the
// session is left exactly as it was.
func (s *GeneratorService) Run(ctx context.Context, scheduleID int64) (*models.GenerateResult, error) {
	result, err := s.client.Generate(ctx, scheduleID)
	if err != nil {
		s.metrics.RecordGeneratorRun(false)
		s.notifyf(models.NotifyError, "schedule generation failed: %v", err)
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "generator call failed")
	}

	s.metrics.RecordGeneratorRun(result.Success)
	s.logger.Info("generator finished",
		zap.Int64("schedule_id", scheduleID),
		zap.Bool("success", result.Success),
		zap.Int("scheduled", result.Stats.ScheduledAssignments),
		zap.Int("failed", result.Stats.FailedAssignments))

	if err := s.timetable.Reload(ctx, scheduleID); err != nil {
		return nil, err
	}

	if result.Success {
		s.notifyf(models.NotifySuccess, "schedule generated: %d assignments placed, %d failed",
			result.Stats.ScheduledAssignments, result.Stats.FailedAssignments)
	} else {
		s.notifyf(models.NotifyWarning, "schedule generation finished with errors (%d failed)",
			result.Stats.FailedAssignments)
	}
	return result, nil
}

func (s *GeneratorService) notifyf(level, format string, args ...interface{}) {
	if s.notifier != nil {
		s.notifier.Notify(level, fmt.Sprintf(format, args...))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
