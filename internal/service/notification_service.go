package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campushub/timetable-api/internal/models"
	"github.com/campushub/timetable-api/pkg/jobs"
)

// NotificationService keeps the transient notices shown after saves,
// generator runs and failed fetches. Each notice expires on a delayed
// background job; expiry never touches the grid.
type NotificationService struct {
	ttl    time.Duration
	queue  *jobs.Queue
	logger *zap.Logger

	mu      sync.Mutex
	notices map[string]models.Notification
}

// NewNotificationService constructs the service and its expiry queue.
func NewNotificationService(ttl time.Duration, logger *zap.Logger) *NotificationService {
	if ttl <= 0 {
		ttl = 3 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &NotificationService{
		ttl:     ttl,
		logger:  logger,
		notices: make(map[string]models.Notification),
	}
	s.queue = jobs.NewQueue("notification-expiry", s.expire, jobs.QueueConfig{
		Workers: 1,
		Logger:  logger,
	})
	return s
}

// Start begins processing expiry jobs.
func (s *NotificationService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the expiry queue.
func (s *NotificationService) Stop() {
	s.queue.Stop()
}

// Notify stores a notice and schedules its removal.
func (s *NotificationService) Notify(level, message string) {
	notice := models.Notification{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		CreatedAt: time.Now(),
	}
	s.mu.Lock()
	s.notices[notice.ID] = notice
	s.mu.Unlock()

	if err := s.queue.Enqueue(jobs.Job{
		ID:      notice.ID,
		Type:    "expire",
		Payload: notice.ID,
		Delay:   s.ttl,
	}); err != nil {
		s.logger.Warn("notification expiry not scheduled", zap.String("id", notice.ID), zap.Error(err))
	}
}

// Active returns the live notices, oldest first.
func (s *NotificationService) Active() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Notification, 0, len(s.notices))
	for _, n := range s.notices {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// Dismiss removes a notice ahead of its timer.
func (s *NotificationService) Dismiss(id string) {
	s.mu.Lock()
	delete(s.notices, id)
	s.mu.Unlock()
}

func (s *NotificationService) expire(_ context.Context, job jobs.Job) error {
	id, _ := job.Payload.(string)
	if id == "" {
		return nil
	}
	s.Dismiss(id)
	return nil
}
