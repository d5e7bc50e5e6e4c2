package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/timetable-api/internal/models"
)

func TestNotifyStoresNotice(t *testing.T) {
	svc := NewNotificationService(time.Minute, nil)
	svc.Start(context.Background())
	defer svc.Stop()

	svc.Notify(models.NotifySuccess, "saved")
	svc.Notify(models.NotifyError, "failed")

	active := svc.Active()
	require.Len(t, active, 2)
	assert.Equal(t, "saved", active[0].Message)
	assert.NotEmpty(t, active[0].ID)
}

func TestNoticesExpire(t *testing.T) {
	svc := NewNotificationService(20*time.Millisecond, nil)
	svc.Start(context.Background())
	defer svc.Stop()

	svc.Notify(models.NotifyInfo, "transient")
	require.Len(t, svc.Active(), 1)

	assert.Eventually(t, func() bool {
		return len(svc.Active()) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestDismissRemovesEarly(t *testing.T) {
	svc := NewNotificationService(time.Minute, nil)
	svc.Start(context.Background())
	defer svc.Stop()

	svc.Notify(models.NotifyWarning, "look at this")
	active := svc.Active()
	require.Len(t, active, 1)

	svc.Dismiss(active[0].ID)
	assert.Empty(t, svc.Active())
}
