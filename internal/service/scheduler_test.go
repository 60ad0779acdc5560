package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupScheduler_EmptyScheduleIsDisabled(t *testing.T) {
	cleanup, _, _ := newCleanupFixture()
	scheduler := NewCleanupScheduler(cleanup, "")

	err := scheduler.Start(context.Background())
	require.NoError(t, err)

	assert.False(t, scheduler.IsRunning())
}

func TestCleanupScheduler_InvalidScheduleFails(t *testing.T) {
	cleanup, _, _ := newCleanupFixture()
	scheduler := NewCleanupScheduler(cleanup, "not a cron expression")

	err := scheduler.Start(context.Background())
	require.Error(t, err)
	assert.False(t, scheduler.IsRunning())
}

func TestCleanupScheduler_StartAndStop(t *testing.T) {
	cleanup, _, _ := newCleanupFixture()
	scheduler := NewCleanupScheduler(cleanup, "*/15 * * * *")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, scheduler.Start(ctx))
	assert.True(t, scheduler.IsRunning())

	scheduler.Stop()
	assert.False(t, scheduler.IsRunning())
}
