package scheduler_test

import (
	"sync/atomic"
	"testing"
	"time"

	"assetserver/src/scheduler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduledTaskRuns(t *testing.T) {
	var runs atomic.Int32
	task, err := scheduler.NewScheduledTask("@every 1s", func() { runs.Add(1) }, nil)
	require.NoError(t, err)
	defer task.Cancel()

	assert.Eventually(t, func() bool { return !task.Next().IsZero() }, time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return runs.Load() > 0 }, 5*time.Second, 50*time.Millisecond)
}

func TestScheduledTaskCancel(t *testing.T) {
	var runs atomic.Int32
	task, err := scheduler.NewScheduledTask("@every 1s", func() { runs.Add(1) }, nil)
	require.NoError(t, err)
	task.Cancel()

	time.Sleep(1500 * time.Millisecond)
	assert.Equal(t, int32(0), runs.Load())
}

func TestScheduledTaskInvalidSpec(t *testing.T) {
	_, err := scheduler.NewScheduledTask("invalid-cron", func() {}, nil)
	assert.Error(t, err)
}
