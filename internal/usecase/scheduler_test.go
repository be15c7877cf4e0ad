package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/matchday-feed/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewScheduler_RejectsInvalidTasks(t *testing.T) {
	_, err := NewScheduler(SchedulerConfig{}, Task{Name: "leagues", Spec: "every now and then", Run: func(context.Context) error { return nil }})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewScheduler(SchedulerConfig{}, Task{Name: "", Spec: "@every 1m", Run: func(context.Context) error { return nil }})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestScheduler_StartupOneShotRunsOnlyFlaggedTasks(t *testing.T) {
	var leagues, transfers atomic.Int32
	scheduler, err := NewScheduler(
		SchedulerConfig{StartupDelay: 10 * time.Millisecond, Logger: logging.NewNop()},
		Task{Name: DomainLeagues, Spec: "@every 1h", RunAtStartup: true, Run: func(context.Context) error {
			leagues.Add(1)
			return nil
		}},
		Task{Name: DomainTransfers, Spec: "@every 1h", Run: func(context.Context) error {
			transfers.Add(1)
			return nil
		}},
	)
	require.NoError(t, err)

	scheduler.Start(context.Background())
	assert.Eventually(t, func() bool { return leagues.Load() == 1 }, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, scheduler.Stop(ctx))
	assert.Zero(t, transfers.Load())
}

func TestScheduler_TimerRunsTasksAndRecoversPanics(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	var runs atomic.Int32
	scheduler, err := NewScheduler(
		SchedulerConfig{StartupDelay: time.Hour, Logger: logging.FromZap(zap.New(core))},
		Task{Name: DomainLiveScores, Spec: "@every 1s", Run: func(context.Context) error {
			if runs.Add(1) == 1 {
				panic("selector exploded")
			}
			return errors.New("upstream down")
		}},
	)
	require.NoError(t, err)

	scheduler.Start(context.Background())
	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, 5*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, scheduler.Stop(ctx))

	assert.NotEmpty(t, logs.FilterMessage("scheduled run panicked").All())
	assert.NotEmpty(t, logs.FilterMessage("scheduled run failed").All())
}

func TestScheduler_StopCancelsInflightRuns(t *testing.T) {
	started := make(chan struct{})
	scheduler, err := NewScheduler(
		SchedulerConfig{StartupDelay: time.Millisecond, Logger: logging.NewNop()},
		Task{Name: DomainLeagues, Spec: "@every 1h", RunAtStartup: true, Run: func(ctx context.Context) error {
			close(started)
			<-ctx.Done()
			return ctx.Err()
		}},
	)
	require.NoError(t, err)

	scheduler.Start(context.Background())
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, scheduler.Stop(ctx))
	require.NoError(t, scheduler.Stop(ctx))
}
