package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/matchday-feed/internal/platform/logging"
	"github.com/robfig/cron/v3"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
)

// Task is one recurring job. Runs of the same task may overlap.
type Task struct {
	Name string
	// Spec is a robfig/cron spec such as "@every 60s".
	Spec string
	// RunAtStartup schedules one extra run shortly after Start.
	RunAtStartup bool
	Run          func(ctx context.Context) error
}

type SchedulerConfig struct {
	StartupDelay time.Duration
	Logger       *logging.Logger
}

// Scheduler runs tasks on independent cron timers. Tasks are not coordinated.
type Scheduler struct {
	cron         *cron.Cron
	tasks        []Task
	startupDelay time.Duration
	logger       *logging.Logger

	mu       sync.Mutex
	inflight conc.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	started  bool
}

func NewScheduler(cfg SchedulerConfig, tasks ...Task) (*Scheduler, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("scheduler")

	s := &Scheduler{
		cron:         cron.New(cron.WithLogger(cronLogger{logger: logger})),
		startupDelay: cfg.StartupDelay,
		logger:       logger,
	}
	for _, task := range tasks {
		if strings.TrimSpace(task.Name) == "" || task.Run == nil {
			return nil, fmt.Errorf("%w: scheduler task needs a name and a run func", ErrInvalidInput)
		}
		if _, err := s.cron.AddFunc(task.Spec, func() { s.dispatch(task, "timer") }); err != nil {
			return nil, fmt.Errorf("%w: schedule %s with spec %q: %v", ErrInvalidInput, task.Name, task.Spec, err)
		}
		s.tasks = append(s.tasks, task)
	}
	return s, nil
}

// Start arms the timers and the startup one-shot. It returns immediately.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	s.ctx, s.cancel = context.WithCancel(context.WithoutCancel(ctx))

	s.cron.Start()
	s.logger.Info("scheduler started", "tasks", len(s.tasks), "startup_delay", s.startupDelay)

	s.inflight.Go(func() {
		timer := time.NewTimer(s.startupDelay)
		defer timer.Stop()
		select {
		case <-s.ctx.Done():
			return
		case <-timer.C:
		}
		for _, task := range s.tasks {
			if task.RunAtStartup {
				s.dispatch(task, "startup")
			}
		}
	})
}

// Stop halts the timers, cancels in-flight runs and waits for them until ctx ends.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = false
	cancel := s.cancel
	s.mu.Unlock()

	cronDone := s.cron.Stop().Done()
	cancel()

	done := make(chan struct{})
	go func() {
		<-cronDone
		s.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for scheduled runs: %w", ctx.Err())
	}
}

func (s *Scheduler) dispatch(task Task, trigger string) {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()
	if ctx == nil || ctx.Err() != nil {
		return
	}

	s.inflight.Go(func() {
		var catcher panics.Catcher
		catcher.Try(func() {
			if err := task.Run(ctx); err != nil {
				s.logger.ErrorContext(ctx, "scheduled run failed", "task", task.Name, "trigger", trigger, "error", err)
			}
		})
		if recovered := catcher.Recovered(); recovered != nil {
			s.logger.ErrorContext(ctx, "scheduled run panicked", "task", task.Name, "trigger", trigger, "error", recovered.AsError())
		}
	})
}

type cronLogger struct {
	logger *logging.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
