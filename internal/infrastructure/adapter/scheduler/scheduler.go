package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	coreport "github.com/amirhossein-jamali/referral-platform/internal/domain/port/core"
)

// JobRecorder receives the outcome of every job run
type JobRecorder interface {
	JobRun(job string, duration time.Duration, success bool)
}

// Job is one unit of background work
type Job func(ctx context.Context) error

// Scheduler runs named jobs on cron specs. A job never overlaps with itself.
type Scheduler struct {
	cron         *cron.Cron
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	recorder     JobRecorder
	ctx          context.Context
	cancel       context.CancelFunc
	jobs         []string
}

// New creates a stopped scheduler. recorder may be nil.
func New(logger coreport.Logger, timeProvider coreport.TimeProvider, recorder JobRecorder) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	named := logger.Named("scheduler")
	bridge := cronLogger{logger: named}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(bridge),
			cron.WithChain(cron.Recover(bridge), cron.SkipIfStillRunning(bridge)),
		),
		logger:       named,
		timeProvider: timeProvider,
		recorder:     recorder,
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Add registers job under spec. An empty spec leaves the job disabled.
// Each run gets a context bounded by timeout and canceled on Stop.
func (s *Scheduler) Add(name, spec string, timeout time.Duration, job Job) error {
	if spec == "" {
		s.logger.Info("Job disabled", map[string]any{"job": name})
		return nil
	}

	if _, err := s.cron.AddFunc(spec, func() { s.run(name, timeout, job) }); err != nil {
		return fmt.Errorf("scheduling %s with %q: %w", name, spec, err)
	}
	s.jobs = append(s.jobs, name)
	s.logger.Info("Job scheduled", map[string]any{"job": name, "spec": spec})
	return nil
}

// Jobs lists the names of the enabled jobs
func (s *Scheduler) Jobs() []string {
	return append([]string(nil), s.jobs...)
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for running jobs until ctx is done
func (s *Scheduler) Stop(ctx context.Context) error {
	s.cancel()
	done := s.cron.Stop()

	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for scheduled jobs: %w", ctx.Err())
	}
}

func (s *Scheduler) run(name string, timeout time.Duration, job Job) {
	ctx, cancel := s.ctx, context.CancelFunc(func() {})
	if timeout > 0 {
		ctx, cancel = s.timeProvider.WithTimeout(s.ctx, timeout)
	}
	defer cancel()

	start := s.timeProvider.Now()
	defer func() {
		if r := recover(); r != nil {
			if s.recorder != nil {
				s.recorder.JobRun(name, s.timeProvider.Since(start), false)
			}
			// cron.Recover logs it with the stack
			panic(fmt.Errorf("job %s panicked: %v", name, r))
		}
	}()

	err := job(ctx)
	elapsed := s.timeProvider.Since(start)

	if s.recorder != nil {
		s.recorder.JobRun(name, elapsed, err == nil)
	}
	if err != nil {
		s.logger.Error("Job failed", map[string]any{
			"job":         name,
			"duration_ms": elapsed.Milliseconds(),
			"error":       err.Error(),
		})
		return
	}
	s.logger.Debug("Job finished", map[string]any{"job": name, "duration_ms": elapsed.Milliseconds()})
}

// cronLogger routes robfig/cron's messages (skipped overlapping runs and
// recovered panics) to the application logger
type cronLogger struct {
	logger coreport.Logger
}

var _ cron.Logger = cronLogger{}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("Cron: "+msg, keyValueFields(keysAndValues))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	fields := keyValueFields(keysAndValues)
	if err != nil {
		fields["error"] = err.Error()
	}
	l.logger.Error("Cron: "+msg, fields)
}

func keyValueFields(keysAndValues []any) map[string]any {
	fields := make(map[string]any, len(keysAndValues)/2+1)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return fields
}
