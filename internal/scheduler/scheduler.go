package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/avstrong/stayquote/internal/logger"
)

type stayCompleter interface {
	CompleteStays(ctx context.Context) (int, error)
}

type Conf struct {
	L             *logger.Logger
	CompleteStays string
	JobTimeout    time.Duration
}

type Scheduler struct {
	cron    *cron.Cron
	l       *logger.Logger
	manager stayCompleter
	timeout time.Duration
}

// New registers the stay completion job. Specs use the six-field form with
// seconds and are evaluated in UTC.
func New(conf Conf, manager stayCompleter) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(cron.WithLocation(time.UTC), cron.WithSeconds()),
		l:       conf.L.With("component", "scheduler"),
		manager: manager,
		timeout: conf.JobTimeout,
	}

	if s.timeout <= 0 {
		s.timeout = time.Minute
	}

	if _, err := s.cron.AddFunc(conf.CompleteStays, s.completeStays); err != nil {
		return nil, fmt.Errorf("register complete stays job %q: %w", conf.CompleteStays, err)
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.l.LogInfo("Scheduler started with %d job(s)", len(s.cron.Entries()))
}

// Stop waits for running jobs to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
		s.l.LogInfo("Scheduler stopped")
	case <-ctx.Done():
		s.l.LogWarn("Scheduler stop interrupted: %v", ctx.Err())
	}
}

func (s *Scheduler) runWithRecovery(jobName string, job func(ctx context.Context) error) {
	defer func() {
		if p := recover(); p != nil {
			s.l.LogErrorf("Job %v panicked: %v", jobName, p)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	s.l.LogDebug("Starting job %v", jobName)

	if err := job(ctx); err != nil {
		s.l.LogErrorf("Job %v failed: %v", jobName, err.Error())

		return
	}

	s.l.LogDebug("Job %v completed", jobName)
}

func (s *Scheduler) completeStays() {
	s.runWithRecovery("completeStays", func(ctx context.Context) error {
		n, err := s.manager.CompleteStays(ctx)
		if err != nil {
			return err
		}

		if n > 0 {
			s.l.LogInfo("Marked %d stay(s) as completed", n)
		}

		return nil
	})
}
