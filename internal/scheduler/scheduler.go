package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"animetracker/internal/domain"
)

const (
	resultSuccess = "success"
	resultPartial = "partial"
	resultFailure = "failure"
)

var (
	airingRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "animetracker_airing_runs_total",
		Help: "Airing check runs by result",
	}, []string{"result"})

	airingLastSuccess = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "animetracker_airing_last_success_timestamp_seconds",
		Help: "Unix time of the last airing check that completed",
	})
)

// Notifier runs one airing notification pass.
type Notifier interface {
	Notify(ctx context.Context) (*domain.AiringStats, error)
}

// Status summarises the runs since the scheduler started.
type Status struct {
	Runs                int
	Failures            int
	ConsecutiveFailures int
	Notified            int
	LastSuccess         time.Time
	LastError           string
}

type Scheduler struct {
	notifier Notifier
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger

	mu     sync.Mutex
	status Status
}

func NewScheduler(notifier Notifier, interval, timeout time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		notifier: notifier,
		interval: interval,
		timeout:  timeout,
		logger:   logger.With("component", "scheduler"),
	}
}

// Start runs a pass immediately, then once per interval until ctx is done.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval, "timeout", s.timeout)

	s.run(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			st := s.Status()
			s.logger.Info("scheduler stopped", "runs", st.Runs, "failures", st.Failures, "notified", st.Notified)
			return ctx.Err()
		case <-ticker.C:
			s.run(ctx)
		}
	}
}

func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Scheduler) run(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	stats, err := s.notifier.Notify(runCtx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Runs++
	if stats != nil {
		s.status.Notified += stats.Notified
	}

	if err != nil {
		s.status.Failures++
		s.status.ConsecutiveFailures++
		s.status.LastError = err.Error()
		airingRuns.WithLabelValues(resultFailure).Inc()
		s.logger.Error("airing check failed",
			"error", err,
			"consecutive_failures", s.status.ConsecutiveFailures,
		)
		return
	}

	if s.status.ConsecutiveFailures > 0 {
		s.logger.Info("airing check recovered", "after_failures", s.status.ConsecutiveFailures)
	}
	s.status.ConsecutiveFailures = 0
	s.status.LastError = ""
	s.status.LastSuccess = time.Now()
	airingLastSuccess.SetToCurrentTime()

	if stats != nil && stats.Errors > 0 {
		airingRuns.WithLabelValues(resultPartial).Inc()
		s.logger.Warn("airing check finished with publish errors",
			"errors", stats.Errors,
			"notified", stats.Notified,
		)
		return
	}
	airingRuns.WithLabelValues(resultSuccess).Inc()
}
