package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/studyhive/studyhive-backend/internal/domain/entity"
	"github.com/studyhive/studyhive-backend/pkg/logger"
)

type schedulerEventStorage interface {
	GetDueBefore(ctx context.Context, t time.Time) ([]entity.Event, error)
	GetRemindersDueBetween(ctx context.Context, from, to time.Time) ([]entity.Event, error)
}

type reconciler interface {
	Reconcile(ctx context.Context, event entity.Event, category Category) (ReconcileResult, error)
}

// Scheduler sweeps all events on a fixed period and drives the alert
// reconciler. One instance per process; Start refuses a second call.
// Every write it triggers is idempotent, so an abandoned in-flight tick
// at shutdown cannot corrupt state.
type Scheduler struct {
	eventStorage schedulerEventStorage
	alerts       reconciler
	logger       *logger.Logger

	interval time.Duration
	started  atomic.Bool
	stopped  atomic.Bool
	stop     chan struct{}
	done     chan struct{}
}

func NewScheduler(
	eventStorage schedulerEventStorage,
	alerts reconciler,
	log *logger.Logger,
	interval time.Duration,
) *Scheduler {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Scheduler{
		eventStorage: eventStorage,
		alerts:       alerts,
		logger:       log,
		interval:     interval,
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
	}
}

// Start launches the background loop. It returns false if the scheduler
// is already running.
func (s *Scheduler) Start() bool {
	if !s.started.CompareAndSwap(false, true) {
		s.logger.Warn("scheduler already started")
		return false
	}

	s.logger.Infof("starting deadline scheduler (interval: %s)", s.interval)
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.RunTick(context.Background(), time.Now().UTC())
			case <-s.stop:
				return
			}
		}
	}()
	return true
}

// Stop terminates the loop and waits for it to exit. Safe to call more
// than once.
func (s *Scheduler) Stop() {
	if !s.started.Load() {
		return
	}
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stop)
	}
	<-s.done
}

// RunTick performs one reconciliation sweep at the given instant. A
// failure on one event is logged and does not abort the rest of the
// sweep; a failed sweep is simply retried on the next interval.
func (s *Scheduler) RunTick(ctx context.Context, now time.Time) {
	expired, err := s.eventStorage.GetDueBefore(ctx, now)
	if err != nil {
		s.logger.Errorf("failed to load expired candidates: %v", err)
	} else {
		s.reconcileAll(ctx, now, expired)
	}

	reminders, err := s.eventStorage.GetRemindersDueBetween(ctx, now.Add(-reminderWindow), now.Add(reminderWindow))
	if err != nil {
		s.logger.Errorf("failed to load due reminders: %v", err)
		return
	}
	s.reconcileAll(ctx, now, reminders)
}

func (s *Scheduler) reconcileAll(ctx context.Context, now time.Time, events []entity.Event) {
	for _, event := range events {
		category := Classify(now, event)
		if category != CategoryExpired && category != CategoryReminderDue {
			continue
		}

		result, err := s.alerts.Reconcile(ctx, event, category)
		if err != nil {
			s.logger.Errorf("failed to reconcile event %s (%s): %v", event.ID, category, err)
			continue
		}
		if result == ReconcileCreated {
			s.logger.Infof("created %s alert for event %s", category, event.ID)
		}
	}
}
