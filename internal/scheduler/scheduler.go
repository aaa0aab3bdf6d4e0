package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"CaffeineSentinel/internal/model"
	"CaffeineSentinel/internal/notifier"
	"CaffeineSentinel/internal/store"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the server-side cron tasks: the stale-total reset sweep
// and the daily ops summary.
type Scheduler struct {
	Cron     *cron.Cron
	Store    *store.Store
	Notifier notifier.Notifier
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, st *store.Store, n notifier.Notifier) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Store:    st,
		Notifier: n,
		Ctx:      ctx,
	}
}

// RegisterAll registers the reset sweep and summary tasks.
func (s *Scheduler) RegisterAll(resetCron, summaryCron string) error {
	if _, err := s.Cron.AddFunc(resetCron, s.resetSweep); err != nil {
		return fmt.Errorf("register reset sweep: %w", err)
	}
	if _, err := s.Cron.AddFunc(summaryCron, s.dailySummary); err != nil {
		return fmt.Errorf("register daily summary: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// resetSweep zeroes running totals whose date has rolled over. Running it
// every minute bounds post-midnight staleness to one tick.
func (s *Scheduler) resetSweep() {
	ctx, cancel := context.WithTimeout(s.Ctx, 30*time.Second)
	defer cancel()

	n, err := s.Store.ResetStale(ctx, time.Now())
	if err != nil {
		log.Printf("[ERROR] reset sweep: %v", err)
		return
	}
	if n > 0 {
		log.Printf("[INFO] reset %d stale caffeine totals", n)
	}
}

func (s *Scheduler) dailySummary() {
	ctx, cancel := context.WithTimeout(s.Ctx, 30*time.Second)
	defer cancel()

	stats, err := s.Store.DailyStats(ctx, time.Now())
	if err != nil {
		log.Printf("[ERROR] daily stats: %v", err)
		return
	}
	err = s.Notifier.Notify(model.Notification{
		Kind:  model.NotifySummary,
		Title: "Daily summary",
		Body:  notifier.FormatOpsSummary(stats),
	})
	if err != nil {
		log.Printf("[ERROR] send daily summary: %v", err)
	}
}
