package server

import (
	"context"
	"log"
	"time"

	"github.com/gorhill/cronexpr"
	"github.com/redis/go-redis/v9"

	"github.com/ultroi/sixbits/internal/store"
)

// ReminderScheduler periodically scans timeline events coming due and records
// a reminder for each. A redis lock keeps multiple instances from reminding
// twice.
type ReminderScheduler struct {
	Store    *store.Store
	Rdb      *redis.Client
	CronSpec string
	Window   time.Duration
	Stop     chan struct{}
	Logger   *log.Logger

	lastRun *time.Time
}

func (s *ReminderScheduler) Start() {
	ticker := time.NewTicker(1 * time.Hour)
	go func() {
		for {
			select {
			case <-s.Stop:
				ticker.Stop()
				return
			case <-ticker.C:
				s.tick()
			}
		}
	}()
}

func (s *ReminderScheduler) tick() {
	if !isDue(s.CronSpec, s.lastRun) {
		return
	}
	ctx := context.Background()

	if s.Rdb != nil {
		ok, _ := s.Rdb.SetNX(ctx, "sixbits:reminders:lock", "1", 10*time.Minute).Result()
		if !ok {
			return
		}
		defer s.Rdb.Del(ctx, "sixbits:reminders:lock")
	}

	window := s.Window
	if window <= 0 {
		window = 7 * 24 * time.Hour
	}
	events, err := s.Store.ListDueEvents(ctx, window)
	if err != nil {
		s.Logger.Printf("reminder scan failed: %v", err)
		return
	}
	for _, e := range events {
		s.Logger.Printf("reminder: user %s event %q (%s) due %s", e.UserID, e.Title, e.Kind, e.DueAt.Format(time.RFC3339))
		if err := s.Store.MarkReminded(ctx, e.ID); err != nil {
			s.Logger.Printf("mark reminded failed for %s: %v", e.ID, err)
		}
	}
	now := time.Now()
	s.lastRun = &now
}

// isDue determines whether a scheduled job with cronSpec should run now given
// its last run time. Supports "@daily", "@hourly", and standard 5-field cron
// expressions; an invalid expression falls back to @daily.
func isDue(cronSpec string, last *time.Time) bool {
	now := time.Now()
	switch cronSpec {
	case "@daily":
		if last == nil {
			return true
		}
		return now.Sub(*last) >= 24*time.Hour
	case "@hourly":
		if last == nil {
			return true
		}
		return now.Sub(*last) >= time.Hour
	default:
		expr, err := cronexpr.Parse(cronSpec)
		if err != nil {
			if last == nil {
				return true
			}
			return now.Sub(*last) >= 24*time.Hour
		}
		if last == nil {
			return true
		}
		next := expr.Next(*last)
		return !next.IsZero() && !next.After(now)
	}
}
