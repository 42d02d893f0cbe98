// Package streak derives streak continuation and reset from the persisted
// last-study-date record. Streaks count consecutive local calendar days
// with at least one qualifying study action, not rolling 24h windows.
package streak

import (
	"context"
	"errors"
	"fmt"

	"github.com/joonho/ailearn/internal/clock"
	"github.com/joonho/ailearn/internal/events"
	"github.com/joonho/ailearn/internal/profile"
	"github.com/joonho/ailearn/internal/store"
)

// Outcome labels the state transition Update took.
type Outcome string

const (
	// AlreadyCounted means today's activity was recorded earlier; repeat
	// calls on the same calendar day change nothing.
	AlreadyCounted Outcome = "already_counted"
	// Continued means yesterday was active, so the streak grew by one.
	Continued Outcome = "continued"
	// Restarted means the chain broke (or this is the first activity ever)
	// and the streak reset to one.
	Restarted Outcome = "restarted"
)

// Tracker updates streak state from study activity.
type Tracker struct {
	kv       store.KV
	profiles *profile.Store
	clock    clock.Clock
	sink     events.Sink
	session  string
}

// NewTracker creates a streak tracker for the session. A nil sink discards
// events.
func NewTracker(kv store.KV, profiles *profile.Store, clk clock.Clock, sink events.Sink, session string) *Tracker {
	if sink == nil {
		sink = events.Discard
	}
	return &Tracker{kv: kv, profiles: profiles, clock: clk, sink: sink, session: session}
}

// Update records study activity for today and returns the streak length
// after the transition. Calling it again on the same calendar day is fully
// idempotent.
func (t *Tracker) Update(ctx context.Context) (days int, outcome Outcome, err error) {
	now := t.clock.Now()
	today := clock.DateOf(now)
	yesterday := clock.Yesterday(now)

	last, err := t.lastStudyDate(ctx)
	if err != nil {
		return 0, "", err
	}

	p, err := t.profiles.Get(ctx)
	if err != nil {
		return 0, "", err
	}

	// A stored date at or past today means today is already counted. Dates
	// after today can only come from a clock rollback; keep the streak.
	if last != "" && last >= today {
		return p.StreakDays, AlreadyCounted, nil
	}

	switch {
	case last == yesterday:
		days = p.StreakDays + 1
		outcome = Continued
	default:
		// First activity ever, or a gap of at least one full day.
		days = 1
		outcome = Restarted
	}

	if err := t.profiles.SetStreak(ctx, days); err != nil {
		return 0, "", err
	}
	if err := t.kv.Put(ctx, store.LastStudyDateKey(t.session), today); err != nil {
		return 0, "", fmt.Errorf("save last study date: %w", err)
	}

	if days > 1 {
		t.sink.Emit(events.StreakMilestone{Days: days})
	}
	return days, outcome, nil
}

// Days returns the current streak length without mutating anything.
func (t *Tracker) Days(ctx context.Context) (int, error) {
	p, err := t.profiles.Get(ctx)
	if err != nil {
		return 0, err
	}
	return p.StreakDays, nil
}

func (t *Tracker) lastStudyDate(ctx context.Context) (string, error) {
	var date string
	err := t.kv.Get(ctx, store.LastStudyDateKey(t.session), &date)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("load last study date: %w", err)
	}
	return date, nil
}
