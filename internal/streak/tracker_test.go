package streak

import (
	"context"
	"testing"
	"time"

	"github.com/joonho/ailearn/internal/catalog"
	"github.com/joonho/ailearn/internal/clock"
	"github.com/joonho/ailearn/internal/events"
	"github.com/joonho/ailearn/internal/profile"
	"github.com/joonho/ailearn/internal/store"
)

func newTestTracker(t *testing.T) (*Tracker, *profile.Store, *clock.Fixed, *events.Collector) {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("load default catalog: %v", err)
	}
	mem := store.NewMemory()
	col := &events.Collector{}
	clk := clock.NewFixed(time.Date(2026, 3, 10, 22, 30, 0, 0, time.UTC))
	profiles := profile.NewStore(mem, cat, clk, col, "test")
	return NewTracker(mem, profiles, clk, col, "test"), profiles, clk, col
}

func TestUpdate_FirstActivity(t *testing.T) {
	tr, _, _, _ := newTestTracker(t)

	days, outcome, err := tr.Update(context.Background())
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if days != 1 || outcome != Restarted {
		t.Errorf("first activity = %d days, %q; want 1, restarted", days, outcome)
	}
}

func TestUpdate_SameDayIdempotent(t *testing.T) {
	tr, profiles, clk, col := newTestTracker(t)
	ctx := context.Background()

	if _, _, err := tr.Update(ctx); err != nil {
		t.Fatalf("Update: %v", err)
	}
	// Later the same calendar day, even across the original hour.
	clk.Advance(time.Hour)

	days, outcome, err := tr.Update(ctx)
	if err != nil {
		t.Fatalf("Update (repeat): %v", err)
	}
	if days != 1 || outcome != AlreadyCounted {
		t.Errorf("repeat = %d days, %q; want 1, already_counted", days, outcome)
	}

	p, _ := profiles.Get(ctx)
	if p.StreakDays != 1 {
		t.Errorf("profile streak = %d, want 1", p.StreakDays)
	}
	if got := col.OfKind("streak_milestone"); len(got) != 0 {
		t.Errorf("emitted %d streak_milestone events on day one, want 0", len(got))
	}
}

func TestUpdate_ConsecutiveDays(t *testing.T) {
	tr, profiles, clk, col := newTestTracker(t)
	ctx := context.Background()

	for day := 1; day <= 3; day++ {
		days, _, err := tr.Update(ctx)
		if err != nil {
			t.Fatalf("Update day %d: %v", day, err)
		}
		if days != day {
			t.Errorf("day %d streak = %d", day, days)
		}
		clk.AdvanceDays(1)
	}

	p, _ := profiles.Get(ctx)
	if p.StreakDays != 3 || p.MaxStreak != 3 {
		t.Errorf("streak = %d, max = %d; want 3, 3", p.StreakDays, p.MaxStreak)
	}
	milestones := col.OfKind("streak_milestone")
	if len(milestones) != 2 {
		t.Fatalf("got %d streak_milestone events, want 2", len(milestones))
	}
	if last := milestones[1].(events.StreakMilestone); last.Days != 3 {
		t.Errorf("last milestone = %d days, want 3", last.Days)
	}
}

func TestUpdate_GapResets(t *testing.T) {
	tr, profiles, clk, _ := newTestTracker(t)
	ctx := context.Background()

	for day := 0; day < 5; day++ {
		if _, _, err := tr.Update(ctx); err != nil {
			t.Fatalf("Update: %v", err)
		}
		clk.AdvanceDays(1)
	}
	// Skip a day entirely.
	clk.AdvanceDays(1)

	days, outcome, err := tr.Update(ctx)
	if err != nil {
		t.Fatalf("Update after gap: %v", err)
	}
	if days != 1 || outcome != Restarted {
		t.Errorf("after gap = %d days, %q; want 1, restarted", days, outcome)
	}

	p, _ := profiles.Get(ctx)
	if p.StreakDays != 1 || p.MaxStreak != 5 {
		t.Errorf("streak = %d, max = %d; want 1, 5", p.StreakDays, p.MaxStreak)
	}
}

func TestUpdate_ClockRollbackKeepsStreak(t *testing.T) {
	tr, profiles, clk, _ := newTestTracker(t)
	ctx := context.Background()

	for day := 0; day < 2; day++ {
		if _, _, err := tr.Update(ctx); err != nil {
			t.Fatalf("Update: %v", err)
		}
		clk.AdvanceDays(1)
	}
	// Clock jumps backwards past the recorded date.
	clk.AdvanceDays(-2)

	days, outcome, err := tr.Update(ctx)
	if err != nil {
		t.Fatalf("Update after rollback: %v", err)
	}
	if outcome != AlreadyCounted {
		t.Errorf("outcome = %q, want already_counted", outcome)
	}
	if days != 2 {
		t.Errorf("days = %d, want 2", days)
	}

	p, _ := profiles.Get(ctx)
	if p.StreakDays != 2 {
		t.Errorf("profile streak = %d after rollback, want 2", p.StreakDays)
	}
}

func TestDays(t *testing.T) {
	tr, _, clk, _ := newTestTracker(t)
	ctx := context.Background()

	days, err := tr.Days(ctx)
	if err != nil {
		t.Fatalf("Days: %v", err)
	}
	if days != 0 {
		t.Errorf("initial Days = %d, want 0", days)
	}

	if _, _, err := tr.Update(ctx); err != nil {
		t.Fatalf("Update: %v", err)
	}
	clk.AdvanceDays(1)
	if _, _, err := tr.Update(ctx); err != nil {
		t.Fatalf("Update: %v", err)
	}

	days, err = tr.Days(ctx)
	if err != nil {
		t.Fatalf("Days: %v", err)
	}
	if days != 2 {
		t.Errorf("Days = %d, want 2", days)
	}
}
