package achievements

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

func newTestEngine(t *testing.T) (*Engine, *profile.Store, *events.Collector) {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("load default catalog: %v", err)
	}
	col := &events.Collector{}
	clk := clock.NewFixed(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	profiles := profile.NewStore(store.NewMemory(), cat, clk, col, "test")
	return NewEngine(profiles, col), profiles, col
}

func TestUpdateProgress_Ratchet(t *testing.T) {
	eng, profiles, _ := newTestEngine(t)
	ctx := context.Background()

	if _, err := eng.UpdateProgress(ctx, "quiz_master", 10); err != nil {
		t.Fatalf("UpdateProgress: %v", err)
	}
	// Lower and equal values must not move progress backwards.
	for _, v := range []int{5, 10, 0, -3} {
		if _, err := eng.UpdateProgress(ctx, "quiz_master", v); err != nil {
			t.Fatalf("UpdateProgress(%d): %v", v, err)
		}
	}

	p, _ := profiles.Get(ctx)
	if got := p.Achievement("quiz_master").Progress; got != 10 {
		t.Errorf("progress = %d, want 10", got)
	}
}

func TestUpdateProgress_ClampsToMax(t *testing.T) {
	eng, profiles, _ := newTestEngine(t)
	ctx := context.Background()

	completed, err := eng.UpdateProgress(ctx, "quiz_master", 250)
	if err != nil {
		t.Fatalf("UpdateProgress: %v", err)
	}
	if !completed {
		t.Fatal("overshoot did not complete the achievement")
	}

	p, _ := profiles.Get(ctx)
	ach := p.Achievement("quiz_master")
	if ach.Progress != ach.MaxProgress {
		t.Errorf("progress = %d, want clamped to %d", ach.Progress, ach.MaxProgress)
	}
}

func TestUpdateProgress_CompletionGrantsOnce(t *testing.T) {
	eng, profiles, col := newTestEngine(t)
	ctx := context.Background()

	completed, err := eng.UpdateProgress(ctx, "first_study", 1)
	if err != nil {
		t.Fatalf("UpdateProgress: %v", err)
	}
	if !completed {
		t.Fatal("reaching maxProgress did not complete")
	}

	p, _ := profiles.Get(ctx)
	ach := p.Achievement("first_study")
	if !ach.IsCompleted || ach.CompletedAt == nil {
		t.Fatal("completion not stamped on profile")
	}
	if p.TotalXP != 50 || p.Points != 10 {
		t.Errorf("reward = %d xp, %d points; want 50, 10", p.TotalXP, p.Points)
	}
	if !p.HasBadge("first_steps") {
		t.Error("reward badge not unlocked")
	}

	// A stale absolute update after completion must not pay out again.
	again, err := eng.UpdateProgress(ctx, "first_study", 1)
	if err != nil {
		t.Fatalf("UpdateProgress (repeat): %v", err)
	}
	if again {
		t.Error("repeat update reported completion")
	}
	p, _ = profiles.Get(ctx)
	if p.TotalXP != 50 || p.Points != 10 {
		t.Errorf("reward paid twice: %d xp, %d points", p.TotalXP, p.Points)
	}
	if got := col.OfKind("achievement_completed"); len(got) != 1 {
		t.Errorf("emitted %d achievement_completed events, want 1", len(got))
	}
}

func TestUpdateProgress_UnknownID(t *testing.T) {
	eng, _, col := newTestEngine(t)

	completed, err := eng.UpdateProgress(context.Background(), "no_such_achievement", 5)
	if err != nil {
		t.Fatalf("UpdateProgress: %v", err)
	}
	if completed {
		t.Error("unknown id reported completion")
	}
	if got := col.Events(); len(got) != 0 {
		t.Errorf("emitted %d events for unknown id, want 0", len(got))
	}
}

func TestIncrement(t *testing.T) {
	eng, profiles, _ := newTestEngine(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := eng.Increment(ctx, "terms_50", 1); err != nil {
			t.Fatalf("Increment: %v", err)
		}
	}
	if _, err := eng.Increment(ctx, "terms_50", 0); err != nil {
		t.Fatalf("Increment(0): %v", err)
	}

	p, _ := profiles.Get(ctx)
	if got := p.Achievement("terms_50").Progress; got != 3 {
		t.Errorf("progress = %d, want 3", got)
	}
}

func TestIncrement_CompletesAtThreshold(t *testing.T) {
	eng, profiles, _ := newTestEngine(t)
	ctx := context.Background()

	var completedAt int
	for i := 1; i <= 50; i++ {
		completed, err := eng.Increment(ctx, "terms_50", 1)
		if err != nil {
			t.Fatalf("Increment #%d: %v", i, err)
		}
		if completed {
			completedAt = i
		}
	}
	if completedAt != 50 {
		t.Errorf("completed at increment %d, want 50", completedAt)
	}

	p, _ := profiles.Get(ctx)
	if p.TotalXP != 250 || !p.HasBadge("term_collector") {
		t.Errorf("reward not granted: %d xp, badge=%v", p.TotalXP, p.HasBadge("term_collector"))
	}
}
