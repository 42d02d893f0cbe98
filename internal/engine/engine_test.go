package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/joonho/ailearn/internal/catalog"
	"github.com/joonho/ailearn/internal/clock"
	"github.com/joonho/ailearn/internal/events"
	"github.com/joonho/ailearn/internal/review"
	"github.com/joonho/ailearn/internal/store"
)

func newTestEngine(t *testing.T) (*Engine, *clock.Fixed, *events.Collector) {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("load default catalog: %v", err)
	}
	col := &events.Collector{}
	clk := clock.NewFixed(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	eng := New(Options{
		KV:      store.NewMemory(),
		Catalog: cat,
		Clock:   clk,
		Sink:    col,
		Session: "test",
	})
	return eng, clk, col
}

func TestRecordStudy_FirstArticleFanOut(t *testing.T) {
	eng, _, col := newTestEngine(t)
	ctx := context.Background()

	res, err := eng.RecordStudy(ctx, StudyEvent{Kind: KindStudyAI, ContentID: "article-1"})
	if err != nil {
		t.Fatalf("RecordStudy: %v", err)
	}
	if res.XPEarned != 20 || res.StreakDays != 1 {
		t.Errorf("result = %+v, want 20 xp, streak 1", res)
	}

	p, err := eng.Profiles().Get(ctx)
	if err != nil {
		t.Fatalf("Get profile: %v", err)
	}
	// Base 20 XP plus the first_study achievement reward of 50.
	if p.TotalXP != 70 {
		t.Errorf("totalXp = %d, want 70", p.TotalXP)
	}
	// Base 5 points plus the achievement's 10.
	if p.Points != 15 {
		t.Errorf("points = %d, want 15", p.Points)
	}
	if !p.HasBadge("first_steps") {
		t.Error("first_steps badge not unlocked")
	}
	if ach := p.Achievement("first_study"); !ach.IsCompleted {
		t.Error("first_study not completed")
	}

	set, _ := eng.Missions().Missions(ctx)
	for _, m := range set {
		want := 0
		if m.ID == "daily_study" {
			want = 1
		}
		if m.Current != want {
			t.Errorf("mission %s current = %d, want %d", m.ID, m.Current, want)
		}
	}

	items, _ := eng.Reviews().Items(ctx)
	if len(items) != 1 || items[0].Type != review.TypeAIInfo || items[0].ContentID != "article-1" {
		t.Errorf("review items = %+v, want one ai_info item for article-1", items)
	}

	records, _ := eng.History(ctx)
	if len(records) != 1 || records[0].Kind != KindStudyAI {
		t.Errorf("history = %+v, want one study_ai record", records)
	}

	if got := col.OfKind("achievement_completed"); len(got) != 1 {
		t.Errorf("emitted %d achievement_completed events, want 1", len(got))
	}
}

func TestRecordStudy_UnknownKind(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	if _, err := eng.RecordStudy(context.Background(), StudyEvent{Kind: "meditate"}); err == nil {
		t.Fatal("unknown kind accepted")
	}
}

func TestRecordStudy_WrongQuizAnswer(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	ctx := context.Background()

	res, err := eng.RecordStudy(ctx, StudyEvent{Kind: KindQuiz, Correct: false})
	if err != nil {
		t.Fatalf("RecordStudy: %v", err)
	}
	if res.XPEarned != 2 || res.PointsEarned != 0 {
		t.Errorf("wrong answer earned %d xp, %d points; want 2, 0", res.XPEarned, res.PointsEarned)
	}

	p, _ := eng.Profiles().Get(ctx)
	if got := p.Achievement("quiz_master").Progress; got != 0 {
		t.Errorf("wrong answer advanced quiz_master to %d", got)
	}

	// The mission counts attempts, not correctness.
	set, _ := eng.Missions().Missions(ctx)
	for _, m := range set {
		if m.ID == "daily_quiz" && m.Current != 1 {
			t.Errorf("daily_quiz current = %d, want 1", m.Current)
		}
	}
}

func TestRecordStudy_CorrectQuizAnswer(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	ctx := context.Background()

	res, err := eng.RecordStudy(ctx, StudyEvent{Kind: KindQuiz, ContentID: "q-1", Correct: true})
	if err != nil {
		t.Fatalf("RecordStudy: %v", err)
	}
	if res.XPEarned != 15 || res.PointsEarned != 5 {
		t.Errorf("correct answer earned %d xp, %d points; want 15, 5", res.XPEarned, res.PointsEarned)
	}

	p, _ := eng.Profiles().Get(ctx)
	if got := p.Achievement("quiz_master").Progress; got != 1 {
		t.Errorf("quiz_master progress = %d, want 1", got)
	}
}

func TestRecordStudy_LevelUpBonusAndMissionReward(t *testing.T) {
	eng, _, col := newTestEngine(t)
	ctx := context.Background()

	// Three articles on one day. XP: 20 each, plus 50 for first_study on
	// the first, plus 100 when daily_study completes on the third. The
	// third article's base XP crosses level 2, which grants 10 x 2 bonus
	// points on top of the base 5.
	var last *StudyResult
	for i, id := range []string{"a-1", "a-2", "a-3"} {
		res, err := eng.RecordStudy(ctx, StudyEvent{Kind: KindStudyAI, ContentID: id})
		if err != nil {
			t.Fatalf("RecordStudy #%d: %v", i+1, err)
		}
		last = res
	}
	if !last.LeveledUp || last.NewLevel != 2 {
		t.Errorf("third article result = %+v, want level up to 2", last)
	}
	if last.PointsEarned != 25 {
		t.Errorf("third article earned %d points, want 25 (bonus 20 + base 5)", last.PointsEarned)
	}

	p, _ := eng.Profiles().Get(ctx)
	if p.TotalXP != 210 || p.Level != 2 {
		t.Errorf("profile = level %d, totalXp %d; want 2, 210", p.Level, p.TotalXP)
	}
	if p.Points != 65 {
		t.Errorf("points = %d, want 65", p.Points)
	}

	if got := col.OfKind("mission_completed"); len(got) != 1 {
		t.Errorf("emitted %d mission_completed events, want 1", len(got))
	}
	if got := col.OfKind("level_up"); len(got) != 1 {
		t.Errorf("emitted %d level_up events, want 1", len(got))
	}
}

func TestRecordStudy_StreakGateUnlocksWeekAchievement(t *testing.T) {
	eng, clk, _ := newTestEngine(t)
	ctx := context.Background()

	for day := 1; day <= 7; day++ {
		if _, err := eng.RecordStudy(ctx, StudyEvent{Kind: KindLearnTerm}); err != nil {
			t.Fatalf("RecordStudy day %d: %v", day, err)
		}
		p, _ := eng.Profiles().Get(ctx)
		if p.StreakDays != day {
			t.Fatalf("day %d streak = %d", day, p.StreakDays)
		}
		gate := p.Achievement("streak_7")
		if wantDone := day >= 7; gate.IsCompleted != wantDone {
			t.Errorf("day %d: streak_7 completed = %v, want %v", day, gate.IsCompleted, wantDone)
		}
		clk.AdvanceDays(1)
	}

	p, _ := eng.Profiles().Get(ctx)
	if !p.HasBadge("streak_master") {
		t.Error("streak_master badge not unlocked at 7 days")
	}
	if p.Achievement("streak_30").IsCompleted {
		t.Error("streak_30 completed at 7 days")
	}
}

func TestRecordReview(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	ctx := context.Background()

	if _, err := eng.RecordStudy(ctx, StudyEvent{Kind: KindQuiz, ContentID: "q-1", Correct: true}); err != nil {
		t.Fatalf("RecordStudy: %v", err)
	}
	items, _ := eng.Reviews().Items(ctx)
	if len(items) != 1 {
		t.Fatalf("got %d review items, want 1", len(items))
	}

	before, _ := eng.Profiles().Get(ctx)

	found, err := eng.RecordReview(ctx, items[0].ID, true)
	if err != nil {
		t.Fatalf("RecordReview: %v", err)
	}
	if !found {
		t.Fatal("item not found")
	}

	after, _ := eng.Profiles().Get(ctx)
	if after.TotalXP != before.TotalXP+8 {
		t.Errorf("review xp = %d, want +8", after.TotalXP-before.TotalXP)
	}
	// Correct recall on a quiz item also feeds the quiz metric.
	if got := after.Achievement("quiz_master").Progress; got != 2 {
		t.Errorf("quiz_master progress = %d, want 2", got)
	}

	found, err = eng.RecordReview(ctx, "no_such_item", true)
	if err != nil {
		t.Fatalf("RecordReview (unknown): %v", err)
	}
	if found {
		t.Error("unknown item reported found")
	}
}

func TestRecordReview_IncorrectEarnsNothing(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	ctx := context.Background()

	if _, err := eng.RecordStudy(ctx, StudyEvent{Kind: KindLearnTerm, ContentID: "t-1"}); err != nil {
		t.Fatalf("RecordStudy: %v", err)
	}
	items, _ := eng.Reviews().Items(ctx)
	before, _ := eng.Profiles().Get(ctx)

	if _, err := eng.RecordReview(ctx, items[0].ID, false); err != nil {
		t.Fatalf("RecordReview: %v", err)
	}

	after, _ := eng.Profiles().Get(ctx)
	if after.TotalXP != before.TotalXP {
		t.Errorf("incorrect recall changed xp by %d", after.TotalXP-before.TotalXP)
	}
}

func TestToday(t *testing.T) {
	eng, clk, _ := newTestEngine(t)
	ctx := context.Background()

	for _, ev := range []StudyEvent{
		{Kind: KindStudyAI, ContentID: "a-1"},
		{Kind: KindQuiz, Correct: true},
		{Kind: KindQuiz, Correct: false},
	} {
		if _, err := eng.RecordStudy(ctx, ev); err != nil {
			t.Fatalf("RecordStudy: %v", err)
		}
	}

	stats, err := eng.Today(ctx)
	if err != nil {
		t.Fatalf("Today: %v", err)
	}
	want := TodayStats{Studied: 3, QuizTotal: 2, QuizCorrect: 1, XPEarned: 37}
	if stats != want {
		t.Errorf("Today = %+v, want %+v", stats, want)
	}

	// Yesterday's records drop out of the summary.
	clk.AdvanceDays(1)
	stats, err = eng.Today(ctx)
	if err != nil {
		t.Fatalf("Today: %v", err)
	}
	if stats != (TodayStats{}) {
		t.Errorf("Today after rollover = %+v, want zero", stats)
	}
}

func TestReset(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	ctx := context.Background()

	if _, err := eng.RecordStudy(ctx, StudyEvent{Kind: KindStudyAI, ContentID: "a-1"}); err != nil {
		t.Fatalf("RecordStudy: %v", err)
	}
	if err := eng.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	p, err := eng.Profiles().Get(ctx)
	if err != nil {
		t.Fatalf("Get profile: %v", err)
	}
	if p.TotalXP != 0 || p.StreakDays != 0 || len(p.Badges) != 0 {
		t.Errorf("profile not reset: %+v", p)
	}
	records, _ := eng.History(ctx)
	if len(records) != 0 {
		t.Errorf("history survived reset: %d records", len(records))
	}
	items, _ := eng.Reviews().Items(ctx)
	if len(items) != 0 {
		t.Errorf("review items survived reset: %d", len(items))
	}

	// Streak restarts rather than continuing after a reset.
	res, err := eng.RecordStudy(ctx, StudyEvent{Kind: KindStudyAI})
	if err != nil {
		t.Fatalf("RecordStudy after reset: %v", err)
	}
	if res.StreakDays != 1 {
		t.Errorf("streak after reset = %d, want 1", res.StreakDays)
	}
}

func TestRecordStudy_Concurrent(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := eng.RecordStudy(ctx, StudyEvent{Kind: KindLearnTerm}); err != nil {
				t.Errorf("RecordStudy: %v", err)
			}
		}()
	}
	wg.Wait()

	p, _ := eng.Profiles().Get(ctx)
	// 10 x 10 base XP plus 80 when daily_terms completes at the fifth event.
	if p.TotalXP != 180 {
		t.Errorf("totalXp = %d, want 180", p.TotalXP)
	}
	if got := p.Achievement("terms_50").Progress; got != 10 {
		t.Errorf("terms_50 progress = %d, want 10", got)
	}
	if p.StreakDays != 1 {
		t.Errorf("streak = %d, want 1", p.StreakDays)
	}

	records, _ := eng.History(ctx)
	if len(records) != 10 {
		t.Errorf("history = %d records, want 10", len(records))
	}
}
