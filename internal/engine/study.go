package engine

import (
	"context"
	"fmt"

	"github.com/joonho/ailearn/internal/catalog"
	"github.com/joonho/ailearn/internal/review"
)

// Study event kinds accepted by RecordStudy.
const (
	KindStudyAI   = "study_ai"   // read an AI-info article
	KindQuiz      = "take_quiz"  // answered a quiz question
	KindLearnTerm = "learn_term" // studied a term/flashcard
)

// StudyEvent is one raw study action to be fanned out.
type StudyEvent struct {
	Kind      string
	ContentID string
	// Correct only applies to quiz events.
	Correct bool
}

// StudyResult summarizes what one study event changed.
type StudyResult struct {
	XPEarned     int
	PointsEarned int
	LeveledUp    bool
	NewLevel     int
	StreakDays   int
}

// Base awards per study kind. Achievement, mission and level-up rewards
// come on top of these through their own grant paths.
var studyAwards = map[string]struct {
	xp      int
	points  int
	xpWrong int
}{
	KindStudyAI:   {xp: 20, points: 5},
	KindQuiz:      {xp: 15, points: 5, xpWrong: 2},
	KindLearnTerm: {xp: 10, points: 2},
}

// RecordStudy fans one study event out to every interested component:
// streak, base XP/points, achievement metrics, daily missions, goals and
// the review scheduler. The whole fan-out runs under the session mutex so
// operations never interleave their read-modify-persist cycles.
func (e *Engine) RecordStudy(ctx context.Context, ev StudyEvent) (*StudyResult, error) {
	award, ok := studyAwards[ev.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown study kind %q", ev.Kind)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	res := &StudyResult{}

	// Streak first: today's activity must count before threshold
	// achievements are evaluated.
	days, _, err := e.streaks.Update(ctx)
	if err != nil {
		return nil, err
	}
	res.StreakDays = days

	xp := award.xp
	if ev.Kind == KindQuiz && !ev.Correct {
		xp = award.xpWrong
	}
	xpRes, err := e.profiles.AddXP(ctx, xp, ev.Kind)
	if err != nil {
		return nil, err
	}
	res.XPEarned = xp
	res.LeveledUp = xpRes.LeveledUp
	res.NewLevel = xpRes.NewLevel

	if xpRes.LeveledUp {
		bonus := e.profiles.SuggestedLevelUpBonus(xpRes.NewLevel)
		if err := e.profiles.AddPoints(ctx, bonus); err != nil {
			return nil, err
		}
		res.PointsEarned += bonus
	}

	points := award.points
	if ev.Kind == KindQuiz && !ev.Correct {
		points = 0
	}
	if err := e.profiles.AddPoints(ctx, points); err != nil {
		return nil, err
	}
	res.PointsEarned += points

	if err := e.advanceAchievements(ctx, ev, days); err != nil {
		return nil, err
	}

	if err := e.missions.Advance(ctx, missionType(ev.Kind), 1); err != nil {
		return nil, err
	}
	if err := e.missions.AdvanceGoals(ctx, goalCategory(ev.Kind), 1); err != nil {
		return nil, err
	}

	if ev.ContentID != "" {
		if _, err := e.reviews.AddItem(ctx, reviewType(ev.Kind), ev.ContentID); err != nil {
			return nil, err
		}
	}

	if err := e.appendSession(ctx, ev, res); err != nil {
		return nil, err
	}
	return res, nil
}

// RecordReview applies a spaced-repetition outcome: the scheduler adapts
// the item's difficulty and due date, and a correct recall earns review XP
// and feeds the quiz-correct metric for quiz items. Unknown item ids
// report found=false and change nothing.
func (e *Engine) RecordReview(ctx context.Context, itemID string, isCorrect bool) (found bool, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	items, err := e.reviews.Items(ctx)
	if err != nil {
		return false, err
	}
	var item *review.Item
	for i := range items {
		if items[i].ID == itemID && items[i].IsActive {
			item = &items[i]
			break
		}
	}

	found, err = e.reviews.RecordOutcome(ctx, itemID, isCorrect)
	if err != nil || !found {
		return found, err
	}

	if isCorrect {
		if _, err := e.profiles.AddXP(ctx, 8, "review"); err != nil {
			return true, err
		}
		if item != nil && item.Type == review.TypeQuiz {
			if err := e.incrementMetric(ctx, catalog.MetricQuizCorrect); err != nil {
				return true, err
			}
		}
	}
	return true, nil
}

func (e *Engine) advanceAchievements(ctx context.Context, ev StudyEvent, streakDays int) error {
	switch ev.Kind {
	case KindStudyAI:
		if err := e.incrementMetric(ctx, catalog.MetricStudyCount); err != nil {
			return err
		}
	case KindQuiz:
		if ev.Correct {
			if err := e.incrementMetric(ctx, catalog.MetricQuizCorrect); err != nil {
				return err
			}
		}
	case KindLearnTerm:
		if err := e.incrementMetric(ctx, catalog.MetricTermsLearned); err != nil {
			return err
		}
	}

	// Streak achievements are boolean gates over the streak length.
	for _, def := range e.catalog.StreakAchievements() {
		if streakDays >= def.Threshold {
			if _, err := e.achievements.UpdateProgress(ctx, def.ID, def.MaxProgress); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Engine) incrementMetric(ctx context.Context, metric string) error {
	for _, def := range e.catalog.AchievementsByMetric(metric) {
		if _, err := e.achievements.Increment(ctx, def.ID, 1); err != nil {
			return err
		}
	}
	return nil
}

func missionType(kind string) string {
	switch kind {
	case KindStudyAI:
		return catalog.MissionStudyAI
	case KindQuiz:
		return catalog.MissionTakeQuiz
	case KindLearnTerm:
		return catalog.MissionLearnTerms
	default:
		return ""
	}
}

func goalCategory(kind string) string {
	switch kind {
	case KindStudyAI:
		return "ai_info"
	case KindQuiz:
		return "quiz"
	case KindLearnTerm:
		return "terms"
	default:
		return ""
	}
}

func reviewType(kind string) string {
	switch kind {
	case KindStudyAI:
		return review.TypeAIInfo
	case KindQuiz:
		return review.TypeQuiz
	case KindLearnTerm:
		return review.TypeTerm
	default:
		return ""
	}
}
