package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/joonho/ailearn/internal/clock"
	"github.com/joonho/ailearn/internal/store"
)

// maxSessionRecords caps the retained study history.
const maxSessionRecords = 500

// StudyRecord is one appended entry of the study history.
type StudyRecord struct {
	ID           string    `json:"id"`
	At           time.Time `json:"at"`
	Kind         string    `json:"kind"`
	ContentID    string    `json:"contentId,omitempty"`
	Correct      bool      `json:"correct"`
	XPEarned     int       `json:"xpEarned"`
	PointsEarned int       `json:"pointsEarned"`
}

func (e *Engine) appendSession(ctx context.Context, ev StudyEvent, res *StudyResult) error {
	records, err := e.History(ctx)
	if err != nil {
		return err
	}

	records = append(records, StudyRecord{
		ID:           uuid.New().String(),
		At:           e.clock.Now(),
		Kind:         ev.Kind,
		ContentID:    ev.ContentID,
		Correct:      ev.Correct,
		XPEarned:     res.XPEarned,
		PointsEarned: res.PointsEarned,
	})
	if len(records) > maxSessionRecords {
		records = records[len(records)-maxSessionRecords:]
	}

	if err := e.kv.Put(ctx, store.SessionsKey(e.session), records); err != nil {
		return fmt.Errorf("save study history: %w", err)
	}
	return nil
}

// History returns the retained study records, oldest first.
func (e *Engine) History(ctx context.Context) ([]StudyRecord, error) {
	var records []StudyRecord
	err := e.kv.Get(ctx, store.SessionsKey(e.session), &records)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load study history: %w", err)
	}
	return records, nil
}

// TodayStats aggregates the day's study history.
type TodayStats struct {
	Studied     int
	QuizTotal   int
	QuizCorrect int
	XPEarned    int
}

// Today summarizes study activity for the current calendar date.
func (e *Engine) Today(ctx context.Context) (TodayStats, error) {
	records, err := e.History(ctx)
	if err != nil {
		return TodayStats{}, err
	}

	today := clock.DateOf(e.clock.Now())
	var stats TodayStats
	for _, r := range records {
		if clock.DateOf(r.At) != today {
			continue
		}
		stats.Studied++
		stats.XPEarned += r.XPEarned
		if r.Kind == KindQuiz {
			stats.QuizTotal++
			if r.Correct {
				stats.QuizCorrect++
			}
		}
	}
	return stats, nil
}

// Reset deletes all engine state for the session: profile, streak record,
// review items, goals, history and today's missions. Past mission sets are
// already inert and left behind.
func (e *Engine) Reset(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	today := clock.DateOf(e.clock.Now())
	keys := []string{
		store.ProfileKey(e.session),
		store.LastStudyDateKey(e.session),
		store.ReviewItemsKey(e.session),
		store.GoalsKey(e.session),
		store.SessionsKey(e.session),
		store.MissionsKey(e.session, today),
	}
	for _, key := range keys {
		if err := e.kv.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}
