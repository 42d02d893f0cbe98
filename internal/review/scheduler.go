package review

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/joonho/ailearn/internal/clock"
	"github.com/joonho/ailearn/internal/store"
)

// Scheduler maintains the session's review items. Like the other engine
// components it persists the whole document per operation; the orchestrator
// serializes calls.
type Scheduler struct {
	kv      store.KV
	clock   clock.Clock
	session string
}

// NewScheduler creates a review scheduler for the session.
func NewScheduler(kv store.KV, clk clock.Clock, session string) *Scheduler {
	return &Scheduler{kv: kv, clock: clk, session: session}
}

// Items returns every review item, active or not.
func (s *Scheduler) Items(ctx context.Context) ([]Item, error) {
	var items []Item
	err := s.kv.Get(ctx, store.ReviewItemsKey(s.session), &items)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load review items: %w", err)
	}
	return items, nil
}

// AddItem schedules a newly studied piece of content for review at the
// neutral difficulty. If an active item for the same content already
// exists it is returned unchanged, so re-studying never resets a schedule.
func (s *Scheduler) AddItem(ctx context.Context, itemType, contentID string) (*Item, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return nil, err
	}

	for i := range items {
		it := &items[i]
		if it.IsActive && it.Type == itemType && it.ContentID == contentID {
			return it, nil
		}
	}

	now := s.clock.Now()
	item := Item{
		ID:           fmt.Sprintf("%s_%s_%d", itemType, contentID, now.UnixMilli()),
		Type:         itemType,
		ContentID:    contentID,
		Difficulty:   NeutralDifficulty,
		LastReviewed: now,
		NextReview:   now.AddDate(0, 0, IntervalDays(NeutralDifficulty)),
		IsActive:     true,
	}

	items = append(items, item)
	if err := s.save(ctx, items); err != nil {
		return nil, err
	}
	return &item, nil
}

// RecordOutcome updates the item after a review answer: counts the
// attempt, adapts the difficulty to the new lifetime accuracy and moves
// the next review date out by the difficulty's interval. Unknown or
// inactive ids are reported as not found.
func (s *Scheduler) RecordOutcome(ctx context.Context, itemID string, isCorrect bool) (found bool, err error) {
	items, err := s.Items(ctx)
	if err != nil {
		return false, err
	}

	now := s.clock.Now()
	for i := range items {
		it := &items[i]
		if it.ID != itemID || !it.IsActive {
			continue
		}

		it.TotalCount++
		if isCorrect {
			it.CorrectCount++
		}
		// TotalCount is at least 1 here, so accuracy is well-defined.
		it.Difficulty = NextDifficulty(it.Difficulty, it.Accuracy())
		it.LastReviewed = now
		it.NextReview = now.AddDate(0, 0, IntervalDays(it.Difficulty))

		if err := s.save(ctx, items); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// DueReviews returns the active items due at now, most overdue first.
func (s *Scheduler) DueReviews(ctx context.Context, now time.Time) ([]Item, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return nil, err
	}

	var due []Item
	for _, it := range items {
		if it.IsDue(now) {
			due = append(due, it)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].OverdueDays(now) != due[j].OverdueDays(now) {
			return due[i].OverdueDays(now) > due[j].OverdueDays(now)
		}
		return due[i].ID < due[j].ID
	})
	return due, nil
}

// Deactivate soft-deletes the item: it is kept but excluded from due
// queries, and outcomes against it report not found. Returns whether an
// active item was deactivated.
func (s *Scheduler) Deactivate(ctx context.Context, itemID string) (bool, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return false, err
	}

	for i := range items {
		it := &items[i]
		if it.ID != itemID || !it.IsActive {
			continue
		}
		it.IsActive = false
		if err := s.save(ctx, items); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

func (s *Scheduler) save(ctx context.Context, items []Item) error {
	if err := s.kv.Put(ctx, store.ReviewItemsKey(s.session), items); err != nil {
		return fmt.Errorf("save review items: %w", err)
	}
	return nil
}
