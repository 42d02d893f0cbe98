package missions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/joonho/ailearn/internal/catalog"
	"github.com/joonho/ailearn/internal/events"
	"github.com/joonho/ailearn/internal/store"
)

// Goals returns the session's goal list, oldest first.
func (e *Engine) Goals(ctx context.Context) ([]Goal, error) {
	var goals []Goal
	err := e.kv.Get(ctx, store.GoalsKey(e.session), &goals)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load goals: %w", err)
	}
	return goals, nil
}

// AddGoal creates and persists a new goal. The deadline derives from the
// horizon type unless the goal carries an explicit one.
func (e *Engine) AddGoal(ctx context.Context, name, goalType, category string, target int, reward catalog.Reward, deadline time.Time) (*Goal, error) {
	if target <= 0 {
		return nil, fmt.Errorf("goal target must be positive, got %d", target)
	}

	now := e.clock.Now()
	if deadline.IsZero() {
		switch goalType {
		case GoalDaily:
			deadline = now.AddDate(0, 0, 1)
		case GoalWeekly:
			deadline = now.AddDate(0, 0, 7)
		case GoalMonthly:
			deadline = now.AddDate(0, 1, 0)
		}
	}

	goal := Goal{
		ID:       uuid.New().String(),
		Name:     name,
		Type:     goalType,
		Target:   target,
		Category: category,
		Deadline: deadline,
		Reward:   reward,
	}

	goals, err := e.Goals(ctx)
	if err != nil {
		return nil, err
	}
	goals = append(goals, goal)
	if err := e.kv.Put(ctx, store.GoalsKey(e.session), goals); err != nil {
		return nil, fmt.Errorf("save goals: %w", err)
	}
	return &goal, nil
}

// AdvanceGoals applies delta to every active goal in the category. Expired
// and completed goals are inert. Rewards are edge-triggered like missions.
func (e *Engine) AdvanceGoals(ctx context.Context, category string, delta int) error {
	if delta <= 0 {
		return nil
	}

	goals, err := e.Goals(ctx)
	if err != nil {
		return err
	}
	if len(goals) == 0 {
		return nil
	}

	now := e.clock.Now()
	var completed []Goal
	changed := false

	for i := range goals {
		g := &goals[i]
		if g.Category != category || g.IsCompleted || g.Expired(now) {
			continue
		}
		next := g.Current + delta
		if next > g.Target {
			next = g.Target
		}
		if next == g.Current {
			continue
		}
		g.Current = next
		changed = true
		if g.Current >= g.Target {
			g.IsCompleted = true
			completed = append(completed, *g)
		}
	}

	if !changed {
		return nil
	}
	if err := e.kv.Put(ctx, store.GoalsKey(e.session), goals); err != nil {
		return fmt.Errorf("save goals: %w", err)
	}

	for _, g := range completed {
		if err := e.grant(ctx, g.Reward, "goal: "+g.Name); err != nil {
			return err
		}
		e.sink.Emit(events.GoalCompleted{
			GoalID:       g.ID,
			Name:         g.Name,
			RewardXP:     g.Reward.XP,
			RewardPoints: g.Reward.Points,
		})
	}
	return nil
}
