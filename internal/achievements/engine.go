// Package achievements tracks progress toward the fixed achievement catalog
// and grants the one-time reward when an achievement completes.
package achievements

import (
	"context"
	"fmt"

	"github.com/joonho/ailearn/internal/events"
	"github.com/joonho/ailearn/internal/profile"
)

// Engine advances achievement progress on the profile. Progress is a
// monotonic ratchet: UpdateProgress takes an absolute value and clamps it
// to [current, maxProgress], so progress never moves backwards.
type Engine struct {
	profiles *profile.Store
	sink     events.Sink
}

// NewEngine creates the achievement engine. A nil sink discards events.
func NewEngine(profiles *profile.Store, sink events.Sink) *Engine {
	if sink == nil {
		sink = events.Discard
	}
	return &Engine{profiles: profiles, sink: sink}
}

// UpdateProgress sets the absolute progress for the achievement. Unknown
// ids and non-increasing values are no-ops. On the update that first
// reaches maxProgress the achievement completes: completion is stamped and
// persisted, then the reward (XP, points, badges) is granted through the
// profile store and a completion event is emitted. Completion is sticky,
// so later calls never grant again. Returns whether this call completed
// the achievement.
func (e *Engine) UpdateProgress(ctx context.Context, achievementID string, newProgress int) (bool, error) {
	p, err := e.profiles.Get(ctx)
	if err != nil {
		return false, err
	}

	ach := p.Achievement(achievementID)
	if ach == nil {
		return false, nil
	}
	if newProgress > ach.MaxProgress {
		newProgress = ach.MaxProgress
	}
	if newProgress <= ach.Progress {
		return false, nil
	}

	completes := !ach.IsCompleted && newProgress >= ach.MaxProgress
	var completed profile.GameAchievement

	err = e.profiles.Update(ctx, func(p *profile.UserProfile) error {
		ach := p.Achievement(achievementID)
		if ach == nil {
			return nil
		}
		ach.Progress = newProgress
		if completes {
			ach.IsCompleted = true
			now := e.profiles.Now()
			ach.CompletedAt = &now
			completed = *ach
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("update achievement %q: %w", achievementID, err)
	}

	if !completes {
		return false, nil
	}

	// Completion is already persisted, so even if a grant below fails the
	// sticky flag prevents a second payout on retry.
	if _, err := e.profiles.AddXP(ctx, completed.Reward.XP, "achievement: "+completed.Name); err != nil {
		return true, err
	}
	if err := e.profiles.AddPoints(ctx, completed.Reward.Points); err != nil {
		return true, err
	}
	for _, badgeID := range completed.Reward.Badges {
		if _, err := e.profiles.UnlockBadge(ctx, badgeID); err != nil {
			return true, err
		}
	}

	e.sink.Emit(events.AchievementCompleted{
		AchievementID: completed.ID,
		Name:          completed.Name,
		RewardXP:      completed.Reward.XP,
		RewardPoints:  completed.Reward.Points,
	})
	return true, nil
}

// Increment raises the achievement's progress by delta from its current
// value. Convenience for count-based metrics.
func (e *Engine) Increment(ctx context.Context, achievementID string, delta int) (bool, error) {
	if delta <= 0 {
		return false, nil
	}
	p, err := e.profiles.Get(ctx)
	if err != nil {
		return false, err
	}
	ach := p.Achievement(achievementID)
	if ach == nil {
		return false, nil
	}
	return e.UpdateProgress(ctx, achievementID, ach.Progress+delta)
}
