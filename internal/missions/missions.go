// Package missions manages the day-scoped mission set and long-horizon
// goals. Each calendar day gets a fresh mission set generated from the
// catalog; past days' sets are never resumed and simply expire unclaimed.
package missions

import (
	"time"

	"github.com/joonho/ailearn/internal/catalog"
)

// DailyMission is one entry of a day's generated mission set. Completion
// is edge-triggered: the reward is granted on the update that reaches the
// target, exactly once. ClaimedAt is UI state only and never re-grants.
type DailyMission struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Icon        string         `json:"icon"`
	Type        string         `json:"type"`
	Target      int            `json:"target"`
	Current     int            `json:"current"`
	IsCompleted bool           `json:"isCompleted"`
	Reward      catalog.Reward `json:"reward"`
	ValidUntil  time.Time      `json:"validUntil"`
	ClaimedAt   *time.Time     `json:"claimedAt,omitempty"`
}

// Expired reports whether the mission is past its validity window.
// Expired missions are inert: progress updates no longer apply.
func (m *DailyMission) Expired(now time.Time) bool {
	return !now.Before(m.ValidUntil)
}

// Goal is a self-set progress target with a deadline, tracked with the
// same ratchet and edge-trigger semantics as missions but not rotated
// daily. Category tags which study signal advances it.
type Goal struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Type        string         `json:"type"`
	Target      int            `json:"target"`
	Current     int            `json:"current"`
	Category    string         `json:"category"`
	Deadline    time.Time      `json:"deadline"`
	IsCompleted bool           `json:"isCompleted"`
	Reward      catalog.Reward `json:"reward"`
}

// Expired reports whether the goal's deadline has passed.
func (g *Goal) Expired(now time.Time) bool {
	return !g.Deadline.IsZero() && now.After(g.Deadline)
}

// Goal horizon types.
const (
	GoalDaily   = "daily"
	GoalWeekly  = "weekly"
	GoalMonthly = "monthly"
	GoalCustom  = "custom"
)
