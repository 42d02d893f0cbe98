// Package events defines the engine's outbound notification contract.
// The engine emits typed events after each committed state change; how they
// are rendered (toasts, terminal output, nothing) is the consumer's concern.
package events

import "time"

// Event is implemented by every engine notification.
type Event interface {
	Kind() string
}

// XPEarned fires on every successful XP award.
type XPEarned struct {
	Amount int
	Source string
}

func (XPEarned) Kind() string { return "xp_earned" }

// LevelUp fires when an XP award raises the level. NewLevel is the level
// after the award; multi-level jumps produce a single event.
type LevelUp struct {
	NewLevel int
	OldLevel int
	BonusPts int
}

func (LevelUp) Kind() string { return "level_up" }

// PointsEarned fires on every successful points award.
type PointsEarned struct {
	Amount int
}

func (PointsEarned) Kind() string { return "points_earned" }

// BadgeUnlocked fires the first time a badge is added to the profile.
type BadgeUnlocked struct {
	BadgeID string
	Name    string
	Rarity  string
	At      time.Time
}

func (BadgeUnlocked) Kind() string { return "badge_unlocked" }

// AchievementCompleted fires exactly once per achievement, on the update
// that crosses maxProgress.
type AchievementCompleted struct {
	AchievementID string
	Name          string
	RewardXP      int
	RewardPoints  int
}

func (AchievementCompleted) Kind() string { return "achievement_completed" }

// StreakMilestone fires when a streak continues past its first day.
type StreakMilestone struct {
	Days int
}

func (StreakMilestone) Kind() string { return "streak_milestone" }

// MissionCompleted fires on the progress update that reaches the target.
type MissionCompleted struct {
	MissionID    string
	Name         string
	RewardXP     int
	RewardPoints int
}

func (MissionCompleted) Kind() string { return "mission_completed" }

// GoalCompleted fires when a long-horizon goal reaches its target.
type GoalCompleted struct {
	GoalID       string
	Name         string
	RewardXP     int
	RewardPoints int
}

func (GoalCompleted) Kind() string { return "goal_completed" }
