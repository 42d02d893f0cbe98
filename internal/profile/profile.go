// Package profile owns the user's progression state: level, XP, streak,
// points, badges and achievements. All mutations go through Store, which
// enforces the invariants and persists before emitting events.
package profile

import (
	"time"

	"github.com/joonho/ailearn/internal/catalog"
)

// UserProfile is the singleton progression record for one session.
// TotalXP is the source of truth for level; XP holds only the remainder
// accrued toward the current level.
type UserProfile struct {
	Level        int               `json:"level"`
	XP           int               `json:"xp"`
	TotalXP      int               `json:"totalXp"`
	StreakDays   int               `json:"streakDays"`
	MaxStreak    int               `json:"maxStreak"`
	Points       int               `json:"points"`
	Badges       []Badge           `json:"badges"`
	Achievements []GameAchievement `json:"achievements"`
	Preferences  UserPreferences   `json:"preferences"`
}

// Badge is an unlocked badge. UnlockedAt is stamped once and never changes.
type Badge struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Rarity      string    `json:"rarity"`
	Category    string    `json:"category"`
	UnlockedAt  time.Time `json:"unlockedAt"`
}

// GameAchievement tracks progress toward one catalog achievement.
// Completion is sticky: once IsCompleted flips true it never reverts and
// the reward is granted exactly once.
type GameAchievement struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Icon        string         `json:"icon"`
	Progress    int            `json:"progress"`
	MaxProgress int            `json:"maxProgress"`
	IsCompleted bool           `json:"isCompleted"`
	CompletedAt *time.Time     `json:"completedAt,omitempty"`
	Reward      catalog.Reward `json:"reward"`
}

// UserPreferences is presentation configuration carried on the profile.
// Not part of any engine invariant.
type UserPreferences struct {
	Theme         string            `json:"theme"`
	Language      string            `json:"language"`
	Notifications NotificationPrefs `json:"notifications"`
	SoundEffects  bool              `json:"soundEffects"`
	Animations    bool              `json:"animations"`
}

type NotificationPrefs struct {
	Daily        bool `json:"daily"`
	Weekly       bool `json:"weekly"`
	Achievements bool `json:"achievements"`
	Reminders    bool `json:"reminders"`
}

// HasBadge reports whether the badge is already owned.
func (p *UserProfile) HasBadge(id string) bool {
	for _, b := range p.Badges {
		if b.ID == id {
			return true
		}
	}
	return false
}

// Achievement returns a pointer into the profile's achievement list,
// or nil if the id is not in the catalog snapshot.
func (p *UserProfile) Achievement(id string) *GameAchievement {
	for i := range p.Achievements {
		if p.Achievements[i].ID == id {
			return &p.Achievements[i]
		}
	}
	return nil
}

// NewProfile builds the all-zero initial profile with the achievement
// catalog snapshot. Created once per session on first access.
func NewProfile(cat *catalog.Catalog) *UserProfile {
	p := &UserProfile{
		Level:       1,
		Badges:      []Badge{},
		Preferences: DefaultPreferences(),
	}
	for _, def := range cat.Achievements {
		p.Achievements = append(p.Achievements, GameAchievement{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Icon:        def.Icon,
			MaxProgress: def.MaxProgress,
			Reward:      def.Reward,
		})
	}
	return p
}

// DefaultPreferences returns the initial presentation settings.
func DefaultPreferences() UserPreferences {
	return UserPreferences{
		Theme:    "dark",
		Language: "ko",
		Notifications: NotificationPrefs{
			Daily:        true,
			Weekly:       true,
			Achievements: true,
			Reminders:    true,
		},
		SoundEffects: true,
		Animations:   true,
	}
}
