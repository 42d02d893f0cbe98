// Package catalog holds the static configuration the engine consumes by id:
// badge definitions, the achievement catalog, the daily mission set and the
// level-up bonus policy. The catalog is versioned data, not business logic —
// engines look entries up by id and never hardcode them.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

//go:embed catalog.json
var defaultCatalogJSON []byte

// Rarity tiers for badges, lowest to highest.
const (
	RarityCommon    = "common"
	RarityRare      = "rare"
	RarityEpic      = "epic"
	RarityLegendary = "legendary"
)

// Reward is what completing an achievement, mission or goal grants.
type Reward struct {
	XP     int      `json:"xp"`
	Points int      `json:"points"`
	Badges []string `json:"badges,omitempty"`
}

// BadgeDef describes an unlockable badge.
type BadgeDef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Rarity      string `json:"rarity"`
	Category    string `json:"category"`
}

// AchievementDef describes a permanent progress goal. Metric tags which
// study signal drives it; Threshold applies to streak metrics, where the
// achievement is a boolean gate (maxProgress 1) over the streak length.
type AchievementDef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	MaxProgress int    `json:"maxProgress"`
	Metric      string `json:"metric"`
	Threshold   int    `json:"threshold,omitempty"`
	Reward      Reward `json:"reward"`
}

// MissionDef describes one entry of the generated daily mission set.
// Type identifies which event kind increments it.
type MissionDef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Type        string `json:"type"`
	Target      int    `json:"target"`
	Reward      Reward `json:"reward"`
}

// LevelUpBonus is the explicit level-up reward policy: on each level gained
// the orchestrator grants PointsPerLevel × newLevel points.
type LevelUpBonus struct {
	PointsPerLevel int `json:"pointsPerLevel"`
}

// Catalog is the versioned configuration resource loaded once at startup.
type Catalog struct {
	Version      int              `json:"version"`
	Badges       []BadgeDef       `json:"badges"`
	Achievements []AchievementDef `json:"achievements"`
	Missions     []MissionDef     `json:"missions"`
	LevelUpBonus LevelUpBonus     `json:"levelUpBonus"`
}

// Badge returns the badge definition for id, or false if unknown.
func (c *Catalog) Badge(id string) (BadgeDef, bool) {
	for _, b := range c.Badges {
		if b.ID == id {
			return b, true
		}
	}
	return BadgeDef{}, false
}

// Achievement returns the achievement definition for id, or false if unknown.
func (c *Catalog) Achievement(id string) (AchievementDef, bool) {
	for _, a := range c.Achievements {
		if a.ID == id {
			return a, true
		}
	}
	return AchievementDef{}, false
}

// StreakAchievements returns the achievements gated on streak length,
// ordered as declared.
func (c *Catalog) StreakAchievements() []AchievementDef {
	var out []AchievementDef
	for _, a := range c.Achievements {
		if a.Metric == MetricStreakDays {
			out = append(out, a)
		}
	}
	return out
}

// AchievementsByMetric returns the achievements driven by the given metric.
func (c *Catalog) AchievementsByMetric(metric string) []AchievementDef {
	var out []AchievementDef
	for _, a := range c.Achievements {
		if a.Metric == metric {
			out = append(out, a)
		}
	}
	return out
}

// Metric tags connecting study signals to achievement progress.
const (
	MetricStudyCount   = "study_count"
	MetricQuizCorrect  = "quiz_correct"
	MetricTermsLearned = "terms_learned"
	MetricStreakDays   = "streak_days"
)

// Mission type tags, matching the study event kinds that advance them.
const (
	MissionStudyAI    = "study_ai"
	MissionTakeQuiz   = "take_quiz"
	MissionLearnTerms = "learn_terms"
)

// Default parses and validates the embedded catalog.
func Default() (*Catalog, error) {
	return parse(defaultCatalogJSON)
}

// Load reads a catalog override from path, validating it against the same
// schema as the embedded default.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return parse(raw)
}

func parse(raw []byte) (*Catalog, error) {
	if err := validate(raw); err != nil {
		return nil, err
	}
	var c Catalog
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.check(); err != nil {
		return nil, err
	}
	return &c, nil
}

// check enforces referential integrity the JSON Schema cannot express.
func (c *Catalog) check() error {
	badges := make(map[string]bool, len(c.Badges))
	for _, b := range c.Badges {
		if badges[b.ID] {
			return fmt.Errorf("catalog: duplicate badge id %q", b.ID)
		}
		badges[b.ID] = true
	}

	achievements := make(map[string]bool, len(c.Achievements))
	for _, a := range c.Achievements {
		if achievements[a.ID] {
			return fmt.Errorf("catalog: duplicate achievement id %q", a.ID)
		}
		achievements[a.ID] = true
		for _, id := range a.Reward.Badges {
			if !badges[id] {
				return fmt.Errorf("catalog: achievement %q rewards unknown badge %q", a.ID, id)
			}
		}
	}

	missions := make(map[string]bool, len(c.Missions))
	for _, m := range c.Missions {
		if missions[m.ID] {
			return fmt.Errorf("catalog: duplicate mission id %q", m.ID)
		}
		missions[m.ID] = true
		for _, id := range m.Reward.Badges {
			if !badges[id] {
				return fmt.Errorf("catalog: mission %q rewards unknown badge %q", m.ID, id)
			}
		}
	}

	return nil
}
