package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joonho/ailearn/internal/catalog"
	"github.com/joonho/ailearn/internal/clock"
	"github.com/joonho/ailearn/internal/events"
	"github.com/joonho/ailearn/internal/store"
)

// Store mediates every profile mutation for one session. Each operation is
// a full read-modify-persist cycle: state is committed before any event is
// emitted, and a failed Put means the operation had no effect.
type Store struct {
	kv      store.KV
	clock   clock.Clock
	sink    events.Sink
	catalog *catalog.Catalog
	session string
}

// NewStore creates a profile store for the session. A nil sink discards
// events.
func NewStore(kv store.KV, cat *catalog.Catalog, clk clock.Clock, sink events.Sink, session string) *Store {
	if sink == nil {
		sink = events.Discard
	}
	return &Store{kv: kv, clock: clk, sink: sink, catalog: cat, session: session}
}

// Now returns the store's clock reading. Collaborating engines use it so
// all timestamps in one operation come from the same clock.
func (s *Store) Now() time.Time {
	return s.clock.Now()
}

// AddXPResult reports the outcome of an XP award.
type AddXPResult struct {
	LeveledUp bool
	NewLevel  int
}

// Get loads the profile, creating and persisting the initial one on first
// access.
func (s *Store) Get(ctx context.Context) (*UserProfile, error) {
	var p UserProfile
	err := s.kv.Get(ctx, store.ProfileKey(s.session), &p)
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	created := NewProfile(s.catalog)
	if err := s.save(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}

// Update runs fn against the current profile and persists the result.
// If fn returns an error, nothing is saved.
func (s *Store) Update(ctx context.Context, fn func(p *UserProfile) error) error {
	p, err := s.Get(ctx)
	if err != nil {
		return err
	}
	if err := fn(p); err != nil {
		return err
	}
	return s.save(ctx, p)
}

// AddXP adds amount to the lifetime XP total, recomputes the level and
// carries the remainder past the new level's threshold. Awards crossing
// several level boundaries in one call land at the correct level with the
// correct remainder. Non-positive amounts are rejected as silent no-ops.
func (s *Store) AddXP(ctx context.Context, amount int, source string) (AddXPResult, error) {
	if amount <= 0 {
		return AddXPResult{}, nil
	}

	p, err := s.Get(ctx)
	if err != nil {
		return AddXPResult{}, err
	}

	oldLevel := p.Level
	p.TotalXP += amount
	newLevel := LevelForTotalXP(p.TotalXP)

	if newLevel > oldLevel {
		p.XP = p.TotalXP - CumulativeXPForLevel(newLevel)
	} else {
		p.XP += amount
	}
	p.Level = newLevel

	if err := s.save(ctx, p); err != nil {
		return AddXPResult{}, err
	}

	s.sink.Emit(events.XPEarned{Amount: amount, Source: source})
	if newLevel > oldLevel {
		s.sink.Emit(events.LevelUp{
			NewLevel: newLevel,
			OldLevel: oldLevel,
			BonusPts: s.SuggestedLevelUpBonus(newLevel),
		})
	}

	return AddXPResult{LeveledUp: newLevel > oldLevel, NewLevel: newLevel}, nil
}

// SuggestedLevelUpBonus is the catalog's bonus policy for reaching level.
// The store only suggests; granting is the orchestrator's decision.
func (s *Store) SuggestedLevelUpBonus(level int) int {
	return s.catalog.LevelUpBonus.PointsPerLevel * level
}

// AddPoints adds amount to the points balance. Non-positive amounts are
// rejected as silent no-ops.
func (s *Store) AddPoints(ctx context.Context, amount int) error {
	if amount <= 0 {
		return nil
	}

	p, err := s.Get(ctx)
	if err != nil {
		return err
	}
	p.Points += amount
	if err := s.save(ctx, p); err != nil {
		return err
	}

	s.sink.Emit(events.PointsEarned{Amount: amount})
	return nil
}

// UnlockBadge appends the catalog badge to the profile, stamping the unlock
// time. Unknown ids and already-owned badges are no-ops. Returns whether a
// badge was newly unlocked.
func (s *Store) UnlockBadge(ctx context.Context, badgeID string) (bool, error) {
	def, ok := s.catalog.Badge(badgeID)
	if !ok {
		return false, nil
	}

	p, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	if p.HasBadge(badgeID) {
		return false, nil
	}

	badge := Badge{
		ID:          def.ID,
		Name:        def.Name,
		Description: def.Description,
		Icon:        def.Icon,
		Rarity:      def.Rarity,
		Category:    def.Category,
		UnlockedAt:  s.clock.Now(),
	}
	p.Badges = append(p.Badges, badge)

	if err := s.save(ctx, p); err != nil {
		return false, err
	}

	s.sink.Emit(events.BadgeUnlocked{
		BadgeID: badge.ID,
		Name:    badge.Name,
		Rarity:  badge.Rarity,
		At:      badge.UnlockedAt,
	})
	return true, nil
}

// SetStreak records the derived streak values. Used by the streak tracker;
// enforces maxStreak >= streakDays.
func (s *Store) SetStreak(ctx context.Context, streakDays int) error {
	return s.Update(ctx, func(p *UserProfile) error {
		p.StreakDays = streakDays
		if streakDays > p.MaxStreak {
			p.MaxStreak = streakDays
		}
		return nil
	})
}

func (s *Store) save(ctx context.Context, p *UserProfile) error {
	if err := s.kv.Put(ctx, store.ProfileKey(s.session), p); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
