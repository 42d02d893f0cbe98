package missions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joonho/ailearn/internal/catalog"
	"github.com/joonho/ailearn/internal/clock"
	"github.com/joonho/ailearn/internal/events"
	"github.com/joonho/ailearn/internal/profile"
	"github.com/joonho/ailearn/internal/store"
)

// Engine rotates and advances the daily mission set for one session.
// Mission sets are keyed by (session, date): the first access on a new
// calendar day generates a fresh set from the catalog and older sets are
// left behind to expire.
type Engine struct {
	kv       store.KV
	profiles *profile.Store
	catalog  *catalog.Catalog
	clock    clock.Clock
	sink     events.Sink
	session  string
}

// NewEngine creates the mission engine. A nil sink discards events.
func NewEngine(kv store.KV, profiles *profile.Store, cat *catalog.Catalog, clk clock.Clock, sink events.Sink, session string) *Engine {
	if sink == nil {
		sink = events.Discard
	}
	return &Engine{kv: kv, profiles: profiles, catalog: cat, clock: clk, sink: sink, session: session}
}

// Missions returns today's mission set, generating and persisting it on
// first access for the date.
func (e *Engine) Missions(ctx context.Context) ([]DailyMission, error) {
	now := e.clock.Now()
	key := store.MissionsKey(e.session, clock.DateOf(now))

	var set []DailyMission
	err := e.kv.Get(ctx, key, &set)
	if err == nil {
		return set, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("load missions: %w", err)
	}

	set = e.generate(now)
	if err := e.kv.Put(ctx, key, set); err != nil {
		return nil, fmt.Errorf("save missions: %w", err)
	}
	return set, nil
}

func (e *Engine) generate(now time.Time) []DailyMission {
	validUntil := clock.NextMidnight(now)
	set := make([]DailyMission, 0, len(e.catalog.Missions))
	for _, def := range e.catalog.Missions {
		set = append(set, DailyMission{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Icon:        def.Icon,
			Type:        def.Type,
			Target:      def.Target,
			Reward:      def.Reward,
			ValidUntil:  validUntil,
		})
	}
	return set
}

// UpdateProgress advances the mission by delta, capped at the target.
// Unknown ids, expired missions and non-positive deltas are no-ops. The
// reward is granted on the call that crosses completion and never again.
// Returns whether this call completed the mission.
func (e *Engine) UpdateProgress(ctx context.Context, missionID string, delta int) (bool, error) {
	if delta <= 0 {
		return false, nil
	}

	set, err := e.Missions(ctx)
	if err != nil {
		return false, err
	}

	now := e.clock.Now()
	var completed *DailyMission
	changed := false

	for i := range set {
		m := &set[i]
		if m.ID != missionID || m.Expired(now) {
			continue
		}
		next := m.Current + delta
		if next > m.Target {
			next = m.Target
		}
		if next == m.Current {
			break
		}
		m.Current = next
		changed = true
		if !m.IsCompleted && m.Current >= m.Target {
			m.IsCompleted = true
			completed = m
		}
		break
	}

	if !changed {
		return false, nil
	}

	key := store.MissionsKey(e.session, clock.DateOf(now))
	if err := e.kv.Put(ctx, key, set); err != nil {
		return false, fmt.Errorf("save missions: %w", err)
	}

	if completed == nil {
		return false, nil
	}
	if err := e.grant(ctx, completed.Reward, "mission: "+completed.Name); err != nil {
		return true, err
	}
	e.sink.Emit(events.MissionCompleted{
		MissionID:    completed.ID,
		Name:         completed.Name,
		RewardXP:     completed.Reward.XP,
		RewardPoints: completed.Reward.Points,
	})
	return true, nil
}

// Advance applies delta to every mission of the given type in today's set.
// Used by the orchestrator to fan one study event into mission progress.
func (e *Engine) Advance(ctx context.Context, missionType string, delta int) error {
	set, err := e.Missions(ctx)
	if err != nil {
		return err
	}
	for _, m := range set {
		if m.Type != missionType {
			continue
		}
		if _, err := e.UpdateProgress(ctx, m.ID, delta); err != nil {
			return err
		}
	}
	return nil
}

// Claim marks a completed mission as collected in the UI. The engine
// granted the reward when the mission completed; claiming never grants
// again. Returns false for unknown, incomplete or already-claimed missions.
func (e *Engine) Claim(ctx context.Context, missionID string) (bool, error) {
	set, err := e.Missions(ctx)
	if err != nil {
		return false, err
	}

	now := e.clock.Now()
	claimed := false
	for i := range set {
		m := &set[i]
		if m.ID != missionID || !m.IsCompleted || m.ClaimedAt != nil {
			continue
		}
		m.ClaimedAt = &now
		claimed = true
		break
	}
	if !claimed {
		return false, nil
	}

	key := store.MissionsKey(e.session, clock.DateOf(now))
	if err := e.kv.Put(ctx, key, set); err != nil {
		return false, fmt.Errorf("save missions: %w", err)
	}
	return true, nil
}

func (e *Engine) grant(ctx context.Context, r catalog.Reward, source string) error {
	if _, err := e.profiles.AddXP(ctx, r.XP, source); err != nil {
		return err
	}
	if err := e.profiles.AddPoints(ctx, r.Points); err != nil {
		return err
	}
	for _, badgeID := range r.Badges {
		if _, err := e.profiles.UnlockBadge(ctx, badgeID); err != nil {
			return err
		}
	}
	return nil
}
