// Package engine composes the progression components behind one mutex per
// session. A study event fans out to the profile, achievement, mission,
// streak and review components; each public operation runs its full
// read-modify-persist cycle without interleaving.
package engine

import (
	"sync"
	"time"

	"github.com/joonho/ailearn/internal/achievements"
	"github.com/joonho/ailearn/internal/catalog"
	"github.com/joonho/ailearn/internal/clock"
	"github.com/joonho/ailearn/internal/events"
	"github.com/joonho/ailearn/internal/missions"
	"github.com/joonho/ailearn/internal/profile"
	"github.com/joonho/ailearn/internal/review"
	"github.com/joonho/ailearn/internal/store"
	"github.com/joonho/ailearn/internal/streak"
)

// Engine is the orchestration layer for one session. Components never call
// each other directly; the engine owns the fan-out.
type Engine struct {
	mu sync.Mutex

	session string
	kv      store.KV
	catalog *catalog.Catalog
	clock   clock.Clock
	sink    events.Sink

	profiles     *profile.Store
	achievements *achievements.Engine
	streaks      *streak.Tracker
	missions     *missions.Engine
	reviews      *review.Scheduler
}

// Options configures an Engine.
type Options struct {
	KV      store.KV
	Catalog *catalog.Catalog
	Clock   clock.Clock
	Sink    events.Sink
	Session string
}

// New wires up an engine for the session. Clock defaults to the system
// clock and Sink to discard.
func New(opts Options) *Engine {
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if opts.Sink == nil {
		opts.Sink = events.Discard
	}

	profiles := profile.NewStore(opts.KV, opts.Catalog, opts.Clock, opts.Sink, opts.Session)
	return &Engine{
		session:      opts.Session,
		kv:           opts.KV,
		catalog:      opts.Catalog,
		clock:        opts.Clock,
		sink:         opts.Sink,
		profiles:     profiles,
		achievements: achievements.NewEngine(profiles, opts.Sink),
		streaks:      streak.NewTracker(opts.KV, profiles, opts.Clock, opts.Sink, opts.Session),
		missions:     missions.NewEngine(opts.KV, profiles, opts.Catalog, opts.Clock, opts.Sink, opts.Session),
		reviews:      review.NewScheduler(opts.KV, opts.Clock, opts.Session),
	}
}

// Profiles exposes the profile store for read paths (stats, rendering).
func (e *Engine) Profiles() *profile.Store { return e.profiles }

// Missions exposes the mission engine for read paths and claims.
func (e *Engine) Missions() *missions.Engine { return e.missions }

// Reviews exposes the review scheduler for read paths.
func (e *Engine) Reviews() *review.Scheduler { return e.reviews }

// Achievements exposes the achievement engine.
func (e *Engine) Achievements() *achievements.Engine { return e.achievements }

// Streaks exposes the streak tracker.
func (e *Engine) Streaks() *streak.Tracker { return e.streaks }

// Session returns the session id the engine is bound to.
func (e *Engine) Session() string { return e.session }

// Now returns the engine clock's current time.
func (e *Engine) Now() time.Time { return e.clock.Now() }
