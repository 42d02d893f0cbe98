package events

import (
	"log/slog"
	"sync"
)

// Sink receives engine events. Implementations must not block for long;
// the engine emits synchronously after persisting state.
type Sink interface {
	Emit(ev Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ev Event)

func (f SinkFunc) Emit(ev Event) { f(ev) }

// Discard drops all events.
var Discard Sink = SinkFunc(func(Event) {})

// Multi fans one event out to several sinks in order.
type Multi []Sink

func (m Multi) Emit(ev Event) {
	for _, s := range m {
		s.Emit(ev)
	}
}

// Logger writes each event as a structured log line.
type Logger struct {
	Log *slog.Logger
}

func NewLogger(log *slog.Logger) *Logger {
	if log == nil {
		log = slog.Default()
	}
	return &Logger{Log: log}
}

func (l *Logger) Emit(ev Event) {
	switch e := ev.(type) {
	case XPEarned:
		l.Log.Info("xp earned", "amount", e.Amount, "source", e.Source)
	case LevelUp:
		l.Log.Info("level up", "new_level", e.NewLevel, "old_level", e.OldLevel, "bonus_points", e.BonusPts)
	case PointsEarned:
		l.Log.Info("points earned", "amount", e.Amount)
	case BadgeUnlocked:
		l.Log.Info("badge unlocked", "badge_id", e.BadgeID, "rarity", e.Rarity)
	case AchievementCompleted:
		l.Log.Info("achievement completed", "achievement_id", e.AchievementID)
	case StreakMilestone:
		l.Log.Info("streak milestone", "days", e.Days)
	case MissionCompleted:
		l.Log.Info("mission completed", "mission_id", e.MissionID)
	case GoalCompleted:
		l.Log.Info("goal completed", "goal_id", e.GoalID)
	default:
		l.Log.Info("event", "kind", ev.Kind())
	}
}

// Collector accumulates events for assertions in tests.
type Collector struct {
	mu     sync.Mutex
	events []Event
}

func (c *Collector) Emit(ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
}

// Events returns a copy of everything emitted so far.
func (c *Collector) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

// OfKind returns the collected events matching kind, in emission order.
func (c *Collector) OfKind(kind string) []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []Event
	for _, ev := range c.events {
		if ev.Kind() == kind {
			out = append(out, ev)
		}
	}
	return out
}

// Reset clears the collector.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = nil
}
