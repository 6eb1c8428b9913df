package service

import (
	"context"
	"time"

	"github.com/lixenwraith/oncoarena/event"
)

// Service defines the lifecycle interface for collaborators around the simulation
// Services manage long-lived resources: audio output, score stores, analytics uploads
//
// Lifecycle:
//  1. Construction (via factory)
//  2. Init(args...) - implicit configuration (e.g. from parsed flags/env)
//  3. Start() - launch background goroutines
//  4. [runtime operation]
//  5. Stop() - halt goroutines, release resources
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must Init before this one
	// Return nil or empty slice if no dependencies
	Dependencies() []string

	// Init configures the service from optional args
	// Args are service-specific (mute state, store path, remote config)
	Init(args ...any) error

	// Start begins service operation (launches goroutines if any)
	// Called after all services have initialized
	Start() error

	// Stop halts service operation and releases resources
	// Must be idempotent - safe to call multiple times
	Stop() error
}

// Observer receives simulation events on the stepping goroutine
// Implementations must return promptly and never call back into the simulation
type Observer interface {
	Observe(ev event.GameEvent)
}

// Score is one finished run as recorded by a score store
type Score struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Score     int       `json:"score"`
	Level     int       `json:"level"`
	Kills     int       `json:"kills"`
	Survival  int       `json:"survival_seconds"`
	Bosses    int       `json:"bosses"`
	BossNames []string  `json:"boss_names,omitempty"`
	Recorded  time.Time `json:"recorded"`
}

// ScoreFromStats builds an unnamed score record from a run aggregate
func ScoreFromStats(s event.Stats) Score {
	return Score{
		Score:     s.Score,
		Level:     s.Level,
		Kills:     s.EnemiesKilled,
		Survival:  s.SurvivalSeconds,
		Bosses:    s.BossesDefeated,
		BossNames: append([]string(nil), s.BossNames...),
	}
}

// ScoreStore persists the top runs
// Rank is 1-based; a run that does not make the table is rejected with an error
type ScoreStore interface {
	Top(ctx context.Context) ([]Score, error)
	Qualifies(ctx context.Context, score int) (bool, error)
	Submit(ctx context.Context, s Score) (rank int, err error)
}

// Tracker accepts fire-and-forget analytics records
// Delivery failures are the tracker's concern and never reach the caller
type Tracker interface {
	Track(name string, props map[string]any)
}
