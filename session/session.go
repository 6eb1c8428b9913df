// Package session assembles one playable process: the tuning table, the
// simulation and the collaborator services around it.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/lixenwraith/oncoarena/analytics"
	"github.com/lixenwraith/oncoarena/audio"
	"github.com/lixenwraith/oncoarena/event"
	"github.com/lixenwraith/oncoarena/highscore"
	"github.com/lixenwraith/oncoarena/parameter"
	"github.com/lixenwraith/oncoarena/remote"
	"github.com/lixenwraith/oncoarena/service"
	"github.com/lixenwraith/oncoarena/sim"
	"github.com/lixenwraith/oncoarena/tuning"
)

// Options are the command-line choices shared by the frontends
type Options struct {
	// TuningPath is a YAML override file; empty uses the defaults
	TuningPath string
	Seed       uint64
	Muted      bool
	// ScoresPath is the local high score file; empty keeps scores in memory
	ScoresPath string
	// EnvFiles are .env files read before the environment
	EnvFiles []string
}

// Session owns the simulation and its started services
type Session struct {
	Sim       *sim.Simulation
	Hub       *service.Hub
	Audio     *audio.AudioService
	Scores    *highscore.Service
	Analytics *analytics.Uploader
	Config    remote.Config
}

// Open loads configuration, starts every service and subscribes the
// observers to a fresh simulation
func Open(o Options) (*Session, error) {
	t, err := tuning.Load(o.TuningPath)
	if err != nil {
		return nil, err
	}

	s, err := sim.New(t, o.Seed)
	if err != nil {
		return nil, fmt.Errorf("simulation: %w", err)
	}

	cfg := remote.LoadConfig(o.EnvFiles...)
	ss := &Session{
		Sim:       s,
		Hub:       service.NewHub(),
		Audio:     audio.NewService(),
		Scores:    highscore.NewService(),
		Analytics: analytics.NewUploader(),
		Config:    cfg,
	}

	for _, reg := range []struct {
		svc  service.Service
		args []any
	}{
		{ss.Audio, []any{o.Muted}},
		{ss.Scores, []any{o.ScoresPath, cfg}},
		{ss.Analytics, []any{cfg}},
	} {
		if err := ss.Hub.Register(reg.svc, reg.args...); err != nil {
			return nil, err
		}
	}
	if err := ss.Hub.InitAll(); err != nil {
		return nil, err
	}
	if err := ss.Hub.StartAll(); err != nil {
		return nil, err
	}

	for _, obs := range ss.Hub.Observers() {
		s.Subscribe(obs.Observe)
	}
	log.Printf("[session] started: seed=%d services=%v scoreboard=%v analytics=%v",
		o.Seed, ss.Hub.Names(), cfg.Scoreboard(), cfg.Analytics())
	return ss, nil
}

// PlayerName is the default name offered for a high score
func (ss *Session) PlayerName(flagName string) string {
	if flagName != "" {
		return flagName
	}
	return ss.Config.Player
}

// Record submits a finished run under name
// Returns rank 0 with a nil error when the run does not make the table
func (ss *Session) Record(stats event.Stats, name string) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), parameter.HighScoreHTTPTimeout)
	defer cancel()

	ok, err := ss.Scores.Qualifies(ctx, stats.Score)
	if err != nil || !ok {
		return 0, err
	}
	sc := service.ScoreFromStats(stats)
	sc.Name = highscore.SanitizeName(name)
	rank, err := ss.Scores.Submit(ctx, sc)
	if errors.Is(err, highscore.ErrNotQualified) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	log.Printf("[session] recorded %q score=%d rank=%d", sc.Name, sc.Score, rank)
	return rank, nil
}

// Close stops every service; safe to call more than once
func (ss *Session) Close() {
	ss.Hub.StopAll()
}
