package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/oncoarena/event"
	"github.com/lixenwraith/oncoarena/remote"
)

func clearRemoteEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{remote.EnvScoreboardURL, remote.EnvScoreSecret, remote.EnvAnalyticsURL, remote.EnvPlayer} {
		t.Setenv(k, "")
	}
}

func TestOpenLocalOnly(t *testing.T) {
	clearRemoteEnv(t)
	ss, err := Open(Options{Seed: 5, Muted: true})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer ss.Close()

	if ss.Sim.Seed() != 5 {
		t.Errorf("Expected seed 5, got %d", ss.Sim.Seed())
	}
	if ss.Config.Scoreboard() || ss.Config.Analytics() {
		t.Errorf("Expected no remote collaborators, got %+v", ss.Config)
	}
	if n := len(ss.Hub.Observers()); n != 2 {
		t.Errorf("Expected audio and analytics observers, got %d", n)
	}
}

func TestOpenBadTuning(t *testing.T) {
	clearRemoteEnv(t)
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("player: [not, a, map]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(Options{TuningPath: path, Muted: true}); err == nil {
		t.Error("Expected malformed tuning to fail")
	}
}

func TestRecordRun(t *testing.T) {
	clearRemoteEnv(t)
	path := filepath.Join(t.TempDir(), "scores.json")
	ss, err := Open(Options{Muted: true, ScoresPath: path})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer ss.Close()

	rank, err := ss.Record(event.Stats{Score: 120, Level: 2, EnemiesKilled: 9, SurvivalSeconds: 40}, "ada")
	if err != nil || rank != 1 {
		t.Fatalf("Expected rank 1, got %d (%v)", rank, err)
	}

	rank, err = ss.Record(event.Stats{Level: 1}, "zero")
	if err != nil || rank != 0 {
		t.Errorf("Expected zero score not recorded, got %d (%v)", rank, err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected scores persisted: %v", err)
	}
}

func TestPlayerName(t *testing.T) {
	ss := &Session{Config: remote.Config{Player: "env"}}
	if got := ss.PlayerName(""); got != "env" {
		t.Errorf("Expected env name, got %q", got)
	}
	if got := ss.PlayerName("flag"); got != "flag" {
		t.Errorf("Expected flag name, got %q", got)
	}
}
