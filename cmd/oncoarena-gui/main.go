package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lixenwraith/oncoarena/core"
	"github.com/lixenwraith/oncoarena/event"
	"github.com/lixenwraith/oncoarena/gui"
	"github.com/lixenwraith/oncoarena/parameter"
	"github.com/lixenwraith/oncoarena/session"
)

var (
	tuningFlag = flag.String("tuning", "", "YAML tuning override file")
	seedFlag   = flag.Uint64("seed", 0, "Run seed (0 = time based)")
	debugFlag  = flag.Bool("debug", false, "Log to stderr")
	muteFlag   = flag.Bool("mute", false, "Start with sound off")
	scoresFlag = flag.String("scores", defaultScoresPath(), "Local high score file (empty = memory only)")
	nameFlag   = flag.String("name", "", "High score name")
	envFlag    = flag.String("env", ".env", "Environment file for remote services")
)

func main() {
	flag.Parse()

	// The window owns no terminal, so debug logs can go straight to stderr
	if !*debugFlag {
		log.SetOutput(io.Discard)
	}

	seed := *seedFlag
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	ss, err := session.Open(session.Options{
		TuningPath: *tuningFlag,
		Seed:       seed,
		Muted:      *muteFlag,
		ScoresPath: *scoresFlag,
		EnvFiles:   []string{*envFlag},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "oncoarena: %v\n", err)
		os.Exit(1)
	}
	defer ss.Close()

	name := ss.PlayerName(*nameFlag)
	game := gui.NewGame(ss.Sim, ss.Audio)
	game.OnRunEnd(func(st event.Stats) {
		// Runs on the ebiten goroutine; the store call is bounded by its own timeout
		core.Go(func() {
			if rank, err := ss.Record(st, name); err != nil {
				log.Printf("[main] record failed: %v", err)
			} else if rank > 0 {
				log.Printf("[main] new high score at #%d", rank)
			}
		})
	})

	w, h := game.WindowSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("oncoarena")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(int(time.Second / parameter.TickInterval))

	if err := ebiten.RunGame(game); err != nil {
		log.Printf("[main] %v", err)
	}
	st := ss.Sim.Stats()
	fmt.Printf("oncoarena: score %d, level %d, %d kills\n", st.Score, st.Level, st.EnemiesKilled)
}

func defaultScoresPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "oncoarena", "scores.json")
}
