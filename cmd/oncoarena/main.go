package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/oncoarena/core"
	"github.com/lixenwraith/oncoarena/session"
	"github.com/lixenwraith/oncoarena/terminal"
)

var (
	tuningFlag = flag.String("tuning", "", "YAML tuning override file")
	seedFlag   = flag.Uint64("seed", 0, "Run seed (0 = time based)")
	debugFlag  = flag.Bool("debug", false, "Write logs/oncoarena.log")
	muteFlag   = flag.Bool("mute", false, "Start with sound off")
	scoresFlag = flag.String("scores", defaultScoresPath(), "Local high score file (empty = memory only)")
	nameFlag   = flag.String("name", "", "Default high score name")
	envFlag    = flag.String("env", ".env", "Environment file for remote services")
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := play(ctx, ss, ss.PlayerName(*nameFlag)); err != nil {
		fmt.Fprintf(os.Stderr, "oncoarena: %v\n", err)
		ss.Close()
		os.Exit(1)
	}
}

// play alternates arena runs and summary screens until the player leaves
// tview finalizes the screen it runs on, so every run gets a new one
func play(ctx context.Context, ss *session.Session, name string) error {
	for run := 1; ; run++ {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		core.SetCrashCleanup(screen.Fini)

		res := terminal.NewApp(screen, ss.Sim, ss.Audio).Run(ctx)
		log.Printf("[main] run %d ended: finished=%v score=%d", run, res.Finished, res.Stats.Score)
		if !res.Finished || ctx.Err() != nil {
			screen.Fini()
			fmt.Println(terminal.SummaryLine(res.Stats))
			return nil
		}

		view := terminal.NewSummaryView(res.Stats, ss.Scores, name)
		again, err := view.Run(screen)
		core.SetCrashCleanup(nil)
		if err != nil {
			return fmt.Errorf("summary: %w", err)
		}
		if !again {
			fmt.Println(terminal.SummaryLine(res.Stats))
			return nil
		}
		ss.Sim.Reset(ss.Sim.Seed() + 1)
	}
}

func defaultScoresPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "oncoarena", "scores.json")
}
