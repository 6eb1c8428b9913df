package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/lixenwraith/oncoarena/highscore"
	"github.com/lixenwraith/oncoarena/remote"
	"github.com/lixenwraith/oncoarena/scoreboard"
)

var (
	addrFlag      = flag.String("addr", ":8080", "Listen address")
	dataFlag      = flag.String("data", "scores.json", "High score table file")
	envFlag       = flag.String("env", ".env", "Environment file holding "+remote.EnvScoreSecret)
	analyticsFlag = flag.Bool("analytics", true, "Accept analytics batches on /analytics")
)

func main() {
	flag.Parse()
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)

	cfg := remote.LoadConfig(*envFlag)
	if cfg.ScoreSecret == "" {
		fmt.Fprintf(os.Stderr, "scoreboard: %s is not set\n", remote.EnvScoreSecret)
		os.Exit(2)
	}

	store, err := highscore.OpenLocal(*dataFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scoreboard: %v\n", err)
		os.Exit(1)
	}

	var ledger *scoreboard.Ledger
	if *analyticsFlag {
		ledger = scoreboard.NewLedger()
	}
	srv := scoreboard.NewServer(cfg.ScoreSecret, store, ledger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("[scoreboard] table %s, analytics %v", *dataFlag, ledger != nil)
	if err := srv.ListenAndServe(ctx, *addrFlag); err != nil {
		log.Printf("[scoreboard] %v", err)
		stop()
		os.Exit(1)
	}
	if ledger != nil {
		sum := ledger.Summary()
		var records int64
		for _, n := range sum.Records {
			records += n
		}
		log.Printf("[scoreboard] analytics: %d sessions, %d batches, %d records, %d rejected",
			sum.Sessions, sum.Batches, records, sum.Rejected)
	}
}
