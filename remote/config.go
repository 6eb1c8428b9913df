// Package remote reads the endpoints of the optional network collaborators
// Every field may be empty; an empty endpoint disables that collaborator
package remote

import (
	"errors"
	"io/fs"
	"log"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment keys
const (
	EnvScoreboardURL = "ONCOARENA_SCOREBOARD_URL"
	EnvScoreSecret   = "ONCOARENA_SCORE_SECRET"
	EnvAnalyticsURL  = "ONCOARENA_ANALYTICS_URL"
	EnvPlayer        = "ONCOARENA_PLAYER"
)

// Config holds collaborator endpoints and credentials
type Config struct {
	// ScoreboardURL is the http(s) base of the high score server
	ScoreboardURL string
	// ScoreSecret signs score submissions; submissions are local only without it
	ScoreSecret string
	// AnalyticsURL is the ws(s) endpoint for analytics batches
	AnalyticsURL string
	// Player is the default name offered on the high score prompt
	Player string
}

// LoadConfig loads the given .env files, then reads the environment
// Variables already set in the environment win over file values
// A missing file is not an error; unparseable URLs are dropped with a log line
func LoadConfig(files ...string) Config {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Printf("[remote] %s: %v", f, err)
		}
	}

	cfg := Config{
		ScoreboardURL: strings.TrimRight(strings.TrimSpace(os.Getenv(EnvScoreboardURL)), "/"),
		ScoreSecret:   os.Getenv(EnvScoreSecret),
		AnalyticsURL:  strings.TrimSpace(os.Getenv(EnvAnalyticsURL)),
		Player:        strings.TrimSpace(os.Getenv(EnvPlayer)),
	}

	if cfg.ScoreboardURL != "" && !validURL(cfg.ScoreboardURL, "http", "https") {
		log.Printf("[remote] ignoring %s=%q", EnvScoreboardURL, cfg.ScoreboardURL)
		cfg.ScoreboardURL = ""
	}
	if cfg.AnalyticsURL != "" && !validURL(cfg.AnalyticsURL, "ws", "wss") {
		log.Printf("[remote] ignoring %s=%q", EnvAnalyticsURL, cfg.AnalyticsURL)
		cfg.AnalyticsURL = ""
	}
	return cfg
}

// Scoreboard reports whether remote score submission is configured
func (c Config) Scoreboard() bool {
	return c.ScoreboardURL != "" && c.ScoreSecret != ""
}

// Analytics reports whether the analytics uploader is configured
func (c Config) Analytics() bool {
	return c.AnalyticsURL != ""
}

func validURL(raw string, schemes ...string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	for _, s := range schemes {
		if u.Scheme == s {
			return true
		}
	}
	return false
}
