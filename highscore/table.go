// Package highscore keeps the top-10 table: ranking rules, a local JSON file
// store and a remote store that signs submissions for the scoreboard server
package highscore

import (
	"errors"
	"slices"
	"strings"
	"unicode"

	"github.com/lixenwraith/oncoarena/parameter"
	"github.com/lixenwraith/oncoarena/service"
)

var (
	// ErrNotQualified is returned when a score does not make the table
	ErrNotQualified = errors.New("score does not qualify")
	// ErrInvalidScore is returned for records outside the accepted ranges
	ErrInvalidScore = errors.New("invalid score record")
)

// DefaultName replaces names that sanitize to nothing
const DefaultName = "Anonymous"

// SanitizeName trims, drops control and markup characters and caps the length
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		if unicode.IsControl(r) || strings.ContainsRune("<>&\"'`", r) {
			continue
		}
		b.WriteRune(r)
	}
	out := strings.TrimSpace(b.String())
	if runes := []rune(out); len(runes) > parameter.HighScoreNameMax {
		out = strings.TrimSpace(string(runes[:parameter.HighScoreNameMax]))
	}
	if out == "" {
		return DefaultName
	}
	return out
}

// Validate rejects records no real run can produce
func Validate(s service.Score) error {
	switch {
	case s.Score < 0 || s.Score > parameter.HighScoreMaxScore,
		s.Level < 1 || s.Level > parameter.HighScoreMaxLevel,
		s.Kills < 0 || s.Kills > parameter.HighScoreMaxKills,
		s.Survival < 0 || s.Survival > parameter.HighScoreMaxSeconds,
		s.Bosses < 0 || s.Bosses > parameter.HighScoreMaxBosses:
		return ErrInvalidScore
	}
	return nil
}

// less orders by score, then level, then the earlier record
func less(a, b service.Score) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Level != b.Level {
		return a.Level > b.Level
	}
	return a.Recorded.Before(b.Recorded)
}

// Qualifies reports whether score would enter a table of entries
// Ties with the last entry do not qualify on a full table
func Qualifies(entries []service.Score, score int) bool {
	if score <= 0 {
		return false
	}
	if len(entries) < parameter.HighScoreEntries {
		return true
	}
	return score > entries[len(entries)-1].Score
}

// Insert places s in rank order and truncates to the table size
// Returns the 1-based rank and the new table; ErrNotQualified leaves entries untouched
func Insert(entries []service.Score, s service.Score) (int, []service.Score, error) {
	if !Qualifies(entries, s.Score) {
		return 0, entries, ErrNotQualified
	}
	out := slices.Clone(entries)
	i := 0
	for i < len(out) && less(out[i], s) {
		i++
	}
	out = slices.Insert(out, i, s)
	if len(out) > parameter.HighScoreEntries {
		out = out[:parameter.HighScoreEntries]
	}
	return i + 1, out, nil
}

// Normalize sorts and truncates a table read from storage
func Normalize(entries []service.Score) []service.Score {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b service.Score) int {
		switch {
		case less(a, b):
			return -1
		case less(b, a):
			return 1
		}
		return 0
	})
	if len(out) > parameter.HighScoreEntries {
		out = out[:parameter.HighScoreEntries]
	}
	return out
}
