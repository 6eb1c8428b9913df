package highscore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lixenwraith/oncoarena/service"
)

// LocalStore keeps the table in a JSON file
// An empty path keeps the table in memory only
type LocalStore struct {
	mu      sync.Mutex
	path    string
	entries []service.Score
	now     func() time.Time
}

// OpenLocal reads path if it exists; a corrupt file starts an empty table
func OpenLocal(path string) (*LocalStore, error) {
	s := &LocalStore{path: path, now: time.Now}
	if path == "" {
		return s, nil
	}
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("read scores: %w", err)
	}

	var entries []service.Score
	if err := json.Unmarshal(b, &entries); err != nil {
		// Keep the damaged file for inspection rather than overwriting it on the next save
		_ = os.Rename(path, path+".corrupt")
		return s, nil
	}
	valid := entries[:0]
	for _, e := range entries {
		if Validate(e) == nil {
			valid = append(valid, e)
		}
	}
	s.entries = Normalize(valid)
	return s, nil
}

// Top implements service.ScoreStore
func (s *LocalStore) Top(context.Context) ([]service.Score, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]service.Score, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// Qualifies implements service.ScoreStore
func (s *LocalStore) Qualifies(_ context.Context, score int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Qualifies(s.entries, score), nil
}

// Submit implements service.ScoreStore
// The name is sanitized and missing id and timestamp are filled in
func (s *LocalStore) Submit(_ context.Context, sc service.Score) (int, error) {
	if err := Validate(sc); err != nil {
		return 0, err
	}
	sc.Name = SanitizeName(sc.Name)
	if sc.ID == "" {
		sc.ID = uuid.NewString()
	}
	if sc.Recorded.IsZero() {
		sc.Recorded = s.now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rank, entries, err := Insert(s.entries, sc)
	if err != nil {
		return 0, err
	}
	if err := s.save(entries); err != nil {
		return 0, err
	}
	s.entries = entries
	return rank, nil
}

// save writes through a temp file so a crash never leaves a truncated table
func (s *LocalStore) save(entries []service.Score) error {
	if s.path == "" {
		return nil
	}
	b, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode scores: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create score dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write scores: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace scores: %w", err)
	}
	return nil
}
