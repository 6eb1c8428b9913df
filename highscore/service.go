package highscore

import (
	"context"
	"log"
	"sync"

	"github.com/lixenwraith/oncoarena/remote"
	"github.com/lixenwraith/oncoarena/service"
)

// Service exposes the configured score store to the hub
// Remote when a scoreboard and secret are configured, local otherwise
type Service struct {
	mu     sync.RWMutex
	path   string
	remote remote.Config
	store  service.ScoreStore
	local  *LocalStore
}

// NewService creates an unconfigured score service
func NewService() *Service {
	return &Service{}
}

// Name implements service.Service
func (s *Service) Name() string {
	return "scores"
}

// Dependencies implements service.Service
func (s *Service) Dependencies() []string {
	return nil
}

// Init implements service.Service
// args[0]: string - local table path ("" keeps scores in memory)
// args[1]: remote.Config - scoreboard endpoint and secret
func (s *Service) Init(args ...any) error {
	if len(args) > 0 {
		if p, ok := args[0].(string); ok {
			s.path = p
		}
	}
	if len(args) > 1 {
		if c, ok := args[1].(remote.Config); ok {
			s.remote = c
		}
	}
	return nil
}

// Start implements service.Service
// An unreadable local file degrades to an in-memory table
func (s *Service) Start() error {
	local, err := OpenLocal(s.path)
	if err != nil {
		log.Printf("[highscore] %v, keeping scores in memory", err)
		local, _ = OpenLocal("")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.local = local
	s.store = local
	if s.remote.Scoreboard() {
		s.store = NewRemote(s.remote.ScoreboardURL, s.remote.ScoreSecret, nil, local)
		log.Printf("[highscore] submitting to %s", s.remote.ScoreboardURL)
	}
	return nil
}

// Stop implements service.Service
func (s *Service) Stop() error {
	return nil
}

func (s *Service) current() service.ScoreStore {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.store == nil {
		return emptyStore{}
	}
	return s.store
}

// Top implements service.ScoreStore
func (s *Service) Top(ctx context.Context) ([]service.Score, error) {
	return s.current().Top(ctx)
}

// Qualifies implements service.ScoreStore
func (s *Service) Qualifies(ctx context.Context, score int) (bool, error) {
	return s.current().Qualifies(ctx, score)
}

// Submit implements service.ScoreStore
func (s *Service) Submit(ctx context.Context, sc service.Score) (int, error) {
	return s.current().Submit(ctx, sc)
}

// emptyStore answers before Start
type emptyStore struct{}

func (emptyStore) Top(context.Context) ([]service.Score, error) { return nil, nil }
func (emptyStore) Qualifies(context.Context, int) (bool, error) { return false, nil }
func (emptyStore) Submit(context.Context, service.Score) (int, error) {
	return 0, ErrNotQualified
}
