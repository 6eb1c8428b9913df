package highscore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lixenwraith/oncoarena/parameter"
	"github.com/lixenwraith/oncoarena/service"
)

// ErrRejected is returned when the scoreboard refuses a submission outright
var ErrRejected = errors.New("scoreboard rejected submission")

// SubmitResponse is the scoreboard reply to an accepted submission
type SubmitResponse struct {
	Rank int `json:"rank"`
}

// RemoteStore talks to the scoreboard server
// Reads are cached; any transport failure falls back to the local store
type RemoteStore struct {
	base     string
	secret   []byte
	client   *http.Client
	fallback service.ScoreStore

	mu      sync.Mutex
	cache   []service.Score
	fetched time.Time
	now     func() time.Time
}

// NewRemote builds a store against base, e.g. https://scores.example.com
// A nil client uses one with the default request timeout
func NewRemote(base, secret string, client *http.Client, fallback service.ScoreStore) *RemoteStore {
	if client == nil {
		client = &http.Client{Timeout: parameter.HighScoreHTTPTimeout}
	}
	return &RemoteStore{
		base:     base,
		secret:   []byte(secret),
		client:   client,
		fallback: fallback,
		now:      time.Now,
	}
}

// Top implements service.ScoreStore
func (r *RemoteStore) Top(ctx context.Context) ([]service.Score, error) {
	r.mu.Lock()
	if !r.fetched.IsZero() && r.now().Sub(r.fetched) < parameter.HighScoreCacheTTL {
		out := append([]service.Score(nil), r.cache...)
		r.mu.Unlock()
		return out, nil
	}
	r.mu.Unlock()

	entries, err := r.fetch(ctx)
	if err != nil {
		log.Printf("[highscore] fetch failed, using local table: %v", err)
		return r.fallback.Top(ctx)
	}

	r.mu.Lock()
	r.cache = entries
	r.fetched = r.now()
	r.mu.Unlock()
	return append([]service.Score(nil), entries...), nil
}

// Qualifies implements service.ScoreStore
func (r *RemoteStore) Qualifies(ctx context.Context, score int) (bool, error) {
	entries, err := r.Top(ctx)
	if err != nil {
		return false, err
	}
	return Qualifies(entries, score), nil
}

// Submit implements service.ScoreStore
// ErrNotQualified and ErrRejected come back from the server as-is; transport
// failures store the score locally instead
func (r *RemoteStore) Submit(ctx context.Context, s service.Score) (int, error) {
	if err := Validate(s); err != nil {
		return 0, err
	}
	s.Name = SanitizeName(s.Name)
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Recorded.IsZero() {
		s.Recorded = r.now().UTC()
	}

	rank, err := r.post(ctx, s)
	switch {
	case err == nil:
		r.invalidate()
		return rank, nil
	case errors.Is(err, ErrNotQualified), errors.Is(err, ErrRejected):
		return 0, err
	}
	log.Printf("[highscore] submit failed, storing locally: %v", err)
	return r.fallback.Submit(ctx, s)
}

func (r *RemoteStore) invalidate() {
	r.mu.Lock()
	r.cache = nil
	r.fetched = time.Time{}
	r.mu.Unlock()
}

func (r *RemoteStore) fetch(ctx context.Context) ([]service.Score, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.base+"/scores", nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET /scores: %s", resp.Status)
	}

	var entries []service.Score
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode scores: %w", err)
	}
	valid := entries[:0]
	for _, e := range entries {
		if Validate(e) == nil {
			valid = append(valid, e)
		}
	}
	return Normalize(valid), nil
}

func (r *RemoteStore) post(ctx context.Context, s service.Score) (int, error) {
	token, err := SignScore(r.secret, s, r.now())
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.base+"/scores", nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated, http.StatusOK:
	case http.StatusConflict:
		return 0, ErrNotQualified
	case http.StatusBadRequest, http.StatusUnauthorized:
		return 0, fmt.Errorf("%w: %s", ErrRejected, resp.Status)
	default:
		return 0, fmt.Errorf("POST /scores: %s", resp.Status)
	}

	var out SubmitResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&out); err != nil {
		// Accepted but unreadable: the score is stored, only the rank is unknown
		log.Printf("[highscore] decode submit response: %v", err)
	}
	return out.Rank, nil
}
