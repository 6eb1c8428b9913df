package highscore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lixenwraith/oncoarena/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

// fakeBoard is a minimal scoreboard: verifies tokens and keeps a table in memory
type fakeBoard struct {
	mu    sync.Mutex
	table []service.Score
	gets  atomic.Int32
	posts atomic.Int32
}

func (b *fakeBoard) entries() []service.Score {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]service.Score(nil), b.table...)
}

func (b *fakeBoard) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch r.Method {
	case http.MethodGet:
		b.gets.Add(1)
		json.NewEncoder(w).Encode(b.table)
	case http.MethodPost:
		b.posts.Add(1)
		raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		s, err := ParseScore([]byte(testSecret), raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		rank, table, err := Insert(b.table, s)
		if err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		b.table = table
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(SubmitResponse{Rank: rank})
	}
}

func TestTokenRoundTrip(t *testing.T) {
	now := time.Now()
	in := service.Score{ID: "x", Name: "doc", Score: 1234, Level: 7, BossNames: []string{"Malignant Cell"}}

	raw, err := SignScore([]byte(testSecret), in, now)
	require.NoError(t, err)

	out, err := ParseScore([]byte(testSecret), raw)
	require.NoError(t, err)
	assert.Equal(t, in.Score, out.Score)
	assert.Equal(t, in.BossNames, out.BossNames)

	_, err = ParseScore([]byte("other"), raw)
	assert.ErrorIs(t, err, ErrBadToken, "wrong secret")

	expired, err := SignScore([]byte(testSecret), in, now.Add(-time.Hour))
	require.NoError(t, err)
	_, err = ParseScore([]byte(testSecret), expired)
	assert.ErrorIs(t, err, ErrBadToken, "expired token")

	_, err = SignScore(nil, in, now)
	assert.Error(t, err)
}

func TestRemoteSubmitAndCache(t *testing.T) {
	board := &fakeBoard{}
	srv := httptest.NewServer(board)
	defer srv.Close()

	local, _ := OpenLocal("")
	store := NewRemote(srv.URL, testSecret, srv.Client(), local)
	ctx := context.Background()

	rank, err := store.Submit(ctx, service.Score{Name: "<doc>", Score: 500, Level: 3})
	require.NoError(t, err)
	assert.Equal(t, 1, rank)
	entries := board.entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "doc", entries[0].Name, "name sanitized before signing")

	top, err := store.Top(ctx)
	require.NoError(t, err)
	require.Len(t, top, 1)
	_, err = store.Top(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), board.gets.Load(), "second read served from cache")

	ok, err := store.Qualifies(ctx, 10)
	require.NoError(t, err)
	assert.True(t, ok)

	localTop, _ := local.Top(ctx)
	assert.Empty(t, localTop, "local store untouched while the board is up")
}

func TestRemoteCacheExpires(t *testing.T) {
	board := &fakeBoard{}
	srv := httptest.NewServer(board)
	defer srv.Close()

	local, _ := OpenLocal("")
	store := NewRemote(srv.URL, testSecret, srv.Client(), local)
	clock := time.Now()
	store.now = func() time.Time { return clock }

	store.Top(context.Background())
	clock = clock.Add(29 * time.Second)
	store.Top(context.Background())
	assert.Equal(t, int32(1), board.gets.Load(), "empty table cached too")
	clock = clock.Add(2 * time.Second)
	store.Top(context.Background())
	assert.Equal(t, int32(2), board.gets.Load())
}

func TestRemoteNotQualified(t *testing.T) {
	board := &fakeBoard{}
	for i := 0; i < 10; i++ {
		board.table = append(board.table, service.Score{Name: "p", Score: 1000, Level: 1})
	}
	srv := httptest.NewServer(board)
	defer srv.Close()

	local, _ := OpenLocal("")
	store := NewRemote(srv.URL, testSecret, srv.Client(), local)

	_, err := store.Submit(context.Background(), service.Score{Name: "low", Score: 5, Level: 1})
	assert.ErrorIs(t, err, ErrNotQualified)
	localTop, _ := local.Top(context.Background())
	assert.Empty(t, localTop, "refused score not stored locally")
}

func TestRemoteWrongSecretRejected(t *testing.T) {
	board := &fakeBoard{}
	srv := httptest.NewServer(board)
	defer srv.Close()

	local, _ := OpenLocal("")
	store := NewRemote(srv.URL, "wrong", srv.Client(), local)

	_, err := store.Submit(context.Background(), service.Score{Name: "doc", Score: 5, Level: 1})
	assert.ErrorIs(t, err, ErrRejected)
}

func TestRemoteFallsBackToLocal(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	local, _ := OpenLocal("")
	store := NewRemote(url, testSecret, nil, local)
	ctx := context.Background()

	rank, err := store.Submit(ctx, service.Score{Name: "doc", Score: 50, Level: 2})
	require.NoError(t, err)
	assert.Equal(t, 1, rank)

	top, err := store.Top(ctx)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "doc", top[0].Name)
}

func TestServiceSelectsStore(t *testing.T) {
	ctx := context.Background()

	svc := NewService()
	_, err := svc.Submit(ctx, service.Score{Name: "x", Score: 1, Level: 1})
	assert.ErrorIs(t, err, ErrNotQualified, "not started")

	require.NoError(t, svc.Init(""))
	require.NoError(t, svc.Start())
	_, isLocal := svc.current().(*LocalStore)
	assert.True(t, isLocal)

	rank, err := svc.Submit(ctx, service.Score{Name: "x", Score: 1, Level: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, rank)
	assert.NoError(t, svc.Stop())
}
