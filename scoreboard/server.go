// Package scoreboard is the HTTP backend for remote high scores and
// analytics ingest. Score submissions must carry a token signed with the
// shared secret; the table itself is a highscore.LocalStore on disk
package scoreboard

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/lixenwraith/oncoarena/highscore"
	"github.com/lixenwraith/oncoarena/service"
)

// ErrUnauthorized is returned for a missing or invalid submission token
var ErrUnauthorized = errors.New("unauthorized")

type ctxKey int

const scoreKey ctxKey = iota

// Server routes score and analytics requests
type Server struct {
	secret   []byte
	store    service.ScoreStore
	ledger   *Ledger
	upgrader websocket.Upgrader
	router   *mux.Router
}

// NewServer wires the routes over store
// secret verifies submissions; ledger may be nil to refuse analytics
func NewServer(secret string, store service.ScoreStore, ledger *Ledger) *Server {
	s := &Server{
		secret: []byte(secret),
		store:  store,
		ledger: ledger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		router: mux.NewRouter(),
	}

	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/scores", s.handleTop).Methods(http.MethodGet)
	s.router.HandleFunc("/scores/{rank:[0-9]+}", s.handleRank).Methods(http.MethodGet)
	s.router.Handle("/scores", s.RequireScoreToken(http.HandlerFunc(s.handleSubmit))).Methods(http.MethodPost)
	if ledger != nil {
		s.router.HandleFunc("/analytics", s.handleIngest)
		s.router.HandleFunc("/analytics/summary", s.handleSummary).Methods(http.MethodGet)
	}
	s.router.Use(logRequests)
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe runs an http.Server on addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[scoreboard] listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// ParseToken verifies a bearer token and returns the score it carries
func (s *Server) ParseToken(raw string) (service.Score, error) {
	if raw == "" {
		return service.Score{}, ErrUnauthorized
	}
	sc, err := highscore.ParseScore(s.secret, raw)
	if err != nil {
		return service.Score{}, errors.Join(ErrUnauthorized, err)
	}
	return sc, nil
}

// RequireScoreToken rejects requests without a valid submission token
// The verified score is passed on through the request context
func (s *Server) RequireScoreToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var tok string
		if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
			tok = strings.TrimPrefix(h, "Bearer ")
		}
		sc, err := s.ParseToken(tok)
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), scoreKey, sc)))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.Top(r.Context())
	if err != nil {
		http.Error(w, "store unavailable", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []service.Score{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	rank, _ := strconv.Atoi(mux.Vars(r)["rank"])
	entries, err := s.store.Top(r.Context())
	if err != nil {
		http.Error(w, "store unavailable", http.StatusInternalServerError)
		return
	}
	if rank < 1 || rank > len(entries) {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, entries[rank-1])
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	sc, _ := r.Context().Value(scoreKey).(service.Score)
	// Clients cannot backdate entries
	sc.Recorded = time.Now().UTC()

	rank, err := s.store.Submit(r.Context(), sc)
	switch {
	case errors.Is(err, highscore.ErrInvalidScore):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, highscore.ErrNotQualified):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		log.Printf("[scoreboard] submit: %v", err)
		http.Error(w, "store unavailable", http.StatusInternalServerError)
		return
	}
	log.Printf("[scoreboard] %s ranked #%d with %d", sc.Name, rank, sc.Score)
	writeJSON(w, http.StatusCreated, highscore.SubmitResponse{Rank: rank})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[scoreboard] %s %s %v", r.Method, r.URL.Path, time.Since(start).Round(time.Millisecond))
	})
}
