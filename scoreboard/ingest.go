package scoreboard

import (
	"log"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lixenwraith/oncoarena/analytics"
	"github.com/vmihailenco/msgpack/v5"
)

const maxBatchBytes = 1 << 20

// Ledger aggregates analytics records by name and session
type Ledger struct {
	mu       sync.Mutex
	counts   map[string]int64
	sessions map[string]time.Time
	batches  int64
	rejected int64
}

// NewLedger creates an empty ledger
func NewLedger() *Ledger {
	return &Ledger{
		counts:   make(map[string]int64),
		sessions: make(map[string]time.Time),
	}
}

// Accept records one decoded batch
func (l *Ledger) Accept(b analytics.Batch) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.batches++
	l.sessions[b.Session] = time.Now()
	for _, r := range b.Records {
		l.counts[r.Name]++
	}
}

func (l *Ledger) reject() {
	l.mu.Lock()
	l.rejected++
	l.mu.Unlock()
}

// Summary is the ledger state served at /analytics/summary
type Summary struct {
	Sessions int              `json:"sessions"`
	Batches  int64            `json:"batches"`
	Rejected int64            `json:"rejected"`
	Records  map[string]int64 `json:"records"`
	Names    []string         `json:"names"`
}

// Summary returns a copy of the current totals
func (l *Ledger) Summary() Summary {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := Summary{
		Sessions: len(l.sessions),
		Batches:  l.batches,
		Rejected: l.rejected,
		Records:  make(map[string]int64, len(l.counts)),
	}
	for k, v := range l.counts {
		s.Records[k] = v
		s.Names = append(s.Names, k)
	}
	sort.Strings(s.Names)
	return s
}

// handleIngest reads msgpack batches until the client closes
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[scoreboard] upgrade: %v", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxBatchBytes)

	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[scoreboard] analytics read: %v", err)
			}
			return
		}
		if kind != websocket.BinaryMessage {
			s.ledger.reject()
			continue
		}
		var b analytics.Batch
		if err := msgpack.Unmarshal(data, &b); err != nil || b.Session == "" {
			s.ledger.reject()
			continue
		}
		s.ledger.Accept(b)
	}
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ledger.Summary())
}
