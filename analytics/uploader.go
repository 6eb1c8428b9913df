package analytics

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/lixenwraith/oncoarena/core"
	"github.com/lixenwraith/oncoarena/event"
	"github.com/lixenwraith/oncoarena/parameter"
	"github.com/lixenwraith/oncoarena/remote"
	"github.com/vmihailenco/msgpack/v5"
)

// ClientName identifies the uploader in every batch
const ClientName = "oncoarena"

// NameRunStart marks a fresh run within the session
const NameRunStart = "run_start"

// Uploader batches records to the analytics websocket
// Track and Observe never block; the connection lives on the upload goroutine only
type Uploader struct {
	url        string
	session    string
	dialer     *websocket.Dialer
	flushEvery time.Duration
	now        func() time.Time

	queue chan Record
	stop  chan struct{}
	done  chan struct{}
	conn  *websocket.Conn

	seq      atomic.Uint64
	sent     atomic.Int64
	dropped  atomic.Int64
	running  atomic.Bool
	stopOnce sync.Once
}

// NewUploader creates an uploader with a fresh session id
func NewUploader() *Uploader {
	return &Uploader{
		session:    uuid.NewString(),
		dialer:     &websocket.Dialer{HandshakeTimeout: parameter.AnalyticsDialTimeout},
		flushEvery: parameter.AnalyticsFlushInterval,
		now:        time.Now,
	}
}

// Name implements service.Service
func (u *Uploader) Name() string {
	return "analytics"
}

// Dependencies implements service.Service
func (u *Uploader) Dependencies() []string {
	return nil
}

// Init implements service.Service
// args[0]: remote.Config - an empty AnalyticsURL leaves the uploader disabled
func (u *Uploader) Init(args ...any) error {
	if len(args) > 0 {
		if c, ok := args[0].(remote.Config); ok {
			u.url = c.AnalyticsURL
		}
	}
	return nil
}

// Start implements service.Service
// The connection is dialed lazily on the first flush
func (u *Uploader) Start() error {
	if u.url == "" || u.running.Load() {
		return nil
	}
	u.queue = make(chan Record, parameter.AnalyticsQueueSize)
	u.stop = make(chan struct{})
	u.done = make(chan struct{})
	u.running.Store(true)
	core.Go(u.loop)

	u.Track(NameSessionStart, map[string]any{"client": ClientName})
	return nil
}

// Stop implements service.Service
// Flushes what is queued, then closes the connection
func (u *Uploader) Stop() error {
	if !u.running.Load() {
		return nil
	}
	u.stopOnce.Do(func() {
		u.running.Store(false)
		close(u.stop)
		<-u.done
		if n := u.dropped.Load(); n > 0 {
			log.Printf("[analytics] session %s: %d sent, %d dropped", u.session, u.sent.Load(), n)
		}
	})
	return nil
}

// Session returns the session id sent with every batch
func (u *Uploader) Session() string {
	return u.session
}

// Sent returns the number of records written to the websocket
func (u *Uploader) Sent() int64 {
	return u.sent.Load()
}

// Dropped returns the number of records lost to a full queue or a failed write
func (u *Uploader) Dropped() int64 {
	return u.dropped.Load()
}

// Track implements service.Tracker
func (u *Uploader) Track(name string, props map[string]any) {
	u.enqueue(Record{Name: name, Props: props})
}

// Observe implements service.Observer
func (u *Uploader) Observe(ev event.GameEvent) {
	if ev.Type == event.EventGameReset {
		u.enqueue(Record{Name: NameRunStart, Frame: ev.Frame})
		return
	}
	if name, props, ok := FromEvent(ev); ok {
		u.enqueue(Record{Name: name, Frame: ev.Frame, Props: props})
	}
}

func (u *Uploader) enqueue(r Record) {
	if !u.running.Load() {
		return
	}
	r.Seq = u.seq.Add(1)
	r.At = u.now().UnixMilli()
	select {
	case u.queue <- r:
	default:
		if u.dropped.Add(1)%100 == 1 {
			log.Printf("[analytics] queue full, dropping %s", r.Name)
		}
	}
}

func (u *Uploader) loop() {
	defer close(u.done)
	ticker := time.NewTicker(u.flushEvery)
	defer ticker.Stop()

	batch := make([]Record, 0, parameter.AnalyticsBatchSize)
	add := func(r Record) {
		batch = append(batch, r)
		if len(batch) >= parameter.AnalyticsBatchSize {
			u.flush(batch)
			batch = batch[:0]
		}
	}

	for {
		select {
		case r := <-u.queue:
			add(r)
		case <-ticker.C:
			if len(batch) > 0 {
				u.flush(batch)
				batch = batch[:0]
			}
		case <-u.stop:
		drain:
			for {
				select {
				case r := <-u.queue:
					add(r)
				default:
					break drain
				}
			}
			if len(batch) > 0 {
				u.flush(batch)
			}
			u.close()
			return
		}
	}
}

// flush writes one batch; on failure the batch is dropped and the connection reset
func (u *Uploader) flush(records []Record) {
	data, err := msgpack.Marshal(&Batch{Session: u.session, Client: ClientName, Records: records})
	if err != nil {
		u.drop(len(records), err)
		return
	}

	if u.conn == nil {
		conn, _, err := u.dialer.Dial(u.url, nil)
		if err != nil {
			u.drop(len(records), err)
			return
		}
		u.conn = conn
	}

	u.conn.SetWriteDeadline(time.Now().Add(parameter.AnalyticsWriteTimeout))
	if err := u.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		u.drop(len(records), err)
		u.conn.Close()
		u.conn = nil
		return
	}
	u.sent.Add(int64(len(records)))
}

func (u *Uploader) drop(n int, err error) {
	u.dropped.Add(int64(n))
	log.Printf("[analytics] dropped %d records: %v", n, err)
}

func (u *Uploader) close() {
	if u.conn == nil {
		return
	}
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session end")
	u.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	u.conn.Close()
	u.conn = nil
}
