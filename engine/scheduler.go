package engine

import (
	"container/heap"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/oncoarena/status"
)

// task is one deferred action keyed by game time
type task struct {
	at    time.Duration
	seq   uint64
	valid func() bool
	run   func()
}

type taskHeap []*task

func (h taskHeap) Len() int { return len(h) }
func (h taskHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}
func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *taskHeap) Push(x any)   { *h = append(*h, x.(*task)) }
func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}

// Scheduler runs deferred callbacks at a target game time
// Every callback carries a validity predicate evaluated just before it runs;
// a false predicate drops the callback silently
// Game time only advances through Advance, so paused time never elapses here
type Scheduler struct {
	now   time.Duration
	seq   uint64
	tasks taskHeap

	statPending *atomic.Int64
	statRun     *atomic.Int64
	statSkipped *atomic.Int64
}

func NewScheduler(reg *status.Registry) *Scheduler {
	return &Scheduler{
		statPending: reg.Ints.Get("sched.pending"),
		statRun:     reg.Ints.Get("sched.run"),
		statSkipped: reg.Ints.Get("sched.skipped"),
	}
}

// Now is the game time of the last Advance, or of the running callback
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules run at Now()+delay; a nil valid always runs
func (s *Scheduler) After(delay time.Duration, valid func() bool, run func()) {
	if delay < 0 {
		delay = 0
	}
	s.At(s.now+delay, valid, run)
}

// At schedules run at absolute game time t
func (s *Scheduler) At(t time.Duration, valid func() bool, run func()) {
	s.seq++
	heap.Push(&s.tasks, &task{at: t, seq: s.seq, valid: valid, run: run})
	s.statPending.Store(int64(len(s.tasks)))
}

// Advance runs every task due at or before now, in (time, insertion) order
// Tasks scheduled by a running callback run in the same call when already due
// halt is polled between tasks; when it returns true the remaining tasks stay queued
func (s *Scheduler) Advance(now time.Duration, halt func() bool) int {
	ran := 0
	for len(s.tasks) > 0 && s.tasks[0].at <= now {
		if halt != nil && halt() {
			break
		}
		t := heap.Pop(&s.tasks).(*task)
		// Chained callbacks keep exact spacing regardless of frame granularity
		s.now = t.at
		if t.valid != nil && !t.valid() {
			s.statSkipped.Add(1)
			continue
		}
		t.run()
		ran++
		s.statRun.Add(1)
	}
	if now > s.now {
		s.now = now
	}
	s.statPending.Store(int64(len(s.tasks)))
	return ran
}

// Len returns the number of queued tasks
func (s *Scheduler) Len() int {
	return len(s.tasks)
}

// Reset drops every task and rewinds the clock
func (s *Scheduler) Reset() {
	s.tasks = s.tasks[:0]
	s.now = 0
	s.seq = 0
	s.statPending.Store(0)
}
