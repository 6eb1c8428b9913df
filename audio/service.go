package audio

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/oncoarena/core"
	"github.com/lixenwraith/oncoarena/event"
	"github.com/lixenwraith/oncoarena/parameter"
)

// backend is the output the service drives; SoundManager in production
type backend interface {
	Initialize() error
	Cleanup()
	PlayCue(Cue)
	SetMusicPaused(bool)
	SetVariation(int)
}

type commandKind int

const (
	cmdCue commandKind = iota
	cmdMusicPause
	cmdMusicResume
	cmdVariation
)

type command struct {
	kind commandKind
	cue  Cue
	n    int
}

// AudioService turns simulation events into sound
// Observe never blocks the tick: commands go through a bounded queue to a player goroutine
// Handles graceful degradation when no audio device is available
type AudioService struct {
	config  *AudioConfig
	backend backend

	queue chan command
	stop  chan struct{}
	wg    sync.WaitGroup

	last [cueCount]time.Time
	now  func() time.Time

	disabled atomic.Bool
	muted    atomic.Bool
	running  atomic.Bool
	dropped  atomic.Int64
	stopOnce sync.Once
}

// NewService creates a new audio service
func NewService() *AudioService {
	return &AudioService{now: time.Now}
}

// Name implements service.Service
func (s *AudioService) Name() string {
	return "audio"
}

// Dependencies implements service.Service
func (s *AudioService) Dependencies() []string {
	return nil
}

// Init implements service.Service
// args[0]: bool - initial mute state (true = muted)
// args[1]: *AudioConfig - overrides the environment config
func (s *AudioService) Init(args ...any) error {
	cfg := LoadAudioConfig()
	if len(args) > 1 {
		if c, ok := args[1].(*AudioConfig); ok && c != nil {
			cfg = c
		}
	}
	if len(args) > 0 {
		if muted, ok := args[0].(bool); ok && muted {
			cfg.Enabled = false
		}
	}
	s.config = cfg

	if !cfg.Enabled {
		s.disabled.Store(true)
		return nil
	}
	if s.backend == nil {
		s.backend = NewSoundManager(cfg)
	}
	s.queue = make(chan command, parameter.AudioQueueSize)
	s.stop = make(chan struct{})
	return nil
}

// Start implements service.Service
// Opens the device; sets disabled on failure (no error returned)
func (s *AudioService) Start() error {
	if s.disabled.Load() || s.backend == nil {
		return nil
	}
	if err := s.backend.Initialize(); err != nil {
		log.Printf("[audio] no output device, running silent: %v", err)
		s.disabled.Store(true)
		return nil
	}

	s.running.Store(true)
	s.wg.Add(1)
	core.Go(s.loop)
	return nil
}

// Stop implements service.Service
func (s *AudioService) Stop() error {
	if !s.running.Load() {
		return nil
	}
	s.stopOnce.Do(func() {
		close(s.stop)
		s.wg.Wait()
		s.backend.Cleanup()
		s.running.Store(false)
	})
	return nil
}

// Observe implements service.Observer
func (s *AudioService) Observe(ev event.GameEvent) {
	if !s.running.Load() || s.muted.Load() {
		return
	}

	switch ev.Type {
	case event.EventGameReset:
		s.send(command{kind: cmdVariation, n: 0})
		s.send(command{kind: cmdMusicResume})
		return
	case event.EventPauseChanged:
		if p, ok := ev.Payload.(*event.PausePayload); ok {
			if p.Paused {
				s.send(command{kind: cmdMusicPause})
			} else {
				s.send(command{kind: cmdMusicResume})
			}
		}
		return
	case event.EventMusicVariation:
		if p, ok := ev.Payload.(*event.LevelUpPayload); ok {
			s.send(command{kind: cmdVariation, n: p.Level / parameter.MusicVariationEvery})
		}
		return
	}

	if cue, ok := CueFor(ev); ok {
		s.send(command{kind: cmdCue, cue: cue})
	}
}

// send enqueues without blocking; a full queue drops the command
func (s *AudioService) send(cmd command) {
	select {
	case s.queue <- cmd:
	default:
		s.dropped.Add(1)
	}
}

func (s *AudioService) loop() {
	defer s.wg.Done()
	for {
		select {
		case <-s.stop:
			return
		case cmd := <-s.queue:
			s.execute(cmd)
		}
	}
}

func (s *AudioService) execute(cmd command) {
	switch cmd.kind {
	case cmdCue:
		// Volleys and hits arrive in bursts; one voice per window is enough
		now := s.now()
		if now.Sub(s.last[cmd.cue]) < parameter.AudioCueMinGap {
			return
		}
		s.last[cmd.cue] = now
		s.backend.PlayCue(cmd.cue)
	case cmdMusicPause:
		s.backend.SetMusicPaused(true)
	case cmdMusicResume:
		s.backend.SetMusicPaused(false)
	case cmdVariation:
		s.backend.SetVariation(cmd.n)
	}
}

// ToggleMute flips the mute state and returns the new state
// Muting pauses the music; unmuting resumes it
func (s *AudioService) ToggleMute() bool {
	muted := !s.muted.Load()
	s.muted.Store(muted)
	if s.running.Load() {
		kind := cmdMusicResume
		if muted {
			kind = cmdMusicPause
		}
		s.send(command{kind: kind})
	}
	return muted
}

// IsMuted reports the mute state
func (s *AudioService) IsMuted() bool {
	return s.muted.Load()
}

// IsDisabled returns true if audio is unavailable or turned off
func (s *AudioService) IsDisabled() bool {
	return s.disabled.Load()
}

// Dropped is the number of commands lost to a full queue
func (s *AudioService) Dropped() int64 {
	return s.dropped.Load()
}
