package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/lixenwraith/oncoarena/parameter"
)

// musicPatterns are bass roots per variation; the run cycles through them as levels climb
var musicPatterns = [][]float64{
	{55.00, 55.00, 65.41, 49.00},
	{61.74, 61.74, 73.42, 55.00},
	{49.00, 58.27, 65.41, 43.65},
	{65.41, 55.00, 49.00, 58.27},
}

// MusicGenerator is the ambient loop: a kick on every beat over a bass line
// Variation switches the bass pattern at the next bar
type MusicGenerator struct {
	sr      beep.SampleRate
	pos     int
	beat    int // samples per beat
	pattern int
	next    int
}

// NewMusicGenerator creates the ambient loop at 100 BPM
func NewMusicGenerator(sr beep.SampleRate) *MusicGenerator {
	return &MusicGenerator{
		sr:   sr,
		beat: sr.N(600 * time.Millisecond),
	}
}

// SetVariation queues a pattern change; applied when the current bar ends
// Callers hold the speaker lock while the generator is playing
func (g *MusicGenerator) SetVariation(n int) {
	g.next = ((n % len(musicPatterns)) + len(musicPatterns)) % len(musicPatterns)
}

// Pattern is the active variation
func (g *MusicGenerator) Pattern() int {
	return g.pattern
}

func (g *MusicGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	bar := g.beat * 4
	kickLen := g.sr.N(100 * time.Millisecond)
	for i := range samples {
		if g.pos%bar == 0 {
			g.pattern = g.next
		}
		beatPos := g.pos % g.beat
		step := (g.pos / g.beat) % 4
		t := float64(beatPos) / float64(g.sr)

		kick := 0.0
		if beatPos < kickLen {
			kickEnv := 1.0 - float64(beatPos)/float64(kickLen)
			kickFreq := 60 * (1 + 2*kickEnv)
			kick = 0.4 * kickEnv * math.Sin(2*math.Pi*kickFreq*t)
		}

		root := musicPatterns[g.pattern][step]
		bassEnv := math.Exp(-t * 2)
		bass := 0.15 * bassEnv * math.Sin(2*math.Pi*root*float64(g.pos)/float64(g.sr))

		sample := kick + bass
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *MusicGenerator) Err() error {
	return nil
}

// SoundManager owns the speaker: cue playback and the music loop
type SoundManager struct {
	mu          sync.Mutex
	cfg         *AudioConfig
	music       *MusicGenerator
	musicCtrl   *beep.Ctrl
	initialized bool
}

// NewSoundManager creates a manager for cfg; nothing plays until Initialize
func NewSoundManager(cfg *AudioConfig) *SoundManager {
	return &SoundManager{cfg: cfg}
}

// Initialize opens the speaker and starts the music loop paused
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferWindow)); err != nil {
		return err
	}

	sm.music = NewMusicGenerator(rate)
	sm.musicCtrl = &beep.Ctrl{
		Streamer: newVolume(sm.music, sm.cfg.MusicVolume*sm.cfg.MasterVolume),
		Paused:   true,
	}
	speaker.Play(sm.musicCtrl)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	sm.initialized = false
}

// PlayCue starts a one-shot effect
func (sm *SoundManager) PlayCue(c Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	if s := CueStreamer(c, sm.cfg); s != nil {
		speaker.Play(s)
	}
}

// SetMusicPaused pauses or resumes the loop in place
func (sm *SoundManager) SetMusicPaused(paused bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.musicCtrl.Paused = paused
	speaker.Unlock()
}

// SetVariation switches the music pattern at the next bar
func (sm *SoundManager) SetVariation(n int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.music.SetVariation(n)
	speaker.Unlock()
}
