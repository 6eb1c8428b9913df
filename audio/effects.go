package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves, optionally sweeping linearly to endFreq
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator gliding from one frequency to another over its duration
func NewSweep(from, to float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     from,
		endFreq:  to,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, false
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		freq := o.freq
		if o.endFreq != o.freq && o.duration > 0 {
			freq += (o.endFreq - o.freq) * float64(o.position) / float64(o.duration)
		}
		o.phase += freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/sustain/release envelope
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(0, total-att-rel)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, false
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = max(0, float64(remaining)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s in a linear gain
// math.Log2(0) is -Inf, so zero volume is expressed as silence
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// tone is one enveloped oscillator inside a cue
type tone struct {
	from, to float64
	wave     WaveType
	dur      time.Duration
	attack   time.Duration
	release  time.Duration
	gain     float64
}

// recipe is a cue's tones, either layered or played in sequence
type recipe struct {
	tones []tone
	seq   bool
}

var recipes = [cueCount]recipe{
	CueShot: {tones: []tone{
		{from: 1200, to: 500, wave: WaveSquare, dur: 40 * time.Millisecond, attack: 2 * time.Millisecond, release: 25 * time.Millisecond, gain: 0.5},
	}},
	CueEnemyHit: {tones: []tone{
		{from: 300, to: 180, wave: WaveSaw, dur: 35 * time.Millisecond, attack: time.Millisecond, release: 20 * time.Millisecond, gain: 0.6},
	}},
	CueEnemyDeath: {tones: []tone{
		{wave: WaveNoise, dur: 120 * time.Millisecond, attack: 2 * time.Millisecond, release: 90 * time.Millisecond, gain: 0.5},
		{from: 220, to: 60, wave: WaveSine, dur: 120 * time.Millisecond, attack: 2 * time.Millisecond, release: 80 * time.Millisecond, gain: 0.6},
	}},
	CuePlayerHurt: {tones: []tone{
		{from: 100, to: 100, wave: WaveSaw, dur: 180 * time.Millisecond, attack: 5 * time.Millisecond, release: 100 * time.Millisecond, gain: 0.8},
	}},
	CueShieldBreak: {tones: []tone{
		{from: 900, to: 150, wave: WaveSquare, dur: 250 * time.Millisecond, attack: 2 * time.Millisecond, release: 150 * time.Millisecond, gain: 0.5},
		{wave: WaveNoise, dur: 200 * time.Millisecond, attack: 2 * time.Millisecond, release: 150 * time.Millisecond, gain: 0.3},
	}},
	CueShieldRestore: {seq: true, tones: []tone{
		{from: 440, to: 440, wave: WaveSine, dur: 80 * time.Millisecond, attack: 5 * time.Millisecond, release: 40 * time.Millisecond, gain: 0.7},
		{from: 660, to: 660, wave: WaveSine, dur: 120 * time.Millisecond, attack: 5 * time.Millisecond, release: 80 * time.Millisecond, gain: 0.7},
	}},
	CueExplosion: {tones: []tone{
		{wave: WaveNoise, dur: 300 * time.Millisecond, attack: 2 * time.Millisecond, release: 250 * time.Millisecond, gain: 0.7},
		{from: 90, to: 40, wave: WaveSine, dur: 300 * time.Millisecond, attack: 2 * time.Millisecond, release: 200 * time.Millisecond, gain: 0.8},
	}},
	CueZap: {tones: []tone{
		{from: 2000, to: 800, wave: WaveSaw, dur: 90 * time.Millisecond, attack: time.Millisecond, release: 60 * time.Millisecond, gain: 0.4},
	}},
	CuePickup: {tones: []tone{
		{from: 880, to: 1320, wave: WaveSine, dur: 60 * time.Millisecond, attack: 2 * time.Millisecond, release: 40 * time.Millisecond, gain: 0.6},
	}},
	CueHeal: {seq: true, tones: []tone{
		{from: 523.25, to: 523.25, wave: WaveSine, dur: 90 * time.Millisecond, attack: 5 * time.Millisecond, release: 40 * time.Millisecond, gain: 0.7},
		{from: 783.99, to: 783.99, wave: WaveSine, dur: 150 * time.Millisecond, attack: 5 * time.Millisecond, release: 100 * time.Millisecond, gain: 0.7},
	}},
	CueLevelUp: {seq: true, tones: []tone{
		{from: 523.25, to: 523.25, wave: WaveSquare, dur: 90 * time.Millisecond, attack: 5 * time.Millisecond, release: 30 * time.Millisecond, gain: 0.4},
		{from: 659.25, to: 659.25, wave: WaveSquare, dur: 90 * time.Millisecond, attack: 5 * time.Millisecond, release: 30 * time.Millisecond, gain: 0.4},
		{from: 783.99, to: 783.99, wave: WaveSquare, dur: 90 * time.Millisecond, attack: 5 * time.Millisecond, release: 30 * time.Millisecond, gain: 0.4},
		{from: 1046.5, to: 1046.5, wave: WaveSquare, dur: 220 * time.Millisecond, attack: 5 * time.Millisecond, release: 150 * time.Millisecond, gain: 0.4},
	}},
	CueSelect: {tones: []tone{
		{from: 987.77, to: 987.77, wave: WaveSquare, dur: 70 * time.Millisecond, attack: 2 * time.Millisecond, release: 40 * time.Millisecond, gain: 0.4},
	}},
	CueBossEnter: {tones: []tone{
		{from: 55, to: 110, wave: WaveSaw, dur: 1500 * time.Millisecond, attack: 300 * time.Millisecond, release: 600 * time.Millisecond, gain: 0.7},
		{from: 82.41, to: 164.81, wave: WaveSaw, dur: 1500 * time.Millisecond, attack: 300 * time.Millisecond, release: 600 * time.Millisecond, gain: 0.4},
	}},
	CueBossSpecial: {tones: []tone{
		{from: 200, to: 600, wave: WaveSquare, dur: 400 * time.Millisecond, attack: 20 * time.Millisecond, release: 200 * time.Millisecond, gain: 0.4},
	}},
	CueBossDefeat: {seq: true, tones: []tone{
		{wave: WaveNoise, dur: 500 * time.Millisecond, attack: 2 * time.Millisecond, release: 400 * time.Millisecond, gain: 0.7},
		{from: 392, to: 392, wave: WaveSine, dur: 150 * time.Millisecond, attack: 5 * time.Millisecond, release: 50 * time.Millisecond, gain: 0.6},
		{from: 523.25, to: 523.25, wave: WaveSine, dur: 400 * time.Millisecond, attack: 5 * time.Millisecond, release: 300 * time.Millisecond, gain: 0.6},
	}},
	CueGameOver: {seq: true, tones: []tone{
		{from: 392, to: 392, wave: WaveSaw, dur: 300 * time.Millisecond, attack: 10 * time.Millisecond, release: 100 * time.Millisecond, gain: 0.5},
		{from: 311.13, to: 311.13, wave: WaveSaw, dur: 300 * time.Millisecond, attack: 10 * time.Millisecond, release: 100 * time.Millisecond, gain: 0.5},
		{from: 196, to: 98, wave: WaveSaw, dur: 900 * time.Millisecond, attack: 10 * time.Millisecond, release: 700 * time.Millisecond, gain: 0.5},
	}},
}

// CueStreamer renders a cue at the configured volume; nil for an unknown cue
func CueStreamer(c Cue, cfg *AudioConfig) beep.Streamer {
	if c < 0 || c >= cueCount {
		return nil
	}
	rec := recipes[c]
	if len(rec.tones) == 0 {
		return nil
	}
	rate := beep.SampleRate(cfg.SampleRate)

	parts := make([]beep.Streamer, len(rec.tones))
	for i, t := range rec.tones {
		osc := NewSweep(t.from, t.to, t.dur, t.wave, rate)
		parts[i] = newVolume(NewEnvelope(osc, t.dur, t.attack, t.release, rate), t.gain)
	}

	var out beep.Streamer
	if rec.seq {
		out = beep.Seq(parts...)
	} else {
		out = beep.Mix(parts...)
	}
	return newVolume(out, cfg.EffectVolumes[c]*cfg.MasterVolume)
}

// CueLength is the playback length of a cue
func CueLength(c Cue) time.Duration {
	if c < 0 || c >= cueCount {
		return 0
	}
	var total time.Duration
	for _, t := range recipes[c].tones {
		if recipes[c].seq {
			total += t.dur
		} else {
			total = max(total, t.dur)
		}
	}
	return total
}
