package audio

import (
	"encoding/json"
	"log"
	"os"
	"strconv"

	"github.com/lixenwraith/oncoarena/parameter"
)

// AudioConfig holds output and mix settings
type AudioConfig struct {
	Enabled       bool
	MasterVolume  float64
	MusicVolume   float64
	EffectVolumes [cueCount]float64
	SampleRate    int
}

// DefaultAudioConfig returns the stock mix
func DefaultAudioConfig() *AudioConfig {
	cfg := &AudioConfig{
		Enabled:      true,
		MasterVolume: 0.5,
		MusicVolume:  0.35,
		SampleRate:   parameter.AudioSampleRate,
	}
	for i := range cfg.EffectVolumes {
		cfg.EffectVolumes[i] = 0.6
	}
	// Frequent cues sit lower in the mix
	cfg.EffectVolumes[CueShot] = 0.25
	cfg.EffectVolumes[CueEnemyHit] = 0.2
	cfg.EffectVolumes[CuePickup] = 0.3
	cfg.EffectVolumes[CueBossEnter] = 0.9
	cfg.EffectVolumes[CueGameOver] = 0.9
	return cfg
}

// LoadAudioConfig applies environment overrides to the defaults
//
//	ONCOARENA_AUDIO_ENABLED  bool
//	ONCOARENA_MASTER_VOLUME  0-100
//	ONCOARENA_MUSIC_VOLUME   0-100
//	ONCOARENA_SFX_VOLUMES    JSON object of cue name to 0.0-1.0
func LoadAudioConfig() *AudioConfig {
	cfg := DefaultAudioConfig()

	if enabled := os.Getenv("ONCOARENA_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	if v, ok := percentEnv("ONCOARENA_MASTER_VOLUME"); ok {
		cfg.MasterVolume = v
	}
	if v, ok := percentEnv("ONCOARENA_MUSIC_VOLUME"); ok {
		cfg.MusicVolume = v
	}

	if effectVols := os.Getenv("ONCOARENA_SFX_VOLUMES"); effectVols != "" {
		var volumes map[string]float64
		if err := json.Unmarshal([]byte(effectVols), &volumes); err != nil {
			log.Printf("[audio] ignoring ONCOARENA_SFX_VOLUMES: %v", err)
		}
		for name, v := range volumes {
			if cue, ok := ParseCue(name); ok {
				cfg.EffectVolumes[cue] = clamp01(v)
			}
		}
	}

	return cfg
}

// percentEnv reads a 0-100 integer as a 0.0-1.0 volume
func percentEnv(key string) (float64, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return clamp01(float64(val) / 100.0), true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
