package parameter

import "time"

const (
	AudioSampleRate   = 48000
	AudioBufferWindow = 100 * time.Millisecond

	// AudioQueueSize bounds cues waiting for the player goroutine; overflow is dropped
	AudioQueueSize = 64

	// AudioCueMinGap suppresses repeats of the same cue inside the window
	AudioCueMinGap = 40 * time.Millisecond

	// MusicVariationEvery switches the ambient pattern on every Nth level
	MusicVariationEvery = 3
)
