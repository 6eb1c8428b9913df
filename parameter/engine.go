package parameter

import "time"

const (
	// TickInterval is the fixed simulation step used by real-time drivers
	TickInterval = time.Second / 60

	// MaxFrameDelta caps a single step so a stalled frame cannot burst entities forward
	MaxFrameDelta = 100 * time.Millisecond

	// EventQueueSize must be a power of two
	EventQueueSize  = 1024
	EventBufferMask = EventQueueSize - 1
)
