package engine

import "github.com/lixenwraith/oncoarena/event"

// System is one stage of the tick
// Update reads the frame delta from Resources.Time
type System interface {
	Init()
	Name() string
	// Priority orders execution, lower runs first
	Priority() int
	EventTypes() []event.EventType
	HandleEvent(ev event.GameEvent)
	Update()
}
