package component

import (
	"time"

	"github.com/lixenwraith/oncoarena/event"
)

// LootComponent is a collectible orb
type LootComponent struct {
	Kind  event.LootKind
	Value int
	Age   time.Duration
	// Lifetime is zero for orbs that never expire
	Lifetime time.Duration
}
