// Package gui is the windowed frontend: it drives a Simulation from ebiten's
// fixed 60 TPS update loop and draws snapshots with vector shapes.
package gui

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/lixenwraith/oncoarena/event"
	"github.com/lixenwraith/oncoarena/parameter"
	"github.com/lixenwraith/oncoarena/sim"
	"github.com/lixenwraith/oncoarena/vmath"
)

// Muter is the audio control the window toggles
type Muter interface {
	ToggleMute() bool
	IsMuted() bool
}

// Game implements ebiten.Game over one Simulation
// Update and Draw run on ebiten's goroutine; the simulation lock covers the rest
type Game struct {
	sim   *sim.Simulation
	audio Muter
	arena vmath.Rect

	onRunEnd func(event.Stats)
	ended    bool
	seed     uint64

	keys  []ebiten.Key
	ticks int

	message      string
	messageTicks int
}

// NewGame binds a simulation; audio may be nil
func NewGame(s *sim.Simulation, audio Muter) *Game {
	return &Game{
		sim:   s,
		audio: audio,
		arena: s.Snapshot().Arena,
		seed:  s.Seed(),
	}
}

// OnRunEnd registers fn to receive the stats once per finished run
func (g *Game) OnRunEnd(fn func(event.Stats)) {
	g.onRunEnd = fn
}

// WindowSize is the logical window size in pixels
func (g *Game) WindowSize() (int, int) {
	return int(g.arena.Width()), int(g.arena.Height()) + parameter.GUIHUDHeight
}

// Update advances one tick; returns ebiten.Termination when the player quits
func (g *Game) Update() error {
	g.ticks++
	if g.messageTicks > 0 {
		g.messageTicks--
	}

	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		if g.apply(actionFor(k)) {
			return ebiten.Termination
		}
	}

	if g.sim.Over() {
		if !g.ended {
			g.ended = true
			if g.onRunEnd != nil {
				g.onRunEnd(g.sim.Stats())
			}
		}
		return nil
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		if offers := g.sim.Offers(); len(offers) > 0 {
			if i := offerAt(vmath.V2(float64(mx), float64(my)), len(offers), g.arena); i >= 0 {
				g.choose(offers, i)
			}
		}
	}

	g.sim.SetIntent(keyIntent(ebiten.IsKeyPressed))
	g.sim.Step(parameter.TickInterval)
	return nil
}

// apply runs one key action and reports whether the window should close
func (g *Game) apply(act action) (quit bool) {
	switch act {
	case actQuit:
		return true
	case actRestart:
		if g.sim.Over() {
			g.restart()
		}
	case actPause:
		if !g.sim.Over() {
			g.sim.TogglePause()
		}
	case actMute:
		if g.audio == nil {
			return false
		}
		if g.audio.ToggleMute() {
			g.flash("sound off")
		} else {
			g.flash("sound on")
		}
	case actChoose1, actChoose2, actChoose3:
		if offers := g.sim.Offers(); len(offers) > 0 {
			g.choose(offers, int(act-actChoose1))
		}
	}
	return false
}

func (g *Game) choose(offers []sim.Choice, i int) {
	if i >= len(offers) {
		return
	}
	if err := g.sim.SelectPowerUp(offers[i].ID); err != nil {
		log.Printf("[gui] select %s: %v", offers[i].ID, err)
		g.flash(err.Error())
	}
}

func (g *Game) restart() {
	g.seed++
	g.sim.Reset(g.seed)
	g.ended = false
	g.flash("new run")
}

func (g *Game) flash(msg string) {
	g.message = msg
	g.messageTicks = parameter.GUIFlashTicks
}

// Draw renders the current snapshot
func (g *Game) Draw(screen *ebiten.Image) {
	h := hud{blink: g.ticks/15%2 == 0}
	if g.audio != nil {
		h.muted = g.audio.IsMuted()
	}
	if g.messageTicks > 0 {
		h.message = g.message
	}
	render(screen, g.sim.Snapshot(), h)
}

// Layout keeps the logical size fixed to the arena; ebiten scales the window
func (g *Game) Layout(_, _ int) (int, int) {
	return g.WindowSize()
}
