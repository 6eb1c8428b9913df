package terminal

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/oncoarena/core"
	"github.com/lixenwraith/oncoarena/engine"
	"github.com/lixenwraith/oncoarena/event"
	"github.com/lixenwraith/oncoarena/parameter"
	"github.com/lixenwraith/oncoarena/sim"
)

// Muter is the audio control the frontend toggles
type Muter interface {
	ToggleMute() bool
	IsMuted() bool
}

// Result is how a run ended
type Result struct {
	// Finished is true when the player died, false when they quit
	Finished bool
	Stats    event.Stats
}

// App drives one simulation on a tcell screen
// Stepping, input and drawing all happen on the Run goroutine
type App struct {
	screen tcell.Screen
	sim    *sim.Simulation
	audio  Muter

	clock  *engine.PausableClock
	sched  *engine.ClockScheduler
	intent *Intent
	now    func() time.Time

	message      string
	messageUntil time.Time
}

// NewApp binds a screen and a simulation; audio may be nil
func NewApp(screen tcell.Screen, s *sim.Simulation, audio Muter) *App {
	a := &App{
		screen: screen,
		sim:    s,
		audio:  audio,
		clock:  engine.NewPausableClock(),
		intent: NewIntent(),
		now:    time.Now,
	}
	a.sched = engine.NewClockScheduler(a.clock, a.step)
	return a
}

// Run plays until the player dies and dismisses the game over box, quits, or ctx ends
func (a *App) Run(ctx context.Context) Result {
	core.SetCrashCleanup(a.screen.Fini)
	defer core.SetCrashCleanup(nil)

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	core.Go(func() { a.screen.ChannelEvents(events, quit) })

	tick := time.NewTicker(parameter.TickInterval)
	defer tick.Stop()
	frame := time.NewTicker(parameter.TerminalFrameInterval)
	defer frame.Stop()

	a.draw()
	for {
		select {
		case <-ctx.Done():
			return Result{Stats: a.sim.Stats()}
		case <-tick.C:
			a.sched.Tick()
		case <-frame.C:
			a.draw()
		case ev, ok := <-events:
			if !ok {
				return Result{Stats: a.sim.Stats()}
			}
			if done, finished := a.handle(ev); done {
				return Result{Finished: finished, Stats: a.sim.Stats()}
			}
		}
	}
}

func (a *App) step(dt time.Duration) {
	a.sim.SetIntent(a.intent.Vector(a.now()))
	a.sim.Step(dt)
}

func (a *App) draw() {
	now := a.now()
	f := Frame{Blink: now.UnixMilli()/250%2 == 0}
	if a.audio != nil {
		f.Muted = a.audio.IsMuted()
	}
	if now.Before(a.messageUntil) {
		f.Message = a.message
	}
	Draw(a.screen, a.sim.Snapshot(), f)
}

// handle applies one terminal event; done ends the run
func (a *App) handle(ev tcell.Event) (done, finished bool) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.draw()
	case *tcell.EventKey:
		if a.sim.Over() {
			return true, true
		}
		d, isDir, cmd := TranslateKey(ev)
		if isDir {
			a.intent.Press(d, a.now())
			return false, false
		}
		return a.command(cmd), false
	}
	return false, false
}

func (a *App) command(cmd Command) (quit bool) {
	switch cmd {
	case CmdQuit:
		return true
	case CmdPause:
		paused := a.sim.TogglePause()
		a.intent.Clear()
		if paused {
			a.clock.Pause()
		} else {
			a.clock.Resume()
		}
	case CmdStop:
		a.intent.Clear()
	case CmdMute:
		if a.audio != nil {
			if a.audio.ToggleMute() {
				a.flash("sound off")
			} else {
				a.flash("sound on")
			}
		}
	case CmdChoose1, CmdChoose2, CmdChoose3:
		offers := a.sim.Offers()
		i := int(cmd - CmdChoose1)
		if i < len(offers) {
			if err := a.sim.SelectPowerUp(offers[i].ID); err != nil {
				a.flash(err.Error())
			}
			a.intent.Clear()
		}
	}
	a.draw()
	return false
}

func (a *App) flash(msg string) {
	a.message = msg
	a.messageUntil = a.now().Add(2 * time.Second)
}
