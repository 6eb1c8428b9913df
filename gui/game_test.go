package gui

import (
	"image/color"
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lixenwraith/oncoarena/sim"
	"github.com/lixenwraith/oncoarena/tuning"
	"github.com/lixenwraith/oncoarena/vmath"
)

type fakeMuter struct{ muted bool }

func (m *fakeMuter) ToggleMute() bool { m.muted = !m.muted; return m.muted }
func (m *fakeMuter) IsMuted() bool    { return m.muted }

func newTestGame(t *testing.T) (*Game, *sim.Simulation, *fakeMuter) {
	t.Helper()
	s, err := sim.New(tuning.Default(), 11)
	if err != nil {
		t.Fatalf("sim.New: %v", err)
	}
	m := &fakeMuter{}
	return NewGame(s, m), s, m
}

func TestParseHex(t *testing.T) {
	fallback := color.NRGBA{1, 2, 3, 255}
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#ff3030", color.NRGBA{255, 48, 48, 255}},
		{"00ff00", color.NRGBA{0, 255, 0, 255}},
		{"#fff", fallback},
		{"#zzzzzz", fallback},
		{"", fallback},
	}
	for _, tt := range tests {
		if got := parseHex(tt.in, fallback); got != tt.want {
			t.Errorf("parseHex(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestKeyIntent(t *testing.T) {
	tests := []struct {
		name string
		held []ebiten.Key
		want vmath.Vec2
	}{
		{"none", nil, vmath.Vec2{}},
		{"arrow right", []ebiten.Key{ebiten.KeyArrowRight}, vmath.V2(1, 0)},
		{"wasd up", []ebiten.Key{ebiten.KeyW}, vmath.V2(0, -1)},
		{"opposites cancel", []ebiten.Key{ebiten.KeyA, ebiten.KeyD}, vmath.Vec2{}},
		{"diagonal", []ebiten.Key{ebiten.KeyJ, ebiten.KeyL}, vmath.V2(math.Sqrt2/2, math.Sqrt2/2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			held := make(map[ebiten.Key]bool)
			for _, k := range tt.held {
				held[k] = true
			}
			got := keyIntent(func(k ebiten.Key) bool { return held[k] })
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestActionFor(t *testing.T) {
	tests := []struct {
		key  ebiten.Key
		want action
	}{
		{ebiten.KeyEscape, actPause},
		{ebiten.KeyP, actPause},
		{ebiten.KeyQ, actQuit},
		{ebiten.KeyM, actMute},
		{ebiten.KeyEnter, actRestart},
		{ebiten.Key2, actChoose2},
		{ebiten.KeyNumpad3, actChoose3},
		{ebiten.KeyZ, actNone},
	}
	for _, tt := range tests {
		if got := actionFor(tt.key); got != tt.want {
			t.Errorf("actionFor(%v): expected %v, got %v", tt.key, tt.want, got)
		}
	}
}

func TestOfferAt(t *testing.T) {
	arena := vmath.Rect{Max: vmath.V2(1280, 720)}
	for i := 0; i < 3; i++ {
		r := offerRect(i, 3, arena)
		if got := offerAt(r.Center(), 3, arena); got != i {
			t.Errorf("Expected card %d at its center, got %d", i, got)
		}
	}
	if got := offerAt(vmath.V2(5, 5), 3, arena); got != -1 {
		t.Errorf("Expected miss in the corner, got %d", got)
	}

	a, b := offerRect(0, 3, arena), offerRect(1, 3, arena)
	if a.Max.Y >= b.Min.Y {
		t.Errorf("Expected cards not to overlap: %v %v", a, b)
	}
}

func TestGameWindowSize(t *testing.T) {
	g, _, _ := newTestGame(t)
	w, h := g.Layout(0, 0)
	if w != 1280 || h != 720+40 {
		t.Errorf("Expected 1280x760, got %dx%d", w, h)
	}
}

func TestGameApply(t *testing.T) {
	g, s, m := newTestGame(t)

	if g.apply(actPause) || !s.Frozen() {
		t.Error("Expected pause without quitting")
	}
	g.apply(actPause)
	if s.Frozen() {
		t.Error("Expected resume on second pause")
	}

	g.apply(actMute)
	if !m.muted || g.message != "sound off" || g.messageTicks == 0 {
		t.Errorf("Expected mute flash, got muted=%v message=%q", m.muted, g.message)
	}

	g.apply(actChoose1)
	if s.PendingLevels() != 0 {
		t.Error("Expected choice without offer ignored")
	}

	g.apply(actRestart)
	if g.seed != 11 {
		t.Errorf("Expected restart ignored mid-run, seed %d", g.seed)
	}

	if !g.apply(actQuit) {
		t.Error("Expected quit to close the window")
	}
}
