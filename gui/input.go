package gui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lixenwraith/oncoarena/parameter"
	"github.com/lixenwraith/oncoarena/vmath"
)

// action is a non-movement key binding
type action int

const (
	actNone action = iota
	actQuit
	actPause
	actChoose1
	actChoose2
	actChoose3
	actMute
	actRestart
)

var (
	keysUp    = []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW, ebiten.KeyK}
	keysDown  = []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS, ebiten.KeyJ}
	keysLeft  = []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA, ebiten.KeyH}
	keysRight = []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD, ebiten.KeyL}
)

// keyIntent builds the movement vector from currently held keys
// Unlike a terminal, the window reports key state, so no hold window applies
func keyIntent(pressed func(ebiten.Key) bool) vmath.Vec2 {
	var v vmath.Vec2
	if anyPressed(pressed, keysUp) {
		v.Y--
	}
	if anyPressed(pressed, keysDown) {
		v.Y++
	}
	if anyPressed(pressed, keysLeft) {
		v.X--
	}
	if anyPressed(pressed, keysRight) {
		v.X++
	}
	return v.Normalize()
}

func anyPressed(pressed func(ebiten.Key) bool, keys []ebiten.Key) bool {
	for _, k := range keys {
		if pressed(k) {
			return true
		}
	}
	return false
}

func actionFor(k ebiten.Key) action {
	switch k {
	case ebiten.KeyEscape, ebiten.KeyP:
		return actPause
	case ebiten.KeyQ:
		return actQuit
	case ebiten.KeyM:
		return actMute
	case ebiten.KeyEnter, ebiten.KeyNumpadEnter:
		return actRestart
	case ebiten.Key1, ebiten.KeyNumpad1:
		return actChoose1
	case ebiten.Key2, ebiten.KeyNumpad2:
		return actChoose2
	case ebiten.Key3, ebiten.KeyNumpad3:
		return actChoose3
	}
	return actNone
}

// offerRect is the card of offer i out of n, centered over the arena
func offerRect(i, n int, arena vmath.Rect) vmath.Rect {
	total := float64(n*parameter.GUIOfferHeight + (n-1)*parameter.GUIOfferGap)
	c := arena.Center()
	x0 := c.X - parameter.GUIOfferWidth/2
	y0 := c.Y - total/2 + float64(i*(parameter.GUIOfferHeight+parameter.GUIOfferGap)) + parameter.GUIHUDHeight
	return vmath.Rect{
		Min: vmath.V2(x0, y0),
		Max: vmath.V2(x0+parameter.GUIOfferWidth, y0+parameter.GUIOfferHeight),
	}
}

// offerAt returns the card under a window point, or -1
func offerAt(p vmath.Vec2, n int, arena vmath.Rect) int {
	for i := 0; i < n; i++ {
		if offerRect(i, n, arena).Contains(p, 0) {
			return i
		}
	}
	return -1
}
