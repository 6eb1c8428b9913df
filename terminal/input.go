package terminal

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/oncoarena/parameter"
	"github.com/lixenwraith/oncoarena/vmath"
)

// Command is a non-movement key action
type Command int

const (
	CmdNone Command = iota
	CmdQuit
	CmdPause
	CmdChoose1
	CmdChoose2
	CmdChoose3
	CmdMute
	CmdStop
)

type direction int

const (
	dirUp direction = iota
	dirDown
	dirLeft
	dirRight
	dirCount
)

// Intent infers held directions from key repeats
// A direction stays active for KeyHoldWindow after its last press; an
// opposite press cancels it immediately
type Intent struct {
	pressed [dirCount]time.Time
	hold    time.Duration
}

// NewIntent creates a tracker with the default hold window
func NewIntent() *Intent {
	return &Intent{hold: parameter.KeyHoldWindow}
}

// Press records a direction key at now
func (in *Intent) Press(d direction, now time.Time) {
	in.pressed[d] = now
	switch d {
	case dirUp:
		in.pressed[dirDown] = time.Time{}
	case dirDown:
		in.pressed[dirUp] = time.Time{}
	case dirLeft:
		in.pressed[dirRight] = time.Time{}
	case dirRight:
		in.pressed[dirLeft] = time.Time{}
	}
}

// Clear releases every direction
func (in *Intent) Clear() {
	in.pressed = [dirCount]time.Time{}
}

// Vector returns the movement intent at now, unit length or zero
func (in *Intent) Vector(now time.Time) vmath.Vec2 {
	var v vmath.Vec2
	if in.held(dirUp, now) {
		v.Y--
	}
	if in.held(dirDown, now) {
		v.Y++
	}
	if in.held(dirLeft, now) {
		v.X--
	}
	if in.held(dirRight, now) {
		v.X++
	}
	return v.Normalize()
}

func (in *Intent) held(d direction, now time.Time) bool {
	t := in.pressed[d]
	return !t.IsZero() && now.Sub(t) < in.hold
}

// TranslateKey maps a key event to a direction or a command
// Arrows, WASD and hjkl move; digits pick a power-up
func TranslateKey(ev *tcell.EventKey) (d direction, isDir bool, cmd Command) {
	switch ev.Key() {
	case tcell.KeyUp:
		return dirUp, true, CmdNone
	case tcell.KeyDown:
		return dirDown, true, CmdNone
	case tcell.KeyLeft:
		return dirLeft, true, CmdNone
	case tcell.KeyRight:
		return dirRight, true, CmdNone
	case tcell.KeyEscape:
		return 0, false, CmdPause
	case tcell.KeyCtrlC:
		return 0, false, CmdQuit
	case tcell.KeyRune:
	default:
		return 0, false, CmdNone
	}

	switch ev.Rune() {
	case 'w', 'W', 'k':
		return dirUp, true, CmdNone
	case 's', 'S', 'j':
		return dirDown, true, CmdNone
	case 'a', 'A', 'h':
		return dirLeft, true, CmdNone
	case 'd', 'D', 'l':
		return dirRight, true, CmdNone
	case ' ':
		return 0, false, CmdStop
	case 'p', 'P':
		return 0, false, CmdPause
	case 'q', 'Q':
		return 0, false, CmdQuit
	case 'm', 'M':
		return 0, false, CmdMute
	case '1':
		return 0, false, CmdChoose1
	case '2':
		return 0, false, CmdChoose2
	case '3':
		return 0, false, CmdChoose3
	}
	return 0, false, CmdNone
}
