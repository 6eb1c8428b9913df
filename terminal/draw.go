package terminal

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/oncoarena/component"
	"github.com/lixenwraith/oncoarena/event"
	"github.com/lixenwraith/oncoarena/parameter"
	"github.com/lixenwraith/oncoarena/sim"
	"github.com/lixenwraith/oncoarena/vmath"
)

var (
	styleBase      = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	styleBorder    = styleBase.Foreground(tcell.ColorDarkSlateGray)
	styleHUD       = styleBase.Foreground(tcell.ColorLightGray)
	styleHP        = styleBase.Foreground(tcell.ColorRed)
	styleShield    = styleBase.Foreground(tcell.ColorDeepSkyBlue)
	styleXP        = styleBase.Foreground(tcell.ColorAqua)
	styleHeal      = styleBase.Foreground(tcell.ColorLime)
	styleShot      = styleBase.Foreground(tcell.ColorYellow)
	styleHostile   = styleBase.Foreground(tcell.ColorOrangeRed)
	styleHazard    = styleBase.Foreground(tcell.ColorDarkOrange)
	styleArmed     = styleBase.Foreground(tcell.ColorRed).Bold(true)
	styleAura      = styleBase.Foreground(tcell.ColorDarkCyan)
	stylePlayer    = styleBase.Foreground(tcell.ColorWhite).Bold(true)
	styleOverlay   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGold)
	styleOverlayHi = styleOverlay.Bold(true)
)

// Frame carries frontend state drawn next to the snapshot
type Frame struct {
	Muted   bool
	Blink   bool
	Message string
}

// Draw renders one snapshot to screen and returns the projection used
func Draw(s tcell.Screen, snap sim.Snapshot, f Frame) Projection {
	s.Clear()
	w, h := s.Size()
	if w < parameter.TerminalMinCols || h < parameter.TerminalMinRows {
		drawText(s, 0, 0, styleHUD, fmt.Sprintf("terminal too small: %dx%d, need %dx%d",
			w, h, parameter.TerminalMinCols, parameter.TerminalMinRows))
		s.Show()
		return Projection{}
	}

	pr := NewProjection(snap.Arena, w, h, parameter.HUDRows)
	drawBorder(s, pr)
	drawHUD(s, snap, f)

	for _, hz := range snap.Hazards {
		drawHazard(s, pr, hz, f.Blink)
	}
	if snap.Player.AuraRadius > 0 {
		drawCircle(s, pr, snap.Player.Pos, snap.Player.AuraRadius, '·', styleAura)
	}
	for _, l := range snap.Loot {
		if x, y, ok := pr.Cell(l.Pos); ok {
			if l.Kind == event.LootHealth {
				s.SetContent(x, y, '+', nil, styleHeal)
			} else {
				s.SetContent(x, y, '∙', nil, styleXP)
			}
		}
	}
	for _, e := range snap.Enemies {
		drawEnemy(s, pr, e)
	}
	for _, p := range snap.Projectiles {
		if x, y, ok := pr.Cell(p.Pos); ok {
			if p.Hostile {
				s.SetContent(x, y, '*', nil, styleHostile)
			} else {
				s.SetContent(x, y, '•', nil, styleShot)
			}
		}
	}
	if x, y, ok := pr.Cell(snap.Player.Pos); ok {
		st := stylePlayer
		if snap.Player.Invincible && f.Blink {
			st = st.Dim(true)
		}
		s.SetContent(x, y, '@', nil, st)
	}

	switch {
	case snap.Over:
		drawBox(s, w, h, []string{"GAME OVER", "", fmt.Sprintf("score %d  level %d", snap.Stats.Score, snap.Stats.Level), "", "press any key"})
	case snap.LevelUp && len(snap.Offer) > 0:
		drawBox(s, w, h, offerLines(snap.Offer))
	case snap.Menu:
		drawBox(s, w, h, []string{"PAUSED", "", "p / esc  resume", "q        quit", "m        mute"})
	}
	s.Show()
	return pr
}

func drawHUD(s tcell.Screen, snap sim.Snapshot, f Frame) {
	p, st := snap.Player, snap.Stats
	x := 0
	x = drawText(s, x, 0, styleHP, "HP "+bar(p.HP, p.MaxHP, 10))
	x = drawText(s, x, 0, styleHUD, fmt.Sprintf(" %3.0f/%-3.0f ", p.HP, p.MaxHP))
	if p.ShieldLevel > 0 {
		label := "SH "
		if p.ShieldRegenerating {
			label = "sh "
		}
		x = drawText(s, x, 0, styleShield, label+bar(p.Shield, p.ShieldMax, 5)+" ")
	}
	drawText(s, x, 0, styleHUD, fmt.Sprintf("LV %d  XP %d/%d  SCORE %d  KILLS %d  %s",
		st.Level, st.XP, st.XPToNext, st.Score, st.EnemiesKilled, clock(snap.Time)))

	x = 0
	for _, e := range snap.Enemies {
		if !e.Boss {
			continue
		}
		label := e.Tag
		if e.Phase == event.BossEntering {
			label += " (emerging)"
		} else if e.Immune {
			label += " (immune)"
		}
		x = drawText(s, x, 1, styleFor(e.Color).Bold(true), label+" ")
		x = drawText(s, x, 1, styleHP, bar(e.HP, e.MaxHP, 20)+"  ")
		break
	}
	switch {
	case f.Message != "":
		drawText(s, x, 1, styleHUD, f.Message)
	case f.Muted:
		drawText(s, x, 1, styleHUD, "[muted]")
	}
}

func drawBorder(s tcell.Screen, pr Projection) {
	top, bottom := pr.Top-1, pr.Top+pr.Rows
	right := pr.Cols + 1
	for x := 1; x < right; x++ {
		s.SetContent(x, top, '─', nil, styleBorder)
		s.SetContent(x, bottom, '─', nil, styleBorder)
	}
	for y := top + 1; y < bottom; y++ {
		s.SetContent(0, y, '│', nil, styleBorder)
		s.SetContent(right, y, '│', nil, styleBorder)
	}
	s.SetContent(0, top, '┌', nil, styleBorder)
	s.SetContent(right, top, '┐', nil, styleBorder)
	s.SetContent(0, bottom, '└', nil, styleBorder)
	s.SetContent(right, bottom, '┘', nil, styleBorder)
}

func drawEnemy(s tcell.Screen, pr Projection, e sim.EnemyView) {
	st := styleFor(e.Color)
	if e.Flash {
		st = st.Reverse(true)
	}
	if e.Boss {
		if e.Phase == event.BossEntering {
			st = st.Dim(true)
		}
		drawCircle(s, pr, e.Pos, e.Radius, '#', st)
		if x, y, ok := pr.Cell(e.Pos); ok {
			s.SetContent(x, y, 'B', nil, st.Bold(true))
		}
		return
	}

	x, y, ok := pr.Cell(e.Pos)
	if !ok {
		return
	}
	glyph := 'o'
	switch {
	case e.Elite:
		glyph = 'O'
		st = st.Bold(true)
	case e.Buffed:
		glyph = 'ö'
	}
	if e.Radius >= 20 {
		glyph = unicode.ToUpper(glyph)
	}
	s.SetContent(x, y, glyph, nil, st)
}

func drawHazard(s tcell.Screen, pr Projection, hz sim.HazardView, blink bool) {
	st, glyph := styleHazard, '·'
	if hz.Armed {
		st, glyph = styleArmed, '※'
		if blink {
			st = st.Dim(true)
		}
	}
	drawCircle(s, pr, hz.Pos, hz.Radius, glyph, st)
	if hz.Shape == component.HazardDisc {
		drawCircle(s, pr, hz.Pos, hz.Radius/2, glyph, st)
	}
	if hz.Label != "" {
		if x, y, ok := pr.Cell(hz.Pos); ok {
			drawText(s, x-len(hz.Label)/2, y, st, hz.Label)
		}
	}
}

// drawCircle plots the outline of a circle with enough samples to close it on screen
func drawCircle(s tcell.Screen, pr Projection, c vmath.Vec2, r float64, glyph rune, st tcell.Style) {
	cols, rows := pr.Span(r)
	n := max(8, 4*(cols+rows))
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		if x, y, ok := pr.Cell(c.Add(vmath.FromAngle(a, r))); ok {
			s.SetContent(x, y, glyph, nil, st)
		}
	}
}

func drawBox(s tcell.Screen, w, h int, lines []string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	width += 4
	height := len(lines) + 2
	x0, y0 := (w-width)/2, (h-height)/2
	for y := y0; y < y0+height; y++ {
		for x := x0; x < x0+width; x++ {
			s.SetContent(x, y, ' ', nil, styleOverlay)
		}
	}
	for i, l := range lines {
		st := styleOverlay
		if i == 0 {
			st = styleOverlayHi
		}
		drawText(s, x0+2, y0+1+i, st, l)
	}
}

func offerLines(offer []sim.Choice) []string {
	lines := []string{"LEVEL UP - choose a power-up", ""}
	for i, c := range offer {
		lines = append(lines, fmt.Sprintf("%d  %-18s lv %d/%d  %s", i+1, c.Name, c.Level, c.MaxLevel, c.Description))
	}
	return lines
}

// drawText writes text at x, y and returns the column after it
func drawText(s tcell.Screen, x, y int, st tcell.Style, text string) int {
	for _, r := range text {
		s.SetContent(x, y, r, nil, st)
		x++
	}
	return x
}

func bar(v, maxV float64, width int) string {
	filled := 0
	if maxV > 0 {
		filled = int(math.Round(vmath.Clamp(v/maxV, 0, 1) * float64(width)))
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func clock(d time.Duration) string {
	sec := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", sec/60, sec%60)
}

func styleFor(color string) tcell.Style {
	if color == "" {
		return styleBase
	}
	return styleBase.Foreground(tcell.GetColor(color))
}
