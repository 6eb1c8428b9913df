package gui

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lixenwraith/oncoarena/component"
	"github.com/lixenwraith/oncoarena/event"
	"github.com/lixenwraith/oncoarena/parameter"
	"github.com/lixenwraith/oncoarena/sim"
	"github.com/lixenwraith/oncoarena/vmath"
	"golang.org/x/image/font/basicfont"
)

const glyphWidth = 7

var (
	colorBackground = color.NRGBA{12, 10, 18, 255}
	colorArena      = color.NRGBA{24, 20, 34, 255}
	colorBorder     = color.NRGBA{70, 80, 90, 255}
	colorHUD        = color.NRGBA{210, 210, 215, 255}
	colorHP         = color.NRGBA{220, 40, 50, 255}
	colorShield     = color.NRGBA{0, 170, 255, 255}
	colorXP         = color.NRGBA{40, 220, 230, 255}
	colorHeal       = color.NRGBA{60, 230, 90, 255}
	colorShot       = color.NRGBA{255, 230, 80, 255}
	colorHostile    = color.NRGBA{255, 90, 40, 255}
	colorHazard     = color.NRGBA{255, 140, 0, 90}
	colorArmed      = color.NRGBA{255, 40, 40, 150}
	colorAura       = color.NRGBA{0, 160, 160, 120}
	colorMagnet     = color.NRGBA{40, 220, 230, 40}
	colorPlayer     = color.NRGBA{240, 240, 255, 255}
	colorElite      = color.NRGBA{255, 215, 0, 255}
	colorBuff       = color.NRGBA{180, 255, 180, 200}
	colorDim        = color.NRGBA{0, 0, 0, 160}
	colorCard       = color.NRGBA{40, 34, 56, 240}
	colorCardEdge   = color.NRGBA{255, 215, 0, 255}
	colorEnemy      = color.NRGBA{160, 160, 160, 255}
)

// hud carries frontend state drawn next to the snapshot
type hud struct {
	muted   bool
	blink   bool
	message string
}

// parseHex reads "#rrggbb"; anything else falls back to fallback
func parseHex(s string, fallback color.NRGBA) color.NRGBA {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return fallback
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fallback
	}
	return color.NRGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}
}

// toScreen maps an arena point to window pixels
func toScreen(arena vmath.Rect, p vmath.Vec2) (float32, float32) {
	return float32(p.X - arena.Min.X), float32(p.Y-arena.Min.Y) + parameter.GUIHUDHeight
}

func render(dst *ebiten.Image, snap sim.Snapshot, h hud) {
	dst.Fill(colorBackground)
	a := snap.Arena
	ax, ay := toScreen(a, a.Min)
	vector.DrawFilledRect(dst, ax, ay, float32(a.Width()), float32(a.Height()), colorArena, false)
	vector.StrokeRect(dst, ax, ay, float32(a.Width()), float32(a.Height()), 2, colorBorder, false)

	for _, hz := range snap.Hazards {
		drawHazard(dst, a, hz, h.blink)
	}

	p := snap.Player
	px, py := toScreen(a, p.Pos)
	if p.MagnetRange > 0 {
		vector.StrokeCircle(dst, px, py, float32(p.MagnetRange), 1, colorMagnet, true)
	}
	if p.AuraRadius > 0 {
		vector.DrawFilledCircle(dst, px, py, float32(p.AuraRadius), color.NRGBA{0, 60, 60, 50}, true)
		vector.StrokeCircle(dst, px, py, float32(p.AuraRadius), 1, colorAura, true)
	}

	for _, l := range snap.Loot {
		x, y := toScreen(a, l.Pos)
		if l.Kind == event.LootHealth {
			vector.DrawFilledCircle(dst, x, y, 6, colorHeal, true)
			continue
		}
		vector.DrawFilledCircle(dst, x, y, 3, colorXP, true)
	}

	for _, e := range snap.Enemies {
		drawEnemy(dst, a, e)
	}

	for _, pr := range snap.Projectiles {
		x, y := toScreen(a, pr.Pos)
		if pr.Hostile {
			vector.DrawFilledCircle(dst, x, y, 5, colorHostile, true)
		} else {
			vector.DrawFilledCircle(dst, x, y, 3, colorShot, true)
		}
	}

	body := colorPlayer
	if p.Invincible && h.blink {
		body.A = 110
	}
	vector.DrawFilledCircle(dst, px, py, float32(p.Radius), body, true)
	if p.ShieldLevel > 0 && p.Shield > 0 {
		vector.StrokeCircle(dst, px, py, float32(p.Radius)+4, 2, colorShield, true)
	}
	fx, fy := toScreen(a, p.Pos.Add(p.Facing.Scale(p.Radius)))
	vector.StrokeLine(dst, px, py, fx, fy, 2, colorBackground, true)

	drawHUD(dst, snap, h)

	switch {
	case snap.Over:
		drawPanel(dst, a, []string{
			"GAME OVER", "",
			fmt.Sprintf("score %d   level %d   kills %d", snap.Stats.Score, snap.Stats.Level, snap.Stats.EnemiesKilled),
			"", "enter  play again", "q      quit",
		})
	case snap.LevelUp && len(snap.Offer) > 0:
		drawOffers(dst, a, snap.Offer)
	case snap.Menu:
		drawPanel(dst, a, []string{"PAUSED", "", "p / esc  resume", "q        quit", "m        mute"})
	}
}

func drawEnemy(dst *ebiten.Image, a vmath.Rect, e sim.EnemyView) {
	x, y := toScreen(a, e.Pos)
	c := parseHex(e.Color, colorEnemy)
	if e.Flash {
		c = color.NRGBA{255, 255, 255, 255}
	}
	if e.Boss && e.Phase == event.BossEntering {
		c.A = 120
	}
	r := float32(e.Radius)
	vector.DrawFilledCircle(dst, x, y, r, c, true)

	switch {
	case e.Boss && e.Immune:
		vector.StrokeCircle(dst, x, y, r+4, 3, colorShield, true)
	case e.Elite:
		vector.StrokeCircle(dst, x, y, r+2, 2, colorElite, true)
	}
	if e.Buffed {
		vector.StrokeCircle(dst, x, y, r+6, 1, colorBuff, true)
	}
	if !e.Boss && e.MaxHP > 0 && e.HP < e.MaxHP {
		w := 2 * r
		vector.DrawFilledRect(dst, x-r, y-r-6, w, 3, colorDim, false)
		vector.DrawFilledRect(dst, x-r, y-r-6, w*float32(vmath.Clamp(e.HP/e.MaxHP, 0, 1)), 3, colorHP, false)
	}
}

func drawHazard(dst *ebiten.Image, a vmath.Rect, hz sim.HazardView, blink bool) {
	x, y := toScreen(a, hz.Pos)
	c := colorHazard
	if hz.Armed {
		c = colorArmed
		if blink {
			c.A /= 2
		}
	}
	switch hz.Shape {
	case component.HazardRing:
		w := float32(max(hz.Width, 2))
		vector.StrokeCircle(dst, x, y, float32(hz.Radius), w, c, true)
	default:
		vector.DrawFilledCircle(dst, x, y, float32(hz.Radius), c, true)
	}
	if hz.Label != "" {
		text.Draw(dst, hz.Label, basicfont.Face7x13, int(x)-len(hz.Label)*glyphWidth/2, int(y)+4, colorHUD)
	}
}

func drawHUD(dst *ebiten.Image, snap sim.Snapshot, h hud) {
	p, st := snap.Player, snap.Stats
	meter(dst, 10, 8, 160, 10, p.HP, p.MaxHP, colorHP)
	text.Draw(dst, fmt.Sprintf("%.0f/%.0f", p.HP, p.MaxHP), basicfont.Face7x13, 176, 18, colorHUD)
	if p.ShieldLevel > 0 {
		c := colorShield
		if p.ShieldRegenerating {
			c.A = 120
		}
		meter(dst, 10, 22, 160, 6, p.Shield, p.ShieldMax, c)
	}
	meter(dst, 10, 32, 160, 4, float64(st.XP), float64(st.XPToNext), colorXP)

	line := fmt.Sprintf("LV %d   SCORE %d   KILLS %d   %s", st.Level, st.Score, st.EnemiesKilled, clock(snap.Time))
	text.Draw(dst, line, basicfont.Face7x13, 260, 18, colorHUD)

	right := int(snap.Arena.Width()) - 10
	switch {
	case h.message != "":
		text.Draw(dst, h.message, basicfont.Face7x13, right-len(h.message)*glyphWidth, 18, colorHUD)
	case h.muted:
		text.Draw(dst, "[muted]", basicfont.Face7x13, right-7*glyphWidth, 18, colorHUD)
	}

	for _, e := range snap.Enemies {
		if !e.Boss {
			continue
		}
		text.Draw(dst, bossLabel(e), basicfont.Face7x13, 260, 34, parseHex(e.Color, colorHUD))
		meter(dst, 560, 26, 300, 8, e.HP, e.MaxHP, colorHP)
		break
	}
}

func bossLabel(e sim.EnemyView) string {
	switch {
	case e.Phase == event.BossEntering:
		return e.Tag + " (emerging)"
	case e.Immune:
		return e.Tag + " (immune)"
	}
	return e.Tag
}

// meter draws a horizontal fill bar for v out of maxV
func meter(dst *ebiten.Image, x, y, w, h float32, v, maxV float64, c color.Color) {
	vector.DrawFilledRect(dst, x, y, w, h, colorDim, false)
	if maxV > 0 {
		vector.DrawFilledRect(dst, x, y, w*float32(vmath.Clamp(v/maxV, 0, 1)), h, c, false)
	}
	vector.StrokeRect(dst, x, y, w, h, 1, colorBorder, false)
}

func drawPanel(dst *ebiten.Image, a vmath.Rect, lines []string) {
	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	pw := float32(width*glyphWidth + 40)
	ph := float32(len(lines)*16 + 24)
	cx, cy := toScreen(a, a.Center())
	x0, y0 := cx-pw/2, cy-ph/2
	vector.DrawFilledRect(dst, x0, y0, pw, ph, colorCard, false)
	vector.StrokeRect(dst, x0, y0, pw, ph, 2, colorCardEdge, false)
	for i, l := range lines {
		c := colorHUD
		if i == 0 {
			c = colorCardEdge
		}
		text.Draw(dst, l, basicfont.Face7x13, int(x0)+20, int(y0)+26+i*16, c)
	}
}

func drawOffers(dst *ebiten.Image, a vmath.Rect, offer []sim.Choice) {
	ax, ay := toScreen(a, a.Min)
	vector.DrawFilledRect(dst, ax, ay, float32(a.Width()), float32(a.Height()), colorDim, false)
	for i, c := range offer {
		r := offerRect(i, len(offer), a)
		x, y := float32(r.Min.X), float32(r.Min.Y)
		vector.DrawFilledRect(dst, x, y, float32(r.Width()), float32(r.Height()), colorCard, false)
		vector.StrokeRect(dst, x, y, float32(r.Width()), float32(r.Height()), 2, colorCardEdge, false)
		title := fmt.Sprintf("%d  %s  (%s)  lv %d/%d", i+1, c.Name, c.Category, c.Level, c.MaxLevel)
		text.Draw(dst, title, basicfont.Face7x13, int(x)+14, int(y)+22, colorCardEdge)
		text.Draw(dst, c.Description, basicfont.Face7x13, int(x)+14, int(y)+42, colorHUD)
	}
	top := offerRect(0, len(offer), a)
	head := "LEVEL UP - choose a power-up"
	text.Draw(dst, head, basicfont.Face7x13, int(top.Center().X)-len(head)*glyphWidth/2, int(top.Min.Y)-14, colorHUD)
}

func clock(d time.Duration) string {
	sec := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", sec/60, sec%60)
}
