package component

import "github.com/lixenwraith/oncoarena/vmath"

// BodyComponent is the spatial part shared by every simulated entity
type BodyComponent struct {
	Pos    vmath.Vec2
	Vel    vmath.Vec2
	Radius float64
}

// Overlaps reports circle-circle contact with an extra margin
func (b *BodyComponent) Overlaps(o *BodyComponent, margin float64) bool {
	r := b.Radius + o.Radius + margin
	return vmath.DistSq(b.Pos, o.Pos) < r*r
}
