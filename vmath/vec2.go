package vmath

import "math"

// Vec2 is a float64 2D vector in arena pixels
type Vec2 struct {
	X, Y float64
}

func V2(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

func (v Vec2) LenSq() float64 { return v.X*v.X + v.Y*v.Y }

func (v Vec2) Len() float64 { return math.Sqrt(v.LenSq()) }

// Normalize returns the unit vector, or zero for a zero-length input
// Diagonal input has the same magnitude as axis-aligned input after normalization
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 || !IsFinite(l) {
		return Vec2{}
	}
	inv := 1.0 / l
	return Vec2{v.X * inv, v.Y * inv}
}

// ClampLen limits the vector magnitude to max
func (v Vec2) ClampLen(max float64) Vec2 {
	l := v.Len()
	if l <= max || l == 0 {
		return v
	}
	return v.Scale(max / l)
}

// Angle returns the direction of v in radians
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Finite reports whether both components are neither NaN nor Inf
func (v Vec2) Finite() bool {
	return IsFinite(v.X) && IsFinite(v.Y)
}

// Dist returns the euclidean distance between two points
func Dist(a, b Vec2) float64 {
	return a.Sub(b).Len()
}

// DistSq returns the squared distance, for comparisons
func DistSq(a, b Vec2) float64 {
	return a.Sub(b).LenSq()
}

// FromAngle returns a vector of the given magnitude pointing at angle
func FromAngle(angle, mag float64) Vec2 {
	return Vec2{math.Cos(angle) * mag, math.Sin(angle) * mag}
}

// AngleBetween returns the direction from a towards b
func AngleBetween(a, b Vec2) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

// MoveTowards steps from towards to by at most maxStep, never overshooting
func MoveTowards(from, to Vec2, maxStep float64) Vec2 {
	d := to.Sub(from)
	l := d.Len()
	if l <= maxStep || l == 0 {
		return to
	}
	return from.Add(d.Scale(maxStep / l))
}

func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Rect is an axis-aligned rectangle, the arena bounds
type Rect struct {
	Min, Max Vec2
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

func (r Rect) Center() Vec2 {
	return Vec2{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2}
}

// Contains reports whether p lies inside r grown by margin on every side
func (r Rect) Contains(p Vec2, margin float64) bool {
	return p.X >= r.Min.X-margin && p.X <= r.Max.X+margin &&
		p.Y >= r.Min.Y-margin && p.Y <= r.Max.Y+margin
}

// ClampPoint returns p constrained inside r shrunk by inset
func (r Rect) ClampPoint(p Vec2, inset float64) Vec2 {
	return Vec2{
		X: Clamp(p.X, r.Min.X+inset, r.Max.X-inset),
		Y: Clamp(p.Y, r.Min.Y+inset, r.Max.Y-inset),
	}
}
