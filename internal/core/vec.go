package core

// Vec2 is a 2D vector in world units. Y grows downwards, like the screen.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the component-wise sum.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns the component-wise difference.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale multiplies both components by f.
func (v Vec2) Scale(f float64) Vec2 {
	return Vec2{X: v.X * f, Y: v.Y * f}
}

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Box is an axis-aligned bounding box described by its center and half extents.
type Box struct {
	Center Vec2
	Half   Vec2
}

// BoxAt creates a box centered on c with the given half extents.
func BoxAt(c Vec2, halfW, halfH float64) Box {
	return Box{Center: c, Half: Vec2{X: halfW, Y: halfH}}
}

// Min returns the top-left corner.
func (b Box) Min() Vec2 {
	return b.Center.Sub(b.Half)
}

// Max returns the bottom-right corner.
func (b Box) Max() Vec2 {
	return b.Center.Add(b.Half)
}

// Overlaps reports whether both the x and y intervals of the boxes intersect.
// Intervals are closed: boxes that only touch along an edge overlap.
func (b Box) Overlaps(o Box) bool {
	bMin, bMax := b.Min(), b.Max()
	oMin, oMax := o.Min(), o.Max()
	return bMax.Y >= oMin.Y && bMin.Y <= oMax.Y &&
		bMax.X >= oMin.X && bMin.X <= oMax.X
}
