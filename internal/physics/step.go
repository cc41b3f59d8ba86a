package physics

import (
	"math"

	"github.com/solarlune/resolv"
)

// contactSlop is the penetration tolerated before two boxes count as overlapping.
const contactSlop = 1e-6

// Step advances every body by one fixed tick.
// Kinematic bodies move first, then dynamic bodies are pushed out of anything
// that moved into them, integrate gravity, and sweep per axis.
func (w *World) Step() {
	if w.statics == 0 {
		panic("physics: Step called before a static ground collider was inserted")
	}
	dt := w.params.DT

	for i := range w.bodies {
		b := &w.bodies[i]
		if b.kind != Kinematic {
			continue
		}
		b.pos = b.pos.Add(b.vel.Scale(dt))
		w.syncObject(b)
	}

	for i := range w.bodies {
		b := &w.bodies[i]
		if b.kind != Dynamic {
			continue
		}
		b.vel = b.vel.Add(w.params.Gravity.Scale(dt))
		if b.collider < 0 {
			b.pos = b.pos.Add(b.vel.Scale(dt))
			continue
		}
		w.depenetrate(b)
		w.move(b, b.vel.X*dt, b.vel.Y*dt)
	}

	w.ticks++
}

// move sweeps a dynamic body along x then y, stopping at the first contact
// on each axis and reflecting the blocked velocity component by restitution.
func (w *World) move(b *body, dx, dy float64) {
	c := &w.colliders[b.collider]
	obj := c.obj

	if moved, hit := sweepX(obj, dx); hit {
		dx = moved
		b.vel.X = -b.vel.X * c.desc.Restitution
	}
	obj.X += dx
	obj.Update()

	if moved, hit := sweepY(obj, dy); hit {
		dy = moved
		b.vel.Y = -b.vel.Y * c.desc.Restitution
	}
	obj.Y += dy
	obj.Update()

	b.pos.X = obj.X + c.desc.HalfExtents.X
	b.pos.Y = obj.Y + c.desc.HalfExtents.Y
}

// depenetrate pushes a dynamic body out of any collider overlapping it along
// the axis of least penetration. This is how kinematic bodies shove dynamic ones.
func (w *World) depenetrate(b *body) {
	c := &w.colliders[b.collider]
	obj := c.obj

	check := obj.Check(0, 0, tagSolid)
	if check == nil {
		return
	}
	for _, o := range check.Objects {
		overX := math.Min(obj.X+obj.W, o.X+o.W) - math.Max(obj.X, o.X)
		overY := math.Min(obj.Y+obj.H, o.Y+o.H) - math.Max(obj.Y, o.Y)
		if overX <= contactSlop || overY <= contactSlop {
			continue
		}
		if overX < overY {
			if obj.X+obj.W/2 < o.X+o.W/2 {
				obj.X -= overX
			} else {
				obj.X += overX
			}
		} else {
			if obj.Y+obj.H/2 < o.Y+o.H/2 {
				obj.Y -= overY
				b.vel.Y = math.Min(b.vel.Y, 0)
			} else {
				obj.Y += overY
				b.vel.Y = math.Max(b.vel.Y, 0)
			}
		}
		obj.Update()
	}
	b.pos.X = obj.X + c.desc.HalfExtents.X
	b.pos.Y = obj.Y + c.desc.HalfExtents.Y
}

// sweepX returns how far obj can travel horizontally towards dx and whether
// a collider stopped it. Candidates come from the spatial hash; the query is
// padded by one unit so boxes less than a unit away are never skipped.
func sweepX(obj *resolv.Object, dx float64) (float64, bool) {
	if dx == 0 {
		return 0, false
	}
	check := obj.Check(dx+math.Copysign(1, dx), 0, tagSolid)
	if check == nil {
		return dx, false
	}

	hit := false
	for _, o := range check.Objects {
		if !spans(obj.Y, obj.Y+obj.H, o.Y, o.Y+o.H) {
			continue
		}
		if dx > 0 {
			gap := o.X - (obj.X + obj.W)
			if gap >= -contactSlop && gap < dx {
				dx = math.Max(gap, 0)
				hit = true
			}
		} else {
			gap := (o.X + o.W) - obj.X
			if gap <= contactSlop && gap > dx {
				dx = math.Min(gap, 0)
				hit = true
			}
		}
	}
	return dx, hit
}

// sweepY is sweepX for the vertical axis.
func sweepY(obj *resolv.Object, dy float64) (float64, bool) {
	if dy == 0 {
		return 0, false
	}
	check := obj.Check(0, dy+math.Copysign(1, dy), tagSolid)
	if check == nil {
		return dy, false
	}

	hit := false
	for _, o := range check.Objects {
		if !spans(obj.X, obj.X+obj.W, o.X, o.X+o.W) {
			continue
		}
		if dy > 0 {
			gap := o.Y - (obj.Y + obj.H)
			if gap >= -contactSlop && gap < dy {
				dy = math.Max(gap, 0)
				hit = true
			}
		} else {
			gap := (o.Y + o.H) - obj.Y
			if gap <= contactSlop && gap > dy {
				dy = math.Min(gap, 0)
				hit = true
			}
		}
	}
	return dy, hit
}

// spans reports whether the open intervals (a0, a1) and (b0, b1) overlap by
// more than contactSlop. Touching intervals do not span.
func spans(a0, a1, b0, b1 float64) bool {
	return a0 < b1-contactSlop && b0 < a1-contactSlop
}
