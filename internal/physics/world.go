// Package physics implements the rigid-body world the platformer steps once
// per frame. Bodies and colliders live in arenas owned by the World and are
// addressed only through opaque handles. Collision candidates come from a
// resolv spatial hash; contacts are resolved per axis against axis-aligned boxes.
package physics

import (
	"fmt"
	"math"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// tagSolid marks every collider in the resolv space.
const tagSolid = "solid"

// BodyKind selects how a body is moved by Step.
type BodyKind int

const (
	// Dynamic bodies are integrated under gravity and stopped by contacts.
	Dynamic BodyKind = iota
	// Kinematic bodies move by their velocity and ignore gravity and contacts.
	Kinematic
)

func (k BodyKind) String() string {
	switch k {
	case Dynamic:
		return "dynamic"
	case Kinematic:
		return "kinematic"
	default:
		return "unknown"
	}
}

// Params holds the fixed simulation parameters.
type Params struct {
	Gravity  core.Vec2 // Acceleration applied to dynamic bodies, units/s²
	DT       float64   // Fixed tick length in seconds
	Width    float64   // Extent of the spatial hash; colliders outside it never collide
	Height   float64
	CellSize int // Spatial hash cell size in world units
}

// DefaultParams returns parameters for an 800x600 world at 60 ticks per second.
func DefaultParams() Params {
	return Params{
		Gravity:  core.V(0, 9.81),
		DT:       1.0 / 60.0,
		Width:    800,
		Height:   600,
		CellSize: 16,
	}
}

// ColliderDesc describes a box collider.
type ColliderDesc struct {
	HalfExtents core.Vec2
	Density     float64 // Mass per unit area, used for the parent body's mass
	Restitution float64 // Fraction of normal velocity kept on contact
}

type body struct {
	kind     BodyKind
	pos      core.Vec2
	vel      core.Vec2
	invMass  float64
	collider int // index into colliders, -1 when none
}

type collider struct {
	desc   ColliderDesc
	parent int // index into bodies, -1 for static colliders
	obj    *resolv.Object
}

// World owns every body and collider and advances them in fixed ticks.
// It is not safe for concurrent use.
type World struct {
	id        uint32
	params    Params
	space     *resolv.Space
	bodies    []body
	colliders []collider
	statics   int
	ticks     uint64
}

// NewWorld creates an empty world. A static ground collider must be inserted
// before the first Step.
func NewWorld(p Params) *World {
	if p.CellSize <= 0 {
		p.CellSize = DefaultParams().CellSize
	}
	if p.DT <= 0 {
		p.DT = DefaultParams().DT
	}
	// One spare cell per axis so edges that don't divide evenly are still hashed.
	w := int(math.Ceil(p.Width)) + p.CellSize
	h := int(math.Ceil(p.Height)) + p.CellSize
	return &World{
		id:     worldSeq.Add(1),
		params: p,
		space:  resolv.NewSpace(w, h, p.CellSize, p.CellSize),
	}
}

// Params returns the world's fixed simulation parameters.
func (w *World) Params() Params {
	return w.params
}

// Ticks returns the number of completed Step calls.
func (w *World) Ticks() uint64 {
	return w.ticks
}

// InsertStatic adds an immovable collider centered at pos.
func (w *World) InsertStatic(desc ColliderDesc, pos core.Vec2) ColliderHandle {
	h := w.addCollider(desc, -1, pos)
	w.statics++
	return h
}

// InsertBody adds a body without a collider. Attach one with InsertCollider.
func (w *World) InsertBody(kind BodyKind, pos core.Vec2) BodyHandle {
	w.bodies = append(w.bodies, body{kind: kind, pos: pos, collider: -1})
	return BodyHandle{world: w.id, index: uint32(len(w.bodies) - 1)}
}

// InsertCollider attaches a collider to a body. A body carries at most one
// collider; the body's mass becomes density times the box area.
func (w *World) InsertCollider(desc ColliderDesc, parent BodyHandle) ColliderHandle {
	b := w.body(parent)
	if b.collider >= 0 {
		panic(fmt.Sprintf("physics: %s already has a collider", parent))
	}

	h := w.addCollider(desc, int(parent.index), b.pos)
	b.collider = int(h.index)

	area := 4 * desc.HalfExtents.X * desc.HalfExtents.Y
	if mass := desc.Density * area; mass > 0 {
		b.invMass = 1 / mass
	}
	return h
}

func (w *World) addCollider(desc ColliderDesc, parent int, pos core.Vec2) ColliderHandle {
	topLeft := pos.Sub(desc.HalfExtents)
	obj := resolv.NewObject(topLeft.X, topLeft.Y, 2*desc.HalfExtents.X, 2*desc.HalfExtents.Y, tagSolid)
	w.space.Add(obj)

	w.colliders = append(w.colliders, collider{desc: desc, parent: parent, obj: obj})
	idx := len(w.colliders) - 1
	obj.Data = idx
	return ColliderHandle{world: w.id, index: uint32(idx)}
}

// Translation returns the body's center position.
func (w *World) Translation(h BodyHandle) core.Vec2 {
	return w.body(h).pos
}

// SetTranslation teleports a body, keeping its velocity.
func (w *World) SetTranslation(h BodyHandle, pos core.Vec2) {
	b := w.body(h)
	b.pos = pos
	w.syncObject(b)
}

// LinearVelocity returns the body's velocity in units per second.
func (w *World) LinearVelocity(h BodyHandle) core.Vec2 {
	return w.body(h).vel
}

// SetLinearVelocity overwrites the body's velocity.
func (w *World) SetLinearVelocity(h BodyHandle, v core.Vec2) {
	w.body(h).vel = v
}

// ApplyImpulse changes a dynamic body's velocity by impulse/mass immediately,
// so a velocity read after the call already includes it. Kinematic bodies
// and bodies without mass are unaffected.
func (w *World) ApplyImpulse(h BodyHandle, impulse core.Vec2) {
	b := w.body(h)
	if b.kind != Dynamic {
		return
	}
	b.vel = b.vel.Add(impulse.Scale(b.invMass))
}

// Mass returns the body's mass, or 0 when it has no collider.
func (w *World) Mass(h BodyHandle) float64 {
	b := w.body(h)
	if b.invMass == 0 {
		return 0
	}
	return 1 / b.invMass
}

// Kind returns how the body is simulated.
func (w *World) Kind(h BodyHandle) BodyKind {
	return w.body(h).kind
}

// HalfExtents returns the collider's box half extents.
func (w *World) HalfExtents(h ColliderHandle) core.Vec2 {
	return w.collider(h).desc.HalfExtents
}

// ColliderBox returns the collider's current world-space box.
func (w *World) ColliderBox(h ColliderHandle) core.Box {
	c := w.collider(h)
	o := c.obj
	half := c.desc.HalfExtents
	return core.Box{Center: core.V(o.X+half.X, o.Y+half.Y), Half: half}
}

// syncObject moves the body's resolv object to the body position.
func (w *World) syncObject(b *body) {
	if b.collider < 0 {
		return
	}
	c := &w.colliders[b.collider]
	c.obj.X = b.pos.X - c.desc.HalfExtents.X
	c.obj.Y = b.pos.Y - c.desc.HalfExtents.Y
	c.obj.Update()
}
