package physics

import (
	"fmt"
	"sync/atomic"
)

// worldSeq hands out world identifiers so handles from a torn-down world
// are recognised as stale instead of silently aliasing a new world's arena.
var worldSeq atomic.Uint32

// BodyHandle identifies one rigid body inside the World that created it.
// The zero value is never valid.
type BodyHandle struct {
	world uint32
	index uint32
}

// ColliderHandle identifies one collision shape inside the World that created it.
// The zero value is never valid.
type ColliderHandle struct {
	world uint32
	index uint32
}

func (h BodyHandle) String() string {
	return fmt.Sprintf("body(%d:%d)", h.world, h.index)
}

func (h ColliderHandle) String() string {
	return fmt.Sprintf("collider(%d:%d)", h.world, h.index)
}

// body looks up a body slot. Invalid handles are programmer errors.
func (w *World) body(h BodyHandle) *body {
	if h.world != w.id || int(h.index) >= len(w.bodies) {
		panic(fmt.Sprintf("physics: invalid %s for world %d", h, w.id))
	}
	return &w.bodies[h.index]
}

// collider looks up a collider slot. Invalid handles are programmer errors.
func (w *World) collider(h ColliderHandle) *collider {
	if h.world != w.id || int(h.index) >= len(w.colliders) {
		panic(fmt.Sprintf("physics: invalid %s for world %d", h, w.id))
	}
	return &w.colliders[h.index]
}
