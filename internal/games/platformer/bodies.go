package platformer

import (
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/physics"
)

// World is the part of the physics world the frame pipeline touches.
// *physics.World satisfies it.
type World interface {
	Translation(h physics.BodyHandle) core.Vec2
	LinearVelocity(h physics.BodyHandle) core.Vec2
	SetLinearVelocity(h physics.BodyHandle, v core.Vec2)
	ApplyImpulse(h physics.BodyHandle, impulse core.Vec2)
	Step()
}

// Player is the dynamic body the user controls.
// IsCarried and CarryVelocity are rewritten by the carry detector every frame.
type Player struct {
	Body          physics.BodyHandle
	Collider      physics.ColliderHandle
	IsCarried     bool
	CarryVelocity core.Vec2
}

// Jump applies an upward impulse. Velocity changes immediately.
func (p *Player) Jump(w World, impulse float64) {
	w.ApplyImpulse(p.Body, core.V(0, -impulse))
}

// ComposeVelocity sets the player's velocity from the horizontal intent,
// the current vertical velocity, and the carry velocity when carried.
// It returns the velocity written to the world.
func (p *Player) ComposeVelocity(w World, intentX float64) core.Vec2 {
	v := core.V(intentX, w.LinearVelocity(p.Body).Y)
	if p.IsCarried {
		v = v.Add(p.CarryVelocity)
	}
	w.SetLinearVelocity(p.Body, v)
	return v
}

// MovingPlatform is a kinematic body sweeping horizontally between
// TravelMin and TravelMax. Direction is always +1 or -1.
type MovingPlatform struct {
	Body      physics.BodyHandle
	Collider  physics.ColliderHandle
	TravelMin float64
	TravelMax float64
	Direction float64
}

// Update reverses the platform when it has left its travel range and then
// sets its velocity to (speed*Direction, 0). The two bound checks are
// independent: a position past both bounds flips twice and keeps its
// direction. Update returns the number of flips.
func (m *MovingPlatform) Update(w World, speed float64) int {
	flips := 0
	x := w.Translation(m.Body).X
	if x < m.TravelMin {
		m.Direction = -m.Direction
		flips++
	}
	if x > m.TravelMax {
		m.Direction = -m.Direction
		flips++
	}
	w.SetLinearVelocity(m.Body, core.V(speed*m.Direction, 0))
	return flips
}

// CarryDetector decides whether the player rides a platform.
type CarryDetector struct {
	PlayerHalf   core.Vec2
	PlatformHalf core.Vec2
}

// Detect tests the player box against each platform box in order, touching
// edges included. The first overlapping platform carries the player with its
// current velocity. Detect returns that platform's index, or -1.
func (d CarryDetector) Detect(w World, p *Player, platforms []MovingPlatform) int {
	p.IsCarried = false
	p.CarryVelocity = core.Vec2{}

	pb := core.Box{Center: w.Translation(p.Body), Half: d.PlayerHalf}
	for i := range platforms {
		box := core.Box{Center: w.Translation(platforms[i].Body), Half: d.PlatformHalf}
		if pb.Overlaps(box) {
			p.IsCarried = true
			p.CarryVelocity = w.LinearVelocity(platforms[i].Body)
			return i
		}
	}
	return -1
}
