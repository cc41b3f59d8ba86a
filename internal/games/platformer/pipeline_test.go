package platformer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/physics"
	"github.com/vovakirdan/tui-platformer/internal/script"
)

const dt = 1.0 / 60.0

var (
	playerHalf   = core.V(15, 15)
	platformHalf = core.V(50, 10)
)

// newTestWorld returns a world with ground and the given gravity.
func newTestWorld(t *testing.T, gravity core.Vec2) *physics.World {
	t.Helper()
	w := physics.NewWorld(physics.Params{Gravity: gravity, DT: dt, Width: 800, Height: 600, CellSize: 16})
	w.InsertStatic(physics.ColliderDesc{HalfExtents: core.V(400, 10)}, core.V(400, 590))
	return w
}

func addPlayer(w *physics.World, pos core.Vec2) *Player {
	b := w.InsertBody(physics.Dynamic, pos)
	c := w.InsertCollider(physics.ColliderDesc{HalfExtents: playerHalf, Density: 1}, b)
	return &Player{Body: b, Collider: c}
}

func addPlatform(w *physics.World, pos core.Vec2, lo, hi float64) MovingPlatform {
	b := w.InsertBody(physics.Kinematic, pos)
	c := w.InsertCollider(physics.ColliderDesc{HalfExtents: platformHalf, Density: 1}, b)
	return MovingPlatform{Body: b, Collider: c, TravelMin: lo, TravelMax: hi, Direction: 1}
}

func detector() CarryDetector {
	return CarryDetector{PlayerHalf: playerHalf, PlatformHalf: platformHalf}
}

func TestCarryNoOverlap(t *testing.T) {
	w := newTestWorld(t, core.Vec2{})
	p := addPlayer(w, core.V(400, 300))
	platforms := []MovingPlatform{addPlatform(w, core.V(100, 500), 100, 400)}
	w.SetLinearVelocity(platforms[0].Body, core.V(500, 0))

	// Stale carry state from a previous frame must be cleared.
	p.IsCarried = true
	p.CarryVelocity = core.V(123, 4)

	idx := detector().Detect(w, p, platforms)

	assert.Equal(t, -1, idx)
	assert.False(t, p.IsCarried)
	assert.Equal(t, core.Vec2{}, p.CarryVelocity)
}

func TestCarryTouchingEdgeComposesVelocity(t *testing.T) {
	w := newTestWorld(t, core.Vec2{})
	// Player bottom at 490 touches the platform top at 490.
	p := addPlayer(w, core.V(100, 475))
	platforms := []MovingPlatform{addPlatform(w, core.V(100, 500), 100, 400)}
	w.SetLinearVelocity(platforms[0].Body, core.V(500, 0))

	idx := detector().Detect(w, p, platforms)
	require.Equal(t, 0, idx)
	assert.True(t, p.IsCarried)
	assert.Equal(t, core.V(500, 0), p.CarryVelocity)

	v := p.ComposeVelocity(w, 100)
	assert.Equal(t, core.V(600, 0), v)
	assert.Equal(t, core.V(600, 0), w.LinearVelocity(p.Body))
}

func TestCarryFirstOverlapWins(t *testing.T) {
	w := newTestWorld(t, core.Vec2{})
	p := addPlayer(w, core.V(200, 300))
	platforms := []MovingPlatform{
		addPlatform(w, core.V(180, 310), 0, 800),
		addPlatform(w, core.V(220, 310), 0, 800),
	}
	w.SetLinearVelocity(platforms[0].Body, core.V(500, 0))
	w.SetLinearVelocity(platforms[1].Body, core.V(-300, 0))

	idx := detector().Detect(w, p, platforms)

	assert.Equal(t, 0, idx)
	assert.Equal(t, core.V(500, 0), p.CarryVelocity)
}

func TestCarryIdempotent(t *testing.T) {
	w := newTestWorld(t, core.Vec2{})
	p := addPlayer(w, core.V(100, 475))
	platforms := []MovingPlatform{addPlatform(w, core.V(100, 500), 100, 400)}
	w.SetLinearVelocity(platforms[0].Body, core.V(-500, 0))

	d := detector()
	first := d.Detect(w, p, platforms)
	carried, vel := p.IsCarried, p.CarryVelocity
	second := d.Detect(w, p, platforms)

	assert.Equal(t, first, second)
	assert.Equal(t, carried, p.IsCarried)
	assert.Equal(t, vel, p.CarryVelocity)
}

func TestPlatformReversesPastMax(t *testing.T) {
	w := newTestWorld(t, core.Vec2{})
	pl := addPlatform(w, core.V(100, 300), 100, 400)

	reversed := false
	for tick := 0; tick < 120; tick++ {
		x := w.Translation(pl.Body).X
		flips := pl.Update(w, 500)
		if x > 400 {
			assert.Equal(t, 1, flips, "tick %d", tick)
			assert.Equal(t, -1.0, pl.Direction)
			assert.Equal(t, core.V(-500, 0), w.LinearVelocity(pl.Body))
			reversed = true
			break
		}
		require.Equal(t, 0, flips, "tick %d at x=%v", tick, x)
		require.Equal(t, 1.0, pl.Direction)
		assert.Equal(t, core.V(500, 0), w.LinearVelocity(pl.Body))
		w.Step()
	}
	require.True(t, reversed, "platform never passed travel_max")

	// Heading back, the platform keeps -1 once inside its range.
	before := w.Translation(pl.Body).X
	w.Step()
	w.Step()
	assert.Equal(t, 0, pl.Update(w, 500))
	assert.Equal(t, -1.0, pl.Direction)
	assert.Less(t, w.Translation(pl.Body).X, before)
}

func TestPlatformInvertedBoundsFlipTwice(t *testing.T) {
	w := newTestWorld(t, core.Vec2{})
	// x=250 is below travel_min and above travel_max at once.
	pl := addPlatform(w, core.V(250, 300), 400, 100)

	flips := pl.Update(w, 500)

	assert.Equal(t, 2, flips)
	assert.Equal(t, 1.0, pl.Direction)
	assert.Equal(t, core.V(500, 0), w.LinearVelocity(pl.Body))
}

func TestPlatformInvertedBoundsReverseOutside(t *testing.T) {
	w := newTestWorld(t, core.Vec2{})
	// travel_min=400, travel_max=100: only x<400 holds at x=50, only x>100 at x=450.
	left := addPlatform(w, core.V(50, 300), 400, 100)
	right := addPlatform(w, core.V(450, 200), 400, 100)

	assert.Equal(t, 1, left.Update(w, 500))
	assert.Equal(t, -1.0, left.Direction)
	assert.Equal(t, 1, right.Update(w, 500))
	assert.Equal(t, -1.0, right.Direction)
	assert.Equal(t, core.V(-500, 0), w.LinearVelocity(right.Body))
}

func TestJumpReadsVelocityAfterImpulse(t *testing.T) {
	w := newTestWorld(t, core.Vec2{})
	p := addPlayer(w, core.V(400, 300))
	w.SetLinearVelocity(p.Body, core.V(0, 50))
	mass := w.Mass(p.Body)
	require.InDelta(t, 900.0, mass, 1e-9)

	p.Jump(w, 90000)
	v := p.ComposeVelocity(w, -100)

	assert.InDelta(t, -100.0, v.X, 1e-9)
	assert.InDelta(t, 50-90000/mass, v.Y, 1e-9)
}

func TestOrchestratorJumpFrame(t *testing.T) {
	w := newTestWorld(t, core.Vec2{})
	p := addPlayer(w, core.V(400, 300))
	o := NewOrchestrator(w, p, nil, detector(), nil, Tuning{MoveSpeed: 100, JumpImpulse: 90000, PlatformSpeed: 500}, nil)

	ctx := &FrameContext{DT: dt, Viewport: core.V(800, 600), Input: core.NewInputFrame()}
	ctx.Input.Press(core.ActionJump)
	ctx.Input.Hold(core.ActionRight)

	rep, err := o.RunFrame(ctx)
	require.NoError(t, err)

	assert.True(t, rep.Jumped)
	assert.Equal(t, -1, rep.CarriedBy)
	assert.InDelta(t, 100.0, rep.Velocity.X, 1e-9)
	assert.InDelta(t, -100.0, rep.Velocity.Y, 1e-9)
	assert.Equal(t, uint64(1), ctx.Frame)
	assert.InDelta(t, dt, ctx.Elapsed, 1e-12)
}

func TestOrchestratorCarriesPlayer(t *testing.T) {
	w := newTestWorld(t, core.Vec2{})
	p := addPlayer(w, core.V(200, 475))
	platforms := []MovingPlatform{addPlatform(w, core.V(200, 500), 100, 400)}
	w.SetLinearVelocity(platforms[0].Body, core.V(500, 0))

	o := NewOrchestrator(w, p, platforms, detector(), nil, Tuning{MoveSpeed: 100, JumpImpulse: 90000, PlatformSpeed: 500}, nil)
	ctx := &FrameContext{DT: dt, Viewport: core.V(800, 600), Input: core.NewInputFrame()}

	for frame := 0; frame < 2; frame++ {
		x0 := w.Translation(p.Body).X
		rep, err := o.RunFrame(ctx)
		require.NoError(t, err)

		assert.Equal(t, 0, rep.CarriedBy, "frame %d", frame)
		assert.InDelta(t, 500.0, rep.Velocity.X, 1e-9)
		assert.InDelta(t, x0+500*dt, w.Translation(p.Body).X, 1e-6, "frame %d", frame)
	}
	assert.InDelta(t, 200+2*500*dt, w.Translation(platforms[0].Body).X, 1e-6)
}

func TestOrchestratorCarriesPlayerUnderGravity(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	lv := BuildLevel(cfg, dt)
	w := lv.World

	// Rest the player on top of the lowest platform.
	restY := cfg.Platforms.Layout[0].Y - cfg.Platforms.Height/2 - cfg.Player.Size/2
	w.SetTranslation(lv.Player.Body, core.V(cfg.Platforms.Layout[0].X, restY))

	o := NewOrchestrator(w, &lv.Player, lv.Platforms, lv.Carry, nil, Tuning{
		MoveSpeed:     cfg.Player.MoveSpeed,
		JumpImpulse:   cfg.Player.JumpImpulse,
		PlatformSpeed: cfg.Platforms.Speed,
	}, nil)
	ctx := &FrameContext{DT: dt, Viewport: core.V(cfg.World.Width, cfg.World.Height), Input: core.NewInputFrame()}

	// The platform gets its velocity at the end of the first frame, so the
	// carry contribution shows from the second frame on.
	for frame := 0; frame < 20; frame++ {
		x0 := w.Translation(lv.Player.Body).X
		rep, err := o.RunFrame(ctx)
		require.NoError(t, err)

		require.Equal(t, 0, rep.CarriedBy, "frame %d", frame)
		assert.InDelta(t, 0.0, rep.Velocity.Y, 1e-9, "frame %d", frame)
		assert.InDelta(t, restY, w.Translation(lv.Player.Body).Y, 1e-6, "frame %d", frame)
		assert.InDelta(t, 0.0, w.LinearVelocity(lv.Player.Body).Y, 1e-9, "frame %d", frame)
		if frame > 0 {
			assert.InDelta(t, cfg.Platforms.Speed, rep.Velocity.X, 1e-9, "frame %d", frame)
			assert.InDelta(t, x0+cfg.Platforms.Speed*dt, w.Translation(lv.Player.Body).X, 1e-6, "frame %d", frame)
		}
	}
	assert.Equal(t, 1.0, lv.Platforms[0].Direction)
}

type failingScript struct{ err error }

func (s failingScript) Run(script.Host) error {
	return s.err
}

func TestOrchestratorScriptErrorStopsFrame(t *testing.T) {
	w := newTestWorld(t, core.V(0, 200))
	p := addPlayer(w, core.V(400, 300))
	boom := errors.New("boom")
	o := NewOrchestrator(w, p, nil, detector(), failingScript{boom}, Tuning{MoveSpeed: 100}, nil)

	ctx := &FrameContext{DT: dt, Input: core.NewInputFrame()}
	ctx.Input.Hold(core.ActionRight)

	_, err := o.RunFrame(ctx)

	require.ErrorIs(t, err, boom)
	assert.Equal(t, uint64(0), ctx.Frame)
	assert.Equal(t, uint64(0), w.Ticks())
	assert.Equal(t, core.V(400, 300), w.Translation(p.Body))
	assert.Equal(t, core.Vec2{}, w.LinearVelocity(p.Body))
}

func TestFrameContextFPS(t *testing.T) {
	ctx := &FrameContext{DT: dt}
	assert.InDelta(t, 60.0, ctx.FPS(), 1e-9)

	ctx.MeasuredFPS = 42.5
	assert.Equal(t, 42.5, ctx.FPS())

	ctx.Viewport = core.V(800, 600)
	assert.Equal(t, 800.0, ctx.ScreenWidth())
	assert.Equal(t, 600.0, ctx.ScreenHeight())
}
