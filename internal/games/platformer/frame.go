package platformer

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/script"
)

// FrameContext carries everything a frame may ask about the engine.
// It is the script's Host for the duration of the callback.
type FrameContext struct {
	Frame       uint64    // Frames completed before this one
	DT          float64   // Fixed tick in seconds
	Elapsed     float64   // Simulated seconds completed
	MeasuredFPS float64   // Frame rate reported by the frontend; 0 if unknown
	Viewport    core.Vec2 // World size in world units
	Input       core.InputFrame
}

// FPS returns the measured frame rate, or the nominal rate 1/DT when the
// frontend has not reported one.
func (c *FrameContext) FPS() float64 {
	if c.MeasuredFPS > 0 {
		return c.MeasuredFPS
	}
	if c.DT > 0 {
		return 1 / c.DT
	}
	return 0
}

// ScreenWidth returns the viewport width in world units.
func (c *FrameContext) ScreenWidth() float64 { return c.Viewport.X }

// ScreenHeight returns the viewport height in world units.
func (c *FrameContext) ScreenHeight() float64 { return c.Viewport.Y }

// advance closes the frame.
func (c *FrameContext) advance() {
	c.Frame++
	c.Elapsed += c.DT
}

// ScriptRunner runs the per-frame script callback. *script.Bridge satisfies it.
type ScriptRunner interface {
	Run(host script.Host) error
}

// Tuning holds the constants the pipeline applies every frame.
type Tuning struct {
	MoveSpeed     float64
	JumpImpulse   float64
	PlatformSpeed float64
}

// FrameReport summarises what one frame did.
type FrameReport struct {
	Jumped    bool
	CarriedBy int // Index of the carrying platform, -1 when not carried
	Flips     int
	Velocity  core.Vec2 // Player velocity written before the step
}

// Orchestrator runs the fixed per-frame pipeline over one world.
type Orchestrator struct {
	World     World
	Player    *Player
	Platforms []MovingPlatform
	Carry     CarryDetector
	Script    ScriptRunner // nil runs no script
	Tuning    Tuning
	Logger    *log.Logger

	lastCarrier int
}

// NewOrchestrator wires a pipeline. The logger may be nil.
func NewOrchestrator(w World, p *Player, platforms []MovingPlatform, carry CarryDetector, s ScriptRunner, t Tuning, logger *log.Logger) *Orchestrator {
	return &Orchestrator{
		World:       w,
		Player:      p,
		Platforms:   platforms,
		Carry:       carry,
		Script:      s,
		Tuning:      t,
		Logger:      logger,
		lastCarrier: -1,
	}
}

// RunFrame executes one frame in order: jump impulse, script callback,
// carry detection, player velocity, platform reversal and velocity, world
// step. The input is read from ctx. A script error aborts the frame before
// anything else moves and is returned unchanged.
func (o *Orchestrator) RunFrame(ctx *FrameContext) (FrameReport, error) {
	rep := FrameReport{CarriedBy: -1}
	in := ctx.Input

	if in.WasPressed(core.ActionJump) {
		o.Player.Jump(o.World, o.Tuning.JumpImpulse)
		rep.Jumped = true
	}

	if o.Script != nil {
		if err := o.Script.Run(ctx); err != nil {
			return rep, err
		}
	}

	rep.CarriedBy = o.Carry.Detect(o.World, o.Player, o.Platforms)
	if rep.CarriedBy != o.lastCarrier {
		o.debug("carry changed", "frame", ctx.Frame, "from", o.lastCarrier, "to", rep.CarriedBy)
		o.lastCarrier = rep.CarriedBy
	}

	rep.Velocity = o.Player.ComposeVelocity(o.World, in.Horizontal()*o.Tuning.MoveSpeed)

	for i := range o.Platforms {
		if n := o.Platforms[i].Update(o.World, o.Tuning.PlatformSpeed); n > 0 {
			rep.Flips += n
			o.debug("platform reversed", "frame", ctx.Frame, "platform", i, "direction", o.Platforms[i].Direction)
		}
	}

	o.World.Step()
	ctx.advance()
	return rep, nil
}

func (o *Orchestrator) debug(msg string, kv ...any) {
	if o.Logger != nil {
		o.Logger.Debug(msg, kv...)
	}
}
