// Package platformer implements the moving-platform game: a player body and
// a set of reversing platforms stepped through the physics world once per
// frame, with a HUD script run inside the frame.
package platformer

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/script"
)

// GameID is the registry identifier.
const GameID = "platformer"

// Options set via CLI before Reset.
var (
	configPath string
	scriptPath string
	preset     config.Preset
	logger     = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetScriptPath overrides the script named in the config.
func SetScriptPath(path string) {
	scriptPath = path
}

// SetPreset sets the speed preset applied on every Reset.
func SetPreset(p config.Preset) {
	preset = p
}

// SetLogger sets the logger used by every game instance.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game adapts the frame pipeline to the registry.Game interface.
type Game struct {
	runtime  core.RuntimeConfig
	cfg      config.PlatformerConfig
	level    *Level
	bridge   *script.Bridge
	pipeline *Orchestrator
	frame    FrameContext

	paused     bool
	carried    bool
	rideFrames int
	jumps      int
	flips      int
	fault      error
}

// New creates a game. Reset must be called before Step.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Moving Platforms"
}

// Reset loads the config and script and builds a fresh level.
// The measured frame rate survives a reset.
func (g *Game) Reset(runtime core.RuntimeConfig) error {
	cfg, err := config.LoadPlatformer(configPath)
	if err != nil {
		return fmt.Errorf("platformer: %w", err)
	}
	config.ApplyPreset(&cfg, preset)

	path := cfg.Script.Path
	if scriptPath != "" {
		path = scriptPath
	}
	bridge, err := script.Load(path)
	if err != nil {
		return fmt.Errorf("platformer: %w", err)
	}

	for _, i := range cfg.InvertedBounds() {
		p := cfg.Platforms.Layout[i]
		logger.Warn("platform travel bounds inverted, positions between them flip twice and keep direction",
			"platform", i, "travel_min", p.TravelMin, "travel_max", p.TravelMax)
	}

	dt := runtime.FixedDelta()
	level := BuildLevel(cfg, dt)

	g.runtime = runtime
	g.cfg = cfg
	g.level = level
	g.bridge = bridge
	g.pipeline = NewOrchestrator(level.World, &level.Player, level.Platforms, level.Carry, bridge, Tuning{
		MoveSpeed:     cfg.Player.MoveSpeed,
		JumpImpulse:   cfg.Player.JumpImpulse,
		PlatformSpeed: cfg.Platforms.Speed,
	}, logger)
	g.frame = FrameContext{
		DT:          dt,
		MeasuredFPS: g.frame.MeasuredFPS,
		Viewport:    core.V(cfg.World.Width, cfg.World.Height),
	}
	g.paused = false
	g.carried = false
	g.rideFrames = 0
	g.jumps = 0
	g.flips = 0
	g.fault = nil

	logger.Info("level built",
		"platforms", len(level.Platforms),
		"script", bridge.Name(),
		"preset", preset,
		"dt", dt)
	return nil
}

// SetMeasuredFPS records the frame rate observed by the frontend.
// Scripts read it through fps().
func (g *Game) SetMeasuredFPS(fps float64) {
	g.frame.MeasuredFPS = fps
}

// Step advances the game by one frame. After a script fault every call
// returns the same error and nothing moves.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.fault != nil {
		return core.StepResult{State: g.State(), Err: g.fault}
	}

	if in.WasPressed(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.frame.Input = in
	rep, err := g.pipeline.RunFrame(&g.frame)
	if err != nil {
		g.fault = err
		logger.Error("script fault", "frame", g.frame.Frame, "err", err)
		return core.StepResult{State: g.State(), Err: err}
	}

	if rep.Jumped {
		g.jumps++
	}
	g.carried = rep.CarriedBy >= 0
	if g.carried {
		g.rideFrames++
	}
	g.flips += rep.Flips

	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Frame:      g.frame.Frame,
		RideFrames: g.rideFrames,
		Jumps:      g.jumps,
		Flips:      g.flips,
		Carried:    g.carried,
		Paused:     g.paused,
	}
	if g.bridge != nil {
		st.Script = g.bridge.Name()
		st.ScriptHash = g.bridge.Hash()
	}
	return st
}

// Level exposes the current level for inspection.
func (g *Game) Level() *Level {
	return g.level
}

// ScriptState returns the script's shared state object.
func (g *Game) ScriptState() map[string]any {
	if g.bridge == nil {
		return nil
	}
	return g.bridge.State()
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
