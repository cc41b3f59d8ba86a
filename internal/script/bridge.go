// Package script runs the per-frame HUD script. The script sees a fixed set
// of host functions and one shared `state` object; physics and carry state
// are out of its reach.
package script

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/dop251/goja"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

//go:embed defaults/hud.js
var defaultScript []byte

// DefaultName is the script name reported for the embedded HUD.
const DefaultName = "hud.js"

// ErrScriptFault is wrapped by every error raised while a script runs.
var ErrScriptFault = errors.New("script: fault")

// Host answers the read-only queries a script may make.
type Host interface {
	FPS() float64
	ScreenWidth() float64
	ScreenHeight() float64
}

// DrawText is a text draw call enqueued by the script's text() function.
// Coordinates are world units; Y is the text baseline.
type DrawText struct {
	Content string
	X, Y    float64
	Size    float64
	Color   core.Color
}

// colorConstants are exposed to scripts as global constants.
var colorConstants = map[string]core.Color{
	"BLACK":   core.ColorDefault,
	"WHITE":   core.ColorBrightWhite,
	"RED":     core.ColorRed,
	"GREEN":   core.ColorGreen,
	"BLUE":    core.ColorBlue,
	"YELLOW":  core.ColorYellow,
	"MAGENTA": core.ColorMagenta,
	"CYAN":    core.ColorCyan,
	"ORANGE":  core.ColorOrange,
	"GRAY":    core.ColorGray,
}

// Bridge owns a goja runtime with the host functions registered and the
// compiled script bound as a function of `state`.
// It is not safe for concurrent use.
type Bridge struct {
	name  string
	hash  uint64
	vm    *goja.Runtime
	fn    goja.Callable
	state *goja.Object
	host  Host
	queue []DrawText
}

// Load reads a script from path, or uses the embedded HUD when path is empty.
func Load(path string) (*Bridge, error) {
	if path == "" {
		return New(DefaultName, defaultScript)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: cannot read %s: %w", path, err)
	}
	return New(path, src)
}

// New compiles src and registers the host surface.
// The source runs in strict mode as the body of a function taking `state`,
// so undeclared assignments fail instead of leaking globals between frames.
func New(name string, src []byte) (*Bridge, error) {
	b := &Bridge{
		name: name,
		hash: xxhash.Sum64(src),
		vm:   goja.New(),
	}

	wrapped := "(function(state) {\n" + string(src) + "\n})"
	prog, err := goja.Compile(name, wrapped, true)
	if err != nil {
		return nil, fmt.Errorf("script: cannot compile %s: %w", name, err)
	}

	if err := b.register(); err != nil {
		return nil, fmt.Errorf("script: cannot register host functions: %w", err)
	}

	v, err := b.vm.RunProgram(prog)
	if err != nil {
		return nil, fmt.Errorf("script: cannot load %s: %w", name, err)
	}
	fn, ok := goja.AssertFunction(v)
	if !ok {
		return nil, fmt.Errorf("script: %s did not evaluate to a function", name)
	}
	b.fn = fn
	b.state = b.vm.NewObject()

	return b, nil
}

// register installs the host functions and color constants.
func (b *Bridge) register() error {
	funcs := map[string]any{
		"text":          b.text,
		"fps":           func() float64 { return b.host.FPS() },
		"screen_width":  func() float64 { return b.host.ScreenWidth() },
		"screen_height": func() float64 { return b.host.ScreenHeight() },
	}
	for name, fn := range funcs {
		if err := b.vm.Set(name, fn); err != nil {
			return err
		}
	}
	for name, c := range colorConstants {
		if err := b.vm.Set(name, int(c)); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bridge) text(content string, x, y, size float64, color int) {
	b.queue = append(b.queue, DrawText{
		Content: content,
		X:       x,
		Y:       y,
		Size:    size,
		Color:   core.Color(color),
	})
}

// Run invokes the script once. Draw calls from the previous run are dropped
// first. Any exception is returned wrapped in ErrScriptFault.
func (b *Bridge) Run(host Host) error {
	b.host = host
	b.queue = b.queue[:0]

	if _, err := b.fn(goja.Undefined(), b.state); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrScriptFault, b.name, err)
	}
	return nil
}

// Queue returns the draw calls enqueued by the last Run.
// The slice is reused by the next Run.
func (b *Bridge) Queue() []DrawText {
	return b.queue
}

// State exports the shared state object as a Go map.
func (b *Bridge) State() map[string]any {
	if m, ok := b.state.Export().(map[string]any); ok {
		return m
	}
	return nil
}

// Name returns the script path or DefaultName.
func (b *Bridge) Name() string {
	return b.name
}

// Hash returns the xxhash of the script source, used to tell runs of
// different scripts apart in the run history.
func (b *Bridge) Hash() uint64 {
	return b.hash
}
