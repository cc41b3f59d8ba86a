package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "left", "a", "h":
		return core.ActionLeft, false
	case "right", "d", "l":
		return core.ActionRight, false
	case " ", "up", "w", "k":
		return core.ActionJump, false
	case "p", "esc":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}
	return core.ActionNone, false
}

// KeyTiming controls how key events are turned into held keys.
// Terminals report presses and auto-repeats but never releases, so a key
// counts as held until no event arrived for a while. The first event waits
// out the terminal's repeat delay; once repeats flow the window shrinks.
type KeyTiming struct {
	Initial time.Duration // Hold window after a fresh press
	Repeat  time.Duration // Hold window once the key is auto-repeating
}

// DefaultKeyTiming suits common terminal repeat settings.
func DefaultKeyTiming() KeyTiming {
	return KeyTiming{
		Initial: 500 * time.Millisecond,
		Repeat:  120 * time.Millisecond,
	}
}

type keyState struct {
	last      time.Time
	repeating bool
}

// KeyTracker accumulates key events between ticks and produces one
// InputFrame per tick. A press is reported once, on the first event of a
// hold; auto-repeats only extend the hold.
type KeyTracker struct {
	timing  KeyTiming
	keys    map[core.Action]*keyState
	pressed map[core.Action]bool
}

// NewKeyTracker creates a tracker with the given timing.
func NewKeyTracker(timing KeyTiming) *KeyTracker {
	return &KeyTracker{
		timing:  timing,
		keys:    make(map[core.Action]*keyState),
		pressed: make(map[core.Action]bool),
	}
}

// Observe records a key event for action at time now.
func (k *KeyTracker) Observe(a core.Action, now time.Time) {
	if a == core.ActionNone {
		return
	}

	// Only one direction can be down; a terminal won't tell us the other was released.
	switch a {
	case core.ActionLeft:
		delete(k.keys, core.ActionRight)
		delete(k.pressed, core.ActionRight)
	case core.ActionRight:
		delete(k.keys, core.ActionLeft)
		delete(k.pressed, core.ActionLeft)
	}

	st, ok := k.keys[a]
	if ok && k.held(st, now) {
		st.repeating = true
		st.last = now
		return
	}
	k.keys[a] = &keyState{last: now}
	k.pressed[a] = true
}

func (k *KeyTracker) held(st *keyState, now time.Time) bool {
	window := k.timing.Initial
	if st.repeating {
		window = k.timing.Repeat
	}
	return now.Sub(st.last) <= window
}

// Frame returns the input for the tick at time now and consumes the
// pending presses.
func (k *KeyTracker) Frame(now time.Time) core.InputFrame {
	f := core.NewInputFrame()
	for a, st := range k.keys {
		if !k.held(st, now) {
			delete(k.keys, a)
			continue
		}
		f.Hold(a)
	}
	for a := range k.pressed {
		f.Press(a)
		delete(k.pressed, a)
	}
	return f
}

// Reset forgets every key.
func (k *KeyTracker) Reset() {
	clear(k.keys)
	clear(k.pressed)
}
