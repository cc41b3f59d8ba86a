package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"a", runeKey('a'), core.ActionLeft, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"d", runeKey('d'), core.ActionRight, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionJump, false},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump, false},
		{"p", runeKey('p'), core.ActionPause, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEscape}, core.ActionPause, false},
		{"r", runeKey('r'), core.ActionRestart, false},
		{"q", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action {
				t.Errorf("MapKey(%q) action = %v, want %v", tt.msg.String(), action, tt.action)
			}
			if quit != tt.quit {
				t.Errorf("MapKey(%q) quit = %v, want %v", tt.msg.String(), quit, tt.quit)
			}
		})
	}
}

func testTiming() KeyTiming {
	return KeyTiming{Initial: 500 * time.Millisecond, Repeat: 100 * time.Millisecond}
}

func TestKeyTrackerPressIsEdge(t *testing.T) {
	k := NewKeyTracker(testTiming())
	t0 := time.Unix(0, 0)

	k.Observe(core.ActionJump, t0)
	f := k.Frame(t0.Add(10 * time.Millisecond))
	if !f.WasPressed(core.ActionJump) || !f.IsHeld(core.ActionJump) {
		t.Fatalf("first frame should press and hold jump: %+v", f)
	}

	// Auto-repeat keeps the key held but does not press it again.
	k.Observe(core.ActionJump, t0.Add(400*time.Millisecond))
	f = k.Frame(t0.Add(410 * time.Millisecond))
	if f.WasPressed(core.ActionJump) {
		t.Error("auto-repeat must not be a new press")
	}
	if !f.IsHeld(core.ActionJump) {
		t.Error("jump should still be held")
	}
}

func TestKeyTrackerHoldWindows(t *testing.T) {
	k := NewKeyTracker(testTiming())
	t0 := time.Unix(0, 0)

	k.Observe(core.ActionRight, t0)

	// Held through the initial repeat delay.
	if f := k.Frame(t0.Add(450 * time.Millisecond)); !f.IsHeld(core.ActionRight) {
		t.Error("right should be held inside the initial window")
	}

	// Once repeating, the window shrinks.
	k.Observe(core.ActionRight, t0.Add(480*time.Millisecond))
	if f := k.Frame(t0.Add(560 * time.Millisecond)); !f.IsHeld(core.ActionRight) {
		t.Error("right should be held inside the repeat window")
	}
	if f := k.Frame(t0.Add(700 * time.Millisecond)); f.IsHeld(core.ActionRight) {
		t.Error("right should be released after the repeat window")
	}

	// A press after release is a fresh press.
	k.Observe(core.ActionRight, t0.Add(2*time.Second))
	if f := k.Frame(t0.Add(2 * time.Second)); !f.WasPressed(core.ActionRight) {
		t.Error("expected a new press after release")
	}
}

func TestKeyTrackerOppositeDirections(t *testing.T) {
	k := NewKeyTracker(testTiming())
	t0 := time.Unix(0, 0)

	k.Observe(core.ActionLeft, t0)
	k.Observe(core.ActionRight, t0.Add(50*time.Millisecond))

	f := k.Frame(t0.Add(60 * time.Millisecond))
	if f.IsHeld(core.ActionLeft) {
		t.Error("left should be dropped when right is pressed")
	}
	if f.WasPressed(core.ActionLeft) {
		t.Error("a dropped direction must not report its pending press")
	}
	if !f.WasPressed(core.ActionRight) {
		t.Error("right press should be reported")
	}
	if f.Horizontal() != 1 {
		t.Errorf("Horizontal() = %v, want 1", f.Horizontal())
	}
}

func TestKeyTrackerPressConsumed(t *testing.T) {
	k := NewKeyTracker(testTiming())
	t0 := time.Unix(0, 0)

	k.Observe(core.ActionPause, t0)
	k.Frame(t0)

	if f := k.Frame(t0.Add(time.Millisecond)); f.WasPressed(core.ActionPause) {
		t.Error("a press must be reported on one frame only")
	}

	k.Observe(core.ActionNone, t0)
	k.Reset()
	if f := k.Frame(t0.Add(2 * time.Millisecond)); len(f.Held) != 0 || len(f.Pressed) != 0 {
		t.Errorf("Reset should forget every key, got %+v", f)
	}
}

func TestFPSMeter(t *testing.T) {
	var m fpsMeter
	t0 := time.Unix(0, 0)

	if got := m.tick(t0); got != 0 {
		t.Errorf("first tick fps = %v, want 0", got)
	}
	if got := m.tick(t0.Add(50 * time.Millisecond)); got < 19.99 || got > 20.01 {
		t.Errorf("second tick fps = %v, want 20", got)
	}
	// Smoothed towards the new rate, not jumping to it.
	got := m.tick(t0.Add(60 * time.Millisecond))
	if got <= 20 || got >= 100 {
		t.Errorf("smoothed fps = %v, want between 20 and 100", got)
	}
}
