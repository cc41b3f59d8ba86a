// Package tui provides the Bubble Tea frontend for the platformer.
// It handles the terminal UI loop, input tracking, and run bookkeeping.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// fpsMeter estimates the frame rate from tick timestamps with an
// exponential moving average.
type fpsMeter struct {
	last time.Time
	fps  float64
}

// smoothing is the weight of the newest sample.
const smoothing = 0.1

// tick records a frame at t and returns the current estimate, 0 until two
// frames have been seen.
func (m *fpsMeter) tick(t time.Time) float64 {
	if !m.last.IsZero() {
		if dt := t.Sub(m.last).Seconds(); dt > 0 {
			sample := 1 / dt
			if m.fps == 0 {
				m.fps = sample
			} else {
				m.fps += smoothing * (sample - m.fps)
			}
		}
	}
	m.last = t
	return m.fps
}
