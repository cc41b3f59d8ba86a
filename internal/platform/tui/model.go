package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// Model is the Bubble Tea model for running a game.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	store     *storage.Store
	logger    *log.Logger
	config    core.RuntimeConfig
	mapper    *KeyMapper
	keys      *KeyTracker
	meter     *fpsMeter
	gameState core.GameState
	started   time.Time
	quitting  bool
	err       error // Fatal error that ended the run
	now       func() time.Time
}

// NewModel creates a new Bubble Tea model for a game that has already been Reset.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:     store,
		logger:    logger,
		config:    cfg,
		mapper:    NewKeyMapper(),
		keys:      NewKeyTracker(DefaultKeyTiming()),
		meter:     &fpsMeter{},
		gameState: game.State(),
		started:   time.Now(),
		now:       time.Now,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey feeds the key tracker. Quit and screenshots act immediately.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.mapper.MapKey(msg)
	if isQuit {
		m.saveRun(storage.EndQuit)
		m.quitting = true
		return m, tea.Quit
	}
	m.keys.Observe(action, m.now())
	return m, nil
}

// handleTick runs one frame of the game.
func (m Model) handleTick(t time.Time) (tea.Model, tea.Cmd) {
	if fa, ok := m.game.(registry.FPSAware); ok {
		fa.SetMeasuredFPS(m.meter.tick(t))
	}

	in := m.keys.Frame(m.now())

	if in.WasPressed(core.ActionRestart) {
		m.saveRun(storage.EndQuit)
		if err := m.game.Reset(m.config); err != nil {
			m.err = err
			m.quitting = true
			return m, tea.Quit
		}
		m.keys.Reset()
		m.gameState = m.game.State()
		m.started = m.now()
		m.logger.Info("run restarted")
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(in)
	m.gameState = result.State
	if result.Err != nil {
		m.err = result.Err
		m.saveRun(storage.EndFault)
		m.quitting = true
		return m, tea.Quit
	}

	return m, tickCmd(m.config.TickRate)
}

// saveRun records the current run. Runs that never advanced are skipped.
func (m *Model) saveRun(reason string) {
	if m.store == nil || m.gameState.Frame == 0 {
		return
	}
	run := storage.Run{
		GameID:     m.game.ID(),
		Frames:     m.gameState.Frame,
		RideFrames: m.gameState.RideFrames,
		Jumps:      m.gameState.Jumps,
		Flips:      m.gameState.Flips,
		Duration:   m.now().Sub(m.started),
		ScriptName: m.gameState.Script,
		ScriptHash: m.gameState.ScriptHash,
		EndReason:  reason,
	}
	id, err := m.store.SaveRun(run)
	if err != nil {
		m.logger.Warn("run not saved", "err", err)
		return
	}
	m.logger.Info("run saved", "id", id, "frames", run.Frames, "ride_frames", run.RideFrames, "end", reason)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".platformer", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), m.now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Err returns the error that ended the run, if any.
func (m Model) Err() error {
	return m.err
}

// Run resets the game and runs it until the player quits or the game fails.
// A script fault is returned as the run's error.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	if err := game.Reset(cfg); err != nil {
		return err
	}

	p := tea.NewProgram(
		NewModel(game, store, cfg, logger),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}
