package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play in the terminal",
	Long: `Start playing. Stand on a moving platform to be carried along.

Controls:
  Left/A, Right/D  - Move
  Space/Up/W       - Jump
  P/Esc            - Pause
  R                - Restart
  Ctrl+S           - Save a text screenshot
  Q/Ctrl+C         - Quit

The run is recorded in the history database when it ends. Logs go to
~/.platformer/platformer.log.

Examples:
  platformer play
  platformer play --preset easy
  platformer play --script ./my-hud.js --fps 30`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := gameArg(args)
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q; run 'platformer list' to see available games", gameID)
	}

	var logOut io.Writer = io.Discard
	if f, err := openLogFile(); err == nil {
		defer f.Close()
		logOut = f
	} else {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	logger, err := newLogger(logOut, "play")
	if err != nil {
		return err
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// The game still works without history.
		logger.Warn("could not open run database", "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	logger.Info("starting", "game", gameID, "size", fmt.Sprintf("%dx%d", width, height), "fps", flagFPS)
	if err := tui.Run(game, store, cfg, logger); err != nil {
		logger.Error("run ended with error", "err", err)
		return err
	}
	return nil
}
