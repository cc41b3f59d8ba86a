package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var (
	flagFrames    int
	flagHold      string
	flagJumpEvery int
	flagRender    bool
	flagNoSave    bool
)

var simCmd = &cobra.Command{
	Use:   "sim [game]",
	Short: "Run headless with scripted input",
	Long: `Run the frame pipeline without a terminal, as fast as possible.

Input is scripted: --hold keeps a direction held for the whole run and
--jump-every presses jump on every Nth frame, starting with the first.
The script's fps() reports the nominal tick rate.

Examples:
  platformer sim --frames 600
  platformer sim --frames 1200 --hold right --jump-every 90 --render
  platformer sim --script ./broken.js --log-level debug`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagFrames, "frames", 600, "Number of frames to run")
	simCmd.Flags().StringVar(&flagHold, "hold", "none", "Direction held for the run: left, right, none")
	simCmd.Flags().IntVar(&flagJumpEvery, "jump-every", 0, "Press jump every N frames (0 = never)")
	simCmd.Flags().BoolVar(&flagRender, "render", false, "Print the final frame as text")
	simCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the run in the history database")
}

// simScript describes the scripted input of a headless run.
type simScript struct {
	hold      core.Action // ActionLeft, ActionRight or ActionNone
	jumpEvery int
}

func parseHold(s string) (core.Action, error) {
	switch s {
	case "", "none":
		return core.ActionNone, nil
	case "left":
		return core.ActionLeft, nil
	case "right":
		return core.ActionRight, nil
	}
	return core.ActionNone, fmt.Errorf("invalid --hold %q: want left, right or none", s)
}

// input returns the input for a zero-based frame number.
func (s simScript) input(frame int) core.InputFrame {
	in := core.NewInputFrame()
	if s.hold != core.ActionNone {
		in.Hold(s.hold)
	}
	if s.jumpEvery > 0 && frame%s.jumpEvery == 0 {
		in.Press(core.ActionJump)
	}
	return in
}

// simulate runs game for frames steps. It stops at the first step error and
// returns the state reached.
func simulate(game registry.Game, frames int, script simScript) (core.GameState, error) {
	var st core.GameState
	for i := 0; i < frames; i++ {
		res := game.Step(script.input(i))
		st = res.State
		if res.Err != nil {
			return st, res.Err
		}
	}
	return st, nil
}

func runSim(cmd *cobra.Command, args []string) error {
	gameID := gameArg(args)
	if flagFrames <= 0 {
		return errors.New("--frames must be positive")
	}
	hold, err := parseHold(flagHold)
	if err != nil {
		return err
	}
	if flagJumpEvery < 0 {
		return errors.New("--jump-every must not be negative")
	}

	logger, err := newLogger(os.Stderr, "sim")
	if err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: flagFPS}
	if err := game.Reset(cfg); err != nil {
		return err
	}

	start := time.Now()
	st, runErr := simulate(game, flagFrames, simScript{hold: hold, jumpEvery: flagJumpEvery})
	elapsed := time.Since(start)

	end := storage.EndCompleted
	if runErr != nil {
		end = storage.EndFault
	}
	logger.Info("run finished",
		"frames", st.Frame,
		"ride_frames", st.RideFrames,
		"jumps", st.Jumps,
		"flips", st.Flips,
		"end", end,
		"wall", elapsed.Round(time.Millisecond))

	if !flagNoSave && st.Frame > 0 {
		saveSimRun(logger, gameID, st, end, cfg)
	}

	if flagRender {
		screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
		game.Render(screen)
		fmt.Println(screen.String())
	}

	fmt.Printf("frames=%d ride_frames=%d jumps=%d flips=%d end=%s\n",
		st.Frame, st.RideFrames, st.Jumps, st.Flips, end)
	return runErr
}

// saveSimRun records the run with its simulated duration. A missing
// database only costs the history entry.
func saveSimRun(logger *log.Logger, gameID string, st core.GameState, end string, cfg core.RuntimeConfig) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run database", "err", err)
		return
	}
	defer store.Close()

	id, err := store.SaveRun(storage.Run{
		GameID:     gameID,
		Frames:     st.Frame,
		RideFrames: st.RideFrames,
		Jumps:      st.Jumps,
		Flips:      st.Flips,
		Duration:   time.Duration(float64(st.Frame) * cfg.FixedDelta() * float64(time.Second)),
		ScriptName: st.Script,
		ScriptHash: st.ScriptHash,
		EndReason:  end,
	})
	if err != nil {
		logger.Warn("run not saved", "err", err)
		return
	}
	logger.Debug("run saved", "id", id)
}
