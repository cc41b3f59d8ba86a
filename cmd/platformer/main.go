// platformer is a terminal platformer: ride moving platforms, with a
// scriptable HUD.
//
// Usage:
//
//	platformer play [game]     - Play in the terminal (default: platformer)
//	platformer sim [game]      - Run headless with scripted input
//	platformer list            - List available games
//	platformer history [game]  - Show recorded runs
//
// Global flags:
//
//	--fps <rate>         - Tick rate; the physics step is 1/fps seconds (default: 60)
//	--config <path>      - Custom game config YAML
//	--script <path>      - HUD script, overriding the config
//	--preset <name>      - Speed preset: easy, normal, hard
//	--db <path>          - Run history database (default: ~/.platformer/runs.db)
//	--log-level <level>  - debug, info, warn, error (default: info)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
)

var (
	// Global flags
	flagFPS      int
	flagConfig   string
	flagScript   string
	flagPreset   string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "platformer",
	Short: "Ride moving platforms in your terminal",
	Long: `A terminal platformer. A player and a set of reversing platforms share
a rigid-body world; stand on a platform and it carries you along.
A JavaScript HUD script runs every frame.

Available commands:
  play     - Play in the terminal
  sim      - Run headless with scripted input
  list     - Show all available games
  history  - View recorded runs

Examples:
  platformer play
  platformer play --preset hard --script ./hud.js
  platformer sim --frames 600 --hold right --jump-every 90
  platformer history --limit 20`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagFPS <= 0 {
			return fmt.Errorf("--fps must be positive, got %d", flagFPS)
		}
		preset, err := config.ParsePreset(flagPreset)
		if err != nil {
			return err
		}
		platformer.SetConfigPath(flagConfig)
		platformer.SetScriptPath(flagScript)
		platformer.SetPreset(preset)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagScript, "script", "", "Path to HUD script (overrides the config)")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Speed preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.platformer/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(historyCmd)
}

// gameArg returns the game named on the command line, or the platformer.
func gameArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return platformer.GameID
}
