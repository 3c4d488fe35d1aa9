// lander runs lunar lander matches between bot teams in the terminal.
//
// Usage:
//
//	lander run               - Run a headless match between bots
//	lander play              - Fly a lander yourself against bots
//	lander serve             - Start SSH server for remote play
//	lander bots              - List available bots
//	lander scores [team]     - Show standings or a team's history
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 30)
//	--seed <value>     - Set RNG seed for reproducible terrain and hazards
//	--config <path>    - Load a YAML config file
//	--preset <name>    - Apply a gameplay preset (casual, standard, hardcore)
//	--db <path>        - Set database path (default: ~/.moonlander/matches.db)
//	--scores <path>    - Set score ledger path (default: scores.txt)
//	--test             - Neither load nor save scores
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import bots to register them
	_ "github.com/vovakirdan/moonlander/internal/bots"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagConfigPath string
	flagPreset     string
	flagDBPath     string
	flagScoresPath string
	flagLogLevel   string
	flagTestMode   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lander",
	Short: "Moon Lander - Bot arena for lunar landers",
	Long: `Moon Lander simulates lunar landers on procedurally generated terrain.
Each lander is flown by a bot (or by you) while asteroids rain down and
carve craters into the ground. Land softly on flat ground to score.

Available commands:
  run      - Run a headless match between bots
  play     - Fly a lander yourself
  serve    - Start SSH server for remote play
  bots     - Show all available bots
  scores   - View standings

Examples:
  lander bots
  lander run --bot autopilot:apollo --bot chaos:gremlin
  lander play --team me --bot autopilot:apollo
  lander serve --ssh :2222
  lander scores apollo`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to a lander YAML config")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Gameplay preset: casual, standard or hardcore")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.moonlander/matches.db", "Path to match database")
	rootCmd.PersistentFlags().StringVar(&flagScoresPath, "scores", "scores.txt", "Path to the score ledger")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVar(&flagTestMode, "test", false, "Test mode: scores are neither loaded nor saved")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(botsCmd)
	rootCmd.AddCommand(scoresCmd)
}
