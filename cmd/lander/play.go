package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/moonlander/internal/platform/tui"
)

var (
	flagPlayTeam    string
	flagPlayBots    []string
	flagPlayLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Fly a lander yourself",
	Long: `Fly the lander of --team with the keyboard while bots fly the rest.

Controls:
  up, w, space  - Main engine
  left, a       - Rotate left
  right, d      - Rotate right
  p             - Pause
  q             - Quit

Examples:
  lander play
  lander play --team me --bot autopilot:apollo --bot chaos:gremlin
  lander play --preset casual`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayTeam, "team", "pilot", "Your team name")
	playCmd.Flags().StringArrayVar(&flagPlayBots, "bot", []string{"autopilot:apollo"}, "Bot as kind:team (repeatable)")
	playCmd.Flags().StringVar(&flagPlayLogFile, "log-file", "", "Write match logs to this file")
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, err := newLogger()
	if err != nil {
		fail("%v", err)
	}
	cfg, err := loadConfig()
	if err != nil {
		fail("loading config: %v", err)
	}
	recs, err := openRecorders(logger)
	if err != nil {
		fail("opening scores: %v", err)
	}
	defer recs.Close()

	// Log lines would tear the alt screen.
	logger.SetOutput(io.Discard)
	if flagPlayLogFile != "" {
		f, err := os.OpenFile(flagPlayLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fail("opening log file: %v", err)
		}
		defer f.Close()
		logger.SetOutput(f)
	}

	m, err := newMatch(cfg, flagPlayBots, flagPlayTeam, recs, logger)
	if err != nil {
		fail("creating match: %v", err)
	}

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	err = tui.Run(m, tui.Options{TickRate: flagFPS, Width: width, Height: height})
	if err != nil {
		recs.Close()
		fail("%v", err)
	}
	if res, ok := m.Result(); ok {
		printResult(res)
	}
}
