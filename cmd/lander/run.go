package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/moonlander/internal/feed"
	"github.com/vovakirdan/moonlander/internal/runner"
)

var (
	flagRunBots []string
	flagWSAddr  string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a headless match between bots",
	Long: `Run a match without a terminal UI. Every lander is flown by a bot,
given as kind:team. The ranked result is printed when the match ends.

With --ws, frames are streamed to WebSocket spectators at /ws.

Examples:
  lander run --bot autopilot:apollo --bot autopilot:luna
  lander run --bot autopilot:apollo --bot chaos:gremlin --seed 42
  lander run --bot autopilot:apollo --ws :8080`,
	Run: runRun,
}

func init() {
	runCmd.Flags().StringArrayVar(&flagRunBots, "bot", []string{"autopilot:apollo", "chaos:gremlin"}, "Bot as kind:team (repeatable)")
	runCmd.Flags().StringVar(&flagWSAddr, "ws", "", "Serve a spectator WebSocket feed on this address")
}

func runRun(_ *cobra.Command, _ []string) {
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

	m, err := newMatch(cfg, flagRunBots, "", recs, logger)
	if err != nil {
		fail("creating match: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := runner.Options{TickRate: flagFPS, Logger: logger}
	if flagWSAddr != "" {
		hub := feed.NewHub(logger)
		go hub.Run(ctx)

		srv := &http.Server{
			Addr:              flagWSAddr,
			Handler:           feed.NewMux(hub),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("spectator feed listening", "addr", flagWSAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("spectator feed", "err", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		opts.Sinks = append(opts.Sinks, hub)
	}

	res, err := runner.Run(ctx, m, opts)
	if errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Match %s interrupted at t=%.1fs\n", m.ID(), m.T())
		return
	}
	if err != nil {
		recs.Close()
		fail("match %s: %v", m.ID(), err)
	}
	printResult(res)
}
