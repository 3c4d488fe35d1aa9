package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/moonlander/internal/games/lander"
	"github.com/vovakirdan/moonlander/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeBots   []string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the lander SSH server",
	Long: `Start an SSH server that allows users to connect and fly.

Each SSH connection gets its own match. The SSH user name is the team the
user flies, against the bots given with --bot. Results from every session
go to the same score ledger and match database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.moonlander/host_key

Examples:
  lander serve                           # Listen on :23234 with auto-generated key
  lander serve --ssh :2222               # Listen on port 2222
  lander serve --host-key ./my_host_key  # Use specific host key
  lander serve --bot autopilot:apollo --bot chaos:gremlin

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringArrayVar(&flagServeBots, "bot", []string{"autopilot:apollo"}, "Bot as kind:team (repeatable)")
}

func runServe(_ *cobra.Command, _ []string) {
	logger, err := newLogger()
	if err != nil {
		fail("%v", err)
	}
	landerCfg, err := loadConfig()
	if err != nil {
		fail("loading config: %v", err)
	}
	recs, err := openRecorders(logger)
	if err != nil {
		fail("opening scores: %v", err)
	}
	defer recs.Close()

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
	}

	factory := func(user string) (*lander.Match, error) {
		if user == "" {
			user = "pilot"
		}
		return newMatch(landerCfg, flagServeBots, user, recs, logger.WithPrefix("match"))
	}

	server, err := tui.NewSSHServer(cfg, factory, logger.WithPrefix("lander-ssh"))
	if err != nil {
		recs.Close()
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting lander SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh <team>@localhost -p %s\n", port(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx); err != nil {
		recs.Close()
		fail("server: %v", err)
	}
}

// port extracts the port of a host:port address for the connect hint.
func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		return p
	}
	return addr
}
