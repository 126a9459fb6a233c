package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the snake SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the difficulty menu.
Scores are stored per-server (all users share the same best scores).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, uses ssh.host_key from config, generated on first start

Examples:
  snake serve                           # Listen on :23234
  snake serve --ssh :2222               # Listen on port 2222
  snake serve --host-key ./my_host_key  # Use specific host key
  snake serve --idle-timeout 10m        # Drop idle clients sooner

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (default from config)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (default from config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("ssh") {
		cfg.SSH.Address = flagSSHAddr
	}
	if flags.Changed("host-key") {
		cfg.SSH.HostKey = flagHostKey
	}
	if flags.Changed("idle-timeout") {
		cfg.SSH.IdleTimeout = flagIdleTimeout
	}

	theme, err := cfg.Theme.Resolve()
	if err != nil {
		return err
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "snake-ssh",
	})

	hostKey := cfg.SSH.HostKey
	if hostKey == "" {
		hostKey = filepath.Join(config.Dir(), "ssh_host_ed25519")
	}
	if hostKey, err = storage.ExpandPath(hostKey); err != nil {
		return err
	}

	store := openStore(cfg, logger)
	defer store.Close()

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     cfg.SSH.Address,
		HostKeyPath: hostKey,
		IdleTimeout: cfg.SSH.IdleTimeout,
	}, store, theme, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Starting snake SSH server on %s\n", server.Addr())
	if _, port, splitErr := net.SplitHostPort(server.Addr()); splitErr == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Connect with: ssh localhost -p %s\n", port)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")

	return server.ListenAndServe(ctx)
}
