package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

const shutdownTimeout = 10 * time.Second

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file. It is generated on
	// first start if missing.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	// Zero disables the timeout.
	IdleTimeout time.Duration
}

// SSHServer serves the snake app to SSH clients. Every connection gets
// its own App; all of them share one score store.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  registry.Store
	theme  config.Theme
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
// A nil store serves games without persistence.
func NewSSHServer(cfg SSHServerConfig, store registry.Store, theme config.Theme, logger *log.Logger) (*SSHServer, error) {
	if cfg.HostKeyPath == "" {
		return nil, errors.New("host key path is required")
	}

	// Ensure host key directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.HostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		theme:  theme,
		logger: logger,
	}

	// Middlewares run last to first: logging wraps activeterm wraps the app.
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(cfg.HostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
	}
	if cfg.IdleTimeout > 0 {
		opts = append(opts, wish.WithIdleTimeout(cfg.IdleTimeout))
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates an App for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty() // activeterm rejects sessions without a PTY

	app := NewApp(AppOptions{
		Store:    s.store,
		Theme:    s.theme,
		Logger:   s.logger.With("user", sess.User()),
		Width:    pty.Window.Width,
		Height:   pty.Window.Height,
		Renderer: bubbletea.MakeRenderer(sess),
	})

	return app, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// ListenAndServe runs the server until ctx is cancelled, then shuts it
// down gracefully.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("starting SSH server", "address", s.config.Address)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("serving ssh: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("shutting down ssh: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
