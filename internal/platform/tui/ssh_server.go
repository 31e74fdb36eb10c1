package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

// shutdownGrace bounds how long open sessions get to finish on shutdown.
const shutdownGrace = 10 * time.Second

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	Address     string        // host:port, e.g. ":2222"
	HostKeyPath string        // Generated on first start; empty means ~/.sokoban/host_key
	DBPath      string        // Results database shared by every session
	IdleTimeout time.Duration // Idle sessions are disconnected after this long

	// Play is the level catalog and step budget policy. Each session builds
	// its own engines from it.
	Play PlayConfig
}

// DefaultSSHServerConfig returns the settings used when nothing is configured.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":2222",
		DBPath:      "~/.sokoban/scores.db",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer serves Sokoban over SSH. Every connection gets a SessionModel with
// its own puzzle state; the results store is the only shared resource.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store // nil when the database could not be opened
	logger *log.Logger
}

// NewSSHServer validates the config, opens the results store and prepares
// the Wish server. Nothing listens until ListenAndServe.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	if len(cfg.Play.Levels) == 0 {
		return nil, errors.New("no levels to serve")
	}

	keyPath, err := hostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	srv := &SSHServer{
		config: cfg,
		logger: log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "sokoban-ssh",
		}),
	}

	// Sessions still play without a database; results are just not kept.
	if srv.store, err = storage.Open(cfg.DBPath); err != nil {
		srv.logger.Warn("results will not be saved", "db", cfg.DBPath, "error", err)
		srv.store = nil
	}

	// Wish runs the last middleware first: log, require a PTY, then play.
	srv.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.newSession),
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(srv.logger, log.InfoLevel),
		),
	)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	return srv, nil
}

// hostKeyPath resolves the host key location and makes sure its directory
// exists so Wish can write a fresh key there.
func hostKeyPath(p string) (string, error) {
	if p == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		p = filepath.Join(home, ".sokoban", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return p, nil
}

// newSession builds the level picker for one SSH connection. Attempts are
// saved and logged under the SSH user name.
func (s *SSHServer) newSession(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()

	model := NewSessionModel(SessionOptions{
		Play:     s.config.Play,
		Store:    s.store,
		Config:   core.RuntimeConfig{ScreenW: pty.Window.Width, ScreenH: pty.Window.Height},
		Username: sess.User(),
		Logger:   s.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String()),
	})
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// ListenAndServe accepts connections until SIGINT or SIGTERM, then shuts
// down gracefully. It returns early if the listener fails.
func (s *SSHServer) ListenAndServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s.logger.Info("listening", "address", s.config.Address, "levels", len(s.config.Play.Levels))

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down")
		return s.Shutdown()
	case err := <-errCh:
		s.logger.Error("listener failed", "error", err)
		s.closeStore()
		return err
	}
}

// Shutdown stops accepting connections, waits for open sessions up to a
// grace period and closes the results store.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn("closing results database", "error", err)
	}
	s.store = nil
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
