// Package server serves ObvOS desktops over SSH.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"charm.land/wish/v2"
	"charm.land/wish/v2/bubbletea"
	"charm.land/wish/v2/logging"
	"github.com/charmbracelet/ssh"

	"github.com/obvos/obvos/internal/app"
	"github.com/obvos/obvos/internal/catalog"
	"github.com/obvos/obvos/internal/config"
	"github.com/obvos/obvos/internal/input"
)

const shutdownTimeout = 5 * time.Second

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	Host    string
	Port    string
	KeyPath string

	// UserConfig is shared by every session; each desktop works on its own copy.
	UserConfig *config.UserConfig
	Catalog    *catalog.Catalog
	Logger     *log.Logger
}

// DefaultHostKeyPath returns ~/.ssh/obvos_host_key.
func DefaultHostKeyPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".ssh", "obvos_host_key"), nil
}

// StartSSHServer runs the SSH server until ctx is cancelled. Every connection
// gets an independent desktop.
func StartSSHServer(ctx context.Context, cfg *SSHServerConfig) error {
	if cfg.UserConfig == nil {
		cfg.UserConfig = config.DefaultConfig()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Catalog == nil {
		cat, err := cfg.UserConfig.Catalog()
		if err != nil {
			return err
		}
		cfg.Catalog = cat
	}

	hostKeyPath := cfg.KeyPath
	if hostKeyPath == "" {
		p, err := DefaultHostKeyPath()
		if err != nil {
			return err
		}
		hostKeyPath = p
	}

	app.SetInputHandler(input.HandleInput)

	server, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(cfg.Host, cfg.Port)),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			// Bubble Tea middleware for interactive sessions
			bubbletea.Middleware(newTeaHandler(cfg)),
			// Logging middleware for connection tracking
			logging.Middleware(),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create SSH server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		cfg.Logger.Info("Starting SSH server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- fmt.Errorf("SSH server: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	cfg.Logger.Info("Shutting down SSH server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newTeaHandler creates a desktop for each SSH session.
func newTeaHandler(cfg *SSHServerConfig) bubbletea.Handler {
	return func(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, active := sess.Pty()
		if !active {
			wish.Fatalln(sess, "obvos needs an interactive terminal; connect with ssh -t")
			return nil, nil
		}

		userConfig := *cfg.UserConfig
		logger := cfg.Logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())

		desktop := app.NewDesktop(app.Options{
			Config:  &userConfig,
			Catalog: cfg.Catalog,
			Width:   pty.Window.Width,
			Height:  pty.Window.Height,
			Logger:  logger,
		})
		logger.Info("session started", "desktop", desktop.ID())

		return desktop, []tea.ProgramOption{
			tea.WithFPS(config.NormalFPS),
		}
	}
}
