// Command ssh serves the game to SSH clients, one private game per session.
package main

import (
	"context"
	"errors"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/scores"
)

const shutdownTimeout = 5 * time.Second

// serverConfig is read from the environment.
type serverConfig struct {
	Addr    string // SSH_HOST and SSH_PORT
	HostKey string // SSH_HOST_KEY
	Paths   config.Paths
}

func loadServerConfig() serverConfig {
	return serverConfig{
		Addr:    net.JoinHostPort(config.GetEnv("SSH_HOST", "::"), config.GetEnv("SSH_PORT", "2222")),
		HostKey: config.GetEnv("SSH_HOST_KEY", "/app/keys/host_key"),
		Paths:   config.PathsFromEnv(),
	}
}

func main() {
	logger := config.NewLogger(os.Stderr, "ssh")
	cfg := loadServerConfig()
	logger.Info("config", "addr", cfg.Addr, "hostKey", cfg.HostKey, "db", cfg.Paths.DB)

	// Every session shares the store; histories are keyed by SSH user.
	games := &gameHandler{logger: logger, settings: cfg.Paths.LoadSettings(logger)}
	if db, err := scores.OpenSQLite(cfg.Paths.DB); err != nil {
		logger.Warn("score history disabled", "path", cfg.Paths.DB, "err", err)
	} else {
		defer db.Close()
		games.store = db
	}

	srv, err := newServer(cfg, games, logger)
	if err != nil {
		logger.Fatal("create server", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, srv, logger); err != nil {
		logger.Fatal("server error", "err", err)
	}
	logger.Info("server stopped", "sessions", games.active())
}

// newServer builds the wish server. Middleware runs bottom-up: logging, then
// the PTY check, then the game.
func newServer(cfg serverConfig, games *gameHandler, logger *log.Logger) (*ssh.Server, error) {
	opts := []ssh.Option{
		wish.WithAddress(cfg.Addr),
		wish.WithMiddleware(
			games.middleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		ssh.WrapConn(noDelay),
	}
	if cfg.HostKey != "" {
		opts = append(opts, wish.WithHostKeyPath(cfg.HostKey))
	}
	return wish.NewServer(opts...)
}

// noDelay disables Nagle's algorithm so key presses are not batched.
func noDelay(_ ssh.Context, conn net.Conn) net.Conn {
	if tcp, ok := conn.(*net.TCPConn); ok {
		_ = tcp.SetNoDelay(true)
	}
	return conn
}

// serve runs srv until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, srv *ssh.Server, logger *log.Logger) error {
	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return err
	}
	return nil
}
