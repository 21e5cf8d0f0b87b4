package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"
	"github.com/tomz197/skyraid/internal/config"
	"github.com/tomz197/skyraid/internal/draw"
	"github.com/tomz197/skyraid/internal/loop/client"
	gameconfig "github.com/tomz197/skyraid/internal/loop/config"
	"github.com/tomz197/skyraid/internal/loop/session"
	"golang.org/x/sync/errgroup"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"

	shutdownWait = 15 * time.Second
)

func main() {
	if err := config.Load(); err != nil {
		log.Fatal("failed to load .env", "err", err)
	}
	logger, err := config.NewLogger(os.Stderr, "skyraid")
	if err != nil {
		logger.Fatal("invalid log level", "err", err)
	}
	cfg, err := gameconfig.FromEnv()
	if err != nil {
		logger.Fatal("invalid game configuration", "err", err)
	}

	host := config.GetEnv("SKYRAID_SSH_HOST", defaultHost)
	port := config.GetEnv("SKYRAID_SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SKYRAID_SSH_HOST_KEY", defaultHostKeyPath)
	logger.Info("SSH config", "host", host, "port", port, "hostKeyPath", hostKeyPath)

	games := newGameServer(cfg, logger)

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			games.middleware,
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting SSH server", "addr", s.Addr)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down server, notifying players", "players", games.Players())
		if !games.drain(shutdownWait) {
			logger.Warn("players still connected after shutdown notice", "players", games.Players())
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server error", "err", err)
	}
	logger.Info("server stopped")
}

// gameServer gives every SSH connection its own game session and tracks them
// for graceful shutdown.
type gameServer struct {
	cfg    gameconfig.Config
	logger *log.Logger

	mu       sync.Mutex
	closed   bool
	shutdown chan struct{}
	active   sync.WaitGroup
	players  int
}

func newGameServer(cfg gameconfig.Config, logger *log.Logger) *gameServer {
	return &gameServer{
		cfg:      cfg,
		logger:   logger,
		shutdown: make(chan struct{}),
	}
}

// begin registers a connection. It fails once shutdown has started.
func (g *gameServer) begin() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return false
	}
	g.active.Add(1)
	g.players++
	return true
}

func (g *gameServer) end() {
	g.mu.Lock()
	g.players--
	g.mu.Unlock()
	g.active.Done()
}

// Players returns the number of connected players.
func (g *gameServer) Players() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.players
}

// drain tells every client to show the shutdown notice and waits up to
// timeout for them to disconnect. Reports whether all of them did.
func (g *gameServer) drain(timeout time.Duration) bool {
	g.mu.Lock()
	if !g.closed {
		g.closed = true
		close(g.shutdown)
	}
	g.mu.Unlock()

	done := make(chan struct{})
	go func() {
		g.active.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}

// middleware handles SSH sessions and runs the game client.
func (g *gameServer) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}
		if !g.begin() {
			fmt.Fprintln(sess, "Server is shutting down. Please reconnect in a moment.")
			return
		}
		defer g.end()

		logger := g.logger.With("session", uuid.NewString(), "user", sess.User())
		logger.Info("new game session", "terminal", pty.Term,
			"size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		gs, err := session.New(g.cfg, session.Options{Logger: logger})
		if err != nil {
			logger.Error("create session", "err", err)
			return
		}

		c := client.NewClient(gs, bufio.NewReader(sess), sess, client.Options{
			TermSizeFunc:         sizeTracker.getSize,
			Logger:               logger,
			Shutdown:             g.shutdown,
			InactivityWarn:       gameconfig.InactivityWarnUser * time.Second,
			InactivityDisconnect: gameconfig.InactivityDisconnectUser * time.Second,
		})
		if err := c.Run(); err != nil {
			logger.Error("game error", "err", err)
		}

		logger.Info("session ended", "score", gs.Score(), "level", gs.Level())
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
