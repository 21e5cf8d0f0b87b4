// Package client renders one game session to a terminal and feeds it input.
package client

import (
	"bufio"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/skyraid/internal/draw"
	"github.com/tomz197/skyraid/internal/input"
	"github.com/tomz197/skyraid/internal/loop/config"
	"github.com/tomz197/skyraid/internal/loop/session"
)

// Client handles rendering and input for a single terminal.
type Client struct {
	session      *session.Session
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates one frame of output
	writer       io.Writer
	inputStream  *input.Stream
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger
	opts         Options
}

// Options configures the client.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Logger       *log.Logger

	// Shutdown is closed when the server is going away. The client then shows
	// a notice for ShutdownDisplay and disconnects.
	Shutdown        <-chan struct{}
	ShutdownDisplay time.Duration

	// Zero disables the inactivity warning and disconnect.
	InactivityWarn       time.Duration
	InactivityDisconnect time.Duration
}

// NewClient creates a client driving sess. The session is started from the
// title screen and stopped when Run returns.
func NewClient(sess *session.Session, r *bufio.Reader, w io.Writer, opts Options) *Client {
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.ShutdownDisplay <= 0 {
		opts.ShutdownDisplay = time.Duration(config.ShutdownDisplaySeconds * float64(time.Second))
	}

	board := sess.Board()
	termWidth, termHeight, _ := opts.TermSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := fitBoard(termWidth, termHeight, board.Width, board.Height)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, board.Width, board.Height)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		session:      sess,
		state:        NewClientState(time.Now()),
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  input.StartStream(r),
		termSizeFunc: opts.TermSizeFunc,
		logger:       opts.Logger,
		opts:         opts,
	}
}

// Run starts the client loop. Blocks until the player quits, the input
// closes, the client idles out or the shutdown notice ends.
func (c *Client) Run() error {
	draw.EnterAltScreen(c.writer)
	draw.HideCursor(c.writer)
	defer draw.ExitAltScreen(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	defer c.session.StopGame()

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		if err := c.processInput(frameStart); err != nil {
			return err
		}

		c.processShutdown()

		c.updateScreen()

		if err := c.drawFrame(); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads the frame's keys and applies them to the session.
func (c *Client) processInput(now time.Time) error {
	in := input.ReadInput(c.inputStream)
	c.state.Input = in

	idle := now.Sub(c.state.lastInput)
	switch {
	case len(in.Pressed) > 0:
		c.state.lastInput = now
		c.state.isInactive = false
	case c.opts.InactivityDisconnect > 0 && idle > c.opts.InactivityDisconnect:
		c.logger.Info("disconnecting inactive client", "idle", idle.Round(time.Second))
		c.state.Running = false
	case c.opts.InactivityWarn > 0 && idle > c.opts.InactivityWarn:
		c.state.isInactive = true
	}

	if in.Quit {
		c.state.Running = false
		return nil
	}
	if c.state.shuttingDown {
		return nil
	}

	switch c.session.State() {
	case session.GameStateStopped:
		if in.Fire || in.Enter {
			return c.startGame()
		}
	case session.GameStateRunning, session.GameStatePaused:
		c.session.SetMoveLeft(in.Left)
		c.session.SetMoveRight(in.Right)
		c.session.SetFiring(in.Fire)
		if in.Pause {
			c.session.TogglePause()
		}
	case session.GameStateGameOver:
		if in.Restart {
			input.ResetKeyInput(c.inputStream)
			if _, err := c.session.Restart(); err != nil {
				return err
			}
		}
	}
	return nil
}

// startGame leaves the title screen.
func (c *Client) startGame() error {
	input.ResetKeyInput(c.inputStream)
	return c.session.StartGame()
}

// processShutdown switches to the shutdown notice once the server signals it
// and ends the loop when the notice has been shown long enough.
func (c *Client) processShutdown() {
	if !c.state.shuttingDown {
		select {
		case <-c.opts.Shutdown:
			c.state.shuttingDown = true
			c.state.shutdownTimer = c.opts.ShutdownDisplay
			c.session.StopGame()
		default:
		}
		return
	}

	c.state.shutdownTimer -= c.state.delta
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}

// updateScreen handles terminal resize. On actual size changes it clears the
// terminal to remove pixels outside the new render area.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	board := c.session.Board()
	renderWidth, renderHeight, offsetCol, offsetRow := fitBoard(termWidth, termHeight, board.Width, board.Height)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}
