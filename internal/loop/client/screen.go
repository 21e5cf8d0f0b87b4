package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/skyraid/internal/draw"
	"github.com/tomz197/skyraid/internal/loop/session"
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	snap := c.session.Snapshot()
	v := c.state.viewFor(snap.State)

	// On view changes do a full terminal clear so text from the previous
	// view doesn't persist on screen.
	if v != c.state.prevView {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevView = v
	}

	c.canvas.Clear()
	switch v {
	case viewPlaying, viewPaused, viewGameOver:
		drawBoard(c.canvas, snap)
	}

	c.canvas.Render(c.chunkWriter)
	c.canvas.RenderBorder(c.chunkWriter)

	c.drawUI(v, snap)

	return c.chunkWriter.Flush()
}

// drawUI draws the text overlay for the view.
func (c *Client) drawUI(v view, snap *session.Snapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	switch v {
	case viewShutdown:
		c.drawShutdownScreen(centerX, centerY)
	case viewInactive:
		c.drawInactivityScreen(centerX, centerY)
	case viewStart:
		c.drawStartScreen(centerX, centerY)
	case viewPlaying:
		c.drawHUD(termWidth, termHeight, snap)
	case viewPaused:
		c.drawHUD(termWidth, termHeight, snap)
		c.drawPausedScreen(centerX, centerY)
	case viewGameOver:
		c.drawHUD(termWidth, termHeight, snap)
		c.drawGameOverScreen(centerX, centerY, snap)
	}
}

// writeCentered writes each line centred on centerX starting at row.
func (c *Client) writeCentered(centerX, row int, lines ...string) {
	width := 0
	for _, line := range lines {
		width = max(width, len([]rune(line)))
	}
	for i, line := range lines {
		c.chunkWriter.WriteAt(max(centerX-width/2, 1), row+i, line)
	}
}

// blink reports whether a blinking prompt is in its visible phase.
func blink() bool {
	return time.Now().UnixMilli()/600%2 == 0
}

// drawHUD draws score, level and lives on the top row and key hints on the
// bottom row. Fields are fixed width so shrinking values leave no residue.
func (c *Client) drawHUD(termWidth, termHeight int, snap *session.Snapshot) {
	cw := c.chunkWriter

	left := fmt.Sprintf("Score: %-7d Lv %-3d", snap.Score, snap.Level)
	cw.WriteAt(2, 1, left)
	c.canvas.MarkTextDirty(2, 1, len(left))

	lives := fmt.Sprintf("%-*s", 5, strings.Repeat("♥", min(snap.Lives, 5)))
	livesCol := max(termWidth-len([]rune(lives)), 1)
	cw.WriteStyledAt(livesCol, 1, draw.ColorBrightRed, lives)
	c.canvas.MarkTextDirty(livesCol, 1, 5)

	hint := "P pause  Q quit"
	cw.WriteStyledAt(2, termHeight, draw.ColorDim, hint)
	c.canvas.MarkTextDirty(2, termHeight, len(hint))
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerX, centerY int) {
	titleArt := []string{
		`  ___ _  ____   _____    _   ___ ___  `,
		` / __| |/ /\ \ / / _ \  /_\ |_ _|   \ `,
		` \__ \ ' <  \ V /|   / / _ \ | || |) |`,
		` |___/_|\_\  |_| |_|_\/_/ \_\___|___/ `,
	}
	titleStartY := centerY - 8
	c.writeCentered(centerX, titleStartY, titleArt...)

	subtitle := "~ hold the line ~"
	c.writeCentered(centerX, titleStartY+len(titleArt)+1, subtitle)

	controlsY := titleStartY + len(titleArt) + 3
	controls := []string{
		"Controls",
		"",
		"A D / < > . . . . . Move",
		"SPACE (hold)  . . . Fire",
		"P . . . . . . . .  Pause",
		"R . . . . . . .  Restart",
		"Q . . . . . . . . . Quit",
	}
	c.writeCentered(centerX, controlsY, controls...)

	if blink() {
		c.writeCentered(centerX, controlsY+len(controls)+1, ">>  Press SPACE to Start  <<")
	}
}

// drawPausedScreen draws the pause notice over the frozen board.
func (c *Client) drawPausedScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-1, "P A U S E D")
	c.writeCentered(centerX, centerY+1, "Press P to resume")
}

// drawGameOverScreen draws the final score and the restart prompt.
func (c *Client) drawGameOverScreen(centerX, centerY int, snap *session.Snapshot) {
	titleArt := []string{
		`   ___   _   __  __ ___    _____   _____ ___  `,
		`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
		` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
		`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
	}
	titleStartY := centerY - 5
	c.writeCentered(centerX, titleStartY, titleArt...)

	score := fmt.Sprintf("Score: %d   Level: %d", snap.Score, snap.Level)
	c.writeCentered(centerX, titleStartY+len(titleArt)+1, score)

	if blink() {
		c.writeCentered(centerX, titleStartY+len(titleArt)+3, ">>  Press R to Restart  <<")
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	left := c.opts.InactivityDisconnect - time.Since(c.state.lastInput)
	c.writeCentered(centerX, centerY-2, "INACTIVITY WARNING")
	c.writeCentered(centerX, centerY,
		fmt.Sprintf("Disconnecting in %d seconds.", max(int(left.Seconds()), 0)))
	c.writeCentered(centerX, centerY+2, "Press any key to continue")
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-3, "SERVER SHUTTING DOWN")
	c.writeCentered(centerX, centerY-1,
		"The server is restarting for maintenance.",
		"Please reconnect in a moment.",
	)

	remaining := int(c.state.shutdownTimer.Seconds()) + 1
	c.writeCentered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining))
	c.writeCentered(centerX, centerY+4, "Press Q to disconnect now")
}
