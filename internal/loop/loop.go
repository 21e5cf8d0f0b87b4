// Package loop wires a game session to a local terminal.
package loop

import (
	"bufio"
	"io"

	"github.com/charmbracelet/log"
	"github.com/tomz197/skyraid/internal/loop/client"
	"github.com/tomz197/skyraid/internal/loop/config"
	"github.com/tomz197/skyraid/internal/loop/session"
)

// Run plays one session on the terminal behind r and w until the player quits.
func Run(r *bufio.Reader, w io.Writer, cfg config.Config, logger *log.Logger) error {
	sess, err := session.New(cfg, session.Options{Logger: logger.With("session", "local")})
	if err != nil {
		return err
	}

	c := client.NewClient(sess, r, w, client.Options{Logger: logger})
	if err := c.Run(); err != nil {
		return err
	}

	logger.Info("session ended", "score", sess.Score(), "level", sess.Level())
	return nil
}
