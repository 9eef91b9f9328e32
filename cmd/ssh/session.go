package main

import (
	"bufio"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/loop"
	"github.com/tomz197/invaders/internal/scores"
)

// gameHandler runs one private game per SSH session.
type gameHandler struct {
	logger   *log.Logger
	store    scores.Store
	settings config.Settings

	sessions atomic.Int64
}

func (g *gameHandler) active() int {
	return int(g.sessions.Load())
}

func (g *gameHandler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, resizes, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "A terminal is required. Connect with: ssh -t user@host")
			return
		}

		logger := g.logger.With("user", sess.User())
		logger.Info("game started", "term", pty.Term, "cols", pty.Window.Width, "rows", pty.Window.Height)
		g.sessions.Add(1)
		defer g.sessions.Add(-1)

		win := newWindow(pty.Window.Width, pty.Window.Height)
		go win.follow(resizes)

		err := loop.Run(bufio.NewReader(sess), sess, loop.Options{
			TermSizeFunc: win.size,
			Player:       sess.User(),
			Store:        g.store,
			Settings:     g.settings,
			Logger:       logger,
		})
		if err != nil {
			logger.Error("game failed", "err", err)
		}
		logger.Info("game ended")
		next(sess)
	}
}

// window holds the latest PTY size reported by the client.
type window struct {
	mu            sync.RWMutex
	width, height int
}

func newWindow(width, height int) *window {
	return &window{width: width, height: height}
}

// follow applies window changes until the channel closes.
func (w *window) follow(resizes <-chan ssh.Window) {
	for r := range resizes {
		w.set(r.Width, r.Height)
	}
}

func (w *window) set(width, height int) {
	w.mu.Lock()
	w.width, w.height = width, height
	w.mu.Unlock()
}

func (w *window) size() (int, int, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.width, w.height, nil
}

var _ draw.TermSizeFunc = (*window)(nil).size
