package main

import (
	"bufio"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/loop"
	"github.com/tomz197/invaders/internal/scores"
)

func main() {
	// Stdout belongs to the game; logs go to INVADERS_LOG_FILE when set.
	logger, closeLog := config.FileLogger("game")
	defer closeLog()

	paths := config.PathsFromEnv()
	opts := loop.Options{
		Player:   config.LocalPlayer(),
		Settings: paths.LoadSettings(logger),
		Logger:   logger,
	}
	if db, err := scores.OpenSQLite(paths.DB); err != nil {
		logger.Warn("score history disabled", "path", paths.DB, "err", err)
	} else {
		defer db.Close()
		opts.Store = db
	}

	if err := play(opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// play runs the game with stdin in raw mode, restoring the terminal before
// returning.
func play(opts loop.Options) error {
	fd := int(os.Stdin.Fd())
	saved, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer term.Restore(fd, saved)

	if err := loop.Run(bufio.NewReader(os.Stdin), os.Stdout, opts); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	return nil
}
