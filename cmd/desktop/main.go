package main

import (
	"flag"
	"os"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/desktop"
	"github.com/tomz197/invaders/internal/scores"
)

func main() {
	width := flag.Int("width", desktop.DefaultWidth, "field width in pixels")
	height := flag.Int("height", desktop.DefaultHeight, "field height in pixels")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()

	logger := config.NewLogger(os.Stderr, "desktop")

	paths := config.PathsFromEnv()
	opts := desktop.Options{
		Width:    *width,
		Height:   *height,
		Player:   config.LocalPlayer(),
		Settings: paths.LoadSettings(logger),
		Logger:   logger,
		Mute:     *mute,
	}
	if db, err := scores.OpenSQLite(paths.DB); err != nil {
		logger.Warn("score history disabled", "path", paths.DB, "err", err)
	} else {
		defer db.Close()
		opts.Store = db
	}

	if err := desktop.Run(opts); err != nil {
		logger.Error("game error", "err", err)
		os.Exit(1)
	}
}
