// Package config provides shared configuration utilities.
package config

import (
	"os"

	"github.com/charmbracelet/log"
)

// GetEnv returns the environment variable key, or fallback when it is unset.
func GetEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

// Default file locations, relative to the working directory.
const (
	DefaultSettingsPath = "settings.json"
	DefaultDBPath       = "data/invaders.db"
)

// Paths locates the files every frontend shares.
type Paths struct {
	Settings string // INVADERS_SETTINGS
	DB       string // INVADERS_DB
}

// PathsFromEnv reads Paths from the environment, falling back to defaults.
func PathsFromEnv() Paths {
	return Paths{
		Settings: GetEnv("INVADERS_SETTINGS", DefaultSettingsPath),
		DB:       GetEnv("INVADERS_DB", DefaultDBPath),
	}
}

// LocalPlayer names the player of a local game: INVADERS_PLAYER, else the
// login name.
func LocalPlayer() string {
	return GetEnv("INVADERS_PLAYER", GetEnv("USER", ""))
}

// LoadSettings loads the settings file, warning and falling back to defaults
// on failure.
func (p Paths) LoadSettings(logger *log.Logger) Settings {
	s, err := LoadSettings(p.Settings)
	if err != nil {
		logger.Warn("using default settings", "path", p.Settings, "err", err)
	}
	return s
}
