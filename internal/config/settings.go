package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/tomz197/invaders/internal/input"
	gamecfg "github.com/tomz197/invaders/internal/loop/config"
)

// Ship colors offered by the settings page.
var ShipColors = []string{"purple", "red", "blue", "green"}

// Settings are the player preferences persisted between runs.
type Settings struct {
	ShootKey       string `json:"shootKey"`
	GameTime       int    `json:"gameTime"` // Seconds
	SpaceshipColor string `json:"spaceshipColor"`
}

// DefaultSettings returns the settings used when nothing is stored.
func DefaultSettings() Settings {
	return Settings{
		ShootKey:       " ",
		GameTime:       gamecfg.DefaultGameSeconds,
		SpaceshipColor: "purple",
	}
}

// Shoot returns the parsed shoot key.
func (s Settings) Shoot() input.Key {
	k, ok := input.ParseKey(s.ShootKey)
	if !ok {
		return input.KeySpace
	}
	return k
}

// Normalize replaces every invalid field with its default and reports which
// fields were replaced.
func (s Settings) Normalize() (Settings, []string) {
	def := DefaultSettings()
	var fixed []string

	if _, ok := input.ParseKey(s.ShootKey); !ok {
		s.ShootKey = def.ShootKey
		fixed = append(fixed, "shootKey")
	}
	if s.GameTime <= 0 {
		s.GameTime = def.GameTime
		fixed = append(fixed, "gameTime")
	}
	known := false
	for _, c := range ShipColors {
		if s.SpaceshipColor == c {
			known = true
		}
	}
	if !known {
		s.SpaceshipColor = def.SpaceshipColor
		fixed = append(fixed, "spaceshipColor")
	}
	return s, fixed
}

// LoadSettings reads settings from a JSON file. A missing file yields the
// defaults with no error; a malformed file yields the defaults and the error
// describing why, so callers can log it and carry on.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return DefaultSettings(), fmt.Errorf("read settings: %w", err)
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("parse settings %s: %w", path, err)
	}
	s, fixed := s.Normalize()
	if len(fixed) > 0 {
		return s, fmt.Errorf("settings %s: invalid %v, using defaults for them", path, fixed)
	}
	return s, nil
}

// SaveSettings writes settings as JSON.
func SaveSettings(path string, s Settings) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
