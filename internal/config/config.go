// Package config provides YAML-based configuration loading for the game
// client and the leaderboard server.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/vovakirdan/hardest-game/internal/core"
	"github.com/vovakirdan/hardest-game/internal/world"
)

// DefaultPlayerName is used when neither the config nor the environment
// names the player.
const DefaultPlayerName = "Player"

// Config contains all client configuration.
type Config struct {
	Physics Physics       `yaml:"physics"`
	Player  PlayerConfig  `yaml:"player"`
	Server  ServerConfig  `yaml:"server"`
	Display DisplayConfig `yaml:"display"`
	Storage StorageConfig `yaml:"storage"`
	Level   string        `yaml:"level"`
}

// Physics defines the player movement parameters.
type Physics struct {
	PlayerSpeed    float64 `yaml:"player_speed"`
	Damping        float64 `yaml:"damping"`
	StartSpeedMult float64 `yaml:"start_speed_mult"`
}

// PlayerConfig defines the player's identity and body.
type PlayerConfig struct {
	Name   string  `yaml:"name"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	SpawnX float64 `yaml:"spawn_x"`
	SpawnY float64 `yaml:"spawn_y"`
}

// ServerConfig points the client at a leaderboard server.
type ServerConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// DisplayConfig defines how the world is framed in the terminal.
type DisplayConfig struct {
	ViewHeight    float64 `yaml:"view_height"`    // world units shown top to bottom
	CameraLead    float64 `yaml:"camera_lead"`    // camera centre offset ahead of the player
	FlashDuration float64 `yaml:"flash_duration"` // seconds
}

// StorageConfig locates the local run history.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// PlayerParams converts the physics and player sections into world params.
func (c Config) PlayerParams() world.Params {
	return world.Params{
		Speed:          c.Physics.PlayerSpeed,
		Damping:        c.Physics.Damping,
		StartSpeedMult: c.Physics.StartSpeedMult,
		Width:          c.Player.Width,
		Height:         c.Player.Height,
		Spawn:          core.V(c.Player.SpawnX, c.Player.SpawnY),
	}
}

// PlayerName returns the configured name, falling back to $USERNAME,
// then $USER, then DefaultPlayerName.
func (c Config) PlayerName() string {
	if name := strings.TrimSpace(c.Player.Name); name != "" {
		return name
	}
	for _, env := range []string{"USERNAME", "USER"} {
		if name := strings.TrimSpace(os.Getenv(env)); name != "" {
			return name
		}
	}
	return DefaultPlayerName
}

// Validate reports the first setting that would break the simulation.
func (c Config) Validate() error {
	var errs []error
	if c.Physics.PlayerSpeed <= 0 {
		errs = append(errs, fmt.Errorf("physics.player_speed must be positive, got %v", c.Physics.PlayerSpeed))
	}
	if c.Physics.Damping <= 0 || c.Physics.Damping > 1 {
		errs = append(errs, fmt.Errorf("physics.damping must be in (0, 1], got %v", c.Physics.Damping))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = append(errs, fmt.Errorf("player size must be positive, got %vx%v", c.Player.Width, c.Player.Height))
	}
	if c.Server.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("server.timeout must be positive, got %v", c.Server.Timeout))
	}
	if c.Display.ViewHeight <= 0 {
		errs = append(errs, fmt.Errorf("display.view_height must be positive, got %v", c.Display.ViewHeight))
	}
	if c.Display.FlashDuration <= 0 {
		errs = append(errs, fmt.Errorf("display.flash_duration must be positive, got %v", c.Display.FlashDuration))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
