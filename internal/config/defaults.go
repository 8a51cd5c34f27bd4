package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/hardest-game/internal/registry"
	"github.com/vovakirdan/hardest-game/internal/world"
)

//go:embed defaults/config.yaml
var defaultConfigYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Physics: Physics{
			PlayerSpeed:    world.PlayerSpeed,
			Damping:        world.Damping,
			StartSpeedMult: world.StartSpeedMult,
		},
		Player: PlayerConfig{
			Width:  world.PlayerWidth,
			Height: world.PlayerHeight,
		},
		Server: ServerConfig{
			URL:     "http://localhost:3000",
			Timeout: 5 * time.Second,
		},
		Display: DisplayConfig{
			ViewHeight:    600,
			CameraLead:    200,
			FlashDuration: 1.5,
		},
		Storage: StorageConfig{
			Path: "~/.hardest/hardest.db",
		},
		Level: registry.DefaultLevel,
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultConfigYAML
}
