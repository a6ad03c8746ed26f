package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/popafriend/internal/gallery"
)

// Load loads the game configuration.
// Search order: customPath -> ~/.popafriend/config.yaml -> ./configs/popafriend.yaml -> embedded default.
// Fields missing from a file keep their default values.
func Load(customPath string) (GameConfig, error) {
	cfg := DefaultConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory, then local configs directory.
	// A file that exists but does not parse is an error, never silently replaced.
	for _, path := range []string{userConfigPath("config.yaml"), filepath.Join("configs", "popafriend.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return DefaultConfig(), fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		return cfg, cfg.Validate()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".popafriend", filename)
}

// Validate rejects values the engine cannot run with.
func (c GameConfig) Validate() error {
	var errs []error
	if c.Round.Seconds <= 0 {
		errs = append(errs, fmt.Errorf("round.seconds must be positive, got %d", c.Round.Seconds))
	}
	if c.Round.TickMS <= 0 {
		errs = append(errs, fmt.Errorf("round.tick_ms must be positive, got %d", c.Round.TickMS))
	}
	if c.Round.SpawnIntervalMS <= 0 {
		errs = append(errs, fmt.Errorf("round.spawn_interval_ms must be positive, got %d", c.Round.SpawnIntervalMS))
	}
	if c.Balloons.FloatMinMS < 0 || c.Balloons.FloatMaxMS < c.Balloons.FloatMinMS {
		errs = append(errs, fmt.Errorf("balloons float range [%d, %d) is invalid",
			c.Balloons.FloatMinMS, c.Balloons.FloatMaxMS))
	}
	if c.Balloons.AppearFadeMS < 0 || c.Balloons.PopFadeMS < 0 || c.Balloons.EndFadeMS < 0 {
		errs = append(errs, errors.New("balloon fades must not be negative"))
	}
	if c.Area.BalloonWidth < 0 || c.Area.MinX < 0 {
		errs = append(errs, errors.New("area min_x and balloon_width must not be negative"))
	}
	if c.Gallery.MaxPhotos <= 0 || c.Gallery.MaxPhotos > gallery.MaxPhotos {
		errs = append(errs, fmt.Errorf("gallery.max_photos must be in [1, %d], got %d",
			gallery.MaxPhotos, c.Gallery.MaxPhotos))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
