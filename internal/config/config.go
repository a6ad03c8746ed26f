// Package config provides YAML-based tuning for the balloon game.
package config

import "time"

// GameConfig contains all tunable values for a round.
type GameConfig struct {
	Round    RoundConfig   `yaml:"round"`
	Balloons BalloonConfig `yaml:"balloons"`
	Area     AreaConfig    `yaml:"area"`
	Gallery  GalleryConfig `yaml:"gallery"`
	Overlay  OverlayConfig `yaml:"overlay"`
}

// RoundConfig defines the countdown and spawn cadence.
type RoundConfig struct {
	Seconds         int `yaml:"seconds"`
	TickMS          int `yaml:"tick_ms"`
	SpawnIntervalMS int `yaml:"spawn_interval_ms"`
}

// BalloonConfig defines balloon timing. Float duration is drawn from [FloatMinMS, FloatMaxMS).
type BalloonConfig struct {
	FloatMinMS   int `yaml:"float_min_ms"`
	FloatMaxMS   int `yaml:"float_max_ms"`
	AppearFadeMS int `yaml:"appear_fade_ms"`
	PopFadeMS    int `yaml:"pop_fade_ms"`
	EndFadeMS    int `yaml:"end_fade_ms"`
}

// AreaConfig defines play-area geometry in presentation units.
type AreaConfig struct {
	Width        int `yaml:"width"`
	MinX         int `yaml:"min_x"`
	BalloonWidth int `yaml:"balloon_width"`
}

// GalleryConfig bounds the photo gallery.
type GalleryConfig struct {
	MaxPhotos int `yaml:"max_photos"`
}

// OverlayConfig defines the game-over overlay fades.
type OverlayConfig struct {
	ShowMS int `yaml:"show_ms"`
	HideMS int `yaml:"hide_ms"`
}

// ms converts a millisecond config value to a duration.
func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

// TickInterval returns the countdown interval.
func (c RoundConfig) TickInterval() time.Duration { return ms(c.TickMS) }

// SpawnInterval returns the spawn cadence.
func (c RoundConfig) SpawnInterval() time.Duration { return ms(c.SpawnIntervalMS) }

// FloatRange returns the float duration bounds.
func (c BalloonConfig) FloatRange() (time.Duration, time.Duration) {
	return ms(c.FloatMinMS), ms(c.FloatMaxMS)
}

// AppearFade returns the appear transition length.
func (c BalloonConfig) AppearFade() time.Duration { return ms(c.AppearFadeMS) }

// PopFade returns the pop transition length.
func (c BalloonConfig) PopFade() time.Duration { return ms(c.PopFadeMS) }

// EndFade returns the end-of-round transition length.
func (c BalloonConfig) EndFade() time.Duration { return ms(c.EndFadeMS) }

// Show returns the overlay show transition length.
func (c OverlayConfig) Show() time.Duration { return ms(c.ShowMS) }

// Hide returns the overlay hide transition length.
func (c OverlayConfig) Hide() time.Duration { return ms(c.HideMS) }
