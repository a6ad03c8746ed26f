package config

import (
	_ "embed"
)

//go:embed defaults/popafriend.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in tuning.
func DefaultConfig() GameConfig {
	return GameConfig{
		Round: RoundConfig{
			Seconds:         30,
			TickMS:          1000,
			SpawnIntervalMS: 700,
		},
		Balloons: BalloonConfig{
			FloatMinMS:   3500,
			FloatMaxMS:   6000,
			AppearFadeMS: 120,
			PopFadeMS:    140,
			EndFadeMS:    140,
		},
		Area: AreaConfig{
			Width:        480,
			MinX:         8,
			BalloonWidth: 98,
		},
		Gallery: GalleryConfig{
			MaxPhotos: 5,
		},
		Overlay: OverlayConfig{
			ShowMS: 250,
			HideMS: 200,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}
