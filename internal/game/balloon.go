package game

import (
	"time"

	"github.com/vovakirdan/popafriend/internal/clock"
	"github.com/vovakirdan/popafriend/internal/gallery"
)

// BalloonID identifies a balloon within one engine. IDs are never reused.
type BalloonID uint64

// Balloon is the public state of a spawned balloon.
type Balloon struct {
	ID            BalloonID
	X             int           // Left edge in play-area units
	Photo         gallery.Photo // Empty when HasPhoto is false
	HasPhoto      bool
	FloatDuration time.Duration // Time to travel from below the area to above it; 0 under reduced motion
	AppearFade    time.Duration
	Popped        bool
	SpawnedAt     time.Time
}

// Progress returns how far along its float path the balloon is at now, in [0, 1].
func (b Balloon) Progress(now time.Time) float64 {
	if b.FloatDuration <= 0 {
		return 1
	}
	p := float64(now.Sub(b.SpawnedAt)) / float64(b.FloatDuration)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// liveBalloon is the engine-owned record behind a Balloon.
type liveBalloon struct {
	Balloon
	float  *clock.Timer // Pending float completion
	fade   *clock.Timer // Pending exit fade
	fading bool
}

// cancel stops both pending callbacks so neither can fire for a removed balloon.
func (b *liveBalloon) cancel() {
	b.float.Stop()
	b.fade.Stop()
}
