// Package gallery holds the player's photos that get painted onto balloons.
package gallery

import "math/rand"

// MaxPhotos is the largest gallery capacity.
const MaxPhotos = 5

// Photo is an opaque handle to an ingested image (a file path or label).
type Photo string

// Gallery is an append-only, bounded list of photos.
type Gallery struct {
	photos []Photo
	limit  int
}

// New creates an empty gallery holding at most limit photos.
// A non-positive limit, or one above MaxPhotos, becomes MaxPhotos.
func New(limit int) *Gallery {
	if limit <= 0 || limit > MaxPhotos {
		limit = MaxPhotos
	}
	return &Gallery{
		photos: make([]Photo, 0, limit),
		limit:  limit,
	}
}

// Add appends p and reports whether it was kept.
// Once the gallery is full further photos are dropped.
func (g *Gallery) Add(p Photo) bool {
	if g.Full() {
		return false
	}
	g.photos = append(g.photos, p)
	return true
}

// PickRandom returns a uniformly chosen photo, or false when the gallery is empty.
func (g *Gallery) PickRandom(rng *rand.Rand) (Photo, bool) {
	if len(g.photos) == 0 {
		return "", false
	}
	return g.photos[rng.Intn(len(g.photos))], true
}

// Len returns the number of photos.
func (g *Gallery) Len() int {
	return len(g.photos)
}

// Cap returns the capacity.
func (g *Gallery) Cap() int {
	return g.limit
}

// Full reports whether Add would drop the next photo.
func (g *Gallery) Full() bool {
	return len(g.photos) >= g.limit
}

// Photos returns a copy of the gallery contents in insertion order.
func (g *Gallery) Photos() []Photo {
	out := make([]Photo, len(g.photos))
	copy(out, g.photos)
	return out
}
