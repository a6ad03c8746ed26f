package game

import "time"

// Event is emitted by the engine for the presentation layer.
// Events are delivered synchronously, in order, on the caller's goroutine.
type Event interface {
	gameEvent()
}

// Listener receives engine events.
type Listener func(Event)

// RoundReset is sent when Start begins a new round. The presentation should drop
// every balloon it is still drawing.
type RoundReset struct {
	RoundID       string
	TimeRemaining int
	HighScore     int
}

func (RoundReset) gameEvent() {}

// TimeUpdated is sent on every countdown tick that does not end the round.
type TimeUpdated struct {
	TimeRemaining int
}

func (TimeUpdated) gameEvent() {}

// BalloonSpawned carries the public state of a new balloon.
type BalloonSpawned struct {
	Balloon Balloon
}

func (BalloonSpawned) gameEvent() {}

// BalloonFading is sent when a balloon starts its exit fade.
// It is skipped when the removal is instant.
type BalloonFading struct {
	ID       BalloonID
	Duration time.Duration
	Reason   RemoveReason
}

func (BalloonFading) gameEvent() {}

// BalloonRemoved is sent once per balloon when the engine forgets it.
type BalloonRemoved struct {
	ID     BalloonID
	Reason RemoveReason
}

func (BalloonRemoved) gameEvent() {}

// ScoreUpdated is sent after every accepted pop.
type ScoreUpdated struct {
	Score int
}

func (ScoreUpdated) gameEvent() {}

// RoundEnded is sent exactly once per round.
type RoundEnded struct {
	RoundID      string
	FinalScore   int
	Seconds      int  // Configured round length
	NewHighScore bool // Followed by HighScoreUpdated when true
}

func (RoundEnded) gameEvent() {}

// HighScoreUpdated is sent when a round beats the stored high score.
type HighScoreUpdated struct {
	Score    int
	Previous int
}

func (HighScoreUpdated) gameEvent() {}

// RemoveReason describes why a balloon left the play area.
type RemoveReason int

const (
	RemovedExpired    RemoveReason = iota // Floated out of the area
	RemovedPopped                         // Popped by the player
	RemovedRoundEnded                     // Cleared at round end
)

func (r RemoveReason) String() string {
	switch r {
	case RemovedExpired:
		return "expired"
	case RemovedPopped:
		return "popped"
	case RemovedRoundEnded:
		return "round-ended"
	default:
		return "unknown"
	}
}
