// Package game implements the balloon-popping round engine.
// It owns the round state, the live balloons and every timer a round needs,
// and reports what happened through events. It contains no rendering code.
package game

import (
	"io"
	"math/rand"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/popafriend/internal/clock"
	"github.com/vovakirdan/popafriend/internal/config"
	"github.com/vovakirdan/popafriend/internal/core"
	"github.com/vovakirdan/popafriend/internal/gallery"
	"github.com/vovakirdan/popafriend/internal/motion"
	"github.com/vovakirdan/popafriend/internal/storage"
)

// Status is the round lifecycle state.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusEnded
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// PreferenceStore persists the high score and the reduce-motion flag.
// Reads never fail; implementations fall back to defaults.
type PreferenceStore interface {
	HighScore() int
	SetHighScore(n int) error
	// RaiseHighScore stores n only if it beats the stored score, atomically.
	// It returns the score it compared against and whether n was stored.
	RaiseHighScore(n int) (previous int, raised bool, err error)
	ReduceMotion() bool
	SetReduceMotion(b bool) error
}

// Config holds the engine tuning.
type Config struct {
	RoundSeconds  int
	TickInterval  time.Duration
	SpawnInterval time.Duration
	FloatMin      time.Duration // Float duration range under normal motion, [FloatMin, FloatMax)
	FloatMax      time.Duration
	AppearFade    time.Duration
	PopFade       time.Duration
	EndFade       time.Duration
	AreaWidth     int
	MinX          int
	BalloonWidth  int
}

// DefaultConfig returns the built-in tuning.
func DefaultConfig() Config {
	return ConfigFrom(config.DefaultConfig())
}

// ConfigFrom converts loaded YAML settings to engine tuning.
func ConfigFrom(c config.GameConfig) Config {
	floatMin, floatMax := c.Balloons.FloatRange()
	return Config{
		RoundSeconds:  c.Round.Seconds,
		TickInterval:  c.Round.TickInterval(),
		SpawnInterval: c.Round.SpawnInterval(),
		FloatMin:      floatMin,
		FloatMax:      floatMax,
		AppearFade:    c.Balloons.AppearFade(),
		PopFade:       c.Balloons.PopFade(),
		EndFade:       c.Balloons.EndFade(),
		AreaWidth:     c.Area.Width,
		MinX:          c.Area.MinX,
		BalloonWidth:  c.Area.BalloonWidth,
	}
}

// Deps are the engine's collaborators. Nil fields get working defaults.
type Deps struct {
	Clock   *clock.Scheduler
	Gallery *gallery.Gallery
	Prefs   PreferenceStore
	Rand    *rand.Rand
	Logger  *log.Logger
}

// Engine runs rounds. It is driven from a single goroutine: the host calls
// Start, Pop and Expire, and advances the clock which fires Tick and Spawn.
type Engine struct {
	cfg    Config
	clock  *clock.Scheduler
	motion *motion.Policy
	photos *gallery.Gallery
	prefs  PreferenceStore
	rng    *rand.Rand
	logger *log.Logger

	status    Status
	roundID   string
	score     int
	remaining int
	highScore int
	areaWidth int

	round    clock.Group // Countdown and spawn schedules
	effects  clock.Group // Per-balloon float and fade callbacks
	balloons map[BalloonID]*liveBalloon
	nextID   BalloonID

	listeners []Listener
}

// New creates an idle engine. Preferences are read once here.
func New(cfg Config, deps Deps) *Engine {
	if deps.Clock == nil {
		deps.Clock = clock.New(time.Now())
	}
	if deps.Gallery == nil {
		deps.Gallery = gallery.New(gallery.MaxPhotos)
	}
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	if deps.Prefs == nil {
		deps.Prefs = storage.NewPreferences(storage.NewMemStore(), deps.Logger)
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Engine{
		cfg:       cfg,
		clock:     deps.Clock,
		motion:    motion.New(deps.Clock, deps.Prefs.ReduceMotion()),
		photos:    deps.Gallery,
		prefs:     deps.Prefs,
		rng:       deps.Rand,
		logger:    deps.Logger,
		status:    StatusIdle,
		remaining: cfg.RoundSeconds,
		highScore: deps.Prefs.HighScore(),
		areaWidth: cfg.AreaWidth,
		balloons:  make(map[BalloonID]*liveBalloon),
	}
}

// Subscribe registers fn for every future event.
func (e *Engine) Subscribe(fn Listener) {
	if fn != nil {
		e.listeners = append(e.listeners, fn)
	}
}

func (e *Engine) emit(ev Event) {
	for _, fn := range e.listeners {
		fn(ev)
	}
}

// Start begins a new round from any state. Every timer and balloon left from a
// previous round is released first, so calling it mid-round re-arms cleanly.
func (e *Engine) Start() {
	e.round.StopAll()
	e.effects.StopAll()
	e.balloons = make(map[BalloonID]*liveBalloon)

	e.status = StatusRunning
	e.score = 0
	e.remaining = e.cfg.RoundSeconds
	e.roundID = e.newRoundID()

	e.logger.Debug("round started", "round", e.roundID, "seconds", e.remaining)
	e.emit(RoundReset{
		RoundID:       e.roundID,
		TimeRemaining: e.remaining,
		HighScore:     e.highScore,
	})

	e.round.Add(e.clock.Every(e.cfg.TickInterval, e.Tick))
	e.round.Add(e.clock.Every(e.cfg.SpawnInterval, e.Spawn))
}

// Tick counts the round down by one second and ends it on reaching zero.
func (e *Engine) Tick() {
	if e.status != StatusRunning {
		e.logger.Debug("stale tick dropped", "status", e.status)
		return
	}

	e.remaining--
	if e.remaining <= 0 {
		e.remaining = 0
		e.End()
		return
	}
	e.emit(TimeUpdated{TimeRemaining: e.remaining})
}

// Spawn releases a new balloon. Under reduced motion it completes its float at once
// and is removed right after BalloonSpawned.
func (e *Engine) Spawn() {
	if e.status != StatusRunning {
		return
	}

	x := e.spawnX()
	float := e.motion.Duration(e.floatDuration())
	photo, hasPhoto := e.photos.PickRandom(e.rng)

	e.nextID++
	b := &liveBalloon{Balloon: Balloon{
		ID:            e.nextID,
		X:             x,
		Photo:         photo,
		HasPhoto:      hasPhoto,
		FloatDuration: float,
		AppearFade:    e.motion.Duration(e.cfg.AppearFade),
		SpawnedAt:     e.clock.Now(),
	}}
	e.balloons[b.ID] = b

	e.logger.Debug("balloon spawned", "id", b.ID, "x", x, "float", float, "photo", photo)
	e.emit(BalloonSpawned{Balloon: b.Balloon})

	id := b.ID
	b.float = e.effects.Add(e.motion.Apply(float,
		func() { e.floatDone(id) },
		nil,
		func() { e.floatDone(id) },
	))
}

// Pop bursts a live balloon and scores a point. It reports whether the pop counted;
// unknown, already popped and out-of-round pops are ignored.
func (e *Engine) Pop(id BalloonID) bool {
	if e.status != StatusRunning {
		e.logger.Debug("pop outside round dropped", "id", id)
		return false
	}
	b, ok := e.balloons[id]
	if !ok || b.Popped {
		e.logger.Debug("duplicate pop dropped", "id", id)
		return false
	}

	b.Popped = true
	b.float.Stop()
	e.score++

	e.logger.Debug("balloon popped", "id", id, "score", e.score)
	e.emit(ScoreUpdated{Score: e.score})
	e.fadeOut(b, e.cfg.PopFade, RemovedPopped)
	return true
}

// Expire removes a balloon whose float finished without a pop.
// The presentation calls it when its animation completes; the engine's own float
// timer does the same when the presentation does not.
func (e *Engine) Expire(id BalloonID) bool {
	if e.status != StatusRunning {
		return false
	}
	b, ok := e.balloons[id]
	if !ok || b.Popped || b.fading {
		return false
	}
	e.remove(b, RemovedExpired)
	return true
}

func (e *Engine) floatDone(id BalloonID) {
	e.Expire(id)
}

// End finishes the round: timers stop, remaining balloons fade out, and the
// high score is updated if beaten. Calling it outside a running round does nothing.
func (e *Engine) End() {
	if e.status != StatusRunning {
		return
	}
	e.status = StatusEnded
	e.round.StopAll()

	for _, b := range e.sortedBalloons() {
		if b.fading {
			continue
		}
		b.float.Stop()
		e.fadeOut(b, e.cfg.EndFade, RemovedRoundEnded)
	}

	// Compare and write are one step in the store; other sessions may share it.
	previous, beaten, err := e.prefs.RaiseHighScore(e.score)
	if err != nil {
		e.logger.Warn("could not persist high score", "score", e.score, "error", err)
		beaten = e.score > previous
	}

	e.logger.Debug("round ended", "round", e.roundID, "score", e.score, "high", previous)
	if beaten {
		e.highScore = e.score
	} else {
		e.highScore = previous
	}
	e.emit(RoundEnded{
		RoundID:      e.roundID,
		FinalScore:   e.score,
		Seconds:      e.cfg.RoundSeconds,
		NewHighScore: beaten,
	})
	if beaten {
		e.emit(HighScoreUpdated{Score: e.score, Previous: previous})
	}
}

// fadeOut starts a balloon's exit transition, ending in removal.
func (e *Engine) fadeOut(b *liveBalloon, d time.Duration, reason RemoveReason) {
	b.fading = true
	b.fade = e.effects.Add(e.motion.Apply(d,
		func() { e.remove(b, reason) },
		func(d time.Duration) { e.emit(BalloonFading{ID: b.ID, Duration: d, Reason: reason}) },
		func() { e.remove(b, reason) },
	))
}

// remove forgets a balloon and cancels its callbacks. Safe to call twice.
func (e *Engine) remove(b *liveBalloon, reason RemoveReason) {
	if cur, ok := e.balloons[b.ID]; !ok || cur != b {
		return
	}
	b.cancel()
	delete(e.balloons, b.ID)
	e.emit(BalloonRemoved{ID: b.ID, Reason: reason})
}

// spawnX picks a left edge in [MinX, areaWidth-BalloonWidth), never below MinX.
func (e *Engine) spawnX() int {
	x := 0
	if span := e.areaWidth - e.cfg.BalloonWidth; span > 0 {
		x = e.rng.Intn(span)
	}
	return core.Max(e.cfg.MinX, x)
}

func (e *Engine) floatDuration() time.Duration {
	lo, hi := e.cfg.FloatMin, e.cfg.FloatMax
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(e.rng.Int63n(int64(hi-lo)))
}

// newRoundID derives a UUID from the engine's random source so seeded runs repeat.
func (e *Engine) newRoundID() string {
	id, err := uuid.NewRandomFromReader(e.rng)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (e *Engine) sortedBalloons() []*liveBalloon {
	out := make([]*liveBalloon, 0, len(e.balloons))
	for _, b := range e.balloons {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SetAreaWidth updates the play-area width used for new spawns.
func (e *Engine) SetAreaWidth(w int) {
	if w < 0 {
		w = 0
	}
	e.areaWidth = w
}

// SetReduceMotion switches motion mode for future transitions and persists it.
func (e *Engine) SetReduceMotion(reduced bool) {
	e.motion.SetReduced(reduced)
	if err := e.prefs.SetReduceMotion(reduced); err != nil {
		e.logger.Warn("could not persist reduce-motion flag", "error", err)
	}
}

// ReduceMotion reports the current motion mode.
func (e *Engine) ReduceMotion() bool { return e.motion.Reduced() }

// Motion exposes the policy so the presentation can time its own transitions.
func (e *Engine) Motion() *motion.Policy { return e.motion }

// Clock returns the scheduler the engine runs on.
func (e *Engine) Clock() *clock.Scheduler { return e.clock }

// Gallery returns the photo gallery.
func (e *Engine) Gallery() *gallery.Gallery { return e.photos }

// Config returns the engine tuning.
func (e *Engine) Config() Config { return e.cfg }

// Status returns the round state.
func (e *Engine) Status() Status { return e.status }

// Score returns the current round score.
func (e *Engine) Score() int { return e.score }

// TimeRemaining returns the countdown in seconds.
func (e *Engine) TimeRemaining() int { return e.remaining }

// HighScore returns the best score known to this engine.
func (e *Engine) HighScore() int { return e.highScore }

// Balloon returns a live balloon by ID.
func (e *Engine) Balloon(id BalloonID) (Balloon, bool) {
	b, ok := e.balloons[id]
	if !ok {
		return Balloon{}, false
	}
	return b.Balloon, true
}

// State is a copy of the engine state for rendering.
type State struct {
	RoundID       string
	Status        Status
	Score         int
	TimeRemaining int
	HighScore     int
	Balloons      []Balloon // Ordered by ID
}

// Snapshot returns the current state.
func (e *Engine) Snapshot() State {
	live := e.sortedBalloons()
	balloons := make([]Balloon, len(live))
	for i, b := range live {
		balloons[i] = b.Balloon
	}
	return State{
		RoundID:       e.roundID,
		Status:        e.status,
		Score:         e.score,
		TimeRemaining: e.remaining,
		HighScore:     e.highScore,
		Balloons:      balloons,
	}
}
