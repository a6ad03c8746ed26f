package tui

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/popafriend/internal/clock"
	"github.com/vovakirdan/popafriend/internal/config"
	"github.com/vovakirdan/popafriend/internal/core"
	"github.com/vovakirdan/popafriend/internal/gallery"
	"github.com/vovakirdan/popafriend/internal/game"
)

// Layout constants
const (
	hudRows    = 1 // Score line above the play area
	footerRows = 2 // Photo strip and help line below it
	minWidth   = 20
	minHeight  = 12
)

// Options configures a game session.
type Options struct {
	Config  config.GameConfig
	Runtime core.RuntimeConfig
	Prefs   game.PreferenceStore
	History game.RoundRecorder // Optional
	Photos  []gallery.Photo
	Logger  *log.Logger

	// ScreenshotDir receives ctrl+s captures. Defaults to ~/.popafriend/screenshots.
	ScreenshotDir string
}

// sprite is the presentation state of one balloon.
type sprite struct {
	balloon   game.Balloon
	color     core.Color
	fading    bool
	reason    game.RemoveReason
	fadeStart time.Time
	fadeFor   time.Duration
	frozenAt  float64 // Float progress when the fade started
}

// overlay is the intro / game-over panel.
type overlay struct {
	visible bool
	dim     bool // Mid-transition
	timer   *clock.Timer
}

// roundResult is what the game-over overlay shows.
type roundResult struct {
	score   int
	newHigh bool
}

// hud mirrors the values the engine reports through events.
type hud struct {
	score     int
	remaining int
	best      int
}

// Model is the Bubble Tea model for one player's game session.
type Model struct {
	engine  *game.Engine
	cfg     config.GameConfig
	runtime core.RuntimeConfig
	logger  *log.Logger

	screen    *core.Screen
	keys      KeyMap
	help      help.Model
	sprites   map[game.BalloonID]*sprite
	overlay   overlay
	result    *roundResult
	hud       hud
	lastFrame time.Time
	quitting  bool

	screenshotDir string
}

// NewModel creates a session with its own engine.
func NewModel(opts Options) *Model {
	rt := opts.Runtime
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	if rt.FPS <= 0 {
		rt.FPS = core.DefaultConfig().FPS
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	photos := gallery.New(opts.Config.Gallery.MaxPhotos)
	for _, p := range opts.Photos {
		if !photos.Add(p) {
			logger.Warn("gallery full, photo dropped", "photo", p, "max", photos.Cap())
		}
	}

	m := &Model{
		cfg:     opts.Config,
		runtime: rt,
		logger:  logger,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		sprites: make(map[game.BalloonID]*sprite),
		overlay: overlay{visible: true},

		screenshotDir: opts.ScreenshotDir,
	}
	if m.screenshotDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			m.screenshotDir = filepath.Join(home, ".popafriend", "screenshots")
		}
	}

	m.engine = game.New(engineConfig(opts.Config, areaWidth(rt.ScreenW)), game.Deps{
		Clock:   clock.New(time.Now()),
		Gallery: photos,
		Prefs:   opts.Prefs,
		Rand:    rand.New(rand.NewSource(rt.Seed)),
		Logger:  logger,
	})
	m.engine.Subscribe(m.handleEvent)
	if opts.History != nil {
		m.engine.Subscribe(game.HistoryListener(opts.History, logger))
	}

	m.hud = hud{
		remaining: opts.Config.Round.Seconds,
		best:      m.engine.HighScore(),
	}
	m.screen = core.NewScreen(rt.ScreenW, playHeight(rt.ScreenH))
	return m
}

// engineConfig adapts the tuning to terminal cells: balloons are one sprite wide
// and may start right at the border.
func engineConfig(c config.GameConfig, width int) game.Config {
	cfg := game.ConfigFrom(c)
	cfg.AreaWidth = width
	cfg.MinX = 0
	cfg.BalloonWidth = balloonWidth
	return cfg
}

// areaWidth returns the interior width of the play box.
func areaWidth(screenW int) int {
	return core.Max(screenW-2, 0)
}

// playHeight returns the height of the play box including its border.
func playHeight(screenH int) int {
	return core.Max(screenH-hudRows-footerRows, 0)
}

// areaHeight returns the interior height of the play box.
func (m *Model) areaHeight() int {
	return core.Max(m.screen.Height()-2, 0)
}

// Engine returns the session's engine.
func (m *Model) Engine() *game.Engine {
	return m.engine
}

// Init starts the frame loop.
func (m *Model) Init() tea.Cmd {
	m.lastFrame = time.Now()
	return tickCmd(m.runtime.FPS)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.handleResize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		m.advance(time.Time(msg))
		return m, tickCmd(m.runtime.FPS)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Start):
		if m.engine.Status() != game.StatusRunning {
			m.startRound()
		}

	case key.Matches(msg, m.keys.Restart):
		m.startRound()

	case key.Matches(msg, m.keys.Motion):
		m.engine.SetReduceMotion(!m.engine.ReduceMotion())
		m.logger.Debug("reduce motion toggled", "reduced", m.engine.ReduceMotion())

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Screenshot):
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "error", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
	}

	return m, nil
}

func (m *Model) startRound() {
	m.hideOverlay()
	m.engine.Start()
}

// handleMouse pops the topmost live balloon under a left click.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}
	if id, ok := m.hitTest(msg.X, msg.Y); ok {
		m.engine.Pop(id)
	}
}

// hitTest finds the balloon drawn at terminal cell (x, y). Newer balloons are on top.
func (m *Model) hitTest(x, y int) (game.BalloonID, bool) {
	// Interior origin is one cell inside the play box, below the HUD.
	area := core.NewRect(1, hudRows+1, m.screen.Width()-2, m.areaHeight())
	if !area.Contains(x, y) {
		return 0, false
	}

	now := m.engine.Clock().Now()
	ids := m.sortedSprites()
	for i := len(ids) - 1; i >= 0; i-- {
		s := m.sprites[ids[i]]
		if s.fading {
			continue
		}
		hit := m.spriteRect(s, now).Translate(1, hudRows+1)
		if hit.Contains(x, y) {
			return s.balloon.ID, true
		}
	}
	return 0, false
}

// handleResize adapts the play area to the new terminal size.
func (m *Model) handleResize(width, height int) {
	m.runtime.ScreenW = width
	m.runtime.ScreenH = height
	m.screen.Resize(width, playHeight(height))
	m.engine.SetAreaWidth(areaWidth(width))
	m.help.Width = width
}

// advance moves the game clock to the frame time, then reports floats the
// presentation has finished drawing.
func (m *Model) advance(frame time.Time) {
	dt := frame.Sub(m.lastFrame)
	if dt < 0 {
		dt = 0
	}
	m.lastFrame = frame
	m.engine.Clock().Advance(dt)

	now := m.engine.Clock().Now()
	for _, id := range m.sortedSprites() {
		s := m.sprites[id]
		if !s.fading && s.balloon.Progress(now) >= 1 {
			m.engine.Expire(id)
		}
	}
}

// handleEvent applies engine events to the presentation state.
func (m *Model) handleEvent(ev game.Event) {
	now := m.engine.Clock().Now()

	switch e := ev.(type) {
	case game.RoundReset:
		m.sprites = make(map[game.BalloonID]*sprite)
		m.result = nil
		m.hud = hud{remaining: e.TimeRemaining, best: e.HighScore}

	case game.TimeUpdated:
		m.hud.remaining = e.TimeRemaining

	case game.BalloonSpawned:
		m.sprites[e.Balloon.ID] = &sprite{
			balloon: e.Balloon,
			color:   core.BalloonColors[int(e.Balloon.ID)%len(core.BalloonColors)],
		}

	case game.BalloonFading:
		if s, ok := m.sprites[e.ID]; ok {
			s.frozenAt = s.balloon.Progress(now)
			s.fading = true
			s.reason = e.Reason
			s.fadeStart = now
			s.fadeFor = e.Duration
		}

	case game.BalloonRemoved:
		delete(m.sprites, e.ID)

	case game.ScoreUpdated:
		m.hud.score = e.Score

	case game.RoundEnded:
		m.hud.score = e.FinalScore
		m.hud.remaining = 0
		m.result = &roundResult{score: e.FinalScore, newHigh: e.NewHighScore}
		m.showOverlay()

	case game.HighScoreUpdated:
		m.hud.best = e.Score
		m.logger.Info("new high score", "score", e.Score, "previous", e.Previous)
	}
}

// showOverlay fades the overlay in through the motion policy.
func (m *Model) showOverlay() {
	m.overlay.timer.Stop()
	m.overlay.visible = true
	m.overlay.timer = m.engine.Motion().Apply(m.cfg.Overlay.Show(),
		func() { m.overlay.dim = false },
		func(time.Duration) { m.overlay.dim = true },
		func() { m.overlay.dim = false },
	)
}

// hideOverlay fades the overlay out through the motion policy.
func (m *Model) hideOverlay() {
	m.overlay.timer.Stop()
	if !m.overlay.visible {
		return
	}
	m.overlay.timer = m.engine.Motion().Apply(m.cfg.Overlay.Hide(),
		func() { m.overlay.visible = false },
		func(time.Duration) { m.overlay.dim = true },
		func() {
			m.overlay.visible = false
			m.overlay.dim = false
		},
	)
}

// saveScreenshot writes the play area as plain text.
func (m *Model) saveScreenshot() (string, error) {
	if m.screenshotDir == "" {
		return "", errors.New("no screenshot directory")
	}
	m.drawPlayArea()

	if err := os.MkdirAll(m.screenshotDir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create screenshot directory: %w", err)
	}
	name := fmt.Sprintf("popafriend_%s.txt", time.Now().Format("20060102_150405.000"))
	path := filepath.Join(m.screenshotDir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("cannot write screenshot: %w", err)
	}
	return path, nil
}

func (m *Model) sortedSprites() []game.BalloonID {
	ids := make([]game.BalloonID, 0, len(m.sprites))
	for id := range m.sprites {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Run starts the Bubble Tea program with a new session.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks pop balloons
	)

	_, err := p.Run()
	return err
}
