package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/popafriend/internal/config"
	"github.com/vovakirdan/popafriend/internal/core"
	"github.com/vovakirdan/popafriend/internal/gallery"
	"github.com/vovakirdan/popafriend/internal/game"
	"github.com/vovakirdan/popafriend/internal/storage"
)

type roundLog struct {
	rounds []storage.RoundRecord
}

func (r *roundLog) RecordRound(rec storage.RoundRecord) (int64, error) {
	r.rounds = append(r.rounds, rec)
	return int64(len(r.rounds)), nil
}

func newTestModel(t *testing.T, reduced bool) (*Model, *storage.Preferences) {
	t.Helper()
	prefs := storage.NewPreferences(storage.NewMemStore(), nil)
	if err := prefs.SetReduceMotion(reduced); err != nil {
		t.Fatalf("SetReduceMotion: %v", err)
	}
	m := NewModel(Options{
		Config:  config.DefaultConfig(),
		Runtime: core.RuntimeConfig{ScreenW: 60, ScreenH: 24, FPS: 30, Seed: 1},
		Prefs:   prefs,
	})
	m.Init()
	return m, prefs
}

func step(m *Model, d time.Duration) {
	m.advance(m.lastFrame.Add(d))
}

func press(m *Model, k string) tea.Cmd {
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	_, cmd := m.Update(msg)
	return cmd
}

func click(m *Model, x, y int) {
	m.Update(tea.MouseMsg{
		X:      x,
		Y:      y,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
}

func TestStartHidesOverlay(t *testing.T) {
	m, _ := newTestModel(t, false)
	if !m.overlay.visible {
		t.Fatal("intro overlay should be visible before the first round")
	}

	press(m, "s")
	if m.engine.Status() != game.StatusRunning {
		t.Fatalf("status = %v, want running", m.engine.Status())
	}
	if !m.overlay.visible || !m.overlay.dim {
		t.Error("overlay should be fading out right after start")
	}

	step(m, 250*time.Millisecond)
	if m.overlay.visible {
		t.Error("overlay should be hidden once its fade completes")
	}
}

func TestStartHidesOverlayInstantlyWhenReduced(t *testing.T) {
	m, _ := newTestModel(t, true)
	press(m, "enter")
	if m.overlay.visible {
		t.Error("reduced motion should hide the overlay at once")
	}
}

func TestClickPopsBalloon(t *testing.T) {
	m, _ := newTestModel(t, false)
	press(m, "s")
	step(m, 700*time.Millisecond)
	step(m, time.Second)

	sp, ok := m.sprites[1]
	if !ok {
		t.Fatal("first balloon should be on screen")
	}
	r := m.spriteRect(sp, m.engine.Clock().Now())
	x, y := r.X+1+balloonWidth/2, r.Y+1+hudRows+1

	if id, ok := m.hitTest(x, y); !ok || id != 1 {
		t.Fatalf("hitTest(%d, %d) = %d, %v; want balloon 1", x, y, id, ok)
	}

	click(m, x, y)
	if m.engine.Score() != 1 || m.hud.score != 1 {
		t.Errorf("score = %d (hud %d), want 1", m.engine.Score(), m.hud.score)
	}
	if !sp.fading || sp.reason != game.RemovedPopped {
		t.Errorf("sprite fading=%v reason=%v, want popped fade", sp.fading, sp.reason)
	}

	click(m, x, y)
	if m.engine.Score() != 1 {
		t.Errorf("clicking a fading balloon scored again: %d", m.engine.Score())
	}

	step(m, 140*time.Millisecond)
	if _, ok := m.sprites[1]; ok {
		t.Error("popped balloon should be gone after its fade")
	}
}

func TestClickOutsideBalloonsIgnored(t *testing.T) {
	m, _ := newTestModel(t, false)
	press(m, "s")
	step(m, 700*time.Millisecond)

	click(m, 0, 0)
	click(m, 59, 23)
	if m.engine.Score() != 0 {
		t.Errorf("score = %d, want 0", m.engine.Score())
	}
}

func TestRightClickIgnored(t *testing.T) {
	m, _ := newTestModel(t, false)
	press(m, "s")
	step(m, 1700*time.Millisecond)

	sp := m.sprites[1]
	r := m.spriteRect(sp, m.engine.Clock().Now())
	m.Update(tea.MouseMsg{
		X:      r.X + 3,
		Y:      r.Y + 3,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonRight,
	})
	if m.engine.Score() != 0 {
		t.Errorf("score = %d, want 0", m.engine.Score())
	}
}

func TestRoundEndShowsResult(t *testing.T) {
	m, _ := newTestModel(t, false)
	rec := &roundLog{}
	m.engine.Subscribe(game.HistoryListener(rec, nil))

	press(m, "s")
	step(m, 31*time.Second)

	if m.engine.Status() != game.StatusEnded {
		t.Fatalf("status = %v, want ended", m.engine.Status())
	}
	if !m.overlay.visible || m.overlay.dim {
		t.Error("game-over overlay should be fully shown")
	}
	if m.result == nil || m.result.score != 0 || m.result.newHigh {
		t.Errorf("result = %+v, want score 0 without a new high", m.result)
	}
	if len(m.sprites) != 0 {
		t.Errorf("%d sprites left after the end fade", len(m.sprites))
	}
	if m.hud.remaining != 0 {
		t.Errorf("hud time = %d, want 0", m.hud.remaining)
	}
	if len(rec.rounds) != 1 {
		t.Errorf("recorded %d rounds, want 1", len(rec.rounds))
	}
	if !strings.Contains(m.View(), "TIME'S UP") {
		t.Error("view should show the game-over panel")
	}
}

func TestHighScoreReachesHUD(t *testing.T) {
	m, prefs := newTestModel(t, false)
	press(m, "s")
	step(m, 1700*time.Millisecond)

	sp := m.sprites[1]
	r := m.spriteRect(sp, m.engine.Clock().Now())
	click(m, r.X+1+balloonWidth/2, r.Y+1+hudRows+1)

	step(m, 30*time.Second)
	if m.hud.best != 1 || prefs.HighScore() != 1 {
		t.Errorf("best = %d (stored %d), want 1", m.hud.best, prefs.HighScore())
	}
	if m.result == nil || !m.result.newHigh {
		t.Error("result should report a new high score")
	}
}

func TestRestartKey(t *testing.T) {
	m, _ := newTestModel(t, false)
	press(m, "s")
	step(m, 5*time.Second)

	press(m, "s")
	if m.hud.remaining != 25 {
		t.Errorf("start during a round should be ignored, time = %d", m.hud.remaining)
	}

	press(m, "r")
	if m.hud.remaining != 30 || len(m.sprites) != 0 {
		t.Errorf("restart: time = %d, sprites = %d", m.hud.remaining, len(m.sprites))
	}
}

func TestMotionToggle(t *testing.T) {
	m, prefs := newTestModel(t, false)

	press(m, "m")
	if !m.engine.ReduceMotion() || !prefs.ReduceMotion() {
		t.Error("m should turn reduce motion on and persist it")
	}
	if !strings.Contains(m.View(), "reduced motion") {
		t.Error("HUD should show reduced motion")
	}

	press(m, "m")
	if m.engine.ReduceMotion() || prefs.ReduceMotion() {
		t.Error("second m should turn reduce motion off")
	}
}

func TestQuitKey(t *testing.T) {
	m, _ := newTestModel(t, false)
	if cmd := press(m, "q"); cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestResizeNarrowsSpawnRange(t *testing.T) {
	m, _ := newTestModel(t, false)
	m.Update(tea.WindowSizeMsg{Width: 30, Height: 20})
	press(m, "s")

	for i := 0; i < 20; i++ {
		step(m, 700*time.Millisecond)
	}
	for _, sp := range m.sprites {
		if sp.balloon.X < 0 || sp.balloon.X > 28-balloonWidth {
			t.Errorf("balloon %d at x=%d, outside [0, %d]", sp.balloon.ID, sp.balloon.X, 28-balloonWidth)
		}
	}
	if m.screen.Width() != 30 || m.screen.Height() != playHeight(20) {
		t.Errorf("screen = %dx%d", m.screen.Width(), m.screen.Height())
	}
}

func TestViewTooSmall(t *testing.T) {
	m, _ := newTestModel(t, false)
	m.Update(tea.WindowSizeMsg{Width: 10, Height: 5})
	if !strings.Contains(m.View(), "Terminal too small") {
		t.Error("expected a size warning")
	}
}

func TestViewIntro(t *testing.T) {
	m, _ := newTestModel(t, false)
	view := m.View()
	for _, want := range []string{"Score: 0", "Time: 30s", "Best: 0", "POP A FRIEND", "No photos"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestGalleryLimitAppliedToOptions(t *testing.T) {
	photos := []gallery.Photo{"a.jpg", "b.jpg", "c.jpg", "d.jpg", "e.jpg", "f.jpg"}
	m := NewModel(Options{
		Config:  config.DefaultConfig(),
		Runtime: core.RuntimeConfig{ScreenW: 60, ScreenH: 24, Seed: 1},
		Photos:  photos,
	})
	if got := m.engine.Gallery().Len(); got != gallery.MaxPhotos {
		t.Errorf("gallery holds %d photos, want %d", got, gallery.MaxPhotos)
	}
	if !strings.Contains(m.photoStrip(), "(5/5)") {
		t.Errorf("photo strip = %q", m.photoStrip())
	}
}

func TestPhotoLabel(t *testing.T) {
	tests := []struct {
		name string
		b    game.Balloon
		want rune
	}{
		{"no photo", game.Balloon{}, '♥'},
		{"plain name", game.Balloon{HasPhoto: true, Photo: "/tmp/alice.png"}, 'A'},
		{"leading symbols", game.Balloon{HasPhoto: true, Photo: "_-bob.jpg"}, 'B'},
		{"digit", game.Balloon{HasPhoto: true, Photo: "7up.jpg"}, '7'},
		{"no letters", game.Balloon{HasPhoto: true, Photo: "__.jpg"}, 'J'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := photoLabel(tt.b); got != tt.want {
				t.Errorf("photoLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScreenshotKey(t *testing.T) {
	dir := t.TempDir()
	m := NewModel(Options{
		Config:        config.DefaultConfig(),
		Runtime:       core.RuntimeConfig{ScreenW: 60, ScreenH: 24, Seed: 1},
		ScreenshotDir: dir,
	})

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d screenshots, want 1", len(entries))
	}
	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "POP A FRIEND") {
		t.Error("screenshot should contain the intro panel")
	}
}

func TestGalleryNeverExceedsMaxPhotos(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Gallery.MaxPhotos = 8
	photos := make([]gallery.Photo, 8)
	for i := range photos {
		photos[i] = gallery.Photo(fmt.Sprintf("p%d.jpg", i))
	}

	m := NewModel(Options{
		Config:  cfg,
		Runtime: core.RuntimeConfig{ScreenW: 60, ScreenH: 24, Seed: 1},
		Photos:  photos,
	})
	if got := m.engine.Gallery().Len(); got != gallery.MaxPhotos {
		t.Errorf("gallery holds %d photos, want %d", got, gallery.MaxPhotos)
	}
}
