package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/popafriend/internal/core"
	"github.com/vovakirdan/popafriend/internal/game"
)

// Balloon sprite, drawn with its label in the middle of the second row.
const (
	balloonWidth  = 5
	balloonHeight = 4
)

var balloonSprite = [balloonHeight]string{
	"╭───╮",
	"│   │",
	"╰─┬─╯",
	"  ╵  ",
}

var burstSprite = [balloonHeight]string{
	"\\ | /",
	"-   -",
	"/ | \\",
	"     ",
}

var (
	hudStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	bestStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	motionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	stripStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

// View renders the current state to a string for display.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.runtime.ScreenW < minWidth || m.runtime.ScreenH < minHeight {
		return fmt.Sprintf("Terminal too small (%dx%d), need at least %dx%d",
			m.runtime.ScreenW, m.runtime.ScreenH, minWidth, minHeight)
	}

	m.drawPlayArea()

	var sb strings.Builder
	sb.WriteString(m.hudLine())
	sb.WriteRune('\n')
	sb.WriteString(RenderScreen(m.screen))
	sb.WriteRune('\n')
	sb.WriteString(m.photoStrip())
	sb.WriteRune('\n')
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

// drawPlayArea renders the box, the balloons and the overlay into the screen buffer.
func (m *Model) drawPlayArea() {
	s := m.screen
	s.Clear()
	s.DrawBox(core.NewRect(0, 0, s.Width(), s.Height()), core.ColorGray)

	now := m.engine.Clock().Now()
	for _, id := range m.sortedSprites() {
		m.drawSprite(m.sprites[id], now)
	}

	if m.overlay.visible {
		m.drawOverlay()
	}
}

// spriteRect returns where a balloon is drawn at now, in play-area interior
// coordinates. Balloons rise from just below the area to just above it.
func (m *Model) spriteRect(sp *sprite, now time.Time) core.Rect {
	p := sp.balloon.Progress(now)
	if sp.fading {
		p = sp.frozenAt
	}
	h := m.areaHeight()
	y := h - int(p*float64(h+balloonHeight))
	return core.NewRect(sp.balloon.X, y, balloonWidth, balloonHeight)
}

func (m *Model) drawSprite(sp *sprite, now time.Time) {
	r := m.spriteRect(sp, now)
	rows := balloonSprite
	color := sp.color

	switch {
	case sp.fading && sp.reason == game.RemovedPopped:
		rows = burstSprite
		color = core.ColorBrightWhite
		if fadeProgress(sp, now) > 0.5 {
			color = core.ColorGray
		}
	case sp.fading:
		color = core.ColorGray
	case now.Sub(sp.balloon.SpawnedAt) < sp.balloon.AppearFade:
		color = core.ColorGray
	}

	interior := core.NewRect(1, 1, m.screen.Width()-2, m.areaHeight())
	for dy, row := range rows {
		x := r.X + 1
		y := r.Y + dy + 1
		for _, ch := range row {
			if ch != ' ' && interior.Contains(x, y) {
				m.screen.SetColor(x, y, ch, color)
			}
			x++
		}
	}

	if rows == balloonSprite {
		lx, ly := r.X+1+balloonWidth/2, r.Y+2
		if interior.Contains(lx, ly) {
			m.screen.SetColor(lx, ly, photoLabel(sp.balloon), core.ColorBrightWhite)
		}
	}
}

// fadeProgress reports how far a fading sprite is through its exit, in [0, 1].
func fadeProgress(sp *sprite, now time.Time) float64 {
	if sp.fadeFor <= 0 {
		return 1
	}
	return core.ClampFloat(float64(now.Sub(sp.fadeStart))/float64(sp.fadeFor), 0, 1)
}

// photoLabel is the rune shown inside a balloon: the photo's initial, or a heart.
func photoLabel(b game.Balloon) rune {
	if !b.HasPhoto {
		return '♥'
	}
	name := filepath.Base(string(b.Photo))
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToUpper(r)
		}
	}
	return '?'
}

func (m *Model) drawOverlay() {
	color := core.ColorBrightWhite
	if m.overlay.dim {
		color = core.ColorGray
	}

	lines := []string{"POP A FRIEND", "", "Click balloons before they float away", "Press s to start"}
	if m.result != nil {
		lines = []string{"TIME'S UP", "", fmt.Sprintf("Score: %d", m.result.score)}
		if m.result.newHigh {
			lines = append(lines, "New high score!")
		}
		lines = append(lines, "", "Press r to play again")
	}

	width := 0
	for _, l := range lines {
		width = core.Max(width, len([]rune(l)))
	}
	w := core.Min(width+4, m.screen.Width()-2)
	h := core.Min(len(lines)+2, m.screen.Height()-2)
	x := (m.screen.Width() - w) / 2
	y := (m.screen.Height() - h) / 2

	box := core.NewRect(x, y, w, h)
	m.screen.FillRect(box, ' ', core.ColorDefault)
	m.screen.DrawBox(box, color)
	for i, l := range lines {
		if i+1 >= h-1 {
			break
		}
		m.screen.DrawTextCentered(y+1+i, l, color)
	}
}

// hudLine renders score, time and best above the play area.
func (m *Model) hudLine() string {
	parts := []string{
		hudStyle.Render(fmt.Sprintf("Score: %d", m.hud.score)),
		hudStyle.Render(fmt.Sprintf("Time: %ds", m.hud.remaining)),
		bestStyle.Render(fmt.Sprintf("Best: %d", m.hud.best)),
	}
	if m.engine.ReduceMotion() {
		parts = append(parts, motionStyle.Render("reduced motion"))
	}
	return strings.Join(parts, "   ")
}

// photoStrip lists the gallery below the play area.
func (m *Model) photoStrip() string {
	g := m.engine.Gallery()
	if g.Len() == 0 {
		return emptyStyle.Render("No photos: balloons carry hearts")
	}
	names := make([]string, 0, g.Len())
	for _, p := range g.Photos() {
		names = append(names, filepath.Base(string(p)))
	}
	return stripStyle.Render(fmt.Sprintf("Photos (%d/%d): %s", g.Len(), g.Cap(), strings.Join(names, "  ")))
}
