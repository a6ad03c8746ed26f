package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/popafriend/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawTextColor(0, 0, "pop", core.ColorBrightRed)
	s.DrawTextColor(4, 0, "a", core.ColorGray)
	s.DrawTextColor(6, 0, "friend", core.ColorBrightRed)
	s.DrawBox(core.NewRect(0, 1, 12, 2), core.ColorGray)

	out := RenderScreen(s)
	rows := strings.Split(out, "\n")
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	for _, want := range []string{"pop", "a", "friend"} {
		if !strings.Contains(rows[0], want) {
			t.Errorf("row 0 %q missing %q", rows[0], want)
		}
	}
	if !strings.Contains(rows[1], "┌") || !strings.Contains(rows[2], "┘") {
		t.Errorf("box rows = %q, %q", rows[1], rows[2])
	}
}

func TestStyleForEveryBalloonColor(t *testing.T) {
	for _, c := range core.BalloonColors {
		if _, ok := palette[c]; !ok {
			t.Errorf("balloon color %d has no palette entry", c)
		}
	}
	if got := styleFor(core.Color(250)).Render("x"); got != "x" {
		t.Errorf("unknown color rendered %q, want plain text", got)
	}
}
