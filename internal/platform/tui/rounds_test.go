package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/popafriend/internal/storage"
)

type fakeRounds struct {
	rounds []storage.RoundRecord
	err    error
	limit  int
}

func (f *fakeRounds) RecentRounds(limit int) ([]storage.RoundRecord, error) {
	f.limit = limit
	return f.rounds, f.err
}

func TestRoundsModelEmpty(t *testing.T) {
	m := NewRoundsModel(&fakeRounds{}, 80, 24)
	if !strings.Contains(m.View(), "No rounds recorded yet") {
		t.Error("expected empty message")
	}
}

func TestRoundsModelLoadError(t *testing.T) {
	m := NewRoundsModel(&fakeRounds{err: errors.New("locked")}, 80, 24)
	if !strings.Contains(m.View(), "locked") {
		t.Error("expected the load error in the view")
	}
}

func TestRoundsModelRows(t *testing.T) {
	src := &fakeRounds{rounds: []storage.RoundRecord{
		{RoundID: "1b9d6bcd-bbfd-4b2d", Score: 17, NewHighScore: true, CreatedAt: time.Date(2026, 3, 4, 10, 30, 0, 0, time.UTC)},
		{RoundID: "6ec0bd7f-11c0-43da", Score: 9, CreatedAt: time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)},
	}}
	m := NewRoundsModel(src, 80, 24)

	if src.limit != maxRounds {
		t.Errorf("requested %d rounds, want %d", src.limit, maxRounds)
	}
	rows := m.table.Rows()
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0][1] != "17" || rows[0][2] != "★" || rows[0][4] != "1b9d6bcd" {
		t.Errorf("first row = %v", rows[0])
	}
	if rows[1][2] != "" {
		t.Errorf("second row should not be marked best: %v", rows[1])
	}
}

func TestRoundsModelQuit(t *testing.T) {
	m := NewRoundsModel(nil, 80, 24)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc should quit")
	}
	if next.(RoundsModel).View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("abc-def"); got != "abc" {
		t.Errorf("shortID = %q", got)
	}
	if got := shortID("plain"); got != "plain" {
		t.Errorf("shortID = %q", got)
	}
}
