package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/popafriend/internal/storage"
)

// maxRounds caps how many rounds the browser loads.
const maxRounds = 100

// RoundSource lists recorded rounds, newest first.
type RoundSource interface {
	RecentRounds(limit int) ([]storage.RoundRecord, error)
}

// RoundsKeyMap defines the key bindings for the round history browser.
type RoundsKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RoundsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RoundsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Quit}}
}

// DefaultRoundsKeyMap returns default key bindings.
func DefaultRoundsKeyMap() RoundsKeyMap {
	return RoundsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RoundsModel is the Bubble Tea model for browsing past rounds.
type RoundsModel struct {
	rounds   []storage.RoundRecord
	loadErr  error
	table    table.Model
	help     help.Model
	keys     RoundsKeyMap
	width    int
	height   int
	quitting bool
}

// NewRoundsModel loads the most recent rounds from src.
func NewRoundsModel(src RoundSource, width, height int) RoundsModel {
	m := RoundsModel{
		keys:   DefaultRoundsKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	if src != nil {
		m.rounds, m.loadErr = src.RecentRounds(maxRounds)
	}
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

func (m *RoundsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 5},
		{Title: "Score", Width: 7},
		{Title: "Best", Width: 5},
		{Title: "Played", Width: 14},
		{Title: "Round", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *RoundsModel) updateTableRows() {
	rows := make([]table.Row, len(m.rounds))
	for i, r := range m.rounds {
		best := ""
		if r.NewHighScore {
			best = "★"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", r.Score),
			best,
			r.CreatedAt.Format("Jan 02 15:04"),
			shortID(r.RoundID),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// shortID trims a round UUID to its first group.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// Init initializes the model.
func (m RoundsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m RoundsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the browser.
func (m RoundsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render("RECENT ROUNDS"))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.tableContent()))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m RoundsModel) tableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(1, 2)

	switch {
	case m.loadErr != nil:
		return emptyStyle.Render(fmt.Sprintf("Could not load rounds: %v", m.loadErr))
	case len(m.rounds) == 0:
		return emptyStyle.Render("No rounds recorded yet.\nPlay one to fill this list!")
	}
	return m.table.View()
}

// RunRounds runs the round history browser.
func RunRounds(src RoundSource, width, height int) error {
	p := tea.NewProgram(
		NewRoundsModel(src, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
