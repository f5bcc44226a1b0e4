// Package tui implements a read-only interactive browser over tracked goals.
package tui

import (
	"fmt"

	"github.com/Veraticus/nest-egg/internal/cli"
	"github.com/Veraticus/nest-egg/internal/ledger"
	"github.com/Veraticus/nest-egg/internal/model"
	"github.com/Veraticus/nest-egg/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultWidth       = 80
	defaultHistory     = 10
	maxBarWidth        = 40
	minBarWidth        = 10
	reservedBarColumns = 40
)

// GoalSource supplies the goals and their ledgers. *tracker.Manager
// satisfies it.
type GoalSource interface {
	Goals() []model.Goal
	Transactions(name string) ([]model.Transaction, error)
}

// Config holds TUI configuration.
type Config struct {
	Theme  themes.Theme
	Money  cli.Money
	Width  int
	Height int
}

// Model is the bubbletea model of the goal browser. Goals and their
// histories are captured once when the model is built.
type Model struct {
	history  map[string][]model.Transaction
	theme    themes.Theme
	money    cli.Money
	keys     KeyMap
	help     help.Model
	bar      progress.Model
	goals    []model.Goal
	cursor   int
	width    int
	height   int
	quitting bool
}

// New snapshots src into a browser model. Histories are kept newest first.
func New(src GoalSource, cfg Config) (Model, error) {
	goals := src.Goals()
	history := make(map[string][]model.Transaction, len(goals))
	for _, g := range goals {
		txs, err := src.Transactions(g.Name)
		if err != nil {
			return Model{}, fmt.Errorf("failed to load history for %q: %w", g.Name, err)
		}
		history[g.Name] = ledger.NewestFirst(txs)
	}

	width := cfg.Width
	if width <= 0 {
		width = defaultWidth
	}

	m := Model{
		goals:   goals,
		history: history,
		theme:   cfg.Theme,
		money:   cfg.Money,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		bar:     cli.NewGoalBar(barWidth(width)),
		width:   width,
		height:  cfg.Height,
	}
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = barWidth(msg.Width)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.goals)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Home):
			m.cursor = 0
		case key.Matches(msg, m.keys.End):
			if len(m.goals) > 0 {
				m.cursor = len(m.goals) - 1
			}
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

// Selected returns the goal under the cursor.
func (m Model) Selected() (model.Goal, bool) {
	if len(m.goals) == 0 {
		return model.Goal{}, false
	}
	return m.goals[m.cursor], true
}

func barWidth(termWidth int) int {
	w := termWidth - reservedBarColumns
	switch {
	case w > maxBarWidth:
		return maxBarWidth
	case w < minBarWidth:
		return minBarWidth
	}
	return w
}

// historyRows is how many ledger lines fit under the goal list.
func (m Model) historyRows() int {
	if m.height <= 0 {
		return defaultHistory
	}
	rows := m.height - len(m.goals) - 12
	if rows < 3 {
		return 3
	}
	return rows
}
