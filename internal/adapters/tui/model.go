// Package tui is the interactive terminal front end: pick items, compare
// them pair by pair, then review and save the ranking.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/okian/rankr/internal/domain/selection"
	"github.com/okian/rankr/internal/domain/tournament"
	"github.com/okian/rankr/internal/domain/types"
)

// Backend is what the UI needs from the service layer.
type Backend interface {
	Catalog() []string
	NewTournament(items []string) (*tournament.Engine, error)
	ExportRanking(ctx context.Context, standings []types.Entry) (string, error)
}

// Screen identifies the active view.
type Screen int

// Screens, in flow order.
const (
	ScreenSelect Screen = iota
	ScreenCompare
	ScreenResults
)

const (
	minVisibleRows = 5
	chromeRows     = 9 // title, count, status, help and spacing around the list
	barWidth       = 30
)

// exportedMsg carries the outcome of a save.
type exportedMsg struct {
	path string
	err  error
}

// Model is the bubbletea model of one interactive run. It owns at most one
// tournament engine at a time.
type Model struct {
	ctx     context.Context
	backend Backend

	screen  Screen
	catalog []string
	checked []bool
	cursor  int
	offset  int

	engine    *tournament.Engine
	standings []types.Entry

	status    string
	statusErr bool
	saving    bool

	help          help.Model
	width, height int
}

// New creates the model on the selection screen.
func New(ctx context.Context, backend Backend) Model {
	names := backend.Catalog()
	return Model{
		ctx:     ctx,
		backend: backend,
		catalog: names,
		checked: make([]bool, len(names)),
		help:    help.New(),
		height:  24,
	}
}

// Run starts an alt-screen program and blocks until the user quits.
func Run(ctx context.Context, backend Backend) error {
	p := tea.NewProgram(New(ctx, backend), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}

// Screen returns the active screen.
func (m Model) Screen() Screen { return m.screen }

// Selected returns the checked items in catalog order.
func (m Model) Selected() []string {
	out := make([]string, 0, selection.MaxItems)
	for i, ok := range m.checked {
		if ok {
			out = append(out, m.catalog[i])
		}
	}
	return out
}

// Engine returns the running tournament, if any.
func (m Model) Engine() *tournament.Engine { return m.engine }

// Standings returns the final ranking once the tournament is finished.
func (m Model) Standings() []types.Entry { return m.standings }

// Status returns the status line and whether it reports a failure.
func (m Model) Status() (string, bool) { return m.status, m.statusErr }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.ensureCursorVisible()
		return m, nil
	case exportedMsg:
		m.saving = false
		if msg.err != nil {
			m.setError(fmt.Sprintf("Could not save: %v", msg.err))
		} else {
			m.setStatus("Saved to " + msg.path)
		}
		return m, nil
	case tea.KeyMsg:
		switch m.screen {
		case ScreenSelect:
			return m.updateSelect(msg)
		case ScreenCompare:
			return m.updateCompare(msg)
		case ScreenResults:
			return m.updateResults(msg)
		}
	}
	return m, nil
}

func (m Model) updateSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := keys.Select
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, k.Down):
		if m.cursor < len(m.catalog)-1 {
			m.cursor++
		}
	case key.Matches(msg, k.Toggle):
		if len(m.checked) > 0 {
			m.checked[m.cursor] = !m.checked[m.cursor]
			m.clearStatus()
		}
	case key.Matches(msg, k.Start):
		m.start()
	}
	m.ensureCursorVisible()
	return m, nil
}

func (m *Model) start() {
	items := m.Selected()
	e, err := m.backend.NewTournament(items)
	if err != nil {
		m.setError(selectionHint(len(items)))
		return
	}
	m.engine = e
	m.clearStatus()
	if e.Start() == tournament.StateFinished {
		m.finish()
		return
	}
	m.screen = ScreenCompare
}

func (m Model) updateCompare(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := keys.Compare
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Left):
		m.vote(tournament.ChoiceLeft)
	case key.Matches(msg, k.Tie):
		m.vote(tournament.ChoiceTie)
	case key.Matches(msg, k.Right):
		m.vote(tournament.ChoiceRight)
	case key.Matches(msg, k.Back):
		m.back()
	}
	return m, nil
}

func (m *Model) vote(c tournament.Choice) {
	if err := m.engine.VoteCurrent(c); err != nil {
		m.setError(err.Error())
		return
	}
	m.clearStatus()
	if m.engine.IsFinished() {
		m.finish()
	}
}

func (m *Model) back() {
	if !m.engine.CanUndo() {
		return
	}
	if _, err := m.engine.Back(); err != nil {
		m.setError(err.Error())
		return
	}
	m.standings = nil
	m.clearStatus()
	m.screen = ScreenCompare
}

func (m *Model) finish() {
	m.standings = m.engine.FinalRanking()
	m.screen = ScreenResults
}

func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := keys.Results
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Save):
		if m.saving {
			return m, nil
		}
		m.saving = true
		m.setStatus("Saving…")
		return m, m.exportCmd()
	case key.Matches(msg, k.Back):
		m.back()
	case key.Matches(msg, k.Restart):
		m.restart()
	}
	return m, nil
}

func (m Model) exportCmd() tea.Cmd {
	ctx, backend := m.ctx, m.backend
	standings := append([]types.Entry(nil), m.standings...)
	return func() tea.Msg {
		path, err := backend.ExportRanking(ctx, standings)
		return exportedMsg{path: path, err: err}
	}
}

func (m *Model) restart() {
	m.engine = nil
	m.standings = nil
	m.checked = make([]bool, len(m.catalog))
	m.cursor, m.offset = 0, 0
	m.clearStatus()
	m.screen = ScreenSelect
}

func (m *Model) setStatus(s string) { m.status, m.statusErr = s, false }
func (m *Model) setError(s string)  { m.status, m.statusErr = s, true }
func (m *Model) clearStatus()       { m.status, m.statusErr = "", false }

func (m Model) visibleRows() int {
	rows := m.height - chromeRows
	if rows < minVisibleRows {
		return minVisibleRows
	}
	return rows
}

func (m *Model) ensureCursorVisible() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

func selectionHint(n int) string {
	return fmt.Sprintf("Select between %d and %d items (%d selected).",
		selection.MinItems, selection.MaxItems, n)
}

// View implements tea.Model.
func (m Model) View() string {
	var body string
	var bindings help.KeyMap
	switch m.screen {
	case ScreenCompare:
		body, bindings = m.viewCompare(), keys.Compare
	case ScreenResults:
		body, bindings = m.viewResults(), keys.Results
	default:
		body, bindings = m.viewSelect(), keys.Select
	}

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n")
	if m.status != "" {
		style := okStyle
		if m.statusErr {
			style = errStyle
		}
		b.WriteString(style.Render(m.status))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(bindings))
	return b.String()
}

func (m Model) viewSelect() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Pick what to rank"))
	b.WriteString("\n\n")

	end := m.offset + m.visibleRows()
	if end > len(m.catalog) {
		end = len(m.catalog)
	}
	for i := m.offset; i < end; i++ {
		box := "[ ]"
		if m.checked[i] {
			box = checkedStyle.Render("[x]")
		}
		line := fmt.Sprintf("%s %s", box, m.catalog[i])
		if i == m.cursor {
			line = cursorStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	n := len(m.Selected())
	count := fmt.Sprintf("\n%d selected (choose %d to %d)", n, selection.MinItems, selection.MaxItems)
	if selection.IsValid(m.Selected()) {
		b.WriteString(okStyle.Render(count + "  enter to start"))
	} else {
		b.WriteString(mutedStyle.Render(count))
	}
	return b.String()
}

func (m Model) viewCompare() string {
	pair, err := m.engine.CurrentPair()
	if err != nil {
		return errStyle.Render(err.Error())
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Which do you prefer?"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		choiceStyle.Render(pair.Left),
		versusStyle.Render("vs"),
		choiceStyle.Render(pair.Right),
	))
	b.WriteString("\n\n")
	b.WriteString(progressBar(m.engine.Decided(), m.engine.Total()))
	return b.String()
}

func progressBar(done, total int) string {
	filled := 0
	if total > 0 {
		filled = done * barWidth / total
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	return progressStyle.Render(bar) + mutedStyle.Render(fmt.Sprintf(" %d/%d", done, total))
}

func (m Model) viewResults() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Final ranking"))
	b.WriteString("\n\n")
	for _, s := range m.standings {
		fmt.Fprintf(&b, "%3dº %s %s\n", s.Rank, s.Item, starStyle.Render(fmt.Sprintf("★ %d", s.Score)))
	}
	return b.String()
}
