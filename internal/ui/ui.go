package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	btable "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tracktab/internal/formatter"
	"github.com/desertthunder/tracktab/internal/ranking"
	"github.com/desertthunder/tracktab/internal/stats"
	"github.com/desertthunder/tracktab/internal/table"
)

// ViewState represents the current view in the viewer.
type ViewState int

const (
	TableView ViewState = iota
	StatsView
)

// Model represents the viewer state.
type Model struct {
	title   string
	view    ViewState
	source  *table.Table
	current *table.Table
	stats   *table.Table
	numeric []string
	rankIdx int
	rankBy  string
	status  string
	width   int
	height  int
	table   btable.Model
	err     error
	help    help.Model
	keys    keyMap
}

// NewModel creates a viewer for t. Statistics are computed once; ranking never changes them.
func NewModel(title string, t *table.Table) *Model {
	tbl := btable.New(
		btable.WithColumns(tableColumns(t)),
		btable.WithRows(tableRows(t)),
		btable.WithFocused(true),
		btable.WithHeight(min(max(t.Len(), 1), 20)),
	)

	s := btable.DefaultStyles()
	s.Header = styles.header
	s.Selected = styles.cursor
	tbl.SetStyles(s)

	return &Model{
		title:   title,
		view:    TableView,
		source:  t,
		current: t,
		stats:   stats.Describe(t),
		numeric: t.NumericColumns(),
		rankIdx: -1,
		table:   tbl,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init implements [tea.Model]; the viewer has nothing to load.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if h := msg.Height - 8; h > 0 {
			m.table.SetHeight(h)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case Msg:
		return m.handleMsg(msg)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.stats):
		if m.view == StatsView {
			m.view = TableView
		} else {
			m.view = StatsView
		}
		return m, nil
	case key.Matches(msg, m.keys.rank):
		if len(m.numeric) == 0 {
			m.status = "no numeric columns to rank by"
			return m, nil
		}
		m.rankIdx = (m.rankIdx + 1) % len(m.numeric)
		return m, m.rank(m.numeric[m.rankIdx])
	case key.Matches(msg, m.keys.reset):
		m.rankIdx = -1
		return m, func() tea.Msg { return restoredMsg() }
	}

	if m.view != TableView {
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgRanked:
		data := msg.data.(rankedData)
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		m.err = nil
		m.rankBy = data.column
		m.status = ""
		m.show(data.table)
	case MsgRestored:
		m.err = nil
		m.rankBy = ""
		m.status = ""
		m.show(m.source)
	}
	return m, nil
}

func (m *Model) rank(column string) tea.Cmd {
	source := m.source
	return func() tea.Msg {
		ranked, err := ranking.RankBy(source, column)
		return rankedMsg(column, ranked, err)
	}
}

// show swaps the visible rows and moves the cursor to the top.
func (m *Model) show(t *table.Table) {
	m.current = t
	m.table.SetRows(tableRows(t))
	m.table.GotoTop()
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	title := styles.title.Render(m.title)

	if m.err != nil {
		return fmt.Sprintf("%s\n%s\n\n%s", title, styles.err.Render(fmt.Sprintf("Error: %v", m.err)), m.help.View(m.keys))
	}

	switch m.view {
	case StatsView:
		return m.renderStats(title)
	default:
		return m.renderTable(title)
	}
}

func (m *Model) renderTable(title string) string {
	order := "input order"
	if m.rankBy != "" {
		order = fmt.Sprintf("ranked by %s", m.rankBy)
	}

	status := styles.help.Render(fmt.Sprintf("row %d/%d • %s", m.table.Cursor()+1, m.current.Len(), order))
	if m.current.Len() == 0 {
		status = styles.warn.Render("no rows")
	}
	if m.status != "" {
		status += "\n" + styles.warn.Render(m.status)
	}

	return fmt.Sprintf("%s\n%s\n%s\n\n%s", title, m.table.View(), status, m.help.View(m.keys))
}

func (m *Model) renderStats(title string) string {
	if len(m.stats.Columns()) == 0 {
		body := styles.warn.Render("no numeric columns")
		return fmt.Sprintf("%s\n%s\n\n%s", title, body, m.help.View(m.keys))
	}

	body := formatter.RenderTable(m.stats)
	count := styles.ok.Render(fmt.Sprintf("%d rows, %d numeric columns", m.source.Len(), len(m.numeric)))
	return fmt.Sprintf("%s\n%s\n%s\n\n%s", title, body, count, m.help.View(m.keys))
}

// Current returns the table as currently ordered.
func (m *Model) Current() *table.Table {
	return m.current
}

// RankedBy returns the ranking column, or "" for input order.
func (m *Model) RankedBy() string {
	return m.rankBy
}
