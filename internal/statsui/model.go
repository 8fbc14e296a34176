// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/typedrill/typedrill/internal/archive"
	"github.com/typedrill/typedrill/internal/model"
	"github.com/typedrill/typedrill/internal/stats"
	"github.com/typedrill/typedrill/internal/vocab"
)

const (
	tabOverview = iota
	tabResults
	tabWords
)

const sparklineWidth = 60

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea stats UI.
type Model struct {
	archive      *archive.Archive
	scheduler    *vocab.Scheduler
	progressUser string

	aggs          model.AggregateStats
	results       []model.TestResult
	progress      []model.WordProgress
	progressStats vocab.ProgressStats
	errMsg        string

	tabs         []string
	activeTab    int
	overview     viewport.Model
	resultsTable table.Model
	wordsTable   table.Model

	width  int
	height int
}

// NewModel constructs a stats UI model over the archive and word progress.
func NewModel(arch *archive.Archive, scheduler *vocab.Scheduler, progressUser string) *Model {
	m := &Model{
		archive:      arch,
		scheduler:    scheduler,
		progressUser: progressUser,
		tabs:         []string{"Overview", "Results", "Words"},
		overview:     viewport.New(0, 0),
	}
	m.resultsTable = buildResultsTable(nil, 0, 1)
	m.wordsTable = buildWordsTable(nil, 0, 1)
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderOverview()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "r":
			m.refresh()
			m.updateLayout()
			m.renderOverview()
			return m, nil
		case "g", "home":
			m.gotoTop()
			return m, nil
		case "G", "end":
			m.gotoBottom()
			return m, nil
		default:
			return m.forwardKey(msg)
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

// refresh reloads every view from storage.
func (m *Model) refresh() {
	ctx := context.Background()
	m.errMsg = ""

	aggs, err := m.archive.Aggregates(ctx)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	results, err := m.archive.Results(ctx)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.aggs = aggs
	m.results = results
	m.resultsTable.SetRows(resultRows(results))

	if m.scheduler != nil {
		progress, err := m.scheduler.Progress(ctx, m.progressUser)
		if err != nil {
			m.errMsg = err.Error()
			return
		}
		progressStats, err := m.scheduler.Stats(ctx, m.progressUser)
		if err != nil {
			m.errMsg = err.Error()
			return
		}
		m.progress = progress
		m.progressStats = progressStats
		m.wordsTable.SetRows(wordRows(progress))
	}
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight
	footerHeight = 1
	if m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.overview.Width = m.width
	m.overview.Height = bodyHeight
	m.resultsTable.SetWidth(m.width)
	m.resultsTable.SetHeight(maxInt(1, bodyHeight-1))
	m.wordsTable.SetWidth(m.width)
	m.wordsTable.SetHeight(maxInt(1, bodyHeight-1))
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	switch m.activeTab {
	case tabResults:
		m.resultsTable.Focus()
		m.wordsTable.Blur()
	case tabWords:
		m.wordsTable.Focus()
		m.resultsTable.Blur()
	default:
		m.resultsTable.Blur()
		m.wordsTable.Blur()
	}
}

func (m *Model) gotoTop() {
	switch m.activeTab {
	case tabResults:
		m.resultsTable.GotoTop()
	case tabWords:
		m.wordsTable.GotoTop()
	default:
		m.overview.GotoTop()
	}
}

func (m *Model) gotoBottom() {
	switch m.activeTab {
	case tabResults:
		m.resultsTable.GotoBottom()
	case tabWords:
		m.wordsTable.GotoBottom()
	default:
		m.overview.GotoBottom()
	}
}

func (m *Model) forwardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.activeTab {
	case tabResults:
		m.resultsTable, cmd = m.resultsTable.Update(msg)
	case tabWords:
		m.wordsTable, cmd = m.wordsTable.Update(msg)
	default:
		m.overview, cmd = m.overview.Update(msg)
	}
	return m, cmd
}

func (m *Model) renderHeader() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return padLines(lipgloss.JoinHorizontal(lipgloss.Top, parts...), m.width)
}

func (m *Model) renderFooter() string {
	help := headerStyle.Render("Nav: left/right  Scroll: up/down  Refresh: r  Quit: q")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func (m *Model) renderBody() string {
	_, bodyHeight, _ := m.layoutHeights()
	switch m.activeTab {
	case tabResults:
		if len(m.results) == 0 {
			return fitLines("No results yet.", m.width, bodyHeight)
		}
		return fitLines(tableMutedStyle.Render(m.resultsTable.View()), m.width, bodyHeight)
	case tabWords:
		if len(m.progress) == 0 {
			return fitLines("No vocabulary practice yet.", m.width, bodyHeight)
		}
		return fitLines(tableMutedStyle.Render(m.wordsTable.View()), m.width, bodyHeight)
	default:
		return fitLines(m.overview.View(), m.width, bodyHeight)
	}
}

func (m *Model) renderOverview() {
	m.overview.SetContent(renderOverview(m.aggs, m.results, m.progressStats, m.width))
}

func renderOverview(aggs model.AggregateStats, results []model.TestResult, progress vocab.ProgressStats, width int) string {
	if aggs.TotalTests == 0 {
		return "No tests completed yet."
	}
	cards := []string{
		metricCard("Tests", fmt.Sprintf("%d", aggs.TotalTests)),
		metricCard("Avg WPM", fmt.Sprintf("%d", aggs.AverageWPM)),
		metricCard("Best WPM", fmt.Sprintf("%d", aggs.BestWPM)),
		metricCard("Avg Acc", fmt.Sprintf("%d%%", aggs.AverageAccuracy)),
		metricCard("Time", formatDuration(aggs.TotalTime)),
	}
	var summary string
	if width >= 80 {
		row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
		row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4])
		summary = lipgloss.JoinVertical(lipgloss.Left, row1, row2)
	} else {
		summary = strings.Join(cards, "\n")
	}

	sections := []string{summary, renderTrend(results)}
	if progress.Total > 0 {
		sections = append(sections, headerStyle.Render(fmt.Sprintf(
			"Vocabulary: %d words · %d mastered · %d learning · %d review · %d new",
			progress.Total, progress.Mastered, progress.Learning, progress.Review, progress.New)))
	}
	return strings.TrimRight(strings.Join(sections, "\n\n"), "\n")
}

// renderTrend plots the WPM of the retained results, oldest to newest.
func renderTrend(results []model.TestResult) string {
	if len(results) < 2 {
		return headerStyle.Render("WPM trend: not enough data yet")
	}
	values := make([]float64, len(results))
	for i, r := range results {
		// Results are stored newest first.
		values[len(results)-1-i] = float64(r.WPM)
	}
	line := stats.Sparkline(stats.Resample(values, sparklineWidth))
	return headerStyle.Render("WPM trend") + "\n" + line
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func buildResultsTable(results []model.TestResult, width, height int) table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 16},
		{Title: "WPM", Width: 5},
		{Title: "Accuracy", Width: 9},
		{Title: "Errors", Width: 7},
		{Title: "Source", Width: 12},
		{Title: "Length", Width: 7},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(resultRows(results)),
		table.WithHeight(maxInt(1, height-1)),
	)
	t.SetWidth(width)
	t.SetStyles(tableStyles())
	return t
}

func resultRows(results []model.TestResult) []table.Row {
	rows := make([]table.Row, 0, len(results))
	for _, r := range results {
		rows = append(rows, table.Row{
			r.Timestamp.Local().Format("2006-01-02 15:04"),
			fmt.Sprintf("%d", r.WPM),
			fmt.Sprintf("%d%%", r.Accuracy),
			fmt.Sprintf("%d", r.Errors),
			r.TextSource,
			string(r.TextLength),
		})
	}
	return rows
}

func buildWordsTable(progress []model.WordProgress, width, height int) table.Model {
	columns := []table.Column{
		{Title: "Word", Width: 16},
		{Title: "Status", Width: 9},
		{Title: "Correct", Width: 8},
		{Title: "Incorrect", Width: 9},
		{Title: "Next review", Width: 16},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(wordRows(progress)),
		table.WithHeight(maxInt(1, height-1)),
	)
	t.SetWidth(width)
	t.SetStyles(tableStyles())
	return t
}

func wordRows(progress []model.WordProgress) []table.Row {
	rows := make([]table.Row, 0, len(progress))
	for _, p := range progress {
		rows = append(rows, table.Row{
			p.Word,
			string(p.Status),
			fmt.Sprintf("%d", p.CorrectCount),
			fmt.Sprintf("%d", p.IncorrectCount),
			p.NextReview.Local().Format("2006-01-02 15:04"),
		})
	}
	return rows
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func formatDuration(seconds float64) string {
	d := time.Duration(seconds) * time.Second
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}
