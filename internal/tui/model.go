// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/typedrill/typedrill/internal/archive"
	"github.com/typedrill/typedrill/internal/engine"
	"github.com/typedrill/typedrill/internal/model"
	"github.com/typedrill/typedrill/internal/server"
	statsPkg "github.com/typedrill/typedrill/internal/stats"
	"github.com/typedrill/typedrill/internal/textgen"
	"github.com/typedrill/typedrill/internal/vocab"
)

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cursorStyle      = pendingStyle.Copy().Underline(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	resultTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	resultBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 3)
)

// Options configures the practice shell.
type Options struct {
	Settings model.Settings
	TextOpts textgen.Options

	// ProgressUser keys the local word-progress records.
	ProgressUser string

	// API and RemoteUser enable fire-and-forget result mirroring to a
	// running backend. Both empty means fully offline.
	API        *server.APIClient
	RemoteUser string
}

// passageMsg carries a fetched passage tagged with its request sequence.
// A message whose sequence is older than the latest request is discarded.
type passageMsg struct {
	seq     int
	passage textgen.Passage
}

type tickMsg time.Time

type postedMsg struct{ err error }

// Model implements the Bubble Tea typing UI.
type Model struct {
	opts      Options
	gen       *textgen.Generator
	session   *engine.Session
	archive   *archive.Archive
	scheduler *vocab.Scheduler

	width  int
	height int

	fetching    bool
	fetchSeq    int
	currentWord *model.VocabularyWord

	showResults bool
	lastResult  model.TestResult
	lastAggs    model.AggregateStats
}

// NewModel constructs the practice shell.
func NewModel(opts Options, gen *textgen.Generator, arch *archive.Archive, scheduler *vocab.Scheduler) *Model {
	if opts.ProgressUser == "" {
		opts.ProgressUser = "local"
	}
	return &Model{
		opts:      opts,
		gen:       gen,
		archive:   arch,
		scheduler: scheduler,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.startFetch(), tickCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// startFetch requests a new passage. While the fetch is in flight the UI
// refuses input; a reset issued meanwhile bumps the sequence so the older
// fetch result is dropped when it lands.
func (m *Model) startFetch() tea.Cmd {
	m.fetching = true
	m.showResults = false
	m.fetchSeq++
	seq := m.fetchSeq
	gen := m.gen
	scheduler := m.scheduler
	opts := m.opts.TextOpts
	progressUser := m.opts.ProgressUser

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if opts.Source == textgen.SourceVocabulary && opts.Word == "" && scheduler != nil {
			word, err := scheduler.NextWord(ctx, progressUser, time.Now())
			if err != nil {
				logErrf("failed to pick next word: %v\n", err)
			} else {
				opts.Word = word
			}
		}
		return passageMsg{seq: seq, passage: gen.Generate(ctx, opts)}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case passageMsg:
		if msg.seq != m.fetchSeq {
			// Stale fetch from before a reset.
			return m, nil
		}
		m.applyPassage(msg.passage)
		return m, nil

	case tickMsg:
		if m.session != nil && m.session.State() == engine.StateRunning && !m.showResults {
			m.session.Update(m.session.Input(), time.Now())
		}
		return m, tickCmd()

	case postedMsg:
		if msg.err != nil {
			logErrf("failed to post result: %v\n", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	default:
		return m, nil
	}
}

func (m *Model) applyPassage(p textgen.Passage) {
	m.fetching = false
	m.currentWord = p.Word
	if m.session == nil {
		session, err := engine.NewSession(p.Text, p.Source, p.Length)
		if err != nil {
			logErrf("failed to start session: %v\n", err)
			return
		}
		m.session = session
		return
	}
	if err := m.session.Reset(p.Text, p.Source, p.Length); err != nil {
		logErrf("failed to reset session: %v\n", err)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.showResults {
		switch msg.Type {
		case tea.KeyEnter, tea.KeySpace:
			return m, m.startFetch()
		case tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyRunes:
			if string(msg.Runes) == "q" {
				return m, tea.Quit
			}
		}
		return m, nil
	}

	if m.fetching || m.session == nil {
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlR:
		return m, m.startFetch()
	case tea.KeyBackspace, tea.KeyDelete:
		input := []rune(m.session.Input())
		if len(input) == 0 {
			return m, nil
		}
		m.session.Update(string(input[:len(input)-1]), time.Now())
		return m, nil
	case tea.KeySpace:
		return m.typeRunes([]rune{' '})
	case tea.KeyRunes:
		return m.typeRunes(msg.Runes)
	default:
		return m, nil
	}
}

func (m *Model) typeRunes(runes []rune) (tea.Model, tea.Cmd) {
	input := m.session.Input() + string(runes)
	_, done := m.session.Update(input, time.Now())
	if !done {
		return m, nil
	}
	return m, m.finishTest()
}

// finishTest archives the result, feeds the word scheduler and mirrors the
// result to the backend when one is configured.
func (m *Model) finishTest() tea.Cmd {
	now := time.Now()
	result, err := m.session.Result(now)
	if err != nil {
		logErrf("failed to finalize test: %v\n", err)
		return nil
	}
	m.lastResult = result
	m.showResults = true

	ctx := context.Background()
	aggs, err := m.archive.Append(ctx, result)
	if err != nil {
		logErrf("failed to save result: %v\n", err)
	} else {
		m.lastAggs = aggs
	}

	if m.currentWord != nil && m.scheduler != nil {
		correct := result.Accuracy == 100
		if err := m.scheduler.RecordAttempt(ctx, m.opts.ProgressUser, m.currentWord.Word, correct, now); err != nil {
			logErrf("failed to record word attempt: %v\n", err)
		}
	}

	if m.opts.API == nil || m.opts.RemoteUser == "" {
		return nil
	}
	api := m.opts.API
	userID := m.opts.RemoteUser
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return postedMsg{err: api.PostResult(ctx, userID, result)}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	switch {
	case m.fetching || m.session == nil:
		return m.place(statusStyle.Render("Fetching passage..."))
	case m.showResults:
		return m.place(m.renderResults())
	default:
		return m.renderTyping()
	}
}

func (m *Model) place(content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderTyping() string {
	passageRunes := []rune(m.session.Passage())
	inputRunes := []rune(m.session.Input())
	cursorIndex := -1
	if len(inputRunes) < len(passageRunes) {
		cursorIndex = len(inputRunes)
	}
	styledRunes := buildStyledRunes(passageRunes, inputRunes, cursorIndex, m.opts.Settings.ShowCursor)
	if m.width == 0 || m.height == 0 {
		return renderStyledRunes(styledRunes)
	}
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	wrapped := wrapStyledRunes(styledRunes, contentWidth)
	content := lipgloss.NewStyle().Width(contentWidth).Render(wrapped)
	footer := m.renderFooter()
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

// renderFooter assembles the live stat segments the settings allow.
func (m *Model) renderFooter() string {
	passageLen := len([]rune(m.session.Passage()))
	if passageLen == 0 {
		return ""
	}
	stats := m.session.Stats()
	progress := len([]rune(m.session.Input())) * 100 / passageLen

	segments := []string{fmt.Sprintf("Progress %d%%", progress)}
	if m.opts.Settings.ShowTimer {
		segments = append(segments, fmt.Sprintf("Time %.0fs", stats.ElapsedSeconds))
	}
	if m.opts.Settings.ShowWPM {
		segments = append(segments, fmt.Sprintf("%d WPM", stats.WPM))
	}
	if m.opts.Settings.ShowAccuracy {
		segments = append(segments, fmt.Sprintf("Accuracy %d%%", stats.Accuracy))
	}
	if m.opts.Settings.ShowErrors {
		segments = append(segments, fmt.Sprintf("Errors %d", stats.Errors))
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) renderResults() string {
	r := m.lastResult
	lines := []string{
		resultTitleStyle.Render(engine.TierFor(r.WPM).Message(r.WPM, r.Accuracy)),
		"",
		fmt.Sprintf("WPM       %d", r.WPM),
		fmt.Sprintf("Accuracy  %d%%", r.Accuracy),
		fmt.Sprintf("Errors    %d", r.Errors),
		fmt.Sprintf("Time      %.1fs", r.TimeElapsed),
	}
	if history := m.session.History(); len(history) > 1 {
		values := make([]float64, len(history))
		for i, sample := range history {
			values[i] = float64(sample.WPM)
		}
		lines = append(lines, "", footerStyle.Render(statsPkg.Sparkline(statsPkg.Resample(values, 40))))
	}
	if m.lastAggs.TotalTests > 0 {
		lines = append(lines, "", footerStyle.Render(fmt.Sprintf(
			"All-time: %d tests · best %d WPM · avg %d WPM",
			m.lastAggs.TotalTests, m.lastAggs.BestWPM, m.lastAggs.AverageWPM)))
	}
	if m.currentWord != nil {
		lines = append(lines, "", footerStyle.Render(vocab.Explanation(*m.currentWord)))
	}
	lines = append(lines, "", footerStyle.Render("enter: next  ·  q: quit"))
	return resultBoxStyle.Render(strings.Join(lines, "\n"))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
