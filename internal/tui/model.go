package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tecla-cli/tecla/internal/engine"
	"github.com/tecla-cli/tecla/internal/generator"
	"github.com/tecla-cli/tecla/internal/metrics"
	"github.com/tecla-cli/tecla/internal/model"
	statsPkg "github.com/tecla-cli/tecla/internal/stats"
	"github.com/tecla-cli/tecla/internal/store"
	"github.com/tecla-cli/tecla/internal/tutor"
)

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	correctedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#D7BA5F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	hintStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#5F87AF"))
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	pausedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
)

type tickMsg time.Time

// Model implements the Bubble Tea practice UI.
type Model struct {
	config            model.Config
	store             *store.Store
	gen               *generator.Generator
	words             []string
	weakSet           map[rune]struct{}
	weakNoticePrinted bool

	tut *tutor.Tutor

	width  int
	height int

	lastWPM float64
	lastAcc float64
	hasLast bool

	allWPM       float64
	allAcc       float64
	allCorrect   int
	allIncorrect int
	allTyped     int
	allDuration  int64
}

// NewModel constructs a practice TUI model.
func NewModel(cfg model.Config, st *store.Store, gen *generator.Generator, words []string, weakSet map[rune]struct{}, weakNoticePrinted bool) *Model {
	m := &Model{
		config:            cfg,
		store:             st,
		gen:               gen,
		words:             words,
		weakSet:           weakSet,
		weakNoticePrinted: weakNoticePrinted,
	}
	m.resetSession()
	m.loadFooterStats()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		return m, tickCmd()
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	now := time.Now()
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyCtrlP:
		m.togglePause(now)
		return m, nil
	case tea.KeyCtrlR:
		m.tut.FlushPending(now)
		m.resetSession()
		return m, nil
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.dispatch(runeEvent(r, now))
		}
		return m, nil
	default:
		ev, ok := translateKey(msg, now)
		if !ok {
			return m, nil
		}
		m.dispatch(ev)
		return m, nil
	}
}

func (m *Model) dispatch(ev tutor.KeyEvent) {
	_, snapshot := m.tut.HandleKey(ev)
	if snapshot != nil {
		m.finishSession(*snapshot)
		m.resetSession()
	}
}

func (m *Model) togglePause(now time.Time) {
	if m.tut.Session().Paused {
		m.tut.Resume(now)
		return
	}
	m.tut.Pause(now)
}

// View implements tea.Model.
func (m *Model) View() string {
	session := m.tut.Session()
	if len(session.Chars) == 0 {
		return ""
	}
	cursorIndex := -1
	if session.Index < len(session.Chars) {
		cursorIndex = session.Index
	}
	styledRunes := buildStyledChars(session.Chars, cursorIndex)
	if m.width == 0 || m.height == 0 {
		return renderStyledRunes(styledRunes)
	}
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	wrapped := wrapStyledRunes(styledRunes, contentWidth)
	content := lipgloss.NewStyle().Width(contentWidth).Render(wrapped)
	hint := m.renderHint()
	footer := m.renderFooter()
	if m.height < 4 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 2
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	hintLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, hint)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + hintLine + "\n" + footerLine
}

func (m *Model) renderHint() string {
	session := m.tut.Session()
	if session.Paused {
		return pausedStyle.Render("Paused · ctrl+p to resume")
	}
	h := m.tut.NextHighlight()
	if !h.Found {
		return ""
	}
	var parts []string
	if h.DeadKeyPending {
		parts = append(parts, fmt.Sprintf("composing %s +", string(h.PendingChar)))
	}
	label := string(h.Key.Normal)
	if h.Key.Dead {
		label = "´ (dead key)"
		if h.Mods.Shift {
			label = "¨ (dead key)"
		}
	}
	parts = append(parts, fmt.Sprintf("next: %s", label))
	if h.Mods.Shift {
		parts = append(parts, "shift")
	}
	if h.Mods.AltGr {
		parts = append(parts, "altgr")
	}
	parts = append(parts, h.Key.Finger.String())
	return hintStyle.Render(strings.Join(parts, " · "))
}

func (m *Model) renderFooter() string {
	session := m.tut.Session()
	progress := 0
	if len(session.Chars) > 0 {
		progress = session.Index * 100 / len(session.Chars)
	}
	snap := m.tut.Snapshot(time.Now())
	segments := []string{
		fmt.Sprintf("Progress %d%%", progress),
		fmt.Sprintf("Live %.1f WPM · %.1f%%", snap.GrossWPM, snap.Accuracy),
	}
	if m.hasLast {
		segments = append(segments, fmt.Sprintf("Last %.1f WPM · %.1f%%", m.lastWPM, m.lastAcc*100))
	}
	segments = append(segments, fmt.Sprintf("All-time %.1f WPM · %.1f%%", m.allWPM, m.allAcc*100))
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) loadFooterStats() {
	ctx := context.Background()
	sessions, err := m.store.ListSessions(ctx, model.StatsConfig{Mode: string(m.config.Mode)})
	if err != nil {
		logErrf("failed to load session stats: %v\n", err)
		return
	}
	if len(sessions) == 0 {
		return
	}
	last := sessions[len(sessions)-1]
	wpm, _, acc := statsPkg.SessionMetrics(last.Correct, last.Incorrect, last.TotalTyped, last.DurationMs)
	m.lastWPM = wpm
	m.lastAcc = acc
	m.hasLast = true

	for _, s := range sessions {
		m.allCorrect += s.Correct
		m.allIncorrect += s.Incorrect
		m.allTyped += s.TotalTyped
		m.allDuration += s.DurationMs
	}
	m.recomputeAllTime()
}

func (m *Model) recomputeAllTime() {
	wpm, _, acc := statsPkg.SessionMetrics(m.allCorrect, m.allIncorrect, m.allTyped, m.allDuration)
	m.allWPM = wpm
	m.allAcc = acc
}

func (m *Model) resetSession() {
	text := m.generateText()
	settings := engine.Settings{
		Mode:              m.config.Mode,
		CaseSensitive:     m.config.CaseSensitive,
		StrictAccents:     m.config.StrictAccents,
		AllowWordDeletion: m.config.AllowWordDeletion,
	}
	tut, err := tutor.New(text, settings)
	if err != nil {
		// Generated text is never empty for a positive word count.
		logErrf("failed to build session: %v\n", err)
		return
	}
	m.tut = tut
}

func (m *Model) generateText() string {
	punctRunes := []rune(m.config.PunctSet)
	var words []string
	if m.config.FocusWeak && len(m.weakSet) > 0 {
		words = m.gen.GenerateWeighted(m.words, m.config.Words, m.config.CapsPct, m.config.PunctPct, punctRunes, m.weakSet, m.config.WeakFactor)
	} else {
		words = m.gen.Generate(m.words, m.config.Words, m.config.CapsPct, m.config.PunctPct, punctRunes)
	}
	return strings.Join(words, " ")
}

func (m *Model) finishSession(snap metrics.Snapshot) {
	session := m.tut.Session()
	if !session.Started {
		return
	}
	endedAt := session.Chars[len(session.Chars)-1].TypedAt
	if endedAt.IsZero() {
		endedAt = time.Now()
	}
	correct, incorrect, corrected := session.Counts()
	rec := model.SessionRecord{
		StartedAt:     session.StartedAt,
		EndedAt:       endedAt,
		Mode:          m.config.Mode,
		CaseSensitive: m.config.CaseSensitive,
		StrictAccents: m.config.StrictAccents,
		Words:         m.config.Words,
		TextLen:       len(session.Chars),
		Correct:       correct,
		Incorrect:     incorrect,
		Corrected:     corrected,
		TotalTyped:    snap.TotalTyped,
		DurationMs:    snap.Active.Milliseconds(),
		PausedMs:      session.TotalPaused.Milliseconds(),
	}

	aggs := m.tut.CharAggregates()
	charStats := make([]model.CharStats, 0, len(aggs))
	for ch, agg := range aggs {
		charStats = append(charStats, model.CharStats{
			Char:         string(ch),
			Correct:      agg.Correct,
			Incorrect:    agg.Incorrect,
			LatencySumMs: agg.LatencySumMs,
			LatencyCount: agg.LatencyCount,
		})
	}

	ctx := context.Background()
	if _, err := m.store.InsertSession(ctx, rec, charStats); err != nil {
		logErrf("failed to save session: %v\n", err)
	}
	wpm, _, acc := statsPkg.SessionMetrics(rec.Correct, rec.Incorrect, rec.TotalTyped, rec.DurationMs)
	m.lastWPM = wpm
	m.lastAcc = acc
	m.hasLast = true
	m.allCorrect += rec.Correct
	m.allIncorrect += rec.Incorrect
	m.allTyped += rec.TotalTyped
	m.allDuration += rec.DurationMs
	m.recomputeAllTime()

	if m.config.FocusWeak {
		m.refreshWeakSet()
	}
}

func (m *Model) refreshWeakSet() {
	ctx := context.Background()
	aggs, err := m.store.GetWeakChars(ctx, m.config.WeakWindow, string(m.config.Mode))
	if err != nil {
		logErrf("failed to load weak chars: %v\n", err)
		return
	}
	if len(aggs) == 0 {
		if !m.weakNoticePrinted {
			logErrln("no stats available for weak-char focus yet; using normal generator")
			m.weakNoticePrinted = true
		}
		m.weakSet = map[rune]struct{}{}
		return
	}
	m.weakSet = statsPkg.SelectWeakChars(aggs, m.config.WeakTop)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
