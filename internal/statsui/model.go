// Package statsui provides the Bubble Tea stats browser.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tecla-cli/tecla/internal/model"
	"github.com/tecla-cli/tecla/internal/stats"
	"github.com/tecla-cli/tecla/internal/store"
)

const (
	tabOverview = iota
	tabChars
	tabFingers
	tabCount
)

var tabNames = [tabCount]string{"Overview", "Characters", "Fingers"}

var (
	activeTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	inactiveTabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// Model implements the stats browser.
type Model struct {
	store *store.Store
	cfg   model.StatsConfig

	report  stats.Report
	loadErr error

	tab        int
	width      int
	height     int
	overview   viewport.Model
	charTable  table.Model
	fingerTbl  table.Model
	tablesInit bool
}

// NewModel constructs a stats browser model.
func NewModel(st *store.Store, cfg model.StatsConfig) *Model {
	m := &Model{store: st, cfg: cfg}
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
		m.layout()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab", "right", "l":
			m.tab = (m.tab + 1) % tabCount
			return m, nil
		case "shift+tab", "left", "h":
			m.tab = (m.tab + tabCount - 1) % tabCount
			return m, nil
		case "r":
			m.refresh()
			m.layout()
			return m, nil
		}
		return m.updateActive(msg)
	default:
		return m, nil
	}
}

func (m *Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.tab {
	case tabOverview:
		m.overview, cmd = m.overview.Update(msg)
	case tabChars:
		m.charTable, cmd = m.charTable.Update(msg)
	case tabFingers:
		m.fingerTbl, cmd = m.fingerTbl.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.loadErr != nil {
		return errStyle.Render(fmt.Sprintf("failed to load stats: %v", m.loadErr))
	}
	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	switch m.tab {
	case tabOverview:
		b.WriteString(m.overview.View())
	case tabChars:
		b.WriteString(m.charTable.View())
	case tabFingers:
		b.WriteString(m.fingerTbl.View())
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab/←→ switch · r refresh · q quit"))
	return b.String()
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, tabCount)
	for i, name := range tabNames {
		if i == m.tab {
			parts = append(parts, activeTabStyle.Render(name))
			continue
		}
		parts = append(parts, inactiveTabStyle.Render(name))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) refresh() {
	report, err := stats.BuildReport(context.Background(), m.store, m.cfg)
	m.loadErr = err
	if err == nil {
		m.report = report
	}
}

func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	bodyHeight := m.height - 3
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	if !m.tablesInit {
		m.overview = viewport.New(m.width, bodyHeight)
		m.tablesInit = true
	}
	m.overview.Width = m.width
	m.overview.Height = bodyHeight
	m.overview.SetContent(m.renderOverview())
	m.charTable = buildCharTable(m.report.CharAggsWindow, m.width, bodyHeight)
	m.fingerTbl = buildFingerTable(m.report.FingerAggsWindow, m.width, bodyHeight)
}

func (m *Model) renderOverview() string {
	sessions := m.report.Sessions
	if len(sessions) == 0 {
		return "No sessions recorded yet."
	}
	var b strings.Builder
	b.WriteString(renderSummaryCards(sessions, m.width))
	b.WriteString("\n")
	b.WriteString(renderCurves(sessions, m.cfg.CurveWindow, m.width))
	return b.String()
}

func renderSummaryCards(sessions []model.SessionAggregate, width int) string {
	var totalWPM, totalAcc float64
	bestWPM := 0.0
	for _, s := range sessions {
		wpm, _, acc := stats.SessionMetrics(s.Correct, s.Incorrect, s.TotalTyped, s.DurationMs)
		totalWPM += wpm
		totalAcc += acc
		if wpm > bestWPM {
			bestWPM = wpm
		}
	}
	count := float64(len(sessions))
	cards := []string{
		metricCard("Sessions", strconv.Itoa(len(sessions))),
		metricCard("Avg WPM", fmt.Sprintf("%.1f", totalWPM/count)),
		metricCard("Best WPM", fmt.Sprintf("%.1f", bestWPM)),
		metricCard("Avg Accuracy", fmt.Sprintf("%.1f%%", totalAcc/count*100)),
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	if width > 0 && lipgloss.Width(row) > width {
		return strings.Join(cards, "\n")
	}
	return row
}

func metricCard(label, value string) string {
	return cardStyle.Render(headerStyle.Render(value) + "\n" + label)
}

func renderCurves(sessions []model.SessionAggregate, window, width int) string {
	wpms := make([]float64, len(sessions))
	accs := make([]float64, len(sessions))
	for i, s := range sessions {
		wpm, _, acc := stats.SessionMetrics(s.Correct, s.Incorrect, s.TotalTyped, s.DurationMs)
		wpms[i] = wpm
		accs[i] = acc * 100
	}
	wpms = stats.MovingAverage(wpms, window)
	accs = stats.MovingAverage(accs, window)

	plotWidth := 0
	if width > 0 {
		plotWidth = stats.PlotWidthFor(width)
	}
	var buf bytes.Buffer
	if err := stats.PlotSeries(&buf, "Learning Curves", []stats.Series{
		{Name: "WPM", Values: wpms},
		{Name: "Accuracy", Values: accs},
	}, plotWidth, 10); err != nil {
		return errStyle.Render(fmt.Sprintf("failed to render curves: %v", err))
	}
	return buf.String()
}

func buildCharTable(aggs []model.CharAggregate, width, height int) table.Model {
	columns := []table.Column{
		{Title: "Char", Width: 8},
		{Title: "Accuracy", Width: 10},
		{Title: "Latency ms", Width: 12},
		{Title: "Correct", Width: 9},
		{Title: "Incorrect", Width: 10},
	}
	sorted := sortCharAggsByAccuracy(aggs)
	rows := make([]table.Row, 0, len(sorted))
	for _, agg := range sorted {
		label := agg.Char
		if label == " " {
			label = "<space>"
		}
		total := agg.Correct + agg.Incorrect
		acc := 0.0
		if total > 0 {
			acc = float64(agg.Correct) / float64(total)
		}
		lat := 0.0
		if agg.LatencyCount > 0 {
			lat = float64(agg.LatencySumMs) / float64(agg.LatencyCount)
		}
		rows = append(rows, table.Row{
			label,
			fmt.Sprintf("%.1f%%", acc*100),
			fmt.Sprintf("%.1f", lat),
			strconv.Itoa(agg.Correct),
			strconv.Itoa(agg.Incorrect),
		})
	}
	return newTable(columns, rows, width, height)
}

func buildFingerTable(aggs []stats.FingerAggregate, width, height int) table.Model {
	columns := []table.Column{
		{Title: "Finger", Width: 14},
		{Title: "Accuracy", Width: 10},
		{Title: "Latency ms", Width: 12},
		{Title: "Correct", Width: 9},
		{Title: "Incorrect", Width: 10},
	}
	rows := make([]table.Row, 0, len(aggs))
	for _, agg := range aggs {
		rows = append(rows, table.Row{
			agg.Finger.String(),
			fmt.Sprintf("%.1f%%", agg.Accuracy()*100),
			fmt.Sprintf("%.1f", agg.AvgLatencyMs()),
			strconv.Itoa(agg.Correct),
			strconv.Itoa(agg.Incorrect),
		})
	}
	return newTable(columns, rows, width, height)
}

func newTable(columns []table.Column, rows []table.Row, width, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(lipgloss.Color("#F0F0F0"))
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("#C89A3A"))
	t.SetStyles(styles)
	if width > 0 {
		t.SetWidth(width)
	}
	return t
}

func sortCharAggsByAccuracy(aggs []model.CharAggregate) []model.CharAggregate {
	sorted := make([]model.CharAggregate, len(aggs))
	copy(sorted, aggs)
	sort.Slice(sorted, func(i, j int) bool {
		accI := charAcc(sorted[i])
		accJ := charAcc(sorted[j])
		if accI == accJ {
			return sorted[i].Char < sorted[j].Char
		}
		return accI < accJ
	})
	return sorted
}

func charAcc(agg model.CharAggregate) float64 {
	total := agg.Correct + agg.Incorrect
	if total == 0 {
		return 1.0
	}
	return float64(agg.Correct) / float64(total)
}
