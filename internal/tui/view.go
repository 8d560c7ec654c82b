package tui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cubetui/internal/route"
	"cubetui/internal/stats"
)

const leftColumnWidth = 40

var (
	borderStyle         = lipgloss.NewStyle().Border(lipgloss.RoundedBorder(), true).BorderForeground(lipgloss.Color("#4A4A4A"))
	activeBorderStyle   = borderStyle.BorderForeground(lipgloss.Color("#C89A3A"))
	selectedBorderStyle = borderStyle.BorderForeground(lipgloss.Color("#7AC74F"))
	titleStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	idleStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	runningStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#7AC74F"))
	stoppedStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#6FB7FF"))
	cursorRowStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	noticeStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

func (m *Model) viewHelp() string {
	body := m.panel("Help", m.helpView.View(), m.width, m.height-1, borderStyle)
	footer := footerStyle.Render("esc close · j/k scroll")
	return body + "\n" + lipgloss.PlaceHorizontal(m.width, lipgloss.Center, footer)
}

func (m *Model) viewDefault() string {
	bodyHeight := m.height - 1
	rightWidth := m.width - leftColumnWidth
	if rightWidth < 20 {
		rightWidth = 20
	}

	topHeight := 5
	timerHeight := 7
	timesHeight := bodyHeight - topHeight - timerHeight
	if timesHeight < 3 {
		timesHeight = 3
	}

	left := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top,
			m.panelFor(route.BlockHelp, "Help", "\nPress ? for help", leftColumnWidth/2, topHeight),
			m.panelFor(route.BlockTools, "Tools", m.toolsBody(), leftColumnWidth-leftColumnWidth/2, topHeight),
		),
		m.panelFor(route.BlockTimer, "Timer", m.timerBody(), leftColumnWidth, timerHeight),
		m.panelFor(route.BlockTimes, "Times", m.timesBody(timesHeight-2), leftColumnWidth, timesHeight),
	)

	scrambleHeight := 5
	statsHeight := 3
	mainHeight := bodyHeight - scrambleHeight - statsHeight
	if mainHeight < 3 {
		mainHeight = 3
	}

	right := lipgloss.JoinVertical(lipgloss.Left,
		m.panelFor(route.BlockScramble, "Scramble", "\n"+m.sess.Scramble, rightWidth, scrambleHeight),
		m.statsRow(rightWidth, statsHeight),
		m.panelFor(route.BlockMain, m.sess.Router.ActiveTool().String(), m.mainBody(rightWidth, mainHeight), rightWidth, mainHeight),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	return body + "\n" + m.footer()
}

func (m *Model) footer() string {
	if m.sess.Notice != "" {
		return noticeStyle.Render(m.sess.Notice)
	}
	hints := []string{
		keys.Primary.Help().Key + " " + keys.Primary.Help().Desc,
		keys.Move.Help().Key + " " + keys.Move.Help().Desc,
		keys.Enter.Help().Key + " " + keys.Enter.Help().Desc,
		keys.Escape.Help().Key + " " + keys.Escape.Help().Desc,
		keys.Delete.Help().Key + " " + keys.Delete.Help().Desc,
		keys.Help.Help().Key + " " + keys.Help.Help().Desc,
		keys.Quit.Help().Key + " " + keys.Quit.Help().Desc,
	}
	return footerStyle.Render(strings.Join(hints, " · "))
}

// panelFor draws a bordered panel whose border reflects focus/selection.
func (m *Model) panelFor(block route.Block, title, body string, width, height int) string {
	style := borderStyle
	if sel, ok := m.sess.Router.Selected(); ok && sel == block {
		style = selectedBorderStyle
	} else if m.sess.Router.Active() == block {
		style = activeBorderStyle
	}
	return m.panel(title, body, width, height, style)
}

func (m *Model) panel(title, body string, width, height int, style lipgloss.Style) string {
	content := titleStyle.Render(title) + "\n" + body
	return style.Width(width - 2).Height(height - 2).Render(content)
}

func (m *Model) toolsBody() string {
	sel, ok := m.sess.Router.Selected()
	toolsSelected := ok && sel == route.BlockTools
	var b strings.Builder
	for i, tool := range route.Tools {
		marker := "  "
		if toolsSelected && i == m.sess.Router.ToolCursor() {
			marker = "> "
		}
		line := marker + tool.String()
		if tool == m.sess.Router.ActiveTool() {
			line = cursorRowStyle.Render(line)
		}
		b.WriteString(line)
		if i < len(route.Tools)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m *Model) timerBody() string {
	t := m.sess.Timer
	var text string
	var style lipgloss.Style
	switch {
	case t.Running():
		text = fmt.Sprintf("%.1f", t.Elapsed())
		style = runningStyle
	case t.Last() != nil:
		text = fmt.Sprintf("%.2f", *t.Last())
		style = stoppedStyle
	default:
		text = "press space"
		style = idleStyle
	}
	return "\n\n" + lipgloss.PlaceHorizontal(leftColumnWidth-2, lipgloss.Center, style.Render(text))
}

func (m *Model) timesBody(maxRows int) string {
	solves := m.sess.Solves()
	selected, hasSelection := m.sess.Router.Selected()
	timesSelected := hasSelection && selected == route.BlockTimes

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%4s %8s %8s %8s", "#", "time", "ao5", "ao12")))
	rows := maxRows - 1
	for i := 0; i < len(solves) && i < rows; i++ {
		solve := solves[len(solves)-1-i]
		line := fmt.Sprintf("%4d %8.2f %8s %8s",
			len(solves)-i, solve.Elapsed, stats.FormatOpt(solve.Ao5), stats.FormatOpt(solve.Ao12))
		if timesSelected && i == m.sess.Router.TimesCursor() {
			line = cursorRowStyle.Render(line)
		}
		b.WriteByte('\n')
		b.WriteString(line)
	}
	return b.String()
}

func (m *Model) statsRow(width, height int) string {
	agg := m.sess.History.Aggregates()
	cards := []struct {
		title string
		value *float64
	}{
		{"PB Single", agg.PBSingle},
		{"PB ao5", agg.PBAo5},
		{"PB ao12", agg.PBAo12},
		{"ao100", agg.Ao100},
		{"ao1k", agg.Ao1k},
		{"avg", agg.Mean},
	}
	cardWidth := width / len(cards)
	rendered := make([]string, 0, len(cards))
	for i, card := range cards {
		w := cardWidth
		if i == len(cards)-1 {
			w = width - cardWidth*(len(cards)-1)
		}
		rendered = append(rendered, m.panelFor(route.BlockStats, card.title, stats.FormatOpt(card.value), w, height))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m *Model) mainBody(width, height int) string {
	switch m.sess.Router.ActiveTool() {
	case route.ToolChart:
		return m.chartBody(width, height)
	case route.ToolCube:
		return cubeText
	default:
		return welcomeText
	}
}

func (m *Model) chartBody(width, height int) string {
	if m.sess.History.Len() == 0 {
		return "\nNo solves yet."
	}
	plotHeight := height - 5
	if plotHeight < 3 {
		plotHeight = 3
	}
	var buf bytes.Buffer
	series := stats.SolveSeries(m.sess.Solves())
	if err := stats.PlotSeries(&buf, "", series, stats.PlotWidthFor(width-4), plotHeight); err != nil {
		return "chart unavailable"
	}
	return buf.String()
}
