package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/hochfrequenz/org-remind/internal/domain"
)

var (
	headerStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	overdueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	todayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	upcomingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	laterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	dimmedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("255"))
)

// View renders the agenda
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	overdue := len(m.tasks.Overdue(time.Now()))
	header := fmt.Sprintf(" org-remind │ %s │ Tasks: %d │ Overdue: %d ",
		m.orgDir, len(m.tasks), overdue)
	if m.scanning {
		header += "│ scanning... "
	}
	b.WriteString(headerStyle.Width(m.width).Render(header))
	b.WriteString("\n")

	lines := m.agendaLines()
	height := m.contentHeight()
	start := m.scroll
	if start > len(lines) {
		start = len(lines)
	}
	end := start + height
	if end > len(lines) {
		end = len(lines)
	}
	for _, line := range lines[start:end] {
		b.WriteString(line)
		b.WriteString("\n")
	}
	for i := end - start; i < height; i++ {
		b.WriteString("\n")
	}

	sortLabel := "discovery"
	if m.sortByDue {
		sortLabel = "due"
	}
	statusBar := fmt.Sprintf(" [j/k]scroll [g/G]top/bottom [r]escan [s]ort:%s [q]uit ", sortLabel)
	b.WriteString(statusBarStyle.Width(m.width).Render(statusBar))

	return b.String()
}

// contentHeight is the agenda area between header and status bar
func (m Model) contentHeight() int {
	h := m.height - 2
	if h < 1 {
		return 1
	}
	return h
}

// agendaLines renders the grouped task list as styled lines
func (m Model) agendaLines() []string {
	if m.scanErr != nil {
		return []string{errorStyle.Render("Scan failed: " + m.scanErr.Error())}
	}
	if len(m.tasks) == 0 {
		return []string{dimmedStyle.Render("No scheduled tasks.")}
	}

	tasks := m.tasks
	if m.sortByDue {
		tasks = tasks.SortedByDue()
	}

	now := time.Now()
	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local).AddDate(0, 0, 1)
	horizonEnd := now.Add(m.horizon)

	var overdue, today, upcoming, later domain.ScanResult
	for _, t := range tasks {
		switch {
		case t.Due.Before(now):
			overdue = append(overdue, t)
		case t.Due.Before(tomorrow):
			today = append(today, t)
		case t.Due.Before(horizonEnd):
			upcoming = append(upcoming, t)
		default:
			later = append(later, t)
		}
	}

	var lines []string
	lines = appendSection(lines, "OVERDUE", overdue, overdueStyle)
	lines = appendSection(lines, "TODAY", today, todayStyle)
	lines = appendSection(lines, "UPCOMING", upcoming, upcomingStyle)
	lines = appendSection(lines, "LATER", later, laterStyle)
	return lines
}

func appendSection(lines []string, title string, tasks domain.ScanResult, style lipgloss.Style) []string {
	if len(tasks) == 0 {
		return lines
	}
	lines = append(lines, sectionStyle.Render(fmt.Sprintf(" %s (%d)", title, len(tasks))))
	for _, t := range tasks {
		line := fmt.Sprintf("  %s  %s  %s",
			t.Due.Format("2006-01-02 15:04"),
			humanize.Time(t.Due),
			strings.TrimSpace(t.Text))
		lines = append(lines, style.Render(line))
	}
	lines = append(lines, "")
	return lines
}
