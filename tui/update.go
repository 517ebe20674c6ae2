package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "j", "down":
			if m.scroll < m.maxScroll() {
				m.scroll++
			}
		case "k", "up":
			if m.scroll > 0 {
				m.scroll--
			}
		case "g":
			m.scroll = 0
		case "G":
			m.scroll = m.maxScroll()
		case "s":
			m.sortByDue = !m.sortByDue
			m.scroll = 0
		case "r":
			if !m.scanning {
				m.scanning = true
				return m, scanCmd(m.orgDir, m.opts)
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case TickMsg:
		// Relative due times drift; re-render once a minute.
		return m, tickCmd()

	case ScanDoneMsg:
		m.scanning = false
		m.scanErr = msg.Err
		if msg.Err == nil {
			m.tasks = msg.Tasks
			m.lastScan = time.Now()
		}
		if m.scroll > m.maxScroll() {
			m.scroll = m.maxScroll()
		}
		return m, nil
	}

	return m, nil
}

// maxScroll bounds scrolling so the last line stays visible
func (m Model) maxScroll() int {
	max := len(m.agendaLines()) - m.contentHeight()
	if max < 0 {
		return 0
	}
	return max
}
