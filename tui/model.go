package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hochfrequenz/org-remind/internal/domain"
	"github.com/hochfrequenz/org-remind/internal/orgscan"
)

// Model is the TUI agenda model
type Model struct {
	// Data
	tasks   domain.ScanResult
	scanErr error

	// Scan parameters
	orgDir  string
	opts    orgscan.Options
	horizon time.Duration

	// UI state
	width     int
	height    int
	scroll    int
	sortByDue bool

	// Refresh
	lastScan time.Time
	scanning bool
}

// ModelConfig holds the scan parameters for the TUI model
type ModelConfig struct {
	OrgDir      string
	Options     orgscan.Options
	HorizonDays int
}

// NewModel creates a new agenda model
func NewModel(cfg ModelConfig) Model {
	horizon := cfg.HorizonDays
	if horizon <= 0 {
		horizon = 7
	}

	return Model{
		orgDir:    cfg.OrgDir,
		opts:      cfg.Options,
		horizon:   time.Duration(horizon) * 24 * time.Hour,
		sortByDue: true,
		scanning:  true,
	}
}

// Init starts the first scan and the render tick
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		scanCmd(m.orgDir, m.opts),
		tickCmd(),
	)
}

// TickMsg re-renders the relative due times
type TickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// ScanDoneMsg carries the result of a rescan
type ScanDoneMsg struct {
	Tasks domain.ScanResult
	Err   error
}

func scanCmd(orgDir string, opts orgscan.Options) tea.Cmd {
	return func() tea.Msg {
		tasks, err := orgscan.Scan(orgDir, opts)
		return ScanDoneMsg{Tasks: tasks, Err: err}
	}
}
