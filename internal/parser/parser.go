package parser

import (
	"fmt"
	"strings"

	"github.com/hochfrequenz/org-remind/internal/domain"
)

// DefaultTaskMarker is the substring that marks a TODO headline.
const DefaultTaskMarker = "*TODO"

// DefaultScheduleMarkers are the org planning keywords that make a TODO
// line count as scheduled.
var DefaultScheduleMarkers = []string{"DEADLINE", "SCHEDULED"}

// Config configures a LineParser. Zero values fall back to the org-mode
// defaults above.
type Config struct {
	TaskMarker       string
	ScheduleMarkers  []string
	StrictTimestamps bool
}

// LineParser recognizes scheduled TODO lines and extracts tasks from them.
type LineParser struct {
	taskMarker      string
	scheduleMarkers []string
	strict          bool
}

// New creates a LineParser from config, filling in defaults
func New(cfg Config) *LineParser {
	p := &LineParser{
		taskMarker:      cfg.TaskMarker,
		scheduleMarkers: cfg.ScheduleMarkers,
		strict:          cfg.StrictTimestamps,
	}
	if p.taskMarker == "" {
		p.taskMarker = DefaultTaskMarker
	}
	if len(p.scheduleMarkers) == 0 {
		p.scheduleMarkers = DefaultScheduleMarkers
	}
	return p
}

// IsTaskLine reports whether line contains the task marker and at least
// one schedule marker. Plain substring containment, no anchoring: the
// markers may appear anywhere on the line.
func (p *LineParser) IsTaskLine(line string) bool {
	if !strings.Contains(line, p.taskMarker) {
		return false
	}
	for _, m := range p.scheduleMarkers {
		if strings.Contains(line, m) {
			return true
		}
	}
	return false
}

// ParseLine extracts the task from a scheduled TODO line.
//
// The task text is everything after the first task marker, truncated at
// the first '<' when the line carries a timestamp token. Surrounding
// whitespace is kept as-is.
func (p *LineParser) ParseLine(line string) (domain.Task, error) {
	parts := strings.SplitN(line, p.taskMarker, 2)
	if len(parts) < 2 {
		return domain.Task{}, fmt.Errorf("no task marker %q in line", p.taskMarker)
	}

	due, err := extractTimestamp(line, p.strict)
	if err != nil {
		return domain.Task{}, err
	}

	text := parts[1]
	if i := strings.Index(text, "<"); i >= 0 {
		text = text[:i]
	}

	return domain.Task{Text: text, Due: due}, nil
}
