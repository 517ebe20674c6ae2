package parser

import (
	"errors"
	"testing"
	"time"
)

func TestIsTaskLine(t *testing.T) {
	p := New(Config{})

	tests := []struct {
		name string
		line string
		want bool
	}{
		// Both markers present
		{"deadline", "*TODO pay rent DEADLINE: <2026-01-05>", true},
		{"scheduled", "*TODO review SCHEDULED: <2026-01-05>", true},
		{"marker order irrelevant", "DEADLINE is near for *TODO things", true},

		// One marker missing
		{"todo only", "*TODO pay rent <2026-01-05>", false},
		{"deadline only", "DEADLINE: <2026-01-05>", false},
		{"empty", "", false},

		// Substring containment, no word boundaries
		{"embedded todo", "**TODONT procrastinate DEADLINE: <2026-01-05>", true},
		{"mid-word deadline", "*TODO meet the DEADLINES", true},

		// Case sensitive
		{"lowercase todo", "*todo pay rent DEADLINE: <2026-01-05>", false},
		{"lowercase deadline", "*TODO pay rent deadline: <2026-01-05>", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.IsTaskLine(tt.line); got != tt.want {
				t.Errorf("IsTaskLine(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestIsTaskLine_CustomMarkers(t *testing.T) {
	p := New(Config{TaskMarker: "*NEXT", ScheduleMarkers: []string{"WHEN"}})

	if !p.IsTaskLine("*NEXT ship it WHEN: <2026-01-05>") {
		t.Error("custom markers should match")
	}
	if p.IsTaskLine("*TODO ship it DEADLINE: <2026-01-05>") {
		t.Error("default markers should not match a custom parser")
	}
}

func TestParseLine(t *testing.T) {
	p := New(Config{})

	tests := []struct {
		name     string
		line     string
		wantText string
		wantDue  time.Time
	}{
		{
			name:     "text between marker and stamp",
			line:     "*TODO text <2026-01-05> DEADLINE",
			wantText: " text ",
			wantDue:  time.Date(2026, 1, 5, 0, 0, 0, 0, time.Local),
		},
		{
			name:     "planning keyword stays in text",
			line:     "*TODO call the bank DEADLINE: <2026-02-03 Tue>",
			wantText: " call the bank DEADLINE: ",
			wantDue:  time.Date(2026, 2, 3, 0, 0, 0, 0, time.Local),
		},
		{
			name:     "clock time kept for date-time stamps",
			line:     "*TODO standup SCHEDULED: <2026-02-03 14:30>",
			wantText: " standup SCHEDULED: ",
			wantDue:  time.Date(2026, 2, 3, 14, 30, 0, 0, time.Local),
		},
		{
			name:     "weekday and clock stamp drops the clock",
			line:     "*TODO call mom <2023-08-08 Tue 10:06> DEADLINE",
			wantText: " call mom ",
			wantDue:  time.Date(2023, 8, 8, 0, 0, 0, 0, time.Local),
		},
		{
			name:     "empty text",
			line:     "DEADLINE *TODO<2026-01-05>",
			wantText: "",
			wantDue:  time.Date(2026, 1, 5, 0, 0, 0, 0, time.Local),
		},
		{
			name:     "split once on marker",
			line:     "*TODO nested *TODO marker DEADLINE <2026-01-05>",
			wantText: " nested *TODO marker DEADLINE ",
			wantDue:  time.Date(2026, 1, 5, 0, 0, 0, 0, time.Local),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := p.ParseLine(tt.line)
			if err != nil {
				t.Fatalf("ParseLine(%q) error = %v", tt.line, err)
			}
			if task.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", task.Text, tt.wantText)
			}
			if !task.Due.Equal(tt.wantDue) {
				t.Errorf("Due = %v, want %v", task.Due, tt.wantDue)
			}
		})
	}
}

func TestParseLine_Strict(t *testing.T) {
	p := New(Config{StrictTimestamps: true})

	task, err := p.ParseLine("*TODO call mom <2023-08-08 Tue 10:06> DEADLINE")
	if err != nil {
		t.Fatal(err)
	}

	want := time.Date(2023, 8, 8, 10, 6, 0, 0, time.Local)
	if !task.Due.Equal(want) {
		t.Errorf("Due = %v, want %v", task.Due, want)
	}
}

func TestParseLine_Errors(t *testing.T) {
	p := New(Config{})

	tests := []struct {
		name    string
		line    string
		wantErr error
	}{
		{"no token", "*TODO pay rent DEADLINE soon", ErrNoTimestamp},
		{"unclosed token", "*TODO pay rent DEADLINE <2026-01-05", ErrNoTimestamp},
		{"bad token", "*TODO pay rent DEADLINE <someday>", ErrBadTimestamp},
		{"space inside token", "*TODO pay rent DEADLINE < 2026-01-05>", ErrBadTimestamp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.ParseLine(tt.line)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseLine(%q) error = %v, want %v", tt.line, err, tt.wantErr)
			}
		})
	}
}

func TestParseLine_NoMarker(t *testing.T) {
	p := New(Config{})

	if _, err := p.ParseLine("just a DEADLINE <2026-01-05>"); err == nil {
		t.Error("ParseLine without the task marker should fail")
	}
}
