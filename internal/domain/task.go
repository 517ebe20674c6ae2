package domain

import (
	"fmt"
	"sort"
	"time"
)

// DueFormat is the layout used for the canonical textual form of a due time.
const DueFormat = "2006-01-02 15:04:05"

// Task is a single scheduled TODO item extracted from an org file.
type Task struct {
	Text string    `json:"text" yaml:"text"`
	Due  time.Time `json:"due" yaml:"due"`
}

// String returns the canonical "text,due" form
func (t Task) String() string {
	return fmt.Sprintf("%s,%s", t.Text, t.Due.Format(DueFormat))
}

// ScanResult is the ordered list of tasks produced by one scan
type ScanResult []Task

// SortedByDue returns a copy sorted by due time, earliest first.
// Tasks with equal due times keep their original order.
func (r ScanResult) SortedByDue() ScanResult {
	out := make(ScanResult, len(r))
	copy(out, r)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Due.Before(out[j].Due)
	})
	return out
}

// Overdue returns the tasks due strictly before now
func (r ScanResult) Overdue(now time.Time) ScanResult {
	var out ScanResult
	for _, t := range r {
		if t.Due.Before(now) {
			out = append(out, t)
		}
	}
	return out
}

// DueWithin returns the tasks due in [now, now+horizon)
func (r ScanResult) DueWithin(now time.Time, horizon time.Duration) ScanResult {
	end := now.Add(horizon)
	var out ScanResult
	for _, t := range r {
		if !t.Due.Before(now) && t.Due.Before(end) {
			out = append(out, t)
		}
	}
	return out
}
