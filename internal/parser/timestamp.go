package parser

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
)

var (
	// ErrNoTimestamp means the line carries no <...> timestamp token
	ErrNoTimestamp = errors.New("no timestamp token")

	// ErrBadTimestamp means a token was found but matched none of the
	// known stamp formats
	ErrBadTimestamp = errors.New("unparseable timestamp")
)

// Active timestamp formats, tried in order, fullest first. Org writes
// stamps like <2026-01-05 Mon 15:04> with the weekday and clock parts
// each optional.
var stampLayouts = []string{
	mustLayout("%Y-%m-%d %a %H:%M"),
	mustLayout("%Y-%m-%d %a"),
	mustLayout("%Y-%m-%d %H:%M"),
	mustLayout("%Y-%m-%d"),
}

func mustLayout(pattern string) string {
	layout, err := strftime.Layout(pattern)
	if err != nil {
		panic(fmt.Sprintf("bad stamp pattern %q: %v", pattern, err))
	}
	return layout
}

// ExtractTimestamp finds the first <...> token on the line and parses it
// against the stamp formats. When the token carries both weekday and
// clock time, the clock part is validated and then dropped, so
// <2026-01-05 Mon 15:04> comes back as midnight of 2026-01-05.
//
// Stamps are read in the local time zone. The weekday is not checked
// against the date.
func ExtractTimestamp(line string) (time.Time, error) {
	return extractTimestamp(line, false)
}

// ExtractTimestampStrict is ExtractTimestamp without the clock-dropping:
// a weekday-and-clock stamp keeps its time of day.
func ExtractTimestampStrict(line string) (time.Time, error) {
	return extractTimestamp(line, true)
}

func extractTimestamp(line string, strict bool) (time.Time, error) {
	token, ok := stampToken(line)
	if !ok {
		return time.Time{}, ErrNoTimestamp
	}

	var firstErr error
	for i, layout := range stampLayouts {
		ts, err := time.ParseInLocation(layout, token, time.Local)
		if err != nil {
			if i == 0 {
				firstErr = err
			}
			continue
		}
		if i == 0 && !strict {
			return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.Local), nil
		}
		return ts, nil
	}

	return time.Time{}, fmt.Errorf("%w: %q: %w", ErrBadTimestamp, token, firstErr)
}

// stampToken returns the exact substring between the first '<' and the
// next '>'. No trimming: "< 2026-01-05>" yields " 2026-01-05", which no
// format accepts.
func stampToken(line string) (string, bool) {
	start := strings.Index(line, "<")
	if start < 0 {
		return "", false
	}
	rest := line[start+1:]
	end := strings.Index(rest, ">")
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}
