package orgscan

import (
	"errors"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/hochfrequenz/org-remind/internal/domain"
	"github.com/hochfrequenz/org-remind/internal/parser"
)

// ErrNotDirectory means the org path exists but is not a directory
var ErrNotDirectory = errors.New("org path is not a directory")

// DefaultExtension selects which files count as org files.
const DefaultExtension = ".org"

// Options configures a scan. Zero values fall back to defaults.
type Options struct {
	// Extension is the file name suffix to scan, default ".org".
	Extension string
	// TaskMarker and ScheduleMarkers configure the line filter.
	TaskMarker      string
	ScheduleMarkers []string
	// Workers bounds how many files are read concurrently.
	// Zero or negative means one per CPU.
	Workers int
	// Strict keeps the clock time of full weekday-and-clock stamps.
	Strict bool
	// Debug logs skipped files and lines.
	Debug bool
}

func (o Options) withDefaults() Options {
	if o.Extension == "" {
		o.Extension = DefaultExtension
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	return o
}

// Scan walks the org tree under root and extracts every scheduled TODO.
//
// Scanning is best effort: unreadable files, files that are not valid
// UTF-8, and lines whose timestamp cannot be parsed are skipped, loudly
// only in debug mode. The single error case is failure to access root
// itself. Results come back in walk order, line order within a file.
func Scan(root string, opts Options) (domain.ScanResult, error) {
	opts = opts.withDefaults()

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("reading org dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	files, err := ListFiles(root, opts.Extension)
	if err != nil {
		return nil, fmt.Errorf("reading org dir: %w", err)
	}

	p := parser.New(parser.Config{
		TaskMarker:       opts.TaskMarker,
		ScheduleMarkers:  opts.ScheduleMarkers,
		StrictTimestamps: opts.Strict,
	})

	// One result slot per file keeps the output in walk order no matter
	// which worker finishes first.
	results := make([]domain.ScanResult, len(files))

	var g errgroup.Group
	g.SetLimit(opts.Workers)
	for i, path := range files {
		g.Go(func() error {
			tasks, err := scanFile(path, p, opts.Debug)
			if err != nil {
				if opts.Debug {
					log.Printf("[scan] skipping %s: %v", path, err)
				}
				return nil
			}
			results[i] = tasks
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all domain.ScanResult
	for _, r := range results {
		all = append(all, r...)
	}
	return all, nil
}

// scanFile reads one org file and extracts its scheduled TODO lines in
// order. Lines that fail to parse are dropped.
func scanFile(path string, p *parser.LineParser, debug bool) (domain.ScanResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("not valid UTF-8")
	}

	var tasks domain.ScanResult
	for _, line := range strings.Split(string(content), "\n") {
		if !p.IsTaskLine(line) {
			continue
		}
		task, err := p.ParseLine(line)
		if err != nil {
			if debug {
				log.Printf("[scan] %s: dropping line: %v", path, err)
			}
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}
