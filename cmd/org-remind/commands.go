package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hochfrequenz/org-remind/internal/config"
	"github.com/hochfrequenz/org-remind/internal/domain"
	"github.com/hochfrequenz/org-remind/internal/orgscan"
	"github.com/hochfrequenz/org-remind/tui"
	"github.com/hochfrequenz/org-remind/web/api"
)

var (
	scanOutput      string
	scanSort        bool
	scanStrict      bool
	scanWorkers     int
	scanExtension   string
	scanTaskMarker  string
	scanSchedMarker []string
	agendaHorizon   int
	agendaAll       bool
	serveHost       string
	servePort       int
)

func init() {
	// scan command
	scanCmd := &cobra.Command{
		Use:   "scan [DIR]",
		Short: "Scan an org tree and list every scheduled TODO",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScan,
	}
	scanCmd.Flags().StringVar(&scanOutput, "output", "plain", "output format: table, plain, json, yaml")
	scanCmd.Flags().BoolVar(&scanSort, "sort", false, "sort by due time")
	addScanFlags(scanCmd)
	rootCmd.AddCommand(scanCmd)

	// agenda command
	agendaCmd := &cobra.Command{
		Use:   "agenda [DIR]",
		Short: "Show overdue and upcoming tasks",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAgenda,
	}
	agendaCmd.Flags().IntVar(&agendaHorizon, "horizon", 0, "days of upcoming tasks to show")
	agendaCmd.Flags().BoolVar(&agendaAll, "all", false, "also show tasks beyond the horizon")
	addScanFlags(agendaCmd)
	rootCmd.AddCommand(agendaCmd)

	// tui command
	tuiCmd := &cobra.Command{
		Use:   "tui [DIR]",
		Short: "Launch the agenda TUI",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTUI,
	}
	addScanFlags(tuiCmd)
	rootCmd.AddCommand(tuiCmd)

	// serve command
	serveCmd := &cobra.Command{
		Use:   "serve [DIR]",
		Short: "Start the JSON API server",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&serveHost, "host", "", "host to listen on")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on")
	addScanFlags(serveCmd)
	rootCmd.AddCommand(serveCmd)

	// config command
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a config file with defaults",
		RunE:  runConfigInit,
	})
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE:  runConfigShow,
	})
	rootCmd.AddCommand(configCmd)
}

// addScanFlags registers the pipeline overrides shared by every command
// that runs a scan.
func addScanFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&scanStrict, "strict-timestamps", false, "keep the clock time of full weekday-and-clock stamps")
	cmd.Flags().IntVar(&scanWorkers, "workers", 0, "concurrent file readers (0 = one per CPU)")
	cmd.Flags().StringVar(&scanExtension, "extension", "", "file extension to scan")
	cmd.Flags().StringVar(&scanTaskMarker, "task-marker", "", "task marker substring")
	cmd.Flags().StringArrayVar(&scanSchedMarker, "schedule-marker", nil, "schedule marker substring (repeatable)")
}

func loadConfig() (*config.Config, error) {
	return config.LoadWithLocalFallback(configPath)
}

// orgDir resolves the scan root: positional argument first, then config.
func orgDir(args []string, cfg *config.Config) string {
	if len(args) > 0 {
		return config.ExpandPath(args[0])
	}
	return cfg.General.OrgDir
}

// scanOptions merges flag overrides over the config. Flags only count
// when set, so an explicit --workers 0 still overrides.
func scanOptions(cmd *cobra.Command, cfg *config.Config) orgscan.Options {
	opts := orgscan.Options{
		Extension:       cfg.General.Extension,
		TaskMarker:      cfg.Markers.Task,
		ScheduleMarkers: cfg.Markers.Schedule,
		Workers:         cfg.General.Workers,
		Strict:          cfg.General.StrictTimestamps,
		Debug:           debug || cfg.General.Debug,
	}
	if cmd.Flags().Changed("extension") {
		opts.Extension = scanExtension
	}
	if cmd.Flags().Changed("task-marker") {
		opts.TaskMarker = scanTaskMarker
	}
	if cmd.Flags().Changed("schedule-marker") {
		opts.ScheduleMarkers = scanSchedMarker
	}
	if cmd.Flags().Changed("workers") {
		opts.Workers = scanWorkers
	}
	if cmd.Flags().Changed("strict-timestamps") {
		opts.Strict = scanStrict
	}
	return opts
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tasks, err := orgscan.Scan(orgDir(args, cfg), scanOptions(cmd, cfg))
	if err != nil {
		return err
	}
	if scanSort {
		tasks = tasks.SortedByDue()
	}
	if tasks == nil {
		tasks = domain.ScanResult{}
	}

	switch scanOutput {
	case "plain":
		fmt.Printf("Found %d tasks\n", len(tasks))
		for _, t := range tasks {
			fmt.Println(t)
		}
	case "table":
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "DUE\tIN\tTASK")
		for _, t := range tasks {
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				t.Due.Format("2006-01-02 15:04"), humanize.Time(t.Due), strings.TrimSpace(t.Text))
		}
		w.Flush()
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	case "yaml":
		data, err := yaml.Marshal(tasks)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
	default:
		return fmt.Errorf("unknown output format %q", scanOutput)
	}

	return nil
}

func runAgenda(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tasks, err := orgscan.Scan(orgDir(args, cfg), scanOptions(cmd, cfg))
	if err != nil {
		return err
	}

	days := cfg.Agenda.HorizonDays
	if cmd.Flags().Changed("horizon") {
		days = agendaHorizon
	}
	now := time.Now()
	horizon := time.Duration(days) * 24 * time.Hour

	printSection := func(title string, section domain.ScanResult) {
		if len(section) == 0 {
			return
		}
		fmt.Printf("%s (%d)\n", title, len(section))
		for _, t := range section.SortedByDue() {
			fmt.Printf("  %s  %s  %s\n",
				t.Due.Format("2006-01-02 15:04"), humanize.Time(t.Due), strings.TrimSpace(t.Text))
		}
		fmt.Println()
	}

	overdue := tasks.Overdue(now)
	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local).AddDate(0, 0, 1)
	today := tasks.DueWithin(now, tomorrow.Sub(now))
	upcoming := tasks.DueWithin(tomorrow, horizon)

	printSection("OVERDUE", overdue)
	printSection("TODAY", today)
	printSection("UPCOMING", upcoming)
	if agendaAll {
		var later domain.ScanResult
		cutoff := tomorrow.Add(horizon)
		for _, t := range tasks {
			if !t.Due.Before(cutoff) {
				later = append(later, t)
			}
		}
		printSection("LATER", later)
	}

	if len(overdue)+len(today)+len(upcoming) == 0 {
		fmt.Println("Nothing due. Enjoy the quiet.")
	}

	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	model := tui.NewModel(tui.ModelConfig{
		OrgDir:      orgDir(args, cfg),
		Options:     scanOptions(cmd, cfg),
		HorizonDays: cfg.Agenda.HorizonDays,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// dirScanner adapts orgscan.Scan to api.Scanner
type dirScanner struct {
	dir  string
	opts orgscan.Options
}

func (s *dirScanner) Scan() (domain.ScanResult, error) {
	return orgscan.Scan(s.dir, s.opts)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	host := cfg.Web.Host
	if cmd.Flags().Changed("host") {
		host = serveHost
	}
	port := cfg.Web.Port
	if cmd.Flags().Changed("port") {
		port = servePort
	}

	dir := orgDir(args, cfg)
	addr := fmt.Sprintf("%s:%d", host, port)
	scanner := &dirScanner{dir: dir, opts: scanOptions(cmd, cfg)}
	server := api.NewServer(scanner, dir, addr, debug || cfg.General.Debug)

	fmt.Printf("Serving %s at http://%s\n", dir, addr)
	return server.Start()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	if err := config.Default().Save(path); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
