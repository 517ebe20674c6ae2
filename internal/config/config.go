package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// LocalConfigName is the per-project config file searched for in the
// working directory and its parents
const LocalConfigName = ".org-remind.toml"

// Config holds all application configuration
type Config struct {
	General GeneralConfig `toml:"general"`
	Markers MarkersConfig `toml:"markers"`
	Agenda  AgendaConfig  `toml:"agenda"`
	Web     WebConfig     `toml:"web"`
}

// GeneralConfig holds scanner settings
type GeneralConfig struct {
	OrgDir           string `toml:"org_dir"`
	Extension        string `toml:"extension"`
	Workers          int    `toml:"workers"`
	StrictTimestamps bool   `toml:"strict_timestamps"`
	Debug            bool   `toml:"debug"`
}

// MarkersConfig holds the line markers that select tasks
type MarkersConfig struct {
	Task     string   `toml:"task"`
	Schedule []string `toml:"schedule"`
}

// AgendaConfig holds agenda view settings
type AgendaConfig struct {
	HorizonDays int `toml:"horizon_days"`
}

// WebConfig holds API server settings
type WebConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		General: GeneralConfig{
			OrgDir:    filepath.Join(home, "org"),
			Extension: ".org",
			Workers:   0, // one per CPU
		},
		Markers: MarkersConfig{
			Task:     "*TODO",
			Schedule: []string{"DEADLINE", "SCHEDULED"},
		},
		Agenda: AgendaConfig{
			HorizonDays: 7,
		},
		Web: WebConfig{
			Port: 8484,
			Host: "127.0.0.1",
		},
	}
}

// Load reads configuration from a TOML file, falling back to defaults
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.General.OrgDir = ExpandPath(cfg.General.OrgDir)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// LoadWithLocalFallback loads the explicit path when given, otherwise a
// local .org-remind.toml found in the working directory or a parent,
// otherwise the default config path.
func LoadWithLocalFallback(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	if local := FindLocalConfig(); local != "" {
		return Load(local)
	}
	return Load(DefaultConfigPath())
}

// FindLocalConfig walks up from the working directory looking for a
// local config file. Returns the empty string when none is found.
func FindLocalConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, LocalConfigName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Validate checks the config is usable
func (c *Config) Validate() error {
	if c.General.Workers < 0 {
		return fmt.Errorf("general.workers must not be negative")
	}
	if c.Markers.Task == "" {
		return fmt.Errorf("markers.task is required")
	}
	if len(c.Markers.Schedule) == 0 {
		return fmt.Errorf("markers.schedule needs at least one marker")
	}
	if c.Agenda.HorizonDays < 0 {
		return fmt.Errorf("agenda.horizon_days must not be negative")
	}
	if c.Web.Port < 1 || c.Web.Port > 65535 {
		return fmt.Errorf("web.port must be between 1 and 65535")
	}
	return nil
}

// Save writes the config as TOML, creating parent directories as needed
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ExpandPath expands ~ to the user's home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// DefaultConfigPath returns the default config file location
func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "org-remind", "config.toml")
}
