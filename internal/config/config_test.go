package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Default()

	if cfg.General.Extension != ".org" {
		t.Errorf("Extension = %q, want .org", cfg.General.Extension)
	}
	if cfg.Markers.Task != "*TODO" {
		t.Errorf("Markers.Task = %q, want *TODO", cfg.Markers.Task)
	}
	if len(cfg.Markers.Schedule) != 2 {
		t.Errorf("Markers.Schedule = %v, want DEADLINE and SCHEDULED", cfg.Markers.Schedule)
	}
	if cfg.Agenda.HorizonDays != 7 {
		t.Errorf("HorizonDays = %d, want 7", cfg.Agenda.HorizonDays)
	}
	if cfg.Web.Port != 8484 {
		t.Errorf("Web.Port = %d, want 8484", cfg.Web.Port)
	}
	if cfg.Web.Host != "127.0.0.1" {
		t.Errorf("Web.Host = %q, want 127.0.0.1", cfg.Web.Host)
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")

	content := `
[general]
org_dir = "/test/org"
workers = 5
strict_timestamps = true

[markers]
task = "*NEXT"
schedule = ["WHEN"]

[web]
port = 9000
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.General.OrgDir != "/test/org" {
		t.Errorf("OrgDir = %q, want /test/org", cfg.General.OrgDir)
	}
	if cfg.General.Workers != 5 {
		t.Errorf("Workers = %d, want 5", cfg.General.Workers)
	}
	if !cfg.General.StrictTimestamps {
		t.Error("StrictTimestamps should be true")
	}
	if cfg.Markers.Task != "*NEXT" {
		t.Errorf("Markers.Task = %q, want *NEXT", cfg.Markers.Task)
	}
	if len(cfg.Markers.Schedule) != 1 || cfg.Markers.Schedule[0] != "WHEN" {
		t.Errorf("Markers.Schedule = %v, want [WHEN]", cfg.Markers.Schedule)
	}
	if cfg.Web.Port != 9000 {
		t.Errorf("Web.Port = %d, want 9000", cfg.Web.Port)
	}
	// Untouched sections keep their defaults.
	if cfg.Agenda.HorizonDays != 7 {
		t.Errorf("HorizonDays = %d, want 7", cfg.Agenda.HorizonDays)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.General.Extension != ".org" {
		t.Errorf("Extension = %q, want .org", cfg.General.Extension)
	}
}

func TestLoad_ExpandsOrgDir(t *testing.T) {
	home, _ := os.UserHomeDir()
	path := writeTempConfig(t, "[general]\norg_dir = \"~/org\"\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.General.OrgDir != filepath.Join(home, "org") {
		t.Errorf("OrgDir = %q, want %q", cfg.General.OrgDir, filepath.Join(home, "org"))
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"negative workers", "[general]\nworkers = -1\n", "workers"},
		{"empty task marker", "[markers]\ntask = \"\"\n", "markers.task"},
		{"no schedule markers", "[markers]\nschedule = []\n", "markers.schedule"},
		{"bad port", "[web]\nport = 70000\n", "web.port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempConfig(t, tt.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("Load should fail")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input string
		want  string
	}{
		{"~/org", filepath.Join(home, "org")},
		{"/absolute/path", "/absolute/path"},
		{"relative", "relative"},
	}

	for _, tt := range tests {
		got := ExpandPath(tt.input)
		if got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "config.toml")

	cfg := Default()
	cfg.General.OrgDir = "/notes/org"
	cfg.Agenda.HorizonDays = 14

	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.General.OrgDir != "/notes/org" {
		t.Errorf("OrgDir = %q, want /notes/org", loaded.General.OrgDir)
	}
	if loaded.Agenda.HorizonDays != 14 {
		t.Errorf("HorizonDays = %d, want 14", loaded.Agenda.HorizonDays)
	}
}

func TestFindLocalConfig(t *testing.T) {
	root := t.TempDir()
	subdir := filepath.Join(root, "sub", "dir")
	if err := os.MkdirAll(subdir, 0755); err != nil {
		t.Fatal(err)
	}

	localConfig := filepath.Join(root, LocalConfigName)
	if err := os.WriteFile(localConfig, []byte("[general]\norg_dir = \"/local\""), 0644); err != nil {
		t.Fatal(err)
	}

	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	if err := os.Chdir(subdir); err != nil {
		t.Fatal(err)
	}

	// Should find the config in the grandparent.
	found := FindLocalConfig()
	if found != localConfig {
		t.Errorf("FindLocalConfig() = %q, want %q", found, localConfig)
	}
}

func TestFindLocalConfig_NotFound(t *testing.T) {
	root := t.TempDir()

	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	if err := os.Chdir(root); err != nil {
		t.Fatal(err)
	}

	if found := FindLocalConfig(); found != "" {
		t.Errorf("FindLocalConfig() = %q, want empty string", found)
	}
}

func TestLoadWithLocalFallback_ExplicitPath(t *testing.T) {
	path := writeTempConfig(t, "[general]\norg_dir = \"/explicit\"\n")

	cfg, err := LoadWithLocalFallback(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.General.OrgDir != "/explicit" {
		t.Errorf("OrgDir = %q, want /explicit", cfg.General.OrgDir)
	}
}

func TestLoadWithLocalFallback_LocalConfig(t *testing.T) {
	root := t.TempDir()
	localConfig := filepath.Join(root, LocalConfigName)

	if err := os.WriteFile(localConfig, []byte("[general]\norg_dir = \"/from-local\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	if err := os.Chdir(root); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadWithLocalFallback("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.General.OrgDir != "/from-local" {
		t.Errorf("OrgDir = %q, want /from-local", cfg.General.OrgDir)
	}
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}
