package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expands to home",
			input:    "~/podcasts",
			expected: filepath.Join(home, "podcasts"),
		},
		{
			name:     "absolute path unchanged",
			input:    "/srv/podcasts",
			expected: "/srv/podcasts",
		},
		{
			name:     "relative path unchanged",
			input:    "podcasts/shows",
			expected: "podcasts/shows",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			expected: "",
		},
		{
			name:     "tilde only",
			input:    "~",
			expected: home,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	if len(paths) == 0 {
		t.Fatal("getConfigPaths() returned empty slice")
	}

	lastPath := paths[len(paths)-1]
	if lastPath != "config.toml" {
		t.Errorf("last config path = %q, want %q", lastPath, "config.toml")
	}

	if home, err := os.UserHomeDir(); err == nil {
		expectedFirst := filepath.Join(home, ".config", "podwaves", "config.toml")
		if paths[0] != expectedFirst {
			t.Errorf("first config path = %q, want %q", paths[0], expectedFirst)
		}
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "podwaves.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Explicit(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	path := writeConfig(t, `
library_sources = ["/srv/podcasts", "/mnt/shows"]
notifications = false
seek_step = "30s"

[log]
level = "debug"
file = "-"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.LibrarySources) != 2 || cfg.LibrarySources[1] != "/mnt/shows" {
		t.Errorf("LibrarySources = %v", cfg.LibrarySources)
	}
	if cfg.NotificationsEnabled() {
		t.Error("NotificationsEnabled() = true, want false")
	}
	if !cfg.MPRISEnabled() {
		t.Error("MPRISEnabled() = false, want true (default)")
	}
	if got := cfg.GetSeekStep(); got != 30*time.Second {
		t.Errorf("GetSeekStep() = %v, want 30s", got)
	}
	if cfg.Log.Level != "debug" || cfg.Log.File != "-" {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
	if !cfg.NotificationsEnabled() || !cfg.MPRISEnabled() {
		t.Error("notifications and mpris should default to enabled")
	}
	if cfg.GetSeekStep() != defaultSeekStep {
		t.Errorf("GetSeekStep() = %v, want %v", cfg.GetSeekStep(), defaultSeekStep)
	}
}

func TestLoad_LocalOverridesHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".config", "podwaves")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`seek_step = "5s"`+"\n"+`mpris = false`), 0o600); err != nil {
		t.Fatal(err)
	}

	cwd := t.TempDir()
	t.Chdir(cwd)
	if err := os.WriteFile(filepath.Join(cwd, "config.toml"), []byte(`seek_step = "15s"`), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := cfg.GetSeekStep(); got != 15*time.Second {
		t.Errorf("GetSeekStep() = %v, want 15s (local wins)", got)
	}
	if cfg.MPRISEnabled() {
		t.Error("MPRISEnabled() = true, want false from home config")
	}
}

func TestLoad_MissingExplicit(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Load() with missing explicit file should fail")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, "library_sources = [unterminated")
	if _, err := Load(path); err == nil {
		t.Error("Load() with invalid TOML should fail")
	}
}

func TestGetSeekStep(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"", defaultSeekStep},
		{"garbage", defaultSeekStep},
		{"-5s", defaultSeekStep},
		{"0s", defaultSeekStep},
		{"1m", time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c := &Config{SeekStep: tt.in}
			if got := c.GetSeekStep(); got != tt.want {
				t.Errorf("GetSeekStep(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
