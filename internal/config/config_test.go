package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Course.FirstTee != "06:00" {
		t.Errorf("expected first_tee 06:00, got %s", cfg.Course.FirstTee)
	}
	if cfg.Course.LastTee != "17:00" {
		t.Errorf("expected last_tee 17:00, got %s", cfg.Course.LastTee)
	}
	if cfg.Course.IntervalMinutes != 8 {
		t.Errorf("expected interval 8, got %d", cfg.Course.IntervalMinutes)
	}
	if cfg.Assistant.Provider != "openai" {
		t.Errorf("expected provider openai, got %s", cfg.Assistant.Provider)
	}
	if cfg.UI.Theme != "fairway" {
		t.Errorf("expected theme fairway, got %s", cfg.UI.Theme)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Course.FirstTee != "06:00" {
		t.Errorf("expected default first_tee, got %s", cfg.Course.FirstTee)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[course]
name = "Pine Valley"
first_tee = "07:00"
last_tee = "15:30"
interval_minutes = 10

[assistant]
provider = "ollama"
model = "llama3.2"
base_url = "http://localhost:11434"

[storage]
db_path = "/tmp/test.db"

[ui]
theme = "night"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Course.Name != "Pine Valley" {
		t.Errorf("expected name Pine Valley, got %s", cfg.Course.Name)
	}
	if cfg.Course.FirstTee != "07:00" || cfg.Course.LastTee != "15:30" {
		t.Errorf("expected 07:00-15:30, got %s-%s", cfg.Course.FirstTee, cfg.Course.LastTee)
	}
	if cfg.Course.IntervalMinutes != 10 {
		t.Errorf("expected interval 10, got %d", cfg.Course.IntervalMinutes)
	}
	if cfg.Assistant.Provider != "ollama" || cfg.Assistant.Model != "llama3.2" {
		t.Errorf("unexpected assistant config %+v", cfg.Assistant)
	}
	if cfg.Assistant.MaxRetries != 2 {
		t.Errorf("expected default max_retries 2, got %d", cfg.Assistant.MaxRetries)
	}
	if cfg.Storage.DBPath != "/tmp/test.db" {
		t.Errorf("expected db_path /tmp/test.db, got %s", cfg.Storage.DBPath)
	}
	if cfg.UI.Theme != "night" {
		t.Errorf("expected theme night, got %s", cfg.UI.Theme)
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[course]
first_tee = "07:00"
last_tee = "16:00"

[storage]
db_path = "/tmp/test.db"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("CADDIE_FIRST_TEE", "06:30")
	t.Setenv("CADDIE_INTERVAL_MINUTES", "12")
	t.Setenv("CADDIE_ASSISTANT_MODEL", "gpt-4o")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Course.FirstTee != "06:30" {
		t.Errorf("expected first_tee 06:30 from env, got %s", cfg.Course.FirstTee)
	}
	if cfg.Course.LastTee != "16:00" {
		t.Errorf("expected last_tee 16:00 from file, got %s", cfg.Course.LastTee)
	}
	if cfg.Course.IntervalMinutes != 12 {
		t.Errorf("expected interval 12 from env, got %d", cfg.Course.IntervalMinutes)
	}
	if cfg.Assistant.Model != "gpt-4o" {
		t.Errorf("expected model gpt-4o from env, got %s", cfg.Assistant.Model)
	}
}

func TestLoadFrom_BadIntervalEnv(t *testing.T) {
	t.Setenv("CADDIE_INTERVAL_MINUTES", "eight")

	if _, err := LoadFrom(filepath.Join(t.TempDir(), "config.toml")); err == nil {
		t.Error("expected error for non-numeric interval override")
	}
}

func TestLoadFrom_DotEnv(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	env := "CADDIE_COURSE_NAME=Links From Dotenv\nCADDIE_UI_THEME=links\n"
	if err := os.WriteFile(filepath.Join(tmpDir, ".env"), []byte(env), 0o600); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	t.Cleanup(func() { _ = os.Unsetenv("CADDIE_COURSE_NAME") })

	// Variables already in the environment win over .env.
	t.Setenv("CADDIE_UI_THEME", "night")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Course.Name != "Links From Dotenv" {
		t.Errorf("expected course name from .env, got %q", cfg.Course.Name)
	}
	if cfg.UI.Theme != "night" {
		t.Errorf("expected theme night from process env, got %q", cfg.UI.Theme)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"first tee missing leading zero", func(c *Config) { c.Course.FirstTee = "6:00" }},
		{"last tee out of range", func(c *Config) { c.Course.LastTee = "24:10" }},
		{"first after last", func(c *Config) { c.Course.FirstTee = "18:00"; c.Course.LastTee = "06:00" }},
		{"zero interval", func(c *Config) { c.Course.IntervalMinutes = 0 }},
		{"interval too long", func(c *Config) { c.Course.IntervalMinutes = 90 }},
		{"unknown provider", func(c *Config) { c.Assistant.Provider = "copilot" }},
		{"negative retries", func(c *Config) { c.Assistant.MaxRetries = -1 }},
		{"empty db path", func(c *Config) { c.Storage.DBPath = "" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidate_SingleTeeTime(t *testing.T) {
	cfg := Default()
	cfg.Course.FirstTee = "08:00"
	cfg.Course.LastTee = "08:00"

	if err := cfg.Validate(); err != nil {
		t.Errorf("first_tee equal to last_tee should be valid: %v", err)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input string
		want  string
	}{
		{"~/test.db", filepath.Join(home, "test.db")},
		{"/absolute/path.db", "/absolute/path.db"},
		{"relative/path.db", "relative/path.db"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := expandPath(tc.input)
			if got != tc.want {
				t.Errorf("expandPath(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.toml")

	cfg := Default()
	cfg.Course.Name = "Saved Course"
	cfg.Course.FirstTee = "07:30"
	cfg.Course.IntervalMinutes = 9
	cfg.Storage.DBPath = filepath.Join(tmpDir, "caddie.db")

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.Course.Name != "Saved Course" {
		t.Errorf("expected name Saved Course, got %s", loaded.Course.Name)
	}
	if loaded.Course.FirstTee != "07:30" {
		t.Errorf("expected first_tee 07:30, got %s", loaded.Course.FirstTee)
	}
	if loaded.Course.IntervalMinutes != 9 {
		t.Errorf("expected interval 9, got %d", loaded.Course.IntervalMinutes)
	}
}

func TestTeeTimes(t *testing.T) {
	cfg := Default()
	cfg.Course.FirstTee = "07:00"
	cfg.Course.LastTee = "07:30"
	cfg.Course.IntervalMinutes = 10

	got := cfg.TeeTimes()
	want := []string{"07:00", "07:10", "07:20", "07:30"}
	if len(got) != len(want) {
		t.Fatalf("TeeTimes() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("TeeTimes()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
