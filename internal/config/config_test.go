package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/fenilsonani/wordguard/internal/words"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return configPath
}

// =============================================================================
// GetDefault Tests
// =============================================================================

func TestGetDefault(t *testing.T) {
	cfg := GetDefault()

	if cfg == nil {
		t.Fatal("GetDefault returned nil")
	}
	if cfg.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", cfg.Workers)
	}
	if cfg.CollisionPolicy != "overwrite" {
		t.Errorf("expected overwrite policy, got %q", cfg.CollisionPolicy)
	}
	if cfg.OutputDir != "" {
		t.Errorf("expected empty output dir (platform default), got %q", cfg.OutputDir)
	}
	if len(cfg.Roots) != 0 {
		t.Errorf("expected no roots by default, got %v", cfg.Roots)
	}
	if len(cfg.ExcludePattern) != 0 {
		t.Errorf("expected no exclude patterns by default, got %v", cfg.ExcludePattern)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestGetDefaultPollInterval(t *testing.T) {
	cfg := GetDefault()

	if got := cfg.PollInterval(); got != 100*time.Millisecond {
		t.Errorf("expected 100ms poll interval, got %v", got)
	}
}

func TestGetDefaultMaxFileSize(t *testing.T) {
	cfg := GetDefault()

	if got := cfg.MaxFileSizeBytes(); got != 256<<20 {
		t.Errorf("expected 256MB limit, got %d", got)
	}
}

// =============================================================================
// ParseSize Tests
// =============================================================================

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"", 0, false},
		{"512", 512, false},
		{"512B", 512, false},
		{"1KB", 1024, false},
		{"64mb", 64 << 20, false},
		{" 2 GB ", 2 << 30, false},
		{"1.5KB", 1536, false},
		{"1TB", 1 << 40, false},
		{"lots", 0, true},
		{"-1KB", 0, true},
		{"8388608TB", 0, true},
		{"1e30TB", 0, true},
		{"1e300", 0, true},
		{"Inf", 0, true},
		{"NaN", 0, true},
		{"8388607TB", 8388607 << 40, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSize(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseSize(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

// =============================================================================
// Load Tests
// =============================================================================

func TestLoadNonExistentFile(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("Load should not error for non-existent file: %v", err)
	}

	if cfg == nil {
		t.Fatal("Load returned nil config")
	}
	if cfg.Workers != 4 {
		t.Error("expected default workers")
	}
}

func TestLoadValidConfig(t *testing.T) {
	configPath := writeConfig(t, `
roots:
  - /data
  - /mnt/usb
output_dir: /tmp/wordguard-out
words:
  - secret
  - classified
exclude_patterns:
  - "*.log"
  - "**/node_modules/**"
max_file_size: 10MB
workers: 2
pause_poll_interval: 250ms
collision_policy: keep_both
log_level: debug
report_format: json
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.Roots) != 2 || cfg.Roots[1] != "/mnt/usb" {
		t.Errorf("unexpected roots: %v", cfg.Roots)
	}
	if cfg.OutputDir != "/tmp/wordguard-out" {
		t.Errorf("unexpected output dir: %s", cfg.OutputDir)
	}
	if len(cfg.Words) != 2 {
		t.Errorf("expected 2 words, got %v", cfg.Words)
	}
	if cfg.MaxFileSizeBytes() != 10<<20 {
		t.Errorf("expected 10MB, got %d", cfg.MaxFileSizeBytes())
	}
	if cfg.Workers != 2 {
		t.Errorf("expected 2 workers, got %d", cfg.Workers)
	}
	if cfg.PollInterval() != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %v", cfg.PollInterval())
	}
	if cfg.CollisionPolicy != "keep_both" {
		t.Errorf("expected keep_both, got %s", cfg.CollisionPolicy)
	}
	if cfg.ReportFormat != "json" {
		t.Errorf("expected json, got %s", cfg.ReportFormat)
	}
}

func TestLoadPartialConfig(t *testing.T) {
	configPath := writeConfig(t, `
workers: 8
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Check that defaults are preserved for unspecified values
	if cfg.CollisionPolicy != "overwrite" {
		t.Errorf("expected default policy, got %q", cfg.CollisionPolicy)
	}
	if cfg.PausePollInterval != "100ms" {
		t.Errorf("expected default poll interval, got %q", cfg.PausePollInterval)
	}
	if cfg.Workers != 8 {
		t.Errorf("expected 8 workers, got %d", cfg.Workers)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	configPath := writeConfig(t, `
roots: [invalid
workers: 2
`)

	if _, err := Load(configPath); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"negative workers":  "workers: -1\n",
		"bad size":          "max_file_size: huge\n",
		"bad interval":      "pause_poll_interval: soon\n",
		"zero interval":     "pause_poll_interval: 0s\n",
		"bad policy":        "collision_policy: rename\n",
		"bad log level":     "log_level: chatty\n",
		"bad format":        "report_format: xml\n",
		"bad exclude":       "exclude_patterns:\n  - \"[invalid\"\n",
		"traversal exclude": "exclude_patterns:\n  - \"../etc\"\n",
		"relative skip dir": "skip_dirs:\n  - relative/path\n",
		"relative root":     "roots:\n  - relative/root\n",
		"masked word":       "words:\n  - \"se*ret\"\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, content)); err == nil {
				t.Errorf("expected error for %s", name)
			}
		})
	}
}

func TestLoadEmptyConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load failed for empty config: %v", err)
	}
	if cfg.Workers != 4 {
		t.Errorf("expected defaults for empty config, got %d workers", cfg.Workers)
	}
}

func TestLoadConfigWithComments(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
# forbidden words
words:
  - alpha # inline comment
  - beta
`))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Words) != 2 || cfg.Words[0] != "alpha" {
		t.Errorf("unexpected words: %v", cfg.Words)
	}
}

// =============================================================================
// Save Tests
// =============================================================================

func TestSaveAndLoadRoundTrip(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "subdir", "config.yaml")

	cfg := GetDefault()
	cfg.Words = []string{"secret"}
	cfg.Workers = 7
	cfg.CollisionPolicy = "keep_both"

	if err := Save(cfg, configPath); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}

	if loaded.Workers != 7 {
		t.Errorf("expected 7 workers after save/load, got %d", loaded.Workers)
	}
	if loaded.CollisionPolicy != "keep_both" {
		t.Errorf("expected keep_both after save/load, got %s", loaded.CollisionPolicy)
	}
	if len(loaded.Words) != 1 || loaded.Words[0] != "secret" {
		t.Errorf("expected words to survive save/load, got %v", loaded.Words)
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "deep", "nested", "dir", "config.yaml")

	if err := Save(GetDefault(), configPath); err != nil {
		t.Fatalf("Save failed to create nested directories: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("config file was not created in nested directory")
	}
}

// =============================================================================
// Words Tests
// =============================================================================

func TestLoadWordsMergesFileAndInline(t *testing.T) {
	wordsPath := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(wordsPath, []byte("alpha\nbeta\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := GetDefault()
	cfg.WordsFile = wordsPath
	cfg.Words = []string{"beta", "gamma"}

	set, err := cfg.LoadWords()
	if err != nil {
		t.Fatalf("LoadWords failed: %v", err)
	}

	got := set.Words()
	want := []string{"alpha", "beta", "gamma"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("word %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestLoadWordsInlineOnly(t *testing.T) {
	cfg := GetDefault()
	cfg.Words = []string{"only"}

	set, err := cfg.LoadWords()
	if err != nil {
		t.Fatalf("LoadWords failed: %v", err)
	}
	if set.Len() != 1 || !set.Contains("only") {
		t.Errorf("unexpected set: %v", set)
	}
}

func TestLoadWordsRejectsMaskRune(t *testing.T) {
	cfg := GetDefault()
	cfg.Words = []string{"a*b"}

	if _, err := cfg.LoadWords(); !errors.Is(err, words.ErrMaskRune) {
		t.Errorf("expected ErrMaskRune, got %v", err)
	}
}

func TestLoadWordsMissingFile(t *testing.T) {
	cfg := GetDefault()
	cfg.WordsFile = filepath.Join(t.TempDir(), "missing.txt")

	if _, err := cfg.LoadWords(); err == nil {
		t.Error("expected error for missing words file")
	}
}

// =============================================================================
// Path Tests
// =============================================================================

func TestExpandPath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"~", "/home/u"},
		{"~/docs", "/home/u/docs"},
		{"/abs", "/abs"},
		{"rel", "rel"},
		{"~other", "~other"},
	}

	for _, tt := range tests {
		if got := ExpandPath(tt.in, "/home/u"); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveOutputDir(t *testing.T) {
	dir := t.TempDir()
	cfg := GetDefault()
	cfg.OutputDir = dir

	got, err := cfg.ResolveOutputDir()
	if err != nil {
		t.Fatalf("ResolveOutputDir failed: %v", err)
	}
	if got != dir {
		t.Errorf("expected %s, got %s", dir, got)
	}
}

func TestGetConfigPath(t *testing.T) {
	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath failed: %v", err)
	}

	if !filepath.IsAbs(path) {
		t.Errorf("expected absolute path, got %s", path)
	}
	if filepath.Base(path) != "config.yaml" {
		t.Errorf("expected config.yaml, got %s", filepath.Base(path))
	}
	if filepath.Base(filepath.Dir(path)) != "wordguard" {
		t.Errorf("expected wordguard config dir, got %s", filepath.Dir(path))
	}
}

func TestGetConfigPathHonoursXDG(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG applies to linux only")
	}

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath failed: %v", err)
	}

	want := filepath.Join(dir, "wordguard", "config.yaml")
	if path != want {
		t.Errorf("expected %s, got %s", want, path)
	}
}
