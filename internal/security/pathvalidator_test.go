package security

import (
	"path/filepath"
	"testing"
)

func TestValidateOutputDir(t *testing.T) {
	pv := NewPathValidator()
	tmp := t.TempDir()

	tests := []struct {
		name        string
		path        string
		shouldError bool
	}{
		{"temp dir", tmp, false},
		{"nested under temp", filepath.Join(tmp, "out", "wordguard"), false},
		{"deep under var", "/var/lib/wordguard/out", false},
		{"empty", "", true},
		{"relative", "out/wordguard", true},
		{"root", "/", true},
		{"protected exact", "/etc", true},
		{"direct child of protected", "/usr/wordguard", true},
		{"nul byte", "/tmp/out\x00x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pv.ValidateOutputDir(tt.path)
			if tt.shouldError && err == nil {
				t.Errorf("ValidateOutputDir(%q) expected error", tt.path)
			}
			if !tt.shouldError && err != nil {
				t.Errorf("ValidateOutputDir(%q) unexpected error: %v", tt.path, err)
			}
		})
	}
}

func TestIsWithin(t *testing.T) {
	tests := []struct {
		path, dir string
		want      bool
	}{
		{"/data/out", "/data/out", true},
		{"/data/out/a/b", "/data/out", true},
		{"/data/outside", "/data/out", false},
		{"/data", "/data/out", false},
		{"/data/out/../x", "/data/out", false},
		{"/data/..hidden", "/data", true},
	}

	for _, tt := range tests {
		if got := IsWithin(tt.path, tt.dir); got != tt.want {
			t.Errorf("IsWithin(%q, %q) = %v, want %v", tt.path, tt.dir, got, tt.want)
		}
	}
}

func TestValidateGlobPattern(t *testing.T) {
	valid := []string{"*.log", "**/node_modules/**", "secret?.txt", "{a,b}/*.md"}
	for _, p := range valid {
		if err := ValidateGlobPattern(p); err != nil {
			t.Errorf("ValidateGlobPattern(%q) unexpected error: %v", p, err)
		}
	}

	invalid := []string{"../etc/*", "[unclosed", "{a,b"}
	for _, p := range invalid {
		if err := ValidateGlobPattern(p); err == nil {
			t.Errorf("ValidateGlobPattern(%q) expected error", p)
		}
	}
}
