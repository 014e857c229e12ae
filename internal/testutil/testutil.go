// Package testutil provides test helpers and fixtures for wordguard tests.
// All file operations use t.TempDir() for safe, isolated testing.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"
)

// Fixture holds a source tree to scan and an output directory to write to
type Fixture struct {
	T       *testing.T
	RootDir string // Root temp directory (auto-cleaned)

	SourceDir string // Tree handed to the walker
	OutputDir string // Destination for copies and the report
}

// NewFixture creates a new fixture with an empty source tree
func NewFixture(t *testing.T) *Fixture {
	t.Helper()

	root := t.TempDir()

	f := &Fixture{
		T:         t,
		RootDir:   root,
		SourceDir: filepath.Join(root, "src"),
		OutputDir: filepath.Join(root, "out"),
	}

	if err := os.MkdirAll(f.SourceDir, 0755); err != nil {
		t.Fatalf("failed to create directory %s: %v", f.SourceDir, err)
	}

	return f
}

// =============================================================================
// File Creation Helpers
// =============================================================================

// CreateFile creates a file below the source tree and returns its path
func (f *Fixture) CreateFile(relPath, content string) string {
	f.T.Helper()

	fullPath := f.Path(relPath)
	dir := filepath.Dir(fullPath)

	if err := os.MkdirAll(dir, 0755); err != nil {
		f.T.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		f.T.Fatalf("failed to create file %s: %v", fullPath, err)
	}

	return fullPath
}

// CreateTree creates every file in files, keyed by path relative to the
// source tree
func (f *Fixture) CreateTree(files map[string]string) {
	f.T.Helper()

	for rel, content := range files {
		f.CreateFile(rel, content)
	}
}

// CreateDir creates a directory below the source tree and returns its path
func (f *Fixture) CreateDir(relPath string) string {
	f.T.Helper()

	fullPath := f.Path(relPath)
	if err := os.MkdirAll(fullPath, 0755); err != nil {
		f.T.Fatalf("failed to create directory %s: %v", fullPath, err)
	}

	return fullPath
}

// =============================================================================
// Symlink Helpers
// =============================================================================

// CreateSymlink creates a symbolic link below the source tree
func (f *Fixture) CreateSymlink(target, linkPath string) string {
	f.T.Helper()

	fullLinkPath := f.Path(linkPath)
	if err := os.MkdirAll(filepath.Dir(fullLinkPath), 0755); err != nil {
		f.T.Fatalf("failed to create directory for %s: %v", fullLinkPath, err)
	}

	if err := os.Symlink(target, fullLinkPath); err != nil {
		f.T.Fatalf("failed to create symlink %s -> %s: %v", fullLinkPath, target, err)
	}

	return fullLinkPath
}

// =============================================================================
// Permission Helpers
// =============================================================================

// CreateNoPermissionFile creates a file with no permissions (000)
func (f *Fixture) CreateNoPermissionFile(relPath, content string) string {
	f.T.Helper()

	fullPath := f.CreateFile(relPath, content)
	if err := os.Chmod(fullPath, 0000); err != nil {
		f.T.Fatalf("failed to chmod file %s: %v", fullPath, err)
	}

	return fullPath
}

// CreateNoPermissionDir creates a directory that cannot be listed. A file is
// created inside first so there is something to miss.
func (f *Fixture) CreateNoPermissionDir(relPath string) string {
	f.T.Helper()

	dirPath := f.CreateDir(relPath)
	f.CreateFile(filepath.Join(relPath, "hidden.txt"), "hidden")

	if err := os.Chmod(dirPath, 0000); err != nil {
		f.T.Fatalf("failed to chmod directory %s: %v", dirPath, err)
	}

	// Restore permissions so TempDir cleanup works
	f.T.Cleanup(func() {
		os.Chmod(dirPath, 0755)
	})

	return dirPath
}

// =============================================================================
// Path Helpers
// =============================================================================

// Path returns the full path for a path relative to the source tree
func (f *Fixture) Path(relPath string) string {
	return filepath.Join(f.SourceDir, relPath)
}

// OutputPath returns the full path for a name in the output directory
func (f *Fixture) OutputPath(name string) string {
	return filepath.Join(f.OutputDir, name)
}

// =============================================================================
// Assertion Helpers
// =============================================================================

// ReadOutput returns the content of a file in the output directory
func (f *Fixture) ReadOutput(name string) string {
	f.T.Helper()

	data, err := os.ReadFile(f.OutputPath(name))
	if err != nil {
		f.T.Fatalf("failed to read output %s: %v", name, err)
	}
	return string(data)
}

// OutputNames lists the file names in the output directory, sorted
func (f *Fixture) OutputNames() []string {
	f.T.Helper()

	entries, err := os.ReadDir(f.OutputDir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		f.T.Fatalf("failed to list output directory: %v", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

// AssertFileExists fails the test if the file doesn't exist
func (f *Fixture) AssertFileExists(path string) {
	f.T.Helper()
	if _, err := os.Stat(path); err != nil {
		f.T.Errorf("expected file to exist: %s", path)
	}
}

// AssertFileNotExists fails the test if the file exists
func (f *Fixture) AssertFileNotExists(path string) {
	f.T.Helper()
	if _, err := os.Stat(path); err == nil {
		f.T.Errorf("expected file to not exist: %s", path)
	}
}

// =============================================================================
// Environment Helpers
// =============================================================================

// IsRoot reports whether the tests run as root, where permission bits are
// not enforced
func IsRoot() bool {
	return os.Geteuid() == 0
}

// SkipIfRoot skips tests that rely on permission denial
func SkipIfRoot(t *testing.T) {
	t.Helper()
	if IsRoot() {
		t.Skip("skipping test when running as root")
	}
}

// SkipOnWindows skips tests relying on unix permissions or symlinks
func SkipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on windows")
	}
}
