package security

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// PathValidator checks that paths the scanner writes to are safe
type PathValidator struct {
	protectedPaths []string
}

// NewPathValidator creates a new PathValidator with default protected paths
func NewPathValidator() *PathValidator {
	return &PathValidator{
		protectedPaths: []string{
			// Unix system directories
			"/",
			"/bin",
			"/boot",
			"/dev",
			"/etc",
			"/lib",
			"/lib64",
			"/proc",
			"/root",
			"/sbin",
			"/sys",
			"/usr",
			"/var",
			// macOS system directories
			"/System",
			"/Applications",
			"/Library/System",
		},
	}
}

// ValidateOutputDir checks that dir can hold redacted copies. The directory
// does not need to exist yet.
func (pv *PathValidator) ValidateOutputDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("output directory is not set")
	}

	if !filepath.IsAbs(dir) {
		return fmt.Errorf("output directory must be absolute: %s", dir)
	}

	if strings.ContainsRune(dir, 0) {
		return fmt.Errorf("output directory contains a NUL byte: %q", dir)
	}

	return pv.checkProtectedPaths(filepath.Clean(dir))
}

// checkProtectedPaths rejects protected directories and their direct children
func (pv *PathValidator) checkProtectedPaths(cleanPath string) error {
	for _, protected := range pv.protectedPaths {
		if cleanPath == protected {
			return fmt.Errorf("refusing to write into protected path: %s", cleanPath)
		}

		if protected == "/" {
			continue
		}

		// /usr/foo is refused, /usr/local/share/foo is not
		if strings.HasPrefix(cleanPath, protected+"/") {
			rel, _ := filepath.Rel(protected, cleanPath)
			if !strings.Contains(rel, "/") {
				return fmt.Errorf("refusing to write into critical system path: %s", cleanPath)
			}
		}
	}

	return nil
}

// IsWithin reports whether path is dir or lies below it.
func IsWithin(path, dir string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// ValidateGlobPattern validates that an exclude pattern is well formed
func ValidateGlobPattern(pattern string) error {
	if strings.Contains(pattern, "..") {
		return fmt.Errorf("glob pattern contains directory traversal: %s", pattern)
	}

	if !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("invalid glob pattern: %s", pattern)
	}

	return nil
}
