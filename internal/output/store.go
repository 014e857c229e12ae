// Package output writes the copies and the report a scan produces.
package output

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/fenilsonani/wordguard/internal/security"
)

const (
	// ModifiedPrefix is prepended to the name of every redacted copy
	ModifiedPrefix = "Modified_"
	// ReportName is the report file written at the root of the output directory
	ReportName = "report.txt"
)

// CollisionPolicy decides what happens when two source files share a name
type CollisionPolicy string

const (
	// PolicyOverwrite lets the later file replace the earlier copy
	PolicyOverwrite CollisionPolicy = "overwrite"
	// PolicyKeepBoth gives the later file a numbered name (x-1.txt)
	PolicyKeepBoth CollisionPolicy = "keep_both"
)

// Valid reports whether p is a known policy
func (p CollisionPolicy) Valid() bool {
	return p == PolicyOverwrite || p == PolicyKeepBoth
}

// Artifact describes the files written for one matched source file
type Artifact struct {
	Source   string
	Copy     string
	Redacted string
}

// Store owns the output directory. All writes go through one mutex and land
// via rename, so concurrent walkers never observe a half-written file.
type Store struct {
	dir    string
	policy CollisionPolicy

	mu      sync.Mutex
	claimed map[string]string // output name -> source path, for PolicyKeepBoth
}

// NewStore validates dir and returns a Store for it. The directory is created
// by Prepare.
func NewStore(dir string, policy CollisionPolicy) (*Store, error) {
	if policy == "" {
		policy = PolicyOverwrite
	}
	if !policy.Valid() {
		return nil, fmt.Errorf("unknown collision policy: %s", policy)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output directory: %w", err)
	}
	if err := security.NewPathValidator().ValidateOutputDir(abs); err != nil {
		return nil, err
	}

	return &Store{
		dir:     abs,
		policy:  policy,
		claimed: make(map[string]string),
	}, nil
}

// Dir returns the absolute output directory
func (s *Store) Dir() string { return s.dir }

// Policy returns the collision policy
func (s *Store) Policy() CollisionPolicy { return s.policy }

// Prepare creates the output directory if needed and forgets names claimed by
// a previous run.
func (s *Store) Prepare() error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	s.mu.Lock()
	s.claimed = make(map[string]string)
	s.mu.Unlock()

	return nil
}

// Save writes an unmodified copy of src and its redacted form.
func (s *Store) Save(src string, original, redacted []byte) (Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := s.claimName(src)
	art := Artifact{
		Source:   src,
		Copy:     filepath.Join(s.dir, name),
		Redacted: filepath.Join(s.dir, ModifiedPrefix+name),
	}

	if err := writeAtomic(art.Copy, bytes.NewReader(original)); err != nil {
		return art, fmt.Errorf("failed to copy %s: %w", src, err)
	}
	if err := writeAtomic(art.Redacted, bytes.NewReader(redacted)); err != nil {
		return art, fmt.Errorf("failed to write redacted copy of %s: %w", src, err)
	}

	return art, nil
}

// WriteReport renders a report into ReportName, replacing any earlier one.
func (s *Store) WriteReport(render func(io.Writer) error) (string, error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, ReportName)
	if err := writeAtomic(path, &buf); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

// claimName picks the output name for src. Caller holds s.mu.
func (s *Store) claimName(src string) string {
	base := filepath.Base(src)
	if s.policy == PolicyOverwrite {
		return base
	}

	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	name := base
	for i := 1; ; i++ {
		owner, taken := s.claimed[name]
		if !taken || owner == src {
			break
		}
		name = stem + "-" + strconv.Itoa(i) + ext
	}
	s.claimed[name] = src
	return name
}

// writeAtomic writes r to a temp file next to path and renames it into place.
func writeAtomic(path string, r io.Reader) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".wordguard-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}

	return nil
}
