// Package scanner walks directory trees and redacts forbidden words in the
// files it finds.
package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/fenilsonani/wordguard/internal/progress"
	"github.com/fenilsonani/wordguard/internal/redact"
	"github.com/fenilsonani/wordguard/internal/security"
)

// Option configures a Walker
type Option func(*Walker)

// WithExcludes skips files and directories matching any of the doublestar
// patterns. Patterns are tried against the path relative to the root and
// against the base name.
func WithExcludes(patterns ...string) Option {
	return func(w *Walker) {
		w.excludes = append(w.excludes, patterns...)
	}
}

// WithSkipDirs never descends into dirs or anything below them
func WithSkipDirs(dirs ...string) Option {
	return func(w *Walker) {
		for _, d := range dirs {
			if d == "" {
				continue
			}
			if abs, err := filepath.Abs(d); err == nil {
				d = abs
			}
			w.skipDirs = append(w.skipDirs, d)
		}
	}
}

// WithMaxFileSize skips files larger than n bytes. Zero means no limit.
func WithMaxFileSize(n int64) Option {
	return func(w *Walker) {
		w.maxFileSize = n
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(w *Walker) {
		if l != nil {
			w.logger = l
		}
	}
}

// Walker visits every file below a root, depth-first with files before
// subdirectories, and saves a redacted copy of each file that matches.
type Walker struct {
	redactor    *redact.Redactor
	store       Saver
	excludes    []string
	skipDirs    []string
	maxFileSize int64
	logger      *zap.Logger
}

// NewWalker creates a Walker. A Walker keeps no per-walk state, so one
// instance may walk several roots concurrently.
func NewWalker(r *redact.Redactor, store Saver, opts ...Option) *Walker {
	w := &Walker{
		redactor: r,
		store:    store,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Walk processes root. It returns ctx.Err() when the walk was abandoned by
// cancellation and nil otherwise; per-file failures are reported through
// onEvent and never end the walk. A root that is or lies inside a skipped
// directory emits nothing. gate may be nil.
func (w *Walker) Walk(ctx context.Context, root string, gate *PauseGate, onEvent func(Event)) error {
	if gate == nil {
		gate = NewPauseGate(0)
	}
	if onEvent == nil {
		onEvent = func(Event) {}
	}

	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}

	if w.isSkippedDir(root) {
		w.logger.Debug("skipping root inside a skipped directory", zap.String("root", root))
		return nil
	}

	info, err := os.Stat(root)
	if err != nil {
		w.report(root, Categorize(root, OpStat, err), onEvent)
		return nil
	}
	if !info.IsDir() {
		w.report(root, Categorize(root, OpReadDir, fmt.Errorf("root is not a directory")), onEvent)
		return nil
	}

	// Pending directories. Subdirectories are pushed in reverse so the first
	// one is visited next, which keeps the order of a recursive descent.
	stack := []string{root}

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			// the subtree is abandoned either way
			w.report(root, Categorize(dir, OpReadDir, err), onEvent)
			continue
		}

		files, subdirs := w.partition(root, dir, entries)

		onEvent(Event{
			Kind:       EventProgress,
			Root:       root,
			Path:       dir,
			Discovered: len(files),
			Dirs:       len(subdirs),
		})

		for _, path := range files {
			if err := gate.Wait(ctx); err != nil {
				return err
			}

			w.processFile(root, path, onEvent)

			onEvent(Event{
				Kind:      EventProgress,
				Root:      root,
				Path:      path,
				Processed: 1,
			})
		}

		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}
	}

	return nil
}

// partition splits entries into the files to scan and the subdirectories to
// descend into, both in directory order.
func (w *Walker) partition(root, dir string, entries []os.DirEntry) (files, subdirs []string) {
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		if w.isExcluded(root, path) {
			continue
		}

		mode := entry.Type()
		switch {
		case mode.IsDir():
			if w.isSkippedDir(path) {
				w.logger.Debug("skipping directory", zap.String("path", path))
				continue
			}
			subdirs = append(subdirs, path)

		case mode.IsRegular():
			files = append(files, path)

		case mode&fs.ModeSymlink != 0:
			// links to files are read through, links to directories are not followed
			target, err := os.Stat(path)
			if err != nil {
				w.logger.Debug("skipping dangling symlink", zap.String("path", path), zap.Error(err))
				continue
			}
			if target.Mode().IsRegular() {
				files = append(files, path)
			}
		}
	}

	return files, subdirs
}

// processFile reads, redacts and saves one file.
func (w *Walker) processFile(root, path string, onEvent func(Event)) {
	if w.maxFileSize > 0 {
		if info, err := os.Stat(path); err == nil && info.Size() > w.maxFileSize {
			w.logger.Debug("skipping large file",
				zap.String("path", path),
				zap.String("size", progress.FormatBytes(info.Size())),
				zap.String("limit", progress.FormatBytes(w.maxFileSize)))
			return
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		w.report(root, Categorize(path, OpRead, err), onEvent)
		return
	}

	redacted, matches := w.redactor.Redact(string(data))
	if len(matches) == 0 {
		return
	}

	art, err := w.store.Save(path, data, []byte(redacted))
	if err != nil {
		onEvent(Event{Kind: EventError, Root: root, Path: path, Err: Categorize(path, OpSave, err)})
		return
	}

	onEvent(Event{
		Kind:     EventMatch,
		Root:     root,
		Path:     path,
		Matches:  matches,
		Artifact: art,
	})
}

// report emits se unless it is an access-denial, which is only logged.
func (w *Walker) report(root string, se *ScanError, onEvent func(Event)) {
	if se.Reason == ReasonAccessDenied {
		w.logger.Debug("access denied", zap.String("path", se.Path), zap.String("op", string(se.Op)))
		return
	}
	onEvent(Event{Kind: EventError, Root: root, Path: se.Path, Err: se})
}

func (w *Walker) isSkippedDir(path string) bool {
	for _, d := range w.skipDirs {
		if security.IsWithin(path, d) {
			return true
		}
	}
	return false
}

func (w *Walker) isExcluded(root, path string) bool {
	if len(w.excludes) == 0 {
		return false
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(path)

	for _, pattern := range w.excludes {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, base); ok {
			return true
		}
	}
	return false
}
