// Package scanner finds the files a run will convert. Walk visits every root
// depth-first, classifying the files of a directory before descending into
// its subdirectories.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"convertts/internal/config"
	"convertts/internal/queue"
)

// Report describes what a walk saw besides the queued files.
type Report struct {
	Examined     int
	InvalidRoots []string
	Errors       []error

	// InProcess lists files still carrying the marker prefix, typically left
	// behind by an interrupted run.
	InProcess []string
}

type Walker struct {
	classifier Classifier
	logger     *zap.Logger
}

func NewWalker(cfg config.Config, logger *zap.Logger) *Walker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Walker{classifier: NewClassifier(cfg), logger: logger}
}

// Walk scans every root into a single queue. Roots that are not existing
// directories are reported and skipped.
func (w *Walker) Walk(roots []string) (*queue.Queue, Report) {
	q := queue.New()
	var report Report

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			w.logger.Warn(fmt.Sprintf("%s is not a valid directory", root))
			report.InvalidRoots = append(report.InvalidRoots, root)
			continue
		}
		abs, err := filepath.Abs(root)
		if err != nil {
			w.logger.Warn("cannot resolve directory", zap.String("path", root), zap.Error(err))
			report.InvalidRoots = append(report.InvalidRoots, root)
			continue
		}
		w.visit(abs, q, &report)
	}

	return q, report
}

func (w *Walker) visit(dir string, q *queue.Queue, report *Report) {
	// ReadDir may return the entries it managed to read along with an error.
	entries, err := os.ReadDir(dir)
	if err != nil {
		w.logger.Warn("cannot read directory", zap.String("path", dir), zap.Error(err))
		report.Errors = append(report.Errors, fmt.Errorf("read %s: %w", dir, err))
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if !isRegularFile(path, entry) {
			continue
		}
		report.Examined++

		switch w.classifier.Classify(path) {
		case Included:
			q.Push(path)
		case ExcludedInProcess:
			w.logger.Info("skipping file in process", zap.String("file", entry.Name()))
			report.InProcess = append(report.InProcess, path)
		}
	}

	for _, entry := range entries {
		if entry.IsDir() {
			w.visit(filepath.Join(dir, entry.Name()), q, report)
		}
	}
}

// isRegularFile accepts regular files and symlinks that resolve to one.
// Symlinked directories are never followed.
func isRegularFile(path string, entry fs.DirEntry) bool {
	typ := entry.Type()
	if typ.IsRegular() {
		return true
	}
	if typ&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
