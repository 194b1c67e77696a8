// Package recordlog appends one tab-separated line per conversion attempt to
// a plain text log. A run holds an exclusive lock next to the log for its
// whole lifetime so two runs never interleave records.
package recordlog

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

// ErrLocked is returned by Open when another run holds the log.
var ErrLocked = errors.New("record log is in use by another run")

type Record struct {
	Time time.Time

	// File is the output path after a conversion, or the source path when
	// the source was skipped.
	File string

	// Duration holds the elapsed HH:MM:SS, or a message for skipped files.
	Duration string

	OriginalSize int64
	NewSize      int64
}

// Percentage returns NewSize as a whole percentage of OriginalSize. ok is
// false unless both sizes are positive.
func (r Record) Percentage() (pct int64, ok bool) {
	if r.OriginalSize <= 0 || r.NewSize <= 0 {
		return 0, false
	}
	return r.NewSize * 100 / r.OriginalSize, true
}

// Line renders the record without a trailing newline.
func (r Record) Line() string {
	fields := []string{
		r.Time.Format("15:04:05"),
		r.File,
		r.Duration,
		strconv.FormatInt(r.OriginalSize, 10),
		strconv.FormatInt(r.NewSize, 10),
	}
	if pct, ok := r.Percentage(); ok {
		fields = append(fields, strconv.FormatInt(pct, 10)+"%")
	}
	return strings.Join(fields, "\t")
}

// FormatDuration renders d as HH:MM:SS. Hours keep counting past 24.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs/60%60, secs%60)
}

type Log struct {
	path string
	lock *flock.Flock
}

func Open(path string) (*Log, error) {
	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrLocked)
	}
	return &Log{path: path, lock: lock}, nil
}

func (l *Log) Path() string {
	return l.path
}

// Append writes one record. The file is opened per call in append mode.
func (l *Log) Append(r Record) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open record log: %w", err)
	}
	if _, err := f.WriteString(r.Line() + "\n"); err != nil {
		_ = f.Close()
		return fmt.Errorf("write record log: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close record log: %w", err)
	}
	return nil
}

func (l *Log) Close() error {
	return l.lock.Unlock()
}
