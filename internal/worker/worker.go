// Package worker converts one queued file. A file moves through three names:
// its original path, the in-process name (marker prefix added) while the
// converter runs, and finally the output path once the in-process copy is
// removed. Anything that goes wrong after the rename leaves the in-process
// file behind, where future scans will skip it.
package worker

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"go.uber.org/zap"

	"convertts/internal/config"
	"convertts/internal/converter"
	"convertts/internal/recordlog"
	"convertts/internal/scanner"
	"convertts/pkg/mediautil"
)

// SkippedMessage is logged in place of a duration when the source vanished.
const SkippedMessage = "File skipped, not found"

type Outcome int

const (
	Converted Outcome = iota
	Skipped
	RenameFailed
	ConverterFailed
	CleanupFailed
)

func (o Outcome) String() string {
	switch o {
	case Converted:
		return "converted"
	case Skipped:
		return "skipped"
	case RenameFailed:
		return "rename failed"
	case ConverterFailed:
		return "converter failed"
	case CleanupFailed:
		return "cleanup failed"
	default:
		return "unknown"
	}
}

type Result struct {
	Source    string
	InProcess string
	Output    string
	Outcome   Outcome

	OriginalSize int64
	NewSize      int64
	Elapsed      time.Duration

	// Err is the recoverable error behind any outcome other than Converted
	// or Skipped.
	Err error

	// Logged reports whether a record was appended for this attempt.
	Logged bool
}

// RecordWriter receives one record per attempt. *recordlog.Log satisfies it.
type RecordWriter interface {
	Append(recordlog.Record) error
}

type Worker struct {
	cfg     config.Config
	runner  converter.Runner
	records RecordWriter
	logger  *zap.Logger

	now   func() time.Time
	sleep func(context.Context, time.Duration)
}

func New(cfg config.Config, runner converter.Runner, records RecordWriter, logger *zap.Logger) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{
		cfg:     cfg,
		runner:  runner,
		records: records,
		logger:  logger,
		now:     time.Now,
		sleep:   sleepContext,
	}
}

// Convert runs the whole transition for path. The returned error is set
// when the record log cannot be written or the converter cannot be started;
// in the latter case the source is renamed back first. Every other failure
// is reported through Result.Outcome and the run can go on.
func (w *Worker) Convert(ctx context.Context, path string) (Result, error) {
	res := Result{Source: path}

	info, err := os.Stat(path)
	if err != nil {
		res.Outcome = Skipped
		return res, w.append(&res, recordlog.Record{
			Time:     w.now(),
			File:     path,
			Duration: SkippedMessage,
		})
	}

	dir, stem, _ := scanner.SplitPath(path)
	res.InProcess = dir + w.cfg.MarkerPrefix + scanner.BaseName(path)
	res.Output = dir + stem + w.cfg.TargetExt
	res.OriginalSize = info.Size()

	if w.cfg.Verbose {
		w.logger.Debug("derived names",
			zap.String("source", path),
			zap.String("in_process", res.InProcess),
			zap.String("output", res.Output),
			zap.Int64("size", res.OriginalSize),
		)
	}

	start := w.now()
	if err := rename(path, res.InProcess); err != nil {
		res.Outcome = RenameFailed
		res.Err = err
		w.logger.Error("failed to move file to in-process state", zap.String("file", path), zap.Error(err))
		return res, nil
	}

	w.logger.Info("start conversion", zap.String("file", path))

	convErr := w.runner.Run(ctx, res.InProcess, res.Output)
	var startErr *converter.StartError
	if errors.As(convErr, &startErr) {
		res.Outcome = ConverterFailed
		res.Err = convErr
		if err := rename(res.InProcess, path); err != nil {
			return res, errors.Join(convErr, fmt.Errorf("restore %s: %w", path, err))
		}
		w.logger.Error("converter could not be started", zap.String("file", path), zap.Error(convErr))
		return res, convErr
	}
	if convErr != nil {
		res.Outcome = ConverterFailed
		res.Err = convErr
		w.logger.Error("converter failed, keeping in-process file",
			zap.String("file", res.InProcess), zap.Error(convErr))
	}

	w.sleep(ctx, w.cfg.SettleDelay)

	if convErr == nil {
		if err := os.Remove(res.InProcess); err != nil {
			res.Outcome = CleanupFailed
			res.Err = err
			w.logger.Error("failed to delete in-process file", zap.String("file", res.InProcess), zap.Error(err))
		}
	}

	res.Elapsed = w.now().Sub(start)
	if out, err := os.Stat(res.Output); err == nil {
		res.NewSize = out.Size()
	}
	w.checkOutput(res)

	w.logger.Info("end conversion", zap.String("file", path), zap.Stringer("outcome", res.Outcome))

	return res, w.append(&res, recordlog.Record{
		Time:         w.now(),
		File:         res.Output,
		Duration:     recordlog.FormatDuration(res.Elapsed),
		OriginalSize: res.OriginalSize,
		NewSize:      res.NewSize,
	})
}

func (w *Worker) append(res *Result, record recordlog.Record) error {
	if err := w.records.Append(record); err != nil {
		return fmt.Errorf("append record for %s: %w", res.Source, err)
	}
	res.Logged = true
	return nil
}

// checkOutput warns when the converter left something that does not look
// like the target container.
func (w *Worker) checkOutput(res Result) {
	if res.NewSize == 0 || w.cfg.TargetExt != ".mp4" {
		return
	}
	kind, err := mediautil.SniffFile(res.Output)
	if err != nil || kind != mediautil.KindMP4 {
		w.logger.Warn("output does not look like mp4",
			zap.String("file", res.Output), zap.Stringer("detected", kind))
	}
}

// rename refuses to replace an existing in-process file, which os.Rename
// would do silently on most platforms.
func rename(from, to string) error {
	if _, err := os.Lstat(to); err == nil {
		return fmt.Errorf("rename %s: %w", to, fs.ErrExist)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.Rename(from, to)
}

func sleepContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
