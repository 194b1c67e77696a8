// Package config holds the run parameters for convertts. There is no config
// file: Default returns the compile-time values and callers (mostly tests)
// adjust fields before passing the struct to constructors.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Config struct {
	// MarkerPrefix is prepended to a file name while it is being converted.
	MarkerPrefix string

	// SourceExt is the extension (with leading dot) of files to convert.
	// Matching is case-sensitive. TargetExt is given to converter output.
	SourceExt string
	TargetExt string

	LogFileName   string
	Verbose       bool
	ConverterPath string

	// SettleDelay is slept after the converter exits, before the in-process
	// file is removed.
	SettleDelay time.Duration

	// WaitTimeout bounds the cancel/continue prompt between items.
	WaitTimeout  time.Duration
	PollInterval time.Duration
}

func Default() Config {
	return Config{
		MarkerPrefix:  "inproc-",
		SourceExt:     ".ts",
		TargetExt:     ".mp4",
		LogFileName:   "logfile.txt",
		Verbose:       true,
		ConverterPath: "ffmpeg",
		SettleDelay:   time.Second,
		WaitTimeout:   10 * time.Second,
		PollInterval:  250 * time.Millisecond,
	}
}

func (c Config) Validate() error {
	var errs []error
	if c.MarkerPrefix == "" {
		errs = append(errs, errors.New("marker prefix must not be empty"))
	}
	if !strings.HasPrefix(c.SourceExt, ".") || len(c.SourceExt) < 2 {
		errs = append(errs, fmt.Errorf("source extension %q must start with '.'", c.SourceExt))
	}
	if !strings.HasPrefix(c.TargetExt, ".") || len(c.TargetExt) < 2 {
		errs = append(errs, fmt.Errorf("target extension %q must start with '.'", c.TargetExt))
	}
	if c.SourceExt == c.TargetExt {
		errs = append(errs, errors.New("source and target extensions must differ"))
	}
	if c.LogFileName == "" {
		errs = append(errs, errors.New("log file name must not be empty"))
	}
	if c.ConverterPath == "" {
		errs = append(errs, errors.New("converter path must not be empty"))
	}
	if c.SettleDelay < 0 {
		errs = append(errs, errors.New("settle delay must not be negative"))
	}
	if c.WaitTimeout < 0 {
		errs = append(errs, errors.New("wait timeout must not be negative"))
	}
	if c.PollInterval <= 0 {
		errs = append(errs, errors.New("poll interval must be positive"))
	}
	return errors.Join(errs...)
}
