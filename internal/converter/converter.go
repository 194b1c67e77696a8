// Package converter runs the external transcoder. The tool is opaque: only
// its exit status and the file it leaves behind matter to callers.
package converter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Runner converts input into output, blocking until the conversion ends.
type Runner interface {
	Run(ctx context.Context, input, output string) error
}

// Args returns the transcoder arguments: copy the audio stream, re-encode
// video with the slow preset.
func Args(input, output string) []string {
	return []string{"-i", input, "-acodec", "copy", "-preset", "slow", output}
}

// FFmpeg runs an ffmpeg binary resolved through PATH unless Path is absolute.
type FFmpeg struct {
	Path string

	// Output, when set, receives the tool's stderr as it runs.
	Output io.Writer
}

func NewFFmpeg(path string, output io.Writer) *FFmpeg {
	return &FFmpeg{Path: path, Output: output}
}

// ExitError reports a transcoder that ran but did not succeed.
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("converter exited with status %d", e.Code)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// StartError reports a transcoder that could not be launched at all, such as
// a missing binary or one without execute permission.
type StartError struct {
	Path string
	Err  error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("start %s: %v", e.Path, e.Err)
}

func (e *StartError) Unwrap() error {
	return e.Err
}

const stderrTail = 512

func (f *FFmpeg) Run(ctx context.Context, input, output string) error {
	cmd := exec.CommandContext(ctx, f.Path, Args(input, output)...)

	var stderrBuf bytes.Buffer
	if f.Output != nil {
		cmd.Stderr = io.MultiWriter(&stderrBuf, f.Output)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Code: exitErr.ExitCode(), Stderr: tail(stderrBuf.String(), stderrTail)}
	}
	return &StartError{Path: f.Path, Err: err}
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
