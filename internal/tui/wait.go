package tui

import (
	"context"
	"errors"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// PromptWaiter shows the cancel prompt between conversions.
type PromptWaiter struct {
	Timeout  time.Duration
	Interval time.Duration
	Input    io.Reader
	Output   io.Writer
}

func (w PromptWaiter) Wait(ctx context.Context, remaining int) (Decision, error) {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if w.Input != nil {
		opts = append(opts, tea.WithInput(w.Input))
	}
	if w.Output != nil {
		opts = append(opts, tea.WithOutput(w.Output))
	}

	final, err := tea.NewProgram(NewPrompt(remaining, w.Timeout, w.Interval), opts...).Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Continue, ctxErr
	}
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return Continue, err
	}

	if m, ok := final.(PromptModel); ok {
		return m.Decision(), nil
	}
	return Continue, nil
}

// TimerWaiter is used when stdin is not a terminal: nobody can answer the
// prompt, so it only keeps the pause between items.
type TimerWaiter struct {
	Timeout time.Duration
}

func (w TimerWaiter) Wait(ctx context.Context, _ int) (Decision, error) {
	if w.Timeout <= 0 {
		return Continue, ctx.Err()
	}
	timer := time.NewTimer(w.Timeout)
	defer timer.Stop()
	select {
	case <-timer.C:
		return Continue, nil
	case <-ctx.Done():
		return Continue, ctx.Err()
	}
}
