package cmd

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"convertts/internal/config"
	"convertts/internal/converter"
	"convertts/internal/logging"
	"convertts/internal/recordlog"
	"convertts/internal/runner"
	"convertts/internal/scanner"
	"convertts/internal/tui"
	"convertts/internal/worker"
)

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Verbose)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	logger = logging.WithRun(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Getting list of files to work on ...")
	fmt.Fprintln(out)

	q, _ := scanner.NewWalker(cfg, logger).Walk(args)

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Number of files = %d\n", q.Len())
	fmt.Fprintln(out)
	if q.Len() == 0 {
		return nil
	}

	if _, err := exec.LookPath(cfg.ConverterPath); err != nil {
		return fmt.Errorf("converter not available: %w", err)
	}

	records, err := recordlog.Open(cfg.LogFileName)
	if err != nil {
		return err
	}
	defer records.Close()

	var toolOutput io.Writer
	if cfg.Verbose {
		toolOutput = cmd.ErrOrStderr()
	}
	w := worker.New(cfg, converter.NewFFmpeg(cfg.ConverterPath, toolOutput), records, logger)

	summary, runErr := runner.New(w, newWaiter(cfg), logger).Run(ctx, q)

	fmt.Fprintln(out, tui.RenderSummary(summaryRows(summary)))
	if summary.Cancelled {
		fmt.Fprintf(out, "Cancelled; %d file(s) left unconverted.\n", summary.Dropped)
	}
	return runErr
}

// newWaiter only shows the interactive prompt when someone can answer it.
func newWaiter(cfg config.Config) runner.Waiter {
	fd := os.Stdin.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return tui.PromptWaiter{Timeout: cfg.WaitTimeout, Interval: cfg.PollInterval}
	}
	return tui.TimerWaiter{Timeout: cfg.WaitTimeout}
}

func summaryRows(s runner.Summary) []tui.SummaryRow {
	rows := []tui.SummaryRow{
		{Label: "Files queued", Value: fmt.Sprintf("%d", s.Queued)},
		{Label: "Converted", Value: fmt.Sprintf("%d", s.Converted)},
		{Label: "Skipped (not found)", Value: fmt.Sprintf("%d", s.Skipped)},
		{Label: "Failed", Value: fmt.Sprintf("%d", s.Failed)},
	}
	if s.Dropped > 0 {
		rows = append(rows, tui.SummaryRow{Label: "Not started", Value: fmt.Sprintf("%d", s.Dropped)})
	}
	if s.Converted > 0 {
		rows = append(rows,
			tui.SummaryRow{Label: "Input size", Value: humanize.Bytes(uint64(s.BytesIn))},
			tui.SummaryRow{Label: "Output size", Value: humanize.Bytes(uint64(s.BytesOut))},
		)
		if saved := s.SpaceSaved(); saved >= 0 {
			rows = append(rows, tui.SummaryRow{Label: "Space saved", Value: humanize.Bytes(uint64(saved))})
		} else {
			rows = append(rows, tui.SummaryRow{Label: "Space grown", Value: humanize.Bytes(uint64(-saved))})
		}
	}
	return rows
}
