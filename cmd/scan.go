package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"convertts/internal/config"
	"convertts/internal/logging"
	"convertts/internal/scanner"
	"convertts/internal/tui"
	"convertts/pkg/mediautil"
)

var scanCmd = &cobra.Command{
	Use:   "scan <dir>...",
	Short: "List the files a run would convert without touching them",
	Long: "scan walks the directories exactly like a conversion run and prints the queue it would\n" +
		"build, along with any inproc- files left behind by an interrupted run.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()
		logger, err := logging.New(false)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		q, report := scanner.NewWalker(cfg, logger).Walk(args)
		out := cmd.OutOrStdout()

		rows := make([][]string, 0, q.Len())
		for i, path := range q.Items() {
			rows = append(rows, pendingRow(cfg, i+1, path))
		}
		fmt.Fprintln(out, renderTable(
			fmt.Sprintf("Queue (%d of %d files)", q.Len(), report.Examined),
			[]string{"#", "File", "Size", "Container", "Output"},
			rows, 1, 3,
		))

		if len(report.InProcess) > 0 {
			orphans := make([][]string, 0, len(report.InProcess))
			for _, path := range report.InProcess {
				orphans = append(orphans, []string{path, fileSize(path)})
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, scanWarnStyle.Render("Files left in process (not queued):"))
			fmt.Fprintln(out, renderTable("", []string{"File", "Size"}, orphans, 2))
		}

		for _, root := range report.InvalidRoots {
			fmt.Fprintln(out, scanErrorStyle.Render(fmt.Sprintf("%s is not a valid directory.", root)))
		}
		for _, err := range report.Errors {
			fmt.Fprintln(out, scanErrorStyle.Render(err.Error()))
		}
		return nil
	},
}

func pendingRow(cfg config.Config, n int, path string) []string {
	container := "?"
	if kind, err := mediautil.SniffFile(path); err == nil {
		container = kind.String()
	}

	dir, stem, _ := scanner.SplitPath(path)
	output := "new"
	if _, err := os.Stat(dir + stem + cfg.TargetExt); err == nil {
		output = "exists"
	}

	return []string{strconv.Itoa(n), path, fileSize(path), container, output}
}

func fileSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "-"
	}
	return humanize.Bytes(uint64(info.Size()))
}

var (
	scanWarnStyle  = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorWarn)
	scanErrorStyle = lipgloss.NewStyle().Foreground(tui.ColorError)
)

func init() {
	rootCmd.AddCommand(scanCmd)
}
