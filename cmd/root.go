package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "convertts <dir>...",
	Short: "convertts - batch convert .ts recordings to .mp4 with ffmpeg",
	Long: "convertts walks each directory argument, queues every .ts file it finds and converts\n" +
		"them one at a time with ffmpeg. Files are renamed with an inproc- prefix while they are\n" +
		"being converted, and each attempt is appended to logfile.txt in the working directory.",
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE:         runConvert,
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
	rootCmd.SilenceErrors = true
}
