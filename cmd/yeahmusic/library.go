package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/handiism/yeahmusic/internal/library"
)

var listEntries bool

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Work with a local audio library",
}

var libraryScanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "Report which local audio files carry time-tagged lyrics",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := settings.LibraryDir
		if len(args) == 1 {
			root = args[0]
		}

		bar := progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("Scanning"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)

		var scanner *library.Scanner
		scanner = library.NewScanner(settings.ScanWorkers, func(event library.ProgressEvent) {
			switch event.Level {
			case library.LevelInfo:
				_, total := scanner.Progress()
				bar.ChangeMax(int(total))
			case library.LevelVerbose:
				_ = bar.Add(1)
			case library.LevelError:
				_ = bar.Add(1)
				if verbose {
					fmt.Fprintln(os.Stderr, "\n"+event.Message)
				}
			}
		})

		report, err := scanner.Scan(cmd.Context(), root)
		_ = bar.Finish()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if listEntries {
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "LYRICS\tLINES\tTRACK")
			for _, e := range report.Entries {
				fmt.Fprintf(w, "%s\t%d\t%s\n", e.Kind, e.Lines, e.DisplayName())
			}
			w.Flush()
			fmt.Fprintln(out)
		}

		fmt.Fprintf(out, "%d files in %s\n", len(report.Entries)+report.Failed, root)
		fmt.Fprintf(out, "  time-tagged lyrics: %d\n", report.Karaoke)
		fmt.Fprintf(out, "  plain lyrics:       %d\n", report.Static)
		fmt.Fprintf(out, "  no lyrics:          %d\n", report.Missing)
		if report.Failed > 0 {
			fmt.Fprintf(out, "  unreadable:         %d\n", report.Failed)
		}
		return nil
	},
}

func init() {
	libraryScanCmd.Flags().BoolVarP(&listEntries, "list", "l", false, "list every file with its lyrics kind")
	libraryCmd.AddCommand(libraryScanCmd)
	rootCmd.AddCommand(libraryCmd)
}
