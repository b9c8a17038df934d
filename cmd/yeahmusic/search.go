package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/handiism/yeahmusic/internal/catalog"
	"github.com/handiism/yeahmusic/internal/lyrics"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search catalog tracks by title or artist",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		tracks, err := newCatalog().Search(cmd.Context(), query)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(tracks) == 0 {
			if len([]rune(strings.TrimSpace(query))) < catalog.MinQueryLen {
				fmt.Fprintf(out, "Queries need at least %d characters.\n", catalog.MinQueryLen)
				return nil
			}
			fmt.Fprintln(out, "No matches.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tARTIST\tLENGTH\tLYRICS")
		for _, t := range tracks {
			kind := "-"
			switch m := lyrics.Parse(t.Lyrics); {
			case lyrics.IsKaraoke(m):
				kind = "timed"
			case t.HasLyrics():
				kind = "plain"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Title, t.Artist, lyrics.FormatClock(t.Duration), kind)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
