package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/handiism/yeahmusic/internal/audio"
	ioutils "github.com/handiism/yeahmusic/internal/io"
	"github.com/handiism/yeahmusic/internal/model"
)

var (
	exportFormat string
	exportDir    string
	exportAlbum  bool
)

var playlistCmd = &cobra.Command{
	Use:   "playlist",
	Short: "Export catalog playlists",
}

var playlistExportCmd = &cobra.Command{
	Use:   "export <playlist-id>",
	Short: "Write a catalog playlist (or album) as an m3u, pls, wpl or zpl file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := exportFormat
		if name == "" {
			name = settings.PlaylistFormat
		}
		format, ok := model.ParsePlaylistFormat(name)
		if !ok {
			return fmt.Errorf("unknown playlist format %q (use m3u, pls, wpl or zpl)", name)
		}

		kind := model.PagePlaylist
		if exportAlbum {
			kind = model.PageAlbum
		}

		svc := newCatalog()
		page, err := svc.FetchPage(cmd.Context(), kind, args[0])
		if err != nil {
			return err
		}

		creator := audio.NewPlaylistCreator(format, settings.M3UExtended, svc.Resolve)
		path := filepath.Join(exportDir, page.FileName(format))
		if err := ioutils.WriteFile(cmd.Context(), path, []byte(creator.CreatePlaylist(page))); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d tracks to %s\n", len(page.Tracks), path)
		return nil
	},
}

func init() {
	playlistExportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "m3u, pls, wpl or zpl (default from settings)")
	playlistExportCmd.Flags().StringVarP(&exportDir, "output", "o", ".", "directory to write the file to")
	playlistExportCmd.Flags().BoolVar(&exportAlbum, "album", false, "treat the id as an album")
	playlistCmd.AddCommand(playlistExportCmd)
	rootCmd.AddCommand(playlistCmd)
}
