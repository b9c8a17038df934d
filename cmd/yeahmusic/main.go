package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/handiism/yeahmusic/internal/catalog"
	"github.com/handiism/yeahmusic/internal/config"
	"github.com/handiism/yeahmusic/internal/http"
	"github.com/handiism/yeahmusic/internal/logger"
)

var (
	configPath string
	verbose    bool

	settings *config.Settings
)

var rootCmd = &cobra.Command{
	Use:   "yeahmusic",
	Short: "Local lyrics, library and playlist tools for yeahmusic",
	Long: `yeahmusic works with lyrics files, local audio libraries and the catalog
from the command line. For the interactive client, use yeahmusic-tui.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		settings, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		config.LoadEnv(settings)

		level := settings.LogLevel
		if verbose {
			level = logger.DebugLevel
		}
		return logger.Init(logger.Config{Level: level, Path: settings.LogPath, Console: verbose})
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "path to the settings file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr at debug level")
}

// newCatalog builds a catalog client from the loaded settings.
func newCatalog() *catalog.Service {
	return catalog.New(http.NewClient(settings.APIBaseURL, http.WithTimeout(settings.RequestTimeout())))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		if ctx.Err() != nil {
			fmt.Fprintln(os.Stderr, "Interrupted.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", catalog.Message(err))
		os.Exit(1)
	}
}
