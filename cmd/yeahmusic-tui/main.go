package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/handiism/yeahmusic/internal/audio"
	"github.com/handiism/yeahmusic/internal/catalog"
	"github.com/handiism/yeahmusic/internal/config"
	"github.com/handiism/yeahmusic/internal/http"
	"github.com/handiism/yeahmusic/internal/logger"
	"github.com/handiism/yeahmusic/internal/model"
	"github.com/handiism/yeahmusic/internal/player"
	"github.com/handiism/yeahmusic/internal/session"
	"github.com/handiism/yeahmusic/internal/tui"
)

var (
	configPath string
	openLink   string
)

var rootCmd = &cobra.Command{
	Use:   "yeahmusic-tui",
	Short: "Terminal client for the yeahmusic catalog",
	Long: `Browse albums and playlists, play tracks with synchronized lyrics and
time lyrics by tapping along while a track plays.

Deep links open a view directly, for example --open "#album/42".`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", config.DefaultPath(), "path to the settings file")
	rootCmd.Flags().StringVar(&openLink, "open", "", `deep link to open, such as "#playlist/7" or "#edit-lyrics/12"`)
}

func run(ctx context.Context) error {
	settings, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	config.LoadEnv(settings)

	if err := logger.Init(logger.Config{Level: settings.LogLevel, Path: settings.LogPath}); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	svc := catalog.New(http.NewClient(settings.APIBaseURL, http.WithTimeout(settings.RequestTimeout())))
	out := audio.NewFFPlay(
		audio.WithPlayerCommand(settings.PlayerCommand),
		audio.WithProbeCommand(settings.ProbeCommand),
	)
	pm := player.NewManager(out, player.WithSourceResolver(func(t model.Track) string {
		return svc.Resolve(t.AudioURL)
	}))
	defer pm.Close()

	store := session.NewStore(settings.SessionPath)
	user, err := store.Load()
	if err != nil {
		logger.Warn("unreadable session, starting signed out", zap.String("path", store.Path()), zap.Error(err))
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	changes, err := store.Watch(ctx)
	if err != nil {
		logger.Warn("session watch unavailable", zap.Error(err))
	}

	logger.Info("starting tui", zap.String("api", settings.APIBaseURL), zap.Bool("signed_in", user != nil))
	return tui.Run(tui.Options{
		Settings:       settings,
		Catalog:        svc,
		Player:         pm,
		Session:        store,
		User:           user,
		SessionChanges: changes,
		Open:           openLink,
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
