package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/handiism/yeahmusic/internal/model"
)

// Settings holds all configuration options.
type Settings struct {
	// Catalog
	APIBaseURL        string `json:"api_base_url"`
	RequestTimeoutSec int    `json:"request_timeout_sec"`

	// Session and logging
	SessionPath string `json:"session_path"`
	LogPath     string `json:"log_path"`
	LogLevel    string `json:"log_level"`

	// Playback
	TickIntervalMs int    `json:"tick_interval_ms"`
	PlayerCommand  string `json:"player_command"`
	ProbeCommand   string `json:"probe_command"`

	// Local library
	LibraryDir  string `json:"library_dir"`
	ScanWorkers int    `json:"scan_workers"`

	// Display
	CoverSize int `json:"cover_size"`

	// Playlist export
	PlaylistFormat string `json:"playlist_format"` // m3u, pls, wpl, zpl
	M3UExtended    bool   `json:"m3u_extended"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	dir := appDir()
	return &Settings{
		APIBaseURL:        "http://localhost:8080",
		RequestTimeoutSec: 60,

		SessionPath: filepath.Join(dir, "session.json"),
		LogPath:     filepath.Join(dir, "yeahmusic.log"),
		LogLevel:    "info",

		TickIntervalMs: 250,
		PlayerCommand:  "ffplay",
		ProbeCommand:   "ffprobe",

		LibraryDir:  filepath.Join(homeDir, "Music"),
		ScanWorkers: 4,

		CoverSize: 16,

		PlaylistFormat: "m3u",
		M3UExtended:    true,
	}
}

// DefaultPath returns the settings file location under the user config
// directory.
func DefaultPath() string {
	return filepath.Join(appDir(), "settings.json")
}

func appDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "yeahmusic")
}

// Load reads settings from a JSON file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// TickInterval returns the playback progress tick period.
func (s *Settings) TickInterval() time.Duration {
	if s.TickIntervalMs <= 0 {
		return 250 * time.Millisecond
	}
	return time.Duration(s.TickIntervalMs) * time.Millisecond
}

// RequestTimeout returns the HTTP timeout for catalog requests.
func (s *Settings) RequestTimeout() time.Duration {
	if s.RequestTimeoutSec <= 0 {
		return 60 * time.Second
	}
	return time.Duration(s.RequestTimeoutSec) * time.Second
}

// Playlist returns the configured export format.
func (s *Settings) Playlist() model.PlaylistFormat {
	pf, _ := model.ParsePlaylistFormat(s.PlaylistFormat)
	return pf
}
