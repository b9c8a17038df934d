// Package config provides configuration management for yeahmusic.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Environment overrides, including a .env file
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Catalog at http://localhost:8080
//	// Playback through ffplay, ticking every 250ms
//	// Session and log files under the user config directory
//
// # Loading from File
//
//	settings, err := config.Load(config.DefaultPath())
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Environment
//
// LoadEnv applies YEAHMUSIC_* variables on top of the file settings:
//
//	config.LoadEnv(settings)           // reads ./.env first
//	config.LoadEnv(settings, "dev.env")
//
// # Saving Settings
//
//	settings.APIBaseURL = "https://music.example.com"
//	err := settings.Save(config.DefaultPath())
package config
