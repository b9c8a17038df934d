package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override file settings.
const (
	EnvAPIURL      = "YEAHMUSIC_API_URL"
	EnvSession     = "YEAHMUSIC_SESSION"
	EnvLog         = "YEAHMUSIC_LOG"
	EnvLogLevel    = "YEAHMUSIC_LOG_LEVEL"
	EnvPlayer      = "YEAHMUSIC_PLAYER"
	EnvProbe       = "YEAHMUSIC_PROBE"
	EnvLibrary     = "YEAHMUSIC_LIBRARY"
	EnvTickMs      = "YEAHMUSIC_TICK_MS"
	EnvScanWorkers = "YEAHMUSIC_SCAN_WORKERS"
)

// LoadEnv overlays environment variables onto s. Files named in envFiles
// (default ".env") are read first without overriding variables already
// set; a missing file is not an error.
func LoadEnv(s *Settings, envFiles ...string) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}

	s.APIBaseURL = getEnv(EnvAPIURL, s.APIBaseURL)
	s.SessionPath = getEnv(EnvSession, s.SessionPath)
	s.LogPath = getEnv(EnvLog, s.LogPath)
	s.LogLevel = getEnv(EnvLogLevel, s.LogLevel)
	s.PlayerCommand = getEnv(EnvPlayer, s.PlayerCommand)
	s.ProbeCommand = getEnv(EnvProbe, s.ProbeCommand)
	s.LibraryDir = getEnv(EnvLibrary, s.LibraryDir)
	s.TickIntervalMs = getEnvInt(EnvTickMs, s.TickIntervalMs)
	s.ScanWorkers = getEnvInt(EnvScanWorkers, s.ScanWorkers)
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
