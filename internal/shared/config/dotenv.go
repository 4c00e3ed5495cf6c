package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"

	"job-recommender/internal/shared/telemetry"
)

// loadEnvFiles loads KEY=VALUE pairs from the given files if they exist.
// Variables already set in the process environment win.
func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			telemetry.Warn("config.env_file_skipped", map[string]any{"path": path, "error": err.Error()})
		}
	}
}
