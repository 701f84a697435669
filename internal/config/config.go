package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type Config struct {
	// APIBaseURL is the root of the EventHub REST API.
	APIBaseURL string
	// StateDir holds the persisted session file.
	StateDir string
	// LogFile receives structured logs; stdout belongs to the TUI.
	LogFile string
}

func Load() *Config {
	// Optional .env next to the binary; real env wins.
	_ = godotenv.Load()

	stateDir := getEnv("EVENTHUB_STATE_DIR", defaultStateDir())

	return &Config{
		APIBaseURL: getEnv("EVENTHUB_API_URL", "http://localhost:8080"),
		StateDir:   stateDir,
		LogFile:    getEnv("EVENTHUB_LOG_FILE", filepath.Join(stateDir, "eventhub.log")),
	}
}

func defaultStateDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "eventhub")
	}
	return ".eventhub"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
