package config

import (
	"os"
	"path/filepath"
	"strings"
)

const defaultCommand = `find .`

// Default returns the repository default configuration. The source command
// honours the SIFT_DEFAULT_COMMAND environment fallback.
func Default() Config {
	command := defaultCommand
	if env, ok := os.LookupEnv("SIFT_DEFAULT_COMMAND"); ok && strings.TrimSpace(env) != "" {
		command = env
	}

	return Config{
		Finder: Finder{
			Command:      command,
			Shell:        "sh",
			ReserveLines: 0,
		},
		Ranking: Ranking{
			Tiebreak: []string{"score", "begin", "end"},
		},
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath(),
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
	}
}

func defaultHistoryPath() string {
	if base, ok := os.LookupEnv("XDG_DATA_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "sift", "history.db")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.local/share/sift/history.db"
	}
	return filepath.Join(home, ".local", "share", "sift", "history.db")
}
