package configs

import (
	"flag"
	"os"

	"github.com/devSobrinho/socket-io-backend/internal/infrastructure/env"
)

// DetermineConfigPath resolves the config file from the --config flag,
// the SOCKETIO_CONFIG env var, or a few conventional locations. An empty
// result is fine; Load falls back to defaults.
func DetermineConfigPath() string {
	var configPath string

	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	if configPath == "" {
		configPath = env.GetString("SOCKETIO_CONFIG", "")
	}

	if configPath == "" {
		candidates := []string{
			"./config.yaml",
			"./config.yml",
			"/etc/socket-io-backend/config.yaml",
			"/app/config.yaml", // common in Docker
		}

		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				configPath = p
				break
			}
		}
	}

	return configPath
}
