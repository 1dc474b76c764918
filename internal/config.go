package internal

import (
	"log"
	"os"
	"strconv"

	"github.com/rm-hull/dmi-tools/internal/png/stage"
)

const (
	envResizeBackend = "DMI_RESIZE_BACKEND"
	envApiPort       = "DMI_API_PORT"
	defaultApiPort   = 8080
)

type Config struct {
	ResizeBackend stage.Backend
	Port          int
}

// LoadConfig reads settings from the environment (and so from .env, once
// godotenv has loaded it). Bad values are logged and replaced by defaults.
func LoadConfig() Config {
	cfg := Config{
		ResizeBackend: stage.ParseBackend(os.Getenv(envResizeBackend)),
		Port:          defaultApiPort,
	}

	if raw := os.Getenv(envApiPort); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port < 1 || port > 65535 {
			log.Printf("Ignoring invalid %s=%q, using %d", envApiPort, raw, defaultApiPort)
		} else {
			cfg.Port = port
		}
	}

	return cfg
}
