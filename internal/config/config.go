package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// EnvPrefix prefixes every analyzer variable, e.g. RESP_MIN_ACTIVITIES.
const EnvPrefix = "RESP"

// AppConfig holds the complete application configuration.
type AppConfig struct {
	MinActivities         int     `envconfig:"MIN_ACTIVITIES" default:"50"`
	LocationMinActivities int     `envconfig:"LOCATION_MIN_ACTIVITIES" default:"5"`
	Lambda                float64 `envconfig:"PERT_LAMBDA" default:"4"`
	SimulationSize        int     `envconfig:"SIM_SIZE" default:"10000"`
	Seed                  uint64  `envconfig:"SIM_SEED" default:"0"`
	OutputDir             string  `envconfig:"OUTPUT_DIR"`
	EnableMermaidCharts   bool    `envconfig:"ENABLE_MERMAID_CHARTS" default:"false"`

	DataPath string `ignored:"true"`
	LogDir   string `ignored:"true"`
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables")
	}

	// 3. Bind RESP_* variables
	cfg := &AppConfig{}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	// 4. Resolve paths
	cfg.DataPath = os.Getenv("DATA_PATH")
	if cfg.DataPath == "" {
		if exeDir != "" {
			cfg.DataPath = exeDir
		} else {
			cfg.DataPath = "."
		}
	}
	cfg.LogDir = os.Getenv("LOGS_FOLDER")
	if cfg.LogDir == "" {
		cfg.LogDir = filepath.Join(cfg.DataPath, "logs")
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}

	return cfg, nil
}
