// Package config loads the application configuration from an optional YAML
// file with environment-variable overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nbelkacem/gestia/internal/llm"
)

// Config holds everything the binary needs to run.
type Config struct {
	// ListenAddr is the HTTP bind address for the serve command.
	ListenAddr string `yaml:"listen_addr"`
	// DBPath is the SQLite database file, or ":memory:".
	DBPath string `yaml:"db_path"`
	// Sigil is the command prefix recognized by the chat router.
	Sigil string `yaml:"sigil"`

	LLM llm.Config `yaml:"-"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		ListenAddr: ":8080",
		DBPath:     defaultDBPath(),
		Sigil:      "/",
		LLM:        llm.DefaultConfig(),
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "gestia.db"
	}
	return home + "/.gestia/gestia.db"
}

// Load builds the configuration: defaults, then the YAML file at path (if
// any), then GESTIA_* environment variables. The LLM section is env-only.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if v := os.Getenv("GESTIA_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("GESTIA_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("GESTIA_SIGIL"); v != "" {
		cfg.Sigil = v
	}

	cfg.LLM = llm.LoadConfig()

	return cfg, nil
}
