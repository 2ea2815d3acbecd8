// Package config loads the service configuration from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/talgya/tradewinds/internal/trade"
)

// Config is the tradewindsd configuration.
type Config struct {
	ListenPort  int      `yaml:"listen_port"`
	DBPath      string   `yaml:"db_path"`
	DatasetDir  string   `yaml:"dataset_dir"`
	AdminKey    string   `yaml:"admin_key"`
	Season      string   `yaml:"season"`
	Seed        int64    `yaml:"seed"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		ListenPort: 8420,
		DBPath:     "data/tradewinds.db",
		DatasetDir: "datasets",
		Season:     string(trade.SeasonSpring),
	}
}

// Load reads a YAML config file over the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}

	if _, err := trade.ParseSeason(cfg.Season); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.ListenPort <= 0 || cfg.ListenPort > 65535 {
		return cfg, fmt.Errorf("%s: invalid listen_port %d", path, cfg.ListenPort)
	}
	return cfg, nil
}
