package app

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/tastebook-backend/internal/platform/envutil"
)

// Config is env-first: defaults, then the optional CONFIG_FILE yaml, then
// environment variables win.
type Config struct {
	Mode string `yaml:"mode"`
	Port string `yaml:"port"`

	MediaRoot    string `yaml:"media_root"`
	MediaBaseURL string `yaml:"media_base_url"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Mode:         "dev",
		Port:         "8080",
		MediaRoot:    "./media",
		MediaBaseURL: "/media",
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.Mode = envutil.Str("APP_MODE", cfg.Mode)
	cfg.Port = envutil.Str("PORT", cfg.Port)
	cfg.MediaRoot = envutil.Str("MEDIA_ROOT", cfg.MediaRoot)
	cfg.MediaBaseURL = envutil.Str("MEDIA_BASE_URL", cfg.MediaBaseURL)
	return cfg, nil
}
