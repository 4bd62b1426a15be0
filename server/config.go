package server

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the settings of the HTTP service.
type Config struct {
	Addr string `yaml:"addr"`
	// DefaultImageSize is the side, in pixels, of the images rendered
	// when the request does not give one.
	DefaultImageSize int `yaml:"defaultImageSize"`
	// MaxImageSize bounds the width and height of rendered images.
	MaxImageSize int `yaml:"maxImageSize"`
	// MaxFeather bounds the blur of rendered gradients, in user units.
	MaxFeather float64 `yaml:"maxFeather"`
	// MaxSessions bounds the number of live editing sessions.
	MaxSessions int `yaml:"maxSessions"`
	// SessionTTL is the idle time after which a session is dropped.
	SessionTTL   time.Duration `yaml:"sessionTTL"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
}

// DefaultConfig returns the settings used for missing fields.
func DefaultConfig() Config {
	return Config{
		Addr:             ":8080",
		DefaultImageSize: 512,
		MaxImageSize:     4096,
		MaxFeather:       50,
		MaxSessions:      1000,
		SessionTTL:       time.Hour,
		ReadTimeout:      10 * time.Second,
		WriteTimeout:     30 * time.Second,
	}
}

// LoadConfig reads a YAML configuration file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("server: reading config: %w", err)
	}
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("server: parsing config %s: %w", path, err)
	}
	if err = cfg.check(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (cfg Config) check() error {
	switch {
	case cfg.DefaultImageSize <= 0:
		return fmt.Errorf("server: defaultImageSize must be positive, got %d", cfg.DefaultImageSize)
	case cfg.MaxImageSize < cfg.DefaultImageSize:
		return fmt.Errorf("server: maxImageSize (%d) is below defaultImageSize (%d)", cfg.MaxImageSize, cfg.DefaultImageSize)
	case !(cfg.MaxFeather >= 0):
		return fmt.Errorf("server: maxFeather must not be negative, got %v", cfg.MaxFeather)
	case cfg.MaxSessions <= 0:
		return fmt.Errorf("server: maxSessions must be positive, got %d", cfg.MaxSessions)
	case cfg.SessionTTL <= 0:
		return fmt.Errorf("server: sessionTTL must be positive, got %s", cfg.SessionTTL)
	}
	return nil
}
