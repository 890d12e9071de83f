package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"fieldtrans/internal/locale"
)

const (
	AppName    = "fieldtrans"
	AppVersion = "1.0.0"
)

// DefaultCacheTTL is how long a resolved field value stays cached.
const DefaultCacheTTL = 30 * time.Minute

type Config struct {
	Addr            string        `env:"FIELDTRANS_ADDR" envDefault:":8080"`
	DataDir         string        `env:"FIELDTRANS_DATA_DIR" envDefault:"./data"`
	DBPath          string        `env:"FIELDTRANS_DB_PATH"`
	StaticDir       string        `env:"FIELDTRANS_STATIC_DIR" envDefault:"./static"`
	LogLevel        string        `env:"FIELDTRANS_LOG_LEVEL" envDefault:"info"`
	Languages       []string      `env:"FIELDTRANS_LANGUAGES" envSeparator:"," envDefault:"en-us,pt-br"`
	DefaultLanguage string        `env:"FIELDTRANS_DEFAULT_LANGUAGE"`
	CachePrefix     string        `env:"FIELDTRANS_CACHE_PREFIX" envDefault:"fieldtrans"`
	CacheTTL        time.Duration `env:"FIELDTRANS_CACHE_TTL" envDefault:"30m"`
	NodeID          int64         `env:"FIELDTRANS_NODE_ID" envDefault:"1"`
	AdminRate       float64       `env:"FIELDTRANS_ADMIN_RATE" envDefault:"20"`
	// CacheSweep is how often expired cache entries are dropped. Zero disables it.
	CacheSweep      time.Duration `env:"FIELDTRANS_CACHE_SWEEP" envDefault:"5m"`
}

// Load reads the configuration from the environment. A .env file in the
// working directory is honoured when present.
func Load() (Config, error) {
	// .env is optional; real deployments pass plain environment variables.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.DataDir, "fieldtrans.db")
	}
	c.DBPath = filepath.Clean(c.DBPath)
	c.DataDir = filepath.Clean(c.DataDir)
	if c.StaticDir != "" {
		c.StaticDir = filepath.Clean(c.StaticDir)
	}

	langs := make([]string, 0, len(c.Languages))
	seen := make(map[string]bool, len(c.Languages))
	for _, raw := range c.Languages {
		code := locale.Format(raw)
		if code == "" || seen[code] {
			continue
		}
		if !locale.Valid(code) {
			return fmt.Errorf("config: FIELDTRANS_LANGUAGES contains invalid language %q", raw)
		}
		seen[code] = true
		langs = append(langs, code)
	}
	if len(langs) == 0 {
		return errors.New("config: FIELDTRANS_LANGUAGES must list at least one language")
	}
	c.Languages = langs

	if strings.TrimSpace(c.DefaultLanguage) == "" {
		c.DefaultLanguage = langs[0]
	}
	c.DefaultLanguage = locale.Format(c.DefaultLanguage)
	if !seen[c.DefaultLanguage] {
		return fmt.Errorf("config: FIELDTRANS_DEFAULT_LANGUAGE %q is not in FIELDTRANS_LANGUAGES", c.DefaultLanguage)
	}

	if c.CacheTTL <= 0 {
		c.CacheTTL = DefaultCacheTTL
	}
	if c.NodeID < 0 || c.NodeID > 1023 {
		return fmt.Errorf("config: FIELDTRANS_NODE_ID must be between 0 and 1023, got %d", c.NodeID)
	}
	if c.AdminRate <= 0 {
		c.AdminRate = 20
	}
	return nil
}
