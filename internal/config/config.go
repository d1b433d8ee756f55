package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v10"
)

const (
	ResultsModeStrict  = "strict"
	ResultsModePartial = "partial"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort          string `env:"HTTP_PORT" envDefault:"8080"`
	ResultsMode       string `env:"RESULTS_MODE" envDefault:"strict"`
	CatalogPath       string `env:"CATALOG_PATH"`
	LogLevel          string `env:"LOG_LEVEL" envDefault:"info"`
	RedisAddr         string `env:"REDIS_ADDR"`
	RedisPassword     string `env:"REDIS_PASSWORD"`
	RedisDB           int    `env:"REDIS_DB" envDefault:"0"`
	SessionRateLimit  int    `env:"SESSION_RATE_LIMIT" envDefault:"20"`
	SessionRateWindow int    `env:"SESSION_RATE_WINDOW_SECONDS" envDefault:"60"`
	SessionTTLMinutes int    `env:"SESSION_TTL_MINUTES" envDefault:"120"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate normaliza y verifica los valores que no cubren los tags.
func (c *Config) Validate() error {
	c.ResultsMode = strings.ToLower(strings.TrimSpace(c.ResultsMode))
	switch c.ResultsMode {
	case "":
		c.ResultsMode = ResultsModeStrict
	case ResultsModeStrict, ResultsModePartial:
	default:
		return fmt.Errorf("invalid RESULTS_MODE %q (want %q or %q)", c.ResultsMode, ResultsModeStrict, ResultsModePartial)
	}
	return nil
}
