package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App      App
	HTTP     HTTP
	Postgres Postgres
	Redis    Redis
	Tasks    Tasks
	Email    Email
	Auth     Auth
	Cache    Cache
	Claim    Claim
	Log      Log
}

type App struct {
	Name                 string `env:"APP_NAME" envDefault:"wishly"`
	Version              string `env:"APP_VERSION" envDefault:"dev"`
	PublicURL            string `env:"APP_PUBLIC_URL" envDefault:"http://localhost:3000"`
	ProbeListenAddress   string `env:"PROBE_LISTEN_ADDRESS" envDefault:":8081"`
	MetricsListenAddress string `env:"METRICS_LISTEN_ADDRESS" envDefault:":9090"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load читает .env (если он есть) и переменные окружения.
func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	config.App.PublicURL = strings.TrimRight(config.App.PublicURL, "/")
	config.Email.From = correctNewlines(config.Email.From)

	return config, nil
}

func correctNewlines(s string) string {
	return strings.NewReplacer(`"`, "", `\n`, "\n").Replace(s)
}
