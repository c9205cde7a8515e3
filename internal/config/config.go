package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Etesalat"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Ledger struct {
		// Credit pricing policy: debt_amortization or percentage_split.
		Policy string `envconfig:"CREDIT_POLICY" default:"debt_amortization"`
	}

	Storage struct {
		// file keeps the ledger in local JSON blobs, postgres uses the DB below.
		Driver string `envconfig:"STORAGE_DRIVER" default:"file"`
		Dir    string `envconfig:"STORAGE_DIR" default:"data"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"etesalat"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Export struct {
		Dir string `envconfig:"EXPORT_DIR" default:"export"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
