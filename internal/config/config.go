// internal/config/config.go
package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port              string        `env:"PORT" envDefault:"8080"`
	GraphQLEndpoint   string        `env:"GRAPHQL_ENDPOINT" envDefault:"http://localhost:3001/graphql"`
	QRCodeBaseURL     string        `env:"QR_CODE_BASE_URL" envDefault:"http://localhost:3001/"`
	GraphQLTimeout    time.Duration `env:"GRAPHQL_TIMEOUT" envDefault:"10s"`
	HashPasswords     bool          `env:"HASH_PASSWORDS" envDefault:"true"`
	AMQPURL           string        `env:"AMQP_URL"`
	RegistrationQueue string        `env:"REGISTRATION_QUEUE" envDefault:"customer_registrations"`
	SeedFile          string        `env:"SEED_FILE" envDefault:"seed/customer_informations.json"`
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
