package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the service settings read from the environment.
type Config struct {
	Addr            string        `env:"MESSAGES_ADDR"             envDefault:":8080" validate:"required"`
	SeedFile        string        `env:"MESSAGES_SEED_FILE"`
	ReadTimeout     time.Duration `env:"MESSAGES_READ_TIMEOUT"     envDefault:"5s"    validate:"gt=0"`
	WriteTimeout    time.Duration `env:"MESSAGES_WRITE_TIMEOUT"    envDefault:"5s"    validate:"gt=0"`
	ShutdownTimeout time.Duration `env:"MESSAGES_SHUTDOWN_TIMEOUT" envDefault:"10s"   validate:"gt=0"`
	CORSEnabled     bool          `env:"MESSAGES_CORS_ENABLED"     envDefault:"true"`
	Commit          string        `env:"MESSAGES_COMMIT"`
	BuildTime       string        `env:"MESSAGES_BUILD_TIME"`

	LogLevel   string `env:"LOG_LEVEL"   envDefault:"info" validate:"oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`
	LogFormat  string `env:"LOG_FORMAT"  envDefault:"text" validate:"oneof=text json"`
	LogColored bool   `env:"LOG_COLORED" envDefault:"true"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads the optional dotenv files (".env" when none are given), then
// parses and validates the environment. Variables already set in the
// environment win over dotenv values.
func Load(dotenvFiles ...string) (Config, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
