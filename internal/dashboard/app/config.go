package app

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/aussiebroadwan/holidash/pkg/cryptox"
	"github.com/caarlos0/env/v6"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverBolt     = "bolt"
	DriverPostgres = "postgres"
)

type Config struct {
	Env                 string        `env:"ENV"                   envDefault:"dev"`
	LogLevel            string        `env:"LOG_LEVEL"             envDefault:"info"`
	LogFormat           string        `env:"LOG_FORMAT"            envDefault:"json"`
	Port                int           `env:"PORT"                  envDefault:"8080" validate:"min=0,max=65535"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`

	StoreDriver  string `env:"DASH_STORE_DRIVER"  envDefault:"sqlite"        validate:"oneof=memory sqlite bolt postgres"`
	DatabaseFile string `env:"DASH_DATABASE_FILE" envDefault:"holidash.db"   validate:"required_if=StoreDriver sqlite"`
	BoltFile     string `env:"DASH_BOLT_FILE"     envDefault:"holidash.bolt" validate:"required_if=StoreDriver bolt"`
	PostgresDSN  string `env:"DASH_POSTGRES_DSN"                             validate:"required_if=StoreDriver postgres"`

	UserCount        int           `env:"DASH_USER_COUNT"        envDefault:"100"     validate:"min=1,max=5000"`
	UserSeed         string        `env:"DASH_USER_SEED"         envDefault:"usageai"`
	CredentialScheme string        `env:"DASH_CREDENTIAL_SCHEME" envDefault:"pbkdf2-sha512"`
	LoadTimeout      time.Duration `env:"DASH_LOAD_TIMEOUT"      envDefault:"10s"     validate:"gt=0"`
	ReloadInterval   time.Duration `env:"DASH_RELOAD_INTERVAL"   envDefault:"0s"      validate:"min=0"`
	HolidayYears     int           `env:"DASH_HOLIDAY_YEARS"     envDefault:"10"      validate:"min=1,max=100"`

	UpstreamTimeout time.Duration `env:"DASH_UPSTREAM_TIMEOUT" envDefault:"10s" validate:"gt=0"`
	RandomUserURL   string        `env:"DASH_RANDOMUSER_URL"   envDefault:"https://randomuser.me/api/"            validate:"url"`
	NagerURL        string        `env:"DASH_NAGER_URL"        envDefault:"https://date.nager.at/api/v3"          validate:"url"`
	HelloSalutURL   string        `env:"DASH_HELLOSALUT_URL"   envDefault:"https://hellosalut.stefanbohacek.dev/" validate:"url"`

	// LogOutput overrides where logs go. The CLI points it at stderr so
	// command output stays clean.
	LogOutput io.Writer `env:"-"`
}

// LoadConfig reads files into the environment (missing files are skipped;
// variables already set win), then parses the environment.
func LoadConfig(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field ranges and that the credential scheme is known.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := cryptox.NewHasher(c.CredentialScheme); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
