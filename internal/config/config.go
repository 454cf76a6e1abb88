package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/avstrong/stayquote/internal/booking"
	"github.com/avstrong/stayquote/internal/pricing"
)

var validate = validator.New()

type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Log       LogConfig       `yaml:"log"`
	Pricing   PricingConfig   `yaml:"pricing"`
	Limits    LimitsConfig    `yaml:"limits"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

type HTTPConfig struct {
	Host                     string   `yaml:"host"`
	Port                     int      `yaml:"port"                        validate:"min=1,max=65535"`
	ReadHeaderTimeoutSeconds int      `yaml:"read_header_timeout_seconds" validate:"min=1"`
	ShutdownTimeoutSeconds   int      `yaml:"shutdown_timeout_seconds"    validate:"min=1"`
	LivenessEndpoint         string   `yaml:"liveness_endpoint"           validate:"startswith=/"`
	AllowedOrigins           []string `yaml:"allowed_origins"`
}

type LogConfig struct {
	Level  string `yaml:"level"  validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// PricingConfig seeds the pricing snapshot at startup; administrators change
// it at runtime through the pricing API.
type PricingConfig struct {
	ExtraAdultNightlyCents int64 `yaml:"extra_adult_nightly_cents" validate:"gte=0,lte=100000000000"`
	ExtraChildNightlyCents int64 `yaml:"extra_child_nightly_cents" validate:"gte=0,lte=100000000000"`
	ChildFreeAge           int   `yaml:"child_free_age"            validate:"gte=0"`
	ServiceFeeCents        int64 `yaml:"service_fee_cents"         validate:"gte=0,lte=100000000000"`
}

type LimitsConfig struct {
	MinAdults           int   `yaml:"min_adults"             validate:"min=1"`
	MaxAdults           int   `yaml:"max_adults"             validate:"gtefield=MinAdults,lte=100"`
	MaxChildren         int   `yaml:"max_children"           validate:"gte=0,lte=100"`
	MaxChildAge         int   `yaml:"max_child_age"          validate:"gte=0"`
	MaxNights           int   `yaml:"max_nights"             validate:"min=1,lte=3650"`
	MaxNightlyRateCents int64 `yaml:"max_nightly_rate_cents" validate:"min=1,lte=100000000000"`
}

type SchedulerConfig struct {
	Enabled       bool   `yaml:"enabled"`
	CompleteStays string `yaml:"complete_stays"`
}

func Default() *Config {
	p := pricing.DefaultConfig()
	l := booking.DefaultLimits()

	return &Config{
		HTTP: HTTPConfig{
			Host:                     "localhost",
			Port:                     8092, //nolint:gomnd
			ReadHeaderTimeoutSeconds: 20,   //nolint:gomnd
			ShutdownTimeoutSeconds:   4,    //nolint:gomnd
			LivenessEndpoint:         "/liveness",
			AllowedOrigins:           []string{"http://localhost:5173"},
		},
		Log: LogConfig{Level: "info", Format: "text"},
		Pricing: PricingConfig{
			ExtraAdultNightlyCents: int64(p.ExtraAdultNightly),
			ExtraChildNightlyCents: int64(p.ExtraChildNightly),
			ChildFreeAge:           p.ChildFreeAge,
			ServiceFeeCents:        int64(p.ServiceFee),
		},
		Limits: LimitsConfig{
			MinAdults:           l.MinAdults,
			MaxAdults:           l.MaxAdults,
			MaxChildren:         l.MaxChildren,
			MaxChildAge:         l.MaxChildAge,
			MaxNights:           l.MaxNights,
			MaxNightlyRateCents: int64(l.MaxNightlyRate),
		},
		Scheduler: SchedulerConfig{
			Enabled:       true,
			CompleteStays: "0 0 3 * * *",
		},
	}
}

// Load reads the YAML file at path over the defaults. A missing file is not
// an error: the defaults plus environment overrides are used.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)

	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := cfg.overrideWithEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) overrideWithEnv() error {
	if val := os.Getenv("HTTP_HOST"); val != "" {
		c.HTTP.Host = val
	}

	if val := os.Getenv("HTTP_PORT"); val != "" {
		port, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("parse HTTP_PORT %q: %w", val, err)
		}

		c.HTTP.Port = port
	}

	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}

	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	return nil
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	return nil
}

func (c *Config) PricingSnapshot() pricing.Config {
	return pricing.Config{
		ExtraAdultNightly: pricing.Cents(c.Pricing.ExtraAdultNightlyCents),
		ExtraChildNightly: pricing.Cents(c.Pricing.ExtraChildNightlyCents),
		ChildFreeAge:      c.Pricing.ChildFreeAge,
		ServiceFee:        pricing.Cents(c.Pricing.ServiceFeeCents),
	}
}

func (c *Config) BookingLimits() booking.Limits {
	return booking.Limits{
		MinAdults:      c.Limits.MinAdults,
		MaxAdults:      c.Limits.MaxAdults,
		MaxChildren:    c.Limits.MaxChildren,
		MaxChildAge:    c.Limits.MaxChildAge,
		MaxNights:      c.Limits.MaxNights,
		MaxNightlyRate: pricing.Cents(c.Limits.MaxNightlyRateCents),
	}
}
