package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config/config.yaml"

// Config is shared by both binaries. Section fields are read from
// <SECTION>_<FIELD> environment variables, e.g. SERVER_PORT or GEOCODE_API_KEY.
type Config struct {
	App     AppConfig     `yaml:"app"`
	Server  ServerConfig  `yaml:"server"`
	Weather WeatherConfig `yaml:"weather"`
	Geocode GeocodeConfig `yaml:"geocode"`
	Storage StorageConfig `yaml:"storage"`
	Client  ClientConfig  `yaml:"client"`
	Log     LogConfig     `yaml:"log"`
	Sentry  SentryConfig  `yaml:"sentry"`
}

type AppConfig struct {
	Name    string `yaml:"name" envconfig:"APP_NAME"`
	Version string `yaml:"version" envconfig:"APP_VERSION"`
	Env     string `yaml:"env" envconfig:"APP_ENV"`
}

type ServerConfig struct {
	Port            string        `yaml:"port" envconfig:"SERVER_PORT"`
	BodyLimit       int           `yaml:"body_limit" envconfig:"SERVER_BODY_LIMIT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SERVER_SHUTDOWN_TIMEOUT"`
}

type WeatherConfig struct {
	BaseURL   string        `yaml:"base_url" envconfig:"WEATHER_BASE_URL"`
	Timeout   time.Duration `yaml:"timeout" envconfig:"WEATHER_TIMEOUT"`
	RateLimit float64       `yaml:"rate_limit" envconfig:"WEATHER_RATE_LIMIT"`
	Burst     int           `yaml:"burst" envconfig:"WEATHER_BURST"`
	CacheTTL  time.Duration `yaml:"cache_ttl" envconfig:"WEATHER_CACHE_TTL"`
}

type GeocodeConfig struct {
	BaseURL string `yaml:"base_url" envconfig:"GEOCODE_BASE_URL"`
	APIKey  string `yaml:"api_key,omitempty" envconfig:"GEOCODE_API_KEY"`
}

type StorageConfig struct {
	Driver string `yaml:"driver" envconfig:"STORAGE_DRIVER"`
	DSN    string `yaml:"dsn" envconfig:"STORAGE_DSN"`
}

// ClientConfig drives cmd/journal. The journal and weather hosts may differ.
type ClientConfig struct {
	JournalURL      string  `yaml:"journal_url" envconfig:"CLIENT_JOURNAL_URL"`
	WeatherURL      string  `yaml:"weather_url" envconfig:"CLIENT_WEATHER_URL"`
	Timezone        string  `yaml:"timezone" envconfig:"CLIENT_TIMEZONE"`
	Latitude        float64 `yaml:"latitude" envconfig:"CLIENT_LATITUDE"`
	Longitude       float64 `yaml:"longitude" envconfig:"CLIENT_LONGITUDE"`
	LocationGranted bool    `yaml:"location_granted" envconfig:"CLIENT_LOCATION_GRANTED"`
}

type LogConfig struct {
	Level string `yaml:"level" envconfig:"LOG_LEVEL"`
}

type SentryConfig struct {
	DSN   string `yaml:"dsn" envconfig:"SENTRY_DSN"`
	Debug bool   `yaml:"debug" envconfig:"SENTRY_DEBUG"`
}

var storageDrivers = []string{"memory", "sqlite", "postgres"}

// Default is the configuration before any file or environment is applied.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:    "weather-journal",
			Version: "1.0.0",
			Env:     "development",
		},
		Server: ServerConfig{
			Port:            "5000",
			BodyLimit:       1024 * 1024,
			ShutdownTimeout: 30 * time.Second,
		},
		Weather: WeatherConfig{
			BaseURL:   "https://api.open-meteo.com/v1/forecast",
			Timeout:   10 * time.Second,
			RateLimit: 5,
			Burst:     5,
			CacheTTL:  10 * time.Minute,
		},
		Geocode: GeocodeConfig{
			BaseURL: "https://maps.googleapis.com/maps/api/geocode/json",
		},
		Storage: StorageConfig{
			Driver: "sqlite",
			DSN:    "weather-journal.db",
		},
		Client: ClientConfig{
			JournalURL:      "http://127.0.0.1:5000",
			WeatherURL:      "http://127.0.0.1:5000",
			LocationGranted: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// NewConfig loads .env, then config/config.yaml, then the environment.
func NewConfig() (*Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	return Load(DefaultPath)
}

// Load applies the YAML file at path (skipped when absent) and environment overrides on top of Default.
func Load(path string) (*Config, error) {
	cnf := Default()

	if yamlData, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(yamlData, cnf); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := envconfig.Process("", cnf); err != nil {
		return nil, fmt.Errorf("error environment variable parsing: %w", err)
	}

	if err := cnf.Validate(); err != nil {
		return nil, err
	}

	return cnf, nil
}

func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.App.Name) == "" {
		problems = append(problems, "app.name is required")
	}
	if strings.TrimSpace(c.Server.Port) == "" {
		problems = append(problems, "server.port is required")
	}
	if strings.TrimSpace(c.Weather.BaseURL) == "" {
		problems = append(problems, "weather.base_url is required")
	}
	if c.Weather.RateLimit < 0 || c.Weather.Burst < 0 {
		problems = append(problems, "weather.rate_limit and weather.burst must not be negative")
	}
	if !c.knownDriver() {
		problems = append(problems, fmt.Sprintf("storage.driver must be one of %s", strings.Join(storageDrivers, ", ")))
	}
	if c.Storage.Driver != "memory" && strings.TrimSpace(c.Storage.DSN) == "" {
		problems = append(problems, "storage.dsn is required")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func (c *Config) knownDriver() bool {
	for _, d := range storageDrivers {
		if c.Storage.Driver == d {
			return true
		}
	}
	return false
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
