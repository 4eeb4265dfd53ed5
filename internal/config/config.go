package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
)

// Storage backends for the persisted user state.
const (
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

// Config holds the application configuration
type Config struct {
	CountriesAPIBaseURL  string        `env:"COUNTRIES_API_BASE_URL" envDefault:"https://restcountries.com/v3.1"`
	IndicatorsAPIBaseURL string        `env:"INDICATORS_API_BASE_URL" envDefault:"https://api.worldbank.org/v2"`
	CountryCacheTTL      time.Duration `env:"COUNTRY_CACHE_TTL" envDefault:"30m"`
	IndicatorCacheTTL    time.Duration `env:"INDICATOR_CACHE_TTL" envDefault:"60m"`
	IndicatorYears       int           `env:"INDICATOR_YEARS" envDefault:"10"`
	HTTPTimeout          time.Duration `env:"HTTP_TIMEOUT" envDefault:"0s"`
	HTTPRatePerSecond    float64       `env:"HTTP_RATE_PER_SECOND" envDefault:"10"`
	HTTPRateBurst        int           `env:"HTTP_RATE_BURST" envDefault:"10"`

	StateBackend    string `env:"STATE_BACKEND" envDefault:"sqlite"`
	StatePath       string `env:"STATE_PATH" envDefault:"country-explorer.db"`
	StateKey        string `env:"STATE_KEY" envDefault:"country-storage"`
	MongoURI        string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB         string `env:"MONGO_DB" envDefault:"country_explorer"`
	MongoCollection string `env:"MONGO_COLLECTION" envDefault:"user_state"`

	WarmInterval time.Duration `env:"WARM_INTERVAL" envDefault:"15m"`
	WorkerCount  int           `env:"WORKER_COUNT" envDefault:"5"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	// a missing .env is normal outside development
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, eris.Wrap(err, "config: parse env")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the data layer cannot run with.
func (c *Config) Validate() error {
	if c.CountriesAPIBaseURL == "" {
		return eris.New("config: COUNTRIES_API_BASE_URL is required")
	}
	if c.IndicatorsAPIBaseURL == "" {
		return eris.New("config: INDICATORS_API_BASE_URL is required")
	}
	if c.CountryCacheTTL <= 0 || c.IndicatorCacheTTL <= 0 {
		return eris.New("config: cache TTLs must be positive")
	}
	if c.IndicatorYears <= 0 {
		return eris.Errorf("config: invalid INDICATOR_YEARS %d", c.IndicatorYears)
	}
	if c.HTTPRatePerSecond <= 0 || c.HTTPRateBurst <= 0 {
		return eris.New("config: HTTP rate limit must be positive")
	}
	if c.WorkerCount <= 0 {
		return eris.Errorf("config: invalid WORKER_COUNT %d", c.WorkerCount)
	}
	switch c.StateBackend {
	case BackendSQLite:
		if c.StatePath == "" {
			return eris.New("config: STATE_PATH is required for the sqlite backend")
		}
	case BackendMongo:
		if c.MongoURI == "" || c.MongoDB == "" || c.MongoCollection == "" {
			return eris.New("config: MONGO_URI, MONGO_DB and MONGO_COLLECTION are required for the mongo backend")
		}
	case BackendMemory:
	default:
		return eris.Errorf("config: unknown STATE_BACKEND %q", c.StateBackend)
	}
	if c.StateKey == "" {
		return eris.New("config: STATE_KEY is required")
	}
	return nil
}
