package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"harvester/pkg/domain"
	"harvester/pkg/serrors"
)

// Config represents the application configuration structure. It contains
// settings for the environment, search providers, crawl limits, fetching
// behavior and output.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// Harvest contains the crawl session related configurations
	Harvest struct {
		// Engines lists the search engines queried for each input query
		Engines []string `env:"HARVEST_ENGINES" env-default:"google,bing,duckduckgo" yaml:"engines"`
		// URLLimitPerQuery caps how many result URLs are taken from each engine per query
		URLLimitPerQuery int `env:"HARVEST_URL_LIMIT_PER_QUERY" env-default:"10" yaml:"urlLimitPerQuery"`
		// MaxPagesPerSession caps total pages fetched while processing one seed URL
		MaxPagesPerSession int `env:"HARVEST_MAX_PAGES_PER_SESSION" env-default:"5" yaml:"maxPagesPerSession"`
		// HostPageBudget caps pages fetched from a single host within a session
		HostPageBudget int `env:"HARVEST_HOST_PAGE_BUDGET" env-default:"3" yaml:"hostPageBudget"`
		// LinkLimit caps contact links discovered on each seed page
		LinkLimit int `env:"HARVEST_LINK_LIMIT" env-default:"4" yaml:"linkLimit"`
		// WorkerPoolSize sets how many page sessions run concurrently
		WorkerPoolSize int `env:"HARVEST_WORKER_POOL_SIZE" env-default:"5" yaml:"workerPoolSize"`
		// MetricsAddr, when non-empty, starts the debug listener on this address
		MetricsAddr string `env:"HARVEST_METRICS_ADDR" env-default:"" yaml:"metricsAddr"`
	} `yaml:"harvest"`

	// Fetch contains the page fetching related configurations
	Fetch struct {
		// Timeout bounds a single fetch attempt
		Timeout time.Duration `env:"FETCH_TIMEOUT" env-default:"15s" yaml:"timeout"`
		// MaxAttempts is the total number of tries for retryable failures
		MaxAttempts int `env:"FETCH_MAX_ATTEMPTS" env-default:"3" yaml:"maxAttempts"`
		// BaseDelay seeds the exponential backoff between attempts
		BaseDelay time.Duration `env:"FETCH_BASE_DELAY" env-default:"600ms" yaml:"baseDelay"`
		// MaxDelay caps the backoff between attempts
		MaxDelay time.Duration `env:"FETCH_MAX_DELAY" env-default:"10s" yaml:"maxDelay"`
		// PauseMin and PauseMax bound the politeness pause before each fetch.
		// A zero PauseMax disables pausing.
		PauseMin time.Duration `env:"FETCH_PAUSE_MIN" env-default:"1s" yaml:"pauseMin"`
		PauseMax time.Duration `env:"FETCH_PAUSE_MAX" env-default:"3s" yaml:"pauseMax"`
	} `yaml:"fetch"`

	// Output contains the result writing related configurations
	Output struct {
		// CSVPath is where the aggregated CSV is written
		CSVPath string `env:"OUTPUT_CSV_PATH" env-default:"results/emails.csv" yaml:"csvPath"`
		// XLSXPath, when non-empty, additionally writes an xlsx workbook
		XLSXPath string `env:"OUTPUT_XLSX_PATH" env-default:"" yaml:"xlsxPath"`
		// PerQueryDir, when non-empty, additionally writes one CSV per query
		PerQueryDir string `env:"OUTPUT_PER_QUERY_DIR" env-default:"" yaml:"perQueryDir"`
	} `yaml:"output"`
}

// Load receives the path for yaml config file and returns a filled Config struct.
func Load(configPath string) (*Config, error) {
	var cfg Config
	err := cleanenv.ReadConfig(configPath, &cfg)
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the configuration produced by the env-default tags alone,
// used when no config file is given.
func Default() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("could not read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects configurations the run cannot operate under.
func (cfg *Config) Validate() error {
	if len(cfg.Harvest.Engines) == 0 {
		return serrors.With(serrors.ErrConfig, "at least one engine is required")
	}
	for _, name := range cfg.Harvest.Engines {
		if _, err := domain.ParseEngine(name); err != nil {
			return err
		}
	}

	if cfg.Harvest.URLLimitPerQuery <= 0 {
		return serrors.With(serrors.ErrConfig, "urlLimitPerQuery must be positive")
	}
	if cfg.Harvest.MaxPagesPerSession <= 0 {
		return serrors.With(serrors.ErrConfig, "maxPagesPerSession must be positive")
	}
	if cfg.Harvest.WorkerPoolSize <= 0 {
		return serrors.With(serrors.ErrConfig, "workerPoolSize must be positive")
	}

	if cfg.Fetch.MaxAttempts <= 0 {
		return serrors.With(serrors.ErrConfig, "maxAttempts must be positive")
	}
	if cfg.Fetch.PauseMax < cfg.Fetch.PauseMin {
		return serrors.With(serrors.ErrConfig, "pauseMax must not be below pauseMin")
	}

	if cfg.Output.CSVPath == "" {
		return serrors.With(serrors.ErrConfig, "csvPath is required")
	}

	return nil
}

// Engines converts the configured engine names into domain engines. Validate
// has already checked them, so errors here are impossible in practice.
func (cfg *Config) Engines() ([]domain.Engine, error) {
	engines := make([]domain.Engine, 0, len(cfg.Harvest.Engines))
	for _, name := range cfg.Harvest.Engines {
		engine, err := domain.ParseEngine(name)
		if err != nil {
			return nil, err
		}
		engines = append(engines, engine)
	}

	return engines, nil
}
