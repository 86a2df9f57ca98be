package meta

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"morris/game"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Search   SearchConfig   `yaml:"search"`
	Log      LogConfig      `yaml:"log"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Advisor  AdvisorConfig  `yaml:"advisor"`
	SelfPlay SelfPlayConfig `yaml:"selfplay"`
}

type SearchConfig struct {
	TimeBudget time.Duration `yaml:"time_budget"`
	MaxDepth   int           `yaml:"max_depth"`
	Weights    game.Weights  `yaml:"weights"`
}

type LogConfig struct {
	Level  string `yaml:"level"` // debug, info, warn, error or disabled
	Pretty bool   `yaml:"pretty"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"` // Serve /metrics here when set
}

type AdvisorConfig struct {
	Enabled bool          `yaml:"enabled"`
	Model   string        `yaml:"model"`
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Retries int           `yaml:"retries"`
	Timeout time.Duration `yaml:"timeout"`
}

type SelfPlayConfig struct {
	Games        int    `yaml:"games"`
	Parallel     int    `yaml:"parallel"`
	OpeningPlies int    `yaml:"opening_plies"`
	MaxTurns     int    `yaml:"max_turns"`
	OutDir       string `yaml:"out_dir"`
	Seed         uint64 `yaml:"seed"`
}

func DefaultConfig() Config {
	return Config{
		Search: SearchConfig{
			TimeBudget: TIME_BUDGET,
			MaxDepth:   MAX_DEPTH,
			Weights:    game.DefaultWeights,
		},
		Log: LogConfig{
			Level: "info",
		},
		Advisor: AdvisorConfig{
			Model:   ADVISOR_MODEL,
			Retries: ADVISOR_RETRIES,
			Timeout: ADVISOR_TIMEOUT,
		},
		SelfPlay: SelfPlayConfig{
			Games:        GAMES,
			Parallel:     PARALLEL_GAMES,
			OpeningPlies: OPENING_PLIES,
			MaxTurns:     MAX_TURNS,
			OutDir:       "experiments",
			Seed:         1,
		},
	}
}

// LoadConfig merges defaults, the YAML file at path (if any) and environment
// overrides, in increasing priority, then validates the result.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	if path != "" {
		if err := loadConfigFile(path, &config); err != nil {
			return config, fmt.Errorf("load config file: %w", err)
		}
	}

	loadConfigFromEnv(&config)

	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

func loadConfigFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func loadConfigFromEnv(config *Config) {
	if v := os.Getenv("MORRIS_TIME_BUDGET"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.Search.TimeBudget = d
		}
	}
	if v := os.Getenv("MORRIS_MAX_DEPTH"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			config.Search.MaxDepth = i
		}
	}
	if v := os.Getenv("MORRIS_LOG_LEVEL"); v != "" {
		config.Log.Level = v
	}
	if v := os.Getenv("MORRIS_METRICS_ADDR"); v != "" {
		config.Metrics.Addr = v
	}

	// Advisor
	if v := os.Getenv("MORRIS_ADVISOR_ENABLED"); v != "" {
		config.Advisor.Enabled = v == "true" || v == "1"
	}
	if v := os.Getenv("MORRIS_ADVISOR_MODEL"); v != "" {
		config.Advisor.Model = v
	}
	if v := os.Getenv("MORRIS_ADVISOR_BASE_URL"); v != "" {
		config.Advisor.BaseURL = v
	}
	if v := os.Getenv("API_KEY"); v != "" {
		config.Advisor.APIKey = v
	}
	if v := os.Getenv("MORRIS_ADVISOR_API_KEY"); v != "" {
		config.Advisor.APIKey = v
	}
}

// Validate checks that the configuration is usable. Errors wrap ErrInvalidConfig.
func (c Config) Validate() error {
	if c.Search.TimeBudget <= 0 {
		return fmt.Errorf("%w: search.time_budget must be > 0", ErrInvalidConfig)
	}
	if c.Search.MaxDepth < 1 {
		return fmt.Errorf("%w: search.max_depth must be >= 1", ErrInvalidConfig)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error", "disabled":
	default:
		return fmt.Errorf("%w: unknown log.level %q", ErrInvalidConfig, c.Log.Level)
	}
	if c.Advisor.Enabled {
		if c.Advisor.APIKey == "" {
			return fmt.Errorf("%w: advisor.api_key is required when the advisor is enabled", ErrInvalidConfig)
		}
		if c.Advisor.Model == "" {
			return fmt.Errorf("%w: advisor.model must be set", ErrInvalidConfig)
		}
	}
	if c.Advisor.Retries < 0 {
		return fmt.Errorf("%w: advisor.retries must be >= 0", ErrInvalidConfig)
	}
	if c.SelfPlay.Games < 1 {
		return fmt.Errorf("%w: selfplay.games must be >= 1", ErrInvalidConfig)
	}
	if c.SelfPlay.Parallel < 1 {
		return fmt.Errorf("%w: selfplay.parallel must be >= 1", ErrInvalidConfig)
	}
	if c.SelfPlay.OpeningPlies < 0 {
		return fmt.Errorf("%w: selfplay.opening_plies must be >= 0", ErrInvalidConfig)
	}
	if c.SelfPlay.MaxTurns < 1 {
		return fmt.Errorf("%w: selfplay.max_turns must be >= 1", ErrInvalidConfig)
	}
	return nil
}
