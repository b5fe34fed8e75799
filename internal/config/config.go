package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Reference bounds for operator-supplied limits.
const (
	MinPageBudget = 10
	MaxPageBudget = 300
	MinWorkers    = 4
	MaxWorkers    = 20
)

// Config holds all application configuration.
type Config struct {
	Crawler CrawlerConfig `mapstructure:"crawler"`
	Output  OutputConfig  `mapstructure:"output"`
}

// CrawlerConfig holds crawl-specific configuration.
type CrawlerConfig struct {
	MaxPages        int           `mapstructure:"max_pages"`
	Workers         int           `mapstructure:"workers"`
	IncludeExternal bool          `mapstructure:"include_external"`
	FollowRedirects bool          `mapstructure:"follow_redirects"`
	PageTimeout     time.Duration `mapstructure:"page_timeout"`
	CheckTimeout    time.Duration `mapstructure:"check_timeout"`
	Delay           time.Duration `mapstructure:"delay"`
	UserAgent       string        `mapstructure:"user_agent"`
}

// OutputConfig holds report output configuration.
type OutputConfig struct {
	CSVPath string `mapstructure:"csv_path"` // empty disables the export
	View    string `mapstructure:"view"`     // "all", "broken" or "redirects"
}

// Load loads configuration from file and environment.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.linkaudit")
	}

	setDefaults(v)

	v.SetEnvPrefix("LINKAUDIT")
	v.AutomaticEnv()

	// Config file not found is not an error, defaults and env apply.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("crawler.max_pages", 80)
	v.SetDefault("crawler.workers", 10)
	v.SetDefault("crawler.include_external", false)
	v.SetDefault("crawler.follow_redirects", true)
	v.SetDefault("crawler.page_timeout", "12s")
	v.SetDefault("crawler.check_timeout", "8s")
	v.SetDefault("crawler.delay", "150ms")
	v.SetDefault("crawler.user_agent", "linkaudit/1.0")

	v.SetDefault("output.csv_path", "")
	v.SetDefault("output.view", "all")
}

// Validate validates the configuration against the reference bounds.
func (c *Config) Validate() error {
	if c.Crawler.MaxPages < MinPageBudget || c.Crawler.MaxPages > MaxPageBudget {
		return fmt.Errorf("crawler.max_pages must be between %d and %d, got %d",
			MinPageBudget, MaxPageBudget, c.Crawler.MaxPages)
	}
	if c.Crawler.Workers < MinWorkers || c.Crawler.Workers > MaxWorkers {
		return fmt.Errorf("crawler.workers must be between %d and %d, got %d",
			MinWorkers, MaxWorkers, c.Crawler.Workers)
	}
	if c.Crawler.PageTimeout <= 0 {
		return fmt.Errorf("crawler.page_timeout must be positive")
	}
	if c.Crawler.CheckTimeout <= 0 {
		return fmt.Errorf("crawler.check_timeout must be positive")
	}
	if c.Crawler.Delay < 0 {
		return fmt.Errorf("crawler.delay must not be negative")
	}
	switch c.Output.View {
	case "all", "broken", "redirects":
	default:
		return fmt.Errorf("output.view must be all, broken or redirects, got %q", c.Output.View)
	}
	return nil
}
