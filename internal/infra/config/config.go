package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const DefaultFile = "gofetch.yaml"

type Config struct {
	Fetch   FetchConfig   `mapstructure:"fetch" yaml:"fetch"`
	Targets TargetsConfig `mapstructure:"targets" yaml:"targets"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Store   StoreConfig   `mapstructure:"store" yaml:"store"`

	Port string `mapstructure:"port" yaml:"port"`
}

type FetchConfig struct {
	BaseHost         string        `mapstructure:"base_host" yaml:"base_host"`
	ConcurrencyLimit int           `mapstructure:"concurrency_limit" yaml:"concurrency_limit"`
	RequestTimeout   time.Duration `mapstructure:"per_request_timeout" yaml:"per_request_timeout"`
	WorkDirParent    string        `mapstructure:"work_dir_parent" yaml:"work_dir_parent"`
	FileExtension    string        `mapstructure:"file_extension" yaml:"file_extension"`
}

type TargetsConfig struct {
	Names   []string `mapstructure:"names" yaml:"names"`
	Include []string `mapstructure:"include" yaml:"include"`
	Exclude []string `mapstructure:"exclude" yaml:"exclude"`
}

type LogConfig struct {
	Path          string `mapstructure:"path" yaml:"path"`
	Level         string `mapstructure:"level" yaml:"level"`
	IncludeStdout bool   `mapstructure:"include_stdout" yaml:"include_stdout"`
}

type StoreConfig struct {
	Driver      string `mapstructure:"driver" yaml:"driver"`
	SQLitePath  string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
	PostgresDSN string `mapstructure:"postgres_dsn" yaml:"postgres_dsn"`
}

// flagKeys maps command line flag names onto config keys.
var flagKeys = map[string]string{
	"base-host":   "fetch.base_host",
	"concurrency": "fetch.concurrency_limit",
	"timeout":     "fetch.per_request_timeout",
	"log-level":   "log.level",
	"port":        "port",
}

// Load reads path (or the default locations when path is empty), then the
// environment, then any flags in fs that were explicitly set.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// Set Defaults
	v.SetDefault("port", "8080")
	v.SetDefault("fetch.base_host", "")
	v.SetDefault("fetch.concurrency_limit", 3)
	v.SetDefault("fetch.per_request_timeout", "10s")
	v.SetDefault("fetch.work_dir_parent", "")
	v.SetDefault("fetch.file_extension", ".mov")
	v.SetDefault("targets.names", []string{})
	v.SetDefault("log.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.include_stdout", true)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.sqlite_path", "./gofetch.db")
	v.SetDefault("store.postgres_dsn", "")
	v.SetDefault("targets.include", []string{})
	v.SetDefault("targets.exclude", []string{})

	resolved, err := resolvePath(path)
	if err != nil {
		return nil, err
	}

	if resolved != "" {
		v.SetConfigFile(resolved)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", resolved, err)
		}
	}

	// Support Environment Variables
	v.SetEnvPrefix("GOFETCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// API_HOST_URL is what the old scripts exported; keep honouring it
	if err := v.BindEnv("fetch.base_host", "GOFETCH_FETCH_BASE_HOST", "API_HOST_URL"); err != nil {
		return nil, err
	}

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func resolvePath(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("config file not found: %s", path)
		}
		return path, nil
	}

	// Docker images mount config under /config
	for _, candidate := range []string{DefaultFile, "/config/" + DefaultFile} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

func (c *Config) validate() error {
	if c.Fetch.ConcurrencyLimit < 1 {
		return fmt.Errorf("fetch.concurrency_limit must be at least 1, got %d", c.Fetch.ConcurrencyLimit)
	}

	if c.Fetch.RequestTimeout <= 0 {
		return fmt.Errorf("fetch.per_request_timeout must be positive, got %s", c.Fetch.RequestTimeout)
	}

	if c.Fetch.BaseHost != "" {
		u, err := url.Parse(c.Fetch.BaseHost)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("fetch.base_host must be an http(s) URL, got %q", c.Fetch.BaseHost)
		}
	}

	if c.Fetch.FileExtension != "" && !strings.HasPrefix(c.Fetch.FileExtension, ".") {
		c.Fetch.FileExtension = "." + c.Fetch.FileExtension
	}

	switch c.Store.Driver {
	case "sqlite":
		if c.Store.SQLitePath == "" {
			return errors.New("store.sqlite_path is required for the sqlite driver")
		}
	case "postgres":
		if c.Store.PostgresDSN == "" {
			return errors.New("store.postgres_dsn is required for the postgres driver")
		}
	case "none", "":
		c.Store.Driver = "none"
	default:
		return fmt.Errorf("unknown store.driver %q", c.Store.Driver)
	}

	if c.Port == "" {
		c.Port = "8080"
	}

	return nil
}
