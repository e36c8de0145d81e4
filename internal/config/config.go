package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Adda-Baaj/newsdesk/pkg/providers"
)

// EnvPrefix namespaces environment overrides, e.g. NEWSDESK_LOG_LEVEL.
const EnvPrefix = "NEWSDESK"

// Config is the resolved runtime configuration.
type Config struct {
	GNews      GNewsConfig      `mapstructure:"gnews"`
	HTTP       HTTPConfig       `mapstructure:"http"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Log        LogConfig        `mapstructure:"log"`
	UI         UIConfig         `mapstructure:"ui"`
	Detail     DetailConfig     `mapstructure:"detail"`
	Publishers PublishersConfig `mapstructure:"publishers"`
}

// GNewsConfig selects the article provider. Headers are sent with every
// request; viper lowercases their names, which HTTP treats the same.
type GNewsConfig struct {
	Provider string            `mapstructure:"provider"`
	BaseURL  string            `mapstructure:"base_url"`
	APIKey   string            `mapstructure:"api_key"`
	Headers  map[string]string `mapstructure:"headers"`
}

type HTTPConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

type StorageConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// UIConfig controls rendering. Theme is one of auto, light or dark.
type UIConfig struct {
	Theme    string `mapstructure:"theme"`
	Timezone string `mapstructure:"timezone"`
}

type DetailConfig struct {
	Enrich       bool          `mapstructure:"enrich"`
	RequestDelay time.Duration `mapstructure:"request_delay"`
}

type PublishersConfig struct {
	File string `mapstructure:"file"`
}

// Options locates configuration sources. Empty fields use defaults.
type Options struct {
	ConfigFile string
	EnvFile    string
}

// Load reads the .env file, the optional config file and the environment, in
// increasing order of precedence.
func Load(opts Options) (*Config, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("gnews.api_key", EnvPrefix+"_GNEWS_API_KEY", "GNEWS_API_KEY", "NEXT_PUBLIC_GNEWS_API_KEY"); err != nil {
		return nil, fmt.Errorf("bind api key env: %w", err)
	}

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("newsdesk")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "newsdesk"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("gnews.provider", providers.ProviderTypeGNews)
	v.SetDefault("gnews.base_url", providers.DefaultGNewsBaseURL)
	v.SetDefault("gnews.api_key", "")
	v.SetDefault("http.timeout", 15*time.Second)
	v.SetDefault("http.user_agent", "")
	v.SetDefault("storage.path", defaultStoragePath())
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("ui.theme", ThemeAuto)
	v.SetDefault("ui.timezone", "")
	v.SetDefault("detail.enrich", true)
	v.SetDefault("detail.request_delay", time.Duration(0))
	v.SetDefault("publishers.file", "")
}

func defaultStoragePath() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(dir, ".local", "share", "newsdesk", "bookmarks.db")
	}
	return "newsdesk-bookmarks.db"
}

const (
	ThemeAuto  = "auto"
	ThemeLight = "light"
	ThemeDark  = "dark"
)

func (c *Config) normalize() {
	c.GNews.Provider = strings.ToLower(strings.TrimSpace(c.GNews.Provider))
	c.GNews.BaseURL = strings.TrimSpace(c.GNews.BaseURL)
	c.GNews.APIKey = strings.TrimSpace(c.GNews.APIKey)
	c.Storage.Path = strings.TrimSpace(c.Storage.Path)
	c.UI.Theme = strings.ToLower(strings.TrimSpace(c.UI.Theme))
	c.UI.Timezone = strings.TrimSpace(c.UI.Timezone)
	c.Publishers.File = strings.TrimSpace(c.Publishers.File)
}

// Validate rejects values that cannot work. A missing API key is accepted on
// purpose: requests go out and fail remotely.
func (c *Config) Validate() error {
	switch c.UI.Theme {
	case ThemeAuto, ThemeLight, ThemeDark:
	default:
		return fmt.Errorf("ui.theme must be auto, light or dark, got %q", c.UI.Theme)
	}
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be positive, got %s", c.HTTP.Timeout)
	}
	if c.Storage.Path == "" {
		return errors.New("storage.path is empty")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location returns the timezone used to format publication dates.
func (c *Config) Location() (*time.Location, error) {
	if c.UI.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.UI.Timezone)
	if err != nil {
		return nil, fmt.Errorf("ui.timezone: %w", err)
	}
	return loc, nil
}

// Provider returns the provider settings for the fetcher.
func (c *Config) Provider() providers.Provider {
	return providers.Provider{
		ID:      c.GNews.Provider,
		BaseURL: c.GNews.BaseURL,
		APIKey:  c.GNews.APIKey,
		Headers: c.GNews.Headers,
	}
}
