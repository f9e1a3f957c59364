package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"echo-widget/internal/model"
	"echo-widget/internal/widgetconfig"
)

type Config struct {
	AppPort            int           `mapstructure:"APP_PORT"`
	ConfigServiceURL   string        `mapstructure:"CONFIG_SERVICE_URL"`
	WebhookURL         string        `mapstructure:"WEBHOOK_URL"`
	DispatchTimeout    time.Duration `mapstructure:"DISPATCH_TIMEOUT"`
	FetchTimeout       time.Duration `mapstructure:"FETCH_TIMEOUT"`
	CacheBackend       string        `mapstructure:"CACHE_BACKEND"`
	DatabasePath       string        `mapstructure:"DATABASE_PATH"`
	RedisAddr          string        `mapstructure:"REDIS_ADDR"`
	ConfigCacheTTL     time.Duration `mapstructure:"CONFIG_CACHE_TTL"`
	SessionIdleTimeout time.Duration `mapstructure:"SESSION_IDLE_TIMEOUT"`
	RenderMarkdown     bool          `mapstructure:"RENDER_MARKDOWN"`
	LogLevel           string        `mapstructure:"LOG_LEVEL"`
	CORSAllowedOrigins []string      `mapstructure:"CORS_ALLOWED_ORIGINS"`
	WidgetConfigFile   string        `mapstructure:"WIDGET_CONFIG_FILE"`

	PlaceholderType              time.Duration `mapstructure:"PLACEHOLDER_TYPE_INTERVAL"`
	PlaceholderPauseAfterTyping  time.Duration `mapstructure:"PLACEHOLDER_PAUSE_AFTER_TYPING"`
	PlaceholderErase             time.Duration `mapstructure:"PLACEHOLDER_ERASE_INTERVAL"`
	PlaceholderPauseAfterErasing time.Duration `mapstructure:"PLACEHOLDER_PAUSE_AFTER_ERASING"`

	// Widget is the legacy default layer read from WidgetConfigFile. It may
	// nest appearance fields under "appearance".
	Widget model.Options `mapstructure:"-"`
}

// Cache backends.
const (
	CacheSQLite = "sqlite"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 8000)
	viper.SetDefault("CONFIG_SERVICE_URL", "http://localhost:3000/api/brand-config")
	viper.SetDefault("WEBHOOK_URL", "")
	viper.SetDefault("DISPATCH_TIMEOUT", 30*time.Second)
	viper.SetDefault("FETCH_TIMEOUT", 5*time.Second)
	viper.SetDefault("CACHE_BACKEND", CacheSQLite)
	viper.SetDefault("DATABASE_PATH", "/data/echo-widget.db")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("CONFIG_CACHE_TTL", 5*time.Minute)
	viper.SetDefault("SESSION_IDLE_TIMEOUT", 30*time.Minute)
	viper.SetDefault("RENDER_MARKDOWN", false)
	viper.SetDefault("LOG_LEVEL", "INFO")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", []string{"*"})
	viper.SetDefault("WIDGET_CONFIG_FILE", "")
	viper.SetDefault("PLACEHOLDER_TYPE_INTERVAL", 60*time.Millisecond)
	viper.SetDefault("PLACEHOLDER_PAUSE_AFTER_TYPING", 1200*time.Millisecond)
	viper.SetDefault("PLACEHOLDER_ERASE_INTERVAL", 30*time.Millisecond)
	viper.SetDefault("PLACEHOLDER_PAUSE_AFTER_ERASING", 400*time.Millisecond)

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	// Env values may arrive pre-split or as one comma separated element;
	// either way cors matches origins exactly, so trim every entry.
	cfg.CORSAllowedOrigins = splitList(strings.Join(cfg.CORSAllowedOrigins, ","))

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.WidgetConfigFile != "" {
		widget, err := LoadWidgetDefaults(cfg.WidgetConfigFile)
		if err != nil {
			return nil, err
		}
		cfg.Widget = widget
	}

	return &cfg, nil
}

// LoadWidgetDefaults reads the "widget" section of a YAML, JSON or TOML
// file. Viper folds keys to lower case, so known option names are restored
// to their canonical spelling.
func LoadWidgetDefaults(path string) (model.Options, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read widget config %s: %w", path, err)
	}
	section, ok := v.Get("widget").(map[string]any)
	if !ok {
		return model.Options{}, nil
	}
	return widgetconfig.CanonicalKeys(section), nil
}

// WidgetDefaults layers the legacy widget defaults and the WEBHOOK_URL
// override over the built-in configuration. Remote overlays apply on top.
func (c *Config) WidgetDefaults() model.Config {
	overrides := model.Options{}
	if c.WebhookURL != "" {
		overrides["webhookUrl"] = c.WebhookURL
	}
	return widgetconfig.Layered(widgetconfig.Defaults(), c.Widget, overrides)
}

func (c *Config) validate() error {
	switch c.CacheBackend {
	case CacheSQLite, CacheRedis, CacheNone:
	default:
		return fmt.Errorf("unknown CACHE_BACKEND %q (want %s, %s or %s)", c.CacheBackend, CacheSQLite, CacheRedis, CacheNone)
	}
	if c.AppPort <= 0 || c.AppPort > 65535 {
		return fmt.Errorf("invalid APP_PORT %d", c.AppPort)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
