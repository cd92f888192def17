// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/jonathan/cv-builder/internal/store"
)

const (
	configFileName = "cv_builder"
	envPrefix      = "CVB"
)

// Config is the full application configuration. Values come from defaults, an optional
// YAML/JSON config file and CVB_* environment variables, in increasing priority.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Store      StoreConfig      `mapstructure:"store"`
	Autosave   AutosaveConfig   `mapstructure:"autosave"`
	Navigation NavigationConfig `mapstructure:"navigation"`
	Export     ExportConfig     `mapstructure:"export"`
	Log        LogConfig        `mapstructure:"log"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port      int     `mapstructure:"port" validate:"min=1,max=65535"`
	RateLimit float64 `mapstructure:"rate_limit" validate:"gte=0"` // requests per second, 0 leaves only the export limits
	RateBurst int     `mapstructure:"rate_burst" validate:"gte=0"`
}

// StoreConfig selects the durable store.
type StoreConfig struct {
	Backend       string `mapstructure:"backend" validate:"oneof=file memory sqlite postgres redis s3"`
	Key           string `mapstructure:"key" validate:"required"`
	Dir           string `mapstructure:"dir"`
	SQLitePath    string `mapstructure:"sqlite_path"`
	DatabaseURL   string `mapstructure:"database_url" validate:"required_if=Backend postgres"`
	RedisAddr     string `mapstructure:"redis_addr" validate:"required_if=Backend redis"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db" validate:"gte=0"`
	S3Bucket      string `mapstructure:"s3_bucket" validate:"required_if=Backend s3"`
	S3Region      string `mapstructure:"s3_region"`
	S3Endpoint    string `mapstructure:"s3_endpoint" validate:"omitempty,url"`
	S3Prefix      string `mapstructure:"s3_prefix"`
}

// AutosaveConfig configures the debounced save.
type AutosaveConfig struct {
	Delay time.Duration `mapstructure:"delay" validate:"gt=0"`
}

// NavigationConfig configures section confirmation.
type NavigationConfig struct {
	ConfirmDelay time.Duration `mapstructure:"confirm_delay" validate:"gte=0"`
}

// ExportConfig configures document and print export.
type ExportConfig struct {
	Filename      string        `mapstructure:"filename" validate:"required"`
	Template      string        `mapstructure:"template"` // optional Word shell template
	ChromeTimeout time.Duration `mapstructure:"chrome_timeout" validate:"gt=0"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn warning error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
	File   string `mapstructure:"file"`
}

var validate = newValidator()

// newValidator reports field errors under their config key names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit", 20.0)
	v.SetDefault("server.rate_burst", 40)

	v.SetDefault("store.backend", store.BackendFile)
	v.SetDefault("store.key", "cv_builder_data")
	v.SetDefault("store.dir", "data")
	v.SetDefault("store.sqlite_path", filepath.Join("data", "cv_builder.db"))
	v.SetDefault("store.database_url", "")
	v.SetDefault("store.redis_addr", "")
	v.SetDefault("store.redis_password", "")
	v.SetDefault("store.redis_db", 0)
	v.SetDefault("store.s3_bucket", "")
	v.SetDefault("store.s3_region", "")
	v.SetDefault("store.s3_endpoint", "")
	v.SetDefault("store.s3_prefix", "")

	v.SetDefault("autosave.delay", "1s")
	v.SetDefault("navigation.confirm_delay", "800ms")

	v.SetDefault("export.filename", "Resume.doc")
	v.SetDefault("export.template", "")
	v.SetDefault("export.chrome_timeout", "30s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
}

// LoadConfig loads configuration. An explicit path must exist; with an empty path a
// cv_builder.{yaml,json} in the working directory is used when present.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName(configFileName)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config error: '%s' failed '%s' check", configKey(fe.Namespace()), fe.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.Server.RateLimit > 0 && c.Server.RateBurst == 0 {
		return fmt.Errorf("config error: 'server.rate_burst' must be positive when rate limiting is enabled")
	}

	if c.Export.Template != "" {
		if _, err := os.Stat(c.Export.Template); os.IsNotExist(err) {
			return fmt.Errorf("config error: template file not found: %s", c.Export.Template)
		}
	}

	return nil
}

// configKey turns a validator namespace such as Config.store.database_url into the
// matching config key.
func configKey(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

// StoreOptions converts the store section into store.Open options.
func (c *Config) StoreOptions() store.Config {
	return store.Config{
		Backend:       c.Store.Backend,
		Dir:           c.Store.Dir,
		SQLitePath:    c.Store.SQLitePath,
		DatabaseURL:   c.Store.DatabaseURL,
		RedisAddr:     c.Store.RedisAddr,
		RedisPassword: c.Store.RedisPassword,
		RedisDB:       c.Store.RedisDB,
		S3Bucket:      c.Store.S3Bucket,
		S3Region:      c.Store.S3Region,
		S3Endpoint:    c.Store.S3Endpoint,
		S3Prefix:      c.Store.S3Prefix,
	}
}
