// Package config resolves erlc settings from flags, environment and an
// optional YAML config file.
package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/erlc/pkg/logging"
	"github.com/provide-io/erlc/pkg/registry"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix    = "ERLC"
	EnvConfigDir = "ERLC_CONFIG_DIR"

	KeyConfig   = "config"
	KeyLogLevel = "log-level"
	KeyJSONLog  = "json-log"
	KeyVersion  = "php-version"
	KeyRegistry = "registry"
	KeyListen   = "listen"

	DefaultLogLevel = "warn"
	DefaultListen   = "127.0.0.1:8080"
)

// Config is the resolved configuration.
type Config struct {
	LogLevel string `mapstructure:"log-level"`
	JSONLog  bool   `mapstructure:"json-log"`
	Version  string `mapstructure:"php-version"`
	Registry string `mapstructure:"registry"`
	Listen   string `mapstructure:"listen"`
}

// New returns a viper instance with erlc defaults, env binding and config
// search paths set.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyLogLevel, logging.GetLogLevel())
	v.SetDefault(KeyJSONLog, false)
	v.SetDefault(KeyVersion, "")
	v.SetDefault(KeyRegistry, "")
	v.SetDefault(KeyListen, DefaultListen)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("erlc")
	v.SetConfigType("yaml")
	v.AddConfigPath(ConfigDir())
	return v
}

// RegisterFlags adds the persistent flags every command understands.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String(KeyConfig, "", "Path to config file (YAML)")
	flags.String(KeyLogLevel, DefaultLogLevel, "Log level (trace, debug, info, warn, error)")
	flags.Bool(KeyJSONLog, false, "Emit logs as JSON")
	flags.String(KeyRegistry, "", "Path to a YAML constant registry (defaults to the built-in table)")
	flags.StringP(KeyVersion, "p", "", "PHP version key to start on (defaults to the first registry version)")
}

// BindFlags binds every flag in flags to the viper key of the same name.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	return v.BindPFlags(flags)
}

// Load reads the config file, if any, and decodes the settings. A missing
// file is only an error when one was named explicitly.
func Load(v *viper.Viper) (Config, error) {
	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadRegistry returns the registry named by the config, or the built-in one.
func (c Config) LoadRegistry() (*registry.Registry, error) {
	if c.Registry == "" {
		return registry.Default(), nil
	}
	return registry.LoadFile(c.Registry)
}

// Logger builds a logger with the configured level and format.
func (c Config) Logger(name string, output io.Writer) hclog.Logger {
	return logging.NewLoggerWithOptions(name, logging.Options{
		Level:  c.LogLevel,
		JSON:   c.JSONLog,
		Output: output,
	})
}

// ConfigDir returns the directory searched for erlc.yaml
func ConfigDir() string {
	// Check environment variable first
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}

	switch runtime.GOOS {
	case "darwin":
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, "Library", "Application Support", "erlc")
		}
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "erlc")
		}
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "erlc")
		}
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, ".config", "erlc")
		}
	}

	// Fallback to the working directory
	return "."
}
