// Package config loads kith settings: built-in defaults, then a YAML file,
// then environment variables. Command-line flags are applied last by the
// caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/unowned-ai/kith/pkg/utils"
)

const (
	EnvDB       = "KITH_DB"
	EnvLogLevel = "KITH_LOG_LEVEL"
	EnvOllama   = "OLLAMA_HOST"
	EnvModel    = "KITH_MODEL"
	EnvLocation = "KITH_LOCATION"
)

type Config struct {
	DB  DBConfig  `yaml:"db"`
	Log LogConfig `yaml:"log"`
	AI  AIConfig  `yaml:"ai"`
	// DefaultLocation prefills "my location" when logging interactions.
	DefaultLocation string `yaml:"default_location"`
}

type DBConfig struct {
	Path string `yaml:"path"`
	WAL  bool   `yaml:"wal"`
	Sync string `yaml:"sync" validate:"omitempty,oneof=OFF NORMAL FULL EXTRA"`
}

type LogConfig struct {
	Level       string `yaml:"level" validate:"required,oneof=debug info warn error"`
	Development bool   `yaml:"development"`
}

type AIConfig struct {
	Host        string        `yaml:"host" validate:"required,url"`
	Model       string        `yaml:"model" validate:"required"`
	Timeout     time.Duration `yaml:"timeout" validate:"gt=0"`
	Corrections int           `yaml:"corrections" validate:"gte=0,lte=50"`
}

// Default returns the settings used when nothing else is configured.
func Default() Config {
	return Config{
		DB: DBConfig{
			WAL:  true,
			Sync: "NORMAL",
		},
		Log: LogConfig{
			Level: "warn",
		},
		AI: AIConfig{
			Host:        "http://localhost:11434",
			Model:       "llama3.2",
			Timeout:     2 * time.Minute,
			Corrections: 5,
		},
	}
}

// Load builds the configuration. An empty path means the default file,
// which may be absent; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = utils.GetDefaultConfigPath()
	}
	if path != "" {
		if err := cfg.mergeFile(path, explicit); err != nil {
			return Config{}, err
		}
	}

	cfg.applyEnv()
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string, required bool) error {
	expanded, err := utils.ExpandHome(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("failed to read config file '%s': %w", expanded, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", expanded, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv(EnvDB); ok && v != "" {
		c.DB.Path = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := os.LookupEnv(EnvOllama); ok && v != "" {
		c.AI.Host = v
	}
	if v, ok := os.LookupEnv(EnvModel); ok && v != "" {
		c.AI.Model = v
	}
	if v, ok := os.LookupEnv(EnvLocation); ok && v != "" {
		c.DefaultLocation = v
	}
}

func (c *Config) normalize() {
	c.DB.Sync = strings.ToUpper(strings.TrimSpace(c.DB.Sync))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.AI.Host = strings.TrimRight(strings.TrimSpace(c.AI.Host), "/")
	// OLLAMA_HOST is commonly set as host:port.
	if c.AI.Host != "" && !strings.Contains(c.AI.Host, "://") {
		c.AI.Host = "http://" + c.AI.Host
	}
	c.DefaultLocation = strings.TrimSpace(c.DefaultLocation)
}

var validate = validator.New()

// Validate checks the struct tags and reports every failing field.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, formatFieldError(e))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := strings.ToLower(strings.TrimPrefix(e.Namespace(), "Config."))

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "gt", "gte":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
