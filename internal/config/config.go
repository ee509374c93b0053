// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
)

// Engine names accepted by pdf_engine.
const (
	EngineFPDF   = "gofpdf"
	EngineChrome = "chrome"
)

// Defaults applied by MergeWithDefaults when no value is configured.
const (
	DefaultPort          = 8080
	DefaultOutputDir     = "."
	DefaultChromeTimeout = "30s"
)

// Config represents configuration loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults, the environment or CLI flags.
type Config struct {
	PDFEngine     string `json:"pdf_engine,omitempty" yaml:"pdf_engine,omitempty" validate:"omitempty,oneof=gofpdf chrome"`
	ChromePath    string `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty"`       // Browser binary for the chrome engine
	ChromeTimeout string `json:"chrome_timeout,omitempty" yaml:"chrome_timeout,omitempty"` // Go duration, e.g. "30s"
	OutputDir     string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`         // Directory for generated files
	DatabaseURL   string `json:"database_url,omitempty" yaml:"database_url,omitempty"`     // PostgreSQL connection URL
	Port          int    `json:"port,omitempty" yaml:"port,omitempty" validate:"min=0,max=65535"`
	Verbose       bool   `json:"verbose,omitempty" yaml:"verbose,omitempty"` // Print detailed debug information
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})
	return v
}

// LoadConfig loads configuration from a file. Files ending in .yaml or .yml are
// parsed as YAML and reject unknown keys; everything else is parsed as JSON.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// FromEnv reads the configuration keys that may come from the environment.
func FromEnv() Config {
	cfg := Config{
		PDFEngine:     os.Getenv("PDF_ENGINE"),
		ChromePath:    os.Getenv("CHROME_PATH"),
		ChromeTimeout: os.Getenv("CHROME_TIMEOUT"),
		OutputDir:     os.Getenv("OUTPUT_DIR"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
	}
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Port = port
	}
	return cfg
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config error: '%s' failed '%s' check (value %v)", fe.Field(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.ChromeTimeout != "" {
		d, err := time.ParseDuration(c.ChromeTimeout)
		if err != nil {
			return fmt.Errorf("config error: 'chrome_timeout' is not a duration: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("config error: 'chrome_timeout' must be positive")
		}
	}

	if c.ChromePath != "" {
		if _, err := os.Stat(c.ChromePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: chrome binary not found: %s", c.ChromePath)
		}
	}

	return nil
}

// Timeout returns the Chrome print timeout, falling back to the default.
func (c *Config) Timeout() time.Duration {
	if d, err := time.ParseDuration(c.ChromeTimeout); err == nil && d > 0 {
		return d
	}
	d, _ := time.ParseDuration(DefaultChromeTimeout)
	return d
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults,
// then from the built-in defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.PDFEngine == "" {
		result.PDFEngine = defaults.PDFEngine
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.ChromeTimeout == "" {
		result.ChromeTimeout = defaults.ChromeTimeout
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	if result.PDFEngine == "" {
		result.PDFEngine = EngineFPDF
	}
	if result.ChromeTimeout == "" {
		result.ChromeTimeout = DefaultChromeTimeout
	}
	if result.OutputDir == "" {
		result.OutputDir = DefaultOutputDir
	}
	if result.Port == 0 {
		result.Port = DefaultPort
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
