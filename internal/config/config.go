// Package config handles specflow configuration using Viper.
//
// Values come from, in increasing precedence: built-in defaults, the YAML
// config file (~/.specflow/config.yaml or --config), and SPECFLOW_* environment
// variables with dots replaced by underscores (SPECFLOW_STORAGE_BACKEND).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/specflow/internal/domain"
	sferrors "github.com/felixgeelhaar/specflow/internal/errors"
	"github.com/felixgeelhaar/specflow/internal/export"
	"github.com/felixgeelhaar/specflow/internal/store"
)

const (
	// EnvPrefix is the prefix for environment overrides.
	EnvPrefix = "SPECFLOW"

	// DirName is the per-user state directory under $HOME.
	DirName = ".specflow"

	// BackendFile stores specs as one JSON document.
	BackendFile = store.BackendFile
	// BackendSQLite stores specs in a SQLite key-value table.
	BackendSQLite = store.BackendSQLite
)

// Backends lists the supported storage backends.
var Backends = []string{BackendFile, BackendSQLite}

// Config holds the application configuration.
type Config struct {
	Storage   StorageConfig   `mapstructure:"storage" yaml:"storage"`
	Generate  GenerateConfig  `mapstructure:"generate" yaml:"generate"`
	Export    ExportConfig    `mapstructure:"export" yaml:"export"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
	Telemetry TelemetryConfig `mapstructure:"telemetry" yaml:"telemetry"`

	// File is the config file that was read, empty when none existed.
	File string `mapstructure:"-" yaml:"-"`
}

// StorageConfig selects where generated specs are kept.
type StorageConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// GenerateConfig holds defaults for the generate command.
type GenerateConfig struct {
	Template string        `mapstructure:"template" yaml:"template"`
	Delay    time.Duration `mapstructure:"delay" yaml:"delay"`
}

// ExportConfig holds defaults for the export command.
type ExportConfig struct {
	Format  string `mapstructure:"format" yaml:"format"`
	GroupBy string `mapstructure:"group_by" yaml:"group_by"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// TelemetryConfig holds tracing settings.
type TelemetryConfig struct {
	Enabled    bool    `mapstructure:"enabled" yaml:"enabled"`
	Endpoint   string  `mapstructure:"endpoint" yaml:"endpoint"`
	SampleRate float64 `mapstructure:"sample_rate" yaml:"sample_rate"`
}

// Dir returns the specflow state directory.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, DirName), nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads configuration from file and environment. A missing config file
// is not an error; defaults apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, sferrors.NewConfigLoadError("~/"+DirName, err)
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
		case configPath != "" && errors.Is(err, os.ErrNotExist):
		default:
			return nil, sferrors.NewConfigLoadError(configPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, sferrors.NewConfigLoadError(v.ConfigFileUsed(), err)
	}
	if used := v.ConfigFileUsed(); used != "" {
		if _, err := os.Stat(used); err == nil {
			cfg.File = used
		}
	}

	cfg.Storage.Path = expandHome(cfg.Storage.Path)
	return &cfg, nil
}

// Default returns the built-in configuration without reading any file or
// environment variable.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	// Defaults only contain well-typed values.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.backend", BackendFile)
	v.SetDefault("storage.path", "")
	v.SetDefault("generate.template", string(domain.TemplateWeb))
	v.SetDefault("generate.delay", 800*time.Millisecond)
	v.SetDefault("export.format", string(export.FormatMarkdown))
	v.SetDefault("export.group_by", string(domain.GroupByType))
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.endpoint", "localhost:4318")
	v.SetDefault("telemetry.sample_rate", 1.0)
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	if !contains(Backends, c.Storage.Backend) {
		return sferrors.NewInvalidValueError("storage.backend", c.Storage.Backend, Backends)
	}
	if _, err := domain.NewTemplate(c.Generate.Template); err != nil {
		return sferrors.NewInvalidValueError("generate.template", c.Generate.Template, templateNames())
	}
	if c.Generate.Delay < 0 {
		return sferrors.NewInvalidValueError("generate.delay", c.Generate.Delay.String(), []string{"a non-negative duration"})
	}
	if _, err := export.ParseFormat(c.Export.Format); err != nil {
		return err
	}
	if _, err := domain.NewGroupBy(c.Export.GroupBy); err != nil {
		return sferrors.NewInvalidValueError("export.group_by", c.Export.GroupBy, groupByNames())
	}
	if c.Telemetry.SampleRate < 0 || c.Telemetry.SampleRate > 1 {
		return sferrors.NewInvalidValueError("telemetry.sample_rate", fmt.Sprint(c.Telemetry.SampleRate), []string{"a value between 0 and 1"})
	}
	return nil
}

// StoragePath returns the configured storage location, or the backend's
// default file under the state directory.
func (c *Config) StoragePath() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	if c.Storage.Backend == BackendSQLite {
		return filepath.Join(dir, "specs.db"), nil
	}
	return filepath.Join(dir, "specs.json"), nil
}

// YAML renders the configuration as a YAML document.
func (c *Config) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c.document()); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Write saves the configuration to path atomically, creating parent
// directories as needed.
func Write(cfg *Config, path string) error {
	data, err := cfg.YAML()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// document mirrors Config with the delay as a duration string, which is the
// form viper reads back.
func (c *Config) document() map[string]any {
	return map[string]any{
		"storage": c.Storage,
		"generate": map[string]any{
			"template": c.Generate.Template,
			"delay":    c.Generate.Delay.String(),
		},
		"export":    c.Export,
		"log":       c.Log,
		"telemetry": c.Telemetry,
	}
}

func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func templateNames() []string {
	names := make([]string, len(domain.Templates))
	for i, t := range domain.Templates {
		names[i] = string(t)
	}
	return names
}

func groupByNames() []string {
	names := make([]string, len(domain.GroupDimensions))
	for i, g := range domain.GroupDimensions {
		names[i] = string(g)
	}
	return names
}
