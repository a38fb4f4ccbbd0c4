// Package config loads lookahead settings from defaults, an optional YAML
// config file, LOOKAHEAD_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/lookahead/internal/domain"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// Dir is the per-user directory holding the database and config file.
	Dir = ".lookahead"

	EnvPrefix = "LOOKAHEAD"
)

type Config struct {
	DB       DBConfig       `mapstructure:"db" yaml:"db"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Schedule ScheduleConfig `mapstructure:"schedule" yaml:"schedule"`
	Export   ExportConfig   `mapstructure:"export" yaml:"export"`
}

type DBConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	// File receives log output when set; otherwise logs go to stderr.
	File string `mapstructure:"file" yaml:"file"`
}

// ScheduleConfig holds defaults for new and imported schedules.
type ScheduleConfig struct {
	HoursPerDay float64 `mapstructure:"hours_per_day" yaml:"hours_per_day"`
	WorkDays    string  `mapstructure:"work_days" yaml:"work_days"`
}

type ExportConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// WorkDayPattern parses WorkDays.
func (c ScheduleConfig) WorkDayPattern() (domain.WorkDayPattern, error) {
	return domain.ParseWorkDayPattern(c.WorkDays)
}

// flagKeys maps persistent CLI flag names to config keys.
var flagKeys = map[string]string{
	"db":         "db.path",
	"log-level":  "log.level",
	"log-format": "log.format",
	"log-file":   "log.file",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db.path", filepath.Join("~", Dir, "lookahead.db"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("schedule.hours_per_day", 8.0)
	v.SetDefault("schedule.work_days", "1,2,3,4,5")
	v.SetDefault("export.dir", ".")
}

// Load builds the configuration. An empty path skips the config file; a
// non-empty path must exist. flags may be nil; only flags the user set
// override other sources.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding flag --%s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	expanded, err := expandHome(cfg.DB.Path)
	if err != nil {
		return nil, err
	}
	cfg.DB.Path = expanded

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings the application cannot start without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DB.Path) == "" {
		return fmt.Errorf("config: db.path must not be empty")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q must be one of debug, info, warn, error", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("config: log.format %q must be text or json", c.Log.Format)
	}
	if c.Schedule.HoursPerDay <= 0 {
		return fmt.Errorf("config: schedule.hours_per_day must be positive, got %g", c.Schedule.HoursPerDay)
	}
	if _, err := c.Schedule.WorkDayPattern(); err != nil {
		return fmt.Errorf("config: schedule.work_days: %w", err)
	}
	return nil
}

// DefaultConfigPath returns ~/.lookahead/config.yaml when that file exists,
// or "".
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(home, Dir, "config.yaml")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// WriteFile writes cfg as YAML to path, creating parent directories. It
// refuses to overwrite an existing file.
func WriteFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking config file: %w", err)
	}
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Marshal renders cfg as YAML with a header comment.
func Marshal(cfg *Config) ([]byte, error) {
	body, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	header := "# lookahead configuration\n# Environment variables (LOOKAHEAD_DB_PATH, LOOKAHEAD_LOG_LEVEL, ...) and flags override these values.\n"
	return append([]byte(header), body...), nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
