// Package config loads partialgen settings from defaults, a TOML file and
// PARTIALGEN_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/jward/partialgen/internal/convert"
)

const (
	// FileName is the project configuration file looked up from the working
	// directory upwards.
	FileName = ".partialgen.toml"
	// EnvPrefix prefixes environment overrides, e.g. PARTIALGEN_MODE.
	EnvPrefix = "PARTIALGEN"
)

// Config is the resolved configuration.
type Config struct {
	Mode              string        `mapstructure:"mode"`
	TabString         string        `mapstructure:"tab_string"`
	AutoIndentOnBrace bool          `mapstructure:"auto_indent_on_brace"`
	FileMarker        bool          `mapstructure:"file_marker"`
	Attribute         string        `mapstructure:"attribute"`
	CachePath         string        `mapstructure:"cache_path"`
	Script            string        `mapstructure:"script"`
	Include           []string      `mapstructure:"include"`
	Exclude           []string      `mapstructure:"exclude"`
	OutDir            string        `mapstructure:"out_dir"`
	Debounce          time.Duration `mapstructure:"debounce"`
	Workers           int           `mapstructure:"workers"`
}

// SetDefaults registers the default for every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("mode", "context")
	v.SetDefault("tab_string", "    ")
	v.SetDefault("auto_indent_on_brace", false)
	v.SetDefault("file_marker", true)
	v.SetDefault("attribute", "")
	v.SetDefault("cache_path", "")
	v.SetDefault("script", "")
	v.SetDefault("include", []string{"**/*.cs"})
	v.SetDefault("exclude", []string{"**/bin/**", "**/obj/**", "**/*.g.cs"})
	v.SetDefault("out_dir", "")
	v.SetDefault("debounce", 200*time.Millisecond)
	v.SetDefault("workers", 0)
}

// New returns a Viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// ReadFile merges the TOML file at path into v. With an empty path the
// nearest FileName above the working directory is used, if any.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		path = FindProjectConfig()
		if path == "" {
			return nil
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "config: read %s", path)
	}
	return nil
}

// FindProjectConfig walks up from the working directory looking for
// FileName. It returns "" when none is found.
func FindProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return findUp(dir, FileName)
}

func findUp(dir, name string) string {
	for {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Load decodes and validates the settings held by v.
func Load(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "config: unmarshal")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := convert.ParseConfiguration(c.Mode); err != nil {
		return errors.Wrap(err, "config: mode")
	}
	if c.Debounce < 0 {
		return errors.Newf("config: debounce must not be negative, got %s", c.Debounce)
	}
	if c.Workers < 0 {
		return errors.Newf("config: workers must not be negative, got %d", c.Workers)
	}
	return nil
}

// Configuration returns the conversion preset named by Mode.
func (c *Config) Configuration() convert.Configuration {
	cfg, err := convert.ParseConfiguration(c.Mode)
	if err != nil {
		return convert.Context
	}
	return cfg
}
