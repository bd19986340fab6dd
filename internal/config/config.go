// Package config reads the settings of a test run from the environment and an optional
// sigtest.yaml
package config

import (
	"log/slog"
	"strings"

	"github.com/cottand/sigtest/check"
	"github.com/cottand/sigtest/definition"
	"github.com/cottand/sigtest/internal/log"
	"github.com/cottand/sigtest/sample"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variable of each setting, like SIGTEST_SAMPLE_SIZE
const EnvPrefix = "SIGTEST"

const (
	KeyTarget      = "target"
	KeySkip        = "skip"
	KeySampleSize  = "sample_size"
	KeySeed        = "seed"
	KeyDoubleMode  = "double_mode"
	KeyDoubleSuite = "double_suite"
	KeyLogLevel    = "log_level"
	KeyMaxDepth    = "max_depth"
)

var logger = log.DefaultLogger.With("section", "config")

type Config struct {
	// Target lists the classes to check, like `Foo::Bar` or `Foo::*` for Foo and everything under it.
	// Every class is a target when empty.
	Target []string `mapstructure:"target"`
	Skip   []string `mapstructure:"skip"`
	// SampleSize is a positive integer, or ALL
	SampleSize string `mapstructure:"sample_size"`
	// Seed makes sampling reproducible when not zero
	Seed       uint64 `mapstructure:"seed"`
	DoubleMode string `mapstructure:"double_mode" validate:"omitempty,oneof=strict lax none STRICT LAX NONE"`
	// DoubleSuite names the mocking library doubles come from, and is only reported
	DoubleSuite string `mapstructure:"double_suite"`
	LogLevel    string `mapstructure:"log_level" validate:"oneof=debug info warn error DEBUG INFO WARN ERROR"`
	MaxDepth    int    `mapstructure:"max_depth" validate:"gte=0"`

	// set by Load
	Sampling sample.Policy    `mapstructure:"-"`
	Doubles  check.DoubleMode `mapstructure:"-"`
}

// NewViper returns a viper.Viper reading settings from SIGTEST_* environment variables and
// a sigtest.yaml in the working directory
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyTarget, []string{})
	v.SetDefault(KeySkip, []string{})
	v.SetDefault(KeySampleSize, "")
	v.SetDefault(KeySeed, 0)
	v.SetDefault(KeyDoubleMode, string(check.DoubleNone))
	v.SetDefault(KeyDoubleSuite, "none")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyMaxDepth, check.DefaultMaxDepth)

	v.SetConfigName("sigtest")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads and validates the settings of v. A malformed sample size is reported
// as a sigerr.NewInvalidSampleSize.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	cfg.Target = splitNames(cfg.Target)
	cfg.Skip = splitNames(cfg.Skip)

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	size, err := sample.ParseSize(cfg.SampleSize)
	if err != nil {
		return nil, err
	}
	cfg.Sampling = sample.New(size)
	if cfg.Seed != 0 {
		cfg.Sampling = sample.Seeded(size, cfg.Seed)
	}
	if cfg.Doubles, err = check.ParseDoubleMode(cfg.DoubleMode); err != nil {
		return nil, err
	}

	logger.Debug("loaded config",
		"target", cfg.Target,
		"skip", cfg.Skip,
		"sample_size", size,
		"double_mode", cfg.Doubles,
		"double_suite", cfg.DoubleSuite,
	)
	return &cfg, nil
}

// splitNames accepts both lists and comma separated names, as environment variables give
func splitNames(raw []string) []string {
	var names []string
	for _, r := range raw {
		for _, name := range strings.Split(r, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}

// Level is the slog.Level named by LogLevel
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// CheckConfig is the check.Config checkers of this run use
func (c *Config) CheckConfig(defs definition.Provider) check.Config {
	return check.Config{
		Defs:     defs,
		Sampling: c.Sampling,
		Doubles:  c.Doubles,
		MaxDepth: c.MaxDepth,
	}
}

// Selects reports whether class is a target and is not skipped
func (c *Config) Selects(class string) bool {
	if len(c.Target) > 0 && !matchesAny(c.Target, class) {
		return false
	}
	return !matchesAny(c.Skip, class)
}

func matchesAny(filters []string, class string) bool {
	class = strings.TrimPrefix(class, "::")
	for _, f := range filters {
		if match(strings.TrimPrefix(f, "::"), class) {
			return true
		}
	}
	return false
}

// match treats a filter ending in `*` as a prefix, so that `Foo::*` matches Foo and everything under it
func match(filter, class string) bool {
	prefix, ok := strings.CutSuffix(filter, "*")
	if !ok {
		return filter == class
	}
	return strings.HasPrefix(class, prefix) || class == strings.TrimSuffix(prefix, "::")
}
