package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/cottand/sigtest/check"
	"github.com/cottand/sigtest/internal/config"
	"github.com/cottand/sigtest/sample"
	"github.com/cottand/sigtest/sigerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := config.Load(config.NewViper())
	require.NoError(t, err)

	assert.Empty(t, cfg.Target)
	assert.Equal(t, sample.DefaultSize, cfg.Sampling.Size)
	assert.Equal(t, check.DoubleNone, cfg.Doubles)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
	assert.Equal(t, check.DefaultMaxDepth, cfg.MaxDepth)
	assert.True(t, cfg.Selects("Anything"))
}

func TestEnvironment(t *testing.T) {
	t.Setenv("SIGTEST_TARGET", "Foo::Bar, Baz::*")
	t.Setenv("SIGTEST_SKIP", "Baz::Skipped")
	t.Setenv("SIGTEST_SAMPLE_SIZE", "ALL")
	t.Setenv("SIGTEST_DOUBLE_MODE", "lax")
	t.Setenv("SIGTEST_LOG_LEVEL", "debug")

	cfg, err := config.Load(config.NewViper())
	require.NoError(t, err)

	assert.Equal(t, []string{"Foo::Bar", "Baz::*"}, cfg.Target)
	assert.True(t, cfg.Sampling.IsExhaustive())
	assert.Equal(t, check.DoubleLax, cfg.Doubles)
	assert.Equal(t, slog.LevelDebug, cfg.Level())

	checkCfg := cfg.CheckConfig(nil)
	assert.Equal(t, check.DoubleLax, checkCfg.Doubles)
	assert.True(t, checkCfg.Sampling.IsExhaustive())
}

func TestSelects(t *testing.T) {
	cfg := &config.Config{
		Target: []string{"Foo::Bar", "Baz::*", "::Qux"},
		Skip:   []string{"Baz::Skipped"},
	}
	for class, expected := range map[string]bool{
		"Foo::Bar":     true,
		"Foo::Barn":    false,
		"Foo":          false,
		"Baz":          true,
		"Baz::Inner":   true,
		"Baz::Skipped": false,
		"Bazooka":      false,
		"Qux":          true,
		"::Qux":        true,
	} {
		assert.Equal(t, expected, cfg.Selects(class), class)
	}
}

func TestInvalidSampleSize(t *testing.T) {
	t.Setenv("SIGTEST_SAMPLE_SIZE", "0.2")
	_, err := config.Load(config.NewViper())

	var invalid sigerr.NewInvalidSampleSize
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "0.2", invalid.Input)
}

func TestInvalidSettings(t *testing.T) {
	for key, val := range map[string]string{
		"SIGTEST_DOUBLE_MODE": "loose",
		"SIGTEST_LOG_LEVEL":   "verbose",
		"SIGTEST_MAX_DEPTH":   "-1",
	} {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			_, err := config.Load(config.NewViper())
			assert.Error(t, err)
		})
	}
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sigtest.yaml")
	require.NoError(t, os.WriteFile(path, []byte("target: [Foo]\nsample_size: \"10.5\"\nseed: 7\n"), 0o600))

	v := config.NewViper()
	v.SetConfigFile(path)
	cfg, err := config.Load(v)
	require.NoError(t, err)

	assert.Equal(t, []string{"Foo"}, cfg.Target)
	assert.Equal(t, sample.Size(11), cfg.Sampling.Size)
	assert.NotNil(t, cfg.Sampling.Source)
}
