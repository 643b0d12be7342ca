package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dds/core/config"
)

// Tests in this file use t.Setenv and a process-wide cache; each test uses
// its own config type and none run in parallel.

type loadConfig struct {
	Name  string `env:"CONFIG_TEST_NAME" envDefault:"default"`
	Depth int    `env:"CONFIG_TEST_DEPTH" envDefault:"1"`
}

func TestLoad(t *testing.T) {
	t.Setenv("CONFIG_TEST_NAME", "sensor")
	t.Setenv("CONFIG_TEST_DEPTH", "10")

	var cfg loadConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "sensor", cfg.Name)
	assert.Equal(t, 10, cfg.Depth)
}

type cachedConfig struct {
	Value string `env:"CONFIG_TEST_CACHED" envDefault:"first"`
}

func TestLoad_CachesPerType(t *testing.T) {
	var first cachedConfig
	require.NoError(t, config.Load(&first))
	assert.Equal(t, "first", first.Value)

	t.Setenv("CONFIG_TEST_CACHED", "second")

	var again cachedConfig
	require.NoError(t, config.Load(&again))
	assert.Equal(t, first, again)
}

type requiredConfig struct {
	Token string `env:"CONFIG_TEST_REQUIRED,required"`
}

func TestLoad_FailureIsNotCached(t *testing.T) {
	var cfg requiredConfig
	err := config.Load(&cfg)
	require.ErrorIs(t, err, config.ErrParsingConfig)

	t.Setenv("CONFIG_TEST_REQUIRED", "abc")
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "abc", cfg.Token)
}

type presetConfig struct {
	Host string `env:"CONFIG_TEST_PRESET_HOST"`
}

func TestLoad_PresetFieldsAreDefaults(t *testing.T) {
	cfg := presetConfig{Host: "localhost"}
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "localhost", cfg.Host)
}

func TestLoad_NilPointer(t *testing.T) {
	assert.ErrorIs(t, config.Load[loadConfig](nil), config.ErrNilConfig)
}

type mustConfig struct {
	Port int `env:"CONFIG_TEST_MUST_PORT,required"`
}

func TestMustLoad(t *testing.T) {
	assert.Panics(t, func() {
		config.MustLoad(&mustConfig{})
	})

	t.Setenv("CONFIG_TEST_MUST_PORT", "9090")
	var cfg mustConfig
	assert.NotPanics(t, func() {
		config.MustLoad(&cfg)
	})
	assert.Equal(t, 9090, cfg.Port)
}
