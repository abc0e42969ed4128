package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	assert.Empty(t, cfg.Validate(), "default config must validate cleanly")
}

func TestLoadUsesDefaults(t *testing.T) {
	resetViper(t)
	SetDefaults()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "assisted", cfg.Engine.Mode)
	assert.Equal(t, 30, cfg.Engine.TimeoutSeconds)
	assert.Equal(t, "pretty", cfg.Output.Format)
	assert.NotEmpty(t, cfg.Anthropic.BaseURL)
	assert.NotEmpty(t, cfg.OpenAI.BaseURL)
}

func TestLoadAPIKeyFallsBackToEnv(t *testing.T) {
	resetViper(t)
	SetDefaults()
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")
	t.Setenv("OPENAI_API_KEY", "sk-oai-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-ant-test", cfg.Anthropic.APIKey)
	assert.Equal(t, "sk-oai-test", cfg.OpenAI.APIKey)
}

func TestLoadConfigFileKeyWinsOverEnv(t *testing.T) {
	resetViper(t)
	SetDefaults()
	viper.Set("anthropic.api_key", "sk-from-config")
	t.Setenv("ANTHROPIC_API_KEY", "sk-from-env")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-from-config", cfg.Anthropic.APIKey)
}

func TestLoadRejectsInvalidMode(t *testing.T) {
	resetViper(t)
	SetDefaults()
	viper.Set("engine.mode", "telepathy")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "engine.mode")
}

func TestEngineTimeout(t *testing.T) {
	e := EngineConfig{TimeoutSeconds: 45}
	assert.Equal(t, 45*time.Second, e.Timeout())
}

func TestConfigDir(t *testing.T) {
	assert.NotEmpty(t, ConfigDir())
}
