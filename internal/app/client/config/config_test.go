package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Env:            EnvLocal,
		ServerAddress:  "localhost:8000",
		SessionBackend: SessionBackendFile,
		SignupFlow:     SignupFlowNotify,
		RequestTimeout: 30 * time.Second,
		SearchIdle:     5 * time.Second,
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"пустой адрес сервера", func(c *Config) { c.ServerAddress = "" }},
		{"неизвестная стратегия signup_flow", func(c *Config) { c.SignupFlow = "popup" }},
		{"неизвестный session_backend", func(c *Config) { c.SessionBackend = "redis" }},
		{"нулевой таймаут", func(c *Config) { c.RequestTimeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.validate())
		})
	}
}

func TestBaseURL(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, "http://localhost:8000", cfg.BaseURL())

	cfg.EnableTLS = true
	assert.Equal(t, "https://localhost:8000", cfg.BaseURL())
}

func TestEnvHelpers(t *testing.T) {
	cfg := validConfig()
	assert.True(t, cfg.IsLocal())
	assert.False(t, cfg.IsProd())

	cfg.Env = EnvProd
	assert.True(t, cfg.IsProd())
	assert.False(t, cfg.IsLocal())

	cfg.Env = ""
	assert.True(t, cfg.IsLocal(), "пустое окружение считается local")
}
