package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults_LoadWithoutConfigFile", func(t *testing.T) {
		cfg, err := Load("")

		require.NoError(t, err)
		assert.Equal(t, "MacroMind", cfg.App.Name)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, 10, cfg.Intelligence.IntentTTLMinutes)
		assert.Equal(t, 3, cfg.Intelligence.DefaultMaxOptions)
		assert.True(t, cfg.IsDevelopment())
	})

	t.Run("EnvOverride_WinsOverDefault", func(t *testing.T) {
		t.Setenv("MACROMIND_SERVER_PORT", "9090")
		t.Setenv("MACROMIND_INTELLIGENCE_DEFAULT_MAX_OPTIONS", "2")

		cfg, err := Load("")

		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, 2, cfg.Intelligence.DefaultMaxOptions)
	})
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	t.Run("BadPort_Rejected", func(t *testing.T) {
		cfg := base()
		cfg.Server.Port = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("BadMaxOptions_Rejected", func(t *testing.T) {
		cfg := base()
		cfg.Intelligence.DefaultMaxOptions = 5
		assert.Error(t, cfg.Validate())
	})

	t.Run("ProductionWithoutJWTSecret_Rejected", func(t *testing.T) {
		cfg := base()
		cfg.App.Environment = "production"
		cfg.Auth.JWTSecret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("MissingProfileSecret_Rejected", func(t *testing.T) {
		cfg := base()
		cfg.Auth.ProfileSecret = ""
		assert.Error(t, cfg.Validate())
	})
}
