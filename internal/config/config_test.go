package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Data: DataConfig{
			PrimaryPath: "/data/catalog.csv",
			BasePath:    "/data/metadata",
		},
		Server: ServerConfig{
			Name:         "Songboard Server",
			Port:         "8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Rate: RateConfig{RPS: 25, Burst: 50},
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown environment", func(c *Config) { c.App.Environment = "prod" }},
		{"unknown log level", func(c *Config) { c.Logger.Level = "verbose" }},
		{"missing primary path", func(c *Config) { c.Data.PrimaryPath = "" }},
		{"missing base path", func(c *Config) { c.Data.BasePath = "" }},
		{"non-numeric port", func(c *Config) { c.Server.Port = "eight" }},
		{"zero rate", func(c *Config) { c.Rate.RPS = 0 }},
		{"zero burst", func(c *Config) { c.Rate.Burst = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestAnnotationsPathIsOptional(t *testing.T) {
	cfg := validConfig()
	cfg.Data.AnnotationsPath = ""
	assert.NoError(t, cfg.Validate())
}

func TestGetConfigValuePrecedence(t *testing.T) {
	t.Setenv("SONGBOARD_TEST_KEY", "from-env")

	assert.Equal(t, "from-flag", getConfigValue("from-flag", "SONGBOARD_TEST_KEY", "default"))
	assert.Equal(t, "from-env", getConfigValue("", "SONGBOARD_TEST_KEY", "default"))
	assert.Equal(t, "default", getConfigValue("", "SONGBOARD_TEST_MISSING", "default"))
}

func TestSplitOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, splitOrigins("*"))
	assert.Equal(t,
		[]string{"http://localhost:5173", "https://songboard.local"},
		splitOrigins("http://localhost:5173, https://songboard.local"))
	assert.Empty(t, splitOrigins(""))
}

func TestExpandPathTilde(t *testing.T) {
	got, err := expandPath("~/data.csv", "")
	require.NoError(t, err)
	assert.NotContains(t, got, "~")
}
