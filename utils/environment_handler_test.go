package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEnv() map[string]string {
	return map[string]string{
		ENV:          ENV_DEVELOPMENT,
		PORT:         "8080",
		API_BASE_URL: "http://backend:3000/api/",
		AUTH_API_URL: "http://auth:4000",
		MONGODB_URI:  "mongodb://localhost:27017",
		REDIS_URI:    "redis://localhost:6379/0",
	}
}

func TestParseEnv(t *testing.T) {
	cfg, err := ParseEnv(validEnv())
	require.NoError(t, err)

	assert.Equal(t, "http://backend:3000/api", cfg.APIBaseURL)
	assert.Equal(t, DEFAULT_EVOLUTION_CONNECT_TIMEOUT, cfg.EvolutionConnectTimeout)
	assert.False(t, cfg.IsRelease())
}

func TestParseEnvRejectsUnknownKey(t *testing.T) {
	values := validEnv()
	values["LARAVEL_API_URL"] = "http://localhost:8000"

	_, err := ParseEnv(values)
	assert.ErrorContains(t, err, "LARAVEL_API_URL")
}

func TestParseEnvMissingRequired(t *testing.T) {
	values := validEnv()
	delete(values, REDIS_URI)

	_, err := ParseEnv(values)
	assert.ErrorContains(t, err, REDIS_URI)
}

func TestParseEnvInvalidEnvironment(t *testing.T) {
	values := validEnv()
	values[ENV] = "staging"

	_, err := ParseEnv(values)
	assert.ErrorContains(t, err, "staging")
}

func TestParseEnvConnectTimeout(t *testing.T) {
	values := validEnv()
	values[EVOLUTION_CONNECT_TIMEOUT] = "12"

	cfg, err := ParseEnv(values)
	require.NoError(t, err)
	assert.Equal(t, 12*time.Second, cfg.EvolutionConnectTimeout)

	values[EVOLUTION_CONNECT_TIMEOUT] = "abc"
	_, err = ParseEnv(values)
	assert.Error(t, err)
}
