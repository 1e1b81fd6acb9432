package config_test

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"excusegen/config"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()

	keys := []string{
		"PORT", "HOST", "GIN_MODE", "LOG_LEVEL",
		"DATABRICKS_ENDPOINT_URL", "DATABRICKS_API_TOKEN",
		"SENDGRID_API_KEY", "EMAIL_FROM_NAME", "EMAIL_FROM_ADDRESS",
		"ENVIRONMENT", "SERVICE_NAME",
		"SHUTDOWN_TIMEOUT", "HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT", "HTTP_IDLE_TIMEOUT",
	}
	for _, key := range keys {
		t.Setenv(key, "")
	}
}

func TestInitConfig_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := config.InitConfig()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Contains(t, cfg.LLMEndpoint, "/serving-endpoints/")
	assert.Empty(t, cfg.LLMToken)
	assert.Equal(t, "excuse-gen-app", cfg.ServiceName)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.WriteTimeout)
	assert.Equal(t, 60*time.Second, cfg.IdleTimeout)
}

func TestInitConfig_Overrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DATABRICKS_ENDPOINT_URL", "https://example.com/serving-endpoints/custom/invocations")
	t.Setenv("DATABRICKS_API_TOKEN", "dapi-test")
	t.Setenv("HTTP_READ_TIMEOUT", "5s")
	t.Setenv("SERVICE_NAME", "excuse-dev")

	cfg, err := config.InitConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "https://example.com/serving-endpoints/custom/invocations", cfg.LLMEndpoint)
	assert.Equal(t, "dapi-test", cfg.LLMToken)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
	assert.Equal(t, "excuse-dev", cfg.ServiceName)
}

func TestInitConfig_InvalidDurationFallsBack(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")

	cfg, err := config.InitConfig()
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestServerConfig_Validate(t *testing.T) {
	valid := &config.ServerConfig{Port: "8000", LLMEndpoint: "https://example.com"}
	assert.NoError(t, valid.Validate())

	missingEndpoint := &config.ServerConfig{Port: "8000"}
	assert.Error(t, missingEndpoint.Validate())

	missingPort := &config.ServerConfig{LLMEndpoint: "https://example.com"}
	assert.Error(t, missingPort.Validate())
}

func TestSetupServer(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.ServerConfig{
		Port:         "9000",
		Host:         "127.0.0.1",
		LLMEndpoint:  "https://example.com",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 6 * time.Second,
		IdleTimeout:  7 * time.Second,
	}

	r := gin.New()
	srv := config.SetupServer(r, cfg)

	assert.Equal(t, "127.0.0.1:9000", srv.Addr)
	assert.Equal(t, 5*time.Second, srv.ReadTimeout)
	assert.Equal(t, 6*time.Second, srv.WriteTimeout)
	assert.Equal(t, 7*time.Second, srv.IdleTimeout)
	assert.Equal(t, 5*time.Second, srv.ReadHeaderTimeout)
}
