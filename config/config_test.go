package config

import (
	"os"
	"testing"

	"github.com/envgov/feedback-api/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.IsTest = true
	os.Exit(m.Run())
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name        string
		envVars     map[string]string
		expectError bool
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "defaults with required password",
			envVars: map[string]string{
				"NEO4J_PASSWORD": "s3cret",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "bolt://localhost:7687", cfg.Neo4j.URI)
				assert.Equal(t, "neo4j", cfg.Neo4j.Username)
				assert.Equal(t, "neo4j", cfg.Neo4j.Database)
				assert.Equal(t, "0.0.0.0:8000", cfg.Server.Addr())
				assert.False(t, cfg.Server.Debug)
				assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
				assert.False(t, cfg.RateLimit.Enabled)
				assert.False(t, cfg.IsProduction())
			},
		},
		{
			name: "environment overrides",
			envVars: map[string]string{
				"NEO4J_PASSWORD":     "s3cret",
				"NEO4J_URI":          "neo4j+s://graph.example.org:7687",
				"NEO4J_USERNAME":     "feedback",
				"NEO4J_DATABASE":     "feedback",
				"HOST":               "127.0.0.1",
				"PORT":               "9090",
				"DEBUG":              "true",
				"SERVER_ENVIRONMENT": "production",
				"ALLOWED_ORIGINS":    "https://app.example.org, https://admin.example.org",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "neo4j+s://graph.example.org:7687", cfg.Neo4j.URI)
				assert.Equal(t, "feedback", cfg.Neo4j.Username)
				assert.Equal(t, "feedback", cfg.Neo4j.Database)
				assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr())
				assert.True(t, cfg.Server.Debug)
				assert.True(t, cfg.IsProduction())
				assert.Equal(t, []string{"https://app.example.org", "https://admin.example.org"}, cfg.Server.AllowedOrigins)
			},
		},
		{
			name:        "missing password blocks startup",
			envVars:     map[string]string{},
			expectError: true,
		},
		{
			name: "non numeric port",
			envVars: map[string]string{
				"NEO4J_PASSWORD": "s3cret",
				"PORT":           "eighty",
			},
			expectError: true,
		},
		{
			name: "unsupported uri scheme",
			envVars: map[string]string{
				"NEO4J_PASSWORD": "s3cret",
				"NEO4J_URI":      "http://localhost:7474",
			},
			expectError: true,
		},
		{
			name: "rate limit without redis",
			envVars: map[string]string{
				"NEO4J_PASSWORD":     "s3cret",
				"RATE_LIMIT_ENABLED": "true",
			},
			expectError: true,
		},
		{
			name: "rate limit with redis",
			envVars: map[string]string{
				"NEO4J_PASSWORD":     "s3cret",
				"RATE_LIMIT_ENABLED": "true",
				"REDIS_ADDRESS":      "localhost:6379",
				"RATE_LIMIT_FEEDBACK_REQUESTS_PER_MINUTE": "5",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.RateLimit.Enabled)
				assert.Equal(t, "localhost:6379", cfg.Redis.Address)
				assert.Equal(t, 5, cfg.RateLimit.FeedbackRequestsPerMinute)
				assert.Equal(t, 60, cfg.RateLimit.WindowSeconds)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{
				"NEO4J_PASSWORD", "NEO4J_URI", "NEO4J_USERNAME", "NEO4J_DATABASE",
				"HOST", "PORT", "DEBUG", "SERVER_ENVIRONMENT", "ALLOWED_ORIGINS",
				"RATE_LIMIT_ENABLED", "REDIS_ADDRESS", "RATE_LIMIT_FEEDBACK_REQUESTS_PER_MINUTE",
			} {
				t.Setenv(key, "")
				os.Unsetenv(key)
			}
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			cfg, err := LoadConfig()

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.check(t, cfg)
		})
	}
}

func TestValidateNeo4jConfig(t *testing.T) {
	valid := Neo4jConfig{
		URI:                   "bolt://localhost:7687",
		Password:              "pw",
		Database:              "neo4j",
		MaxConnectionPoolSize: 10,
	}
	require.NoError(t, validateNeo4jConfig(&valid))

	noDB := valid
	noDB.Database = ""
	assert.Error(t, validateNeo4jConfig(&noDB))

	noPool := valid
	noPool.MaxConnectionPoolSize = 0
	assert.Error(t, validateNeo4jConfig(&noPool))
}
