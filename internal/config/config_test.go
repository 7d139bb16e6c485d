package config_test

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"tubebrief/internal/config"
)

func TestLoadConfig(t *testing.T) {
	os.Setenv("OPENROUTER_API_KEY", "test-key")
	os.Setenv("DB_HOST", "test-host")
	defer os.Unsetenv("OPENROUTER_API_KEY")
	defer os.Unsetenv("DB_HOST")

	cfg, err := config.Load()
	assert.NoError(t, err)
	assert.Equal(t, "test-host", cfg.DBHost)
	assert.Equal(t, "test-key", cfg.OpenRouterAPIKey)
}

func TestLoadConfig_Defaults(t *testing.T) {
	os.Setenv("OPENROUTER_API_KEY", "test-key")
	defer os.Unsetenv("OPENROUTER_API_KEY")

	cfg, err := config.Load()
	assert.NoError(t, err)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.OpenRouterBaseURL)
	assert.Equal(t, "google/gemini-2.0-flash-exp:free", cfg.LLMModel)
	assert.Equal(t, "gemini-embedding-001", cfg.EmbeddingModel)
	assert.Equal(t, 8081, cfg.ServerPort)
	assert.Equal(t, 300, cfg.PipelineTimeoutSeconds)
}

func TestLoadConfig_FromEnvFile(t *testing.T) {
	content := []byte("OPENROUTER_API_KEY=from-file\nLLM_MODEL=some/model")
	if err := os.WriteFile(".env", content, 0o644); err != nil {
		t.Fatal(err)
	}
	defer os.Remove(".env")
	defer os.Unsetenv("OPENROUTER_API_KEY")
	defer os.Unsetenv("LLM_MODEL")

	cfg, err := config.Load()
	assert.NoError(t, err)
	assert.Equal(t, "from-file", cfg.OpenRouterAPIKey)
	assert.Equal(t, "some/model", cfg.LLMModel)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  config.Config
		wantErr bool
	}{
		{
			name: "Valid Config",
			config: config.Config{
				OpenRouterAPIKey: "key",
				DBHost:           "localhost",
				DBName:           "db",
			},
			wantErr: false,
		},
		{
			name: "Missing API Key",
			config: config.Config{
				DBHost: "localhost",
				DBName: "db",
			},
			wantErr: true,
		},
		{
			name: "Missing DBHost",
			config: config.Config{
				OpenRouterAPIKey: "key",
				DBName:           "db",
			},
			wantErr: true,
		},
		{
			name: "Missing DBName",
			config: config.Config{
				OpenRouterAPIKey: "key",
				DBHost:           "localhost",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, config.ErrMissingRequired))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
