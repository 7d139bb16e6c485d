package app_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubebrief/internal/app"
	"tubebrief/internal/config"
)

type noopEmbedder struct{}

func (noopEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

func TestNew(t *testing.T) {
	if testing.Short() {
		// New loads the cl100k_base tokenizer, which fetches its data on a
		// cold cache.
		t.Skip("skipping wiring test")
	}

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cfg := &config.Config{
		OpenRouterAPIKey:       "test-key",
		OpenRouterBaseURL:      "https://openrouter.ai/api/v1",
		LLMModel:               "test-model",
		ServerPort:             8081,
		PipelineTimeoutSeconds: 300,
	}

	application, err := app.New(cfg, db, noopEmbedder{})
	require.NoError(t, err)
	assert.NotNil(t, application.Handler)
	assert.NotNil(t, application.SummaryService)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	application.Handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	w = httptest.NewRecorder()
	application.Handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `action="/summaries"`)
}

func TestBootstrap_ConfigurationError(t *testing.T) {
	cfg := &config.Config{
		DBHost: "invalid-host",
		DBName: "tubebrief",
	}
	deps, err := app.Bootstrap(context.Background(), cfg)
	assert.Error(t, err)
	assert.Nil(t, deps)
}
