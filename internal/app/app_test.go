package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"ortprep_backend/internal/config"
	"ortprep_backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyConfigSwapsAIEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"обновлено"}}]}`))
	}))
	defer server.Close()

	stale := config.AIConfig{BaseURL: "http://127.0.0.1:1", Model: "m", TimeoutSeconds: 1}
	a := &App{
		Config:   &config.Config{AI: stale},
		services: &services{ai: service.NewAIService(stale)},
	}

	fresh := &config.Config{
		AI: config.AIConfig{BaseURL: server.URL, APIKey: "k", Model: "m", TimeoutSeconds: 5},
	}
	a.ApplyConfig(fresh)

	assert.Same(t, fresh, a.Config)

	text, err := a.services.ai.Chat("test_generation", "вопрос")
	require.NoError(t, err)
	assert.Equal(t, "обновлено", text)
}
