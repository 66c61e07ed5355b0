package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ortprep_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aiTestConfig(baseURL string) config.AIConfig {
	return config.AIConfig{
		BaseURL:        baseURL,
		APIKey:         "test-key",
		Model:          "test-model",
		TimeoutSeconds: 5,
	}
}

func TestChatReturnsFirstChoice(t *testing.T) {
	var gotAuth string
	var gotReq ChatCompletionRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		assert.Equal(t, "/chat/completions", r.URL.Path)

		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ответ модели"}}]}`))
	}))
	defer server.Close()

	svc := NewAIService(aiTestConfig(server.URL))
	text, err := svc.Chat("test_generation", "вопрос")

	require.NoError(t, err)
	assert.Equal(t, "ответ модели", text)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "test-model", gotReq.Model)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "user", gotReq.Messages[0].Role)
	assert.Equal(t, "вопрос", gotReq.Messages[0].Content)
}

func TestChatUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":{"message":"overloaded"}}`))
	}))
	defer server.Close()

	svc := NewAIService(aiTestConfig(server.URL))
	_, err := svc.Chat("advice", "вопрос")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestChatNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	svc := NewAIService(aiTestConfig(server.URL))
	_, err := svc.Chat("ask", "вопрос")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestUpdateConfigSwapsEndpoint(t *testing.T) {
	old := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"старый"}}]}`))
	}))
	defer old.Close()
	updated := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"новый"}}]}`))
	}))
	defer updated.Close()

	svc := NewAIService(aiTestConfig(old.URL))
	svc.UpdateConfig(aiTestConfig(updated.URL))

	text, err := svc.Chat("ask", "вопрос")
	require.NoError(t, err)
	assert.Equal(t, "новый", text)
}
