package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"legislation-qa-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCaptureServer(t *testing.T, captured *ollamaChatRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ollamaChatResponse{
			Model:   captured.Model,
			Message: ollamaMessage{Role: "assistant", Content: `{"route": "Simple"}`},
			Done:    true,
		})
	}))
}

func TestChatSendsExplicitZeroTemperature(t *testing.T) {
	var captured ollamaChatRequest
	srv := newCaptureServer(t, &captured)
	defer srv.Close()

	provider := NewOllamaProvider(srv.URL, "llama3")
	_, err := provider.Chat(context.Background(),
		[]llm.Message{{Role: "user", Content: "classify this"}},
		llm.WithTemperature(0.0), llm.WithJSONOutput())
	require.NoError(t, err)

	require.NotNil(t, captured.Options)
	require.NotNil(t, captured.Options.Temperature, "temperature 0 must reach the wire, not be dropped")
	assert.Equal(t, 0.0, *captured.Options.Temperature)
	assert.Equal(t, "json", captured.Format)
}

func TestChatSendsDefaultTemperature(t *testing.T) {
	var captured ollamaChatRequest
	srv := newCaptureServer(t, &captured)
	defer srv.Close()

	provider := NewOllamaProvider(srv.URL, "llama3")
	_, err := provider.Chat(context.Background(),
		[]llm.Message{{Role: "user", Content: "hello"}})
	require.NoError(t, err)

	require.NotNil(t, captured.Options)
	require.NotNil(t, captured.Options.Temperature)
	assert.Equal(t, 0.7, *captured.Options.Temperature)
	assert.Empty(t, captured.Format)
}

func TestChatMapsModelRoleToAssistant(t *testing.T) {
	var captured ollamaChatRequest
	srv := newCaptureServer(t, &captured)
	defer srv.Close()

	provider := NewOllamaProvider(srv.URL, "llama3")
	_, err := provider.Chat(context.Background(), []llm.Message{
		{Role: "user", Content: "hi"},
		{Role: "model", Content: "hello"},
	})
	require.NoError(t, err)

	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "assistant", captured.Messages[1].Role)
}
