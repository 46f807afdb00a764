package agent

import (
	"context"
	"errors"
	"log"
	"os"
	"testing"

	"legislation-qa-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLLM is a scripted LLMProvider for tests.
type fakeLLM struct {
	response string
	err      error

	calls    int
	messages [][]llm.Message
	options  []*llm.Options
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	f.calls++
	f.messages = append(f.messages, history)

	options := &llm.Options{}
	for _, opt := range opts {
		opt(options)
	}
	f.options = append(f.options, options)

	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func testLogger() *log.Logger {
	return log.New(os.Stderr, "[TEST] ", log.LstdFlags)
}

func TestRouterParsesEveryRoute(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     Route
	}{
		{"summary", `{"route": "Summary"}`, RouteSummary},
		{"interpret", `{"route": "Interpret"}`, RouteInterpret},
		{"simple", `{"route": "Simple"}`, RouteSimple},
		{"ask again", `{"route": "Ask_again"}`, RouteAskAgain},
		{"fenced output", "```json\n{\"route\": \"Interpret\"}\n```", RouteInterpret},
		{"output with prose", `Sure! {"route": "Summary"}`, RouteSummary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeLLM{response: tt.response}
			router := NewRouter(provider, testLogger())

			got, err := router.Route(context.Background(), []ChatMessage{
				{Role: "user", Content: "What does Article 5 say?"},
			})

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRouterRejectsUnknownRoute(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"unknown value", `{"route": "Banana"}`},
		{"empty value", `{"route": ""}`},
		{"no json", `Interpret`},
		{"wrong field", `{"intent": "Summary"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeLLM{response: tt.response}
			router := NewRouter(provider, testLogger())

			_, err := router.Route(context.Background(), []ChatMessage{
				{Role: "user", Content: "hello"},
			})

			assert.ErrorIs(t, err, ErrRouting)
		})
	}
}

func TestRouterSurfacesModelFailure(t *testing.T) {
	provider := &fakeLLM{err: errors.New("upstream down")}
	router := NewRouter(provider, testLogger())

	_, err := router.Route(context.Background(), []ChatMessage{
		{Role: "user", Content: "hello"},
	})

	assert.ErrorIs(t, err, ErrRouting)
}

func TestRouterRequestsConstrainedJSONOutput(t *testing.T) {
	provider := &fakeLLM{response: `{"route": "Simple"}`}
	router := NewRouter(provider, testLogger())

	_, err := router.Route(context.Background(), []ChatMessage{
		{Role: "user", Content: "hello"},
	})

	require.NoError(t, err)
	require.Len(t, provider.options, 1)
	assert.True(t, provider.options[0].JSONOutput)
	assert.Zero(t, provider.options[0].Temperature)
}

func TestRouterDropsUnrecognizedRoles(t *testing.T) {
	provider := &fakeLLM{response: `{"route": "Simple"}`}
	router := NewRouter(provider, testLogger())

	history := []ChatMessage{
		{Role: "system", Content: "be nice"},
		{Role: "tool", Content: "ignored"},
		{Role: "assistant", Content: "hi"},
		{Role: "user", Content: "hello"},
	}

	_, err := router.Route(context.Background(), history)
	require.NoError(t, err)

	require.Len(t, provider.messages, 1)
	sent := provider.messages[0]
	// routing prompt + 3 recognized messages, the "tool" entry is dropped
	require.Len(t, sent, 4)
	assert.Equal(t, "system", sent[0].Role)
	for _, m := range sent[1:] {
		assert.NotEqual(t, "tool", m.Role)
	}
}
