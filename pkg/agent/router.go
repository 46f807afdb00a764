package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"legislation-qa-be/pkg/llm"
)

// routingPrompt constrains the classifier to the four enumerated routes.
const routingPrompt = `You are a routing classifier for a legislation Q&A assistant.
Classify the user's request into exactly one route:

- "Summary": the user asks for a summary of a specific part of the legislation, including respective paragraphs/articles.
- "Interpret": the user needs to understand how the legislation works about a specific topic.
- "Simple": the user has an open and simple question about something.
- "Ask_again": the question has NO relation with legislation, articles, tax, etc.

Respond with a single JSON object: {"route": "<Summary|Interpret|Simple|Ask_again>"}
Do not output anything else.`

// routeResult is the structured output of the router.
type routeResult struct {
	Route string `json:"route"`
}

// Router classifies a conversation into one of the four handling routes.
// Every request re-invokes the classifier; identical histories are not memoized.
type Router struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewRouter(llmProvider llm.LLMProvider, logger *log.Logger) *Router {
	return &Router{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Route inspects the conversation history and returns the chosen route.
// Any model failure or unparsable output surfaces as ErrRouting; no fallback
// route is chosen here, that decision belongs to the caller.
func (r *Router) Route(ctx context.Context, history []ChatMessage) (Route, error) {
	messages := toProviderMessages(history)
	messages = append([]llm.Message{{Role: "system", Content: routingPrompt}}, messages...)

	raw, err := r.llmProvider.Chat(ctx, messages,
		llm.WithTemperature(0.0),
		llm.WithJSONOutput(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRouting, err)
	}

	route, err := parseRouteResult(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRouting, err)
	}

	r.logger.Printf("[ROUTER] Classified route: %s", route)
	return route, nil
}

// parseRouteResult defensively parses classifier output. Models in JSON mode
// occasionally wrap the object in code fences or prose, so the object is
// extracted before unmarshalling.
func parseRouteResult(raw string) (Route, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("no JSON object in classifier output: %q", truncate(raw, 120))
	}

	var result routeResult
	if err := json.Unmarshal([]byte(raw[start:end+1]), &result); err != nil {
		return "", fmt.Errorf("unmarshal classifier output: %v", err)
	}

	return ParseRoute(result.Route)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
