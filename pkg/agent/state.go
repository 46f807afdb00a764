package agent

import (
	"fmt"

	"legislation-qa-be/pkg/llm"
)

// Route is the intent classification that decides how a question is handled.
type Route string

const (
	RouteSummary   Route = "Summary"   // summary of a specific legislation chapter/article
	RouteInterpret Route = "Interpret" // explanation of how a provision applies
	RouteSimple    Route = "Simple"    // open question, not tied to a specific provision
	RouteAskAgain  Route = "Ask_again" // unrelated to legislation/tax, ask the user to rephrase
)

// ParseRoute validates a raw classifier value against the Route enum.
func ParseRoute(raw string) (Route, error) {
	switch Route(raw) {
	case RouteSummary, RouteInterpret, RouteSimple, RouteAskAgain:
		return Route(raw), nil
	default:
		return "", fmt.Errorf("unknown route %q", raw)
	}
}

// ChatMessage represents a single message in the conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (m ChatMessage) String() string {
	return fmt.Sprintf("%s: %s", m.Role, m.Content)
}

// RequestState is the unit of work threaded through the pipeline. It is owned
// by a single in-flight request and never shared.
type RequestState struct {
	Query             string        `json:"query"`
	ChatHistory       []ChatMessage `json:"chat_history"`
	RetrievedPassages []string      `json:"retrieved_passages,omitempty"`
	Route             Route         `json:"route,omitempty"`
	Response          string        `json:"response,omitempty"`
}

// toProviderMessages maps conversation history into provider messages.
// Messages with an unrecognized role are dropped.
func toProviderMessages(history []ChatMessage) []llm.Message {
	messages := make([]llm.Message, 0, len(history))
	for _, m := range history {
		switch m.Role {
		case "system", "assistant", "user":
			messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
		}
	}
	return messages
}
