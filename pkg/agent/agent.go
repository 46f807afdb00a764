package agent

import (
	"context"
	"fmt"
	"log"
	"strings"

	"legislation-qa-be/pkg/llm"
	"legislation-qa-be/pkg/prompt"
)

// Retriever fetches the passages most similar to a query, ranked best-first.
// Retrieval failures degrade to an empty result inside the implementation;
// they never abort the request.
type Retriever interface {
	Retrieve(ctx context.Context, query string) []string
}

// TemplateLoader resolves a prompt template name into its format string.
type TemplateLoader interface {
	Get(name string) (string, error)
}

// node is a state of the answering workflow.
type node int

const (
	nodeEntry node = iota
	nodeRetrieveAndAnswer
	nodeSimpleAnswer
)

// transitions is the static branch table keyed by the router's output.
// Both targets are terminal; execution halts once either completes.
var transitions = map[Route]node{
	RouteSummary:   nodeRetrieveAndAnswer,
	RouteInterpret: nodeRetrieveAndAnswer,
	RouteSimple:    nodeSimpleAnswer,
	RouteAskAgain:  nodeSimpleAnswer,
}

// Agent sequences routing, retrieval and answer synthesis for one request.
type Agent struct {
	router      *Router
	retriever   Retriever
	llmProvider llm.LLMProvider
	templates   TemplateLoader
	logger      *log.Logger
}

func NewAgent(
	router *Router,
	retriever Retriever,
	llmProvider llm.LLMProvider,
	templates TemplateLoader,
	logger *log.Logger,
) *Agent {
	return &Agent{
		router:      router,
		retriever:   retriever,
		llmProvider: llmProvider,
		templates:   templates,
		logger:      logger,
	}
}

// AnswerQuestion runs the workflow for one conversation and returns the
// fully populated terminal state. The last message's content becomes the
// query. Routing and synthesis failures surface as errors; the state is
// never returned with a defaulted response.
func (a *Agent) AnswerQuestion(ctx context.Context, messages []ChatMessage) (*RequestState, error) {
	if len(messages) == 0 {
		return nil, ErrEmptyHistory
	}

	// Entry node: anchors the conditional branch, state passes through unchanged.
	state := &RequestState{
		Query:       messages[len(messages)-1].Content,
		ChatHistory: messages,
	}

	route, err := a.router.Route(ctx, state.ChatHistory)
	if err != nil {
		return nil, err
	}
	state.Route = route

	next, ok := transitions[route]
	if !ok {
		return nil, fmt.Errorf("%w: no transition for route %q", ErrRouting, route)
	}

	switch next {
	case nodeRetrieveAndAnswer:
		err = a.retrieveAndAnswer(ctx, state)
	case nodeSimpleAnswer:
		err = a.simpleAnswer(ctx, state)
	}
	if err != nil {
		return nil, err
	}

	return state, nil
}

// retrieveAndAnswer fetches evidence for the query and synthesizes a grounded
// answer. The last history message is excluded from the synthesis context: it
// duplicates the query, which already appears in the formatted prompt.
func (a *Agent) retrieveAndAnswer(ctx context.Context, state *RequestState) error {
	passages := a.retriever.Retrieve(ctx, state.Query)
	if passages == nil {
		passages = []string{}
	}
	state.RetrievedPassages = passages

	template, err := a.templates.Get(prompt.TemplateGenerateAnswer)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSynthesis, err)
	}

	promptText := prompt.Format(template, map[string]string{
		"question": state.Query,
		"context":  strings.Join(passages, "\n\n"),
	})

	history := toProviderMessages(state.ChatHistory)
	if len(history) > 0 {
		history = history[:len(history)-1]
	}
	history = append(history, llm.Message{Role: "system", Content: promptText})

	response, err := a.llmProvider.Chat(ctx, history)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSynthesis, err)
	}

	a.logger.Printf("[AGENT] Answered %s with %d passages", state.Route, len(passages))
	state.Response = response
	return nil
}

// simpleAnswer synthesizes directly from history, without retrieval. Unlike
// retrieveAndAnswer, the full history is kept and the formatted prompt leads
// the message sequence.
func (a *Agent) simpleAnswer(ctx context.Context, state *RequestState) error {
	last := state.ChatHistory[len(state.ChatHistory)-1]

	template, err := a.templates.Get(prompt.TemplateGenerateSimpleAnswer)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSynthesis, err)
	}

	promptText := prompt.Format(template, map[string]string{
		"question": last.String(),
		"route":    string(state.Route),
	})

	messages := make([]llm.Message, 0, len(state.ChatHistory)+1)
	messages = append(messages, llm.Message{Role: "system", Content: promptText})
	messages = append(messages, toProviderMessages(state.ChatHistory)...)

	response, err := a.llmProvider.Chat(ctx, messages)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSynthesis, err)
	}

	a.logger.Printf("[AGENT] Answered %s without retrieval", state.Route)
	state.Response = response
	return nil
}
