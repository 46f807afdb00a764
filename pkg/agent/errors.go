package agent

import "errors"

var (
	// ErrRouting means the classification call failed or returned a value
	// outside the Route enum. There is no fallback route; the request fails.
	ErrRouting = errors.New("route classification failed")

	// ErrSynthesis means the final answer-generation call failed.
	ErrSynthesis = errors.New("answer synthesis failed")

	// ErrEmptyHistory means AnswerQuestion was called without any messages.
	ErrEmptyHistory = errors.New("chat history is empty")
)
