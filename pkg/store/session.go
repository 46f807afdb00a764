package store

import (
	"time"

	"legislation-qa-be/pkg/agent"
)

// ChatSession is the conversation state carried between requests. The
// answering pipeline itself is stateless; history lives here.
type ChatSession struct {
	Id        string              `json:"id"`
	History   []agent.ChatMessage `json:"history"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// Append adds a message to the conversation, oldest first.
func (s *ChatSession) Append(role, content string) {
	s.History = append(s.History, agent.ChatMessage{Role: role, Content: content})
	s.UpdatedAt = time.Now()
}
