package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"legislation-qa-be/internal/dto"
	redisrepo "legislation-qa-be/internal/repository/redis"
	"legislation-qa-be/pkg/agent"
	"legislation-qa-be/pkg/events"
	"legislation-qa-be/pkg/store"

	"github.com/google/uuid"
)

// EventPublisher publishes system events. Publishing is best-effort on the
// chat path; a broken bus must not fail an answered request.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// IChatService defines the chat service interface
type IChatService interface {
	CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error)
	SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
}

type chatService struct {
	agent       *agent.Agent
	sessionRepo *redisrepo.SessionRepository
	publisher   EventPublisher
	logger      *log.Logger
}

func NewChatService(
	qaAgent *agent.Agent,
	sessionRepo *redisrepo.SessionRepository,
	publisher EventPublisher,
	logger *log.Logger,
) IChatService {
	return &chatService{
		agent:       qaAgent,
		sessionRepo: sessionRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

func (s *chatService) CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error) {
	now := time.Now()
	session := &store.ChatSession{
		Id:        uuid.NewString(),
		History:   []agent.ChatMessage{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &dto.CreateSessionResponse{
		SessionId: session.Id,
		CreatedAt: session.CreatedAt,
	}, nil
}

func (s *chatService) SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	session, err := s.sessionRepo.Get(ctx, request.SessionId)
	if err != nil {
		return nil, err
	}

	session.Append("user", request.Message)

	started := time.Now()
	state, err := s.agent.AnswerQuestion(ctx, session.History)
	if err != nil {
		// Failed requests surface as errors; the user message is not
		// persisted so a retry sees the same conversation.
		return nil, err
	}

	session.Append("assistant", state.Response)
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		s.logger.Printf("[CHAT] Failed to persist session %s: %v", session.Id, err)
	}

	s.publishAnswered(session.Id, state.Route, time.Since(started))

	return &dto.SendChatResponse{
		SessionId: session.Id,
		Response:  state.Response,
		Route:     string(state.Route),
	}, nil
}

func (s *chatService) publishAnswered(sessionId string, route agent.Route, took time.Duration) {
	if s.publisher == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	event := events.NewChatAnswered(sessionId, string(route), took.Milliseconds())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Printf("[CHAT] Failed to publish %s: %v", event.EventType(), err)
	}
}
