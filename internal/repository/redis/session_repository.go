package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"legislation-qa-be/pkg/store"

	goredis "github.com/redis/go-redis/v9"
)

// ErrSessionNotFound means the session id is unknown or the session expired.
var ErrSessionNotFound = errors.New("chat session not found")

const (
	sessionKeyPrefix = "chat:session:"
	sessionTTL       = 24 * time.Hour
)

// SessionRepository persists chat sessions in Redis so conversation history
// survives between stateless requests.
type SessionRepository struct {
	client *goredis.Client
}

func NewSessionRepository(client *goredis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

func (r *SessionRepository) Save(ctx context.Context, session *store.ChatSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := r.client.Set(ctx, sessionKeyPrefix+session.Id, data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, sessionId string) (*store.ChatSession, error) {
	data, err := r.client.Get(ctx, sessionKeyPrefix+sessionId).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var session store.ChatSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionId string) error {
	return r.client.Del(ctx, sessionKeyPrefix+sessionId).Err()
}
