package chatRepository

import (
	"HealthAssistant/internal/entity"

	"golang.org/x/net/context"
)

// ISessionStore owns every session. Callers serialize turns for a
// session by holding its lock for the duration of the turn; the store
// itself only synchronizes the id -> session mapping.
type ISessionStore interface {
	Lock(sessionID string)
	Unlock(sessionID string)
	Create(ctx context.Context, session entity.ChatSession) error
	Get(ctx context.Context, sessionID string) (entity.ChatSession, error)
	Save(ctx context.Context, session entity.ChatSession) error
	Delete(ctx context.Context, sessionID string) (bool, error)
}
