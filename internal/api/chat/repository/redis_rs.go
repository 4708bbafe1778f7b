package chatRepository

import (
	"HealthAssistant/internal/api/chat"
	"HealthAssistant/internal/entity"
	contextPkg "HealthAssistant/pkg/context"
	redisPkg "HealthAssistant/pkg/redis"
	"encoding/json"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const sessionKeyPrefix = "chat:session:"

// redisStore externalizes session state so multiple instances can share
// it. Per-session locks stay in process; turn ordering is only
// guaranteed when one instance owns a session's traffic.
type redisStore struct {
	server redisPkg.IRedis

	lockMu sync.Mutex
	locks  map[string]*sync.Mutex

	log *logrus.Logger
}

func NewRedisStore(server redisPkg.IRedis, log *logrus.Logger) ISessionStore {
	return &redisStore{
		server: server,
		locks:  make(map[string]*sync.Mutex),
		log:    log,
	}
}

func (r *redisStore) sessionLock(sessionID string) *sync.Mutex {
	r.lockMu.Lock()
	defer r.lockMu.Unlock()

	if _, exist := r.locks[sessionID]; !exist {
		r.locks[sessionID] = &sync.Mutex{}
	}
	return r.locks[sessionID]
}

func (r *redisStore) Lock(sessionID string) {
	r.sessionLock(sessionID).Lock()
}

func (r *redisStore) Unlock(sessionID string) {
	r.sessionLock(sessionID).Unlock()
}

func (r *redisStore) Create(ctx context.Context, session entity.ChatSession) error {
	if _, err := r.server.GetJSON(ctx, sessionKeyPrefix+session.ID); err == nil {
		return chat.ErrSessionExists
	}
	return r.Save(ctx, session)
}

func (r *redisStore) Get(ctx context.Context, sessionID string) (entity.ChatSession, error) {
	requestID := contextPkg.GetRequestID(ctx)

	raw, err := r.server.GetJSON(ctx, sessionKeyPrefix+sessionID)
	if errors.Is(err, redisPkg.ErrKeyNotFound) {
		return entity.ChatSession{}, chat.ErrSessionNotFound
	} else if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"error":      err.Error(),
		}).Error("Failed to read session from redis")
		return entity.ChatSession{}, chat.ErrSessionStoreFailed
	}

	var session entity.ChatSession
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"error":      err.Error(),
		}).Error("Failed to unmarshal session payload")
		return entity.ChatSession{}, chat.ErrSessionStoreFailed
	}

	return session, nil
}

func (r *redisStore) Save(ctx context.Context, session entity.ChatSession) error {
	requestID := contextPkg.GetRequestID(ctx)

	payload, err := json.Marshal(session)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": session.ID,
			"error":      err.Error(),
		}).Error("Failed to marshal session payload")
		return chat.ErrSessionStoreFailed
	}

	if err := r.server.SetJSON(ctx, sessionKeyPrefix+session.ID, string(payload)); err != nil {
		return chat.ErrSessionStoreFailed
	}
	return nil
}

func (r *redisStore) Delete(ctx context.Context, sessionID string) (bool, error) {
	deleted, err := r.server.Delete(ctx, sessionKeyPrefix+sessionID)
	if err != nil {
		return false, chat.ErrSessionStoreFailed
	}
	return deleted, nil
}
