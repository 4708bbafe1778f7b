package chatRepository

import (
	"context"
	"sync"
	"testing"
	"time"

	"HealthAssistant/internal/api/chat"
	"HealthAssistant/internal/entity"
	"HealthAssistant/pkg/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() ISessionStore {
	return NewMemoryStore(log.NewLogger())
}

func testSession(id string) entity.ChatSession {
	now := time.Now().UTC()
	return entity.ChatSession{
		ID:        id,
		History:   []entity.Turn{},
		Metadata:  map[string]interface{}{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestMemoryStore_CreateAndGet(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	session := testSession("session_01test")
	require.NoError(t, store.Create(ctx, session))

	got, err := store.Get(ctx, "session_01test")
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
}

func TestMemoryStore_CreateDuplicate(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, testSession("session_dup")))

	err := store.Create(ctx, testSession("session_dup"))
	assert.ErrorIs(t, err, chat.ErrSessionExists)
}

func TestMemoryStore_GetMissing(t *testing.T) {
	store := newTestStore()

	_, err := store.Get(context.Background(), "session_missing")
	assert.ErrorIs(t, err, chat.ErrSessionNotFound)
}

func TestMemoryStore_SaveOverwrites(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	session := testSession("session_sv")
	require.NoError(t, store.Create(ctx, session))

	session.History = append(session.History, entity.Turn{
		Role:    "user",
		Content: "hello",
	})
	require.NoError(t, store.Save(ctx, session))

	got, err := store.Get(ctx, "session_sv")
	require.NoError(t, err)
	require.Len(t, got.History, 1)
	assert.Equal(t, "hello", got.History[0].Content)
}

func TestMemoryStore_Delete(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, testSession("session_del")))

	deleted, err := store.Delete(ctx, "session_del")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.Delete(ctx, "session_del")
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = store.Get(ctx, "session_del")
	assert.ErrorIs(t, err, chat.ErrSessionNotFound)
}

func TestMemoryStore_LockSerializesTurns(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	session := testSession("session_lock")
	require.NoError(t, store.Create(ctx, session))

	const workers = 8
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()

			store.Lock("session_lock")
			defer store.Unlock("session_lock")

			current, err := store.Get(ctx, "session_lock")
			assert.NoError(t, err)

			current.History = append(current.History, entity.Turn{Role: "user", Content: "turn"})
			assert.NoError(t, store.Save(ctx, current))
		}()
	}
	wg.Wait()

	got, err := store.Get(ctx, "session_lock")
	require.NoError(t, err)
	assert.Len(t, got.History, workers)
}
