package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huevitoia/chef/internal/cache"
	apperrors "github.com/huevitoia/chef/internal/errors"
)

// Store persists sessions as JSON blobs in the cache, keyed by session
// ID. Every write refreshes the TTL so active conversations stay alive.
type Store struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewStore(c cache.Cache, ttl time.Duration) *Store {
	return &Store{cache: c, ttl: ttl}
}

func sessionKey(id string) string {
	return "session:" + id
}

// Get loads a session by ID. A missing or expired session yields a
// NOT_FOUND error.
func (st *Store) Get(ctx context.Context, id string) (*Session, error) {
	data, err := st.cache.Get(ctx, sessionKey(id))
	if err != nil {
		return nil, apperrors.NewStorageError("failed to load session", "SESSION_LOAD_FAILED", err)
	}
	if data == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("session %s not found", id), "SESSION_NOT_FOUND", "Start a new conversation.")
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, apperrors.NewStorageError("failed to decode session", "SESSION_DECODE_FAILED", err)
	}
	return &s, nil
}

// Put saves the session and refreshes its TTL.
func (st *Store) Put(ctx context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return apperrors.NewStorageError("failed to encode session", "SESSION_ENCODE_FAILED", err)
	}
	if err := st.cache.Set(ctx, sessionKey(s.ID), data, st.ttl); err != nil {
		return apperrors.NewStorageError("failed to save session", "SESSION_SAVE_FAILED", err)
	}
	return nil
}

// Delete removes a session. Deleting an absent session is not an error.
func (st *Store) Delete(ctx context.Context, id string) error {
	if err := st.cache.Delete(ctx, sessionKey(id)); err != nil {
		return apperrors.NewStorageError("failed to delete session", "SESSION_DELETE_FAILED", err)
	}
	return nil
}
