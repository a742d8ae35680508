// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/patungan/backend/internal/application/adapter"
	"github.com/patungan/backend/internal/domain/entity"
)

// draftKeyPrefix namespaces draft keys in Redis.
const draftKeyPrefix = "draft:"

// redisDraftStore implements the adapter.DraftStore interface on Redis.
// Each user's draft is one JSON document; the TTL keeps abandoned drafts
// from accumulating.
type redisDraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisDraftStore creates a new Redis-backed draft store instance.
func NewRedisDraftStore(client *redis.Client, ttl time.Duration) adapter.DraftStore {
	return &redisDraftStore{
		client: client,
		ttl:    ttl,
	}
}

func draftKey(userID uuid.UUID) string {
	return draftKeyPrefix + userID.String()
}

// Get retrieves the user's current draft. A missing key yields a fresh
// empty draft rather than an error.
func (s *redisDraftStore) Get(ctx context.Context, userID uuid.UUID) (*entity.BillDraft, error) {
	raw, err := s.client.Get(ctx, draftKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return entity.NewBillDraft(), nil
		}
		return nil, fmt.Errorf("failed to read draft: %w", err)
	}

	var draft entity.BillDraft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return nil, fmt.Errorf("failed to decode draft: %w", err)
	}
	if draft.Items == nil {
		draft.Items = []entity.Item{}
	}
	if draft.Participants == nil {
		draft.Participants = []entity.Participant{}
	}
	return &draft, nil
}

// Put replaces the user's draft and refreshes its TTL.
func (s *redisDraftStore) Put(ctx context.Context, userID uuid.UUID, draft *entity.BillDraft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	if err := s.client.Set(ctx, draftKey(userID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write draft: %w", err)
	}
	return nil
}

// Delete discards the user's draft. Deleting an absent draft is not an error.
func (s *redisDraftStore) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := s.client.Del(ctx, draftKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}
