// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/patungan/backend/internal/domain/entity"
)

// DraftStore holds the single in-progress bill draft of each user for the
// duration of an editing session.
type DraftStore interface {
	// Get retrieves the user's current draft, returning a fresh empty draft
	// when none exists.
	Get(ctx context.Context, userID uuid.UUID) (*entity.BillDraft, error)

	// Put replaces the user's draft.
	Put(ctx context.Context, userID uuid.UUID, draft *entity.BillDraft) error

	// Delete discards the user's draft.
	Delete(ctx context.Context, userID uuid.UUID) error
}
