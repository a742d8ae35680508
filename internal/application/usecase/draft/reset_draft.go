package draft

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/patungan/backend/internal/application/adapter"
)

// ResetDraftInput represents the input for resetting the draft.
type ResetDraftInput struct {
	UserID uuid.UUID
}

// ResetDraftUseCase handles discarding the user's draft.
type ResetDraftUseCase struct {
	draftStore adapter.DraftStore
}

// NewResetDraftUseCase creates a new ResetDraftUseCase instance.
func NewResetDraftUseCase(draftStore adapter.DraftStore) *ResetDraftUseCase {
	return &ResetDraftUseCase{draftStore: draftStore}
}

// Execute deletes the stored draft. The next read starts from an empty one.
func (uc *ResetDraftUseCase) Execute(ctx context.Context, input ResetDraftInput) error {
	if err := uc.draftStore.Delete(ctx, input.UserID); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}
