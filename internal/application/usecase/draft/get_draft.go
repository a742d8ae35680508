// Package draft contains the use cases that edit a user's bill draft.
package draft

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/patungan/backend/internal/application/adapter"
	"github.com/patungan/backend/internal/domain/entity"
	"github.com/patungan/backend/internal/domain/valueobject"
)

// GetDraftInput represents the input for reading the current draft.
type GetDraftInput struct {
	UserID uuid.UUID
}

// GetDraftOutput carries the draft together with its freshly computed
// allocation, so the caller always displays a breakdown that matches the
// current editing state.
type GetDraftOutput struct {
	Draft      *entity.BillDraft
	Allocation *valueobject.Allocation
}

// GetDraftUseCase handles reading the current draft.
type GetDraftUseCase struct {
	draftStore adapter.DraftStore
}

// NewGetDraftUseCase creates a new GetDraftUseCase instance.
func NewGetDraftUseCase(draftStore adapter.DraftStore) *GetDraftUseCase {
	return &GetDraftUseCase{draftStore: draftStore}
}

// Execute loads the draft and recomputes the allocation.
func (uc *GetDraftUseCase) Execute(ctx context.Context, input GetDraftInput) (*GetDraftOutput, error) {
	draft, err := uc.draftStore.Get(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}

	return &GetDraftOutput{
		Draft:      draft,
		Allocation: valueobject.Allocate(draft),
	}, nil
}
