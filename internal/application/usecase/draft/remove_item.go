// Package draft contains the use cases that edit a user's bill draft.
package draft

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/patungan/backend/internal/application/adapter"
	domainerror "github.com/patungan/backend/internal/domain/error"
)

// RemoveItemInput represents the input for removing an item from the draft.
type RemoveItemInput struct {
	UserID uuid.UUID
	ItemID uuid.UUID
}

// RemoveItemOutput represents the output of removing an item.
type RemoveItemOutput struct{}

// RemoveItemUseCase handles removing an item from the draft.
type RemoveItemUseCase struct {
	draftStore adapter.DraftStore
}

// NewRemoveItemUseCase creates a new RemoveItemUseCase instance.
func NewRemoveItemUseCase(draftStore adapter.DraftStore) *RemoveItemUseCase {
	return &RemoveItemUseCase{draftStore: draftStore}
}

// Execute removes the item by ID. Participants are not affected.
func (uc *RemoveItemUseCase) Execute(ctx context.Context, input RemoveItemInput) (*RemoveItemOutput, error) {
	draft, err := uc.draftStore.Get(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}

	idx := draft.ItemByID(input.ItemID)
	if idx < 0 {
		return nil, domainerror.NewBillError(
			domainerror.ErrCodeItemNotFound,
			"item not found in draft",
			domainerror.ErrItemNotFound,
		)
	}

	draft.Items = append(draft.Items[:idx], draft.Items[idx+1:]...)

	if err := uc.draftStore.Put(ctx, input.UserID, draft); err != nil {
		return nil, fmt.Errorf("failed to store draft: %w", err)
	}

	return &RemoveItemOutput{}, nil
}
