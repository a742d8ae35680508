package draft

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/patungan/backend/internal/application/adapter"
)

// SetInfoInput represents the input for setting the draft's title and
// description.
type SetInfoInput struct {
	UserID      uuid.UUID
	Title       string
	Description string
}

// SetInfoUseCase handles updating the draft's bill metadata.
type SetInfoUseCase struct {
	draftStore adapter.DraftStore
}

// NewSetInfoUseCase creates a new SetInfoUseCase instance.
func NewSetInfoUseCase(draftStore adapter.DraftStore) *SetInfoUseCase {
	return &SetInfoUseCase{draftStore: draftStore}
}

// Execute stores the title and description on the draft. An empty title is
// accepted here; the save gate is where a title becomes mandatory.
func (uc *SetInfoUseCase) Execute(ctx context.Context, input SetInfoInput) error {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if err := ValidateBillInfo(title, description); err != nil {
		return err
	}

	draft, err := uc.draftStore.Get(ctx, input.UserID)
	if err != nil {
		return fmt.Errorf("failed to load draft: %w", err)
	}

	draft.Title = title
	draft.Description = description

	if err := uc.draftStore.Put(ctx, input.UserID, draft); err != nil {
		return fmt.Errorf("failed to store draft: %w", err)
	}

	return nil
}
