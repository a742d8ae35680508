package draft

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/patungan/backend/internal/application/adapter"
	domainerror "github.com/patungan/backend/internal/domain/error"
)

// ToggleAssignmentInput represents the input for toggling an item assignment.
type ToggleAssignmentInput struct {
	UserID        uuid.UUID
	ItemID        uuid.UUID
	ParticipantID uuid.UUID
}

// ToggleAssignmentOutput reports the resulting assignment state.
type ToggleAssignmentOutput struct {
	Assigned bool
}

// ToggleAssignmentUseCase handles assigning and unassigning a participant
// on an item.
type ToggleAssignmentUseCase struct {
	draftStore adapter.DraftStore
}

// NewToggleAssignmentUseCase creates a new ToggleAssignmentUseCase instance.
func NewToggleAssignmentUseCase(draftStore adapter.DraftStore) *ToggleAssignmentUseCase {
	return &ToggleAssignmentUseCase{draftStore: draftStore}
}

// Execute toggles the participant's presence on the item's assignment list.
// Both the item and the participant must exist in the draft.
func (uc *ToggleAssignmentUseCase) Execute(ctx context.Context, input ToggleAssignmentInput) (*ToggleAssignmentOutput, error) {
	draft, err := uc.draftStore.Get(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}

	itemIdx := draft.ItemByID(input.ItemID)
	if itemIdx < 0 {
		return nil, domainerror.NewBillError(
			domainerror.ErrCodeItemNotFound,
			"item not found in draft",
			domainerror.ErrItemNotFound,
		)
	}
	if draft.ParticipantByID(input.ParticipantID) < 0 {
		return nil, domainerror.NewBillError(
			domainerror.ErrCodeParticipantNotFound,
			"participant not found in draft",
			domainerror.ErrParticipantNotFound,
		)
	}

	item := &draft.Items[itemIdx]
	assigned := true
	if item.IsAssignedTo(input.ParticipantID) {
		kept := item.AssignedTo[:0]
		for _, pid := range item.AssignedTo {
			if pid != input.ParticipantID {
				kept = append(kept, pid)
			}
		}
		item.AssignedTo = kept
		assigned = false
	} else {
		item.AssignedTo = append(item.AssignedTo, input.ParticipantID)
	}

	if err := uc.draftStore.Put(ctx, input.UserID, draft); err != nil {
		return nil, fmt.Errorf("failed to store draft: %w", err)
	}

	return &ToggleAssignmentOutput{Assigned: assigned}, nil
}
