package draft

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/patungan/backend/internal/application/adapter"
	domainerror "github.com/patungan/backend/internal/domain/error"
)

// RemoveParticipantInput represents the input for removing a participant.
type RemoveParticipantInput struct {
	UserID        uuid.UUID
	ParticipantID uuid.UUID
}

// RemoveParticipantUseCase handles removing a participant from the draft.
type RemoveParticipantUseCase struct {
	draftStore adapter.DraftStore
}

// NewRemoveParticipantUseCase creates a new RemoveParticipantUseCase instance.
func NewRemoveParticipantUseCase(draftStore adapter.DraftStore) *RemoveParticipantUseCase {
	return &RemoveParticipantUseCase{draftStore: draftStore}
}

// Execute removes the participant and strips their ID from every item's
// assignment list in the same write, so the draft never references a
// participant that no longer exists.
func (uc *RemoveParticipantUseCase) Execute(ctx context.Context, input RemoveParticipantInput) error {
	draft, err := uc.draftStore.Get(ctx, input.UserID)
	if err != nil {
		return fmt.Errorf("failed to load draft: %w", err)
	}

	idx := draft.ParticipantByID(input.ParticipantID)
	if idx < 0 {
		return domainerror.NewBillError(
			domainerror.ErrCodeParticipantNotFound,
			"participant not found in draft",
			domainerror.ErrParticipantNotFound,
		)
	}

	draft.Participants = append(draft.Participants[:idx], draft.Participants[idx+1:]...)

	for i := range draft.Items {
		assigned := draft.Items[i].AssignedTo[:0]
		for _, pid := range draft.Items[i].AssignedTo {
			if pid != input.ParticipantID {
				assigned = append(assigned, pid)
			}
		}
		draft.Items[i].AssignedTo = assigned
	}

	if err := uc.draftStore.Put(ctx, input.UserID, draft); err != nil {
		return fmt.Errorf("failed to store draft: %w", err)
	}

	return nil
}
