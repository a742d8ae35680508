// Package draft contains the use cases that edit a user's bill draft.
package draft

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/patungan/backend/internal/application/adapter"
	"github.com/patungan/backend/internal/domain/entity"
)

// AddParticipantInput represents the input for adding a participant.
type AddParticipantInput struct {
	UserID uuid.UUID
	Name   string
}

// AddParticipantOutput represents the output of adding a participant.
type AddParticipantOutput struct {
	Participant *entity.Participant
}

// AddParticipantUseCase handles adding a participant to the draft.
type AddParticipantUseCase struct {
	draftStore adapter.DraftStore
}

// NewAddParticipantUseCase creates a new AddParticipantUseCase instance.
func NewAddParticipantUseCase(draftStore adapter.DraftStore) *AddParticipantUseCase {
	return &AddParticipantUseCase{draftStore: draftStore}
}

// Execute validates the name against the current draft and appends the
// participant. Uniqueness is case-insensitive and only checked against
// current participants, so a removed participant's name can be reused.
func (uc *AddParticipantUseCase) Execute(ctx context.Context, input AddParticipantInput) (*AddParticipantOutput, error) {
	draft, err := uc.draftStore.Get(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}

	name, err := ValidateParticipantName(input.Name, len(draft.Participants), draft.HasParticipantNamed)
	if err != nil {
		return nil, err
	}

	participant := entity.Participant{
		ID:   uuid.New(),
		Name: name,
	}
	draft.Participants = append(draft.Participants, participant)

	if err := uc.draftStore.Put(ctx, input.UserID, draft); err != nil {
		return nil, fmt.Errorf("failed to store draft: %w", err)
	}

	return &AddParticipantOutput{Participant: &participant}, nil
}
