// Package draft contains the use cases that edit a user's bill draft.
package draft

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/patungan/backend/internal/application/adapter"
	"github.com/patungan/backend/internal/domain/entity"
)

// AddItemInput represents the input for adding an item to the draft.
type AddItemInput struct {
	UserID   uuid.UUID
	Name     string
	Price    decimal.Decimal
	Quantity int
	Category string
}

// AddItemOutput represents the output of adding an item.
type AddItemOutput struct {
	Item *entity.Item
}

// AddItemUseCase handles adding a manually entered item to the draft.
type AddItemUseCase struct {
	draftStore adapter.DraftStore
}

// NewAddItemUseCase creates a new AddItemUseCase instance.
func NewAddItemUseCase(draftStore adapter.DraftStore) *AddItemUseCase {
	return &AddItemUseCase{draftStore: draftStore}
}

// Execute validates the item and appends it to the draft with an empty
// assignment set. On a validation failure the draft is left untouched.
func (uc *AddItemUseCase) Execute(ctx context.Context, input AddItemInput) (*AddItemOutput, error) {
	validated, err := ValidateItem(input.Name, input.Price, input.Quantity, input.Category)
	if err != nil {
		return nil, err
	}

	draft, err := uc.draftStore.Get(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}

	item := entity.Item{
		ID:         uuid.New(),
		Name:       validated.Name,
		Price:      validated.Price,
		Quantity:   validated.Quantity,
		Category:   validated.Category,
		AssignedTo: []uuid.UUID{},
	}
	draft.Items = append(draft.Items, item)

	if err := uc.draftStore.Put(ctx, input.UserID, draft); err != nil {
		return nil, fmt.Errorf("failed to store draft: %w", err)
	}

	return &AddItemOutput{Item: &item}, nil
}
