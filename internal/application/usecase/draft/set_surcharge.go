package draft

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/patungan/backend/internal/application/adapter"
	"github.com/patungan/backend/internal/domain/entity"
	domainerror "github.com/patungan/backend/internal/domain/error"
	"github.com/patungan/backend/internal/domain/valueobject"
)

// SetSurchargeInput represents the input for setting a shared surcharge.
// RawAmount is the user-typed text, not a parsed number.
type SetSurchargeInput struct {
	UserID    uuid.UUID
	Kind      entity.SurchargeKind
	RawAmount string
}

// SetSurchargeOutput carries the amount that was actually stored.
type SetSurchargeOutput struct {
	Amount decimal.Decimal
}

// SetSurchargeUseCase handles updating tax, service or tip on the draft.
type SetSurchargeUseCase struct {
	draftStore adapter.DraftStore
}

// NewSetSurchargeUseCase creates a new SetSurchargeUseCase instance.
func NewSetSurchargeUseCase(draftStore adapter.DraftStore) *SetSurchargeUseCase {
	return &SetSurchargeUseCase{draftStore: draftStore}
}

// Execute parses the raw amount and stores it on the named surcharge field.
// Unparseable and negative values are stored as zero rather than rejected,
// so a half-typed field never blocks editing.
func (uc *SetSurchargeUseCase) Execute(ctx context.Context, input SetSurchargeInput) (*SetSurchargeOutput, error) {
	amount, err := valueobject.ParseRupiah(input.RawAmount)
	if err != nil {
		if !errors.Is(err, valueobject.ErrUnparseableAmount) {
			return nil, fmt.Errorf("failed to parse amount: %w", err)
		}
		amount = decimal.Zero
	}
	if amount.IsNegative() {
		amount = decimal.Zero
	}

	draft, err := uc.draftStore.Get(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}

	switch input.Kind {
	case entity.SurchargeTax:
		draft.Tax = amount
	case entity.SurchargeService:
		draft.Service = amount
	case entity.SurchargeTip:
		draft.Tip = amount
	default:
		return nil, domainerror.NewBillError(
			domainerror.ErrCodeInvalidSurchargeKind,
			fmt.Sprintf("unknown surcharge kind: %s", input.Kind),
			domainerror.ErrInvalidSurchargeKind,
		)
	}

	if err := uc.draftStore.Put(ctx, input.UserID, draft); err != nil {
		return nil, fmt.Errorf("failed to store draft: %w", err)
	}

	return &SetSurchargeOutput{Amount: amount}, nil
}
