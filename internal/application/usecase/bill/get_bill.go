// Package bill contains use cases for reading saved bills.
package bill

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/patungan/backend/internal/application/adapter"
	"github.com/patungan/backend/internal/domain/entity"
	domainerror "github.com/patungan/backend/internal/domain/error"
)

// GetBillInput represents the input for reading one saved bill.
type GetBillInput struct {
	UserID uuid.UUID
	BillID uuid.UUID
}

// GetBillOutput represents the output of reading one saved bill.
type GetBillOutput struct {
	Details *entity.BillDetails
}

// GetBillUseCase handles reading one saved bill with its breakdown.
type GetBillUseCase struct {
	billRepo adapter.BillRepository
}

// NewGetBillUseCase creates a new GetBillUseCase instance.
func NewGetBillUseCase(billRepo adapter.BillRepository) *GetBillUseCase {
	return &GetBillUseCase{billRepo: billRepo}
}

// Execute retrieves the bill. A bill belonging to another user is reported
// as not found.
func (uc *GetBillUseCase) Execute(ctx context.Context, input GetBillInput) (*GetBillOutput, error) {
	details, err := uc.billRepo.FindByID(ctx, input.BillID, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrBillNotFound) {
			return nil, domainerror.NewBillError(
				domainerror.ErrCodeBillNotFound,
				"bill not found",
				domainerror.ErrBillNotFound,
			)
		}
		return nil, fmt.Errorf("failed to load bill: %w", err)
	}
	return &GetBillOutput{Details: details}, nil
}
