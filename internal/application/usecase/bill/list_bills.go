// Package bill contains use cases for reading saved bills.
package bill

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/patungan/backend/internal/application/adapter"
	"github.com/patungan/backend/internal/domain/entity"
)

// ListBillsInput represents the input for listing a user's saved bills.
type ListBillsInput struct {
	UserID uuid.UUID
}

// ListBillsOutput represents the output of listing saved bills.
type ListBillsOutput struct {
	Bills []*entity.Bill
}

// ListBillsUseCase handles listing the saved bills of a user.
type ListBillsUseCase struct {
	billRepo adapter.BillRepository
}

// NewListBillsUseCase creates a new ListBillsUseCase instance.
func NewListBillsUseCase(billRepo adapter.BillRepository) *ListBillsUseCase {
	return &ListBillsUseCase{billRepo: billRepo}
}

// Execute retrieves the user's saved bills, newest first.
func (uc *ListBillsUseCase) Execute(ctx context.Context, input ListBillsInput) (*ListBillsOutput, error) {
	bills, err := uc.billRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	return &ListBillsOutput{Bills: bills}, nil
}
