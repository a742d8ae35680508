// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/patungan/backend/internal/domain/entity"
)

// BillRepository defines the persistence operations for finalized bills.
// Saving a bill is four ordered inserts; any failing step aborts the ones
// after it and the caller reports the whole save as failed. No rollback is
// attempted here.
type BillRepository interface {
	// CreateBill inserts the bill record.
	CreateBill(ctx context.Context, bill *entity.Bill) error

	// CreateItems bulk-inserts the bill's item records, preserving input order.
	CreateItems(ctx context.Context, items []*entity.BillItem) error

	// CreateParticipants bulk-inserts the bill's participant records,
	// preserving input order.
	CreateParticipants(ctx context.Context, participants []*entity.BillParticipant) error

	// CreateAssignments bulk-inserts the flattened item-participant relation.
	CreateAssignments(ctx context.Context, assignments []*entity.ItemAssignment) error

	// FindByUser retrieves all saved bills for a user, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Bill, error)

	// FindByID retrieves one saved bill with its items, participants and
	// assignment relation. Returns ErrBillNotFound when the bill does not
	// exist or belongs to another user.
	FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.BillDetails, error)
}
