// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/patungan/backend/internal/application/adapter"
	"github.com/patungan/backend/internal/domain/entity"
	domainerror "github.com/patungan/backend/internal/domain/error"
	"github.com/patungan/backend/internal/integration/persistence/model"
)

// billRepository implements the adapter.BillRepository interface.
type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new bill repository instance.
func NewBillRepository(db *gorm.DB) adapter.BillRepository {
	return &billRepository{
		db: db,
	}
}

// CreateBill inserts the bill record.
func (r *billRepository) CreateBill(ctx context.Context, bill *entity.Bill) error {
	billModel := model.BillModelFromEntity(bill)
	result := r.db.WithContext(ctx).Create(billModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// CreateItems bulk-inserts the bill's item records.
func (r *billRepository) CreateItems(ctx context.Context, items []*entity.BillItem) error {
	if len(items) == 0 {
		return nil
	}
	models := make([]*model.BillItemModel, len(items))
	for i, item := range items {
		models[i] = model.BillItemModelFromEntity(item)
	}
	result := r.db.WithContext(ctx).Create(models)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// CreateParticipants bulk-inserts the bill's participant records.
func (r *billRepository) CreateParticipants(ctx context.Context, participants []*entity.BillParticipant) error {
	if len(participants) == 0 {
		return nil
	}
	models := make([]*model.BillParticipantModel, len(participants))
	for i, p := range participants {
		models[i] = model.BillParticipantModelFromEntity(p)
	}
	result := r.db.WithContext(ctx).Create(models)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// CreateAssignments bulk-inserts the flattened item-participant relation.
func (r *billRepository) CreateAssignments(ctx context.Context, assignments []*entity.ItemAssignment) error {
	if len(assignments) == 0 {
		return nil
	}
	models := make([]*model.ItemAssignmentModel, len(assignments))
	for i, a := range assignments {
		models[i] = model.ItemAssignmentModelFromEntity(a)
	}
	result := r.db.WithContext(ctx).Create(models)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByUser retrieves all saved bills for a user, newest first.
func (r *billRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Bill, error) {
	var billModels []model.BillModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&billModels)
	if result.Error != nil {
		return nil, result.Error
	}

	bills := make([]*entity.Bill, len(billModels))
	for i, bm := range billModels {
		bills[i] = bm.ToEntity()
	}
	return bills, nil
}

// FindByID retrieves one saved bill with its items, participants and
// assignment relation. A bill owned by another user is reported as not found.
func (r *billRepository) FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.BillDetails, error) {
	var billModel model.BillModel
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&billModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBillNotFound
		}
		return nil, result.Error
	}

	var itemModels []model.BillItemModel
	if err := r.db.WithContext(ctx).Where("bill_id = ?", id).Find(&itemModels).Error; err != nil {
		return nil, err
	}

	var participantModels []model.BillParticipantModel
	if err := r.db.WithContext(ctx).Where("bill_id = ?", id).Find(&participantModels).Error; err != nil {
		return nil, err
	}

	itemIDs := make([]uuid.UUID, len(itemModels))
	for i, im := range itemModels {
		itemIDs[i] = im.ID
	}

	var assignmentModels []model.ItemAssignmentModel
	if len(itemIDs) > 0 {
		if err := r.db.WithContext(ctx).Where("item_id IN ?", itemIDs).Find(&assignmentModels).Error; err != nil {
			return nil, err
		}
	}

	details := &entity.BillDetails{
		Bill:         billModel.ToEntity(),
		Items:        make([]*entity.BillItem, len(itemModels)),
		Participants: make([]*entity.BillParticipant, len(participantModels)),
		Assignments:  make([]*entity.ItemAssignment, len(assignmentModels)),
	}
	for i, im := range itemModels {
		details.Items[i] = im.ToEntity()
	}
	for i, pm := range participantModels {
		details.Participants[i] = pm.ToEntity()
	}
	for i, am := range assignmentModels {
		details.Assignments[i] = am.ToEntity()
	}
	return details, nil
}
