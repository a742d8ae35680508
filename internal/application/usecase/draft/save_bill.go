package draft

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/patungan/backend/internal/application/adapter"
	"github.com/patungan/backend/internal/domain/entity"
	domainerror "github.com/patungan/backend/internal/domain/error"
	"github.com/patungan/backend/internal/domain/valueobject"
)

// SaveBillInput represents the input for finalizing the draft into a bill.
type SaveBillInput struct {
	UserID uuid.UUID
}

// SaveBillOutput represents the output of a successful save.
type SaveBillOutput struct {
	Bill         *entity.Bill
	Participants []*entity.BillParticipant
}

// SaveBillUseCase handles validating the draft against the save gate,
// persisting the finalized bill and resetting the draft.
type SaveBillUseCase struct {
	draftStore adapter.DraftStore
	billRepo   adapter.BillRepository
	userRepo   adapter.UserRepository
	emailQueue adapter.EmailQueueRepository
}

// NewSaveBillUseCase creates a new SaveBillUseCase instance. The email
// queue repository may be nil when no email service is configured.
func NewSaveBillUseCase(
	draftStore adapter.DraftStore,
	billRepo adapter.BillRepository,
	userRepo adapter.UserRepository,
	emailQueue adapter.EmailQueueRepository,
) *SaveBillUseCase {
	return &SaveBillUseCase{
		draftStore: draftStore,
		billRepo:   billRepo,
		userRepo:   userRepo,
		emailQueue: emailQueue,
	}
}

// Execute runs the save gate, computes the final allocation and persists
// the bill as four ordered inserts: bill, items, participants, assignments.
// A failing insert aborts the remaining ones; no rollback is attempted and
// the draft is kept so the user can retry. On success the draft is deleted
// and a summary email is queued for the owner.
func (uc *SaveBillUseCase) Execute(ctx context.Context, input SaveBillInput) (*SaveBillOutput, error) {
	draft, err := uc.draftStore.Get(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}

	if err := checkSaveGate(draft); err != nil {
		return nil, err
	}

	alloc := valueobject.Allocate(draft)

	bill := entity.NewBill(
		input.UserID,
		draft.Title,
		draft.Description,
		draft.Tax,
		draft.Service,
		draft.Tip,
		alloc.GrandTotal,
	)

	// Persisted rows get fresh IDs; the maps keep the draft IDs resolvable
	// so assignments can reference the persisted rows.
	itemIDs := make(map[uuid.UUID]uuid.UUID, len(draft.Items))
	items := make([]*entity.BillItem, 0, len(draft.Items))
	for i := range draft.Items {
		item := &draft.Items[i]
		persisted := &entity.BillItem{
			ID:       uuid.New(),
			BillID:   bill.ID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
			Category: item.Category,
		}
		itemIDs[item.ID] = persisted.ID
		items = append(items, persisted)
	}

	participantIDs := make(map[uuid.UUID]uuid.UUID, len(draft.Participants))
	participants := make([]*entity.BillParticipant, 0, len(draft.Participants))
	for i := range draft.Participants {
		p := &draft.Participants[i]
		persisted := &entity.BillParticipant{
			ID:         uuid.New(),
			BillID:     bill.ID,
			Name:       p.Name,
			OwedAmount: alloc.OwedBy(p.ID),
		}
		participantIDs[p.ID] = persisted.ID
		participants = append(participants, persisted)
	}

	var assignments []*entity.ItemAssignment
	for i := range draft.Items {
		item := &draft.Items[i]
		for _, pid := range item.AssignedTo {
			assignments = append(assignments, &entity.ItemAssignment{
				ID:            uuid.New(),
				ItemID:        itemIDs[item.ID],
				ParticipantID: participantIDs[pid],
			})
		}
	}

	if err := uc.billRepo.CreateBill(ctx, bill); err != nil {
		return nil, saveFailed("failed to save bill", err)
	}
	if err := uc.billRepo.CreateItems(ctx, items); err != nil {
		return nil, saveFailed("failed to save bill items", err)
	}
	if err := uc.billRepo.CreateParticipants(ctx, participants); err != nil {
		return nil, saveFailed("failed to save bill participants", err)
	}
	if err := uc.billRepo.CreateAssignments(ctx, assignments); err != nil {
		return nil, saveFailed("failed to save item assignments", err)
	}

	uc.queueSummaryEmail(ctx, input.UserID, bill, participants)

	if err := uc.draftStore.Delete(ctx, input.UserID); err != nil {
		// The bill is already persisted, so a stale draft is the lesser
		// problem; the user can still reset it explicitly.
		slog.Warn("Failed to reset draft after save", "error", err, "userID", input.UserID)
	}

	slog.Info("Bill saved", "billID", bill.ID, "userID", input.UserID,
		"items", len(items), "participants", len(participants))

	return &SaveBillOutput{Bill: bill, Participants: participants}, nil
}

// checkSaveGate verifies the draft is complete enough to persist. Checks
// run in a fixed order and the first failure wins.
func checkSaveGate(draft *entity.BillDraft) error {
	if strings.TrimSpace(draft.Title) == "" {
		return domainerror.NewBillError(
			domainerror.ErrCodeTitleRequired,
			"bill title is required",
			domainerror.ErrTitleRequired,
		)
	}
	// Lengths are already enforced when the info is set, but the draft is
	// rebuilt from the store here, so the gate re-checks them.
	if err := ValidateBillInfo(draft.Title, draft.Description); err != nil {
		return err
	}
	if len(draft.Items) == 0 {
		return domainerror.NewBillError(
			domainerror.ErrCodeNoItems,
			"add at least one item before saving",
			domainerror.ErrNoItems,
		)
	}
	if len(draft.Participants) < MinParticipants {
		return domainerror.NewBillError(
			domainerror.ErrCodeNotEnoughParticipants,
			fmt.Sprintf("at least %d participants are required", MinParticipants),
			domainerror.ErrNotEnoughParticipants,
		)
	}
	if unassigned := draft.UnassignedItemNames(); len(unassigned) > 0 {
		return domainerror.NewBillError(
			domainerror.ErrCodeUnassignedItems,
			fmt.Sprintf("items not assigned to anyone: %s", strings.Join(unassigned, ", ")),
			domainerror.ErrUnassignedItems,
		)
	}
	return nil
}

// queueSummaryEmail enqueues the bill summary for the owner. Failures are
// logged only; the save has already succeeded.
func (uc *SaveBillUseCase) queueSummaryEmail(ctx context.Context, userID uuid.UUID, bill *entity.Bill, participants []*entity.BillParticipant) {
	if uc.emailQueue == nil {
		return
	}

	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		slog.Error("Failed to load user for bill summary email", "error", err, "userID", userID)
		return
	}

	shares := make([]map[string]interface{}, 0, len(participants))
	for _, p := range participants {
		shares = append(shares, map[string]interface{}{
			"name":   p.Name,
			"amount": valueobject.FormatRupiah(p.OwedAmount),
		})
	}

	job := entity.NewEmailJob(
		entity.TemplateBillSummary,
		user.Email,
		user.Name,
		fmt.Sprintf("Rincian patungan: %s", bill.Title),
		map[string]interface{}{
			"billTitle":  bill.Title,
			"grandTotal": valueobject.FormatRupiah(bill.TotalAmount),
			"shares":     shares,
		},
	)
	if err := uc.emailQueue.Create(ctx, job); err != nil {
		slog.Error("Failed to queue bill summary email", "error", err, "billID", bill.ID)
		return
	}
	slog.Info("Bill summary email queued", "billID", bill.ID, "userID", userID)
}

func saveFailed(message string, err error) error {
	return domainerror.NewBillError(domainerror.ErrCodeSaveFailed, message, err)
}
