package draft

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/patungan/backend/internal/domain/entity"
	domainerror "github.com/patungan/backend/internal/domain/error"
)

// buildSaveableDraft seeds the store with a draft that passes the save gate:
// two participants splitting one item, title set.
func buildSaveableDraft(t *testing.T, store *memoryDraftStore, userID uuid.UUID) (itemID uuid.UUID, budiID, sariID uuid.UUID) {
	t.Helper()
	ctx := context.Background()

	if err := NewSetInfoUseCase(store).Execute(ctx, SetInfoInput{UserID: userID, Title: "Makan Malam"}); err != nil {
		t.Fatalf("set info: %v", err)
	}
	itemOut, err := NewAddItemUseCase(store).Execute(ctx, AddItemInput{
		UserID: userID, Name: "Nasi Goreng", Price: decimal.NewFromInt(20000), Quantity: 2, Category: entity.CategoryFood,
	})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	addPart := NewAddParticipantUseCase(store)
	budi, err := addPart.Execute(ctx, AddParticipantInput{UserID: userID, Name: "Budi"})
	if err != nil {
		t.Fatalf("add participant: %v", err)
	}
	sari, err := addPart.Execute(ctx, AddParticipantInput{UserID: userID, Name: "Sari"})
	if err != nil {
		t.Fatalf("add participant: %v", err)
	}
	toggle := NewToggleAssignmentUseCase(store)
	for _, pid := range []uuid.UUID{budi.Participant.ID, sari.Participant.ID} {
		if _, err := toggle.Execute(ctx, ToggleAssignmentInput{UserID: userID, ItemID: itemOut.Item.ID, ParticipantID: pid}); err != nil {
			t.Fatalf("toggle: %v", err)
		}
	}
	return itemOut.Item.ID, budi.Participant.ID, sari.Participant.ID
}

func TestSaveBillUseCase_Gate(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	newUC := func(store *memoryDraftStore) *SaveBillUseCase {
		return NewSaveBillUseCase(store, &recordingBillRepository{}, &stubUserRepository{}, nil)
	}

	t.Run("missing title", func(t *testing.T) {
		store := newMemoryDraftStore()
		_, _ = NewAddItemUseCase(store).Execute(ctx, AddItemInput{UserID: userID, Name: "Kopi", Price: decimal.NewFromInt(15000), Quantity: 1})

		_, err := newUC(store).Execute(ctx, SaveBillInput{UserID: userID})
		if !errors.Is(err, domainerror.ErrTitleRequired) {
			t.Fatalf("expected ErrTitleRequired, got %v", err)
		}
	})

	t.Run("overlong title stored directly", func(t *testing.T) {
		// The info endpoint enforces the limit on entry, so put the title
		// on the stored draft directly to exercise the gate's own check.
		store := newMemoryDraftStore()
		draft := entity.NewBillDraft()
		draft.Title = strings.Repeat("t", MaxTitleLength+1)
		if err := store.Put(ctx, userID, draft); err != nil {
			t.Fatalf("put draft: %v", err)
		}

		_, err := newUC(store).Execute(ctx, SaveBillInput{UserID: userID})
		if !errors.Is(err, domainerror.ErrTitleTooLong) {
			t.Fatalf("expected ErrTitleTooLong, got %v", err)
		}
	})

	t.Run("no items", func(t *testing.T) {
		store := newMemoryDraftStore()
		_ = NewSetInfoUseCase(store).Execute(ctx, SetInfoInput{UserID: userID, Title: "Makan"})

		_, err := newUC(store).Execute(ctx, SaveBillInput{UserID: userID})
		if !errors.Is(err, domainerror.ErrNoItems) {
			t.Fatalf("expected ErrNoItems, got %v", err)
		}
	})

	t.Run("not enough participants", func(t *testing.T) {
		store := newMemoryDraftStore()
		_ = NewSetInfoUseCase(store).Execute(ctx, SetInfoInput{UserID: userID, Title: "Makan"})
		_, _ = NewAddItemUseCase(store).Execute(ctx, AddItemInput{UserID: userID, Name: "Kopi", Price: decimal.NewFromInt(15000), Quantity: 1})
		_, _ = NewAddParticipantUseCase(store).Execute(ctx, AddParticipantInput{UserID: userID, Name: "Budi"})

		_, err := newUC(store).Execute(ctx, SaveBillInput{UserID: userID})
		if !errors.Is(err, domainerror.ErrNotEnoughParticipants) {
			t.Fatalf("expected ErrNotEnoughParticipants, got %v", err)
		}
	})

	t.Run("unassigned items named in message", func(t *testing.T) {
		store := newMemoryDraftStore()
		_ = NewSetInfoUseCase(store).Execute(ctx, SetInfoInput{UserID: userID, Title: "Makan"})
		_, _ = NewAddItemUseCase(store).Execute(ctx, AddItemInput{UserID: userID, Name: "Kopi Susu", Price: decimal.NewFromInt(15000), Quantity: 1})
		addPart := NewAddParticipantUseCase(store)
		_, _ = addPart.Execute(ctx, AddParticipantInput{UserID: userID, Name: "Budi"})
		_, _ = addPart.Execute(ctx, AddParticipantInput{UserID: userID, Name: "Sari"})

		_, err := newUC(store).Execute(ctx, SaveBillInput{UserID: userID})
		if !errors.Is(err, domainerror.ErrUnassignedItems) {
			t.Fatalf("expected ErrUnassignedItems, got %v", err)
		}
		var billErr *domainerror.BillError
		if !errors.As(err, &billErr) {
			t.Fatal("expected a BillError")
		}
		if want := "Kopi Susu"; !strings.Contains(billErr.Message, want) {
			t.Errorf("expected message to name %q, got %q", want, billErr.Message)
		}
	})
}

func TestSaveBillUseCase_Success(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	store := newMemoryDraftStore()
	repo := &recordingBillRepository{}
	queue := &recordingEmailQueue{}
	users := &stubUserRepository{user: entity.NewUser("budi@example.com", "Budi", "hash")}
	buildSaveableDraft(t, store, userID)
	// Tax on top of the 40,000 item.
	_, _ = NewSetSurchargeUseCase(store).Execute(ctx, SetSurchargeInput{UserID: userID, Kind: entity.SurchargeTax, RawAmount: "6000"})

	uc := NewSaveBillUseCase(store, repo, users, queue)
	out, err := uc.Execute(ctx, SaveBillInput{UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("inserts run in order", func(t *testing.T) {
		want := []string{"bill", "items", "participants", "assignments"}
		if len(repo.calls) != len(want) {
			t.Fatalf("expected %d calls, got %v", len(want), repo.calls)
		}
		for i, name := range want {
			if repo.calls[i] != name {
				t.Errorf("call %d: expected %s, got %s", i, name, repo.calls[i])
			}
		}
	})

	t.Run("bill totals", func(t *testing.T) {
		if !out.Bill.TotalAmount.Equal(decimal.NewFromInt(46000)) {
			t.Errorf("expected grand total 46000, got %s", out.Bill.TotalAmount)
		}
		if !out.Bill.TaxAmount.Equal(decimal.NewFromInt(6000)) {
			t.Errorf("expected tax 6000, got %s", out.Bill.TaxAmount)
		}
	})

	t.Run("owed amounts split evenly", func(t *testing.T) {
		if len(repo.participants) != 2 {
			t.Fatalf("expected 2 participants, got %d", len(repo.participants))
		}
		for _, p := range repo.participants {
			if !p.OwedAmount.Equal(decimal.NewFromInt(23000)) {
				t.Errorf("expected %s to owe 23000, got %s", p.Name, p.OwedAmount)
			}
		}
	})

	t.Run("assignments reference persisted rows", func(t *testing.T) {
		if len(repo.assignments) != 2 {
			t.Fatalf("expected 2 assignments, got %d", len(repo.assignments))
		}
		if len(repo.items) != 1 {
			t.Fatalf("expected 1 item, got %d", len(repo.items))
		}
		for _, a := range repo.assignments {
			if a.ItemID != repo.items[0].ID {
				t.Errorf("assignment references unknown item %s", a.ItemID)
			}
		}
	})

	t.Run("summary email queued", func(t *testing.T) {
		if len(queue.jobs) != 1 {
			t.Fatalf("expected 1 queued email, got %d", len(queue.jobs))
		}
		job := queue.jobs[0]
		if job.TemplateType != entity.TemplateBillSummary {
			t.Errorf("expected bill_summary template, got %s", job.TemplateType)
		}
		if job.RecipientEmail != "budi@example.com" {
			t.Errorf("expected owner as recipient, got %s", job.RecipientEmail)
		}
	})

	t.Run("draft reset", func(t *testing.T) {
		draft, _ := store.Get(ctx, userID)
		if len(draft.Items) != 0 || draft.Title != "" {
			t.Error("expected an empty draft after successful save")
		}
	})
}

func TestSaveBillUseCase_InsertFailureKeepsDraft(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	for _, failAt := range []string{"bill", "items", "participants", "assignments"} {
		t.Run("fails at "+failAt, func(t *testing.T) {
			store := newMemoryDraftStore()
			repo := &recordingBillRepository{failAt: failAt}
			buildSaveableDraft(t, store, userID)

			uc := NewSaveBillUseCase(store, repo, &stubUserRepository{}, nil)
			_, err := uc.Execute(ctx, SaveBillInput{UserID: userID})
			if !errors.Is(err, errRepoFailure) {
				t.Fatalf("expected repo failure, got %v", err)
			}
			var billErr *domainerror.BillError
			if !errors.As(err, &billErr) || billErr.Code != domainerror.ErrCodeSaveFailed {
				t.Errorf("expected save-failed code, got %v", err)
			}
			if repo.calls[len(repo.calls)-1] != failAt {
				t.Errorf("expected no calls after %s, got %v", failAt, repo.calls)
			}

			draft, _ := store.Get(ctx, userID)
			if len(draft.Items) == 0 {
				t.Error("expected draft to survive a failed save")
			}
		})
	}
}

// Email queue failures must not fail the save.
func TestSaveBillUseCase_EmailFailureIgnored(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	store := newMemoryDraftStore()
	queue := &recordingEmailQueue{createErr: errors.New("queue down")}
	users := &stubUserRepository{user: entity.NewUser("budi@example.com", "Budi", "hash")}
	buildSaveableDraft(t, store, userID)

	uc := NewSaveBillUseCase(store, &recordingBillRepository{}, users, queue)
	if _, err := uc.Execute(ctx, SaveBillInput{UserID: userID}); err != nil {
		t.Fatalf("expected save to succeed despite email failure, got %v", err)
	}
}
