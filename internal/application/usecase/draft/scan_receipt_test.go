package draft

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/patungan/backend/internal/application/adapter"
	"github.com/patungan/backend/internal/domain/entity"
	domainerror "github.com/patungan/backend/internal/domain/error"
)

func TestScanReceiptUseCase(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	image := []byte("fake-jpeg-bytes")

	t.Run("scanner unavailable", func(t *testing.T) {
		uc := NewScanReceiptUseCase(newMemoryDraftStore(), &stubScanner{available: false})
		_, err := uc.Execute(ctx, ScanReceiptInput{UserID: userID, Image: image, MimeType: "image/jpeg"})
		if !errors.Is(err, domainerror.ErrScannerUnavailable) {
			t.Fatalf("expected ErrScannerUnavailable, got %v", err)
		}
	})

	t.Run("empty image rejected", func(t *testing.T) {
		uc := NewScanReceiptUseCase(newMemoryDraftStore(), &stubScanner{available: true})
		_, err := uc.Execute(ctx, ScanReceiptInput{UserID: userID, Image: nil, MimeType: "image/jpeg"})
		if !errors.Is(err, domainerror.ErrInvalidImage) {
			t.Fatalf("expected ErrInvalidImage, got %v", err)
		}
	})

	t.Run("scan failure wrapped", func(t *testing.T) {
		scanErr := errors.New("model timeout")
		uc := NewScanReceiptUseCase(newMemoryDraftStore(), &stubScanner{available: true, err: scanErr})
		_, err := uc.Execute(ctx, ScanReceiptInput{UserID: userID, Image: image, MimeType: "image/jpeg"})
		if !errors.Is(err, scanErr) {
			t.Fatalf("expected wrapped scan error, got %v", err)
		}
	})

	t.Run("no candidates", func(t *testing.T) {
		uc := NewScanReceiptUseCase(newMemoryDraftStore(), &stubScanner{available: true})
		_, err := uc.Execute(ctx, ScanReceiptInput{UserID: userID, Image: image, MimeType: "image/jpeg"})
		if !errors.Is(err, domainerror.ErrNoCandidates) {
			t.Fatalf("expected ErrNoCandidates, got %v", err)
		}
	})

	t.Run("partial keep reports counts", func(t *testing.T) {
		store := newMemoryDraftStore()
		scanner := &stubScanner{available: true, candidates: []adapter.ScannedItem{
			{Name: "Nasi Goreng", Price: 20000, Quantity: 2},
			{Name: "", Price: 5000, Quantity: 1},
			{Name: "Es Teh", Price: 5000},
		}}
		uc := NewScanReceiptUseCase(store, scanner)

		out, err := uc.Execute(ctx, ScanReceiptInput{UserID: userID, Image: image, MimeType: "image/jpeg"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Candidates != 3 {
			t.Errorf("expected 3 candidates, got %d", out.Candidates)
		}
		if len(out.Added) != 2 {
			t.Fatalf("expected 2 added items, got %d", len(out.Added))
		}
		if len(out.Rejected) != 1 {
			t.Errorf("expected 1 rejected candidate, got %d", len(out.Rejected))
		}
		if !out.Partial {
			t.Error("expected the scan to be reported as partial")
		}

		draft, _ := store.Get(ctx, userID)
		if len(draft.Items) != 2 {
			t.Fatalf("expected 2 items in draft, got %d", len(draft.Items))
		}
		for _, item := range draft.Items {
			if item.Category != entity.CategoryFood {
				t.Errorf("expected default category %q, got %q", entity.CategoryFood, item.Category)
			}
			if len(item.AssignedTo) != 0 {
				t.Errorf("expected scanned items to start unassigned, got %v", item.AssignedTo)
			}
		}
	})

	t.Run("missing quantity defaults to one", func(t *testing.T) {
		store := newMemoryDraftStore()
		scanner := &stubScanner{available: true, candidates: []adapter.ScannedItem{
			{Name: "Es Teh", Price: 5000},
		}}
		uc := NewScanReceiptUseCase(store, scanner)

		out, err := uc.Execute(ctx, ScanReceiptInput{UserID: userID, Image: image, MimeType: "image/jpeg"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Added[0].Quantity != 1 {
			t.Errorf("expected quantity 1, got %d", out.Added[0].Quantity)
		}
		if !out.Added[0].Price.Equal(decimal.NewFromInt(5000)) {
			t.Errorf("expected price 5000, got %s", out.Added[0].Price)
		}
		if out.Partial {
			t.Error("expected a full keep not to be partial")
		}
	})

	t.Run("all candidates invalid leaves draft untouched", func(t *testing.T) {
		store := newMemoryDraftStore()
		scanner := &stubScanner{available: true, candidates: []adapter.ScannedItem{
			{Name: "", Price: 1000, Quantity: 1},
			{Name: "Gratis", Price: 0, Quantity: 1},
		}}
		uc := NewScanReceiptUseCase(store, scanner)

		_, err := uc.Execute(ctx, ScanReceiptInput{UserID: userID, Image: image, MimeType: "image/jpeg"})
		if !errors.Is(err, domainerror.ErrNoValidCandidates) {
			t.Fatalf("expected ErrNoValidCandidates, got %v", err)
		}
		if store.puts != 0 {
			t.Errorf("expected no draft writes, got %d", store.puts)
		}
	})
}
