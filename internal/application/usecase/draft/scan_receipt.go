package draft

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/patungan/backend/internal/application/adapter"
	"github.com/patungan/backend/internal/domain/entity"
	domainerror "github.com/patungan/backend/internal/domain/error"
)

// ScanReceiptInput represents the input for scanning a receipt image.
type ScanReceiptInput struct {
	UserID   uuid.UUID
	Image    []byte
	MimeType string
}

// ScanReceiptOutput reports how the scan went: how many candidates the
// scanner produced, which ones made it into the draft and which were
// dropped with the reason.
type ScanReceiptOutput struct {
	Candidates int
	Added      []entity.Item
	Rejected   []RejectedCandidate
	Partial    bool // true when some but not all candidates were kept
}

// RejectedCandidate describes one scanned candidate that failed validation.
type RejectedCandidate struct {
	Name   string
	Reason string
}

// ScanReceiptUseCase handles extracting items from a receipt image and
// appending the valid ones to the draft.
type ScanReceiptUseCase struct {
	draftStore adapter.DraftStore
	scanner    adapter.ReceiptScanner
}

// NewScanReceiptUseCase creates a new ScanReceiptUseCase instance.
func NewScanReceiptUseCase(draftStore adapter.DraftStore, scanner adapter.ReceiptScanner) *ScanReceiptUseCase {
	return &ScanReceiptUseCase{
		draftStore: draftStore,
		scanner:    scanner,
	}
}

// Execute scans the image and appends every candidate that passes item
// validation to the draft. Invalid candidates are dropped individually;
// the draft is only written when at least one candidate survives, so a
// fully invalid scan leaves the draft untouched.
func (uc *ScanReceiptUseCase) Execute(ctx context.Context, input ScanReceiptInput) (*ScanReceiptOutput, error) {
	if !uc.scanner.IsAvailable() {
		return nil, domainerror.NewScanError(
			domainerror.ErrCodeScannerUnavailable,
			"receipt scanning is not configured",
			domainerror.ErrScannerUnavailable,
		)
	}
	if len(input.Image) == 0 {
		return nil, domainerror.NewScanError(
			domainerror.ErrCodeInvalidImage,
			"receipt image is empty",
			domainerror.ErrInvalidImage,
		)
	}

	candidates, err := uc.scanner.Scan(ctx, input.Image, input.MimeType)
	if err != nil {
		return nil, domainerror.NewScanError(
			domainerror.ErrCodeScanFailed,
			"failed to analyze receipt",
			err,
		)
	}
	if len(candidates) == 0 {
		return nil, domainerror.NewScanError(
			domainerror.ErrCodeNoCandidates,
			"no items were detected on the receipt",
			domainerror.ErrNoCandidates,
		)
	}

	var added []entity.Item
	var rejected []RejectedCandidate
	for _, candidate := range candidates {
		quantity := candidate.Quantity
		if quantity == 0 {
			quantity = 1
		}
		validated, err := ValidateItem(candidate.Name, decimal.NewFromFloat(candidate.Price), quantity, entity.CategoryFood)
		if err != nil {
			slog.Debug("Dropping scanned candidate", "name", candidate.Name, "reason", err.Error())
			rejected = append(rejected, RejectedCandidate{Name: candidate.Name, Reason: err.Error()})
			continue
		}
		added = append(added, entity.Item{
			ID:         uuid.New(),
			Name:       validated.Name,
			Price:      validated.Price,
			Quantity:   validated.Quantity,
			Category:   validated.Category,
			AssignedTo: []uuid.UUID{},
		})
	}

	if len(added) == 0 {
		return nil, domainerror.NewScanError(
			domainerror.ErrCodeNoValidCandidates,
			fmt.Sprintf("none of the %d detected items could be added", len(candidates)),
			domainerror.ErrNoValidCandidates,
		)
	}

	draft, err := uc.draftStore.Get(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}
	draft.Items = append(draft.Items, added...)
	if err := uc.draftStore.Put(ctx, input.UserID, draft); err != nil {
		return nil, fmt.Errorf("failed to store draft: %w", err)
	}

	slog.Info("Receipt scanned", "candidates", len(candidates), "added", len(added))

	return &ScanReceiptOutput{
		Candidates: len(candidates),
		Added:      added,
		Rejected:   rejected,
		Partial:    len(added) < len(candidates),
	}, nil
}
