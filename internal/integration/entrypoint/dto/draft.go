// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/patungan/backend/internal/application/usecase/draft"
	"github.com/patungan/backend/internal/domain/entity"
	"github.com/patungan/backend/internal/domain/valueobject"
)

// AddItemRequest represents the request body for adding an item to the draft.
type AddItemRequest struct {
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"required"`
	Quantity int     `json:"quantity" binding:"required"`
	Category string  `json:"category"`
}

// AddParticipantRequest represents the request body for adding a participant.
type AddParticipantRequest struct {
	Name string `json:"name" binding:"required"`
}

// SetSurchargeRequest represents the request body for setting a surcharge.
// Amount is raw user text, parsed server-side.
type SetSurchargeRequest struct {
	Kind   string `json:"kind" binding:"required"`
	Amount string `json:"amount"`
}

// SetInfoRequest represents the request body for setting bill metadata.
type SetInfoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ItemResponse represents one draft item in API responses.
type ItemResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Price      string   `json:"price"`
	Quantity   int      `json:"quantity"`
	Category   string   `json:"category"`
	AssignedTo []string `json:"assigned_to"`
}

// ParticipantResponse represents one draft participant in API responses.
type ParticipantResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AllocationResponse represents the computed breakdown in API responses.
type AllocationResponse struct {
	Subtotal          string            `json:"subtotal"`
	Tax               string            `json:"tax"`
	Service           string            `json:"service"`
	Tip               string            `json:"tip"`
	GrandTotal        string            `json:"grand_total"`
	ParticipantTotals map[string]string `json:"participant_totals"`
}

// DraftResponse represents the full draft with its allocation.
type DraftResponse struct {
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Items        []ItemResponse        `json:"items"`
	Participants []ParticipantResponse `json:"participants"`
	Allocation   AllocationResponse    `json:"allocation"`
}

// ToggleAssignmentRequest represents the request body for toggling an
// item-participant assignment.
type ToggleAssignmentRequest struct {
	ItemID        string `json:"item_id" binding:"required"`
	ParticipantID string `json:"participant_id" binding:"required"`
}

// ToggleAssignmentResponse reports the resulting assignment state.
type ToggleAssignmentResponse struct {
	Assigned bool `json:"assigned"`
}

// ScanReceiptResponse reports the outcome of a receipt scan.
type ScanReceiptResponse struct {
	Candidates int                    `json:"candidates"`
	Added      []ItemResponse         `json:"added"`
	Rejected   []RejectedItemResponse `json:"rejected"`
	Partial    bool                   `json:"partial"`
}

// RejectedItemResponse describes one scanned candidate that was dropped.
type RejectedItemResponse struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// ToItemResponse converts a draft item to its API representation.
func ToItemResponse(item *entity.Item) ItemResponse {
	assigned := make([]string, len(item.AssignedTo))
	for i, id := range item.AssignedTo {
		assigned[i] = id.String()
	}
	return ItemResponse{
		ID:         item.ID.String(),
		Name:       item.Name,
		Price:      item.Price.String(),
		Quantity:   item.Quantity,
		Category:   item.Category,
		AssignedTo: assigned,
	}
}

// ToAllocationResponse converts an allocation to its API representation.
func ToAllocationResponse(alloc *valueobject.Allocation) AllocationResponse {
	totals := make(map[string]string, len(alloc.ParticipantTotals))
	for id, amount := range alloc.ParticipantTotals {
		totals[id.String()] = amount.String()
	}
	return AllocationResponse{
		Subtotal:          alloc.Subtotal.String(),
		Tax:               alloc.Tax.String(),
		Service:           alloc.Service.String(),
		Tip:               alloc.Tip.String(),
		GrandTotal:        alloc.GrandTotal.String(),
		ParticipantTotals: totals,
	}
}

// ToDraftResponse converts a draft and its allocation to the API representation.
func ToDraftResponse(d *entity.BillDraft, alloc *valueobject.Allocation) DraftResponse {
	items := make([]ItemResponse, len(d.Items))
	for i := range d.Items {
		items[i] = ToItemResponse(&d.Items[i])
	}
	participants := make([]ParticipantResponse, len(d.Participants))
	for i := range d.Participants {
		participants[i] = ParticipantResponse{
			ID:   d.Participants[i].ID.String(),
			Name: d.Participants[i].Name,
		}
	}
	return DraftResponse{
		Title:        d.Title,
		Description:  d.Description,
		Items:        items,
		Participants: participants,
		Allocation:   ToAllocationResponse(alloc),
	}
}

// ToScanReceiptResponse converts a scan outcome to its API representation.
func ToScanReceiptResponse(out *draft.ScanReceiptOutput) ScanReceiptResponse {
	added := make([]ItemResponse, len(out.Added))
	for i := range out.Added {
		added[i] = ToItemResponse(&out.Added[i])
	}
	rejected := make([]RejectedItemResponse, len(out.Rejected))
	for i, r := range out.Rejected {
		rejected[i] = RejectedItemResponse{Name: r.Name, Reason: r.Reason}
	}
	return ScanReceiptResponse{
		Candidates: out.Candidates,
		Added:      added,
		Rejected:   rejected,
		Partial:    out.Partial,
	}
}
