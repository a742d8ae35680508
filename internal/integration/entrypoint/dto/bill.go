// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/patungan/backend/internal/domain/entity"
)

// BillResponse represents a saved bill in API responses.
type BillResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Tax         string    `json:"tax"`
	Service     string    `json:"service"`
	Tip         string    `json:"tip"`
	Total       string    `json:"total"`
	CreatedAt   time.Time `json:"created_at"`
}

// BillItemResponse represents a saved bill item in API responses.
type BillItemResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
	Category string `json:"category,omitempty"`
}

// BillParticipantResponse represents a saved participant and their share.
type BillParticipantResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	OwedAmount string `json:"owed_amount"`
}

// AssignmentResponse represents one item-participant pair.
type AssignmentResponse struct {
	ItemID        string `json:"item_id"`
	ParticipantID string `json:"participant_id"`
}

// BillDetailsResponse represents a saved bill with its full breakdown.
type BillDetailsResponse struct {
	Bill         BillResponse              `json:"bill"`
	Items        []BillItemResponse        `json:"items"`
	Participants []BillParticipantResponse `json:"participants"`
	Assignments  []AssignmentResponse      `json:"assignments"`
}

// BillListResponse represents the list of a user's saved bills.
type BillListResponse struct {
	Bills []BillResponse `json:"bills"`
}

// SaveBillResponse represents the response after a draft is saved.
type SaveBillResponse struct {
	Bill         BillResponse              `json:"bill"`
	Participants []BillParticipantResponse `json:"participants"`
}

// ToSaveBillResponse converts a saved bill and its participant shares to
// the API representation.
func ToSaveBillResponse(bill *entity.Bill, participants []*entity.BillParticipant) SaveBillResponse {
	shares := make([]BillParticipantResponse, len(participants))
	for i, p := range participants {
		shares[i] = BillParticipantResponse{
			ID:         p.ID.String(),
			Name:       p.Name,
			OwedAmount: p.OwedAmount.String(),
		}
	}
	return SaveBillResponse{
		Bill:         ToBillResponse(bill),
		Participants: shares,
	}
}

// ToBillResponse converts a domain Bill entity to its API representation.
func ToBillResponse(bill *entity.Bill) BillResponse {
	return BillResponse{
		ID:          bill.ID.String(),
		Title:       bill.Title,
		Description: bill.Description,
		Tax:         bill.TaxAmount.String(),
		Service:     bill.ServiceAmount.String(),
		Tip:         bill.TipAmount.String(),
		Total:       bill.TotalAmount.String(),
		CreatedAt:   bill.CreatedAt,
	}
}

// ToBillDetailsResponse converts bill details to the API representation.
func ToBillDetailsResponse(details *entity.BillDetails) BillDetailsResponse {
	items := make([]BillItemResponse, len(details.Items))
	for i, item := range details.Items {
		items[i] = BillItemResponse{
			ID:       item.ID.String(),
			Name:     item.Name,
			Price:    item.Price.String(),
			Quantity: item.Quantity,
			Category: item.Category,
		}
	}
	participants := make([]BillParticipantResponse, len(details.Participants))
	for i, p := range details.Participants {
		participants[i] = BillParticipantResponse{
			ID:         p.ID.String(),
			Name:       p.Name,
			OwedAmount: p.OwedAmount.String(),
		}
	}
	assignments := make([]AssignmentResponse, len(details.Assignments))
	for i, a := range details.Assignments {
		assignments[i] = AssignmentResponse{
			ItemID:        a.ItemID.String(),
			ParticipantID: a.ParticipantID.String(),
		}
	}
	return BillDetailsResponse{
		Bill:         ToBillResponse(details.Bill),
		Items:        items,
		Participants: participants,
		Assignments:  assignments,
	}
}
