// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item represents a single purchase on the bill being edited.
type Item struct {
	ID         uuid.UUID
	Name       string
	Price      decimal.Decimal
	Quantity   int
	Category   string
	AssignedTo []uuid.UUID // participant IDs sharing this item
}

// LineAmount returns price multiplied by quantity.
func (i *Item) LineAmount() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// IsAssignedTo reports whether the given participant shares this item.
func (i *Item) IsAssignedTo(participantID uuid.UUID) bool {
	for _, id := range i.AssignedTo {
		if id == participantID {
			return true
		}
	}
	return false
}

// Participant represents one person taking part in the bill.
type Participant struct {
	ID   uuid.UUID
	Name string
}

// SurchargeKind identifies one of the three shared surcharge fields.
type SurchargeKind string

const (
	SurchargeTax     SurchargeKind = "tax"
	SurchargeService SurchargeKind = "service"
	SurchargeTip     SurchargeKind = "tip"
)

// BillDraft is the mutable editing state of a bill before it is saved.
// One draft exists per user; it is created empty and reset to empty on
// a successful save.
type BillDraft struct {
	Title        string
	Description  string
	Items        []Item
	Participants []Participant
	Tax          decimal.Decimal
	Service      decimal.Decimal
	Tip          decimal.Decimal
}

// NewBillDraft creates an empty draft.
func NewBillDraft() *BillDraft {
	return &BillDraft{
		Items:        []Item{},
		Participants: []Participant{},
		Tax:          decimal.Zero,
		Service:      decimal.Zero,
		Tip:          decimal.Zero,
	}
}

// ItemByID returns the index of the item with the given ID, or -1.
func (d *BillDraft) ItemByID(id uuid.UUID) int {
	for i := range d.Items {
		if d.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// ParticipantByID returns the index of the participant with the given ID, or -1.
func (d *BillDraft) ParticipantByID(id uuid.UUID) int {
	for i := range d.Participants {
		if d.Participants[i].ID == id {
			return i
		}
	}
	return -1
}

// HasParticipantNamed reports whether a current participant already carries
// the given name, compared case-insensitively.
func (d *BillDraft) HasParticipantNamed(name string) bool {
	lowered := strings.ToLower(strings.TrimSpace(name))
	for i := range d.Participants {
		if strings.ToLower(d.Participants[i].Name) == lowered {
			return true
		}
	}
	return false
}

// UnassignedItemNames returns the names of items whose assignment set is empty.
func (d *BillDraft) UnassignedItemNames() []string {
	var names []string
	for i := range d.Items {
		if len(d.Items[i].AssignedTo) == 0 {
			names = append(names, d.Items[i].Name)
		}
	}
	return names
}

// Bill represents a finalized, persisted bill.
type Bill struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Title         string
	Description   string
	TaxAmount     decimal.Decimal
	ServiceAmount decimal.Decimal
	TipAmount     decimal.Decimal
	TotalAmount   decimal.Decimal
	CreatedAt     time.Time
}

// NewBill creates a new Bill entity for persistence.
func NewBill(userID uuid.UUID, title, description string, tax, service, tip, total decimal.Decimal) *Bill {
	return &Bill{
		ID:            uuid.New(),
		UserID:        userID,
		Title:         title,
		Description:   description,
		TaxAmount:     tax,
		ServiceAmount: service,
		TipAmount:     tip,
		TotalAmount:   total,
		CreatedAt:     time.Now().UTC(),
	}
}

// BillItem represents a persisted line item of a saved bill.
type BillItem struct {
	ID       uuid.UUID
	BillID   uuid.UUID
	Name     string
	Price    decimal.Decimal
	Quantity int
	Category string
}

// BillParticipant represents a persisted participant of a saved bill,
// carrying the amount that person owes.
type BillParticipant struct {
	ID         uuid.UUID
	BillID     uuid.UUID
	Name       string
	OwedAmount decimal.Decimal
}

// ItemAssignment represents one persisted item-to-participant pair of the
// assignment relation, referencing persisted item and participant IDs.
type ItemAssignment struct {
	ID            uuid.UUID
	ItemID        uuid.UUID
	ParticipantID uuid.UUID
}

// BillDetails bundles a saved bill with its items, participants and
// flattened assignment relation.
type BillDetails struct {
	Bill         *Bill
	Items        []*BillItem
	Participants []*BillParticipant
	Assignments  []*ItemAssignment
}
