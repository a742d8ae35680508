// Package valueobject contains domain value objects for the Patungan system.
package valueobject

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/patungan/backend/internal/domain/entity"
)

// shareScale is the number of fractional digits kept when dividing amounts
// between participants. Currency rounding, if any, happens at persistence
// or display time, never here.
const shareScale = 8

// Allocation is the derived breakdown of a draft: totals plus the amount
// each participant owes. It is never stored as-is; it is recomputed from
// the draft on every read and once more right before persistence.
type Allocation struct {
	Subtotal          decimal.Decimal
	Tax               decimal.Decimal
	Service           decimal.Decimal
	Tip               decimal.Decimal
	SurchargeTotal    decimal.Decimal
	GrandTotal        decimal.Decimal
	ParticipantTotals map[uuid.UUID]decimal.Decimal
}

// Allocate computes the full allocation for a draft. It is pure and
// deterministic: same draft, same result.
//
// Each participant owes an equal share of the surcharges (tax, service,
// tip) plus, for every item assigned to them, the item's line amount
// divided by the number of participants sharing that item. Items with an
// empty assignment set count toward the subtotal and grand total but are
// not allocated to anyone; the save gate refuses to persist such a state.
// With zero participants every per-head term is zero.
func Allocate(draft *entity.BillDraft) *Allocation {
	subtotal := decimal.Zero
	for i := range draft.Items {
		subtotal = subtotal.Add(draft.Items[i].LineAmount())
	}

	surcharge := draft.Tax.Add(draft.Service).Add(draft.Tip)

	alloc := &Allocation{
		Subtotal:          subtotal,
		Tax:               draft.Tax,
		Service:           draft.Service,
		Tip:               draft.Tip,
		SurchargeTotal:    surcharge,
		GrandTotal:        subtotal.Add(surcharge),
		ParticipantTotals: make(map[uuid.UUID]decimal.Decimal, len(draft.Participants)),
	}

	if len(draft.Participants) == 0 {
		return alloc
	}

	headCount := decimal.NewFromInt(int64(len(draft.Participants)))
	surchargePerHead := surcharge.DivRound(headCount, shareScale)
	for i := range draft.Participants {
		alloc.ParticipantTotals[draft.Participants[i].ID] = surchargePerHead
	}

	for i := range draft.Items {
		item := &draft.Items[i]
		if len(item.AssignedTo) == 0 {
			continue
		}
		share := item.LineAmount().DivRound(decimal.NewFromInt(int64(len(item.AssignedTo))), shareScale)
		for _, pid := range item.AssignedTo {
			if total, ok := alloc.ParticipantTotals[pid]; ok {
				alloc.ParticipantTotals[pid] = total.Add(share)
			}
		}
	}

	return alloc
}

// OwedBy returns the amount owed by the given participant, or zero when the
// participant is not part of the allocation.
func (a *Allocation) OwedBy(participantID uuid.UUID) decimal.Decimal {
	if total, ok := a.ParticipantTotals[participantID]; ok {
		return total
	}
	return decimal.Zero
}
