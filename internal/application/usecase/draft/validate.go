// Package draft contains the use cases that edit a user's bill draft.
package draft

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	domainerror "github.com/patungan/backend/internal/domain/error"
)

const (
	// MaxItemNameLength is the maximum allowed length for item names.
	MaxItemNameLength = 100
	// MaxCategoryLength is the maximum allowed length for item categories.
	MaxCategoryLength = 50
	// MaxItemQuantity is the maximum allowed item quantity.
	MaxItemQuantity = 9999
	// MaxParticipantNameLength is the maximum allowed length for participant names.
	MaxParticipantNameLength = 100
	// MaxParticipants is the participant ceiling per bill.
	MaxParticipants = 10
	// MinParticipants is the minimum participant count at save time.
	MinParticipants = 2
	// MaxTitleLength is the maximum allowed length for the bill title.
	MaxTitleLength = 200
	// MaxDescriptionLength is the maximum allowed length for the bill description.
	MaxDescriptionLength = 1000
)

// MaxItemPrice is the maximum allowed unit price.
var MaxItemPrice = decimal.NewFromInt(999999999)

// ValidatedItem is a normalized item fragment produced by ValidateItem.
// The caller attaches the ID and an empty assignment set.
type ValidatedItem struct {
	Name     string
	Price    decimal.Decimal
	Quantity int
	Category string
}

// ValidateItem checks a raw item and returns its normalized fragment. It is
// shared verbatim by manual entry and by each candidate a receipt scan
// produces.
func ValidateItem(name string, price decimal.Decimal, quantity int, category string) (*ValidatedItem, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, domainerror.NewBillError(
			domainerror.ErrCodeItemNameRequired,
			"item name must not be empty",
			domainerror.ErrItemNameRequired,
		)
	}
	if utf8.RuneCountInString(trimmed) > MaxItemNameLength {
		return nil, domainerror.NewBillError(
			domainerror.ErrCodeItemNameTooLong,
			fmt.Sprintf("item name must not exceed %d characters", MaxItemNameLength),
			domainerror.ErrItemNameTooLong,
		)
	}

	if !price.IsPositive() {
		return nil, domainerror.NewBillError(
			domainerror.ErrCodeItemPriceInvalid,
			"item price must be greater than zero",
			domainerror.ErrItemPriceInvalid,
		)
	}
	if price.GreaterThan(MaxItemPrice) {
		return nil, domainerror.NewBillError(
			domainerror.ErrCodeItemPriceTooLarge,
			fmt.Sprintf("item price must not exceed %s", MaxItemPrice.String()),
			domainerror.ErrItemPriceTooLarge,
		)
	}

	if quantity < 1 || quantity > MaxItemQuantity {
		return nil, domainerror.NewBillError(
			domainerror.ErrCodeItemQuantityInvalid,
			fmt.Sprintf("item quantity must be between 1 and %d", MaxItemQuantity),
			domainerror.ErrItemQuantityInvalid,
		)
	}

	if utf8.RuneCountInString(category) > MaxCategoryLength {
		return nil, domainerror.NewBillError(
			domainerror.ErrCodeItemCategoryTooLong,
			fmt.Sprintf("item category must not exceed %d characters", MaxCategoryLength),
			domainerror.ErrItemCategoryTooLong,
		)
	}

	return &ValidatedItem{
		Name:     trimmed,
		Price:    price,
		Quantity: quantity,
		Category: category,
	}, nil
}

// ValidateParticipantName checks a raw participant name against the current
// draft state and returns the trimmed name. The caller attaches the ID.
func ValidateParticipantName(name string, currentCount int, hasName func(string) bool) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", domainerror.NewBillError(
			domainerror.ErrCodeParticipantNameRequired,
			"participant name must not be empty",
			domainerror.ErrParticipantNameRequired,
		)
	}
	if utf8.RuneCountInString(trimmed) > MaxParticipantNameLength {
		return "", domainerror.NewBillError(
			domainerror.ErrCodeParticipantNameTooLong,
			fmt.Sprintf("participant name must not exceed %d characters", MaxParticipantNameLength),
			domainerror.ErrParticipantNameTooLong,
		)
	}
	if currentCount >= MaxParticipants {
		return "", domainerror.NewBillError(
			domainerror.ErrCodeParticipantLimitReached,
			fmt.Sprintf("a bill can have at most %d participants", MaxParticipants),
			domainerror.ErrParticipantLimitReached,
		)
	}
	if hasName(trimmed) {
		return "", domainerror.NewBillError(
			domainerror.ErrCodeParticipantNameTaken,
			"a participant with this name already exists",
			domainerror.ErrParticipantNameTaken,
		)
	}
	return trimmed, nil
}

// ValidateBillInfo checks a trimmed title and description against their
// length limits. Lengths count runes, matching what a user sees as
// characters. Shared by the info update and the save gate.
func ValidateBillInfo(title, description string) error {
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return domainerror.NewBillError(
			domainerror.ErrCodeTitleTooLong,
			fmt.Sprintf("title must be at most %d characters", MaxTitleLength),
			domainerror.ErrTitleTooLong,
		)
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return domainerror.NewBillError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must be at most %d characters", MaxDescriptionLength),
			domainerror.ErrBillDescriptionTooLong,
		)
	}
	return nil
}
