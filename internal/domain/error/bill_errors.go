// Package error defines domain-specific errors for the Patungan application.
package error

import "errors"

// Bill editing and save-gate domain errors.
var (
	// ErrItemNameRequired is returned when an item name is empty after trimming.
	ErrItemNameRequired = errors.New("item name is required")

	// ErrItemNameTooLong is returned when an item name exceeds the maximum length.
	ErrItemNameTooLong = errors.New("item name too long")

	// ErrItemPriceInvalid is returned when an item price is zero or negative.
	ErrItemPriceInvalid = errors.New("item price must be greater than zero")

	// ErrItemPriceTooLarge is returned when an item price exceeds the maximum.
	ErrItemPriceTooLarge = errors.New("item price exceeds maximum")

	// ErrItemQuantityInvalid is returned when an item quantity is outside 1..9999.
	ErrItemQuantityInvalid = errors.New("item quantity must be between 1 and 9999")

	// ErrItemCategoryTooLong is returned when an item category exceeds the maximum length.
	ErrItemCategoryTooLong = errors.New("item category too long")

	// ErrParticipantNameRequired is returned when a participant name is empty after trimming.
	ErrParticipantNameRequired = errors.New("participant name is required")

	// ErrParticipantNameTooLong is returned when a participant name exceeds the maximum length.
	ErrParticipantNameTooLong = errors.New("participant name too long")

	// ErrParticipantLimitReached is returned when the participant ceiling has been hit.
	ErrParticipantLimitReached = errors.New("participant limit reached")

	// ErrParticipantNameTaken is returned on a case-insensitive duplicate name.
	ErrParticipantNameTaken = errors.New("participant name already exists")

	// ErrItemNotFound is returned when no item with the given ID is in the draft.
	ErrItemNotFound = errors.New("item not found in draft")

	// ErrParticipantNotFound is returned when no participant with the given ID is in the draft.
	ErrParticipantNotFound = errors.New("participant not found in draft")

	// ErrInvalidSurchargeKind is returned for a surcharge kind other than tax, service or tip.
	ErrInvalidSurchargeKind = errors.New("invalid surcharge kind")

	// ErrTitleRequired is returned at save time when the title is empty.
	ErrTitleRequired = errors.New("title is required")

	// ErrTitleTooLong is returned when the title exceeds the maximum length.
	ErrTitleTooLong = errors.New("title too long")

	// ErrBillDescriptionTooLong is returned when the description exceeds the maximum length.
	ErrBillDescriptionTooLong = errors.New("description too long")

	// ErrNoItems is returned at save time when the draft has no items.
	ErrNoItems = errors.New("at least one item is required")

	// ErrNotEnoughParticipants is returned at save time with fewer than two participants.
	ErrNotEnoughParticipants = errors.New("at least two participants are required")

	// ErrUnassignedItems is returned at save time when any item has no assignees.
	ErrUnassignedItems = errors.New("some items are not assigned to anyone")

	// ErrBillNotFound is returned when a saved bill is not found.
	ErrBillNotFound = errors.New("bill not found")
)

// BillErrorCode defines error codes for bill errors.
// Format: BILL-XXYYYY where XX is category and YYYY is specific error.
type BillErrorCode string

const (
	// Item validation errors (01XXXX)
	ErrCodeItemNameRequired    BillErrorCode = "BILL-010001"
	ErrCodeItemNameTooLong     BillErrorCode = "BILL-010002"
	ErrCodeItemPriceInvalid    BillErrorCode = "BILL-010003"
	ErrCodeItemPriceTooLarge   BillErrorCode = "BILL-010004"
	ErrCodeItemQuantityInvalid BillErrorCode = "BILL-010005"
	ErrCodeItemCategoryTooLong BillErrorCode = "BILL-010006"

	// Participant validation errors (02XXXX)
	ErrCodeParticipantNameRequired BillErrorCode = "BILL-020001"
	ErrCodeParticipantNameTooLong  BillErrorCode = "BILL-020002"
	ErrCodeParticipantLimitReached BillErrorCode = "BILL-020003"
	ErrCodeParticipantNameTaken    BillErrorCode = "BILL-020004"

	// Draft state errors (03XXXX)
	ErrCodeItemNotFound         BillErrorCode = "BILL-030001"
	ErrCodeParticipantNotFound  BillErrorCode = "BILL-030002"
	ErrCodeInvalidSurchargeKind BillErrorCode = "BILL-030003"

	// Save gate errors (04XXXX)
	ErrCodeTitleRequired         BillErrorCode = "BILL-040001"
	ErrCodeTitleTooLong          BillErrorCode = "BILL-040002"
	ErrCodeDescriptionTooLong    BillErrorCode = "BILL-040003"
	ErrCodeNoItems               BillErrorCode = "BILL-040004"
	ErrCodeNotEnoughParticipants BillErrorCode = "BILL-040005"
	ErrCodeUnassignedItems       BillErrorCode = "BILL-040006"

	// Persistence errors (05XXXX)
	ErrCodeBillNotFound BillErrorCode = "BILL-050001"
	ErrCodeSaveFailed   BillErrorCode = "BILL-050002"
)

// BillError represents a bill error with code and message.
type BillError struct {
	Code    BillErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BillError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BillError) Unwrap() error {
	return e.Err
}

// NewBillError creates a new BillError with the given code and message.
func NewBillError(code BillErrorCode, message string, err error) *BillError {
	return &BillError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
