package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/patungan/backend/internal/application/usecase/draft"
	"github.com/patungan/backend/internal/domain/entity"
	domainerror "github.com/patungan/backend/internal/domain/error"
	"github.com/patungan/backend/internal/integration/entrypoint/dto"
	"github.com/patungan/backend/internal/integration/entrypoint/middleware"
)

// maxReceiptImageSize limits receipt uploads to 10 MB.
const maxReceiptImageSize = 10 << 20

// DraftController handles the draft editing endpoints.
type DraftController struct {
	getDraftUseCase          *draft.GetDraftUseCase
	addItemUseCase           *draft.AddItemUseCase
	removeItemUseCase        *draft.RemoveItemUseCase
	addParticipantUseCase    *draft.AddParticipantUseCase
	removeParticipantUseCase *draft.RemoveParticipantUseCase
	toggleAssignmentUseCase  *draft.ToggleAssignmentUseCase
	setSurchargeUseCase      *draft.SetSurchargeUseCase
	setInfoUseCase           *draft.SetInfoUseCase
	scanReceiptUseCase       *draft.ScanReceiptUseCase
	saveBillUseCase          *draft.SaveBillUseCase
	resetDraftUseCase        *draft.ResetDraftUseCase
}

// NewDraftController creates a new draft controller instance.
func NewDraftController(
	getDraftUseCase *draft.GetDraftUseCase,
	addItemUseCase *draft.AddItemUseCase,
	removeItemUseCase *draft.RemoveItemUseCase,
	addParticipantUseCase *draft.AddParticipantUseCase,
	removeParticipantUseCase *draft.RemoveParticipantUseCase,
	toggleAssignmentUseCase *draft.ToggleAssignmentUseCase,
	setSurchargeUseCase *draft.SetSurchargeUseCase,
	setInfoUseCase *draft.SetInfoUseCase,
	scanReceiptUseCase *draft.ScanReceiptUseCase,
	saveBillUseCase *draft.SaveBillUseCase,
	resetDraftUseCase *draft.ResetDraftUseCase,
) *DraftController {
	return &DraftController{
		getDraftUseCase:          getDraftUseCase,
		addItemUseCase:           addItemUseCase,
		removeItemUseCase:        removeItemUseCase,
		addParticipantUseCase:    addParticipantUseCase,
		removeParticipantUseCase: removeParticipantUseCase,
		toggleAssignmentUseCase:  toggleAssignmentUseCase,
		setSurchargeUseCase:      setSurchargeUseCase,
		setInfoUseCase:           setInfoUseCase,
		scanReceiptUseCase:       scanReceiptUseCase,
		saveBillUseCase:          saveBillUseCase,
		resetDraftUseCase:        resetDraftUseCase,
	}
}

// GetDraft handles GET /draft requests. It returns the draft together with
// the live allocation breakdown.
func (c *DraftController) GetDraft(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		c.respondUnauthenticated(ctx)
		return
	}

	output, err := c.getDraftUseCase.Execute(ctx.Request.Context(), draft.GetDraftInput{UserID: userID})
	if err != nil {
		c.handleBillError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDraftResponse(output.Draft, output.Allocation))
}

// ListCategories handles GET /draft/categories requests. It returns the
// suggested item categories in display order; item categories remain free
// text, so this is a hint for pickers rather than an enum.
func (c *DraftController) ListCategories(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"categories": entity.DefaultCategories})
}

// AddItem handles POST /draft/items requests.
func (c *DraftController) AddItem(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		c.respondUnauthenticated(ctx)
		return
	}

	var req dto.AddItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeItemNameRequired),
		})
		return
	}

	input := draft.AddItemInput{
		UserID:   userID,
		Name:     req.Name,
		Price:    decimal.NewFromFloat(req.Price),
		Quantity: req.Quantity,
		Category: req.Category,
	}

	output, err := c.addItemUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleBillError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToItemResponse(output.Item))
}

// RemoveItem handles DELETE /draft/items/:id requests.
func (c *DraftController) RemoveItem(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		c.respondUnauthenticated(ctx)
		return
	}

	itemID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid item ID",
			Code:  string(domainerror.ErrCodeItemNotFound),
		})
		return
	}

	input := draft.RemoveItemInput{UserID: userID, ItemID: itemID}
	if _, err := c.removeItemUseCase.Execute(ctx.Request.Context(), input); err != nil {
		c.handleBillError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Item removed"})
}

// AddParticipant handles POST /draft/participants requests.
func (c *DraftController) AddParticipant(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		c.respondUnauthenticated(ctx)
		return
	}

	var req dto.AddParticipantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeParticipantNameRequired),
		})
		return
	}

	input := draft.AddParticipantInput{UserID: userID, Name: req.Name}
	output, err := c.addParticipantUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleBillError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ParticipantResponse{
		ID:   output.Participant.ID.String(),
		Name: output.Participant.Name,
	})
}

// RemoveParticipant handles DELETE /draft/participants/:id requests. The
// participant's assignments are removed together with the participant.
func (c *DraftController) RemoveParticipant(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		c.respondUnauthenticated(ctx)
		return
	}

	participantID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid participant ID",
			Code:  string(domainerror.ErrCodeParticipantNotFound),
		})
		return
	}

	input := draft.RemoveParticipantInput{UserID: userID, ParticipantID: participantID}
	if err := c.removeParticipantUseCase.Execute(ctx.Request.Context(), input); err != nil {
		c.handleBillError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Participant removed"})
}

// ToggleAssignment handles POST /draft/assignments requests.
func (c *DraftController) ToggleAssignment(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		c.respondUnauthenticated(ctx)
		return
	}

	var req dto.ToggleAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeItemNotFound),
		})
		return
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid item ID",
			Code:  string(domainerror.ErrCodeItemNotFound),
		})
		return
	}
	participantID, err := uuid.Parse(req.ParticipantID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid participant ID",
			Code:  string(domainerror.ErrCodeParticipantNotFound),
		})
		return
	}

	input := draft.ToggleAssignmentInput{
		UserID:        userID,
		ItemID:        itemID,
		ParticipantID: participantID,
	}
	output, err := c.toggleAssignmentUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleBillError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToggleAssignmentResponse{Assigned: output.Assigned})
}

// SetSurcharge handles PUT /draft/surcharge requests. The amount is raw
// user text; unparseable or negative values are stored as zero.
func (c *DraftController) SetSurcharge(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		c.respondUnauthenticated(ctx)
		return
	}

	var req dto.SetSurchargeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeInvalidSurchargeKind),
		})
		return
	}

	input := draft.SetSurchargeInput{
		UserID:    userID,
		Kind:      entity.SurchargeKind(req.Kind),
		RawAmount: req.Amount,
	}
	output, err := c.setSurchargeUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleBillError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"kind": req.Kind, "amount": output.Amount.String()})
}

// SetInfo handles PUT /draft/info requests.
func (c *DraftController) SetInfo(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		c.respondUnauthenticated(ctx)
		return
	}

	var req dto.SetInfoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeTitleTooLong),
		})
		return
	}

	input := draft.SetInfoInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := c.setInfoUseCase.Execute(ctx.Request.Context(), input); err != nil {
		c.handleBillError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Draft info updated"})
}

// ScanReceipt handles POST /draft/scan requests. The receipt image is
// uploaded as multipart form data under the "image" field.
func (c *DraftController) ScanReceipt(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		c.respondUnauthenticated(ctx)
		return
	}

	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Receipt image is required",
			Code:  string(domainerror.ErrCodeInvalidImage),
		})
		return
	}
	if fileHeader.Size > maxReceiptImageSize {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Receipt image is too large",
			Code:  string(domainerror.ErrCodeInvalidImage),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Could not read receipt image",
			Code:  string(domainerror.ErrCodeInvalidImage),
		})
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Could not read receipt image",
			Code:  string(domainerror.ErrCodeInvalidImage),
		})
		return
	}

	input := draft.ScanReceiptInput{
		UserID:   userID,
		Image:    image,
		MimeType: fileHeader.Header.Get("Content-Type"),
	}
	output, err := c.scanReceiptUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleScanError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToScanReceiptResponse(output))
}

// SaveBill handles POST /draft/save requests.
func (c *DraftController) SaveBill(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		c.respondUnauthenticated(ctx)
		return
	}

	output, err := c.saveBillUseCase.Execute(ctx.Request.Context(), draft.SaveBillInput{UserID: userID})
	if err != nil {
		c.handleBillError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSaveBillResponse(output.Bill, output.Participants))
}

// ResetDraft handles DELETE /draft requests.
func (c *DraftController) ResetDraft(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		c.respondUnauthenticated(ctx)
		return
	}

	if err := c.resetDraftUseCase.Execute(ctx.Request.Context(), draft.ResetDraftInput{UserID: userID}); err != nil {
		c.handleBillError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Draft discarded"})
}

func (c *DraftController) respondUnauthenticated(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "Authentication required",
		Code:  string(domainerror.ErrCodeMissingToken),
	})
}

// handleBillError maps domain bill errors to HTTP responses.
func (c *DraftController) handleBillError(ctx *gin.Context, err error) {
	var billErr *domainerror.BillError
	if errors.As(err, &billErr) {
		statusCode := getStatusCodeForBillError(billErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: billErr.Message,
			Code:  string(billErr.Code),
		})
		return
	}

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// handleScanError maps receipt scan errors to HTTP responses.
func (c *DraftController) handleScanError(ctx *gin.Context, err error) {
	var scanErr *domainerror.ScanError
	if errors.As(err, &scanErr) {
		statusCode := getStatusCodeForScanError(scanErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: scanErr.Message,
			Code:  string(scanErr.Code),
		})
		return
	}

	c.handleBillError(ctx, err)
}

// getStatusCodeForBillError maps bill error codes to HTTP status codes.
func getStatusCodeForBillError(code domainerror.BillErrorCode) int {
	switch code {
	case domainerror.ErrCodeItemNameRequired,
		domainerror.ErrCodeItemNameTooLong,
		domainerror.ErrCodeItemPriceInvalid,
		domainerror.ErrCodeItemPriceTooLarge,
		domainerror.ErrCodeItemQuantityInvalid,
		domainerror.ErrCodeItemCategoryTooLong,
		domainerror.ErrCodeParticipantNameRequired,
		domainerror.ErrCodeParticipantNameTooLong,
		domainerror.ErrCodeParticipantLimitReached,
		domainerror.ErrCodeParticipantNameTaken,
		domainerror.ErrCodeInvalidSurchargeKind,
		domainerror.ErrCodeTitleTooLong,
		domainerror.ErrCodeDescriptionTooLong:
		return http.StatusBadRequest
	case domainerror.ErrCodeItemNotFound,
		domainerror.ErrCodeParticipantNotFound,
		domainerror.ErrCodeBillNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeTitleRequired,
		domainerror.ErrCodeNoItems,
		domainerror.ErrCodeNotEnoughParticipants,
		domainerror.ErrCodeUnassignedItems:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeSaveFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForScanError maps scan error codes to HTTP status codes.
func getStatusCodeForScanError(code domainerror.ScanErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidImage:
		return http.StatusBadRequest
	case domainerror.ErrCodeScannerUnavailable:
		return http.StatusServiceUnavailable
	case domainerror.ErrCodeNoCandidates,
		domainerror.ErrCodeNoValidCandidates:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeScanFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
