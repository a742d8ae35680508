package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/patungan/backend/internal/application/usecase/bill"
	domainerror "github.com/patungan/backend/internal/domain/error"
	"github.com/patungan/backend/internal/integration/entrypoint/dto"
	"github.com/patungan/backend/internal/integration/entrypoint/middleware"
)

// BillController handles the saved-bill read endpoints.
type BillController struct {
	listBillsUseCase *bill.ListBillsUseCase
	getBillUseCase   *bill.GetBillUseCase
}

// NewBillController creates a new bill controller instance.
func NewBillController(
	listBillsUseCase *bill.ListBillsUseCase,
	getBillUseCase *bill.GetBillUseCase,
) *BillController {
	return &BillController{
		listBillsUseCase: listBillsUseCase,
		getBillUseCase:   getBillUseCase,
	}
}

// ListBills handles GET /bills requests. Bills are returned newest first.
func (c *BillController) ListBills(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		c.respondUnauthenticated(ctx)
		return
	}

	output, err := c.listBillsUseCase.Execute(ctx.Request.Context(), bill.ListBillsInput{UserID: userID})
	if err != nil {
		c.handleBillError(ctx, err)
		return
	}

	bills := make([]dto.BillResponse, len(output.Bills))
	for i, b := range output.Bills {
		bills[i] = dto.ToBillResponse(b)
	}

	ctx.JSON(http.StatusOK, dto.BillListResponse{Bills: bills})
}

// GetBill handles GET /bills/:id requests. It returns the bill with its
// full item, participant, and assignment breakdown.
func (c *BillController) GetBill(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		c.respondUnauthenticated(ctx)
		return
	}

	billID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid bill ID",
			Code:  string(domainerror.ErrCodeBillNotFound),
		})
		return
	}

	input := bill.GetBillInput{UserID: userID, BillID: billID}
	output, err := c.getBillUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleBillError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBillDetailsResponse(output.Details))
}

func (c *BillController) respondUnauthenticated(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "Authentication required",
		Code:  string(domainerror.ErrCodeMissingToken),
	})
}

func (c *BillController) handleBillError(ctx *gin.Context, err error) {
	var billErr *domainerror.BillError
	if errors.As(err, &billErr) {
		statusCode := getStatusCodeForBillError(billErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: billErr.Message,
			Code:  string(billErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
