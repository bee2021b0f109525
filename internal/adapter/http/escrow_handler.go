package http

import (
	"net/http"

	"realty-escrow/internal/usecase/escrow"

	"github.com/labstack/echo/v4"
)

type EscrowHandler struct{ uc *escrow.Usecase }

func NewEscrowHandler(uc *escrow.Usecase) *EscrowHandler { return &EscrowHandler{uc: uc} }

type depositReq struct {
	Amount uint64 `json:"amount" validate:"required,gt=0"`
}

func (h *EscrowHandler) Deposit(c echo.Context) error {
	assetID, caller, ok := h.mutationParams(c)
	if !ok {
		return nil
	}
	var req depositReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.DepositEarnest(c.Request().Context(), assetID, caller, req.Amount)
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusCreated, dto)
}

type inspectionReq struct {
	Passed *bool `json:"passed" validate:"required"`
}

func (h *EscrowHandler) UpdateInspection(c echo.Context) error {
	assetID, caller, ok := h.mutationParams(c)
	if !ok {
		return nil
	}
	var req inspectionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if req.Passed == nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "passed", Message: "is required"}},
		})
	}
	dto, err := h.uc.UpdateInspection(c.Request().Context(), assetID, caller, *req.Passed)
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *EscrowHandler) Approve(c echo.Context) error {
	assetID, caller, ok := h.mutationParams(c)
	if !ok {
		return nil
	}
	dto, err := h.uc.ApproveSale(c.Request().Context(), assetID, caller)
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *EscrowHandler) Finalize(c echo.Context) error {
	assetID, caller, ok := h.mutationParams(c)
	if !ok {
		return nil
	}
	dto, err := h.uc.FinalizeSale(c.Request().Context(), assetID, caller)
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *EscrowHandler) Cancel(c echo.Context) error {
	assetID, caller, ok := h.mutationParams(c)
	if !ok {
		return nil
	}
	dto, err := h.uc.CancelSale(c.Request().Context(), assetID, caller)
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

// GetBalance reports the aggregate pool across all listings.
func (h *EscrowHandler) GetBalance(c echo.Context) error {
	bal, err := h.uc.GetBalance(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "lookup failed"})
	}
	return c.JSON(http.StatusOK, map[string]uint64{"balance": bal})
}

// GetListingBalance reads one listing's held funds.
func (h *EscrowHandler) GetListingBalance(c echo.Context) error {
	assetID, ok := assetIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid asset_id path param"})
	}
	bal, err := h.uc.ListingBalance(c.Request().Context(), assetID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "lookup failed"})
	}
	return c.JSON(http.StatusOK, map[string]uint64{"asset_id": assetID, "balance": bal})
}

// mutationParams bundles the checks every mutating escrow route shares. A
// false return means the 400 response has already been written.
func (h *EscrowHandler) mutationParams(c echo.Context) (uint64, string, bool) {
	assetID, ok := assetIDParam(c)
	if !ok {
		_ = c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid asset_id path param"})
		return 0, "", false
	}
	caller, ok := callerAddr(c)
	if !ok {
		_ = c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Caller-Addr"})
		return 0, "", false
	}
	return assetID, caller, true
}
