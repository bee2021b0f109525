package http

import (
	"net/http"

	"realty-escrow/internal/usecase/listing"

	"github.com/labstack/echo/v4"
)

type ListingHandler struct{ uc *listing.Usecase }

func NewListingHandler(uc *listing.Usecase) *ListingHandler { return &ListingHandler{uc: uc} }

type createListingReq struct {
	AssetID       uint64 `json:"asset_id"       validate:"required"`
	PurchasePrice uint64 `json:"purchase_price" validate:"required,gt=0"`
	BuyerAddr     string `json:"buyer_addr"     validate:"required,addr40"`
	EscrowAmount  uint64 `json:"escrow_amount"`
	InspectorAddr string `json:"inspector_addr" validate:"required,addr40"`
	LenderAddr    string `json:"lender_addr"    validate:"required,addr40"`
}

func (h *ListingHandler) CreateListing(c echo.Context) error {
	caller, ok := callerAddr(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Caller-Addr"})
	}
	var req createListingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.Create(c.Request().Context(), listing.CreateInput{
		AssetID:       req.AssetID,
		CallerAddr:    caller,
		PurchasePrice: req.PurchasePrice,
		BuyerAddr:     req.BuyerAddr,
		EscrowAmount:  req.EscrowAmount,
		InspectorAddr: req.InspectorAddr,
		LenderAddr:    req.LenderAddr,
	})
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusCreated, dto)
}

// GetListing never 404s on unknown assets: absent listings read as a zero
// record, which keeps polling clients simple.
func (h *ListingHandler) GetListing(c echo.Context) error {
	assetID, ok := assetIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid asset_id path param"})
	}
	dto, err := h.uc.Get(c.Request().Context(), assetID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "lookup failed"})
	}
	return c.JSON(http.StatusOK, dto)
}
