package listing

import (
	"time"

	domain "realty-escrow/internal/domain/listing"
)

type CreateInput struct {
	AssetID       uint64
	CallerAddr    string // must be the asset's current owner (the seller)
	PurchasePrice uint64
	BuyerAddr     string
	EscrowAmount  uint64
	InspectorAddr string
	LenderAddr    string
}

type ListingDTO struct {
	AssetID          uint64    `json:"asset_id"`
	SellerAddr       string    `json:"seller_addr"`
	BuyerAddr        string    `json:"buyer_addr"`
	InspectorAddr    string    `json:"inspector_addr"`
	LenderAddr       string    `json:"lender_addr"`
	PurchasePrice    uint64    `json:"purchase_price"`
	EscrowAmount     uint64    `json:"escrow_amount"`
	InspectionPassed bool      `json:"inspection_passed"`
	IsListed         bool      `json:"is_listed"`
	State            string    `json:"state"`
	CreatedAt        time.Time `json:"created_at"`
}

func toDTO(l *domain.Listing) *ListingDTO {
	return &ListingDTO{
		AssetID:          l.AssetID,
		SellerAddr:       l.SellerAddr,
		BuyerAddr:        l.BuyerAddr,
		InspectorAddr:    l.InspectorAddr,
		LenderAddr:       l.LenderAddr,
		PurchasePrice:    l.PurchasePrice,
		EscrowAmount:     l.EscrowAmount,
		InspectionPassed: l.InspectionPassed,
		IsListed:         l.Active(),
		State:            string(l.State),
		CreatedAt:        l.CreatedAt,
	}
}
