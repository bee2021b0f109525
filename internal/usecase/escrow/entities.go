package escrow

import (
	"time"
)

type DepositDTO struct {
	EntryID string `json:"entry_id"`
	AssetID uint64 `json:"asset_id"`
	Amount  uint64 `json:"amount"`
	// Listing balance after the deposit.
	Balance uint64 `json:"balance"`
}

type InspectionDTO struct {
	AssetID uint64 `json:"asset_id"`
	Passed  bool   `json:"passed"`
}

type ApprovalDTO struct {
	AssetID    uint64   `json:"asset_id"`
	SignerAddr string   `json:"signer_addr"`
	Roles      []string `json:"roles"`
}

type FinalizeDTO struct {
	AssetID      uint64    `json:"asset_id"`
	BuyerAddr    string    `json:"buyer_addr"`
	SellerPayout uint64    `json:"seller_payout"`
	FinalizedAt  time.Time `json:"finalized_at"`
}

type CancelDTO struct {
	AssetID uint64 `json:"asset_id"`
	// Where the held funds went: the buyer when inspection failed (or was
	// never recorded), the seller once inspection has passed.
	PaidTo           string    `json:"paid_to"`
	Amount           uint64    `json:"amount"`
	InspectionPassed bool      `json:"inspection_passed"`
	CancelledAt      time.Time `json:"cancelled_at"`
}
