package listing

import (
	"time"
)

type State string

const (
	StateListed    State = "listed"
	StateFinalized State = "finalized"
	StateCancelled State = "cancelled"
)

// Listing is the record governing one asset's conditional sale. Role
// addresses and amounts are immutable after creation; only State and
// InspectionPassed change afterwards.
type Listing struct {
	ID            uint64 `gorm:"primaryKey;column:id" json:"-"`
	AssetID       uint64 `gorm:"column:asset_id;uniqueIndex:ux_listings_asset_id" json:"asset_id"`
	SellerAddr    string `gorm:"column:seller_addr;type:char(40);not null" json:"seller_addr"`
	BuyerAddr     string `gorm:"column:buyer_addr;type:char(40);not null" json:"buyer_addr"`
	InspectorAddr string `gorm:"column:inspector_addr;type:char(40);not null" json:"inspector_addr"`
	LenderAddr    string `gorm:"column:lender_addr;type:char(40);not null" json:"lender_addr"`
	// Smallest currency unit.
	PurchasePrice    uint64    `gorm:"column:purchase_price;not null" json:"purchase_price"`
	EscrowAmount     uint64    `gorm:"column:escrow_amount;not null" json:"escrow_amount"`
	InspectionPassed bool      `gorm:"column:inspection_passed;not null;default:false" json:"inspection_passed"`
	State            State     `gorm:"type:enum('listed','finalized','cancelled');default:'listed'" json:"state"`
	StateUpdatedAt   time.Time `gorm:"column:state_updated_at;autoCreateTime" json:"state_updated_at"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Listing) TableName() string { return "listings" }

// Active reports whether the listing is still open for escrow operations.
// Finalized and cancelled listings are terminal.
func (l *Listing) Active() bool { return l != nil && l.State == StateListed }
