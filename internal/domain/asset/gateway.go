package asset

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("asset not found in ownership registry")

// Asset is one row of the ownership registry this service keeps when it runs
// standalone. A deployment backed by an external title registry swaps the
// adapter, not the Gateway interface.
type Asset struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	AssetID   uint64    `gorm:"column:asset_id;uniqueIndex:ux_assets_asset_id" json:"asset_id"`
	OwnerAddr string    `gorm:"column:owner_addr;type:char(40);not null" json:"owner_addr"`
	TokenURI  string    `gorm:"column:token_uri;type:text" json:"token_uri"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Asset) TableName() string { return "assets" }

// Gateway is the ownership-transfer surface the escrow core needs from the
// registry. Transfer must be all-or-nothing; a failed transfer leaves
// ownership untouched.
type Gateway interface {
	CurrentOwner(ctx context.Context, assetID uint64) (string, error)
	Transfer(ctx context.Context, assetID uint64, to string) error
}
