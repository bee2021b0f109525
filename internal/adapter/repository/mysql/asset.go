package mysql

import (
	"context"
	"errors"

	assetDomain "realty-escrow/internal/domain/asset"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssetRegistry is the gorm-backed ownership registry used when the service
// runs standalone. It satisfies asset.Gateway.
type AssetRegistry struct{ db *gorm.DB }

func NewAssetRegistry(db *gorm.DB) *AssetRegistry { return &AssetRegistry{db: db} }

func (r *AssetRegistry) CurrentOwner(ctx context.Context, assetID uint64) (string, error) {
	var out assetDomain.Asset
	res := r.db.WithContext(ctx).Where("asset_id = ?", assetID).First(&out)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return "", assetDomain.ErrNotFound
		}
		return "", res.Error
	}
	return out.OwnerAddr, nil
}

func (r *AssetRegistry) Transfer(ctx context.Context, assetID uint64, to string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		if tx.Dialector.Name() == "mysql" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var out assetDomain.Asset
		res := q.Where("asset_id = ?", assetID).First(&out)
		if res.Error != nil {
			if errors.Is(res.Error, gorm.ErrRecordNotFound) {
				return assetDomain.ErrNotFound
			}
			return res.Error
		}
		out.OwnerAddr = to
		return tx.Save(&out).Error
	})
}

// Mint registers a new asset under owner. Used for seeding and tests; a real
// title registry would own this operation.
func (r *AssetRegistry) Mint(ctx context.Context, assetID uint64, owner, tokenURI string) error {
	a := &assetDomain.Asset{AssetID: assetID, OwnerAddr: owner, TokenURI: tokenURI}
	return r.db.WithContext(ctx).Create(a).Error
}
