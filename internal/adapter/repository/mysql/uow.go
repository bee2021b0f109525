package mysql

import (
	"context"

	"realty-escrow/internal/domain/listing"
	"realty-escrow/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) repos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Listings:  &ListingRepository{db: tx},
		Approvals: &ApprovalRepository{db: tx},
		Ledger:    &LedgerRepository{db: tx},
		Assets:    &AssetRegistry{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(u.repos(tx))
	})
}

func (u *GormUoW) WithinListingTx(ctx context.Context, assetID uint64, fn func(r uow.Repos, l *listing.Listing) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := u.repos(tx)
		// lock the listing row up-front to prevent races
		l, err := r.Listings.GetByAssetIDForUpdate(ctx, assetID)
		if err != nil {
			return err
		}
		return fn(r, l)
	})
}
