package mysql

import (
	"context"

	listingDomain "realty-escrow/internal/domain/listing"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ListingRepository struct{ db *gorm.DB }

func NewListingRepository(db *gorm.DB) *ListingRepository { return &ListingRepository{db: db} }

func (r *ListingRepository) Create(ctx context.Context, l *listingDomain.Listing) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *ListingRepository) Save(ctx context.Context, l *listingDomain.Listing) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *ListingRepository) GetByAssetID(ctx context.Context, assetID uint64) (*listingDomain.Listing, error) {
	var out listingDomain.Listing
	res := r.db.WithContext(ctx).Where("asset_id = ?", assetID).First(&out)
	return &out, res.Error
}

func (r *ListingRepository) GetByAssetIDForUpdate(ctx context.Context, assetID uint64) (*listingDomain.Listing, error) {
	q := r.db.WithContext(ctx)
	// sqlite (tests) has no row locks; its transactions are already serialized
	if r.db.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out listingDomain.Listing
	res := q.Where("asset_id = ?", assetID).First(&out)
	return &out, res.Error
}
