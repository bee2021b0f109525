package mysql

import (
	"context"

	ledgerDomain "realty-escrow/internal/domain/ledger"

	"gorm.io/gorm"
)

type LedgerRepository struct{ db *gorm.DB }

func NewLedgerRepository(db *gorm.DB) *LedgerRepository { return &LedgerRepository{db: db} }

func (r *LedgerRepository) Create(ctx context.Context, e *ledgerDomain.Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// COALESCE so an empty ledger sums to 0 rather than NULL.
func (r *LedgerRepository) ListingBalance(ctx context.Context, listingID uint64) (int64, error) {
	var sum int64
	res := r.db.WithContext(ctx).
		Model(&ledgerDomain.Entry{}).
		Where("listing_id = ?", listingID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum)
	return sum, res.Error
}

func (r *LedgerRepository) TotalBalance(ctx context.Context) (int64, error) {
	var sum int64
	res := r.db.WithContext(ctx).
		Model(&ledgerDomain.Entry{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum)
	return sum, res.Error
}

func (r *LedgerRepository) ListByListingID(ctx context.Context, listingID uint64) ([]ledgerDomain.Entry, error) {
	var out []ledgerDomain.Entry
	res := r.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
