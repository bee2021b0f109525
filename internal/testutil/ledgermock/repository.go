package ledgermock

import (
	"context"

	domain "realty-escrow/internal/domain/ledger"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn          func(ctx context.Context, e *domain.Entry) error
	ListingBalanceFn  func(ctx context.Context, listingID uint64) (int64, error)
	TotalBalanceFn    func(ctx context.Context) (int64, error)
	ListByListingIDFn func(ctx context.Context, listingID uint64) ([]domain.Entry, error)
}

func (m *Repo) Create(ctx context.Context, e *domain.Entry) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, e)
	}
	return nil
}

func (m *Repo) ListingBalance(ctx context.Context, listingID uint64) (int64, error) {
	if m.ListingBalanceFn != nil {
		return m.ListingBalanceFn(ctx, listingID)
	}
	return 0, nil
}

func (m *Repo) TotalBalance(ctx context.Context) (int64, error) {
	if m.TotalBalanceFn != nil {
		return m.TotalBalanceFn(ctx)
	}
	return 0, nil
}

func (m *Repo) ListByListingID(ctx context.Context, listingID uint64) ([]domain.Entry, error) {
	if m.ListByListingIDFn != nil {
		return m.ListByListingIDFn(ctx, listingID)
	}
	return nil, nil
}
