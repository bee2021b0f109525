package listingmock

import (
	"context"

	domain "realty-escrow/internal/domain/listing"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Only methods you need are included; add more as tests require.
type Repo struct {
	CreateFn                func(ctx context.Context, l *domain.Listing) error
	GetByAssetIDFn          func(ctx context.Context, assetID uint64) (*domain.Listing, error)
	GetByAssetIDForUpdateFn func(ctx context.Context, assetID uint64) (*domain.Listing, error)
	SaveFn                  func(ctx context.Context, l *domain.Listing) error
}

func (m *Repo) Create(ctx context.Context, l *domain.Listing) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByAssetID(ctx context.Context, assetID uint64) (*domain.Listing, error) {
	if m.GetByAssetIDFn != nil {
		return m.GetByAssetIDFn(ctx, assetID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByAssetIDForUpdate(ctx context.Context, assetID uint64) (*domain.Listing, error) {
	if m.GetByAssetIDForUpdateFn != nil {
		return m.GetByAssetIDForUpdateFn(ctx, assetID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, l *domain.Listing) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}
