package listing

import "context"

type Repository interface {
	Create(ctx context.Context, l *Listing) error
	GetByAssetID(ctx context.Context, assetID uint64) (*Listing, error)
	// GetByAssetIDForUpdate locks the row for the duration of the enclosing
	// transaction; escrow state transitions go through this.
	GetByAssetIDForUpdate(ctx context.Context, assetID uint64) (*Listing, error)
	Save(ctx context.Context, l *Listing) error
}
