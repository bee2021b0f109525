package uow

import (
	"context"

	"realty-escrow/internal/domain/approval"
	"realty-escrow/internal/domain/asset"
	"realty-escrow/internal/domain/ledger"
	"realty-escrow/internal/domain/listing"
)

type Repos struct {
	Listings  listing.Repository
	Approvals approval.Repository
	Ledger    ledger.Repository
	// Assets is bound to the same transaction as the repositories, so a
	// custody transfer commits or rolls back together with the rows that
	// justify it.
	Assets asset.Gateway
}

// UnitOfWork serializes escrow mutations. Every state transition on a listing
// runs inside WithinListingTx, which locks the listing row first; that is the
// single-writer guarantee the state machine relies on.
type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the listing first, then pass it in
	WithinListingTx(ctx context.Context, assetID uint64, fn func(r Repos, l *listing.Listing) error) error
}
