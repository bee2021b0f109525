package ledger

import "context"

type Repository interface {
	Create(ctx context.Context, e *Entry) error

	// ListingBalance sums the entries of one listing.
	ListingBalance(ctx context.Context, listingID uint64) (int64, error)

	// TotalBalance sums every entry across all listings; this is the
	// aggregate pool view and is derived, never stored.
	TotalBalance(ctx context.Context) (int64, error)

	ListByListingID(ctx context.Context, listingID uint64) ([]Entry, error)
}
