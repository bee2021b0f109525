package approval

import "context"

type Repository interface {
	// Create a new approval (DB uniqueness ensures at most one per listing+role)
	Create(ctx context.Context, a *Approval) error

	// Get the approval a listing holds for one role
	GetByListingRole(ctx context.Context, listingID uint64, role Role) (*Approval, error)

	// All approvals recorded for a listing
	ListByListingID(ctx context.Context, listingID uint64) ([]Approval, error)
}
