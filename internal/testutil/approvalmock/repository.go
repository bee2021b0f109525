package approvalmock

import (
	"context"

	domain "realty-escrow/internal/domain/approval"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn           func(ctx context.Context, a *domain.Approval) error
	GetByListingRoleFn func(ctx context.Context, listingID uint64, role domain.Role) (*domain.Approval, error)
	ListByListingIDFn  func(ctx context.Context, listingID uint64) ([]domain.Approval, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Approval) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByListingRole(ctx context.Context, listingID uint64, role domain.Role) (*domain.Approval, error) {
	if m.GetByListingRoleFn != nil {
		return m.GetByListingRoleFn(ctx, listingID, role)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByListingID(ctx context.Context, listingID uint64) ([]domain.Approval, error) {
	if m.ListByListingIDFn != nil {
		return m.ListByListingIDFn(ctx, listingID)
	}
	return nil, context.Canceled
}
