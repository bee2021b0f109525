package listing

import (
	"context"
	"errors"
	"fmt"
	"time"

	assetDomain "realty-escrow/internal/domain/asset"
	domain "realty-escrow/internal/domain/listing"
	"realty-escrow/internal/domain/uow"

	"gorm.io/gorm"
)

type Usecase struct {
	repo      domain.Repository
	uow       uow.UnitOfWork
	vaultAddr string
}

// NewUsecase: repo for reads, UoW for the create transaction. vaultAddr is
// the escrow custody account assets are parked under between listing and
// finalization. Ownership checks and custody moves go through the
// transaction-bound registry in uow.Repos.
func NewUsecase(r domain.Repository, tx uow.UnitOfWork, vaultAddr string) *Usecase {
	return &Usecase{repo: r, uow: tx, vaultAddr: vaultAddr}
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*ListingDTO, error) {
	if in.PurchasePrice == 0 || in.EscrowAmount > in.PurchasePrice {
		return nil, domain.ErrInvalidPrice
	}

	l := &domain.Listing{
		AssetID:        in.AssetID,
		SellerAddr:     in.CallerAddr,
		BuyerAddr:      in.BuyerAddr,
		InspectorAddr:  in.InspectorAddr,
		LenderAddr:     in.LenderAddr,
		PurchasePrice:  in.PurchasePrice,
		EscrowAmount:   in.EscrowAmount,
		State:          domain.StateListed,
		StateUpdatedAt: time.Now().UTC(),
	}

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		// Only the party holding the asset may list it.
		owner, err := r.Assets.CurrentOwner(ctx, in.AssetID)
		if err != nil {
			if errors.Is(err, assetDomain.ErrNotFound) {
				return fmt.Errorf("%w: unknown asset %d", domain.ErrUnauthorized, in.AssetID)
			}
			return err
		}
		if owner != in.CallerAddr {
			return domain.ErrUnauthorized
		}

		_, err = r.Listings.GetByAssetID(ctx, in.AssetID)
		switch {
		case err == nil:
			return domain.ErrAlreadyListed
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
		if err := r.Listings.Create(ctx, l); err != nil {
			return err
		}
		// Custody moves to the vault at listing time, not at finalization.
		// The registry rides the same transaction, so a failed transfer
		// rolls the row back.
		return r.Assets.Transfer(ctx, in.AssetID, u.vaultAddr)
	})
	if err != nil {
		return nil, err
	}

	return toDTO(l), nil
}

// Get returns the listing read model. Absent listings come back as a zero
// DTO rather than an error, so external pollers can treat "never listed" and
// "closed" uniformly.
func (u *Usecase) Get(ctx context.Context, assetID uint64) (*ListingDTO, error) {
	l, err := u.repo.GetByAssetID(ctx, assetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ListingDTO{AssetID: assetID}, nil
		}
		return nil, err
	}
	return toDTO(l), nil
}

func (u *Usecase) IsListed(ctx context.Context, assetID uint64) (bool, error) {
	dto, err := u.Get(ctx, assetID)
	if err != nil {
		return false, err
	}
	return dto.IsListed, nil
}

func (u *Usecase) Seller(ctx context.Context, assetID uint64) (string, error) {
	dto, err := u.Get(ctx, assetID)
	if err != nil {
		return "", err
	}
	return dto.SellerAddr, nil
}

func (u *Usecase) Buyer(ctx context.Context, assetID uint64) (string, error) {
	dto, err := u.Get(ctx, assetID)
	if err != nil {
		return "", err
	}
	return dto.BuyerAddr, nil
}

func (u *Usecase) Inspector(ctx context.Context, assetID uint64) (string, error) {
	dto, err := u.Get(ctx, assetID)
	if err != nil {
		return "", err
	}
	return dto.InspectorAddr, nil
}

func (u *Usecase) Lender(ctx context.Context, assetID uint64) (string, error) {
	dto, err := u.Get(ctx, assetID)
	if err != nil {
		return "", err
	}
	return dto.LenderAddr, nil
}

func (u *Usecase) PurchasePrice(ctx context.Context, assetID uint64) (uint64, error) {
	dto, err := u.Get(ctx, assetID)
	if err != nil {
		return 0, err
	}
	return dto.PurchasePrice, nil
}

func (u *Usecase) EscrowAmount(ctx context.Context, assetID uint64) (uint64, error) {
	dto, err := u.Get(ctx, assetID)
	if err != nil {
		return 0, err
	}
	return dto.EscrowAmount, nil
}

func (u *Usecase) InspectionPassed(ctx context.Context, assetID uint64) (bool, error) {
	dto, err := u.Get(ctx, assetID)
	if err != nil {
		return false, err
	}
	return dto.InspectionPassed, nil
}
