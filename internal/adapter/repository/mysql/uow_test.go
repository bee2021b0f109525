package mysql

import (
	"context"
	"errors"
	"testing"

	ledgerDomain "realty-escrow/internal/domain/ledger"
	listingDomain "realty-escrow/internal/domain/listing"
	"realty-escrow/internal/domain/uow"
	"realty-escrow/pkg/id"

	"gorm.io/gorm"
)

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	listingRepo := NewListingRepository(db)
	ledgerRepo := NewLedgerRepository(db)

	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		// Create listing, then a ledger entry referencing its numeric ID
		l := makeListing(11)
		if err := r.Listings.Create(ctx, l); err != nil {
			return err
		}
		if l.ID == 0 {
			t.Fatalf("listing auto ID not set")
		}
		return r.Ledger.Create(ctx, &ledgerDomain.Entry{
			EntryID:          id.NewID32(),
			ListingID:        l.ID,
			Type:             ledgerDomain.EntryDeposit,
			Amount:           5,
			CounterpartyAddr: l.BuyerAddr,
		})
	})
	if err != nil {
		t.Fatalf("WithinTx commit err: %v", err)
	}

	// Verify post-commit visibility
	l, err := listingRepo.GetByAssetID(ctx, 11)
	if err != nil {
		t.Fatalf("listing not visible after commit: %v", err)
	}
	if bal, _ := ledgerRepo.ListingBalance(ctx, l.ID); bal != 5 {
		t.Fatalf("balance = %d after commit, want 5", bal)
	}
}

func TestGormUoW_WithinTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	listingRepo := NewListingRepository(db)

	boom := errors.New("boom")
	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Listings.Create(ctx, makeListing(12)); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}

	if _, err := listingRepo.GetByAssetID(ctx, 12); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("listing visible after rollback: %v", err)
	}
}

func TestGormUoW_WithinListingTx(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	listingRepo := NewListingRepository(db)

	if err := listingRepo.Create(ctx, makeListing(13)); err != nil {
		t.Fatalf("seed listing: %v", err)
	}

	err := guow.WithinListingTx(ctx, 13, func(r uow.Repos, l *listingDomain.Listing) error {
		if l.AssetID != 13 {
			t.Fatalf("locked wrong listing: %+v", l)
		}
		l.State = listingDomain.StateCancelled
		return r.Listings.Save(ctx, l)
	})
	if err != nil {
		t.Fatalf("WithinListingTx: %v", err)
	}

	got, err := listingRepo.GetByAssetID(ctx, 13)
	if err != nil {
		t.Fatalf("GetByAssetID: %v", err)
	}
	if got.State != listingDomain.StateCancelled {
		t.Fatalf("state = %s, want cancelled", got.State)
	}
}

func TestGormUoW_WithinListingTx_MissingListing(t *testing.T) {
	db := openTestDB(t)
	guow := NewGormUoW(db)

	err := guow.WithinListingTx(context.Background(), 404, func(r uow.Repos, l *listingDomain.Listing) error {
		t.Fatal("fn must not run for a missing listing")
		return nil
	})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("want ErrRecordNotFound, got %v", err)
	}
}
