package mysql

import (
	"context"
	"strings"
	"testing"

	listingDomain "realty-escrow/internal/domain/listing"
	escrowUC "realty-escrow/internal/usecase/escrow"
	listingUC "realty-escrow/internal/usecase/listing"

	"gorm.io/gorm"
)

// Full-stack fixture: real repositories, real unit of work, real registry,
// one shared database. This is the wiring cmd/api uses, minus HTTP.
type stack struct {
	db      *gorm.DB
	reg     *AssetRegistry
	listing *listingUC.Usecase
	escrow  *escrowUC.Usecase
}

var (
	e2eSeller = strings.Repeat("a", 40)
	e2eBuyer  = strings.Repeat("b", 40)
	e2eInsp   = strings.Repeat("c", 40)
	e2eLender = strings.Repeat("d", 40)
	e2eVault  = strings.Repeat("0", 36) + "e5c0"
)

func newStack(t *testing.T) *stack {
	t.Helper()
	db := openTestDB(t)
	guow := NewGormUoW(db)
	return &stack{
		db:      db,
		reg:     NewAssetRegistry(db),
		listing: listingUC.NewUsecase(NewListingRepository(db), guow, e2eVault),
		escrow:  escrowUC.NewUsecase(guow, NewLedgerRepository(db)),
	}
}

// list mints asset 1 to the seller and creates a fully-specified listing.
func (s *stack) list(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	if err := s.reg.Mint(ctx, 1, e2eSeller, "ipfs://QmTitleDeed"); err != nil {
		t.Fatalf("Mint: %v", err)
	}
	_, err := s.listing.Create(ctx, listingUC.CreateInput{
		AssetID:       1,
		CallerAddr:    e2eSeller,
		PurchasePrice: 10,
		BuyerAddr:     e2eBuyer,
		EscrowAmount:  5,
		InspectorAddr: e2eInsp,
		LenderAddr:    e2eLender,
	})
	if err != nil {
		t.Fatalf("Create listing: %v", err)
	}
}

// makeEligible walks the listing to the point where finalize may succeed.
func (s *stack) makeEligible(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := s.escrow.DepositEarnest(ctx, 1, e2eBuyer, 5); err != nil {
			t.Fatalf("deposit %d: %v", i, err)
		}
	}
	if _, err := s.escrow.UpdateInspection(ctx, 1, e2eInsp, true); err != nil {
		t.Fatalf("inspection: %v", err)
	}
	for _, addr := range []string{e2eSeller, e2eBuyer, e2eLender} {
		if _, err := s.escrow.ApproveSale(ctx, 1, addr); err != nil {
			t.Fatalf("approve by %s: %v", addr, err)
		}
	}
}

func TestEndToEnd_FullSale(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	s.list(t)

	// custody moved to the vault at listing time
	if owner, _ := s.reg.CurrentOwner(ctx, 1); owner != e2eVault {
		t.Fatalf("owner = %s after listing, want vault", owner)
	}

	s.makeEligible(t)

	dto, err := s.escrow.FinalizeSale(ctx, 1, e2eBuyer)
	if err != nil {
		t.Fatalf("FinalizeSale: %v", err)
	}
	if dto.SellerPayout != 10 {
		t.Fatalf("payout = %d, want 10", dto.SellerPayout)
	}
	if owner, _ := s.reg.CurrentOwner(ctx, 1); owner != e2eBuyer {
		t.Fatalf("owner = %s after finalize, want buyer", owner)
	}

	l, err := NewListingRepository(s.db).GetByAssetID(ctx, 1)
	if err != nil {
		t.Fatalf("GetByAssetID: %v", err)
	}
	if l.State != listingDomain.StateFinalized {
		t.Fatalf("state = %s, want finalized", l.State)
	}
	if bal, _ := NewLedgerRepository(s.db).ListingBalance(ctx, l.ID); bal != 0 {
		t.Fatalf("balance = %d after finalize, want 0", bal)
	}
}

// The payout insert fails after the ownership transfer has already run inside
// the transaction. Both must roll back together: the buyer must not end up
// owning the asset while the listing is still open with its balance intact.
func TestEndToEnd_PayoutFailureRollsBackTransfer(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	s.list(t)
	s.makeEligible(t)

	err := s.db.Exec(`CREATE TRIGGER reject_payouts BEFORE INSERT ON escrow_ledger
		WHEN NEW.type = 'disbursement'
		BEGIN SELECT RAISE(ABORT, 'ledger write refused'); END`).Error
	if err != nil {
		t.Fatalf("install trigger: %v", err)
	}

	if _, err := s.escrow.FinalizeSale(ctx, 1, e2eBuyer); err == nil {
		t.Fatal("finalize must fail when the payout cannot be written")
	}

	if owner, _ := s.reg.CurrentOwner(ctx, 1); owner != e2eVault {
		t.Fatalf("owner = %s after aborted finalize, want vault", owner)
	}
	l, err := NewListingRepository(s.db).GetByAssetID(ctx, 1)
	if err != nil {
		t.Fatalf("GetByAssetID: %v", err)
	}
	if l.State != listingDomain.StateListed {
		t.Fatalf("state = %s after aborted finalize, want listed", l.State)
	}
	if bal, _ := NewLedgerRepository(s.db).ListingBalance(ctx, l.ID); bal != 10 {
		t.Fatalf("balance = %d after aborted finalize, want 10", bal)
	}
}

func TestEndToEnd_TransferFailureLeavesStateUntouched(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	s.list(t)
	s.makeEligible(t)

	// the registry loses the asset row, so the vault→buyer transfer fails
	if err := s.db.Exec(`DELETE FROM assets WHERE asset_id = 1`).Error; err != nil {
		t.Fatalf("drop asset row: %v", err)
	}

	if _, err := s.escrow.FinalizeSale(ctx, 1, e2eBuyer); err == nil {
		t.Fatal("finalize must fail when the registry transfer fails")
	}

	l, err := NewListingRepository(s.db).GetByAssetID(ctx, 1)
	if err != nil {
		t.Fatalf("GetByAssetID: %v", err)
	}
	if l.State != listingDomain.StateListed {
		t.Fatalf("state = %s, want listed", l.State)
	}
	if bal, _ := NewLedgerRepository(s.db).ListingBalance(ctx, l.ID); bal != 10 {
		t.Fatalf("balance = %d, want 10", bal)
	}
	var payouts int64
	s.db.Table("escrow_ledger").Where("type = ?", "disbursement").Count(&payouts)
	if payouts != 0 {
		t.Fatalf("aborted finalize wrote %d disbursement rows", payouts)
	}
}

func TestEndToEnd_CancelAfterFailedInspectionRefundsBuyer(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	s.list(t)

	if _, err := s.escrow.DepositEarnest(ctx, 1, e2eBuyer, 5); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if _, err := s.escrow.UpdateInspection(ctx, 1, e2eInsp, false); err != nil {
		t.Fatalf("inspection: %v", err)
	}

	dto, err := s.escrow.CancelSale(ctx, 1, e2eBuyer)
	if err != nil {
		t.Fatalf("CancelSale: %v", err)
	}
	if dto.PaidTo != e2eBuyer || dto.Amount != 5 {
		t.Fatalf("refund = %+v, want 5 to buyer", dto)
	}

	l, err := NewListingRepository(s.db).GetByAssetID(ctx, 1)
	if err != nil {
		t.Fatalf("GetByAssetID: %v", err)
	}
	if l.State != listingDomain.StateCancelled {
		t.Fatalf("state = %s, want cancelled", l.State)
	}
	if bal, _ := NewLedgerRepository(s.db).ListingBalance(ctx, l.ID); bal != 0 {
		t.Fatalf("balance = %d after cancel, want 0", bal)
	}
}
