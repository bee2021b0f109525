package escrow

import (
	"context"
	"errors"
	"math"
	"time"

	approvalDomain "realty-escrow/internal/domain/approval"
	ledgerDomain "realty-escrow/internal/domain/ledger"
	listingDomain "realty-escrow/internal/domain/listing"
	"realty-escrow/internal/domain/uow"
	"realty-escrow/pkg/id"

	"gorm.io/gorm"
)

// Usecase is the escrow engine: deposits, inspection, approvals, and the
// finalize/cancel state machine. Every mutation runs inside a listing-locked
// transaction, so transitions on one listing never interleave.
type Usecase struct {
	uow    uow.UnitOfWork
	ledger ledgerDomain.Repository
	nowFn  func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, lr ledgerDomain.Repository) *Usecase {
	return &Usecase{uow: tx, ledger: lr, nowFn: func() time.Time { return time.Now().UTC() }}
}

// SetNowFunc overrides the time source. Intended for tests.
func (u *Usecase) SetNowFunc(now func() time.Time) {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	u.nowFn = now
}

// notListed maps a missing row to the domain error; everything else passes
// through untouched.
func notListed(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return listingDomain.ErrNotListed
	}
	return err
}

// DepositEarnest credits the listing's escrow balance. Buyer only, and the
// amount must match the agreed escrow amount exactly.
func (u *Usecase) DepositEarnest(ctx context.Context, assetID uint64, callerAddr string, amount uint64) (*DepositDTO, error) {
	var dto *DepositDTO

	err := u.uow.WithinListingTx(ctx, assetID, func(r uow.Repos, l *listingDomain.Listing) error {
		if !l.Active() {
			return listingDomain.ErrNotListed
		}
		if callerAddr != l.BuyerAddr {
			return listingDomain.ErrUnauthorized
		}
		if amount != l.EscrowAmount {
			return listingDomain.ErrInvalidDepositAmount
		}

		bal, err := r.Ledger.ListingBalance(ctx, l.ID)
		if err != nil {
			return err
		}
		if amount > math.MaxInt64 || bal > math.MaxInt64-int64(amount) {
			return ledgerDomain.ErrBalanceOverflow
		}

		e := &ledgerDomain.Entry{
			EntryID:          id.NewID32(),
			ListingID:        l.ID,
			Type:             ledgerDomain.EntryDeposit,
			Amount:           int64(amount),
			CounterpartyAddr: callerAddr,
		}
		if err := r.Ledger.Create(ctx, e); err != nil {
			return err
		}

		dto = &DepositDTO{EntryID: e.EntryID, AssetID: assetID, Amount: amount, Balance: uint64(bal) + amount}
		return nil
	})
	if err != nil {
		return nil, notListed(err)
	}
	return dto, nil
}

// UpdateInspection records the inspector's verdict. Overwrites are allowed
// any number of times before the listing closes, and a flip never invalidates
// approvals already on file; finalize re-checks everything at call time.
func (u *Usecase) UpdateInspection(ctx context.Context, assetID uint64, callerAddr string, passed bool) (*InspectionDTO, error) {
	var dto *InspectionDTO

	err := u.uow.WithinListingTx(ctx, assetID, func(r uow.Repos, l *listingDomain.Listing) error {
		if !l.Active() {
			return listingDomain.ErrNotListed
		}
		if callerAddr != l.InspectorAddr {
			return listingDomain.ErrUnauthorized
		}
		l.InspectionPassed = passed
		if err := r.Listings.Save(ctx, l); err != nil {
			return err
		}
		dto = &InspectionDTO{AssetID: assetID, Passed: passed}
		return nil
	})
	if err != nil {
		return nil, notListed(err)
	}
	return dto, nil
}

// rolesOf returns every required role the caller holds on the listing. An
// address doubling as, say, buyer and lender signs off for both at once.
func rolesOf(l *listingDomain.Listing, callerAddr string) []approvalDomain.Role {
	var roles []approvalDomain.Role
	if callerAddr == l.SellerAddr {
		roles = append(roles, approvalDomain.RoleSeller)
	}
	if callerAddr == l.BuyerAddr {
		roles = append(roles, approvalDomain.RoleBuyer)
	}
	if callerAddr == l.LenderAddr {
		roles = append(roles, approvalDomain.RoleLender)
	}
	return roles
}

// ApproveSale records the caller's sign-off. Idempotent: approving twice is a
// no-op, not an error. Quorum is not checked here; finalize evaluates it.
func (u *Usecase) ApproveSale(ctx context.Context, assetID uint64, callerAddr string) (*ApprovalDTO, error) {
	var dto *ApprovalDTO

	err := u.uow.WithinListingTx(ctx, assetID, func(r uow.Repos, l *listingDomain.Listing) error {
		if !l.Active() {
			return listingDomain.ErrNotListed
		}
		roles := rolesOf(l, callerAddr)
		if len(roles) == 0 {
			return listingDomain.ErrUnauthorized
		}

		for _, role := range roles {
			_, err := r.Approvals.GetByListingRole(ctx, l.ID, role)
			switch {
			case err == nil:
				continue // already on file
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}
			a := &approvalDomain.Approval{
				ApprovalID: id.NewID32(),
				ListingID:  l.ID,
				Role:       role,
				SignerAddr: callerAddr,
				SignedAt:   u.nowFn(),
			}
			if err := r.Approvals.Create(ctx, a); err != nil {
				return err
			}
		}

		dto = &ApprovalDTO{AssetID: assetID, SignerAddr: callerAddr}
		for _, role := range roles {
			dto.Roles = append(dto.Roles, string(role))
		}
		return nil
	})
	if err != nil {
		return nil, notListed(err)
	}
	return dto, nil
}

// FinalizeSale closes the sale: asset to the buyer, held funds to the seller.
// Preconditions are checked in a fixed order — active listing, inspection,
// approvals, balance — and the first unmet one is reported, so a given state
// always yields the same error.
func (u *Usecase) FinalizeSale(ctx context.Context, assetID uint64, callerAddr string) (*FinalizeDTO, error) {
	var dto *FinalizeDTO

	err := u.uow.WithinListingTx(ctx, assetID, func(r uow.Repos, l *listingDomain.Listing) error {
		if !l.Active() {
			return &listingDomain.FinalizationBlockedError{Reason: "listing is not active"}
		}
		if !l.InspectionPassed {
			return &listingDomain.FinalizationBlockedError{Reason: "inspection has not passed"}
		}

		approvals, err := r.Approvals.ListByListingID(ctx, l.ID)
		if err != nil {
			return err
		}
		if missing, ok := approvalDomain.HasQuorum(approvals); !ok {
			return &listingDomain.FinalizationBlockedError{Reason: "missing approval from " + string(missing)}
		}

		bal, err := r.Ledger.ListingBalance(ctx, l.ID)
		if err != nil {
			return err
		}
		if bal < 0 || uint64(bal) < l.PurchasePrice {
			return &listingDomain.FinalizationBlockedError{Reason: "insufficient escrow balance"}
		}

		// The registry is bound to the same transaction, so the ownership
		// change and the payout commit or roll back together.
		if err := r.Assets.Transfer(ctx, assetID, l.BuyerAddr); err != nil {
			return err
		}

		now := u.nowFn()
		payout := &ledgerDomain.Entry{
			EntryID:          id.NewID32(),
			ListingID:        l.ID,
			Type:             ledgerDomain.EntryDisbursement,
			Amount:           -bal,
			CounterpartyAddr: l.SellerAddr,
		}
		if err := r.Ledger.Create(ctx, payout); err != nil {
			return err
		}

		l.State = listingDomain.StateFinalized
		l.StateUpdatedAt = now
		if err := r.Listings.Save(ctx, l); err != nil {
			return err
		}

		dto = &FinalizeDTO{AssetID: assetID, BuyerAddr: l.BuyerAddr, SellerPayout: uint64(bal), FinalizedAt: now}
		return nil
	})
	if err != nil {
		return nil, notListed(err)
	}
	return dto, nil
}

// CancelSale withdraws from escrow. The refund direction is the central rule:
// funds go back to the buyer unless inspection has passed, in which case the
// buyer forfeits the earnest money to the seller.
func (u *Usecase) CancelSale(ctx context.Context, assetID uint64, callerAddr string) (*CancelDTO, error) {
	var dto *CancelDTO

	err := u.uow.WithinListingTx(ctx, assetID, func(r uow.Repos, l *listingDomain.Listing) error {
		if !l.Active() {
			return listingDomain.ErrNotListed
		}

		bal, err := r.Ledger.ListingBalance(ctx, l.ID)
		if err != nil {
			return err
		}
		if bal < 0 {
			bal = 0
		}

		now := u.nowFn()
		paidTo := l.BuyerAddr
		entryType := ledgerDomain.EntryRefund
		if l.InspectionPassed {
			paidTo = l.SellerAddr
			entryType = ledgerDomain.EntryDisbursement
		}

		if bal > 0 {
			e := &ledgerDomain.Entry{
				EntryID:          id.NewID32(),
				ListingID:        l.ID,
				Type:             entryType,
				Amount:           -bal,
				CounterpartyAddr: paidTo,
			}
			if err := r.Ledger.Create(ctx, e); err != nil {
				return err
			}
		}

		l.State = listingDomain.StateCancelled
		l.StateUpdatedAt = now
		if err := r.Listings.Save(ctx, l); err != nil {
			return err
		}

		dto = &CancelDTO{
			AssetID:          assetID,
			PaidTo:           paidTo,
			Amount:           uint64(bal),
			InspectionPassed: l.InspectionPassed,
			CancelledAt:      now,
		}
		return nil
	})
	if err != nil {
		return nil, notListed(err)
	}
	return dto, nil
}

// GetBalance is the aggregate pool view across all listings, kept for parity
// with external pollers; per-listing balances are the isolated source of
// truth.
func (u *Usecase) GetBalance(ctx context.Context) (uint64, error) {
	sum, err := u.ledger.TotalBalance(ctx)
	if err != nil {
		return 0, err
	}
	if sum < 0 {
		sum = 0
	}
	return uint64(sum), nil
}

// ListingBalance reads one listing's held funds; absent listings read as 0.
func (u *Usecase) ListingBalance(ctx context.Context, assetID uint64) (uint64, error) {
	var bal uint64
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Listings.GetByAssetID(ctx, assetID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		sum, err := r.Ledger.ListingBalance(ctx, l.ID)
		if err != nil {
			return err
		}
		if sum > 0 {
			bal = uint64(sum)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return bal, nil
}
