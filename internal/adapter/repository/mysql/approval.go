package mysql

import (
	"context"

	approvalDomain "realty-escrow/internal/domain/approval"

	"gorm.io/gorm"
)

type ApprovalRepository struct{ db *gorm.DB }

func NewApprovalRepository(db *gorm.DB) *ApprovalRepository { return &ApprovalRepository{db: db} }

func (r *ApprovalRepository) Create(ctx context.Context, a *approvalDomain.Approval) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApprovalRepository) GetByListingRole(ctx context.Context, listingID uint64, role approvalDomain.Role) (*approvalDomain.Approval, error) {
	var out approvalDomain.Approval
	res := r.db.WithContext(ctx).
		Where("listing_id = ? AND role = ?", listingID, role).
		First(&out)
	return &out, res.Error
}

func (r *ApprovalRepository) ListByListingID(ctx context.Context, listingID uint64) ([]approvalDomain.Approval, error) {
	var out []approvalDomain.Approval
	res := r.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
