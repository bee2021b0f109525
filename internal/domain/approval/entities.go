package approval

import (
	"time"
)

// Role identifies which party a sign-off was given as. A listing finalizes
// only once all three roles have approved.
type Role string

const (
	RoleSeller Role = "seller"
	RoleBuyer  Role = "buyer"
	RoleLender Role = "lender"
)

// Required is the quorum for finalization, in the order checks are reported.
var Required = []Role{RoleSeller, RoleBuyer, RoleLender}

// Table: sale_approvals
type Approval struct {
	// Internal numeric PK
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Public identifier (32-char lowercase hex)
	ApprovalID string `gorm:"column:approval_id;type:char(32);not null;uniqueIndex:ux_approvals_approval_id"`
	// FK to listings.id (numeric)
	ListingID  uint64    `gorm:"column:listing_id;not null;index;uniqueIndex:ux_approvals_listing_role,priority:1"`
	Role       Role      `gorm:"column:role;type:varchar(16);not null;uniqueIndex:ux_approvals_listing_role,priority:2"`
	SignerAddr string    `gorm:"column:signer_addr;type:char(40);not null"`
	SignedAt   time.Time `gorm:"column:signed_at;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Approval) TableName() string { return "sale_approvals" }

// HasQuorum reports whether the given approvals cover every required role,
// and names the first missing role otherwise.
func HasQuorum(got []Approval) (Role, bool) {
	have := make(map[Role]bool, len(got))
	for _, a := range got {
		have[a.Role] = true
	}
	for _, r := range Required {
		if !have[r] {
			return r, false
		}
	}
	return "", true
}
