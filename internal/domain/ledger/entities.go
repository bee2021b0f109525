package ledger

import (
	"errors"
	"time"
)

var ErrBalanceOverflow = errors.New("ledger balance would overflow")

type EntryType string

const (
	EntryDeposit      EntryType = "deposit"
	EntryDisbursement EntryType = "disbursement"
	EntryRefund       EntryType = "refund"
)

// Entry is one movement of escrowed funds for a listing. Deposits carry a
// positive Amount, disbursements and refunds a negative one, so a listing's
// balance is the plain sum of its entries. Entries are append-only; a debit
// that would take a balance negative must never be written.
type Entry struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	EntryID   string    `gorm:"column:entry_id;type:char(32);not null;uniqueIndex:ux_ledger_entry_id" json:"entry_id"`
	ListingID uint64    `gorm:"column:listing_id;not null;index:idx_ledger_listing" json:"-"`
	Type      EntryType `gorm:"column:type;type:varchar(16);not null" json:"type"`
	Amount    int64     `gorm:"column:amount;not null" json:"amount"`
	// Who the funds came from (deposit) or are owed to (disbursement/refund).
	// The value-transfer rail that actually moves money is external; these
	// rows are the instructions it settles against.
	CounterpartyAddr string    `gorm:"column:counterparty_addr;type:char(40);not null" json:"counterparty_addr"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Entry) TableName() string { return "escrow_ledger" }
