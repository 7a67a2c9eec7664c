package models

import "time"

// LedgerKind is the direction of a ledger entry.
type LedgerKind string

const (
	LedgerKindRevenue LedgerKind = "revenue"
	LedgerKindExpense LedgerKind = "expense"
)

// Valid reports whether k is a known ledger kind.
func (k LedgerKind) Valid() bool {
	return k == LedgerKindRevenue || k == LedgerKindExpense
}

// LedgerSource records how an entry was created.
type LedgerSource string

const (
	LedgerSourceManual LedgerSource = "manual"
	LedgerSourceOrder  LedgerSource = "order"
)

// LedgerEntryStatus is the settlement state of an entry.
type LedgerEntryStatus string

const (
	LedgerEntryConfirmed LedgerEntryStatus = "confirmed"
	LedgerEntryCancelled LedgerEntryStatus = "cancelled"
)

// LedgerEntry is one revenue or expense record in a company's financial
// journal. Order-sourced entries are created when the order is confirmed;
// there is at most one per order.
type LedgerEntry struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	CompanyID   uint              `gorm:"not null;index" json:"company_id"`
	Kind        LedgerKind        `gorm:"not null" json:"kind"`
	Description string            `gorm:"not null" json:"description"`
	Amount      float64           `gorm:"not null" json:"amount"`
	Category    string            `gorm:"not null" json:"category"`
	OrderID     *uint             `gorm:"index" json:"order_id"` // set only when source = order
	Source      LedgerSource      `gorm:"not null;default:'manual'" json:"source"`
	Status      LedgerEntryStatus `gorm:"not null;default:'confirmed'" json:"status"`
	EntryDate   time.Time         `json:"entry_date"`
	CreatedAt   time.Time         `json:"created_at"`
}

// TableName specifies the table name for the LedgerEntry model
func (LedgerEntry) TableName() string {
	return "ledger_entries"
}
