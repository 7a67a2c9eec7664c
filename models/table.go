package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// TableStatus is the state of a physical dine-in table.
type TableStatus string

const (
	TableStatusFree     TableStatus = "free"
	TableStatusOccupied TableStatus = "occupied"
	TableStatusClosed   TableStatus = "closed"
)

// OrderIDList is a JSON column holding the ids of the orders attached to a
// table during its current session.
type OrderIDList []uint

// Value implements driver.Valuer
func (l OrderIDList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]uint{})
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner
func (l *OrderIDList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return fmt.Errorf("unsupported type for order id list: %T", value)
}

// Contains reports whether id is in the list.
func (l OrderIDList) Contains(id uint) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// Table represents a dine-in table tracked as an aggregate of attached
// orders and a running bill.
type Table struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	Label     string      `gorm:"not null;uniqueIndex:idx_tables_company_label" json:"label"`
	CompanyID uint        `gorm:"not null;uniqueIndex:idx_tables_company_label" json:"company_id"`
	Status    TableStatus `gorm:"not null;default:'free'" json:"status"`
	OrderIDs  OrderIDList `json:"order_ids"`
	BillTotal float64     `gorm:"not null;default:0" json:"bill_total"`
	OpenedAt  *time.Time  `json:"opened_at"`
	ClosedAt  *time.Time  `json:"closed_at"`
	CreatedAt time.Time   `json:"created_at"`
}

// TableName specifies the table name for the Table model
func (Table) TableName() string {
	return "tables"
}
