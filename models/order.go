package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Terminal reports whether no further transitions are allowed out of s.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// Valid reports whether s is a known lifecycle state.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusReady, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderType distinguishes how an order reaches the customer.
type OrderType string

const (
	OrderTypeDelivery OrderType = "delivery"
	OrderTypeCounter  OrderType = "counter"
	OrderTypeTable    OrderType = "table"
)

// Valid reports whether t is a known order type.
func (t OrderType) Valid() bool {
	return t == OrderTypeDelivery || t == OrderTypeCounter || t == OrderTypeTable
}

// OrderItem is one line item on an order. Price is a snapshot of the unit
// price at order time.
type OrderItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Notes    string  `json:"notes,omitempty"`
}

// OrderItems is stored as a JSON column
type OrderItems []OrderItem

// Value implements driver.Valuer
func (i OrderItems) Value() (driver.Value, error) {
	return json.Marshal(i)
}

// Scan implements sql.Scanner
func (i *OrderItems) Scan(value interface{}) error {
	if value == nil {
		*i = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, i)
	case string:
		return json.Unmarshal([]byte(v), i)
	}
	return fmt.Errorf("unsupported type for order items: %T", value)
}

// Order represents a customer order in the system
type Order struct {
	ID               uint        `gorm:"primaryKey" json:"id"`
	Number           string      `gorm:"not null;index" json:"number"` // PED001, PED002, ... per company
	CompanyID        uint        `gorm:"not null;index" json:"company_id"`
	CustomerID       *uint       `gorm:"index" json:"customer_id"` // nullable, walk-in and table orders have none
	Customer         *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	TableLabel       string      `json:"table_label,omitempty"` // set only for table orders
	Status           OrderStatus `gorm:"not null;default:'pending'" json:"status"`
	Type             OrderType   `gorm:"not null" json:"type"`
	Items            OrderItems  `gorm:"not null" json:"items"`
	Subtotal         float64     `gorm:"not null" json:"subtotal"`
	DeliveryFee      float64     `gorm:"not null;default:0" json:"delivery_fee"`
	Total            float64     `gorm:"not null" json:"total"`
	Notes            string      `json:"notes"`
	ContactPhone     string      `json:"contact_phone"`
	DeliveryAddress  string      `json:"delivery_address"`
	EstimatedMinutes int         `json:"estimated_minutes"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderSequence holds the last issued order number per company. Incremented
// with an atomic UPDATE inside the order-create transaction so concurrent
// creates never reuse a number.
type OrderSequence struct {
	CompanyID  uint `gorm:"primaryKey" json:"company_id"`
	LastNumber int  `gorm:"not null;default:0" json:"last_number"`
}

// TableName specifies the table name for the OrderSequence model
func (OrderSequence) TableName() string {
	return "order_sequences"
}
