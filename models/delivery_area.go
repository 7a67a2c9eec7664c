package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Neighborhoods is a JSON column listing the neighborhoods covered by a
// delivery area.
type Neighborhoods []string

// Value implements driver.Valuer
func (n Neighborhoods) Value() (driver.Value, error) {
	if n == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(n)
}

// Scan implements sql.Scanner
func (n *Neighborhoods) Scan(value interface{}) error {
	if value == nil {
		*n = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, n)
	case string:
		return json.Unmarshal([]byte(v), n)
	}
	return fmt.Errorf("unsupported type for neighborhoods: %T", value)
}

// DeliveryArea is a zone a company delivers to, with its fee and ETA
type DeliveryArea struct {
	ID               uint          `gorm:"primaryKey" json:"id"`
	Name             string        `gorm:"not null" json:"name"`
	CompanyID        uint          `gorm:"not null;index" json:"company_id"`
	Neighborhoods    Neighborhoods `json:"neighborhoods"`
	RadiusKm         float64       `json:"radius_km"`
	DeliveryFee      float64       `gorm:"not null" json:"delivery_fee"`
	EstimatedMinutes int           `gorm:"not null" json:"estimated_minutes"`
	Color            string        `json:"color"`
	Active           bool          `gorm:"default:true" json:"active"`
	CreatedAt        time.Time     `json:"created_at"`
}

// TableName specifies the table name for the DeliveryArea model
func (DeliveryArea) TableName() string {
	return "delivery_areas"
}
