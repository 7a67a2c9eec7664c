package models

import "time"

// Customer represents a delivery customer of a company. Walk-in and table
// orders do not reference a customer.
type Customer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	WhatsApp   string    `json:"whatsapp"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	PostalCode string    `json:"postal_code"`
	Notes      string    `json:"notes"`
	CompanyID  uint      `gorm:"not null;index" json:"company_id"`
	Active     bool      `gorm:"default:true" json:"active"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
