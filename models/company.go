package models

import "time"

// Company represents a restaurant tenant. Every other record in the system
// belongs to exactly one company.
type Company struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"not null" json:"name"`
	Email           string    `gorm:"not null;uniqueIndex" json:"email"`
	Phone           string    `json:"phone"`
	WhatsApp        string    `json:"whatsapp"`
	Address         string    `json:"address"`
	City            string    `json:"city"`
	State           string    `json:"state"`
	Subdomain       string    `gorm:"not null;uniqueIndex" json:"subdomain"`
	Description     string    `json:"description"`
	EvolutionAPIURL string    `json:"-"`
	EvolutionAPIKey string    `json:"-"`
	Active          bool      `gorm:"default:true" json:"active"`
	CreatedAt       time.Time `json:"created_at"`
}

// TableName specifies the table name for the Company model
func (Company) TableName() string {
	return "companies"
}
