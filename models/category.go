package models

import "time"

// Category groups menu items (e.g. "Pizza", "Drinks")
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	CompanyID   uint      `gorm:"not null;index" json:"company_id"`
	SortOrder   int       `gorm:"default:0" json:"sort_order"`
	Active      bool      `gorm:"default:true" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
