package models

import "time"

// MenuItem represents one item on a company's menu
type MenuItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	ImageS3Key  *string   `json:"image_s3_key"`
	ImageURL    *string   `gorm:"-" json:"image_url,omitempty"` // computed field, presigned URL for image
	CategoryID  uint      `gorm:"not null;index" json:"category_id"`
	Category    Category  `gorm:"foreignKey:CategoryID" json:"category"`
	CompanyID   uint      `gorm:"not null;index" json:"company_id"`
	Available   bool      `gorm:"default:true" json:"available"`
	SortOrder   int       `gorm:"default:0" json:"sort_order"`
	PrepMinutes int       `json:"prep_minutes"`
	Ingredients string    `json:"ingredients"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for the MenuItem model
func (MenuItem) TableName() string {
	return "menu_items"
}
