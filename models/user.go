package models

import "time"

// User roles. "admin" owns a company dashboard, "waiter" can manage orders
// and tables, "super_admin" spans all companies.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleWaiter     = "waiter"
)

// User represents a dashboard login (company staff)
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"not null;default:'admin'" json:"role"`
	CompanyID    *uint     `gorm:"index" json:"company_id"`
	Company      *Company  `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Active       bool      `gorm:"default:true" json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
