package models

import "time"

// Ticket statuses
const (
	TicketStatusOpen     = "open"
	TicketStatusAnswered = "answered"
	TicketStatusClosed   = "closed"
)

// SupportTicket is a help request raised from the admin dashboard
type SupportTicket struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CompanyID   uint      `gorm:"not null;index" json:"company_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"not null" json:"description"`
	Priority    string    `gorm:"not null" json:"priority"` // low, medium, high
	Category    string    `gorm:"not null" json:"category"` // technical, billing, other
	Status      string    `gorm:"not null;default:'open'" json:"status"`
	UserID      *uint     `gorm:"index" json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for the SupportTicket model
func (SupportTicket) TableName() string {
	return "support_tickets"
}
