package services

import (
	"time"

	"github.com/comandaviva/comanda-api/models"
	"gorm.io/gorm"
)

// CompanyStats are the dashboard headline numbers.
type CompanyStats struct {
	OrdersToday   int64   `json:"orders_today"`
	Sales         float64 `json:"sales"`
	CustomerCount int64   `json:"customer_count"`
	PendingOrders int64   `json:"pending_orders"`
}

// StatsService computes dashboard statistics for a company.
type StatsService struct {
	db *gorm.DB
}

// NewStatsService creates a StatsService backed by db
func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// CompanyStats returns today's order count, total confirmed sales, customer
// count and pending order count for a company.
func (s *StatsService) CompanyStats(companyID uint) (*CompanyStats, error) {
	stats := &CompanyStats{}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	err := s.db.Model(&models.Order{}).
		Where("company_id = ? AND created_at >= ?", companyID, midnight).
		Count(&stats.OrdersToday).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Model(&models.Order{}).
		Where("company_id = ? AND status = ?", companyID, models.OrderStatusConfirmed).
		Select("COALESCE(SUM(total), 0)").
		Scan(&stats.Sales).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Model(&models.Customer{}).
		Where("company_id = ?", companyID).
		Count(&stats.CustomerCount).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Model(&models.Order{}).
		Where("company_id = ? AND status = ?", companyID, models.OrderStatusPending).
		Count(&stats.PendingOrders).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}
