package services

import (
	"errors"
	"time"

	"github.com/comandaviva/comanda-api/models"
	"gorm.io/gorm"
)

// TableService maintains the open/closed state of dine-in tables and their
// running bills as orders attach to them.
type TableService struct {
	db *gorm.DB
}

// NewTableService creates a TableService backed by db
func NewTableService(db *gorm.DB) *TableService {
	return &TableService{db: db}
}

// List returns all tables of a company ordered by label
func (s *TableService) List(companyID uint) ([]models.Table, error) {
	var tables []models.Table
	err := s.db.Where("company_id = ?", companyID).Order("label").Find(&tables).Error
	return tables, err
}

// Get returns one table of a company by label
func (s *TableService) Get(companyID uint, label string) (*models.Table, error) {
	var table models.Table
	err := s.db.Where("company_id = ? AND label = ?", companyID, label).First(&table).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &table, nil
}

// Close finalizes a table: every attached order that is not already in a
// terminal state is transitioned to delivered, and the table is marked
// closed. Returns the updated table.
func (s *TableService) Close(companyID uint, label string) (*models.Table, error) {
	var table models.Table
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("company_id = ? AND label = ?", companyID, label).First(&table).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		for _, orderID := range table.OrderIDs {
			var order models.Order
			err := tx.Where("company_id = ?", companyID).First(&order, orderID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			if order.Status.Terminal() {
				continue
			}
			if err := tx.Model(&order).Update("status", models.OrderStatusDelivered).Error; err != nil {
				return err
			}
		}

		now := time.Now()
		updates := map[string]interface{}{
			"status":    models.TableStatusClosed,
			"closed_at": &now,
		}
		if err := tx.Model(&table).Updates(updates).Error; err != nil {
			return err
		}
		table.Status = models.TableStatusClosed
		table.ClosedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &table, nil
}

// attachOrder runs inside the order create/edit transaction. The first order
// for an unseen label creates the table; a closed table starts a fresh
// session. The bill is recomputed from the current totals of all attached
// orders rather than incremented, so it stays correct after edits.
func (s *TableService) attachOrder(tx *gorm.DB, companyID uint, label string, order *models.Order) error {
	var table models.Table
	err := tx.Where("company_id = ? AND label = ?", companyID, label).First(&table).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		now := time.Now()
		table = models.Table{
			Label:     label,
			CompanyID: companyID,
			Status:    models.TableStatusOccupied,
			OrderIDs:  models.OrderIDList{order.ID},
			BillTotal: order.Total,
			OpenedAt:  &now,
		}
		return tx.Create(&table).Error
	}
	if err != nil {
		return err
	}

	ids := table.OrderIDs
	openedAt := table.OpenedAt
	if table.Status == models.TableStatusClosed {
		// new session on a previously closed table
		ids = nil
		now := time.Now()
		openedAt = &now
	}
	if !ids.Contains(order.ID) {
		ids = append(ids, order.ID)
	}

	bill, err := sumOrderTotals(tx, companyID, ids)
	if err != nil {
		return err
	}

	return tx.Model(&table).Updates(map[string]interface{}{
		"status":     models.TableStatusOccupied,
		"order_ids":  ids,
		"bill_total": bill,
		"opened_at":  openedAt,
		"closed_at":  nil,
	}).Error
}

// detachOrder removes an order from a table's session and recomputes the
// bill. A table left with no attached orders goes back to free.
func (s *TableService) detachOrder(tx *gorm.DB, companyID uint, label string, orderID uint) error {
	var table models.Table
	err := tx.Where("company_id = ? AND label = ?", companyID, label).First(&table).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	ids := make(models.OrderIDList, 0, len(table.OrderIDs))
	for _, id := range table.OrderIDs {
		if id != orderID {
			ids = append(ids, id)
		}
	}

	bill, err := sumOrderTotals(tx, companyID, ids)
	if err != nil {
		return err
	}

	status := table.Status
	if len(ids) == 0 && status == models.TableStatusOccupied {
		status = models.TableStatusFree
	}

	return tx.Model(&table).Updates(map[string]interface{}{
		"status":     status,
		"order_ids":  ids,
		"bill_total": bill,
	}).Error
}

func sumOrderTotals(tx *gorm.DB, companyID uint, ids models.OrderIDList) (float64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var bill float64
	err := tx.Model(&models.Order{}).
		Where("company_id = ? AND id IN ?", companyID, []uint(ids)).
		Select("COALESCE(SUM(total), 0)").
		Scan(&bill).Error
	return bill, err
}
