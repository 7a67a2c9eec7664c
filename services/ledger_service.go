package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/comandaviva/comanda-api/models"
	"gorm.io/gorm"
)

// EntryInput is the caller-supplied data for a manual ledger entry.
type EntryInput struct {
	Kind        models.LedgerKind `json:"kind"`
	Description string            `json:"description"`
	Amount      float64           `json:"amount"`
	Category    string            `json:"category"`
}

// LedgerSummary aggregates a company's financial position on demand.
type LedgerSummary struct {
	RevenueTotal    float64 `json:"revenue_total"`
	ExpenseTotal    float64 `json:"expense_total"`
	NetProfit       float64 `json:"net_profit"`
	ConfirmedOrders int64   `json:"confirmed_orders"`
	PendingOrders   int64   `json:"pending_orders"`
	PendingValue    float64 `json:"pending_value"`
}

// LedgerService records manual and order-derived financial entries and
// produces aggregate summaries.
type LedgerService struct {
	db *gorm.DB
}

// NewLedgerService creates a LedgerService backed by db
func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{db: db}
}

// List returns all ledger entries of a company, newest first
func (s *LedgerService) List(companyID uint) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	err := s.db.Where("company_id = ?", companyID).
		Order("entry_date DESC").
		Find(&entries).Error
	return entries, err
}

// Record appends a manual entry to the company's ledger. Entries are created
// confirmed; there is no pending ledger state.
func (s *LedgerService) Record(companyID uint, in EntryInput) (*models.LedgerEntry, error) {
	if !in.Kind.Valid() {
		return nil, fmt.Errorf("%w: kind must be revenue or expense", ErrInvalidEntry)
	}
	if in.Description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidEntry)
	}
	if in.Category == "" {
		return nil, fmt.Errorf("%w: category is required", ErrInvalidEntry)
	}
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidEntry)
	}

	entry := models.LedgerEntry{
		CompanyID:   companyID,
		Kind:        in.Kind,
		Description: in.Description,
		Amount:      in.Amount,
		Category:    in.Category,
		Source:      models.LedgerSourceManual,
		Status:      models.LedgerEntryConfirmed,
		EntryDate:   time.Now(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// Summarize computes the company's financial summary: confirmed revenue and
// expense totals plus the order pipeline counters. Pure read.
func (s *LedgerService) Summarize(companyID uint) (*LedgerSummary, error) {
	summary := &LedgerSummary{}

	err := s.db.Model(&models.LedgerEntry{}).
		Where("company_id = ? AND kind = ? AND status = ?",
			companyID, models.LedgerKindRevenue, models.LedgerEntryConfirmed).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&summary.RevenueTotal).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Model(&models.LedgerEntry{}).
		Where("company_id = ? AND kind = ? AND status = ?",
			companyID, models.LedgerKindExpense, models.LedgerEntryConfirmed).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&summary.ExpenseTotal).Error
	if err != nil {
		return nil, err
	}
	summary.NetProfit = summary.RevenueTotal - summary.ExpenseTotal

	err = s.db.Model(&models.Order{}).
		Where("company_id = ? AND status = ?", companyID, models.OrderStatusConfirmed).
		Count(&summary.ConfirmedOrders).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Model(&models.Order{}).
		Where("company_id = ? AND status = ?", companyID, models.OrderStatusPending).
		Count(&summary.PendingOrders).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Model(&models.Order{}).
		Where("company_id = ? AND status = ?", companyID, models.OrderStatusPending).
		Select("COALESCE(SUM(total), 0)").
		Scan(&summary.PendingValue).Error
	if err != nil {
		return nil, err
	}

	return summary, nil
}

// recordOrderRevenue creates the revenue entry for a freshly confirmed
// order. Runs inside the confirm transaction. A second call for the same
// order is a no-op, so an order never yields two entries.
func (s *LedgerService) recordOrderRevenue(tx *gorm.DB, order *models.Order) error {
	var count int64
	err := tx.Model(&models.LedgerEntry{}).
		Where("company_id = ? AND order_id = ? AND source = ?",
			order.CompanyID, order.ID, models.LedgerSourceOrder).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	entry := models.LedgerEntry{
		CompanyID:   order.CompanyID,
		Kind:        models.LedgerKindRevenue,
		Description: fmt.Sprintf("Order %s - %s", order.Number, orderPartyName(tx, order)),
		Amount:      order.Total,
		Category:    "Sales",
		OrderID:     &order.ID,
		Source:      models.LedgerSourceOrder,
		Status:      models.LedgerEntryConfirmed,
		EntryDate:   time.Now(),
	}
	return tx.Create(&entry).Error
}

// cancelOrderRevenue marks the revenue entry of a cancelled order as
// cancelled so summaries stop counting it. No-op for orders that were never
// confirmed.
func (s *LedgerService) cancelOrderRevenue(tx *gorm.DB, order *models.Order) error {
	return tx.Model(&models.LedgerEntry{}).
		Where("company_id = ? AND order_id = ? AND source = ? AND status = ?",
			order.CompanyID, order.ID, models.LedgerSourceOrder, models.LedgerEntryConfirmed).
		Update("status", models.LedgerEntryCancelled).Error
}

// orderPartyName resolves the name an order-sourced entry is described with.
func orderPartyName(tx *gorm.DB, order *models.Order) string {
	if order.Type == models.OrderTypeTable {
		return fmt.Sprintf("Table %s", order.TableLabel)
	}
	if order.CustomerID != nil {
		var customer models.Customer
		err := tx.First(&customer, *order.CustomerID).Error
		if err == nil {
			return customer.Name
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "Unknown customer"
		}
	}
	return "Walk-in customer"
}
