package services

import (
	"errors"
	"fmt"

	"github.com/comandaviva/comanda-api/models"
	"gorm.io/gorm"
)

// CustomerDraft is inline customer data supplied with a delivery order when
// the caller has no existing customer record to reference.
type CustomerDraft struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// OrderDraft is the caller-supplied, unvalidated input describing a
// prospective order.
type OrderDraft struct {
	Type             models.OrderType   `json:"type"`
	CustomerID       *uint              `json:"customer_id"`
	Customer         *CustomerDraft     `json:"customer"`
	TableLabel       string             `json:"table_label"`
	Items            []models.OrderItem `json:"items"`
	Notes            string             `json:"notes"`
	DeliveryFee      float64            `json:"delivery_fee"`
	ContactPhone     string             `json:"contact_phone"`
	EstimatedMinutes int                `json:"estimated_minutes"`
}

// OrderService implements the order lifecycle: draft validation, pricing,
// status transitions and their side effects on tables and the financial
// ledger.
type OrderService struct {
	db     *gorm.DB
	tables *TableService
	ledger *LedgerService
}

// NewOrderService creates an OrderService backed by db
func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{
		db:     db,
		tables: NewTableService(db),
		ledger: NewLedgerService(db),
	}
}

// List returns all orders of a company, newest first
func (s *OrderService) List(companyID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("Customer").
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// Get returns one order of a company
func (s *OrderService) Get(companyID, orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Customer").
		Where("company_id = ?", companyID).
		First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Create validates and prices a draft, allocates the next order number for
// the company and persists the order in pending status. Table orders are
// attached to their table in the same transaction.
func (s *OrderService) Create(companyID uint, draft OrderDraft) (*models.Order, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	subtotal, fee, total := priceDraft(draft)

	var order *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		customerID, err := s.resolveCustomer(tx, companyID, draft)
		if err != nil {
			return err
		}

		number, err := nextOrderNumber(tx, companyID)
		if err != nil {
			return err
		}

		tableLabel := ""
		if draft.Type == models.OrderTypeTable {
			tableLabel = draft.TableLabel
		}

		estimated := draft.EstimatedMinutes
		if estimated == 0 {
			estimated = defaultEstimatedMinutes
		}

		order = &models.Order{
			Number:           number,
			CompanyID:        companyID,
			CustomerID:       customerID,
			TableLabel:       tableLabel,
			Status:           models.OrderStatusPending,
			Type:             draft.Type,
			Items:            draft.Items,
			Subtotal:         subtotal,
			DeliveryFee:      fee,
			Total:            total,
			Notes:            draft.Notes,
			ContactPhone:     contactPhone(draft),
			DeliveryAddress:  deliveryAddress(draft),
			EstimatedMinutes: estimated,
		}
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		if order.Type == models.OrderTypeTable {
			if err := s.tables.attachOrder(tx, companyID, order.TableLabel, order); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if order.CustomerID != nil {
		var customer models.Customer
		if err := s.db.First(&customer, *order.CustomerID).Error; err == nil {
			order.Customer = &customer
		}
	}
	return order, nil
}

// Confirm moves a pending order to confirmed and records a revenue ledger
// entry for its total. Both writes happen in one transaction, so a failed
// ledger write rolls the status back. Confirming an already-confirmed order
// is a no-op.
func (s *OrderService) Confirm(companyID, orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("company_id = ?", companyID).First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if order.Status == models.OrderStatusConfirmed {
			return nil // idempotent
		}
		if order.Status.Terminal() {
			return ErrOrderFinalized
		}

		if err := tx.Model(&order).Update("status", models.OrderStatusConfirmed).Error; err != nil {
			return err
		}
		order.Status = models.OrderStatusConfirmed

		return s.ledger.recordOrderRevenue(tx, &order)
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Cancel moves a non-delivered order to cancelled. If the order had been
// confirmed, its revenue ledger entry is marked cancelled so it no longer
// counts towards the financial summary. Cancelling an already-cancelled
// order is a no-op.
func (s *OrderService) Cancel(companyID, orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("company_id = ?", companyID).First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if order.Status == models.OrderStatusCancelled {
			return nil // idempotent
		}
		if order.Status == models.OrderStatusDelivered {
			return ErrOrderFinalized
		}

		if err := tx.Model(&order).Update("status", models.OrderStatusCancelled).Error; err != nil {
			return err
		}
		order.Status = models.OrderStatusCancelled

		return s.ledger.cancelOrderRevenue(tx, &order)
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Edit replaces type, table, items, notes and delivery fee of a pending
// order and recomputes its totals. When the order moves between tables the
// bills of both tables are recomputed.
func (s *OrderService) Edit(companyID, orderID uint, draft OrderDraft) (*models.Order, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	subtotal, fee, total := priceDraft(draft)

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("company_id = ?", companyID).First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if order.Status != models.OrderStatusPending {
			return ErrOrderFinalized
		}

		oldType := order.Type
		oldLabel := order.TableLabel

		tableLabel := ""
		if draft.Type == models.OrderTypeTable {
			tableLabel = draft.TableLabel
		}

		customerID, err := s.resolveCustomer(tx, companyID, draft)
		if err != nil {
			return err
		}
		if customerID == nil {
			customerID = order.CustomerID
		}

		updates := map[string]interface{}{
			"type":         draft.Type,
			"table_label":  tableLabel,
			"customer_id":  customerID,
			"items":        draft.Items,
			"subtotal":     subtotal,
			"delivery_fee": fee,
			"total":        total,
			"notes":        draft.Notes,
		}
		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return err
		}
		order.Type = draft.Type
		order.TableLabel = tableLabel
		order.CustomerID = customerID
		order.Items = draft.Items
		order.Subtotal = subtotal
		order.DeliveryFee = fee
		order.Total = total
		order.Notes = draft.Notes

		movedOffTable := oldType == models.OrderTypeTable &&
			(order.Type != models.OrderTypeTable || order.TableLabel != oldLabel)
		if movedOffTable {
			if err := s.tables.detachOrder(tx, companyID, oldLabel, order.ID); err != nil {
				return err
			}
		}
		if order.Type == models.OrderTypeTable {
			if err := s.tables.attachOrder(tx, companyID, order.TableLabel, &order); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// SetStatus sets an explicit lifecycle status (kitchen flow: preparing,
// ready, delivered). Terminal orders are immutable. Setting "confirmed"
// goes through Confirm so the one-ledger-entry-per-order invariant holds.
func (s *OrderService) SetStatus(companyID, orderID uint, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidOrder, status)
	}
	if status == models.OrderStatusConfirmed {
		return s.Confirm(companyID, orderID)
	}
	if status == models.OrderStatusCancelled {
		return s.Cancel(companyID, orderID)
	}

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("company_id = ?", companyID).First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if order.Status == status {
			return nil
		}
		if order.Status.Terminal() {
			return ErrOrderFinalized
		}

		if err := tx.Model(&order).Update("status", status).Error; err != nil {
			return err
		}
		order.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

const defaultEstimatedMinutes = 30

func validateDraft(draft OrderDraft) error {
	if draft.Type == "" {
		return fmt.Errorf("%w: type is required", ErrInvalidOrder)
	}
	if !draft.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidOrder, draft.Type)
	}
	if len(draft.Items) == 0 {
		return fmt.Errorf("%w: items are required", ErrInvalidOrder)
	}
	for _, item := range draft.Items {
		if item.Name == "" {
			return fmt.Errorf("%w: item name is required", ErrInvalidOrder)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: item quantity must be positive", ErrInvalidOrder)
		}
	}
	if draft.Type == models.OrderTypeTable && draft.TableLabel == "" {
		return fmt.Errorf("%w: table label is required for table orders", ErrInvalidOrder)
	}
	if draft.Type == models.OrderTypeDelivery && draft.CustomerID == nil &&
		(draft.Customer == nil || draft.Customer.Name == "") {
		return fmt.Errorf("%w: customer is required for delivery orders", ErrInvalidOrder)
	}
	return nil
}

func priceDraft(draft OrderDraft) (subtotal, fee, total float64) {
	for _, item := range draft.Items {
		subtotal += item.Price * float64(item.Quantity)
	}
	if draft.Type == models.OrderTypeDelivery {
		fee = draft.DeliveryFee
	}
	return subtotal, fee, subtotal + fee
}

func contactPhone(draft OrderDraft) string {
	if draft.ContactPhone != "" {
		return draft.ContactPhone
	}
	if draft.Customer != nil {
		return draft.Customer.Phone
	}
	return ""
}

func deliveryAddress(draft OrderDraft) string {
	if draft.Type != models.OrderTypeDelivery || draft.Customer == nil {
		return ""
	}
	return draft.Customer.Address
}

// resolveCustomer returns the id of the customer an order belongs to.
// Delivery orders either reference an existing customer of the company or
// carry inline data from which one is created. Counter and table orders have
// no customer.
func (s *OrderService) resolveCustomer(tx *gorm.DB, companyID uint, draft OrderDraft) (*uint, error) {
	if draft.Type != models.OrderTypeDelivery {
		return nil, nil
	}

	if draft.CustomerID != nil {
		var customer models.Customer
		err := tx.Where("company_id = ?", companyID).First(&customer, *draft.CustomerID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: customer %d not found", ErrInvalidOrder, *draft.CustomerID)
		}
		if err != nil {
			return nil, err
		}
		return &customer.ID, nil
	}

	customer := models.Customer{
		Name:      draft.Customer.Name,
		Phone:     draft.Customer.Phone,
		Email:     draft.Customer.Email,
		Address:   draft.Customer.Address,
		CompanyID: companyID,
		Active:    true,
	}
	if err := tx.Create(&customer).Error; err != nil {
		return nil, err
	}
	return &customer.ID, nil
}

// nextOrderNumber allocates the next sequential order number for a company.
// The increment is a single UPDATE on the sequence row, which serializes
// concurrent creates on the row lock instead of racing on a count.
func nextOrderNumber(tx *gorm.DB, companyID uint) (string, error) {
	seq := models.OrderSequence{CompanyID: companyID}
	if err := tx.Where(models.OrderSequence{CompanyID: companyID}).FirstOrCreate(&seq).Error; err != nil {
		return "", err
	}
	if err := tx.Model(&models.OrderSequence{}).
		Where("company_id = ?", companyID).
		Update("last_number", gorm.Expr("last_number + 1")).Error; err != nil {
		return "", err
	}
	if err := tx.First(&seq, "company_id = ?", companyID).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("PED%03d", seq.LastNumber), nil
}
