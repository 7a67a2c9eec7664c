package services

import (
	"testing"

	"github.com/comandaviva/comanda-api/models"
	"github.com/stretchr/testify/assert"
)

func TestRecordEntry(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewLedgerService(db)

	entry, err := svc.Record(1, EntryInput{
		Kind:        models.LedgerKindExpense,
		Description: "Flour and tomatoes",
		Amount:      120.50,
		Category:    "Supplies",
	})
	assert.NoError(t, err)
	assert.Equal(t, models.LedgerSourceManual, entry.Source)
	assert.Equal(t, models.LedgerEntryConfirmed, entry.Status)
	assert.Nil(t, entry.OrderID)
	assert.False(t, entry.EntryDate.IsZero())
}

func TestRecordEntry_Validation(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewLedgerService(db)

	tests := []struct {
		name  string
		input EntryInput
	}{
		{
			name:  "unknown kind",
			input: EntryInput{Kind: "profit", Description: "x", Amount: 10, Category: "Misc"},
		},
		{
			name:  "missing description",
			input: EntryInput{Kind: models.LedgerKindRevenue, Amount: 10, Category: "Misc"},
		},
		{
			name:  "missing category",
			input: EntryInput{Kind: models.LedgerKindRevenue, Description: "x", Amount: 10},
		},
		{
			name:  "zero amount",
			input: EntryInput{Kind: models.LedgerKindRevenue, Description: "x", Amount: 0, Category: "Misc"},
		},
		{
			name:  "negative amount",
			input: EntryInput{Kind: models.LedgerKindExpense, Description: "x", Amount: -5, Category: "Misc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Record(1, tt.input)
			assert.ErrorIs(t, err, ErrInvalidEntry)
		})
	}
}

func TestSummarize(t *testing.T) {
	db := setupServiceDB(t)
	orders := NewOrderService(db)
	ledger := NewLedgerService(db)

	confirmed, _ := orders.Create(1, deliveryDraft()) // total 61
	_, err := orders.Confirm(1, confirmed.ID)
	assert.NoError(t, err)

	_, err = orders.Create(1, OrderDraft{ // pending, total 20
		Type:  models.OrderTypeCounter,
		Items: []models.OrderItem{{Name: "Burger", Price: 20, Quantity: 1}},
	})
	assert.NoError(t, err)

	_, err = ledger.Record(1, EntryInput{
		Kind:        models.LedgerKindExpense,
		Description: "Gas refill",
		Amount:      30,
		Category:    "Utilities",
	})
	assert.NoError(t, err)

	summary, err := ledger.Summarize(1)
	assert.NoError(t, err)
	assert.Equal(t, 61.0, summary.RevenueTotal)
	assert.Equal(t, 30.0, summary.ExpenseTotal)
	assert.Equal(t, 31.0, summary.NetProfit)
	assert.Equal(t, int64(1), summary.ConfirmedOrders)
	assert.Equal(t, int64(1), summary.PendingOrders)
	assert.Equal(t, 20.0, summary.PendingValue)
}

func TestSummarize_IgnoresCancelledEntries(t *testing.T) {
	db := setupServiceDB(t)
	orders := NewOrderService(db)
	ledger := NewLedgerService(db)

	order, _ := orders.Create(1, deliveryDraft())
	_, err := orders.Confirm(1, order.ID)
	assert.NoError(t, err)
	_, err = orders.Cancel(1, order.ID)
	assert.NoError(t, err)

	summary, err := ledger.Summarize(1)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, summary.RevenueTotal)
	assert.Equal(t, 0.0, summary.NetProfit)
}

func TestSummarize_ScopedToCompany(t *testing.T) {
	db := setupServiceDB(t)
	ledger := NewLedgerService(db)

	_, err := ledger.Record(2, EntryInput{
		Kind:        models.LedgerKindRevenue,
		Description: "Catering gig",
		Amount:      500,
		Category:    "Sales",
	})
	assert.NoError(t, err)

	summary, err := ledger.Summarize(1)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, summary.RevenueTotal)
}

func TestOrderRevenueDescription_TableOrder(t *testing.T) {
	db := setupServiceDB(t)
	orders := NewOrderService(db)

	order, _ := orders.Create(1, tableDraft("5", 40))
	_, err := orders.Confirm(1, order.ID)
	assert.NoError(t, err)

	var entry models.LedgerEntry
	db.Where("order_id = ?", order.ID).First(&entry)
	assert.Equal(t, "Order PED001 - Table 5", entry.Description)
}

func TestOrderRevenueDescription_WalkIn(t *testing.T) {
	db := setupServiceDB(t)
	orders := NewOrderService(db)

	order, _ := orders.Create(1, OrderDraft{
		Type:  models.OrderTypeCounter,
		Items: []models.OrderItem{{Name: "Espresso", Price: 6, Quantity: 1}},
	})
	_, err := orders.Confirm(1, order.ID)
	assert.NoError(t, err)

	var entry models.LedgerEntry
	db.Where("order_id = ?", order.ID).First(&entry)
	assert.Equal(t, "Order PED001 - Walk-in customer", entry.Description)
}
