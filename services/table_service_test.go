package services

import (
	"testing"

	"github.com/comandaviva/comanda-api/models"
	"github.com/stretchr/testify/assert"
)

func tableDraft(label string, price float64) OrderDraft {
	return OrderDraft{
		Type:       models.OrderTypeTable,
		TableLabel: label,
		Items:      []models.OrderItem{{Name: "Pizza", Price: price, Quantity: 1}},
	}
}

func TestTableBill_AccumulatesAcrossOrders(t *testing.T) {
	db := setupServiceDB(t)
	orders := NewOrderService(db)
	tables := NewTableService(db)

	first, err := orders.Create(1, tableDraft("5", 40))
	assert.NoError(t, err)
	second, err := orders.Create(1, tableDraft("5", 25))
	assert.NoError(t, err)

	table, err := tables.Get(1, "5")
	assert.NoError(t, err)
	assert.Equal(t, models.TableStatusOccupied, table.Status)
	assert.Equal(t, 65.0, table.BillTotal)
	assert.True(t, table.OrderIDs.Contains(first.ID))
	assert.True(t, table.OrderIDs.Contains(second.ID))
	assert.NotNil(t, table.OpenedAt)
	assert.Nil(t, table.ClosedAt)
}

func TestTableBill_ReflectsOrderEdits(t *testing.T) {
	db := setupServiceDB(t)
	orders := NewOrderService(db)
	tables := NewTableService(db)

	order, err := orders.Create(1, tableDraft("5", 40))
	assert.NoError(t, err)

	draft := tableDraft("5", 40)
	draft.Items[0].Quantity = 3
	_, err = orders.Edit(1, order.ID, draft)
	assert.NoError(t, err)

	table, err := tables.Get(1, "5")
	assert.NoError(t, err)
	assert.Equal(t, 120.0, table.BillTotal)
}

func TestCloseTable_DeliversOpenOrders(t *testing.T) {
	db := setupServiceDB(t)
	orders := NewOrderService(db)
	tables := NewTableService(db)

	first, _ := orders.Create(1, tableDraft("5", 40))
	second, _ := orders.Create(1, tableDraft("5", 25))
	_, err := orders.Confirm(1, first.ID)
	assert.NoError(t, err)

	closed, err := tables.Close(1, "5")
	assert.NoError(t, err)
	assert.Equal(t, models.TableStatusClosed, closed.Status)
	assert.NotNil(t, closed.ClosedAt)

	for _, id := range []uint{first.ID, second.ID} {
		var order models.Order
		db.First(&order, id)
		assert.Equal(t, models.OrderStatusDelivered, order.Status)
	}
}

func TestCloseTable_SkipsTerminalOrders(t *testing.T) {
	db := setupServiceDB(t)
	orders := NewOrderService(db)
	tables := NewTableService(db)

	kept, _ := orders.Create(1, tableDraft("5", 40))
	cancelled, _ := orders.Create(1, tableDraft("5", 25))
	_, err := orders.Cancel(1, cancelled.ID)
	assert.NoError(t, err)

	_, err = tables.Close(1, "5")
	assert.NoError(t, err)

	var order models.Order
	db.First(&order, cancelled.ID)
	assert.Equal(t, models.OrderStatusCancelled, order.Status)
	db.First(&order, kept.ID)
	assert.Equal(t, models.OrderStatusDelivered, order.Status)
}

func TestCloseTable_NotFound(t *testing.T) {
	db := setupServiceDB(t)
	tables := NewTableService(db)

	_, err := tables.Close(1, "99")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCloseTable_WrongCompany(t *testing.T) {
	db := setupServiceDB(t)
	orders := NewOrderService(db)
	tables := NewTableService(db)

	_, err := orders.Create(1, tableDraft("5", 40))
	assert.NoError(t, err)

	_, err = tables.Close(2, "5")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClosedTable_ReopensWithFreshSession(t *testing.T) {
	db := setupServiceDB(t)
	orders := NewOrderService(db)
	tables := NewTableService(db)

	old, _ := orders.Create(1, tableDraft("5", 40))
	_, err := tables.Close(1, "5")
	assert.NoError(t, err)

	fresh, err := orders.Create(1, tableDraft("5", 25))
	assert.NoError(t, err)

	table, err := tables.Get(1, "5")
	assert.NoError(t, err)
	assert.Equal(t, models.TableStatusOccupied, table.Status)
	assert.Nil(t, table.ClosedAt)
	assert.Equal(t, 25.0, table.BillTotal)
	assert.False(t, table.OrderIDs.Contains(old.ID))
	assert.True(t, table.OrderIDs.Contains(fresh.ID))
}

func TestListTables_ScopedToCompany(t *testing.T) {
	db := setupServiceDB(t)
	orders := NewOrderService(db)
	tables := NewTableService(db)

	_, err := orders.Create(1, tableDraft("5", 40))
	assert.NoError(t, err)
	_, err = orders.Create(2, tableDraft("5", 25))
	assert.NoError(t, err)

	mine, err := tables.List(1)
	assert.NoError(t, err)
	assert.Len(t, mine, 1)
	assert.Equal(t, uint(1), mine[0].CompanyID)
}
