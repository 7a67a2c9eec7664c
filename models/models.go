package models

// All returns every model for migration, ordered so that referenced tables
// are created first.
func All() []interface{} {
	return []interface{}{
		&Company{},
		&User{},
		&Customer{},
		&Category{},
		&MenuItem{},
		&Order{},
		&OrderSequence{},
		&Table{},
		&LedgerEntry{},
		&DeliveryArea{},
		&SupportTicket{},
	}
}
