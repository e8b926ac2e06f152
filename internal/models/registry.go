package models

// Northwind lists the models of the northwind context in the order their
// types appear in the metadata document. Bases precede derived types.
func Northwind() []any {
	return []any{
		&Category{},
		&Customer{},
		&Employee{},
		&EmployeeTerritory{},
		&Order{},
		&InternationalOrder{},
		&OrderDetail{},
		&PreviousEmployee{},
		&Product{},
		&Region{},
		&Supplier{},
		&Territory{},
		&Role{},
		&User{},
		&UserRole{},
		&Comment{},
		&TimeGroup{},
		&TimeLimit{},
	}
}

// Accounts lists the models of the accounts context.
func Accounts() []any {
	return []any{
		&Role{},
		&User{},
		&UserRole{},
	}
}
