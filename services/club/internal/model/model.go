package model

// All 需要自动迁移的模型
func All() []any {
	return []any{
		&Role{}, &User{},
		&Member{},
		&Event{},
		&Employee{},
		&Category{}, &Supplier{}, &Product{}, &Movement{}, &ItemRequest{}, &Purchase{},
		&MaintenanceTask{}, &Incident{},
	}
}
