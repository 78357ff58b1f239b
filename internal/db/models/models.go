package models

// All returns every model in migration order.
func All() []any {
	return []any{
		&User{},
		&Group{},
		&Recipe{},
		&Comment{},
		&Follow{},
	}
}
