package models

// All lists every table for AutoMigrate.
func All() []any {
	return []any{&User{}, &Photo{}, &Like{}, &Comment{}, &Tag{}}
}
