package models

// Category is a user-defined transaction label with a display color.
// Transactions reference categories by name, so renaming or deleting a
// category leaves existing transactions untouched.
type Category struct {
	Base
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`
	Name   string `gorm:"not null" json:"name"`
	Color  string `gorm:"not null" json:"color"`
}
