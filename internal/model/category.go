package model

import "time"

// Category groups tasks and carries a display color.
// A user cannot have two categories with the same name.
type Category struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index:idx_user_category_name,unique"`
	Name      string `gorm:"size:100;index:idx_user_category_name,unique"`
	Color     string `gorm:"size:7"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Tasks     []Task `gorm:"foreignKey:CategoryID"`
}
