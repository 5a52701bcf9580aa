package model

import "time"

// User is an account that owns tasks and categories.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:150;uniqueIndex"`
	PasswordHash string `gorm:"size:128"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
