package model

import "time"

// Priority is the task priority level. The empty value means "no priority".
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
	PriorityNone   Priority = ""
)

// Valid reports whether p is one of the known priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow, PriorityNone:
		return true
	}
	return false
}

// Task represents a single item in the planner.
//
// Date and the time-of-day fields are stored as normalized strings
// ("2006-01-02" and "15:04") so they round-trip through the API unchanged;
// the service layer rejects malformed values before they reach the store.
type Task struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   `gorm:"index"`
	CategoryID *uint  `gorm:"index"`
	Title      string `gorm:"size:200"`
	Notes      string
	Date       string   `gorm:"size:10"`
	StartTime  string   `gorm:"size:5"`
	EndTime    string   `gorm:"size:5"`
	Completed  bool     `gorm:"default:false"`
	Priority   Priority `gorm:"size:6"`
	Recurrence string   `gorm:"size:50"`
	Reminders  string   `gorm:"size:100"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
}
