package models

import "time"

// Task is a single to-do item. TaskListID is optional; when set it must
// reference an active list owned by the same user.
type Task struct {
	ID          string
	Title       string
	Description string
	Completed   bool
	UserID      string
	TaskListID  *string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
