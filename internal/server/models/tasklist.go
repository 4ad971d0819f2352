package models

import "time"

// TaskList groups tasks for a single owner. Ownership never transfers.
// Active is the soft-delete flag: inactive lists are invisible to every
// normal operation.
type TaskList struct {
	ID        string
	Name      string
	UserID    string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
