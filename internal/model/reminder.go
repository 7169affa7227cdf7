package model

import "time"

// Reminder is a notification rule attached to a task. Deleting a reminder
// flips IsActive off; rows are never removed.
type Reminder struct {
	ID           int64     `json:"id"`
	TaskID       int64     `json:"task_id"`
	ReminderTime string    `json:"reminder_time"` // HH:MM:SS
	DaysOfWeek   []string  `json:"days_of_week"`  // empty = every day
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}
