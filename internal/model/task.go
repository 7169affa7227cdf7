package model

import "time"

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

// Valid reports whether s is one of the known task statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Categories is the fixed set of task categories offered by the app.
var Categories = []string{
	"Cocina",
	"Limpieza",
	"Jardín",
	"Lavandería",
	"Mantenimiento",
	"Compras",
	"Otros",
}

// Task is a chore definition, not a per-day instance. A task may carry a
// one-off due date, a set of recurring weekdays, both, or neither. A task
// with neither never appears in any day-based view.
type Task struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Category     string     `json:"category"`
	Points       int        `json:"points"`
	AssignedTo   string     `json:"assigned_to"`
	AssignedDays []string   `json:"assigned_days"`
	DueDate      *time.Time `json:"due_date"`
	TaskTime     string     `json:"task_time"`
	Status       TaskStatus `json:"status"`
	CreatedBy    *int64     `json:"created_by"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
