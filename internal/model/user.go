package model

import "time"

// User is one household member. TotalPoints only ever increases: completing
// a task credits it, and nothing debits it (un-completing a task does not
// take points back).
type User struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	TotalPoints int       `json:"total_points"`
	PhotoURL    string    `json:"photo_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
