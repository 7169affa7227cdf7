package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"hogar/internal/model"
)

type ReminderStore struct {
	db *sql.DB
}

func NewReminderStore(db *sql.DB) *ReminderStore {
	return &ReminderStore{db: db}
}

const reminderCols = `id, task_id, reminder_time, days_of_week, is_active, created_at`

func scanReminder(scanner interface{ Scan(...any) error }) (*model.Reminder, error) {
	var r model.Reminder
	var days string
	var active int

	err := scanner.Scan(&r.ID, &r.TaskID, &r.ReminderTime, &days, &active, &r.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(days), &r.DaysOfWeek); err != nil {
		return nil, fmt.Errorf("decode days of week: %w", err)
	}
	r.IsActive = active != 0
	return &r, nil
}

func (s *ReminderStore) Create(taskID int64, reminderTime string, daysOfWeek []string) (*model.Reminder, error) {
	days, err := encodeDays(daysOfWeek)
	if err != nil {
		return nil, err
	}

	result, err := s.db.Exec(
		`INSERT INTO reminders (task_id, reminder_time, days_of_week, is_active) VALUES (?, ?, ?, 1)`,
		taskID, reminderTime, days,
	)
	if err != nil {
		return nil, fmt.Errorf("insert reminder: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *ReminderStore) GetByID(id int64) (*model.Reminder, error) {
	row := s.db.QueryRow(`SELECT `+reminderCols+` FROM reminders WHERE id = ?`, id)
	r, err := scanReminder(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get reminder: %w", err)
	}
	return r, nil
}

// ListActiveByTask returns the active reminders for one task, the set the
// reminder panel shows.
func (s *ReminderStore) ListActiveByTask(taskID int64) ([]model.Reminder, error) {
	rows, err := s.db.Query(
		`SELECT `+reminderCols+` FROM reminders WHERE task_id = ? AND is_active = 1 ORDER BY reminder_time ASC`,
		taskID,
	)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	defer rows.Close()

	var reminders []model.Reminder
	for rows.Next() {
		r, err := scanReminder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		reminders = append(reminders, *r)
	}
	return reminders, rows.Err()
}

// ListActive returns every active reminder across all tasks, for the
// delivery scheduler.
func (s *ReminderStore) ListActive() ([]model.Reminder, error) {
	rows, err := s.db.Query(`SELECT ` + reminderCols + ` FROM reminders WHERE is_active = 1`)
	if err != nil {
		return nil, fmt.Errorf("list active reminders: %w", err)
	}
	defer rows.Close()

	var reminders []model.Reminder
	for rows.Next() {
		r, err := scanReminder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		reminders = append(reminders, *r)
	}
	return reminders, rows.Err()
}

// Deactivate soft-deletes a reminder. The row stays; only the flag flips.
func (s *ReminderStore) Deactivate(id int64) error {
	_, err := s.db.Exec(`UPDATE reminders SET is_active = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deactivate reminder: %w", err)
	}
	return nil
}
