package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"hogar/internal/model"
)

type TaskStore struct {
	db *sql.DB
}

func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{db: db}
}

const taskCols = `id, title, description, category, points, assigned_to, assigned_days, due_date, task_time, status, created_by, created_at, updated_at`

func scanTask(scanner interface{ Scan(...any) error }) (*model.Task, error) {
	var t model.Task
	var days string
	var dueDate sql.NullString
	var status string
	var createdBy sql.NullInt64

	err := scanner.Scan(
		&t.ID, &t.Title, &t.Description, &t.Category, &t.Points,
		&t.AssignedTo, &days, &dueDate, &t.TaskTime, &status,
		&createdBy, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(days), &t.AssignedDays); err != nil {
		return nil, fmt.Errorf("decode assigned days: %w", err)
	}
	if dueDate.Valid && dueDate.String != "" {
		d, err := time.ParseInLocation(time.DateOnly, dueDate.String, time.Local)
		if err != nil {
			return nil, fmt.Errorf("parse due date: %w", err)
		}
		t.DueDate = &d
	}
	t.Status = model.TaskStatus(status)
	if createdBy.Valid {
		t.CreatedBy = &createdBy.Int64
	}
	return &t, nil
}

func encodeDays(days []string) (string, error) {
	if days == nil {
		days = []string{}
	}
	b, err := json.Marshal(days)
	if err != nil {
		return "", fmt.Errorf("encode assigned days: %w", err)
	}
	return string(b), nil
}

func encodeDate(d *time.Time) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.Format(time.DateOnly), Valid: true}
}

func (s *TaskStore) Create(title, description, category string, points int, assignedTo string, assignedDays []string, dueDate *time.Time, taskTime string, createdBy *int64) (*model.Task, error) {
	days, err := encodeDays(assignedDays)
	if err != nil {
		return nil, err
	}
	var cBy sql.NullInt64
	if createdBy != nil {
		cBy = sql.NullInt64{Int64: *createdBy, Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO tasks (title, description, category, points, assigned_to, assigned_days, due_date, task_time, status, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		title, description, category, points, assignedTo, days, encodeDate(dueDate), taskTime, string(model.StatusPending), cBy,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *TaskStore) GetByID(id int64) (*model.Task, error) {
	row := s.db.QueryRow(`SELECT `+taskCols+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// List returns all tasks, newest first. This is the order the task list
// screen shows.
func (s *TaskStore) List() ([]model.Task, error) {
	rows, err := s.db.Query(`SELECT ` + taskCols + ` FROM tasks ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (s *TaskStore) Update(id int64, title, description, category string, points int, assignedTo string, assignedDays []string, dueDate *time.Time, taskTime string) (*model.Task, error) {
	days, err := encodeDays(assignedDays)
	if err != nil {
		return nil, err
	}

	_, err = s.db.Exec(
		`UPDATE tasks SET title = ?, description = ?, category = ?, points = ?, assigned_to = ?, assigned_days = ?, due_date = ?, task_time = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		title, description, category, points, assignedTo, days, encodeDate(dueDate), taskTime, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return s.GetByID(id)
}

func (s *TaskStore) UpdateStatus(id int64, status model.TaskStatus) (*model.Task, error) {
	_, err := s.db.Exec(
		`UPDATE tasks SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		string(status), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update task status: %w", err)
	}
	return s.GetByID(id)
}

func (s *TaskStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
