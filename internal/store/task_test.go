package store

import (
	"testing"
	"time"

	"hogar/internal/database"
	"hogar/internal/model"
)

func setupTestDB(t *testing.T) *TaskStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewTaskStore(db)
}

func TestTaskCRUD(t *testing.T) {
	ts := setupTestDB(t)

	due := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	task, err := ts.Create("Lavar los platos", "Después de cenar", "Cocina", 10, "Ana", []string{"Lunes", "Jueves"}, &due, "21:00", nil)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if task.Title != "Lavar los platos" {
		t.Errorf("title = %q", task.Title)
	}
	if task.Status != model.StatusPending {
		t.Errorf("status = %q, want pending", task.Status)
	}
	if len(task.AssignedDays) != 2 || task.AssignedDays[0] != "Lunes" {
		t.Errorf("assigned_days = %v", task.AssignedDays)
	}
	if task.DueDate == nil || task.DueDate.Day() != 10 {
		t.Errorf("due_date = %v", task.DueDate)
	}
	if task.TaskTime != "21:00" {
		t.Errorf("task_time = %q", task.TaskTime)
	}

	// Update
	updated, err := ts.Update(task.ID, "Lavar y secar", "", "Cocina", 15, "Ana", nil, nil, "")
	if err != nil {
		t.Fatalf("update task: %v", err)
	}
	if updated.Title != "Lavar y secar" || updated.Points != 15 {
		t.Errorf("updated = %+v", updated)
	}
	if updated.DueDate != nil {
		t.Errorf("due_date should be cleared, got %v", updated.DueDate)
	}
	if len(updated.AssignedDays) != 0 {
		t.Errorf("assigned_days should be empty, got %v", updated.AssignedDays)
	}

	// Status transition
	completed, err := ts.UpdateStatus(task.ID, model.StatusCompleted)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if completed.Status != model.StatusCompleted {
		t.Errorf("status = %q, want completed", completed.Status)
	}

	// Delete
	if err := ts.Delete(task.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	got, err := ts.GetByID(task.ID)
	if err != nil {
		t.Fatalf("get deleted task: %v", err)
	}
	if got != nil {
		t.Error("expected nil for deleted task")
	}
}

func TestTaskGetByIDNotFound(t *testing.T) {
	ts := setupTestDB(t)

	got, err := ts.GetByID(9999)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got != nil {
		t.Error("expected nil for nonexistent task")
	}
}

func TestTaskListNewestFirst(t *testing.T) {
	ts := setupTestDB(t)

	first, err := ts.Create("Primera", "", "Otros", 5, "", nil, nil, "", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := ts.Create("Segunda", "", "Otros", 5, "", nil, nil, "", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	tasks, err := ts.List()
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].ID != second.ID || tasks[1].ID != first.ID {
		t.Errorf("order = [%d %d], want newest first", tasks[0].ID, tasks[1].ID)
	}
}

func TestTaskEmptyDaysRoundTrip(t *testing.T) {
	ts := setupTestDB(t)

	task, err := ts.Create("Sin días", "", "", 0, "", nil, nil, "", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.AssignedDays == nil {
		t.Error("assigned_days should decode to an empty slice, not nil")
	}
	if len(task.AssignedDays) != 0 {
		t.Errorf("assigned_days = %v, want empty", task.AssignedDays)
	}
}
