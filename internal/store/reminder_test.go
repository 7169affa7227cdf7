package store

import (
	"testing"

	"hogar/internal/database"
)

func setupReminderTestDB(t *testing.T) (*ReminderStore, *TaskStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewReminderStore(db), NewTaskStore(db)
}

func TestReminderLifecycle(t *testing.T) {
	rs, ts := setupReminderTestDB(t)

	task, err := ts.Create("Sacar la basura", "", "Limpieza", 5, "", []string{"Martes"}, nil, "", nil)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	rem, err := rs.Create(task.ID, "20:30:00", []string{"Martes", "Viernes"})
	if err != nil {
		t.Fatalf("create reminder: %v", err)
	}
	if rem.ReminderTime != "20:30:00" {
		t.Errorf("reminder_time = %q", rem.ReminderTime)
	}
	if !rem.IsActive {
		t.Error("new reminder should be active")
	}
	if len(rem.DaysOfWeek) != 2 {
		t.Errorf("days_of_week = %v", rem.DaysOfWeek)
	}

	active, err := rs.ListActiveByTask(task.ID)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("expected 1 active reminder, got %d", len(active))
	}

	// Deletion is a soft flag flip; the row survives.
	if err := rs.Deactivate(rem.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	active, err = rs.ListActiveByTask(task.ID)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("expected no active reminders, got %d", len(active))
	}

	got, err := rs.GetByID(rem.ID)
	if err != nil {
		t.Fatalf("get reminder: %v", err)
	}
	if got == nil {
		t.Fatal("deactivated reminder row should still exist")
	}
	if got.IsActive {
		t.Error("reminder should be inactive")
	}
}

func TestReminderEveryDay(t *testing.T) {
	rs, ts := setupReminderTestDB(t)

	task, err := ts.Create("Tomar vitaminas", "", "Otros", 1, "", nil, nil, "", nil)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	// Empty day set means the reminder fires every day.
	rem, err := rs.Create(task.ID, "08:00:00", nil)
	if err != nil {
		t.Fatalf("create reminder: %v", err)
	}
	if len(rem.DaysOfWeek) != 0 {
		t.Errorf("days_of_week = %v, want empty", rem.DaysOfWeek)
	}

	all, err := rs.ListActive()
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected 1 reminder, got %d", len(all))
	}
}
