package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hogar/internal/auth"
	"hogar/internal/database"
	"hogar/internal/model"
	"hogar/internal/store"
)

func setupTaskHandler(t *testing.T) (*TaskHandler, *store.UserStore, int64) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	us := store.NewUserStore(db)
	ts := store.NewTaskStore(db)
	user, err := us.Create("Ana", "ana@example.com", "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	return NewTaskHandler(ts, us, nil, slog.Default()), us, user.ID
}

func authedRequest(method, target, body string, userID int64) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := auth.WithAuth(context.Background(), auth.AuthContext{UserID: userID})
	return req.WithContext(ctx)
}

func TestTaskCreateAndList(t *testing.T) {
	h, _, userID := setupTaskHandler(t)

	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest("POST", "/api/tasks",
		`{"title":"Fregar platos","category":"Cocina","points":5,"assigned_days":["Lunes","Jueves"]}`, userID))

	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body)
	}

	var created model.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal created task: %v", err)
	}
	if created.Category != "Cocina" {
		t.Errorf("category = %q, want Cocina", created.Category)
	}
	if created.Status != model.StatusPending {
		t.Errorf("status = %q, want pending", created.Status)
	}

	rec = httptest.NewRecorder()
	h.List(rec, authedRequest("GET", "/api/tasks", "", userID))
	var tasks []model.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &tasks); err != nil {
		t.Fatalf("unmarshal task list: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
}

func TestTaskCreateRequiresTitle(t *testing.T) {
	h, _, userID := setupTaskHandler(t)

	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest("POST", "/api/tasks", `{"title":"   "}`, userID))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestTaskListFilters(t *testing.T) {
	h, _, userID := setupTaskHandler(t)

	for _, body := range []string{
		`{"title":"Fregar","category":"Cocina"}`,
		`{"title":"Regar","category":"Jardín"}`,
	} {
		rec := httptest.NewRecorder()
		h.Create(rec, authedRequest("POST", "/api/tasks", body, userID))
		if rec.Code != http.StatusCreated {
			t.Fatalf("create status = %d", rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	h.List(rec, authedRequest("GET", "/api/tasks?category=Cocina", "", userID))
	var tasks []model.Task
	json.Unmarshal(rec.Body.Bytes(), &tasks)
	if len(tasks) != 1 || tasks[0].Title != "Fregar" {
		t.Errorf("category filter returned %d tasks", len(tasks))
	}

	rec = httptest.NewRecorder()
	h.List(rec, authedRequest("GET", "/api/tasks?status=completed", "", userID))
	tasks = nil
	json.Unmarshal(rec.Body.Bytes(), &tasks)
	if len(tasks) != 0 {
		t.Errorf("status filter returned %d tasks, want 0", len(tasks))
	}
}

func TestCompletingTaskAwardsPoints(t *testing.T) {
	h, us, userID := setupTaskHandler(t)

	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest("POST", "/api/tasks", `{"title":"Aspirar","points":15}`, userID))
	var task model.Task
	json.Unmarshal(rec.Body.Bytes(), &task)

	complete := func() {
		req := authedRequest("POST", "/api/tasks/1/status", `{"status":"completed"}`, userID)
		req.SetPathValue("id", "1")
		rec := httptest.NewRecorder()
		h.UpdateStatus(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("update status = %d: %s", rec.Code, rec.Body)
		}
	}

	complete()
	user, _ := us.GetByID(userID)
	if user.TotalPoints != 15 {
		t.Errorf("total points = %d, want 15", user.TotalPoints)
	}

	// Completing an already completed task must not award again.
	complete()
	user, _ = us.GetByID(userID)
	if user.TotalPoints != 15 {
		t.Errorf("total points after repeat = %d, want 15", user.TotalPoints)
	}

	// Reopening does not take points back.
	req := authedRequest("POST", "/api/tasks/1/status", `{"status":"pending"}`, userID)
	req.SetPathValue("id", "1")
	rec = httptest.NewRecorder()
	h.UpdateStatus(rec, req)
	user, _ = us.GetByID(userID)
	if user.TotalPoints != 15 {
		t.Errorf("total points after reopen = %d, want 15", user.TotalPoints)
	}
}

func TestTaskInvalidStatus(t *testing.T) {
	h, _, userID := setupTaskHandler(t)

	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest("POST", "/api/tasks", `{"title":"Aspirar"}`, userID))

	req := authedRequest("POST", "/api/tasks/1/status", `{"status":"done"}`, userID)
	req.SetPathValue("id", "1")
	rec = httptest.NewRecorder()
	h.UpdateStatus(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestTaskNotFound(t *testing.T) {
	h, _, userID := setupTaskHandler(t)

	req := authedRequest("GET", "/api/tasks/99", "", userID)
	req.SetPathValue("id", "99")
	rec := httptest.NewRecorder()
	h.Get(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
