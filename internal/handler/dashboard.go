package handler

import (
	"net/http"
	"time"

	"hogar/internal/model"
	"hogar/internal/schedule"
	"hogar/internal/store"
)

type DashboardHandler struct {
	taskStore *store.TaskStore
}

func NewDashboardHandler(ts *store.TaskStore) *DashboardHandler {
	return &DashboardHandler{taskStore: ts}
}

type dashboardResponse struct {
	Date     string            `json:"date"`
	Tasks    []model.Task      `json:"tasks"`
	Progress schedule.Progress `json:"progress"`
}

// Today returns the tasks due today with the day's completion progress.
func (h *DashboardHandler) Today(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskStore.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list tasks")
		return
	}

	now := time.Now()
	today := schedule.ResolveDay(tasks, now)
	if today == nil {
		today = []model.Task{}
	}

	writeJSON(w, http.StatusOK, dashboardResponse{
		Date:     now.Format(time.DateOnly),
		Tasks:    today,
		Progress: schedule.ComputeProgress(today),
	})
}
