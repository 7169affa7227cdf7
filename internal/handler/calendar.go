package handler

import (
	"net/http"
	"strconv"
	"time"

	"hogar/internal/model"
	"hogar/internal/schedule"
	"hogar/internal/store"
)

type CalendarHandler struct {
	taskStore *store.TaskStore
}

func NewCalendarHandler(ts *store.TaskStore) *CalendarHandler {
	return &CalendarHandler{taskStore: ts}
}

type calendarResponse struct {
	Year  int                `json:"year"`
	Month int                `json:"month"`
	Cells []schedule.DayCell `json:"cells"`
	Tasks []model.Task       `json:"tasks"`
}

// Month returns the calendar grid for the requested month. Without query
// parameters it defaults to the current month.
func (h *CalendarHandler) Month(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	year, month := now.Year(), now.Month()

	q := r.URL.Query()
	if s := q.Get("year"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid year")
			return
		}
		year = y
	}
	if s := q.Get("month"); s != "" {
		m, err := strconv.Atoi(s)
		if err != nil || m < 1 || m > 12 {
			writeError(w, http.StatusBadRequest, "invalid month")
			return
		}
		month = time.Month(m)
	}

	tasks, err := h.taskStore.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list tasks")
		return
	}

	monthTasks := schedule.ResolveMonth(tasks, year, month)
	if monthTasks == nil {
		monthTasks = []model.Task{}
	}

	writeJSON(w, http.StatusOK, calendarResponse{
		Year:  year,
		Month: int(month),
		Cells: schedule.MonthGrid(year, month, tasks),
		Tasks: monthTasks,
	})
}
