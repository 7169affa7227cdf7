package schedule

import (
	"math"
	"time"

	"hogar/internal/model"
)

// Progress summarizes completion over a set of tasks.
type Progress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Percent   int `json:"percent"`
}

// ComputeProgress counts completed tasks and derives a rounded percentage.
// An empty set yields zero percent, not a division fault.
func ComputeProgress(tasks []model.Task) Progress {
	p := Progress{Total: len(tasks)}
	for _, t := range tasks {
		if t.Status == model.StatusCompleted {
			p.Completed++
		}
	}
	if p.Total > 0 {
		p.Percent = int(math.Round(float64(p.Completed) / float64(p.Total) * 100))
	}
	return p
}

// Stats are the profile-screen counters over the full task collection.
type Stats struct {
	Completed  int `json:"completed_tasks"`
	InProgress int `json:"in_progress_tasks"`
	Total      int `json:"total_tasks"`
	Percent    int `json:"completion_percent"`
}

// ComputeStats tallies tasks by status across the whole collection.
func ComputeStats(tasks []model.Task) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case model.StatusCompleted:
			s.Completed++
		case model.StatusInProgress:
			s.InProgress++
		}
	}
	if s.Total > 0 {
		s.Percent = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}

// maxMarkers caps the per-cell status dots; further tasks roll into Overflow.
const maxMarkers = 3

// DayCell is one cell of the 7-column month grid.
type DayCell struct {
	Date     time.Time          `json:"date"`
	InMonth  bool               `json:"in_month"`
	Markers  []model.TaskStatus `json:"markers,omitempty"`
	Overflow int                `json:"overflow,omitempty"`
}

// MonthGrid builds the calendar grid for a month, padded with adjacent-month
// days so every week is full. Weeks start on Monday. Each cell carries up to
// maxMarkers task status markers and an overflow count.
func MonthGrid(year int, month time.Month, tasks []model.Task) []DayCell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local)

	start := weekStart(first)
	end := weekStart(last).AddDate(0, 0, 7)

	var cells []DayCell
	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		cell := DayCell{Date: day, InMonth: day.Month() == month}
		for _, t := range tasks {
			if !IsDue(t, day) {
				continue
			}
			if len(cell.Markers) < maxMarkers {
				cell.Markers = append(cell.Markers, t.Status)
			} else {
				cell.Overflow++
			}
		}
		cells = append(cells, cell)
	}
	return cells
}

func weekStart(t time.Time) time.Time {
	offset := int(t.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	return startOfDay(t.AddDate(0, 0, -offset))
}
