package schedule

import (
	"sort"
	"time"

	"hogar/internal/model"
)

// IsDue reports whether a task has an occurrence on the given date.
// A due date takes precedence over assigned days: when both are set, only
// the due date is consulted and the recurrence is ignored for that cycle.
func IsDue(task model.Task, date time.Time) bool {
	if task.DueDate != nil {
		return sameDay(*task.DueDate, date)
	}

	if len(task.AssignedDays) > 0 {
		token := WeekdayToken(date.Weekday())
		for _, day := range task.AssignedDays {
			if Canonical(day) == token {
				return true
			}
		}
	}

	return false
}

// ResolveDay returns the tasks due on the given date, ordered by task time.
// Untimed tasks sort after all timed ones; ties keep their input order.
func ResolveDay(tasks []model.Task, date time.Time) []model.Task {
	var due []model.Task
	for _, t := range tasks {
		if IsDue(t, date) {
			due = append(due, t)
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		a, b := due[i].TaskTime, due[j].TaskTime
		if a == "" || b == "" {
			return a != "" && b == ""
		}
		return a < b
	})

	return due
}

// ResolveMonth returns the tasks relevant to a month: tasks whose due date
// falls inside it, plus every task with assigned days. Recurring tasks are
// listed for any month whether or not they have an occurrence in it.
func ResolveMonth(tasks []model.Task, year int, month time.Month) []model.Task {
	var result []model.Task
	for _, t := range tasks {
		if t.DueDate != nil {
			if t.DueDate.Year() == year && t.DueDate.Month() == month {
				result = append(result, t)
			}
			continue
		}
		if len(t.AssignedDays) > 0 {
			result = append(result, t)
		}
	}
	return result
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
