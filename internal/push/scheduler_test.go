package push

import (
	"testing"
	"time"

	"hogar/internal/model"
)

func TestReminderDueExactMinute(t *testing.T) {
	rem := model.Reminder{ReminderTime: "09:00:00"}

	// 2026-02-02 is a Monday.
	now := time.Date(2026, 2, 2, 9, 0, 30, 0, time.Local)
	if !reminderDue(rem, now) {
		t.Error("expected reminder due at 09:00")
	}

	now = time.Date(2026, 2, 2, 9, 1, 0, 0, time.Local)
	if reminderDue(rem, now) {
		t.Error("reminder should not fire at 09:01")
	}
}

func TestReminderDueEveryDayWhenNoDays(t *testing.T) {
	rem := model.Reminder{ReminderTime: "21:30:00", DaysOfWeek: nil}

	for day := 2; day <= 8; day++ {
		now := time.Date(2026, 2, day, 21, 30, 0, 0, time.Local)
		if !reminderDue(rem, now) {
			t.Errorf("expected reminder due on %s", now.Weekday())
		}
	}
}

func TestReminderDueDayFilter(t *testing.T) {
	rem := model.Reminder{
		ReminderTime: "08:00:00",
		DaysOfWeek:   []string{"Lunes", "Miércoles"},
	}

	monday := time.Date(2026, 2, 2, 8, 0, 0, 0, time.Local)
	if !reminderDue(rem, monday) {
		t.Error("expected reminder due on Monday")
	}

	wednesday := time.Date(2026, 2, 4, 8, 0, 0, 0, time.Local)
	if !reminderDue(rem, wednesday) {
		t.Error("expected reminder due on Wednesday")
	}

	tuesday := time.Date(2026, 2, 3, 8, 0, 0, 0, time.Local)
	if reminderDue(rem, tuesday) {
		t.Error("reminder should not fire on Tuesday")
	}
}

func TestReminderDueShortTimeFormat(t *testing.T) {
	rem := model.Reminder{ReminderTime: "07:15"}

	now := time.Date(2026, 2, 2, 7, 15, 0, 0, time.Local)
	if !reminderDue(rem, now) {
		t.Error("expected HH:MM reminder time to match")
	}
}
