package push

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"hogar/internal/model"
	"hogar/internal/schedule"
	"hogar/internal/store"
)

// Scheduler wakes up each minute and fires task reminders whose time slot
// matches the current wall clock.
type Scheduler struct {
	mu        sync.RWMutex
	service   *Service
	push      *store.PushStore
	reminders *store.ReminderStore
	tasks     *store.TaskStore
	users     *store.UserStore
	logger    *slog.Logger
	interval  time.Duration
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewScheduler creates a reminder scheduler.
func NewScheduler(svc *Service, pushStore *store.PushStore, reminderStore *store.ReminderStore, taskStore *store.TaskStore, userStore *store.UserStore, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		service:   svc,
		push:      pushStore,
		reminders: reminderStore,
		tasks:     taskStore,
		users:     userStore,
		logger:    logger,
		interval:  60 * time.Second,
	}
}

// Start begins the scheduler loop.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.mu.Unlock()

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.tick(ctx, time.Now())
			}
		}
	}()
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	s.mu.RLock()
	cancel := s.cancel
	done := s.done
	s.mu.RUnlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

func (s *Scheduler) tick(ctx context.Context, now time.Time) {
	reminders, err := s.reminders.ListActive()
	if err != nil {
		s.logger.Error("list active reminders", "error", err)
		return
	}

	for _, rem := range reminders {
		if !reminderDue(rem, now) {
			continue
		}
		s.fire(ctx, rem, now)
	}
}

// reminderDue reports whether the reminder's time slot matches the given
// minute. An empty DaysOfWeek list means the reminder fires every day.
func reminderDue(rem model.Reminder, now time.Time) bool {
	slot := rem.ReminderTime
	if len(slot) > 5 {
		slot = slot[:5]
	}
	if slot != now.Format("15:04") {
		return false
	}
	if len(rem.DaysOfWeek) == 0 {
		return true
	}
	today := schedule.WeekdayToken(now.Weekday())
	for _, d := range rem.DaysOfWeek {
		if schedule.Canonical(d) == today {
			return true
		}
	}
	return false
}

func (s *Scheduler) fire(ctx context.Context, rem model.Reminder, now time.Time) {
	firedOn := now.Format(time.DateOnly)

	sent, err := s.push.WasSent(rem.ID, firedOn)
	if err != nil {
		s.logger.Error("check notification log", "reminder_id", rem.ID, "error", err)
		return
	}
	if sent {
		return
	}

	task, err := s.tasks.GetByID(rem.TaskID)
	if err != nil || task == nil {
		return
	}
	if task.Status == model.StatusCompleted {
		// Done already, no point nagging
		return
	}

	payload := Payload{
		Title: "Recordatorio de tarea",
		Body:  task.Title,
		URL:   "/tasks",
		Tag:   fmt.Sprintf("reminder-%d", rem.ID),
	}
	if task.AssignedTo != "" {
		payload.Body = fmt.Sprintf("%s (%s)", task.Title, task.AssignedTo)
	}

	subs, err := s.subscriptionsFor(task.AssignedTo)
	if err != nil {
		s.logger.Error("list subscriptions", "error", err)
		return
	}

	for i := range subs {
		sub := &subs[i]
		if err := s.service.Send(ctx, sub, payload); err != nil {
			if errors.Is(err, ErrExpired) {
				if derr := s.push.DeleteByEndpoint(sub.Endpoint); derr != nil {
					s.logger.Error("delete expired subscription", "error", derr)
				}
				continue
			}
			s.logger.Error("send reminder", "reminder_id", rem.ID, "error", err)
		}
	}

	if err := s.push.RecordSent(rem.ID, firedOn); err != nil {
		s.logger.Error("record notification", "reminder_id", rem.ID, "error", err)
	}
}

// subscriptionsFor resolves the assignee name to a user and returns that
// user's subscriptions. Unassigned tasks, or names that match no account,
// notify every device in the household.
func (s *Scheduler) subscriptionsFor(assignedTo string) ([]model.PushSubscription, error) {
	if assignedTo != "" {
		users, err := s.users.List()
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			if u.Name == assignedTo {
				return s.push.ListByUser(u.ID)
			}
		}
	}
	return s.push.ListAll()
}
