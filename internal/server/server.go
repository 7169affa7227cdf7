package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"hogar/internal/handler"
	"hogar/internal/middleware"
	"hogar/internal/push"
	"hogar/internal/store"
	ws "hogar/internal/websocket"
)

type Server struct {
	db            *sql.DB
	hub           *ws.Hub
	authH         *handler.AuthHandler
	taskH         *handler.TaskHandler
	reminderH     *handler.ReminderHandler
	dashboardH    *handler.DashboardHandler
	calendarH     *handler.CalendarHandler
	rankingH      *handler.RankingHandler
	profileH      *handler.ProfileHandler
	onboardingH   *handler.OnboardingHandler
	pushH         *handler.PushHandler
	sessionStore  *store.SessionStore
	rateLimiter   *middleware.RateLimiter
	pushService   *push.Service
	pushScheduler *push.Scheduler
	logger        *slog.Logger
}

// Config carries the server-level settings main reads from the config file.
type Config struct {
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	PushSubscriber  string
}

func New(db *sql.DB, cfg Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	userStore := store.NewUserStore(db)
	taskStore := store.NewTaskStore(db)
	reminderStore := store.NewReminderStore(db)
	sessionStore := store.NewSessionStore(db)
	pushStore := store.NewPushStore(db)

	pushLogger := logger.With("component", "push")

	// Push notifications only run when VAPID keys are configured
	var pushSvc *push.Service
	var pushSched *push.Scheduler
	var pushH *handler.PushHandler
	if cfg.VAPIDPublicKey != "" && cfg.VAPIDPrivateKey != "" {
		pushSvc = push.NewService(cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey, cfg.PushSubscriber)
		pushSched = push.NewScheduler(pushSvc, pushStore, reminderStore, taskStore, userStore, pushLogger)
		pushH = handler.NewPushHandler(pushStore, pushSvc, pushLogger)
	}

	return &Server{
		db:            db,
		hub:           hub,
		authH:         handler.NewAuthHandler(userStore, sessionStore, logger.With("component", "auth")),
		taskH:         handler.NewTaskHandler(taskStore, userStore, hub, logger.With("component", "task")),
		reminderH:     handler.NewReminderHandler(reminderStore, taskStore, hub, logger.With("component", "reminder")),
		dashboardH:    handler.NewDashboardHandler(taskStore),
		calendarH:     handler.NewCalendarHandler(taskStore),
		rankingH:      handler.NewRankingHandler(userStore, taskStore),
		profileH:      handler.NewProfileHandler(userStore, taskStore, logger.With("component", "profile")),
		onboardingH:   handler.NewOnboardingHandler(userStore, taskStore, hub, logger.With("component", "onboarding")),
		pushH:         pushH,
		sessionStore:  sessionStore,
		rateLimiter:   middleware.NewRateLimiter(),
		pushService:   pushSvc,
		pushScheduler: pushSched,
		logger:        logger,
	}
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

// PushScheduler returns the reminder scheduler, nil when push is not configured.
func (s *Server) PushScheduler() *push.Scheduler {
	return s.pushScheduler
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("POST /register", s.rateLimitedHandler(s.authH.Register))
	outerMux.HandleFunc("POST /login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes behind RequireAuth
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.sessionStore)
	outerMux.Handle("/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /logout", s.authH.Logout)

	// Task API routes
	mux.HandleFunc("POST /api/tasks", s.taskH.Create)
	mux.HandleFunc("GET /api/tasks", s.taskH.List)
	mux.HandleFunc("GET /api/tasks/{id}", s.taskH.Get)
	mux.HandleFunc("PUT /api/tasks/{id}", s.taskH.Update)
	mux.HandleFunc("POST /api/tasks/{id}/status", s.taskH.UpdateStatus)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.taskH.Delete)

	// Reminder API routes
	mux.HandleFunc("POST /api/tasks/{id}/reminders", s.reminderH.Create)
	mux.HandleFunc("GET /api/tasks/{id}/reminders", s.reminderH.ListByTask)
	mux.HandleFunc("DELETE /api/reminders/{id}", s.reminderH.Delete)

	// Views
	mux.HandleFunc("GET /api/dashboard", s.dashboardH.Today)
	mux.HandleFunc("GET /api/calendar", s.calendarH.Month)
	mux.HandleFunc("GET /api/ranking", s.rankingH.Get)

	// Profile + onboarding
	mux.HandleFunc("GET /api/profile", s.profileH.Get)
	mux.HandleFunc("PUT /api/profile", s.profileH.Update)
	mux.HandleFunc("GET /api/profile/stats", s.profileH.Stats)
	mux.HandleFunc("GET /api/onboarding", s.onboardingH.Status)
	mux.HandleFunc("POST /api/onboarding", s.onboardingH.Complete)

	// Push notification API routes
	if s.pushH != nil {
		mux.HandleFunc("GET /api/push/vapid-key", s.pushH.VAPIDKey)
		mux.HandleFunc("POST /api/push/subscribe", s.pushH.Subscribe)
		mux.HandleFunc("GET /api/push/subscriptions", s.pushH.List)
		mux.HandleFunc("DELETE /api/push/subscriptions/{id}", s.pushH.Unsubscribe)
	}

	// Real-time sync
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket")))
}
