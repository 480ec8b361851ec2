package server

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/soulcompass/soulcoach-backend/internal/handlers"
	"github.com/soulcompass/soulcoach-backend/internal/middleware"
)

type RouterConfig struct {
	AuthMiddleware      *middleware.AuthMiddleware
	HealthcheckHandler  *handlers.HealthcheckHandler
	AuthHandler         *handlers.AuthHandler
	UserHandler         *handlers.UserHandler
	TrackHandler        *handlers.TrackHandler
	ChatHandler         *handlers.ChatHandler
	DailyHandler        *handlers.DailyHandler
	CompassHandler      *handlers.CompassHandler
	MeditationHandler   *handlers.MeditationHandler
	TrainingPathHandler *handlers.TrainingPathHandler
	PracticeHandler     *handlers.PracticeHandler
	BookHandler         *handlers.BookHandler
	ScheduleHandler     *handlers.ScheduleHandler
	JournalHandler      *handlers.JournalHandler
	ReflectionHandler   *handlers.ReflectionHandler
	ReminderHandler     *handlers.ReminderHandler
	NotificationHandler *handlers.NotificationHandler
	SSEHandler          *handlers.SSEHandler
	AdminHandler        *handlers.AdminHandler
}

func allowedOrigins() []string {
	if raw := os.Getenv("CORS_ALLOWED_ORIGINS"); raw != "" {
		return strings.Split(raw, ",")
	}
	return []string{"http://localhost:3000", "http://localhost:5173"}
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", cfg.HealthcheckHandler.Healthcheck)
	router.POST("/api/register", cfg.AuthHandler.Register)
	router.POST("/api/login", cfg.AuthHandler.Login)

	// Protected
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())

	// Auth
	api.POST("/refresh", cfg.AuthHandler.Refresh)
	api.POST("/logout", cfg.AuthHandler.Logout)

	// User
	api.GET("/user", cfg.UserHandler.GetMe)
	api.PATCH("/user", cfg.UserHandler.UpdateMe)
	api.DELETE("/user", cfg.UserHandler.DeleteMe)

	// Track and stages
	api.GET("/stages", cfg.TrackHandler.ListStages)
	api.GET("/stages/current", cfg.TrackHandler.CurrentStage)
	api.POST("/stages/advance", cfg.TrackHandler.AdvanceStage)
	api.POST("/track/select", cfg.TrackHandler.SelectTrack)
	api.GET("/track/custom", cfg.TrackHandler.ActiveCustomTrack)

	// Chat sessions
	api.POST("/chat/sessions", cfg.ChatHandler.StartSession)
	api.GET("/chat/sessions/:sessionID", cfg.ChatHandler.GetSession)
	api.POST("/chat/sessions/:sessionID/messages", cfg.ChatHandler.SendMessage)
	api.POST("/chat/sessions/:sessionID/request-changes", cfg.ChatHandler.RequestChanges)
	api.POST("/chat/sessions/:sessionID/finalize", cfg.TrackHandler.FinalizeSession)

	// Daily entries
	api.GET("/daily-entries", cfg.DailyHandler.List)
	api.POST("/daily-entries", cfg.DailyHandler.Create)
	api.GET("/daily-entries/today", cfg.DailyHandler.Today)

	// Compass questionnaire
	api.GET("/compass/questions", cfg.CompassHandler.Questions)
	api.POST("/compass/submissions", cfg.CompassHandler.Submit)
	api.GET("/compass/submissions", cfg.CompassHandler.ListSubmissions)

	// Meditations
	api.GET("/meditations", cfg.MeditationHandler.List)
	api.POST("/meditations", cfg.MeditationHandler.CreateCustom)
	api.GET("/meditations/:meditationID", cfg.MeditationHandler.Get)

	// Training path
	api.GET("/training-path", cfg.TrainingPathHandler.Get)
	api.POST("/training-path/meditations", cfg.TrainingPathHandler.AddMeditation)
	api.POST("/training-path/complete", cfg.TrainingPathHandler.CompleteMeditation)
	api.GET("/training-path/completed", cfg.TrainingPathHandler.ListCompleted)

	// Practice sessions
	api.POST("/practice", cfg.PracticeHandler.Start)
	api.GET("/practice/state", cfg.PracticeHandler.State)
	api.POST("/practice/timer/start", cfg.PracticeHandler.StartTimer)
	api.POST("/practice/timer/pause", cfg.PracticeHandler.PauseTimer)
	api.POST("/practice/timer/reset", cfg.PracticeHandler.ResetTimer)
	api.POST("/practice/duration", cfg.PracticeHandler.SetDuration)
	api.POST("/practice/end-early", cfg.PracticeHandler.EndEarly)
	api.POST("/practice/debrief/messages", cfg.PracticeHandler.SendDebriefMessage)
	api.POST("/practice/debrief/complete", cfg.PracticeHandler.CompleteDebrief)
	api.GET("/practice/sessions", cfg.PracticeHandler.ListSessions)

	// Library
	api.GET("/books", cfg.BookHandler.List)
	api.POST("/books", cfg.BookHandler.Add)
	api.PATCH("/books/:bookID", cfg.BookHandler.UpdateStatus)
	api.DELETE("/books/:bookID", cfg.BookHandler.Remove)

	// Learning schedules
	api.GET("/schedules", cfg.ScheduleHandler.List)
	api.GET("/schedules/upcoming", cfg.ScheduleHandler.Upcoming)
	api.POST("/schedules", cfg.ScheduleHandler.Create)
	api.DELETE("/schedules/:scheduleID", cfg.ScheduleHandler.Delete)
	api.POST("/schedules/:scheduleID/study", cfg.ScheduleHandler.StartStudySession)
	api.POST("/schedules/:scheduleID/finish", cfg.ScheduleHandler.FinishStudySession)
	api.GET("/learning-sessions", cfg.ScheduleHandler.ListSessions)

	// Journals
	api.GET("/journals", cfg.JournalHandler.List)
	api.POST("/journals", cfg.JournalHandler.Create)
	api.PATCH("/journals/:entryID", cfg.JournalHandler.Update)
	api.DELETE("/journals/:entryID", cfg.JournalHandler.Delete)
	api.POST("/journals/:entryID/analyze", cfg.JournalHandler.Analyze)

	// Reflections
	api.POST("/reflections", cfg.ReflectionHandler.Generate)

	// Reminders and notifications
	api.POST("/reminders", cfg.ReminderHandler.Schedule)
	api.POST("/notifications/subscribe", cfg.NotificationHandler.Subscribe)
	api.POST("/notifications/unsubscribe", cfg.NotificationHandler.Unsubscribe)
	api.GET("/notifications/subscription", cfg.NotificationHandler.Subscription)
	api.POST("/notifications/test", cfg.NotificationHandler.SendTest)

	// SSE
	api.GET("/sse/stream", cfg.SSEHandler.Stream)

	// Admin
	admin := api.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAdmin())
	admin.GET("/stats", cfg.AdminHandler.Stats)
	admin.GET("/users", cfg.AdminHandler.ListUsers)

	return router
}
