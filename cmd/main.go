package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/soulcompass/soulcoach-backend/internal/clients/onesignal"
	redisbus "github.com/soulcompass/soulcoach-backend/internal/clients/redis"
	"github.com/soulcompass/soulcoach-backend/internal/db"
	"github.com/soulcompass/soulcoach-backend/internal/handlers"
	"github.com/soulcompass/soulcoach-backend/internal/logger"
	"github.com/soulcompass/soulcoach-backend/internal/middleware"
	"github.com/soulcompass/soulcoach-backend/internal/repos"
	"github.com/soulcompass/soulcoach-backend/internal/server"
	"github.com/soulcompass/soulcoach-backend/internal/services"
	"github.com/soulcompass/soulcoach-backend/internal/sse"
	"github.com/soulcompass/soulcoach-backend/internal/utils"
)

const reminderDispatchPeriod = time.Minute

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	stagesPath := utils.GetEnv("STAGES_CONFIG_PATH", "config/stages.yaml", log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.SeedStages(stagesPath); err != nil {
		log.Warn("Stage seeding failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	stageRepo := repos.NewStageRepo(thePG, log)
	customTrackRepo := repos.NewCustomTrackRepo(thePG, log)
	dailyEntryRepo := repos.NewDailyEntryRepo(thePG, log)
	submissionRepo := repos.NewSubmissionRepo(thePG, log)
	meditationRepo := repos.NewMeditationRepo(thePG, log)
	trainingPathRepo := repos.NewTrainingPathRepo(thePG, log)
	completedMeditationRepo := repos.NewCompletedMeditationRepo(thePG, log)
	practiceSessionRepo := repos.NewPracticeSessionRepo(thePG, log)
	chatSessionRepo := repos.NewChatSessionRepo(thePG, log)
	userBookRepo := repos.NewUserBookRepo(thePG, log)
	learningScheduleRepo := repos.NewLearningScheduleRepo(thePG, log)
	learningSessionRepo := repos.NewLearningSessionRepo(thePG, log)
	journalRepo := repos.NewJournalRepo(thePG, log)
	pushSubscriptionRepo := repos.NewPushSubscriptionRepo(thePG, log)
	reminderRepo := repos.NewReminderRepo(thePG, log)

	// SSE
	sseHub := sse.NewSSEHub(log)
	sseBus, err := redisbus.NewSSEBus(log)
	if err != nil {
		log.Warn("Redis SSE bus unavailable; events stay instance-local", "error", err)
		sseBus = nil
	} else {
		if err := sseBus.StartForwarder(context.Background(), sseHub.Broadcast); err != nil {
			log.Warn("Could not start SSE forwarder", "error", err)
		}
		defer sseBus.Close()
	}

	// External clients
	aiClient, err := services.NewAIClient(log)
	if err != nil {
		log.Error("Could not init AIClient", "error", err)
		os.Exit(1)
	}
	pushClient, err := onesignal.NewClient(log)
	if err != nil {
		log.Warn("Push client unavailable; push delivery disabled", "error", err)
		pushClient = nil
	}

	// Services
	promptService := services.NewPromptService(log)
	authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
	trackService := services.NewTrackService(thePG, log, userRepo, stageRepo, customTrackRepo, chatSessionRepo)
	userService := services.NewUserService(log, thePG, userRepo, userTokenRepo, trackService)
	chatService := services.NewChatService(log, chatSessionRepo, promptService, aiClient)
	dailyService := services.NewDailyService(log, dailyEntryRepo)
	compassService := services.NewCompassService(log, submissionRepo)
	meditationService := services.NewMeditationService(log, meditationRepo)
	trainingPathService := services.NewTrainingPathService(thePG, log, trainingPathRepo, meditationRepo, completedMeditationRepo)
	notificationService := services.NewNotificationService(log, pushSubscriptionRepo, pushClient, sseBus, sseHub)
	practiceService := services.NewPracticeService(log, meditationRepo, practiceSessionRepo, chatService, chatSessionRepo, promptService, aiClient, trainingPathService, notificationService)
	libraryService := services.NewLibraryService(log, userBookRepo)
	scheduleService := services.NewScheduleService(thePG, log, learningScheduleRepo, learningSessionRepo, userBookRepo, chatService, chatSessionRepo)
	journalService := services.NewJournalService(log, journalRepo, promptService, aiClient)
	reflectionService := services.NewReflectionService(log, userRepo, dailyEntryRepo, trackService, promptService, aiClient)
	reminderService := services.NewReminderService(log, reminderRepo, pushSubscriptionRepo, pushClient)
	adminService := services.NewAdminService(log, userRepo, dailyEntryRepo, meditationRepo, customTrackRepo)

	// Reminder fallback worker
	go func() {
		ticker := time.NewTicker(reminderDispatchPeriod)
		defer ticker.Stop()
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if _, err := reminderService.DispatchDue(ctx, 100); err != nil {
				log.Warn("Reminder dispatch failed", "error", err)
			}
			cancel()
		}
	}()

	// Handlers
	healthcheckHandler := handlers.NewHealthcheckHandler()
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	trackHandler := handlers.NewTrackHandler(trackService)
	chatHandler := handlers.NewChatHandler(chatService)
	dailyHandler := handlers.NewDailyHandler(dailyService)
	compassHandler := handlers.NewCompassHandler(compassService)
	meditationHandler := handlers.NewMeditationHandler(meditationService)
	trainingPathHandler := handlers.NewTrainingPathHandler(trainingPathService)
	practiceHandler := handlers.NewPracticeHandler(practiceService)
	bookHandler := handlers.NewBookHandler(libraryService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	journalHandler := handlers.NewJournalHandler(journalService)
	reflectionHandler := handlers.NewReflectionHandler(reflectionService)
	reminderHandler := handlers.NewReminderHandler(reminderService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	sseHandler := handlers.NewSSEHandler(sseHub)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	router := server.NewRouter(server.RouterConfig{
		AuthMiddleware:      authMiddleware,
		HealthcheckHandler:  healthcheckHandler,
		AuthHandler:         authHandler,
		UserHandler:         userHandler,
		TrackHandler:        trackHandler,
		ChatHandler:         chatHandler,
		DailyHandler:        dailyHandler,
		CompassHandler:      compassHandler,
		MeditationHandler:   meditationHandler,
		TrainingPathHandler: trainingPathHandler,
		PracticeHandler:     practiceHandler,
		BookHandler:         bookHandler,
		ScheduleHandler:     scheduleHandler,
		JournalHandler:      journalHandler,
		ReflectionHandler:   reflectionHandler,
		ReminderHandler:     reminderHandler,
		NotificationHandler: notificationHandler,
		SSEHandler:          sseHandler,
		AdminHandler:        adminHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
