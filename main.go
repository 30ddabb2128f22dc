package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ajmal7799/FitStack-sub001/config"
	"github.com/ajmal7799/FitStack-sub001/cron"
	"github.com/ajmal7799/FitStack-sub001/database"
	feedbackRepoPkg "github.com/ajmal7799/FitStack-sub001/database/repository/feedback"
	notificationRepoPkg "github.com/ajmal7799/FitStack-sub001/database/repository/notification"
	sessionRepoPkg "github.com/ajmal7799/FitStack-sub001/database/repository/session"
	slotRepoPkg "github.com/ajmal7799/FitStack-sub001/database/repository/slot"
	trainerRepoPkg "github.com/ajmal7799/FitStack-sub001/database/repository/trainer"
	userRepoPkg "github.com/ajmal7799/FitStack-sub001/database/repository/user"
	"github.com/ajmal7799/FitStack-sub001/handlers"
	"github.com/ajmal7799/FitStack-sub001/middleware"
	"github.com/ajmal7799/FitStack-sub001/routes"
	"github.com/ajmal7799/FitStack-sub001/services/booking"
	"github.com/ajmal7799/FitStack-sub001/services/feedback"
	"github.com/ajmal7799/FitStack-sub001/services/notification"
	"github.com/ajmal7799/FitStack-sub001/services/storage"
	"github.com/ajmal7799/FitStack-sub001/services/videosession"
	"github.com/ajmal7799/FitStack-sub001/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Firebase messaging and object storage are optional collaborators; the
	// engine runs without them in local development.
	if _, err := os.Stat(config.AppConfig.FirebaseCredentialsFile); err == nil {
		utils.FirebaseInit()
	} else {
		logger.Warn("main: firebase credentials not found, push notifications disabled")
	}

	var storageSvc storage.StorageService
	if config.AppConfig.StorageBucket != "" {
		svc, err := storage.NewGCSStorageService(config.AppConfig.FirebaseCredentialsFile, config.AppConfig.StorageBucket)
		if err != nil {
			logger.Warn("main: storage service unavailable, profile images unsigned", zap.Error(err))
		} else {
			storageSvc = svc
		}
	}

	// Repositories.
	slotRepo := slotRepoPkg.NewMongoSlotRepo()
	sessionRepo := sessionRepoPkg.NewMongoSessionRepo()
	trainerRepo := trainerRepoPkg.NewMongoTrainerRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()
	feedbackRepo := feedbackRepoPkg.NewMongoFeedbackRepo()
	notificationRepo := notificationRepoPkg.NewMongoNotificationRepo()

	// Services.
	notificationSvc := &notification.DefaultNotificationService{
		Repo:     notificationRepo,
		Users:    userRepo,
		Trainers: trainerRepo,
	}

	reminderClient := cron.NewReminderClient()
	defer reminderClient.Close()

	bookingSvc := &booking.DefaultBookingService{
		Slots:     slotRepo,
		Sessions:  sessionRepo,
		Trainers:  trainerRepo,
		Users:     userRepo,
		Notifier:  notificationSvc,
		Reminders: reminderClient,
		Storage:   storageSvc,
	}
	sessionSvc := &videosession.DefaultVideoSessionService{
		Sessions: sessionRepo,
		Slots:    slotRepo,
		Notifier: notificationSvc,
	}
	feedbackSvc := &feedback.DefaultFeedbackService{
		Feedbacks: feedbackRepo,
		Sessions:  sessionRepo,
		Trainers:  trainerRepo,
	}

	// Background tasks.
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	sweeper := &cron.Sweeper{
		Sessions: sessionRepo,
		Slots:    slotRepo,
		Interval: config.SweepInterval(),
	}
	go sweeper.Run(sweepCtx)

	reminderWorker := cron.InitReminderWorker(notificationSvc)

	// HTTP server.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	routes.RegisterRoutes(router, &routes.Handlers{
		Slot:         handlers.NewSlotHandler(bookingSvc),
		Session:      handlers.NewSessionHandler(sessionSvc),
		Feedback:     handlers.NewFeedbackHandler(feedbackSvc),
		Notification: handlers.NewNotificationHandler(notificationRepo),
	})

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("Starting server on %s...", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed: %v", err)
		}
	}()

	// Block until a shutdown signal arrives, then drain.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	stopSweeper()
	reminderWorker.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: forced shutdown: %v", err)
	}
	logger.Info("Server exited")
}
