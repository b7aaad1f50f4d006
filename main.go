// File: salonassist/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"

	"salonassist/config"
	"salonassist/database"
	appointmentRepoPkg "salonassist/database/repository/appointment"
	catalogRepoPkg "salonassist/database/repository/catalog"
	clientRepoPkg "salonassist/database/repository/client"
	sessionRepoPkg "salonassist/database/repository/session"
	"salonassist/handlers"
	"salonassist/middleware"
	"salonassist/routes"
	"salonassist/services/scheduling"
	"salonassist/services/session"
	"salonassist/services/tasks"
	"salonassist/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	hours, err := config.OperatingHours()
	if err != nil {
		logger.Sugar().Fatalf("main: invalid operating hours config: %v", err)
	}
	loc, err := config.Timezone()
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(cors.Default())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	clientRepo := clientRepoPkg.NewMongoClientRepo()
	catalogRepo := catalogRepoPkg.NewMongoCatalogRepo()
	appointmentRepo := appointmentRepoPkg.NewMongoAppointmentRepo()
	sessionRepo := sessionRepoPkg.NewMongoSessionRepo()

	// Seed the default catalog on first provisioning.
	if err := catalogRepo.SeedDefaults(context.Background()); err != nil {
		logger.Sugar().Fatalf("main: failed to seed service catalog: %v", err)
	}

	// Task queue for appointment reminders.
	redisOpt := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	}
	taskClient := asynq.NewClient(redisOpt)
	defer taskClient.Close()

	reminderScheduler := tasks.NewReminderScheduler(
		taskClient,
		time.Duration(config.AppConfig.ReminderLeadMinutes)*time.Minute,
		loc,
	)

	// services.
	schedulingEngine := &scheduling.DefaultEngine{
		Appointments: appointmentRepo,
		Clients:      clientRepo,
		Catalog:      catalogRepo,
		Hours:        hours,
		MaxResults:   config.AppConfig.MaxAvailableResults,
		Reminders:    reminderScheduler,
	}

	if err := schedulingEngine.ValidateCatalog(context.Background()); err != nil {
		logger.Sugar().Fatalf("main: service catalog invalid: %v", err)
	}

	sessionCache := session.NewRedisContextCache(
		utils.GetCacheClient(),
		time.Duration(config.AppConfig.SessionCacheTTLMin)*time.Minute,
	)
	sessionManager := &session.DefaultManager{
		Sessions: sessionRepo,
		Clients:  clientRepo,
		Cache:    sessionCache,
		Location: loc,
	}

	bookingHandler := handlers.NewBookingHandler(schedulingEngine)
	sessionHandler := handlers.NewSessionHandler(sessionManager)

	// Register routes.
	routes.RegisterRoutes(router, bookingHandler, sessionHandler)

	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Reminder worker.
	taskServer := asynq.NewServer(redisOpt, asynq.Config{Concurrency: 5})
	mux := asynq.NewServeMux()
	reminderHandler := &tasks.ReminderHandler{
		Appointments: appointmentRepo,
		Notifier:     tasks.LogNotifier{},
	}
	mux.HandleFunc(tasks.TypeSendReminder, reminderHandler.HandleSendReminder)
	go func() {
		if err := taskServer.Run(mux); err != nil {
			logger.Sugar().Fatalf("main: reminder worker failed: %v", err)
		}
	}()

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	taskServer.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
