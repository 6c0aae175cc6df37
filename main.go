// File: folio/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"folio/config"
	"folio/database"
	traceRepo "folio/database/repository/trace"
	"folio/handlers"
	"folio/middleware"
	"folio/routes"
	"folio/services/calendar"
	"folio/services/dialogue"
	"folio/services/intent"
	ai "folio/services/intelligence"
	"folio/services/portfolio"
	"folio/services/repair"
	"folio/services/session"
	"folio/services/slots"
	"folio/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	// Session store: in-process by default, Redis when configured.
	var sessionStore session.Store
	var redisClient *redis.Client
	if config.AppConfig.SessionBackend == "redis" {
		utils.InitSessionCache()
		redisClient = utils.GetSessionCacheClient()
		ttl := time.Duration(config.AppConfig.SessionTTLMin) * time.Minute
		sessionStore = session.NewRedisStore(redisClient, ttl)
	} else {
		sessionStore = session.NewMemoryStore()
	}

	// Turn-trace archive is optional; no DATABASE_URL disables it.
	var traces traceRepo.TurnTraceRepository
	var mongoClient *mongo.Client
	if config.AppConfig.DatabaseURL != "" {
		database.InitDB()
		mongoClient = database.MongoClient
		traces = traceRepo.NewMongoTraceRepo()
	}

	// Model collaborator is optional; without a key the router and portfolio
	// path run on deterministic fallbacks.
	var model ai.ModelClient
	if config.AppConfig.GeminiAPIKey != "" {
		model = ai.NewGeminiClient(config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
	}

	extractor := slots.NewExtractor()
	meetingDuration := time.Duration(config.AppConfig.MeetingDurationMin) * time.Minute
	calendarClient := calendar.NewHTTPClient(config.AppConfig.CalendarAPIURL)

	orchestrator := &dialogue.Orchestrator{
		Store:     sessionStore,
		Router:    intent.NewRouter(model, extractor, logger),
		Extractor: extractor,
		Repair:    repair.NewProxy(extractor, meetingDuration),
		Portfolio: portfolio.NewDefaultService(model, logger),
		Calendar:  calendarClient,
		Model:     model,
		Traces:    traces,
		Logger:    logger,
	}

	chatHandler := handlers.NewChatHandler(orchestrator, traces, logger)
	calendarHandler := handlers.NewCalendarHandler(calendarClient, logger)

	handlerBundle := &handlers.HandlerBundle{
		HandleChatHandler: chatHandler.HandleChat,
		GetTracesHandler:  chatHandler.GetTraces,
		ListEventsHandler: calendarHandler.ListEvents,
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(redisClient, mongoClient)

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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
