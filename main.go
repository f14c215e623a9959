package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"whisper-service/internal/config"
	"whisper-service/internal/db"
	"whisper-service/internal/handlers"
	"whisper-service/internal/logger"
	"whisper-service/internal/middleware"
	"whisper-service/internal/observability"
	"whisper-service/internal/rabbitmq"
	"whisper-service/internal/repositories"
	"whisper-service/internal/session"
	"whisper-service/internal/telemetry"
	"whisper-service/internal/ws"
)

const serviceName = "whisper-service"

func main() {
	cfg := config.Load()
	logger.Init(cfg.Env)

	shutdownTracing, err := telemetry.InitTracing(context.Background(), serviceName, cfg.OTLPEndpoint, cfg.Env)
	if err != nil {
		log.Fatal().Err(err).Msg("init tracing")
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Error().Err(err).Msg("shutdown tracing")
		}
	}()

	database, err := db.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("connect db")
	}

	publisher := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	defer publisher.Close()
	log.Info().Str("mode", rabbitmq.PublisherMode(publisher)).Msg("event publisher ready")
	emitter := telemetry.NewAuditEmitter(publisher, "audit.whisper", serviceName, cfg.Env)

	userRepo := repositories.NewUserRepo(database)
	messageRepo := repositories.NewMessageRepo(database)
	chatMessageRepo := repositories.NewChatMessageRepo(database)
	reportRepo := repositories.NewReportRepo(database)
	settingsRepo := repositories.NewSettingsRepo(database)
	statsRepo := repositories.NewStatsRepo(database)

	store := session.NewStore(cfg.SessionSecret, time.Duration(cfg.SessionTTLHours)*time.Hour)

	relay := ws.NewRelay(chatMessageRepo)
	go relay.Run()

	adminCreds := handlers.AdminCredentials{Username: cfg.AdminUsername, Password: cfg.AdminPassword}
	authHandler := handlers.NewAuthHandler(userRepo, store, adminCreds, emitter)
	userHandler := handlers.NewUserHandler(userRepo)
	messageHandler := handlers.NewMessageHandler(messageRepo, userRepo)
	chatHandler := handlers.NewChatHandler(chatMessageRepo)
	reportHandler := handlers.NewReportHandler(reportRepo, emitter)
	adminHandler := handlers.NewAdminHandler(userRepo, statsRepo, emitter)
	settingsHandler := handlers.NewSettingsHandler(settingsRepo)
	wsHandler := ws.NewHandler(relay, store, emitter)

	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		gin.Recovery(),
		otelgin.Middleware(serviceName),
		observability.HTTPMetricsMiddleware(),
		middleware.ResolveIdentity(store),
	)

	requireAuth := middleware.RequireAuth()
	requireAdmin := middleware.RequireAdmin()

	api := router.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/me", authHandler.Me)

	api.GET("/users/:username", userHandler.GetByUsername)

	api.POST("/messages", messageHandler.Create)
	api.GET("/messages", requireAuth, messageHandler.List)
	api.DELETE("/messages/:id", requireAuth, messageHandler.Delete)
	api.PATCH("/messages/:id/read", requireAuth, messageHandler.MarkRead)

	api.GET("/chat/messages", chatHandler.ListRecent)

	api.POST("/reports", requireAuth, reportHandler.Create)

	api.GET("/settings", settingsHandler.Get)

	admin := api.Group("/admin", requireAdmin)
	admin.GET("/stats", adminHandler.GetStats)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/reports", reportHandler.List)
	admin.PATCH("/reports/:id", reportHandler.UpdateStatus)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.PUT("/settings", settingsHandler.Update)

	router.GET("/ws", wsHandler.Handle)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	log.Info().Str("port", cfg.Port).Msg("server listening")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server run")
	}
}
