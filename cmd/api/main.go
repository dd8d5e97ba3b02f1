package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"expenis/internal/config"
	"expenis/internal/database"
	"expenis/internal/handlers"
	"expenis/internal/logger"
	"expenis/internal/middleware"
	"expenis/internal/scheduler"
	"expenis/internal/services"
	"expenis/internal/validator"
)

const sweepInterval = 5 * time.Minute

func main() {
	logger.Init(os.Getenv("EXPENIS_ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(appConfig.DBPath)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	db := dbManager.DB()
	sessionService := services.NewSessionService(db)
	transactionService := services.NewTransactionService(db)

	sessionHandler := handlers.NewSessionHandler(sessionService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)

	if !appConfig.Dev {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())

	// The dashboard dev server runs on another port, so dev needs open CORS.
	if appConfig.Dev {
		router.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", c.GetHeader("Origin"))
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")

			if c.Request.Method == "OPTIONS" {
				c.AbortWithStatus(http.StatusNoContent)
				return
			}

			c.Next()
		})
	}

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.POST("/create-session", sessionHandler.CreateSession)
	api.GET("/auth/:session_id", sessionHandler.Auth)

	protected := api.Group("/")
	protected.Use(middleware.CookieAuth())
	protected.GET("/transactions", transactionHandler.ListTransactions)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sweeper := scheduler.New("session-sweep", sweepInterval, func(ctx context.Context) error {
		removed, err := sessionService.Sweep(services.SessionMaxAge)
		if err != nil {
			return err
		}
		if removed > 0 {
			log.Infow("swept expired sessions", "count", removed)
		}
		return nil
	})
	sweeper.Start(ctx)

	server := &http.Server{
		Addr:    ":" + appConfig.Port,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Errorw("server shutdown failed", "error", err)
		}
	}()

	log.Infof("Starting expenis API server on port %s", appConfig.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	sweeper.Wait()
	log.Info("Server stopped")
	return nil
}
