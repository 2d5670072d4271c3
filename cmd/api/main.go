package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"taskchat/internal/chat"
	"taskchat/internal/config"
	"taskchat/internal/handler"
	"taskchat/internal/middleware"
	"taskchat/internal/repository"
	"taskchat/internal/service"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sqlx.Connect(cfg.DBDriver, cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := repository.Migrate(db); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	authSvc := service.NewAuthService(repo, logger, cfg)
	taskSvc := service.NewTaskService(repo, logger)
	chatProc := chat.NewProcessor(repo, taskSvc, logger)
	h := handler.NewHandler(authSvc, taskSvc, chatProc, logger)

	// Setup router
	var global []mux.MiddlewareFunc
	if cfg.RateLimit {
		global = append(global, middleware.RateLimit(cfg.RateLimitPS, cfg.RateBurst, logger))
	}
	r := handler.NewRouter(h, middleware.Auth(authSvc, repo, logger), global...)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
