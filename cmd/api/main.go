package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"example.com/exerciselog/internal/api"
	"example.com/exerciselog/internal/config"
	"example.com/exerciselog/internal/domain"
	"example.com/exerciselog/internal/logger"
	"example.com/exerciselog/internal/middleware"
	persistence "example.com/exerciselog/internal/persistence/mongo"
	httptransport "example.com/exerciselog/internal/transport/http"
)

func main() {
	// .env is a local-dev convenience; ignore its absence.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer log.Sync()

	if cfg.MongoURI == "" {
		log.Fatal("MONGO_URI is required")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client, err := persistence.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal("failed to connect to mongodb", zap.Error(err))
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Error("mongodb disconnect failed", zap.Error(err))
		}
	}()
	log.Info("mongodb connected", zap.String("database", cfg.MongoDatabase))

	db := client.Database(cfg.MongoDatabase)
	users := persistence.NewUserRepository(db)
	exercises := persistence.NewExerciseRepository(db)

	service := domain.NewService(users, exercises)
	handler := api.NewHandler(service, log)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())
	// Landing page and static assets, served from a fixed local directory.
	mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))

	chain := middleware.RequestLogger(log)(middleware.CORS(mux))

	server := httptransport.NewServer(httptransport.ServerConfig{
		Address:         cfg.HTTPAddress,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    10 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 15 * time.Second,
	}, chain, log)

	if err := server.Run(ctx); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
	log.Info("server exited")
}
