package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	configs "feedback_service/config"
	"feedback_service/internal/cache"
	"feedback_service/internal/repository"
	"feedback_service/internal/server/feedbackhttp"
	"feedback_service/internal/service"
	"feedback_service/pkg/db"
	"feedback_service/pkg/kafka"
	"feedback_service/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.New()
	defer func() { _ = log.Sync() }()

	cfg, err := configs.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pg, err := db.NewPostgres(db.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		DBName:   cfg.DB.DBName,
		SSLMode:  cfg.DB.SSLMode,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pg.Close()

	questionRepo := repository.NewQuestionRepository(pg.DB())
	answerRepo := repository.NewAnswerRepository(pg.DB())
	feedbackRepo := repository.NewFeedbackRepository(pg.DB())
	historyRepo := repository.NewScoreHistoryRepository(pg.DB())
	tournamentRepo := repository.NewTournamentRepository(pg.DB())

	redisConn := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
	})
	formCache := cache.NewRedisCache(redisConn)

	producer, err := kafka.NewProducer(kafka.Config{Brokers: cfg.Kafka.Brokers})
	if err != nil {
		log.Fatalf("Failed to create Kafka producer: %v", err)
	}
	defer producer.Close()

	questionService := service.NewQuestionService(questionRepo, tournamentRepo, formCache)
	feedbackService := service.NewFeedbackService(
		feedbackRepo,
		questionRepo,
		answerRepo,
		tournamentRepo,
		producer,
		log,
	)
	scoreService := service.NewScoreService(historyRepo, tournamentRepo, producer, log)

	handler := feedbackhttp.NewFeedbackHandler(questionService, feedbackService, scoreService, log)
	router := feedbackhttp.NewRouter(handler, log)

	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	go func() {
		log.Info("Starting HTTP server", zap.String("address", cfg.HTTP.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Info("Server stopped")
}
