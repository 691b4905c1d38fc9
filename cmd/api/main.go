package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/gzanette/lifetrack-engine/internal/adapters/cache"
	adapterHTTP "github.com/gzanette/lifetrack-engine/internal/adapters/handler/http"
	"github.com/gzanette/lifetrack-engine/internal/adapters/repository"
	"github.com/gzanette/lifetrack-engine/internal/config"
	"github.com/gzanette/lifetrack-engine/internal/core/domain"
	"github.com/gzanette/lifetrack-engine/internal/core/services"
	"github.com/gzanette/lifetrack-engine/internal/core/workers"
)

func main() {
	startTime := time.Now()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Critical: failed to load configuration: %v", err)
	}

	log.Println("Connecting to database...")

	db, err := sqlx.Connect("pgx", cfg.ConnectionString())
	if err != nil {
		log.Fatalf("Critical: Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Println("Database connected successfully.")

	redisClient, err := cache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		// The cache and rate limiter degrade gracefully without Redis.
		log.Printf("Warning: Redis unavailable, running without cache: %v", err)
		redisClient = nil
	}

	userRepo := repository.NewPostgresUserRepository(db.DB)
	var goalRepo domain.FinancialGoalRepository = repository.NewPostgresGoalRepository(db)
	fitnessRepo := repository.NewPostgresFitnessRepository(db)
	habitRepo := repository.NewPostgresHabitRepository(db)
	checkInRepo := repository.NewPostgresCheckInRepository(db)
	systemRepo := repository.NewPostgresSystemRepository(db)
	adherenceRepo := repository.NewPostgresAdherenceLogRepository(db)
	recurringRepo := repository.NewPostgresRecurringRepository(db)
	snapshotRepo := repository.NewPostgresSnapshotRepository(db)
	achievementRepo := repository.NewPostgresUserAchievementRepository(db)

	if redisClient != nil {
		goalRepo = repository.NewCachedGoalRepository(goalRepo, redisClient)
	}

	scoreService := services.NewScoreService(goalRepo, fitnessRepo, habitRepo, systemRepo, adherenceRepo, snapshotRepo)
	achievementService := services.NewAchievementService(
		domain.DefaultAchievements(), achievementRepo, goalRepo, fitnessRepo, habitRepo, scoreService,
	)

	achievementWorker := workers.NewAchievementWorker(achievementService)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	achievementWorker.Start(workerCtx)

	authService := services.NewAuthService(userRepo)
	tokenService := services.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Duration, userRepo)
	goalService := services.NewGoalService(goalRepo, achievementWorker)
	fitnessService := services.NewFitnessService(fitnessRepo, achievementWorker)
	habitService := services.NewHabitService(habitRepo, checkInRepo, achievementWorker)
	systemService := services.NewSystemService(systemRepo, adherenceRepo)
	projectionService := services.NewProjectionService(goalRepo)
	schedulerService := services.NewSchedulerService(recurringRepo, goalRepo)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:        adapterHTTP.NewAuthHandler(authService, tokenService),
		GoalHandler:        adapterHTTP.NewGoalHandler(goalService, projectionService),
		FitnessHandler:     adapterHTTP.NewFitnessHandler(fitnessService),
		HabitHandler:       adapterHTTP.NewHabitHandler(habitService),
		SystemHandler:      adapterHTTP.NewSystemHandler(systemService),
		RecurringHandler:   adapterHTTP.NewRecurringHandler(schedulerService),
		ScoreHandler:       adapterHTTP.NewScoreHandler(scoreService),
		AchievementHandler: adapterHTTP.NewAchievementHandler(achievementService),
		TokenService:       tokenService,
		DB:                 db,
		Redis:              redisClient,
		StartTime:          startTime,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("%s running on http://localhost:%d", cfg.App.Name, cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}
