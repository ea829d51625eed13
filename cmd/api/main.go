package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"recruitment-buddy/internal/config"
	"recruitment-buddy/internal/db"
	"recruitment-buddy/internal/email"
	apihttp "recruitment-buddy/internal/http"
	"recruitment-buddy/internal/repository"
	"recruitment-buddy/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		logger.Fatal("db migrate", zap.Error(err))
	}

	userRepo := repository.NewPgUserRepository(pool)
	majorRepo := repository.NewPgMajorRepository(pool)
	affinityRepo := repository.NewPgAffinityRepository(pool)
	typeRepo := repository.NewPgPersonalityTypeRepository(pool)
	responseRepo := repository.NewPgResponseRepository(pool)

	registry := service.NewTypeRegistry(typeRepo, logger)
	if cfg.SeedCatalog {
		if err := service.NewCatalogSeeder(logger, majorRepo, affinityRepo, registry).Seed(ctx); err != nil {
			logger.Fatal("seed catalog", zap.Error(err))
		}
	}

	emailSender := email.NewDisabledSender("email sender not configured")
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	}

	var (
		limiter     service.RateLimiter
		tokenStore  service.RefreshTokenStore
		stateStore  = service.NewMemoryQuestionnaireStateStore()
		redisClient *redis.Client
	)
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory stores", zap.Error(err))
		} else {
			limiter = service.NewRedisRateLimiter(redisClient, "rb:ratelimit:", 10*time.Minute, 5)
			tokenStore = service.NewRedisRefreshTokenStore(redisClient)
			stateStore = service.NewRedisQuestionnaireStateStore(redisClient)
		}
		cancel()
	}

	jwtSvc := service.NewJWTService(
		cfg.JWTSecret,
		time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWTRefreshTTLMinutes)*time.Minute,
		tokenStore,
	)

	userSvc := service.NewUserService(logger, userRepo, emailSender, limiter)
	engine := service.NewMatchEngine(majorRepo, affinityRepo)
	submissionSvc := service.NewSubmissionService(logger, registry, engine, responseRepo)
	flow := service.NewQuestionnaireFlow(majorRepo, cfg.TopRecommendations)

	session := apihttp.NewSession(logger, jwtSvc, apihttp.CookieConfig{Secure: cfg.CookieSecure})
	router := apihttp.NewRouter(
		logger,
		session,
		apihttp.NewUserHandler(logger, userSvc, jwtSvc, session, stateStore),
		apihttp.NewQuestionnaireHandler(logger, flow, stateStore, submissionSvc),
		apihttp.NewCatalogHandler(logger, majorRepo, registry, submissionSvc),
		apihttp.NewHealthHandler(logger, pool),
	)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
