package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/paxify_bot/internal/app"
	"github.com/Freeeeeet/paxify_bot/internal/auth"
	"github.com/Freeeeeet/paxify_bot/internal/booking"
	"github.com/Freeeeeet/paxify_bot/internal/config"
	"github.com/Freeeeeet/paxify_bot/internal/controller"
	"github.com/Freeeeeet/paxify_bot/internal/paxify"
	"github.com/Freeeeeet/paxify_bot/internal/repository"
	"github.com/Freeeeeet/paxify_bot/internal/schedule"
	"github.com/Freeeeeet/paxify_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)

	defer logger.Sync()

	logger.Info("Starting Paxify bot",
		zap.String("environment", cfg.Environment),
		zap.String("paxify_api", cfg.PaxifyAPIURL),
		zap.String("timezone", cfg.Location().String()),
		zap.Bool("production", cfg.IsProduction()),
		zap.Bool("verify_tokens", cfg.JWTSecret != ""))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// База данных
	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsDir, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	if err := migrator.Close(); err != nil {
		logger.Warn("Failed to close migrator", zap.Error(err))
	}

	// Блокировка слотов: Redis для нескольких реплик, иначе в памяти процесса
	var guard booking.SlotGuard
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Fatal("Failed to connect to Redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		guard = booking.NewRedisGuard(rdb, 0)
		logger.Info("Using Redis slot guard", zap.String("addr", cfg.RedisAddr))
	}

	// Репозитории и внешние клиенты
	sessionRepo := repository.NewSessionRepository(pool)
	api := paxify.NewClient(cfg.PaxifyAPIURL, logger, paxify.WithTimeout(cfg.HTTPTimeout))
	decoder := auth.NewDecoder(cfg.JWTSecret)
	builder := schedule.NewBuilder(cfg.Location(), logger)

	// Сервисы
	authService := service.NewAuthService(api, sessionRepo, decoder, logger)
	scheduleService := service.NewScheduleService(api, sessionRepo, builder, logger)
	doctorService := service.NewDoctorService(api, sessionRepo, logger)
	bookingService := service.NewBookingService(api, decoder, guard, sessionRepo, logger)

	// Фоновые задачи
	scheduler := app.NewScheduler(authService, cfg.CleanupInterval, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	// Telegram
	botInstance, err := bot.New(cfg.TelegramToken,
		bot.WithErrorsHandler(func(err error) {
			logger.Error("Telegram bot error", zap.Error(err))
		}),
	)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController := controller.NewBotController(
		botInstance,
		authService,
		scheduleService,
		doctorService,
		bookingService,
		logger,
	)

	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Warn("Failed to register bot commands menu", zap.Error(err))
	}

	if err := botController.Start(ctx); err != nil {
		logger.Error("Bot stopped with error", zap.Error(err))
	}

	logger.Info("👋 Paxify bot stopped")
}
