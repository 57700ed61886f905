package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/messkit/meal-access-service/internal/api/http"
	"github.com/messkit/meal-access-service/internal/api/http/handlers"
	"github.com/messkit/meal-access-service/internal/auth"
	"github.com/messkit/meal-access-service/internal/config"
	"github.com/messkit/meal-access-service/internal/events"
	"github.com/messkit/meal-access-service/internal/mealwindow"
	"github.com/messkit/meal-access-service/internal/observability"
	"github.com/messkit/meal-access-service/internal/persistence"
	"github.com/messkit/meal-access-service/internal/repository"
	"github.com/messkit/meal-access-service/internal/service"
	"github.com/messkit/meal-access-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	accountRepo := repository.NewAccountRepository(pool)
	logRepo := repository.NewMealLogRepository(pool)
	sessionRepo := repository.NewMealSessionRepository(pool)
	tokenStore := repository.NewTokenStore(redis.Client, cfg.Meal.TokenRetention())

	var windowPolicy mealwindow.Policy
	switch cfg.Meal.WindowMode {
	case config.WindowModeTable:
		policy, err := mealwindow.NewTablePolicy(cfg.Meal.Location(),
			cfg.Meal.BreakfastWindow, cfg.Meal.LunchWindow, cfg.Meal.DinnerWindow)
		if err != nil {
			logger.Fatal("invalid meal table config", zap.Error(err))
		}
		windowPolicy = policy
	default:
		windowPolicy = mealwindow.NewSessionPolicy(sessionRepo)
	}

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	authService := service.NewAuthService(cfg.Auth, accountRepo)
	accountService := service.NewAccountService(cfg.Auth, accountRepo)
	logService := service.NewMealLogService(logRepo)
	sessionService := service.NewSessionService(sessionRepo, dispatcher)
	tokenService := service.NewTokenService(service.TokenDependencies{
		Tokens:        tokenStore,
		Window:        windowPolicy,
		Dispatcher:    dispatcher,
		Logger:        logger,
		TTL:           cfg.Meal.TokenTTL(),
		RequireWindow: cfg.Meal.IssueRequireWindow,
	})
	redemptionService := service.NewRedemptionService(service.RedemptionDependencies{
		Tokens:     tokenStore,
		Accounts:   accountRepo,
		Logs:       logRepo,
		Window:     windowPolicy,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
		Location:   cfg.Meal.Location(),
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), accountRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Student:        handlers.NewStudentHandler(tokenService, logService),
		Supervisor:     handlers.NewSupervisorHandler(redemptionService, sessionService),
		Admin:          handlers.NewAdminHandler(accountService, logService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
