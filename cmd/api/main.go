package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/config"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/database"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/handler"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/middleware"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/models"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/repository"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/router"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Department{},
		&models.User{},
		&models.Achievement{},
		&models.AuditLog{},
		&models.PasswordReset{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	var notifier service.Notifier = service.NewLogNotifier(logger)
	if cfg.NATSURL != "" {
		conn, err := nats.Connect(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer conn.Drain()
		notifier = service.NewNATSNotifier(conn, cfg.NATSSubject, logger)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	achievementRepo := repository.NewAchievementRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	resetRepo := repository.NewPasswordResetRepository(db)

	auditService := service.NewAuditService(auditRepo, logger)
	authService := service.NewAuthService(userRepo, resetRepo, validate, auditService, notifier, cfg.JWTSecret, cfg.TokenTTL, logger)
	userService := service.NewUserService(userRepo, departmentRepo, validate, auditService, logger)
	departmentService := service.NewDepartmentService(departmentRepo, validate, logger)
	achievementService := service.NewAchievementService(achievementRepo, userRepo, validate, notifier, auditService, logger)
	reportService := service.NewReportService(achievementRepo, userRepo, departmentRepo, redisClient, cfg.CacheTTL, logger)
	dashboardService := service.NewDashboardService(userRepo, departmentRepo, achievementRepo, auditService, redisClient, cfg.CacheTTL, logger)
	seedService := service.NewSeedService(departmentRepo, userRepo, cfg.SeedEnabled, cfg.SeedToken, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, AllowOrigins: cfg.CORSOrigins})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:        handler.NewAuthHandler(authService, logger),
		UserHandler:        handler.NewUserHandler(userService, logger),
		DepartmentHandler:  handler.NewDepartmentHandler(departmentService, logger),
		AchievementHandler: handler.NewAchievementHandler(achievementService, logger),
		ReportHandler:      handler.NewReportHandler(reportService, logger),
		AuditHandler:       handler.NewAuditHandler(auditService, logger),
		DashboardHandler:   handler.NewDashboardHandler(dashboardService, logger),
		SeedHandler:        handler.NewSeedHandler(seedService, logger),
		JWTMiddleware:      middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
