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
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/config"
	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/database"
	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/handler"
	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/middleware"
	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/models"
	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/repository"
	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/router"
	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/service"
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
		&models.User{},
		&models.Student{},
		&models.Teacher{},
		&models.Grade{},
		&models.ScheduleEntry{},
		&models.NewsPost{},
		&models.ShopProduct{},
		&models.LibraryBook{},
		&models.Material{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = nats.Connect(cfg.NATSURL)
		if err != nil {
			// Live broadcast is best effort. Persistence does not depend on it.
			logger.Warn().Err(err).Msg("nats unavailable, audit broadcast disabled")
		} else {
			defer natsConn.Drain()
		}
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	auditRepo := repository.NewAuditLogRepository(db)
	userRepo := repository.NewUserRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	gradeRepo := repository.NewGradeRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	newsRepo := repository.NewNewsRepository(db)
	shopRepo := repository.NewShopProductRepository(db)
	libraryRepo := repository.NewLibraryBookRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	recorder := service.NewAuditRecorder(auditRepo, natsConn, cfg.AuditQueueSize, logger)

	authService := service.NewAuthService(userRepo, recorder, validate, cfg.JWTSecret, logger)
	studentService := service.NewStudentService(studentRepo, recorder, validate, logger)
	teacherService := service.NewTeacherService(teacherRepo, recorder, validate, logger)
	gradeService := service.NewGradeService(gradeRepo, studentRepo, recorder, validate, logger)
	scheduleService := service.NewScheduleService(scheduleRepo, recorder, validate, logger)
	newsService := service.NewNewsService(newsRepo, recorder, validate, logger)
	shopService := service.NewShopService(shopRepo, recorder, validate, logger)
	libraryService := service.NewLibraryService(libraryRepo, recorder, validate, logger)
	materialService := service.NewMaterialService(materialRepo, recorder, validate, logger)
	auditQueryService := service.NewAuditQueryService(auditRepo, logger)
	dashboardService := service.NewDashboardService(statsRepo, redisClient, cfg.DashboardCacheTTL, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		Recorder:  recorder,
		Auth:      handler.NewAuthHandler(authService, logger),
		Students:  handler.NewStudentHandler(studentService, logger),
		Teachers:  handler.NewTeacherHandler(teacherService, logger),
		Grades:    handler.NewGradeHandler(gradeService, logger),
		Schedule:  handler.NewScheduleHandler(scheduleService, logger),
		News:      handler.NewNewsHandler(newsService, logger),
		Shop:      handler.NewShopHandler(shopService, logger),
		Library:   handler.NewLibraryHandler(libraryService, logger),
		Materials: handler.NewMaterialHandler(materialService, logger),
		Audit:     handler.NewAdminAuditHandler(auditQueryService, logger),
		Dashboard: handler.NewDashboardHandler(dashboardService, logger),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app, recorder)
}

func waitForShutdown(app *fiber.App, recorder service.AuditRecorder) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	// Flush queued audit events before exit.
	recorder.Close()

	log.Println("server stopped")
}
