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
	"github.com/rs/zerolog"

	"github.com/noah-isme/storeroom-go-api/internal/config"
	"github.com/noah-isme/storeroom-go-api/internal/database"
	"github.com/noah-isme/storeroom-go-api/internal/handler"
	"github.com/noah-isme/storeroom-go-api/internal/middleware"
	"github.com/noah-isme/storeroom-go-api/internal/models"
	"github.com/noah-isme/storeroom-go-api/internal/repository"
	"github.com/noah-isme/storeroom-go-api/internal/router"
	"github.com/noah-isme/storeroom-go-api/internal/service"
	"github.com/noah-isme/storeroom-go-api/pkg/signature"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Department{},
		&models.Teacher{},
		&models.Item{},
		&models.Issue{},
		&models.IssueLine{},
		&models.InventoryLog{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	natsConn, err := database.ConnectNATS(cfg.NATSURL)
	if err != nil {
		log.Fatalf("failed to connect to nats: %v", err)
	}
	if natsConn != nil {
		defer natsConn.Close()
	}

	sigStore, err := buildSignatureStore(cfg, logger)
	if err != nil {
		log.Fatalf("failed to configure signature storage: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	itemRepo := repository.NewItemRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	userRepo := repository.NewUserRepository(db)
	issueRepo := repository.NewIssueRepository(db)
	logRepo := repository.NewInventoryLogRepository(db)
	reportRepo := repository.NewReportRepository(db)
	txRunner := repository.NewTxRunner(db)

	ledger := service.NewLedger(logger)
	alerter := service.NewStockAlerter(natsConn, logger)

	itemService := service.NewItemService(txRunner, itemRepo, ledger, validate, logger)
	inventoryService := service.NewInventoryService(txRunner, itemRepo, logRepo, ledger, alerter, logger)
	issueService := service.NewIssueService(txRunner, teacherRepo, issueRepo, ledger, sigStore, alerter, logger)
	teacherService := service.NewTeacherService(teacherRepo, departmentRepo, validate, logger)
	reportService := service.NewReportService(reportRepo, itemRepo, redisClient, cfg.ReportCacheTTL, logger)
	pairingService := service.NewPairingService(redisClient, cfg.PairingTTL, logger)
	seeder := service.NewSeeder(userRepo, departmentRepo, teacherRepo, txRunner, ledger, logger)

	itemHandler := handler.NewItemHandler(itemService, logger)
	inventoryHandler := handler.NewInventoryHandler(inventoryService, logger)
	issueHandler := handler.NewIssueHandler(issueService, logger)
	teacherHandler := handler.NewTeacherHandler(teacherService, logger)
	reportHandler := handler.NewReportHandler(reportService, logger)
	pairingHandler := handler.NewPairingHandler(pairingService, logger)
	seedHandler := handler.NewSeedHandler(seeder, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		ItemHandler:      itemHandler,
		InventoryHandler: inventoryHandler,
		IssueHandler:     issueHandler,
		TeacherHandler:   teacherHandler,
		ReportHandler:    reportHandler,
		PairingHandler:   pairingHandler,
		SeedHandler:      seedHandler,
		JWTMiddleware:    middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func buildSignatureStore(cfg config.Config, logger zerolog.Logger) (signature.Store, error) {
	if cfg.SignatureBackend == config.SignatureBackendCloudinary {
		return signature.NewCloudinaryStore(signature.CloudinaryConfig{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryUploadFolder,
		}, logger)
	}
	return signature.NewDiskStore(cfg.SignatureDir, logger)
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
