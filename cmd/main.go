package main

import (
	"context"
	"time"

	"facility-backend/config"
	"facility-backend/middleware"
	"facility-backend/utils"

	// Repositories
	asset_repositories "facility-backend/assets/repositories"
	import_repositories "facility-backend/imports/repositories"
	maintenance_repositories "facility-backend/maintenance/repositories"
	report_repositories "facility-backend/reports/repositories"
	reservation_repositories "facility-backend/reservations/repositories"
	setup_repositories "facility-backend/setup/repositories"
	users_repositories "facility-backend/users/repositories"

	// Services
	import_services "facility-backend/imports/services"
	maintenance_services "facility-backend/maintenance/services"

	// Routes
	asset_routes "facility-backend/assets/routes"
	import_routes "facility-backend/imports/routes"
	maintenance_routes "facility-backend/maintenance/routes"
	report_routes "facility-backend/reports/routes"
	reservation_routes "facility-backend/reservations/routes"
	setup_routes "facility-backend/setup/routes"
	user_routes "facility-backend/users/routes"

	// WebSocket
	"facility-backend/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

func main() {
	// Initialize Zap logger
	config.InitLogger()

	// Load environment variables
	if err := godotenv.Load(".env"); err != nil {
		config.Logger.Warn("No .env file found, using process environment")
	}

	app := fiber.New()

	// Apply CORS middleware from middleware package
	middleware.InitCors(app)

	// Initialize database and configs
	db := config.ConfigureDatabase()
	ctx := context.Background()
	redisClient := config.InitRedisServer(ctx)

	// Initialize the mailer
	utils.InitializeMailer()

	// Date location
	if err := utils.InitializeDateLocation(); err != nil {
		config.Logger.Fatal("Failed to initialize date location", zap.Error(err))
	}

	// ------ WebSocket Hub Initialization for Import Progress ------
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Serve static files (generated exports and error reports)
	app.Static("/public", "./public")

	// Repositories
	userRepo := users_repositories.NewUserRepository(db)
	assetRepo := asset_repositories.NewAssetRepository(db)
	importErrorRepo := import_repositories.NewImportErrorRepository(db)
	maintenanceRepo := maintenance_repositories.NewMaintenanceRepository(db)
	reservationRepo := reservation_repositories.NewReservationRepository(db)
	reportRepo := report_repositories.NewReportRepository(db)
	orgRepo := setup_repositories.NewOrganizationRepository(db)

	// Import pipeline: progress snapshots fan out to websocket clients after
	// every state change.
	progress := import_services.NewProgressReporter(func(s import_services.ProgressState) {
		wsHub.BroadcastImportProgress(s)
		if s.JustCompleted {
			wsHub.BroadcastImportDone(s)
		}
	})
	dispatcher := import_services.NewEmailDispatcher(utils.GetMailer(), import_services.DefaultSendInterval, config.Logger)
	pipeline := import_services.NewImportPipeline(userRepo, assetRepo, importErrorRepo, dispatcher, progress, config.Logger)

	wsHandler := websocket.NewWsHandler(wsHub)

	// Routes
	setup_routes.InitSetupRoutes(app, orgRepo, userRepo, db)
	user_routes.InitUserRoutes(app, userRepo, orgRepo, pipeline, progress, redisClient)
	asset_routes.InitAssetRoutes(app, assetRepo, orgRepo, pipeline, redisClient)
	maintenance_routes.InitMaintenanceRoutes(app, maintenanceRepo, redisClient)
	reservation_routes.InitReservationRoutes(app, reservationRepo, redisClient)
	report_routes.InitReportRoutes(app, reportRepo, userRepo, assetRepo, maintenanceRepo, reservationRepo)
	import_routes.InitImportRoutes(app, importErrorRepo, progress, wsHandler)

	// ------ Scheduled jobs ------
	reminderService := maintenance_services.NewReminderService(maintenanceRepo, utils.GetMailer(), importErrorRepo, config.Logger)

	scheduler := cron.New()
	if _, err := scheduler.AddFunc("0 8 * * *", reminderService.SendDueReminders); err != nil {
		config.Logger.Fatal("Failed to schedule maintenance reminders", zap.Error(err))
	}
	if _, err := scheduler.AddFunc("30 0 * * *", reminderService.MarkOverdue); err != nil {
		config.Logger.Fatal("Failed to schedule overdue sweep", zap.Error(err))
	}
	if _, err := scheduler.AddFunc("45 0 * * *", func() {
		if _, err := reservationRepo.ExpirePastReservations(time.Now()); err != nil {
			config.Logger.Error("Failed to expire past reservations", zap.Error(err))
		}
	}); err != nil {
		config.Logger.Fatal("Failed to schedule reservation expiry", zap.Error(err))
	}
	scheduler.Start()

	// Background cleanup of generated files and cached lists
	go utils.RunScheduledCleanup(redisClient)

	port := config.GetEnvOrDefault("PORT", "8080")
	config.Logger.Info("Starting server", zap.String("port", port))
	if err := app.Listen(":" + port); err != nil {
		config.Logger.Fatal("Server stopped", zap.Error(err))
	}
}
