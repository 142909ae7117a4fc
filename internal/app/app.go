package app

import (
	"context"

	"roomkeeper/config"
	"roomkeeper/internal/database"
	"roomkeeper/internal/handlers/middleware"
	"roomkeeper/internal/jobs"
	"roomkeeper/internal/repositories"
	"roomkeeper/internal/services"

	authController "roomkeeper/internal/controllers/auth"
	cleaningController "roomkeeper/internal/controllers/cleaning"
	notificationController "roomkeeper/internal/controllers/notifications"
	roomController "roomkeeper/internal/controllers/rooms"

	logger "github.com/Bparsons0904/goLogger"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Config     config.Config

	// Services
	TransactionService    *services.TransactionService
	ImagingService        *services.ImagingService
	SchedulerService      *services.SchedulerService
	ExpiryNotifierService *services.ExpiryNotifierService

	// Repositories
	UserRepo         repositories.UserRepository
	RoomRepo         repositories.RoomRepository
	SessionRepo      repositories.SessionRepository
	DirtyReportRepo  repositories.DirtyReportRepository
	NotificationRepo repositories.NotificationRepository

	// Controllers
	AuthController         authController.AuthControllerInterface
	CleaningController     cleaningController.CleaningControllerInterface
	RoomController         roomController.RoomControllerInterface
	NotificationController notificationController.NotificationControllerInterface
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	repos := repositories.New(db)

	transactionService := services.NewTransactionService(db)
	imagingService := services.NewImagingService(config)
	schedulerService := services.NewSchedulerService()
	expiryNotifierService := services.NewExpiryNotifierService(
		repos.Room,
		repos.Session,
		repos.DirtyReport,
		repos.Notification,
	)

	middleware := middleware.New(db, config, repos)
	authController := authController.New(repos.User, config)
	cleaningController := cleaningController.New(
		repos.Room,
		repos.Session,
		repos.DirtyReport,
		transactionService,
		imagingService,
	)
	roomController := roomController.New(repos.Room, repos.Session, repos.DirtyReport, repos.User)
	notificationController := notificationController.New(repos.Notification)

	if config.SchedulerEnabled {
		if err := jobs.RegisterAllJobs(schedulerService, config, expiryNotifierService); err != nil {
			return &App{}, log.Err("failed to register jobs", err)
		}
		if err := schedulerService.Start(context.Background()); err != nil {
			return &App{}, log.Err("failed to start scheduler", err)
		}
	}

	app := &App{
		Database:               db,
		Config:                 config,
		Middleware:             middleware,
		TransactionService:     transactionService,
		ImagingService:         imagingService,
		SchedulerService:       schedulerService,
		ExpiryNotifierService:  expiryNotifierService,
		UserRepo:               repos.User,
		RoomRepo:               repos.Room,
		SessionRepo:            repos.Session,
		DirtyReportRepo:        repos.DirtyReport,
		NotificationRepo:       repos.Notification,
		AuthController:         authController,
		CleaningController:     cleaningController,
		RoomController:         roomController,
		NotificationController: notificationController,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.TransactionService,
		a.ImagingService,
		a.SchedulerService,
		a.ExpiryNotifierService,
		a.UserRepo,
		a.RoomRepo,
		a.SessionRepo,
		a.DirtyReportRepo,
		a.NotificationRepo,
		a.AuthController,
		a.CleaningController,
		a.RoomController,
		a.NotificationController,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.SchedulerService != nil {
		if closeErr := a.SchedulerService.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
