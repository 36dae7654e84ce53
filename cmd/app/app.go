package app

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"

	"github.com/studyhive/studyhive-backend/internal/adapters/config"
	httpController "github.com/studyhive/studyhive-backend/internal/adapters/controller/http"
	"github.com/studyhive/studyhive-backend/internal/adapters/database/postgres"
	"github.com/studyhive/studyhive-backend/internal/domain/service"
	"github.com/studyhive/studyhive-backend/pkg/logger"
	"github.com/studyhive/studyhive-backend/pkg/smtp"
	"gorm.io/gorm"
)

// App holds every long-lived component of the process. It is the single
// construction point: storages and services are built once here and
// injected, never reached through package globals.
type App struct {
	DB        *gorm.DB
	Router    *gin.Engine
	Scheduler *service.Scheduler
	Logger    *logger.Logger
}

func New(cfg *config.Config) (*App, error) {
	appLogger, err := logger.Named("app")
	if err != nil {
		return nil, err
	}
	schedulerLogger, err := logger.Named("scheduler")
	if err != nil {
		return nil, err
	}
	httpLogger, err := logger.Named("http")
	if err != nil {
		return nil, err
	}

	userStorage := postgres.NewUserStorage(cfg.Database)
	eventStorage := postgres.NewEventStorage(cfg.Database)
	alertStorage := postgres.NewAlertStorage(cfg.Database)
	taskStorage := postgres.NewTaskStorage(cfg.Database)

	var mailer *smtp.Client
	if cfg.SMTPDialer != nil {
		mailer = smtp.NewClient(cfg.SMTPDialer)
	}

	authService := service.NewAuthService(
		userStorage,
		cfg.Redis.Sessions,
		viper.GetString("auth.jwt-secret"),
		viper.GetDuration("auth.token-ttl"),
	)
	eventService := service.NewEventService(eventStorage)
	taskService := service.NewTaskService(taskStorage)

	var alertService *service.AlertService
	if mailer != nil {
		alertService = service.NewAlertService(alertStorage, eventStorage, userStorage, mailer, appLogger)
	} else {
		alertService = service.NewAlertService(alertStorage, eventStorage, userStorage, nil, appLogger)
	}

	scheduler := service.NewScheduler(
		eventStorage,
		alertService,
		schedulerLogger,
		viper.GetDuration("scheduler.interval"),
	)

	router := httpController.NewRouter(authService, eventService, alertService, taskService, httpLogger)

	return &App{
		DB:        cfg.Database,
		Router:    router,
		Scheduler: scheduler,
		Logger:    appLogger,
	}, nil
}

// Start launches the scheduler and serves HTTP until the process exits.
func (a *App) Start() error {
	a.Scheduler.Start()
	defer a.Scheduler.Stop()

	addr := viper.GetString("http.address")
	a.Logger.Infof("listening on %s", addr)
	return a.Router.Run(addr)
}
