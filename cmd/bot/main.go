package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Faton6/Worker-checker/internal/app"
	"github.com/Faton6/Worker-checker/internal/infra/config"
	idb "github.com/Faton6/Worker-checker/internal/infra/database"
	"github.com/Faton6/Worker-checker/internal/infra/logger"
	"github.com/Faton6/Worker-checker/internal/infra/scheduler"
	itelegram "github.com/Faton6/Worker-checker/internal/infra/telegram"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	logger.Init(cfg)
	log := logger.Get().WithField("component", "main")
	log.WithFields(logrus.Fields{
		"environment": cfg.Environment,
		"timezone":    cfg.Location.String(),
		"base_time":   cfg.DefaultSchedule.Base.String(),
	}).Info("Configuration loaded")

	// Database
	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to database: %v", err)
	}
	defer db.Close()
	if err := idb.EnsureSchema(db); err != nil {
		log.Fatalf("FATAL: Could not ensure database schema: %v", err)
	}
	log.Info("Database connection established")

	// Repositories
	employeeRepo := idb.NewPostgresEmployeeRepository(db)
	statusRepo := idb.NewPostgresStatusRepository(db)
	scheduleRepo := idb.NewPostgresScheduleRepository(db)

	// Telegram bot
	pref := telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) {
			entry := logger.Get().WithField("component", "telebot").WithError(err)
			if c != nil && c.Sender() != nil {
				entry = entry.WithField("sender_id", c.Sender().ID)
			}
			entry.Error("Update handling failed")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		log.Fatalf("FATAL: Could not create Telegram bot: %v", err)
	}
	client := itelegram.NewTelebotAdapter(bot)

	// Services
	employeeService := app.NewEmployeeService(employeeRepo, logger.Get().WithField("component", "employee_service"))
	statusService := app.NewStatusService(employeeRepo, statusRepo, client,
		logger.Get().WithField("component", "status_service"), cfg.Location)
	reportService := app.NewReportService(employeeRepo, statusRepo, client,
		logger.Get().WithField("component", "report_service"), cfg.Location)

	// Scheduler: persisted triggers win over the configured default.
	statusScheduler := scheduler.NewStatusScheduler(statusService, reportService,
		logger.Get().WithField("component", "scheduler"), cfg.Location)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	triggers, err := scheduleRepo.Load(ctx)
	if err != nil {
		if !errors.Is(err, idb.ErrScheduleNotFound) {
			log.Fatalf("FATAL: Could not load schedule: %v", err)
		}
		triggers = cfg.DefaultSchedule.Triggers()
		if err := scheduleRepo.Save(ctx, triggers); err != nil {
			log.Fatalf("FATAL: Could not persist default schedule: %v", err)
		}
		log.Info("Default schedule persisted")
	}
	if err := statusScheduler.Start(triggers); err != nil {
		log.Fatalf("FATAL: Could not start scheduler: %v", err)
	}

	adminService := app.NewAdminService(employeeRepo, scheduleRepo, statusScheduler, client,
		logger.Get().WithField("component", "admin_service"), cfg.DefaultSchedule.ReminderDelay)

	// Handlers
	handlers := itelegram.NewHandlers(ctx, itelegram.NewFlowStore(),
		employeeService, statusService, adminService, reportService,
		logger.Get().WithField("component", "handlers"))
	handlers.Register(bot)

	if err := bot.SetCommands([]telebot.Command{
		{Text: "start", Description: "Регистрация в системе"},
		{Text: "status", Description: "Проверить или изменить статус"},
		{Text: "admin", Description: "Панель администратора"},
		{Text: "help", Description: "Справка по командам"},
		{Text: "delete_me", Description: "Удалить свою регистрацию"},
	}); err != nil {
		log.WithError(err).Warn("Could not set bot command menu")
	}

	log.Info("Application setup complete. Bot and scheduler are starting...")
	go bot.Start()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down application...")
	cancel()
	bot.Stop()
	statusScheduler.Stop()
	log.Info("Application shut down gracefully.")
}
