package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/segyhp/loan-ledger/internal/config"
	"github.com/segyhp/loan-ledger/internal/notify"
	"github.com/segyhp/loan-ledger/internal/repository"
	"github.com/segyhp/loan-ledger/internal/scheduler"
	"github.com/segyhp/loan-ledger/internal/service"
	"github.com/segyhp/loan-ledger/pkg/logger"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.New("info", "json").WithError(err).Fatal("failed to load configuration")
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log.Info("starting ledger scheduler")

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	loanService := service.NewLoanService(
		repository.NewClientRepository(db),
		repository.NewLoanRepository(db),
		repository.NewInstallmentRepository(db),
		log,
		cfg,
	)

	var notifier notify.Notifier = notify.NewLogNotifier(log)
	if cfg.MailEnabled() {
		notifier = notify.NewEmailSender(cfg.Mail, log)
	}

	// Initialize cron scheduler
	c := cron.New(
		cron.WithParser(config.CronParser),
		cron.WithLocation(cfg.Location()),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)

	// Schedule tasks
	if err := scheduler.NewJobs(loanService, notifier, log).Register(c, cfg); err != nil {
		log.WithError(err).Fatal("failed to schedule jobs")
	}

	// Start the scheduler
	c.Start()
	log.WithFields(logrus.Fields{
		"overdue_scan": cfg.Scheduler.OverdueScanCron,
		"reminders":    cfg.Scheduler.ReminderCron,
		"timezone":     cfg.Scheduler.Timezone,
		"mail_enabled": cfg.MailEnabled(),
	}).Info("scheduler started")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down scheduler")
	<-c.Stop().Done()
	log.Info("scheduler stopped")
}
