package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/segyhp/loan-ledger/internal/config"
	"github.com/segyhp/loan-ledger/internal/domain"
	"github.com/segyhp/loan-ledger/internal/notify"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// jobTimeout bounds a single run of any job
const jobTimeout = 5 * time.Minute

// LedgerReader is the part of the loan service the jobs need
type LedgerReader interface {
	GetDashboard(ctx context.Context) (*domain.Dashboard, error)
	UpcomingReminders(ctx context.Context) ([]*domain.Reminder, error)
}

type Jobs struct {
	ledger   LedgerReader
	notifier notify.Notifier
	log      logrus.FieldLogger
}

func NewJobs(ledger LedgerReader, notifier notify.Notifier, log logrus.FieldLogger) *Jobs {
	return &Jobs{
		ledger:   ledger,
		notifier: notifier,
		log:      log,
	}
}

// Register schedules every job on c
func (j *Jobs) Register(c *cron.Cron, cfg *config.Config) error {
	if _, err := c.AddFunc(cfg.Scheduler.OverdueScanCron, j.wrap("overdue_scan", j.ScanOverdue)); err != nil {
		return err
	}

	if _, err := c.AddFunc(cfg.Scheduler.ReminderCron, j.wrap("reminders", func(ctx context.Context) error {
		_, err := j.SendReminders(ctx)
		return err
	})); err != nil {
		return err
	}

	return nil
}

func (j *Jobs) wrap(name string, run func(ctx context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		started := time.Now()
		log := j.log.WithField("job", name)
		log.Info("job started")

		if err := run(ctx); err != nil {
			log.WithError(err).Error("job failed")
			return
		}
		log.WithField("duration", time.Since(started).String()).Info("job finished")
	}
}

// ScanOverdue logs the current overdue position of the portfolio
func (j *Jobs) ScanOverdue(ctx context.Context) error {
	dashboard, err := j.ledger.GetDashboard(ctx)
	if err != nil {
		return err
	}

	entry := j.log.WithFields(logrus.Fields{
		"today":            dashboard.Today.Format("2006-01-02"),
		"overdue_count":    dashboard.OverdueCount,
		"total_overdue":    dashboard.TotalOverdue.StringFixed(2),
		"total_to_receive": dashboard.TotalToReceive.StringFixed(2),
	})
	if dashboard.OverdueCount > 0 {
		entry.Warn("overdue installments found")
	} else {
		entry.Info("no overdue installments")
	}
	return nil
}

// SendReminders sends one message per client with upcoming installments.
// Clients without an email are skipped. Delivery failures do not stop the
// remaining clients; they are returned joined.
func (j *Jobs) SendReminders(ctx context.Context) (int, error) {
	reminders, err := j.ledger.UpcomingReminders(ctx)
	if err != nil {
		return 0, err
	}

	var order []int64
	byClient := make(map[int64][]*domain.Reminder)
	for _, reminder := range reminders {
		id := reminder.Client.ID
		if _, seen := byClient[id]; !seen {
			order = append(order, id)
		}
		byClient[id] = append(byClient[id], reminder)
	}

	sent := 0
	var errs []error
	for _, id := range order {
		group := byClient[id]
		client := group[0].Client
		if client.Email == "" {
			j.log.WithField("client_id", client.ID).Debug("client has no email, reminder skipped")
			continue
		}

		if err := j.notifier.Send(ctx, notify.ReminderMessage(client, group)); err != nil {
			errs = append(errs, err)
			continue
		}
		sent++
	}

	j.log.WithFields(logrus.Fields{
		"clients": len(order),
		"sent":    sent,
	}).Info("reminders processed")

	return sent, errors.Join(errs...)
}
