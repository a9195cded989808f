package scheduler_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/segyhp/loan-ledger/internal/config"
	"github.com/segyhp/loan-ledger/internal/domain"
	"github.com/segyhp/loan-ledger/internal/notify"
	"github.com/segyhp/loan-ledger/internal/scheduler"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLedger struct {
	dashboard *domain.Dashboard
	reminders []*domain.Reminder
	err       error
}

func (f *fakeLedger) GetDashboard(context.Context) (*domain.Dashboard, error) {
	return f.dashboard, f.err
}

func (f *fakeLedger) UpcomingReminders(context.Context) ([]*domain.Reminder, error) {
	return f.reminders, f.err
}

type fakeNotifier struct {
	sent []notify.Message
	fail map[string]bool
}

func (f *fakeNotifier) Send(_ context.Context, msg notify.Message) error {
	if f.fail[msg.To] {
		return errors.New("mailbox unavailable")
	}
	f.sent = append(f.sent, msg)
	return nil
}

func reminder(client *domain.Client, loanID int64, number int) *domain.Reminder {
	return &domain.Reminder{
		Client: client,
		Loan:   &domain.Loan{ID: loanID, ClientID: client.ID},
		Installment: &domain.Installment{
			LoanID:  loanID,
			Number:  number,
			DueDate: time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC),
			Amount:  decimal.NewFromInt(340),
		},
	}
}

func TestSendReminders(t *testing.T) {
	maria := &domain.Client{ID: 1, Name: "Maria", Email: "maria@example.com"}
	joao := &domain.Client{ID: 2, Name: "João", Email: "joao@example.com"}
	noEmail := &domain.Client{ID: 3, Name: "Ana"}

	ledger := &fakeLedger{reminders: []*domain.Reminder{
		reminder(maria, 1, 2),
		reminder(noEmail, 3, 1),
		reminder(joao, 2, 1),
		reminder(maria, 4, 5),
	}}

	t.Run("one message per client with email", func(t *testing.T) {
		notifier := &fakeNotifier{}
		log, _ := test.NewNullLogger()
		jobs := scheduler.NewJobs(ledger, notifier, log)

		sent, err := jobs.SendReminders(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, sent)
		require.Len(t, notifier.sent, 2)
		assert.Equal(t, "maria@example.com", notifier.sent[0].To)
		assert.Contains(t, notifier.sent[0].Text, "Loan 1, installment 2")
		assert.Contains(t, notifier.sent[0].Text, "Loan 4, installment 5")
		assert.Equal(t, "joao@example.com", notifier.sent[1].To)
	})

	t.Run("failures do not stop other clients", func(t *testing.T) {
		notifier := &fakeNotifier{fail: map[string]bool{"maria@example.com": true}}
		log, _ := test.NewNullLogger()
		jobs := scheduler.NewJobs(ledger, notifier, log)

		sent, err := jobs.SendReminders(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mailbox unavailable")
		assert.Equal(t, 1, sent)
		require.Len(t, notifier.sent, 1)
		assert.Equal(t, "joao@example.com", notifier.sent[0].To)
	})

	t.Run("ledger failure", func(t *testing.T) {
		log, _ := test.NewNullLogger()
		jobs := scheduler.NewJobs(&fakeLedger{err: errors.New("db down")}, &fakeNotifier{}, log)

		_, err := jobs.SendReminders(context.Background())
		assert.EqualError(t, err, "db down")
	})
}

func TestScanOverdue(t *testing.T) {
	log, hook := test.NewNullLogger()
	jobs := scheduler.NewJobs(&fakeLedger{dashboard: &domain.Dashboard{
		Today:          time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		TotalOverdue:   decimal.NewFromInt(680),
		TotalToReceive: decimal.NewFromInt(1020),
		OverdueCount:   2,
	}}, &fakeNotifier{}, log)

	require.NoError(t, jobs.ScanOverdue(context.Background()))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, 2, entry.Data["overdue_count"])
	assert.Equal(t, "680.00", entry.Data["total_overdue"])
}

func TestRegister(t *testing.T) {
	log, _ := test.NewNullLogger()
	jobs := scheduler.NewJobs(&fakeLedger{}, &fakeNotifier{}, log)
	c := cron.New(cron.WithParser(config.CronParser))

	cfg := &config.Config{Scheduler: config.SchedulerConfig{
		OverdueScanCron: "0 0 6 * * *",
		ReminderCron:    "@daily",
	}}
	require.NoError(t, jobs.Register(c, cfg))
	assert.Len(t, c.Entries(), 2)

	cfg.Scheduler.ReminderCron = "not a spec"
	assert.Error(t, jobs.Register(cron.New(cron.WithParser(config.CronParser)), cfg))
}
