package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/segyhp/loan-ledger/internal/domain"
	"github.com/segyhp/loan-ledger/pkg/utils"

	"github.com/sirupsen/logrus"
)

// Message is a plain-text notification for a single recipient
type Message struct {
	To      string
	Subject string
	Text    string
}

// Notifier delivers messages to clients
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// LogNotifier only logs messages; used when no mail server is configured
type LogNotifier struct {
	log logrus.FieldLogger
}

func NewLogNotifier(log logrus.FieldLogger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Send(_ context.Context, msg Message) error {
	n.log.WithFields(logrus.Fields{
		"to":      msg.To,
		"subject": msg.Subject,
	}).Info("notification not sent, mail disabled")
	return nil
}

// ReminderMessage builds one message listing every upcoming installment of
// a client. All reminders must belong to the same client.
func ReminderMessage(client *domain.Client, reminders []*domain.Reminder) Message {
	var body strings.Builder
	fmt.Fprintf(&body, "Dear %s,\n\n", client.Name)

	if len(reminders) == 1 {
		body.WriteString("The following installment is due soon:\n\n")
	} else {
		body.WriteString("The following installments are due soon:\n\n")
	}

	for _, reminder := range reminders {
		fmt.Fprintf(&body, "  Loan %d, installment %d: %s due on %s\n",
			reminder.Loan.ID,
			reminder.Installment.Number,
			reminder.Installment.Amount.StringFixed(2),
			reminder.Installment.DueDate.Format(utils.DateFormat),
		)
	}

	body.WriteString("\nPlease disregard this message if the payment was already made.\n")

	return Message{
		To:      client.Email,
		Subject: "Upcoming installment reminder",
		Text:    body.String(),
	}
}
