package schedule

import (
	"context"
	"time"

	"github.com/travelrn/taxtrack/internal/domain"
)

// ReminderOffsets are the fixed lead times, in days before the due date,
// at which each unpaid quarter gets a reminder.
var ReminderOffsets = []int{14, 7, 1}

// Reminder is one scheduled nudge for an unpaid quarter. The engine only
// computes reminders; delivery belongs to a ReminderDelivery collaborator.
type Reminder struct {
	TaxYear  int       `json:"taxYear"`
	Quarter  int       `json:"quarter"`
	DueDate  time.Time `json:"dueDate"`
	RemindAt time.Time `json:"remindAt"`
}

// ReminderDelivery schedules and cancels local reminders. Implemented by
// the surrounding application, not this engine.
type ReminderDelivery interface {
	Schedule(ctx context.Context, reminder Reminder) error
	CancelForQuarter(ctx context.Context, taxYear, quarter int) error
}

// ReminderPlan computes the pending reminders for a set of payments:
// every unpaid quarter gets one entry per offset, skipping times already
// in the past.
func ReminderPlan(payments []domain.QuarterlyPayment, now time.Time) []Reminder {
	var plan []Reminder
	for _, payment := range payments {
		if payment.IsPaid() {
			continue
		}
		for _, days := range ReminderOffsets {
			remindAt := payment.DueDate.AddDate(0, 0, -days)
			if remindAt.Before(now) {
				continue
			}
			plan = append(plan, Reminder{
				TaxYear:  payment.TaxYear,
				Quarter:  payment.Quarter,
				DueDate:  payment.DueDate,
				RemindAt: remindAt,
			})
		}
	}
	return plan
}
