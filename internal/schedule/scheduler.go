// Package schedule generates and tracks IRS quarterly estimated payment
// obligations for a tax year.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/travelrn/taxtrack/internal/domain"
	"github.com/travelrn/taxtrack/internal/store"
)

// Scheduler owns quarterly payment generation and mutation for a single
// persistence store.
type Scheduler struct {
	Store store.PaymentStore
}

// NewScheduler creates a scheduler over the given payment store.
func NewScheduler(paymentStore store.PaymentStore) *Scheduler {
	return &Scheduler{Store: paymentStore}
}

// DueDates returns the four IRS estimated payment due dates for a tax
// year. The schedule is irregular: April 15, June 15, and September 15 of
// the tax year, then January 15 of the following year for Q4.
func DueDates(taxYear int) [4]time.Time {
	return [4]time.Time{
		time.Date(taxYear, time.April, 15, 0, 0, 0, 0, time.UTC),
		time.Date(taxYear, time.June, 15, 0, 0, 0, 0, time.UTC),
		time.Date(taxYear, time.September, 15, 0, 0, 0, 0, time.UTC),
		time.Date(taxYear+1, time.January, 15, 0, 0, 0, 0, time.UTC),
	}
}

// Apportion splits an amount into n equal cent-precision parts. Leftover
// cents go to the earliest parts so the parts always sum to the
// cent-rounded total exactly.
func Apportion(total decimal.Decimal, n int) []decimal.Decimal {
	if n <= 0 {
		return nil
	}
	if total.LessThan(decimal.Zero) {
		total = decimal.Zero
	}

	cents := total.Round(2).Shift(2).IntPart()
	base := cents / int64(n)
	remainder := cents % int64(n)

	parts := make([]decimal.Decimal, n)
	for i := range parts {
		c := base
		if int64(i) < remainder {
			c++
		}
		parts[i] = decimal.New(c, -2)
	}
	return parts
}

// BuildSchedule generates the four quarterly payment records for a tax
// year from an annual obligation. Pure; nothing is persisted.
func BuildSchedule(taxYear int, obligation domain.TaxObligationResult) []domain.QuarterlyPayment {
	dueDates := DueDates(taxYear)
	estimates := Apportion(obligation.TotalTax, 4)
	federal := Apportion(obligation.FederalTax, 4)
	state := Apportion(obligation.StateTax, 4)

	payments := make([]domain.QuarterlyPayment, 4)
	for i := range payments {
		payments[i] = domain.QuarterlyPayment{
			TaxYear:         taxYear,
			Quarter:         i + 1,
			DueDate:         dueDates[i],
			EstimatedAmount: estimates[i],
			PaidAmount:      decimal.Zero,
			FederalPortion:  federal[i],
			StatePortion:    state[i],
		}
	}
	return payments
}

// EnsureSchedule generates and persists the year's payment records on
// first access. Existing records are never regenerated: once any payment
// exists for the year its history is authoritative, and the call returns
// the existing records alongside store.ErrScheduleExists so callers can
// tell a fresh schedule from a preserved one.
func (s *Scheduler) EnsureSchedule(ctx context.Context, taxYear int, obligation domain.TaxObligationResult) ([]domain.QuarterlyPayment, error) {
	existing, err := s.Store.PaymentsForYear(ctx, taxYear)
	if err == nil {
		return existing, store.ErrScheduleExists
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to load schedule for %d: %w", taxYear, err)
	}

	payments := BuildSchedule(taxYear, obligation)
	if err := s.Store.SaveSchedule(ctx, payments); err != nil {
		return nil, fmt.Errorf("failed to save schedule for %d: %w", taxYear, err)
	}
	return payments, nil
}

// RecordPayment applies a payment against one quarter. Amounts accumulate
// across recordings; a non-positive amount is a caller bug and leaves the
// record untouched. The paid flag latches once cumulative payments cover
// the estimate.
func (s *Scheduler) RecordPayment(ctx context.Context, taxYear, quarter int, amount decimal.Decimal, paidAt time.Time, notes string) (domain.QuarterlyPayment, error) {
	if quarter < 1 || quarter > 4 {
		return domain.QuarterlyPayment{}, fmt.Errorf("invalid quarter %d: must be 1-4", quarter)
	}

	payments, err := s.Store.PaymentsForYear(ctx, taxYear)
	if err != nil {
		return domain.QuarterlyPayment{}, fmt.Errorf("no schedule for %d: %w", taxYear, err)
	}

	for _, payment := range payments {
		if payment.Quarter != quarter {
			continue
		}

		if amount.LessThanOrEqual(decimal.Zero) {
			return payment, nil
		}

		payment.PaidAmount = payment.PaidAmount.Add(amount)
		payment.PaidDate = &paidAt
		if payment.PaidAmount.GreaterThanOrEqual(payment.EstimatedAmount) {
			payment.Paid = true
		}
		if notes != "" {
			if payment.Notes != "" {
				payment.Notes += "\n"
			}
			payment.Notes += notes
		}

		if err := s.Store.UpdatePayment(ctx, payment); err != nil {
			return domain.QuarterlyPayment{}, fmt.Errorf("failed to update Q%d: %w", quarter, err)
		}
		return payment, nil
	}

	return domain.QuarterlyPayment{}, fmt.Errorf("quarter %d not found for %d: %w", quarter, taxYear, store.ErrNotFound)
}

// Summarize aggregates a year's payments into totals, counts, and an
// overall progress fraction clamped to [0,1].
func Summarize(payments []domain.QuarterlyPayment, now time.Time) domain.PaymentSummary {
	summary := domain.PaymentSummary{
		TotalEstimated: decimal.Zero,
		TotalPaid:      decimal.Zero,
		Remaining:      decimal.Zero,
		Progress:       decimal.Zero,
	}
	if len(payments) == 0 {
		return summary
	}

	summary.TaxYear = payments[0].TaxYear
	for _, payment := range payments {
		summary.TotalEstimated = summary.TotalEstimated.Add(payment.EstimatedAmount)
		summary.TotalPaid = summary.TotalPaid.Add(payment.PaidAmount)
		switch payment.Status(now) {
		case domain.StatusPaid:
			summary.QuartersPaid++
		case domain.StatusOverdue:
			summary.QuartersOverdue++
		}
	}

	summary.Remaining = summary.TotalEstimated.Sub(summary.TotalPaid)
	if summary.Remaining.LessThan(decimal.Zero) {
		summary.Remaining = decimal.Zero
	}

	if summary.TotalEstimated.GreaterThan(decimal.Zero) {
		progress := summary.TotalPaid.Div(summary.TotalEstimated)
		if progress.GreaterThan(decimal.NewFromInt(1)) {
			progress = decimal.NewFromInt(1)
		}
		if progress.LessThan(decimal.Zero) {
			progress = decimal.Zero
		}
		summary.Progress = progress
	}
	return summary
}
