package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is derived from a payment's paid state and due date,
// never stored.
type PaymentStatus string

const (
	StatusPaid     PaymentStatus = "paid"
	StatusOverdue  PaymentStatus = "overdue"
	StatusDueSoon  PaymentStatus = "due_soon"
	StatusUpcoming PaymentStatus = "upcoming"
)

// DueSoonWindow is how far ahead of the due date an unpaid quarter is
// flagged as due soon.
const DueSoonWindow = 30 * 24 * time.Hour

// QuarterlyPayment is one of the four estimated payments owed for a tax
// year. Records are created once by the scheduler and mutated only by
// recording payments against them.
type QuarterlyPayment struct {
	TaxYear         int             `json:"taxYear"`
	Quarter         int             `json:"quarter"` // 1..4
	DueDate         time.Time       `json:"dueDate"`
	EstimatedAmount decimal.Decimal `json:"estimatedAmount"`
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	PaidDate        *time.Time      `json:"paidDate,omitempty"`
	FederalPortion  decimal.Decimal `json:"federalPortion"`
	StatePortion    decimal.Decimal `json:"statePortion"`
	Notes           string          `json:"notes,omitempty"`
	Paid            bool            `json:"paid"`
}

// IsPaid reports whether the quarter is satisfied, either via the explicit
// flag set on recording or because cumulative payments cover the estimate.
func (qp QuarterlyPayment) IsPaid() bool {
	return qp.Paid || qp.PaidAmount.GreaterThanOrEqual(qp.EstimatedAmount)
}

// RemainingAmount returns the unpaid balance, floored at zero.
func (qp QuarterlyPayment) RemainingAmount() decimal.Decimal {
	remaining := qp.EstimatedAmount.Sub(qp.PaidAmount)
	if remaining.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return remaining
}

// Status derives the payment state at the given instant. Paid is terminal
// and wins regardless of date.
func (qp QuarterlyPayment) Status(now time.Time) PaymentStatus {
	if qp.IsPaid() {
		return StatusPaid
	}
	if now.After(qp.DueDate) {
		return StatusOverdue
	}
	if qp.DueDate.Sub(now) <= DueSoonWindow {
		return StatusDueSoon
	}
	return StatusUpcoming
}

// PaymentSummary aggregates a tax year's four quarterly payments.
type PaymentSummary struct {
	TaxYear         int             `json:"taxYear"`
	TotalEstimated  decimal.Decimal `json:"totalEstimated"`
	TotalPaid       decimal.Decimal `json:"totalPaid"`
	Remaining       decimal.Decimal `json:"remaining"`
	QuartersPaid    int             `json:"quartersPaid"`
	QuartersOverdue int             `json:"quartersOverdue"`
	// Progress is TotalPaid/TotalEstimated clamped to [0,1];
	// zero when nothing is estimated.
	Progress decimal.Decimal `json:"progress"`
}
