// Package store defines persistence for the per-tax-year records the
// engine mutates: quarterly payment schedules and tax-home compliance.
// The engine only depends on these interfaces; implementations live in
// memory.go (tests) and sqlite/ (production).
package store

import (
	"context"
	"errors"

	"github.com/travelrn/taxtrack/internal/domain"
)

var (
	// ErrNotFound is returned when no record exists for the tax year.
	ErrNotFound = errors.New("record not found")

	// ErrScheduleExists guards against regenerating a payment schedule
	// over recorded payment history.
	ErrScheduleExists = errors.New("payment schedule already exists for tax year")
)

// PaymentStore persists a tax year's quarterly payment records.
// A schedule is written once via SaveSchedule; individual payments are
// then only ever mutated through UpdatePayment.
type PaymentStore interface {
	// PaymentsForYear returns the year's payments ordered by quarter,
	// or ErrNotFound when no schedule exists.
	PaymentsForYear(ctx context.Context, taxYear int) ([]domain.QuarterlyPayment, error)

	// SaveSchedule writes a freshly generated schedule. Returns
	// ErrScheduleExists if any payment already exists for the year.
	SaveSchedule(ctx context.Context, payments []domain.QuarterlyPayment) error

	// UpdatePayment replaces the record matching the payment's tax year
	// and quarter. Returns ErrNotFound when it does not exist.
	UpdatePayment(ctx context.Context, payment domain.QuarterlyPayment) error
}

// ComplianceStore persists the per-year tax home compliance aggregate.
type ComplianceStore interface {
	// ComplianceForYear returns the year's record or ErrNotFound.
	ComplianceForYear(ctx context.Context, taxYear int) (*domain.TaxHomeCompliance, error)

	// SaveCompliance inserts or replaces the record for its tax year.
	SaveCompliance(ctx context.Context, record *domain.TaxHomeCompliance) error
}

// Store combines all persistence used by the engine.
type Store interface {
	PaymentStore
	ComplianceStore
}
