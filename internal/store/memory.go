package store

import (
	"context"
	"sort"
	"sync"

	"github.com/travelrn/taxtrack/internal/domain"
)

// MemoryStore is an in-memory Store for tests and ephemeral runs.
type MemoryStore struct {
	mu         sync.RWMutex
	payments   map[int][]domain.QuarterlyPayment
	compliance map[int]domain.TaxHomeCompliance
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		payments:   make(map[int][]domain.QuarterlyPayment),
		compliance: make(map[int]domain.TaxHomeCompliance),
	}
}

// PaymentsForYear returns copies of the year's payments ordered by quarter.
func (ms *MemoryStore) PaymentsForYear(_ context.Context, taxYear int) ([]domain.QuarterlyPayment, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	stored, ok := ms.payments[taxYear]
	if !ok || len(stored) == 0 {
		return nil, ErrNotFound
	}

	out := make([]domain.QuarterlyPayment, len(stored))
	copy(out, stored)
	sort.Slice(out, func(i, j int) bool { return out[i].Quarter < out[j].Quarter })
	return out, nil
}

// SaveSchedule stores a new schedule, refusing to overwrite an existing one.
func (ms *MemoryStore) SaveSchedule(_ context.Context, payments []domain.QuarterlyPayment) error {
	if len(payments) == 0 {
		return nil
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	taxYear := payments[0].TaxYear
	if existing, ok := ms.payments[taxYear]; ok && len(existing) > 0 {
		return ErrScheduleExists
	}

	stored := make([]domain.QuarterlyPayment, len(payments))
	copy(stored, payments)
	ms.payments[taxYear] = stored
	return nil
}

// UpdatePayment replaces the stored record for the payment's year+quarter.
func (ms *MemoryStore) UpdatePayment(_ context.Context, payment domain.QuarterlyPayment) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	stored, ok := ms.payments[payment.TaxYear]
	if !ok {
		return ErrNotFound
	}
	for i := range stored {
		if stored[i].Quarter == payment.Quarter {
			stored[i] = payment
			return nil
		}
	}
	return ErrNotFound
}

// ComplianceForYear returns a copy of the year's compliance record.
func (ms *MemoryStore) ComplianceForYear(_ context.Context, taxYear int) (*domain.TaxHomeCompliance, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	record, ok := ms.compliance[taxYear]
	if !ok {
		return nil, ErrNotFound
	}

	out := record
	out.ChecklistItems = make([]domain.ComplianceChecklistItem, len(record.ChecklistItems))
	copy(out.ChecklistItems, record.ChecklistItems)
	return &out, nil
}

// SaveCompliance inserts or replaces the record for its tax year.
func (ms *MemoryStore) SaveCompliance(_ context.Context, record *domain.TaxHomeCompliance) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	stored := *record
	stored.ChecklistItems = make([]domain.ComplianceChecklistItem, len(record.ChecklistItems))
	copy(stored.ChecklistItems, record.ChecklistItems)
	ms.compliance[record.TaxYear] = stored
	return nil
}
