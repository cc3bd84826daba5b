// Package sqlite provides a SQLite-backed implementation of the store
// interfaces. The database is opened in WAL mode and the schema is
// auto-migrated on New.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/travelrn/taxtrack/internal/domain"
	"github.com/travelrn/taxtrack/internal/store"
)

// Store implements store.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a SQLite store at dbPath. Use ":memory:" for an in-memory
// database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS quarterly_payments (
		tax_year INTEGER NOT NULL,
		quarter INTEGER NOT NULL,
		due_date TEXT NOT NULL,
		estimated_amount TEXT NOT NULL,
		paid_amount TEXT NOT NULL,
		paid_date TEXT,
		federal_portion TEXT NOT NULL,
		state_portion TEXT NOT NULL,
		notes TEXT,
		paid INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (tax_year, quarter)
	);

	CREATE TABLE IF NOT EXISTS tax_home_compliance (
		tax_year INTEGER PRIMARY KEY,
		days_at_tax_home INTEGER NOT NULL DEFAULT 0,
		last_tax_home_visit TEXT,
		checklist_json TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// PaymentsForYear returns the year's payments ordered by quarter.
func (s *Store) PaymentsForYear(ctx context.Context, taxYear int) ([]domain.QuarterlyPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT tax_year, quarter, due_date, estimated_amount, paid_amount,
		       paid_date, federal_portion, state_portion, notes, paid
		FROM quarterly_payments WHERE tax_year = ? ORDER BY quarter`, taxYear)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	var payments []domain.QuarterlyPayment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(payments) == 0 {
		return nil, store.ErrNotFound
	}
	return payments, nil
}

// SaveSchedule writes a freshly generated schedule atomically, refusing
// to overwrite any existing record for the year.
func (s *Store) SaveSchedule(ctx context.Context, payments []domain.QuarterlyPayment) error {
	if len(payments) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM quarterly_payments WHERE tax_year = ?`,
		payments[0].TaxYear).Scan(&count); err != nil {
		return fmt.Errorf("failed to check existing schedule: %w", err)
	}
	if count > 0 {
		return store.ErrScheduleExists
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, p := range payments {
		var paidDate *string
		if p.PaidDate != nil {
			formatted := p.PaidDate.UTC().Format(time.RFC3339)
			paidDate = &formatted
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO quarterly_payments
				(tax_year, quarter, due_date, estimated_amount, paid_amount,
				 paid_date, federal_portion, state_portion, notes, paid,
				 created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.TaxYear, p.Quarter, p.DueDate.UTC().Format(time.RFC3339),
			p.EstimatedAmount.String(), p.PaidAmount.String(), paidDate,
			p.FederalPortion.String(), p.StatePortion.String(), p.Notes,
			boolToInt(p.Paid), now, now)
		if err != nil {
			return fmt.Errorf("failed to insert payment Q%d: %w", p.Quarter, err)
		}
	}

	return tx.Commit()
}

// UpdatePayment replaces the record matching the payment's year+quarter.
func (s *Store) UpdatePayment(ctx context.Context, payment domain.QuarterlyPayment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var paidDate *string
	if payment.PaidDate != nil {
		formatted := payment.PaidDate.UTC().Format(time.RFC3339)
		paidDate = &formatted
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE quarterly_payments
		SET paid_amount = ?, paid_date = ?, notes = ?, paid = ?, updated_at = ?
		WHERE tax_year = ? AND quarter = ?`,
		payment.PaidAmount.String(), paidDate, payment.Notes,
		boolToInt(payment.Paid), time.Now().UTC().Format(time.RFC3339),
		payment.TaxYear, payment.Quarter)
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ComplianceForYear returns the year's compliance record.
func (s *Store) ComplianceForYear(ctx context.Context, taxYear int) (*domain.TaxHomeCompliance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		record        domain.TaxHomeCompliance
		lastVisit     sql.NullString
		checklistJSON string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT tax_year, days_at_tax_home, last_tax_home_visit, checklist_json
		FROM tax_home_compliance WHERE tax_year = ?`, taxYear).
		Scan(&record.TaxYear, &record.DaysAtTaxHome, &lastVisit, &checklistJSON)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query compliance: %w", err)
	}

	if lastVisit.Valid {
		visit, err := time.Parse(time.RFC3339, lastVisit.String)
		if err != nil {
			return nil, fmt.Errorf("corrupt last visit date: %w", err)
		}
		record.LastTaxHomeVisit = &visit
	}
	if err := json.Unmarshal([]byte(checklistJSON), &record.ChecklistItems); err != nil {
		return nil, fmt.Errorf("corrupt checklist: %w", err)
	}
	return &record, nil
}

// SaveCompliance inserts or replaces the record for its tax year.
func (s *Store) SaveCompliance(ctx context.Context, record *domain.TaxHomeCompliance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	checklistJSON, err := json.Marshal(record.ChecklistItems)
	if err != nil {
		return fmt.Errorf("failed to encode checklist: %w", err)
	}

	var lastVisit *string
	if record.LastTaxHomeVisit != nil {
		formatted := record.LastTaxHomeVisit.UTC().Format(time.RFC3339)
		lastVisit = &formatted
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO tax_home_compliance
			(tax_year, days_at_tax_home, last_tax_home_visit, checklist_json, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(tax_year) DO UPDATE SET
			days_at_tax_home = excluded.days_at_tax_home,
			last_tax_home_visit = excluded.last_tax_home_visit,
			checklist_json = excluded.checklist_json,
			updated_at = excluded.updated_at`,
		record.TaxYear, record.DaysAtTaxHome, lastVisit, string(checklistJSON),
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save compliance: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPayment(row rowScanner) (domain.QuarterlyPayment, error) {
	var (
		p         domain.QuarterlyPayment
		dueDate   string
		estimated string
		paid      string
		paidDate  sql.NullString
		federal   string
		state     string
		notes     sql.NullString
		paidFlag  int
	)
	if err := row.Scan(&p.TaxYear, &p.Quarter, &dueDate, &estimated, &paid,
		&paidDate, &federal, &state, &notes, &paidFlag); err != nil {
		return p, fmt.Errorf("failed to scan payment: %w", err)
	}

	var err error
	if p.DueDate, err = time.Parse(time.RFC3339, dueDate); err != nil {
		return p, fmt.Errorf("corrupt due date: %w", err)
	}
	if p.EstimatedAmount, err = decimal.NewFromString(estimated); err != nil {
		return p, fmt.Errorf("corrupt estimated amount: %w", err)
	}
	if p.PaidAmount, err = decimal.NewFromString(paid); err != nil {
		return p, fmt.Errorf("corrupt paid amount: %w", err)
	}
	if p.FederalPortion, err = decimal.NewFromString(federal); err != nil {
		return p, fmt.Errorf("corrupt federal portion: %w", err)
	}
	if p.StatePortion, err = decimal.NewFromString(state); err != nil {
		return p, fmt.Errorf("corrupt state portion: %w", err)
	}
	if paidDate.Valid {
		when, err := time.Parse(time.RFC3339, paidDate.String)
		if err != nil {
			return p, fmt.Errorf("corrupt paid date: %w", err)
		}
		p.PaidDate = &when
	}
	p.Notes = notes.String
	p.Paid = paidFlag != 0
	return p, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
