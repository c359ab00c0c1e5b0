// Package records keeps a local append-only log of intake submissions and
// checkout attempts for reconciliation against the external providers.
// Failures here are logged by callers and never surfaced to the user path.
package records

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS intake_submissions (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT NOT NULL,
	email       TEXT NOT NULL,
	company     TEXT NOT NULL DEFAULT '',
	website     TEXT NOT NULL DEFAULT '',
	goals       TEXT NOT NULL DEFAULT '',
	timeline    TEXT NOT NULL DEFAULT '',
	budget      TEXT NOT NULL DEFAULT '',
	lead_source TEXT NOT NULL DEFAULT '',
	services    TEXT NOT NULL DEFAULT '[]',
	created_at  TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS checkout_attempts (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id      TEXT NOT NULL,
	idempotency_key TEXT NOT NULL UNIQUE,
	buyer_email     TEXT NOT NULL,
	item_count      INTEGER NOT NULL,
	total_cents     INTEGER NOT NULL,
	currency        TEXT NOT NULL,
	outcome         TEXT NOT NULL,
	detail          TEXT NOT NULL DEFAULT '',
	created_at      TIMESTAMP NOT NULL
);
`

type IntakeSubmission struct {
	Name       string    `db:"name"`
	Email      string    `db:"email"`
	Company    string    `db:"company"`
	Website    string    `db:"website"`
	Goals      string    `db:"goals"`
	Timeline   string    `db:"timeline"`
	Budget     string    `db:"budget"`
	LeadSource string    `db:"lead_source"`
	Services   []string  `db:"-"`
	CreatedAt  time.Time `db:"created_at"`
}

type CheckoutAttempt struct {
	SessionID      string    `db:"session_id"`
	IdempotencyKey string    `db:"idempotency_key"`
	BuyerEmail     string    `db:"buyer_email"`
	ItemCount      int       `db:"item_count"`
	TotalCents     int64     `db:"total_cents"`
	Currency       string    `db:"currency"`
	Outcome        string    `db:"outcome"`
	Detail         string    `db:"detail"`
	CreatedAt      time.Time `db:"created_at"`
}

type Store struct {
	db *sqlx.DB
}

// Open connects to the SQLite file at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	db, err := sqlx.Connect("sqlite", fmt.Sprintf("%s?_journal=WAL&_timeout=5000", path))
	if err != nil {
		return nil, fmt.Errorf("connecting to records db: %w", err)
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying records schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("closing records db: %w", err)
	}
	return nil
}

func (s *Store) RecordIntake(ctx context.Context, sub IntakeSubmission) error {
	services, err := json.Marshal(sub.Services)
	if err != nil {
		return fmt.Errorf("marshalling service tags: %w", err)
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO intake_submissions
		(name, email, company, website, goals, timeline, budget, lead_source, services, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = s.db.ExecContext(ctx, query,
		sub.Name, sub.Email, sub.Company, sub.Website, sub.Goals,
		sub.Timeline, sub.Budget, sub.LeadSource, string(services), sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("recording intake submission: %w", err)
	}
	return nil
}

func (s *Store) RecordCheckoutAttempt(ctx context.Context, att CheckoutAttempt) error {
	if att.CreatedAt.IsZero() {
		att.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO checkout_attempts
		(session_id, idempotency_key, buyer_email, item_count, total_cents, currency, outcome, detail, created_at)
		VALUES (:session_id, :idempotency_key, :buyer_email, :item_count, :total_cents, :currency, :outcome, :detail, :created_at)`
	if _, err := s.db.NamedExecContext(ctx, query, att); err != nil {
		return fmt.Errorf("recording checkout attempt: %w", err)
	}
	return nil
}

// CheckoutAttempts returns a session's attempts, newest first.
func (s *Store) CheckoutAttempts(ctx context.Context, sessionID string) ([]CheckoutAttempt, error) {
	var attempts []CheckoutAttempt
	query := `SELECT session_id, idempotency_key, buyer_email, item_count, total_cents, currency, outcome, detail, created_at
		FROM checkout_attempts WHERE session_id = ? ORDER BY id DESC`
	if err := s.db.SelectContext(ctx, &attempts, query, sessionID); err != nil {
		return nil, fmt.Errorf("listing checkout attempts: %w", err)
	}
	return attempts, nil
}

// IntakeCount reports how many intake submissions have been recorded.
func (s *Store) IntakeCount(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM intake_submissions`); err != nil {
		return 0, fmt.Errorf("counting intake submissions: %w", err)
	}
	return n, nil
}
