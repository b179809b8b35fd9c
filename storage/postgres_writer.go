package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"airbnb-rooms-scraper/models"
	"airbnb-rooms-scraper/utils"
)

const schema = `
CREATE TABLE IF NOT EXISTS listing_records (
	id              SERIAL PRIMARY KEY,
	run_id          UUID         NOT NULL,
	listing_id      TEXT         NOT NULL,
	source_url      TEXT         NOT NULL,
	property_type   TEXT         NOT NULL,
	person_capacity INTEGER      NOT NULL DEFAULT 0,
	record          JSONB        NOT NULL,
	scraped_at      TIMESTAMP    NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_listing_records_run     ON listing_records (run_id);
CREATE INDEX IF NOT EXISTS idx_listing_records_listing ON listing_records (listing_id);

CREATE TABLE IF NOT EXISTS listing_failures (
	id         SERIAL PRIMARY KEY,
	run_id     UUID      NOT NULL,
	url        TEXT      NOT NULL,
	reason     TEXT      NOT NULL,
	attempts   INTEGER   NOT NULL,
	message    TEXT,
	failed_at  TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_listing_failures_run ON listing_failures (run_id);
`

// PostgresWriter stores records and failures of every run in PostgreSQL
type PostgresWriter struct {
	db     *sql.DB
	logger *utils.Logger
	now    func() time.Time
}

// NewPostgresWriter opens the database and pings it
func NewPostgresWriter(connStr string, logger *utils.Logger) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open DB: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Minute * 5)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	logger.Info("Connected to PostgreSQL successfully")
	return NewPostgresWriterFromDB(db, logger), nil
}

// NewPostgresWriterFromDB wraps an open database handle
func NewPostgresWriterFromDB(db *sql.DB, logger *utils.Logger) *PostgresWriter {
	return &PostgresWriter{db: db, logger: logger, now: time.Now}
}

// CreateTables creates the record and failure tables if they don't exist
func (w *PostgresWriter) CreateTables(ctx context.Context) error {
	if _, err := w.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	w.logger.Info("Tables 'listing_records' and 'listing_failures' are ready")
	return nil
}

// Save inserts the whole run in a single transaction
func (w *PostgresWriter) Save(ctx context.Context, runID string, result *models.BatchResult) (err error) {
	id, err := uuid.Parse(runID)
	if err != nil {
		return fmt.Errorf("invalid run id %q: %w", runID, err)
	}
	if result.Total() == 0 {
		return nil
	}

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := w.now()
	if err = insertRecords(ctx, tx, id, now, result.Successes); err != nil {
		return err
	}
	if err = insertFailures(ctx, tx, id, now, result.Failures); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	w.logger.Info("Stored run %s in PostgreSQL: %d records, %d failures", runID, len(result.Successes), len(result.Failures))
	return nil
}

func insertRecords(ctx context.Context, tx *sql.Tx, runID uuid.UUID, now time.Time, records []models.ListingRecord) error {
	if len(records) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO listing_records (run_id, listing_id, source_url, property_type, person_capacity, record, scraped_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare record insert: %w", err)
	}
	defer stmt.Close()

	for i := range records {
		l := &records[i]
		doc, err := json.Marshal(l)
		if err != nil {
			return fmt.Errorf("failed to encode record %s: %w", l.SourceURL, err)
		}
		if _, err := stmt.ExecContext(ctx, runID.String(), l.ListingID, l.SourceURL, l.PropertyType, l.PersonCapacity, doc, now); err != nil {
			return fmt.Errorf("failed to insert record %s: %w", l.SourceURL, err)
		}
	}
	return nil
}

func insertFailures(ctx context.Context, tx *sql.Tx, runID uuid.UUID, now time.Time, failures []models.Failure) error {
	if len(failures) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO listing_failures (run_id, url, reason, attempts, message, failed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare failure insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range failures {
		if _, err := stmt.ExecContext(ctx, runID.String(), f.URL, string(f.Reason), f.Attempts, f.Message, now); err != nil {
			return fmt.Errorf("failed to insert failure %s: %w", f.URL, err)
		}
	}
	return nil
}

// Close closes the database connection
func (w *PostgresWriter) Close() error {
	if w.db == nil {
		return nil
	}
	return w.db.Close()
}
