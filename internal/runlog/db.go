package runlog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/aleister1102/kkupeople/internal/models"
)

// DB records how each scrape run ended. This is the only place that
// distinguishes "the directory has zero profiles" from "the run failed";
// the JSON output is an empty array either way.
type DB struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewDB opens (and if needed creates) the run history database.
func NewDB(dataSourceName string, log zerolog.Logger) (*DB, error) {
	dbDir := filepath.Dir(dataSourceName)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create run log directory %s: %w", dbDir, err)
	}

	dbInstance, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("sql.Open failed for %s: %w", dataSourceName, err)
	}

	db := &DB{
		db:     dbInstance,
		logger: log.With().Str("component", "RunLog").Logger(),
	}
	if err := db.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize run log schema: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

func (d *DB) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS run_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT UNIQUE NOT NULL,
		started_at DATETIME NOT NULL,
		finished_at DATETIME,
		status TEXT NOT NULL,
		links_found INTEGER DEFAULT 0,
		records_found INTEGER DEFAULT 0,
		failed_items INTEGER DEFAULT 0,
		error_summary TEXT
	);
	`
	_, err := d.db.Exec(query)
	return err
}

// StartRun inserts a new run in RUNNING state.
func (d *DB) StartRun(runID string, startedAt time.Time) error {
	_, err := d.db.Exec(
		`INSERT INTO run_history (run_id, started_at, status) VALUES (?, ?, ?)`,
		runID, startedAt.UTC(), string(models.RunStatusRunning),
	)
	if err != nil {
		return fmt.Errorf("failed to record run start: %w", err)
	}
	d.logger.Debug().Str("run_id", runID).Msg("Run recorded as started")
	return nil
}

// FinishRun records a run's terminal state and counters.
func (d *DB) FinishRun(summary models.RunSummary) error {
	result, err := d.db.Exec(
		`UPDATE run_history
		 SET finished_at = ?, status = ?, links_found = ?, records_found = ?, failed_items = ?, error_summary = ?
		 WHERE run_id = ?`,
		summary.FinishedAt.UTC(), string(summary.Status),
		summary.LinksFound, summary.RecordsFound, summary.FailedItems,
		summary.ErrorSummary, summary.RunID,
	)
	if err != nil {
		return fmt.Errorf("failed to record run finish: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return fmt.Errorf("run '%s' was never started", summary.RunID)
	}
	d.logger.Info().
		Str("run_id", summary.RunID).
		Str("status", string(summary.Status)).
		Int("records", summary.RecordsFound).
		Msg("Run recorded as finished")
	return nil
}

// GetRun fetches one run by ID.
func (d *DB) GetRun(runID string) (*models.RunSummary, error) {
	row := d.db.QueryRow(
		`SELECT run_id, started_at, finished_at, status, links_found, records_found, failed_items, error_summary
		 FROM run_history WHERE run_id = ?`, runID,
	)

	var summary models.RunSummary
	var finishedAt sql.NullTime
	var errorSummary sql.NullString
	var status string
	err := row.Scan(&summary.RunID, &summary.StartedAt, &finishedAt, &status,
		&summary.LinksFound, &summary.RecordsFound, &summary.FailedItems, &errorSummary)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read run '%s': %w", runID, err)
	}

	summary.Status = models.RunStatus(status)
	if finishedAt.Valid {
		summary.FinishedAt = finishedAt.Time
	}
	if errorSummary.Valid {
		summary.ErrorSummary = errorSummary.String
	}
	return &summary, nil
}

// RecentRuns returns up to limit runs, newest first.
func (d *DB) RecentRuns(limit int) ([]models.RunSummary, error) {
	rows, err := d.db.Query(
		`SELECT run_id, started_at, finished_at, status, links_found, records_found, failed_items, error_summary
		 FROM run_history ORDER BY started_at DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var summaries []models.RunSummary
	for rows.Next() {
		var summary models.RunSummary
		var finishedAt sql.NullTime
		var errorSummary sql.NullString
		var status string
		if err := rows.Scan(&summary.RunID, &summary.StartedAt, &finishedAt, &status,
			&summary.LinksFound, &summary.RecordsFound, &summary.FailedItems, &errorSummary); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		summary.Status = models.RunStatus(status)
		if finishedAt.Valid {
			summary.FinishedAt = finishedAt.Time
		}
		if errorSummary.Valid {
			summary.ErrorSummary = errorSummary.String
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}
