// Package sqlite provides the SQLite-backed session archive.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/ersonp/microscope-solo/internal/domain/entities"
	"github.com/ersonp/microscope-solo/internal/infrastructure/config"
)

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// Repository implements ports.Archive using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository opens the archive at cfg.Path.
func NewRepository(cfg config.ArchiveConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("archive path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// One connection: the CLI is the only writer and :memory: databases
	// are per connection.
	db.SetMaxOpenConns(1)

	pragmas := []struct {
		stmt string
		what string
	}{
		{"PRAGMA journal_mode = WAL", "enabling WAL mode"},
		{"PRAGMA busy_timeout = 5000", "setting busy timeout"},
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p.stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", p.what, err)
		}
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- Snapshot after every successful operation
	CREATE TABLE IF NOT EXISTS session_versions (
		id TEXT PRIMARY KEY,
		version INTEGER NOT NULL UNIQUE,
		action TEXT NOT NULL,
		phase TEXT NOT NULL,
		turn_counter INTEGER NOT NULL DEFAULT 0,
		data TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_session_versions_action ON session_versions(action);

	-- Audit log (one row per operation, including failed ones)
	CREATE TABLE IF NOT EXISTS audit_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		action TEXT NOT NULL,
		element_id TEXT,
		details TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_audit_log_element ON audit_log(element_id);
	CREATE INDEX IF NOT EXISTS idx_audit_log_action ON audit_log(action);
	`

	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// SaveVersion stores a snapshot version. A missing ID or timestamp is filled in.
func (r *Repository) SaveVersion(ctx context.Context, v *entities.SessionVersion) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = timeNow().UTC()
	}

	query := `
		INSERT INTO session_versions (id, version, action, phase, turn_counter, data, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		v.ID,
		v.Version,
		v.Action,
		v.Phase,
		v.TurnCounter,
		string(v.Data),
		v.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving session version: %w", err)
	}
	return nil
}

const versionColumns = `id, version, action, phase, turn_counter, data, created_at`

// FindVersions returns up to limit versions, newest first. A limit of 0
// returns all of them.
func (r *Repository) FindVersions(ctx context.Context, limit int) ([]entities.SessionVersion, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `SELECT ` + versionColumns + ` FROM session_versions ORDER BY version DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying session versions: %w", err)
	}
	defer rows.Close()

	versions := make([]entities.SessionVersion, 0, 16)
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, err
		}
		versions = append(versions, *v)
	}
	return versions, rows.Err()
}

// FindVersion returns one version, or nil if it does not exist.
func (r *Repository) FindVersion(ctx context.Context, version int) (*entities.SessionVersion, error) {
	query := `SELECT ` + versionColumns + ` FROM session_versions WHERE version = ?`
	return r.findOneVersion(ctx, query, version)
}

// FindLatestVersion returns the newest version, or nil if there is none.
func (r *Repository) FindLatestVersion(ctx context.Context) (*entities.SessionVersion, error) {
	query := `SELECT ` + versionColumns + ` FROM session_versions ORDER BY version DESC LIMIT 1`
	return r.findOneVersion(ctx, query)
}

func (r *Repository) findOneVersion(ctx context.Context, query string, args ...any) (*entities.SessionVersion, error) {
	v, err := scanVersion(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return v, err
}

// CountVersions counts stored versions.
func (r *Repository) CountVersions(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM session_versions`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting versions: %w", err)
	}
	return count, nil
}

// PruneVersions deletes all but the newest keep versions. keep <= 0 is a no-op.
func (r *Repository) PruneVersions(ctx context.Context, keep int) (int, error) {
	if keep <= 0 {
		return 0, nil
	}
	query := `
		DELETE FROM session_versions
		WHERE version NOT IN (
			SELECT version FROM session_versions ORDER BY version DESC LIMIT ?
		)
	`
	res, err := r.db.ExecContext(ctx, query, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning versions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("pruning versions: %w", err)
	}
	return int(n), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVersion(row rowScanner) (*entities.SessionVersion, error) {
	var v entities.SessionVersion
	var data string

	err := row.Scan(
		&v.ID,
		&v.Version,
		&v.Action,
		&v.Phase,
		&v.TurnCounter,
		&data,
		&v.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning session version: %w", err)
	}

	if !json.Valid([]byte(data)) {
		return nil, fmt.Errorf("session version %d holds invalid JSON", v.Version)
	}
	v.Data = json.RawMessage(data)

	return &v, nil
}

// LogAction logs an action to the audit log.
func (r *Repository) LogAction(ctx context.Context, action string, elementID string, details map[string]any) error {
	var detailsJSON sql.NullString
	if details != nil {
		data, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("marshaling details: %w", err)
		}
		detailsJSON = sql.NullString{String: string(data), Valid: true}
	}

	var elementIDValue sql.NullString
	if elementID != "" {
		elementIDValue = sql.NullString{String: elementID, Valid: true}
	}

	query := `INSERT INTO audit_log (action, element_id, details, created_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, action, elementIDValue, detailsJSON, timeNow().UTC())
	if err != nil {
		return fmt.Errorf("logging action: %w", err)
	}
	return nil
}

// FindAuditLog returns up to limit entries, newest first.
func (r *Repository) FindAuditLog(ctx context.Context, limit int) ([]entities.AuditEntry, error) {
	query := `
		SELECT id, action, element_id, details, created_at
		FROM audit_log
		ORDER BY id DESC
		LIMIT ?
	`
	return r.queryAuditLog(ctx, query, limitOrAll(limit))
}

// FindAuditLogByAction returns up to limit entries for one action, newest first.
func (r *Repository) FindAuditLogByAction(ctx context.Context, action string, limit int) ([]entities.AuditEntry, error) {
	query := `
		SELECT id, action, element_id, details, created_at
		FROM audit_log
		WHERE action = ?
		ORDER BY id DESC
		LIMIT ?
	`
	return r.queryAuditLog(ctx, query, action, limitOrAll(limit))
}

// limitOrAll maps a non-positive limit to SQLite's "no limit".
func limitOrAll(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}

func (r *Repository) queryAuditLog(ctx context.Context, query string, args ...any) ([]entities.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying audit log: %w", err)
	}
	defer rows.Close()

	entries := []entities.AuditEntry{}
	for rows.Next() {
		var entry entities.AuditEntry
		var elementID, details sql.NullString

		if err := rows.Scan(
			&entry.ID,
			&entry.Action,
			&elementID,
			&details,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}

		entry.ElementID = elementID.String

		if details.Valid && details.String != "" {
			if err := json.Unmarshal([]byte(details.String), &entry.Details); err != nil {
				return nil, fmt.Errorf("unmarshaling details: %w", err)
			}
		}

		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
