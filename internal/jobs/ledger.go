package jobs

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"sarpipe/internal/config"
	"sarpipe/internal/pbs"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Submission is one recorded queue acceptance.
type Submission struct {
	ID          int64
	RunID       string
	Stage       string
	UnitKey     string
	ScriptPath  string
	Handle      pbs.JobHandle
	DependsOn   []pbs.JobHandle
	SubmittedAt time.Time
}

// Ledger persists submissions in SQLite. It backs the at-most-once
// guarantee: a unit already recorded for a run is never submitted again.
type Ledger struct {
	db   *sql.DB
	path string
}

// OpenLedger initializes or connects to the submission database.
func OpenLedger(cfg *config.Config) (*Ledger, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.BatchJobDir, "submissions.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	ledger := &Ledger{db: db, path: dbPath}
	if err := ledger.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return ledger, nil
}

// Close closes the underlying database connection.
func (l *Ledger) Close() error {
	if l == nil || l.db == nil {
		return nil
	}
	return l.db.Close()
}

// Path returns the database file location.
func (l *Ledger) Path() string { return l.path }

// Record stores one accepted submission.
func (l *Ledger) Record(ctx context.Context, sub Submission) error {
	deps := make([]string, 0, len(sub.DependsOn))
	for _, dep := range sub.DependsOn {
		deps = append(deps, string(dep))
	}
	_, err := l.db.ExecContext(
		ctx,
		`INSERT INTO submissions (run_id, stage, unit_key, script_path, handle, depends_on, submitted_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sub.RunID,
		sub.Stage,
		sub.UnitKey,
		sub.ScriptPath,
		string(sub.Handle),
		strings.Join(deps, ":"),
		sub.SubmittedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record submission %s/%s: %w", sub.Stage, sub.UnitKey, err)
	}
	return nil
}

// Lookup returns the recorded submission for a unit, if any.
func (l *Ledger) Lookup(ctx context.Context, runID, stage, unitKey string) (*Submission, error) {
	row := l.db.QueryRowContext(
		ctx,
		`SELECT id, run_id, stage, unit_key, script_path, handle, depends_on, submitted_at
         FROM submissions WHERE run_id = ? AND stage = ? AND unit_key = ?`,
		runID, stage, unitKey,
	)
	sub, err := scanSubmission(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup submission: %w", err)
	}
	return sub, nil
}

// ByRun returns every submission recorded for a run, in submission order.
func (l *Ledger) ByRun(ctx context.Context, runID string) ([]Submission, error) {
	rows, err := l.db.QueryContext(
		ctx,
		`SELECT id, run_id, stage, unit_key, script_path, handle, depends_on, submitted_at
         FROM submissions WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var subs []Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		subs = append(subs, *sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}
	return subs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (*Submission, error) {
	var sub Submission
	var handle, dependsOn, submittedAt string
	if err := row.Scan(&sub.ID, &sub.RunID, &sub.Stage, &sub.UnitKey, &sub.ScriptPath, &handle, &dependsOn, &submittedAt); err != nil {
		return nil, err
	}
	sub.Handle = pbs.JobHandle(handle)
	for _, dep := range strings.Split(dependsOn, ":") {
		if dep != "" {
			sub.DependsOn = append(sub.DependsOn, pbs.JobHandle(dep))
		}
	}
	if parsed, err := time.Parse(time.RFC3339Nano, submittedAt); err == nil {
		sub.SubmittedAt = parsed
	}
	return &sub, nil
}

type migration struct {
	version string
	sql     string
}

func loadMigrations() ([]migration, error) {
	entries, err := migrationFS.ReadDir("migrations")
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}
	versions := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		versions = append(versions, entry.Name())
	}
	sort.Strings(versions)

	migrations := make([]migration, 0, len(versions))
	for _, name := range versions {
		data, err := migrationFS.ReadFile("migrations/" + name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		migrations = append(migrations, migration{version: strings.TrimSuffix(name, ".sql"), sql: string(data)})
	}
	return migrations, nil
}

func (l *Ledger) applyMigrations(ctx context.Context) error {
	migrations, err := loadMigrations()
	if err != nil {
		return err
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY)"); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}

	for _, m := range migrations {
		var count int
		row := tx.QueryRowContext(ctx, "SELECT COUNT(1) FROM schema_migrations WHERE version = ?", m.version)
		if err := row.Scan(&count); err != nil {
			return fmt.Errorf("scan migration version: %w", err)
		}
		if count > 0 {
			continue
		}
		if _, err := tx.ExecContext(ctx, m.sql); err != nil {
			return fmt.Errorf("apply migration %s: %w", m.version, err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", m.version); err != nil {
			return fmt.Errorf("record migration %s: %w", m.version, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migrations: %w", err)
	}
	return nil
}
