package slot

import (
	"context"
	"database/sql"
	"encoding/json"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/KirkDiggler/ow-rando/internal/errors"
	"github.com/KirkDiggler/ow-rando/internal/pkg/clock"
	"github.com/KirkDiggler/ow-rando/internal/repositories/slot/migrations"
	"github.com/KirkDiggler/ow-rando/internal/slotdata"
)

const (
	migrationTable = "schema_migrations"
	migrateUp      = "-- +migrate Up"
	migrateDown    = "-- +migrate Down"
)

// SQLiteConfig holds the configuration for the SQLite repository
type SQLiteConfig struct {
	// Path of the database file; ":memory:" keeps it in process
	Path  string
	Clock clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *SQLiteConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("path", c.Path, vb)
	if c.Clock == nil {
		vb.RequiredField("clock")
	}
	return vb.Build()
}

// SQLiteRepository archives slots in a SQLite database.
type SQLiteRepository struct {
	db    *sql.DB
	clock clock.Clock
}

var _ Repository = (*SQLiteRepository)(nil)

// OpenSQLite opens the database and applies the embedded migrations.
func OpenSQLite(cfg *SQLiteConfig) (*SQLiteRepository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	path := cfg.Path
	if path != ":memory:" {
		path = filepath.Clean(path)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to open sqlite db")
	}
	if path == ":memory:" {
		// every pooled connection would get its own empty database
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to ping sqlite db")
	}
	if err := applyMigrations(db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to run migrations")
	}

	return &SQLiteRepository{db: db, clock: cfg.Clock}, nil
}

// Close closes the database handle.
func (r *SQLiteRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Save upserts a slot
func (r *SQLiteRepository) Save(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
	if err := validateSave(input); err != nil {
		return nil, err
	}

	stored := copySlot(input.Slot)
	stored.CreatedAt = r.clock.Now().UTC()
	stored.ExpiresAt = time.Time{}
	if input.TTL > 0 {
		stored.ExpiresAt = stored.CreatedAt.Add(input.TTL)
	}

	summaryJSON, err := json.Marshal(stored.Summary)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal slot summary")
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO slots (run_id, player, seed, summary, spoiler, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (run_id, player) DO UPDATE SET
		   seed = excluded.seed,
		   summary = excluded.summary,
		   spoiler = excluded.spoiler,
		   created_at = excluded.created_at,
		   expires_at = excluded.expires_at`,
		stored.RunID,
		stored.Player,
		stored.Seed,
		string(summaryJSON),
		stored.Spoiler,
		toMillis(stored.CreatedAt),
		toMillis(stored.ExpiresAt),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to store slot in sqlite")
	}

	return &SaveOutput{Slot: stored}, nil
}

// Get retrieves one player's slot
func (r *SQLiteRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if err := validateGet(input); err != nil {
		return nil, err
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT run_id, player, seed, summary, spoiler, created_at, expires_at
		 FROM slots WHERE run_id = ? AND player = ?`,
		input.RunID, input.Player,
	)
	stored, err := scanSlot(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound(errSlotNotFound)
		}
		return nil, err
	}
	if r.expired(stored) {
		return nil, errors.NotFound("slot has expired")
	}

	return &GetOutput{Slot: stored}, nil
}

// List retrieves every live slot of a run
func (r *SQLiteRepository) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if err := validateRun(input.RunID); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT run_id, player, seed, summary, spoiler, created_at, expires_at
		 FROM slots WHERE run_id = ? ORDER BY player`,
		input.RunID,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list slots from sqlite")
	}
	defer func() { _ = rows.Close() }()

	var slots []*Slot
	for rows.Next() {
		stored, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		if !r.expired(stored) {
			slots = append(slots, stored)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to iterate slots")
	}

	return &ListOutput{Slots: slots}, nil
}

// Delete removes every slot of a run
func (r *SQLiteRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if err := validateRun(input.RunID); err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM slots WHERE run_id = ?`, input.RunID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete slots from sqlite")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to count deleted slots")
	}

	return &DeleteOutput{SlotsDeleted: int(n)}, nil
}

func (r *SQLiteRepository) expired(s *Slot) bool {
	return !s.ExpiresAt.IsZero() && r.clock.Now().After(s.ExpiresAt)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSlot(row rowScanner) (*Slot, error) {
	var (
		stored      Slot
		summaryJSON string
		createdAt   int64
		expiresAt   int64
	)
	err := row.Scan(&stored.RunID, &stored.Player, &stored.Seed, &summaryJSON, &stored.Spoiler, &createdAt, &expiresAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, errors.Wrapf(err, "failed to scan slot")
	}

	var summary slotdata.Summary
	if err := json.Unmarshal([]byte(summaryJSON), &summary); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal slot summary")
	}
	stored.Summary = summary
	stored.CreatedAt = fromMillis(createdAt)
	stored.ExpiresAt = fromMillis(expiresAt)
	return &stored, nil
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

// applyMigrations runs each embedded .sql file once, in name order, and
// records it in the migration table.
func applyMigrations(db *sql.DB, migrationFS fs.FS) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS ` + migrationTable + ` (
		name TEXT PRIMARY KEY,
		applied_at INTEGER NOT NULL
	)`); err != nil {
		return errors.Wrap(err, "failed to ensure migration table")
	}

	entries, err := fs.ReadDir(migrationFS, ".")
	if err != nil {
		return errors.Wrap(err, "failed to read migrations")
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	for _, name := range files {
		var applied int
		if err := db.QueryRow(`SELECT COUNT(1) FROM `+migrationTable+` WHERE name = ?`, name).Scan(&applied); err != nil {
			return errors.Wrapf(err, "failed to check migration %s", name)
		}
		if applied > 0 {
			continue
		}

		content, err := fs.ReadFile(migrationFS, name)
		if err != nil {
			return errors.Wrapf(err, "failed to read migration %s", name)
		}

		tx, err := db.Begin()
		if err != nil {
			return errors.Wrapf(err, "failed to begin migration %s", name)
		}
		if _, err := tx.Exec(upSection(string(content))); err != nil {
			_ = tx.Rollback()
			return errors.Wrapf(err, "failed to apply migration %s", name)
		}
		if _, err := tx.Exec(`INSERT INTO `+migrationTable+` (name, applied_at) VALUES (?, ?)`,
			name, time.Now().UTC().UnixMilli()); err != nil {
			_ = tx.Rollback()
			return errors.Wrapf(err, "failed to record migration %s", name)
		}
		if err := tx.Commit(); err != nil {
			return errors.Wrapf(err, "failed to commit migration %s", name)
		}
	}
	return nil
}

func upSection(content string) string {
	start := strings.Index(content, migrateUp)
	if start == -1 {
		return content
	}
	content = content[start+len(migrateUp):]
	if end := strings.Index(content, migrateDown); end != -1 {
		content = content[:end]
	}
	return content
}
