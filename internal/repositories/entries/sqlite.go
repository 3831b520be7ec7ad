package entries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/sayitbetter/journalsync/internal/common"
	"github.com/sayitbetter/journalsync/internal/dbx"
	"github.com/sayitbetter/journalsync/internal/models"
	"github.com/sayitbetter/journalsync/internal/repositories/entries/migrations"
)

// tsFormat is fixed-width (nanoseconds always printed, never trimmed), so
// UTC timestamps order lexicographically and the ts column works as a
// plain string index. RFC3339Nano would not do: it drops trailing
// fractional zeros, which breaks string ordering within a second.
const tsFormat = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteRepository implements Repository on a local SQLite database.
// Entries are stored as JSON payloads with the id, timestamp and tombstone
// flag broken out into indexed columns.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository returns a repository bound to the given database.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// InitDatabase opens the SQLite database at dsn and applies pending
// migrations.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return nil, fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Entry, error) {
	return r.query(ctx, `SELECT payload FROM entries ORDER BY ts DESC`)
}

func (r *SQLiteRepository) GetActive(ctx context.Context) ([]models.Entry, error) {
	return r.query(ctx, `SELECT payload FROM entries WHERE deleted = 0 ORDER BY ts DESC`)
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id models.EntryID) (*models.Entry, error) {
	row := r.db.QueryRowContext(ctx, `SELECT payload FROM entries WHERE id = ?`, string(id))
	var payload []byte
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", common.ErrEntryNotFound, id)
		}
		return nil, err
	}
	var e models.Entry
	if err := json.Unmarshal(payload, &e); err != nil {
		return nil, fmt.Errorf("decoding stored entry %s: %w", id, err)
	}
	return &e, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, e models.Entry) error {
	return save(ctx, r.db, e)
}

func (r *SQLiteRepository) SoftDelete(ctx context.Context, id models.EntryID) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		row := tx.QueryRowContext(ctx, `SELECT payload FROM entries WHERE id = ?`, string(id))
		var payload []byte
		if err := row.Scan(&payload); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: %s", common.ErrEntryNotFound, id)
			}
			return err
		}
		var e models.Entry
		if err := json.Unmarshal(payload, &e); err != nil {
			return fmt.Errorf("decoding stored entry %s: %w", id, err)
		}
		return save(ctx, tx, e.Tombstone())
	})
}

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, entries []models.Entry) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM entries`); err != nil {
			return fmt.Errorf("clearing entries: %w", err)
		}
		for _, e := range entries {
			if err := save(ctx, tx, e); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) PurgeTombstones(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM entries WHERE deleted = 1 AND ts < ?`,
		before.UTC().Format(tsFormat))
	if err != nil {
		return 0, fmt.Errorf("purging tombstones: %w", err)
	}
	return res.RowsAffected()
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM entries`)
	return err
}

func (r *SQLiteRepository) query(ctx context.Context, q string) ([]models.Entry, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("selecting entries: %w", err)
	}
	defer rows.Close()

	var result []models.Entry
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var e models.Entry
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, fmt.Errorf("decoding stored entry: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

func save(ctx context.Context, db dbx.DBTX, e models.Entry) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding entry %s: %w", e.ID, err)
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO entries (id, ts, deleted, payload) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			ts = excluded.ts,
			deleted = excluded.deleted,
			payload = excluded.payload`,
		string(e.ID), e.Timestamp.UTC().Format(tsFormat), boolToInt(e.Deleted), payload)
	if err != nil {
		return fmt.Errorf("upserting entry %s: %w", e.ID, err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
