package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNoRow is returned by Get when the id is not present.
var ErrNoRow = errors.New("row not found")

// ErrConflict is returned when an insert violates a primary-key or unique
// constraint, e.g. a second payment for the same (need, month) pair.
var ErrConflict = errors.New("constraint violation")

// Record is one persisted entity row. Doc holds the full entity as JSON;
// SortKey carries whatever field the entity orders by (date, start month,
// created-at) so ordered reads stay index-backed.
type Record struct {
	ID        string
	SortKey   string
	CreatedAt time.Time
	Doc       []byte
}

// Table is a handle for one entity table. All methods are write-through to
// SQLite; callers update their in-memory state only after these succeed.
type Table struct {
	db   *sql.DB
	name string
}

// Name returns the underlying table name.
func (t *Table) Name() string { return t.name }

// Insert adds a new row and fails with ErrConflict if the id (or a unique
// sort key) already exists.
func (t *Table) Insert(ctx context.Context, rec Record) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (id, sort_key, created_at, doc) VALUES (?, ?, ?, ?)`, t.name)
	_, err := t.db.ExecContext(ctx, query,
		rec.ID, rec.SortKey, rec.CreatedAt.UTC().Format(time.RFC3339Nano), string(rec.Doc))
	if err != nil {
		if isConstraintErr(err) {
			return fmt.Errorf("%w: %s id %s", ErrConflict, t.name, rec.ID)
		}
		return fmt.Errorf("insert into %s: %w", t.name, err)
	}
	return nil
}

// Put inserts or fully replaces the row for rec.ID.
func (t *Table) Put(ctx context.Context, rec Record) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (id, sort_key, created_at, doc) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET sort_key = excluded.sort_key, doc = excluded.doc`, t.name)
	_, err := t.db.ExecContext(ctx, query,
		rec.ID, rec.SortKey, rec.CreatedAt.UTC().Format(time.RFC3339Nano), string(rec.Doc))
	if err != nil {
		return fmt.Errorf("put into %s: %w", t.name, err)
	}
	return nil
}

// Get fetches a single row by id.
func (t *Table) Get(ctx context.Context, id string) (Record, error) {
	query := fmt.Sprintf(`SELECT id, sort_key, created_at, doc FROM %s WHERE id = ?`, t.name)
	row := t.db.QueryRowContext(ctx, query, id)
	rec, err := scanRecord(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %s id %s", ErrNoRow, t.name, id)
	}
	if err != nil {
		return Record{}, fmt.Errorf("get from %s: %w", t.name, err)
	}
	return rec, nil
}

// Delete removes a row; found reports whether it existed.
func (t *Table) Delete(ctx context.Context, id string) (found bool, err error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, t.name)
	res, err := t.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete from %s: %w", t.name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete from %s: %w", t.name, err)
	}
	return n > 0, nil
}

// List returns every row ordered by sort key, then creation time.
func (t *Table) List(ctx context.Context) ([]Record, error) {
	query := fmt.Sprintf(
		`SELECT id, sort_key, created_at, doc FROM %s ORDER BY sort_key, created_at, id`, t.name)
	rows, err := t.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.name, err)
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan %s row: %w", t.name, err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", t.name, err)
	}
	return recs, nil
}

// Clear removes every row.
func (t *Table) Clear(ctx context.Context) error {
	if _, err := t.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s`, t.name)); err != nil {
		return fmt.Errorf("clear %s: %w", t.name, err)
	}
	return nil
}

// ReplaceAll clears the table and bulk-inserts the given rows in a single
// transaction, so a failure leaves the previous contents intact.
func (t *Table) ReplaceAll(ctx context.Context, recs []Record) error {
	return t.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s`, t.name)); err != nil {
			return fmt.Errorf("clear %s: %w", t.name, err)
		}
		return t.bulkInsertTx(ctx, tx, recs)
	})
}

// BulkInsert inserts all rows in a single transaction.
func (t *Table) BulkInsert(ctx context.Context, recs []Record) error {
	if len(recs) == 0 {
		return nil
	}
	return t.withTx(ctx, func(tx *sql.Tx) error {
		return t.bulkInsertTx(ctx, tx, recs)
	})
}

func (t *Table) bulkInsertTx(ctx context.Context, tx *sql.Tx, recs []Record) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (id, sort_key, created_at, doc) VALUES (?, ?, ?, ?)`, t.name)
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare bulk insert %s: %w", t.name, err)
	}
	defer stmt.Close()

	for _, rec := range recs {
		_, err := stmt.ExecContext(ctx,
			rec.ID, rec.SortKey, rec.CreatedAt.UTC().Format(time.RFC3339Nano), string(rec.Doc))
		if err != nil {
			if isConstraintErr(err) {
				return fmt.Errorf("%w: %s id %s", ErrConflict, t.name, rec.ID)
			}
			return fmt.Errorf("bulk insert %s id %s: %w", t.name, rec.ID, err)
		}
	}
	return nil
}

func (t *Table) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx on %s: %w", t.name, err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx on %s: %w", t.name, err)
	}
	return nil
}

func scanRecord(scan func(dest ...any) error) (Record, error) {
	var (
		rec       Record
		createdAt string
		doc       string
	)
	if err := scan(&rec.ID, &rec.SortKey, &createdAt, &doc); err != nil {
		return Record{}, err
	}
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Record{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	rec.CreatedAt = ts
	rec.Doc = []byte(doc)
	return rec, nil
}

// isConstraintErr detects primary-key and unique violations without binding
// to driver-specific error types.
func isConstraintErr(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "constraint")
}
