package lock

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore persists locked rotations to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at path and ensures schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS locked_rotations (
        id TEXT PRIMARY KEY,
        group_key TEXT NOT NULL,
        rank TEXT NOT NULL,
        active INTEGER NOT NULL,
        locked_at INTEGER NOT NULL,
        record TEXT NOT NULL
    );
    CREATE INDEX IF NOT EXISTS idx_locked_rotations_rank
        ON locked_rotations (rank, active);`
	if _, err := db.Exec(schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Save deactivates any active lock for the same (group, rank) and inserts the
// new one. Both writes run in one transaction so two active locks can never
// coexist, even under concurrent saves.
func (s *SQLiteStore) Save(ctx context.Context, lock LockedRotation) (string, error) {
	lock.ID = uuid.NewString()
	lock.Active = true
	if lock.LockedAt.IsZero() {
		lock.LockedAt = time.Now().UTC()
	}
	b, err := json.Marshal(lock)
	if err != nil {
		return "", err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`UPDATE locked_rotations SET active = 0 WHERE group_key = ? AND rank = ? AND active = 1`,
		lock.GroupKey, lock.Rank); err != nil {
		return "", fmt.Errorf("deactivate previous lock: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO locked_rotations (id, group_key, rank, active, locked_at, record) VALUES (?, ?, ?, 1, ?, ?)`,
		lock.ID, lock.GroupKey, lock.Rank, lock.LockedAt.Unix(), string(b)); err != nil {
		return "", fmt.Errorf("insert lock: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return lock.ID, nil
}

// Get returns the active locks for a rank, most recent first. An empty rank
// returns every active lock.
func (s *SQLiteStore) Get(ctx context.Context, rank string) ([]LockedRotation, error) {
	query := `SELECT record FROM locked_rotations WHERE active = 1`
	var args []any
	if rank != "" {
		query += ` AND rank = ?`
		args = append(args, rank)
	}
	query += ` ORDER BY locked_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var res []LockedRotation
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var l LockedRotation
		if err := json.Unmarshal([]byte(data), &l); err != nil {
			return nil, fmt.Errorf("unmarshal lock: %w", err)
		}
		res = append(res, l)
	}
	return res, rows.Err()
}

// Unlock deactivates the active lock for a (group, rank). ErrNotFound is
// returned when none exists.
func (s *SQLiteStore) Unlock(ctx context.Context, groupKey, rank string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE locked_rotations SET active = 0 WHERE group_key = ? AND rank = ? AND active = 1`,
		groupKey, rank)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// LockedCodes returns the union of crew codes held by the rank's active
// locks. Replacement queries exclude these codes.
func (s *SQLiteStore) LockedCodes(ctx context.Context, rank string) ([]int, error) {
	locks, err := s.Get(ctx, rank)
	if err != nil {
		return nil, err
	}
	seen := make(map[int]bool)
	var codes []int
	for _, l := range locks {
		for _, c := range l.LockedCodes {
			if !seen[c] {
				seen[c] = true
				codes = append(codes, c)
			}
		}
	}
	return codes, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }
