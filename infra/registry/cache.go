package registry

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/fawsd/crewrotation/core/model"
	coreregistry "github.com/fawsd/crewrotation/core/registry"
	"github.com/fawsd/crewrotation/infra/logger"
)

// ErrStale is returned when the cached tables are older than the configured
// bound, or were never synced at all.
var ErrStale = errors.New("registry cache: stale")

const (
	tableCrew      = "crew"
	tableMutations = "mutations"
)

// Cache is a SQLite snapshot of the registry tables. It implements the crew
// source contract so the planner can run while the registry is unreachable,
// within the staleness bound.
type Cache struct {
	db     *sql.DB
	maxAge time.Duration
	log    logger.Logger
}

// NewCache opens or creates the cache database at path and ensures schema.
// A maxAge of zero disables the staleness check.
func NewCache(path string, maxAge time.Duration) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS registry_rows (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        tbl TEXT NOT NULL,
        record TEXT NOT NULL
    );
    CREATE INDEX IF NOT EXISTS idx_registry_rows_tbl ON registry_rows (tbl);
    CREATE TABLE IF NOT EXISTS registry_syncs (
        tbl TEXT PRIMARY KEY,
        synced_at INTEGER NOT NULL,
        records INTEGER NOT NULL
    );`
	if _, err := db.Exec(schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, err
	}
	return &Cache{db: db, maxAge: maxAge, log: logger.New("registry-cache")}, nil
}

// FetchCrew returns the cached crew table, or ErrStale when it is too old.
func (c *Cache) FetchCrew(ctx context.Context) ([]model.CrewRecord, error) {
	if err := c.checkFresh(ctx, tableCrew); err != nil {
		return nil, err
	}
	var out []model.CrewRecord
	err := c.scanRows(ctx, tableCrew, func(data []byte) error {
		var rec model.CrewRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return err
		}
		out = append(out, rec)
		return nil
	})
	return out, err
}

// FetchMutations returns the cached mutation table, or ErrStale.
func (c *Cache) FetchMutations(ctx context.Context) ([]model.MutationRecord, error) {
	if err := c.checkFresh(ctx, tableMutations); err != nil {
		return nil, err
	}
	var out []model.MutationRecord
	err := c.scanRows(ctx, tableMutations, func(data []byte) error {
		var rec model.MutationRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return err
		}
		out = append(out, rec)
		return nil
	})
	return out, err
}

// StoreCrew replaces the cached crew table.
func (c *Cache) StoreCrew(ctx context.Context, recs []model.CrewRecord) error {
	rows := make([][]byte, 0, len(recs))
	for _, r := range recs {
		b, err := json.Marshal(r)
		if err != nil {
			return err
		}
		rows = append(rows, b)
	}
	return c.replace(ctx, tableCrew, rows)
}

// StoreMutations replaces the cached mutation table.
func (c *Cache) StoreMutations(ctx context.Context, recs []model.MutationRecord) error {
	rows := make([][]byte, 0, len(recs))
	for _, r := range recs {
		b, err := json.Marshal(r)
		if err != nil {
			return err
		}
		rows = append(rows, b)
	}
	return c.replace(ctx, tableMutations, rows)
}

// Refresh pulls both tables from the live source and stores them.
func (c *Cache) Refresh(ctx context.Context, src coreregistry.Source) error {
	crew, err := src.FetchCrew(ctx)
	if err != nil {
		return fmt.Errorf("refresh crew: %w", err)
	}
	mutations, err := src.FetchMutations(ctx)
	if err != nil {
		return fmt.Errorf("refresh mutations: %w", err)
	}
	if err := c.StoreCrew(ctx, crew); err != nil {
		return fmt.Errorf("store crew: %w", err)
	}
	if err := c.StoreMutations(ctx, mutations); err != nil {
		return fmt.Errorf("store mutations: %w", err)
	}
	c.log.Infof("cache refreshed: %d crew, %d mutations", len(crew), len(mutations))
	return nil
}

// LastSync returns when a table was last stored. The zero time means never.
func (c *Cache) LastSync(ctx context.Context, tbl string) (time.Time, error) {
	var ts int64
	err := c.db.QueryRowContext(ctx,
		`SELECT synced_at FROM registry_syncs WHERE tbl = ?`, tbl).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(ts, 0), nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error { return c.db.Close() }

func (c *Cache) checkFresh(ctx context.Context, tbl string) error {
	last, err := c.LastSync(ctx, tbl)
	if err != nil {
		return err
	}
	if last.IsZero() {
		return fmt.Errorf("%w: %s never synced", ErrStale, tbl)
	}
	if c.maxAge > 0 && time.Since(last) > c.maxAge {
		return fmt.Errorf("%w: %s synced %s ago", ErrStale, tbl, time.Since(last).Round(time.Minute))
	}
	return nil
}

func (c *Cache) scanRows(ctx context.Context, tbl string, fn func([]byte) error) error {
	rows, err := c.db.QueryContext(ctx,
		`SELECT record FROM registry_rows WHERE tbl = ? ORDER BY id`, tbl)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return err
		}
		if err := fn([]byte(data)); err != nil {
			return err
		}
	}
	return rows.Err()
}

// replace swaps a table's rows and records the sync time in one transaction,
// so readers never observe a half-written table.
func (c *Cache) replace(ctx context.Context, tbl string, rows [][]byte) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM registry_rows WHERE tbl = ?`, tbl); err != nil {
		return err
	}
	for _, b := range rows {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO registry_rows (tbl, record) VALUES (?, ?)`, tbl, string(b)); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO registry_syncs (tbl, synced_at, records) VALUES (?, ?, ?)
         ON CONFLICT(tbl) DO UPDATE SET synced_at = excluded.synced_at, records = excluded.records`,
		tbl, time.Now().Unix(), len(rows)); err != nil {
		return err
	}
	return tx.Commit()
}
