package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/sells-group/takeoff-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

// Amounts are stored as decimal strings so they round-trip exactly.
const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	documents  TEXT NOT NULL,
	status     TEXT NOT NULL DEFAULT 'queued',
	result     TEXT,
	error      TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS run_lines (
	run_id     TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	seq        INTEGER NOT NULL,
	kind       TEXT NOT NULL,
	category   TEXT NOT NULL,
	path       TEXT NOT NULL,
	quantity   TEXT NOT NULL,
	unit       TEXT NOT NULL,
	unit_price TEXT NOT NULL,
	price      TEXT NOT NULL,
	notes      TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (run_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateRun(ctx context.Context, documents []string) (*model.Run, error) {
	id := uuid.New().String()
	now := time.Now().UTC()
	if documents == nil {
		documents = []string{}
	}

	docsJSON, err := json.Marshal(documents)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal documents")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, documents, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		id, string(docsJSON), string(model.RunStatusQueued), now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert run")
	}

	return &model.Run{
		ID:        id,
		Documents: documents,
		Status:    model.RunStatusQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *SQLiteStore) UpdateRunStatus(ctx context.Context, runID string, status model.RunStatus) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update run status %s", runID)
	}
	return checkRowsAffected(res, "run", runID)
}

// CompleteRun stores the result and replaces the run's line items in one
// transaction.
func (s *SQLiteStore) CompleteRun(ctx context.Context, runID string, result *model.RunResult, lines []model.LineItem) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal result")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin")
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx,
		`UPDATE runs SET result = ?, status = ?, error = '', updated_at = ? WHERE id = ?`,
		string(resultJSON), string(model.RunStatusComplete), time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update run result %s", runID)
	}
	if err := checkRowsAffected(res, "run", runID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM run_lines WHERE run_id = ?`, runID); err != nil {
		return eris.Wrapf(err, "sqlite: clear lines %s", runID)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_lines (run_id, seq, kind, category, path, quantity, unit, unit_price, price, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare line insert")
	}
	defer stmt.Close() //nolint:errcheck

	for i, l := range lines {
		if _, err := stmt.ExecContext(ctx, lineArgs(runID, i, l)...); err != nil {
			return eris.Wrapf(err, "sqlite: insert line %s", l.Path)
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit")
}

func (s *SQLiteStore) FailRun(ctx context.Context, runID string, msg string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, error = ?, updated_at = ? WHERE id = ?`,
		string(model.RunStatusFailed), msg, time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: fail run %s", runID)
	}
	return checkRowsAffected(res, "run", runID)
}

func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (*model.Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, documents, status, result, error, created_at, updated_at FROM runs WHERE id = ?`,
		runID,
	)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "run %s", runID)
	}
	return r, err
}

func (s *SQLiteStore) ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error) {
	query := `SELECT id, documents, status, result, error, created_at, updated_at FROM runs WHERE 1=1`
	var args []any

	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	if filter.Document != "" {
		query += ` AND EXISTS (SELECT 1 FROM json_each(runs.documents) WHERE json_each.value = ?)`
		args = append(args, filter.Document)
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, filter.limit())

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close() //nolint:errcheck

	var runs []model.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *r)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: list runs iterate")
}

func (s *SQLiteStore) ListLines(ctx context.Context, runID string) ([]model.LineItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, category, path, quantity, unit, unit_price, price, notes
		 FROM run_lines WHERE run_id = ? ORDER BY seq`,
		runID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: list lines %s", runID)
	}
	defer rows.Close() //nolint:errcheck

	var lines []model.LineItem
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, eris.Wrap(rows.Err(), "sqlite: list lines iterate")
}

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Wrapf(ErrNotFound, "%s %s", entity, id)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanRun(row scannable) (*model.Run, error) {
	var r model.Run
	var docsJSON string
	var resultJSON sql.NullString

	err := row.Scan(&r.ID, &docsJSON, &r.Status, &resultJSON, &r.Error, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan run")
	}
	if err := decodeRun(&r, []byte(docsJSON), resultJSON.Valid, []byte(resultJSON.String)); err != nil {
		return nil, eris.Wrap(err, "sqlite: decode run")
	}
	return &r, nil
}

func scanLine(row scannable) (model.LineItem, error) {
	var l model.LineItem
	var kind, qty, unitPrice, price string
	if err := row.Scan(&kind, &l.Category, &l.Path, &qty, &l.Unit, &unitPrice, &price, &l.Notes); err != nil {
		return l, eris.Wrap(err, "scan line")
	}
	l.Kind = model.LineKind(kind)
	return l, decodeAmounts(&l, qty, unitPrice, price)
}

// lineArgs returns column values in run_lines order.
func lineArgs(runID string, seq int, l model.LineItem) []any {
	return []any{
		runID, seq, string(l.Kind), l.Category, l.Path,
		l.Quantity.String(), l.Unit, l.UnitPrice.String(), l.Price.String(), l.Notes,
	}
}

func decodeRun(r *model.Run, docs []byte, hasResult bool, result []byte) error {
	if err := json.Unmarshal(docs, &r.Documents); err != nil {
		return eris.Wrap(err, "unmarshal documents")
	}
	if hasResult {
		r.Result = &model.RunResult{}
		if err := json.Unmarshal(result, r.Result); err != nil {
			return eris.Wrap(err, "unmarshal result")
		}
	}
	return nil
}

func decodeAmounts(l *model.LineItem, qty, unitPrice, price string) error {
	var err error
	if l.Quantity, err = decimal.NewFromString(qty); err != nil {
		return eris.Wrapf(err, "line %s: quantity", l.Path)
	}
	if l.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
		return eris.Wrapf(err, "line %s: unit price", l.Path)
	}
	if l.Price, err = decimal.NewFromString(price); err != nil {
		return eris.Wrapf(err, "line %s: price", l.Path)
	}
	return nil
}
