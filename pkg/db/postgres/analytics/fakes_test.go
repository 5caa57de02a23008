package analytics

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type recordedQuery struct {
	sql  string
	args []any
}

// fakeExecutor answers Query/QueryRow from callbacks and records every statement.
type fakeExecutor struct {
	mu      sync.Mutex
	queries []recordedQuery

	rowsFunc func(sql string, args []any) (pgx.Rows, error)
	rowFunc  func(sql string) pgx.Row
}

func (f *fakeExecutor) record(sql string, args []any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, recordedQuery{sql: sql, args: args})
}

func (f *fakeExecutor) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.record(sql, args)
	if f.rowsFunc == nil {
		return &fakeRows{}, nil
	}
	return f.rowsFunc(sql, args)
}

func (f *fakeExecutor) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.record(sql, args)
	if f.rowFunc == nil {
		return fakeRow{err: errors.New("no row configured")}
	}
	return f.rowFunc(sql)
}

func (f *fakeExecutor) last() recordedQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[len(f.queries)-1]
}

// fakeRows is an in-memory pgx.Rows.
type fakeRows struct {
	columns []string
	values  [][]any
	err     error

	idx    int
	closed bool
}

func (r *fakeRows) Close()                        { r.closed = true }
func (r *fakeRows) Err() error                    { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }
func (r *fakeRows) RawValues() [][]byte           { return nil }
func (r *fakeRows) Conn() *pgx.Conn               { return nil }

func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription {
	out := make([]pgconn.FieldDescription, len(r.columns))
	for i, c := range r.columns {
		out[i] = pgconn.FieldDescription{Name: c}
	}
	return out
}

func (r *fakeRows) Next() bool {
	if r.closed || r.idx >= len(r.values) {
		return false
	}
	r.idx++
	return true
}

func (r *fakeRows) Scan(...any) error {
	return errors.New("fakeRows: use Values")
}

func (r *fakeRows) Values() ([]any, error) {
	return r.values[r.idx-1], nil
}

// fakeRow is a single-row result supporting the destinations the store scans into.
type fakeRow struct {
	value any
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	switch d := dest[0].(type) {
	case *any:
		*d = r.value
	case **time.Time:
		if r.value == nil {
			*d = nil
			return nil
		}
		ts := r.value.(time.Time)
		*d = &ts
	case *int:
		*d = r.value.(int)
	default:
		return fmt.Errorf("fakeRow: unsupported destination %T", dest[0])
	}
	return nil
}

// rowsBySQL routes QueryRow calls to the first entry whose key is contained in the statement.
func rowsBySQL(routes map[string]fakeRow) func(string) pgx.Row {
	return func(sql string) pgx.Row {
		for key, row := range routes {
			if strings.Contains(sql, key) {
				return row
			}
		}
		return fakeRow{err: fmt.Errorf("unexpected statement %q", sql)}
	}
}
