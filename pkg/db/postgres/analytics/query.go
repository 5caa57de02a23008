package analytics

import (
	"fmt"
	"strings"
)

// selectQuery assembles one of the fixed dashboard SELECTs. Optional equality
// filters are ANDed together; empty filter values add no predicate.
type selectQuery struct {
	columns string
	from    string
	groupBy string
	orderBy string

	conditions []string
	args       []any
}

func newSelect(columns, from string) *selectQuery {
	return &selectQuery{columns: columns, from: from}
}

func (q *selectQuery) bind(v any) string {
	q.args = append(q.args, v)
	return fmt.Sprintf("$%d", len(q.args))
}

// whereEq adds "column = $n" when value is non-empty.
func (q *selectQuery) whereEq(column, value string) *selectQuery {
	if value == "" {
		return q
	}
	q.conditions = append(q.conditions, fmt.Sprintf("%s = %s", column, q.bind(value)))
	return q
}

// whereAnyEq adds "(a = $n OR b = $n)" when value is non-empty.
func (q *selectQuery) whereAnyEq(columns []string, value string) *selectQuery {
	if value == "" {
		return q
	}
	placeholder := q.bind(value)
	parts := make([]string, 0, len(columns))
	for _, col := range columns {
		parts = append(parts, fmt.Sprintf("%s = %s", col, placeholder))
	}
	q.conditions = append(q.conditions, "("+strings.Join(parts, " OR ")+")")
	return q
}

func (q *selectQuery) group(expr string) *selectQuery {
	q.groupBy = expr
	return q
}

func (q *selectQuery) order(expr string) *selectQuery {
	q.orderBy = expr
	return q
}

// limit renders the statement with LIMIT only.
func (q *selectQuery) limit(limit int) (string, []any) {
	sql := q.base()
	sql += " LIMIT " + q.bind(limit)
	return sql, q.args
}

// page renders the statement with LIMIT and OFFSET.
func (q *selectQuery) page(limit, offset int) (string, []any) {
	sql := q.base()
	sql += " LIMIT " + q.bind(limit)
	sql += " OFFSET " + q.bind(offset)
	return sql, q.args
}

func (q *selectQuery) base() string {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(q.columns)
	b.WriteString(" FROM ")
	b.WriteString(q.from)
	if len(q.conditions) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(q.conditions, " AND "))
	}
	if q.groupBy != "" {
		b.WriteString(" GROUP BY ")
		b.WriteString(q.groupBy)
	}
	if q.orderBy != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(q.orderBy)
	}
	return b.String()
}
