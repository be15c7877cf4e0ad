// Package querybuilder assembles SQL with '?' bind vars; callers rebind them for
// the active driver (sqlx.DB.Rebind) so the same statements run on sqlite and postgres.
package querybuilder

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

var (
	errNoTable   = errors.New("querybuilder: table is required")
	errNoColumns = errors.New("querybuilder: columns are required")
	errNoRows    = errors.New("querybuilder: insert values are required")
)

// Condition is one WHERE predicate; conditions in a clause are ANDed.
type Condition struct {
	sql  string
	args []any
}

func Eq(column string, value any) Condition {
	return Condition{sql: column + " = ?", args: []any{value}}
}

func Lt(column string, value any) Condition {
	return Condition{sql: column + " < ?", args: []any{value}}
}

// Expr embeds raw SQL; each '?' consumes one of args in order.
func Expr(expr string, args ...any) Condition {
	return Condition{sql: expr, args: args}
}

// statement accumulates SQL text and its bind args in order.
type statement struct {
	strings.Builder
	args []any
}

func (s *statement) where(conds []Condition) {
	for i, c := range conds {
		if i == 0 {
			s.WriteString(" WHERE ")
		} else {
			s.WriteString(" AND ")
		}
		s.WriteString(c.sql)
		s.args = append(s.args, c.args...)
	}
}

func (s *statement) list(keyword string, parts []string) {
	if len(parts) > 0 {
		s.WriteString(keyword)
		s.WriteString(strings.Join(parts, ", "))
	}
}

type SelectBuilder struct {
	columns []string
	table   string
	conds   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: columns}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conds ...Condition) *SelectBuilder {
	b.conds = append(b.conds, conds...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

// Limit of zero or less means no LIMIT clause.
func (b *SelectBuilder) Limit(n int) *SelectBuilder {
	b.limit = n
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	switch {
	case len(b.columns) == 0:
		return "", nil, errNoColumns
	case strings.TrimSpace(b.table) == "":
		return "", nil, errNoTable
	}

	var s statement
	s.WriteString("SELECT " + strings.Join(b.columns, ", ") + " FROM " + b.table)
	s.where(b.conds)
	s.list(" ORDER BY ", b.orderBy)
	if b.limit > 0 {
		s.WriteString(" LIMIT " + strconv.Itoa(b.limit))
	}
	return s.String(), s.args, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = columns
	return b
}

// Values appends one row; its width must match Columns.
func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, values)
	return b
}

// Suffix is appended verbatim, typically an ON CONFLICT clause.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, errNoTable
	case len(b.columns) == 0:
		return "", nil, errNoColumns
	case len(b.rows) == 0:
		return "", nil, errNoRows
	}

	placeholders := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(b.columns)), ", ") + ")"
	var s statement
	s.WriteString("INSERT INTO " + b.table + " (" + strings.Join(b.columns, ", ") + ") VALUES ")
	for i, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("querybuilder: row %d has %d values for %d columns", i, len(row), len(b.columns))
		}
		if i > 0 {
			s.WriteString(", ")
		}
		s.WriteString(placeholders)
		s.args = append(s.args, row...)
	}
	if b.suffix != "" {
		s.WriteString(" " + b.suffix)
	}
	return s.String(), s.args, nil
}

type DeleteBuilder struct {
	table string
	conds []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conds ...Condition) *DeleteBuilder {
	b.conds = append(b.conds, conds...)
	return b
}

// ToSQL builds the statement; an empty WHERE deletes every row.
func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, errNoTable
	}
	var s statement
	s.WriteString("DELETE FROM " + b.table)
	s.where(b.conds)
	return s.String(), s.args, nil
}

// OnConflictReplace renders an upsert suffix that overwrites every non-key
// column. Both sqlite and postgres accept the excluded.* form.
func OnConflictReplace(keys []string, columns []string) string {
	target := "ON CONFLICT (" + strings.Join(keys, ", ") + ")"

	var sets []string
	for _, col := range columns {
		if !slices.Contains(keys, col) {
			sets = append(sets, col+" = excluded."+col)
		}
	}
	if len(sets) == 0 {
		return target + " DO NOTHING"
	}
	return target + " DO UPDATE SET " + strings.Join(sets, ", ")
}

// OnConflictIgnore renders an insert-or-ignore suffix. With no keys any
// unique violation is ignored.
func OnConflictIgnore(keys ...string) string {
	if len(keys) == 0 {
		return "ON CONFLICT DO NOTHING"
	}
	return "ON CONFLICT (" + strings.Join(keys, ", ") + ") DO NOTHING"
}
