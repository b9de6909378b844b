// Package querybuilder renders the small set of PostgreSQL statements the
// repositories need, numbering placeholders ($1, $2, ...) in argument order.
package querybuilder

import (
	"errors"
	"strconv"
	"strings"
)

var (
	errNoTable       = errors.New("querybuilder: table is required")
	errNoAssignments = errors.New("querybuilder: update needs at least one SET")
	errNoWhere       = errors.New("querybuilder: refusing to touch every row without WHERE")
)

// writer accumulates SQL text and its positional arguments.
type writer struct {
	sql  strings.Builder
	args []any
}

func (w *writer) str(s string) {
	w.sql.WriteString(s)
}

func (w *writer) bind(v any) {
	w.args = append(w.args, v)
	w.sql.WriteByte('$')
	w.sql.WriteString(strconv.Itoa(len(w.args)))
}

// expr writes s replacing each '?' with the next bound value. Surplus '?'
// are kept verbatim.
func (w *writer) expr(s string, values []any) {
	for i := 0; i < len(s); i++ {
		if s[i] == '?' && len(values) > 0 {
			w.bind(values[0])
			values = values[1:]
			continue
		}
		w.sql.WriteByte(s[i])
	}
}

func (w *writer) where(conds []Condition) {
	if len(conds) == 0 {
		return
	}
	w.str(" WHERE ")
	writeAnd(w, conds)
}

func (w *writer) done() (string, []any, error) {
	return w.sql.String(), w.args, nil
}

func writeAnd(w *writer, conds []Condition) {
	for i, c := range conds {
		if i > 0 {
			w.str(" AND ")
		}
		c.write(w)
	}
}

// Condition is one predicate of a WHERE clause. Top-level conditions are
// joined with AND.
type Condition interface {
	write(w *writer)
}

type eq struct {
	column string
	value  any
}

func (c eq) write(w *writer) {
	w.str(c.column + " = ")
	w.bind(c.value)
}

// Eq matches column = value.
func Eq(column string, value any) Condition {
	return eq{column: column, value: value}
}

type raw struct {
	sql    string
	values []any
}

func (c raw) write(w *writer) {
	w.expr(c.sql, c.values)
}

// Expr embeds a hand-written predicate. Each '?' binds the next value.
func Expr(sql string, values ...any) Condition {
	return raw{sql: sql, values: values}
}

type anyOf [][]Condition

func (c anyOf) write(w *writer) {
	if len(c) == 0 {
		w.str("FALSE")
		return
	}
	w.str("(")
	for i, group := range c {
		if i > 0 {
			w.str(" OR ")
		}
		w.str("(")
		writeAnd(w, group)
		w.str(")")
	}
	w.str(")")
}

// AnyOf holds when every condition of at least one group holds.
func AnyOf(groups ...[]Condition) Condition {
	return anyOf(groups)
}

// All groups conditions for AnyOf.
func All(conds ...Condition) []Condition {
	return conds
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: columns}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conds ...Condition) *SelectBuilder {
	b.where = append(b.where, conds...)
	return b
}

func (b *SelectBuilder) OrderBy(terms ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, terms...)
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if b.table == "" {
		return "", nil, errNoTable
	}

	var w writer
	w.str("SELECT ")
	if len(b.columns) == 0 {
		w.str("*")
	} else {
		w.str(strings.Join(b.columns, ", "))
	}
	w.str(" FROM " + b.table)
	w.where(b.where)
	if len(b.orderBy) > 0 {
		w.str(" ORDER BY " + strings.Join(b.orderBy, ", "))
	}
	return w.done()
}

type assignment struct {
	column string
	value  any
	sql    string
}

type UpdateBuilder struct {
	table     string
	sets      []assignment
	where     []Condition
	returning string
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

// Set binds value to column.
func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, value: value})
	return b
}

// SetRaw assigns an unbound SQL expression such as NOW().
func (b *UpdateBuilder) SetRaw(column, sql string) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, sql: sql})
	return b
}

func (b *UpdateBuilder) Where(conds ...Condition) *UpdateBuilder {
	b.where = append(b.where, conds...)
	return b
}

func (b *UpdateBuilder) Returning(columns string) *UpdateBuilder {
	b.returning = columns
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	switch {
	case b.table == "":
		return "", nil, errNoTable
	case len(b.sets) == 0:
		return "", nil, errNoAssignments
	case len(b.where) == 0:
		return "", nil, errNoWhere
	}

	var w writer
	w.str("UPDATE " + b.table + " SET ")
	for i, a := range b.sets {
		if i > 0 {
			w.str(", ")
		}
		w.str(a.column + " = ")
		if a.sql != "" {
			w.str(a.sql)
		} else {
			w.bind(a.value)
		}
	}
	w.where(b.where)
	if b.returning != "" {
		w.str(" RETURNING " + b.returning)
	}
	return w.done()
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conds ...Condition) *DeleteBuilder {
	b.where = append(b.where, conds...)
	return b
}

func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if b.table == "" {
		return "", nil, errNoTable
	}
	if len(b.where) == 0 {
		return "", nil, errNoWhere
	}

	var w writer
	w.str("DELETE FROM " + b.table)
	w.where(b.where)
	return w.done()
}
