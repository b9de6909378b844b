package querybuilder

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

type InsertBuilder struct {
	table      string
	row        any
	onConflict string
}

// Insert writes one row taken from the exported `db`-tagged fields of row,
// in declaration order. Fields tagged "-" or untagged are skipped.
func Insert(table string, row any) *InsertBuilder {
	return &InsertBuilder{table: table, row: row}
}

// OnConflict appends an ON CONFLICT clause, for example
// "(id) DO UPDATE SET current_player_id = EXCLUDED.current_player_id".
func (b *InsertBuilder) OnConflict(clause string) *InsertBuilder {
	b.onConflict = strings.TrimSpace(clause)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if b.table == "" {
		return "", nil, errNoTable
	}
	columns, values, err := taggedColumns(b.row)
	if err != nil {
		return "", nil, fmt.Errorf("insert into %s: %w", b.table, err)
	}

	var w writer
	w.str("INSERT INTO " + b.table + " (" + strings.Join(columns, ", ") + ") VALUES (")
	for i, v := range values {
		if i > 0 {
			w.str(", ")
		}
		w.bind(v)
	}
	w.str(")")
	if b.onConflict != "" {
		w.str(" ON CONFLICT " + b.onConflict)
	}
	return w.done()
}

func taggedColumns(row any) ([]string, []any, error) {
	v := reflect.ValueOf(row)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, nil, errors.New("row is nil")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("row must be a struct, got %s", v.Kind())
	}

	t := v.Type()
	var columns []string
	var values []any
	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		name = strings.TrimSpace(name)
		if name == "" || name == "-" {
			continue
		}
		columns = append(columns, name)
		values = append(values, v.Field(i).Interface())
	}
	if len(columns) == 0 {
		return nil, nil, errors.New("row has no db columns")
	}
	return columns, values, nil
}
