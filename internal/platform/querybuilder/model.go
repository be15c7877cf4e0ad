package querybuilder

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

var (
	errNilModel    = errors.New("model cannot be nil")
	errNotStruct   = errors.New("model must be struct")
	errNoDBColumns = errors.New("model has no db columns")
)

// layout is the db-tagged column list of one struct type, resolved once.
type layout struct {
	columns []string
	fields  [][]int
}

var layouts sync.Map // reflect.Type -> *layout

// InsertModel builds an INSERT from the `db` tags of a struct.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	cols, vals, err := ColumnsAndValues(model)
	if err != nil {
		return "", nil, fmt.Errorf("insert %s: %w", table, err)
	}
	return InsertInto(table).Columns(cols...).Values(vals...).Suffix(suffix).ToSQL()
}

// UpsertModel inserts model and replaces every non-key column on conflict.
func UpsertModel(table string, model any, keys ...string) (string, []any, error) {
	if len(keys) == 0 {
		return "", nil, fmt.Errorf("upsert %s: conflict keys are required", table)
	}
	cols, vals, err := ColumnsAndValues(model)
	if err != nil {
		return "", nil, fmt.Errorf("upsert %s: %w", table, err)
	}
	return InsertInto(table).Columns(cols...).Values(vals...).Suffix(OnConflictReplace(keys, cols)).ToSQL()
}

// Columns lists the db-tagged columns of a struct type, for SELECT lists.
func Columns(model any) ([]string, error) {
	l, _, err := resolve(model)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), l.columns...), nil
}

// ColumnsAndValues pairs every db-tagged exported field, embedded structs
// included, with its current value.
func ColumnsAndValues(model any) ([]string, []any, error) {
	l, value, err := resolve(model)
	if err != nil {
		return nil, nil, err
	}
	vals := make([]any, len(l.fields))
	for i, index := range l.fields {
		vals[i] = value.FieldByIndex(index).Interface()
	}
	return append([]string(nil), l.columns...), vals, nil
}

func resolve(model any) (*layout, reflect.Value, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, reflect.Value{}, errNilModel
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, reflect.Value{}, errNotStruct
	}

	typ := value.Type()
	if cached, ok := layouts.Load(typ); ok {
		return cached.(*layout), value, nil
	}
	l := &layout{}
	collect(typ, nil, l)
	if len(l.columns) == 0 {
		return nil, reflect.Value{}, errNoDBColumns
	}
	actual, _ := layouts.LoadOrStore(typ, l)
	return actual.(*layout), value, nil
}

func collect(typ reflect.Type, prefix []int, l *layout) {
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		index := append(append([]int(nil), prefix...), i)

		tag := strings.TrimSpace(field.Tag.Get("db"))
		if field.Anonymous && tag == "" && field.Type.Kind() == reflect.Struct {
			collect(field.Type, index, l)
			continue
		}
		if !field.IsExported() {
			continue
		}
		col := strings.TrimSpace(strings.Split(tag, ",")[0])
		if col == "" || col == "-" {
			continue
		}
		l.columns = append(l.columns, col)
		l.fields = append(l.fields, index)
	}
}
