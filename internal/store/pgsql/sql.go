package pgsql

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"alcyxob/fitness-coach/internal/dberr"
	"alcyxob/fitness-coach/internal/store"

	"github.com/lib/pq"
)

// builder accumulates SQL text and its positional arguments.
type builder struct {
	strings.Builder
	args []any
}

func (b *builder) bind(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

func (b *builder) where(filters []store.Filter) error {
	if len(filters) == 0 {
		return nil
	}
	conds := make([]string, len(filters))
	for i, f := range filters {
		cond, err := b.condition(f)
		if err != nil {
			return err
		}
		conds[i] = cond
	}
	b.WriteString(" WHERE ")
	b.WriteString(strings.Join(conds, " AND "))
	return nil
}

func (b *builder) condition(f store.Filter) (string, error) {
	col := quoteIdent(f.Column)
	switch f.Op {
	case store.OpEq:
		if f.Value == nil {
			return col + " IS NULL", nil
		}
		return col + " = " + b.bind(argValue(f.Value)), nil
	case store.OpIn:
		return col + " = ANY(" + b.bind(arrayValue(f.Value)) + ")", nil
	case store.OpContains:
		return col + " @> " + b.bind(arrayValue(f.Value)), nil
	case store.OpILike:
		return col + " ILIKE " + b.bind(argValue(f.Value)), nil
	default:
		return "", dberr.Validation(fmt.Sprintf("unsupported filter operator %q", f.Op))
	}
}

func quoteIdent(name string) string {
	return pq.QuoteIdentifier(name)
}

// argValue converts a wire value into a driver argument.
func argValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case json.Number:
		return x.String()
	case string, bool, []byte:
		return x
	case map[string]any:
		data, _ := json.Marshal(x)
		return string(data)
	}
	if isList(v) {
		return arrayValue(v)
	}
	return v
}

// arrayValue converts a list into a typed Postgres array argument.
func arrayValue(v any) any {
	items := listOf(v)
	if ints, ok := asInts(items); ok {
		return pq.Int64Array(ints)
	}
	if bools, ok := asBools(items); ok {
		return pq.BoolArray(bools)
	}
	out := make(pq.StringArray, len(items))
	for i, item := range items {
		out[i] = text(item)
	}
	return out
}

func isList(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.IsValid() && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) &&
		rv.Type().Elem().Kind() != reflect.Uint8
}

func listOf(v any) []any {
	if list, ok := v.([]any); ok {
		return list
	}
	if !isList(v) {
		return []any{v}
	}
	rv := reflect.ValueOf(v)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

func asInts(items []any) ([]int64, bool) {
	if len(items) == 0 {
		return nil, false
	}
	out := make([]int64, len(items))
	for i, item := range items {
		if n, ok := item.(json.Number); ok {
			parsed, err := n.Int64()
			if err != nil {
				return nil, false
			}
			out[i] = parsed
			continue
		}
		rv := reflect.ValueOf(item)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			out[i] = rv.Int()
		case reflect.Uint8, reflect.Uint16, reflect.Uint32:
			out[i] = int64(rv.Uint())
		default:
			return nil, false
		}
	}
	return out, true
}

func asBools(items []any) ([]bool, bool) {
	if len(items) == 0 {
		return nil, false
	}
	out := make([]bool, len(items))
	for i, item := range items {
		b, ok := item.(bool)
		if !ok {
			return nil, false
		}
		out[i] = b
	}
	return out, true
}

func text(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
