package postgrest

import (
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"alcyxob/fitness-coach/internal/dberr"
	"alcyxob/fitness-coach/internal/store"
)

// addFilters renders filters as PostgREST horizontal filters (column=op.value).
func addFilters(params url.Values, filters []store.Filter) error {
	for _, f := range filters {
		value, err := encodeFilter(f)
		if err != nil {
			return err
		}
		params.Add(f.Column, value)
	}
	return nil
}

func encodeFilter(f store.Filter) (string, error) {
	switch f.Op {
	case store.OpEq:
		if items, ok := listValues(f.Value); ok {
			return "eq." + arrayLiteral(items), nil
		}
		if f.Value == nil {
			return "is.null", nil
		}
		return "eq." + scalar(f.Value), nil
	case store.OpIn:
		items, _ := listValues(f.Value)
		parts := make([]string, len(items))
		for i, v := range items {
			parts[i] = quote(scalar(v))
		}
		return "in.(" + strings.Join(parts, ",") + ")", nil
	case store.OpContains:
		items, _ := listValues(f.Value)
		return "cs." + arrayLiteral(items), nil
	case store.OpILike:
		pattern := scalar(f.Value)
		// PostgREST reads * in like patterns as %, so literal stars go through a regex match.
		if strings.Contains(pattern, "*") {
			return "imatch." + store.LikeRegexp(pattern), nil
		}
		return "ilike." + pattern, nil
	default:
		return "", dberr.Validation(fmt.Sprintf("unsupported filter operator %q", f.Op))
	}
}

func encodeOrder(orders []store.Order) string {
	parts := make([]string, len(orders))
	for i, o := range orders {
		dir := "asc"
		if o.Descending {
			dir = "desc"
		}
		parts[i] = o.Column + "." + dir
	}
	return strings.Join(parts, ",")
}

// arrayLiteral renders a Postgres array literal such as {"a","b"}.
func arrayLiteral(items []any) string {
	parts := make([]string, len(items))
	for i, v := range items {
		parts[i] = `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(scalar(v)) + `"`
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// quote wraps values holding PostgREST reserved characters in double quotes.
func quote(s string) string {
	if strings.ContainsAny(s, `,()". `) {
		return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
	}
	return s
}

func scalar(v any) string {
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

// listValues reports v as a list when it is a slice or array other than []byte.
func listValues(v any) ([]any, bool) {
	if list, ok := v.([]any); ok {
		return list, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
