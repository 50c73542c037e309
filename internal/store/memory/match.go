package memory

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"alcyxob/fitness-coach/internal/dberr"
	"alcyxob/fitness-coach/internal/store"
)

func matchAll(row store.Row, filters []store.Filter) (bool, error) {
	for _, f := range filters {
		ok, err := match(row[f.Column], f)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func match(value any, f store.Filter) (bool, error) {
	switch f.Op {
	case store.OpEq:
		return value != nil && canonical(value) == canonical(f.Value), nil
	case store.OpIn:
		if value == nil {
			return false, nil
		}
		want := canonical(value)
		for _, v := range listOf(f.Value) {
			if canonical(v) == want {
				return true, nil
			}
		}
		return false, nil
	case store.OpContains:
		have, ok := value.([]any)
		if !ok {
			return false, nil
		}
		set := make(map[string]struct{}, len(have))
		for _, v := range have {
			set[canonical(v)] = struct{}{}
		}
		for _, v := range listOf(f.Value) {
			if _, ok := set[canonical(v)]; !ok {
				return false, nil
			}
		}
		return true, nil
	case store.OpILike:
		s, ok := value.(string)
		if !ok {
			return false, nil
		}
		pattern, _ := f.Value.(string)
		re, err := likePattern(pattern)
		if err != nil {
			return false, dberr.Validation("invalid pattern: " + pattern)
		}
		return re.MatchString(s), nil
	default:
		return false, dberr.Store("PGRST100", "unsupported operator "+string(f.Op), "", nil)
	}
}

func listOf(v any) []any {
	if list, ok := v.([]any); ok {
		return list
	}
	return []any{v}
}

// canonical renders a value as compact JSON so equality ignores Go types.
func canonical(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

func likePattern(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile("(?is)" + store.LikeRegexp(pattern))
}

// less orders rows by orders. Nulls sort last ascending and first descending.
func less(a, b store.Row, orders []store.Order) bool {
	for _, o := range orders {
		c := compare(a[o.Column], b[o.Column])
		if c == 0 {
			continue
		}
		if o.Descending {
			return c > 0
		}
		return c < 0
	}
	return false
}

func compare(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	if x, ok := asFloat(a); ok {
		if y, ok := asFloat(b); ok {
			return cmpOrdered(x, y)
		}
	}
	if x, ok := a.(string); ok {
		if y, ok := b.(string); ok {
			tx, errX := time.Parse(time.RFC3339Nano, x)
			ty, errY := time.Parse(time.RFC3339Nano, y)
			if errX == nil && errY == nil {
				return tx.Compare(ty)
			}
			return strings.Compare(x, y)
		}
	}
	if x, ok := a.(bool); ok {
		if y, ok := b.(bool); ok {
			switch {
			case x == y:
				return 0
			case !x:
				return -1
			default:
				return 1
			}
		}
	}
	return strings.Compare(canonical(a), canonical(b))
}

func cmpOrdered(x, y float64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

func asFloat(v any) (float64, bool) {
	if n, ok := v.(json.Number); ok {
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func asInt(v any) (int64, bool) {
	if n, ok := v.(json.Number); ok {
		i, err := n.Int64()
		return i, err == nil
	}
	return 0, false
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }
