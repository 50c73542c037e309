package mongo

import (
	"encoding/json"
	"fmt"
	"reflect"

	"alcyxob/fitness-coach/internal/dberr"
	"alcyxob/fitness-coach/internal/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// toFilter translates store filters into a query document. Several filters are joined
// with $and so repeated columns keep every condition.
func toFilter(filters []store.Filter) (bson.D, error) {
	conds := make([]bson.D, 0, len(filters))
	for _, f := range filters {
		cond, err := condition(f)
		if err != nil {
			return nil, err
		}
		conds = append(conds, cond)
	}
	switch len(conds) {
	case 0:
		return bson.D{}, nil
	case 1:
		return conds[0], nil
	default:
		return bson.D{{Key: "$and", Value: conds}}, nil
	}
}

func condition(f store.Filter) (bson.D, error) {
	switch f.Op {
	case store.OpEq:
		return bson.D{{Key: f.Column, Value: bsonValue(f.Value)}}, nil
	case store.OpIn:
		return bson.D{{Key: f.Column, Value: bson.D{{Key: "$in", Value: bsonList(f.Value)}}}}, nil
	case store.OpContains:
		return bson.D{{Key: f.Column, Value: bson.D{{Key: "$all", Value: bsonList(f.Value)}}}}, nil
	case store.OpILike:
		pattern, _ := f.Value.(string)
		return bson.D{{Key: f.Column, Value: primitive.Regex{Pattern: store.LikeRegexp(pattern), Options: "is"}}}, nil
	default:
		return nil, dberr.Validation(fmt.Sprintf("unsupported filter operator %q", f.Op))
	}
}

// bsonValue maps wire numbers onto BSON numeric types; other values pass through.
func bsonValue(v any) any {
	switch x := v.(type) {
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n
		}
		f, _ := x.Float64()
		return f
	case []any:
		return bsonList(x)
	}
	return v
}

func bsonList(v any) bson.A {
	if list, ok := v.([]any); ok {
		out := make(bson.A, len(list))
		for i, item := range list {
			out[i] = bsonValue(item)
		}
		return out
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return bson.A{bsonValue(v)}
	}
	out := make(bson.A, rv.Len())
	for i := range out {
		out[i] = bsonValue(rv.Index(i).Interface())
	}
	return out
}
