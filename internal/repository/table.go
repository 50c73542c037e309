package repository

import (
	"context"
	"time"

	"alcyxob/fitness-coach/internal/dberr"
	"alcyxob/fitness-coach/internal/domain"
	"alcyxob/fitness-coach/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Table implements Store for one table of records of type E keyed by K.
type Table[E domain.Record[K], K domain.Key] struct {
	client   store.Client
	def      store.TableDef
	resource string
	validate *validator.Validate
	now      func() time.Time
}

var _ Store[domain.Exercise, domain.ID] = (*Table[domain.Exercise, domain.ID])(nil)

// NewTable creates a table accessor. resource names the entity in not-found messages.
func NewTable[E domain.Record[K], K domain.Key](client store.Client, def store.TableDef, resource string, v *validator.Validate) *Table[E, K] {
	return &Table[E, K]{client: client, def: def, resource: resource, validate: v, now: time.Now}
}

// Find returns the records matching q, never nil.
func (t *Table[E, K]) Find(ctx context.Context, q store.Query) ([]E, error) {
	var out []E
	if err := t.client.Select(ctx, t.def.Name, q, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []E{}
	}
	return out, nil
}

func (t *Table[E, K]) FetchAll(ctx context.Context) ([]E, error) {
	return t.Find(ctx, store.Query{})
}

func (t *Table[E, K]) FetchOne(ctx context.Context, id K) (E, error) {
	var zero E
	rows, err := t.Find(ctx, store.Query{Filters: t.keyFilters(id)})
	if err != nil {
		return zero, err
	}
	switch len(rows) {
	case 0:
		return zero, t.notFound(id)
	case 1:
		return rows[0], nil
	default:
		return zero, dberr.Unknown(errors.Errorf("%d rows in %s share key %v", len(rows), t.def.Name, id))
	}
}

// FetchIn fetches the records whose single-column key is in ids with one round trip.
// The result order is unspecified and missing ids are skipped.
func (t *Table[E, K]) FetchIn(ctx context.Context, ids []domain.ID) ([]E, error) {
	if len(ids) == 0 {
		return []E{}, nil
	}
	return t.Find(ctx, store.Where(store.In(t.def.Key[0], distinct(ids))))
}

func (t *Table[E, K]) Create(ctx context.Context, e E) (E, error) {
	var zero E
	if err := t.check(ctx, e); err != nil {
		return zero, err
	}
	row, err := store.EncodeRow(e)
	if err != nil {
		return zero, err
	}
	var out []E
	if err := t.client.Insert(ctx, t.def.Name, row, &out); err != nil {
		return zero, err
	}
	if len(out) != 1 {
		return zero, dberr.Unknown(errors.Errorf("failed to create %s: store returned %d rows", t.resource, len(out)))
	}
	return out[0], nil
}

// Update replaces every column except the key and created_at.
func (t *Table[E, K]) Update(ctx context.Context, e E) (E, error) {
	var zero E
	if err := t.check(ctx, e); err != nil {
		return zero, err
	}
	row, err := store.EncodeRow(e)
	if err != nil {
		return zero, err
	}
	row = row.Without(append([]string{store.CreatedAtColumn, store.UpdatedAtColumn}, t.def.Key...)...)
	if t.def.UpdatedAt {
		row[store.UpdatedAtColumn] = t.now().UTC().Format(time.RFC3339Nano)
	}

	id := e.Key()
	var out []E
	if err := t.client.Update(ctx, t.def.Name, row, t.keyFilters(id), &out); err != nil {
		return zero, err
	}
	if len(out) == 0 {
		return zero, t.notFound(id)
	}
	return out[0], nil
}

func (t *Table[E, K]) Delete(ctx context.Context, id K) error {
	n, err := t.client.Delete(ctx, t.def.Name, t.keyFilters(id))
	if err != nil {
		return err
	}
	if n == 0 {
		return t.notFound(id)
	}
	return nil
}

// keyFilters matches a record by every column of its key.
func (t *Table[E, K]) keyFilters(id K) []store.Filter {
	switch id.Kind() {
	case domain.CompositeKey:
		k := any(id).(domain.CompositeID)
		return []store.Filter{
			store.Eq(t.def.Key[0], int64(k.Parent)),
			store.Eq(t.def.Key[1], int64(k.Child)),
		}
	default:
		k := any(id).(domain.ID)
		return []store.Filter{store.Eq(t.def.Key[0], int64(k))}
	}
}

func (t *Table[E, K]) notFound(id K) error {
	return dberr.NotFoundf("%s with id %v", t.resource, id)
}

func (t *Table[E, K]) check(ctx context.Context, e E) error {
	if t.validate == nil {
		return nil
	}
	if err := t.validate.StructCtx(ctx, e); err != nil {
		return validationError(err)
	}
	return nil
}

func distinct(ids []domain.ID) []int64 {
	seen := make(map[domain.ID]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, int64(id))
	}
	return out
}
