// Package memory implements store.Client over process memory.
//
// It follows the same filter, ordering, key and timestamp rules as the remote backends and
// is used for tests and local development.
package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"alcyxob/fitness-coach/internal/dberr"
	"alcyxob/fitness-coach/internal/store"
)

// Client keeps every table in memory. It is safe for concurrent use.
type Client struct {
	mu     sync.RWMutex
	tables map[string]*table
	now    func() time.Time
}

type table struct {
	def  store.TableDef
	rows []store.Row
	seq  int64
}

var _ store.Client = (*Client)(nil)

// New creates an empty store with the given tables.
func New(defs ...store.TableDef) *Client {
	c := &Client{tables: make(map[string]*table, len(defs)), now: time.Now}
	for _, def := range defs {
		c.tables[def.Name] = &table{def: def}
	}
	return c
}

// SetClock replaces the time source used for created_at and updated_at.
func (c *Client) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func (c *Client) Select(ctx context.Context, name string, q store.Query, dest any) error {
	if err := ctx.Err(); err != nil {
		return dberr.Network(err)
	}
	c.mu.RLock()
	t, err := c.table(name)
	if err != nil {
		c.mu.RUnlock()
		return err
	}
	matched := make([]store.Row, 0, len(t.rows))
	for _, row := range t.rows {
		ok, err := matchAll(row, q.Filters)
		if err != nil {
			c.mu.RUnlock()
			return err
		}
		if ok {
			matched = append(matched, row.Clone())
		}
	}
	c.mu.RUnlock()

	if len(q.Order) > 0 {
		sort.SliceStable(matched, func(i, j int) bool {
			return less(matched[i], matched[j], q.Order)
		})
	}
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return writeRows(matched, dest)
}

func (c *Client) Insert(ctx context.Context, name string, row store.Row, dest any) error {
	if err := ctx.Err(); err != nil {
		return dberr.Network(err)
	}
	rec, err := normalize(row)
	if err != nil {
		return err
	}

	c.mu.Lock()
	t, err := c.table(name)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	stamp := c.now().UTC().Format(time.RFC3339Nano)
	if t.def.Serial && len(t.def.Key) == 1 {
		key := t.def.Key[0]
		if n, ok := asInt(rec[key]); ok && n > 0 {
			if n > t.seq {
				t.seq = n
			}
		} else {
			t.seq++
			rec[key] = json.Number(itoa(t.seq))
		}
	}
	if rec[store.CreatedAtColumn] == nil {
		rec[store.CreatedAtColumn] = stamp
	}
	if t.def.UpdatedAt && rec[store.UpdatedAtColumn] == nil {
		rec[store.UpdatedAtColumn] = stamp
	}
	if err := t.checkUnique(t.rows, rec, -1); err != nil {
		c.mu.Unlock()
		return err
	}
	t.rows = append(t.rows, rec)
	out := rec.Clone()
	c.mu.Unlock()

	return writeRows([]store.Row{out}, dest)
}

func (c *Client) Update(ctx context.Context, name string, row store.Row, filters []store.Filter, dest any) error {
	if err := ctx.Err(); err != nil {
		return dberr.Network(err)
	}
	changes, err := normalize(row)
	if err != nil {
		return err
	}

	c.mu.Lock()
	t, err := c.table(name)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	stamp := c.now().UTC().Format(time.RFC3339Nano)
	// Changes are staged on a copy and committed only if every row stays unique.
	staged := make([]store.Row, len(t.rows))
	copy(staged, t.rows)
	var changed []int
	for i, existing := range t.rows {
		ok, err := matchAll(existing, filters)
		if err != nil {
			c.mu.Unlock()
			return err
		}
		if !ok {
			continue
		}
		next := existing.Clone()
		for k, v := range changes {
			next[k] = v
		}
		if t.def.UpdatedAt && changes[store.UpdatedAtColumn] == nil {
			next[store.UpdatedAtColumn] = stamp
		}
		staged[i] = next
		changed = append(changed, i)
	}
	updated := make([]store.Row, 0, len(changed))
	for _, i := range changed {
		if err := t.checkUnique(staged, staged[i], i); err != nil {
			c.mu.Unlock()
			return err
		}
		updated = append(updated, staged[i].Clone())
	}
	t.rows = staged
	c.mu.Unlock()

	return writeRows(updated, dest)
}

func (c *Client) Delete(ctx context.Context, name string, filters []store.Filter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, dberr.Network(err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	t, err := c.table(name)
	if err != nil {
		return 0, err
	}
	kept := t.rows[:0:0]
	var removed int64
	for _, row := range t.rows {
		ok, err := matchAll(row, filters)
		if err != nil {
			return 0, err
		}
		if ok {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	t.rows = kept
	return removed, nil
}

func (c *Client) table(name string) (*table, error) {
	t, ok := c.tables[name]
	if !ok {
		return nil, dberr.Store("42P01", `relation "`+name+`" does not exist`, "", nil)
	}
	return t, nil
}

// checkUnique verifies rec against every other row of rows; skip is the index of rec itself.
func (t *table) checkUnique(rows []store.Row, rec store.Row, skip int) error {
	sets := make([][]string, 0, len(t.def.Unique)+1)
	if len(t.def.Key) > 0 {
		sets = append(sets, t.def.Key)
	}
	sets = append(sets, t.def.Unique...)
	for _, cols := range sets {
		for i, other := range rows {
			if i == skip {
				continue
			}
			if sameColumns(rec, other, cols) {
				return dberr.Duplicate(strings.Join(cols, ","))
			}
		}
	}
	return nil
}

func sameColumns(a, b store.Row, cols []string) bool {
	for _, col := range cols {
		if a[col] == nil || b[col] == nil {
			return false
		}
		if canonical(a[col]) != canonical(b[col]) {
			return false
		}
	}
	return true
}

// normalize round-trips row through JSON so stored values have wire types only.
func normalize(row store.Row) (store.Row, error) {
	data, err := json.Marshal(row)
	if err != nil {
		return nil, dberr.Unknown(err)
	}
	out, err := store.DecodeRow(data)
	if err != nil {
		return nil, dberr.Unknown(err)
	}
	if out == nil {
		out = store.Row{}
	}
	return out, nil
}

func writeRows(rows []store.Row, dest any) error {
	if dest == nil {
		return nil
	}
	data, err := store.MarshalRows(rows)
	if err != nil {
		return dberr.Unknown(err)
	}
	return store.DecodeRows(data, dest)
}
