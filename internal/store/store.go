// Package store defines the contract between repositories and the remote data store.
//
// A Client speaks in tables, rows and filters using the snake_case column names of the
// wire format. Implementations live in subpackages (postgrest, pgsql, mongo, memory) and
// are the only code that converts raw transport or driver errors into dberr failures.
package store

import "context"

// Row is one record in wire shape, keyed by column name.
type Row map[string]any

// Client is a handle to the remote store. Implementations must be safe for concurrent use.
//
// dest arguments are pointers to slices; rows are decoded into them from their wire shape.
type Client interface {
	// Select decodes every row of table matching q into dest.
	Select(ctx context.Context, table string, q Query, dest any) error
	// Insert stores row and decodes the canonical stored row(s) into dest.
	Insert(ctx context.Context, table string, row Row, dest any) error
	// Update sets the columns of row on every record matching filters and decodes the
	// updated rows into dest. No matching records leaves dest empty.
	Update(ctx context.Context, table string, row Row, filters []Filter, dest any) error
	// Delete removes every record matching filters and reports how many were removed.
	Delete(ctx context.Context, table string, filters []Filter) (int64, error)
}

// TableDef describes what a store must know about a table when it assigns keys and
// timestamps itself rather than delegating to the database.
type TableDef struct {
	Name string
	// Key lists the primary key columns: one for simple keys, two for composite keys.
	Key []string
	// Serial marks a single-column key assigned by the store on insert.
	Serial bool
	// UpdatedAt marks tables with an updated_at column maintained on every write.
	UpdatedAt bool
	// Unique lists additional column sets that must be unique.
	Unique [][]string
}

// Columns used on every table.
const (
	CreatedAtColumn = "created_at"
	UpdatedAtColumn = "updated_at"
)

type accessTokenKey struct{}

// WithAccessToken attaches the caller's session token so stores that enforce row-level
// security can act on the caller's behalf.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey{}, token)
}

// AccessToken returns the session token attached to ctx, if any.
func AccessToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(accessTokenKey{}).(string)
	return token, ok && token != ""
}
