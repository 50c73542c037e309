// Package pgsql implements store.Client over a direct Postgres connection.
//
// Rows travel as JSON: every statement aggregates its result with json_agg, so records
// decode through the same wire format as the REST backend.
package pgsql

import (
	"context"
	"sort"
	"strings"
	"time"

	"alcyxob/fitness-coach/internal/dberr"
	"alcyxob/fitness-coach/internal/store"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, dsn string, maxOpenConns int) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to postgres")
	}
	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
		db.SetMaxIdleConns(maxOpenConns / 2)
	}
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

// Client runs store operations on a connection pool.
type Client struct {
	db  *sqlx.DB
	log zerolog.Logger
}

var _ store.Client = (*Client)(nil)

func New(db *sqlx.DB, logger zerolog.Logger) *Client {
	return &Client{db: db, log: logger.With().Str("component", "pgsql").Logger()}
}

func (c *Client) Select(ctx context.Context, table string, q store.Query, dest any) error {
	var b builder
	b.WriteString("SELECT * FROM ")
	b.WriteString(quoteIdent(table))
	if err := b.where(q.Filters); err != nil {
		return err
	}
	if len(q.Order) > 0 {
		parts := make([]string, len(q.Order))
		for i, o := range q.Order {
			dir := " ASC"
			if o.Descending {
				dir = " DESC"
			}
			parts[i] = quoteIdent(o.Column) + dir
		}
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(parts, ", "))
	}
	if q.Limit > 0 {
		b.WriteString(" LIMIT ")
		b.WriteString(b.bind(q.Limit))
	}
	query := "SELECT coalesce(json_agg(t), '[]'::json) FROM (" + b.String() + ") t"
	return c.queryRows(ctx, table, query, b.args, dest)
}

func (c *Client) Insert(ctx context.Context, table string, row store.Row, dest any) error {
	var b builder
	b.WriteString("INSERT INTO ")
	b.WriteString(quoteIdent(table))
	columns := sortedColumns(row)
	if len(columns) == 0 {
		b.WriteString(" DEFAULT VALUES")
	} else {
		names := make([]string, len(columns))
		values := make([]string, len(columns))
		for i, col := range columns {
			names[i] = quoteIdent(col)
			values[i] = b.bind(argValue(row[col]))
		}
		b.WriteString(" (" + strings.Join(names, ", ") + ") VALUES (" + strings.Join(values, ", ") + ")")
	}
	return c.queryRows(ctx, table, returning(b.String()), b.args, dest)
}

func (c *Client) Update(ctx context.Context, table string, row store.Row, filters []store.Filter, dest any) error {
	columns := sortedColumns(row)
	if len(columns) == 0 {
		return dberr.Validation("no columns to update")
	}
	var b builder
	b.WriteString("UPDATE ")
	b.WriteString(quoteIdent(table))
	sets := make([]string, len(columns))
	for i, col := range columns {
		sets[i] = quoteIdent(col) + " = " + b.bind(argValue(row[col]))
	}
	b.WriteString(" SET " + strings.Join(sets, ", "))
	if err := b.where(filters); err != nil {
		return err
	}
	return c.queryRows(ctx, table, returning(b.String()), b.args, dest)
}

func (c *Client) Delete(ctx context.Context, table string, filters []store.Filter) (int64, error) {
	var b builder
	b.WriteString("DELETE FROM ")
	b.WriteString(quoteIdent(table))
	if err := b.where(filters); err != nil {
		return 0, err
	}
	start := time.Now()
	res, err := c.db.ExecContext(ctx, b.String(), b.args...)
	c.trace(table, "delete", start, err)
	if err != nil {
		return 0, mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, mapError(err)
	}
	return n, nil
}

// returning wraps a data-modifying statement so it yields its rows as one JSON array.
func returning(stmt string) string {
	return "WITH t AS (" + stmt + " RETURNING *) SELECT coalesce(json_agg(t), '[]'::json) FROM t"
}

func (c *Client) queryRows(ctx context.Context, table, query string, args []any, dest any) error {
	start := time.Now()
	var data []byte
	err := c.db.GetContext(ctx, &data, query, args...)
	c.trace(table, "query", start, err)
	if err != nil {
		return mapError(err)
	}
	if dest == nil {
		return nil
	}
	return store.DecodeRows(data, dest)
}

func (c *Client) trace(table, op string, start time.Time, err error) {
	c.log.Debug().
		Err(err).
		Str("table", table).
		Str("op", op).
		Dur("elapsed", time.Since(start)).
		Msg("round trip")
}

func sortedColumns(row store.Row) []string {
	columns := make([]string, 0, len(row))
	for col := range row {
		columns = append(columns, col)
	}
	sort.Strings(columns)
	return columns
}
