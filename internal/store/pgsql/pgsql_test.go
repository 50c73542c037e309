package pgsql

import (
	"context"
	"errors"
	"net"
	"testing"

	"alcyxob/fitness-coach/internal/dberr"
	"alcyxob/fitness-coach/internal/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type exercise struct {
	ID       int64  `json:"exercise_id,omitzero"`
	Name     string `json:"name"`
	IsPublic bool   `json:"is_public"`
}

func newMock(t *testing.T) (*Client, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(sqlx.NewDb(db, "sqlmock"), zerolog.Nop()), mock
}

func TestSelect(t *testing.T) {
	c, mock := newMock(t)

	mock.ExpectQuery(`SELECT coalesce(json_agg(t), '[]'::json) FROM (SELECT * FROM "exercises" WHERE "difficulty_level" = $1 AND "exercise_id" = ANY($2) AND "muscle_groups" @> $3 AND "name" ILIKE $4 ORDER BY "name" ASC, "created_at" DESC LIMIT $5) t`).
		WithArgs("beginner", pq.Int64Array{1, 2}, pq.StringArray{"chest"}, "%push%", 5).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow([]byte(`[{"exercise_id":1,"name":"Push Up","is_public":true}]`)))

	q := store.Where(
		store.Eq("difficulty_level", "beginner"),
		store.In("exercise_id", []int64{1, 2}),
		store.Contains("muscle_groups", "chest"),
		store.ILike("name", "%push%"),
	).OrderBy(store.Asc("name"), store.Desc("created_at"))
	q.Limit = 5

	var out []exercise
	require.NoError(t, c.Select(context.Background(), "exercises", q, &out))

	assert.Equal(t, []exercise{{ID: 1, Name: "Push Up", IsPublic: true}}, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert(t *testing.T) {
	c, mock := newMock(t)

	mock.ExpectQuery(`WITH t AS (INSERT INTO "exercises" ("is_public", "name") VALUES ($1, $2) RETURNING *) SELECT coalesce(json_agg(t), '[]'::json) FROM t`).
		WithArgs(true, "Squat").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow([]byte(`[{"exercise_id":7,"name":"Squat","is_public":true}]`)))

	row, err := store.EncodeRow(exercise{Name: "Squat", IsPublic: true})
	require.NoError(t, err)

	var out []exercise
	require.NoError(t, c.Insert(context.Background(), "exercises", row, &out))

	assert.Equal(t, []exercise{{ID: 7, Name: "Squat", IsPublic: true}}, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate(t *testing.T) {
	c, mock := newMock(t)

	mock.ExpectQuery(`WITH t AS (UPDATE "exercises" SET "name" = $1 WHERE "exercise_id" = $2 RETURNING *) SELECT coalesce(json_agg(t), '[]'::json) FROM t`).
		WithArgs("Front Squat", 7).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow([]byte(`[]`)))

	var out []exercise
	err := c.Update(context.Background(), "exercises", store.Row{"name": "Front Squat"},
		[]store.Filter{store.Eq("exercise_id", 7)}, &out)

	require.NoError(t, err)
	assert.Empty(t, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NoColumns(t *testing.T) {
	c, _ := newMock(t)

	err := c.Update(context.Background(), "exercises", store.Row{}, nil, nil)

	assert.Equal(t, dberr.KindValidation, dberr.KindOf(err))
}

func TestDelete(t *testing.T) {
	c, mock := newMock(t)

	mock.ExpectExec(`DELETE FROM "block_exercises" WHERE "block_id" = $1 AND "exercise_id" = $2`).
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := c.Delete(context.Background(), "block_exercises",
		[]store.Filter{store.Eq("block_id", 1), store.Eq("exercise_id", 2)})

	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind dberr.Kind
	}{
		{name: "unique violation", err: &pq.Error{Code: "23505", Constraint: "users_email_key"}, kind: dberr.KindDuplicate},
		{name: "check violation", err: &pq.Error{Code: "23514", Message: "violates check constraint"}, kind: dberr.KindValidation},
		{name: "insufficient privilege", err: &pq.Error{Code: "42501", Message: "permission denied"}, kind: dberr.KindUnauthorized},
		{name: "undefined table", err: &pq.Error{Code: "42P01", Message: "relation does not exist"}, kind: dberr.KindStore},
		{name: "connection failure", err: &pq.Error{Code: "08006"}, kind: dberr.KindNetwork},
		{name: "socket", err: &net.OpError{Op: "read", Net: "tcp", Err: errors.New("connection reset")}, kind: dberr.KindNetwork},
		{name: "deadline", err: context.DeadlineExceeded, kind: dberr.KindNetwork},
		{name: "other", err: errors.New("boom"), kind: dberr.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, dberr.KindOf(mapError(tt.err)))
		})
	}
}

func TestSelect_DriverError(t *testing.T) {
	c, mock := newMock(t)

	mock.ExpectQuery(`SELECT coalesce(json_agg(t), '[]'::json) FROM (SELECT * FROM "users" WHERE "app_user_id" = $1) t`).
		WithArgs("abc").
		WillReturnError(&pq.Error{Code: "42501", Message: "permission denied for table users"})

	var out []exercise
	err := c.Select(context.Background(), "users", store.Where(store.Eq("app_user_id", "abc")), &out)

	assert.Equal(t, dberr.KindUnauthorized, dberr.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
