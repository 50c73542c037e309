package repository

import (
	"context"
	"testing"

	"alcyxob/fitness-coach/internal/dberr"
	"alcyxob/fitness-coach/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_CreateThenFetch(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()

	created := createExercise(t, repos.Exercises, newExercise("Push Up", "None"))
	require.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	fetched, err := repos.Exercises.FetchOne(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)
}

func TestTable_FetchAllEmpty(t *testing.T) {
	repos, _ := newTestRepos(t)

	all, err := repos.Exercises.FetchAll(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestTable_FetchOneMissing(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()

	_, err := repos.Exercises.FetchOne(ctx, 99)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Exercise with id 99 not found", err.Error())

	ok, err := Exists[domain.Exercise, domain.ID](ctx, repos.Exercises, 99)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExists(t *testing.T) {
	repos, client := newTestRepos(t)
	ctx := context.Background()
	created := createExercise(t, repos.Exercises, newExercise("Squat"))

	ok, err := Exists[domain.Exercise, domain.ID](ctx, repos.Exercises, created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	client.failOn[ExercisesTable.Name] = dberr.Network(context.DeadlineExceeded)
	ok, err = Exists[domain.Exercise, domain.ID](ctx, repos.Exercises, created.ID)
	assert.False(t, ok)
	assert.Equal(t, dberr.KindNetwork, dberr.KindOf(err))
}

func TestFetchMany(t *testing.T) {
	repos, client := newTestRepos(t)
	ctx := context.Background()
	a := createExercise(t, repos.Exercises, newExercise("A"))
	b := createExercise(t, repos.Exercises, newExercise("B"))

	t.Run("empty input makes no call", func(t *testing.T) {
		before := client.Calls(ExercisesTable.Name)
		out, err := FetchMany[domain.Exercise, domain.ID](ctx, repos.Exercises, nil)
		require.NoError(t, err)
		assert.Empty(t, out)
		assert.Equal(t, before, client.Calls(ExercisesTable.Name))
	})

	t.Run("keeps input order", func(t *testing.T) {
		out, err := FetchMany[domain.Exercise, domain.ID](ctx, repos.Exercises, []domain.ID{b.ID, a.ID})
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, "B", out[0].Name)
		assert.Equal(t, "A", out[1].Name)
	})

	t.Run("stops at first failure", func(t *testing.T) {
		before := client.Calls(ExercisesTable.Name)
		_, err := FetchMany[domain.Exercise, domain.ID](ctx, repos.Exercises, []domain.ID{a.ID, 404, b.ID})
		assert.True(t, dberr.IsNotFound(err))
		assert.Equal(t, before+2, client.Calls(ExercisesTable.Name))
	})
}

func TestTable_FetchIn(t *testing.T) {
	repos, client := newTestRepos(t)
	ctx := context.Background()
	a := createExercise(t, repos.Exercises, newExercise("A"))
	createExercise(t, repos.Exercises, newExercise("B"))
	c := createExercise(t, repos.Exercises, newExercise("C"))

	before := client.Calls(ExercisesTable.Name)
	out, err := repos.Exercises.FetchIn(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, before, client.Calls(ExercisesTable.Name))

	out, err = repos.Exercises.FetchIn(ctx, []domain.ID{c.ID, a.ID, c.ID, 404})
	require.NoError(t, err)
	names := []string{}
	for _, e := range out {
		names = append(names, e.Name)
	}
	assert.ElementsMatch(t, []string{"A", "C"}, names)
	assert.Equal(t, before+1, client.Calls(ExercisesTable.Name))
}

func TestTable_Update(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()
	created := createExercise(t, repos.Exercises, newExercise("Squat"))

	created.Name = "Back Squat"
	created.IsPublic = true
	updated, err := repos.Exercises.Update(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Back Squat", updated.Name)
	assert.True(t, updated.IsPublic)
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	missing := newExercise("Ghost")
	missing.ID = 404
	_, err = repos.Exercises.Update(ctx, missing)
	assert.True(t, dberr.IsNotFound(err))
}

func TestTable_DeleteThenFetch(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()
	created := createExercise(t, repos.Exercises, newExercise("Lunge"))

	require.NoError(t, repos.Exercises.Delete(ctx, created.ID))

	_, err := repos.Exercises.FetchOne(ctx, created.ID)
	assert.True(t, dberr.IsNotFound(err))

	err = repos.Exercises.Delete(ctx, created.ID)
	assert.True(t, dberr.IsNotFound(err))
}

func TestTable_CreateValidates(t *testing.T) {
	repos, client := newTestRepos(t)

	_, err := repos.Exercises.Create(context.Background(), domain.Exercise{DifficultyLevel: "expert", CreatedBy: 1})

	require.Error(t, err)
	assert.Equal(t, dberr.KindValidation, dberr.KindOf(err))
	assert.Contains(t, err.Error(), "name failed on required")
	assert.Contains(t, err.Error(), "difficulty_level failed on oneof")
	assert.Zero(t, client.Calls(ExercisesTable.Name))
}

func TestTable_CompositeKey(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()
	links := repos.Blocks.Links()

	link, err := links.Create(ctx, domain.BlockExercise{BlockID: 1, ExerciseID: 2, OrderInBlock: 1})
	require.NoError(t, err)
	_, err = links.Create(ctx, domain.BlockExercise{BlockID: 1, ExerciseID: 3, OrderInBlock: 2})
	require.NoError(t, err)

	_, err = links.Create(ctx, domain.BlockExercise{BlockID: 1, ExerciseID: 2, OrderInBlock: 5})
	assert.Equal(t, dberr.KindDuplicate, dberr.KindOf(err))

	got, err := links.FetchOne(ctx, domain.CompositeID{Parent: 1, Child: 2})
	require.NoError(t, err)
	assert.Equal(t, link.Key(), got.Key())

	_, err = links.FetchOne(ctx, domain.CompositeID{Parent: 2, Child: 1})
	assert.Equal(t, "BlockExercise with id 2-1 not found", err.Error())

	require.NoError(t, links.Delete(ctx, domain.CompositeID{Parent: 1, Child: 2}))
	remaining, err := repos.Blocks.BlockExercises(ctx, 1)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, domain.ID(3), remaining[0].ExerciseID)
}
