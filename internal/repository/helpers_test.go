package repository

import (
	"context"
	"sync"
	"testing"

	"alcyxob/fitness-coach/internal/domain"
	"alcyxob/fitness-coach/internal/store"
	"alcyxob/fitness-coach/internal/store/memory"

	"github.com/stretchr/testify/require"
)

// countingClient records round trips and can fail every call on a table.
type countingClient struct {
	store.Client
	mu     sync.Mutex
	calls  map[string]int
	failOn map[string]error
}

func newCountingClient(inner store.Client) *countingClient {
	return &countingClient{Client: inner, calls: map[string]int{}, failOn: map[string]error{}}
}

func (c *countingClient) record(table string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[table]++
	return c.failOn[table]
}

func (c *countingClient) Calls(table string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[table]
}

func (c *countingClient) Select(ctx context.Context, table string, q store.Query, dest any) error {
	if err := c.record(table); err != nil {
		return err
	}
	return c.Client.Select(ctx, table, q, dest)
}

func (c *countingClient) Insert(ctx context.Context, table string, row store.Row, dest any) error {
	if err := c.record(table); err != nil {
		return err
	}
	return c.Client.Insert(ctx, table, row, dest)
}

func (c *countingClient) Update(ctx context.Context, table string, row store.Row, filters []store.Filter, dest any) error {
	if err := c.record(table); err != nil {
		return err
	}
	return c.Client.Update(ctx, table, row, filters, dest)
}

func (c *countingClient) Delete(ctx context.Context, table string, filters []store.Filter) (int64, error) {
	if err := c.record(table); err != nil {
		return 0, err
	}
	return c.Client.Delete(ctx, table, filters)
}

func newTestRepos(t *testing.T) (*Repositories, *countingClient) {
	t.Helper()
	client := newCountingClient(memory.New(Schema()...))
	return New(client), client
}

func newExercise(name string, equipment ...string) domain.Exercise {
	return domain.Exercise{
		Name:            name,
		MuscleGroups:    []string{},
		EquipmentNeeded: equipment,
		DifficultyLevel: domain.DifficultyBeginner,
		CreatedBy:       1,
	}
}

func createExercise(t *testing.T, r ExerciseRepository, e domain.Exercise) domain.Exercise {
	t.Helper()
	out, err := r.Create(context.Background(), e)
	require.NoError(t, err)
	return out
}

func createBlock(t *testing.T, r BlockRepository, name string) domain.Block {
	t.Helper()
	out, err := r.Create(context.Background(), domain.Block{Name: name, BlockType: domain.BlockMain})
	require.NoError(t, err)
	return out
}

func createWorkout(t *testing.T, r WorkoutRepository, name string) domain.Workout {
	t.Helper()
	out, err := r.Create(context.Background(), domain.Workout{
		Name:            name,
		DifficultyLevel: domain.DifficultyIntermediate,
		CreatedBy:       1,
	})
	require.NoError(t, err)
	return out
}
