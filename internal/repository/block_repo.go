package repository

import (
	"context"

	"alcyxob/fitness-coach/internal/domain"
	"alcyxob/fitness-coach/internal/store"

	"github.com/go-playground/validator/v10"
)

type blockRepository struct {
	*Table[domain.Block, domain.ID]
	links     *Table[domain.BlockExercise, domain.CompositeID]
	exercises ExerciseRepository
}

// NewBlockRepository creates the block accessor. Exercises are resolved through exercises.
func NewBlockRepository(client store.Client, v *validator.Validate, exercises ExerciseRepository) BlockRepository {
	return &blockRepository{
		Table:     NewTable[domain.Block, domain.ID](client, BlocksTable, "Block", v),
		links:     NewTable[domain.BlockExercise, domain.CompositeID](client, BlockExercisesTable, "BlockExercise", v),
		exercises: exercises,
	}
}

// BlockExercises returns the exercise prescriptions of a block ordered by position.
func (r *blockRepository) BlockExercises(ctx context.Context, blockID domain.ID) ([]domain.BlockExercise, error) {
	return r.links.Find(ctx, store.Where(store.Eq("block_id", int64(blockID))).OrderBy(store.Asc("order_in_block")))
}

// ExercisesWithBlockInfo pairs each exercise of a block with its prescription, in block order.
func (r *blockRepository) ExercisesWithBlockInfo(ctx context.Context, blockID domain.ID) ([]Joined[domain.Exercise, domain.BlockExercise], error) {
	return Join(ctx,
		func(ctx context.Context) ([]domain.BlockExercise, error) { return r.BlockExercises(ctx, blockID) },
		func(be domain.BlockExercise) domain.ID { return be.ExerciseID },
		r.exercises.FetchIn,
	)
}

func (r *blockRepository) Links() Store[domain.BlockExercise, domain.CompositeID] {
	return r.links
}
