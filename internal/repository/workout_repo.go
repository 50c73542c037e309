package repository

import (
	"context"

	"alcyxob/fitness-coach/internal/domain"
	"alcyxob/fitness-coach/internal/store"

	"github.com/go-playground/validator/v10"
)

type workoutRepository struct {
	*Table[domain.Workout, domain.ID]
	links  *Table[domain.WorkoutBlock, domain.CompositeID]
	blocks BlockRepository
}

// NewWorkoutRepository creates the workout accessor. Blocks are resolved through blocks.
func NewWorkoutRepository(client store.Client, v *validator.Validate, blocks BlockRepository) WorkoutRepository {
	return &workoutRepository{
		Table:  NewTable[domain.Workout, domain.ID](client, WorkoutsTable, "Workout", v),
		links:  NewTable[domain.WorkoutBlock, domain.CompositeID](client, WorkoutBlocksTable, "WorkoutBlock", v),
		blocks: blocks,
	}
}

// WorkoutBlocks returns the block placements of a workout ordered by position.
func (r *workoutRepository) WorkoutBlocks(ctx context.Context, workoutID domain.ID) ([]domain.WorkoutBlock, error) {
	return r.links.Find(ctx, store.Where(store.Eq("workout_id", int64(workoutID))).OrderBy(store.Asc("order_in_workout")))
}

// BlocksWithWorkoutInfo pairs each block of a workout with its placement, in workout order.
func (r *workoutRepository) BlocksWithWorkoutInfo(ctx context.Context, workoutID domain.ID) ([]Joined[domain.Block, domain.WorkoutBlock], error) {
	return Join(ctx,
		func(ctx context.Context) ([]domain.WorkoutBlock, error) { return r.WorkoutBlocks(ctx, workoutID) },
		func(wb domain.WorkoutBlock) domain.ID { return wb.BlockID },
		r.blocks.FetchIn,
	)
}

func (r *workoutRepository) GetByDifficulty(ctx context.Context, difficulty domain.Difficulty) ([]domain.Workout, error) {
	return r.Find(ctx, store.Where(store.Eq("difficulty_level", string(difficulty))))
}

func (r *workoutRepository) GetByCreator(ctx context.Context, creatorID domain.ID) ([]domain.Workout, error) {
	return r.Find(ctx, store.Where(store.Eq("created_by", int64(creatorID))))
}

func (r *workoutRepository) GetTemplates(ctx context.Context) ([]domain.Workout, error) {
	return r.Find(ctx, store.Where(store.Eq("is_template", true)))
}

func (r *workoutRepository) Links() Store[domain.WorkoutBlock, domain.CompositeID] {
	return r.links
}
