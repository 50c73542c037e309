package repository

import (
	"context"

	"alcyxob/fitness-coach/internal/dberr"
	"alcyxob/fitness-coach/internal/domain"
	"alcyxob/fitness-coach/internal/store"
)

// ErrNotFound matches every not-found failure with errors.Is.
var ErrNotFound = dberr.ErrNotFound

// Store is the CRUD contract shared by every entity accessor.
type Store[E any, K domain.Key] interface {
	// FetchAll returns every record; an empty collection yields an empty slice.
	FetchAll(ctx context.Context) ([]E, error)
	// FetchOne returns the record with the given key or a not-found error.
	FetchOne(ctx context.Context, id K) (E, error)
	// Create stores e and returns the record as stored, with server-assigned fields.
	Create(ctx context.Context, e E) (E, error)
	// Update replaces the record with e's key and returns the stored result.
	Update(ctx context.Context, e E) (E, error)
	// Delete removes the record with the given key or returns a not-found error.
	Delete(ctx context.Context, id K) error
}

// FetchMany fetches ids one at a time, in order, stopping at the first failure.
// No call is made for an empty list.
func FetchMany[E any, K domain.Key](ctx context.Context, s Store[E, K], ids []K) ([]E, error) {
	out := make([]E, 0, len(ids))
	for _, id := range ids {
		e, err := s.FetchOne(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// Exists reports whether a record with the given key exists. Not-found is absorbed;
// every other failure is returned.
func Exists[E any, K domain.Key](ctx context.Context, s Store[E, K], id K) (bool, error) {
	_, err := s.FetchOne(ctx, id)
	if err == nil {
		return true, nil
	}
	if dberr.IsNotFound(err) {
		return false, nil
	}
	return false, err
}

// ExerciseRepository defines the interface for interacting with exercise data.
type ExerciseRepository interface {
	Store[domain.Exercise, domain.ID]
	FetchIn(ctx context.Context, ids []domain.ID) ([]domain.Exercise, error)
	List(ctx context.Context, f ExerciseFilter) ([]domain.Exercise, error)
	GetByCategory(ctx context.Context, categoryID domain.ID) ([]domain.Exercise, error)
	GetByDifficulty(ctx context.Context, difficulty domain.Difficulty) ([]domain.Exercise, error)
	GetByCreator(ctx context.Context, creatorID domain.ID) ([]domain.Exercise, error)
	GetPublic(ctx context.Context) ([]domain.Exercise, error)
	Search(ctx context.Context, query string) ([]domain.Exercise, error)
	GetByMuscleGroup(ctx context.Context, muscleGroup string) ([]domain.Exercise, error)
	GetByEquipment(ctx context.Context, equipment string) ([]domain.Exercise, error)
	GetBodyweight(ctx context.Context) ([]domain.Exercise, error)
	Categories(ctx context.Context) ([]domain.ExerciseCategory, error)
	Category(ctx context.Context, id domain.ID) (domain.ExerciseCategory, error)
}

// BlockRepository defines the interface for interacting with blocks and their exercises.
type BlockRepository interface {
	Store[domain.Block, domain.ID]
	FetchIn(ctx context.Context, ids []domain.ID) ([]domain.Block, error)
	BlockExercises(ctx context.Context, blockID domain.ID) ([]domain.BlockExercise, error)
	ExercisesWithBlockInfo(ctx context.Context, blockID domain.ID) ([]Joined[domain.Exercise, domain.BlockExercise], error)
	Links() Store[domain.BlockExercise, domain.CompositeID]
}

// WorkoutRepository defines the interface for interacting with workouts and their blocks.
type WorkoutRepository interface {
	Store[domain.Workout, domain.ID]
	FetchIn(ctx context.Context, ids []domain.ID) ([]domain.Workout, error)
	WorkoutBlocks(ctx context.Context, workoutID domain.ID) ([]domain.WorkoutBlock, error)
	BlocksWithWorkoutInfo(ctx context.Context, workoutID domain.ID) ([]Joined[domain.Block, domain.WorkoutBlock], error)
	GetByDifficulty(ctx context.Context, difficulty domain.Difficulty) ([]domain.Workout, error)
	GetByCreator(ctx context.Context, creatorID domain.ID) ([]domain.Workout, error)
	GetTemplates(ctx context.Context) ([]domain.Workout, error)
	Links() Store[domain.WorkoutBlock, domain.CompositeID]
}

// ProgramRepository defines the interface for interacting with programs and their schedules.
type ProgramRepository interface {
	Store[domain.Program, domain.ID]
	ProgramWorkouts(ctx context.Context, programID domain.ID) ([]domain.ProgramWorkout, error)
	WorkoutsWithProgramInfo(ctx context.Context, programID domain.ID) ([]Joined[domain.Workout, domain.ProgramWorkout], error)
	GetByDifficulty(ctx context.Context, difficulty domain.Difficulty) ([]domain.Program, error)
	GetByCreator(ctx context.Context, creatorID domain.ID) ([]domain.Program, error)
	GetTemplates(ctx context.Context) ([]domain.Program, error)
	Links() Store[domain.ProgramWorkout, domain.ID]
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Store[domain.User, domain.ID]
	GetByAppUserID(ctx context.Context, appUserID string) (domain.User, error)
}

// Repositories bundles every accessor built on one store client.
type Repositories struct {
	Exercises ExerciseRepository
	Blocks    BlockRepository
	Workouts  WorkoutRepository
	Programs  ProgramRepository
	Users     UserRepository
}

// New builds all repositories on client.
func New(client store.Client) *Repositories {
	v := NewValidator()
	exercises := NewExerciseRepository(client, v)
	blocks := NewBlockRepository(client, v, exercises)
	workouts := NewWorkoutRepository(client, v, blocks)
	return &Repositories{
		Exercises: exercises,
		Blocks:    blocks,
		Workouts:  workouts,
		Programs:  NewProgramRepository(client, v, workouts),
		Users:     NewUserRepository(client, v),
	}
}
