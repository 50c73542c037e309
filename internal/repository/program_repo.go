package repository

import (
	"context"

	"alcyxob/fitness-coach/internal/domain"
	"alcyxob/fitness-coach/internal/store"

	"github.com/go-playground/validator/v10"
)

type programRepository struct {
	*Table[domain.Program, domain.ID]
	links    *Table[domain.ProgramWorkout, domain.ID]
	workouts WorkoutRepository
}

// NewProgramRepository creates the program accessor. Workouts are resolved through workouts.
func NewProgramRepository(client store.Client, v *validator.Validate, workouts WorkoutRepository) ProgramRepository {
	return &programRepository{
		Table:    NewTable[domain.Program, domain.ID](client, ProgramsTable, "Program", v),
		links:    NewTable[domain.ProgramWorkout, domain.ID](client, ProgramWorkoutsTable, "ProgramWorkout", v),
		workouts: workouts,
	}
}

// ProgramWorkouts returns the schedule of a program ordered by week, then day.
func (r *programRepository) ProgramWorkouts(ctx context.Context, programID domain.ID) ([]domain.ProgramWorkout, error) {
	q := store.Where(store.Eq("program_id", int64(programID))).
		OrderBy(store.Asc("week_number"), store.Asc("day_of_week"))
	return r.links.Find(ctx, q)
}

// WorkoutsWithProgramInfo pairs each scheduled workout with its schedule entry, in schedule order.
func (r *programRepository) WorkoutsWithProgramInfo(ctx context.Context, programID domain.ID) ([]Joined[domain.Workout, domain.ProgramWorkout], error) {
	return Join(ctx,
		func(ctx context.Context) ([]domain.ProgramWorkout, error) { return r.ProgramWorkouts(ctx, programID) },
		func(pw domain.ProgramWorkout) domain.ID { return pw.WorkoutID },
		r.workouts.FetchIn,
	)
}

func (r *programRepository) GetByDifficulty(ctx context.Context, difficulty domain.Difficulty) ([]domain.Program, error) {
	return r.Find(ctx, store.Where(store.Eq("difficulty_level", string(difficulty))))
}

func (r *programRepository) GetByCreator(ctx context.Context, creatorID domain.ID) ([]domain.Program, error) {
	return r.Find(ctx, store.Where(store.Eq("created_by", int64(creatorID))))
}

func (r *programRepository) GetTemplates(ctx context.Context) ([]domain.Program, error) {
	return r.Find(ctx, store.Where(store.Eq("is_template", true)))
}

func (r *programRepository) Links() Store[domain.ProgramWorkout, domain.ID] {
	return r.links
}
