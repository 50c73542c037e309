package repository

import "alcyxob/fitness-coach/internal/store"

// Table definitions of the fitness schema.
var (
	ExercisesTable = store.TableDef{
		Name: "exercises", Key: []string{"exercise_id"}, Serial: true, UpdatedAt: true,
	}
	ExerciseCategoriesTable = store.TableDef{
		Name: "exercise_categories", Key: []string{"category_id"}, Serial: true,
		Unique: [][]string{{"name"}},
	}
	BlocksTable = store.TableDef{
		Name: "blocks", Key: []string{"block_id"}, Serial: true, UpdatedAt: true,
	}
	BlockExercisesTable = store.TableDef{
		Name: "block_exercises", Key: []string{"block_id", "exercise_id"}, UpdatedAt: true,
	}
	WorkoutsTable = store.TableDef{
		Name: "workouts", Key: []string{"workout_id"}, Serial: true, UpdatedAt: true,
	}
	WorkoutBlocksTable = store.TableDef{
		Name: "workout_blocks", Key: []string{"workout_id", "block_id"},
	}
	ProgramsTable = store.TableDef{
		Name: "programs", Key: []string{"program_id"}, Serial: true, UpdatedAt: true,
	}
	ProgramWorkoutsTable = store.TableDef{
		Name: "program_workouts", Key: []string{"program_workout_id"}, Serial: true,
	}
	UsersTable = store.TableDef{
		Name: "users", Key: []string{"user_id"}, Serial: true, UpdatedAt: true,
		Unique: [][]string{{"app_user_id"}, {"username"}, {"email"}},
	}
)

// Schema lists every table, for stores that need to know them up front.
func Schema() []store.TableDef {
	return []store.TableDef{
		ExercisesTable,
		ExerciseCategoriesTable,
		BlocksTable,
		BlockExercisesTable,
		WorkoutsTable,
		WorkoutBlocksTable,
		ProgramsTable,
		ProgramWorkoutsTable,
		UsersTable,
	}
}
