// internal/domain/program.go
package domain

import "time"

// Program is a multi-week plan of workouts.
type Program struct {
	ID              ID           `json:"program_id,omitzero"`
	Name            string       `json:"name" validate:"required,max=200"`
	Description     *string      `json:"description"`
	DurationWeeks   int          `json:"duration_weeks" validate:"min=1"`
	DifficultyLevel Difficulty   `json:"difficulty_level" validate:"required,oneof=beginner intermediate advanced"`
	ProgramType     *ProgramType `json:"program_type" validate:"omitempty,oneof=strength weight_loss muscle_gain endurance other"`
	IsTemplate      bool         `json:"is_template"`
	CreatedBy       ID           `json:"created_by" validate:"required"`
	CreatedAt       time.Time    `json:"created_at,omitzero"`
	UpdatedAt       time.Time    `json:"updated_at,omitzero"`
}

func (p Program) Key() ID { return p.ID }

// ProgramWorkout schedules a workout on a given week and day of a program.
// Unlike the other link entities it has its own surrogate key.
type ProgramWorkout struct {
	ID         ID        `json:"program_workout_id,omitzero"`
	ProgramID  ID        `json:"program_id" validate:"required"`
	WorkoutID  ID        `json:"workout_id" validate:"required"`
	WeekNumber int       `json:"week_number" validate:"min=1"`
	DayOfWeek  DayOfWeek `json:"day_of_week" validate:"min=1,max=7"`
	IsRestDay  bool      `json:"is_rest_day"`
	Notes      *string   `json:"notes"`
	CreatedAt  time.Time `json:"created_at,omitzero"`
}

func (pw ProgramWorkout) Key() ID { return pw.ID }

func (pw ProgramWorkout) UpdatedAt() time.Time { return pw.CreatedAt }

// Before orders schedule entries by week, then day.
func (pw ProgramWorkout) Before(other ProgramWorkout) bool {
	if pw.WeekNumber != other.WeekNumber {
		return pw.WeekNumber < other.WeekNumber
	}
	return pw.DayOfWeek < other.DayOfWeek
}
