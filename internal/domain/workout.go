package domain

import "time"

// Workout is a session made of ordered blocks.
type Workout struct {
	ID                       ID           `json:"workout_id,omitzero"`
	Name                     string       `json:"name" validate:"required,max=200"`
	Description              *string      `json:"description"`
	EstimatedDurationMinutes *int         `json:"estimated_duration_minutes" validate:"omitempty,min=1"`
	DifficultyLevel          Difficulty   `json:"difficulty_level" validate:"required,oneof=beginner intermediate advanced"`
	WorkoutType              *WorkoutType `json:"workout_type" validate:"omitempty,oneof=strength cardio hybrid mobility other"`
	IsTemplate               bool         `json:"is_template"`
	CreatedBy                ID           `json:"created_by" validate:"required"`
	CreatedAt                time.Time    `json:"created_at,omitzero"`
	UpdatedAt                time.Time    `json:"updated_at,omitzero"`
}

func (w Workout) Key() ID { return w.ID }

// WorkoutBlock places a block in a workout. Immutable once created.
type WorkoutBlock struct {
	WorkoutID             ID        `json:"workout_id" validate:"required"`
	BlockID               ID        `json:"block_id" validate:"required"`
	OrderInWorkout        int       `json:"order_in_workout" validate:"min=0"`
	RestAfterBlockSeconds int       `json:"rest_after_block_seconds" validate:"min=0"`
	CreatedAt             time.Time `json:"created_at,omitzero"`
}

func (wb WorkoutBlock) Key() CompositeID {
	return CompositeID{Parent: wb.WorkoutID, Child: wb.BlockID}
}

func (wb WorkoutBlock) UpdatedAt() time.Time { return wb.CreatedAt }
