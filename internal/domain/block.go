package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Block is an ordered group of exercises inside a workout.
type Block struct {
	ID                   ID        `json:"block_id,omitzero"`
	Name                 string    `json:"name" validate:"required,max=200"`
	Description          *string   `json:"description"`
	BlockType            BlockType `json:"block_type" validate:"required,oneof=warmup main cooldown superset circuit standard"`
	RestBetweenExercises int       `json:"rest_between_exercises" validate:"min=0"`
	CreatedBy            *ID       `json:"created_by"`
	CreatedAt            time.Time `json:"created_at,omitzero"`
	UpdatedAt            time.Time `json:"updated_at,omitzero"`
}

func (b Block) Key() ID { return b.ID }

// BlockExercise places an exercise in a block with its prescription.
// It is keyed by the (block, exercise) pair.
type BlockExercise struct {
	BlockID         ID               `json:"block_id" validate:"required"`
	ExerciseID      ID               `json:"exercise_id" validate:"required"`
	OrderInBlock    int              `json:"order_in_block" validate:"min=0"`
	Sets            *int             `json:"sets" validate:"omitempty,min=1"`
	Repetitions     *int             `json:"repetitions" validate:"omitempty,min=1"`
	RestSeconds     *int             `json:"rest_seconds" validate:"omitempty,min=0"`
	WeightKg        *decimal.Decimal `json:"weight_kg"`
	DurationSeconds *int             `json:"duration_seconds" validate:"omitempty,min=1"`
	Notes           *string          `json:"notes"`
	CreatedAt       time.Time        `json:"created_at,omitzero"`
	UpdatedAt       time.Time        `json:"updated_at,omitzero"`
}

func (be BlockExercise) Key() CompositeID {
	return CompositeID{Parent: be.BlockID, Child: be.ExerciseID}
}
