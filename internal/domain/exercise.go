// internal/domain/exercise.go
package domain

import "time"

// NoEquipment is the single equipment entry of bodyweight exercises.
const NoEquipment = "None"

// Exercise represents a single exercise definition in the library.
type Exercise struct {
	ID                     ID         `json:"exercise_id,omitzero"`
	Name                   string     `json:"name" validate:"required,max=200"`
	Description            *string    `json:"description"`
	VideoURL               *string    `json:"video_url"`
	ImageURL               *string    `json:"image_url"`
	CategoryID             *ID        `json:"category_id"`
	MuscleGroups           []string   `json:"muscle_groups" validate:"dive,required"`
	EquipmentNeeded        []string   `json:"equipment_needed" validate:"dive,required"`
	DifficultyLevel        Difficulty `json:"difficulty_level" validate:"required,oneof=beginner intermediate advanced"`
	DefaultDurationSeconds *int       `json:"default_duration_seconds" validate:"omitempty,min=1"`
	IsPublic               bool       `json:"is_public"`
	CreatedBy              ID         `json:"created_by" validate:"required"`
	CreatedAt              time.Time  `json:"created_at,omitzero"`
	UpdatedAt              time.Time  `json:"updated_at,omitzero"`
}

func (e Exercise) Key() ID { return e.ID }

// IsBodyweight reports whether the exercise needs no equipment.
func (e Exercise) IsBodyweight() bool {
	return len(e.EquipmentNeeded) == 1 && e.EquipmentNeeded[0] == NoEquipment
}

// ExerciseCategory groups exercises. Categories are immutable once created.
type ExerciseCategory struct {
	ID          ID        `json:"category_id,omitzero"`
	Name        string    `json:"name" validate:"required,max=100"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
}

func (c ExerciseCategory) Key() ID { return c.ID }

// UpdatedAt is the creation time; categories are never modified.
func (c ExerciseCategory) UpdatedAt() time.Time { return c.CreatedAt }
