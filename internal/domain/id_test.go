package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, SimpleKey, ID(4).Kind())
	assert.Equal(t, CompositeKey, CompositeID{Parent: 1, Child: 2}.Kind())
	assert.Equal(t, "1-2", CompositeID{Parent: 1, Child: 2}.String())

	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, ID(42), id)

	_, err = ParseID("forty-two")
	assert.Error(t, err)
}

func TestBlockExercise_DecodesFlatCompositeKey(t *testing.T) {
	raw := `{
		"block_id": 3,
		"exercise_id": 9,
		"order_in_block": 2,
		"sets": 4,
		"repetitions": null,
		"weight_kg": 22.50,
		"created_at": "2025-09-18T10:00:00+00:00",
		"updated_at": "2025-09-18T10:00:00+00:00"
	}`

	var be BlockExercise
	require.NoError(t, json.Unmarshal([]byte(raw), &be))

	assert.Equal(t, CompositeID{Parent: 3, Child: 9}, be.Key())
	require.NotNil(t, be.Sets)
	assert.Equal(t, 4, *be.Sets)
	assert.Nil(t, be.Repetitions)
	require.NotNil(t, be.WeightKg)
	assert.True(t, be.WeightKg.Equal(decimal.RequireFromString("22.5")))
}

func TestExercise_EncodingOmitsServerAssignedFields(t *testing.T) {
	ex := Exercise{Name: "Push-up", DifficultyLevel: DifficultyBeginner, CreatedBy: 1}

	data, err := json.Marshal(ex)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.NotContains(t, fields, "exercise_id")
	assert.NotContains(t, fields, "created_at")
	assert.NotContains(t, fields, "updated_at")
	assert.Contains(t, fields, "description")

	ex.ID = 5
	ex.CreatedAt = time.Date(2025, 9, 18, 0, 0, 0, 0, time.UTC)
	data, err = json.Marshal(ex)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"exercise_id":5`)
}

func TestProgramWorkout_Before(t *testing.T) {
	w1mon := ProgramWorkout{WeekNumber: 1, DayOfWeek: Monday}
	w1fri := ProgramWorkout{WeekNumber: 1, DayOfWeek: Friday}
	w2sun := ProgramWorkout{WeekNumber: 2, DayOfWeek: Sunday}

	assert.True(t, w1mon.Before(w1fri))
	assert.True(t, w1fri.Before(w2sun))
	assert.False(t, w2sun.Before(w1mon))
	assert.True(t, Saturday.Valid())
	assert.False(t, DayOfWeek(8).Valid())
}
