package domain

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Valid reports whether d is one of the known difficulty levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

type BlockType string

const (
	BlockWarmup   BlockType = "warmup"
	BlockMain     BlockType = "main"
	BlockCooldown BlockType = "cooldown"
	BlockSuperset BlockType = "superset"
	BlockCircuit  BlockType = "circuit"
	BlockStandard BlockType = "standard"
)

type WorkoutType string

const (
	WorkoutStrength WorkoutType = "strength"
	WorkoutCardio   WorkoutType = "cardio"
	WorkoutHybrid   WorkoutType = "hybrid"
	WorkoutMobility WorkoutType = "mobility"
	WorkoutOther    WorkoutType = "other"
)

type ProgramType string

const (
	ProgramStrength   ProgramType = "strength"
	ProgramWeightLoss ProgramType = "weight_loss"
	ProgramMuscleGain ProgramType = "muscle_gain"
	ProgramEndurance  ProgramType = "endurance"
	ProgramOther      ProgramType = "other"
)

// DayOfWeek numbers days from Sunday (1) to Saturday (7).
type DayOfWeek int

const (
	Sunday DayOfWeek = iota + 1
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

func (d DayOfWeek) Valid() bool { return d >= Sunday && d <= Saturday }
