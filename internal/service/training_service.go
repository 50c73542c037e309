package service

import (
	"context"

	"alcyxob/fitness-coach/internal/auth"
	"alcyxob/fitness-coach/internal/dberr"
	"alcyxob/fitness-coach/internal/domain"
	"alcyxob/fitness-coach/internal/repository"

	"github.com/rs/zerolog"
)

// WorkoutQuery narrows a workout listing. Zero fields are ignored.
type WorkoutQuery struct {
	Difficulty    domain.Difficulty
	CreatorID     *domain.ID
	TemplatesOnly bool
}

func (q WorkoutQuery) matches(w domain.Workout) bool {
	if q.Difficulty != "" && w.DifficultyLevel != q.Difficulty {
		return false
	}
	if q.CreatorID != nil && w.CreatedBy != *q.CreatorID {
		return false
	}
	if q.TemplatesOnly && !w.IsTemplate {
		return false
	}
	return true
}

// BlockDetail is a block in a workout with its exercises.
type BlockDetail struct {
	Block     domain.Block        `json:"block"`
	Placement domain.WorkoutBlock `json:"placement"`
	Exercises []ExerciseInBlock   `json:"exercises"`
}

// WorkoutDetail is a workout with every block and exercise, in workout order.
type WorkoutDetail struct {
	Workout domain.Workout `json:"workout"`
	Blocks  []BlockDetail  `json:"blocks"`
}

// ProgramSummary is a catalog entry. Locked programs need a premium subscription.
type ProgramSummary struct {
	domain.Program
	Locked bool `json:"locked"`
}

// ScheduledWorkout is a workout on a given day of a program.
type ScheduledWorkout struct {
	Workout domain.Workout        `json:"workout"`
	Entry   domain.ProgramWorkout `json:"entry"`
}

// ScheduleWeek groups the scheduled workouts of one program week, by day.
type ScheduleWeek struct {
	WeekNumber int                `json:"week_number"`
	Days       []ScheduledWorkout `json:"days"`
}

// TrainingService exposes workouts and programs.
type TrainingService interface {
	Workouts(ctx context.Context, q WorkoutQuery) ([]domain.Workout, error)
	WorkoutDetail(ctx context.Context, workoutID domain.ID) (*WorkoutDetail, error)
	Programs(ctx context.Context, principal auth.Principal) ([]ProgramSummary, error)
	ProgramSchedule(ctx context.Context, principal auth.Principal, programID domain.ID) ([]ScheduleWeek, error)
}

type trainingService struct {
	workoutRepo repository.WorkoutRepository
	blockRepo   repository.BlockRepository
	programRepo repository.ProgramRepository
	userRepo    repository.UserRepository
	log         zerolog.Logger
}

// NewTrainingService creates the training service.
func NewTrainingService(
	workoutRepo repository.WorkoutRepository,
	blockRepo repository.BlockRepository,
	programRepo repository.ProgramRepository,
	userRepo repository.UserRepository,
	logger zerolog.Logger,
) TrainingService {
	return &trainingService{
		workoutRepo: workoutRepo,
		blockRepo:   blockRepo,
		programRepo: programRepo,
		userRepo:    userRepo,
		log:         logger,
	}
}

// Workouts lists workouts matching every criterion of q. The most selective stored filter
// runs remotely; the rest are applied to its result.
func (s *trainingService) Workouts(ctx context.Context, q WorkoutQuery) ([]domain.Workout, error) {
	var (
		workouts []domain.Workout
		err      error
	)
	switch {
	case q.CreatorID != nil:
		workouts, err = s.workoutRepo.GetByCreator(ctx, *q.CreatorID)
	case q.TemplatesOnly:
		workouts, err = s.workoutRepo.GetTemplates(ctx)
	case q.Difficulty != "":
		workouts, err = s.workoutRepo.GetByDifficulty(ctx, q.Difficulty)
	default:
		workouts, err = s.workoutRepo.FetchAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	out := make([]domain.Workout, 0, len(workouts))
	for _, w := range workouts {
		if q.matches(w) {
			out = append(out, w)
		}
	}
	return out, nil
}

// WorkoutDetail loads a workout, its blocks and then the exercises of each block in turn.
// The first failure aborts the whole load.
func (s *trainingService) WorkoutDetail(ctx context.Context, workoutID domain.ID) (*WorkoutDetail, error) {
	workout, err := s.workoutRepo.FetchOne(ctx, workoutID)
	if err != nil {
		return nil, err
	}
	blocks, err := s.workoutRepo.BlocksWithWorkoutInfo(ctx, workoutID)
	if err != nil {
		return nil, err
	}

	detail := &WorkoutDetail{Workout: workout, Blocks: make([]BlockDetail, 0, len(blocks))}
	for _, b := range blocks {
		exercises, err := s.blockRepo.ExercisesWithBlockInfo(ctx, b.Child.ID)
		if err != nil {
			return nil, err
		}
		items := make([]ExerciseInBlock, 0, len(exercises))
		for _, e := range exercises {
			items = append(items, ExerciseInBlock{Exercise: e.Child, Prescription: e.Link})
		}
		detail.Blocks = append(detail.Blocks, BlockDetail{Block: b.Child, Placement: b.Link, Exercises: items})
	}
	return detail, nil
}

// Programs lists the program catalog. Every program is locked for callers without premium.
func (s *trainingService) Programs(ctx context.Context, principal auth.Principal) ([]ProgramSummary, error) {
	programs, err := s.programRepo.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	premium, err := s.isPremium(ctx, principal)
	if err != nil {
		return nil, err
	}
	out := make([]ProgramSummary, 0, len(programs))
	for _, p := range programs {
		out = append(out, ProgramSummary{Program: p, Locked: !premium})
	}
	return out, nil
}

// ProgramSchedule returns a program's workouts grouped by week, in (week, day) order.
func (s *trainingService) ProgramSchedule(ctx context.Context, principal auth.Principal, programID domain.ID) ([]ScheduleWeek, error) {
	premium, err := s.isPremium(ctx, principal)
	if err != nil {
		return nil, err
	}
	if !premium {
		return nil, ErrPremiumRequired
	}
	if _, err := s.programRepo.FetchOne(ctx, programID); err != nil {
		return nil, err
	}
	joined, err := s.programRepo.WorkoutsWithProgramInfo(ctx, programID)
	if err != nil {
		return nil, err
	}

	weeks := make([]ScheduleWeek, 0)
	for _, j := range joined {
		entry := ScheduledWorkout{Workout: j.Child, Entry: j.Link}
		if n := len(weeks); n > 0 && weeks[n-1].WeekNumber == j.Link.WeekNumber {
			weeks[n-1].Days = append(weeks[n-1].Days, entry)
			continue
		}
		weeks = append(weeks, ScheduleWeek{WeekNumber: j.Link.WeekNumber, Days: []ScheduledWorkout{entry}})
	}
	return weeks, nil
}

// isPremium uses the token's flag, then the last-known flag stored on the user record.
// A caller without a user record is not premium.
func (s *trainingService) isPremium(ctx context.Context, principal auth.Principal) (bool, error) {
	if principal.Premium {
		return true, nil
	}
	if principal.AppUserID == "" {
		return false, nil
	}
	user, err := s.userRepo.GetByAppUserID(ctx, principal.AppUserID)
	if dberr.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.IsPremium, nil
}
