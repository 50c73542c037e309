package service

import (
	"context"

	"alcyxob/fitness-coach/internal/domain"
	"alcyxob/fitness-coach/internal/repository"
	"alcyxob/fitness-coach/internal/storage"

	"github.com/rs/zerolog"
)

// ExerciseInBlock is an exercise with its prescription inside a block.
type ExerciseInBlock struct {
	Exercise     domain.Exercise      `json:"exercise"`
	Prescription domain.BlockExercise `json:"prescription"`
}

// LibraryService exposes the exercise library.
type LibraryService interface {
	ListExercises(ctx context.Context, f repository.ExerciseFilter) ([]domain.Exercise, error)
	GetExercise(ctx context.Context, id domain.ID) (*domain.Exercise, error)
	Categories(ctx context.Context) ([]domain.ExerciseCategory, error)
	Category(ctx context.Context, id domain.ID) (*domain.ExerciseCategory, error)
	BlockExercises(ctx context.Context, blockID domain.ID) ([]ExerciseInBlock, error)
}

type libraryService struct {
	exerciseRepo repository.ExerciseRepository
	blockRepo    repository.BlockRepository
	media        storage.MediaSigner
	log          zerolog.Logger
}

// NewLibraryService creates the library service. media may be nil, in which case stored
// media references are returned unchanged.
func NewLibraryService(exerciseRepo repository.ExerciseRepository, blockRepo repository.BlockRepository, media storage.MediaSigner, logger zerolog.Logger) LibraryService {
	return &libraryService{
		exerciseRepo: exerciseRepo,
		blockRepo:    blockRepo,
		media:        media,
		log:          logger,
	}
}

func (s *libraryService) ListExercises(ctx context.Context, f repository.ExerciseFilter) ([]domain.Exercise, error) {
	return s.exerciseRepo.List(ctx, f)
}

// GetExercise returns one exercise with media references resolved to fetchable URLs.
func (s *libraryService) GetExercise(ctx context.Context, id domain.ID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.FetchOne(ctx, id)
	if err != nil {
		return nil, err
	}
	s.resolveMedia(ctx, &exercise)
	return &exercise, nil
}

func (s *libraryService) Categories(ctx context.Context) ([]domain.ExerciseCategory, error) {
	return s.exerciseRepo.Categories(ctx)
}

func (s *libraryService) Category(ctx context.Context, id domain.ID) (*domain.ExerciseCategory, error) {
	category, err := s.exerciseRepo.Category(ctx, id)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// BlockExercises returns the exercises of a block in block order.
func (s *libraryService) BlockExercises(ctx context.Context, blockID domain.ID) ([]ExerciseInBlock, error) {
	if _, err := s.blockRepo.FetchOne(ctx, blockID); err != nil {
		return nil, err
	}
	joined, err := s.blockRepo.ExercisesWithBlockInfo(ctx, blockID)
	if err != nil {
		return nil, err
	}
	out := make([]ExerciseInBlock, 0, len(joined))
	for _, j := range joined {
		s.resolveMedia(ctx, &j.Child)
		out = append(out, ExerciseInBlock{Exercise: j.Child, Prescription: j.Link})
	}
	return out, nil
}

// resolveMedia replaces object keys in VideoURL and ImageURL with presigned URLs.
// A signing failure leaves the reference as stored.
func (s *libraryService) resolveMedia(ctx context.Context, e *domain.Exercise) {
	if s.media == nil {
		return
	}
	for _, ref := range []*string{e.VideoURL, e.ImageURL} {
		if ref == nil || !storage.IsObjectKey(*ref) {
			continue
		}
		signed, err := s.media.GeneratePresignedDownloadURL(ctx, *ref, 0)
		if err != nil {
			s.log.Warn().Err(err).Int64("exercise_id", int64(e.ID)).Msg("media url not signed")
			continue
		}
		*ref = signed
	}
}
