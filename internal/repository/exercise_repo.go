package repository

import (
	"context"
	"strings"

	"alcyxob/fitness-coach/internal/domain"
	"alcyxob/fitness-coach/internal/store"

	"github.com/go-playground/validator/v10"
)

// ExerciseFilter narrows an exercise listing. Zero fields are ignored; the rest are combined.
type ExerciseFilter struct {
	CategoryID  *domain.ID
	Difficulty  domain.Difficulty
	CreatorID   *domain.ID
	PublicOnly  bool
	Search      string
	MuscleGroup string
	Equipment   string
	Bodyweight  bool
}

func (f ExerciseFilter) filters() []store.Filter {
	var out []store.Filter
	if f.CategoryID != nil {
		out = append(out, store.Eq("category_id", int64(*f.CategoryID)))
	}
	if f.Difficulty != "" {
		out = append(out, store.Eq("difficulty_level", string(f.Difficulty)))
	}
	if f.CreatorID != nil {
		out = append(out, store.Eq("created_by", int64(*f.CreatorID)))
	}
	if f.PublicOnly {
		out = append(out, store.Eq("is_public", true))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		out = append(out, store.ILike("name", "%"+escapeLike(s)+"%"))
	}
	if f.MuscleGroup != "" {
		out = append(out, store.Contains("muscle_groups", f.MuscleGroup))
	}
	if f.Equipment != "" {
		out = append(out, store.Contains("equipment_needed", f.Equipment))
	}
	if f.Bodyweight {
		out = append(out, store.Eq("equipment_needed", []string{domain.NoEquipment}))
	}
	return out
}

type exerciseRepository struct {
	*Table[domain.Exercise, domain.ID]
	categories *Table[domain.ExerciseCategory, domain.ID]
}

// NewExerciseRepository creates the exercise accessor, including categories.
func NewExerciseRepository(client store.Client, v *validator.Validate) ExerciseRepository {
	return &exerciseRepository{
		Table:      NewTable[domain.Exercise, domain.ID](client, ExercisesTable, "Exercise", v),
		categories: NewTable[domain.ExerciseCategory, domain.ID](client, ExerciseCategoriesTable, "Category", v),
	}
}

// List returns the exercises matching every set criterion, ordered by name.
func (r *exerciseRepository) List(ctx context.Context, f ExerciseFilter) ([]domain.Exercise, error) {
	return r.Find(ctx, store.Query{Filters: f.filters()}.OrderBy(store.Asc("name")))
}

func (r *exerciseRepository) GetByCategory(ctx context.Context, categoryID domain.ID) ([]domain.Exercise, error) {
	return r.Find(ctx, store.Where(store.Eq("category_id", int64(categoryID))))
}

func (r *exerciseRepository) GetByDifficulty(ctx context.Context, difficulty domain.Difficulty) ([]domain.Exercise, error) {
	return r.Find(ctx, store.Where(store.Eq("difficulty_level", string(difficulty))))
}

func (r *exerciseRepository) GetByCreator(ctx context.Context, creatorID domain.ID) ([]domain.Exercise, error) {
	return r.Find(ctx, store.Where(store.Eq("created_by", int64(creatorID))))
}

func (r *exerciseRepository) GetPublic(ctx context.Context) ([]domain.Exercise, error) {
	return r.Find(ctx, store.Where(store.Eq("is_public", true)))
}

// Search matches names containing query, ignoring case.
func (r *exerciseRepository) Search(ctx context.Context, query string) ([]domain.Exercise, error) {
	return r.List(ctx, ExerciseFilter{Search: query})
}

func (r *exerciseRepository) GetByMuscleGroup(ctx context.Context, muscleGroup string) ([]domain.Exercise, error) {
	return r.Find(ctx, store.Where(store.Contains("muscle_groups", muscleGroup)))
}

func (r *exerciseRepository) GetByEquipment(ctx context.Context, equipment string) ([]domain.Exercise, error) {
	return r.Find(ctx, store.Where(store.Contains("equipment_needed", equipment)))
}

// GetBodyweight returns exercises whose only equipment is "None".
func (r *exerciseRepository) GetBodyweight(ctx context.Context) ([]domain.Exercise, error) {
	return r.Find(ctx, store.Where(store.Eq("equipment_needed", []string{domain.NoEquipment})))
}

func (r *exerciseRepository) Categories(ctx context.Context) ([]domain.ExerciseCategory, error) {
	return r.categories.Find(ctx, store.Query{}.OrderBy(store.Asc("name")))
}

func (r *exerciseRepository) Category(ctx context.Context, id domain.ID) (domain.ExerciseCategory, error) {
	return r.categories.FetchOne(ctx, id)
}

// escapeLike makes LIKE wildcards in user input match literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
