package api

import (
	"net/http"

	"alcyxob/fitness-coach/internal/domain"
	"alcyxob/fitness-coach/internal/repository"
	"alcyxob/fitness-coach/internal/service"

	"github.com/gin-gonic/gin"
)

// LibraryHandler serves the exercise library.
type LibraryHandler struct {
	libraryService service.LibraryService
}

// NewLibraryHandler creates a new LibraryHandler.
func NewLibraryHandler(libraryService service.LibraryService) *LibraryHandler {
	return &LibraryHandler{libraryService: libraryService}
}

// ListExercisesQuery holds the optional filters of GET /exercises.
type ListExercisesQuery struct {
	CategoryID  *int64 `form:"category" binding:"omitempty,min=1"`
	Difficulty  string `form:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	Search      string `form:"q" binding:"omitempty,max=100"`
	MuscleGroup string `form:"muscle"`
	Equipment   string `form:"equipment"`
	CreatorID   *int64 `form:"creator" binding:"omitempty,min=1"`
	PublicOnly  bool   `form:"public"`
	Bodyweight  bool   `form:"bodyweight"`
}

func (q ListExercisesQuery) filter() repository.ExerciseFilter {
	f := repository.ExerciseFilter{
		Difficulty:  domain.Difficulty(q.Difficulty),
		PublicOnly:  q.PublicOnly,
		Search:      q.Search,
		MuscleGroup: q.MuscleGroup,
		Equipment:   q.Equipment,
		Bodyweight:  q.Bodyweight,
	}
	if q.CategoryID != nil {
		id := domain.ID(*q.CategoryID)
		f.CategoryID = &id
	}
	if q.CreatorID != nil {
		id := domain.ID(*q.CreatorID)
		f.CreatorID = &id
	}
	return f
}

// ListExercises godoc
// @Summary List exercises
// @Description Lists library exercises matching every given filter, ordered by name.
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Exercise
// @Failure 400 {object} gin.H "Invalid filter"
// @Router /exercises [get]
func (h *LibraryHandler) ListExercises(c *gin.Context) {
	var q ListExercisesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercises, err := h.libraryService.ListExercises(c.Request.Context(), q.filter())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, exercises)
}

// GetExercise godoc
// @Summary Get an exercise
// @Description Media references are returned as fetchable URLs.
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exercise ID"
// @Success 200 {object} domain.Exercise
// @Failure 404 {object} gin.H "Not found"
// @Router /exercises/{id} [get]
func (h *LibraryHandler) GetExercise(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	exercise, err := h.libraryService.GetExercise(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, exercise)
}

// ListCategories godoc
// @Summary List exercise categories
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.ExerciseCategory
// @Router /categories [get]
func (h *LibraryHandler) ListCategories(c *gin.Context) {
	categories, err := h.libraryService.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *LibraryHandler) GetCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	category, err := h.libraryService.Category(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// GetBlockExercises godoc
// @Summary List the exercises of a block
// @Description Exercises come with their prescription, in block order.
// @Tags Blocks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Block ID"
// @Success 200 {array} service.ExerciseInBlock
// @Failure 404 {object} gin.H "Block not found"
// @Router /blocks/{id}/exercises [get]
func (h *LibraryHandler) GetBlockExercises(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	items, err := h.libraryService.BlockExercises(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
