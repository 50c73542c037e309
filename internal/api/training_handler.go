package api

import (
	"net/http"

	"alcyxob/fitness-coach/internal/domain"
	"alcyxob/fitness-coach/internal/service"

	"github.com/gin-gonic/gin"
)

type TrainingHandler struct {
	trainingService service.TrainingService
}

func NewTrainingHandler(trainingService service.TrainingService) *TrainingHandler {
	return &TrainingHandler{trainingService: trainingService}
}

type ListWorkoutsQuery struct {
	Difficulty string `form:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	CreatorID  *int64 `form:"creator" binding:"omitempty,min=1"`
	Templates  bool   `form:"templates"`
}

// ListWorkouts godoc
// @Summary List workouts
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Workout
// @Router /workouts [get]
func (h *TrainingHandler) ListWorkouts(c *gin.Context) {
	var q ListWorkoutsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	query := service.WorkoutQuery{Difficulty: domain.Difficulty(q.Difficulty), TemplatesOnly: q.Templates}
	if q.CreatorID != nil {
		id := domain.ID(*q.CreatorID)
		query.CreatorID = &id
	}

	workouts, err := h.trainingService.Workouts(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workouts)
}

// GetWorkout godoc
// @Summary Get a workout with its blocks and exercises
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Workout ID"
// @Success 200 {object} service.WorkoutDetail
// @Failure 404 {object} gin.H "Not found"
// @Router /workouts/{id} [get]
func (h *TrainingHandler) GetWorkout(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	detail, err := h.trainingService.WorkoutDetail(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// ListPrograms godoc
// @Summary List the program catalog
// @Description Programs are marked locked for callers without a premium subscription.
// @Tags Programs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.ProgramSummary
// @Router /programs [get]
func (h *TrainingHandler) ListPrograms(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		respondError(c, service.ErrUnauthenticated)
		return
	}
	programs, err := h.trainingService.Programs(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, programs)
}

// GetProgramSchedule godoc
// @Summary Get a program's week-by-week schedule
// @Tags Programs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Success 200 {array} service.ScheduleWeek
// @Failure 403 {object} gin.H "Premium subscription required"
// @Failure 404 {object} gin.H "Not found"
// @Router /programs/{id}/schedule [get]
func (h *TrainingHandler) GetProgramSchedule(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		respondError(c, service.ErrUnauthenticated)
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	weeks, err := h.trainingService.ProgramSchedule(c.Request.Context(), principal, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, weeks)
}
