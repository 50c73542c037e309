package api

import (
	"net/http"

	"alcyxob/fitness-coach/internal/auth"
	"alcyxob/fitness-coach/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func SetupRoutes(
	router *gin.Engine,
	verifier *auth.Verifier,
	logger zerolog.Logger,
	libraryService service.LibraryService,
	trainingService service.TrainingService,
	profileService service.ProfileService,
) {
	libraryHandler := NewLibraryHandler(libraryService)
	trainingHandler := NewTrainingHandler(trainingService)
	profileHandler := NewProfileHandler(profileService)

	router.Use(RequestIDMiddleware(), LoggerMiddleware(logger))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	protected := router.Group("/api/v1")
	protected.Use(AuthMiddleware(verifier))
	{
		protected.GET("/me", profileHandler.Me)
		protected.PUT("/me/entitlement", profileHandler.SyncEntitlement)

		// --- Library Routes ---
		protected.GET("/exercises", libraryHandler.ListExercises)
		protected.GET("/exercises/:id", libraryHandler.GetExercise)
		protected.GET("/categories", libraryHandler.ListCategories)
		protected.GET("/categories/:id", libraryHandler.GetCategory)
		protected.GET("/blocks/:id/exercises", libraryHandler.GetBlockExercises)

		// --- Training Routes ---
		protected.GET("/workouts", trainingHandler.ListWorkouts)
		protected.GET("/workouts/:id", trainingHandler.GetWorkout)
		protected.GET("/programs", trainingHandler.ListPrograms)
		protected.GET("/programs/:id/schedule", trainingHandler.GetProgramSchedule)
	}
}
