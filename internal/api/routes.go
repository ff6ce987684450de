package api

import (
	"alcyxob/exercise-log/internal/logger"
	"alcyxob/exercise-log/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers middleware and every endpoint on router.
func SetupRoutes(
	router *gin.Engine,
	log *logger.Logger,
	allowOrigins []string,
	exerciseService service.ExerciseService,
) {
	router.Use(RequestID(), RequestLogger(log), CORS(allowOrigins))

	exerciseHandler := NewExerciseHandler(exerciseService, log)

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/openapi")
	})
	router.GET("/openapi", ServeOpenAPI)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// --- Exercise Routes ---
	router.POST("/exercicio", exerciseHandler.AddExercise)
	router.GET("/exercicios", exerciseHandler.ListExercises)
	router.GET("/exercicio", exerciseHandler.GetExercise)
	router.DELETE("/exercicio", exerciseHandler.DeleteExercise)

	// --- Description Routes ---
	router.POST("/descricao", exerciseHandler.AddDescription)
}
