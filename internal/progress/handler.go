package progress

import (
	"errors"
	"net/http"
	"strconv"

	"fitcourse/internal/auth"
	"fitcourse/internal/logger"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CompleteWorkout godoc
// @Summary      Mark workout complete
// @Description  Records the workout as done for the calling user. Repeating the call changes nothing.
// @Tags         progress
// @Security     BearerAuth
// @Produce      json
// @Param        workoutID  path  int  true  "Workout id"
// @Success      200  {object}  api.MessageResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /workouts/{workoutID}/complete [post]
func (h *Handler) CompleteWorkout(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	workoutID, err := strconv.Atoi(c.Param("workoutID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid workout id"})
		return
	}

	if err := h.service.CompleteWorkout(c.Request.Context(), userID, workoutID); err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Workout not found"})
			return
		}
		logger.Error("Failed to record completion", "user_id", userID, "workout_id", workoutID, logger.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record completion"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Workout completed"})
}

// Summary godoc
// @Summary      Training progress
// @Tags         progress
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Summary
// @Router       /me/progress [get]
func (h *Handler) Summary(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to load progress", "user_id", userID, logger.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load progress"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
