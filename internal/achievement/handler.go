package achievement

import (
	"context"
	"net/http"

	"fitcourse/internal/auth"
	"fitcourse/internal/logger"

	"github.com/gin-gonic/gin"
)

// CounterSource supplies the per-user counters the evaluator runs over.
// The progress repository satisfies it.
type CounterSource interface {
	TotalWorkouts(ctx context.Context, userID int) (int, error)
	ActivePrograms(ctx context.Context, userID int) (int, error)
}

type Handler struct {
	counters CounterSource
}

func NewHandler(counters CounterSource) *Handler {
	return &Handler{counters: counters}
}

// ListMine godoc
// @Summary      Achievements
// @Description  Evaluates every achievement against the caller's current counters.
// @Tags         progress
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  Achievement
// @Router       /me/achievements [get]
func (h *Handler) ListMine(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ctx := c.Request.Context()
	totalWorkouts, err := h.counters.TotalWorkouts(ctx, userID)
	if err != nil {
		logger.Error("Failed to load workout counter", "user_id", userID, logger.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load achievements"})
		return
	}

	activePrograms, err := h.counters.ActivePrograms(ctx, userID)
	if err != nil {
		logger.Error("Failed to load program counter", "user_id", userID, logger.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load achievements"})
		return
	}

	c.JSON(http.StatusOK, Evaluate(Counters{
		TotalWorkouts:       totalWorkouts,
		TotalActivePrograms: activePrograms,
	}))
}
