package rating

import (
	"net/http"
	"strconv"

	"fitcourse/internal/auth"
	"fitcourse/internal/logger"
	"fitcourse/internal/program"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo     Repository
	programs program.Repository
}

func NewHandler(repo Repository, programs program.Repository) *Handler {
	return &Handler{repo: repo, programs: programs}
}

// Rate godoc
// @Summary      Rate a program
// @Description  Sets the caller's rating, 1 to 5 stars. Rating again replaces the old value.
// @Tags         programs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        programID  path  int          true  "Program id"
// @Param        request    body  RateRequest  true  "Stars"
// @Success      200  {object}  Rating
// @Failure      404  {object}  api.ErrorResponse
// @Router       /programs/{programID}/rating [put]
func (h *Handler) Rate(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	programID, err := strconv.Atoi(c.Param("programID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid program id"})
		return
	}

	prog, err := h.programs.GetByID(c.Request.Context(), programID)
	if err != nil || !prog.Published {
		c.JSON(http.StatusNotFound, gin.H{"error": "Program not found"})
		return
	}

	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rating, err := h.repo.Upsert(c.Request.Context(), programID, userID, req.Stars)
	if err != nil {
		logger.Error("Failed to save rating", "user_id", userID, "program_id", programID, logger.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save rating"})
		return
	}

	c.JSON(http.StatusOK, rating)
}
