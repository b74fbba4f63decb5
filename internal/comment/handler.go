package comment

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

func (h *Handler) programID(c *gin.Context) (int, bool) {
	programID, err := strconv.Atoi(c.Param("programID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid program id"})
		return 0, false
	}

	prog, err := h.programs.GetByID(c.Request.Context(), programID)
	if err != nil || !prog.Published {
		c.JSON(http.StatusNotFound, gin.H{"error": "Program not found"})
		return 0, false
	}
	return programID, true
}

// Create godoc
// @Summary      Comment on a program
// @Tags         programs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        programID  path  int                   true  "Program id"
// @Param        request    body  CreateCommentRequest  true  "Comment"
// @Success      201  {object}  Comment
// @Failure      404  {object}  api.ErrorResponse
// @Router       /programs/{programID}/comments [post]
func (h *Handler) Create(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	programID, ok := h.programID(c)
	if !ok {
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.repo.Create(c.Request.Context(), programID, userID, req.Body)
	if err != nil {
		logger.Error("Failed to create comment", "user_id", userID, "program_id", programID, logger.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save comment"})
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// List godoc
// @Summary      Program comments
// @Tags         programs
// @Security     BearerAuth
// @Produce      json
// @Param        programID  path   int  true   "Program id"
// @Param        limit      query  int  false  "Max results"  default(50)
// @Param        offset     query  int  false  "Offset"       default(0)
// @Success      200  {array}  Comment
// @Failure      404  {object}  api.ErrorResponse
// @Router       /programs/{programID}/comments [get]
func (h *Handler) List(c *gin.Context) {
	programID, ok := h.programID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	comments, err := h.repo.ListByProgram(c.Request.Context(), programID, limit, offset)
	if err != nil {
		logger.Error("Failed to list comments", "program_id", programID, logger.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load comments"})
		return
	}

	c.JSON(http.StatusOK, comments)
}
