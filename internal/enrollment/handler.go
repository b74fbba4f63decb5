package enrollment

import (
	"net/http"
	"strconv"

	"fitcourse/internal/auth"
	"fitcourse/internal/logger"
	"fitcourse/internal/metrics"
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

// Enroll godoc
// @Summary      Enroll in a program
// @Description  Grants the caller explicit access to one published program.
// @Tags         programs
// @Security     BearerAuth
// @Produce      json
// @Param        programID  path  int  true  "Program id"
// @Success      201  {object}  Enrollment
// @Failure      404  {object}  api.ErrorResponse
// @Router       /programs/{programID}/enroll [post]
func (h *Handler) Enroll(c *gin.Context) {
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

	enrollment, err := h.repo.Enroll(c.Request.Context(), userID, programID)
	if err != nil {
		logger.Error("Failed to enroll", "user_id", userID, "program_id", programID, logger.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enroll"})
		return
	}

	logger.Info("User enrolled", "user_id", userID, "program_id", programID)
	metrics.RecordEnrollment()

	c.JSON(http.StatusCreated, enrollment)
}

// Grant godoc
// @Summary      Grant an enrollment
// @Description  Admin grant of explicit program access to another user.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        userID     path  int  true  "User id"
// @Param        programID  path  int  true  "Program id"
// @Success      200  {object}  Enrollment
// @Failure      404  {object}  api.ErrorResponse
// @Router       /admin/users/{userID}/enrollments/{programID} [post]
func (h *Handler) Grant(c *gin.Context) {
	targetID, err := strconv.Atoi(c.Param("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	programID, err := strconv.Atoi(c.Param("programID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid program id"})
		return
	}

	// Admins can grant access to unpublished programs too.
	if _, err := h.programs.GetByID(c.Request.Context(), programID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Program not found"})
		return
	}

	enrollment, err := h.repo.Enroll(c.Request.Context(), targetID, programID)
	if err != nil {
		logger.Error("Failed to grant enrollment", "user_id", targetID, "program_id", programID, logger.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to grant enrollment"})
		return
	}

	logger.Info("Enrollment granted", "user_id", targetID, "program_id", programID)
	metrics.RecordEnrollment()

	c.JSON(http.StatusOK, enrollment)
}

// Revoke godoc
// @Summary      Revoke an enrollment
// @Description  Admin deactivation of a user's explicit program access.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        userID     path  int  true  "User id"
// @Param        programID  path  int  true  "Program id"
// @Success      200  {object}  map[string]string
// @Router       /admin/users/{userID}/enrollments/{programID} [delete]
func (h *Handler) Revoke(c *gin.Context) {
	targetID, err := strconv.Atoi(c.Param("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	programID, err := strconv.Atoi(c.Param("programID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid program id"})
		return
	}

	if err := h.repo.Deactivate(c.Request.Context(), targetID, programID); err != nil {
		logger.Error("Failed to revoke enrollment", "user_id", targetID, "program_id", programID, logger.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke enrollment"})
		return
	}

	logger.Info("Enrollment revoked", "user_id", targetID, "program_id", programID)

	c.JSON(http.StatusOK, gin.H{"message": "Enrollment revoked"})
}

// ListMine godoc
// @Summary      List own enrollments
// @Tags         user
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  Enrollment
// @Router       /me/enrollments [get]
func (h *Handler) ListMine(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	enrollments, err := h.repo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load enrollments"})
		return
	}

	c.JSON(http.StatusOK, enrollments)
}
