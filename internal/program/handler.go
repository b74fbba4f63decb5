package program

import (
	"errors"
	"net/http"
	"strconv"

	"fitcourse/internal/auth"
	"fitcourse/internal/logger"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrProgramNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Program not found"})
	case errors.Is(err, ErrWorkoutNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Workout not found"})
	case errors.Is(err, ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not the program owner"})
	default:
		logger.Error("Program operation failed", logger.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

// Browse godoc
// @Summary      List published programs
// @Description  Returns the public program catalog, optionally filtered by level.
// @Tags         programs
// @Produce      json
// @Param        level   query  string  false  "Filter by level"  Enums(beginner, intermediate, advanced)
// @Param        limit   query  int     false  "Max results"      default(20)
// @Param        offset  query  int     false  "Offset"           default(0)
// @Success      200  {array}   Summary
// @Failure      500  {object}  api.ErrorResponse
// @Router       /programs [get]
func (h *Handler) Browse(c *gin.Context) {
	level := c.Query("level")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	programs, err := h.service.Browse(c.Request.Context(), level, limit, offset)
	if err != nil {
		logger.Error("Failed to list programs", logger.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load programs"})
		return
	}

	c.JSON(http.StatusOK, programs)
}

// Detail godoc
// @Summary      Program detail
// @Description  Returns the program page. Content is full, teaser or sign-in prompt depending on the caller's access.
// @Tags         programs
// @Produce      json
// @Param        programID  path  int  true  "Program id"
// @Success      200  {object}  DetailView
// @Failure      404  {object}  api.ErrorResponse
// @Router       /programs/{programID} [get]
func (h *Handler) Detail(c *gin.Context) {
	programID, err := strconv.Atoi(c.Param("programID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid program id"})
		return
	}

	// Session is nil for anonymous callers; the resolver handles that.
	session, _ := auth.GetSession(c)

	view, err := h.service.Detail(c.Request.Context(), session, programID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// Create godoc
// @Summary      Create program
// @Description  Creates an unpublished program owned by the calling trainer.
// @Tags         trainer
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body  CreateProgramRequest  true  "Program data"
// @Success      201  {object}  Program
// @Failure      400  {object}  api.ErrorResponse
// @Router       /trainer/programs [post]
func (h *Handler) Create(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prog, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		logger.Error("Failed to create program", "trainer_id", userID, logger.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create program"})
		return
	}

	logger.Info("Program created", "program_id", prog.ID, "trainer_id", userID)
	c.JSON(http.StatusCreated, prog)
}

// Update godoc
// @Summary      Update program
// @Tags         trainer
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        programID  path  int                   true  "Program id"
// @Param        request    body  UpdateProgramRequest  true  "Program data"
// @Success      200  {object}  Program
// @Failure      403  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /trainer/programs/{programID} [put]
func (h *Handler) Update(c *gin.Context) {
	session, ok := auth.GetSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	programID, err := strconv.Atoi(c.Param("programID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid program id"})
		return
	}

	var req UpdateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prog, err := h.service.Update(c.Request.Context(), session, programID, req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, prog)
}

// Publish godoc
// @Summary      Publish program
// @Description  Makes the program browsable by everyone.
// @Tags         trainer
// @Security     BearerAuth
// @Produce      json
// @Param        programID  path  int  true  "Program id"
// @Success      200  {object}  api.MessageResponse
// @Failure      403  {object}  api.ErrorResponse
// @Router       /trainer/programs/{programID}/publish [post]
func (h *Handler) Publish(c *gin.Context) {
	h.setPublished(c, true)
}

// Unpublish godoc
// @Summary      Unpublish program
// @Tags         trainer
// @Security     BearerAuth
// @Produce      json
// @Param        programID  path  int  true  "Program id"
// @Success      200  {object}  api.MessageResponse
// @Failure      403  {object}  api.ErrorResponse
// @Router       /trainer/programs/{programID}/unpublish [post]
func (h *Handler) Unpublish(c *gin.Context) {
	h.setPublished(c, false)
}

func (h *Handler) setPublished(c *gin.Context, published bool) {
	session, ok := auth.GetSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	programID, err := strconv.Atoi(c.Param("programID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid program id"})
		return
	}

	if err := h.service.SetPublished(c.Request.Context(), session, programID, published); err != nil {
		h.respondServiceError(c, err)
		return
	}

	message := "Program unpublished"
	if published {
		message = "Program published"
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// ListMine godoc
// @Summary      List own programs
// @Description  Returns the calling trainer's programs, drafts included.
// @Tags         trainer
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  Summary
// @Router       /trainer/programs [get]
func (h *Handler) ListMine(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	programs, err := h.service.ListMine(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list trainer programs", "trainer_id", userID, logger.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load programs"})
		return
	}

	c.JSON(http.StatusOK, programs)
}

// AddWorkout godoc
// @Summary      Add workout to program
// @Tags         trainer
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        programID  path  int                   true  "Program id"
// @Param        request    body  CreateWorkoutRequest  true  "Workout data"
// @Success      201  {object}  Workout
// @Failure      403  {object}  api.ErrorResponse
// @Router       /trainer/programs/{programID}/workouts [post]
func (h *Handler) AddWorkout(c *gin.Context) {
	session, ok := auth.GetSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	programID, err := strconv.Atoi(c.Param("programID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid program id"})
		return
	}

	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	workout, err := h.service.AddWorkout(c.Request.Context(), session, programID, req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, workout)
}

// AddExercise godoc
// @Summary      Add exercise to workout
// @Tags         trainer
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        workoutID  path  int                    true  "Workout id"
// @Param        request    body  CreateExerciseRequest  true  "Exercise data"
// @Success      201  {object}  Exercise
// @Failure      403  {object}  api.ErrorResponse
// @Router       /trainer/workouts/{workoutID}/exercises [post]
func (h *Handler) AddExercise(c *gin.Context) {
	session, ok := auth.GetSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	workoutID, err := strconv.Atoi(c.Param("workoutID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid workout id"})
		return
	}

	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	exercise, err := h.service.AddExercise(c.Request.Context(), session, workoutID, req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, exercise)
}
