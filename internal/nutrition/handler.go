package nutrition

import (
	"net/http"
	"time"

	"fitcourse/internal/api"
	"fitcourse/internal/auth"
	"fitcourse/internal/logger"
	"fitcourse/internal/progress"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// streakLookback matches the workout streak's history window.
const streakLookback = 365

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// CreateEntry godoc
// @Summary      Log a meal
// @Tags         nutrition
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body  CreateEntryRequest  true  "Meal entry"
// @Success      201  {object}  Entry
// @Failure      400  {object}  api.ErrorResponse
// @Router       /nutrition [post]
func (h *Handler) CreateEntry(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BindError(c, err)
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	entry, err := h.repo.Create(c.Request.Context(), userID, date, req)
	if err != nil {
		logger.Error("Failed to create nutrition entry", "user_id", userID, logger.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save entry"})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// Day godoc
// @Summary      Nutrition diary for a day
// @Description  Entries, totals and the current logging streak for the given date (default today).
// @Tags         nutrition
// @Security     BearerAuth
// @Produce      json
// @Param        date  query  string  false  "Date (YYYY-MM-DD)"
// @Success      200  {object}  DayView
// @Failure      400  {object}  api.ErrorResponse
// @Router       /nutrition [get]
func (h *Handler) Day(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	now := time.Now()
	date := now
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
			return
		}
		date = parsed
	}
	date = date.Truncate(24 * time.Hour)

	ctx := c.Request.Context()
	entries, err := h.repo.ListByDate(ctx, userID, date)
	if err != nil {
		logger.Error("Failed to list nutrition entries", "user_id", userID, logger.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load diary"})
		return
	}

	totals, err := h.repo.TotalsByDate(ctx, userID, date)
	if err != nil {
		logger.Error("Failed to total nutrition entries", "user_id", userID, logger.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load diary"})
		return
	}

	days, err := h.repo.EntryDays(ctx, userID, now.AddDate(0, 0, -streakLookback))
	if err != nil {
		logger.Error("Failed to load nutrition days", "user_id", userID, logger.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load diary"})
		return
	}

	c.JSON(http.StatusOK, DayView{
		Date:       date.Format(dateLayout),
		Entries:    entries,
		Totals:     *totals,
		StreakDays: progress.Streak(days, now),
	})
}
