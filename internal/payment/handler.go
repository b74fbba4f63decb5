package payment

import (
	"net/http"
	"strconv"

	"fitcourse/internal/auth"
	"fitcourse/internal/logger"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// ListMine godoc
// @Summary      Payment history
// @Tags         billing
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  Payment
// @Router       /me/payments [get]
func (h *Handler) ListMine(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	payments, err := h.repo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list payments", "user_id", userID, logger.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}

	c.JSON(http.StatusOK, payments)
}

// ListAll godoc
// @Summary      All payments
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        limit   query  int  false  "Max results"  default(50)
// @Param        offset  query  int  false  "Offset"       default(0)
// @Success      200  {array}  Payment
// @Router       /admin/payments [get]
func (h *Handler) ListAll(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	payments, err := h.repo.ListAll(c.Request.Context(), limit, offset)
	if err != nil {
		logger.Error("Failed to list payments", logger.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}

	c.JSON(http.StatusOK, payments)
}
