package audit

import (
	"net/http"
	"strconv"

	"fitcourse/internal/logger"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	log *Log
}

func NewHandler(log *Log) *Handler {
	return &Handler{log: log}
}

// List godoc
// @Summary      Audit log
// @Description  Most recent administrative actions, newest first.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        limit  query  int  false  "Max entries"  default(50)
// @Success      200  {array}  Entry
// @Router       /admin/audit [get]
func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := h.log.Tail(limit)
	if err != nil {
		logger.Error("Failed to read audit log", logger.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read audit log"})
		return
	}

	c.JSON(http.StatusOK, entries)
}
