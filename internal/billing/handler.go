package billing

import (
	"errors"
	"net/http"
	"strconv"

	"fitcourse/internal/auth"
	"fitcourse/internal/logger"
	"fitcourse/internal/user"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type ConfirmRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

// CreateCheckout godoc
// @Summary      Start subscription checkout
// @Description  Creates a checkout session and returns the URL to redirect the user to.
// @Tags         billing
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  api.RetryableErrorResponse
// @Router       /billing/checkout [post]
func (h *Handler) CreateCheckout(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	url, err := h.service.CreateCheckout(c.Request.Context(), userID)
	if err != nil {
		h.respondBillingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"checkout_url": url})
}

// Confirm godoc
// @Summary      Confirm a completed checkout
// @Description  Reconciles the checkout session with the user's subscription. Safe to call repeatedly.
// @Tags         billing
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body  ConfirmRequest  true  "Checkout session id"
// @Success      200  {object}  Subscription
// @Failure      404  {object}  api.ErrorResponse
// @Failure      409  {object}  api.RetryableErrorResponse
// @Failure      503  {object}  api.RetryableErrorResponse
// @Router       /billing/confirm [post]
func (h *Handler) Confirm(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, err := h.service.Confirm(c.Request.Context(), req.SessionID, userID)
	if err != nil {
		h.respondBillingError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

// Plans godoc
// @Summary      List subscription plans
// @Tags         billing
// @Produce      json
// @Success      200  {array}  Plan
// @Router       /billing/plans [get]
func (h *Handler) Plans(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Plans(c.Request.Context()))
}

// MySubscription godoc
// @Summary      Current subscription
// @Tags         billing
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Subscription
// @Router       /me/subscription [get]
func (h *Handler) MySubscription(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	sub, err := h.service.MySubscription(c.Request.Context(), userID)
	if err != nil {
		h.respondBillingError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

// Grant godoc
// @Summary      Grant a subscription
// @Description  Activates a subscription for the target user without payment.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        userID  path  int  true  "Target user id"
// @Success      200  {object}  Subscription
// @Failure      404  {object}  api.ErrorResponse
// @Router       /admin/users/{userID}/subscription [post]
func (h *Handler) Grant(c *gin.Context) {
	session, ok := auth.GetSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	targetID, err := strconv.Atoi(c.Param("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	sub, err := h.service.Grant(c.Request.Context(), targetID, session)
	if err != nil {
		h.respondBillingError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

// Revoke godoc
// @Summary      Revoke a subscription
// @Description  Clears the target user's subscription. Enrollments are kept.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        userID  path  int  true  "Target user id"
// @Success      200  {object}  api.MessageResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /admin/users/{userID}/subscription [delete]
func (h *Handler) Revoke(c *gin.Context) {
	session, ok := auth.GetSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	targetID, err := strconv.Atoi(c.Param("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.service.Revoke(c.Request.Context(), targetID, session); err != nil {
		h.respondBillingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscription revoked"})
}

func (h *Handler) respondBillingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Checkout session not found"})
	case errors.Is(err, ErrNotCompleted):
		c.JSON(http.StatusConflict, gin.H{"error": "Payment not completed yet", "retryable": true})
	case errors.Is(err, ErrTransient):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Payment provider unavailable", "retryable": true})
	case errors.Is(err, user.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	default:
		logger.Error("Billing operation failed", logger.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
