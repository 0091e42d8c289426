package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fintrack-app/fintrack_backend/internal/apperrors"
	portssvc "github.com/fintrack-app/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-app/fintrack_backend/internal/dto"
	"github.com/fintrack-app/fintrack_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// defaultRenewalWindowDays bounds the upcoming-renewals list.
const defaultRenewalWindowDays = 14

var monthsPerYear = decimal.NewFromInt(12)

// subscriptionHandler handles HTTP requests related to subscriptions.
type subscriptionHandler struct {
	subService portssvc.SubscriptionSvcFacade
}

// newSubscriptionHandler creates a new subscriptionHandler.
func newSubscriptionHandler(ss portssvc.SubscriptionSvcFacade) *subscriptionHandler {
	return &subscriptionHandler{subService: ss}
}

// registerSubscriptionRoutes registers routes related to subscriptions.
func registerSubscriptionRoutes(rg *gin.RouterGroup, subService portssvc.SubscriptionSvcFacade) {
	h := newSubscriptionHandler(subService)

	subscriptions := rg.Group("/subscriptions")
	{
		subscriptions.GET("", h.listSubscriptions)
		subscriptions.POST("", h.createSubscription)
		subscriptions.GET("/summary", h.subscriptionSummary)
		subscriptions.GET("/renewals", h.upcomingRenewals)
		subscriptions.PUT("/:subscriptionID", h.updateSubscription)
		subscriptions.DELETE("/:subscriptionID", h.deleteSubscription)
		subscriptions.POST("/:subscriptionID/billing-events", h.recordBillingEvent)
	}
}

// listSubscriptions godoc
// @Summary List subscriptions
// @Tags subscriptions
// @Produce json
// @Param userID path string true "Owner ID"
// @Success 200 {array} dto.SubscriptionResponse
// @Router /users/{userID}/subscriptions [get]
func (h *subscriptionHandler) listSubscriptions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("userID")

	subs, err := h.subService.FetchSubscriptions(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to fetch subscriptions", slog.String("error", err.Error()), slog.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscriptions"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSubscriptionResponses(subs))
}

// createSubscription godoc
// @Summary Track a subscription
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param userID path string true "Owner ID"
// @Param subscription body dto.CreateSubscriptionRequest true "Subscription details"
// @Success 201 {object} dto.SubscriptionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "Subscription already exists"
// @Router /users/{userID}/subscriptions [post]
func (h *subscriptionHandler) createSubscription(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("userID")

	var req dto.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createSubscription", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	sub, err := h.subService.CreateSubscription(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating subscription", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": "Subscription already exists"})
		default:
			logger.Error("Failed to create subscription", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subscription"})
		}
		return
	}

	logger.Info("Subscription created", slog.String("subscription_id", sub.SubscriptionID))
	c.JSON(http.StatusCreated, dto.ToSubscriptionResponse(sub))
}

// updateSubscription godoc
// @Summary Update a subscription
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param userID path string true "Owner ID"
// @Param subscriptionID path string true "Subscription ID"
// @Param subscription body dto.UpdateSubscriptionRequest true "Fields to update"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Subscription not found"
// @Router /users/{userID}/subscriptions/{subscriptionID} [put]
func (h *subscriptionHandler) updateSubscription(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("userID")
	subscriptionID := c.Param("subscriptionID")

	var req dto.UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateSubscription", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	sub, err := h.subService.UpdateSubscription(c.Request.Context(), userID, subscriptionID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error updating subscription", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
		default:
			logger.Error("Failed to update subscription", slog.String("error", err.Error()), slog.String("subscription_id", subscriptionID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update subscription"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSubscriptionResponse(sub))
}

// deleteSubscription godoc
// @Summary Stop tracking a subscription
// @Tags subscriptions
// @Produce json
// @Param userID path string true "Owner ID"
// @Param subscriptionID path string true "Subscription ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Subscription not found"
// @Router /users/{userID}/subscriptions/{subscriptionID} [delete]
func (h *subscriptionHandler) deleteSubscription(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("userID")
	subscriptionID := c.Param("subscriptionID")

	err := h.subService.DeleteSubscription(c.Request.Context(), userID, subscriptionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
		} else {
			logger.Error("Failed to delete subscription", slog.String("error", err.Error()), slog.String("subscription_id", subscriptionID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete subscription"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// subscriptionSummary godoc
// @Summary Normalized subscription cost totals
// @Description Reports the month-equivalent and annualized cost of active subscriptions
// @Tags subscriptions
// @Produce json
// @Param userID path string true "Owner ID"
// @Success 200 {object} dto.SubscriptionSummaryResponse
// @Router /users/{userID}/subscriptions/summary [get]
func (h *subscriptionHandler) subscriptionSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("userID")

	subs, err := h.subService.FetchSubscriptions(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to fetch subscriptions for summary", slog.String("error", err.Error()), slog.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscriptions"})
		return
	}

	monthly := h.subService.TotalMonthlyCost(subs)
	active := 0
	for _, sub := range subs {
		if sub.IsActive {
			active++
		}
	}

	c.JSON(http.StatusOK, dto.SubscriptionSummaryResponse{
		MonthlyCost: monthly,
		AnnualCost:  monthly.Mul(monthsPerYear),
		ActiveCount: active,
		TotalCount:  len(subs),
	})
}

// upcomingRenewals godoc
// @Summary Upcoming renewals
// @Description Lists active subscriptions renewing within the window, soonest first
// @Tags subscriptions
// @Produce json
// @Param userID path string true "Owner ID"
// @Param days query int false "Window in days (default 14)"
// @Success 200 {array} dto.RenewalResponse
// @Failure 400 {object} map[string]string "Invalid window"
// @Router /users/{userID}/subscriptions/renewals [get]
func (h *subscriptionHandler) upcomingRenewals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("userID")

	windowDays := defaultRenewalWindowDays
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a non-negative integer"})
			return
		}
		windowDays = parsed
	}

	subs, err := h.subService.FetchSubscriptions(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to fetch subscriptions for renewals", slog.String("error", err.Error()), slog.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscriptions"})
		return
	}

	renewals := h.subService.UpcomingRenewals(subs, windowDays)
	c.JSON(http.StatusOK, dto.ToRenewalResponses(renewals))
}

// recordBillingEvent godoc
// @Summary Record a billing event
// @Description Advances the next billing date by one cycle, anchored to the current next billing date
// @Tags subscriptions
// @Produce json
// @Param userID path string true "Owner ID"
// @Param subscriptionID path string true "Subscription ID"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 404 {object} map[string]string "Subscription not found"
// @Router /users/{userID}/subscriptions/{subscriptionID}/billing-events [post]
func (h *subscriptionHandler) recordBillingEvent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("userID")
	subscriptionID := c.Param("subscriptionID")

	sub, err := h.subService.RecordBillingEvent(c.Request.Context(), userID, subscriptionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
		} else {
			logger.Error("Failed to record billing event", slog.String("error", err.Error()), slog.String("subscription_id", subscriptionID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record billing event"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSubscriptionResponse(sub))
}
