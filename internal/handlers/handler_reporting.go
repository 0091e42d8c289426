package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/fintrack-app/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-app/fintrack_backend/internal/dto"
	"github.com/fintrack-app/fintrack_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for derived financial reports.
// Reports are recomputed from the current collections on every read.
type reportingHandler struct {
	txnService portssvc.TransactionSvcFacade
	subService portssvc.SubscriptionSvcFacade
	reporting  portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(ts portssvc.TransactionSvcFacade, ss portssvc.SubscriptionSvcFacade, rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{txnService: ts, subService: ss, reporting: rs}
}

// registerReportingRoutes registers routes related to derived reports.
func registerReportingRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newReportingHandler(services.Transaction, services.Subscription, services.Reporting)

	reports := rg.Group("/reports")
	{
		reports.GET("/overview", h.overview)
		reports.GET("/category-breakdown", h.categoryBreakdown)
		reports.GET("/monthly-trends", h.monthlyTrends)
	}
}

// overview godoc
// @Summary Financial overview
// @Description Income, expenses (including the subscription burden), net amount and savings rate
// @Tags reports
// @Produce json
// @Param userID path string true "Owner ID"
// @Success 200 {object} dto.OverviewResponse
// @Router /users/{userID}/reports/overview [get]
func (h *reportingHandler) overview(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("userID")

	txns, err := h.txnService.CachedTransactions(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to load transactions for overview", slog.String("error", err.Error()), slog.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute overview"})
		return
	}

	subs, err := h.subService.FetchSubscriptions(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to load subscriptions for overview", slog.String("error", err.Error()), slog.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute overview"})
		return
	}

	overview := h.reporting.Overview(txns, h.subService.TotalMonthlyCost(subs))
	c.JSON(http.StatusOK, dto.ToOverviewResponse(overview))
}

// categoryBreakdown godoc
// @Summary Spending by category
// @Description Expense totals grouped by category with each group's share of total expenses
// @Tags reports
// @Produce json
// @Param userID path string true "Owner ID"
// @Success 200 {array} dto.CategoryBreakdownResponse
// @Router /users/{userID}/reports/category-breakdown [get]
func (h *reportingHandler) categoryBreakdown(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("userID")

	txns, err := h.txnService.CachedTransactions(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to load transactions for category breakdown", slog.String("error", err.Error()), slog.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute category breakdown"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryBreakdownResponses(h.reporting.CategoryBreakdown(txns)))
}

// monthlyTrends godoc
// @Summary Monthly income/expense trend series
// @Description Monthly buckets ending at the current month; empty months appear with zero values
// @Tags reports
// @Produce json
// @Param userID path string true "Owner ID"
// @Param months query int false "Window in months (default 6)"
// @Success 200 {array} dto.MonthlyTrendResponse
// @Failure 400 {object} map[string]string "Invalid window"
// @Router /users/{userID}/reports/monthly-trends [get]
func (h *reportingHandler) monthlyTrends(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("userID")

	months := 0
	if raw := c.Query("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "months must be a positive integer"})
			return
		}
		months = parsed
	}

	txns, err := h.txnService.CachedTransactions(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to load transactions for monthly trends", slog.String("error", err.Error()), slog.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute monthly trends"})
		return
	}

	c.JSON(http.StatusOK, dto.ToMonthlyTrendResponses(h.reporting.MonthlyTrends(txns, months)))
}
