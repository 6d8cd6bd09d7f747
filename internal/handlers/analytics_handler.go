package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"moneta/internal/services"
)

// AnalyticsHandler serves the long-range reports.
type AnalyticsHandler struct {
	analyticsService services.AnalyticsServicer
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService services.AnalyticsServicer) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// GetYearOverYear returns per-type totals for every year
// @Summary     Year over year
// @Description Income, expense and investment totals per calendar year, oldest first
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]services.YearTotals "Yearly totals"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /analytics/yearly [get]
func (h *AnalyticsHandler) GetYearOverYear(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	years, err := h.analyticsService.GetYearOverYear(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"years": years})
}

// GetPaymentMethods returns expenses per payment method
// @Summary     Expenses by payment method
// @Description All-time expense totals per payment method, largest first
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]services.PaymentMethodAmount "Totals"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /analytics/payment-methods [get]
func (h *AnalyticsHandler) GetPaymentMethods(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	methods, err := h.analyticsService.GetExpensesByPaymentMethod(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment_methods": methods})
}

// GetCardSpending returns card spending by purchase month
// @Summary     Card spending
// @Description Card purchases and card bill payments of one year by month. Without year, the current year or the latest one with data.
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Param       year query int false "Year"
// @Success     200 {object} services.CardSpending "Monthly spending"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /analytics/card-spending [get]
func (h *AnalyticsHandler) GetCardSpending(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, err := queryInt(c, "year", 0)
	if err != nil {
		respondWithError(c, err)
		return
	}

	spending, err := h.analyticsService.GetCardSpending(userID, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, spending)
}

// GetInvestments returns yearly and cumulative investments
// @Summary     Investment evolution
// @Description Amount invested per year with the running total, oldest first
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]services.InvestmentYear "Investment years"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /analytics/investments [get]
func (h *AnalyticsHandler) GetInvestments(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	years, err := h.analyticsService.GetInvestmentEvolution(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"years": years})
}
