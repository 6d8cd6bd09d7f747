package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"moneta/internal/money"
	"moneta/internal/services"
)

// DashboardHandler serves the monthly overview.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// SummaryDisplay carries the headline values formatted as BRL.
type SummaryDisplay struct {
	Income       string `json:"income"`
	Expense      string `json:"expense"`
	Investment   string `json:"investment"`
	Balance      string `json:"balance"`
	CommittedPct string `json:"committed_pct"`
}

// DashboardSummaryResponse is the monthly summary plus its display strings.
type DashboardSummaryResponse struct {
	*services.MonthlySummary
	Display SummaryDisplay `json:"display"`
}

// GetSummary returns the totals of one month
// @Summary     Monthly summary
// @Description Income, expense and investment totals of the month containing ref, with the expense breakdown by category and six months of history
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       ref query string false "Any date of the month (YYYY-MM-DD, default today)"
// @Success     200 {object} DashboardSummaryResponse "Monthly summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var ref time.Time
	if v := c.Query("ref"); v != "" {
		ref, err = parseDate(v)
		if err != nil {
			respondWithError(c, err)
			return
		}
	}

	summary, err := h.dashboardService.GetMonthlySummary(userID, ref)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, DashboardSummaryResponse{
		MonthlySummary: summary,
		Display: SummaryDisplay{
			Income:       money.Format(summary.Income),
			Expense:      money.Format(summary.Expense),
			Investment:   money.Format(summary.Investment),
			Balance:      money.Format(summary.Balance),
			CommittedPct: money.FormatPercent(summary.CommittedPct),
		},
	})
}

// GetRecent lists the latest transactions grouped by type
// @Summary     Recent transactions
// @Description Transactions ordered by type (income, investment, expense), category and newest first
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       limit query int false "Maximum rows (default 20, max 200)"
// @Success     200 {object} map[string][]models.Transaction "Transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/recent [get]
func (h *DashboardHandler) GetRecent(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactions, err := h.dashboardService.GetRecentTransactions(userID, limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}
