package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "moneta/internal/errors"
	"moneta/internal/installment"
	"moneta/internal/money"
	"moneta/internal/services"
)

// CardHandler serves the credit card installment views.
type CardHandler struct {
	cardService   services.CardServicer
	defaultDueDay int
}

// NewCardHandler creates a new CardHandler. defaultDueDay is used when a
// request has no due_day parameter.
func NewCardHandler(cardService services.CardServicer, defaultDueDay int) *CardHandler {
	return &CardHandler{cardService: cardService, defaultDueDay: defaultDueDay}
}

// CardQuery holds the query parameters shared by the card endpoints.
type CardQuery struct {
	DueDay   *int                     `form:"due_day" binding:"omitempty,due_day"`
	Card     string                   `form:"card" binding:"max=100"`
	Category string                   `form:"category" binding:"max=100"`
	Year     int                      `form:"year" binding:"omitempty,min=1900,max=9999"`
	Query    string                   `form:"q" binding:"max=200"`
	Status   installment.StatusFilter `form:"status" binding:"omitempty,overview_status"`
}

func (q CardQuery) filter() installment.Filter {
	return installment.Filter{
		CardName: q.Card,
		Category: q.Category,
		Year:     q.Year,
		Query:    q.Query,
		Status:   q.Status,
	}
}

// bindQuery reads the card query and resolves the due day.
func (h *CardHandler) bindQuery(c *gin.Context) (CardQuery, int, error) {
	var q CardQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return q, 0, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	dueDay := h.defaultDueDay
	if q.DueDay != nil {
		dueDay = *q.DueDay
	}
	return q, dueDay, nil
}

// CardSummaryDisplay carries the card summary formatted as BRL.
type CardSummaryDisplay struct {
	DueThisMonth      string `json:"due_this_month"`
	DueThisYearUnpaid string `json:"due_this_year_unpaid"`
	PaidThisYear      string `json:"paid_this_year"`
}

// CardSummaryResponse is the card summary with its due day and display strings.
type CardSummaryResponse struct {
	installment.Summary
	DueDay  int                `json:"due_day"`
	Display CardSummaryDisplay `json:"display"`
}

// GetSummary returns the headline card metrics
// @Summary     Card summary
// @Description Installments due this month, still due this year and already paid this year
// @Tags        card
// @Produce     json
// @Security    BearerAuth
// @Param       due_day query int false "Statement due day (1-28, default from configuration)"
// @Success     200 {object} CardSummaryResponse "Card summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /card/summary [get]
func (h *CardHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	_, dueDay, err := h.bindQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.cardService.GetCardSummary(userID, dueDay)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, CardSummaryResponse{
		Summary: *summary,
		DueDay:  dueDay,
		Display: CardSummaryDisplay{
			DueThisMonth:      money.Format(summary.DueThisMonth),
			DueThisYearUnpaid: money.Format(summary.DueThisYearUnpaid),
			PaidThisYear:      money.Format(summary.PaidThisYear),
		},
	})
}

// GetPurchases lists one overview per card purchase
// @Summary     Card purchases
// @Description Purchases rebuilt from their installments with paid and remaining counts, next due date and status
// @Tags        card
// @Produce     json
// @Security    BearerAuth
// @Param       due_day  query int    false "Statement due day (1-28)"
// @Param       card     query string false "Card name"
// @Param       category query string false "Category"
// @Param       year     query int    false "Purchase year"
// @Param       q        query string false "Description contains (case-insensitive)"
// @Param       status   query string false "active, settled or all"
// @Success     200 {object} map[string]interface{} "Purchases"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /card/purchases [get]
func (h *CardHandler) GetPurchases(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	q, dueDay, err := h.bindQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	overviews, err := h.cardService.GetPurchaseOverviews(userID, dueDay, q.filter())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"purchases": overviews, "due_day": dueDay})
}

// GetSettled lists the installments of fully paid purchases
// @Summary     Settled installments
// @Description Every installment of the purchases whose last installment is already paid
// @Tags        card
// @Produce     json
// @Security    BearerAuth
// @Param       due_day  query int    false "Statement due day (1-28)"
// @Param       card     query string false "Card name"
// @Param       category query string false "Category"
// @Param       year     query int    false "Purchase year"
// @Param       q        query string false "Description contains (case-insensitive)"
// @Success     200 {object} map[string]interface{} "Installments"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /card/settled [get]
func (h *CardHandler) GetSettled(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	q, dueDay, err := h.bindQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	installments, err := h.cardService.GetSettledInstallments(userID, dueDay, q.filter())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"installments": installments, "due_day": dueDay})
}

// GetHistory returns this year's installment totals by due month
// @Summary     Card history
// @Description Twelve monthly installment totals of the current year, January first
// @Tags        card
// @Produce     json
// @Security    BearerAuth
// @Param       due_day query int false "Statement due day (1-28)"
// @Success     200 {object} map[string]interface{} "Monthly totals"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /card/history [get]
func (h *CardHandler) GetHistory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	_, dueDay, err := h.bindQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	months, err := h.cardService.GetMonthlyHistory(userID, dueDay)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"months": months, "due_day": dueDay})
}

// GetCategories returns this year's card spending by category
// @Summary     Card categories
// @Description Full value of this year's card purchases per category with its share of the total
// @Tags        card
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]services.CategoryAmount "Categories"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /card/categories [get]
func (h *CardHandler) GetCategories(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	shares, err := h.cardService.GetCategoryShares(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": shares})
}

// GetOptions lists the values the purchase views can be filtered by
// @Summary     Card filter options
// @Description Card names, categories and purchase years of the user's card purchases
// @Tags        card
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.CardFilterOptions "Options"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /card/options [get]
func (h *CardHandler) GetOptions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	opts, err := h.cardService.GetFilterOptions(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, opts)
}
