package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/money"
	"moneta/internal/pagination"
	"moneta/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, auditService: auditService}
}

// CreateTransactionRequest represents the request payload for creating a transaction.
// Amount is a string so both "1.234,56" and "1234.56" are accepted.
type CreateTransactionRequest struct {
	Type          models.TransactionType `json:"type" binding:"required,transaction_type"`
	Category      string                 `json:"category" binding:"required,max=100"`
	Date          string                 `json:"date"`
	Amount        string                 `json:"amount" binding:"required,max=32"`
	PaymentMethod models.PaymentMethod   `json:"payment_method" binding:"omitempty,payment_method"`
	CardName      string                 `json:"card_name" binding:"max=100"`
	Installments  int                    `json:"installments" binding:"omitempty,min=1,max=120"`
	Description   string                 `json:"description" binding:"max=500"`
}

// UpdateTransactionRequest replaces the editable fields of a transaction.
type UpdateTransactionRequest struct {
	Category    string `json:"category" binding:"required,max=100"`
	CardName    string `json:"card_name" binding:"max=100"`
	Description string `json:"description" binding:"max=500"`
}

// SearchQuery holds the query string of a transaction search.
type SearchQuery struct {
	Type     models.TransactionType `form:"type" binding:"required,transaction_type"`
	Category string                 `form:"category" binding:"max=100"`
	Year     int                    `form:"year" binding:"omitempty,min=1900,max=9999"`
	Month    int                    `form:"month" binding:"omitempty,min=1,max=12"`
	Day      int                    `form:"day" binding:"omitempty,min=1,max=31"`
	Query    string                 `form:"q" binding:"max=200"`
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Record an income, expense or investment. Credit card expenses carry a card name and an installment count.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	amount, err := money.Parse(req.Amount)
	if err != nil {
		respondWithError(c, apperrors.ErrInvalidAmount)
		return
	}

	var date time.Time
	if req.Date != "" {
		date, err = parseDate(req.Date)
		if err != nil {
			respondWithError(c, err)
			return
		}
	}

	installments := req.Installments
	if installments == 0 {
		installments = 1
	}

	transaction, err := h.transactionService.CreateTransaction(userID, services.TransactionInput{
		Type:          req.Type,
		Category:      req.Category,
		Date:          date,
		Amount:        amount,
		PaymentMethod: req.PaymentMethod,
		CardName:      req.CardName,
		Installments:  installments,
		Description:   req.Description,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditActionCreateTransaction, "transaction", strconv.FormatUint(uint64(transaction.ID), 10), c.ClientIP(),
		map[string]interface{}{"type": transaction.Type, "amount": transaction.Amount, "payment_method": transaction.PaymentMethod})

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// GetUserTransactions handles the retrieval of the authenticated user's transactions
// @Summary     Get user transactions
// @Description Get a paginated list of the user's transactions, newest first
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) GetUserTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.transactionService.GetUserTransactions(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTransactionByID handles the retrieval of a specific transaction
// @Summary     Get transaction by ID
// @Description Get a specific transaction by ID
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     200 {object} models.Transaction "Transaction details"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(userID, transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// UpdateTransaction handles editing a transaction
// @Summary     Update transaction
// @Description Replace the category, card name and description of a transaction. Amount, date, type and installments cannot change.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                      true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "New field values"
// @Success     200 {object} models.Transaction "Updated transaction"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [patch]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	txID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.UpdateTransactionFields(userID, txID, req.Category, req.CardName, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditActionUpdateTransaction, "transaction", strconv.FormatUint(uint64(txID), 10), c.ClientIP(),
		map[string]interface{}{"category": transaction.Category, "card_name": transaction.CardName, "description": transaction.Description})

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// SearchTransactions handles filtered transaction queries
// @Summary     Search transactions
// @Description Search one transaction type by category, date parts and description. Month requires year and day requires month.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       type      query string true  "Transaction type (income, expense, investment)"
// @Param       category  query string false "Exact category"
// @Param       year      query int    false "Year"
// @Param       month     query int    false "Month (1-12)"
// @Param       day       query int    false "Day of month"
// @Param       q         query string false "Description contains (case-insensitive)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} services.SearchResult "Matching transactions and totals"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/search [get]
func (h *TransactionHandler) SearchTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var q SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.transactionService.SearchTransactions(userID, services.SearchFilter{
		Type:     q.Type,
		Category: q.Category,
		Year:     q.Year,
		Month:    q.Month,
		Day:      q.Day,
		Query:    q.Query,
	}, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetSearchOptions lists the categories and years available for a type
// @Summary     Search options
// @Description Distinct categories (sorted) and years (newest first) recorded for a transaction type
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       type query string true "Transaction type"
// @Success     200 {object} services.SearchOptions "Available values"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/options [get]
func (h *TransactionHandler) GetSearchOptions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	txType := models.TransactionType(c.Query("type"))
	if !txType.Valid() {
		respondWithError(c, apperrors.ErrInvalidTransactionType)
		return
	}

	opts, err := h.transactionService.GetSearchOptions(userID, txType)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, opts)
}

// GetAvailableDays lists the days of a month that have transactions
// @Summary     Available days
// @Description Days of the given month with at least one transaction of the type, optionally within one category
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       type     query string true  "Transaction type"
// @Param       year     query int    true  "Year"
// @Param       month    query int    true  "Month (1-12)"
// @Param       category query string false "Exact category"
// @Success     200 {object} map[string][]int "Days"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/days [get]
func (h *TransactionHandler) GetAvailableDays(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	txType := models.TransactionType(c.Query("type"))
	if !txType.Valid() {
		respondWithError(c, apperrors.ErrInvalidTransactionType)
		return
	}
	year, err := queryInt(c, "year", 0)
	if err != nil {
		respondWithError(c, err)
		return
	}
	month, err := queryInt(c, "month", 0)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if month < 0 || month > 12 {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid month"))
		return
	}

	days, err := h.transactionService.GetAvailableDays(userID, txType, year, month, c.Query("category"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": days})
}
