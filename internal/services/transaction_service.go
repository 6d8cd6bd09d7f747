package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"moneta/internal/clock"
	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/money"
	"moneta/internal/pagination"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db    *gorm.DB
	clock clock.Clock
}

// NewTransactionService creates a new TransactionServicer. The clock supplies
// the date of transactions created without one.
func NewTransactionService(db *gorm.DB, clk clock.Clock) TransactionServicer {
	return &transactionService{
		db:    db,
		clock: clk,
	}
}

// CreateTransaction validates input and stores it as a new transaction.
func (s *transactionService) CreateTransaction(userID string, input TransactionInput) (*models.Transaction, error) {
	transaction, err := s.normalize(input)
	if err != nil {
		return nil, err
	}
	transaction.UserID = userID

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// normalize applies the entry rules: investments always leave the account,
// and only credit card payments carry a card name and an installment count.
func (s *transactionService) normalize(in TransactionInput) (*models.Transaction, error) {
	if !in.Type.Valid() {
		return nil, apperrors.ErrInvalidTransactionType
	}
	amount := in.Amount.Round(2)
	if !amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		return nil, apperrors.ErrCategoryRequired
	}

	method := in.PaymentMethod
	if method == "" || in.Type == models.TransactionTypeInvestment {
		method = models.PaymentMethodAccount
	}
	if !method.Valid() {
		return nil, apperrors.ErrInvalidPaymentMethod
	}

	cardName := ""
	count := 1
	if method == models.PaymentMethodCreditCard {
		cardName = strings.TrimSpace(in.CardName)
		if cardName == "" {
			return nil, apperrors.ErrCardNameRequired
		}
		if in.Installments < 1 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "installments must be at least 1")
		}
		count = in.Installments
	}

	date := in.Date
	if date.IsZero() {
		date = s.clock.Today()
	}

	return &models.Transaction{
		Type:          in.Type,
		Category:      category,
		Date:          clock.DateOf(date),
		Amount:        amount,
		PaymentMethod: method,
		CardName:      cardName,
		Installments:  count,
		Description:   strings.TrimSpace(in.Description),
	}, nil
}

// ListUserTransactions returns every transaction of the user, oldest first.
func (s *transactionService) ListUserTransactions(userID string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.db.Where("user_id = ?", userID).
		Order("date ASC, id ASC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// GetUserTransactions retrieves a page of the user's transactions, newest first.
func (s *transactionService) GetUserTransactions(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := s.db.Where("user_id = ?", userID).
		Scopes(pagination.Paginate(page)).
		Order("date DESC, id DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetTransactionByID retrieves a transaction by ID for a specific user
func (s *transactionService) GetTransactionByID(userID string, transactionID uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransactionFields changes the category, card name and description of
// a transaction. Nothing else is editable after creation.
func (s *transactionService) UpdateTransactionFields(userID string, transactionID uint, category, cardName, description string) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	category = strings.TrimSpace(category)
	if category == "" {
		return nil, apperrors.ErrCategoryRequired
	}
	cardName = strings.TrimSpace(cardName)
	if transaction.PaymentMethod != models.PaymentMethodCreditCard {
		cardName = ""
	} else if cardName == "" {
		return nil, apperrors.ErrCardNameRequired
	}

	if err := s.db.Model(transaction).Updates(map[string]interface{}{
		"category":    category,
		"card_name":   cardName,
		"description": strings.TrimSpace(description),
	}).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetTransactionByID(userID, transactionID)
}

// SearchTransactions returns one page of the user's transactions of a type,
// ordered by category then newest first, with the filtered total and, when
// a year (and month) is selected, the totals of that year (and month)
// ignoring the narrower date filters.
func (s *transactionService) SearchTransactions(userID string, filter SearchFilter, page pagination.PageRequest) (*SearchResult, error) {
	if err := validateSearchFilter(filter); err != nil {
		return nil, err
	}
	page.Defaults()

	scope := searchScope(userID, filter)

	var totalItems int64
	if err := s.db.Model(&models.Transaction{}).Scopes(scope).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := s.db.Scopes(scope, pagination.Paginate(page)).
		Order("category ASC, date DESC, id DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := &SearchResult{
		Transactions: pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems),
	}

	filtered, err := s.sumAmount(scope)
	if err != nil {
		return nil, err
	}
	result.TotalFiltered = money.Float(filtered)

	if filter.Year != 0 {
		yearOnly := filter
		yearOnly.Month, yearOnly.Day = 0, 0
		total, err := s.sumAmount(searchScope(userID, yearOnly))
		if err != nil {
			return nil, err
		}
		yearTotal := money.Float(total)
		result.TotalYear = &yearTotal
	}

	if filter.Year != 0 && filter.Month != 0 {
		monthOnly := filter
		monthOnly.Day = 0
		total, err := s.sumAmount(searchScope(userID, monthOnly))
		if err != nil {
			return nil, err
		}
		monthTotal := money.Float(total)
		result.TotalMonth = &monthTotal
	}

	return result, nil
}

func validateSearchFilter(f SearchFilter) error {
	if !f.Type.Valid() {
		return apperrors.ErrInvalidTransactionType
	}
	if f.Month < 0 || f.Month > 12 || f.Day < 0 || f.Day > 31 || f.Year < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid date filter")
	}
	if f.Month != 0 && f.Year == 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "month filter requires a year")
	}
	if f.Day != 0 && f.Month == 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "day filter requires a month")
	}
	if f.Day != 0 && f.Day > daysIn(f.Year, f.Month) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("%04d-%02d has no day %d", f.Year, f.Month, f.Day))
	}
	return nil
}

// daysIn returns the number of days in the month.
func daysIn(year, month int) int {
	return clock.Date(year, time.Month(month)+1, 0).Day()
}

// likeEscaper escapes the LIKE wildcards so a query matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// searchScope filters by date ranges rather than extracted date parts so the
// same SQL runs on postgres and sqlite.
func searchScope(userID string, f SearchFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("user_id = ? AND type = ?", userID, f.Type)
		if f.Category != "" {
			db = db.Where("category = ?", f.Category)
		}
		if from, to, ok := dateRange(f.Year, f.Month, f.Day); ok {
			db = db.Where("date >= ? AND date < ?", from, to)
		}
		if q := strings.TrimSpace(f.Query); q != "" {
			pattern := "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
			db = db.Where(`LOWER(description) LIKE ? ESCAPE '\'`, pattern)
		}
		return db
	}
}

// dateRange returns the half-open interval covering the selected year, month
// or day.
func dateRange(year, month, day int) (from, to time.Time, ok bool) {
	switch {
	case year == 0:
		return time.Time{}, time.Time{}, false
	case month == 0:
		from = clock.Date(year, time.January, 1)
		return from, from.AddDate(1, 0, 0), true
	case day == 0:
		from = clock.Date(year, time.Month(month), 1)
		return from, from.AddDate(0, 1, 0), true
	default:
		from = clock.Date(year, time.Month(month), day)
		return from, from.AddDate(0, 0, 1), true
	}
}

func (s *transactionService) sumAmount(scope func(*gorm.DB) *gorm.DB) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := s.db.Model(&models.Transaction{}).
		Scopes(scope).
		Select("COALESCE(SUM(amount), 0)").
		Row().
		Scan(&total); err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total.Round(2), nil
}

// GetSearchOptions lists the categories (alphabetical) and years (newest
// first) the user has transactions of the given type in.
func (s *transactionService) GetSearchOptions(userID string, txType models.TransactionType) (*SearchOptions, error) {
	if !txType.Valid() {
		return nil, apperrors.ErrInvalidTransactionType
	}

	categories := []string{}
	if err := s.db.Model(&models.Transaction{}).
		Where("user_id = ? AND type = ?", userID, txType).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var dates []time.Time
	if err := s.db.Model(&models.Transaction{}).
		Where("user_id = ? AND type = ?", userID, txType).
		Pluck("date", &dates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &SearchOptions{Categories: categories, Years: distinctYearsDesc(dates)}, nil
}

// GetAvailableDays lists the days of the month that have transactions of the
// given type, optionally within one category. Without both year and month
// the list is empty.
func (s *transactionService) GetAvailableDays(userID string, txType models.TransactionType, year, month int, category string) ([]int, error) {
	if !txType.Valid() {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if year <= 0 || month < 1 || month > 12 {
		return []int{}, nil
	}

	from, to, _ := dateRange(year, month, 0)
	q := s.db.Model(&models.Transaction{}).
		Where("user_id = ? AND type = ?", userID, txType).
		Where("date >= ? AND date < ?", from, to)
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var dates []time.Time
	if err := q.Pluck("date", &dates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	seen := make(map[int]bool)
	days := []int{}
	for _, d := range dates {
		day := d.Day()
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	sort.Ints(days)
	return days, nil
}

func distinctYearsDesc(dates []time.Time) []int {
	years := make([]int, 0, len(dates))
	for _, d := range dates {
		years = append(years, d.Year())
	}
	return uniqueDesc(years)
}

// uniqueDesc returns the distinct values of v, largest first.
func uniqueDesc(v []int) []int {
	seen := make(map[int]bool)
	out := []int{}
	for _, x := range v {
		if !seen[x] {
			seen[x] = true
			out = append(out, x)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}
