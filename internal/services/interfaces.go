package services

import (
	"time"

	"github.com/shopspring/decimal"

	"moneta/internal/installment"
	"moneta/internal/models"
	"moneta/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, name string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// TransactionInput carries the fields of a new transaction.
type TransactionInput struct {
	Type          models.TransactionType
	Category      string
	Date          time.Time
	Amount        decimal.Decimal
	PaymentMethod models.PaymentMethod
	CardName      string
	Installments  int
	Description   string
}

// SearchFilter narrows SearchTransactions. Type is required; zero values of
// the other fields match everything. Month only applies with Year, and Day
// only with Month.
type SearchFilter struct {
	Type     models.TransactionType
	Category string
	Year     int
	Month    int
	Day      int
	Query    string
}

// SearchResult is one page of matching transactions plus the totals shown
// next to it.
type SearchResult struct {
	Transactions  pagination.PageResponse[models.Transaction] `json:"transactions"`
	TotalFiltered float64                                     `json:"total_filtered"`
	TotalYear     *float64                                    `json:"total_year,omitempty"`
	TotalMonth    *float64                                    `json:"total_month,omitempty"`
}

// SearchOptions lists the values a search for one transaction type can be
// narrowed by.
type SearchOptions struct {
	Categories []string `json:"categories"`
	Years      []int    `json:"years"`
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID string, input TransactionInput) (*models.Transaction, error)
	ListUserTransactions(userID string) ([]models.Transaction, error)
	GetUserTransactions(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID string, transactionID uint) (*models.Transaction, error)
	UpdateTransactionFields(userID string, transactionID uint, category, cardName, description string) (*models.Transaction, error)
	SearchTransactions(userID string, filter SearchFilter, page pagination.PageRequest) (*SearchResult, error)
	GetSearchOptions(userID string, txType models.TransactionType) (*SearchOptions, error)
	GetAvailableDays(userID string, txType models.TransactionType, year, month int, category string) ([]int, error)
}

// CategoryAmount is the total of one category within a period.
type CategoryAmount struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// MonthTotals holds the per-type totals of one calendar month.
type MonthTotals struct {
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	Income     float64 `json:"income"`
	Expense    float64 `json:"expense"`
	Investment float64 `json:"investment"`
}

// MonthlySummary is the dashboard view of one calendar month.
type MonthlySummary struct {
	Year              int              `json:"year"`
	Month             int              `json:"month"`
	Income            float64          `json:"income"`
	Expense           float64          `json:"expense"`
	Investment        float64          `json:"investment"`
	Balance           float64          `json:"balance"`
	CommittedPct      float64          `json:"committed_pct"`
	ExpenseByCategory []CategoryAmount `json:"expense_by_category"`
	History           []MonthTotals    `json:"history"`
	HasData           bool             `json:"has_data"`
}

// DashboardServicer defines the contract for the monthly overview.
type DashboardServicer interface {
	GetMonthlySummary(userID string, ref time.Time) (*MonthlySummary, error)
	GetRecentTransactions(userID string, limit int) ([]models.Transaction, error)
}

// MonthAmount is a total attributed to one month of a year.
type MonthAmount struct {
	Month  int     `json:"month"`
	Amount float64 `json:"amount"`
}

// CardFilterOptions lists the values purchase views can be filtered by.
type CardFilterOptions struct {
	Cards      []string `json:"cards"`
	Categories []string `json:"categories"`
	Years      []int    `json:"years"`
}

// CardServicer defines the contract for the credit card installment views.
// Every method recomputes the schedule from the user's stored transactions.
type CardServicer interface {
	GetCardSummary(userID string, dueDay int) (*installment.Summary, error)
	GetPurchaseOverviews(userID string, dueDay int, filter installment.Filter) ([]installment.Overview, error)
	GetSettledInstallments(userID string, dueDay int, filter installment.Filter) ([]installment.Installment, error)
	GetMonthlyHistory(userID string, dueDay int) ([]MonthAmount, error)
	GetCategoryShares(userID string) ([]CategoryAmount, error)
	GetFilterOptions(userID string) (*CardFilterOptions, error)
}

// YearTotals holds the per-type totals of one calendar year.
type YearTotals struct {
	Year       int     `json:"year"`
	Income     float64 `json:"income"`
	Expense    float64 `json:"expense"`
	Investment float64 `json:"investment"`
}

// PaymentMethodAmount is the expense total of one payment method.
type PaymentMethodAmount struct {
	PaymentMethod models.PaymentMethod `json:"payment_method"`
	Amount        float64              `json:"amount"`
}

// CardSpending is the card related spending of one year by purchase month.
type CardSpending struct {
	Year           int           `json:"year"`
	AvailableYears []int         `json:"available_years"`
	Months         []MonthAmount `json:"months"`
}

// InvestmentYear is the amount invested in one year and up to it.
type InvestmentYear struct {
	Year       int     `json:"year"`
	Invested   float64 `json:"invested"`
	Cumulative float64 `json:"cumulative"`
}

// AnalyticsServicer defines the contract for the long-range reports.
type AnalyticsServicer interface {
	GetYearOverYear(userID string) ([]YearTotals, error)
	GetExpensesByPaymentMethod(userID string) ([]PaymentMethodAmount, error)
	GetCardSpending(userID string, year int) (*CardSpending, error)
	GetInvestmentEvolution(userID string) ([]InvestmentYear, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
